package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-go/internal/domain/location"
)

// GormLocationStore implements LocationStore using GORM, grounded on the
// teacher's GormWaypointRepository, trimmed to spec.md §3's Location fields
// (no traits/orbitals — those model mechanics this system doesn't use).
type GormLocationStore struct {
	db *gorm.DB
}

func NewGormLocationStore(db *gorm.DB) *GormLocationStore {
	return &GormLocationStore{db: db}
}

// UpsertSystemLocation creates or updates a location's static attributes.
func (r *GormLocationStore) UpsertSystemLocation(ctx context.Context, systemSymbol string, loc location.Location) error {
	model := &LocationModel{
		LocationSymbol: loc.LocationSymbol,
		SystemSymbol:   systemSymbol,
		Type:           string(loc.Type),
		X:              loc.X,
		Y:              loc.Y,
		Name:           loc.Name,
	}
	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return NewTransportError("upsert location", result.Error)
	}
	return nil
}

// LocationsInSystemOf lists every location symbol sharing a system with
// locationSymbol.
func (r *GormLocationStore) LocationsInSystemOf(ctx context.Context, locationSymbol string) ([]string, error) {
	systemSymbol := location.ExtractSystemSymbol(locationSymbol)

	var models []LocationModel
	if result := r.db.WithContext(ctx).Where("system_symbol = ?", systemSymbol).Find(&models); result.Error != nil {
		return nil, NewTransportError("list locations in system", result.Error)
	}

	symbols := make([]string, len(models))
	for i, m := range models {
		symbols[i] = m.LocationSymbol
	}
	return symbols, nil
}

// WormholeFrom finds the Wormhole in locationSymbol's system whose symbol
// encodes targetSystem, per spec.md §3's Wormhole rule.
func (r *GormLocationStore) WormholeFrom(ctx context.Context, locationSymbol, targetSystem string) (string, error) {
	systemSymbol := location.ExtractSystemSymbol(locationSymbol)

	var models []LocationModel
	result := r.db.WithContext(ctx).
		Where("system_symbol = ? AND type = ?", systemSymbol, string(location.TypeWormhole)).
		Find(&models)
	if result.Error != nil {
		return "", NewTransportError("find wormhole", result.Error)
	}

	for _, m := range models {
		if strings.Contains(m.LocationSymbol, targetSystem) {
			return m.LocationSymbol, nil
		}
	}
	return "", NewNotFoundError("wormhole from " + locationSymbol + " to " + targetSystem)
}

// GetLocation retrieves a single location by symbol. Used internally by
// other stores (e.g. RoutesFrom's origin lookup) and exposed for
// ShipMachine's location.Location reconstruction needs.
func (r *GormLocationStore) GetLocation(ctx context.Context, locationSymbol string) (location.Location, error) {
	var model LocationModel
	err := r.db.WithContext(ctx).Where("location_symbol = ?", locationSymbol).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return location.Location{}, NewNotFoundError("location " + locationSymbol)
		}
		return location.Location{}, NewTransportError("find location", err)
	}
	return location.New(model.SystemSymbol, model.LocationSymbol, location.Type(model.Type), model.X, model.Y, model.Name), nil
}
