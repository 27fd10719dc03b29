package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-go/internal/domain/ship"
)

// GormShipStore implements ShipStore using GORM. Grounded on the teacher's
// GormShipRepository in structure (upsert ownership row keyed by ship+user),
// but trimmed to spec.md §3's static ship attributes — the teacher's
// original navigation/dock/orbit machinery has no equivalent in this
// system, ships always fly via flight plans (§4.4) and never idle in orbit.
type GormShipStore struct {
	db *gorm.DB
}

func NewGormShipStore(db *gorm.DB) *GormShipStore {
	return &GormShipStore{db: db}
}

// UpsertShip creates or updates a ship's ownership and static attributes.
func (r *GormShipStore) UpsertShip(ctx context.Context, userID int, homeSystem string, s *ship.Ship) error {
	model := &ShipModel{
		ShipSymbol:   s.ID(),
		UserID:       userID,
		ShipType:     s.ShipType(),
		Class:        s.Class(),
		MaxCargo:     s.MaxCargo(),
		Speed:        s.Speed(),
		Manufacturer: s.Manufacturer(),
		Plating:      s.Plating(),
		Weapons:      s.Weapons(),
		HomeSystem:   homeSystem,
	}
	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return NewTransportError("upsert ship", result.Error)
	}
	return nil
}

// GetShipRow retrieves a ship's ownership row.
func (r *GormShipStore) GetShipRow(ctx context.Context, userID int, shipID string) (*ShipRow, error) {
	var model ShipModel
	err := r.db.WithContext(ctx).Where("user_id = ? AND ship_symbol = ?", userID, shipID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("ship " + shipID)
		}
		return nil, NewTransportError("find ship", err)
	}
	return &ShipRow{
		ShipSymbol:   model.ShipSymbol,
		UserID:       model.UserID,
		ShipType:     model.ShipType,
		Class:        model.Class,
		MaxCargo:     model.MaxCargo,
		Speed:        model.Speed,
		Manufacturer: model.Manufacturer,
		Plating:      model.Plating,
		Weapons:      model.Weapons,
		HomeSystem:   model.HomeSystem,
	}, nil
}
