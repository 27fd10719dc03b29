package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-go/internal/domain/location"
	"github.com/andrescamacho/spacetraders-go/internal/domain/market"
	"github.com/andrescamacho/spacetraders-go/internal/domain/routing"
)

// GormMarketStore implements MarketStore using GORM, grounded on the
// teacher's GormMarketPriceHistoryRepository — append-only writes, ordered
// reads — trimmed to the narrow spec.md §4.2 contract (no volatility
// analytics: no SPEC_FULL.md component consumes them).
type GormMarketStore struct {
	db *gorm.DB
}

func NewGormMarketStore(db *gorm.DB) *GormMarketStore {
	return &GormMarketStore{db: db}
}

// AppendMarketSnapshot persists a new, immutable market observation.
func (r *GormMarketStore) AppendMarketSnapshot(ctx context.Context, locationSymbol string, snapshot *market.Snapshot) error {
	model := &MarketSnapshotModel{
		LocationSymbol:       locationSymbol,
		Good:                 snapshot.Good,
		PricePerUnit:         snapshot.PricePerUnit,
		PurchasePricePerUnit: snapshot.PurchasePricePerUnit,
		SellPricePerUnit:     snapshot.SellPricePerUnit,
		VolumePerUnit:        snapshot.VolumePerUnit,
		QuantityAvailable:    snapshot.QuantityAvailable,
		CreatedAt:            snapshot.CreatedAt,
	}
	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return NewTransportError("append market snapshot", result.Error)
	}
	return nil
}

// RoutesFrom loads the snapshots within spec.md §4.3's 30-minute window for
// origin's system and delegates scoring to the RouteEngine — the engine
// itself holds no infrastructure dependency, this method is its only caller
// of substance.
func (r *GormMarketStore) RoutesFrom(ctx context.Context, originLocation location.Location, shipSpeed int) ([]routing.Route, error) {
	since := time.Now().Add(-routing.MaxSnapshotAge)

	var locModels []LocationModel
	if result := r.db.WithContext(ctx).Where("system_symbol = ?", originLocation.SystemSymbol).Find(&locModels); result.Error != nil {
		return nil, NewTransportError("load system locations", result.Error)
	}
	locations := make(map[string]location.Location, len(locModels))
	symbols := make([]string, 0, len(locModels))
	for _, m := range locModels {
		locations[m.LocationSymbol] = location.New(m.SystemSymbol, m.LocationSymbol, location.Type(m.Type), m.X, m.Y, m.Name)
		symbols = append(symbols, m.LocationSymbol)
	}

	var snapshotModels []MarketSnapshotModel
	result := r.db.WithContext(ctx).
		Where("location_symbol IN ? AND created_at >= ?", symbols, since).
		Order("created_at DESC").
		Find(&snapshotModels)
	if result.Error != nil {
		return nil, NewTransportError("load market snapshots", result.Error)
	}

	snapshots := make([]*market.Snapshot, 0, len(snapshotModels))
	for _, m := range snapshotModels {
		s, err := market.New(m.LocationSymbol, m.Good, m.PricePerUnit, m.PurchasePricePerUnit, m.SellPricePerUnit, m.VolumePerUnit, m.QuantityAvailable, m.CreatedAt)
		if err != nil {
			return nil, NewConstraintError(fmt.Sprintf("invalid market snapshot row for %s/%s", m.LocationSymbol, m.Good), err)
		}
		snapshots = append(snapshots, s)
	}

	engine := routing.NewEngine()
	return engine.ComputeRoutes(originLocation, locations, snapshots, shipSpeed, time.Now()), nil
}
