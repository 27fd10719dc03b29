package persistence

import "gorm.io/gorm"

// GormGateway composes the per-entity stores into spec.md §4.2's full
// Gateway contract, grounded on the teacher's pattern of small
// single-purpose GORM repositories wired together at the composition root
// rather than one monolithic repository type.
type GormGateway struct {
	*GormUserStore
	*GormLocationStore
	*GormShipStore
	*GormFlightPlanStore
	*GormMarketStore
	*GormTransactionStore
	*GormUserStatsStore
}

// NewGormGateway builds a Gateway backed by a single *gorm.DB connection.
func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{
		GormUserStore:        NewGormUserStore(db),
		GormLocationStore:    NewGormLocationStore(db),
		GormShipStore:        NewGormShipStore(db),
		GormFlightPlanStore:  NewGormFlightPlanStore(db),
		GormMarketStore:      NewGormMarketStore(db),
		GormTransactionStore: NewGormTransactionStore(db),
		GormUserStatsStore:   NewGormUserStatsStore(db),
	}
}

// AllModels lists every GORM model for AutoMigrate, grounded on the
// teacher's migration list in cmd/spacetraders-daemon/main.go.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&LocationModel{},
		&ShipModel{},
		&FlightPlanModel{},
		&MarketSnapshotModel{},
		&TransactionModel{},
		&UserStatsModel{},
	}
}

var _ Gateway = (*GormGateway)(nil)
