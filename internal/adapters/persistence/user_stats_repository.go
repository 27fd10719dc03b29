package persistence

import (
	"context"

	"gorm.io/gorm"
)

// GormUserStatsStore implements the append_user_stats half of TransactionStore
// using GORM, an append-only time series grounded on the teacher's
// autoCreateTime event-log convention (ContainerLogModel).
type GormUserStatsStore struct {
	db *gorm.DB
}

func NewGormUserStatsStore(db *gorm.DB) *GormUserStatsStore {
	return &GormUserStatsStore{db: db}
}

func (r *GormUserStatsStore) AppendUserStats(ctx context.Context, userID, credits, ships int) error {
	model := &UserStatsModel{UserID: userID, Credits: credits, ShipCount: ships}
	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return NewTransportError("append user stats", result.Error)
	}
	return nil
}
