package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-go/internal/domain/flightplan"
)

// GormFlightPlanStore implements FlightPlanStore using GORM. Grounded on the
// teacher's ContainerLogModel append-only event-log idiom rather than its
// mutable navigation Route — spec.md §3 requires plans stay append-only and
// completion is implicit by time, never mutated in place.
type GormFlightPlanStore struct {
	db *gorm.DB
}

func NewGormFlightPlanStore(db *gorm.DB) *GormFlightPlanStore {
	return &GormFlightPlanStore{db: db}
}

// AppendFlightPlan inserts a new flight plan row. Never an upsert.
func (r *GormFlightPlanStore) AppendFlightPlan(ctx context.Context, userID int, shipID string, plan *flightplan.FlightPlan) error {
	model := &FlightPlanModel{
		ID:                   plan.ID,
		UserID:               userID,
		ShipID:               shipID,
		Origin:               plan.Origin,
		Destination:          plan.Destination,
		Distance:             plan.Distance,
		FuelConsumed:         plan.FuelConsumed,
		FuelRemaining:        plan.FuelRemaining,
		TimeRemainingSeconds: plan.TimeRemainingSeconds,
		ArrivesAt:            plan.ArrivesAt,
		CreatedAt:            plan.CreatedAt,
	}
	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return NewTransportError("append flight plan", result.Error)
	}
	return nil
}

// ActiveFlightPlan returns the ship's flight plan with arrives_at > now, if
// any — at most one may satisfy this by spec.md §3's invariant.
func (r *GormFlightPlanStore) ActiveFlightPlan(ctx context.Context, shipID string) (*flightplan.FlightPlan, error) {
	var model FlightPlanModel
	err := r.db.WithContext(ctx).
		Where("ship_id = ? AND arrives_at > ?", shipID, time.Now()).
		Order("arrives_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, NewTransportError("find active flight plan", err)
	}
	return flightplan.New(model.ID, model.ShipID, model.UserID, model.Origin, model.Destination, model.Distance, model.FuelConsumed, model.FuelRemaining, model.TimeRemainingSeconds, model.ArrivesAt, model.CreatedAt)
}

// GetFuelRequired looks up the fuel consumed by the newest prior flight plan
// covering the same origin/destination pair flown by a ship of the given
// ship type (joined through ships.ship_symbol), from any owner.
func (r *GormFlightPlanStore) GetFuelRequired(ctx context.Context, origin, destination, shipType string) (int, bool, error) {
	var model FlightPlanModel
	err := r.db.WithContext(ctx).
		Joins("JOIN ships ON ships.ship_symbol = flight_plans.ship_id").
		Where("flight_plans.origin = ? AND flight_plans.destination = ? AND ships.ship_type = ?", origin, destination, shipType).
		Order("flight_plans.created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, NewTransportError("find historical fuel requirement", err)
	}
	return model.FuelConsumed, true, nil
}
