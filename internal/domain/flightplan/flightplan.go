package flightplan

import (
	"fmt"
	"time"
)

// FlightPlan is an immutable record of one ship journey, grounded on
// spec.md §3's FlightPlan entity. Plans are append-only; completion is
// implicit by time (IsActive reports whether arrival is still pending).
type FlightPlan struct {
	ID                   string
	ShipID               string
	UserID               int
	Origin               string
	Destination          string
	Distance             float64
	FuelConsumed         int
	FuelRemaining        int
	TimeRemainingSeconds int
	ArrivesAt            time.Time
	CreatedAt            time.Time
}

// New constructs a FlightPlan, validating the fields the core relies on.
func New(id, shipID string, userID int, origin, destination string, distance float64, fuelConsumed, fuelRemaining, timeRemainingSeconds int, arrivesAt, createdAt time.Time) (*FlightPlan, error) {
	if id == "" {
		return nil, fmt.Errorf("flight plan id cannot be empty")
	}
	if shipID == "" {
		return nil, fmt.Errorf("flight plan ship id cannot be empty")
	}
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("flight plan origin and destination cannot be empty")
	}
	if createdAt.IsZero() {
		return nil, fmt.Errorf("flight plan created_at cannot be zero")
	}
	return &FlightPlan{
		ID:                   id,
		ShipID:               shipID,
		UserID:               userID,
		Origin:               origin,
		Destination:          destination,
		Distance:             distance,
		FuelConsumed:         fuelConsumed,
		FuelRemaining:        fuelRemaining,
		TimeRemainingSeconds: timeRemainingSeconds,
		ArrivesAt:            arrivesAt,
		CreatedAt:            createdAt,
	}, nil
}

// IsActive reports whether this plan's ship is still in transit: at most
// one plan per ship may satisfy this, per spec.md §3's invariant.
func (f *FlightPlan) IsActive(now time.Time) bool {
	return f.ArrivesAt.After(now)
}
