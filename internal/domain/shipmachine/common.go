package shipmachine

import (
	"time"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/domain/flightplan"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ship"
)

// purchaseCargoType is the transaction kind recorded when a ship machine
// buys a good to carry for resale, as distinct from buying Fuel.
const purchaseCargoType = ledger.TransactionTypePurchaseCargo

// applyFlightPlan converts the remote API's response into the local
// flightplan.FlightPlan aggregate and the ship's post-departure Cargo (the
// FUEL line drops by exactly fuel_consumed, per spec.md §8's cargo mass
// conservation invariant for flight plan creation; it errors when the ship
// holds less fuel than that).
func applyFlightPlan(deps *Deps, s *ship.Ship, resp *api.FlightPlanResponse) (*flightplan.FlightPlan, *ship.Cargo, error) {
	data := resp.FlightPlan

	arrivesAt, err := time.Parse(time.RFC3339, data.ArrivesAt)
	if err != nil {
		return nil, nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, data.CreatedAt)
	if err != nil {
		createdAt = deps.Clock.Now()
	}

	plan, err := flightplan.New(
		data.ID, data.ShipID, deps.UserID,
		data.Origin, data.Destination, data.Distance,
		data.FuelConsumed, data.FuelRemaining, data.TimeRemainingInSeconds,
		arrivesAt, createdAt,
	)
	if err != nil {
		return nil, nil, err
	}

	cargo, err := s.Cargo().WithRemoved(ship.FuelGood, data.FuelConsumed)
	if err != nil {
		return nil, nil, err
	}
	return plan, cargo, nil
}
