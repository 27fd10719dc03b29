package shipmachine

import (
	"context"
	"time"

	"github.com/andrescamacho/spacetraders-go/internal/domain/flightplan"
	"github.com/andrescamacho/spacetraders-go/internal/domain/market"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ship"
)

// harvestInterval is spec.md §4.4b's "next_at = now + 3 min" cadence.
const harvestInterval = 3 * time.Minute

// ScoutState enumerates spec.md §4.4b's named states, with MoveToLocation
// split into an ensure-fuel and a create-plan sub-state, as in Trader, so
// buying fuel and creating the flight plan happen in separate steps.
type ScoutState int

const (
	ScoutInitializeShip ScoutState = iota
	ScoutCheckLocation
	ScoutMoveToLocationEnsureFuel
	ScoutMoveToLocationCreatePlan
	ScoutWaitForArrival
	ScoutHarvestMarketData
	ScoutWait
)

// Scout parks at an assigned location and periodically harvests market
// snapshots, moving there first if it starts elsewhere.
type Scout struct {
	deps             *Deps
	state            ScoutState
	ship             *ship.Ship
	assignedLocation string

	activePlan    *flightplan.FlightPlan
	nextHarvestAt time.Time
}

// NewScout constructs a Scout assigned to harvest market data at location.
func NewScout(deps *Deps, s *ship.Ship, location string) *Scout {
	return &Scout{deps: deps, state: ScoutInitializeShip, ship: s, assignedLocation: location}
}

func (s *Scout) ShipID() string { return s.deps.ShipSymbol }

// CurrentLocation reports the ship's last known docked location, nil while
// in transit. Used by UserAgent to find purchase-eligible locations.
func (s *Scout) CurrentLocation() *string { return s.ship.Location() }

func (s *Scout) Reset(ctx context.Context) error {
	for _, item := range s.ship.Cargo().Items() {
		if _, err := s.deps.API.JettisonCargo(ctx, s.deps.Token, s.ship.ID(), item.Good, item.Quantity); err != nil {
			return err
		}
	}
	emptyCargo, err := ship.NewCargo(s.ship.MaxCargo(), nil)
	if err != nil {
		return err
	}
	s.ship = s.ship.WithCargo(emptyCargo)
	s.state = ScoutInitializeShip
	s.activePlan = nil
	return nil
}

func (sc *Scout) Step(ctx context.Context) (StepOutcome, error) {
	switch sc.state {
	case ScoutInitializeShip:
		return sc.stepInitializeShip(ctx)
	case ScoutCheckLocation:
		return sc.stepCheckLocation(ctx)
	case ScoutMoveToLocationEnsureFuel:
		return sc.stepMoveToLocationEnsureFuel(ctx)
	case ScoutMoveToLocationCreatePlan:
		return sc.stepMoveToLocationCreatePlan(ctx)
	case ScoutWaitForArrival:
		return sc.stepWaitForArrival(ctx)
	case ScoutHarvestMarketData:
		return sc.stepHarvestMarketData(ctx)
	case ScoutWait:
		return sc.stepWait(ctx)
	default:
		return NoneOutcome(), nil
	}
}

func (sc *Scout) stepInitializeShip(ctx context.Context) (StepOutcome, error) {
	if sc.ship.IsInTransit() {
		plan, err := sc.deps.DB.ActiveFlightPlan(ctx, sc.ship.ID())
		if err != nil {
			return NoneOutcome(), err
		}
		sc.activePlan = plan
		sc.state = ScoutWaitForArrival
		return NoneOutcome(), nil
	}

	updated, earned, err := sellAllCargo(ctx, sc.deps, sc.ship, *sc.ship.Location())
	if err != nil {
		return NoneOutcome(), err
	}
	sc.ship = updated
	sc.state = ScoutCheckLocation
	if earned != 0 {
		return CreditsChangedOutcome(earned), nil
	}
	return NoneOutcome(), nil
}

func (sc *Scout) stepCheckLocation(ctx context.Context) (StepOutcome, error) {
	if *sc.ship.Location() == sc.assignedLocation {
		sc.state = ScoutHarvestMarketData
	} else {
		sc.state = ScoutMoveToLocationEnsureFuel
	}
	return NoneOutcome(), nil
}

func (sc *Scout) stepMoveToLocationEnsureFuel(ctx context.Context) (StepOutcome, error) {
	need, err := additionalFuelRequired(ctx, sc.deps, *sc.ship.Location(), sc.assignedLocation, sc.ship)
	if err != nil {
		return NoneOutcome(), err
	}
	updated, err := buyFuelIfNeeded(ctx, sc.deps, sc.ship, need, *sc.ship.Location())
	if err != nil {
		return NoneOutcome(), err
	}
	sc.ship = updated
	sc.state = ScoutMoveToLocationCreatePlan
	return NoneOutcome(), nil
}

func (sc *Scout) stepMoveToLocationCreatePlan(ctx context.Context) (StepOutcome, error) {
	resp, err := sc.deps.API.CreateFlightPlan(ctx, sc.deps.Token, sc.ship.ID(), sc.assignedLocation)
	if err != nil {
		return NoneOutcome(), err
	}
	plan, cargo, err := applyFlightPlan(sc.deps, sc.ship, resp)
	if err != nil {
		return NoneOutcome(), err
	}
	if err := sc.deps.DB.AppendFlightPlan(ctx, sc.deps.UserID, sc.ship.ID(), plan); err != nil {
		return NoneOutcome(), err
	}
	sc.ship = sc.ship.WithCargo(cargo).WithLocation(nil)
	sc.activePlan = plan
	sc.state = ScoutWaitForArrival
	return NoneOutcome(), nil
}

func (sc *Scout) stepWaitForArrival(ctx context.Context) (StepOutcome, error) {
	if sc.activePlan == nil || !sc.activePlan.IsActive(sc.deps.Clock.Now()) {
		dest := sc.assignedLocation
		if sc.activePlan != nil {
			dest = sc.activePlan.Destination
		}
		sc.ship = sc.ship.WithLocation(&dest)
		sc.activePlan = nil
		sc.state = ScoutCheckLocation
	}
	return NoneOutcome(), nil
}

func (sc *Scout) stepHarvestMarketData(ctx context.Context) (StepOutcome, error) {
	resp, err := sc.deps.API.GetMarketplace(ctx, sc.deps.Token, sc.assignedLocation)
	if err != nil {
		return NoneOutcome(), err
	}
	now := sc.deps.Clock.Now()
	for _, good := range resp.Location.Marketplace {
		snapshot, err := market.New(sc.assignedLocation, good.Symbol, good.PricePerUnit, good.PurchasePricePerUnit, good.SellPricePerUnit, good.VolumePerUnit, good.QuantityAvailable, now)
		if err != nil {
			return NoneOutcome(), err
		}
		if err := sc.deps.DB.AppendMarketSnapshot(ctx, sc.assignedLocation, snapshot); err != nil {
			return NoneOutcome(), err
		}
	}
	sc.nextHarvestAt = now.Add(harvestInterval)
	sc.state = ScoutWait
	return NoneOutcome(), nil
}

func (sc *Scout) stepWait(ctx context.Context) (StepOutcome, error) {
	if !sc.deps.Clock.Now().Before(sc.nextHarvestAt) {
		sc.state = ScoutHarvestMarketData
	}
	return NoneOutcome(), nil
}
