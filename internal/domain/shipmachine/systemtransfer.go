package shipmachine

import (
	"context"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/domain/flightplan"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ship"
)

// SystemTransferState enumerates spec.md §4.4c's named states, MoveToWormhole
// split into an ensure-fuel and a create-plan sub-state, as in Trader, so
// buying fuel and creating the flight plan happen in separate steps.
type SystemTransferState int

const (
	SystemTransferInitializeShip SystemTransferState = iota
	SystemTransferMoveToWormholeEnsureFuel
	SystemTransferMoveToWormholeCreatePlan
	SystemTransferWaitForArrivalAtWormhole
	SystemTransferWarp
	SystemTransferWaitForWarp
)

// SystemTransfer relocates a ship to its owner's home system via the
// wormhole WormholeFrom resolves in the current system for that target (no
// distance comparison is made), then morphs back into a Trader on arrival.
type SystemTransfer struct {
	deps  *Deps
	state SystemTransferState
	ship  *ship.Ship

	wormhole   string
	activePlan *flightplan.FlightPlan
	warpPlan   *flightplan.FlightPlan
}

// NewSystemTransfer constructs a SystemTransfer carrying over a Trader's
// ship and identity, per spec.md §9's "conversion function, not bidirectional
// reference" note.
func NewSystemTransfer(deps *Deps, s *ship.Ship) *SystemTransfer {
	return &SystemTransfer{deps: deps, state: SystemTransferInitializeShip, ship: s}
}

func (t *SystemTransfer) ShipID() string { return t.deps.ShipSymbol }

// CurrentLocation reports the ship's last known docked location, nil while
// in transit. Used by UserAgent to find purchase-eligible locations.
func (t *SystemTransfer) CurrentLocation() *string { return t.ship.Location() }

func (t *SystemTransfer) Reset(ctx context.Context) error {
	for _, item := range t.ship.Cargo().Items() {
		if _, err := t.deps.API.JettisonCargo(ctx, t.deps.Token, t.ship.ID(), item.Good, item.Quantity); err != nil {
			return err
		}
	}
	emptyCargo, err := ship.NewCargo(t.ship.MaxCargo(), nil)
	if err != nil {
		return err
	}
	t.ship = t.ship.WithCargo(emptyCargo)
	t.state = SystemTransferInitializeShip
	t.activePlan = nil
	t.warpPlan = nil
	return nil
}

func (t *SystemTransfer) Step(ctx context.Context) (StepOutcome, error) {
	switch t.state {
	case SystemTransferInitializeShip:
		return t.stepInitializeShip(ctx)
	case SystemTransferMoveToWormholeEnsureFuel:
		return t.stepMoveToWormholeEnsureFuel(ctx)
	case SystemTransferMoveToWormholeCreatePlan:
		return t.stepMoveToWormholeCreatePlan(ctx)
	case SystemTransferWaitForArrivalAtWormhole:
		return t.stepWaitForArrivalAtWormhole(ctx)
	case SystemTransferWarp:
		return t.stepWarp(ctx)
	case SystemTransferWaitForWarp:
		return t.stepWaitForWarp(ctx)
	default:
		return NoneOutcome(), nil
	}
}

func (t *SystemTransfer) stepInitializeShip(ctx context.Context) (StepOutcome, error) {
	if t.ship.IsInTransit() {
		plan, err := t.deps.DB.ActiveFlightPlan(ctx, t.ship.ID())
		if err != nil {
			return NoneOutcome(), err
		}
		t.activePlan = plan
		t.state = SystemTransferWaitForArrivalAtWormhole
		return NoneOutcome(), nil
	}
	t.state = SystemTransferMoveToWormholeEnsureFuel
	return NoneOutcome(), nil
}

func (t *SystemTransfer) stepMoveToWormholeEnsureFuel(ctx context.Context) (StepOutcome, error) {
	updated, earned, err := sellAllCargo(ctx, t.deps, t.ship, *t.ship.Location())
	if err != nil {
		return NoneOutcome(), err
	}
	t.ship = updated

	wormhole, err := t.deps.DB.WormholeFrom(ctx, *t.ship.Location(), t.deps.System)
	if err != nil {
		return NoneOutcome(), err
	}
	t.wormhole = wormhole

	need, err := additionalFuelRequired(ctx, t.deps, *t.ship.Location(), t.wormhole, t.ship)
	if err != nil {
		return NoneOutcome(), err
	}
	fueled, err := buyFuelIfNeeded(ctx, t.deps, t.ship, need, *t.ship.Location())
	if err != nil {
		return NoneOutcome(), err
	}
	t.ship = fueled
	t.state = SystemTransferMoveToWormholeCreatePlan
	if earned != 0 {
		return CreditsChangedOutcome(earned), nil
	}
	return NoneOutcome(), nil
}

func (t *SystemTransfer) stepMoveToWormholeCreatePlan(ctx context.Context) (StepOutcome, error) {
	resp, err := t.deps.API.CreateFlightPlan(ctx, t.deps.Token, t.ship.ID(), t.wormhole)
	if err != nil {
		return NoneOutcome(), err
	}
	plan, cargo, err := applyFlightPlan(t.deps, t.ship, resp)
	if err != nil {
		return NoneOutcome(), err
	}
	if err := t.deps.DB.AppendFlightPlan(ctx, t.deps.UserID, t.ship.ID(), plan); err != nil {
		return NoneOutcome(), err
	}
	t.ship = t.ship.WithCargo(cargo).WithLocation(nil)
	t.activePlan = plan
	t.state = SystemTransferWaitForArrivalAtWormhole
	return NoneOutcome(), nil
}

func (t *SystemTransfer) stepWaitForArrivalAtWormhole(ctx context.Context) (StepOutcome, error) {
	if t.activePlan == nil || !t.activePlan.IsActive(t.deps.Clock.Now()) {
		dest := t.wormhole
		if t.activePlan != nil {
			dest = t.activePlan.Destination
		}
		t.ship = t.ship.WithLocation(&dest)
		t.activePlan = nil
		t.state = SystemTransferWarp
	}
	return NoneOutcome(), nil
}

func (t *SystemTransfer) stepWarp(ctx context.Context) (StepOutcome, error) {
	resp, err := t.deps.API.AttemptWarpJump(ctx, t.deps.Token, t.ship.ID())
	if err != nil {
		return NoneOutcome(), err
	}
	plan, cargo, err := applyFlightPlan(t.deps, t.ship, &api.FlightPlanResponse{FlightPlan: resp.FlightPlan})
	if err != nil {
		return NoneOutcome(), err
	}
	if err := t.deps.DB.AppendFlightPlan(ctx, t.deps.UserID, t.ship.ID(), plan); err != nil {
		return NoneOutcome(), err
	}
	t.ship = t.ship.WithCargo(cargo).WithLocation(nil)
	t.warpPlan = plan
	t.state = SystemTransferWaitForWarp
	return NoneOutcome(), nil
}

func (t *SystemTransfer) stepWaitForWarp(ctx context.Context) (StepOutcome, error) {
	if t.warpPlan == nil || !t.warpPlan.IsActive(t.deps.Clock.Now()) {
		dest := t.deps.System
		if t.warpPlan != nil {
			dest = t.warpPlan.Destination
		}
		t.ship = t.ship.WithLocation(&dest)
		return MorphOutcome(NewTrader(t.deps, t.ship)), nil
	}
	return NoneOutcome(), nil
}
