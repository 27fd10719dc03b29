package shipmachine

import (
	"context"
	"math/rand"

	"github.com/andrescamacho/spacetraders-go/internal/domain/flightplan"
	"github.com/andrescamacho/spacetraders-go/internal/domain/routing"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ship"
)

// TraderState enumerates spec.md §4.4a's named states. The fuel-then-plan
// sequences inside MoveToRandomLocation and ExecuteTrade are split into
// sub-states (ensure fuel, then for ExecuteTrade purchase, then create plan)
// so buying fuel and creating the flight plan happen in separate Step calls.
// A single Step can still make several calls: PickBestTrade sells every
// cargo line before reading routes, and an ensure-fuel step may probe the
// remote API and then buy fuel.
type TraderState int

const (
	TraderInitializeShip TraderState = iota
	TraderWaitForArrival
	TraderPickBestTrade
	TraderMoveToRandomLocationEnsureFuel
	TraderMoveToRandomLocationCreatePlan
	TraderExecuteTradeEnsureFuel
	TraderExecuteTradePurchase
	TraderExecuteTradeCreatePlan
)

// Trader implements the arbitrage loop: buy low, fly, sell high, repeat;
// morphs into SystemTransfer when its ship strays from its owner's home
// system.
type Trader struct {
	deps  *Deps
	state TraderState
	ship  *ship.Ship

	activePlan  *flightplan.FlightPlan
	destination string
	route       *routing.Route
}

// NewTrader constructs a Trader for a freshly bootstrapped ship.
func NewTrader(deps *Deps, s *ship.Ship) *Trader {
	return &Trader{deps: deps, state: TraderInitializeShip, ship: s}
}

func (t *Trader) ShipID() string { return t.deps.ShipSymbol }

// CurrentLocation reports the ship's last known docked location, nil while
// in transit. Used by UserAgent to find purchase-eligible locations.
func (t *Trader) CurrentLocation() *string { return t.ship.Location() }

// Reset jettisons all cargo and returns to InitializeShip, per spec.md §4.4d.
func (t *Trader) Reset(ctx context.Context) error {
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
	t.state = TraderInitializeShip
	t.activePlan = nil
	t.route = nil
	return nil
}

func (t *Trader) Step(ctx context.Context) (StepOutcome, error) {
	switch t.state {
	case TraderInitializeShip:
		return t.stepInitializeShip(ctx)
	case TraderWaitForArrival:
		return t.stepWaitForArrival(ctx)
	case TraderPickBestTrade:
		return t.stepPickBestTrade(ctx)
	case TraderMoveToRandomLocationEnsureFuel:
		return t.stepMoveToRandomLocationEnsureFuel(ctx)
	case TraderMoveToRandomLocationCreatePlan:
		return t.stepMoveToRandomLocationCreatePlan(ctx)
	case TraderExecuteTradeEnsureFuel:
		return t.stepExecuteTradeEnsureFuel(ctx)
	case TraderExecuteTradePurchase:
		return t.stepExecuteTradePurchase(ctx)
	case TraderExecuteTradeCreatePlan:
		return t.stepExecuteTradeCreatePlan(ctx)
	default:
		return NoneOutcome(), nil
	}
}

func (t *Trader) stepInitializeShip(ctx context.Context) (StepOutcome, error) {
	if t.ship.IsInTransit() {
		plan, err := t.deps.DB.ActiveFlightPlan(ctx, t.ship.ID())
		if err != nil {
			return NoneOutcome(), err
		}
		t.activePlan = plan
		t.state = TraderWaitForArrival
		return NoneOutcome(), nil
	}

	updated, earned, err := sellAllCargo(ctx, t.deps, t.ship, *t.ship.Location())
	if err != nil {
		return NoneOutcome(), err
	}
	t.ship = updated
	t.state = TraderPickBestTrade
	if earned != 0 {
		return CreditsChangedOutcome(earned), nil
	}
	return NoneOutcome(), nil
}

func (t *Trader) stepWaitForArrival(ctx context.Context) (StepOutcome, error) {
	if t.activePlan == nil || !t.activePlan.IsActive(t.deps.Clock.Now()) {
		dest := t.destination
		if t.activePlan != nil {
			dest = t.activePlan.Destination
		}
		t.ship = t.ship.WithLocation(&dest)
		t.activePlan = nil
		t.state = TraderPickBestTrade
	}
	return NoneOutcome(), nil
}

func (t *Trader) stepPickBestTrade(ctx context.Context) (StepOutcome, error) {
	updated, earned, err := sellAllCargo(ctx, t.deps, t.ship, *t.ship.Location())
	if err != nil {
		return NoneOutcome(), err
	}
	t.ship = updated

	row, err := t.deps.DB.GetShipRow(ctx, t.deps.UserID, t.ship.ID())
	if err != nil {
		return NoneOutcome(), err
	}
	if row.HomeSystem != t.deps.System {
		return MorphOutcome(NewSystemTransfer(t.deps, t.ship)), nil
	}

	origin, err := t.deps.DB.GetLocation(ctx, *t.ship.Location())
	if err != nil {
		return NoneOutcome(), err
	}
	routes, err := t.deps.DB.RoutesFrom(ctx, origin, t.ship.Speed())
	if err != nil {
		return NoneOutcome(), err
	}
	best, ok := routing.SelectForTrader(routes, t.deps.ExcludedSink, t.deps.MinPurchaseQuantity)
	if ok {
		t.route = best
		t.state = TraderExecuteTradeEnsureFuel
	} else {
		t.state = TraderMoveToRandomLocationEnsureFuel
	}
	if earned != 0 {
		return CreditsChangedOutcome(earned), nil
	}
	return NoneOutcome(), nil
}

func (t *Trader) stepMoveToRandomLocationEnsureFuel(ctx context.Context) (StepOutcome, error) {
	candidates, err := t.deps.DB.LocationsInSystemOf(ctx, *t.ship.Location())
	if err != nil {
		return NoneOutcome(), err
	}
	others := make([]string, 0, len(candidates))
	for _, symbol := range candidates {
		if symbol != *t.ship.Location() {
			others = append(others, symbol)
		}
	}
	if len(others) == 0 {
		t.state = TraderPickBestTrade
		return NoneOutcome(), nil
	}
	t.destination = others[rand.Intn(len(others))]

	need, err := additionalFuelRequired(ctx, t.deps, *t.ship.Location(), t.destination, t.ship)
	if err != nil {
		return NoneOutcome(), err
	}
	updated, err := buyFuelIfNeeded(ctx, t.deps, t.ship, need, *t.ship.Location())
	if err != nil {
		return NoneOutcome(), err
	}
	t.ship = updated
	t.state = TraderMoveToRandomLocationCreatePlan
	return NoneOutcome(), nil
}

func (t *Trader) stepMoveToRandomLocationCreatePlan(ctx context.Context) (StepOutcome, error) {
	resp, err := t.deps.API.CreateFlightPlan(ctx, t.deps.Token, t.ship.ID(), t.destination)
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
	t.state = TraderWaitForArrival
	return NoneOutcome(), nil
}

func (t *Trader) stepExecuteTradeEnsureFuel(ctx context.Context) (StepOutcome, error) {
	if t.route == nil {
		t.state = TraderPickBestTrade
		return NoneOutcome(), nil
	}
	need, err := additionalFuelRequired(ctx, t.deps, t.route.PurchaseLocation, t.route.SellLocation, t.ship)
	if err != nil {
		return NoneOutcome(), err
	}
	updated, err := buyFuelIfNeeded(ctx, t.deps, t.ship, need, t.route.PurchaseLocation)
	if err != nil {
		return NoneOutcome(), err
	}
	t.ship = updated
	t.state = TraderExecuteTradePurchase
	return NoneOutcome(), nil
}

func (t *Trader) stepExecuteTradePurchase(ctx context.Context) (StepOutcome, error) {
	if t.route == nil {
		t.state = TraderPickBestTrade
		return NoneOutcome(), nil
	}
	volume := t.route.VolumePerUnit
	if volume <= 0 {
		volume = 1
	}
	quantity := t.ship.SpaceAvailable() / volume
	if quantity <= 0 {
		t.route = nil
		t.state = TraderPickBestTrade
		return NoneOutcome(), nil
	}

	order, err := t.deps.API.CreatePurchaseOrder(ctx, t.deps.Token, t.ship.ID(), t.route.Good, quantity)
	if err != nil {
		t.route = nil
		t.state = TraderPickBestTrade
		return NoneOutcome(), nil
	}
	if err := t.deps.DB.AppendTransaction(ctx, t.deps.UserID, t.ship.ID(), purchaseCargoType, t.route.Good, order.Order.PricePerUnit, order.Order.Quantity, order.Order.Total, t.route.PurchaseLocation); err != nil {
		return NoneOutcome(), err
	}
	cargo, err := t.ship.Cargo().WithReceived(t.route.Good, order.Order.Quantity, volume)
	if err != nil {
		return NoneOutcome(), err
	}
	t.ship = t.ship.WithCargo(cargo)
	t.state = TraderExecuteTradeCreatePlan
	return CreditsChangedOutcome(-order.Order.Total), nil
}

func (t *Trader) stepExecuteTradeCreatePlan(ctx context.Context) (StepOutcome, error) {
	if t.route == nil {
		t.state = TraderPickBestTrade
		return NoneOutcome(), nil
	}
	sellLocation := t.route.SellLocation
	resp, err := t.deps.API.CreateFlightPlan(ctx, t.deps.Token, t.ship.ID(), sellLocation)
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
	t.route = nil
	t.state = TraderWaitForArrival
	return NoneOutcome(), nil
}
