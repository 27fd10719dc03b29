package shipmachine

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ship"
)

// fuelShortfallPattern extracts N from the remote API's
// "You require N more FUEL" error message, per spec.md §4.4's
// additional_fuel_required probing step.
var fuelShortfallPattern = regexp.MustCompile(`You require (\d+) more FUEL`)

// currentFuel grounds spec.md §4.4's current_fuel(ship) primitive.
func currentFuel(s *ship.Ship) int {
	return s.CurrentFuel()
}

// additionalFuelRequired implements spec.md §4.4's two-path algorithm:
// consult history first, else provoke the remote API and parse its error.
func additionalFuelRequired(ctx context.Context, deps *Deps, origin, destination string, s *ship.Ship) (int, error) {
	fuelConsumed, found, err := deps.DB.GetFuelRequired(ctx, origin, destination, s.ShipType())
	if err != nil {
		return 0, err
	}
	if found {
		need := fuelConsumed - currentFuel(s)
		if need < 0 {
			need = 0
		}
		return need, nil
	}

	_, err = deps.API.CreateFlightPlan(ctx, deps.Token, s.ID(), destination)
	if err == nil {
		return 0, shared.NewShipError("fuel probe flight plan unexpectedly succeeded with low fuel")
	}
	var clientErr *api.ClientError
	if errors.As(err, &clientErr) && clientErr.Kind == api.ApiError {
		if m := fuelShortfallPattern.FindStringSubmatch(clientErr.Message); m != nil {
			n, parseErr := strconv.Atoi(m[1])
			if parseErr == nil {
				return n, nil
			}
		}
	}
	return 0, err
}

// buyFuelIfNeeded issues a purchase order for min(additionalRequired,
// spaceAvailable) units of Fuel, records the transaction, and returns the
// ship snapshot reflecting the purchase. No-op (ship unchanged) if zero
// units are needed.
func buyFuelIfNeeded(ctx context.Context, deps *Deps, s *ship.Ship, additionalRequired int, locationSymbol string) (*ship.Ship, error) {
	if additionalRequired <= 0 {
		return s, nil
	}
	quantity := additionalRequired
	if space := s.SpaceAvailable(); quantity > space {
		quantity = space
	}
	if quantity <= 0 {
		return s, nil
	}

	order, err := deps.API.CreatePurchaseOrder(ctx, deps.Token, s.ID(), ship.FuelGood, quantity)
	if err != nil {
		return nil, err
	}

	if err := deps.DB.AppendTransaction(ctx, deps.UserID, s.ID(), ledger.TransactionTypeRefuel, ship.FuelGood, order.Order.PricePerUnit, order.Order.Quantity, order.Order.Total, locationSymbol); err != nil {
		return nil, err
	}

	cargo, err := s.Cargo().WithReceived(ship.FuelGood, order.Order.Quantity, 1)
	if err != nil {
		return nil, err
	}
	return s.WithCargo(cargo), nil
}

// sellAllCargo issues one sell order per non-Fuel good currently held,
// returning the updated ship and the total credits earned.
func sellAllCargo(ctx context.Context, deps *Deps, s *ship.Ship, locationSymbol string) (*ship.Ship, int, error) {
	total := 0
	for _, item := range s.Cargo().Items() {
		if item.Good == ship.FuelGood || item.Quantity == 0 {
			continue
		}
		order, err := deps.API.CreateSellOrder(ctx, deps.Token, s.ID(), item.Good, item.Quantity)
		if err != nil {
			return s, total, err
		}
		if err := deps.DB.AppendTransaction(ctx, deps.UserID, s.ID(), ledger.TransactionTypeSellCargo, item.Good, order.Order.PricePerUnit, order.Order.Quantity, order.Order.Total, locationSymbol); err != nil {
			return s, total, err
		}
		cargo, err := s.Cargo().WithRemoved(item.Good, order.Order.Quantity)
		if err != nil {
			return s, total, err
		}
		s = s.WithCargo(cargo)
		total += order.Order.Total
	}
	return s, total, nil
}
