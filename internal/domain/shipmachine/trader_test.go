package shipmachine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-go/internal/domain/location"
	"github.com/andrescamacho/spacetraders-go/internal/domain/routing"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ship"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shipmachine"
)

func newTestShip(t *testing.T, loc string) *ship.Ship {
	t.Helper()
	s, err := ship.New("SHIP-1", 1, "JW-MK-I", "MK-I", 100, 3, "Jackshaw", 10, 5, "X1-AB", &loc, nil)
	require.NoError(t, err)
	return s
}

func newTestDeps(api shipmachine.RemoteAPI, store shipmachine.Store, clock shared.Clock) *shipmachine.Deps {
	return &shipmachine.Deps{
		API:                 api,
		DB:                  store,
		Clock:               clock,
		Token:               "tok",
		UserID:              1,
		ShipSymbol:          "SHIP-1",
		System:              "X1-AB",
		ExcludedSink:        "",
		MinPurchaseQuantity: routing.DefaultMinPurchaseQuantity,
	}
}

// TestTrader_RejectsRouteBelowMinPurchaseQuantity covers scenario 3: a
// purchase_quantity=300 route is skipped in favor of the next candidate
// once it clears the 500-unit minimum, per spec.md §8.
func TestTrader_RejectsRouteBelowMinPurchaseQuantity(t *testing.T) {
	origin := location.New("X1-AB", "X1-AB-A1", location.TypePlanet, 0, 0, "A1")
	fa := &fakeAPI{}
	fs := &fakeStore{
		shipRow:        &persistence.ShipRow{HomeSystem: "X1-AB"},
		fuelRequired:   0,
		fuelRequiredOK: true,
		routes: []routing.Route{
			{PurchaseLocation: "X1-AB-A1", SellLocation: "X1-AB-B1", Good: "FUEL_ORE", PurchaseQuantity: 300, PSVD: 10, VolumePerUnit: 1},
			{PurchaseLocation: "X1-AB-A1", SellLocation: "X1-AB-C1", Good: "METALS", PurchaseQuantity: 600, PSVD: 5, VolumePerUnit: 1},
		},
		locations: map[string]location.Location{"X1-AB-A1": origin},
	}
	clock := shared.NewMockClock(time.Now())
	deps := newTestDeps(fa, fs, clock)
	trader := shipmachine.NewTrader(deps, newTestShip(t, "X1-AB-A1"))

	// stepInitializeShip: no cargo to sell, advances to pick-best-trade.
	_, err := trader.Step(context.Background())
	require.NoError(t, err)

	_, err = trader.Step(context.Background())
	require.NoError(t, err)

	// Next step must proceed to fuel-ensure for the trade (meaning the
	// METALS route, not the FUEL_ORE one, was selected), not fall back to
	// random movement.
	outcome, err := trader.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, shipmachine.OutcomeNone, outcome.Kind)
	assert.Equal(t, 0, fa.flightPlanCalls, "ensure-fuel step must not create a flight plan yet")
}

// TestTrader_MorphsToSystemTransferWhenAwayFromHome covers scenario 4: a
// ship whose home system no longer matches its assignment morphs out of
// Trader on its very next PickBestTrade step.
func TestTrader_MorphsToSystemTransferWhenAwayFromHome(t *testing.T) {
	fa := &fakeAPI{}
	fs := &fakeStore{
		shipRow: &persistence.ShipRow{HomeSystem: "X1-ZZ"},
	}
	clock := shared.NewMockClock(time.Now())
	deps := newTestDeps(fa, fs, clock)
	trader := shipmachine.NewTrader(deps, newTestShip(t, "X1-AB-A1"))

	_, err := trader.Step(context.Background())
	require.NoError(t, err)

	outcome, err := trader.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, shipmachine.OutcomeMorph, outcome.Kind)
	require.NotNil(t, outcome.Next)
	_, isSystemTransfer := outcome.Next.(*shipmachine.SystemTransfer)
	assert.True(t, isSystemTransfer)
}

// TestTrader_PurchaseStepEmitsNegativeCreditsDelta covers the purchase leg
// of scenario 1: buying cargo reports a CreditsChanged outcome with the
// spent amount, and no flight plan is created in the same step.
func TestTrader_PurchaseStepEmitsNegativeCreditsDelta(t *testing.T) {
	origin := location.New("X1-AB", "X1-AB-A1", location.TypePlanet, 0, 0, "A1")
	fa := &fakeAPI{
		purchaseResp: &api.OrderResponse{
			Order: api.OrderData{Good: "METALS", Quantity: 10, PricePerUnit: 5, Total: 50},
		},
	}
	fs := &fakeStore{
		shipRow:        &persistence.ShipRow{HomeSystem: "X1-AB"},
		fuelRequired:   0,
		fuelRequiredOK: true,
		routes: []routing.Route{
			{PurchaseLocation: "X1-AB-A1", SellLocation: "X1-AB-B1", Good: "METALS", PurchaseQuantity: 600, PSVD: 5, VolumePerUnit: 1},
		},
		locations: map[string]location.Location{"X1-AB-A1": origin},
	}
	clock := shared.NewMockClock(time.Now())
	deps := newTestDeps(fa, fs, clock)
	trader := shipmachine.NewTrader(deps, newTestShip(t, "X1-AB-A1"))

	_, err := trader.Step(context.Background()) // initialize
	require.NoError(t, err)
	_, err = trader.Step(context.Background()) // pick best trade
	require.NoError(t, err)
	_, err = trader.Step(context.Background()) // ensure fuel
	require.NoError(t, err)

	outcome, err := trader.Step(context.Background()) // purchase
	require.NoError(t, err)
	assert.Equal(t, shipmachine.OutcomeCreditsChanged, outcome.Kind)
	assert.Equal(t, -50, outcome.Delta)
	assert.Equal(t, 0, fa.flightPlanCalls)
	assert.Len(t, fs.transactions, 1)
}
