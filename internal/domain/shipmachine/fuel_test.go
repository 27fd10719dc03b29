package shipmachine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shipmachine"
)

// TestScout_BuysFuelOnlyWhenHistoryShowsAShortfall covers scenario 1: a
// known-zero shortfall results in no purchase order at all.
func TestScout_BuysFuelOnlyWhenHistoryShowsAShortfall(t *testing.T) {
	fa := &fakeAPI{}
	fs := &fakeStore{fuelRequired: 0, fuelRequiredOK: true}
	clock := shared.NewMockClock(time.Now())
	deps := newTestDeps(fa, fs, clock)
	scout := shipmachine.NewScout(deps, newTestShip(t, "X1-AB-A1"), "X1-AB-B1")

	_, err := scout.Step(context.Background()) // initialize
	require.NoError(t, err)
	_, err = scout.Step(context.Background()) // check location
	require.NoError(t, err)
	_, err = scout.Step(context.Background()) // ensure fuel
	require.NoError(t, err)

	assert.Equal(t, 0, fa.purchaseCalls)
}

// TestScout_BuysExactShortfallWhenHistoryShowsOne covers scenario 1's other
// half: a known positive shortfall results in exactly one purchase order
// sized to the shortfall.
func TestScout_BuysExactShortfallWhenHistoryShowsOne(t *testing.T) {
	fa := &fakeAPI{
		purchaseResp: &api.OrderResponse{
			Order: api.OrderData{Good: "FUEL", Quantity: 8, PricePerUnit: 2, Total: 16},
		},
	}
	fs := &fakeStore{fuelRequired: 8, fuelRequiredOK: true}
	clock := shared.NewMockClock(time.Now())
	deps := newTestDeps(fa, fs, clock)
	scout := shipmachine.NewScout(deps, newTestShip(t, "X1-AB-A1"), "X1-AB-B1")

	_, err := scout.Step(context.Background()) // initialize
	require.NoError(t, err)
	_, err = scout.Step(context.Background()) // check location
	require.NoError(t, err)
	_, err = scout.Step(context.Background()) // ensure fuel
	require.NoError(t, err)

	assert.Equal(t, 1, fa.purchaseCalls)
	assert.Len(t, fs.transactions, 1)
}

// TestScout_ProbesRemoteAPIWhenHistoryIsUnknown covers the no-history path:
// additional_fuel_required provokes a flight plan attempt and parses the
// shortfall out of the "You require N more FUEL" error message.
func TestScout_ProbesRemoteAPIWhenHistoryIsUnknown(t *testing.T) {
	fa := &fakeAPI{
		flightPlanErr: api.NewAPIError(4203, "You require 12 more FUEL to make this flight"),
		purchaseResp: &api.OrderResponse{
			Order: api.OrderData{Good: "FUEL", Quantity: 12, PricePerUnit: 2, Total: 24},
		},
	}
	fs := &fakeStore{fuelRequiredOK: false}
	clock := shared.NewMockClock(time.Now())
	deps := newTestDeps(fa, fs, clock)
	scout := shipmachine.NewScout(deps, newTestShip(t, "X1-AB-A1"), "X1-AB-B1")

	_, err := scout.Step(context.Background()) // initialize
	require.NoError(t, err)
	_, err = scout.Step(context.Background()) // check location
	require.NoError(t, err)
	_, err = scout.Step(context.Background()) // ensure fuel: probes, then buys
	require.NoError(t, err)

	assert.Equal(t, 1, fa.flightPlanCalls, "probing the shortfall must attempt exactly one flight plan")
	assert.Equal(t, 1, fa.purchaseCalls)
}
