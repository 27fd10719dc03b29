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

// TestSystemTransfer_WarpsThenMorphsBackToTrader covers scenario 4's full
// arc: sell cargo, fly to the wormhole, warp, then morph back into a
// Trader once the warp arrives.
func TestSystemTransfer_WarpsThenMorphsBackToTrader(t *testing.T) {
	arrival := time.Now().Add(5 * time.Minute)
	fa := &fakeAPI{
		flightPlanResp: &api.FlightPlanResponse{
			FlightPlan: api.FlightPlanData{
				ID: "FP-1", ShipID: "SHIP-1", Origin: "X1-AB-A1", Destination: "X1-AB-WORM",
				Distance: 10, FuelConsumed: 5, FuelRemaining: 10, TimeRemainingInSeconds: 300,
				ArrivesAt: arrival.Format(time.RFC3339),
				CreatedAt: time.Now().Format(time.RFC3339),
			},
		},
		warpResp: &api.WarpJumpResponse{
			FlightPlan: api.FlightPlanData{
				ID: "FP-2", ShipID: "SHIP-1", Origin: "X1-AB-WORM", Destination: "X1-ZZ-HOME",
				Distance: 1, FuelConsumed: 10, FuelRemaining: 0, TimeRemainingInSeconds: 600,
				ArrivesAt: arrival.Add(10 * time.Minute).Format(time.RFC3339),
				CreatedAt: time.Now().Format(time.RFC3339),
			},
		},
		purchaseResp: &api.OrderResponse{
			Order: api.OrderData{Good: "FUEL", Quantity: 15, PricePerUnit: 2, Total: 30},
		},
	}
	fs := &fakeStore{
		fuelRequired:   15,
		fuelRequiredOK: true,
		wormhole:       "X1-AB-WORM",
	}
	clock := shared.NewMockClock(time.Now())
	deps := newTestDeps(fa, fs, clock)
	transfer := shipmachine.NewSystemTransfer(deps, newTestShip(t, "X1-AB-A1"))

	_, err := transfer.Step(context.Background()) // initialize
	require.NoError(t, err)
	_, err = transfer.Step(context.Background()) // ensure fuel (sells cargo, buys fuel)
	require.NoError(t, err)
	_, err = transfer.Step(context.Background()) // create plan to wormhole
	require.NoError(t, err)
	assert.Equal(t, 1, fa.flightPlanCalls)

	clock.SetTime(arrival.Add(time.Second))
	_, err = transfer.Step(context.Background()) // wait for arrival: now arrived
	require.NoError(t, err)

	_, err = transfer.Step(context.Background()) // warp
	require.NoError(t, err)

	clock.SetTime(arrival.Add(11 * time.Minute))
	outcome, err := transfer.Step(context.Background()) // wait for warp: arrived, morph
	require.NoError(t, err)
	assert.Equal(t, shipmachine.OutcomeMorph, outcome.Kind)
	_, isTrader := outcome.Next.(*shipmachine.Trader)
	assert.True(t, isTrader)
}
