package useragent_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shipmachine"
	"github.com/andrescamacho/spacetraders-go/internal/domain/useragent"
)

func newTestAgent(remoteAPI *fakeRemoteAPI, store *fakeStore) *useragent.Agent {
	return useragent.NewAgent(remoteAPI, store, fakeShipAPI{}, fakeShipStore{}, shared.NewMockClock(time.Now()), "OE-XV-91-2", 500)
}

func TestAgent_BootstrapClaimsNewUsernameWhenUserNotFound(t *testing.T) {
	ra := &fakeRemoteAPI{
		claimResp: &api.ClaimUsernameResponse{Token: "tok-123"},
		myInfo:    &api.MyInfo{Username: "trader-1", Credits: 1000, ShipCount: 1},
		loans:     &api.LoansResponse{},
		myShips: &api.MyShipsResponse{Ships: []api.ShipData{
			{ID: "ship-1", Type: "JW-MK-I", Class: "MK-I", MaxCargo: 100, Speed: 3, Location: "X1-AB"},
		}},
	}
	st := &fakeStore{getUserErr: persistence.NewNotFoundError("user trader-1")}
	agent := newTestAgent(ra, st)

	err := agent.Bootstrap(context.Background(), "trader-1", useragent.AssignmentTrader, "X1-AB", nil)

	require.NoError(t, err)
	assert.Equal(t, 1, ra.claimCalls)
	assert.Equal(t, "tok-123", agent.Token)
	assert.Equal(t, 1000, agent.Credits)
	require.Len(t, agent.Machines, 1)
	_, isTrader := agent.Machines[0].(*shipmachine.Trader)
	assert.True(t, isTrader)
	assert.Equal(t, 1, st.upsertedShips)
}

func TestAgent_BootstrapReusesExistingTokenWithoutClaiming(t *testing.T) {
	ra := &fakeRemoteAPI{
		myInfo: &api.MyInfo{Username: "scout-1", Credits: 500},
		loans:  &api.LoansResponse{},
		myShips: &api.MyShipsResponse{Ships: []api.ShipData{
			{ID: "ship-2", Type: "JW-MK-I", Class: "MK-I", MaxCargo: 50, Speed: 5, Location: "X1-AB"},
		}},
	}
	st := &fakeStore{existingUser: &persistence.UserRow{ID: 7, Username: "scout-1", Token: "existing-tok"}}
	agent := newTestAgent(ra, st)

	loc := "X1-CD"
	err := agent.Bootstrap(context.Background(), "scout-1", useragent.AssignmentScout, "X1-AB", &loc)

	require.NoError(t, err)
	assert.Equal(t, 0, ra.claimCalls)
	assert.Equal(t, "existing-tok", agent.Token)
	require.Len(t, agent.Machines, 1)
	_, isScout := agent.Machines[0].(*shipmachine.Scout)
	assert.True(t, isScout)
}

func TestAgent_FirstOutstandingLoanFindsUnpaidLoan(t *testing.T) {
	ra := &fakeRemoteAPI{
		myInfo: &api.MyInfo{Credits: 100},
		loans: &api.LoansResponse{Loans: []api.Loan{
			{ID: "loan-1", Status: "PAID"},
			{ID: "loan-2", Status: "CURRENT"},
		}},
		myShips: &api.MyShipsResponse{},
	}
	st := &fakeStore{existingUser: &persistence.UserRow{ID: 1, Token: "tok"}}
	agent := newTestAgent(ra, st)
	require.NoError(t, agent.Bootstrap(context.Background(), "u1", useragent.AssignmentTrader, "X1-AB", nil))

	id, ok := agent.FirstOutstandingLoan()

	require.True(t, ok)
	assert.Equal(t, "loan-2", id)
}

func TestAgent_EnsureStartupLoanRequestsFirstAvailableTypeWhenBroke(t *testing.T) {
	ra := &fakeRemoteAPI{
		myInfo:         &api.MyInfo{Credits: 0},
		loans:          &api.LoansResponse{},
		myShips:        &api.MyShipsResponse{},
		availableLoans: &api.AvailableLoansResponse{Loans: []api.Loan{{Type: "STARTUP"}, {Type: "ENTERPRISE"}}},
		requestLoanResp: &api.RequestLoanResponse{
			Credits: 10000,
			Loan:    api.Loan{ID: "loan-9", Type: "STARTUP", Status: "CURRENT"},
		},
	}
	st := &fakeStore{existingUser: &persistence.UserRow{ID: 1, Token: "tok"}}
	agent := newTestAgent(ra, st)
	require.NoError(t, agent.Bootstrap(context.Background(), "u1", useragent.AssignmentTrader, "X1-AB", nil))

	err := agent.EnsureStartupLoan(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10000, agent.Credits)
	require.Len(t, agent.Loans, 1)
	assert.Equal(t, "loan-9", agent.Loans[0].ID)
}

func TestAgent_EnsureStartupLoanSkipsWhenAlreadyFunded(t *testing.T) {
	ra := &fakeRemoteAPI{
		myInfo:  &api.MyInfo{Credits: 5000},
		loans:   &api.LoansResponse{},
		myShips: &api.MyShipsResponse{},
	}
	st := &fakeStore{existingUser: &persistence.UserRow{ID: 1, Token: "tok"}}
	agent := newTestAgent(ra, st)
	require.NoError(t, agent.Bootstrap(context.Background(), "u1", useragent.AssignmentTrader, "X1-AB", nil))

	err := agent.EnsureStartupLoan(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, ra.claimCalls)
	assert.Empty(t, agent.Loans)
	assert.Equal(t, 5000, agent.Credits)
}

func TestAgent_PurchaseLargestShipSkipsUnaffordableAndRestrictedListings(t *testing.T) {
	ra := &fakeRemoteAPI{
		myInfo:  &api.MyInfo{Credits: 5000},
		loans:   &api.LoansResponse{},
		myShips: &api.MyShipsResponse{},
		forSale: &api.ShipsForSaleResponse{Ships: []api.ShipListing{
			{Type: "TOO-EXPENSIVE", MaxCargo: 500, Price: 999999, Location: "X1-AB"},
			{Type: "RESTRICTED", MaxCargo: 400, Price: 1000, Location: "X1-AB", RestrictedGoods: []string{"FUEL"}},
			{Type: "WRONG-LOCATION", MaxCargo: 300, Price: 1000, Location: "X1-ZZ"},
			{Type: "AFFORDABLE-SMALL", MaxCargo: 100, Price: 1000, Location: "X1-AB"},
			{Type: "AFFORDABLE-LARGE", MaxCargo: 200, Price: 2000, Location: "X1-AB"},
		}},
		purchaseResp: &api.PurchaseShipResponse{
			Credits: 3000,
			Ship:    api.ShipData{ID: "ship-new", Type: "AFFORDABLE-LARGE", MaxCargo: 200, Speed: 2, Location: "X1-AB"},
		},
	}
	st := &fakeStore{existingUser: &persistence.UserRow{ID: 1, Token: "tok"}}
	agent := newTestAgent(ra, st)
	require.NoError(t, agent.Bootstrap(context.Background(), "u1", useragent.AssignmentTrader, "X1-AB", nil))

	err := agent.PurchaseLargestShip(context.Background())

	require.NoError(t, err)
	require.Len(t, ra.purchaseCalls, 1)
	assert.Equal(t, "X1-AB:AFFORDABLE-LARGE", ra.purchaseCalls[0])
	assert.Equal(t, 3000, agent.Credits)
	require.Len(t, agent.Machines, 1)
}
