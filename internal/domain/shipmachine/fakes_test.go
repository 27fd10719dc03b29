package shipmachine_test

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-go/internal/domain/flightplan"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-go/internal/domain/location"
	"github.com/andrescamacho/spacetraders-go/internal/domain/market"
	"github.com/andrescamacho/spacetraders-go/internal/domain/routing"
)

// fakeAPI is an in-memory stand-in for *api.Gateway, scripted per test.
type fakeAPI struct {
	flightPlanResp  *api.FlightPlanResponse
	flightPlanErr   error
	purchaseResp    *api.OrderResponse
	purchaseErr     error
	sellResp        *api.OrderResponse
	sellErr         error
	jettisonCalls   int
	marketplaceResp *api.MarketplaceResponse
	marketplaceErr  error
	warpResp        *api.WarpJumpResponse
	warpErr         error

	flightPlanCalls int
	purchaseCalls   int
	sellCalls       int
}

func (f *fakeAPI) CreateFlightPlan(ctx context.Context, token, shipID, destination string) (*api.FlightPlanResponse, error) {
	f.flightPlanCalls++
	if f.flightPlanErr != nil {
		return nil, f.flightPlanErr
	}
	return f.flightPlanResp, nil
}

func (f *fakeAPI) CreatePurchaseOrder(ctx context.Context, token, shipID, good string, quantity int) (*api.OrderResponse, error) {
	f.purchaseCalls++
	if f.purchaseErr != nil {
		return nil, f.purchaseErr
	}
	return f.purchaseResp, nil
}

func (f *fakeAPI) CreateSellOrder(ctx context.Context, token, shipID, good string, quantity int) (*api.OrderResponse, error) {
	f.sellCalls++
	if f.sellErr != nil {
		return nil, f.sellErr
	}
	return f.sellResp, nil
}

func (f *fakeAPI) JettisonCargo(ctx context.Context, token, shipID, good string, quantity int) (*api.JettisonResponse, error) {
	f.jettisonCalls++
	return &api.JettisonResponse{Good: good, Quantity: quantity}, nil
}

func (f *fakeAPI) GetMarketplace(ctx context.Context, token, locationSymbol string) (*api.MarketplaceResponse, error) {
	if f.marketplaceErr != nil {
		return nil, f.marketplaceErr
	}
	return f.marketplaceResp, nil
}

func (f *fakeAPI) AttemptWarpJump(ctx context.Context, token, shipID string) (*api.WarpJumpResponse, error) {
	if f.warpErr != nil {
		return nil, f.warpErr
	}
	return f.warpResp, nil
}

// fakeStore is an in-memory stand-in for *persistence.GormGateway, scoped to
// what shipmachine.Store needs.
type fakeStore struct {
	activePlan      *flightplan.FlightPlan
	activePlanErr   error
	appendedPlans   []*flightplan.FlightPlan
	fuelRequired    int
	fuelRequiredOK  bool
	fuelRequiredErr error
	snapshots       []*market.Snapshot
	routes          []routing.Route
	routesErr       error
	transactions    []ledger.TransactionType
	shipRow         *persistence.ShipRow
	shipRowErr      error
	locationsInSys  []string
	wormhole        string
	wormholeErr     error
	locations       map[string]location.Location
}

func (s *fakeStore) ActiveFlightPlan(ctx context.Context, shipID string) (*flightplan.FlightPlan, error) {
	return s.activePlan, s.activePlanErr
}

func (s *fakeStore) AppendFlightPlan(ctx context.Context, userID int, shipID string, plan *flightplan.FlightPlan) error {
	s.appendedPlans = append(s.appendedPlans, plan)
	return nil
}

func (s *fakeStore) GetFuelRequired(ctx context.Context, origin, destination, shipType string) (int, bool, error) {
	return s.fuelRequired, s.fuelRequiredOK, s.fuelRequiredErr
}

func (s *fakeStore) AppendMarketSnapshot(ctx context.Context, locationSymbol string, snapshot *market.Snapshot) error {
	s.snapshots = append(s.snapshots, snapshot)
	return nil
}

func (s *fakeStore) RoutesFrom(ctx context.Context, originLocation location.Location, shipSpeed int) ([]routing.Route, error) {
	return s.routes, s.routesErr
}

func (s *fakeStore) AppendTransaction(ctx context.Context, userID int, shipID string, kind ledger.TransactionType, good string, pricePerUnit, quantity, total int, locationSymbol string) error {
	s.transactions = append(s.transactions, kind)
	return nil
}

func (s *fakeStore) GetShipRow(ctx context.Context, userID int, shipID string) (*persistence.ShipRow, error) {
	return s.shipRow, s.shipRowErr
}

func (s *fakeStore) LocationsInSystemOf(ctx context.Context, locationSymbol string) ([]string, error) {
	return s.locationsInSys, nil
}

func (s *fakeStore) WormholeFrom(ctx context.Context, locationSymbol, targetSystem string) (string, error) {
	return s.wormhole, s.wormholeErr
}

func (s *fakeStore) GetLocation(ctx context.Context, locationSymbol string) (location.Location, error) {
	if loc, ok := s.locations[locationSymbol]; ok {
		return loc, nil
	}
	return location.Location{}, fmt.Errorf("location %s not found", locationSymbol)
}
