package steps

import (
	"context"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-go/internal/domain/flightplan"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-go/internal/domain/location"
	"github.com/andrescamacho/spacetraders-go/internal/domain/market"
	"github.com/andrescamacho/spacetraders-go/internal/domain/routing"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ship"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shipmachine"
)

// bddRemoteAPI is a minimal stand-in for *api.Gateway scoped to what the
// supervisor lifecycle scenarios exercise; every method the supervisor's
// RemoteAPI interface requires is implemented, most as no-ops.
type bddRemoteAPI struct {
	gameStatusErrs []error
	gameStatusCall int
}

func (f *bddRemoteAPI) GetGameStatus(ctx context.Context) (*api.GameStatus, error) {
	i := f.gameStatusCall
	f.gameStatusCall++
	if i < len(f.gameStatusErrs) && f.gameStatusErrs[i] != nil {
		return nil, f.gameStatusErrs[i]
	}
	return &api.GameStatus{Status: "OK"}, nil
}

func (f *bddRemoteAPI) ListSystems(ctx context.Context, token string) (*api.SystemsResponse, error) {
	return &api.SystemsResponse{}, nil
}
func (f *bddRemoteAPI) ClaimUsername(ctx context.Context, username string) (*api.ClaimUsernameResponse, error) {
	return &api.ClaimUsernameResponse{Token: "tok"}, nil
}
func (f *bddRemoteAPI) GetMyInfo(ctx context.Context, token string) (*api.MyInfo, error) {
	return &api.MyInfo{}, nil
}
func (f *bddRemoteAPI) GetLoans(ctx context.Context, token string) (*api.LoansResponse, error) {
	return &api.LoansResponse{}, nil
}
func (f *bddRemoteAPI) ListAvailableLoans(ctx context.Context, token string) (*api.AvailableLoansResponse, error) {
	return &api.AvailableLoansResponse{}, nil
}
func (f *bddRemoteAPI) RequestLoan(ctx context.Context, token, loanType string) (*api.RequestLoanResponse, error) {
	return &api.RequestLoanResponse{}, nil
}
func (f *bddRemoteAPI) PayLoan(ctx context.Context, token, loanID string) (*api.PayLoanResponse, error) {
	return &api.PayLoanResponse{}, nil
}
func (f *bddRemoteAPI) ListMyShips(ctx context.Context, token string) (*api.MyShipsResponse, error) {
	return &api.MyShipsResponse{}, nil
}
func (f *bddRemoteAPI) ListShipsForSale(ctx context.Context, token string) (*api.ShipsForSaleResponse, error) {
	return &api.ShipsForSaleResponse{}, nil
}
func (f *bddRemoteAPI) PurchaseShip(ctx context.Context, token, location, shipType string) (*api.PurchaseShipResponse, error) {
	return &api.PurchaseShipResponse{}, nil
}
func (f *bddRemoteAPI) CreateFlightPlan(ctx context.Context, token, shipID, destination string) (*api.FlightPlanResponse, error) {
	return nil, nil
}
func (f *bddRemoteAPI) CreatePurchaseOrder(ctx context.Context, token, shipID, good string, quantity int) (*api.OrderResponse, error) {
	return nil, nil
}
func (f *bddRemoteAPI) CreateSellOrder(ctx context.Context, token, shipID, good string, quantity int) (*api.OrderResponse, error) {
	return nil, nil
}
func (f *bddRemoteAPI) JettisonCargo(ctx context.Context, token, shipID, good string, quantity int) (*api.JettisonResponse, error) {
	return nil, nil
}
func (f *bddRemoteAPI) GetMarketplace(ctx context.Context, token, locationSymbol string) (*api.MarketplaceResponse, error) {
	return nil, nil
}
func (f *bddRemoteAPI) AttemptWarpJump(ctx context.Context, token, shipID string) (*api.WarpJumpResponse, error) {
	return nil, nil
}

// bddStore is a minimal stand-in for *persistence.GormGateway.
type bddStore struct{}

func (s *bddStore) UpsertUser(ctx context.Context, username, token, assignment, systemSymbol string) (*persistence.UserRow, error) {
	return &persistence.UserRow{ID: 1, Username: username, Token: token}, nil
}
func (s *bddStore) GetUser(ctx context.Context, username string) (*persistence.UserRow, error) {
	return nil, persistence.NewNotFoundError("user " + username)
}
func (s *bddStore) UpsertShip(ctx context.Context, userID int, homeSystem string, sh *ship.Ship) error {
	return nil
}
func (s *bddStore) AppendUserStats(ctx context.Context, userID, credits, ships int) error { return nil }
func (s *bddStore) UpsertSystemLocation(ctx context.Context, systemSymbol string, loc location.Location) error {
	return nil
}
func (s *bddStore) LocationsInSystemOf(ctx context.Context, locationSymbol string) ([]string, error) {
	return nil, nil
}
func (s *bddStore) WormholeFrom(ctx context.Context, locationSymbol, targetSystem string) (string, error) {
	return "", nil
}
func (s *bddStore) GetLocation(ctx context.Context, locationSymbol string) (location.Location, error) {
	return location.Location{}, nil
}
func (s *bddStore) GetShipRow(ctx context.Context, userID int, shipID string) (*persistence.ShipRow, error) {
	return nil, nil
}
func (s *bddStore) AppendFlightPlan(ctx context.Context, userID int, shipID string, plan *flightplan.FlightPlan) error {
	return nil
}
func (s *bddStore) ActiveFlightPlan(ctx context.Context, shipID string) (*flightplan.FlightPlan, error) {
	return nil, nil
}
func (s *bddStore) GetFuelRequired(ctx context.Context, origin, destination, shipType string) (int, bool, error) {
	return 0, false, nil
}
func (s *bddStore) AppendMarketSnapshot(ctx context.Context, locationSymbol string, snapshot *market.Snapshot) error {
	return nil
}
func (s *bddStore) RoutesFrom(ctx context.Context, originLocation location.Location, shipSpeed int) ([]routing.Route, error) {
	return nil, nil
}
func (s *bddStore) AppendTransaction(ctx context.Context, userID int, shipID string, kind ledger.TransactionType, good string, pricePerUnit, quantity, total int, locationSymbol string) error {
	return nil
}

// bddMachine is a scripted Machine: Step() pops outcomes/errors off a queue
// in order, looping the last entry once exhausted.
type bddMachine struct {
	shipID   string
	outcomes []shipmachine.StepOutcome
	errs     []error
	call     int
}

func (m *bddMachine) ShipID() string           { return m.shipID }
func (m *bddMachine) CurrentLocation() *string { return nil }

func (m *bddMachine) Step(ctx context.Context) (shipmachine.StepOutcome, error) {
	i := m.call
	if i >= len(m.outcomes) {
		i = len(m.outcomes) - 1
	}
	m.call++
	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	return m.outcomes[i], err
}

func (m *bddMachine) Reset(ctx context.Context) error { return nil }
