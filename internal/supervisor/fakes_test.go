package supervisor_test

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

// fakeRemoteAPI is a minimal stand-in for *api.Gateway scoped to what
// Supervisor/UserAgent/ShipMachine need. Only the methods these tests
// exercise return non-zero values; the rest are no-ops.
type fakeRemoteAPI struct {
	gameStatusErrs []error
	gameStatusCall int
	systems        *api.SystemsResponse

	myInfo  *api.MyInfo
	loans   *api.LoansResponse
	myShips *api.MyShipsResponse
}

func (f *fakeRemoteAPI) GetGameStatus(ctx context.Context) (*api.GameStatus, error) {
	i := f.gameStatusCall
	f.gameStatusCall++
	if i < len(f.gameStatusErrs) && f.gameStatusErrs[i] != nil {
		return nil, f.gameStatusErrs[i]
	}
	return &api.GameStatus{Status: "OK"}, nil
}

func (f *fakeRemoteAPI) ListSystems(ctx context.Context, token string) (*api.SystemsResponse, error) {
	if f.systems != nil {
		return f.systems, nil
	}
	return &api.SystemsResponse{}, nil
}

func (f *fakeRemoteAPI) ClaimUsername(ctx context.Context, username string) (*api.ClaimUsernameResponse, error) {
	return &api.ClaimUsernameResponse{Token: "tok"}, nil
}

func (f *fakeRemoteAPI) GetMyInfo(ctx context.Context, token string) (*api.MyInfo, error) {
	if f.myInfo != nil {
		return f.myInfo, nil
	}
	return &api.MyInfo{}, nil
}

func (f *fakeRemoteAPI) GetLoans(ctx context.Context, token string) (*api.LoansResponse, error) {
	if f.loans != nil {
		return f.loans, nil
	}
	return &api.LoansResponse{}, nil
}

func (f *fakeRemoteAPI) ListAvailableLoans(ctx context.Context, token string) (*api.AvailableLoansResponse, error) {
	return &api.AvailableLoansResponse{}, nil
}

func (f *fakeRemoteAPI) RequestLoan(ctx context.Context, token, loanType string) (*api.RequestLoanResponse, error) {
	return &api.RequestLoanResponse{}, nil
}

func (f *fakeRemoteAPI) PayLoan(ctx context.Context, token, loanID string) (*api.PayLoanResponse, error) {
	return &api.PayLoanResponse{}, nil
}

func (f *fakeRemoteAPI) ListMyShips(ctx context.Context, token string) (*api.MyShipsResponse, error) {
	if f.myShips != nil {
		return f.myShips, nil
	}
	return &api.MyShipsResponse{}, nil
}

func (f *fakeRemoteAPI) ListShipsForSale(ctx context.Context, token string) (*api.ShipsForSaleResponse, error) {
	return &api.ShipsForSaleResponse{}, nil
}

func (f *fakeRemoteAPI) PurchaseShip(ctx context.Context, token, location, shipType string) (*api.PurchaseShipResponse, error) {
	return &api.PurchaseShipResponse{}, nil
}

func (f *fakeRemoteAPI) CreateFlightPlan(ctx context.Context, token, shipID, destination string) (*api.FlightPlanResponse, error) {
	return nil, nil
}
func (f *fakeRemoteAPI) CreatePurchaseOrder(ctx context.Context, token, shipID, good string, quantity int) (*api.OrderResponse, error) {
	return nil, nil
}
func (f *fakeRemoteAPI) CreateSellOrder(ctx context.Context, token, shipID, good string, quantity int) (*api.OrderResponse, error) {
	return nil, nil
}
func (f *fakeRemoteAPI) JettisonCargo(ctx context.Context, token, shipID, good string, quantity int) (*api.JettisonResponse, error) {
	return nil, nil
}
func (f *fakeRemoteAPI) GetMarketplace(ctx context.Context, token, locationSymbol string) (*api.MarketplaceResponse, error) {
	return nil, nil
}
func (f *fakeRemoteAPI) AttemptWarpJump(ctx context.Context, token, shipID string) (*api.WarpJumpResponse, error) {
	return nil, nil
}

// fakeStore is a minimal stand-in for *persistence.GormGateway.
type fakeStore struct {
	existingUser *persistence.UserRow

	statsAppends []int
	upsertedLocs int
}

func (s *fakeStore) UpsertUser(ctx context.Context, username, token, assignment, systemSymbol string) (*persistence.UserRow, error) {
	return &persistence.UserRow{ID: 1, Username: username, Token: token, SystemSymbol: systemSymbol, DefaultAssignment: assignment}, nil
}

func (s *fakeStore) GetUser(ctx context.Context, username string) (*persistence.UserRow, error) {
	if s.existingUser != nil {
		return s.existingUser, nil
	}
	return nil, persistence.NewNotFoundError("user " + username)
}

func (s *fakeStore) UpsertShip(ctx context.Context, userID int, homeSystem string, sh *ship.Ship) error {
	return nil
}

func (s *fakeStore) AppendUserStats(ctx context.Context, userID, credits, ships int) error {
	s.statsAppends = append(s.statsAppends, credits)
	return nil
}

func (s *fakeStore) UpsertSystemLocation(ctx context.Context, systemSymbol string, loc location.Location) error {
	s.upsertedLocs++
	return nil
}

func (s *fakeStore) LocationsInSystemOf(ctx context.Context, locationSymbol string) ([]string, error) {
	return nil, nil
}
func (s *fakeStore) WormholeFrom(ctx context.Context, locationSymbol, targetSystem string) (string, error) {
	return "", nil
}
func (s *fakeStore) GetLocation(ctx context.Context, locationSymbol string) (location.Location, error) {
	return location.Location{}, nil
}
func (s *fakeStore) GetShipRow(ctx context.Context, userID int, shipID string) (*persistence.ShipRow, error) {
	return nil, nil
}
func (s *fakeStore) AppendFlightPlan(ctx context.Context, userID int, shipID string, plan *flightplan.FlightPlan) error {
	return nil
}
func (s *fakeStore) ActiveFlightPlan(ctx context.Context, shipID string) (*flightplan.FlightPlan, error) {
	return nil, nil
}
func (s *fakeStore) GetFuelRequired(ctx context.Context, origin, destination, shipType string) (int, bool, error) {
	return 0, false, nil
}
func (s *fakeStore) AppendMarketSnapshot(ctx context.Context, locationSymbol string, snapshot *market.Snapshot) error {
	return nil
}
func (s *fakeStore) RoutesFrom(ctx context.Context, originLocation location.Location, shipSpeed int) ([]routing.Route, error) {
	return nil, nil
}
func (s *fakeStore) AppendTransaction(ctx context.Context, userID int, shipID string, kind ledger.TransactionType, good string, pricePerUnit, quantity, total int, locationSymbol string) error {
	return nil
}

// fakeMachine is a scripted Machine: Step() pops outcomes/errors off a
// queue in order, looping the last entry once exhausted.
type fakeMachine struct {
	shipID     string
	outcomes   []shipmachine.StepOutcome
	errs       []error
	call       int
	resetCalls int
}

func (m *fakeMachine) ShipID() string { return m.shipID }

func (m *fakeMachine) CurrentLocation() *string { return nil }

func (m *fakeMachine) Step(ctx context.Context) (shipmachine.StepOutcome, error) {
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

func (m *fakeMachine) Reset(ctx context.Context) error {
	m.resetCalls++
	return nil
}
