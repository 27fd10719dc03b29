package useragent_test

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
)

// fakeRemoteAPI is an in-memory stand-in for *api.Gateway, scoped to what
// useragent.RemoteAPI needs.
type fakeRemoteAPI struct {
	claimResp  *api.ClaimUsernameResponse
	claimErr   error
	claimCalls int

	myInfo    *api.MyInfo
	myInfoErr error

	loans    *api.LoansResponse
	loansErr error

	availableLoans    *api.AvailableLoansResponse
	availableLoansErr error

	requestLoanResp *api.RequestLoanResponse
	requestLoanErr  error

	payLoanResp *api.PayLoanResponse
	payLoanErr  error

	myShips    *api.MyShipsResponse
	myShipsErr error

	forSale    *api.ShipsForSaleResponse
	forSaleErr error

	purchaseResp  *api.PurchaseShipResponse
	purchaseErr   error
	purchaseCalls []string
}

func (f *fakeRemoteAPI) ClaimUsername(ctx context.Context, username string) (*api.ClaimUsernameResponse, error) {
	f.claimCalls++
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	return f.claimResp, nil
}

func (f *fakeRemoteAPI) GetMyInfo(ctx context.Context, token string) (*api.MyInfo, error) {
	if f.myInfoErr != nil {
		return nil, f.myInfoErr
	}
	return f.myInfo, nil
}

func (f *fakeRemoteAPI) GetLoans(ctx context.Context, token string) (*api.LoansResponse, error) {
	if f.loansErr != nil {
		return nil, f.loansErr
	}
	return f.loans, nil
}

func (f *fakeRemoteAPI) ListAvailableLoans(ctx context.Context, token string) (*api.AvailableLoansResponse, error) {
	if f.availableLoansErr != nil {
		return nil, f.availableLoansErr
	}
	if f.availableLoans != nil {
		return f.availableLoans, nil
	}
	return &api.AvailableLoansResponse{}, nil
}

func (f *fakeRemoteAPI) RequestLoan(ctx context.Context, token, loanType string) (*api.RequestLoanResponse, error) {
	if f.requestLoanErr != nil {
		return nil, f.requestLoanErr
	}
	return f.requestLoanResp, nil
}

func (f *fakeRemoteAPI) PayLoan(ctx context.Context, token, loanID string) (*api.PayLoanResponse, error) {
	if f.payLoanErr != nil {
		return nil, f.payLoanErr
	}
	return f.payLoanResp, nil
}

func (f *fakeRemoteAPI) ListMyShips(ctx context.Context, token string) (*api.MyShipsResponse, error) {
	if f.myShipsErr != nil {
		return nil, f.myShipsErr
	}
	return f.myShips, nil
}

func (f *fakeRemoteAPI) ListShipsForSale(ctx context.Context, token string) (*api.ShipsForSaleResponse, error) {
	if f.forSaleErr != nil {
		return nil, f.forSaleErr
	}
	return f.forSale, nil
}

func (f *fakeRemoteAPI) PurchaseShip(ctx context.Context, token, location, shipType string) (*api.PurchaseShipResponse, error) {
	f.purchaseCalls = append(f.purchaseCalls, location+":"+shipType)
	if f.purchaseErr != nil {
		return nil, f.purchaseErr
	}
	return f.purchaseResp, nil
}

// fakeStore is an in-memory stand-in for *persistence.GormGateway, scoped to
// what useragent.Store needs.
type fakeStore struct {
	existingUser *persistence.UserRow
	getUserErr   error

	upsertedUser *persistence.UserRow
	upsertErr    error

	upsertedShips int
	upsertShipErr error

	statsAppends int
}

func (s *fakeStore) GetUser(ctx context.Context, username string) (*persistence.UserRow, error) {
	if s.getUserErr != nil {
		return nil, s.getUserErr
	}
	return s.existingUser, nil
}

func (s *fakeStore) UpsertUser(ctx context.Context, username, token, assignment, systemSymbol string) (*persistence.UserRow, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	if s.upsertedUser != nil {
		return s.upsertedUser, nil
	}
	return &persistence.UserRow{ID: 1, Username: username, Token: token, SystemSymbol: systemSymbol, DefaultAssignment: assignment}, nil
}

func (s *fakeStore) UpsertShip(ctx context.Context, userID int, homeSystem string, sh *ship.Ship) error {
	s.upsertedShips++
	return s.upsertShipErr
}

func (s *fakeStore) AppendUserStats(ctx context.Context, userID, credits, ships int) error {
	s.statsAppends++
	return nil
}

// fakeShipAPI/fakeShipStore are no-op stand-ins satisfying shipmachine's
// narrow interfaces, unused by these tests beyond construction.
type fakeShipAPI struct{}

func (fakeShipAPI) CreateFlightPlan(ctx context.Context, token, shipID, destination string) (*api.FlightPlanResponse, error) {
	return nil, nil
}
func (fakeShipAPI) CreatePurchaseOrder(ctx context.Context, token, shipID, good string, quantity int) (*api.OrderResponse, error) {
	return nil, nil
}
func (fakeShipAPI) CreateSellOrder(ctx context.Context, token, shipID, good string, quantity int) (*api.OrderResponse, error) {
	return nil, nil
}
func (fakeShipAPI) JettisonCargo(ctx context.Context, token, shipID, good string, quantity int) (*api.JettisonResponse, error) {
	return nil, nil
}
func (fakeShipAPI) GetMarketplace(ctx context.Context, token, locationSymbol string) (*api.MarketplaceResponse, error) {
	return nil, nil
}
func (fakeShipAPI) AttemptWarpJump(ctx context.Context, token, shipID string) (*api.WarpJumpResponse, error) {
	return nil, nil
}

type fakeShipStore struct{}

func (fakeShipStore) ActiveFlightPlan(ctx context.Context, shipID string) (*flightplan.FlightPlan, error) {
	return nil, nil
}
func (fakeShipStore) AppendFlightPlan(ctx context.Context, userID int, shipID string, plan *flightplan.FlightPlan) error {
	return nil
}
func (fakeShipStore) GetFuelRequired(ctx context.Context, origin, destination, shipType string) (int, bool, error) {
	return 0, false, nil
}
func (fakeShipStore) AppendMarketSnapshot(ctx context.Context, locationSymbol string, snapshot *market.Snapshot) error {
	return nil
}
func (fakeShipStore) RoutesFrom(ctx context.Context, originLocation location.Location, shipSpeed int) ([]routing.Route, error) {
	return nil, nil
}
func (fakeShipStore) AppendTransaction(ctx context.Context, userID int, shipID string, kind ledger.TransactionType, good string, pricePerUnit, quantity, total int, locationSymbol string) error {
	return nil
}
func (fakeShipStore) GetShipRow(ctx context.Context, userID int, shipID string) (*persistence.ShipRow, error) {
	return nil, nil
}
func (fakeShipStore) LocationsInSystemOf(ctx context.Context, locationSymbol string) ([]string, error) {
	return nil, nil
}
func (fakeShipStore) WormholeFrom(ctx context.Context, locationSymbol, targetSystem string) (string, error) {
	return "", nil
}
func (fakeShipStore) GetLocation(ctx context.Context, locationSymbol string) (location.Location, error) {
	return location.Location{}, nil
}
