// Package useragent holds the durable per-account context spec.md §4.5
// describes: one remote account's identity, credits/loans, and the ship
// machines it owns.
package useragent

import (
	"context"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ship"
)

// RemoteAPI is the narrow slice of the HttpGateway a UserAgent needs beyond
// what it hands down to its ship machines.
type RemoteAPI interface {
	ClaimUsername(ctx context.Context, username string) (*api.ClaimUsernameResponse, error)
	GetMyInfo(ctx context.Context, token string) (*api.MyInfo, error)
	GetLoans(ctx context.Context, token string) (*api.LoansResponse, error)
	ListAvailableLoans(ctx context.Context, token string) (*api.AvailableLoansResponse, error)
	RequestLoan(ctx context.Context, token, loanType string) (*api.RequestLoanResponse, error)
	PayLoan(ctx context.Context, token, loanID string) (*api.PayLoanResponse, error)
	ListMyShips(ctx context.Context, token string) (*api.MyShipsResponse, error)
	ListShipsForSale(ctx context.Context, token string) (*api.ShipsForSaleResponse, error)
	PurchaseShip(ctx context.Context, token, location, shipType string) (*api.PurchaseShipResponse, error)
}

// Store is the narrow slice of the PersistenceGateway a UserAgent needs.
type Store interface {
	UpsertUser(ctx context.Context, username, token, assignment, systemSymbol string) (*persistence.UserRow, error)
	GetUser(ctx context.Context, username string) (*persistence.UserRow, error)
	UpsertShip(ctx context.Context, userID int, homeSystem string, s *ship.Ship) error
	AppendUserStats(ctx context.Context, userID, credits, ships int) error
}
