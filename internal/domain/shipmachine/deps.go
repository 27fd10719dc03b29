package shipmachine

import (
	"context"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-go/internal/domain/flightplan"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-go/internal/domain/location"
	"github.com/andrescamacho/spacetraders-go/internal/domain/market"
	"github.com/andrescamacho/spacetraders-go/internal/domain/routing"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shared"
)

// RemoteAPI is the narrow slice of the HttpGateway every ship machine needs.
// *api.Gateway satisfies this by structural typing; tests supply a fake.
type RemoteAPI interface {
	CreateFlightPlan(ctx context.Context, token, shipID, destination string) (*api.FlightPlanResponse, error)
	CreatePurchaseOrder(ctx context.Context, token, shipID, good string, quantity int) (*api.OrderResponse, error)
	CreateSellOrder(ctx context.Context, token, shipID, good string, quantity int) (*api.OrderResponse, error)
	JettisonCargo(ctx context.Context, token, shipID, good string, quantity int) (*api.JettisonResponse, error)
	GetMarketplace(ctx context.Context, token, locationSymbol string) (*api.MarketplaceResponse, error)
	AttemptWarpJump(ctx context.Context, token, shipID string) (*api.WarpJumpResponse, error)
}

// Store is the narrow slice of the PersistenceGateway every ship machine
// needs. *persistence.GormGateway satisfies this by structural typing.
type Store interface {
	ActiveFlightPlan(ctx context.Context, shipID string) (*flightplan.FlightPlan, error)
	AppendFlightPlan(ctx context.Context, userID int, shipID string, plan *flightplan.FlightPlan) error
	GetFuelRequired(ctx context.Context, origin, destination, shipType string) (int, bool, error)
	AppendMarketSnapshot(ctx context.Context, locationSymbol string, snapshot *market.Snapshot) error
	RoutesFrom(ctx context.Context, originLocation location.Location, shipSpeed int) ([]routing.Route, error)
	AppendTransaction(ctx context.Context, userID int, shipID string, kind ledger.TransactionType, good string, pricePerUnit, quantity, total int, locationSymbol string) error
	GetShipRow(ctx context.Context, userID int, shipID string) (*persistence.ShipRow, error)
	LocationsInSystemOf(ctx context.Context, locationSymbol string) ([]string, error)
	WormholeFrom(ctx context.Context, locationSymbol, targetSystem string) (string, error)
	GetLocation(ctx context.Context, locationSymbol string) (location.Location, error)
}

// Deps bundles everything a ship machine needs beyond its own state:
// the remote API, the store, a clock for arrival-time checks, and the
// identity/policy context the supervisor assigns at bootstrap.
type Deps struct {
	API        RemoteAPI
	DB         Store
	Clock      shared.Clock
	Token      string
	UserID     int
	ShipSymbol string
	System     string
	// ExcludedSink and MinPurchaseQuantity are policy inputs, not constants,
	// per spec.md §9 — the supervisor supplies them explicitly.
	ExcludedSink        string
	MinPurchaseQuantity int
}
