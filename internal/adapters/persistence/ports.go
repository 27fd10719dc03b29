package persistence

import (
	"context"
	"time"

	"github.com/andrescamacho/spacetraders-go/internal/domain/flightplan"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-go/internal/domain/location"
	"github.com/andrescamacho/spacetraders-go/internal/domain/market"
	"github.com/andrescamacho/spacetraders-go/internal/domain/routing"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ship"
)

// UserRow is the persisted identity/home-assignment row for a user, per
// spec.md §3's User entity — credits and loans are never columns here,
// they live only in the in-memory UserAgent.
type UserRow struct {
	ID                int
	Username          string
	Token             string
	SystemSymbol      string
	DefaultAssignment string
	CreatedAt         time.Time
}

// ShipRow is the persisted ownership/attribute row for a ship, per
// spec.md §3's Ship entity static fields (location/cargo are volatile and
// always sourced fresh from the HttpGateway, never cached here).
type ShipRow struct {
	ShipSymbol   string
	UserID       int
	ShipType     string
	Class        string
	MaxCargo     int
	Speed        int
	Manufacturer string
	Plating      int
	Weapons      int
	HomeSystem   string
}

// UserStore covers the User-row half of spec.md §4.2's contract.
type UserStore interface {
	UpsertUser(ctx context.Context, username, token, assignment, systemSymbol string) (*UserRow, error)
	GetUser(ctx context.Context, username string) (*UserRow, error)
}

// LocationStore covers system/location topology lookups.
type LocationStore interface {
	UpsertSystemLocation(ctx context.Context, systemSymbol string, loc location.Location) error
	LocationsInSystemOf(ctx context.Context, locationSymbol string) ([]string, error)
	WormholeFrom(ctx context.Context, locationSymbol, targetSystem string) (string, error)
	GetLocation(ctx context.Context, locationSymbol string) (location.Location, error)
}

// ShipStore covers ship ownership rows.
type ShipStore interface {
	UpsertShip(ctx context.Context, userID int, homeSystem string, s *ship.Ship) error
	GetShipRow(ctx context.Context, userID int, shipID string) (*ShipRow, error)
}

// FlightPlanStore covers flight plan append/lookup.
type FlightPlanStore interface {
	AppendFlightPlan(ctx context.Context, userID int, shipID string, plan *flightplan.FlightPlan) error
	ActiveFlightPlan(ctx context.Context, shipID string) (*flightplan.FlightPlan, error)
	GetFuelRequired(ctx context.Context, origin, destination, shipType string) (int, bool, error)
}

// MarketStore covers market snapshot append and route derivation.
type MarketStore interface {
	AppendMarketSnapshot(ctx context.Context, locationSymbol string, snapshot *market.Snapshot) error
	RoutesFrom(ctx context.Context, originLocation location.Location, shipSpeed int) ([]routing.Route, error)
}

// TransactionStore covers transaction and user-stats appends.
type TransactionStore interface {
	AppendTransaction(ctx context.Context, userID int, shipID string, kind ledger.TransactionType, good string, pricePerUnit, quantity, total int, locationSymbol string) error
	AppendUserStats(ctx context.Context, userID, credits, ships int) error
}

// Gateway is the full PersistenceGateway contract of spec.md §4.2, composed
// from the narrower stores above (ISP split, grounded on the teacher's
// ShipQueryRepository/ShipCommandRepository/ShipCargoRepository split).
type Gateway interface {
	UserStore
	LocationStore
	ShipStore
	FlightPlanStore
	MarketStore
	TransactionStore
}
