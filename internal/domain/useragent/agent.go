package useragent

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-go/internal/domain/ship"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shipmachine"
)

// Assignment is the role a UserAgent's ships are bootstrapped into, per
// spec.md §4.5's "build one machine per ship from assignment".
type Assignment string

const (
	AssignmentTrader Assignment = "trader"
	AssignmentScout  Assignment = "scout"
)

// Agent holds the durable context for one remote account: its identity,
// the latest known credits/loans, and the ship machines it owns. Grounded
// on the teacher's Player aggregate plus its per-ship machine ownership
// idiom, generalized from "container" to shipmachine.Machine.
type Agent struct {
	api RemoteAPI
	db  Store

	shipAPI             shipmachine.RemoteAPI
	shipDB              shipmachine.Store
	clock               shared.Clock
	excludedSink        string
	minPurchaseQuantity int

	Username   string
	Token      string
	UserID     int
	System     string
	Assignment Assignment

	Credits          int
	Loans            []api.Loan
	OutstandingLoans int

	Machines []shipmachine.Machine
}

// NewAgent constructs an Agent. shipAPI/shipDB are handed down to every ship
// machine the agent builds; in production these are the same *api.Gateway
// and *persistence.GormGateway as api/db, passed separately because they
// satisfy different (wider) interfaces.
func NewAgent(remoteAPI RemoteAPI, db Store, shipAPI shipmachine.RemoteAPI, shipDB shipmachine.Store, clock shared.Clock, excludedSink string, minPurchaseQuantity int) *Agent {
	return &Agent{
		api:                 remoteAPI,
		db:                  db,
		shipAPI:             shipAPI,
		shipDB:              shipDB,
		clock:               clock,
		excludedSink:        excludedSink,
		minPurchaseQuantity: minPurchaseQuantity,
	}
}

// Bootstrap looks up or claims username, fetches current info/ships/loans,
// persists all ships under home_system=system, and builds one machine per
// ship per spec.md §4.5. location is required when assignment is
// AssignmentScout (every ship parks there); ignored otherwise.
func (a *Agent) Bootstrap(ctx context.Context, username string, assignment Assignment, system string, location *string) error {
	row, err := a.db.GetUser(ctx, username)
	var token string
	switch {
	case err == nil:
		token = row.Token
	case isNotFound(err):
		claimed, claimErr := a.api.ClaimUsername(ctx, username)
		if claimErr != nil {
			return claimErr
		}
		token = claimed.Token
	default:
		return err
	}

	row, err = a.db.UpsertUser(ctx, username, token, string(assignment), system)
	if err != nil {
		return err
	}

	a.Username = username
	a.Token = token
	a.UserID = row.ID
	a.System = system
	a.Assignment = assignment

	info, err := a.api.GetMyInfo(ctx, token)
	if err != nil {
		return err
	}
	a.Credits = info.Credits

	loansResp, err := a.api.GetLoans(ctx, token)
	if err != nil {
		return err
	}
	a.Loans = loansResp.Loans
	a.OutstandingLoans = countOutstanding(a.Loans)

	shipsResp, err := a.api.ListMyShips(ctx, token)
	if err != nil {
		return err
	}

	a.Machines = a.Machines[:0]
	for _, data := range shipsResp.Ships {
		s, err := shipDataToDomain(data, row.ID, system)
		if err != nil {
			return err
		}
		if err := a.db.UpsertShip(ctx, row.ID, system, s); err != nil {
			return err
		}
		a.Machines = append(a.Machines, a.buildMachine(s, assignment, location))
	}
	return nil
}

func (a *Agent) buildMachine(s *ship.Ship, assignment Assignment, location *string) shipmachine.Machine {
	deps := &shipmachine.Deps{
		API:                 a.shipAPI,
		DB:                  a.shipDB,
		Clock:               a.clock,
		Token:               a.Token,
		UserID:              a.UserID,
		ShipSymbol:          s.ID(),
		System:              a.System,
		ExcludedSink:        a.excludedSink,
		MinPurchaseQuantity: a.minPurchaseQuantity,
	}
	if assignment == AssignmentScout {
		target := s.HomeSystem()
		if location != nil {
			target = *location
		}
		return shipmachine.NewScout(deps, s, target)
	}
	return shipmachine.NewTrader(deps, s)
}

// RequestLoan takes out a loan of the given type, updating credits per
// spec.md §4.5.
func (a *Agent) RequestLoan(ctx context.Context, loanType string) error {
	resp, err := a.api.RequestLoan(ctx, a.Token, loanType)
	if err != nil {
		return err
	}
	a.Credits = resp.Credits
	a.Loans = append(a.Loans, resp.Loan)
	a.OutstandingLoans = countOutstanding(a.Loans)
	return nil
}

// PayOffLoan repays the given loan id, refreshing loans/credits from the
// authoritative response per spec.md §4.5.
func (a *Agent) PayOffLoan(ctx context.Context, loanID string) error {
	resp, err := a.api.PayLoan(ctx, a.Token, loanID)
	if err != nil {
		return err
	}
	a.Credits = resp.Credits

	loansResp, err := a.api.GetLoans(ctx, a.Token)
	if err != nil {
		return err
	}
	a.Loans = loansResp.Loans
	a.OutstandingLoans = countOutstanding(a.Loans)
	return nil
}

// EnsureStartupLoan requests the first available loan type when the agent
// is broke and holds no loans yet, so a freshly bootstrapped account can
// afford its first ship, per spec.md §4.6's scout/trader startup step.
func (a *Agent) EnsureStartupLoan(ctx context.Context) error {
	if a.Credits > 0 || len(a.Loans) > 0 {
		return nil
	}
	available, err := a.api.ListAvailableLoans(ctx, a.Token)
	if err != nil {
		return err
	}
	if len(available.Loans) == 0 {
		return fmt.Errorf("no loan types available to bootstrap a broke account")
	}
	return a.RequestLoan(ctx, available.Loans[0].Type)
}

// FirstOutstandingLoan returns the id of the first loan still owed, used by
// the supervisor's auto-payoff rule.
func (a *Agent) FirstOutstandingLoan() (string, bool) {
	for _, l := range a.Loans {
		if l.Status != "PAID" {
			return l.ID, true
		}
	}
	return "", false
}

// PurchaseShip buys a ship at location, persists it, appends a new machine,
// and updates credits per spec.md §4.5.
func (a *Agent) PurchaseShip(ctx context.Context, location, shipType string) error {
	resp, err := a.api.PurchaseShip(ctx, a.Token, location, shipType)
	if err != nil {
		return err
	}
	a.Credits = resp.Credits

	s, err := shipDataToDomain(resp.Ship, a.UserID, a.System)
	if err != nil {
		return err
	}
	if err := a.db.UpsertShip(ctx, a.UserID, a.System, s); err != nil {
		return err
	}
	a.Machines = append(a.Machines, a.buildMachine(s, a.Assignment, nil))
	return nil
}

// PurchaseFastestShip selects the affordable, unrestricted candidate with
// the highest speed and purchases it, per spec.md §4.5.
func (a *Agent) PurchaseFastestShip(ctx context.Context) error {
	return a.purchaseBestShip(ctx, func(l api.ShipListing) int { return l.Speed })
}

// PurchaseLargestShip selects the affordable, unrestricted candidate with
// the highest cargo capacity and purchases it, per spec.md §4.5.
func (a *Agent) PurchaseLargestShip(ctx context.Context) error {
	return a.purchaseBestShip(ctx, func(l api.ShipListing) int { return l.MaxCargo })
}

func (a *Agent) purchaseBestShip(ctx context.Context, rankKey func(api.ShipListing) int) error {
	forSale, err := a.api.ListShipsForSale(ctx, a.Token)
	if err != nil {
		return err
	}

	dockedLocations := a.dockedLocations()
	candidates := make([]api.ShipListing, 0, len(forSale.Ships))
	for _, listing := range forSale.Ships {
		if listing.Price > a.Credits {
			continue
		}
		if len(listing.RestrictedGoods) > 0 {
			continue
		}
		if !dockedLocations[listing.Location] {
			continue
		}
		candidates = append(candidates, listing)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no affordable ship listing available at a docked location")
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return rankKey(candidates[i]) > rankKey(candidates[j])
	})
	best := candidates[0]
	return a.PurchaseShip(ctx, best.Location, best.Type)
}

// dockedLocations returns the set of locations (in-system or home system)
// where at least one owned ship is currently docked, the purchase-eligible
// location set per spec.md §4.5.
func (a *Agent) dockedLocations() map[string]bool {
	locations := map[string]bool{a.System: true}
	for _, m := range a.Machines {
		if locator, ok := m.(interface{ CurrentLocation() *string }); ok {
			if loc := locator.CurrentLocation(); loc != nil {
				locations[*loc] = true
			}
		}
	}
	return locations
}

// GetMyShips is a pass-through reporting the agent's current ship count for
// supervisor-side stats, per spec.md §4.5.
func (a *Agent) GetMyShips() int {
	return len(a.Machines)
}

// ApplyCreditsDelta adjusts the agent's known credits by delta, the
// Agent-owned counterpart to a ShipMachine's CreditsChangedOutcome.
func (a *Agent) ApplyCreditsDelta(delta int) {
	a.Credits += delta
}

// ReplaceMachine swaps the machine at index, the Agent-owned counterpart to
// a ShipMachine's MorphOutcome.
func (a *Agent) ReplaceMachine(index int, next shipmachine.Machine) {
	a.Machines[index] = next
}

func countOutstanding(loans []api.Loan) int {
	count := 0
	for _, l := range loans {
		if l.Status != "PAID" {
			count++
		}
	}
	return count
}

func isNotFound(err error) bool {
	var persistErr *persistence.PersistenceError
	if errors.As(err, &persistErr) {
		return persistErr.Kind == persistence.NotFound
	}
	return false
}

// shipDataToDomain converts the remote API's ShipData into a validated
// domain Ship, reconstructing Cargo from the flat CargoLine rows.
func shipDataToDomain(data api.ShipData, ownerUserID int, homeSystem string) (*ship.Ship, error) {
	items := make([]ship.CargoItem, 0, len(data.Cargo))
	for _, line := range data.Cargo {
		volumePerUnit := 1
		if line.Quantity > 0 && line.TotalVolume > 0 {
			volumePerUnit = line.TotalVolume / line.Quantity
		}
		items = append(items, ship.CargoItem{Good: line.Good, Quantity: line.Quantity, VolumePerUnit: volumePerUnit})
	}
	cargo, err := ship.NewCargo(data.MaxCargo, items)
	if err != nil {
		return nil, err
	}

	var location *string
	if data.Location != "" {
		loc := data.Location
		location = &loc
	}

	return ship.New(data.ID, ownerUserID, data.Type, data.Class, data.MaxCargo, data.Speed, data.Manufacturer, data.Plating, data.Weapons, homeSystem, location, cargo)
}
