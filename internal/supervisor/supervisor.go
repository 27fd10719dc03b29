// Package supervisor is the composition-level orchestrator: it brings the
// fleet up at process start and runs one tick loop per user, translating
// each ShipMachine's outcome into the credits/loan/purchase/reset/kill
// decisions spec.md §4.6 describes. Grounded on the teacher's old
// cmd/spacetraders-daemon/main.go composition-root style (plain narration
// logging, panic-to-restart on unrecoverable startup failure) generalized
// from its CQRS/mediator wiring to this package's direct Agent/ShipMachine
// wiring.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sourcegraph/conc"
	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacetraders-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-go/internal/domain/location"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shipmachine"
	"github.com/andrescamacho/spacetraders-go/internal/domain/useragent"
	"github.com/andrescamacho/spacetraders-go/internal/infrastructure/config"
	"github.com/andrescamacho/spacetraders-go/internal/infrastructure/database"
	"github.com/andrescamacho/spacetraders-go/internal/infrastructure/logging"
)

// RemoteAPI is the full HttpGateway slice the supervisor needs: everything
// UserAgent and ShipMachine need to bootstrap and step, plus the two
// startup-only calls (maintenance check, system topology) nothing else
// uses. *api.Gateway satisfies this by structural typing; tests supply a
// fake.
type RemoteAPI interface {
	useragent.RemoteAPI
	shipmachine.RemoteAPI
	GetGameStatus(ctx context.Context) (*api.GameStatus, error)
	ListSystems(ctx context.Context, token string) (*api.SystemsResponse, error)
}

// Policy inputs the daemon has always hard-coded; spec.md §9 calls these
// out explicitly as policy, not universal constants, so they live here at
// the composition root rather than inside the domain packages that use
// them.
const (
	primarySystem       = "OE"
	excludedSink        = "OE-XV-91-2"
	minPurchaseQuantity = 500
	excludedScoutSystem = "NA7"

	maintenancePoll = 60 * time.Second
	tickInterval    = 1 * time.Second

	autoPurchaseCreditsPerShip = 1_000_000
	autoPurchaseMaxShips       = 50
	autoPayoffCreditsFloor     = 1_000_000
)

// Supervisor wires one *api.Gateway and one *persistence.GormGateway to
// every UserAgent/ShipMachine it creates, and owns the process-wide kill
// switch every user's tick loop watches.
type Supervisor struct {
	api   RemoteAPI
	db    persistence.Gateway
	rawDB *gorm.DB
	cfg   *config.Config
	clock shared.Clock
	kill  *KillSwitch
}

// New constructs a Supervisor. rawDB is the same connection db wraps,
// needed separately only for the archive-on-reset path; it may be nil in
// tests that never exercise that path.
func New(gw RemoteAPI, db persistence.Gateway, rawDB *gorm.DB, cfg *config.Config, clock shared.Clock) *Supervisor {
	return &Supervisor{api: gw, db: db, rawDB: rawDB, cfg: cfg, clock: clock, kill: NewKillSwitch()}
}

// KillSwitchTripped reports whether a fatal client error has already ended
// every user's tick loop, a lightweight diagnostics hook for "is this
// process still making progress".
func (s *Supervisor) KillSwitchTripped() bool {
	return s.kill.IsTripped()
}

func (s *Supervisor) newAgent() *useragent.Agent {
	return useragent.NewAgent(s.api, s.db, s.api, s.db, s.clock, excludedSink, minPurchaseQuantity)
}

// Run executes the full startup sequence and then blocks until every user's
// tick loop has exited (kill switch trip or zero-ships exit).
func (s *Supervisor) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	if err := s.WaitForMaintenance(ctx, logger); err != nil {
		return err
	}

	primary, err := s.bootstrapPrimary(ctx, logger)
	if err != nil {
		return err
	}

	systems, err := s.persistTopology(ctx, primary.Token)
	if err != nil {
		return err
	}

	var agents []*useragent.Agent

	if s.cfg.Features.EnableScouts {
		scouts, err := s.bootstrapScouts(ctx, systems, logger)
		if err != nil {
			return err
		}
		agents = append(agents, scouts...)
	}

	if s.cfg.Features.EnableTrader {
		if err := s.ensureTraderFunded(ctx, primary); err != nil {
			return err
		}
		agents = append(agents, primary)
	}

	var wg conc.WaitGroup
	for _, agent := range agents {
		agent := agent
		wg.Go(func() { s.RunUser(ctx, agent, logger) })
	}
	wg.Wait()

	if s.kill.IsTripped() {
		return fmt.Errorf("kill switch tripped: a fatal client error ended the fleet")
	}
	return nil
}

// WaitForMaintenance polls GetGameStatus and retries on a 503/ServiceUnavailable
// response, per spec.md §4.6's maintenance-mode step.
func (s *Supervisor) WaitForMaintenance(ctx context.Context, logger logging.Logger) error {
	for {
		_, err := s.api.GetGameStatus(ctx)
		if err == nil {
			return nil
		}
		var clientErr *api.ClientError
		if !errors.As(err, &clientErr) || clientErr.Kind != api.ServiceUnavailable {
			return err
		}
		logger.Log("warn", "api in maintenance mode, retrying", map[string]interface{}{"retry_in": maintenancePoll.String()})
		s.clock.Sleep(maintenancePoll)
	}
}

// bootstrapPrimary brings up the "-main" trader account. A bootstrap
// failure is interpreted as a remote-side reset: archive the tables (if
// enabled) and panic so the surrounding process supervisor restarts this
// process against an empty database, per spec.md §4.6.
func (s *Supervisor) bootstrapPrimary(ctx context.Context, logger logging.Logger) (*useragent.Agent, error) {
	primary := s.newAgent()
	username := s.cfg.Username.Base + "-main"
	if err := primary.Bootstrap(ctx, username, useragent.AssignmentTrader, primarySystem, nil); err != nil {
		logger.Log("error", "primary user bootstrap failed, assuming api reset", map[string]interface{}{"error": err.Error()})
		if s.cfg.Features.EnableReset && s.rawDB != nil {
			suffix := strconv.FormatInt(s.clock.Now().Unix(), 10)
			if archiveErr := database.ArchiveTables(s.rawDB, suffix); archiveErr != nil {
				return nil, fmt.Errorf("archive tables after bootstrap failure: %w", archiveErr)
			}
		}
		panic("unable to bootstrap the primary user; assuming an api reset, restarting")
	}
	return primary, nil
}

// persistTopology fetches every system and location and upserts them, per
// spec.md §4.6's topology step.
func (s *Supervisor) persistTopology(ctx context.Context, token string) ([]api.SystemData, error) {
	resp, err := s.api.ListSystems(ctx, token)
	if err != nil {
		return nil, err
	}
	for _, sys := range resp.Systems {
		for _, loc := range sys.Locations {
			l := location.New(sys.Symbol, loc.Symbol, location.Type(loc.Type), loc.X, loc.Y, loc.Name)
			if err := s.db.UpsertSystemLocation(ctx, sys.Symbol, l); err != nil {
				return nil, err
			}
		}
	}
	return resp.Systems, nil
}

// bootstrapScouts brings up one scout account per location in every system
// except excludedScoutSystem, per spec.md §4.6.
func (s *Supervisor) bootstrapScouts(ctx context.Context, systems []api.SystemData, logger logging.Logger) ([]*useragent.Agent, error) {
	var scouts []*useragent.Agent
	for _, sys := range systems {
		if sys.Symbol == excludedScoutSystem {
			continue
		}
		for _, loc := range sys.Locations {
			scout := s.newAgent()
			username := fmt.Sprintf("%s-scout-%s", s.cfg.Username.Base, loc.Symbol)
			target := loc.Symbol

			if err := scout.Bootstrap(ctx, username, useragent.AssignmentScout, sys.Symbol, &target); err != nil {
				return nil, err
			}
			logger.Log("info", "scout bootstrapped", map[string]interface{}{"user": username, "credits": scout.Credits})

			if err := scout.EnsureStartupLoan(ctx); err != nil {
				return nil, err
			}
			if len(scout.Machines) == 0 {
				if err := scout.PurchaseFastestShip(ctx); err != nil {
					return nil, err
				}
			}
			scouts = append(scouts, scout)
		}
	}
	return scouts, nil
}

// ensureTraderFunded gives the primary trader a startup loan when broke and
// its first ship when it has none, per spec.md §4.6.
func (s *Supervisor) ensureTraderFunded(ctx context.Context, primary *useragent.Agent) error {
	if err := primary.EnsureStartupLoan(ctx); err != nil {
		return err
	}
	if len(primary.Machines) == 0 {
		return primary.PurchaseLargestShip(ctx)
	}
	return nil
}

// RunUser is the per-user tick loop spec.md §4.6 step 3 describes: step
// every owned machine once, react to credits growth, sleep, repeat, until
// the kill switch trips or the user loses every ship.
func (s *Supervisor) RunUser(ctx context.Context, agent *useragent.Agent, logger logging.Logger) {
	prevCredits := agent.Credits
	for {
		if s.kill.IsTripped() {
			logger.Log("error", "kill switch received, stopping user", map[string]interface{}{"user": agent.Username})
			return
		}

		if len(agent.Machines) == 0 {
			logger.Log("error", "user has no ships and cannot make progress, quitting", map[string]interface{}{"user": agent.Username})
			return
		}

		for i, machine := range agent.Machines {
			if s.stepMachine(ctx, agent, machine, i, logger) {
				return
			}
		}

		if agent.Credits != prevCredits {
			prevCredits = agent.Credits
			logger.Log("info", "credits changed", map[string]interface{}{"user": agent.Username, "credits": agent.Credits})

			if err := s.db.AppendUserStats(ctx, agent.UserID, agent.Credits, agent.GetMyShips()); err != nil {
				logger.Log("error", "failed to persist user stats", map[string]interface{}{"user": agent.Username, "error": err.Error()})
			}
			metrics.RecordTransaction(agent.UserID, "balance", "tick", 0, agent.Credits)

			s.applyGrowthPolicy(ctx, agent, logger)
		}

		s.clock.Sleep(tickInterval)
	}
}

// stepMachine steps one machine and translates its outcome, returning true
// when the whole user loop must stop (a fatal client error tripped the kill
// switch).
func (s *Supervisor) stepMachine(ctx context.Context, agent *useragent.Agent, machine shipmachine.Machine, index int, logger logging.Logger) bool {
	variant := machineVariant(machine)
	started := s.clock.Now()
	outcome, err := machine.Step(ctx)
	duration := s.clock.Now().Sub(started).Seconds()
	metrics.RecordStep(machine.ShipID(), variant, duration, err == nil)

	if err != nil {
		return s.handleStepError(ctx, agent, machine, variant, err, logger)
	}

	switch outcome.Kind {
	case shipmachine.OutcomeCreditsChanged:
		agent.ApplyCreditsDelta(outcome.Delta)
	case shipmachine.OutcomeMorph:
		metrics.RecordMorph(machine.ShipID(), variant, machineVariant(outcome.Next))
		agent.ReplaceMachine(index, outcome.Next)
	}
	return false
}

// Market-mismatch ApiError codes: the offending good is not listed in, or
// not available in the quantity required by, the planet's marketplace.
// Per spec.md §4.6 step 3 / §7, only these trigger machine.Reset(); every
// other business-error code is logged and the machine retries as-is.
const (
	codeGoodNotListed        = 2001
	codeGoodQuantityNotAvail = 2006
)

func isMarketMismatchCode(code int) bool {
	switch code {
	case codeGoodNotListed, codeGoodQuantityNotAvail:
		return true
	default:
		return false
	}
}

func (s *Supervisor) handleStepError(ctx context.Context, agent *useragent.Agent, machine shipmachine.Machine, variant string, err error, logger logging.Logger) bool {
	var clientErr *api.ClientError
	if !errors.As(err, &clientErr) {
		logger.Log("error", "unexpected ship step error", map[string]interface{}{"user": agent.Username, "ship_id": machine.ShipID(), "error": err.Error()})
		return false
	}

	switch clientErr.Kind {
	case api.ServiceUnavailable, api.Unauthorized:
		logger.Log("error", "fatal client error, tripping kill switch", map[string]interface{}{"user": agent.Username, "ship_id": machine.ShipID(), "error": err.Error()})
		s.kill.Trip()
		return true

	case api.ApiError:
		if !isMarketMismatchCode(clientErr.Code) {
			logger.Log("error", "api error, continuing without reset", map[string]interface{}{"user": agent.Username, "ship_id": machine.ShipID(), "error": err.Error()})
			return false
		}
		logger.Log("error", "market mismatch error, resetting machine", map[string]interface{}{"user": agent.Username, "ship_id": machine.ShipID(), "error": err.Error()})
		if resetErr := machine.Reset(ctx); resetErr != nil {
			logger.Log("error", "machine reset failed", map[string]interface{}{"user": agent.Username, "ship_id": machine.ShipID(), "error": resetErr.Error()})
		} else {
			metrics.RecordReset(machine.ShipID(), variant)
		}
		return false

	default:
		logger.Log("error", "ship step error", map[string]interface{}{"user": agent.Username, "ship_id": machine.ShipID(), "error": err.Error()})
		return false
	}
}

// applyGrowthPolicy runs the two credits-triggered policies every tick a
// user's balance changes, per spec.md §4.6: auto-purchase once affordable
// and under the ship cap, auto-payoff once rich and still indebted.
func (s *Supervisor) applyGrowthPolicy(ctx context.Context, agent *useragent.Agent, logger logging.Logger) {
	shipCount := agent.GetMyShips()
	if agent.Credits > shipCount*autoPurchaseCreditsPerShip && shipCount < autoPurchaseMaxShips {
		if err := agent.PurchaseLargestShip(ctx); err != nil {
			logger.Log("error", "auto-purchase failed", map[string]interface{}{"user": agent.Username, "error": err.Error()})
		}
	}

	if agent.Credits > autoPayoffCreditsFloor && agent.OutstandingLoans > 0 {
		if loanID, ok := agent.FirstOutstandingLoan(); ok {
			if err := agent.PayOffLoan(ctx, loanID); err != nil {
				logger.Log("error", "auto-payoff failed", map[string]interface{}{"user": agent.Username, "loan_id": loanID, "error": err.Error()})
			}
		}
	}
}

func machineVariant(m shipmachine.Machine) string {
	switch m.(type) {
	case *shipmachine.Trader:
		return "trader"
	case *shipmachine.Scout:
		return "scout"
	case *shipmachine.SystemTransfer:
		return "system_transfer"
	default:
		return "unknown"
	}
}
