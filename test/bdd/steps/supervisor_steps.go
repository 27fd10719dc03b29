// Package steps holds godog step definitions exercising the supervisor's
// process-lifecycle behavior end to end against fakes, grounded on the
// teacher's test/bdd/steps package layout (one file per feature area).
package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shipmachine"
	"github.com/andrescamacho/spacetraders-go/internal/domain/useragent"
	"github.com/andrescamacho/spacetraders-go/internal/infrastructure/config"
	"github.com/andrescamacho/spacetraders-go/internal/infrastructure/logging"
	"github.com/andrescamacho/spacetraders-go/internal/supervisor"
)

type supervisorWorld struct {
	ra       *bddRemoteAPI
	sup      *supervisor.Supervisor
	agent    *useragent.Agent
	waitErr  error
	tickDone bool
}

func newSupervisorWorld() *supervisorWorld {
	return &supervisorWorld{ra: &bddRemoteAPI{}}
}

// InitializeSupervisorLifecycleScenario registers every step in
// supervisor_lifecycle.feature against a fresh world per scenario.
func InitializeSupervisorLifecycleScenario(sc *godog.ScenarioContext) {
	w := newSupervisorWorld()

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		*w = *newSupervisorWorld()
		return ctx, nil
	})

	sc.Step(`^the game status endpoint returns 503 twice then 200$`, w.theGameStatusEndpointReturns503TwiceThen200)
	sc.Step(`^the supervisor waits for maintenance to end$`, w.theSupervisorWaitsForMaintenanceToEnd)
	sc.Step(`^it should poll the game status endpoint (\d+) times$`, w.itShouldPollTheGameStatusEndpointTimes)
	sc.Step(`^it should return without error$`, w.itShouldReturnWithoutError)

	sc.Step(`^a user with one ship whose next step fails with Unauthorized$`, w.aUserWithOneShipWhoseNextStepFailsWithUnauthorized)
	sc.Step(`^the user's tick loop runs$`, w.theUsersTickLoopRuns)
	sc.Step(`^the kill switch should be tripped$`, w.theKillSwitchShouldBeTripped)
	sc.Step(`^the tick loop should have returned$`, w.theTickLoopShouldHaveReturned)
}

func (w *supervisorWorld) newSupervisor() *supervisor.Supervisor {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	return supervisor.New(w.ra, &bddStore{}, nil, cfg, shared.NewMockClock(time.Now()))
}

func (w *supervisorWorld) theGameStatusEndpointReturns503TwiceThen200() error {
	w.ra.gameStatusErrs = []error{api.NewServiceUnavailableError(), api.NewServiceUnavailableError(), nil}
	w.sup = w.newSupervisor()
	return nil
}

func (w *supervisorWorld) theSupervisorWaitsForMaintenanceToEnd() error {
	w.waitErr = w.sup.WaitForMaintenance(context.Background(), logging.FromContext(context.Background()))
	return nil
}

func (w *supervisorWorld) itShouldPollTheGameStatusEndpointTimes(expected int) error {
	if w.ra.gameStatusCall != expected {
		return fmt.Errorf("expected %d polls, got %d", expected, w.ra.gameStatusCall)
	}
	return nil
}

func (w *supervisorWorld) itShouldReturnWithoutError() error {
	require.NoError(godogT{}, w.waitErr)
	return nil
}

func (w *supervisorWorld) aUserWithOneShipWhoseNextStepFailsWithUnauthorized() error {
	w.sup = w.newSupervisor()
	machine := &bddMachine{
		shipID:   "ship-1",
		outcomes: []shipmachine.StepOutcome{shipmachine.NoneOutcome()},
		errs:     []error{api.NewUnauthorizedError()},
	}
	agent := useragent.NewAgent(w.ra, &bddStore{}, w.ra, &bddStore{}, shared.NewMockClock(time.Now()), "OE-XV-91-2", 500)
	agent.Username = "trader-1"
	agent.Machines = []shipmachine.Machine{machine}
	w.agent = agent
	return nil
}

func (w *supervisorWorld) theUsersTickLoopRuns() error {
	done := make(chan struct{})
	go func() {
		w.sup.RunUser(context.Background(), w.agent, logging.FromContext(context.Background()))
		close(done)
	}()
	select {
	case <-done:
		w.tickDone = true
	case <-time.After(2 * time.Second):
		w.tickDone = false
	}
	return nil
}

func (w *supervisorWorld) theKillSwitchShouldBeTripped() error {
	assert.True(godogT{}, w.sup.KillSwitchTripped())
	return nil
}

func (w *supervisorWorld) theTickLoopShouldHaveReturned() error {
	if !w.tickDone {
		return fmt.Errorf("tick loop did not return within the test timeout")
	}
	return nil
}

// godogT adapts testify's require/assert (which want a *testing.T) to a
// panic-on-failure TestingT so step functions can return plain errors
// instead of threading *testing.T through godog's step signatures.
type godogT struct{}

func (godogT) Errorf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

func (godogT) FailNow() {
	panic("assertion failed")
}
