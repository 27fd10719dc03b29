// Package shipmachine implements the per-ship cooperative state machines the
// supervisor steps once per tick: Trader, Scout, and SystemTransfer. Each
// step() advances one state and returns a StepOutcome. Buying fuel and
// creating a flight plan always fall in separate steps, but one step may
// make several remote and persistence calls (selling every cargo line, or
// probing the fuel shortfall and then buying fuel).
package shipmachine

import "context"

// Machine is the common capability set every ship variant implements,
// modeled as a tagged variant (three distinct structs) rather than a single
// type with dynamic dispatch, matching the source's ship_machines::{trader,
// scout, system_change} module split translated into Go idiom.
type Machine interface {
	// Step performs one unit of work and reports what happened.
	Step(ctx context.Context) (StepOutcome, error)
	// Reset jettisons all cargo, clears local cargo, and returns to the
	// initial state, per spec.md §4.4d.
	Reset(ctx context.Context) error
	ShipID() string
}

// OutcomeKind tags which variant of StepOutcome is populated.
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeCreditsChanged
	OutcomeMorph
)

// StepOutcome is the small tagged union a Step returns: nothing happened,
// credits changed by Delta, or the machine must be replaced by Next.
type StepOutcome struct {
	Kind  OutcomeKind
	Delta int
	Next  Machine
}

func NoneOutcome() StepOutcome { return StepOutcome{Kind: OutcomeNone} }

func CreditsChangedOutcome(delta int) StepOutcome {
	return StepOutcome{Kind: OutcomeCreditsChanged, Delta: delta}
}

func MorphOutcome(next Machine) StepOutcome {
	return StepOutcome{Kind: OutcomeMorph, Next: next}
}
