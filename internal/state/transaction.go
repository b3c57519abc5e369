package state

import (
	"tcgengine/internal/engineerr"
	"tcgengine/internal/model"
)

// Step is one mutation in a Transaction: given the current state, produce
// the next state or fail. Every mutator in this package already has this
// shape once its other arguments are bound via a closure.
type Step func(model.GameState) (model.GameState, *engineerr.Error)

// Run applies steps in order starting from s. If any step fails, Run
// stops immediately and returns the original s unchanged alongside the
// error — the in-progress partial result is discarded, never returned
// (spec §4.1: "on first failure, the original state is restored").
//
// This mirrors the teacher's Transaction.AddOperation/Execute rollback
// contract (internal/transaction/transaction.go) adapted to the engine's
// value-returning mutators: because every Step already returns a new
// state rather than mutating one in place, "rollback" is simply "don't
// adopt the new value" rather than an explicit undo log.
func Run(s model.GameState, steps ...Step) (model.GameState, *engineerr.Error) {
	cur := s
	for _, step := range steps {
		next, err := step(cur)
		if err != nil {
			return s, err
		}
		cur = next
	}
	return cur, nil
}

// Tx is the builder-style counterpart to Run, for callers that assemble
// their step list incrementally (resolvers composing several mutations
// before deciding whether to commit).
type Tx struct {
	base  model.GameState
	steps []Step
}

// NewTx starts a transaction from the given base state.
func NewTx(base model.GameState) *Tx {
	return &Tx{base: base}
}

// Add appends a step and returns the same Tx for chaining.
func (t *Tx) Add(step Step) *Tx {
	t.steps = append(t.steps, step)
	return t
}

// Execute runs every added step in order, returning the base state
// unchanged on the first failure.
func (t *Tx) Execute() (model.GameState, *engineerr.Error) {
	return Run(t.base, t.steps...)
}
