package engine

import (
	"tcgengine/internal/engineerr"
	"tcgengine/internal/types"
)

// RunMain drives Main to completion by repeatedly asking the provider
// for the active player's next action and dispatching it through
// SubmitAction, stopping once Main ends or the game ends. A provider
// that declines to answer (ok == false) does not stop the loop: the
// answer is treated the same as an explicit pass — spec §4.10 names no
// other way for a host to yield without a turn limit. It is a
// convenience on top of SubmitAction,
// not a new primitive: a host that wants to drive individual actions
// itself can call SubmitAction directly instead.
func (e *Engine) RunMain() *engineerr.Error {
	for {
		if err := e.requireLive(); err != nil {
			return err
		}
		if e.state.Phase != types.PhaseMain {
			return nil
		}
		if e.provider == nil {
			return engineerr.New(engineerr.NotSetup, "RunMain requires an InputProvider")
		}

		snap := e.Snapshot()
		act, ok := e.provider.RequestAction(e.state.ActivePlayer, mainPhaseActionKinds, snap)
		if !ok {
			act = Action{Player: e.state.ActivePlayer, Kind: types.ActionPassPriority}
		}

		if err := e.SubmitAction(act); err != nil {
			return err
		}

		if e.state.GameOver {
			return nil
		}
	}
}
