package engine

import (
	"math/rand"

	"go.uber.org/zap"

	"tcgengine/internal/battle"
	"tcgengine/internal/effect"
	"tcgengine/internal/engineerr"
	"tcgengine/internal/events"
	"tcgengine/internal/logging"
	"tcgengine/internal/loopguard"
	"tcgengine/internal/model"
	"tcgengine/internal/phase"
	"tcgengine/internal/rules"
	"tcgengine/internal/state"
	"tcgengine/internal/types"
)

// Engine is the façade: the one object a host holds. It owns the
// authoritative GameState and every collaborator the rest of the core
// needs (catalogue, registries, rules, event bus, error history, rng,
// input provider), mirroring the teacher's GameUseCase
// (internal/usecase/game_usecase.go) — a single struct threading
// collaborators into the package-level operations underneath it, rather
// than a bag of free functions a host calls directly.
type Engine struct {
	state      model.GameState
	catalogue  model.Catalogue
	rules      rules.Context
	registry   *effect.Registry
	continuous *effect.ContinuousRegistry
	bus        *events.Bus
	history    *engineerr.History
	rng        *rand.Rand
	provider   InputProvider

	phaseRunner phase.Runner
	battler     battle.Resolver

	setup    bool
	over     bool
	debug    bool
	gameID   string

	mustChoose      bool
	loopFingerprint string
}

// New constructs an Engine from the host-supplied collaborators (spec
// §6's "Card-definition contract" and "PlayerInputProvider"). seed feeds
// the one explicit *rand.Rand the engine ever uses (spec §9: no global
// RNG state). gameID is purely a logging correlation field (mirroring
// the teacher's game_id-tagged logger context) — it plays no part in
// GameState and never affects the determinism boundary.
func New(gameID string, cat model.Catalogue, reg *effect.Registry, creg *effect.ContinuousRegistry, rc rules.Context, provider InputProvider, seed int64) (*Engine, *engineerr.Error) {
	if err := rc.Validate(); err != nil {
		return nil, engineerr.Wrap(engineerr.RulesViolation, "invalid rules context", err)
	}
	bus := events.NewBus()
	history := engineerr.NewHistory(256)
	e := &Engine{
		catalogue:  cat,
		rules:      rc,
		registry:   reg,
		continuous: creg,
		bus:        bus,
		history:    history,
		rng:        rand.New(rand.NewSource(seed)),
		provider:   provider,
		gameID:     gameID,
	}
	e.phaseRunner = phase.Runner{Catalogue: cat, Registry: reg, Continuous: creg, Rules: rc, Bus: bus, History: history}
	e.battler = battle.Resolver{Catalogue: cat, Registry: reg, Continuous: creg, Rules: rc, Bus: bus, History: history}
	return e, nil
}

// SetDebug records the debug-mode flag. Nothing in the engine reads it:
// ErrorOccurred events carry only an error's code and message whether or
// not it is set, and an error's Context map is only visible through
// ErrorHistory.
func (e *Engine) SetDebug(on bool) {
	e.debug = on
}

// Subscribe registers a filtered observer on the event bus (spec §4.10
// subscribe(event_filter)). An empty kinds slice receives every event.
func (e *Engine) Subscribe(kinds []string, handler func(events.Event)) events.SubscriptionID {
	return e.bus.SubscribeFiltered(kinds, handler)
}

// ErrorHistory returns the bounded ring buffer of recorded errors (spec
// §4.8), optionally filtered by code.
func (e *Engine) ErrorHistory(code engineerr.Code) []*engineerr.Error {
	if code == "" {
		return e.history.All()
	}
	return e.history.Filter(code)
}

func (e *Engine) log() *zap.Logger {
	return logging.WithGame(e.gameID, string(e.state.ActivePlayer))
}

// recordAndMirror logs a failure, records it to history, and mirrors it
// onto the event bus (spec §4.8: "returned, logged to the ring buffer,
// and mirrored on the event bus").
func (e *Engine) recordAndMirror(err *engineerr.Error) {
	if err == nil {
		return
	}
	e.history.Record(err)
	l := e.log().With(zap.String("code", string(err.Code)), zap.String("message", err.Message))
	if err.Code.Fatal() {
		l.Error("invariant violation")
		e.over = true
	} else {
		l.Warn("rejected")
	}
	payload := events.ErrorOccurred{Code: string(err.Code), Message: err.Message}
	events.Publish(e.bus, payload)
}

// requireLive rejects any operation attempted before Setup or after the
// engine marked itself unusable (spec §7 NotSetup/AlreadyOver/InvalidState
// propagation policy).
func (e *Engine) requireLive() *engineerr.Error {
	if !e.setup {
		return engineerr.New(engineerr.NotSetup, "engine has not completed Setup")
	}
	if e.over {
		return engineerr.New(engineerr.AlreadyOver, "engine is unusable after a fatal invariant violation")
	}
	if e.state.GameOver {
		return engineerr.New(engineerr.AlreadyOver, "game has already ended")
	}
	return nil
}

// AdvancePhase drives the current non-Main phase's fixed work (spec
// §4.3/§4.10 advance_phase()). Calling it while in Main returns an
// IllegalAction — use SubmitAction with an ActionEndPhase to leave Main
// first.
func (e *Engine) AdvancePhase() *engineerr.Error {
	if err := e.requireLive(); err != nil {
		return err
	}
	e.bus.BeginBuffer()
	next, err := e.phaseRunner.Advance(e.state)
	if err != nil {
		e.bus.Discard()
		e.recordAndMirror(err)
		return err
	}
	e.state = next
	e.bus.Flush()
	e.postStep()
	return nil
}

// AdvanceToMain repeatedly calls AdvancePhase until Main is reached or
// the game ends — a host convenience for the fixed Refresh/Draw/DonPhase
// run-up that has no player decision point, not a new façade primitive.
func (e *Engine) AdvanceToMain() *engineerr.Error {
	for {
		if err := e.requireLive(); err != nil {
			return err
		}
		if e.state.Phase == types.PhaseMain {
			return nil
		}
		if err := e.AdvancePhase(); err != nil {
			return err
		}
		if e.state.GameOver {
			return nil
		}
	}
}

// postStep runs the loop-guard bookkeeping every resolution step needs
// (spec §4.6, §5 "terminal checks are evaluated between every discrete
// resolution step").
func (e *Engine) postStep() {
	if e.state.GameOver {
		return
	}
	table, result := loopguard.Record(e.state.LoopGuard, e.state)
	e.state.LoopGuard = table
	if !result.Exceeded {
		return
	}
	events.Publish(e.bus, events.LoopGuardTriggered{Fingerprint: result.Fingerprint, Count: result.Count})
	if e.state.Phase == types.PhaseMain {
		e.mustChoose = true
		e.loopFingerprint = result.Fingerprint
		return
	}
	e.state = state.SetGameOver(e.state, "", "loop-detected")
	events.Publish(e.bus, events.GameOver{Winner: "", Reason: "loop-detected"})
}
