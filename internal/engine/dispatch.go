package engine

import (
	"tcgengine/internal/battle"
	"tcgengine/internal/effect"
	"tcgengine/internal/engineerr"
	"tcgengine/internal/events"
	"tcgengine/internal/loopguard"
	"tcgengine/internal/model"
	"tcgengine/internal/state"
	"tcgengine/internal/types"
	"tcgengine/internal/zone"
)

// SubmitAction dispatches one MainPhaseAction (spec §4.10). It is the
// only mutating entry point Main ever goes through; every other phase
// advances through AdvancePhase instead. Dispatch happens against a
// candidate next state so a loop-guard MustChoose rejection (spec §4.6
// step 3) can discard it without ever having been observable.
func (e *Engine) SubmitAction(a Action) *engineerr.Error {
	if err := e.requireLive(); err != nil {
		return err
	}
	if e.state.Phase != types.PhaseMain {
		err := engineerr.Newf(engineerr.IllegalAction, "action %q is only valid in Main (phase is %q)", a.Kind, e.state.Phase)
		e.recordAndMirror(err)
		return err
	}

	if e.mustChoose && a.Kind == types.ActionPassPriority {
		// Passing can never change the observable fingerprint (spec §4.6
		// step 3: "otherwise the game ends in a draw").
		e.state = state.SetGameOver(e.state, "", "loop-detected")
		events.Publish(e.bus, events.GameOver{Winner: "", Reason: "loop-detected"})
		e.mustChoose = false
		return nil
	}

	// Dispatch against the bus in buffering mode: any event a candidate's
	// zone/effect operations publish along the way stays unobserved until
	// this candidate is confirmed committed below. A mid-dispatch failure
	// or a loop-guard veto discards it instead of flushing (spec §5 ties
	// emitted events to committed transitions, not attempted ones).
	e.bus.BeginBuffer()
	next, err := e.dispatch(e.state, a)
	if err != nil {
		e.bus.Discard()
		e.recordAndMirror(err)
		return err
	}

	if e.mustChoose {
		if loopguard.Fingerprint(next) == e.loopFingerprint {
			e.bus.Discard()
			err := engineerr.New(engineerr.IllegalAction, "loop guard: submit an action that changes observable game state")
			e.recordAndMirror(err)
			return err
		}
		e.mustChoose = false
	}

	e.state = state.RecordAction(next, model.ActionRecord{Player: a.Player, Kind: a.Kind, Turn: e.state.Turn})
	e.bus.Flush()
	e.postStep()
	return nil
}

func (e *Engine) execContext() effect.ExecContext {
	return effect.ExecContext{Catalogue: e.catalogue, Registry: e.registry, Rules: e.rules, Bus: e.bus, RNG: e.rng}
}

// dispatch is the pure switch over Action.Kind; it never mutates e
// itself, so SubmitAction can veto the result.
func (e *Engine) dispatch(s model.GameState, a Action) (model.GameState, *engineerr.Error) {
	switch a.Kind {
	case types.ActionPlayCard:
		return e.playCard(s, a)
	case types.ActionGiveDon:
		return e.giveDon(s, a)
	case types.ActionDeclareAttack:
		return e.declareAttack(s, a)
	case types.ActionUseActivatedEffect:
		return e.useActivatedEffect(s, a)
	case types.ActionEndPhase:
		return e.endPhase(s, a)
	case types.ActionPassPriority:
		return s, nil
	case types.ActionDeclareBlocker, types.ActionPlayCounter:
		return s, engineerr.Newf(engineerr.IllegalAction, "%q may only be submitted during its battle window", a.Kind)
	default:
		return s, engineerr.Newf(engineerr.IllegalAction, "unknown action kind %q", a.Kind)
	}
}

func (e *Engine) playCard(s model.GameState, a Action) (model.GameState, *engineerr.Error) {
	inst, ok := s.Card(a.CardID)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown card %q", a.CardID)
	}
	if inst.Controller != a.Player || inst.Zone != types.ZoneHand {
		return s, engineerr.Newf(engineerr.IllegalAction, "card %q is not playable by %q", a.CardID, a.Player)
	}
	def := e.catalogue.DefinitionFor(inst)
	if def == nil {
		return s, engineerr.Newf(engineerr.InvalidState, "no definition for card %q", a.CardID)
	}
	if def.Category == types.CategoryLeader || def.Category == types.CategoryDon {
		return s, engineerr.Newf(engineerr.IllegalAction, "card %q cannot be played from hand", a.CardID)
	}

	cost := effect.EffectiveCost(s, e.catalogue, a.CardID)
	s, err := e.payDon(s, a.Player, cost)
	if err != nil {
		return s, err
	}

	var to types.Zone
	switch def.Category {
	case types.CategoryCharacter:
		to = types.ZoneCharacterArea
	case types.CategoryStage:
		to = types.ZoneStageArea
	case types.CategoryEvent:
		to = types.ZoneTrash
	default:
		return s, engineerr.Newf(engineerr.InvalidState, "card %q has unplayable category %q", a.CardID, def.Category)
	}

	next, zerr := zone.Move(s, e.catalogue, e.registry, e.rules, e.bus, a.Player, a.CardID, to)
	if zerr != nil {
		return s, zerr
	}
	s = next

	if def.Category == types.CategoryCharacter || def.Category == types.CategoryStage {
		next, zerr = zone.SetCardState(s, e.bus, a.CardID, types.StateActive)
		if zerr != nil {
			return s, zerr
		}
		s = next
		s = effect.Fire(s, e.catalogue, e.registry, e.bus, types.TriggerOnPlay, a.CardID)
	} else {
		// Events resolve then trash (SPEC_FULL): they are never "on the
		// field", so Fire's on-field scan cannot see them — their OnPlay
		// effects are enqueued directly instead.
		s = e.fireEventOnPlay(s, a.CardID, def)
	}
	s = effect.Drain(s, e.registry, e.execContext(), e.history)
	return s, nil
}

// fireEventOnPlay enqueues every OnPlay-timed effect an Event card
// definition carries, bypassing the on-field requirement Fire imposes
// for Triggered effects elsewhere (spec §4.4 ties triggers to "every
// card instance that lives on the field"; an Event never does, so its
// play-time resolution is wired here instead, in the same style as
// Fire's own instance construction).
func (e *Engine) fireEventOnPlay(s model.GameState, cardID types.CardInstanceID, def *model.CardDefinition) model.GameState {
	inst, ok := s.Card(cardID)
	if !ok {
		return s
	}
	for _, ed := range def.Effects {
		if ed.Timing != types.TimingTriggered || ed.Trigger != types.TriggerOnPlay {
			continue
		}
		candidate := model.EffectInstance{
			DefinitionID: ed.ID, SourceCardID: cardID, Resolver: ed.Resolver, Controller: inst.Controller, TriggerTag: types.TriggerOnPlay,
		}
		if !e.registry.Condition(ed.Condition)(s, candidate, e.execContext()) {
			continue
		}
		var effID types.EffectInstanceID
		s.IDs, effID = s.IDs.NextEffectInstanceID()
		candidate.ID = effID
		s = state.EnqueueTrigger(s, candidate)
		events.Publish(e.bus, events.EffectTriggered{Effect: effID, Definition: ed.ID, Source: cardID, Trigger: types.TriggerOnPlay})
	}
	return s
}

// payDon rests n active DON from player's cost area, failing if fewer
// than n are available.
func (e *Engine) payDon(s model.GameState, player types.PlayerID, n int) (model.GameState, *engineerr.Error) {
	if n <= 0 {
		return s, nil
	}
	p, ok := s.Player(player)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown player %q", player)
	}
	var active []types.DonInstanceID
	for _, donID := range p.CostArea() {
		if d, ok := s.Don(donID); ok && d.State == types.DonActive {
			active = append(active, donID)
		}
	}
	if len(active) < n {
		return s, engineerr.Newf(engineerr.IllegalAction, "player %q cannot pay %d DON (has %d active)", player, n, len(active))
	}
	for i := 0; i < n; i++ {
		next, zerr := zone.SetDonState(s, e.bus, active[i], types.DonRested)
		if zerr != nil {
			return s, zerr
		}
		s = next
	}
	return s, nil
}

func (e *Engine) giveDon(s model.GameState, a Action) (model.GameState, *engineerr.Error) {
	d, ok := s.Don(a.DonID)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown don %q", a.DonID)
	}
	if d.Owner != a.Player {
		return s, engineerr.Newf(engineerr.IllegalAction, "don %q does not belong to %q", a.DonID, a.Player)
	}
	c, ok := s.Card(a.TargetID)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown card %q", a.TargetID)
	}
	if c.Controller != a.Player {
		return s, engineerr.Newf(engineerr.IllegalAction, "card %q is not controlled by %q", a.TargetID, a.Player)
	}
	next, zerr := zone.AttachDon(s, e.bus, a.DonID, a.TargetID)
	if zerr != nil {
		return s, zerr
	}
	s = next
	s = effect.Fire(s, e.catalogue, e.registry, e.bus, types.TriggerOnDonAttached, a.TargetID)
	s = effect.Drain(s, e.registry, e.execContext(), e.history)
	return s, nil
}

func (e *Engine) useActivatedEffect(s model.GameState, a Action) (model.GameState, *engineerr.Error) {
	inst, ok := s.Card(a.CardID)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown card %q", a.CardID)
	}
	if inst.Controller != a.Player {
		return s, engineerr.Newf(engineerr.IllegalAction, "card %q is not controlled by %q", a.CardID, a.Player)
	}
	def := e.catalogue.DefinitionFor(inst)
	if def == nil {
		return s, engineerr.Newf(engineerr.InvalidState, "no definition for card %q", a.CardID)
	}
	var ed *model.EffectDefinition
	for i := range def.Effects {
		if def.Effects[i].ID == a.EffectDefID {
			ed = &def.Effects[i]
			break
		}
	}
	if ed == nil || ed.Timing != types.TimingActivated {
		return s, engineerr.Newf(engineerr.IllegalAction, "card %q has no activated effect %q", a.CardID, a.EffectDefID)
	}
	if ed.OncePerTurn && inst.HasFlag(string(ed.ID)) {
		return s, engineerr.Newf(engineerr.IllegalAction, "effect %q already used this turn", ed.ID)
	}
	candidate := model.EffectInstance{DefinitionID: ed.ID, SourceCardID: a.CardID, Resolver: ed.Resolver, Controller: a.Player, Targets: a.Targets}
	if !e.registry.Condition(ed.Condition)(s, candidate, e.execContext()) {
		return s, engineerr.Newf(engineerr.IllegalAction, "effect %q is not currently eligible", ed.ID)
	}

	next, err := e.payActivationCost(s, a.Player, a.CardID, ed)
	if err != nil {
		return s, err
	}
	s = next

	var effID types.EffectInstanceID
	s.IDs, effID = s.IDs.NextEffectInstanceID()
	candidate.ID = effID
	s = state.EnqueueTrigger(s, candidate)
	events.Publish(e.bus, events.EffectTriggered{Effect: effID, Definition: ed.ID, Source: a.CardID, Trigger: ""})
	s = effect.Drain(s, e.registry, e.execContext(), e.history)
	return s, nil
}

// payActivationCost pays an Activated effect's declared cost (spec
// §4.4.1: "activation consumes its declared cost ... before enqueueing
// the instance"). Discard selection is not part of the Action closed set
// (spec §4.10), so a DiscardCount cost discards from the tail of hand —
// the same last-resort order the End-phase hand trim uses — rather than
// inventing a discard-choice action the spec never names.
func (e *Engine) payActivationCost(s model.GameState, player types.PlayerID, cardID types.CardInstanceID, ed *model.EffectDefinition) (model.GameState, *engineerr.Error) {
	if ed.Cost == nil {
		return s, nil
	}
	if ed.Cost.RestSelf {
		inst, ok := s.Card(cardID)
		if !ok {
			return s, engineerr.Newf(engineerr.InvalidState, "unknown card %q", cardID)
		}
		if inst.State != types.StateActive {
			return s, engineerr.Newf(engineerr.IllegalAction, "card %q must be active to pay its own rest cost", cardID)
		}
		next, zerr := zone.SetCardState(s, e.bus, cardID, types.StateRested)
		if zerr != nil {
			return s, zerr
		}
		s = next
	}
	if ed.Cost.DonToRest > 0 {
		next, err := e.payDon(s, player, ed.Cost.DonToRest)
		if err != nil {
			return s, err
		}
		s = next
	}
	if ed.Cost.DiscardCount > 0 {
		p, ok := s.Player(player)
		if !ok {
			return s, engineerr.Newf(engineerr.InvalidState, "unknown player %q", player)
		}
		hand := p.Hand()
		if len(hand) < ed.Cost.DiscardCount {
			return s, engineerr.Newf(engineerr.IllegalAction, "player %q cannot discard %d cards (hand has %d)", player, ed.Cost.DiscardCount, len(hand))
		}
		for i := 0; i < ed.Cost.DiscardCount; i++ {
			p, _ := s.Player(player)
			hand := p.Hand()
			next, zerr := zone.Move(s, e.catalogue, e.registry, e.rules, e.bus, player, hand[len(hand)-1], types.ZoneTrash)
			if zerr != nil {
				return s, zerr
			}
			s = next
		}
	}
	return s, nil
}

func (e *Engine) endPhase(s model.GameState, a Action) (model.GameState, *engineerr.Error) {
	next, zerr := e.phaseRunner.EndMain(s)
	if zerr != nil {
		return s, zerr
	}
	next, zerr = e.phaseRunner.Advance(next)
	if zerr != nil {
		return s, zerr
	}
	return next, nil
}

// declareAttack resolves an attack declaration end to end, including the
// blocker and counter windows, which are interactive: the façade queries
// e.provider for the defender's choices before calling into package
// battle, since Resolver.Declare itself takes both as already-decided
// parameters (spec §4.5 steps 3-4).
func (e *Engine) declareAttack(s model.GameState, a Action) (model.GameState, *engineerr.Error) {
	d := battle.Declaration{Attacker: a.CardID, Target: a.TargetID}
	defenderPlayer := s.Opponent(a.Player)

	blockerChoice := e.requestBlocker(s, defenderPlayer, d)
	counters := e.requestCounters(s, defenderPlayer)

	return e.battler.Declare(s, a.Player, d, blockerChoice, counters)
}

func (e *Engine) requestBlocker(s model.GameState, defender types.PlayerID, d battle.Declaration) types.CardInstanceID {
	if e.provider == nil {
		return ""
	}
	snap := buildSnapshot(s, e.catalogue, e.registry, e.continuous)
	act, ok := e.provider.RequestAction(defender, blockerWindowActionKinds, snap)
	if !ok || act.Kind != types.ActionDeclareBlocker {
		return ""
	}
	return act.TargetID
}

func (e *Engine) requestCounters(s model.GameState, defender types.PlayerID) []types.CardInstanceID {
	if e.provider == nil {
		return nil
	}
	var counters []types.CardInstanceID
	p, ok := s.Player(defender)
	if !ok {
		return nil
	}
	// Bounded by hand size: a defender can never play more counters than
	// cards in hand, which also guards against a misbehaving provider
	// looping forever.
	limit := len(p.Hand())
	for i := 0; i < limit; i++ {
		snap := buildSnapshot(s, e.catalogue, e.registry, e.continuous)
		act, ok := e.provider.RequestAction(defender, counterWindowActionKinds, snap)
		if !ok || act.Kind != types.ActionPlayCounter {
			break
		}
		counters = append(counters, act.CardID)
	}
	return counters
}
