package effect

import (
	"sort"

	"tcgengine/internal/engineerr"
	"tcgengine/internal/events"
	"tcgengine/internal/model"
	"tcgengine/internal/state"
	"tcgengine/internal/types"
)

// Fire enqueues an EffectInstance for every on-field card whose
// definition carries a Triggered effect matching tag and whose condition
// holds (spec §4.4 "Triggers"). source, when non-empty, restricts firing
// to effects owned by that one card; every caller in the engine passes
// one (the played card, the DON's host, the attacker or blocker, each of
// a player's field cards at End). Leave it empty to fire for every
// on-field card. On-KO and on-leaves-field go through FireForInstance.
func Fire(s model.GameState, cat model.Catalogue, reg *Registry, bus *events.Bus, tag types.TriggerTag, source types.CardInstanceID) model.GameState {
	for _, cardID := range onFieldCards(s) {
		if source != "" && cardID != source {
			continue
		}
		inst, ok := s.Card(cardID)
		if !ok {
			continue
		}
		s = fireForCard(s, cat, reg, bus, tag, cardID, inst)
	}
	return s
}

// FireForInstance fires tag against one explicit (card, instance) pair
// without consulting onFieldCards' zone scan. OnKO and OnLeavesField both
// name a card that the battle resolver or zone manager has, by the time
// the trigger is checked, already moved off the field — Fire's on-field
// scan can never match such a card, so callers holding a pre-move snapshot
// of the departing instance use this instead.
func FireForInstance(s model.GameState, cat model.Catalogue, reg *Registry, bus *events.Bus, tag types.TriggerTag, cardID types.CardInstanceID, inst model.CardInstance) model.GameState {
	return fireForCard(s, cat, reg, bus, tag, cardID, inst)
}

func fireForCard(s model.GameState, cat model.Catalogue, reg *Registry, bus *events.Bus, tag types.TriggerTag, cardID types.CardInstanceID, inst model.CardInstance) model.GameState {
	def := cat.DefinitionFor(inst)
	if def == nil {
		return s
	}
	for _, ed := range def.Effects {
		if ed.Timing != types.TimingTriggered || ed.Trigger != tag {
			continue
		}
		if ed.OncePerTurn && inst.HasFlag(string(ed.ID)) {
			continue
		}
		candidate := model.EffectInstance{
			DefinitionID: ed.ID,
			SourceCardID: cardID,
			Resolver:     ed.Resolver,
			Controller:   inst.Controller,
			TriggerTag:   tag,
		}
		if !reg.Condition(ed.Condition)(s, candidate, ExecContext{Catalogue: cat}) {
			continue
		}

		var effID types.EffectInstanceID
		s.IDs, effID = s.IDs.NextEffectInstanceID()
		candidate.ID = effID
		s = state.EnqueueTrigger(s, candidate)
		events.Publish(bus, events.EffectTriggered{
			Effect: effID, Definition: ed.ID, Source: cardID, Trigger: tag,
		})
	}
	return s
}

// Drain resolves the pending-triggers queue to fixpoint (spec §4.4 "The
// resolver"): effects owned by the active player first, then by the
// non-active player; within an owner, by enqueue timestamp. Each effect
// resolves inside its own transaction so a resolver failure reverts only
// that effect, logged to history rather than aborting the whole drain.
// If resolving an effect enqueues further triggers, they are appended to
// the same queue and drained in this same call, matching the spec's "join
// the queue and are drained in the same cycle."
func Drain(s model.GameState, reg *Registry, ec ExecContext, history *engineerr.History) model.GameState {
	for len(s.PendingTriggers) > 0 {
		ordered := orderedQueue(s, s.PendingTriggers)
		next := ordered[0]
		remaining := ordered[1:]
		s = state.DequeueTriggers(s, remaining)

		s = resolveOne(s, reg, ec, next, history)
	}
	return s
}

func orderedQueue(s model.GameState, queue []model.EffectInstance) []model.EffectInstance {
	out := make([]model.EffectInstance, len(queue))
	copy(out, queue)
	active := s.ActivePlayer
	sort.SliceStable(out, func(i, j int) bool {
		iActive := out[i].Controller == active
		jActive := out[j].Controller == active
		if iActive != jActive {
			return iActive
		}
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

func resolveOne(s model.GameState, reg *Registry, ec ExecContext, inst model.EffectInstance, history *engineerr.History) model.GameState {
	fn, ok := reg.Resolver(inst.Resolver)
	if !ok {
		err := engineerr.Newf(engineerr.InvalidState, "no resolver registered for %q", inst.Resolver).
			WithContext("resolver", inst.Resolver).WithContext("effect", inst.ID)
		history.Record(err)
		events.Publish(ec.Bus, events.EffectResolved{Effect: inst.ID, Fizzled: true, Reason: err.Message})
		return s
	}

	next, err := fn(s, inst, ec)
	if err != nil {
		// A failing resolver reverts only this effect (spec §4.4: "partial
		// failures revert that effect only and log to the error taxonomy"),
		// whether the failure is a silent fizzle or an explicit TargetLost.
		history.Record(err)
		events.Publish(ec.Bus, events.EffectResolved{Effect: inst.ID, Fizzled: true, Reason: err.Message})
		return s
	}

	events.Publish(ec.Bus, events.EffectResolved{Effect: inst.ID, Fizzled: false})
	if def, ok := cardDefFor(next, ec.Catalogue, inst.SourceCardID); ok && effectOncePerTurn(def, inst.DefinitionID) {
		if card, ok := next.Card(inst.SourceCardID); ok {
			card = card.WithFlag(string(inst.DefinitionID), true)
			if updated, uerr := state.UpdateCard(next, inst.SourceCardID, card); uerr == nil {
				next = updated
			}
		}
	}
	return next
}

func cardDefFor(s model.GameState, cat model.Catalogue, card types.CardInstanceID) (*model.CardDefinition, bool) {
	inst, ok := s.Card(card)
	if !ok {
		return nil, false
	}
	def := cat.DefinitionFor(inst)
	return def, def != nil
}

func effectOncePerTurn(def *model.CardDefinition, effID types.EffectDefinitionID) bool {
	for _, ed := range def.Effects {
		if ed.ID == effID {
			return ed.OncePerTurn
		}
	}
	return false
}

// ClearOncePerTurnFlags clears every once-per-turn flag on player's
// on-field cards (spec §4.4: "the flag clears at Refresh for the
// controller").
func ClearOncePerTurnFlags(s model.GameState, cat model.Catalogue, player types.PlayerID) model.GameState {
	p, ok := s.Player(player)
	if !ok {
		return s
	}
	ids := append(append(append([]types.CardInstanceID{}, p.CharacterArea()...), p.CardsIn(types.ZoneStageArea)...), p.LeaderID())
	for _, cardID := range ids {
		if cardID == "" {
			continue
		}
		inst, ok := s.Card(cardID)
		if !ok {
			continue
		}
		def := cat.DefinitionFor(inst)
		if def == nil {
			continue
		}
		for _, ed := range def.Effects {
			if ed.OncePerTurn && inst.HasFlag(string(ed.ID)) {
				inst = inst.WithFlag(string(ed.ID), false)
			}
		}
		if updated, err := state.UpdateCard(s, cardID, inst); err == nil {
			s = updated
		}
	}
	return s
}
