// Package zone is the zone manager (spec §4.2): the only place a card or
// DON instance's zone actually changes. It sits on top of package state's
// raw MoveCard/MoveDon primitives and adds the policy those primitives
// deliberately omit — zone-cap enforcement, DON attach/detach bookkeeping,
// and event emission — the way the teacher's deck package (internal/game/
// deck/deck.go) wraps plain slice mutation with cap checks and its own
// bookkeeping (drawnCardCount, shuffleCount) rather than leaving callers
// to get it right themselves.
package zone

import (
	"tcgengine/internal/effect"
	"tcgengine/internal/engineerr"
	"tcgengine/internal/events"
	"tcgengine/internal/loopguard"
	"tcgengine/internal/model"
	"tcgengine/internal/rules"
	"tcgengine/internal/state"
	"tcgengine/internal/types"
)

// fieldZones are the zones subject to a rules-context cap.
var fieldZones = map[types.Zone]struct{}{
	types.ZoneCharacterArea: {},
	types.ZoneStageArea:     {},
	types.ZoneHand:          {},
}

func capFor(ctx rules.Context, z types.Zone) int {
	switch z {
	case types.ZoneCharacterArea:
		return ctx.MaxCharacters
	case types.ZoneStageArea:
		return ctx.MaxStage
	case types.ZoneHand:
		return ctx.MaxHand
	default:
		return 0 // uncapped
	}
}

// Move relocates a card instance from its current zone to to, enforcing
// to's cap (if any) and emitting CardMoved. If the card is leaving a field
// zone it loses any given DON (DetachAll), drops its own
// UntilSourceLeavesField modifiers, fires TriggerOnLeavesField against a
// pre-move snapshot (spec §4.4: the zone manager is what emits this
// trigger), and CardLeftField is emitted after CardMoved, matching the
// order a resolver listening for either would expect: the move itself is
// the fact, leaving-the-field is its consequence. cat and reg are only
// consulted when the card actually leaves a field zone; callers moving
// cards between non-field zones (dealing, drawing, discarding from hand)
// may pass the engine's usual catalogue/registry unconditionally, the same
// collaborators they already thread through the rest of the call.
func Move(s model.GameState, cat model.Catalogue, reg *effect.Registry, ctx rules.Context, bus *events.Bus, player types.PlayerID, card types.CardInstanceID, to types.Zone) (model.GameState, *engineerr.Error) {
	inst, ok := s.Card(card)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown card instance %q", card).WithContext("card", card)
	}
	from := inst.Zone
	if from == to {
		return s, engineerr.Newf(engineerr.IllegalAction, "card %q already in zone %q", card, to).
			WithContext("card", card).WithContext("zone", to)
	}

	if cap := capFor(ctx, to); cap > 0 {
		p, ok := s.Player(player)
		if !ok {
			return s, engineerr.Newf(engineerr.InvalidState, "unknown player %q", player).WithContext("player", player)
		}
		if len(p.CardsIn(to)) >= cap {
			return s, engineerr.Newf(engineerr.RulesViolation, "zone %q is full (cap %d)", to, cap).
				WithContext("zone", to).WithContext("cap", cap)
		}
	}

	wasOnField := isFieldArea(from)
	leavingSnapshot := inst
	next, err := state.MoveCard(s, player, card, from, to)
	if err != nil {
		return s, err
	}

	if wasOnField && !isFieldArea(to) {
		next, err = DetachAll(next, bus, card)
		if err != nil {
			return s, err
		}
		// Leaving the field resets the instance's own once-per-turn marks
		// (spec §4.2: "reset once-per-turn flags attached to the instance")
		// and expires any modifier scoped to "until this card leaves the
		// field" (spec §4.2/§3).
		if leaving, ok := next.Card(card); ok {
			leaving.Flags = nil
			leaving.Modifiers = dropModifiersOfDuration(leaving.Modifiers, types.DurationUntilSourceLeavesField)
			next, err = state.UpdateCard(next, card, leaving)
			if err != nil {
				return s, err
			}
		}
		next = effect.FireForInstance(next, cat, reg, bus, types.TriggerOnLeavesField, card, leavingSnapshot)
	}

	if isNonIdempotentMove(from, to) {
		next.LoopGuard = loopguard.Invalidate(next.LoopGuard)
	}

	events.Publish(bus, events.CardMoved{Card: card, Owner: player, From: from, To: to})
	if wasOnField && !isFieldArea(to) {
		events.Publish(bus, events.CardLeftField{Card: card, Zone: from})
	}
	return next, nil
}

func dropModifiersOfDuration(mods []model.Modifier, d types.Duration) []model.Modifier {
	kept := mods[:0:0]
	for _, m := range mods {
		if m.Duration != d {
			kept = append(kept, m)
		}
	}
	return kept
}

// isNonIdempotentMove reports whether a move changes the game's long-run
// trajectory enough to invalidate the loop guard's repeat counts (spec
// §4.6 step 4: "cleared lazily ... on any non-idempotent event"): a card
// drawn, discarded, or a life card gained or lost.
func isNonIdempotentMove(from, to types.Zone) bool {
	return to == types.ZoneTrash || to == types.ZoneHand || from == types.ZoneLife || to == types.ZoneLife
}

// SetCardState rests or activates a card instance, emitting
// CardStateChanged.
func SetCardState(s model.GameState, bus *events.Bus, card types.CardInstanceID, to types.CardState) (model.GameState, *engineerr.Error) {
	inst, ok := s.Card(card)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown card instance %q", card).WithContext("card", card)
	}
	from := inst.State
	if from == to {
		return s, nil
	}
	next, err := state.SetCardState(s, card, to)
	if err != nil {
		return s, err
	}
	events.Publish(bus, events.CardStateChanged{Card: card, From: from, To: to})
	return next, nil
}

// isFieldArea reports whether z is a zone where a card can host DON and
// be subject to TriggerOnLeavesField.
func isFieldArea(z types.Zone) bool {
	return z == types.ZoneLeaderArea || z == types.ZoneCharacterArea || z == types.ZoneStageArea
}
