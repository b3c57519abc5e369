// Package state holds the value-returning mutators that produce a new
// model.GameState from an old one (spec §4.1, "State container"). Every
// function here takes a GameState by value and returns a new GameState by
// value; none ever mutates shared data in place, mirroring the teacher's
// immutable-update methods (internal/game/player.go's WithFlag/WithCardsIn
// family) lifted to the whole-game level. Zone-capacity enforcement,
// attach/detach bookkeeping, and event emission belong to the zone
// manager built on top of this package, not here: these mutators are the
// raw, unconditional primitives it composes.
package state

import (
	"tcgengine/internal/engineerr"
	"tcgengine/internal/model"
	"tcgengine/internal/types"
)

// UpdatePlayer returns a copy of s with player's state replaced by next.
func UpdatePlayer(s model.GameState, player types.PlayerID, next model.PlayerState) (model.GameState, *engineerr.Error) {
	if _, ok := s.Players[player]; !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown player %q", player).WithContext("player", player)
	}
	players := make(map[types.PlayerID]model.PlayerState, len(s.Players))
	for k, v := range s.Players {
		players[k] = v
	}
	players[player] = next
	s.Players = players
	return s, nil
}

// UpdateCard returns a copy of s with card's instance replaced by next.
func UpdateCard(s model.GameState, card types.CardInstanceID, next model.CardInstance) (model.GameState, *engineerr.Error) {
	if _, ok := s.Cards[card]; !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown card instance %q", card).WithContext("card", card)
	}
	cards := make(map[types.CardInstanceID]model.CardInstance, len(s.Cards))
	for k, v := range s.Cards {
		cards[k] = v
	}
	cards[card] = next
	s.Cards = cards
	return s, nil
}

// UpdateDon returns a copy of s with don's instance replaced by next.
func UpdateDon(s model.GameState, don types.DonInstanceID, next model.DonInstance) (model.GameState, *engineerr.Error) {
	if _, ok := s.Dons[don]; !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown don instance %q", don).WithContext("don", don)
	}
	dons := make(map[types.DonInstanceID]model.DonInstance, len(s.Dons))
	for k, v := range s.Dons {
		dons[k] = v
	}
	dons[don] = next
	s.Dons = dons
	return s, nil
}

// MoveCard relocates a card instance between zones of the same player's
// PlayerState, appending it to the destination zone's order and removing
// it from the source. It is the atomic primitive the zone manager builds
// "move" on top of; it does not check zone caps, attach/detach DON, or
// emit events.
func MoveCard(s model.GameState, player types.PlayerID, card types.CardInstanceID, from, to types.Zone) (model.GameState, *engineerr.Error) {
	p, ok := s.Players[player]
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown player %q", player).WithContext("player", player)
	}
	fromIDs := p.CardsIn(from)
	idx := indexOfCard(fromIDs, card)
	if idx < 0 {
		return s, engineerr.Newf(engineerr.InvalidState, "card %q not in zone %q", card, from).
			WithContext("card", card).WithContext("zone", from)
	}
	fromIDs = append(fromIDs[:idx], fromIDs[idx+1:]...)
	toIDs := append(p.CardsIn(to), card)
	p = p.WithCardsIn(from, fromIDs).WithCardsIn(to, toIDs)

	inst, ok := s.Cards[card]
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown card instance %q", card).WithContext("card", card)
	}
	inst.Zone = to

	s, errp := UpdatePlayer(s, player, p)
	if errp != nil {
		return s, errp
	}
	return UpdateCard(s, card, inst)
}

// MoveDon relocates a DON instance between a player's DON zones, the DON
// equivalent of MoveCard.
func MoveDon(s model.GameState, player types.PlayerID, don types.DonInstanceID, from, to types.Zone) (model.GameState, *engineerr.Error) {
	p, ok := s.Players[player]
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown player %q", player).WithContext("player", player)
	}
	fromIDs := p.DonsIn(from)
	idx := indexOfDon(fromIDs, don)
	if idx < 0 {
		return s, engineerr.Newf(engineerr.InvalidState, "don %q not in zone %q", don, from).
			WithContext("don", don).WithContext("zone", from)
	}
	fromIDs = append(fromIDs[:idx], fromIDs[idx+1:]...)
	toIDs := append(p.DonsIn(to), don)
	p = p.WithDonsIn(from, fromIDs).WithDonsIn(to, toIDs)

	inst, ok := s.Dons[don]
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown don instance %q", don).WithContext("don", don)
	}
	inst.Zone = to

	s, errp := UpdatePlayer(s, player, p)
	if errp != nil {
		return s, errp
	}
	return UpdateDon(s, don, inst)
}

// SetCardState returns a copy of s with card's orientation (active/rested)
// replaced. This mutator has no direct spec-listed name of its own; it is
// the obvious primitive the Refresh phase (spec §4.3) and the battle
// resolver (§4.5, resting a blocker) both need and is factored out here
// rather than duplicated in each.
func SetCardState(s model.GameState, card types.CardInstanceID, state types.CardState) (model.GameState, *engineerr.Error) {
	inst, ok := s.Cards[card]
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown card instance %q", card).WithContext("card", card)
	}
	inst.State = state
	return UpdateCard(s, card, inst)
}

// SetDonState returns a copy of s with don's orientation replaced.
func SetDonState(s model.GameState, don types.DonInstanceID, state types.DonState) (model.GameState, *engineerr.Error) {
	inst, ok := s.Dons[don]
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown don instance %q", don).WithContext("don", don)
	}
	inst.State = state
	return UpdateDon(s, don, inst)
}

// SetPhase returns a copy of s in the given phase.
func SetPhase(s model.GameState, phase types.Phase) model.GameState {
	s.Phase = phase
	return s
}

// SetActivePlayer returns a copy of s with the active player replaced.
func SetActivePlayer(s model.GameState, player types.PlayerID) model.GameState {
	s.ActivePlayer = player
	return s
}

// AdvanceTurn returns a copy of s with the turn counter incremented and
// the active player rotated to the next seat in PlayerOrder.
func AdvanceTurn(s model.GameState) model.GameState {
	s.Turn++
	s.ActivePlayer = s.Opponent(s.ActivePlayer)
	return s
}

// EnqueueTrigger appends eff to the pending-triggers queue, stamping it
// with the next monotonic timestamp so later draining can break ties
// deterministically (spec §4.4, trigger ordering).
func EnqueueTrigger(s model.GameState, eff model.EffectInstance) model.GameState {
	s, ts := s.NextTimestamp()
	eff.Timestamp = ts
	queue := make([]model.EffectInstance, len(s.PendingTriggers), len(s.PendingTriggers)+1)
	copy(queue, s.PendingTriggers)
	s.PendingTriggers = append(queue, eff)
	return s
}

// DequeueTriggers returns a copy of s with its pending-triggers queue
// replaced by remaining (normally a subset of the original queue with the
// drained entries removed).
func DequeueTriggers(s model.GameState, remaining []model.EffectInstance) model.GameState {
	queue := make([]model.EffectInstance, len(remaining))
	copy(queue, remaining)
	s.PendingTriggers = queue
	return s
}

// MarkAttacked returns a copy of s recording that card has attacked this
// turn (spec §4.5: an attacker may declare at most one attack per turn
// unless a keyword says otherwise).
func MarkAttacked(s model.GameState, card types.CardInstanceID) model.GameState {
	next := make(map[types.CardInstanceID]bool, len(s.AttackedThisTurn)+1)
	for k, v := range s.AttackedThisTurn {
		next[k] = v
	}
	next[card] = true
	s.AttackedThisTurn = next
	return s
}

// ResetAttacked clears the attacked-this-turn set, called at Refresh.
func ResetAttacked(s model.GameState) model.GameState {
	s.AttackedThisTurn = map[types.CardInstanceID]bool{}
	return s
}

// UpdateLoopGuard increments the loop guard's count for fingerprint and
// returns the new state along with the resulting repeat count.
func UpdateLoopGuard(s model.GameState, fingerprint string) (model.GameState, int) {
	table, count := s.LoopGuard.WithIncrement(fingerprint)
	s.LoopGuard = table
	return s, count
}

// RecordAction appends rec to the action history (diagnostic only; never
// consulted by the loop guard fingerprint, spec §4.6). The history is not
// capped.
func RecordAction(s model.GameState, rec model.ActionRecord) model.GameState {
	history := make([]model.ActionRecord, len(s.ActionHistory), len(s.ActionHistory)+1)
	copy(history, s.ActionHistory)
	s.ActionHistory = append(history, rec)
	return s
}

// SetGameOver returns a copy of s marked over, with the given winner
// ("" for a draw) and reason.
func SetGameOver(s model.GameState, winner types.PlayerID, reason string) model.GameState {
	s.GameOver = true
	s.Winner = winner
	s.DrawReason = reason
	return s
}

func indexOfCard(ids []types.CardInstanceID, target types.CardInstanceID) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}

func indexOfDon(ids []types.DonInstanceID, target types.DonInstanceID) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}
