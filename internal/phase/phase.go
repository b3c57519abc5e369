// Package phase is the per-turn state machine (spec §4.3): Refresh →
// Draw → DonPhase → Main → End, advancing via Advance or looping
// End → Refresh with active-player rotation. Main's action loop lives in
// the engine façade (internal/engine); this package covers the other four
// states, each a fixed sequence of zone/effect operations with no player
// decision point, plus EndMain to leave Main.
//
// Grounded on the teacher's turn.go (internal/game/turn.go): a fixed
// ordered phase sequence advanced by a single "next phase" entry point,
// with per-phase setup/teardown functions, generalized here from
// Terraforming Mars' generation/production phases to Refresh/Draw/
// DonPhase/Main/End.
package phase

import (
	"tcgengine/internal/effect"
	"tcgengine/internal/engineerr"
	"tcgengine/internal/events"
	"tcgengine/internal/model"
	"tcgengine/internal/rules"
	"tcgengine/internal/state"
	"tcgengine/internal/types"
	"tcgengine/internal/zone"
)

// Runner carries every collaborator the phase machine consults.
type Runner struct {
	Catalogue  model.Catalogue
	Registry   *effect.Registry
	Continuous *effect.ContinuousRegistry
	Rules      rules.Context
	Bus        *events.Bus
	History    *engineerr.History
}

func (r Runner) execContext() effect.ExecContext {
	return effect.ExecContext{Catalogue: r.Catalogue, Registry: r.Registry, Rules: r.Rules, Bus: r.Bus}
}

// Advance runs the current phase's fixed work and transitions to the next
// phase, except for Main, which only advances when the caller explicitly
// ends it (spec §4.3: Main "terminates on explicit EndPhase, on
// game-over, or on loop-guard draw resolution" — not on a bare Advance
// call). Calling Advance while in Main is a no-op error; use EndMain.
func (r Runner) Advance(s model.GameState) (model.GameState, *engineerr.Error) {
	switch s.Phase {
	case types.PhaseRefresh:
		return r.runRefresh(s)
	case types.PhaseDraw:
		return r.runDraw(s)
	case types.PhaseDon:
		return r.runDon(s)
	case types.PhaseMain:
		return s, engineerr.New(engineerr.IllegalAction, "Main does not advance implicitly; submit EndPhase")
	case types.PhaseEnd:
		return r.runEnd(s)
	default:
		return s, engineerr.Newf(engineerr.InvalidState, "unknown phase %q", s.Phase)
	}
}

// EndMain transitions Main directly to End without running End's fixed
// work (that happens on the following Advance call). It is the only way
// out of Main besides game-over or a loop-guard draw (spec §4.3), called
// by the façade when it dispatches an ActionEndPhase.
func (r Runner) EndMain(s model.GameState) (model.GameState, *engineerr.Error) {
	if s.Phase != types.PhaseMain {
		return s, engineerr.Newf(engineerr.IllegalAction, "EndMain called outside Main (phase %q)", s.Phase)
	}
	return r.transition(s, types.PhaseEnd), nil
}

func (r Runner) transition(s model.GameState, to types.Phase) model.GameState {
	from := s.Phase
	s = state.SetPhase(s, to)
	events.Publish(r.Bus, events.PhaseChanged{Turn: s.Turn, From: from, To: to})
	return s
}

// runRefresh implements spec §4.3's Refresh behaviour.
func (r Runner) runRefresh(s model.GameState) (model.GameState, *engineerr.Error) {
	p, ok := s.Player(s.ActivePlayer)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown active player %q", s.ActivePlayer)
	}

	fieldCards := append(append([]types.CardInstanceID{}, p.CharacterArea()...), p.CardsIn(types.ZoneStageArea)...)
	for _, cardID := range fieldCards {
		next, err := zone.SetCardState(s, r.Bus, cardID, types.StateActive)
		if err != nil {
			return s, err
		}
		s = next
	}

	for _, donID := range p.CostArea() {
		next, err := zone.SetDonState(s, r.Bus, donID, types.DonActive)
		if err != nil {
			return s, err
		}
		s = next
	}

	s = effect.ClearOncePerTurnFlags(s, r.Catalogue, s.ActivePlayer)
	s = r.transition(s, types.PhaseDraw)
	return s, nil
}

// runDraw implements spec §4.3's Draw behaviour, including the
// turn-1-skip policy and the deck-empty-loses-immediately rule.
func (r Runner) runDraw(s model.GameState) (model.GameState, *engineerr.Error) {
	skip := s.Turn == 1 && r.Rules.FirstPlayerSkipDrawTurnOne
	if !skip {
		for i := 0; i < r.Rules.DrawPerTurn; i++ {
			p, ok := s.Player(s.ActivePlayer)
			if !ok {
				return s, engineerr.Newf(engineerr.InvalidState, "unknown active player %q", s.ActivePlayer)
			}
			deck := p.Deck()
			if len(deck) == 0 {
				s = state.SetGameOver(s, s.Opponent(s.ActivePlayer), "")
				events.Publish(r.Bus, events.GameOver{Winner: s.Opponent(s.ActivePlayer), Reason: "deck-empty"})
				return s, nil
			}
			next, err := zone.Move(s, r.Catalogue, r.Registry, r.Rules, r.Bus, s.ActivePlayer, deck[0], types.ZoneHand)
			if err != nil {
				return s, err
			}
			s = next
		}
	}
	s = r.transition(s, types.PhaseDon)
	return s, nil
}

// runDon implements spec §4.3's DonPhase behaviour.
func (r Runner) runDon(s model.GameState) (model.GameState, *engineerr.Error) {
	p, ok := s.Player(s.ActivePlayer)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown active player %q", s.ActivePlayer)
	}
	allowance := r.Rules.DonPerTurnFor(s.Turn)
	deck := p.DonDeck()
	if allowance > len(deck) {
		allowance = len(deck)
	}
	for i := 0; i < allowance; i++ {
		p, ok := s.Player(s.ActivePlayer)
		if !ok {
			return s, engineerr.Newf(engineerr.InvalidState, "unknown active player %q", s.ActivePlayer)
		}
		remaining := p.DonDeck()
		if len(remaining) == 0 {
			break
		}
		next, err := zone.MoveDon(s, r.Rules, r.Bus, s.ActivePlayer, remaining[0], types.ZoneCostArea)
		if err != nil {
			return s, err
		}
		s = next
		next, err = zone.SetDonState(s, r.Bus, remaining[0], types.DonActive)
		if err != nil {
			return s, err
		}
		s = next
	}
	s = r.transition(s, types.PhaseMain)
	return s, nil
}

// runEnd implements spec §4.3's End behaviour.
func (r Runner) runEnd(s model.GameState) (model.GameState, *engineerr.Error) {
	active := s.ActivePlayer
	for _, step := range []struct {
		player types.PlayerID
		tag    types.TriggerTag
	}{{active, types.TriggerEndOfYourTurn}, {s.Opponent(active), types.TriggerEndOfOpponentTurn}} {
		p, _ := s.Player(step.player)
		field := append(append(p.CardsIn(types.ZoneLeaderArea), p.CharacterArea()...), p.CardsIn(types.ZoneStageArea)...)
		for _, cardID := range field {
			s = effect.Fire(s, r.Catalogue, r.Registry, r.Bus, step.tag, cardID)
		}
		s = effect.Drain(s, r.Registry, r.execContext(), r.History)
	}

	s = expireEndOfTurnModifiers(s)

	if r.Rules.MaxHand > 0 {
		next, err := r.trimHand(s, s.ActivePlayer)
		if err != nil {
			return s, err
		}
		s = next
	}

	s = state.ResetAttacked(s)
	s = state.AdvanceTurn(s)
	events.Publish(r.Bus, events.TurnAdvanced{Turn: s.Turn, ActivePlayer: s.ActivePlayer})
	s = r.transition(s, types.PhaseRefresh)
	return s, nil
}

func expireEndOfTurnModifiers(s model.GameState) model.GameState {
	cards := make(map[types.CardInstanceID]model.CardInstance, len(s.Cards))
	changed := false
	for id, c := range s.Cards {
		kept := c.Modifiers[:0:0]
		for _, m := range c.Modifiers {
			if m.Duration != types.DurationUntilEndOfTurn {
				kept = append(kept, m)
			} else {
				changed = true
			}
		}
		c.Modifiers = kept
		cards[id] = c
	}
	if !changed {
		return s
	}
	s.Cards = cards
	return s
}

// trimHand discards down to the configured cap, always taking the last
// card in hand order until the player is at the cap, so End never leaves
// a player over cap. The input provider is not asked which cards to
// discard.
func (r Runner) trimHand(s model.GameState, player types.PlayerID) (model.GameState, *engineerr.Error) {
	p, ok := s.Player(player)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown player %q", player)
	}
	hand := p.Hand()
	for len(hand) > r.Rules.MaxHand {
		next, err := zone.Move(s, r.Catalogue, r.Registry, r.Rules, r.Bus, player, hand[len(hand)-1], types.ZoneTrash)
		if err != nil {
			return s, err
		}
		s = next
		p, _ = s.Player(player)
		hand = p.Hand()
	}
	return s, nil
}
