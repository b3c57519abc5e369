// Package battle implements the damage & battle resolver (spec §4.5): a
// finite sub-state-machine within Main that declares an attack, fires
// when-attacking triggers, opens blocker and counter windows, compares
// power, and applies the outcome. It contains no card-specific logic —
// every card-text modifier to this flow is a triggered or continuous
// effect fed through package effect, exactly as the spec requires.
// Grounded on the teacher's combat-adjacent resource/production resolver
// shape (internal/game/production) generalized to a fixed seven-step
// flow, since Terraforming Mars has no attacker/defender combat of its
// own to adapt line-by-line.
package battle

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

// Declaration is a fully-specified attack declaration (spec §4.5 step 1).
type Declaration struct {
	Attacker types.CardInstanceID
	// Target is the defending character instance, or "" to attack the
	// opposing leader directly.
	Target types.CardInstanceID
}

// Resolver carries the collaborators the battle flow needs at every step.
type Resolver struct {
	Catalogue  model.Catalogue
	Registry   *effect.Registry
	Continuous *effect.ContinuousRegistry
	Rules      rules.Context
	Bus        *events.Bus
	History    *engineerr.History
}

// Declare runs the full battle flow for d: precondition checks, the
// when-attacking trigger drain, the blocker window, the counter window,
// power comparison, and outcome application, in that order (spec §4.5
// steps 1-7). blockerChoice and counterCards are supplied up front by the
// façade, which already consulted PlayerInputProvider for them; this
// package only validates and applies them.
func (r Resolver) Declare(s model.GameState, attackingPlayer types.PlayerID, d Declaration, blockerChoice types.CardInstanceID, counterCards []types.CardInstanceID) (model.GameState, *engineerr.Error) {
	s, err := r.checkPreconditions(s, attackingPlayer, d)
	if err != nil {
		return s, err
	}

	events.Publish(r.Bus, events.BattleDeclared{Attacker: d.Attacker, Defender: d.Target})

	// TriggerOnAttack and TriggerWhenAttacking are both members of the
	// fixed trigger set (spec §4.4) and fire together off the same
	// declaration: OnAttack is the declaration-time hook card text names
	// directly, WhenAttacking is the broader "while attacking" window.
	s = effect.Fire(s, r.Catalogue, r.Registry, r.Bus, types.TriggerOnAttack, d.Attacker)
	s = effect.Fire(s, r.Catalogue, r.Registry, r.Bus, types.TriggerWhenAttacking, d.Attacker)
	s = effect.Drain(s, r.Registry, r.execContext(), r.History)

	finalTarget := d.Target
	if blockerChoice != "" {
		s, finalTarget, err = r.applyBlocker(s, attackingPlayer, d, blockerChoice)
		if err != nil {
			return s, err
		}
		s = effect.Fire(s, r.Catalogue, r.Registry, r.Bus, types.TriggerWhenBlocking, finalTarget)
		s = effect.Drain(s, r.Registry, r.execContext(), r.History)
	}

	attackerPower := effect.EffectivePower(s, r.Catalogue, r.Registry, r.Continuous, d.Attacker)
	defenderPower, s, err := r.applyCountersAndDefenderPower(s, attackingPlayer, finalTarget, counterCards)
	if err != nil {
		return s, err
	}

	won := r.attackerWins(finalTarget, attackerPower, defenderPower)
	s, ko, lifeLost, err := r.applyOutcome(s, attackingPlayer, finalTarget, won)
	if err != nil {
		return s, err
	}

	s = state.MarkAttacked(s, d.Attacker)
	events.Publish(r.Bus, events.BattleResolved{
		Attacker: d.Attacker, Defender: finalTarget,
		AttackerPower: attackerPower, DefenderPower: defenderPower,
		KO: ko, LifeLost: lifeLost,
	})
	return s, nil
}

func (r Resolver) execContext() effect.ExecContext {
	return effect.ExecContext{Catalogue: r.Catalogue, Registry: r.Registry, Rules: r.Rules, Bus: r.Bus}
}

func (r Resolver) checkPreconditions(s model.GameState, attackingPlayer types.PlayerID, d Declaration) (model.GameState, *engineerr.Error) {
	inst, ok := s.Card(d.Attacker)
	if !ok {
		return s, engineerr.Newf(engineerr.InvalidState, "unknown attacker %q", d.Attacker).WithContext("card", d.Attacker)
	}
	if inst.Controller != attackingPlayer {
		return s, engineerr.Newf(engineerr.IllegalAction, "card %q is not controlled by %q", d.Attacker, attackingPlayer)
	}
	if inst.State != types.StateActive {
		return s, engineerr.Newf(engineerr.IllegalAction, "attacker %q is not active", d.Attacker).WithContext("card", d.Attacker)
	}
	if s.AttackedThisTurn[d.Attacker] {
		return s, engineerr.Newf(engineerr.IllegalAction, "attacker %q has already attacked this turn", d.Attacker).WithContext("card", d.Attacker)
	}
	power := effect.EffectivePower(s, r.Catalogue, r.Registry, r.Continuous, d.Attacker)
	if power < r.Rules.MinAttackPower {
		return s, engineerr.Newf(engineerr.IllegalAction, "attacker %q power %d below minimum %d", d.Attacker, power, r.Rules.MinAttackPower)
	}
	if d.Target != "" {
		target, ok := s.Card(d.Target)
		if !ok {
			return s, engineerr.Newf(engineerr.InvalidState, "unknown target %q", d.Target).WithContext("card", d.Target)
		}
		if target.Controller == attackingPlayer {
			return s, engineerr.Newf(engineerr.IllegalAction, "cannot attack own card %q", d.Target)
		}
		if target.Zone != types.ZoneCharacterArea {
			return s, engineerr.Newf(engineerr.IllegalAction, "target %q is not on the field", d.Target)
		}
		if target.State != types.StateRested {
			return s, engineerr.Newf(engineerr.IllegalAction, "target %q is not rested", d.Target)
		}
	} else {
		opponent := s.Opponent(attackingPlayer)
		if _, ok := s.Player(opponent); !ok {
			return s, engineerr.Newf(engineerr.InvalidState, "unknown opponent for %q", attackingPlayer)
		}
	}
	return s, nil
}

// applyBlocker redirects the attack to blockerChoice, resting it (spec
// §4.5 step 3).
func (r Resolver) applyBlocker(s model.GameState, attackingPlayer types.PlayerID, d Declaration, blockerChoice types.CardInstanceID) (model.GameState, types.CardInstanceID, *engineerr.Error) {
	inst, ok := s.Card(blockerChoice)
	if !ok {
		return s, d.Target, engineerr.Newf(engineerr.InvalidState, "unknown blocker %q", blockerChoice)
	}
	if inst.Controller == attackingPlayer {
		return s, d.Target, engineerr.Newf(engineerr.IllegalAction, "blocker %q is not the defender's", blockerChoice)
	}
	def := r.Catalogue.DefinitionFor(inst)
	if def == nil || !def.HasKeyword(types.KeywordBlocker) {
		return s, d.Target, engineerr.Newf(engineerr.IllegalAction, "card %q does not have the Blocker keyword", blockerChoice)
	}
	if inst.State != types.StateActive {
		return s, d.Target, engineerr.Newf(engineerr.IllegalAction, "blocker %q is not active", blockerChoice)
	}
	next, zerr := zone.SetCardState(s, r.Bus, blockerChoice, types.StateRested)
	if zerr != nil {
		return s, d.Target, zerr
	}
	return next, blockerChoice, nil
}

// applyCountersAndDefenderPower resolves the counter window (spec §4.5
// step 4): each counter card moves to trash and adds its counter value to
// the defender's effective power.
func (r Resolver) applyCountersAndDefenderPower(s model.GameState, attackingPlayer types.PlayerID, target types.CardInstanceID, counterCards []types.CardInstanceID) (int, model.GameState, *engineerr.Error) {
	defenderPlayer := s.Opponent(attackingPlayer)
	basePower := 0
	if target != "" {
		basePower = effect.EffectivePower(s, r.Catalogue, r.Registry, r.Continuous, target)
	} else if p, ok := s.Player(defenderPlayer); ok {
		if leaderID := p.LeaderID(); leaderID != "" {
			basePower = effect.EffectivePower(s, r.Catalogue, r.Registry, r.Continuous, leaderID)
		}
	}

	bonus := 0
	for _, cardID := range counterCards {
		inst, ok := s.Card(cardID)
		if !ok {
			return 0, s, engineerr.Newf(engineerr.InvalidState, "unknown counter card %q", cardID)
		}
		if inst.Controller != defenderPlayer || inst.Zone != types.ZoneHand {
			return 0, s, engineerr.Newf(engineerr.IllegalAction, "card %q is not a playable counter for this defender", cardID)
		}
		def := r.Catalogue.DefinitionFor(inst)
		if def == nil || def.CounterValue == nil {
			return 0, s, engineerr.Newf(engineerr.IllegalAction, "card %q has no counter value", cardID)
		}
		bonus += *def.CounterValue
		next, zerr := zone.Move(s, r.Catalogue, r.Registry, r.Rules, r.Bus, defenderPlayer, cardID, types.ZoneTrash)
		if zerr != nil {
			return 0, s, zerr
		}
		s = next
	}
	return basePower + bonus, s, nil
}

// attackerWins applies the configured tie rule (spec §4.5 step 5, and
// §9's tie-rule Open Question).
func (r Resolver) attackerWins(target types.CardInstanceID, attackerPower, defenderPower int) bool {
	if attackerPower > defenderPower {
		return true
	}
	if attackerPower == defenderPower && target == "" && r.Rules.TieRule == rules.TieAttackerWinsOnLeaderOnly {
		return true
	}
	return false
}

// applyOutcome applies step 6: life damage against a leader, KO against a
// character, or no change on a loss/tie.
func (r Resolver) applyOutcome(s model.GameState, attackingPlayer types.PlayerID, target types.CardInstanceID, won bool) (model.GameState, bool, int, *engineerr.Error) {
	if !won {
		return s, false, 0, nil
	}
	defenderPlayer := s.Opponent(attackingPlayer)

	if target == "" {
		p, ok := s.Player(defenderPlayer)
		if !ok {
			return s, false, 0, engineerr.Newf(engineerr.InvalidState, "unknown defender %q", defenderPlayer)
		}
		life := p.Life()
		if len(life) == 0 {
			s = state.SetGameOver(s, attackingPlayer, "")
			events.Publish(r.Bus, events.GameOver{Winner: attackingPlayer, Reason: "life-depleted"})
			return s, false, 0, nil
		}
		topCard := life[0]
		next, zerr := zone.Move(s, r.Catalogue, r.Registry, r.Rules, r.Bus, defenderPlayer, topCard, types.ZoneHand)
		if zerr != nil {
			return s, false, 0, zerr
		}
		return next, false, 1, nil
	}

	// Snapshot the KO'd card before it moves, since effect.Fire's on-field
	// scan can no longer see it once it's in the trash (spec §4.4).
	koInst, _ := s.Card(target)
	next, zerr := zone.Move(s, r.Catalogue, r.Registry, r.Rules, r.Bus, defenderPlayer, target, types.ZoneTrash)
	if zerr != nil {
		return s, false, 0, zerr
	}
	next = effect.FireForInstance(next, r.Catalogue, r.Registry, r.Bus, types.TriggerOnKO, target, koInst)
	next = effect.Drain(next, r.Registry, r.execContext(), r.History)
	return next, true, 0, nil
}
