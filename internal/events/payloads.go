package events

import "tcgengine/internal/types"

// The structs below are the engine's concrete published event payloads
// (spec §4.7 "Event catalogue"). They live in this package, not in the
// packages that publish them, the same way the teacher keeps its event
// payload types alongside its bus rather than scattered per-emitter
// (internal/events/event_bus.go's companion event types in the teacher
// repo). Each satisfies Event so a filtered subscriber can switch on Kind()
// without importing every producer package.

// CardMoved reports a card instance changing zones.
type CardMoved struct {
	Card       types.CardInstanceID
	Owner      types.PlayerID
	From       types.Zone
	To         types.Zone
}

func (CardMoved) Kind() string { return "card-moved" }

// DonMoved is CardMoved's DON counterpart.
type DonMoved struct {
	Don   types.DonInstanceID
	Owner types.PlayerID
	From  types.Zone
	To    types.Zone
}

func (DonMoved) Kind() string { return "don-moved" }

// CardStateChanged reports a card instance's active/rested orientation
// changing.
type CardStateChanged struct {
	Card types.CardInstanceID
	From types.CardState
	To   types.CardState
}

func (CardStateChanged) Kind() string { return "card-state-changed" }

// CardLeftField reports a card instance leaving any field zone (leader
// area, character area, stage area), the trigger point for on-leaves-field
// effects and modifier expiry keyed to DurationUntilSourceLeavesField.
type CardLeftField struct {
	Card types.CardInstanceID
	Zone types.Zone // the field zone it left
}

func (CardLeftField) Kind() string { return "card-left-field" }

// DonAttached reports a DON instance being attached to a card.
type DonAttached struct {
	Don  types.DonInstanceID
	Card types.CardInstanceID
}

func (DonAttached) Kind() string { return "don-attached" }

// DonDetached reports a DON instance returning to its owner's cost area.
type DonDetached struct {
	Don  types.DonInstanceID
	Card types.CardInstanceID
}

func (DonDetached) Kind() string { return "don-detached" }

// DonStateChanged reports a DON instance's active/rested orientation
// changing.
type DonStateChanged struct {
	Don  types.DonInstanceID
	From types.DonState
	To   types.DonState
}

func (DonStateChanged) Kind() string { return "don-state-changed" }

// ZoneShuffled reports a deck-shaped zone being reshuffled.
type ZoneShuffled struct {
	Player types.PlayerID
	Zone   types.Zone
}

func (ZoneShuffled) Kind() string { return "zone-shuffled" }

// CardRevealed reports a card becoming visible to both players without
// changing zones (life reveal, deck peek via an effect).
type CardRevealed struct {
	Card   types.CardInstanceID
	Reason string
}

func (CardRevealed) Kind() string { return "card-revealed" }

// PhaseChanged reports the turn phase advancing.
type PhaseChanged struct {
	Turn int
	From types.Phase
	To   types.Phase
}

func (PhaseChanged) Kind() string { return "phase-changed" }

// TurnAdvanced reports the active player rotating at the start of a new
// turn.
type TurnAdvanced struct {
	Turn         int
	ActivePlayer types.PlayerID
}

func (TurnAdvanced) Kind() string { return "turn-advanced" }

// EffectTriggered reports an effect instance joining the pending-triggers
// queue.
type EffectTriggered struct {
	Effect     types.EffectInstanceID
	Definition types.EffectDefinitionID
	Source     types.CardInstanceID
	Trigger    types.TriggerTag
}

func (EffectTriggered) Kind() string { return "effect-triggered" }

// PowerChanged reports a card instance's effective power changing as a
// result of a Modifier being applied or expiring.
type PowerChanged struct {
	Card  types.CardInstanceID
	From  int
	To    int
}

func (PowerChanged) Kind() string { return "power-changed" }

// BattleDeclared reports an attack being declared, before the blocker and
// counter windows open.
type BattleDeclared struct {
	Attacker types.CardInstanceID
	Defender types.CardInstanceID // "" when declared against the leader directly
}

func (BattleDeclared) Kind() string { return "battle-declared" }

// EffectResolved reports a queued effect instance finishing resolution,
// successfully or fizzled.
type EffectResolved struct {
	Effect  types.EffectInstanceID
	Fizzled bool
	Reason  string
}

func (EffectResolved) Kind() string { return "effect-resolved" }

// BattleResolved reports the outcome of a declared attack (spec §4.5).
type BattleResolved struct {
	Attacker      types.CardInstanceID
	Defender      types.CardInstanceID // card id, or "" when the leader was attacked directly
	AttackerPower int
	DefenderPower int
	KO            bool
	LifeLost      int
}

func (BattleResolved) Kind() string { return "battle-resolved" }

// LoopGuardTriggered reports a fingerprint's repeat count reaching the
// loop-guard threshold (spec §4.6). In Main the engine then requires a
// state-changing action; outside Main it ends the game in a draw.
type LoopGuardTriggered struct {
	Fingerprint string
	Count       int
}

func (LoopGuardTriggered) Kind() string { return "loop-guard-triggered" }

// GameOver reports the game reaching a terminal state.
type GameOver struct {
	Winner types.PlayerID // "" for a draw
	Reason string
}

func (GameOver) Kind() string { return "game-over" }

// ErrorOccurred mirrors an engineerr.Error onto the event bus (spec §4.7's
// "Error" event), letting an external observer react without importing
// the engineerr package directly.
type ErrorOccurred struct {
	Code    string
	Message string
}

func (ErrorOccurred) Kind() string { return "error" }
