// Package engine is the engine façade (spec §4.10): the top-level
// orchestration a host drives — Setup, AdvancePhase, SubmitAction,
// Snapshot, Subscribe, SetDebug, ErrorHistory — sitting on top of
// package phase, package battle, package effect, package zone, and
// package state the same way the teacher's usecase layer
// (internal/usecase/game_usecase.go) sits on top of its own game/
// session packages as the one entry point a delivery handler calls
// through.
package engine

import "tcgengine/internal/types"

// Action is the engine's closed action variant (spec §4.10). Every
// action carries its submitting player id; fields not meaningful for a
// given Kind are left zero. A single struct stands in for the spec's
// per-kind constructors (PlayCard(card_id), GiveDon(don_id,
// character_id), ...) because Go has no tagged-union literal syntax as
// light as the spec's pseudocode — Kind is the discriminant a caller
// switches on, same as the teacher's single delivery-layer DTO per
// request type carrying only the fields that request needs.
type Action struct {
	Player types.PlayerID
	Kind   types.ActionKind

	// CardID is the acted-upon card for PlayCard, DeclareAttack (the
	// attacker), UseActivatedEffect (the source), and PlayCounter.
	CardID types.CardInstanceID
	// DonID is the DON instance for GiveDon.
	DonID types.DonInstanceID
	// TargetID is GiveDon's host character, DeclareAttack's target ("" for
	// the opposing leader), or DeclareBlocker's chosen blocker.
	TargetID types.CardInstanceID
	// EffectDefID names the activated effect for UseActivatedEffect.
	EffectDefID types.EffectDefinitionID
	// Targets is UseActivatedEffect's frozen target selection.
	Targets []types.CardInstanceID

	Timestamp uint64
}

// InputProvider is the collaborator-supplied capability the engine calls
// during Main and during interactive windows (blocker, counter) — spec
// §4.10's "single blocking operation": given the acting player, the set
// of action kinds currently on offer, and a read-only snapshot, it
// returns an Action or a pass (ok == false). The engine never retries or
// reinterprets a pass; PassPriority itself is a distinct Action kind a
// provider may also choose to return.
type InputProvider interface {
	RequestAction(player types.PlayerID, available []types.ActionKind, snap Snapshot) (Action, bool)
}

// mainPhaseActionKinds is what the façade offers the active player at
// the top of each Main iteration (spec §4.3: "emit priority request").
var mainPhaseActionKinds = []types.ActionKind{
	types.ActionPlayCard,
	types.ActionGiveDon,
	types.ActionDeclareAttack,
	types.ActionUseActivatedEffect,
	types.ActionEndPhase,
	types.ActionPassPriority,
}

var blockerWindowActionKinds = []types.ActionKind{
	types.ActionDeclareBlocker,
	types.ActionPassPriority,
}

var counterWindowActionKinds = []types.ActionKind{
	types.ActionPlayCounter,
	types.ActionPassPriority,
}
