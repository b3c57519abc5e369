// Package types holds the exhaustive variant types and typed identifiers
// the rest of the engine is built from (spec §4, "Types & Identifiers"):
// zones, card categories, colours, phases, card states, action kinds,
// modifier durations, effect timings, and stable instance ids. Nothing
// here carries behaviour; it is the vocabulary every other package
// shares, the way the teacher's domain enums (internal/game/shared) are
// the vocabulary its resolvers and repositories share.
package types

import "fmt"

// PlayerID identifies one of the two seats in a game. Supplied by the
// host at setup, never minted by the engine.
type PlayerID string

// CardInstanceID stably identifies one physical card instance for the
// life of a game. Card instances are created once at setup and never
// destroyed (spec §3 Lifecycles); only their zone changes.
type CardInstanceID string

// DonInstanceID stably identifies one DON card instance.
type DonInstanceID string

// EffectInstanceID identifies one entry on the pending-triggers queue.
type EffectInstanceID string

// ModifierID identifies one active modifier on a card instance.
type ModifierID string

// CardDefinitionID identifies an immutable card definition supplied by
// the collaborator (never created by the engine itself).
type CardDefinitionID string

// EffectDefinitionID identifies a declarative effect definition carried
// by a card definition.
type EffectDefinitionID string

// ResolverID names a behavioural operation in the effect registry (spec
// §9: "a registry of resolver ids mapped to pure functions" replacing
// capability-based dispatch).
type ResolverID string

// ConditionID names a condition predicate in the condition registry,
// consulted before an eligible effect is enqueued or an activated
// effect is allowed to activate.
type ConditionID string

// IDAllocator mints deterministic, sequential instance identifiers.
//
// The engine's determinism boundary (spec §6) requires that the same
// seed, decks, and inputs produce byte-identical snapshots across runs.
// A randomly-generated id (e.g. github.com/google/uuid, which the
// engine's host layer uses freely for session-level bookkeeping that
// sits outside that boundary) would break this for anything that ends
// up inside GameState, so instance ids are minted from a plain counter
// instead, advanced in the same call order every run given the same
// inputs. The allocator is copied by value alongside the rest of
// GameState so minting an id is itself a value-semantic mutation.
type IDAllocator struct {
	nextCard   uint64
	nextDon    uint64
	nextEffect uint64
	nextMod    uint64
}

// NextCardInstanceID returns a new allocator and the next card instance id.
func (a IDAllocator) NextCardInstanceID() (IDAllocator, CardInstanceID) {
	a.nextCard++
	return a, CardInstanceID(fmt.Sprintf("card-%d", a.nextCard))
}

// NextDonInstanceID returns a new allocator and the next DON instance id.
func (a IDAllocator) NextDonInstanceID() (IDAllocator, DonInstanceID) {
	a.nextDon++
	return a, DonInstanceID(fmt.Sprintf("don-%d", a.nextDon))
}

// NextEffectInstanceID returns a new allocator and the next effect
// instance id.
func (a IDAllocator) NextEffectInstanceID() (IDAllocator, EffectInstanceID) {
	a.nextEffect++
	return a, EffectInstanceID(fmt.Sprintf("effect-%d", a.nextEffect))
}

// NextModifierID returns a new allocator and the next modifier id.
func (a IDAllocator) NextModifierID() (IDAllocator, ModifierID) {
	a.nextMod++
	return a, ModifierID(fmt.Sprintf("modifier-%d", a.nextMod))
}
