package model

import "tcgengine/internal/types"

// CardInstance is the mutable record of one physical card on the table
// (spec §3). Card instances are created once at setup and never
// destroyed; CardInstance values are stored by value inside GameState
// and replaced wholesale on every mutation (state container §4.1), never
// mutated in place, so concurrent readers never observe a half-updated
// instance.
type CardInstance struct {
	ID           types.CardInstanceID
	DefinitionID types.CardDefinitionID
	Owner        types.PlayerID
	Controller   types.PlayerID
	Zone         types.Zone
	State        types.CardState
	GivenDon     []types.DonInstanceID // don attached to this card, owner's cost-area don
	Modifiers    []Modifier
	Flags        map[string]bool // once-per-turn marks, keyed by effect definition id
}

// WithFlag returns a copy of the instance with the given flag set.
func (c CardInstance) WithFlag(key string, value bool) CardInstance {
	flags := make(map[string]bool, len(c.Flags)+1)
	for k, v := range c.Flags {
		flags[k] = v
	}
	flags[key] = value
	c.Flags = flags
	return c
}

// HasFlag reports whether the given once-per-turn flag is set.
func (c CardInstance) HasFlag(key string) bool {
	return c.Flags != nil && c.Flags[key]
}

// DonInstance is the mutable record of one DON card (spec §3). Its host
// is tracked as a plain id (HostCardID), never a pointer, per the
// cyclic-object-graph design note in spec §9: all host/given-don
// traversal goes through indexed GameState lookups, not bidirectional
// owning references.
type DonInstance struct {
	ID         types.DonInstanceID
	Owner      types.PlayerID
	Zone       types.Zone
	State      types.DonState
	HostCardID types.CardInstanceID // "" unless State == Attached
}

// Modifier is a temporary or permanent alteration attached to a card
// instance (spec §3). Timestamp breaks ties between modifiers applied in
// the same resolution cycle (e.g. power-modification batching, §4.4).
type Modifier struct {
	ID             types.ModifierID
	Kind           types.ModifierKind
	Value          int    // signed numeric payload (power delta, cost delta)
	Payload        string // keyword name or replacement descriptor, when Kind warrants it
	Duration       types.Duration
	SourceEffectID types.EffectInstanceID
	Timestamp      uint64
}

// EffectInstance is a single entry on the pending-triggers queue (spec
// §3). It freezes the targets and chosen values at enqueue/activation
// time so resolution never re-derives a decision the player already made.
type EffectInstance struct {
	ID             types.EffectInstanceID
	DefinitionID   types.EffectDefinitionID
	SourceCardID   types.CardInstanceID
	Resolver       types.ResolverID
	Controller     types.PlayerID
	TriggerTag     types.TriggerTag // "" for Activated effects
	Targets        []types.CardInstanceID
	Values         map[string]int
	CardRefs       map[string]types.CardInstanceID
	Timestamp      uint64
	Resolved       bool
}
