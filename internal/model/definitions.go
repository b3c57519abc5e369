package model

import "tcgengine/internal/types"

// CardDefinition is the immutable, collaborator-supplied description of
// one printed card (spec §3). The engine never mutates a CardDefinition
// and never constructs one on its own; it only reads through the
// pointer a deck list hands it at setup.
type CardDefinition struct {
	ID           types.CardDefinitionID
	Name         string
	Category     types.Category
	Colours      []types.Colour
	TypeTags     []string
	Attributes   []string
	BasePower    *int // nil for cards with no printed power
	BaseCost     *int // nil for cards with no printed cost (leaders, DON)
	LifeValue    *int // leaders only
	CounterValue *int // characters only
	Rarity       string
	Keywords     map[types.Keyword]bool
	Effects      []EffectDefinition
}

// HasKeyword reports whether the definition carries the given keyword.
func (d *CardDefinition) HasKeyword(k types.Keyword) bool {
	if d == nil || d.Keywords == nil {
		return false
	}
	return d.Keywords[k]
}

// HasColour reports whether the definition carries the given colour.
func (d *CardDefinition) HasColour(c types.Colour) bool {
	for _, col := range d.Colours {
		if col == c {
			return true
		}
	}
	return false
}

// EffectDefinition declares one effect a card definition carries. It
// names a resolver and condition by id rather than embedding behaviour
// (spec §9): the engine's registry maps these ids to pure functions at
// construction time, so a CardDefinition stays plain data all the way
// from deck list to resolution.
type EffectDefinition struct {
	ID           types.EffectDefinitionID
	SourceCardID types.CardDefinitionID
	Label        string
	Timing       types.TimingKind
	Trigger      types.TriggerTag   // meaningful only when Timing == Triggered
	Condition    types.ConditionID  // "" means "always eligible"
	Cost         *CostDescriptor    // meaningful only when Timing == Activated
	Resolver     types.ResolverID
	OncePerTurn  bool
}

// CostDescriptor names the cost an Activated effect's controller must
// pay before the effect instance is enqueued (spec §4.4.1).
type CostDescriptor struct {
	RestSelf     bool
	DonToRest    int
	DiscardCount int
	// Custom names a resolver id for a bespoke cost (e.g. "trash a
	// character") the built-in cost shapes above cannot express.
	Custom types.ResolverID
}
