package model

import "tcgengine/internal/types"

// Catalogue is the immutable collection of CardDefinitions the host
// supplies at Setup (spec §3: "card definitions ... collaborator
// supplied"). The engine only ever reads through it; nothing in this
// package or above mutates a Catalogue once built.
type Catalogue struct {
	cards map[types.CardDefinitionID]*CardDefinition
}

// NewCatalogue builds a Catalogue from a definition list.
func NewCatalogue(defs []*CardDefinition) Catalogue {
	m := make(map[types.CardDefinitionID]*CardDefinition, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	return Catalogue{cards: m}
}

// Definition returns the named card definition, or nil if unknown.
func (c Catalogue) Definition(id types.CardDefinitionID) *CardDefinition {
	return c.cards[id]
}

// DefinitionFor returns the card definition backing a live card instance.
func (c Catalogue) DefinitionFor(inst CardInstance) *CardDefinition {
	return c.cards[inst.DefinitionID]
}
