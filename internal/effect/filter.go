// Package effect is the effect system (spec §4.4): the resolver
// registry, trigger emission, fixpoint draining, target filtering, and
// continuous-effect power computation. Grounded on the teacher's
// player_effects.go (a declarative effect-to-handler lookup) and
// playability_state.go (legality/target computation consulting a
// collaborator-supplied card catalogue) — both generalized here from
// Terraforming Mars' tile/production effects to the engine's own
// resolver-id registry, per the replace-capability-dispatch design note
// (spec §9).
package effect

import (
	"sort"

	"tcgengine/internal/model"
	"tcgengine/internal/types"
)

// IntRange is an inclusive (min, max) predicate; a nil bound means
// unconstrained on that side.
type IntRange struct {
	Min *int
	Max *int
}

// Satisfies reports whether v falls within r.
func (r IntRange) Satisfies(v int) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// TargetFilter is the descriptor resolvers receive instead of a
// free-form predicate object (spec §4.4 "Target filtering", and §9's
// "duck-typed target descriptors" redesign flag).
type TargetFilter struct {
	Zones          []types.Zone
	Controller     types.ControllerScope
	Categories     []types.Category
	Colours        []types.Colour
	Keywords       []types.Keyword
	Power          IntRange
	Cost           IntRange
	Tags           []string // ad-hoc tags matched against CardDefinition.TypeTags/Attributes
	Exclusions     []types.CardInstanceID
	RequireNonEmpty bool // short-circuit early-exit when true and scope is empty
}

// Candidates returns the filter's legal targets, deterministically
// ordered by (player, zone, zone-index) as spec §4.4 requires. self is
// the controller resolving the filter, used to interpret Controller
// scope; powerOf/costOf compute the card's *effective* value (continuous
// modifiers included) so the power/cost predicates see the same numbers
// a player would.
func Candidates(s model.GameState, cat model.Catalogue, self types.PlayerID, f TargetFilter, powerOf, costOf func(types.CardInstanceID) int) []types.CardInstanceID {
	scopePlayers := scopeFor(s, self, f.Controller)
	if f.RequireNonEmpty && len(scopePlayers) == 0 {
		return nil
	}

	excluded := make(map[types.CardInstanceID]struct{}, len(f.Exclusions))
	for _, id := range f.Exclusions {
		excluded[id] = struct{}{}
	}

	var out []types.CardInstanceID
	for _, pid := range scopePlayers {
		p, ok := s.Player(pid)
		if !ok {
			continue
		}
		for _, z := range f.Zones {
			if !model.IsCardZone(z) {
				continue
			}
			for _, cardID := range p.CardsIn(z) {
				if _, skip := excluded[cardID]; skip {
					continue
				}
				inst, ok := s.Card(cardID)
				if !ok {
					continue
				}
				if matches(cat, inst, f, powerOf, costOf) {
					out = append(out, cardID)
				}
			}
		}
	}
	return out
}

func scopeFor(s model.GameState, self types.PlayerID, scope types.ControllerScope) []types.PlayerID {
	switch scope {
	case types.ScopeSelf:
		return []types.PlayerID{self}
	case types.ScopeOpponent:
		return []types.PlayerID{s.Opponent(self)}
	default: // ScopeAny or unset
		players := make([]types.PlayerID, len(s.PlayerOrder))
		copy(players, s.PlayerOrder)
		sort.Slice(players, func(i, j int) bool {
			if players[i] == self {
				return true
			}
			if players[j] == self {
				return false
			}
			return players[i] < players[j]
		})
		return players
	}
}

func matches(cat model.Catalogue, inst model.CardInstance, f TargetFilter, powerOf, costOf func(types.CardInstanceID) int) bool {
	def := cat.DefinitionFor(inst)
	if def == nil {
		return false
	}
	if len(f.Categories) > 0 && !containsCategory(f.Categories, def.Category) {
		return false
	}
	if len(f.Colours) > 0 && !anyColourMatch(f.Colours, def.Colours) {
		return false
	}
	for _, kw := range f.Keywords {
		if !def.HasKeyword(kw) {
			return false
		}
	}
	if len(f.Tags) > 0 && !anyTagMatch(f.Tags, def.TypeTags, def.Attributes) {
		return false
	}
	if powerOf != nil && (f.Power.Min != nil || f.Power.Max != nil) {
		if !f.Power.Satisfies(powerOf(inst.ID)) {
			return false
		}
	}
	if costOf != nil && (f.Cost.Min != nil || f.Cost.Max != nil) {
		if !f.Cost.Satisfies(costOf(inst.ID)) {
			return false
		}
	}
	return true
}

func containsCategory(set []types.Category, c types.Category) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

func anyColourMatch(want, have []types.Colour) bool {
	for _, w := range want {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}

func anyTagMatch(want []string, haveSets ...[]string) bool {
	for _, w := range want {
		for _, have := range haveSets {
			for _, h := range have {
				if w == h {
					return true
				}
			}
		}
	}
	return false
}
