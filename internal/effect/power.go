package effect

import (
	"tcgengine/internal/model"
	"tcgengine/internal/types"
)

// ContinuousFunc computes the power delta a continuous effect instance
// contributes to card, given its source card and the condition already
// having held. Continuous effects are never enqueued (spec §4.4.1); the
// registry here is consulted fresh by EffectivePower instead.
type ContinuousFunc func(s model.GameState, cat model.Catalogue, source, card types.CardInstanceID) int

// ContinuousRegistry binds resolver ids used by Continuous-timed effect
// definitions to their power contribution. Kept distinct from Registry's
// ResolverFunc map because continuous resolvers have a different shape
// (they return a delta, not a new State) and are looked up by every
// power/cost computation rather than by the drain loop.
type ContinuousRegistry struct {
	funcs map[types.ResolverID]ContinuousFunc
}

// NewContinuousRegistry creates an empty ContinuousRegistry.
func NewContinuousRegistry() *ContinuousRegistry {
	return &ContinuousRegistry{funcs: make(map[types.ResolverID]ContinuousFunc)}
}

// Register binds id to fn.
func (r *ContinuousRegistry) Register(id types.ResolverID, fn ContinuousFunc) {
	r.funcs[id] = fn
}

// EffectivePower computes card's power as base printed power, plus every
// Modifier of kind Power attached to it, plus 1000 per attached DON (spec
// §4.5 step 5: "1000 × attached don count"), plus the contribution of
// every on-field continuous effect whose condition currently holds (spec
// §4.4.1). Evaluation is not cached across calls: the spec permits
// per-state-hash memoisation as an optimisation, not a requirement, and
// threading a cache through here would mean carrying a mutable
// invalidate-on-field-change cache somewhere in the engine, which the
// no-global-mutable-state design note (spec §9) argues against; a future
// optimisation could thread a per-resolution-cycle cache through
// ExecContext instead.
func EffectivePower(s model.GameState, cat model.Catalogue, reg *Registry, creg *ContinuousRegistry, card types.CardInstanceID) int {
	inst, ok := s.Card(card)
	if !ok {
		return 0
	}
	def := cat.DefinitionFor(inst)
	power := 0
	if def != nil && def.BasePower != nil {
		power = *def.BasePower
	}
	for _, m := range inst.Modifiers {
		if m.Kind == types.ModifierPower {
			power += m.Value
		}
	}
	power += 1000 * len(inst.GivenDon)
	power += continuousPowerContribution(s, cat, reg, creg, card)
	return power
}

// EffectiveCost computes card's cost as base printed cost plus every
// Modifier of kind Cost attached to it (floored at zero).
func EffectiveCost(s model.GameState, cat model.Catalogue, card types.CardInstanceID) int {
	inst, ok := s.Card(card)
	if !ok {
		return 0
	}
	def := cat.DefinitionFor(inst)
	cost := 0
	if def != nil && def.BaseCost != nil {
		cost = *def.BaseCost
	}
	for _, m := range inst.Modifiers {
		if m.Kind == types.ModifierCost {
			cost += m.Value
		}
	}
	if cost < 0 {
		cost = 0
	}
	return cost
}

func continuousPowerContribution(s model.GameState, cat model.Catalogue, reg *Registry, creg *ContinuousRegistry, card types.CardInstanceID) int {
	total := 0
	for _, sourceID := range onFieldCards(s) {
		sourceInst, ok := s.Card(sourceID)
		if !ok {
			continue
		}
		def := cat.DefinitionFor(sourceInst)
		if def == nil {
			continue
		}
		for _, ed := range def.Effects {
			if ed.Timing != types.TimingContinuous {
				continue
			}
			fn, ok := creg.funcs[ed.Resolver]
			if !ok {
				continue
			}
			placeholder := model.EffectInstance{SourceCardID: sourceID, Controller: sourceInst.Controller}
			if !reg.Condition(ed.Condition)(s, placeholder, ExecContext{Catalogue: cat}) {
				continue
			}
			total += fn(s, cat, sourceID, card)
		}
	}
	return total
}

func onFieldCards(s model.GameState) []types.CardInstanceID {
	var out []types.CardInstanceID
	for _, pid := range s.PlayerOrder {
		p, ok := s.Player(pid)
		if !ok {
			continue
		}
		out = append(out, p.CharacterArea()...)
		if leader := p.LeaderID(); leader != "" {
			out = append(out, leader)
		}
		out = append(out, p.CardsIn(types.ZoneStageArea)...)
	}
	return out
}
