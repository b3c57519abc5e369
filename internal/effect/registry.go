package effect

import (
	"math/rand"

	"tcgengine/internal/engineerr"
	"tcgengine/internal/events"
	"tcgengine/internal/model"
	"tcgengine/internal/rules"
	"tcgengine/internal/types"
)

// ExecContext is the execution context passed to every resolver and
// condition: the damage calculator, zone manager, and rng the spec names
// as the registry's provided context (§4.4 "under a provided execution
// context (damage calculator, zone manager, rng)"). Resolvers reach the
// zone manager and battle math through the sibling packages directly
// (they are plain functions taking a GameState, not objects ExecContext
// wraps), so ExecContext carries only the pieces that are not otherwise
// derivable from State: the card catalogue, the effect registry, the
// rules tunables, the event bus, and the seeded rng.
type ExecContext struct {
	Catalogue model.Catalogue
	Registry  *Registry
	Rules     rules.Context
	Bus       *events.Bus
	RNG       *rand.Rand
}

// ResolverFunc transforms a (State, EffectInstance) pair into a new
// State, or fails (spec §4.4: "a registry maps resolver ids to
// implementations that transform a (State, EffectInstance) → State").
type ResolverFunc func(s model.GameState, inst model.EffectInstance, ec ExecContext) (model.GameState, *engineerr.Error)

// ConditionFunc reports whether an effect is currently eligible — checked
// both before a triggered effect is enqueued and, for Activated effects,
// before activation is permitted.
type ConditionFunc func(s model.GameState, inst model.EffectInstance, ec ExecContext) bool

// Registry holds the resolver and condition registrations a running game
// consults. It is built once at Setup from the host's resolver
// implementations and never mutated afterward, mirroring the teacher's
// player_effects.go lookup table (built once, read many times).
type Registry struct {
	resolvers  map[types.ResolverID]ResolverFunc
	conditions map[types.ConditionID]ConditionFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		resolvers:  make(map[types.ResolverID]ResolverFunc),
		conditions: make(map[types.ConditionID]ConditionFunc),
	}
}

// RegisterResolver binds id to fn. Re-registering an id overwrites the
// previous binding, which lets a host override a default resolver.
func (r *Registry) RegisterResolver(id types.ResolverID, fn ResolverFunc) {
	r.resolvers[id] = fn
}

// RegisterCondition binds id to fn.
func (r *Registry) RegisterCondition(id types.ConditionID, fn ConditionFunc) {
	r.conditions[id] = fn
}

// Resolver looks up a resolver by id.
func (r *Registry) Resolver(id types.ResolverID) (ResolverFunc, bool) {
	fn, ok := r.resolvers[id]
	return fn, ok
}

// Condition looks up a condition by id. An empty id always holds (spec
// §4.4: "Condition ... '' means always eligible").
func (r *Registry) Condition(id types.ConditionID) ConditionFunc {
	if id == "" {
		return func(model.GameState, model.EffectInstance, ExecContext) bool { return true }
	}
	if fn, ok := r.conditions[id]; ok {
		return fn
	}
	return func(model.GameState, model.EffectInstance, ExecContext) bool { return false }
}
