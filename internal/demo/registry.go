package demo

import (
	"tcgengine/internal/effect"
	"tcgengine/internal/engineerr"
	"tcgengine/internal/model"
	"tcgengine/internal/types"
	"tcgengine/internal/zone"
)

// Registry builds the resolver bindings the sample catalogue's effect
// definitions name by id (spec §4.4: "a registry maps resolver ids to
// implementations"). Built once, handed to engine.New, never mutated
// afterward — the same lifecycle the teacher's player_effects.go lookup
// table follows.
func Registry() *effect.Registry {
	reg := effect.NewRegistry()
	reg.RegisterResolver(ResolverDrawTwo, drawN(2))
	return reg
}

// ContinuousRegistry binds the sample catalogue's one Continuous
// resolver: War Banner's flat +500 to every character its controller
// has on the field.
func ContinuousRegistry() *effect.ContinuousRegistry {
	creg := effect.NewContinuousRegistry()
	creg.Register(ResolverBannerBoost, func(s model.GameState, cat model.Catalogue, source, card types.CardInstanceID) int {
		sourceInst, ok := s.Card(source)
		if !ok {
			return 0
		}
		cardInst, ok := s.Card(card)
		if !ok || cardInst.Controller != sourceInst.Controller {
			return 0
		}
		def := cat.DefinitionFor(cardInst)
		if def == nil || def.Category != types.CategoryCharacter {
			return 0
		}
		return 500
	})
	return creg
}

// drawN returns a resolver that draws n cards for the effect instance's
// controller, mirroring spec §8 scenario 4 ("On-Play draw ... Draw 2").
// An empty deck mid-draw simply stops short rather than ending the
// game — only the phase runner's Draw-phase draw is a required draw
// that can end it (spec §4.3).
func drawN(n int) effect.ResolverFunc {
	return func(s model.GameState, inst model.EffectInstance, ec effect.ExecContext) (model.GameState, *engineerr.Error) {
		for i := 0; i < n; i++ {
			p, ok := s.Player(inst.Controller)
			if !ok {
				return s, engineerr.Newf(engineerr.InvalidState, "unknown player %q", inst.Controller)
			}
			deck := p.Deck()
			if len(deck) == 0 {
				break
			}
			next, zerr := zone.Move(s, ec.Catalogue, ec.Registry, ec.Rules, ec.Bus, inst.Controller, deck[0], types.ZoneHand)
			if zerr != nil {
				return s, zerr
			}
			s = next
		}
		return s, nil
	}
}
