// Package demo supplies a small, self-contained card catalogue and
// resolver registry for the two hosts (cmd/server, cmd/cli) to hand the
// engine as its collaborator-supplied contract (spec §6). It is sample
// data only — the engine itself never reads it, imports it, or knows it
// exists — grounded on the shape the teacher's own fixture loader
// exposes (internal/service/card_data_service.go's GetStartingCardPool,
// GetCorporations), reduced here to Go literals since the engine's
// card-definition contract is pre-encoded structured data rather than
// the teacher's JSON-parsed card text.
package demo

import (
	"tcgengine/internal/model"
	"tcgengine/internal/types"
)

func intPtr(v int) *int { return &v }

const (
	CardLeaderRed   types.CardDefinitionID = "leader-red"
	CardLeaderBlue  types.CardDefinitionID = "leader-blue"
	CardStriker     types.CardDefinitionID = "striker"
	CardShieldGuard types.CardDefinitionID = "shield-guard"
	CardRaider      types.CardDefinitionID = "raider"
	CardCounterTwo  types.CardDefinitionID = "counter-two"
	CardCounterOne  types.CardDefinitionID = "counter-one"
	CardReinforce   types.CardDefinitionID = "reinforce"
	CardBanner      types.CardDefinitionID = "banner"

	EffectReinforceDraw  types.EffectDefinitionID = "reinforce-draw-2"
	EffectBannerBoost    types.EffectDefinitionID = "banner-boost"
	ResolverDrawTwo      types.ResolverID          = "draw-n:2"
	ResolverBannerBoost  types.ResolverID          = "continuous-power:500"
)

// Catalogue returns the card definitions the sample decks (RedDeck,
// BlueDeck) draw from. It mirrors spec §8's literal end-to-end scenarios:
// two 5000-power leaders with 4 life, a Rush character, a Blocker
// character, a 6000-power character, two counter sizes, an Event whose
// OnPlay draws two cards (scenario 4), and a stage giving +500 power.
func Catalogue() model.Catalogue {
	return model.NewCatalogue([]*model.CardDefinition{
		{
			ID: CardLeaderRed, Name: "Crimson Vanguard", Category: types.CategoryLeader,
			Colours: []types.Colour{types.ColourRed}, BasePower: intPtr(5000), LifeValue: intPtr(4),
		},
		{
			ID: CardLeaderBlue, Name: "Azure Sentinel", Category: types.CategoryLeader,
			Colours: []types.Colour{types.ColourBlue}, BasePower: intPtr(5000), LifeValue: intPtr(4),
		},
		{
			ID: CardStriker, Name: "Striker", Category: types.CategoryCharacter,
			Colours: []types.Colour{types.ColourRed}, BasePower: intPtr(4000), BaseCost: intPtr(2),
			Keywords: map[types.Keyword]bool{types.KeywordRush: true},
		},
		{
			ID: CardShieldGuard, Name: "Shield Guard", Category: types.CategoryCharacter,
			Colours: []types.Colour{types.ColourBlue}, BasePower: intPtr(2000), BaseCost: intPtr(1),
			Keywords: map[types.Keyword]bool{types.KeywordBlocker: true},
		},
		{
			ID: CardRaider, Name: "Raider", Category: types.CategoryCharacter,
			Colours: []types.Colour{types.ColourRed}, BasePower: intPtr(6000), BaseCost: intPtr(4),
		},
		{
			ID: CardCounterTwo, Name: "Counter Strike", Category: types.CategoryCharacter,
			Colours: []types.Colour{types.ColourBlue}, BasePower: intPtr(1000), BaseCost: intPtr(1), CounterValue: intPtr(2000),
		},
		{
			ID: CardCounterOne, Name: "Parry", Category: types.CategoryCharacter,
			Colours: []types.Colour{types.ColourBlue}, BasePower: intPtr(1000), BaseCost: intPtr(1), CounterValue: intPtr(1000),
		},
		{
			ID: CardReinforce, Name: "Reinforcements", Category: types.CategoryEvent,
			Colours: []types.Colour{types.ColourRed}, BaseCost: intPtr(1),
			Effects: []model.EffectDefinition{
				{ID: EffectReinforceDraw, SourceCardID: CardReinforce, Label: "Draw 2", Timing: types.TimingTriggered,
					Trigger: types.TriggerOnPlay, Resolver: ResolverDrawTwo},
			},
		},
		{
			ID: CardBanner, Name: "War Banner", Category: types.CategoryStage,
			Colours: []types.Colour{types.ColourRed}, BaseCost: intPtr(2),
			Effects: []model.EffectDefinition{
				{ID: EffectBannerBoost, SourceCardID: CardBanner, Label: "+500 to characters", Timing: types.TimingContinuous,
					Resolver: ResolverBannerBoost},
			},
		},
	})
}

// Deck is one player's 40-card main deck: spread repeated in order until
// 40 cards are listed. leader is not added to the result.
func Deck(leader types.CardDefinitionID, spread ...types.CardDefinitionID) []types.CardDefinitionID {
	out := make([]types.CardDefinitionID, 0, 40)
	for len(out) < 40 {
		out = append(out, spread...)
	}
	return out[:40]
}

// RedDeck and BlueDeck are the two sample decks cmd/server and cmd/cli
// deal by default.
func RedDeck() []types.CardDefinitionID {
	return Deck(CardLeaderRed, CardStriker, CardRaider, CardReinforce, CardBanner)
}

func BlueDeck() []types.CardDefinitionID {
	return Deck(CardLeaderBlue, CardShieldGuard, CardCounterTwo, CardCounterOne)
}
