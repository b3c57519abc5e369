package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcgengine/internal/effect"
	"tcgengine/internal/events"
	"tcgengine/internal/model"
	"tcgengine/internal/types"
)

func TestRedDeckAndBlueDeckAreFullSized(t *testing.T) {
	assert.Len(t, RedDeck(), 40)
	assert.Len(t, BlueDeck(), 40)
}

func TestCatalogueKnowsEveryDeckCard(t *testing.T) {
	cat := Catalogue()
	for _, id := range append(RedDeck(), BlueDeck()...) {
		require.NotNil(t, cat.Definition(id), "missing definition for %q", id)
	}
	require.NotNil(t, cat.Definition(CardLeaderRed))
	require.NotNil(t, cat.Definition(CardLeaderBlue))
}

func TestDrawTwoResolverDrawsUpToTwoCards(t *testing.T) {
	reg := Registry()
	fn, ok := reg.Resolver(ResolverDrawTwo)
	require.True(t, ok)

	s := model.NewGameState([]types.PlayerID{"red", "blue"}, 4)
	deckIDs := []types.CardInstanceID{"c1", "c2"}
	p := s.Players["red"].WithCardsIn(types.ZoneDeck, deckIDs)
	s.Players["red"] = p
	s.Cards = map[types.CardInstanceID]model.CardInstance{
		"c1": {ID: "c1", DefinitionID: CardStriker, Owner: "red", Controller: "red", Zone: types.ZoneDeck},
		"c2": {ID: "c2", DefinitionID: CardStriker, Owner: "red", Controller: "red", Zone: types.ZoneDeck},
	}

	next, err := fn(s, model.EffectInstance{Controller: "red"}, effect.ExecContext{Bus: events.NewBus()})
	require.Nil(t, err)
	assert.Len(t, next.Players["red"].Hand(), 2)
	assert.Len(t, next.Players["red"].Deck(), 0)
}

func TestBannerBoostAppliesToControllersCharactersOnly(t *testing.T) {
	creg := ContinuousRegistry()
	cat := Catalogue()

	s := model.NewGameState([]types.PlayerID{"red", "blue"}, 4)
	banner := model.CardInstance{ID: "banner-1", DefinitionID: CardBanner, Owner: "red", Controller: "red", Zone: types.ZoneStageArea}
	mine := model.CardInstance{ID: "char-1", DefinitionID: CardStriker, Owner: "red", Controller: "red", Zone: types.ZoneCharacterArea}
	theirs := model.CardInstance{ID: "char-2", DefinitionID: CardShieldGuard, Owner: "blue", Controller: "blue", Zone: types.ZoneCharacterArea}
	s.Cards = map[types.CardInstanceID]model.CardInstance{"banner-1": banner, "char-1": mine, "char-2": theirs}
	s.Players["red"] = s.Players["red"].
		WithCardsIn(types.ZoneStageArea, []types.CardInstanceID{"banner-1"}).
		WithCardsIn(types.ZoneCharacterArea, []types.CardInstanceID{"char-1"})
	s.Players["blue"] = s.Players["blue"].WithCardsIn(types.ZoneCharacterArea, []types.CardInstanceID{"char-2"})

	power := effect.EffectivePower(s, cat, effect.NewRegistry(), creg, "char-1")
	assert.Equal(t, 4500, power)
	power = effect.EffectivePower(s, cat, effect.NewRegistry(), creg, "char-2")
	assert.Equal(t, 2000, power)
}
