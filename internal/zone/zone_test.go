package zone

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcgengine/internal/effect"
	"tcgengine/internal/engineerr"
	"tcgengine/internal/events"
	"tcgengine/internal/model"
	"tcgengine/internal/rules"
	"tcgengine/internal/types"
)

const (
	playerA types.PlayerID = "p1"
	playerB types.PlayerID = "p2"
)

func newTestState() model.GameState {
	s := model.NewGameState([]types.PlayerID{playerA, playerB}, 4)
	s.Cards = map[types.CardInstanceID]model.CardInstance{
		"card-1": {ID: "card-1", Owner: playerA, Controller: playerA, Zone: types.ZoneHand, State: types.StateNone},
		"card-2": {ID: "card-2", Owner: playerA, Controller: playerA, Zone: types.ZoneCharacterArea, State: types.StateActive},
	}
	pa := s.Players[playerA].
		WithCardsIn(types.ZoneHand, []types.CardInstanceID{"card-1"}).
		WithCardsIn(types.ZoneCharacterArea, []types.CardInstanceID{"card-2"}).
		WithCardsIn(types.ZoneDeck, []types.CardInstanceID{"deck-1", "deck-2", "deck-3"}).
		WithDonsIn(types.ZoneCostArea, []types.DonInstanceID{"don-1"})
	s.Players[playerA] = pa
	s.Dons = map[types.DonInstanceID]model.DonInstance{
		"don-1": {ID: "don-1", Owner: playerA, Zone: types.ZoneCostArea, State: types.DonActive},
	}
	return s
}

func TestMoveEmitsCardMovedAndEnforcesCap(t *testing.T) {
	s := newTestState()
	bus := events.NewBus()
	var moved []events.CardMoved
	events.Subscribe(bus, func(e events.CardMoved) { moved = append(moved, e) })

	ctx := rules.Default()
	ctx.MaxCharacters = 1

	_, err := Move(s, model.Catalogue{}, effect.NewRegistry(), ctx, bus, playerA, "card-1", types.ZoneCharacterArea)
	require.NotNil(t, err)
	assert.Equal(t, engineerr.RulesViolation, err.Code)
	assert.Empty(t, moved)
}

func TestMoveLeavingFieldDetachesDonAndEmitsCardLeftField(t *testing.T) {
	s := newTestState()
	bus := events.NewBus()
	var left []events.CardLeftField
	var detached []events.DonDetached
	events.Subscribe(bus, func(e events.CardLeftField) { left = append(left, e) })
	events.Subscribe(bus, func(e events.DonDetached) { detached = append(detached, e) })

	s, err := AttachDon(s, bus, "don-1", "card-2")
	require.Nil(t, err)

	ctx := rules.Default()
	next, err := Move(s, model.Catalogue{}, effect.NewRegistry(), ctx, bus, playerA, "card-2", types.ZoneTrash)
	require.Nil(t, err)

	assert.Empty(t, next.Cards["card-2"].GivenDon)
	assert.Equal(t, types.DonRested, next.Dons["don-1"].State)
	assert.Equal(t, types.CardInstanceID(""), next.Dons["don-1"].HostCardID)
	require.Len(t, left, 1)
	assert.Equal(t, types.ZoneCharacterArea, left[0].Zone)
	require.Len(t, detached, 1)
}

func TestAttachDonRequiresActiveDon(t *testing.T) {
	s := newTestState()
	bus := events.NewBus()

	d := s.Dons["don-1"]
	d.State = types.DonRested
	s.Dons["don-1"] = d

	_, err := AttachDon(s, bus, "don-1", "card-2")
	require.NotNil(t, err)
	assert.Equal(t, engineerr.IllegalAction, err.Code)
}

func TestShuffleDeckPreservesMembership(t *testing.T) {
	s := newTestState()
	bus := events.NewBus()
	var shuffled []events.ZoneShuffled
	events.Subscribe(bus, func(e events.ZoneShuffled) { shuffled = append(shuffled, e) })

	rng := rand.New(rand.NewSource(1))
	next, err := Shuffle(s, bus, rng, playerA, types.ZoneDeck)
	require.Nil(t, err)

	before := s.Players[playerA].CardsIn(types.ZoneDeck)
	after := next.Players[playerA].CardsIn(types.ZoneDeck)
	assert.ElementsMatch(t, before, after)
	require.Len(t, shuffled, 1)
	assert.Equal(t, types.ZoneDeck, shuffled[0].Zone)
}

func TestPeekTopClampsToZoneLength(t *testing.T) {
	s := newTestState()

	ids, err := PeekTop(s, playerA, types.ZoneDeck, 10)
	require.Nil(t, err)
	assert.Len(t, ids, 3)
}

func TestSetCardStateEmitsOnlyOnChange(t *testing.T) {
	s := newTestState()
	bus := events.NewBus()
	var changed []events.CardStateChanged
	events.Subscribe(bus, func(e events.CardStateChanged) { changed = append(changed, e) })

	next, err := SetCardState(s, bus, "card-2", types.StateActive)
	require.Nil(t, err)
	assert.Empty(t, changed)
	assert.Equal(t, s, next)

	next, err = SetCardState(s, bus, "card-2", types.StateRested)
	require.Nil(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, types.StateRested, next.Cards["card-2"].State)
}
