package phase

import (
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
	s.ActivePlayer = playerA
	s.Turn = 2 // avoid the turn-1 draw-skip policy in most tests

	s.Cards = map[types.CardInstanceID]model.CardInstance{
		"char-1": {ID: "char-1", Owner: playerA, Controller: playerA, Zone: types.ZoneCharacterArea, State: types.StateRested},
		"deck-1": {ID: "deck-1", Owner: playerA, Controller: playerA, Zone: types.ZoneDeck, State: types.StateNone},
	}
	s.Dons = map[types.DonInstanceID]model.DonInstance{
		"don-1": {ID: "don-1", Owner: playerA, Zone: types.ZoneDonDeck, State: types.DonActive},
	}
	pa := s.Players[playerA].
		WithCardsIn(types.ZoneCharacterArea, []types.CardInstanceID{"char-1"}).
		WithCardsIn(types.ZoneDeck, []types.CardInstanceID{"deck-1"}).
		WithDonsIn(types.ZoneDonDeck, []types.DonInstanceID{"don-1"})
	s.Players[playerA] = pa
	return s
}

func newRunner(bus *events.Bus) Runner {
	return Runner{
		Catalogue:  model.NewCatalogue(nil),
		Registry:   effect.NewRegistry(),
		Continuous: effect.NewContinuousRegistry(),
		Rules:      rules.Default(),
		Bus:        bus,
		History:    engineerr.NewHistory(16),
	}
}

func TestRefreshActivatesFieldCardsAndDon(t *testing.T) {
	s := newTestState()
	d := s.Dons["don-1"]
	d.Zone = types.ZoneCostArea
	d.State = types.DonRested
	s.Dons["don-1"] = d
	s.Players[playerA] = s.Players[playerA].
		WithDonsIn(types.ZoneDonDeck, nil).
		WithDonsIn(types.ZoneCostArea, []types.DonInstanceID{"don-1"})
	bus := events.NewBus()
	r := newRunner(bus)

	next, err := r.Advance(s)
	require.Nil(t, err)
	assert.Equal(t, types.StateActive, next.Cards["char-1"].State)
	assert.Equal(t, types.DonActive, next.Dons["don-1"].State)
	assert.Equal(t, types.PhaseDraw, next.Phase)
}

func TestDrawMovesTopDeckCardToHand(t *testing.T) {
	s := newTestState()
	s.Phase = types.PhaseDraw
	bus := events.NewBus()
	r := newRunner(bus)

	next, err := r.Advance(s)
	require.Nil(t, err)
	assert.Contains(t, next.Players[playerA].Hand(), types.CardInstanceID("deck-1"))
	assert.Equal(t, types.PhaseDon, next.Phase)
}

func TestDrawSkippedOnTurnOneForStartingPlayer(t *testing.T) {
	s := newTestState()
	s.Turn = 1
	s.Phase = types.PhaseDraw
	bus := events.NewBus()
	r := newRunner(bus)

	next, err := r.Advance(s)
	require.Nil(t, err)
	assert.Empty(t, next.Players[playerA].Hand())
	assert.Equal(t, types.PhaseDon, next.Phase)
}

func TestDrawWithEmptyDeckEndsGame(t *testing.T) {
	s := newTestState()
	s.Phase = types.PhaseDraw
	s.Players[playerA] = s.Players[playerA].WithCardsIn(types.ZoneDeck, nil)
	bus := events.NewBus()
	r := newRunner(bus)

	next, err := r.Advance(s)
	require.Nil(t, err)
	assert.True(t, next.GameOver)
	assert.Equal(t, playerB, next.Winner)
}

func TestDonPhaseMovesDonToCostAreaActive(t *testing.T) {
	s := newTestState()
	s.Phase = types.PhaseDon
	bus := events.NewBus()
	r := newRunner(bus)

	next, err := r.Advance(s)
	require.Nil(t, err)
	assert.Contains(t, next.Players[playerA].CostArea(), types.DonInstanceID("don-1"))
	assert.Equal(t, types.DonActive, next.Dons["don-1"].State)
	assert.Equal(t, types.PhaseMain, next.Phase)
}

func TestMainDoesNotAdvanceImplicitly(t *testing.T) {
	s := newTestState()
	s.Phase = types.PhaseMain
	bus := events.NewBus()
	r := newRunner(bus)

	_, err := r.Advance(s)
	require.NotNil(t, err)
	assert.Equal(t, engineerr.IllegalAction, err.Code)
}

func TestEndRotatesActivePlayerAndIncrementsTurn(t *testing.T) {
	s := newTestState()
	s.Phase = types.PhaseEnd
	bus := events.NewBus()
	r := newRunner(bus)

	next, err := r.Advance(s)
	require.Nil(t, err)
	assert.Equal(t, playerB, next.ActivePlayer)
	assert.Equal(t, 3, next.Turn)
	assert.Equal(t, types.PhaseRefresh, next.Phase)
	assert.Empty(t, next.AttackedThisTurn)
}

func TestEndExpiresEndOfTurnModifiers(t *testing.T) {
	s := newTestState()
	s.Phase = types.PhaseEnd
	c := s.Cards["char-1"]
	c.Modifiers = []model.Modifier{
		{ID: "mod-1", Kind: types.ModifierPower, Value: 1000, Duration: types.DurationUntilEndOfTurn},
		{ID: "mod-2", Kind: types.ModifierPower, Value: 500, Duration: types.DurationPermanent},
	}
	s.Cards["char-1"] = c
	bus := events.NewBus()
	r := newRunner(bus)

	next, err := r.Advance(s)
	require.Nil(t, err)
	require.Len(t, next.Cards["char-1"].Modifiers, 1)
	assert.Equal(t, types.DurationPermanent, next.Cards["char-1"].Modifiers[0].Duration)
}
