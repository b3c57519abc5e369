package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcgengine/internal/engineerr"
	"tcgengine/internal/events"
	"tcgengine/internal/model"
	"tcgengine/internal/types"
)

const (
	playerA types.PlayerID = "p1"
	playerB types.PlayerID = "p2"
)

func intPtr(v int) *int { return &v }

func newTestState() (model.GameState, model.Catalogue) {
	s := model.NewGameState([]types.PlayerID{playerA, playerB}, 4)
	s.ActivePlayer = playerA

	s.Cards = map[types.CardInstanceID]model.CardInstance{
		"char-1": {ID: "char-1", DefinitionID: "def-char", Owner: playerA, Controller: playerA, Zone: types.ZoneCharacterArea, State: types.StateActive},
		"char-2": {ID: "char-2", DefinitionID: "def-char", Owner: playerB, Controller: playerB, Zone: types.ZoneCharacterArea, State: types.StateActive},
	}
	pa := s.Players[playerA].WithCardsIn(types.ZoneCharacterArea, []types.CardInstanceID{"char-1"})
	pb := s.Players[playerB].WithCardsIn(types.ZoneCharacterArea, []types.CardInstanceID{"char-2"})
	s.Players[playerA] = pa
	s.Players[playerB] = pb

	cat := model.NewCatalogue([]*model.CardDefinition{
		{ID: "def-char", Name: "Test Character", Category: types.CategoryCharacter, Colours: []types.Colour{types.ColourRed}, BasePower: intPtr(3000)},
	})
	return s, cat
}

func TestCandidatesScopesByControllerAndOrdersDeterministically(t *testing.T) {
	s, cat := newTestState()

	f := TargetFilter{Zones: []types.Zone{types.ZoneCharacterArea}, Controller: types.ScopeOpponent}
	got := Candidates(s, cat, playerA, f, nil, nil)
	assert.Equal(t, []types.CardInstanceID{"char-2"}, got)

	fAny := TargetFilter{Zones: []types.Zone{types.ZoneCharacterArea}, Controller: types.ScopeAny}
	gotAny := Candidates(s, cat, playerA, fAny, nil, nil)
	assert.Equal(t, []types.CardInstanceID{"char-1", "char-2"}, gotAny)
}

func TestCandidatesFiltersByPowerPredicate(t *testing.T) {
	s, cat := newTestState()
	powerOf := func(id types.CardInstanceID) int {
		inst, _ := s.Card(id)
		if inst.ID == "char-1" {
			return 3000
		}
		return 1000
	}

	f := TargetFilter{
		Zones:      []types.Zone{types.ZoneCharacterArea},
		Controller: types.ScopeAny,
		Power:      IntRange{Min: intPtr(2000)},
	}
	got := Candidates(s, cat, playerA, f, powerOf, nil)
	assert.Equal(t, []types.CardInstanceID{"char-1"}, got)
}

func TestEffectivePowerIncludesBaseModifiersAndDon(t *testing.T) {
	s, cat := newTestState()
	reg := NewRegistry()
	creg := NewContinuousRegistry()

	inst := s.Cards["char-1"]
	inst.Modifiers = []model.Modifier{{Kind: types.ModifierPower, Value: 1000}}
	inst.GivenDon = []types.DonInstanceID{"don-1", "don-2"}
	s.Cards["char-1"] = inst

	power := EffectivePower(s, cat, reg, creg, "char-1")
	assert.Equal(t, 3000+1000+2000, power)
}

func TestFireEnqueuesMatchingTriggeredEffectAndSkipsOncePerTurn(t *testing.T) {
	s, cat := newTestState()
	def := cat.Definition("def-char")
	def.Effects = []model.EffectDefinition{
		{ID: "eff-on-play", Timing: types.TimingTriggered, Trigger: types.TriggerOnPlay, Resolver: "noop", OncePerTurn: true},
	}
	reg := NewRegistry()
	bus := events.NewBus()
	var fired []events.EffectTriggered
	events.Subscribe(bus, func(e events.EffectTriggered) { fired = append(fired, e) })

	s = Fire(s, cat, reg, bus, types.TriggerOnPlay, "char-1")
	require.Len(t, s.PendingTriggers, 1)
	require.Len(t, fired, 1)
	assert.Equal(t, types.CardInstanceID("char-1"), fired[0].Source)

	// mark flag, re-fire: no second instance
	inst := s.Cards["char-1"]
	inst = inst.WithFlag("eff-on-play", true)
	s.Cards["char-1"] = inst
	s = Fire(s, cat, reg, bus, types.TriggerOnPlay, "char-1")
	assert.Len(t, s.PendingTriggers, 1)
}

func TestDrainResolvesInActivePlayerThenTimestampOrder(t *testing.T) {
	s, cat := newTestState()
	reg := NewRegistry()
	var order []types.EffectInstanceID
	reg.RegisterResolver("record", func(cur model.GameState, inst model.EffectInstance, ec ExecContext) (model.GameState, *engineerr.Error) {
		order = append(order, inst.ID)
		return cur, nil
	})

	s.PendingTriggers = []model.EffectInstance{
		{ID: "e1", Controller: playerB, Resolver: "record", Timestamp: 1},
		{ID: "e2", Controller: playerA, Resolver: "record", Timestamp: 2},
		{ID: "e3", Controller: playerA, Resolver: "record", Timestamp: 1},
	}

	bus := events.NewBus()
	ec := ExecContext{Catalogue: cat, Bus: bus}
	history := engineerr.NewHistory(8)

	s = Drain(s, reg, ec, history)

	assert.Equal(t, []types.EffectInstanceID{"e3", "e2", "e1"}, order)
	assert.Empty(t, s.PendingTriggers)
}

func TestDrainRevertsOnlyFailingEffect(t *testing.T) {
	s, cat := newTestState()
	reg := NewRegistry()
	reg.RegisterResolver("fail", func(cur model.GameState, inst model.EffectInstance, ec ExecContext) (model.GameState, *engineerr.Error) {
		return cur, engineerr.New(engineerr.TargetLost, "target gone")
	})
	reg.RegisterResolver("mark", func(cur model.GameState, inst model.EffectInstance, ec ExecContext) (model.GameState, *engineerr.Error) {
		return setFlagForTest(cur, "char-1", "marked"), nil
	})

	s.PendingTriggers = []model.EffectInstance{
		{ID: "e1", Controller: playerA, Resolver: "fail", Timestamp: 1},
		{ID: "e2", Controller: playerA, Resolver: "mark", Timestamp: 2},
	}

	bus := events.NewBus()
	ec := ExecContext{Catalogue: cat, Bus: bus}
	history := engineerr.NewHistory(8)

	s = Drain(s, reg, ec, history)

	assert.True(t, s.Cards["char-1"].HasFlag("marked"))
	require.Len(t, history.All(), 1)
	assert.Equal(t, engineerr.TargetLost, history.All()[0].Code)
}

// setFlagForTest is a tiny test helper standing in for a resolver
// mutating state; it avoids importing package state's internal error
// plumbing just to flip a flag in this test.
func setFlagForTest(s model.GameState, card types.CardInstanceID, flag string) model.GameState {
	inst := s.Cards[card]
	inst = inst.WithFlag(flag, true)
	s.Cards[card] = inst
	return s
}
