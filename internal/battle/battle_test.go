package battle

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

func intPtr(v int) *int { return &v }

func newTestState() (model.GameState, model.Catalogue) {
	s := model.NewGameState([]types.PlayerID{playerA, playerB}, 4)
	s.ActivePlayer = playerA

	s.Cards = map[types.CardInstanceID]model.CardInstance{
		"attacker": {ID: "attacker", DefinitionID: "def-char", Owner: playerA, Controller: playerA, Zone: types.ZoneCharacterArea, State: types.StateActive},
		"defender": {ID: "defender", DefinitionID: "def-char-weak", Owner: playerB, Controller: playerB, Zone: types.ZoneCharacterArea, State: types.StateRested},
		"leader-b": {ID: "leader-b", DefinitionID: "def-leader", Owner: playerB, Controller: playerB, Zone: types.ZoneLeaderArea, State: types.StateActive},
		"life-1":   {ID: "life-1", DefinitionID: "def-life", Owner: playerB, Controller: playerB, Zone: types.ZoneLife, State: types.StateNone},
	}
	pa := s.Players[playerA].WithCardsIn(types.ZoneCharacterArea, []types.CardInstanceID{"attacker"})
	pb := s.Players[playerB].
		WithCardsIn(types.ZoneCharacterArea, []types.CardInstanceID{"defender"}).
		WithCardsIn(types.ZoneLeaderArea, []types.CardInstanceID{"leader-b"}).
		WithCardsIn(types.ZoneLife, []types.CardInstanceID{"life-1"})
	s.Players[playerA] = pa
	s.Players[playerB] = pb

	cat := model.NewCatalogue([]*model.CardDefinition{
		{ID: "def-char", Name: "Fighter", Category: types.CategoryCharacter, BasePower: intPtr(5000)},
		{ID: "def-char-weak", Name: "Weak Fighter", Category: types.CategoryCharacter, BasePower: intPtr(3000)},
		{ID: "def-leader", Name: "Defending Leader", Category: types.CategoryLeader, BasePower: intPtr(4000)},
		{ID: "def-life", Name: "Life Card", Category: types.CategoryCharacter},
	})
	return s, cat
}

func newResolver(cat model.Catalogue) Resolver {
	return Resolver{
		Catalogue:  cat,
		Registry:   effect.NewRegistry(),
		Continuous: effect.NewContinuousRegistry(),
		Rules:      rules.Default(),
		Bus:        events.NewBus(),
		History:    engineerr.NewHistory(16),
	}
}

func TestDeclareAttackerWinsKOsCharacter(t *testing.T) {
	s, cat := newTestState()
	r := newResolver(cat)

	var resolved []events.BattleResolved
	events.Subscribe(r.Bus, func(e events.BattleResolved) { resolved = append(resolved, e) })

	next, err := r.Declare(s, playerA, Declaration{Attacker: "attacker", Target: "defender"}, "", nil)
	require.Nil(t, err)

	assert.Equal(t, types.ZoneTrash, next.Cards["defender"].Zone)
	assert.True(t, next.AttackedThisTurn["attacker"])
	require.Len(t, resolved, 1)
	assert.True(t, resolved[0].KO)
}

func TestDeclareRejectsAlreadyAttacked(t *testing.T) {
	s, cat := newTestState()
	r := newResolver(cat)
	s.AttackedThisTurn["attacker"] = true

	_, err := r.Declare(s, playerA, Declaration{Attacker: "attacker", Target: "defender"}, "", nil)
	require.NotNil(t, err)
	assert.Equal(t, engineerr.IllegalAction, err.Code)
}

func TestDeclareRejectsNonRestedTarget(t *testing.T) {
	s, cat := newTestState()
	c := s.Cards["defender"]
	c.State = types.StateActive
	s.Cards["defender"] = c
	r := newResolver(cat)

	_, err := r.Declare(s, playerA, Declaration{Attacker: "attacker", Target: "defender"}, "", nil)
	require.NotNil(t, err)
	assert.Equal(t, engineerr.IllegalAction, err.Code)
}

func TestDeclareAgainstLeaderDealsLifeDamage(t *testing.T) {
	s, cat := newTestState()
	r := newResolver(cat)

	next, err := r.Declare(s, playerA, Declaration{Attacker: "attacker", Target: ""}, "", nil)
	require.Nil(t, err)

	assert.Contains(t, next.Players[playerB].Hand(), types.CardInstanceID("life-1"))
	assert.Empty(t, next.Players[playerB].Life())
	assert.False(t, next.GameOver)
}

// TestDeclareAgainstLeaderComparesRealLeaderPower exercises spec §4.5 step
// 5 against a leader defender specifically: the defending leader's own
// power (here 4000, from newTestState's "leader-b") must be computed and
// compared, not treated as zero. An attacker weaker than the leader loses
// and the leader's life is untouched.
func TestDeclareAgainstLeaderComparesRealLeaderPower(t *testing.T) {
	s, cat := newTestState()
	c := s.Cards["attacker"]
	c.DefinitionID = "def-char-weak" // 3000 power, below leader-b's 4000
	s.Cards["attacker"] = c
	r := newResolver(cat)

	next, err := r.Declare(s, playerA, Declaration{Attacker: "attacker", Target: ""}, "", nil)
	require.Nil(t, err)

	assert.Equal(t, []types.CardInstanceID{"life-1"}, next.Players[playerB].Life())
	assert.NotContains(t, next.Players[playerB].Hand(), types.CardInstanceID("life-1"))
	assert.False(t, next.GameOver)
}

func TestDeclareAgainstEmptyLifeEndsGame(t *testing.T) {
	s, cat := newTestState()
	s.Players[playerB] = s.Players[playerB].WithCardsIn(types.ZoneLife, nil)
	r := newResolver(cat)

	next, err := r.Declare(s, playerA, Declaration{Attacker: "attacker", Target: ""}, "", nil)
	require.Nil(t, err)
	assert.True(t, next.GameOver)
	assert.Equal(t, playerA, next.Winner)
}

func TestDeclareTieLosesUnderDefaultTieRule(t *testing.T) {
	s, cat := newTestState()
	cat.Definition("def-char-weak").BasePower = intPtr(5000) // attacker == defender power

	r := newResolver(cat)
	next, err := r.Declare(s, playerA, Declaration{Attacker: "attacker", Target: "defender"}, "", nil)
	require.Nil(t, err)
	assert.Equal(t, types.ZoneCharacterArea, next.Cards["defender"].Zone) // not KO'd
}
