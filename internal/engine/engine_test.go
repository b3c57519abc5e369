package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcgengine/internal/effect"
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

// scriptedProvider returns one queued Action per player per call, in
// order, then falls back to PassPriority once its queue runs dry — a
// deterministic stand-in for the interactive PlayerInputProvider the
// spec describes, in the same spirit as the teacher's fake collaborator
// test doubles.
type scriptedProvider struct {
	queue map[types.PlayerID][]Action
}

func newScriptedProvider() *scriptedProvider {
	return &scriptedProvider{queue: map[types.PlayerID][]Action{}}
}

func (p *scriptedProvider) push(a Action) {
	p.queue[a.Player] = append(p.queue[a.Player], a)
}

func (p *scriptedProvider) RequestAction(player types.PlayerID, available []types.ActionKind, snap Snapshot) (Action, bool) {
	q := p.queue[player]
	if len(q) == 0 {
		return Action{Player: player, Kind: types.ActionPassPriority}, true
	}
	next := q[0]
	p.queue[player] = q[1:]
	return next, true
}

func testCatalogue() model.Catalogue {
	return model.NewCatalogue([]*model.CardDefinition{
		{ID: "leader-a", Name: "Leader A", Category: types.CategoryLeader, BasePower: intPtr(5000), LifeValue: intPtr(4)},
		{ID: "leader-b", Name: "Leader B", Category: types.CategoryLeader, BasePower: intPtr(5000), LifeValue: intPtr(4)},
		{ID: "filler", Name: "Filler", Category: types.CategoryCharacter, BasePower: intPtr(1000), BaseCost: intPtr(0)},
		{ID: "blocker-weak", Name: "Weak Guard", Category: types.CategoryCharacter, BasePower: intPtr(1000), BaseCost: intPtr(0),
			Keywords: map[types.Keyword]bool{types.KeywordBlocker: true}},
	})
}

func deckOf(n int) []types.CardDefinitionID {
	out := make([]types.CardDefinitionID, n)
	for i := range out {
		out[i] = "filler"
	}
	return out
}

func newTestEngine(t *testing.T, provider InputProvider) *Engine {
	t.Helper()
	cat := testCatalogue()
	e, err := New("game-1", cat, effect.NewRegistry(), effect.NewContinuousRegistry(), rules.Default(), provider, 42)
	require.Nil(t, err)
	setupErr := e.Setup(playerA, playerB,
		DeckList{Leader: "leader-a", Cards: deckOf(20), DonCount: 10},
		DeckList{Leader: "leader-b", Cards: deckOf(20), DonCount: 10},
		playerA, nil)
	require.Nil(t, setupErr)
	return e
}

func TestSetupDealsLeadersLifeAndHand(t *testing.T) {
	e := newTestEngine(t, newScriptedProvider())
	snap := e.Snapshot()

	pa := snap.Players[playerA]
	assert.Len(t, pa.Zones[types.ZoneLeaderArea], 1)
	assert.Len(t, pa.Zones[types.ZoneLife], 4)
	assert.Len(t, pa.Zones[types.ZoneHand], 5)
	assert.Len(t, pa.DonZones[types.ZoneDonDeck], 10)
	assert.Equal(t, types.PhaseRefresh, snap.Phase)
	assert.Equal(t, playerA, snap.ActivePlayer)
}

// TestUnblockedLeaderAttackDealsLifeLoss exercises spec §8 scenario 1: a
// character attacks the opposing leader unopposed and the defender loses
// one life card to hand.
func TestUnblockedLeaderAttackDealsLifeLoss(t *testing.T) {
	e := newTestEngine(t, newScriptedProvider())
	require.Nil(t, e.AdvanceToMain())

	snap := e.Snapshot()
	leaderA := snap.Players[playerA].Zones[types.ZoneLeaderArea][0]

	// Both leaders print 5000 power (testCatalogue); give leaderA one DON
	// so it strictly outpowers the defending leader, mirroring spec §8
	// scenario 1's 6000-vs-5000 matchup rather than relying on a tie.
	s := e.state
	var donID types.DonInstanceID
	s.IDs, donID = s.IDs.NextDonInstanceID()
	s = addDon(s, model.DonInstance{ID: donID, Owner: playerA, Zone: types.ZoneCostArea, State: types.DonActive})
	inst := s.Cards[leaderA]
	inst.GivenDon = append(inst.GivenDon, donID)
	s.Cards[leaderA] = inst
	e.state = s

	var bEvents []events.BattleResolved
	e.Subscribe([]string{"battle-resolved"}, func(ev events.Event) {
		if be, ok := ev.(events.BattleResolved); ok {
			bEvents = append(bEvents, be)
		}
	})

	require.Nil(t, e.SubmitAction(Action{Player: playerA, Kind: types.ActionDeclareAttack, CardID: leaderA, TargetID: ""}))

	after := e.Snapshot()
	assert.Len(t, after.Players[playerB].Zones[types.ZoneLife], 3)
	assert.Len(t, after.Players[playerB].Zones[types.ZoneHand], 6)
	require.Len(t, bEvents, 1)
	assert.False(t, bEvents[0].KO)
}

// TestBlockerRedirectsAttack exercises spec §8 scenario 2: a declared
// blocker substitutes itself as the battle's defender.
func TestBlockerRedirectsAttack(t *testing.T) {
	provider := newScriptedProvider()
	e := newTestEngine(t, provider)
	require.Nil(t, e.AdvanceToMain())

	snap := e.Snapshot()
	leaderA := snap.Players[playerA].Zones[types.ZoneLeaderArea][0]

	s := e.state
	var blockerID types.CardInstanceID
	s.IDs, blockerID = s.IDs.NextCardInstanceID()
	s = addCard(s, model.CardInstance{
		ID: blockerID, DefinitionID: "blocker-weak", Owner: playerB, Controller: playerB,
		Zone: types.ZoneCharacterArea, State: types.StateActive,
	})
	e.state = s

	provider.push(Action{Player: playerB, Kind: types.ActionDeclareBlocker, TargetID: blockerID})

	require.Nil(t, e.SubmitAction(Action{Player: playerA, Kind: types.ActionDeclareAttack, CardID: leaderA, TargetID: ""}))

	after := e.Snapshot()
	assert.Len(t, after.Players[playerB].Zones[types.ZoneLife], 4)   // leader untouched
	assert.Equal(t, types.ZoneTrash, after.Cards[blockerID].Zone) // blocker outpowered by the leader's 5000, KO'd instead
}

// TestLoopDrawAfterRepeatedPasses exercises spec §8 scenario 6: both
// players repeatedly pass priority without mutating state until the
// loop guard forces a draw.
func TestLoopDrawAfterRepeatedPasses(t *testing.T) {
	e := newTestEngine(t, newScriptedProvider())
	require.Nil(t, e.AdvanceToMain())

	var gameOver []events.GameOver
	e.Subscribe([]string{"game-over"}, func(ev events.Event) {
		if g, ok := ev.(events.GameOver); ok {
			gameOver = append(gameOver, g)
		}
	})

	require.Nil(t, e.RunMain())

	require.Len(t, gameOver, 1)
	assert.Equal(t, types.PlayerID(""), gameOver[0].Winner)
	assert.Equal(t, "loop-detected", gameOver[0].Reason)
	assert.True(t, e.Snapshot().GameOver)
}
