package loopguard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tcgengine/internal/model"
	"tcgengine/internal/types"
)

func baseState() model.GameState {
	s := model.NewGameState([]types.PlayerID{"p1", "p2"}, 4)
	s.ActivePlayer = "p1"
	s.Phase = types.PhaseMain
	return s
}

func TestFingerprintStableAcrossIdenticalStates(t *testing.T) {
	a := baseState()
	b := baseState()
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintChangesWithActivePlayer(t *testing.T) {
	a := baseState()
	b := baseState()
	b.ActivePlayer = "p2"
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintChangesWithZoneContents(t *testing.T) {
	a := baseState()
	b := baseState()
	b.Players["p1"] = b.Players["p1"].WithCardsIn(types.ZoneHand, []types.CardInstanceID{"card-1"})
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintIgnoresActionHistory(t *testing.T) {
	a := baseState()
	b := baseState()
	b.ActionHistory = []model.ActionRecord{{Player: "p1", Kind: types.ActionPassPriority, Turn: 1}}
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestRecordIncrementsAndReportsExceeded(t *testing.T) {
	s := baseState()
	table := model.LoopGuardTable{Counts: map[string]int{}, Threshold: 2}

	table, r1 := Record(table, s)
	assert.Equal(t, 1, r1.Count)
	assert.False(t, r1.Exceeded)

	table, r2 := Record(table, s)
	assert.Equal(t, 2, r2.Count)
	assert.True(t, r2.Exceeded)
	assert.Equal(t, r1.Fingerprint, r2.Fingerprint)
}

func TestInvalidateClearsCounts(t *testing.T) {
	table := model.LoopGuardTable{Counts: map[string]int{"x": 3}, Threshold: 4}
	cleared := Invalidate(table)
	assert.Empty(t, cleared.Counts)
}
