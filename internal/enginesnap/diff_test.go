package enginesnap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcgengine/internal/engine"
	"tcgengine/internal/types"
)

func TestDiffDetectsPhaseTurnAndCardMove(t *testing.T) {
	before := engine.Snapshot{
		Phase: types.PhaseMain, Turn: 1, ActivePlayer: "p1",
		PlayerOrder: []types.PlayerID{"p1", "p2"},
		Players: map[types.PlayerID]engine.PlayerSnapshot{
			"p1": {ID: "p1", Zones: map[types.Zone][]types.CardInstanceID{types.ZoneHand: {"c1", "c2"}}, DonZones: map[types.Zone][]types.DonInstanceID{}},
			"p2": {ID: "p2", Zones: map[types.Zone][]types.CardInstanceID{types.ZoneHand: {"c3"}}, DonZones: map[types.Zone][]types.DonInstanceID{}},
		},
		Cards: map[types.CardInstanceID]engine.CardSnapshot{
			"c1": {ID: "c1", Zone: types.ZoneHand, State: types.StateNone, Controller: "p1", Power: 0},
		},
	}
	after := engine.Snapshot{
		Phase: types.PhaseEnd, Turn: 1, ActivePlayer: "p1",
		PlayerOrder: []types.PlayerID{"p1", "p2"},
		Players: map[types.PlayerID]engine.PlayerSnapshot{
			"p1": {ID: "p1", Zones: map[types.Zone][]types.CardInstanceID{types.ZoneHand: {"c2"}, types.ZoneCharacterArea: {"c1"}}, DonZones: map[types.Zone][]types.DonInstanceID{}},
			"p2": {ID: "p2", Zones: map[types.Zone][]types.CardInstanceID{types.ZoneHand: {"c3"}}, DonZones: map[types.Zone][]types.DonInstanceID{}},
		},
		Cards: map[types.CardInstanceID]engine.CardSnapshot{
			"c1": {ID: "c1", Zone: types.ZoneCharacterArea, State: types.StateActive, Controller: "p1", Power: 5000},
		},
	}

	d := Diff(before, after)

	require.NotNil(t, d.Phase)
	assert.Equal(t, "main", d.Phase.Old)
	assert.Equal(t, "end", d.Phase.New)
	assert.Nil(t, d.Turn)

	require.Len(t, d.CardMoves, 1)
	assert.Equal(t, types.ZoneHand, d.CardMoves[0].FromZone)
	assert.Equal(t, types.ZoneCharacterArea, d.CardMoves[0].ToZone)

	require.Contains(t, d.PowerChanges, types.CardInstanceID("c1"))
	assert.Equal(t, 5000, d.PowerChanges["c1"].New)

	require.Contains(t, d.PlayerChanges, types.PlayerID("p1"))
	assert.Equal(t, -1, d.PlayerChanges["p1"].ZoneCountDeltas[types.ZoneHand])
	assert.Equal(t, 1, d.PlayerChanges["p1"].ZoneCountDeltas[types.ZoneCharacterArea])
}

func TestDiffNoChangesIsEmpty(t *testing.T) {
	snap := engine.Snapshot{Phase: types.PhaseMain, Turn: 1, PlayerOrder: nil, Players: map[types.PlayerID]engine.PlayerSnapshot{}, Cards: map[types.CardInstanceID]engine.CardSnapshot{}}
	d := Diff(snap, snap)
	assert.Nil(t, d.Phase)
	assert.Nil(t, d.Turn)
	assert.Empty(t, d.CardMoves)
	assert.Empty(t, d.PlayerChanges)
}
