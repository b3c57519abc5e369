package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcgengine/internal/engineerr"
	"tcgengine/internal/model"
	"tcgengine/internal/types"
)

func TestRunAppliesStepsInOrder(t *testing.T) {
	s := newTestState()

	final, err := Run(s,
		func(cur model.GameState) (model.GameState, *engineerr.Error) {
			return SetCardState(cur, "card-1", types.StateRested)
		},
		func(cur model.GameState) (model.GameState, *engineerr.Error) {
			return MoveCard(cur, playerA, "card-1", types.ZoneHand, types.ZoneCharacterArea)
		},
	)
	require.Nil(t, err)
	assert.Equal(t, types.StateRested, final.Cards["card-1"].State)
	assert.Equal(t, types.ZoneCharacterArea, final.Cards["card-1"].Zone)
}

func TestRunRestoresOriginalStateOnFirstFailure(t *testing.T) {
	s := newTestState()

	final, err := Run(s,
		func(cur model.GameState) (model.GameState, *engineerr.Error) {
			return SetCardState(cur, "card-1", types.StateRested)
		},
		func(cur model.GameState) (model.GameState, *engineerr.Error) {
			return MoveCard(cur, playerA, "card-missing", types.ZoneHand, types.ZoneCharacterArea)
		},
		func(cur model.GameState) (model.GameState, *engineerr.Error) {
			return SetCardState(cur, "card-1", types.StateActive)
		},
	)
	require.NotNil(t, err)
	assert.Equal(t, engineerr.InvalidState, err.Code)
	// original untouched: the rested-state mutation from step one never surfaces
	assert.Equal(t, types.StateNone, final.Cards["card-1"].State)
}

func TestTxBuilderChainsAndExecutes(t *testing.T) {
	s := newTestState()

	final, err := NewTx(s).
		Add(func(cur model.GameState) (model.GameState, *engineerr.Error) {
			return MoveDon(cur, playerA, "don-1", types.ZoneDonDeck, types.ZoneCostArea)
		}).
		Add(func(cur model.GameState) (model.GameState, *engineerr.Error) {
			return SetDonState(cur, "don-1", types.DonRested)
		}).
		Execute()

	require.Nil(t, err)
	assert.Equal(t, types.ZoneCostArea, final.Dons["don-1"].Zone)
	assert.Equal(t, types.DonRested, final.Dons["don-1"].State)
}

func TestTxBuilderFailureLeavesBaseUnchanged(t *testing.T) {
	s := newTestState()

	_, err := NewTx(s).
		Add(func(cur model.GameState) (model.GameState, *engineerr.Error) {
			return MoveDon(cur, playerA, "don-missing", types.ZoneDonDeck, types.ZoneCostArea)
		}).
		Execute()

	require.NotNil(t, err)
	assert.Equal(t, types.ZoneDonDeck, s.Dons["don-1"].Zone)
}
