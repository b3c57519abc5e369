package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcgengine/internal/engine"
	"tcgengine/internal/types"
)

func TestChannelProviderBlocksUntilRespond(t *testing.T) {
	p := NewChannelProvider()

	done := make(chan engine.Action, 1)
	go func() {
		a, ok := p.RequestAction("red", []types.ActionKind{types.ActionEndPhase, types.ActionPassPriority}, engine.Snapshot{})
		require.True(t, ok)
		done <- a
	}()

	// give the goroutine a chance to park on RequestAction before asserting
	// Pending reports it.
	require.Eventually(t, func() bool {
		_, _, waiting := p.Pending()
		return waiting
	}, time.Second, time.Millisecond)

	player, available, waiting := p.Pending()
	assert.True(t, waiting)
	assert.Equal(t, types.PlayerID("red"), player)
	assert.Contains(t, available, types.ActionEndPhase)

	assert.True(t, p.Respond(engine.Action{Player: "red", Kind: types.ActionEndPhase}))

	select {
	case a := <-done:
		assert.Equal(t, types.ActionEndPhase, a.Kind)
	case <-time.After(time.Second):
		t.Fatal("RequestAction never unblocked")
	}

	_, _, waiting = p.Pending()
	assert.False(t, waiting)
}

func TestChannelProviderRejectsMismatchedRespond(t *testing.T) {
	p := NewChannelProvider()

	go p.RequestAction("red", []types.ActionKind{types.ActionEndPhase}, engine.Snapshot{})

	require.Eventually(t, func() bool {
		_, _, waiting := p.Pending()
		return waiting
	}, time.Second, time.Millisecond)

	assert.False(t, p.Respond(engine.Action{Player: "blue", Kind: types.ActionEndPhase}))
	assert.False(t, p.Respond(engine.Action{Player: "red", Kind: types.ActionPlayCard}))
	assert.True(t, p.Respond(engine.Action{Player: "red", Kind: types.ActionEndPhase}))
}
