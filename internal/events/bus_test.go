package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type phaseChanged struct {
	Phase string
}

func (p phaseChanged) Kind() string { return "PhaseChanged" }

type cardMoved struct {
	From, To string
}

func (c cardMoved) Kind() string { return "CardMoved" }

func TestTypedSubscribeOnlyReceivesExactType(t *testing.T) {
	b := NewBus()
	var gotPhase []string
	var gotMove int

	Subscribe[phaseChanged](b, func(e phaseChanged) { gotPhase = append(gotPhase, e.Phase) })
	Subscribe[cardMoved](b, func(e cardMoved) { gotMove++ })

	Publish(b, phaseChanged{Phase: "Draw"})
	Publish(b, cardMoved{From: "Hand", To: "Trash"})
	Publish(b, phaseChanged{Phase: "Main"})

	assert.Equal(t, []string{"Draw", "Main"}, gotPhase)
	assert.Equal(t, 1, gotMove)
}

func TestPublishOrderMatchesSubscriptionOrder(t *testing.T) {
	b := NewBus()
	var order []int

	Subscribe[phaseChanged](b, func(e phaseChanged) { order = append(order, 1) })
	Subscribe[phaseChanged](b, func(e phaseChanged) { order = append(order, 2) })
	Subscribe[phaseChanged](b, func(e phaseChanged) { order = append(order, 3) })

	Publish(b, phaseChanged{Phase: "Refresh"})

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestSubscribeFilteredByKind(t *testing.T) {
	b := NewBus()
	var seen []string

	b.SubscribeFiltered([]string{"CardMoved"}, func(e Event) { seen = append(seen, e.Kind()) })

	Publish(b, phaseChanged{Phase: "End"})
	Publish(b, cardMoved{From: "Deck", To: "Hand"})

	assert.Equal(t, []string{"CardMoved"}, seen)
}

func TestSubscribeFilteredEmptyMeansAll(t *testing.T) {
	b := NewBus()
	var count int
	b.SubscribeFiltered(nil, func(e Event) { count++ })

	Publish(b, phaseChanged{Phase: "Draw"})
	Publish(b, cardMoved{From: "Deck", To: "Hand"})

	assert.Equal(t, 2, count)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()
	var count int
	id := Subscribe[phaseChanged](b, func(e phaseChanged) { count++ })

	Publish(b, phaseChanged{Phase: "Draw"})
	b.Unsubscribe(id)
	Publish(b, phaseChanged{Phase: "Main"})

	assert.Equal(t, 1, count)
}

func TestClearRemovesAllSubscriptions(t *testing.T) {
	b := NewBus()
	var count int
	Subscribe[phaseChanged](b, func(e phaseChanged) { count++ })
	b.SubscribeFiltered(nil, func(e Event) { count++ })

	b.Clear()
	Publish(b, phaseChanged{Phase: "Draw"})

	assert.Equal(t, 0, count)
}
