// Package events implements the engine's typed publish/subscribe surface
// (spec §4.7). Delivery is synchronous, single-threaded, and in
// publication order (§5) — unlike the teacher's own worker-pool event bus
// (internal/events/bus.go in rackaracka123-terraforming-mars, which
// dispatches through a goroutine pool), because the engine's determinism
// boundary requires that an observer never race a subsequent state
// mutation. This package is instead grounded on the teacher's *other*
// bus, the synchronous generic one (internal/events/event_bus.go), which
// already calls handlers inline under a lock.
package events

import (
	"fmt"
	"sort"
	"sync"
)

// Event is the common shape every published value satisfies, used only
// by filtered/external subscriptions; internal producers and typed
// consumers use the generic Subscribe/Publish pair below instead.
type Event interface {
	Kind() string
}

// SubscriptionID identifies a registered handler so it can be removed.
type SubscriptionID string

type typedSubscription struct {
	id      SubscriptionID
	typeTag string
	invoke  func(any)
}

type filteredSubscription struct {
	id      SubscriptionID
	kinds   map[string]struct{} // nil/empty means "all kinds"
	handler func(Event)
}

// Bus is the engine's single-writer event dispatcher. It must be used
// from one logical thread of control only (§5); it takes no internal
// lock around Publish itself beyond what is needed to read the
// subscriber list, since the engine never publishes concurrently.
type Bus struct {
	mu        sync.Mutex
	nextID    uint64
	typed     map[SubscriptionID]*typedSubscription
	filtered  []*filteredSubscription
	buffering bool
	buffer    []func()
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{
		typed: make(map[SubscriptionID]*typedSubscription),
	}
}

func (b *Bus) allocID() SubscriptionID {
	b.nextID++
	return SubscriptionID(fmt.Sprintf("sub-%d", b.nextID))
}

// Subscribe registers a handler for events of exactly type T. It is a
// package-level function, not a method, because Go methods cannot carry
// their own type parameters.
func Subscribe[T any](b *Bus, handler func(T)) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.allocID()
	var zero T
	typeTag := fmt.Sprintf("%T", zero)

	b.typed[id] = &typedSubscription{
		id:      id,
		typeTag: typeTag,
		invoke: func(event any) {
			if typed, ok := event.(T); ok {
				handler(typed)
			}
		},
	}
	return id
}

// SubscribeFiltered registers a handler for the external observer
// contract (façade subscribe(event_filter)): kinds names the Event.Kind()
// values of interest, or is empty/nil to receive every event.
func (b *Bus) SubscribeFiltered(kinds []string, handler func(Event)) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.allocID()
	var set map[string]struct{}
	if len(kinds) > 0 {
		set = make(map[string]struct{}, len(kinds))
		for _, k := range kinds {
			set[k] = struct{}{}
		}
	}
	b.filtered = append(b.filtered, &filteredSubscription{id: id, kinds: set, handler: handler})
	return id
}

// Publish delivers event to every typed subscriber of exactly T, then to
// every filtered subscriber whose kind set matches, in the order
// subscriptions were registered. Subscribers must not call back into the
// engine (§5); Publish assumes they do not re-enter the bus. While the bus
// is buffering (BeginBuffer), event is recorded instead of delivered, and
// only reaches subscribers if the caller later calls Flush — ties emitted
// events to the committed state transition they describe (spec §5) rather
// than to a dispatch attempt that may still be discarded.
func Publish[T any](b *Bus, event T) {
	b.mu.Lock()
	if b.buffering {
		b.buffer = append(b.buffer, func() { deliver(b, event) })
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	deliver(b, event)
}

func deliver[T any](b *Bus, event T) {
	b.mu.Lock()
	typeTag := fmt.Sprintf("%T", event)

	var toInvoke []func(any)
	ids := make([]SubscriptionID, 0, len(b.typed))
	for id := range b.typed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		sub := b.typed[id]
		if sub.typeTag == typeTag {
			toInvoke = append(toInvoke, sub.invoke)
		}
	}

	var toNotify []func(Event)
	if ev, ok := any(event).(Event); ok {
		for _, sub := range b.filtered {
			if sub.kinds == nil {
				toNotify = append(toNotify, sub.handler)
				continue
			}
			if _, hit := sub.kinds[ev.Kind()]; hit {
				toNotify = append(toNotify, sub.handler)
			}
		}
	}
	b.mu.Unlock()

	for _, invoke := range toInvoke {
		invoke(event)
	}
	if ev, ok := any(event).(Event); ok {
		for _, notify := range toNotify {
			notify(ev)
		}
	}
}

// BeginBuffer starts recording every subsequent Publish instead of
// delivering it immediately. The caller must eventually call Flush (to
// deliver the recorded events, in publication order) or Discard (to drop
// them) — typically once it knows whether the work that produced them
// actually committed.
func (b *Bus) BeginBuffer() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buffering = true
}

// Flush delivers every event recorded since BeginBuffer, in publication
// order, and turns buffering off.
func (b *Bus) Flush() {
	b.mu.Lock()
	buffered := b.buffer
	b.buffer = nil
	b.buffering = false
	b.mu.Unlock()
	for _, fn := range buffered {
		fn()
	}
}

// Discard drops every event recorded since BeginBuffer and turns buffering
// off, as if they had never been published.
func (b *Bus) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buffer = nil
	b.buffering = false
}

// Unsubscribe removes a subscription registered via Subscribe or
// SubscribeFiltered.
func (b *Bus) Unsubscribe(id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.typed, id)
	for i, sub := range b.filtered {
		if sub.id == id {
			b.filtered = append(b.filtered[:i], b.filtered[i+1:]...)
			return
		}
	}
}

// Clear removes every subscription.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.typed = make(map[SubscriptionID]*typedSubscription)
	b.filtered = nil
}
