// Package events provides the typed publish/subscribe bus connecting the
// decision core to downstream systems (memory formation, construction, metrics).
package events

import (
	"github.com/mlange-42/ark/ecs"
)

// Type identifies an event category. Consumers subscribe by type.
type Type string

// Source identifies who emitted an event: a world entity, a named system, or both.
type Source struct {
	Entity ecs.Entity
	System string
}

// Event is the unit of cross-system communication. Immutable once emitted;
// handlers must copy Data if they retain it past the handler invocation.
type Event struct {
	Type   Type
	Source Source
	Tick   int64
	Data   any
}

// Handler processes a delivered event.
type Handler func(Event)

// Bus is the event channel shared by the whole simulation. Immediate events
// dispatch synchronously to subscribers; deferred events queue until the single
// per-tick flush, so effects emitted during tick T become perceivable at T+1.
//
// The bus is single-threaded by design: the scheduler owns it and all dispatch
// happens on the tick loop.
type Bus struct {
	handlers map[Type][]Handler
	deferred []Event
	flushed  []Event
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]Handler)}
}

// Subscribe registers a handler for the given event type.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish dispatches an event immediately to all subscribers of its type.
func (b *Bus) Publish(ev Event) {
	for _, h := range b.handlers[ev.Type] {
		h(ev)
	}
}

// Defer queues an event for the next tick-boundary flush. Events deferred
// while a flush is in progress land in the following tick's batch, which keeps
// handler-emitted events from feeding back into the same flush.
func (b *Bus) Defer(ev Event) {
	b.deferred = append(b.deferred, ev)
}

// Flush dispatches all deferred events exactly once and retains the batch as
// the ambient event log for the next tick. The scheduler calls this once per
// tick, after every agent has stepped.
func (b *Bus) Flush(tick int64) []Event {
	batch := b.deferred
	b.deferred = nil

	for i := range batch {
		if batch[i].Tick == 0 {
			batch[i].Tick = tick
		}
		b.Publish(batch[i])
	}

	b.flushed = batch
	return batch
}

// LastFlushed returns the batch delivered at the most recent flush. Perception
// reads this as the current tick's ambient event log.
func (b *Bus) LastFlushed() []Event {
	return b.flushed
}

// Shutdown drops all subscribers and queued events. The bus must not be used
// afterwards; the world owns bus lifecycle.
func (b *Bus) Shutdown() {
	b.handlers = make(map[Type][]Handler)
	b.deferred = nil
	b.flushed = nil
}
