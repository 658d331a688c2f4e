package obs

import (
	"context"
	"sync"
)

// BufferedEmitter implements Emitter by storing events in memory, keyed by
// GraphID, for post-evaluation inspection in tests and development tools.
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event // graphID -> events
}

// NewBufferedEmitter returns an empty BufferedEmitter.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{events: make(map[string][]Event)}
}

// Emit appends the event to its graph's history.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[event.GraphID] = append(b.events[event.GraphID], event)
}

// EmitBatch appends each event in order.
func (b *BufferedEmitter) EmitBatch(_ context.Context, events []Event) error {
	for _, e := range events {
		b.Emit(e)
	}
	return nil
}

// Flush is a no-op: BufferedEmitter never discards without an explicit Clear.
func (b *BufferedEmitter) Flush(context.Context) error { return nil }

// History returns a copy of all events recorded for graphID, in emission
// order.
func (b *BufferedEmitter) History(graphID string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	src := b.events[graphID]
	out := make([]Event, len(src))
	copy(out, src)
	return out
}

// Clear discards the recorded history for graphID. Clearing with an empty
// graphID clears every graph's history.
func (b *BufferedEmitter) Clear(graphID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if graphID == "" {
		b.events = make(map[string][]Event)
		return
	}
	delete(b.events, graphID)
}
