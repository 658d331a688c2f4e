package obs

import "context"

// NullEmitter implements Emitter by discarding all events.
//
// This is the default emitter: evaluation and command application never
// require an observability backend, so callers that don't ask for one get
// zero overhead.
type NullEmitter struct{}

// NewNullEmitter returns an Emitter that discards every event.
func NewNullEmitter() *NullEmitter { return &NullEmitter{} }

// Emit discards the event.
func (n *NullEmitter) Emit(Event) {}

// EmitBatch discards the events and always returns nil.
func (n *NullEmitter) EmitBatch(context.Context, []Event) error { return nil }

// Flush is a no-op for NullEmitter.
func (n *NullEmitter) Flush(context.Context) error { return nil }
