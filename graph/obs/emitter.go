package obs

import "context"

// Emitter receives and processes observability events from the execution
// engine.
//
// Emitters enable pluggable observability backends: logging, distributed
// tracing, metrics, analytics. Implementations should be non-blocking,
// thread-safe, and resilient (never let a slow or failing backend disturb
// graph evaluation, which is synchronous and on the caller's stack).
type Emitter interface {
	// Emit sends a single observability event to the configured backend.
	// Emit must not panic and should not block evaluation for long.
	Emit(event Event)

	// EmitBatch sends multiple events in one operation. Implementations
	// should process events in order and handle partial failures by
	// logging rather than returning (individual event failures are not
	// fatal to the caller).
	EmitBatch(ctx context.Context, events []Event) error

	// Flush ensures all buffered events are delivered. Safe to call
	// multiple times; should respect context cancellation.
	Flush(ctx context.Context) error
}
