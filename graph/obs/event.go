// Package obs provides event emission and observability for graph
// evaluation.
package obs

// Event represents an observability event emitted during graph evaluation.
//
// The execution engine emits two kinds:
//   - "node_evaluated" after each node it recomputes (cache hits emit
//     nothing)
//   - "node_evaluation_failed" when a structural error aborts the
//     evaluation, with the error text in Meta["error"]
//
// Events are emitted to an Emitter which can log to stdout, forward to
// OpenTelemetry, or buffer for later inspection.
type Event struct {
	// GraphID identifies the graph this event pertains to.
	GraphID string

	// NodeID identifies which node emitted this event.
	// Empty string for graph-level events.
	NodeID string

	// Msg is a short machine-matchable event name, e.g. "node_evaluated",
	// "node_evaluation_failed".
	Msg string

	// Meta contains additional structured data specific to this event,
	// e.g. "error".
	Meta map[string]interface{}
}
