package exec

import (
	"context"

	"github.com/shadergraph/core/graph"
)

// NodeContext is what a NodeDefinition receives to compute one node's
// outputs: its id and kind for diagnostics, its current Params, and the
// already-resolved value of every input socket, keyed by socket name.
type NodeContext struct {
	NodeID graph.NodeId
	Kind   string
	Params map[string]interface{}
	Inputs map[string]interface{}
}

// NodeDefinition declares a node kind's socket interface — the ordered
// input and output keys, by name, independent of any particular graph's
// socket ids — and the function that computes its outputs from resolved
// inputs and params. The engine checks a node's actual sockets against
// Inputs/Outputs before ever calling Compute, so a node wired to a stale
// or mismatched definition fails structurally instead of silently
// dropping or misreading a value.
type NodeDefinition struct {
	Inputs  []string
	Outputs []string

	// Compute may return a runtime error (a shader compile failure, an
	// out-of-range parameter) without that being a structural problem
	// with the graph itself.
	Compute func(ctx context.Context, nc NodeContext) (map[string]interface{}, error)
}

// Resolver looks up the NodeDefinition registered for a node Kind. The
// kernel never interprets Kind; Resolver is where an embedding editor
// plugs in the actual shader node library.
type Resolver interface {
	Resolve(kind string) (NodeDefinition, bool)
}

// MapResolver is the simplest Resolver: a static kind->definition table.
type MapResolver map[string]NodeDefinition

// Resolve implements Resolver.
func (m MapResolver) Resolve(kind string) (NodeDefinition, bool) {
	def, ok := m[kind]
	return def, ok
}
