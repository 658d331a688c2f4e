// Package exec implements the demand-driven, caching execution engine
// that evaluates a graph.Graph: given a socket to produce, it walks the
// socket's upstream dependencies in post-order, reusing any cached output
// that isn't dirty, and recomputes only what a structural or param edit
// actually invalidated.
package exec

import "github.com/shadergraph/core/graph"

// State is the engine's per-graph runtime cache: which nodes are dirty,
// what each output socket last computed to, and the most recent runtime
// error (if any) recorded against each node. It is mutable by design —
// unlike graph.Graph's immutable value semantics, State exists precisely
// to be updated in place as edits and evaluations interleave, and is
// scoped to one graph's lifetime rather than snapshotted per edit.
type State struct {
	dirty       map[graph.NodeId]struct{}
	outputCache map[graph.SocketId]interface{}
	nodeErrors  map[graph.NodeId]error
}

// NewState returns an empty State: no node is flagged dirty and nothing is
// cached yet, so every node is recomputed on its first evaluation.
func NewState() *State {
	return &State{
		dirty:       map[graph.NodeId]struct{}{},
		outputCache: map[graph.SocketId]interface{}{},
		nodeErrors:  map[graph.NodeId]error{},
	}
}

// MarkDirty flags nodeID (and only nodeID) as needing recomputation.
func (s *State) MarkDirty(nodeID graph.NodeId) {
	s.dirty[nodeID] = struct{}{}
}

// IsDirty reports whether nodeID is currently flagged dirty.
func (s *State) IsDirty(nodeID graph.NodeId) bool {
	_, dirty := s.dirty[nodeID]
	return dirty
}

// ClearDirty unflags nodeID after a successful recomputation and records
// the cache values the caller just computed for its output sockets.
func (s *State) ClearDirty(nodeID graph.NodeId, outputs map[graph.SocketId]interface{}) {
	delete(s.dirty, nodeID)
	delete(s.nodeErrors, nodeID)
	for socketID, value := range outputs {
		s.outputCache[socketID] = value
	}
}

// SettleWithError records a node's runtime failure (MissingRequiredInput
// or NodeComputeFailed): outputs — normally nil for every one of the
// node's output sockets — are cached exactly as a successful compute's
// would be, and the node is cleared from dirty, not re-marked. A runtime
// error does not make a node perpetually stale: the next evaluation with
// no intervening edit sees the same cached null and the same recorded
// error as a cache hit, exactly like a successful compute would.
func (s *State) SettleWithError(nodeID graph.NodeId, outputs map[graph.SocketId]interface{}, err error) {
	delete(s.dirty, nodeID)
	s.nodeErrors[nodeID] = err
	for socketID, value := range outputs {
		s.outputCache[socketID] = value
	}
}

// CachedOutput returns the last computed value for socketID, if any and
// if not currently dirty.
func (s *State) CachedOutput(nodeID graph.NodeId, socketID graph.SocketId) (interface{}, bool) {
	if s.IsDirty(nodeID) {
		return nil, false
	}
	v, ok := s.outputCache[socketID]
	return v, ok
}

// GetNodeErrors returns a copy of the node->error map for nodes that
// failed their most recent evaluation attempt.
func (s *State) GetNodeErrors() map[graph.NodeId]error {
	out := make(map[graph.NodeId]error, len(s.nodeErrors))
	for k, v := range s.nodeErrors {
		out[k] = v
	}
	return out
}

// InvalidateNode drops every cached output socket value owned by nodeID
// and marks it dirty. Used when a node's sockets are restructured
// (replace_node_io/update_node_io) and the old cache entries no longer
// correspond to anything meaningful.
func (s *State) InvalidateNode(g graph.Graph, nodeID graph.NodeId) {
	s.MarkDirty(nodeID)
	if n, ok := g.Node(nodeID); ok {
		for _, id := range n.Outputs {
			delete(s.outputCache, id)
		}
	}
}

// MarkDirty adds nodeID and every node in its transitive downstream
// closure (by walking the graph's outgoing adjacency) to state's dirty
// set. This is the general-purpose entry point §4.3 calls `mark_dirty`;
// MarkDirtyForParamChange and MarkDirtyForWireChange resolve a param or
// wire edit down to the node it actually touches and mark the same set.
func MarkDirty(s *State, g graph.Graph, nodeID graph.NodeId) {
	s.MarkDirty(nodeID)
	for _, id := range graph.DownstreamClosure(g, nodeID) {
		s.MarkDirty(id)
	}
}

// ClearDirtyIDs removes each of ids from state's dirty set without
// touching the output cache or recorded errors. This is the bulk
// `clear_dirty(state, ids)` query operation from §4.3/§6, distinct from
// the engine-internal (*State).ClearDirty, which also publishes fresh
// cache values for a node that just finished computing.
func ClearDirtyIDs(s *State, ids []graph.NodeId) {
	for _, id := range ids {
		delete(s.dirty, id)
	}
}

// MarkDirtyForParamChange marks nodeID and every node in its downstream
// closure dirty: a param change can only affect the node itself and
// whatever consumes its outputs, directly or transitively.
func MarkDirtyForParamChange(s *State, g graph.Graph, nodeID graph.NodeId) {
	for _, id := range graph.DownstreamClosure(g, nodeID) {
		s.MarkDirty(id)
	}
}

// MarkDirtyForWireChange marks the wire's target node and its downstream
// closure dirty: adding, removing, or rewiring an edge can only change
// what the edge's destination (and its descendants) compute.
func MarkDirtyForWireChange(s *State, g graph.Graph, toSocketID graph.SocketId) {
	sock, ok := g.Socket(toSocketID)
	if !ok {
		return
	}
	for _, id := range graph.DownstreamClosure(g, sock.NodeID) {
		s.MarkDirty(id)
	}
}
