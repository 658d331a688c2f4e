package graph

import "fmt"

// Structural errors are returned as failed results from kernel operations.
// Every one of them leaves the input Graph value untouched — a typed error
// propagates to the caller unchanged, exactly as spec.md §7 requires.
// Each satisfies the standard error interface and can be distinguished
// with errors.As.

// DuplicateNodeError is returned by AddNode when NodeId already exists.
type DuplicateNodeError struct{ NodeID NodeId }

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("graph: duplicate node %q", e.NodeID)
}

// DuplicateSocketError is returned by AddNode when a SocketId already
// exists.
type DuplicateSocketError struct{ SocketID SocketId }

func (e *DuplicateSocketError) Error() string {
	return fmt.Sprintf("graph: duplicate socket %q", e.SocketID)
}

// DuplicateWireError is returned by AddWire when WireId already exists.
type DuplicateWireError struct{ WireID WireId }

func (e *DuplicateWireError) Error() string {
	return fmt.Sprintf("graph: duplicate wire %q", e.WireID)
}

// DuplicateFrameError is returned by AddFrame when FrameId already exists.
type DuplicateFrameError struct{ FrameID FrameId }

func (e *DuplicateFrameError) Error() string {
	return fmt.Sprintf("graph: duplicate frame %q", e.FrameID)
}

// MissingNodeError is returned whenever an operation references a NodeId
// that does not exist in the graph.
type MissingNodeError struct{ NodeID NodeId }

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("graph: missing node %q", e.NodeID)
}

// MissingSocketError is returned whenever an operation references a
// SocketId that does not exist in the graph.
type MissingSocketError struct{ SocketID SocketId }

func (e *MissingSocketError) Error() string {
	return fmt.Sprintf("graph: missing socket %q", e.SocketID)
}

// MissingWireError is returned whenever an operation references a WireId
// that does not exist in the graph.
type MissingWireError struct{ WireID WireId }

func (e *MissingWireError) Error() string {
	return fmt.Sprintf("graph: missing wire %q", e.WireID)
}

// MissingFrameError is returned whenever an operation references a
// FrameId that does not exist in the graph.
type MissingFrameError struct{ FrameID FrameId }

func (e *MissingFrameError) Error() string {
	return fmt.Sprintf("graph: missing frame %q", e.FrameID)
}

// SocketNodeMismatchError is returned by AddNode when a socket's NodeID
// does not refer to the node it is being added alongside.
type SocketNodeMismatchError struct {
	SocketID SocketId
	NodeID   NodeId
}

func (e *SocketNodeMismatchError) Error() string {
	return fmt.Sprintf("graph: socket %q does not belong to node %q", e.SocketID, e.NodeID)
}

// NodeSocketMismatchError is returned by AddNode/UpdateNodeIO when a
// node's Inputs/Outputs sequence doesn't exactly match the set of
// sockets declared for it in that direction.
type NodeSocketMismatchError struct {
	NodeID NodeId
	Reason string
}

func (e *NodeSocketMismatchError) Error() string {
	return fmt.Sprintf("graph: node %q socket layout mismatch: %s", e.NodeID, e.Reason)
}

// InvalidSocketDirectionError is returned by AddWire when the wire does
// not go from an output socket to an input socket.
type InvalidSocketDirectionError struct {
	FromSocketID SocketId
	ToSocketID   SocketId
}

func (e *InvalidSocketDirectionError) Error() string {
	return fmt.Sprintf("graph: wire %q -> %q must go from an output to an input", e.FromSocketID, e.ToSocketID)
}

// IncompatibleSocketTypesError is returned by AddWire when the endpoint
// data types are not compatible per registry.IsCompatible.
type IncompatibleSocketTypesError struct {
	FromSocketID SocketId
	ToSocketID   SocketId
}

func (e *IncompatibleSocketTypesError) Error() string {
	return fmt.Sprintf("graph: incompatible socket types on wire %q -> %q", e.FromSocketID, e.ToSocketID)
}

// SocketConnectionLimitExceededError is returned by AddWire when adding
// the wire would exceed an endpoint's MaxConnections.
type SocketConnectionLimitExceededError struct {
	SocketID SocketId
	Limit    int
}

func (e *SocketConnectionLimitExceededError) Error() string {
	return fmt.Sprintf("graph: socket %q already has %d connection(s)", e.SocketID, e.Limit)
}

// SocketConnectionBelowMinError is returned by ValidateGraph when a
// socket's incident wire count is below its MinConnections.
type SocketConnectionBelowMinError struct {
	SocketID SocketId
	Min      int
	Actual   int
}

func (e *SocketConnectionBelowMinError) Error() string {
	return fmt.Sprintf("graph: socket %q has %d connection(s), below minimum %d", e.SocketID, e.Actual, e.Min)
}

// InvalidSocketConnectionLimitError is returned by ValidateGraph when a
// socket declares MinConnections > MaxConnections.
type InvalidSocketConnectionLimitError struct {
	SocketID SocketId
	Min, Max int
}

func (e *InvalidSocketConnectionLimitError) Error() string {
	return fmt.Sprintf("graph: socket %q has min_connections %d > max_connections %d", e.SocketID, e.Min, e.Max)
}

// SelfLoopError is returned by AddWire when both endpoints belong to the
// same node.
type SelfLoopError struct{ NodeID NodeId }

func (e *SelfLoopError) Error() string {
	return fmt.Sprintf("graph: wire would create a self-loop on node %q", e.NodeID)
}

// CycleError is returned by AddWire (and surfaced by DetectCycle/TopoSort)
// when the graph would contain/contains a directed cycle. Path begins at
// the proposed (or discovered) source node and visits the proposed (or
// discovered) target node before returning to the source.
type CycleError struct{ Path []NodeId }

func (e *CycleError) Error() string {
	return fmt.Sprintf("graph: cycle detected: %v", e.Path)
}

// AdjacencyMismatchError is returned by ValidateGraph when the derived
// adjacency indexes disagree with the wire set — this should never occur
// through the public API and indicates a kernel bug if it does.
type AdjacencyMismatchError struct {
	From, To NodeId
}

func (e *AdjacencyMismatchError) Error() string {
	return fmt.Sprintf("graph: adjacency index disagrees with wires for %q -> %q", e.From, e.To)
}
