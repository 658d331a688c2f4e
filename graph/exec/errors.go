package exec

import (
	"fmt"

	"github.com/shadergraph/core/graph"
)

// Structural errors indicate the graph/resolver pairing itself is
// inconsistent — no amount of retrying will fix them without an edit.

// MissingNodeDefinitionError is returned when no NodeDefinition is
// registered for a node's Kind.
type MissingNodeDefinitionError struct {
	NodeID graph.NodeId
	Kind   string
}

func (e *MissingNodeDefinitionError) Error() string {
	return fmt.Sprintf("exec: no node definition registered for kind %q (node %q)", e.Kind, e.NodeID)
}

// DuplicateSocketKeyError is returned when two of a node's sockets on
// the same side (both inputs, or both outputs) share a name, making the
// NodeDefinition's name-keyed Inputs/Outputs maps ambiguous (should not
// occur for well-formed graphs).
type DuplicateSocketKeyError struct {
	NodeID graph.NodeId
	Key    string
}

func (e *DuplicateSocketKeyError) Error() string {
	return fmt.Sprintf("exec: node %q has duplicate socket key %q", e.NodeID, e.Key)
}

// UnknownSocketKeyError is returned when a name doesn't match the
// NodeDefinition's declared keys — either a node socket whose name the
// definition never declared, or a value Compute returned under a name
// that isn't one of the definition's declared output keys.
type UnknownSocketKeyError struct {
	NodeID graph.NodeId
	Key    string
}

func (e *UnknownSocketKeyError) Error() string {
	return fmt.Sprintf("exec: node %q has key %q not declared by its node definition", e.NodeID, e.Key)
}

// MissingSocketForDefinitionError is returned when a NodeDefinition
// declares an input or output key (by name) that has no corresponding
// socket on the node being evaluated — the resolver and the graph
// disagree about this node kind's interface.
type MissingSocketForDefinitionError struct {
	NodeID graph.NodeId
	Key    string
}

func (e *MissingSocketForDefinitionError) Error() string {
	return fmt.Sprintf("exec: node %q definition declares key %q with no matching socket", e.NodeID, e.Key)
}

// MultipleInputWiresError is returned when an input socket configured
// with MaxConnections > 1 has more than one incident wire — evaluation
// cannot resolve a single value for NodeContext.Inputs in that case, even
// though the kernel itself permits the fan-in structurally.
type MultipleInputWiresError struct {
	SocketID graph.SocketId
	Count    int
}

func (e *MultipleInputWiresError) Error() string {
	return fmt.Sprintf("exec: input socket %q has %d incident wires, expected at most 1", e.SocketID, e.Count)
}

// Runtime errors are node-local compute failures: the graph and resolver
// are fine, but this node's current inputs/params couldn't produce a
// value. They are recorded per-node in State rather than aborting the
// whole evaluation.

// MissingRequiredInputError is returned when a Required input socket
// resolves to no value at evaluation time (no wire, no default).
type MissingRequiredInputError struct {
	NodeID     graph.NodeId
	SocketName string
}

func (e *MissingRequiredInputError) Error() string {
	return fmt.Sprintf("exec: node %q missing required input %q", e.NodeID, e.SocketName)
}

// NodeComputeFailedError wraps the error a NodeDefinition itself
// returned.
type NodeComputeFailedError struct {
	NodeID graph.NodeId
	Err    error
}

func (e *NodeComputeFailedError) Error() string {
	return fmt.Sprintf("exec: node %q compute failed: %v", e.NodeID, e.Err)
}

func (e *NodeComputeFailedError) Unwrap() error { return e.Err }
