// Package graph implements the node-graph shader editor's computational
// core: a typed, immutable DAG of nodes wired at typed sockets, and the
// pure library of operations that create, inspect, and transform it.
//
// Every exported operation here takes a Graph value and returns a new
// Graph value (or an error); none of them mutate their input. See
// Graph for the persistence/clone-on-write discipline this relies on.
package graph

import "github.com/google/uuid"

// GraphId, NodeId, SocketId, WireId, and FrameId are the five disjoint
// identifier kinds in the data model. Each is an opaque, totally ordered,
// hashable string assigned by the caller; the kernel never interprets
// their contents beyond equality and lexicographic ordering.
type (
	GraphId  string
	NodeId   string
	SocketId string
	WireId   string
	FrameId  string
)

// NewID mints a fresh random identifier using a UUIDv4. The kernel never
// requires ids to look like this — callers are free to assign any stable
// string — but it is a convenient default for editors and tests that don't
// care about the id's shape.
func NewID() string {
	return uuid.NewString()
}
