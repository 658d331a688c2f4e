package graph

import "github.com/shadergraph/core/graph/registry"

// Direction is a socket's data-flow direction relative to its node.
type Direction string

const (
	// DirectionInput marks a socket that receives a value over an
	// incoming wire (or a default/unconnected value).
	DirectionInput Direction = "input"
	// DirectionOutput marks a socket that produces a value consumed by
	// zero or more outgoing wires.
	DirectionOutput Direction = "output"
)

// Node is a user-authored computation wired into the graph at its input
// and output sockets. Kind names the resolver key the execution engine
// uses to find the node's NodeDefinition; the kernel never interprets it.
type Node struct {
	ID       NodeId                 `json:"id"`
	Kind     string                 `json:"kind"`
	Position Position               `json:"position"`
	Params   map[string]interface{} `json:"params,omitempty"`
	Inputs   []SocketId             `json:"inputs"`
	Outputs  []SocketId             `json:"outputs"`
}

// Position is a 2D canvas coordinate. The kernel treats it as opaque
// display data; it participates in invariants only via MoveNode/MoveNodes.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LabelSettings carries presentation hints for a socket's on-canvas label.
// Purely cosmetic; never consulted by validation or evaluation.
type LabelSettings struct {
	Hidden bool   `json:"hidden,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Socket is a typed endpoint on a node through which values flow.
type Socket struct {
	ID             SocketId               `json:"id"`
	NodeID         NodeId                 `json:"node_id"`
	Name           string                 `json:"name"`
	Label          string                 `json:"label,omitempty"`
	Direction      Direction              `json:"direction"`
	DataType       registry.SocketTypeId  `json:"data_type"`
	Required       bool                   `json:"required,omitempty"`
	DefaultValue   interface{}            `json:"default_value,omitempty"`
	HasDefault     bool                   `json:"has_default,omitempty"`
	MinConnections *int                   `json:"min_connections,omitempty"`
	MaxConnections *int                   `json:"max_connections,omitempty"`
	LabelSettings  *LabelSettings         `json:"label_settings,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// defaultMaxConnections returns the connection cap that applies when the
// socket doesn't specify one: inputs accept at most one incoming wire,
// outputs accept unbounded.
func (s Socket) defaultMaxConnections() int {
	if s.Direction == DirectionInput {
		return 1
	}
	return -1 // unbounded
}

// maxConnections resolves the socket's effective connection cap, applying
// the direction-based default when MaxConnections is unset.
func (s Socket) maxConnections() int {
	if s.MaxConnections != nil {
		return *s.MaxConnections
	}
	return s.defaultMaxConnections()
}

// minConnections resolves the socket's effective minimum connection count,
// defaulting to zero (optional) when unset.
func (s Socket) minConnections() int {
	if s.MinConnections != nil {
		return *s.MinConnections
	}
	return 0
}

// Wire is a directed edge connecting one output socket to one input
// socket.
type Wire struct {
	ID           WireId   `json:"id"`
	FromSocketID SocketId `json:"from_socket_id"`
	ToSocketID   SocketId `json:"to_socket_id"`
}

// Frame is a purely organizational grouping rectangle over nodes. The
// kernel stores frames but never routes execution through them.
type Frame struct {
	ID             FrameId    `json:"id"`
	Title          string     `json:"title"`
	Position       Position   `json:"position"`
	Size           Size       `json:"size"`
	Collapsed      bool       `json:"collapsed,omitempty"`
	ExposedInputs  []SocketId `json:"exposed_inputs,omitempty"`
	ExposedOutputs []SocketId `json:"exposed_outputs,omitempty"`
}

// Size is a 2D rectangle extent (width, height).
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
