// Package command implements the reversible edit history layer on top of
// the graph kernel: every user-facing edit is captured as a Command, a
// plain tagged-union struct rather than an interface, so that a sequence
// of commands (an Entry) is directly JSON-serializable for storage
// without any custom marshal/unmarshal code. Apply replays a Command
// against a Graph; InverseCommands produces the Command(s) that undo it using
// state the constructor captured up front, never by re-querying the
// graph at undo time.
package command

import "github.com/shadergraph/core/graph"

// Kind discriminates which payload field of a Command is populated.
type Kind string

const (
	KindAddNode       Kind = "add_node"
	KindRemoveNode    Kind = "remove_node"
	KindAddWire       Kind = "add_wire"
	KindRemoveWire    Kind = "remove_wire"
	KindAddFrame      Kind = "add_frame"
	KindRemoveFrame   Kind = "remove_frame"
	KindMoveNodes     Kind = "move_nodes"
	KindMoveFrames    Kind = "move_frames"
	KindUpdateFrame   Kind = "update_frame"
	KindUpdateParam   Kind = "update_param"
	KindUpdateNodeIO  Kind = "update_node_io"
	KindReplaceNodeIO Kind = "replace_node_io"
)

// Command is a single reversible graph edit. Exactly one payload field
// is non-nil, selected by Kind.
type Command struct {
	Kind Kind `json:"kind"`

	AddNode       *AddNodePayload       `json:"add_node,omitempty"`
	RemoveNode    *RemoveNodePayload    `json:"remove_node,omitempty"`
	AddWire       *AddWirePayload       `json:"add_wire,omitempty"`
	RemoveWire    *RemoveWirePayload    `json:"remove_wire,omitempty"`
	AddFrame      *AddFramePayload      `json:"add_frame,omitempty"`
	RemoveFrame   *RemoveFramePayload   `json:"remove_frame,omitempty"`
	MoveNodes     *MoveNodesPayload     `json:"move_nodes,omitempty"`
	MoveFrames    *MoveFramesPayload    `json:"move_frames,omitempty"`
	UpdateFrame   *UpdateFramePayload   `json:"update_frame,omitempty"`
	UpdateParam   *UpdateParamPayload   `json:"update_param,omitempty"`
	UpdateNodeIO  *UpdateNodeIOPayload  `json:"update_node_io,omitempty"`
	ReplaceNodeIO *ReplaceNodeIOPayload `json:"replace_node_io,omitempty"`
}

type AddNodePayload struct {
	Node    graph.Node     `json:"node"`
	Sockets []graph.Socket `json:"sockets"`
}

// RemoveNodePayload captures everything RemoveNode's cascade deletes —
// the node, its sockets, and every wire incident on them — so Inverse
// can reconstruct them without consulting the graph the command no
// longer applies to.
type RemoveNodePayload struct {
	NodeID        graph.NodeId   `json:"node_id"`
	Node          graph.Node     `json:"node"`
	Sockets       []graph.Socket `json:"sockets"`
	IncidentWires []graph.Wire   `json:"incident_wires"`
}

type AddWirePayload struct {
	WireID       graph.WireId   `json:"wire_id"`
	FromSocketID graph.SocketId `json:"from_socket_id"`
	ToSocketID   graph.SocketId `json:"to_socket_id"`
}

type RemoveWirePayload struct {
	Wire graph.Wire `json:"wire"`
}

type AddFramePayload struct {
	Frame graph.Frame `json:"frame"`
}

type RemoveFramePayload struct {
	Frame graph.Frame `json:"frame"`
}

type MoveNodesPayload struct {
	Positions map[graph.NodeId]graph.Position `json:"positions"`
	Previous  map[graph.NodeId]graph.Position `json:"previous"`
}

type MoveFramesPayload struct {
	Positions map[graph.FrameId]graph.Position `json:"positions"`
	Previous  map[graph.FrameId]graph.Position `json:"previous"`
}

type UpdateFramePayload struct {
	FrameID  graph.FrameId      `json:"frame_id"`
	Update   graph.FrameUpdate  `json:"update"`
	Previous graph.FrameUpdate  `json:"previous"`
}

type UpdateParamPayload struct {
	NodeID      graph.NodeId `json:"node_id"`
	Path        string       `json:"path"`
	Value       interface{}  `json:"value"`
	Previous    interface{}  `json:"previous"`
	HadPrevious bool         `json:"had_previous"`
}

type UpdateNodeIOPayload struct {
	Sockets  []graph.Socket `json:"sockets"`
	Previous []graph.Socket `json:"previous"`
}

type ReplaceNodeIOPayload struct {
	NodeID       graph.NodeId     `json:"node_id"`
	NewInputs    []graph.SocketId `json:"new_inputs"`
	NewOutputs   []graph.SocketId `json:"new_outputs"`
	Sockets      []graph.Socket   `json:"sockets"`
	RemovedWires []graph.WireId   `json:"removed_wires"`

	PrevInputs       []graph.SocketId `json:"prev_inputs"`
	PrevOutputs      []graph.SocketId `json:"prev_outputs"`
	PrevSockets      []graph.Socket   `json:"prev_sockets"`
	RemovedWireValue []graph.Wire     `json:"removed_wire_values"`
}

// Entry groups the one or more Commands a single user-facing edit
// produced (e.g. a param change plus a node move) under one undo/redo
// label.
type Entry struct {
	Label    string    `json:"label"`
	Commands []Command `json:"commands"`
}
