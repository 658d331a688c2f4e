package graph

import "sort"

// Graph is an immutable value: graph_id, the node/socket/wire/frame
// tables, and two adjacency indexes derived from the wires. Every kernel
// operation takes a Graph and returns a new Graph (or an error); nothing
// in this package mutates a Graph's exported behavior after it is
// returned. Internally a Graph clones its top-level maps on write (the
// "clone_on_write facade" from the design notes) so distinct Graph values
// never observe each other's mutations, and values never alias mutable
// state: the only reference types a Node/Socket carries (Params,
// Metadata) are replaced wholesale, never mutated in place, whenever an
// operation changes them.
type Graph struct {
	id GraphId

	nodes     map[NodeId]Node
	nodeOrder []NodeId

	sockets map[SocketId]Socket

	wires     map[WireId]Wire
	wireOrder []WireId

	frames     map[FrameId]Frame
	frameOrder []FrameId

	// outgoing[u] / incoming[u] are derived from wires + sockets: u->v is
	// present iff some wire connects a socket owned by u to a socket
	// owned by v. They are maintained in lockstep with wires by every
	// wire-mutating operation, never stored as back-pointers on Node.
	outgoing map[NodeId]map[NodeId]struct{}
	incoming map[NodeId]map[NodeId]struct{}
}

// CreateGraph returns a new, empty Graph identified by id.
func CreateGraph(id GraphId) Graph {
	return Graph{
		id:       id,
		nodes:    map[NodeId]Node{},
		sockets:  map[SocketId]Socket{},
		wires:    map[WireId]Wire{},
		frames:   map[FrameId]Frame{},
		outgoing: map[NodeId]map[NodeId]struct{}{},
		incoming: map[NodeId]map[NodeId]struct{}{},
	}
}

// ID returns the graph's identifier.
func (g Graph) ID() GraphId { return g.id }

// Node returns the node with the given id.
func (g Graph) Node(id NodeId) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node, in the order they were added.
func (g Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodeIDs returns every node id, in the order nodes were added.
func (g Graph) NodeIDs() []NodeId {
	out := make([]NodeId, len(g.nodeOrder))
	copy(out, g.nodeOrder)
	return out
}

// SortedNodeIDs returns every node id in ascending lexicographic order,
// the deterministic iteration order TopoSort and the closures rely on.
func (g Graph) SortedNodeIDs() []NodeId {
	out := g.NodeIDs()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Socket returns the socket with the given id.
func (g Graph) Socket(id SocketId) (Socket, bool) {
	s, ok := g.sockets[id]
	return s, ok
}

// Sockets returns every socket in the graph, sorted by SocketId.
func (g Graph) Sockets() []Socket {
	out := make([]Socket, 0, len(g.sockets))
	for _, id := range g.sortedSocketIDs() {
		out = append(out, g.sockets[id])
	}
	return out
}

func (g Graph) sortedSocketIDs() []SocketId {
	ids := make([]SocketId, 0, len(g.sockets))
	for id := range g.sockets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Wire returns the wire with the given id.
func (g Graph) Wire(id WireId) (Wire, bool) {
	w, ok := g.wires[id]
	return w, ok
}

// Wires returns every wire, in the order they were added.
func (g Graph) Wires() []Wire {
	out := make([]Wire, 0, len(g.wireOrder))
	for _, id := range g.wireOrder {
		out = append(out, g.wires[id])
	}
	return out
}

// Frame returns the frame with the given id.
func (g Graph) Frame(id FrameId) (Frame, bool) {
	f, ok := g.frames[id]
	return f, ok
}

// Frames returns every frame, in the order they were added.
func (g Graph) Frames() []Frame {
	out := make([]Frame, 0, len(g.frameOrder))
	for _, id := range g.frameOrder {
		out = append(out, g.frames[id])
	}
	return out
}

// Outgoing returns the node ids reachable by a single wire from a socket
// of node u, sorted for deterministic output.
func (g Graph) Outgoing(u NodeId) []NodeId { return sortedKeys(g.outgoing[u]) }

// Incoming returns the node ids that reach node u by a single wire, sorted
// for deterministic output.
func (g Graph) Incoming(u NodeId) []NodeId { return sortedKeys(g.incoming[u]) }

func sortedKeys(set map[NodeId]struct{}) []NodeId {
	out := make([]NodeId, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// WiresFrom returns the wires whose FromSocketID belongs to node u.
func (g Graph) WiresFrom(u NodeId) []Wire {
	var out []Wire
	for _, id := range g.wireOrder {
		w := g.wires[id]
		if s, ok := g.sockets[w.FromSocketID]; ok && s.NodeID == u {
			out = append(out, w)
		}
	}
	return out
}

// WiresTo returns the wires whose ToSocketID belongs to node u.
func (g Graph) WiresTo(u NodeId) []Wire {
	var out []Wire
	for _, id := range g.wireOrder {
		w := g.wires[id]
		if s, ok := g.sockets[w.ToSocketID]; ok && s.NodeID == u {
			out = append(out, w)
		}
	}
	return out
}

// WiresIncidentOnSocket returns every wire touching socket id, as either
// endpoint.
func (g Graph) WiresIncidentOnSocket(id SocketId) []Wire {
	var out []Wire
	for _, wid := range g.wireOrder {
		w := g.wires[wid]
		if w.FromSocketID == id || w.ToSocketID == id {
			out = append(out, w)
		}
	}
	return out
}

// clone returns a shallow copy of g with freshly allocated top-level
// containers, so that mutating the copy's containers never affects g.
// Node/Socket/Wire/Frame values themselves are plain data (no internal
// mutable aliasing once paramtext.CloneValue is used for Params/Metadata
// by the ops that change them), so copying the maps that hold them is
// sufficient to make g and the clone independent.
func (g Graph) clone() Graph {
	out := Graph{
		id:         g.id,
		nodes:      make(map[NodeId]Node, len(g.nodes)),
		nodeOrder:  append([]NodeId(nil), g.nodeOrder...),
		sockets:    make(map[SocketId]Socket, len(g.sockets)),
		wires:      make(map[WireId]Wire, len(g.wires)),
		wireOrder:  append([]WireId(nil), g.wireOrder...),
		frames:     make(map[FrameId]Frame, len(g.frames)),
		frameOrder: append([]FrameId(nil), g.frameOrder...),
		outgoing:   make(map[NodeId]map[NodeId]struct{}, len(g.outgoing)),
		incoming:   make(map[NodeId]map[NodeId]struct{}, len(g.incoming)),
	}
	for k, v := range g.nodes {
		out.nodes[k] = v
	}
	for k, v := range g.sockets {
		out.sockets[k] = v
	}
	for k, v := range g.wires {
		out.wires[k] = v
	}
	for k, v := range g.frames {
		out.frames[k] = v
	}
	for k, set := range g.outgoing {
		out.outgoing[k] = cloneSet(set)
	}
	for k, set := range g.incoming {
		out.incoming[k] = cloneSet(set)
	}
	return out
}

func cloneSet(set map[NodeId]struct{}) map[NodeId]struct{} {
	out := make(map[NodeId]struct{}, len(set))
	for k := range set {
		out[k] = struct{}{}
	}
	return out
}

func (g *Graph) addAdjacency(from, to NodeId) {
	if g.outgoing[from] == nil {
		g.outgoing[from] = map[NodeId]struct{}{}
	}
	g.outgoing[from][to] = struct{}{}
	if g.incoming[to] == nil {
		g.incoming[to] = map[NodeId]struct{}{}
	}
	g.incoming[to][from] = struct{}{}
}

// removeAdjacencyIfUnused drops the from->to adjacency edge only if no
// remaining wire connects a socket of from to a socket of to.
func (g *Graph) removeAdjacencyIfUnused(from, to NodeId) {
	for _, w := range g.wires {
		fs, ok1 := g.sockets[w.FromSocketID]
		ts, ok2 := g.sockets[w.ToSocketID]
		if ok1 && ok2 && fs.NodeID == from && ts.NodeID == to {
			return // still connected by another wire
		}
	}
	if set, ok := g.outgoing[from]; ok {
		delete(set, to)
		if len(set) == 0 {
			delete(g.outgoing, from)
		}
	}
	if set, ok := g.incoming[to]; ok {
		delete(set, from)
		if len(set) == 0 {
			delete(g.incoming, to)
		}
	}
}
