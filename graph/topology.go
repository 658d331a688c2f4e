package graph

// DetectCycle reports whether g's node graph (as reconstructed from
// wires) contains a directed cycle, returning one witness path if so.
// AddWire rejects any wire that would introduce a cycle, so this only
// fires on a graph assembled outside the kernel's own operations;
// GraphFromDocument replays wires through AddWire, so a loaded Document
// cannot produce one.
func DetectCycle(g Graph) (path []NodeId, found bool) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[NodeId]int, len(g.nodeOrder))
	var stack []NodeId

	var visit func(u NodeId) ([]NodeId, bool)
	visit = func(u NodeId) ([]NodeId, bool) {
		color[u] = gray
		stack = append(stack, u)
		for _, v := range sortedKeys(g.outgoing[u]) {
			switch color[v] {
			case white:
				if p, found := visit(v); found {
					return p, true
				}
			case gray:
				// Found the back edge; slice the stack from v's position.
				for i, n := range stack {
					if n == v {
						cyc := append([]NodeId(nil), stack[i:]...)
						return cyc, true
					}
				}
				return []NodeId{v}, true
			}
		}
		stack = stack[:len(stack)-1]
		color[u] = black
		return nil, false
	}

	for _, id := range g.SortedNodeIDs() {
		if color[id] == white {
			if p, found := visit(id); found {
				return p, true
			}
		}
	}
	return nil, false
}

// TopoSort returns every node id in a topological order, breaking ties
// by ascending NodeId so the result is deterministic for a given graph.
// It fails with a CycleError if the graph is not acyclic.
func TopoSort(g Graph) ([]NodeId, error) {
	return topoSortSet(g, nil)
}

// TopoSortSubgraph returns a topological order restricted to the given
// node ids; wires leaving the subset are ignored.
func TopoSortSubgraph(g Graph, nodeIDs []NodeId) ([]NodeId, error) {
	set := make(map[NodeId]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		set[id] = true
	}
	return topoSortSet(g, set)
}

func topoSortSet(g Graph, only map[NodeId]bool) ([]NodeId, error) {
	indegree := map[NodeId]int{}
	var universe []NodeId
	for _, id := range g.SortedNodeIDs() {
		if only != nil && !only[id] {
			continue
		}
		universe = append(universe, id)
		indegree[id] = 0
	}
	for _, id := range universe {
		for _, from := range sortedKeys(g.incoming[id]) {
			if only != nil && !only[from] {
				continue
			}
			indegree[id]++
		}
	}

	var ready []NodeId
	for _, id := range universe {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	var order []NodeId
	for len(ready) > 0 {
		sortNodeIDs(ready)
		u := ready[0]
		ready = ready[1:]
		order = append(order, u)
		for _, v := range sortedKeys(g.outgoing[u]) {
			if only != nil && !only[v] {
				continue
			}
			indegree[v]--
			if indegree[v] == 0 {
				ready = append(ready, v)
			}
		}
	}

	if len(order) != len(universe) {
		if path, found := DetectCycle(g); found {
			return nil, &CycleError{Path: path}
		}
		return nil, &CycleError{Path: universe}
	}
	return order, nil
}

func sortNodeIDs(ids []NodeId) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// UpstreamClosure returns the set of node ids that can reach start by
// following wires backward (including start itself), sorted ascending.
func UpstreamClosure(g Graph, start NodeId) []NodeId {
	return closure(g, start, g.incoming)
}

// DownstreamClosure returns the set of node ids reachable from start by
// following wires forward (including start itself), sorted ascending.
func DownstreamClosure(g Graph, start NodeId) []NodeId {
	return closure(g, start, g.outgoing)
}

func closure(g Graph, start NodeId, adjacency map[NodeId]map[NodeId]struct{}) []NodeId {
	visited := map[NodeId]bool{start: true}
	queue := []NodeId{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range sortedKeys(adjacency[u]) {
			if !visited[v] {
				visited[v] = true
				queue = append(queue, v)
			}
		}
	}
	out := make([]NodeId, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}
	sortNodeIDs(out)
	return out
}

// ConnectedComponents partitions every node in g into weakly-connected
// components (ignoring wire direction), each sorted ascending, and the
// list of components itself ordered by each component's smallest NodeId.
func ConnectedComponents(g Graph) [][]NodeId {
	undirected := make(map[NodeId]map[NodeId]struct{}, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		undirected[id] = map[NodeId]struct{}{}
	}
	for u, set := range g.outgoing {
		for v := range set {
			undirected[u][v] = struct{}{}
			undirected[v][u] = struct{}{}
		}
	}

	visited := map[NodeId]bool{}
	var components [][]NodeId
	for _, id := range g.SortedNodeIDs() {
		if visited[id] {
			continue
		}
		comp := closure(g, id, undirected)
		for _, n := range comp {
			visited[n] = true
		}
		components = append(components, comp)
	}
	return components
}

// ExecutionSubgraph is the frontier the execution engine walks to
// produce a set of output sockets: every node, socket, and wire that
// transitively contributes to them, plus the requested outputs
// themselves.
type ExecutionSubgraph struct {
	Nodes         []NodeId
	Sockets       []SocketId
	Wires         []WireId
	OutputSockets []SocketId
}

// ExecutionSubgraphByOutputSockets computes the upstream closure of the
// nodes owning outputSockets and collects every socket and wire fully
// contained in that closure, in topological node order, suitable for
// driving a partial re-evaluation rooted at a specific set of outputs.
func ExecutionSubgraphByOutputSockets(g Graph, outputSockets []SocketId) (ExecutionSubgraph, error) {
	roots := map[NodeId]bool{}
	for _, sid := range outputSockets {
		s, ok := g.sockets[sid]
		if !ok {
			return ExecutionSubgraph{}, &MissingSocketError{SocketID: sid}
		}
		if s.Direction != DirectionOutput {
			return ExecutionSubgraph{}, &InvalidSocketDirectionError{FromSocketID: sid, ToSocketID: sid}
		}
		roots[s.NodeID] = true
	}
	include := map[NodeId]bool{}
	for root := range roots {
		for _, id := range UpstreamClosure(g, root) {
			include[id] = true
		}
	}
	var nodeIDs []NodeId
	for id := range include {
		nodeIDs = append(nodeIDs, id)
	}
	order, err := TopoSortSubgraph(g, nodeIDs)
	if err != nil {
		return ExecutionSubgraph{}, err
	}

	var sockets []SocketId
	for _, nid := range order {
		n, ok := g.nodes[nid]
		if !ok {
			return ExecutionSubgraph{}, &MissingNodeError{NodeID: nid}
		}
		sockets = append(sockets, n.Inputs...)
		sockets = append(sockets, n.Outputs...)
	}
	var wires []WireId
	for _, wid := range g.wireOrder {
		w := g.wires[wid]
		from, fok := g.sockets[w.FromSocketID]
		to, tok := g.sockets[w.ToSocketID]
		if fok && tok && include[from.NodeID] && include[to.NodeID] {
			wires = append(wires, wid)
		}
	}

	return ExecutionSubgraph{
		Nodes:         order,
		Sockets:       sockets,
		Wires:         wires,
		OutputSockets: append([]SocketId(nil), outputSockets...),
	}, nil
}
