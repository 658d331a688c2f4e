package graph

import "github.com/shadergraph/core/graph/registry"

// AddWire connects an output socket to an input socket. It enforces, in
// order: both sockets exist; direction (from must be output, to must be
// input); self-loop freedom; type compatibility per registry.IsCompatible;
// the connection-limit caps on both endpoints; and finally acyclicity —
// the wire is rejected if toSocketID's node can already reach
// fromSocketID's node, which would close a cycle.
func AddWire(g Graph, wireID WireId, fromSocketID, toSocketID SocketId) (Graph, error) {
	if _, exists := g.wires[wireID]; exists {
		return g, &DuplicateWireError{WireID: wireID}
	}
	from, ok := g.sockets[fromSocketID]
	if !ok {
		return g, &MissingSocketError{SocketID: fromSocketID}
	}
	to, ok := g.sockets[toSocketID]
	if !ok {
		return g, &MissingSocketError{SocketID: toSocketID}
	}
	if from.Direction != DirectionOutput || to.Direction != DirectionInput {
		return g, &InvalidSocketDirectionError{FromSocketID: fromSocketID, ToSocketID: toSocketID}
	}
	if from.NodeID == to.NodeID {
		return g, &SelfLoopError{NodeID: from.NodeID}
	}
	if !registry.IsCompatible(from.DataType, to.DataType) {
		return g, &IncompatibleSocketTypesError{FromSocketID: fromSocketID, ToSocketID: toSocketID}
	}

	if limit := from.maxConnections(); limit >= 0 {
		if len(g.WiresIncidentOnSocket(fromSocketID)) >= limit {
			return g, &SocketConnectionLimitExceededError{SocketID: fromSocketID, Limit: limit}
		}
	}
	if limit := to.maxConnections(); limit >= 0 {
		if len(g.WiresIncidentOnSocket(toSocketID)) >= limit {
			return g, &SocketConnectionLimitExceededError{SocketID: toSocketID, Limit: limit}
		}
	}

	if path, cyclic := g.reachablePath(to.NodeID, from.NodeID); cyclic {
		// path is to.NodeID..from.NodeID (the existing route that would
		// close the loop); the full cycle begins at from.NodeID, crosses
		// the new wire into to.NodeID, and returns to from.NodeID.
		full := append([]NodeId{from.NodeID}, path...)
		return g, &CycleError{Path: full}
	}

	out := g.clone()
	out.wires[wireID] = Wire{ID: wireID, FromSocketID: fromSocketID, ToSocketID: toSocketID}
	out.wireOrder = append(out.wireOrder, wireID)
	out.addAdjacency(from.NodeID, to.NodeID)
	return out, nil
}

// reachablePath reports whether to is reachable from start by following
// outgoing adjacency, returning the discovered path start..to (exclusive
// of the closing edge) when found.
func (g Graph) reachablePath(start, to NodeId) ([]NodeId, bool) {
	if start == to {
		return []NodeId{start}, true
	}
	visited := map[NodeId]bool{start: true}
	stack := [][]NodeId{{start}}
	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur := path[len(path)-1]
		for _, next := range sortedKeys(g.outgoing[cur]) {
			if next == to {
				return append(append([]NodeId(nil), path...), next), true
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			stack = append(stack, append(append([]NodeId(nil), path...), next))
		}
	}
	return nil, false
}

// RemoveWire deletes a wire and prunes its adjacency entry if no other
// wire still connects the same pair of nodes.
func RemoveWire(g Graph, wireID WireId) (Graph, error) {
	w, ok := g.wires[wireID]
	if !ok {
		return g, &MissingWireError{WireID: wireID}
	}
	fromSock, fok := g.sockets[w.FromSocketID]
	toSock, tok := g.sockets[w.ToSocketID]

	out := g.clone()
	delete(out.wires, wireID)
	var filtered []WireId
	for _, id := range out.wireOrder {
		if id != wireID {
			filtered = append(filtered, id)
		}
	}
	out.wireOrder = filtered
	if fok && tok {
		out.removeAdjacencyIfUnused(fromSock.NodeID, toSock.NodeID)
	}
	return out, nil
}
