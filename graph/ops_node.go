package graph

import "github.com/shadergraph/core/graph/paramtext"

// AddNode inserts node and its sockets into g. Every socket must declare
// NodeID == node.ID, and node.Inputs/node.Outputs must exactly match (as
// sets, in the given order) the sockets whose Direction is input/output
// respectively — AddNode builds the node and its interface atomically so
// the graph is never observed with a node whose socket list disagrees
// with its actual sockets.
func AddNode(g Graph, node Node, sockets []Socket) (Graph, error) {
	if _, exists := g.nodes[node.ID]; exists {
		return g, &DuplicateNodeError{NodeID: node.ID}
	}
	seen := make(map[SocketId]bool, len(sockets))
	var gotInputs, gotOutputs []SocketId
	for _, s := range sockets {
		if _, exists := g.sockets[s.ID]; exists {
			return g, &DuplicateSocketError{SocketID: s.ID}
		}
		if seen[s.ID] {
			return g, &DuplicateSocketError{SocketID: s.ID}
		}
		seen[s.ID] = true
		if s.NodeID != node.ID {
			return g, &SocketNodeMismatchError{SocketID: s.ID, NodeID: node.ID}
		}
		switch s.Direction {
		case DirectionInput:
			gotInputs = append(gotInputs, s.ID)
		case DirectionOutput:
			gotOutputs = append(gotOutputs, s.ID)
		}
		if s.MinConnections != nil && s.MaxConnections != nil && *s.MinConnections > *s.MaxConnections {
			return g, &InvalidSocketConnectionLimitError{SocketID: s.ID, Min: *s.MinConnections, Max: *s.MaxConnections}
		}
	}
	if !sameIDs(node.Inputs, gotInputs) {
		return g, &NodeSocketMismatchError{NodeID: node.ID, Reason: "inputs do not match declared input sockets"}
	}
	if !sameIDs(node.Outputs, gotOutputs) {
		return g, &NodeSocketMismatchError{NodeID: node.ID, Reason: "outputs do not match declared output sockets"}
	}

	out := g.clone()
	storedNode := node
	storedNode.Params = paramtext.CloneParams(node.Params)
	storedNode.Inputs = append([]SocketId(nil), node.Inputs...)
	storedNode.Outputs = append([]SocketId(nil), node.Outputs...)
	out.nodes[node.ID] = storedNode
	out.nodeOrder = append(out.nodeOrder, node.ID)
	for _, s := range sockets {
		stored := s
		stored.Metadata = paramtext.CloneParams(s.Metadata)
		out.sockets[s.ID] = stored
	}
	return out, nil
}

func sameIDs(a, b []SocketId) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RemoveNode deletes node and every socket it owns, cascading to remove
// any wire incident on those sockets and to drop the node's sockets out
// of any frame's exposed input/output lists. Adjacency entries touching
// the node are pruned as part of the same pass.
func RemoveNode(g Graph, nodeID NodeId) (Graph, error) {
	node, ok := g.nodes[nodeID]
	if !ok {
		return g, &MissingNodeError{NodeID: nodeID}
	}
	out := g.clone()

	owned := make(map[SocketId]bool, len(node.Inputs)+len(node.Outputs))
	for _, id := range node.Inputs {
		owned[id] = true
	}
	for _, id := range node.Outputs {
		owned[id] = true
	}

	var keptWires []WireId
	for _, wid := range out.wireOrder {
		w := out.wires[wid]
		if owned[w.FromSocketID] || owned[w.ToSocketID] {
			fromSock := out.sockets[w.FromSocketID]
			toSock := out.sockets[w.ToSocketID]
			delete(out.wires, wid)
			out.removeAdjacencyIfUnused(fromSock.NodeID, toSock.NodeID)
			continue
		}
		keptWires = append(keptWires, wid)
	}
	out.wireOrder = keptWires

	for id := range owned {
		delete(out.sockets, id)
	}
	delete(out.nodes, nodeID)
	delete(out.outgoing, nodeID)
	delete(out.incoming, nodeID)
	for other, set := range out.outgoing {
		delete(set, nodeID)
		if len(set) == 0 {
			delete(out.outgoing, other)
		}
	}
	for other, set := range out.incoming {
		delete(set, nodeID)
		if len(set) == 0 {
			delete(out.incoming, other)
		}
	}

	var filteredOrder []NodeId
	for _, id := range out.nodeOrder {
		if id != nodeID {
			filteredOrder = append(filteredOrder, id)
		}
	}
	out.nodeOrder = filteredOrder

	for fid, f := range out.frames {
		newFrame := f
		newFrame.ExposedInputs = removeSocketIDs(f.ExposedInputs, owned)
		newFrame.ExposedOutputs = removeSocketIDs(f.ExposedOutputs, owned)
		out.frames[fid] = newFrame
	}

	return out, nil
}

func removeSocketIDs(ids []SocketId, drop map[SocketId]bool) []SocketId {
	if len(ids) == 0 {
		return ids
	}
	var out []SocketId
	for _, id := range ids {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}

// MoveNode repositions a single node.
func MoveNode(g Graph, nodeID NodeId, pos Position) (Graph, error) {
	node, ok := g.nodes[nodeID]
	if !ok {
		return g, &MissingNodeError{NodeID: nodeID}
	}
	out := g.clone()
	node.Position = pos
	out.nodes[nodeID] = node
	return out, nil
}

// MoveNodes repositions a batch of nodes atomically: if any referenced
// node is missing, no node in the batch is moved.
func MoveNodes(g Graph, positions map[NodeId]Position) (Graph, error) {
	for id := range positions {
		if _, ok := g.nodes[id]; !ok {
			return g, &MissingNodeError{NodeID: id}
		}
	}
	out := g.clone()
	for id, pos := range positions {
		node := out.nodes[id]
		node.Position = pos
		out.nodes[id] = node
	}
	return out, nil
}

// UpdateParam sets the dotted path within nodeID's Params to value,
// returning a new Graph with the updated (deep-copied) Params map.
func UpdateParam(g Graph, nodeID NodeId, path string, value interface{}) (Graph, error) {
	node, ok := g.nodes[nodeID]
	if !ok {
		return g, &MissingNodeError{NodeID: nodeID}
	}
	updated, err := paramtext.Set(node.Params, path, value)
	if err != nil {
		return g, err
	}
	out := g.clone()
	node.Params = updated
	out.nodes[nodeID] = node
	return out, nil
}
