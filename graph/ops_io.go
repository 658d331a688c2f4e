package graph

import (
	"github.com/shadergraph/core/graph/paramtext"
	"github.com/shadergraph/core/graph/registry"
)

// UpdateNodeIO overwrites the non-structural fields (name, label, data
// type, default, connection limits, metadata) of sockets that already
// belong to nodeID, without changing which sockets exist or their
// direction. Any wire already incident on a socket whose DataType
// changes is re-checked for compatibility, so UpdateNodeIO can never
// leave a previously-valid wire silently carrying an incompatible type.
func UpdateNodeIO(g Graph, nodeID NodeId, sockets []Socket) (Graph, error) {
	if _, ok := g.nodes[nodeID]; !ok {
		return g, &MissingNodeError{NodeID: nodeID}
	}
	for _, s := range sockets {
		existing, exists := g.sockets[s.ID]
		if !exists {
			return g, &MissingSocketError{SocketID: s.ID}
		}
		if existing.NodeID != nodeID {
			return g, &SocketNodeMismatchError{SocketID: s.ID, NodeID: nodeID}
		}
		if existing.Direction != s.Direction {
			return g, &NodeSocketMismatchError{NodeID: nodeID, Reason: "update_node_io cannot change a socket's direction"}
		}
		if s.MinConnections != nil && s.MaxConnections != nil && *s.MinConnections > *s.MaxConnections {
			return g, &InvalidSocketConnectionLimitError{SocketID: s.ID, Min: *s.MinConnections, Max: *s.MaxConnections}
		}
	}

	for _, s := range sockets {
		for _, w := range g.WiresIncidentOnSocket(s.ID) {
			other := w.ToSocketID
			if s.Direction == DirectionInput {
				other = w.FromSocketID
			}
			otherSock := g.sockets[other]
			from, to := s.DataType, otherSock.DataType
			if s.Direction == DirectionInput {
				from, to = otherSock.DataType, s.DataType
			}
			if !registry.IsCompatible(from, to) {
				return g, &IncompatibleSocketTypesError{FromSocketID: w.FromSocketID, ToSocketID: w.ToSocketID}
			}
		}
	}

	out := g.clone()
	for _, s := range sockets {
		stored := s
		stored.Metadata = paramtext.CloneParams(s.Metadata)
		out.sockets[s.ID] = stored
	}
	return out, nil
}

// ReplaceNodeIO restructures nodeID's socket interface to exactly
// newInputs/newOutputs, described by sockets (which must cover every id
// in newInputs/newOutputs). Sockets dropped from the old interface take
// their incident wires with them; removedWires is the caller's best-effort
// accounting of which wire ids that cascade removes. It is reconciled
// against the wires actually incident on dropped sockets rather than
// trusted outright: ids in removedWires that are no longer present are
// ignored, and wires incident on a dropped socket are removed even if
// absent from removedWires. This tolerates a stale removedWires list
// without ever leaving a dangling wire on a socket that no longer exists.
func ReplaceNodeIO(g Graph, nodeID NodeId, newInputs, newOutputs []SocketId, sockets []Socket, removedWires []WireId) (Graph, error) {
	node, ok := g.nodes[nodeID]
	if !ok {
		return g, &MissingNodeError{NodeID: nodeID}
	}

	byID := make(map[SocketId]Socket, len(sockets))
	for _, s := range sockets {
		if s.NodeID != nodeID {
			return g, &SocketNodeMismatchError{SocketID: s.ID, NodeID: nodeID}
		}
		byID[s.ID] = s
	}
	for _, id := range newInputs {
		s, found := byID[id]
		if !found {
			return g, &NodeSocketMismatchError{NodeID: nodeID, Reason: "replace_node_io input missing a socket definition"}
		}
		if s.Direction != DirectionInput {
			return g, &NodeSocketMismatchError{NodeID: nodeID, Reason: "replace_node_io input socket has wrong direction"}
		}
	}
	for _, id := range newOutputs {
		s, found := byID[id]
		if !found {
			return g, &NodeSocketMismatchError{NodeID: nodeID, Reason: "replace_node_io output missing a socket definition"}
		}
		if s.Direction != DirectionOutput {
			return g, &NodeSocketMismatchError{NodeID: nodeID, Reason: "replace_node_io output socket has wrong direction"}
		}
	}

	oldOwned := make(map[SocketId]bool, len(node.Inputs)+len(node.Outputs))
	for _, id := range node.Inputs {
		oldOwned[id] = true
	}
	for _, id := range node.Outputs {
		oldOwned[id] = true
	}
	newOwned := make(map[SocketId]bool, len(newInputs)+len(newOutputs))
	for _, id := range newInputs {
		newOwned[id] = true
	}
	for _, id := range newOutputs {
		newOwned[id] = true
	}

	dropped := map[SocketId]bool{}
	for id := range oldOwned {
		if !newOwned[id] {
			dropped[id] = true
		}
	}

	toRemove := map[WireId]bool{}
	for id := range dropped {
		for _, w := range g.WiresIncidentOnSocket(id) {
			toRemove[w.ID] = true
		}
	}
	for _, wid := range removedWires {
		if _, exists := g.wires[wid]; exists {
			toRemove[wid] = true
		}
	}

	out := g.clone()
	for wid := range toRemove {
		w, exists := out.wires[wid]
		if !exists {
			continue
		}
		fromSock, fok := out.sockets[w.FromSocketID]
		toSock, tok := out.sockets[w.ToSocketID]
		delete(out.wires, wid)
		if fok && tok {
			out.removeAdjacencyIfUnused(fromSock.NodeID, toSock.NodeID)
		}
	}
	if len(toRemove) > 0 {
		var filtered []WireId
		for _, id := range out.wireOrder {
			if !toRemove[id] {
				filtered = append(filtered, id)
			}
		}
		out.wireOrder = filtered
	}

	for id := range dropped {
		delete(out.sockets, id)
	}
	for id := range newOwned {
		s := byID[id]
		stored := s
		stored.Metadata = paramtext.CloneParams(s.Metadata)
		out.sockets[id] = stored
	}

	node.Inputs = append([]SocketId(nil), newInputs...)
	node.Outputs = append([]SocketId(nil), newOutputs...)
	out.nodes[nodeID] = node

	return out, nil
}
