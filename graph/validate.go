package graph

import "github.com/shadergraph/core/graph/registry"

// ValidateGraph checks every invariant the kernel is supposed to
// maintain and returns every violation found, rather than failing fast —
// useful as a consistency check on a graph of uncertain origin.
// GraphFromDocument already replays a Document through AddNode/AddWire/
// AddFrame, so a loaded Document is checked on the way in. A graph
// built exclusively through this package's operations always validates
// clean; a non-empty result indicates either corrupted storage or a
// kernel bug.
func ValidateGraph(g Graph) []error {
	var errs []error

	for _, s := range g.Sockets() {
		if _, ok := g.nodes[s.NodeID]; !ok {
			errs = append(errs, &MissingNodeError{NodeID: s.NodeID})
			continue
		}
		if !registry.IsKnown(s.DataType) {
			errs = append(errs, &NodeSocketMismatchError{NodeID: s.NodeID, Reason: "socket " + string(s.ID) + " has unknown data type " + string(s.DataType)})
		}
		if s.MinConnections != nil && s.MaxConnections != nil && *s.MinConnections > *s.MaxConnections {
			errs = append(errs, &InvalidSocketConnectionLimitError{SocketID: s.ID, Min: *s.MinConnections, Max: *s.MaxConnections})
		}
	}

	for _, n := range g.Nodes() {
		owned := map[SocketId]Direction{}
		for _, id := range n.Inputs {
			owned[id] = DirectionInput
		}
		for _, id := range n.Outputs {
			owned[id] = DirectionOutput
		}
		for id, wantDir := range owned {
			s, ok := g.sockets[id]
			if !ok {
				errs = append(errs, &MissingSocketError{SocketID: id})
				continue
			}
			if s.NodeID != n.ID {
				errs = append(errs, &SocketNodeMismatchError{SocketID: id, NodeID: n.ID})
			}
			if s.Direction != wantDir {
				errs = append(errs, &NodeSocketMismatchError{NodeID: n.ID, Reason: "socket " + string(id) + " direction disagrees with node's input/output list"})
			}
		}
	}

	for _, w := range g.Wires() {
		from, fok := g.sockets[w.FromSocketID]
		to, tok := g.sockets[w.ToSocketID]
		if !fok {
			errs = append(errs, &MissingSocketError{SocketID: w.FromSocketID})
			continue
		}
		if !tok {
			errs = append(errs, &MissingSocketError{SocketID: w.ToSocketID})
			continue
		}
		if from.Direction != DirectionOutput || to.Direction != DirectionInput {
			errs = append(errs, &InvalidSocketDirectionError{FromSocketID: w.FromSocketID, ToSocketID: w.ToSocketID})
		}
		if from.NodeID == to.NodeID {
			errs = append(errs, &SelfLoopError{NodeID: from.NodeID})
		}
		if !registry.IsCompatible(from.DataType, to.DataType) {
			errs = append(errs, &IncompatibleSocketTypesError{FromSocketID: w.FromSocketID, ToSocketID: w.ToSocketID})
		}
	}

	for _, s := range g.Sockets() {
		count := len(g.WiresIncidentOnSocket(s.ID))
		if limit := s.maxConnections(); limit >= 0 && count > limit {
			errs = append(errs, &SocketConnectionLimitExceededError{SocketID: s.ID, Limit: limit})
		}
		if min := s.minConnections(); count < min {
			errs = append(errs, &SocketConnectionBelowMinError{SocketID: s.ID, Min: min, Actual: count})
		}
	}

	for u, set := range g.outgoing {
		for v := range set {
			if !adjacencyBackedByWire(g, u, v) {
				errs = append(errs, &AdjacencyMismatchError{From: u, To: v})
			}
		}
	}
	for _, u := range g.nodeOrder {
		for _, w := range g.WiresFrom(u) {
			to, ok := g.sockets[w.ToSocketID]
			if !ok {
				continue
			}
			if _, ok := g.outgoing[u][to.NodeID]; !ok {
				errs = append(errs, &AdjacencyMismatchError{From: u, To: to.NodeID})
			}
		}
	}

	if path, found := DetectCycle(g); found {
		errs = append(errs, &CycleError{Path: path})
	}

	for _, f := range g.Frames() {
		for _, id := range f.ExposedInputs {
			if _, ok := g.sockets[id]; !ok {
				errs = append(errs, &MissingSocketError{SocketID: id})
			}
		}
		for _, id := range f.ExposedOutputs {
			if _, ok := g.sockets[id]; !ok {
				errs = append(errs, &MissingSocketError{SocketID: id})
			}
		}
	}

	return errs
}

func adjacencyBackedByWire(g Graph, from, to NodeId) bool {
	for _, w := range g.wires {
		fs, fok := g.sockets[w.FromSocketID]
		ts, tok := g.sockets[w.ToSocketID]
		if fok && tok && fs.NodeID == from && ts.NodeID == to {
			return true
		}
	}
	return false
}
