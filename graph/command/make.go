package command

import "github.com/shadergraph/core/graph"

// MakeAddNodeCommand builds a command inserting node and its sockets.
func MakeAddNodeCommand(node graph.Node, sockets []graph.Socket) Command {
	return Command{Kind: KindAddNode, AddNode: &AddNodePayload{Node: node, Sockets: sockets}}
}

// MakeRemoveNodeCommand captures nodeID's current node, sockets, and
// incident wires from g so the command's Inverse can rebuild them later
// without access to g.
func MakeRemoveNodeCommand(g graph.Graph, nodeID graph.NodeId) (Command, error) {
	node, ok := g.Node(nodeID)
	if !ok {
		return Command{}, &graph.MissingNodeError{NodeID: nodeID}
	}
	var sockets []graph.Socket
	owned := map[graph.SocketId]bool{}
	for _, id := range append(append([]graph.SocketId(nil), node.Inputs...), node.Outputs...) {
		if s, ok := g.Socket(id); ok {
			sockets = append(sockets, s)
			owned[id] = true
		}
	}
	seen := map[graph.WireId]bool{}
	var wires []graph.Wire
	for id := range owned {
		for _, w := range g.WiresIncidentOnSocket(id) {
			if !seen[w.ID] {
				seen[w.ID] = true
				wires = append(wires, w)
			}
		}
	}
	return Command{
		Kind: KindRemoveNode,
		RemoveNode: &RemoveNodePayload{
			NodeID:        nodeID,
			Node:          node,
			Sockets:       sockets,
			IncidentWires: wires,
		},
	}, nil
}

// MakeAddWireCommand builds a command connecting two sockets.
func MakeAddWireCommand(wireID graph.WireId, fromSocketID, toSocketID graph.SocketId) Command {
	return Command{Kind: KindAddWire, AddWire: &AddWirePayload{WireID: wireID, FromSocketID: fromSocketID, ToSocketID: toSocketID}}
}

// MakeRemoveWireCommand captures wireID's current value from g.
func MakeRemoveWireCommand(g graph.Graph, wireID graph.WireId) (Command, error) {
	w, ok := g.Wire(wireID)
	if !ok {
		return Command{}, &graph.MissingWireError{WireID: wireID}
	}
	return Command{Kind: KindRemoveWire, RemoveWire: &RemoveWirePayload{Wire: w}}, nil
}

// MakeAddFrameCommand builds a command inserting frame.
func MakeAddFrameCommand(frame graph.Frame) Command {
	return Command{Kind: KindAddFrame, AddFrame: &AddFramePayload{Frame: frame}}
}

// MakeRemoveFrameCommand captures frameID's current value from g.
func MakeRemoveFrameCommand(g graph.Graph, frameID graph.FrameId) (Command, error) {
	f, ok := g.Frame(frameID)
	if !ok {
		return Command{}, &graph.MissingFrameError{FrameID: frameID}
	}
	return Command{Kind: KindRemoveFrame, RemoveFrame: &RemoveFramePayload{Frame: f}}, nil
}

// MakeMoveNodesCommand captures the current position of every node in
// positions so the command is its own inverse target.
func MakeMoveNodesCommand(g graph.Graph, positions map[graph.NodeId]graph.Position) (Command, error) {
	previous := make(map[graph.NodeId]graph.Position, len(positions))
	for id := range positions {
		n, ok := g.Node(id)
		if !ok {
			return Command{}, &graph.MissingNodeError{NodeID: id}
		}
		previous[id] = n.Position
	}
	return Command{Kind: KindMoveNodes, MoveNodes: &MoveNodesPayload{Positions: positions, Previous: previous}}, nil
}

// MakeMoveFramesCommand captures the current position of every frame in
// positions.
func MakeMoveFramesCommand(g graph.Graph, positions map[graph.FrameId]graph.Position) (Command, error) {
	previous := make(map[graph.FrameId]graph.Position, len(positions))
	for id := range positions {
		f, ok := g.Frame(id)
		if !ok {
			return Command{}, &graph.MissingFrameError{FrameID: id}
		}
		previous[id] = f.Position
	}
	return Command{Kind: KindMoveFrames, MoveFrames: &MoveFramesPayload{Positions: positions, Previous: previous}}, nil
}

// MakeUpdateFrameCommand captures frameID's current field values so only
// the fields update actually sets get overwritten, and Inverse can put
// back exactly what was there before.
func MakeUpdateFrameCommand(g graph.Graph, frameID graph.FrameId, update graph.FrameUpdate) (Command, error) {
	f, ok := g.Frame(frameID)
	if !ok {
		return Command{}, &graph.MissingFrameError{FrameID: frameID}
	}
	previous := graph.FrameUpdate{}
	if update.Title != nil {
		title := f.Title
		previous.Title = &title
	}
	if update.Size != nil {
		size := f.Size
		previous.Size = &size
	}
	if update.Collapsed != nil {
		collapsed := f.Collapsed
		previous.Collapsed = &collapsed
	}
	if update.ExposedInputs != nil {
		previous.ExposedInputs = append([]graph.SocketId(nil), f.ExposedInputs...)
	}
	if update.ExposedOutputs != nil {
		previous.ExposedOutputs = append([]graph.SocketId(nil), f.ExposedOutputs...)
	}
	return Command{Kind: KindUpdateFrame, UpdateFrame: &UpdateFramePayload{FrameID: frameID, Update: update, Previous: previous}}, nil
}

// MakeUpdateParamCommand captures the dotted path's current value (if
// any) within nodeID's Params before it is overwritten by value.
func MakeUpdateParamCommand(g graph.Graph, nodeID graph.NodeId, path string, value interface{}) (Command, error) {
	n, ok := g.Node(nodeID)
	if !ok {
		return Command{}, &graph.MissingNodeError{NodeID: nodeID}
	}
	prev, had := paramGet(n.Params, path)
	return Command{
		Kind: KindUpdateParam,
		UpdateParam: &UpdateParamPayload{
			NodeID:      nodeID,
			Path:        path,
			Value:       value,
			Previous:    prev,
			HadPrevious: had,
		},
	}, nil
}

// MakeUpdateNodeIOCommand captures the current value of every socket
// that sockets is about to overwrite.
func MakeUpdateNodeIOCommand(g graph.Graph, sockets []graph.Socket) (Command, error) {
	previous := make([]graph.Socket, 0, len(sockets))
	for _, s := range sockets {
		existing, ok := g.Socket(s.ID)
		if !ok {
			return Command{}, &graph.MissingSocketError{SocketID: s.ID}
		}
		previous = append(previous, existing)
	}
	return Command{Kind: KindUpdateNodeIO, UpdateNodeIO: &UpdateNodeIOPayload{Sockets: sockets, Previous: previous}}, nil
}

// MakeReplaceNodeIOCommand captures nodeID's current socket interface
// (input/output lists, every existing socket's value, and the value of
// every wire the replacement will cascade-remove) so Inverse can restore
// it exactly.
func MakeReplaceNodeIOCommand(g graph.Graph, nodeID graph.NodeId, newInputs, newOutputs []graph.SocketId, sockets []graph.Socket, removedWires []graph.WireId) (Command, error) {
	n, ok := g.Node(nodeID)
	if !ok {
		return Command{}, &graph.MissingNodeError{NodeID: nodeID}
	}
	owned := map[graph.SocketId]bool{}
	var prevSockets []graph.Socket
	for _, id := range append(append([]graph.SocketId(nil), n.Inputs...), n.Outputs...) {
		owned[id] = true
		if s, ok := g.Socket(id); ok {
			prevSockets = append(prevSockets, s)
		}
	}
	newOwned := map[graph.SocketId]bool{}
	for _, id := range append(append([]graph.SocketId(nil), newInputs...), newOutputs...) {
		newOwned[id] = true
	}
	seen := map[graph.WireId]bool{}
	var removedValues []graph.Wire
	for id := range owned {
		if newOwned[id] {
			continue
		}
		for _, w := range g.WiresIncidentOnSocket(id) {
			if !seen[w.ID] {
				seen[w.ID] = true
				removedValues = append(removedValues, w)
			}
		}
	}
	return Command{
		Kind: KindReplaceNodeIO,
		ReplaceNodeIO: &ReplaceNodeIOPayload{
			NodeID:           nodeID,
			NewInputs:        newInputs,
			NewOutputs:       newOutputs,
			Sockets:          sockets,
			RemovedWires:     removedWires,
			PrevInputs:       append([]graph.SocketId(nil), n.Inputs...),
			PrevOutputs:      append([]graph.SocketId(nil), n.Outputs...),
			PrevSockets:      prevSockets,
			RemovedWireValue: removedValues,
		},
	}, nil
}
