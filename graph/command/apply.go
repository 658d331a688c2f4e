package command

import (
	"fmt"

	"github.com/shadergraph/core/graph"
)

// Apply replays cmd against g, returning the resulting graph. It never
// mutates g; on error g is returned unchanged, matching every graph
// package operation's own contract.
func Apply(g graph.Graph, cmd Command) (graph.Graph, error) {
	switch cmd.Kind {
	case KindAddNode:
		p := cmd.AddNode
		return graph.AddNode(g, p.Node, p.Sockets)
	case KindRemoveNode:
		return graph.RemoveNode(g, cmd.RemoveNode.NodeID)
	case KindAddWire:
		p := cmd.AddWire
		return graph.AddWire(g, p.WireID, p.FromSocketID, p.ToSocketID)
	case KindRemoveWire:
		return graph.RemoveWire(g, cmd.RemoveWire.Wire.ID)
	case KindAddFrame:
		return graph.AddFrame(g, cmd.AddFrame.Frame)
	case KindRemoveFrame:
		return graph.RemoveFrame(g, cmd.RemoveFrame.Frame.ID)
	case KindMoveNodes:
		return graph.MoveNodes(g, cmd.MoveNodes.Positions)
	case KindMoveFrames:
		return graph.MoveFrames(g, cmd.MoveFrames.Positions)
	case KindUpdateFrame:
		p := cmd.UpdateFrame
		return graph.UpdateFrame(g, p.FrameID, p.Update)
	case KindUpdateParam:
		p := cmd.UpdateParam
		return graph.UpdateParam(g, p.NodeID, p.Path, p.Value)
	case KindUpdateNodeIO:
		return graph.UpdateNodeIO(g, nodeIDOf(cmd.UpdateNodeIO.Sockets), cmd.UpdateNodeIO.Sockets)
	case KindReplaceNodeIO:
		p := cmd.ReplaceNodeIO
		return graph.ReplaceNodeIO(g, p.NodeID, p.NewInputs, p.NewOutputs, p.Sockets, p.RemovedWires)
	default:
		return g, fmt.Errorf("command: unknown kind %q", cmd.Kind)
	}
}

// nodeIDOf returns the owning node id shared by a non-empty socket
// slice, used because UpdateNodeIO's payload doesn't separately store a
// NodeID (every socket it touches already carries one).
func nodeIDOf(sockets []graph.Socket) graph.NodeId {
	if len(sockets) == 0 {
		return ""
	}
	return sockets[0].NodeID
}

// ApplyEntry replays every command in entry, in order, against g.
func ApplyEntry(g graph.Graph, entry Entry) (graph.Graph, error) {
	var err error
	for _, cmd := range entry.Commands {
		g, err = Apply(g, cmd)
		if err != nil {
			return g, err
		}
	}
	return g, nil
}
