package command

import (
	"fmt"

	"github.com/shadergraph/core/graph"
)

// InverseCommands returns the command(s) that undo cmd, using only state
// captured when cmd was constructed. A single forward command can expand
// to several inverse commands when it cascaded (remove_node takes its
// wires with it; replace_node_io can drop wires too), so the result is a
// slice applied in order.
func InverseCommands(cmd Command) ([]Command, error) {
	switch cmd.Kind {
	case KindAddNode:
		p := cmd.AddNode
		return []Command{{
			Kind: KindRemoveNode,
			RemoveNode: &RemoveNodePayload{
				NodeID:  p.Node.ID,
				Node:    p.Node,
				Sockets: p.Sockets,
			},
		}}, nil

	case KindRemoveNode:
		p := cmd.RemoveNode
		cmds := []Command{MakeAddNodeCommand(p.Node, p.Sockets)}
		for _, w := range p.IncidentWires {
			cmds = append(cmds, MakeAddWireCommand(w.ID, w.FromSocketID, w.ToSocketID))
		}
		return cmds, nil

	case KindAddWire:
		p := cmd.AddWire
		return []Command{{
			Kind: KindRemoveWire,
			RemoveWire: &RemoveWirePayload{Wire: graph.Wire{
				ID:           p.WireID,
				FromSocketID: p.FromSocketID,
				ToSocketID:   p.ToSocketID,
			}},
		}}, nil

	case KindRemoveWire:
		p := cmd.RemoveWire
		return []Command{MakeAddWireCommand(p.Wire.ID, p.Wire.FromSocketID, p.Wire.ToSocketID)}, nil

	case KindAddFrame:
		p := cmd.AddFrame
		return []Command{{Kind: KindRemoveFrame, RemoveFrame: &RemoveFramePayload{Frame: p.Frame}}}, nil

	case KindRemoveFrame:
		p := cmd.RemoveFrame
		return []Command{{Kind: KindAddFrame, AddFrame: &AddFramePayload{Frame: p.Frame}}}, nil

	case KindMoveNodes:
		p := cmd.MoveNodes
		return []Command{{
			Kind:      KindMoveNodes,
			MoveNodes: &MoveNodesPayload{Positions: p.Previous, Previous: p.Positions},
		}}, nil

	case KindMoveFrames:
		p := cmd.MoveFrames
		return []Command{{
			Kind:       KindMoveFrames,
			MoveFrames: &MoveFramesPayload{Positions: p.Previous, Previous: p.Positions},
		}}, nil

	case KindUpdateFrame:
		p := cmd.UpdateFrame
		return []Command{{
			Kind:        KindUpdateFrame,
			UpdateFrame: &UpdateFramePayload{FrameID: p.FrameID, Update: p.Previous, Previous: p.Update},
		}}, nil

	case KindUpdateParam:
		p := cmd.UpdateParam
		var restoreValue interface{}
		if p.HadPrevious {
			restoreValue = p.Previous
		}
		return []Command{{
			Kind: KindUpdateParam,
			UpdateParam: &UpdateParamPayload{
				NodeID:      p.NodeID,
				Path:        p.Path,
				Value:       restoreValue,
				Previous:    p.Value,
				HadPrevious: true,
			},
		}}, nil

	case KindUpdateNodeIO:
		p := cmd.UpdateNodeIO
		return []Command{{
			Kind:         KindUpdateNodeIO,
			UpdateNodeIO: &UpdateNodeIOPayload{Sockets: p.Previous, Previous: p.Sockets},
		}}, nil

	case KindReplaceNodeIO:
		p := cmd.ReplaceNodeIO
		cmds := []Command{{
			Kind: KindReplaceNodeIO,
			ReplaceNodeIO: &ReplaceNodeIOPayload{
				NodeID:           p.NodeID,
				NewInputs:        p.PrevInputs,
				NewOutputs:       p.PrevOutputs,
				Sockets:          p.PrevSockets,
				RemovedWires:     nil,
				PrevInputs:       p.NewInputs,
				PrevOutputs:      p.NewOutputs,
				PrevSockets:      p.Sockets,
				RemovedWireValue: nil,
			},
		}}
		for _, w := range p.RemovedWireValue {
			cmds = append(cmds, MakeAddWireCommand(w.ID, w.FromSocketID, w.ToSocketID))
		}
		return cmds, nil

	default:
		return nil, fmt.Errorf("command: unknown kind %q", cmd.Kind)
	}
}

// InverseEntry returns the Entry that undoes entry: each command's
// inverse, concatenated in reverse command order, since undoing a
// sequence means undoing its last effect first.
func InverseEntry(entry Entry) (Entry, error) {
	var inverted []Command
	for i := len(entry.Commands) - 1; i >= 0; i-- {
		cmds, err := InverseCommands(entry.Commands[i])
		if err != nil {
			return Entry{}, err
		}
		inverted = append(inverted, cmds...)
	}
	return Entry{Label: "undo: " + entry.Label, Commands: inverted}, nil
}
