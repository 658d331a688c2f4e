package command

import (
	"github.com/shadergraph/core/graph"
	"github.com/shadergraph/core/graph/paramtext"
)

// IsNoop reports whether applying cmd would have no observable effect on
// the graph. update_param, update_frame, move_nodes, move_frames,
// update_node_io and replace_node_io can be noops, when the value they set
// structurally equals what the command captured as already there; every
// other kind never is. History layers use this to skip recording a no-op
// edit.
func IsNoop(cmd Command) bool {
	switch cmd.Kind {
	case KindUpdateParam:
		p := cmd.UpdateParam
		if !p.HadPrevious {
			return p.Value == nil
		}
		return paramtext.Equal(p.Previous, p.Value)
	case KindUpdateFrame:
		p := cmd.UpdateFrame
		u, prev := p.Update, p.Previous
		if u.Title != nil && (prev.Title == nil || *u.Title != *prev.Title) {
			return false
		}
		if u.Size != nil && (prev.Size == nil || *u.Size != *prev.Size) {
			return false
		}
		if u.Collapsed != nil && (prev.Collapsed == nil || *u.Collapsed != *prev.Collapsed) {
			return false
		}
		if u.ExposedInputs != nil && !socketIDsEqual(u.ExposedInputs, prev.ExposedInputs) {
			return false
		}
		if u.ExposedOutputs != nil && !socketIDsEqual(u.ExposedOutputs, prev.ExposedOutputs) {
			return false
		}
		return true
	case KindMoveNodes:
		p := cmd.MoveNodes
		for id, pos := range p.Positions {
			if prev, ok := p.Previous[id]; !ok || prev != pos {
				return false
			}
		}
		return true
	case KindMoveFrames:
		p := cmd.MoveFrames
		for id, pos := range p.Positions {
			if prev, ok := p.Previous[id]; !ok || prev != pos {
				return false
			}
		}
		return true
	case KindUpdateNodeIO:
		p := cmd.UpdateNodeIO
		return paramtext.Equal(p.Sockets, p.Previous)
	case KindReplaceNodeIO:
		p := cmd.ReplaceNodeIO
		return socketIDsEqual(p.NewInputs, p.PrevInputs) &&
			socketIDsEqual(p.NewOutputs, p.PrevOutputs) &&
			paramtext.Equal(p.Sockets, p.PrevSockets)
	default:
		return false
	}
}

func socketIDsEqual(a, b []graph.SocketId) bool {
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

// CommandAffectsExecution reports whether cmd belongs to the fixed set
// §4.4 names — add_wire, remove_wire, remove_node, update_param,
// update_node_io, replace_node_io — that can change the value the
// execution engine would compute for some node. add_node is excluded: a
// brand-new node has no prior cached value for anything to invalidate.
// Every other kind (move/frame/cosmetic edits) is excluded too, since the
// engine's dirty set never needs to see them. A command that turns out
// to be a noop never affects execution regardless of its kind.
func CommandAffectsExecution(cmd Command) bool {
	if IsNoop(cmd) {
		return false
	}
	switch cmd.Kind {
	case KindAddWire, KindRemoveWire, KindRemoveNode, KindUpdateParam, KindUpdateNodeIO, KindReplaceNodeIO:
		return true
	default:
		return false
	}
}
