package graph

import "github.com/shadergraph/core/graph/registry"

// WarningKind classifies a non-fatal graph issue: one that ValidateGraph
// does not reject, because the graph is still structurally sound, but
// that almost certainly reflects an authoring mistake worth surfacing in
// an editor.
type WarningKind string

const (
	// WarningMissingRequiredInput fires for a Required input socket with
	// neither an incident wire nor a usable default value.
	WarningMissingRequiredInput WarningKind = "missing_required_input"
	// WarningIncompatibleSocketTypes fires for a wire whose endpoint types
	// are no longer compatible — reachable via ReplaceNodeIO, which can
	// change a kept socket's DataType without re-checking its wires.
	WarningIncompatibleSocketTypes WarningKind = "incompatible_socket_types"
	// WarningUnusedNode fires for a node that has at least one socket but
	// no incident wire on any of them — it contributes nothing to any
	// output. A node with no sockets at all gets no warning.
	WarningUnusedNode WarningKind = "unused_node"
)

// Warning is one non-fatal issue found by CollectWarnings.
type Warning struct {
	Kind     WarningKind
	NodeID   NodeId
	SocketID SocketId
	Message  string
}

// CollectWarnings scans g for non-fatal authoring issues. Unlike
// ValidateGraph, a non-empty result does not mean the graph is unsafe to
// evaluate; it means an editor should flag these nodes/sockets to the
// user.
func CollectWarnings(g Graph) []Warning {
	var warnings []Warning

	for _, s := range g.Sockets() {
		if s.Direction != DirectionInput || !s.Required {
			continue
		}
		if len(g.WiresIncidentOnSocket(s.ID)) > 0 {
			continue
		}
		if s.HasDefault {
			continue
		}
		warnings = append(warnings, Warning{
			Kind:     WarningMissingRequiredInput,
			NodeID:   s.NodeID,
			SocketID: s.ID,
			Message:  "required input " + string(s.ID) + " has no wire and no default value",
		})
	}

	for _, w := range g.Wires() {
		from, fok := g.sockets[w.FromSocketID]
		to, tok := g.sockets[w.ToSocketID]
		if !fok || !tok {
			continue
		}
		if !registry.IsCompatible(from.DataType, to.DataType) {
			warnings = append(warnings, Warning{
				Kind:     WarningIncompatibleSocketTypes,
				SocketID: w.ToSocketID,
				Message:  "wire " + string(w.ID) + " carries " + string(from.DataType) + " into a " + string(to.DataType) + " socket",
			})
		}
	}

	for _, n := range g.Nodes() {
		used := false
		for _, id := range n.Inputs {
			if len(g.WiresIncidentOnSocket(id)) > 0 {
				used = true
				break
			}
		}
		if !used {
			for _, id := range n.Outputs {
				if len(g.WiresIncidentOnSocket(id)) > 0 {
					used = true
					break
				}
			}
		}
		if !used && (len(n.Inputs) > 0 || len(n.Outputs) > 0) {
			warnings = append(warnings, Warning{
				Kind:    WarningUnusedNode,
				NodeID:  n.ID,
				Message: "node " + string(n.ID) + " has no connected sockets",
			})
		}
	}

	return warnings
}
