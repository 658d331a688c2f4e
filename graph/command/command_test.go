package command

import (
	"testing"

	"github.com/shadergraph/core/graph"
	"github.com/shadergraph/core/graph/registry"
)

func floatSocket(id graph.SocketId, nodeID graph.NodeId, name string, dir graph.Direction) graph.Socket {
	return graph.Socket{ID: id, NodeID: nodeID, Name: name, Direction: dir, DataType: registry.Float, Required: dir == graph.DirectionInput}
}

// linearChain builds the same A->B->C topology the graph package's own
// tests use, so a Command test can exercise undo/redo against a graph
// with real wires and params.
func linearChain(t *testing.T) graph.Graph {
	t.Helper()
	g := graph.CreateGraph("g1")
	g, err := graph.AddNode(g, graph.Node{ID: "A", Kind: "const", Params: map[string]interface{}{"value": 2.0}, Outputs: []graph.SocketId{"a.out"}},
		[]graph.Socket{floatSocket("a.out", "A", "out", graph.DirectionOutput)})
	mustT(t, err)
	g, err = graph.AddNode(g, graph.Node{ID: "B", Kind: "inc", Inputs: []graph.SocketId{"b.in"}, Outputs: []graph.SocketId{"b.out"}},
		[]graph.Socket{floatSocket("b.in", "B", "in", graph.DirectionInput), floatSocket("b.out", "B", "out", graph.DirectionOutput)})
	mustT(t, err)
	g, err = graph.AddWire(g, "w-ab", "a.out", "b.in")
	mustT(t, err)
	return g
}

func mustT(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
}

// assertGraphsEqual compares two graphs via their Document projection:
// node count, each node's Kind and Position, and the wire and frame
// counts. Sockets, params, wire endpoints and frame fields are not
// compared.
func assertGraphsEqual(t *testing.T, got, want graph.Graph, msg string) {
	t.Helper()
	gd, wd := graph.GraphToDocument(got), graph.GraphToDocument(want)
	if len(gd.Nodes) != len(wd.Nodes) {
		t.Fatalf("%s: node count %d != %d", msg, len(gd.Nodes), len(wd.Nodes))
	}
	for _, wn := range wd.Nodes {
		gn, ok := got.Node(wn.ID)
		if !ok {
			t.Fatalf("%s: node %s missing", msg, wn.ID)
		}
		if gn.Kind != wn.Kind || gn.Position != wn.Position {
			t.Fatalf("%s: node %s differs: %+v vs %+v", msg, wn.ID, gn, wn)
		}
	}
	if len(gd.Wires) != len(wd.Wires) {
		t.Fatalf("%s: wire count %d != %d (%v vs %v)", msg, len(gd.Wires), len(wd.Wires), gd.Wires, wd.Wires)
	}
	if len(gd.Frames) != len(wd.Frames) {
		t.Fatalf("%s: frame count %d != %d", msg, len(gd.Frames), len(wd.Frames))
	}
}

func TestApplyDispatchesToKernelOperations(t *testing.T) {
	g := linearChain(t)
	cmd := MakeAddWireCommand("w-new", "a.out", "b.in")
	// w-new duplicates an existing connection target but AddWire itself
	// enforces the connection cap, so Apply must surface the kernel's
	// own error rather than silently succeeding.
	_, err := Apply(g, cmd)
	if err == nil {
		t.Fatalf("expected Apply to surface AddWire's connection-limit error")
	}
}

func TestAddNodeInverseIsRemoveNode(t *testing.T) {
	g := linearChain(t)
	node := graph.Node{ID: "C", Kind: "inc", Inputs: []graph.SocketId{"c.in"}, Outputs: []graph.SocketId{"c.out"}}
	sockets := []graph.Socket{floatSocket("c.in", "C", "in", graph.DirectionInput), floatSocket("c.out", "C", "out", graph.DirectionOutput)}
	cmd := MakeAddNodeCommand(node, sockets)

	after, err := Apply(g, cmd)
	if err != nil {
		t.Fatalf("Apply(add_node): %v", err)
	}
	inv, err := InverseCommands(cmd)
	if err != nil {
		t.Fatalf("InverseCommands: %v", err)
	}
	restored := after
	for _, ic := range inv {
		restored, err = Apply(restored, ic)
		if err != nil {
			t.Fatalf("Apply(inverse): %v", err)
		}
	}
	assertGraphsEqual(t, restored, g, "add_node undo")
}

func TestRemoveNodeInverseRestoresIncidentWires(t *testing.T) {
	g := linearChain(t)
	cmd, err := MakeRemoveNodeCommand(g, "B")
	if err != nil {
		t.Fatalf("MakeRemoveNodeCommand: %v", err)
	}

	after, err := Apply(g, cmd)
	if err != nil {
		t.Fatalf("Apply(remove_node): %v", err)
	}
	if _, ok := after.Node("B"); ok {
		t.Fatalf("node B should be gone after apply")
	}

	inv, err := InverseCommands(cmd)
	if err != nil {
		t.Fatalf("InverseCommands: %v", err)
	}
	restored := after
	for _, ic := range inv {
		restored, err = Apply(restored, ic)
		if err != nil {
			t.Fatalf("Apply(inverse): %v", err)
		}
	}
	assertGraphsEqual(t, restored, g, "remove_node undo")
	if len(restored.Wires()) != 1 {
		t.Fatalf("expected the wire into B to be restored, got %d wires", len(restored.Wires()))
	}
}

func TestAddWireInverseIsRemoveWire(t *testing.T) {
	g := linearChain(t)
	g, err := graph.AddNode(g, graph.Node{ID: "C", Kind: "inc", Inputs: []graph.SocketId{"c.in"}, Outputs: []graph.SocketId{"c.out"}},
		[]graph.Socket{floatSocket("c.in", "C", "in", graph.DirectionInput), floatSocket("c.out", "C", "out", graph.DirectionOutput)})
	mustT(t, err)

	cmd := MakeAddWireCommand("w-bc", "b.out", "c.in")
	before := g
	after, err := Apply(g, cmd)
	if err != nil {
		t.Fatalf("Apply(add_wire): %v", err)
	}
	inv, err := InverseCommands(cmd)
	if err != nil {
		t.Fatalf("InverseCommands: %v", err)
	}
	restored, err := Apply(after, inv[0])
	if err != nil {
		t.Fatalf("Apply(inverse): %v", err)
	}
	assertGraphsEqual(t, restored, before, "add_wire undo")
}

func TestUpdateParamInverseAndNoop(t *testing.T) {
	g := linearChain(t)

	cmd, err := MakeUpdateParamCommand(g, "A", "value", 5.0)
	if err != nil {
		t.Fatalf("MakeUpdateParamCommand: %v", err)
	}
	if IsNoop(cmd) {
		t.Fatalf("changing 2.0 -> 5.0 should not be a noop")
	}

	after, err := Apply(g, cmd)
	if err != nil {
		t.Fatalf("Apply(update_param): %v", err)
	}
	n, _ := after.Node("A")
	if n.Params["value"] != 5.0 {
		t.Fatalf("param not updated: %v", n.Params)
	}

	inv, err := InverseCommands(cmd)
	if err != nil {
		t.Fatalf("InverseCommands: %v", err)
	}
	restored, err := Apply(after, inv[0])
	if err != nil {
		t.Fatalf("Apply(inverse): %v", err)
	}
	assertGraphsEqual(t, restored, g, "update_param undo")

	sameCmd, err := MakeUpdateParamCommand(g, "A", "value", 2.0)
	if err != nil {
		t.Fatalf("MakeUpdateParamCommand: %v", err)
	}
	if !IsNoop(sameCmd) {
		t.Fatalf("setting value to its current value should be a noop")
	}
}

func TestMoveNodesNoopDetection(t *testing.T) {
	g := linearChain(t)
	n, _ := g.Node("A")

	same, err := MakeMoveNodesCommand(g, map[graph.NodeId]graph.Position{"A": n.Position})
	if err != nil {
		t.Fatalf("MakeMoveNodesCommand: %v", err)
	}
	if !IsNoop(same) {
		t.Fatalf("moving a node to its current position should be a noop")
	}

	moved, err := MakeMoveNodesCommand(g, map[graph.NodeId]graph.Position{"A": {X: 10, Y: 10}})
	if err != nil {
		t.Fatalf("MakeMoveNodesCommand: %v", err)
	}
	if IsNoop(moved) {
		t.Fatalf("moving a node to a new position should not be a noop")
	}
}

func TestCommandAffectsExecution(t *testing.T) {
	g := linearChain(t)

	paramCmd, err := MakeUpdateParamCommand(g, "A", "value", 9.0)
	mustT(t, err)
	if !CommandAffectsExecution(paramCmd) {
		t.Fatalf("a real param change should affect execution")
	}

	n, _ := g.Node("A")
	moveCmd, err := MakeMoveNodesCommand(g, map[graph.NodeId]graph.Position{"A": {X: n.Position.X + 1, Y: n.Position.Y}})
	mustT(t, err)
	if CommandAffectsExecution(moveCmd) {
		t.Fatalf("moving a node should never affect execution")
	}

	noopParam, err := MakeUpdateParamCommand(g, "A", "value", 2.0)
	mustT(t, err)
	if CommandAffectsExecution(noopParam) {
		t.Fatalf("a noop param change should not affect execution")
	}

	node := graph.Node{ID: "C", Kind: "inc", Inputs: []graph.SocketId{"c.in"}, Outputs: []graph.SocketId{"c.out"}}
	sockets := []graph.Socket{floatSocket("c.in", "C", "in", graph.DirectionInput), floatSocket("c.out", "C", "out", graph.DirectionOutput)}
	addCmd := MakeAddNodeCommand(node, sockets)
	if CommandAffectsExecution(addCmd) {
		t.Fatalf("adding a brand-new node has no prior cached value to invalidate")
	}
}

func TestReplaceNodeIOInverseRestoresDroppedWire(t *testing.T) {
	g := linearChain(t)
	b, _ := g.Node("B")
	bOut := mustSocket(t, g, "b.out")

	newInputs := []graph.SocketId{"b.in2"}
	newSockets := []graph.Socket{floatSocket("b.in2", "B", "in2", graph.DirectionInput), bOut}
	cmd, err := MakeReplaceNodeIOCommand(g, "B", newInputs, b.Outputs, newSockets, nil)
	if err != nil {
		t.Fatalf("MakeReplaceNodeIOCommand: %v", err)
	}

	after, err := Apply(g, cmd)
	if err != nil {
		t.Fatalf("Apply(replace_node_io): %v", err)
	}
	if len(after.Wires()) != 0 {
		t.Fatalf("replacing B's inputs should have dropped the wire into its old b.in socket, got %d wires", len(after.Wires()))
	}

	inv, err := InverseCommands(cmd)
	if err != nil {
		t.Fatalf("InverseCommands: %v", err)
	}
	restored := after
	for _, ic := range inv {
		restored, err = Apply(restored, ic)
		if err != nil {
			t.Fatalf("Apply(inverse): %v", err)
		}
	}
	assertGraphsEqual(t, restored, g, "replace_node_io undo")
	if len(restored.Wires()) != 1 {
		t.Fatalf("expected the dropped wire to be restored by undo, got %d", len(restored.Wires()))
	}
}

func TestReplaceNodeIONoopDetection(t *testing.T) {
	g := linearChain(t)
	n, _ := g.Node("B")
	existing, _ := g.Socket("b.in")

	cmd, err := MakeReplaceNodeIOCommand(g, "B", n.Inputs, n.Outputs, []graph.Socket{existing, mustSocket(t, g, "b.out")}, nil)
	if err != nil {
		t.Fatalf("MakeReplaceNodeIOCommand: %v", err)
	}
	if !IsNoop(cmd) {
		t.Fatalf("replacing a node's IO with an identical layout should be a noop")
	}
}

func mustSocket(t *testing.T, g graph.Graph, id graph.SocketId) graph.Socket {
	t.Helper()
	s, ok := g.Socket(id)
	if !ok {
		t.Fatalf("socket %s not found", id)
	}
	return s
}

func TestHistoryEntryAppliesAtomicallyInOrder(t *testing.T) {
	g := linearChain(t)
	paramCmd, err := MakeUpdateParamCommand(g, "A", "value", 7.0)
	mustT(t, err)
	moveCmd, err := MakeMoveNodesCommand(g, map[graph.NodeId]graph.Position{"B": {X: 100, Y: 100}})
	mustT(t, err)

	entry := Entry{Label: "edit A and move B", Commands: []Command{paramCmd, moveCmd}}
	after, err := ApplyEntry(g, entry)
	if err != nil {
		t.Fatalf("ApplyEntry: %v", err)
	}

	undo, err := InverseEntry(entry)
	if err != nil {
		t.Fatalf("InverseEntry: %v", err)
	}
	restored, err := ApplyEntry(after, undo)
	if err != nil {
		t.Fatalf("ApplyEntry(undo): %v", err)
	}
	assertGraphsEqual(t, restored, g, "entry undo")

	an, _ := restored.Node("A")
	if an.Params["value"] != 2.0 {
		t.Fatalf("param should have been restored to 2.0, got %v", an.Params["value"])
	}
	bn, _ := restored.Node("B")
	if bn.Position != (graph.Position{}) {
		t.Fatalf("node B's position should have been restored, got %+v", bn.Position)
	}
}
