// Command shaderdemo builds a couple of small shader graphs by hand and
// runs them through the execution engine, showing the cache/dirty
// behavior and the command/history undo path along the way.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shadergraph/core/graph"
	"github.com/shadergraph/core/graph/command"
	"github.com/shadergraph/core/graph/exec"
	"github.com/shadergraph/core/graph/obs"
	"github.com/shadergraph/core/graph/registry"
)

func floatSocket(id graph.SocketId, nodeID graph.NodeId, name string, dir graph.Direction) graph.Socket {
	return graph.Socket{
		ID:        id,
		NodeID:    nodeID,
		Name:      name,
		Direction: dir,
		DataType:  registry.Float,
		Required:  dir == graph.DirectionInput,
	}
}

func resolver() exec.Resolver {
	return exec.MapResolver{
		"const": exec.NodeDefinition{
			Outputs: []string{"out"},
			Compute: func(_ context.Context, nc exec.NodeContext) (map[string]interface{}, error) {
				v, _ := nc.Params["value"].(float64)
				return map[string]interface{}{"out": v}, nil
			},
		},
		"inc": exec.NodeDefinition{
			Inputs:  []string{"in"},
			Outputs: []string{"out"},
			Compute: func(_ context.Context, nc exec.NodeContext) (map[string]interface{}, error) {
				in, _ := nc.Inputs["in"].(float64)
				return map[string]interface{}{"out": in + 1}, nil
			},
		},
		"sum2": exec.NodeDefinition{
			Inputs:  []string{"left", "right"},
			Outputs: []string{"out"},
			Compute: func(_ context.Context, nc exec.NodeContext) (map[string]interface{}, error) {
				left, _ := nc.Inputs["left"].(float64)
				right, _ := nc.Inputs["right"].(float64)
				return map[string]interface{}{"out": left + right}, nil
			},
		},
		"pass": exec.NodeDefinition{
			Inputs:  []string{"in"},
			Outputs: []string{"out"},
			Compute: func(_ context.Context, nc exec.NodeContext) (map[string]interface{}, error) {
				return map[string]interface{}{"out": nc.Inputs["in"]}, nil
			},
		},
		"explode": exec.NodeDefinition{
			Inputs:  []string{"in"},
			Outputs: []string{"out"},
			Compute: func(_ context.Context, nc exec.NodeContext) (map[string]interface{}, error) {
				return nil, fmt.Errorf("shader compile failed: divide by zero")
			},
		},
	}
}

// linearChain builds A(const=2) -> B(inc) -> C(inc), matching the first
// seed scenario: evaluating C.out recomputes all three nodes once, and a
// second identical evaluation is served entirely from cache.
func linearChain() (graph.Graph, graph.SocketId) {
	g := graph.CreateGraph("g-linear")

	aOut := graph.SocketId("a.out")
	g, err := graph.AddNode(g, graph.Node{ID: "A", Kind: "const", Params: map[string]interface{}{"value": 2.0}, Outputs: []graph.SocketId{aOut}},
		[]graph.Socket{floatSocket(aOut, "A", "out", graph.DirectionOutput)})
	must(err)

	bIn, bOut := graph.SocketId("b.in"), graph.SocketId("b.out")
	g, err = graph.AddNode(g, graph.Node{ID: "B", Kind: "inc", Inputs: []graph.SocketId{bIn}, Outputs: []graph.SocketId{bOut}},
		[]graph.Socket{
			floatSocket(bIn, "B", "in", graph.DirectionInput),
			floatSocket(bOut, "B", "out", graph.DirectionOutput),
		})
	must(err)

	cIn, cOut := graph.SocketId("c.in"), graph.SocketId("c.out")
	g, err = graph.AddNode(g, graph.Node{ID: "C", Kind: "inc", Inputs: []graph.SocketId{cIn}, Outputs: []graph.SocketId{cOut}},
		[]graph.Socket{
			floatSocket(cIn, "C", "in", graph.DirectionInput),
			floatSocket(cOut, "C", "out", graph.DirectionOutput),
		})
	must(err)

	g, err = graph.AddWire(g, "w-ab", aOut, bIn)
	must(err)
	g, err = graph.AddWire(g, "w-bc", bOut, cIn)
	must(err)

	return g, cOut
}

// diamond builds A(const=2), B(inc), C(inc), D(sum2) wired A->B, A->C,
// B->D.left, C->D.right, matching the shared-upstream seed scenario: D.out
// evaluates to 6 and A is computed exactly once even though both B and C
// depend on it.
func diamond() (graph.Graph, graph.SocketId) {
	g := graph.CreateGraph("g-diamond")

	aOut := graph.SocketId("a.out")
	g, err := graph.AddNode(g, graph.Node{ID: "A", Kind: "const", Params: map[string]interface{}{"value": 2.0}, Outputs: []graph.SocketId{aOut}},
		[]graph.Socket{floatSocket(aOut, "A", "out", graph.DirectionOutput)})
	must(err)

	bIn, bOut := graph.SocketId("b.in"), graph.SocketId("b.out")
	g, err = graph.AddNode(g, graph.Node{ID: "B", Kind: "inc", Inputs: []graph.SocketId{bIn}, Outputs: []graph.SocketId{bOut}},
		[]graph.Socket{
			floatSocket(bIn, "B", "in", graph.DirectionInput),
			floatSocket(bOut, "B", "out", graph.DirectionOutput),
		})
	must(err)

	cIn, cOut := graph.SocketId("c.in"), graph.SocketId("c.out")
	g, err = graph.AddNode(g, graph.Node{ID: "C", Kind: "inc", Inputs: []graph.SocketId{cIn}, Outputs: []graph.SocketId{cOut}},
		[]graph.Socket{
			floatSocket(cIn, "C", "in", graph.DirectionInput),
			floatSocket(cOut, "C", "out", graph.DirectionOutput),
		})
	must(err)

	dLeft, dRight, dOut := graph.SocketId("d.left"), graph.SocketId("d.right"), graph.SocketId("d.out")
	g, err = graph.AddNode(g, graph.Node{ID: "D", Kind: "sum2", Inputs: []graph.SocketId{dLeft, dRight}, Outputs: []graph.SocketId{dOut}},
		[]graph.Socket{
			floatSocket(dLeft, "D", "left", graph.DirectionInput),
			floatSocket(dRight, "D", "right", graph.DirectionInput),
			floatSocket(dOut, "D", "out", graph.DirectionOutput),
		})
	must(err)

	g, err = graph.AddWire(g, "w-ab", aOut, bIn)
	must(err)
	g, err = graph.AddWire(g, "w-ac", aOut, cIn)
	must(err)
	g, err = graph.AddWire(g, "w-bd", bOut, dLeft)
	must(err)
	g, err = graph.AddWire(g, "w-cd", cOut, dRight)
	must(err)

	return g, dOut
}

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "shaderdemo: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	fmt.Println("=== Linear chain: A(const=2) -> B(inc) -> C(inc) ===")
	runLinear()

	fmt.Println()
	fmt.Println("=== Diamond: A feeds B and C, both feed D(sum2) ===")
	runDiamond()

	fmt.Println()
	fmt.Println("=== Runtime failure: missing required input settles to null ===")
	runMissingInput()

	fmt.Println()
	fmt.Println("=== Runtime failure: a failing compute nulls its node but not its neighbors ===")
	runComputeFailure()

	fmt.Println()
	fmt.Println("=== Command/history: apply a param edit, then undo it ===")
	runHistory()
}

func runLinear() {
	g, target := linearChain()
	engine := exec.NewEngine(resolver())
	state := exec.NewState()
	ctx := context.Background()

	v, stats, err := engine.EvaluateWithStats(ctx, g, state, target)
	must(err)
	fmt.Printf("C.out = %v (cache misses: %d, cache hits: %d)\n", v, stats.CacheMisses, stats.CacheHits)

	v, stats, err = engine.EvaluateWithStats(ctx, g, state, target)
	must(err)
	fmt.Printf("C.out = %v again (cache misses: %d, cache hits: %d) — fully cached\n", v, stats.CacheMisses, stats.CacheHits)
}

func runDiamond() {
	g, target := diamond()
	engine := exec.NewEngine(resolver())
	state := exec.NewState()
	ctx := context.Background()

	v, stats, err := engine.EvaluateWithStats(ctx, g, state, target)
	must(err)
	fmt.Printf("D.out = %v (cache misses: %d, cache hits: %d) — A computed once despite two consumers\n", v, stats.CacheMisses, stats.CacheHits)
}

func runMissingInput() {
	g := graph.CreateGraph("g-missing")
	pIn, pOut := graph.SocketId("p.in"), graph.SocketId("p.out")
	g, err := graph.AddNode(g, graph.Node{ID: "P", Kind: "pass", Inputs: []graph.SocketId{pIn}, Outputs: []graph.SocketId{pOut}},
		[]graph.Socket{
			floatSocket(pIn, "P", "in", graph.DirectionInput),
			floatSocket(pOut, "P", "out", graph.DirectionOutput),
		})
	must(err)

	engine := exec.NewEngine(resolver(), exec.WithEmitter(obs.NewLogEmitter(os.Stdout, false)))
	state := exec.NewState()

	v, err := engine.EvaluateSocket(context.Background(), g, state, pOut)
	must(err)
	fmt.Printf("P.out = %v, recorded node errors: %v\n", v, state.GetNodeErrors())
}

func runComputeFailure() {
	g := graph.CreateGraph("g-explode")

	aOut := graph.SocketId("a.out")
	g, err := graph.AddNode(g, graph.Node{ID: "A", Kind: "const", Params: map[string]interface{}{"value": 2.0}, Outputs: []graph.SocketId{aOut}},
		[]graph.Socket{floatSocket(aOut, "A", "out", graph.DirectionOutput)})
	must(err)

	eIn, eOut := graph.SocketId("e.in"), graph.SocketId("e.out")
	g, err = graph.AddNode(g, graph.Node{ID: "E", Kind: "explode", Inputs: []graph.SocketId{eIn}, Outputs: []graph.SocketId{eOut}},
		[]graph.Socket{
			floatSocket(eIn, "E", "in", graph.DirectionInput),
			floatSocket(eOut, "E", "out", graph.DirectionOutput),
		})
	must(err)

	cIn, cOut := graph.SocketId("c.in"), graph.SocketId("c.out")
	g, err = graph.AddNode(g, graph.Node{ID: "C", Kind: "inc", Inputs: []graph.SocketId{cIn}, Outputs: []graph.SocketId{cOut}},
		[]graph.Socket{
			floatSocket(cIn, "C", "in", graph.DirectionInput),
			floatSocket(cOut, "C", "out", graph.DirectionOutput),
		})
	must(err)

	g, err = graph.AddWire(g, "w-ae", aOut, eIn)
	must(err)
	g, err = graph.AddWire(g, "w-ec", eOut, cIn)
	must(err)

	engine := exec.NewEngine(resolver())
	state := exec.NewState()

	v, err := engine.EvaluateSocket(context.Background(), g, state, cOut)
	must(err)
	fmt.Printf("C.out = %v (E failed, its null fed C like any other value), node errors: %v\n", v, state.GetNodeErrors())
}

func runHistory() {
	g, _ := linearChain()

	cmd, err := command.MakeUpdateParamCommand(g, "A", "value", 5.0)
	must(err)
	entry := command.Entry{Label: "set A to 5", Commands: []command.Command{cmd}}

	edited, err := command.ApplyEntry(g, entry)
	must(err)

	engine := exec.NewEngine(resolver())
	state := exec.NewState()
	targetOut := graph.SocketId("c.out")

	v, _, err := engine.EvaluateWithStats(context.Background(), edited, state, targetOut)
	must(err)
	fmt.Printf("after editing A to 5: C.out = %v\n", v)

	undo, err := command.InverseEntry(entry)
	must(err)
	reverted, err := command.ApplyEntry(edited, undo)
	must(err)

	state = exec.NewState()
	v, _, err = engine.EvaluateWithStats(context.Background(), reverted, state, targetOut)
	must(err)
	fmt.Printf("after %q: C.out = %v\n", undo.Label, v)
}
