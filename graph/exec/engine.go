package exec

import (
	"context"
	"time"

	"github.com/shadergraph/core/graph"
	"github.com/shadergraph/core/graph/obs"
)

// Engine evaluates sockets against a graph.Graph and a State cache. It
// holds no graph-specific data itself — the same Engine can evaluate any
// number of (Graph, State) pairs — only the Resolver and the optional
// observability hooks.
type Engine struct {
	resolver Resolver
	metrics  *Metrics
	emitter  obs.Emitter
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithMetrics attaches Prometheus reporting to every evaluation.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithEmitter attaches an observability sink that receives a
// "node_evaluated" event for each node recomputed (including one settled
// with a runtime error) and a "node_evaluation_failed" event for a
// structural error that aborts the evaluation. Cache hits emit nothing.
func WithEmitter(em obs.Emitter) Option {
	return func(e *Engine) { e.emitter = em }
}

// NewEngine returns an Engine that resolves node kinds through resolver.
func NewEngine(resolver Resolver, opts ...Option) *Engine {
	e := &Engine{resolver: resolver, emitter: obs.NewNullEmitter()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NodeTiming records one node's contribution to an EvaluateWithStats
// call: how long its Compute ran (zero for a cache hit, since nothing
// ran) and whether it was served from cache at all.
type NodeTiming struct {
	NodeID     graph.NodeId
	Kind       string
	DurationMs float64
	CacheHit   bool
}

// Stats summarizes one EvaluateWithStats call.
type Stats struct {
	TotalMS     float64
	CacheHits   int
	CacheMisses int
	NodeTimings []NodeTiming
}

// EvaluateSocket returns target's current value, recomputing exactly the
// nodes State considers dirty along target's upstream dependency chain
// and reusing every other cached output.
func (e *Engine) EvaluateSocket(ctx context.Context, g graph.Graph, state *State, target graph.SocketId) (interface{}, error) {
	v, _, err := e.evaluate(ctx, g, state, target)
	return v, err
}

// EvaluateWithStats behaves like EvaluateSocket but also reports how many
// nodes were actually recomputed versus served from cache.
func (e *Engine) EvaluateWithStats(ctx context.Context, g graph.Graph, state *State, target graph.SocketId) (interface{}, Stats, error) {
	return e.evaluate(ctx, g, state, target)
}

func (e *Engine) evaluate(ctx context.Context, g graph.Graph, state *State, target graph.SocketId) (interface{}, Stats, error) {
	var stats Stats
	evalStart := time.Now()

	targetSock, ok := g.Socket(target)
	if !ok {
		return nil, stats, &graph.MissingSocketError{SocketID: target}
	}

	upstream := graph.UpstreamClosure(g, targetSock.NodeID)
	order, err := graph.TopoSortSubgraph(g, upstream)
	if err != nil {
		return nil, stats, err
	}

	for _, nodeID := range order {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		node, ok := g.Node(nodeID)
		if !ok {
			return nil, stats, &graph.MissingNodeError{NodeID: nodeID}
		}

		if e.nodeSatisfiedByCache(state, node) {
			stats.CacheHits++
			e.metrics.observeCacheHit()
			stats.NodeTimings = append(stats.NodeTimings, NodeTiming{
				NodeID: node.ID, Kind: node.Kind, CacheHit: true,
			})
			continue
		}
		e.metrics.observeCacheMiss()
		stats.CacheMisses++

		duration, err := e.evaluateNode(ctx, g, state, node)
		stats.NodeTimings = append(stats.NodeTimings, NodeTiming{
			NodeID: node.ID, Kind: node.Kind, DurationMs: float64(duration.Microseconds()) / 1000,
		})
		if err != nil {
			e.emitter.Emit(obs.Event{
				GraphID: string(g.ID()),
				NodeID:  string(nodeID),
				Msg:     "node_evaluation_failed",
				Meta:    map[string]interface{}{"error": err.Error()},
			})
			return nil, stats, err
		}
		e.emitter.Emit(obs.Event{GraphID: string(g.ID()), NodeID: string(nodeID), Msg: "node_evaluated"})
	}

	value, ok := state.CachedOutput(targetSock.NodeID, target)
	stats.TotalMS = float64(time.Since(evalStart).Microseconds()) / 1000
	if !ok {
		return nil, stats, &graph.MissingSocketError{SocketID: target}
	}
	return value, stats, nil
}

func (e *Engine) nodeSatisfiedByCache(state *State, node graph.Node) bool {
	if state.IsDirty(node.ID) {
		return false
	}
	for _, socketID := range node.Outputs {
		if _, ok := state.CachedOutput(node.ID, socketID); !ok {
			return false
		}
	}
	return true
}

// bindSocketKeys checks socketIDs (one direction — all of a node's
// inputs, or all of its outputs) against defKeys, the matching side of a
// NodeDefinition, and returns the name->socket-id mapping if they agree.
// It enforces step 3 of §4.3's evaluation algorithm: no two of the
// node's sockets on this side may share a name (DuplicateSocketKey), no
// socket name may be absent from the definition (UnknownSocketKey), and
// every key the definition declares must have a matching socket
// (MissingSocketForDefinition).
func bindSocketKeys(g graph.Graph, nodeID graph.NodeId, socketIDs []graph.SocketId, defKeys []string) (map[string]graph.SocketId, error) {
	byName := make(map[string]graph.SocketId, len(socketIDs))
	for _, socketID := range socketIDs {
		sock, ok := g.Socket(socketID)
		if !ok {
			return nil, &graph.MissingSocketError{SocketID: socketID}
		}
		if _, dup := byName[sock.Name]; dup {
			return nil, &DuplicateSocketKeyError{NodeID: nodeID, Key: sock.Name}
		}
		byName[sock.Name] = socketID
	}
	declared := make(map[string]struct{}, len(defKeys))
	for _, key := range defKeys {
		declared[key] = struct{}{}
	}
	for name := range byName {
		if _, ok := declared[name]; !ok {
			return nil, &UnknownSocketKeyError{NodeID: nodeID, Key: name}
		}
	}
	for _, key := range defKeys {
		if _, ok := byName[key]; !ok {
			return nil, &MissingSocketForDefinitionError{NodeID: nodeID, Key: key}
		}
	}
	return byName, nil
}

// evaluateNode computes node's outputs, or — for a runtime failure
// (a required input with nothing feeding it, or compute itself erroring)
// — settles it to null outputs and records the error on state without
// returning an error itself; only a structural problem (bad resolver
// wiring, multiple wires into one input, an inconsistent socket/key
// mapping) is returned as an error, which aborts the whole evaluation.
// The returned duration covers only the time Compute itself ran — zero
// for every path that settles the node without calling it.
func (e *Engine) evaluateNode(ctx context.Context, g graph.Graph, state *State, node graph.Node) (time.Duration, error) {
	nullOutputs := func() map[graph.SocketId]interface{} {
		out := make(map[graph.SocketId]interface{}, len(node.Outputs))
		for _, id := range node.Outputs {
			out[id] = nil
		}
		return out
	}

	def, ok := e.resolver.Resolve(node.Kind)
	if !ok {
		e.metrics.observeError("structural")
		return 0, &MissingNodeDefinitionError{NodeID: node.ID, Kind: node.Kind}
	}

	if _, err := bindSocketKeys(g, node.ID, node.Inputs, def.Inputs); err != nil {
		e.metrics.observeError("structural")
		return 0, err
	}
	outputsByName, err := bindSocketKeys(g, node.ID, node.Outputs, def.Outputs)
	if err != nil {
		e.metrics.observeError("structural")
		return 0, err
	}

	inputs := make(map[string]interface{}, len(node.Inputs))
	var runtimeErr error
	for _, socketID := range node.Inputs {
		sock, _ := g.Socket(socketID)
		wires := g.WiresIncidentOnSocket(socketID)
		switch {
		case len(wires) > 1:
			e.metrics.observeError("structural")
			return 0, &MultipleInputWiresError{SocketID: socketID, Count: len(wires)}
		case len(wires) == 1:
			fromSock, ok := g.Socket(wires[0].FromSocketID)
			if !ok {
				return 0, &graph.MissingSocketError{SocketID: wires[0].FromSocketID}
			}
			v, _ := state.CachedOutput(fromSock.NodeID, fromSock.ID)
			inputs[sock.Name] = v
		case sock.HasDefault:
			inputs[sock.Name] = sock.DefaultValue
		case sock.Required:
			runtimeErr = &MissingRequiredInputError{NodeID: node.ID, SocketName: sock.Name}
			inputs[sock.Name] = nil
		default:
			inputs[sock.Name] = nil
		}
	}

	if runtimeErr != nil {
		e.metrics.observeError("runtime")
		state.SettleWithError(node.ID, nullOutputs(), runtimeErr)
		return 0, nil
	}

	start := time.Now()
	result, err := def.Compute(ctx, NodeContext{
		NodeID: node.ID,
		Kind:   node.Kind,
		Params: node.Params,
		Inputs: inputs,
	})
	duration := time.Since(start)
	e.metrics.observeNodeEvaluated(node.Kind, start)
	if err != nil {
		e.metrics.observeError("runtime")
		wrapped := &NodeComputeFailedError{NodeID: node.ID, Err: err}
		state.SettleWithError(node.ID, nullOutputs(), wrapped)
		return duration, nil
	}

	for key := range result {
		if _, ok := outputsByName[key]; !ok {
			return duration, &UnknownSocketKeyError{NodeID: node.ID, Key: key}
		}
	}

	outputs := make(map[graph.SocketId]interface{}, len(outputsByName))
	for name, socketID := range outputsByName {
		value, ok := result[name]
		if !ok {
			outputs[socketID] = nil
			continue
		}
		outputs[socketID] = value
	}
	state.ClearDirty(node.ID, outputs)
	return duration, nil
}
