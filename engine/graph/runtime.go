package graph

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vizij-ai/vizij-go-runtime/engine/diagnostics"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
	"github.com/vizij-ai/vizij-go-runtime/engine/writebatch"
)

// Runtime owns one graph's evaluation state: per-node persistent records
// that survive across ticks, the current tick's output table, and the
// WriteOps any Output nodes produced this tick.
type Runtime struct {
	states  map[string]*nodeState
	outputs map[string]map[string]value.Value
	Writes  *writebatch.WriteBatch

	epoch uint64
}

// NewRuntime returns an empty Runtime.
func NewRuntime() *Runtime {
	return &Runtime{
		states:  make(map[string]*nodeState),
		outputs: make(map[string]map[string]value.Value),
		Writes:  writebatch.New(),
	}
}

// Epoch returns the number of times AdvanceEpoch has been called.
func (r *Runtime) Epoch() uint64 { return r.epoch }

// AdvanceEpoch clears the per-tick outputs table and write batch while
// retaining node_states, and increments the epoch counter.
func (r *Runtime) AdvanceEpoch() {
	r.epoch++
	r.outputs = make(map[string]map[string]value.Value)
	r.Writes = writebatch.New()
}

// gc drops persistent state for any node id no longer present in spec.
func (r *Runtime) gc(spec GraphSpec) {
	live := make(map[string]bool, len(spec.Nodes))
	for _, n := range spec.Nodes {
		live[n.ID] = true
	}
	for id := range r.states {
		if !live[id] {
			delete(r.states, id)
		}
	}
}

// InjectExternal seeds the current tick's output table with externally
// staged values, keyed by path string under output key "value", so a
// GraphSpec can read an orchestrator-staged blackboard value by wiring an
// InputConnection to that path as its upstream node id.
func (r *Runtime) InjectExternal(staged map[string]value.Value) {
	for k, v := range staged {
		r.outputs[k] = single("value", v)
	}
}

// Output retrieves a node's named output from the current tick, if set.
func (r *Runtime) Output(nodeID, key string) (value.Value, bool) {
	m, ok := r.outputs[nodeID]
	if !ok {
		return value.Value{}, false
	}
	v, ok := m[key]
	return v, ok
}

// Evaluate computes the topological order of spec, garbage-collects state
// for removed nodes, and dispatches every node in order, reading resolved
// inputs from r.outputs as it goes. A cycle aborts the whole pass with no
// outputs set and is the only fatal evaluation error; all other per-node
// issues are recorded as diagnostics and the node falls back to its zero
// value so downstream nodes still receive a usable (if stale) input.
func (r *Runtime) Evaluate(spec GraphSpec, dt float32) (*diagnostics.Summary, error) {
	log := diagnostics.NewSummary()

	order, err := topoOrder(spec)
	if err != nil {
		return log, err
	}
	r.gc(spec)

	byID := make(map[string]NodeSpec, len(spec.Nodes))
	for _, n := range spec.Nodes {
		byID[n.ID] = n
	}

	for _, id := range order {
		n := byID[id]
		out := r.evalNode(n, dt, log)
		r.outputs[id] = out
	}
	return log, nil
}

func (r *Runtime) input(n NodeSpec, port string) (value.Value, bool) {
	conn, ok := n.Inputs[port]
	if !ok {
		return value.Value{}, false
	}
	return r.Output(conn.NodeID, conn.OutputKey)
}

// variadicInputs gathers every port matching "prefix_<index>", sorted by
// index, resolving each to its upstream value. Ports with no resolvable
// upstream are skipped.
func (r *Runtime) variadicInputs(n NodeSpec, prefix string) []value.Value {
	type entry struct {
		idx int
		v   value.Value
	}
	var entries []entry
	for port, conn := range n.Inputs {
		if !strings.HasPrefix(port, prefix+"_") {
			continue
		}
		idxStr := strings.TrimPrefix(port, prefix+"_")
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			continue
		}
		if v, ok := r.Output(conn.NodeID, conn.OutputKey); ok {
			entries = append(entries, entry{idx: idx, v: v})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })
	out := make([]value.Value, len(entries))
	for i, e := range entries {
		out[i] = e.v
	}
	return out
}

func (r *Runtime) state(id string) *nodeState {
	s, ok := r.states[id]
	if !ok {
		s = &nodeState{}
		r.states[id] = s
	}
	return s
}

func paramFloat(p *float64, def float32) float32 {
	if p == nil {
		return def
	}
	return float32(*p)
}

func paramValue(n NodeSpec) value.Value {
	if n.Params.Value != nil {
		return value.Float32(float32(*n.Params.Value))
	}
	if n.Params.Bool != nil {
		return value.BoolVal(*n.Params.Bool)
	}
	return value.Float32(0)
}

func single(key string, v value.Value) map[string]value.Value {
	return map[string]value.Value{key: v}
}

func out(v value.Value) map[string]value.Value { return single("out", v) }
