package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go-runtime/engine/diagnostics"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
)

// Diagnostics mirror to diagnostics.Logger (stderr) on Add; keep test
// output clean since this package's tests deliberately trigger several.
func init() {
	diagnostics.SetOutputDisabled()
}

func floatParam(f float64) *float64 { return &f }

func TestGraphAdd(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{ID: "a", Type: NodeConstant, Params: NodeParams{Value: floatParam(2)}},
		{ID: "b", Type: NodeConstant, Params: NodeParams{Value: floatParam(3)}},
		{ID: "c", Type: NodeAdd, Inputs: map[string]InputConnection{
			"x": {NodeID: "a", OutputKey: "out"},
			"y": {NodeID: "b", OutputKey: "out"},
		}},
	}}

	rt := NewRuntime()
	_, err := rt.Evaluate(spec, 0)
	require.NoError(t, err)

	v, ok := rt.Output("c", "out")
	require.True(t, ok)
	assert.Equal(t, value.KindFloat, v.Kind)
	assert.InDelta(t, 5.0, v.Float, 1e-6)
}

func TestGraphCycleDetected(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{ID: "a", Type: NodeAdd, Inputs: map[string]InputConnection{"x": {NodeID: "b", OutputKey: "out"}}},
		{ID: "b", Type: NodeAdd, Inputs: map[string]InputConnection{"x": {NodeID: "a", OutputKey: "out"}}},
	}}

	rt := NewRuntime()
	_, err := rt.Evaluate(spec, 0)
	require.Error(t, err)
	var cycleErr *diagnostics.CycleError
	require.ErrorAs(t, err, &cycleErr)

	_, ok := rt.Output("a", "out")
	assert.False(t, ok)
}

func TestGraphStatePersistsAcrossEpochs(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{{ID: "t", Type: NodeTime}}}
	rt := NewRuntime()

	_, err := rt.Evaluate(spec, 0.5)
	require.NoError(t, err)
	v1, _ := rt.Output("t", "out")
	assert.InDelta(t, 0.5, v1.Float, 1e-6)

	rt.AdvanceEpoch()
	_, err = rt.Evaluate(spec, 0.5)
	require.NoError(t, err)
	v2, _ := rt.Output("t", "out")
	assert.InDelta(t, 1.0, v2.Float, 1e-6)
}

func TestGraphStateGarbageCollected(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{{ID: "t", Type: NodeTime}}}
	rt := NewRuntime()
	_, err := rt.Evaluate(spec, 1.0)
	require.NoError(t, err)
	assert.Len(t, rt.states, 1)

	rt.AdvanceEpoch()
	_, err = rt.Evaluate(GraphSpec{}, 1.0)
	require.NoError(t, err)
	assert.Len(t, rt.states, 0)
}

func TestOutputNodeAppendsWrite(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{ID: "a", Type: NodeConstant, Params: NodeParams{Value: floatParam(7)}},
		{ID: "o", Type: NodeOutput, Params: NodeParams{Path: "robot/a"},
			Inputs: map[string]InputConnection{"in": {NodeID: "a", OutputKey: "out"}}},
	}}
	rt := NewRuntime()
	_, err := rt.Evaluate(spec, 0)
	require.NoError(t, err)
	require.Equal(t, 1, rt.Writes.Len())
	assert.Equal(t, "robot/a", rt.Writes.Ops()[0].Path.Format())
}

func TestInverseKinematicsUnreachableClampsToExtended(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{ID: "target", Type: NodeConstant},
		{ID: "ik", Type: NodeInverseKinematics, Params: NodeParams{
			Bone1: floatParam(1), Bone2: floatParam(1), Bone3: floatParam(0),
		}, Inputs: map[string]InputConnection{"target": {NodeID: "target", OutputKey: "out"}}},
	}}
	rt := NewRuntime()
	rt.outputs = map[string]map[string]value.Value{
		"target": {"out": value.Vec3Val([3]float32{10, 0, 0})},
	}
	n := spec.Nodes[1]
	log := diagnostics.NewSummary()
	outMap := rt.evalNode(n, 0, log)
	v := outMap["out"]
	assert.InDelta(t, 0, float64(v.Vec3[2]), 1e-4)
}

func TestTopoOrderVisitsEveryNodeExactlyOnce(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{ID: "d", Type: NodeConstant},
		{ID: "a", Type: NodeConstant},
		{ID: "c", Type: NodeAdd, Inputs: map[string]InputConnection{
			"x": {NodeID: "a", OutputKey: "out"},
			"y": {NodeID: "d", OutputKey: "out"},
		}},
		{ID: "b", Type: NodeConstant},
	}}
	order, err := topoOrder(spec)
	require.NoError(t, err)
	require.Len(t, order, 4)

	seen := make(map[string]bool, len(order))
	pos := make(map[string]int, len(order))
	for i, id := range order {
		assert.False(t, seen[id], "node %s visited twice", id)
		seen[id] = true
		pos[id] = i
	}
	assert.Less(t, pos["a"], pos["c"])
	assert.Less(t, pos["d"], pos["c"])
}

func TestGraphBooleanLogicNodes(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{ID: "t", Type: NodeConstant, Params: NodeParams{Bool: boolParam(true)}},
		{ID: "f", Type: NodeConstant, Params: NodeParams{Bool: boolParam(false)}},
		{ID: "and", Type: NodeAnd, Inputs: map[string]InputConnection{
			"x": {NodeID: "t", OutputKey: "out"}, "y": {NodeID: "f", OutputKey: "out"},
		}},
		{ID: "or", Type: NodeOr, Inputs: map[string]InputConnection{
			"x": {NodeID: "t", OutputKey: "out"}, "y": {NodeID: "f", OutputKey: "out"},
		}},
		{ID: "not", Type: NodeNot, Inputs: map[string]InputConnection{"x": {NodeID: "f", OutputKey: "out"}}},
		{ID: "xor", Type: NodeXor, Inputs: map[string]InputConnection{
			"x": {NodeID: "t", OutputKey: "out"}, "y": {NodeID: "t", OutputKey: "out"},
		}},
	}}
	rt := NewRuntime()
	_, err := rt.Evaluate(spec, 0)
	require.NoError(t, err)

	and, _ := rt.Output("and", "out")
	or, _ := rt.Output("or", "out")
	not, _ := rt.Output("not", "out")
	xor, _ := rt.Output("xor", "out")
	assert.False(t, and.Bool)
	assert.True(t, or.Bool)
	assert.True(t, not.Bool)
	assert.False(t, xor.Bool)
}

func TestGraphVec3ConstructSplitAndArith(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{ID: "v1", Type: NodeVec3, Params: NodeParams{X: floatParam(1), Y: floatParam(2), Z: floatParam(3)}},
		{ID: "v2", Type: NodeVec3, Params: NodeParams{X: floatParam(1), Y: floatParam(1), Z: floatParam(1)}},
		{ID: "sum", Type: NodeVec3Add, Inputs: map[string]InputConnection{
			"x": {NodeID: "v1", OutputKey: "out"}, "y": {NodeID: "v2", OutputKey: "out"},
		}},
		{ID: "split", Type: NodeVec3Split, Inputs: map[string]InputConnection{"x": {NodeID: "sum", OutputKey: "out"}}},
		{ID: "dot", Type: NodeVec3Dot, Inputs: map[string]InputConnection{
			"x": {NodeID: "v1", OutputKey: "out"}, "y": {NodeID: "v2", OutputKey: "out"},
		}},
	}}
	rt := NewRuntime()
	_, err := rt.Evaluate(spec, 0)
	require.NoError(t, err)

	sum, _ := rt.Output("sum", "out")
	assert.Equal(t, [3]float32{2, 3, 4}, sum.Vec3)

	x, _ := rt.Output("split", "x")
	y, _ := rt.Output("split", "y")
	z, _ := rt.Output("split", "z")
	assert.InDelta(t, 2, x.Float, 1e-6)
	assert.InDelta(t, 3, y.Float, 1e-6)
	assert.InDelta(t, 4, z.Float, 1e-6)

	dot, _ := rt.Output("dot", "out")
	assert.InDelta(t, 6, dot.Float, 1e-6) // 1*1 + 2*1 + 3*1
}

func TestBroadcastMismatchedCompositeFillsNaN(t *testing.T) {
	v3 := value.Vec3Val([3]float32{1, 2, 3})
	v4 := value.Vec4Val([4]float32{1, 2, 3, 4})
	result := broadcastBinary(v3, v4, add)

	require.Equal(t, value.KindVec3, result.Kind)
	for _, f := range result.Vec3 {
		assert.True(t, math.IsNaN(float64(f)))
	}
}

func boolParam(b bool) *bool { return &b }
