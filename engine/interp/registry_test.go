package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go-runtime/engine/value"
)

func TestRegistryLinearFloat(t *testing.T) {
	r := NewRegistry(16)
	seg := Segment{
		Variant: "Linear",
		Start:   value.Float32(0),
		End:     value.Float32(10),
		T:       0.5,
	}
	out, err := r.Sample(seg)
	require.NoError(t, err)
	assert.Equal(t, value.KindFloat, out.Kind)
	assert.InDelta(t, 5.0, out.Float, 1e-5)
}

func TestRegistryStepHoldsUntilThreshold(t *testing.T) {
	r := NewRegistry(0)
	seg := Segment{
		Variant:       "Step",
		Start:         value.Vec3Val([3]float32{1, 2, 3}),
		End:           value.Vec3Val([3]float32{4, 5, 6}),
		T:             0.4,
		StepThreshold: 0.5,
	}
	out, err := r.Sample(seg)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{1, 2, 3}, out.Vec3)

	seg.T = 0.6
	out, err = r.Sample(seg)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{4, 5, 6}, out.Vec3)
}

func TestRegistryNonNumericHoldsStart(t *testing.T) {
	r := NewRegistry(16)
	seg := Segment{
		Variant: "Linear",
		Start:   value.TextVal("a"),
		End:     value.TextVal("b"),
		T:       0.99,
	}
	out, err := r.Sample(seg)
	require.NoError(t, err)
	assert.Equal(t, "a", out.Text)
}

func TestRegistryQuatShortestArc(t *testing.T) {
	r := NewRegistry(16)
	start := value.QuatVal([4]float32{0, 0, 0, 1})
	end := value.QuatVal([4]float32{0, 0, 0, -1})
	seg := Segment{Variant: "Linear", Start: start, End: end, T: 0}
	out, err := r.Sample(seg)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.Quat[3], 1e-5)
}

func TestRegistryCachePreservesOutput(t *testing.T) {
	r := NewRegistry(16)
	seg := Segment{
		Variant: "CubicBezier",
		Start:   value.Float32(0),
		End:     value.Float32(1),
		TangentOut: &[2]float32{0.25, 0.1},
		TangentIn:  &[2]float32{0.75, 0.9},
		T:       0.3,
	}
	first, err := r.Sample(seg)
	require.NoError(t, err)
	second, err := r.Sample(seg)
	require.NoError(t, err)
	assert.Equal(t, first.Float, second.Float)
	assert.EqualValues(t, 1, r.cache.Hits)
}

func TestRegistryCacheDisabled(t *testing.T) {
	r := NewRegistry(0)
	seg := Segment{Variant: "Linear", Start: value.Float32(0), End: value.Float32(1), T: 0.5}
	_, err := r.Sample(seg)
	require.NoError(t, err)
	assert.Equal(t, 0, r.cache.Len())
}

func TestSpringLaneSettlesAtEnd(t *testing.T) {
	seg := Segment{Start: value.Float32(0), End: value.Float32(1)}
	var start, end float32 = 0, 1
	v := springLane(seg, nil, &start, &end, nil, nil, nil, 10)
	assert.InDelta(t, 1.0, v, 0.05)
}
