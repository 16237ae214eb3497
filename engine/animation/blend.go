package animation

import (
	"math"

	"github.com/vizij-ai/vizij-go-runtime/engine/path"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
)

// accumT accumulates the (weight, value) pairs blending into one channel.
// Numeric kinds sum weight*value for a weight-normalized average; Quat
// accumulates a shortest-arc-corrected weighted sum later renormalized;
// non-numeric kinds keep only the highest-weight contribution, with ties
// resolved by insertion order (a later equal weight never replaces the
// first).
type accumT struct {
	path      path.TypedPath
	sumWeight float32
	isNumeric bool
	numeric   value.Value

	haveQuat  bool
	quatAccum [4]float32

	bestValue  value.Value
	bestWeight float32
	bestSet    bool
}

func zeroLike(v value.Value) value.Value {
	switch v.Kind {
	case value.KindVector:
		return value.VectorVal(make([]float32, len(v.Vector)))
	case value.KindTransform:
		return value.TransformVal(value.Transform{})
	default:
		return value.Value{Kind: v.Kind}
	}
}

func addWeighted(dst *value.Value, v value.Value, weight float32) {
	switch v.Kind {
	case value.KindFloat:
		if dst.Kind != value.KindFloat {
			*dst = value.Float32(0)
		}
		dst.Float += v.Float * weight
	case value.KindVec2:
		for i := range dst.Vec2 {
			dst.Vec2[i] += v.Vec2[i] * weight
		}
	case value.KindVec3:
		for i := range dst.Vec3 {
			dst.Vec3[i] += v.Vec3[i] * weight
		}
	case value.KindVec4:
		for i := range dst.Vec4 {
			dst.Vec4[i] += v.Vec4[i] * weight
		}
	case value.KindColorRgba:
		for i := range dst.ColorRgba {
			dst.ColorRgba[i] += v.ColorRgba[i] * weight
		}
	case value.KindTransform:
		for i := 0; i < 3; i++ {
			dst.Transform.Pos[i] += v.Transform.Pos[i] * weight
			dst.Transform.Scale[i] += v.Transform.Scale[i] * weight
		}
	case value.KindVector:
		if len(dst.Vector) != len(v.Vector) {
			dst.Vector = make([]float32, len(v.Vector))
		}
		for i := range dst.Vector {
			dst.Vector[i] += v.Vector[i] * weight
		}
	}
	dst.Kind = v.Kind
}

func scaleValue(v value.Value, factor float32) value.Value {
	switch v.Kind {
	case value.KindFloat:
		return value.Float32(v.Float * factor)
	case value.KindVec2:
		return value.Vec2Val([2]float32{v.Vec2[0] * factor, v.Vec2[1] * factor})
	case value.KindVec3:
		return value.Vec3Val([3]float32{v.Vec3[0] * factor, v.Vec3[1] * factor, v.Vec3[2] * factor})
	case value.KindVec4:
		return value.Vec4Val([4]float32{v.Vec4[0] * factor, v.Vec4[1] * factor, v.Vec4[2] * factor, v.Vec4[3] * factor})
	case value.KindColorRgba:
		return value.ColorRgbaVal([4]float32{v.ColorRgba[0] * factor, v.ColorRgba[1] * factor, v.ColorRgba[2] * factor, v.ColorRgba[3] * factor})
	case value.KindTransform:
		t := v.Transform
		for i := 0; i < 3; i++ {
			t.Pos[i] *= factor
			t.Scale[i] *= factor
		}
		return value.TransformVal(t)
	case value.KindVector:
		out := make([]float32, len(v.Vector))
		for i, f := range v.Vector {
			out[i] = f * factor
		}
		return value.VectorVal(out)
	default:
		return v
	}
}

func vecNormalize4(q [4]float32) [4]float32 {
	n := float32(math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])))
	if n == 0 {
		return [4]float32{0, 0, 0, 1}
	}
	return [4]float32{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}

// derivative computes (current-previous)/dt componentwise for the kinds
// the spec names; it returns ok=false for dt<=0, mismatched Vector
// lengths, or a non-numeric kind, per the "undefined" rule.
func derivative(current, previous value.Value, dt float32) (value.Value, bool) {
	if dt <= 0 || current.Kind != previous.Kind {
		return value.Value{}, false
	}
	switch current.Kind {
	case value.KindFloat:
		return value.Float32((current.Float - previous.Float) / dt), true
	case value.KindVec2:
		var out [2]float32
		for i := range out {
			out[i] = (current.Vec2[i] - previous.Vec2[i]) / dt
		}
		return value.Vec2Val(out), true
	case value.KindVec3:
		var out [3]float32
		for i := range out {
			out[i] = (current.Vec3[i] - previous.Vec3[i]) / dt
		}
		return value.Vec3Val(out), true
	case value.KindVec4:
		var out [4]float32
		for i := range out {
			out[i] = (current.Vec4[i] - previous.Vec4[i]) / dt
		}
		return value.Vec4Val(out), true
	case value.KindQuat:
		var out [4]float32
		for i := range out {
			out[i] = (current.Quat[i] - previous.Quat[i]) / dt
		}
		return value.QuatVal(out), true
	case value.KindColorRgba:
		var out [4]float32
		for i := range out {
			out[i] = (current.ColorRgba[i] - previous.ColorRgba[i]) / dt
		}
		return value.ColorRgbaVal(out), true
	case value.KindTransform:
		var t value.Transform
		for i := 0; i < 3; i++ {
			t.Pos[i] = (current.Transform.Pos[i] - previous.Transform.Pos[i]) / dt
			t.Scale[i] = (current.Transform.Scale[i] - previous.Transform.Scale[i]) / dt
			t.Rot[i] = (current.Transform.Rot[i] - previous.Transform.Rot[i]) / dt
		}
		t.Rot[3] = (current.Transform.Rot[3] - previous.Transform.Rot[3]) / dt
		return value.TransformVal(t), true
	case value.KindVector:
		if len(current.Vector) != len(previous.Vector) {
			return value.Value{}, false
		}
		out := make([]float32, len(current.Vector))
		for i := range out {
			out[i] = (current.Vector[i] - previous.Vector[i]) / dt
		}
		return value.VectorVal(out), true
	default:
		return value.Value{}, false
	}
}
