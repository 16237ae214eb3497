package graph

import (
	"math"

	"github.com/vizij-ai/vizij-go-runtime/engine/value"
)

// flatten decomposes v into its numeric lanes for broadcasting purposes.
// The returned Kind identifies the layout to reconstruct a result in
// (VecN length is implied by the Kind itself, e.g. KindVec3 vs KindVec4).
// ok is false for a kind with no numeric layout (Bool/Text/Enum).
func flatten(v value.Value) (lanes []float32, kind value.Kind, ok bool) {
	switch v.Kind {
	case value.KindFloat:
		return []float32{v.Float}, v.Kind, true
	case value.KindVec2:
		return append([]float32(nil), v.Vec2[:]...), v.Kind, true
	case value.KindVec3:
		return append([]float32(nil), v.Vec3[:]...), v.Kind, true
	case value.KindVec4:
		return append([]float32(nil), v.Vec4[:]...), v.Kind, true
	case value.KindQuat:
		return append([]float32(nil), v.Quat[:]...), v.Kind, true
	case value.KindColorRgba:
		return append([]float32(nil), v.ColorRgba[:]...), v.Kind, true
	case value.KindTransform:
		lanes := make([]float32, 0, 10)
		lanes = append(lanes, v.Transform.Pos[:]...)
		lanes = append(lanes, v.Transform.Rot[:]...)
		lanes = append(lanes, v.Transform.Scale[:]...)
		return lanes, v.Kind, true
	case value.KindVector:
		return append([]float32(nil), v.Vector...), v.Kind, true
	default:
		return nil, v.Kind, false
	}
}

// rebuild reconstructs a Value of the given kind from flattened lanes. The
// caller guarantees len(lanes) matches the kind's expected width, except
// for KindVector, whose width is exactly len(lanes).
func rebuild(kind value.Kind, lanes []float32) value.Value {
	switch kind {
	case value.KindFloat:
		return value.Float32(lanes[0])
	case value.KindVec2:
		return value.Vec2Val([2]float32{lanes[0], lanes[1]})
	case value.KindVec3:
		return value.Vec3Val([3]float32{lanes[0], lanes[1], lanes[2]})
	case value.KindVec4:
		return value.Vec4Val([4]float32{lanes[0], lanes[1], lanes[2], lanes[3]})
	case value.KindQuat:
		return value.QuatVal([4]float32{lanes[0], lanes[1], lanes[2], lanes[3]})
	case value.KindColorRgba:
		return value.ColorRgbaVal([4]float32{lanes[0], lanes[1], lanes[2], lanes[3]})
	case value.KindTransform:
		var t value.Transform
		copy(t.Pos[:], lanes[0:3])
		copy(t.Rot[:], lanes[3:7])
		copy(t.Scale[:], lanes[7:10])
		return value.TransformVal(t)
	case value.KindVector:
		return value.VectorVal(lanes)
	default:
		return value.Value{Kind: kind}
	}
}

func nanLanes(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.NaN())
	}
	return out
}

// broadcastBinary aligns a and b per the numeric broadcasting rule, applies
// op lane-by-lane, and reconstructs a Value in the resulting layout.
// Non-numeric operands yield a's value unchanged.
func broadcastBinary(a, b value.Value, op func(x, y float32) float32) value.Value {
	la, ka, oka := flatten(a)
	lb, kb, okb := flatten(b)
	if !oka || !okb {
		return a
	}

	switch {
	case ka == kb && len(la) == len(lb):
		out := make([]float32, len(la))
		for i := range out {
			out[i] = op(la[i], lb[i])
		}
		return rebuild(ka, out)

	case len(la) == 1 && len(lb) != 1:
		out := make([]float32, len(lb))
		for i := range out {
			out[i] = op(la[0], lb[i])
		}
		return rebuild(kb, out)

	case len(lb) == 1 && len(la) != 1:
		out := make([]float32, len(la))
		for i := range out {
			out[i] = op(la[i], lb[0])
		}
		return rebuild(ka, out)

	default:
		return rebuild(ka, nanLanes(len(la)))
	}
}

// broadcastUnary applies op lane-by-lane to v's numeric layout, leaving
// non-numeric values unchanged.
func broadcastUnary(v value.Value, op func(x float32) float32) value.Value {
	lanes, kind, ok := flatten(v)
	if !ok {
		return v
	}
	out := make([]float32, len(lanes))
	for i, f := range lanes {
		out[i] = op(f)
	}
	return rebuild(kind, out)
}

// compareAll flattens a and b with the same alignment rule as
// broadcastBinary, applies cmp lane-by-lane, and folds the result with
// logical AND into a single Bool — every lane must satisfy cmp.
func compareAll(a, b value.Value, cmp func(x, y float32) bool) value.Value {
	la, _, oka := flatten(a)
	lb, _, okb := flatten(b)
	if !oka || !okb {
		return value.BoolVal(false)
	}
	switch {
	case len(la) == len(lb):
		for i := range la {
			if !cmp(la[i], lb[i]) {
				return value.BoolVal(false)
			}
		}
		return value.BoolVal(true)
	case len(la) == 1:
		for _, f := range lb {
			if !cmp(la[0], f) {
				return value.BoolVal(false)
			}
		}
		return value.BoolVal(true)
	case len(lb) == 1:
		for _, f := range la {
			if !cmp(f, lb[0]) {
				return value.BoolVal(false)
			}
		}
		return value.BoolVal(true)
	default:
		return value.BoolVal(false)
	}
}
