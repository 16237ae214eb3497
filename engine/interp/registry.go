package interp

import (
	"fmt"

	"github.com/vizij-ai/vizij-go-runtime/engine/diagnostics"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
	"github.com/vizij-ai/vizij-go-runtime/engine/vecmath"
)

var laneFns = map[string]laneFn{
	"Linear":      linearLane,
	"Step":        stepLane,
	"CubicBezier": cubicBezierLane,
	"Hermite":     hermiteLane,
	"CatmullRom":  catmullRomLane,
	"BSpline":     bSplineLane,
	"Spring":      springLane,
	"EaseIn":      easeInLane,
	"EaseOut":     easeOutLane,
	"EaseInOut":   easeInOutLane,
}

// timingOnlyVariants feed into a scalar easing curve before the result is
// used as a quaternion NLERP parameter; for the rest
// (Hermite/CatmullRom/BSpline/Spring, which need neighbor *values* rather
// than a separate timing curve) a Quat segment is NLERPed with the raw
// segment t.
var timingOnlyVariants = map[string]bool{
	"Linear":      true,
	"Step":        true,
	"CubicBezier": true,
	"EaseIn":      true,
	"EaseOut":     true,
	"EaseInOut":   true,
}

// Registry dispatches interpolation by (variant, value kind). It wraps a
// bounded Cache; repeated calls with the same (variant, start, end,
// segment parameters, quantized t) return the cached result without
// recomputation. A cached result equals what recomputation gives at a t in
// the same 1/10000 quantization step.
type Registry struct {
	cache *Cache
}

// NewRegistry returns a Registry backed by a cache of the given capacity.
// A capacity of 0 disables caching.
func NewRegistry(cacheCapacity int) *Registry {
	return &Registry{cache: NewCache(cacheCapacity)}
}

// Sample evaluates seg and returns the interpolated Value. Start and End
// must share a Kind (and, for Vector/Vec-N mismatches not arising within
// a single track, length); the animation engine guarantees this since a
// Track samples values of a single kind.
func (r *Registry) Sample(seg Segment) (value.Value, error) {
	fn, ok := laneFns[seg.Variant]
	if !ok {
		fn = linearLane
	}

	key, cacheable := r.cache.Key(seg)
	if cacheable {
		if v, hit := r.cache.Get(key); hit {
			return v, nil
		}
	}

	out, err := sampleKind(seg, fn)
	if err != nil {
		return value.Value{}, err
	}

	if cacheable {
		r.cache.Put(key, out)
	}
	return out, nil
}

func sampleKind(seg Segment, fn laneFn) (value.Value, error) {
	switch seg.Start.Kind {
	case value.KindBool, value.KindText, value.KindEnum:
		if seg.T < orDefault(seg.StepThreshold, 1.0) {
			return seg.Start, nil
		}
		return seg.End, nil

	case value.KindQuat:
		t := seg.T
		if timingOnlyVariants[seg.Variant] {
			t = evalScalar(seg, fn, 0, 1, nil, nil)
		}
		return value.QuatVal(vecmath.QuatNlerp(seg.Start.Quat, seg.End.Quat, t)), nil

	case value.KindTransform:
		var out value.Transform
		for i := 0; i < 3; i++ {
			out.Pos[i] = evalScalar(seg, fn, seg.Start.Transform.Pos[i], seg.End.Transform.Pos[i], beforeLane(seg, func(v value.Value) float32 { return v.Transform.Pos[i] }), afterLane(seg, func(v value.Value) float32 { return v.Transform.Pos[i] }))
			out.Scale[i] = evalScalar(seg, fn, seg.Start.Transform.Scale[i], seg.End.Transform.Scale[i], beforeLane(seg, func(v value.Value) float32 { return v.Transform.Scale[i] }), afterLane(seg, func(v value.Value) float32 { return v.Transform.Scale[i] }))
		}
		rt := seg.T
		if timingOnlyVariants[seg.Variant] {
			rt = evalScalar(seg, fn, 0, 1, nil, nil)
		}
		out.Rot = vecmath.QuatNlerp(seg.Start.Transform.Rot, seg.End.Transform.Rot, rt)
		return value.TransformVal(out), nil

	case value.KindFloat:
		out := evalScalar(seg, fn, seg.Start.Float, seg.End.Float, beforeScalar(seg, func(v value.Value) float32 { return v.Float }), afterScalar(seg, func(v value.Value) float32 { return v.Float }))
		return value.Float32(out), nil

	case value.KindVec2:
		var out [2]float32
		for i := range out {
			out[i] = evalScalar(seg, fn, seg.Start.Vec2[i], seg.End.Vec2[i], beforeLane(seg, func(v value.Value) float32 { return v.Vec2[i] }), afterLane(seg, func(v value.Value) float32 { return v.Vec2[i] }))
		}
		return value.Vec2Val(out), nil

	case value.KindVec3:
		var out [3]float32
		for i := range out {
			out[i] = evalScalar(seg, fn, seg.Start.Vec3[i], seg.End.Vec3[i], beforeLane(seg, func(v value.Value) float32 { return v.Vec3[i] }), afterLane(seg, func(v value.Value) float32 { return v.Vec3[i] }))
		}
		return value.Vec3Val(out), nil

	case value.KindVec4:
		var out [4]float32
		for i := range out {
			out[i] = evalScalar(seg, fn, seg.Start.Vec4[i], seg.End.Vec4[i], beforeLane(seg, func(v value.Value) float32 { return v.Vec4[i] }), afterLane(seg, func(v value.Value) float32 { return v.Vec4[i] }))
		}
		return value.Vec4Val(out), nil

	case value.KindColorRgba:
		var out [4]float32
		for i := range out {
			out[i] = evalScalar(seg, fn, seg.Start.ColorRgba[i], seg.End.ColorRgba[i], beforeLane(seg, func(v value.Value) float32 { return v.ColorRgba[i] }), afterLane(seg, func(v value.Value) float32 { return v.ColorRgba[i] }))
		}
		return value.ColorRgbaVal(out), nil

	case value.KindVector:
		if len(seg.Start.Vector) != len(seg.End.Vector) {
			return seg.Start, nil
		}
		out := make([]float32, len(seg.Start.Vector))
		for i := range out {
			i := i
			out[i] = evalScalar(seg, fn, seg.Start.Vector[i], seg.End.Vector[i], beforeLane(seg, func(v value.Value) float32 { return v.Vector[i] }), afterLane(seg, func(v value.Value) float32 { return v.Vector[i] }))
		}
		return value.VectorVal(out), nil

	default:
		return value.Value{}, &diagnostics.ShapeMismatchError{Op: "sampleKind", Details: fmt.Sprintf("unsupported kind %s", seg.Start.Kind)}
	}
}

func orDefault(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}

func beforeScalar(seg Segment, f func(value.Value) float32) *float32 {
	if seg.Before == nil {
		return nil
	}
	v := f(*seg.Before)
	return &v
}

func afterScalar(seg Segment, f func(value.Value) float32) *float32 {
	if seg.After == nil {
		return nil
	}
	v := f(*seg.After)
	return &v
}

func beforeLane(seg Segment, f func(value.Value) float32) *float32 { return beforeScalar(seg, f) }
func afterLane(seg Segment, f func(value.Value) float32) *float32  { return afterScalar(seg, f) }

func evalScalar(seg Segment, fn laneFn, start, end float32, before, after *float32) float32 {
	var tOutY, tInY float32
	if seg.TangentOut != nil {
		tOutY = seg.TangentOut[1]
	}
	if seg.TangentIn != nil {
		tInY = seg.TangentIn[1]
	}
	return fn(seg, before, &start, &end, after, &tOutY, &tInY, seg.T)
}
