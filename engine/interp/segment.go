// Package interp implements the interpolation registry: per-segment
// sampling across the supported transition variants, dispatched by
// (variant, value kind), plus a bounded sample cache.
package interp

import "github.com/vizij-ai/vizij-go-runtime/engine/value"

// Segment carries everything an interpolator needs to produce a value at
// a point within one track segment: the two bounding keypoints' values,
// their tangent handles, optional further neighbors for spline schemes
// that look past the immediate segment, and the normalized within-segment
// parameter t.
type Segment struct {
	Variant string

	Start value.Value
	End   value.Value

	// Before/After are the keypoints preceding Start and following End,
	// when they exist, used by CatmullRom and BSpline.
	Before *value.Value
	After  *value.Value

	// TangentOut is Start's outgoing handle; TangentIn is End's incoming
	// handle. CubicBezier reads both as (x,y) offsets from the segment's
	// start and end corners; Hermite reads their y components as tangents.
	// The Ease presets use fixed handles and ignore them.
	TangentOut *[2]float32
	TangentIn  *[2]float32

	// T is the normalized position within the segment, in [0,1].
	T float32

	// StepThreshold is the hold-start threshold used by the Step variant.
	StepThreshold float32

	// SpringParams is (mass, stiffness, damping) for the Spring variant,
	// or nil to use the default underdamped preset.
	SpringParams *[3]float32
}
