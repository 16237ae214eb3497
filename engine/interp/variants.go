package interp

import "math"

// laneFn computes one output lane from the two bounding values, optional
// neighbor lanes, and the segment parameter t. All per-variant evaluators
// are expressed at this granularity and then broadcast across a Value's
// lanes by Sample.
type laneFn func(seg Segment, before, start, end, after, tOut, tIn *float32, t float32) float32

func linearLane(_ Segment, _, start, end, _, _, _ *float32, t float32) float32 {
	return *start + (*end-*start)*t
}

func stepLane(seg Segment, _, start, end, _, _, _ *float32, t float32) float32 {
	threshold := seg.StepThreshold
	if threshold == 0 {
		threshold = 1.0
	}
	if t < threshold {
		return *start
	}
	return *end
}

// cubicBezierLane treats (TangentOut.x, TangentOut.y) and (TangentIn.x,
// TangentIn.y) as offsets from the segment's start/end corners in a
// [0,1]x[0,1] time/value box, solves for the curve parameter whose time
// component equals t via Newton-Raphson, and evaluates the value
// component at that parameter.
func cubicBezierLane(seg Segment, _, start, end, _, tOutY, tInY *float32, t float32) float32 {
	var ox, oy, ix, iy float32 = 0.25, 0, 0.75, 0
	if seg.TangentOut != nil {
		ox, oy = seg.TangentOut[0], *tOutY
	}
	if seg.TangentIn != nil {
		ix, iy = seg.TangentIn[0], *tInY
	}

	p0x, p0y := float32(0), *start
	p1x, p1y := clamp01(ox), *start+oy
	p2x, p2y := clamp01(1+ix), *end+iy
	p3x, p3y := float32(1), *end

	s := solveBezierParam(t, p0x, p1x, p2x, p3x)
	return bezierEval(s, p0y, p1y, p2y, p3y)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func bezierEval(s, a, b, c, d float32) float32 {
	u := 1 - s
	return u*u*u*a + 3*u*u*s*b + 3*u*s*s*c + s*s*s*d
}

// solveBezierParam finds s such that bezierEval(s, x0,x1,x2,x3) == target,
// using up to 8 Newton-Raphson steps with s clamped to [0,1], stopping
// early when the derivative is zero; there is no bisection fallback. The
// x-component of a timing bezier is monotonic by construction so this
// converges quickly.
func solveBezierParam(target, x0, x1, x2, x3 float32) float32 {
	s := target
	for i := 0; i < 8; i++ {
		x := bezierEval(s, x0, x1, x2, x3)
		dx := bezierDerivative(s, x0, x1, x2, x3)
		if dx == 0 {
			break
		}
		s -= (x - target) / dx
		s = clamp01(s)
	}
	return s
}

func bezierDerivative(s, a, b, c, d float32) float32 {
	u := 1 - s
	return 3*u*u*(b-a) + 6*u*s*(c-b) + 3*s*s*(d-c)
}

func easePreset(ox, oy, ix, iy float32) func(seg Segment, _, start, end, _, _, _ *float32, t float32) float32 {
	return func(_ Segment, _, start, end, _, _, _ *float32, t float32) float32 {
		p0x, p0y := float32(0), *start
		p1x, p1y := ox, *start+oy
		p2x, p2y := ix, *end+iy
		p3x, p3y := float32(1), *end
		s := solveBezierParam(t, p0x, p1x, p2x, p3x)
		return bezierEval(s, p0y, p1y, p2y, p3y)
	}
}

var easeInLane = easePreset(0.42, 0, 1.0, 0)
var easeOutLane = easePreset(0, 0, 0.58, 0)
var easeInOutLane = easePreset(0.42, 0, 0.58, 0)

// hermiteLane evaluates a cubic Hermite segment using the y-components of
// the tangent handles as the outgoing/incoming velocity.
func hermiteLane(seg Segment, _, start, end, _, tOutY, tInY *float32, t float32) float32 {
	m0, m1 := float32(0), float32(0)
	if seg.TangentOut != nil {
		m0 = *tOutY
	}
	if seg.TangentIn != nil {
		m1 = *tInY
	}
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return h00**start + h10*m0 + h01**end + h11*m1
}

// catmullRomLane uses the neighboring keypoints when present, falling
// back to the segment's own endpoints when a neighbor is unavailable
// (the classic clamped-endpoint convention).
func catmullRomLane(_ Segment, before, start, end, after, _, _ *float32, t float32) float32 {
	p0, p1, p2, p3 := *start, *start, *end, *end
	if before != nil {
		p0 = *before
	}
	if after != nil {
		p3 = *after
	}
	t2 := t * t
	t3 := t2 * t
	return 0.5 * ((2 * p1) +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}

// bSplineLane evaluates a uniform cubic B-spline basis over the four
// control points (neighbor, start, end, neighbor), again clamping to the
// segment endpoints at open boundaries.
func bSplineLane(_ Segment, before, start, end, after, _, _ *float32, t float32) float32 {
	p0, p1, p2, p3 := *start, *start, *end, *end
	if before != nil {
		p0 = *before
	}
	if after != nil {
		p3 = *after
	}
	t2 := t * t
	t3 := t2 * t
	b0 := (1 - 3*t + 3*t2 - t3) / 6
	b1 := (4 - 6*t2 + 3*t3) / 6
	b2 := (1 + 3*t + 3*t2 - 3*t3) / 6
	b3 := t3 / 6
	return p0*b0 + p1*b1 + p2*b2 + p3*b3
}

// springLane integrates a damped harmonic oscillator from rest at start
// towards end, producing overshoot for underdamped configurations. mass,
// stiffness, and damping default to a visibly underdamped preset when the
// segment carries no explicit spring parameters.
func springLane(seg Segment, _, start, end, _, _, _ *float32, t float32) float32 {
	mass, stiffness, damping := float32(1), float32(120), float32(12)
	if seg.SpringParams != nil {
		mass, stiffness, damping = seg.SpringParams[0], seg.SpringParams[1], seg.SpringParams[2]
	}
	if mass <= 0 {
		mass = 1
	}
	delta := *end - *start
	w0 := float32(math.Sqrt(float64(stiffness / mass)))
	zeta := damping / (2 * float32(math.Sqrt(float64(stiffness*mass))))

	var envelope float32
	if zeta < 1 {
		wd := w0 * float32(math.Sqrt(float64(1-zeta*zeta)))
		decay := float32(math.Exp(float64(-zeta * w0 * t)))
		envelope = decay * (float32(math.Cos(float64(wd*t))) + (zeta*w0/wd)*float32(math.Sin(float64(wd*t))))
	} else {
		decay := float32(math.Exp(float64(-w0 * t)))
		envelope = decay * (1 + w0*t)
	}
	return *end - delta*envelope
}
