// Package vecmath provides the small set of float32 vector and quaternion
// helpers shared by interpolation, derivative, and inverse-kinematics code.
// All functions operate on plain [N]float32 arrays rather than a matrix
// library, matching the flat-array convention used throughout this module.
package vecmath

import "math"

// Lerp linearly interpolates between a and b by t.
//
// Parameters:
//   - a: value at t=0
//   - b: value at t=1
//   - t: interpolation factor, typically in [0,1]
//
// Returns:
//   - float32: the interpolated value
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpN linearly interpolates each component of two equal-length slices.
//
// Parameters:
//   - out: destination slice, must have len(a) capacity
//   - a: value at t=0
//   - b: value at t=1
//   - t: interpolation factor
func LerpN(out, a, b []float32, t float32) {
	for i := range a {
		out[i] = Lerp(a[i], b[i], t)
	}
}

// Dot returns the dot product of two equal-length vectors.
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Length returns the Euclidean length of v.
func Length(v []float32) float32 {
	return float32(math.Sqrt(float64(Dot(v, v))))
}

// Cross3 returns the cross product of two 3-vectors.
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Normalize3 returns v scaled to unit length. The zero vector is returned
// unchanged rather than dividing by zero.
func Normalize3(v [3]float32) [3]float32 {
	l := Length(v[:])
	if l == 0 {
		return v
	}
	inv := 1 / l
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}

// QuatDot returns the dot product of two quaternions in (x,y,z,w) layout.
func QuatDot(a, b [4]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// QuatNormalize returns q scaled to unit length. An all-zero quaternion is
// returned unchanged.
func QuatNormalize(q [4]float32) [4]float32 {
	l := float32(math.Sqrt(float64(QuatDot(q, q))))
	if l == 0 {
		return q
	}
	inv := 1 / l
	return [4]float32{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

// QuatNlerp performs a shortest-arc normalized linear interpolation between
// two quaternions. If the dot product of a and b is negative, b is negated
// first so the interpolation takes the short way around the hypersphere.
//
// Parameters:
//   - a: quaternion at t=0, (x,y,z,w)
//   - b: quaternion at t=1, (x,y,z,w)
//   - t: interpolation factor, typically in [0,1]
//
// Returns:
//   - [4]float32: the interpolated, re-normalized quaternion
func QuatNlerp(a, b [4]float32, t float32) [4]float32 {
	if QuatDot(a, b) < 0 {
		b = [4]float32{-b[0], -b[1], -b[2], -b[3]}
	}
	var out [4]float32
	for i := 0; i < 4; i++ {
		out[i] = Lerp(a[i], b[i], t)
	}
	return QuatNormalize(out)
}

// Clamp restricts v to the closed interval [lo, hi]. If lo > hi the
// bounds are swapped.
func Clamp(v, lo, hi float32) float32 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Remap linearly maps v from [inMin,inMax] into [outMin,outMax]. If
// inMin == inMax the midpoint of the output range is returned to avoid a
// division by zero.
func Remap(v, inMin, inMax, outMin, outMax float32) float32 {
	if inMin == inMax {
		return (outMin + outMax) / 2
	}
	t := (v - inMin) / (inMax - inMin)
	return outMin + t*(outMax-outMin)
}

// SolvePlanarIK solves a planar two-joint (three-link) inverse kinematics
// chain: a root at the origin, a joint after bone1, and an end effector
// after bone2, attempting to reach target within the plane containing the
// origin, the target, and the up axis implied by the caller's basis. bone3
// is carried as the fixed end-effector offset applied after the second
// joint, matching a wrist/tip segment that does not itself bend.
//
// Unreachable targets (distance > bone1+bone2+bone3) are clamped to the
// fully extended pose along the direction of the target.
//
// Parameters:
//   - bone1, bone2, bone3: link lengths
//   - target: desired end-effector position relative to the root
//
// Returns:
//   - [3]float32: joint angles (shoulder elevation, shoulder yaw, elbow bend) in radians
func SolvePlanarIK(bone1, bone2, bone3 float32, target [3]float32) [3]float32 {
	dist := Length(target[:])

	yaw := float32(math.Atan2(float64(target[0]), float64(target[2])))

	planarDist := float32(math.Sqrt(float64(target[0]*target[0] + target[2]*target[2])))
	elevation := float32(math.Atan2(float64(target[1]), float64(planarDist)))

	effectiveReach := bone1 + bone2
	d := dist - bone3
	if dist == 0 {
		return [3]float32{elevation, yaw, 0}
	}
	if d > effectiveReach {
		d = effectiveReach
	}
	if d < 0 {
		d = 0
	}

	cosElbow := (bone1*bone1 + bone2*bone2 - d*d) / (2 * bone1 * bone2)
	cosElbow = Clamp(cosElbow, -1, 1)
	elbow := float32(math.Pi) - float32(math.Acos(float64(cosElbow)))

	return [3]float32{elevation, yaw, elbow}
}
