// Package value implements the tagged-union runtime Value that flows
// through the animation and graph subsystems, plus its structural Shape
// descriptor. Both mirror one another: every Kind of Value has a matching
// Shape variant.
package value

import "math"

// Kind classifies a Value for dispatch without inspecting its payload.
type Kind int

const (
	KindFloat Kind = iota
	KindBool
	KindVec2
	KindVec3
	KindVec4
	KindQuat
	KindColorRgba
	KindTransform
	KindVector
	KindText
	KindEnum
)

// String returns the capitalized name of the kind ("Float", "Vec3", ...),
// matching the "type" tag used in Value JSON.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindVec2:
		return "Vec2"
	case KindVec3:
		return "Vec3"
	case KindVec4:
		return "Vec4"
	case KindQuat:
		return "Quat"
	case KindColorRgba:
		return "ColorRgba"
	case KindTransform:
		return "Transform"
	case KindVector:
		return "Vector"
	case KindText:
		return "Text"
	case KindEnum:
		return "Enum"
	default:
		return "Unknown"
	}
}

// Transform is a decomposed position/rotation/scale triple. Rotation is a
// quaternion in (x,y,z,w) order.
type Transform struct {
	Pos   [3]float32
	Rot   [4]float32
	Scale [3]float32
}

// IdentityTransform returns the identity transform: zero translation, unit
// rotation, unit scale.
func IdentityTransform() Transform {
	return Transform{
		Pos:   [3]float32{0, 0, 0},
		Rot:   [4]float32{0, 0, 0, 1},
		Scale: [3]float32{1, 1, 1},
	}
}

// Value is a tagged union over the runtime value kinds the animation and
// graph engines exchange. Only the field matching Kind is meaningful; the
// others are zero. Enum additionally nests another Value as its payload.
type Value struct {
	Kind Kind

	Float     float32
	Bool      bool
	Vec2      [2]float32
	Vec3      [3]float32
	Vec4      [4]float32
	Quat      [4]float32
	ColorRgba [4]float32
	Transform Transform
	Vector    []float32
	Text      string
	EnumTag   string
	EnumValue *Value
}

// Float32 constructs a Float value.
func Float32(v float32) Value { return Value{Kind: KindFloat, Float: v} }

// BoolVal constructs a Bool value.
func BoolVal(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// Vec2Val constructs a Vec2 value.
func Vec2Val(v [2]float32) Value { return Value{Kind: KindVec2, Vec2: v} }

// Vec3Val constructs a Vec3 value.
func Vec3Val(v [3]float32) Value { return Value{Kind: KindVec3, Vec3: v} }

// Vec4Val constructs a Vec4 value.
func Vec4Val(v [4]float32) Value { return Value{Kind: KindVec4, Vec4: v} }

// QuatVal constructs a Quat value in (x,y,z,w) order.
func QuatVal(v [4]float32) Value { return Value{Kind: KindQuat, Quat: v} }

// ColorRgbaVal constructs a ColorRgba value.
func ColorRgbaVal(v [4]float32) Value { return Value{Kind: KindColorRgba, ColorRgba: v} }

// TransformVal constructs a Transform value.
func TransformVal(v Transform) Value { return Value{Kind: KindTransform, Transform: v} }

// VectorVal constructs a Vector value from a variable-length sequence.
func VectorVal(v []float32) Value { return Value{Kind: KindVector, Vector: append([]float32(nil), v...)} }

// TextVal constructs a Text value.
func TextVal(v string) Value { return Value{Kind: KindText, Text: v} }

// EnumVal constructs an Enum value with the given tag and nested payload.
func EnumVal(tag string, v Value) Value {
	return Value{Kind: KindEnum, EnumTag: tag, EnumValue: &v}
}

// IsTruthy applies the boolean-coercion rule used by graph logic nodes:
// Bool is used as-is, Text is truthy iff non-empty, Enum follows its
// payload (or, without a payload, is truthy iff its tag is non-empty), and
// any other kind is truthy iff at least one of its numeric lanes is nonzero.
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindText:
		return v.Text != ""
	case KindEnum:
		if v.EnumValue != nil {
			return v.EnumValue.IsTruthy()
		}
		return v.EnumTag != ""
	default:
		for _, f := range v.lanes() {
			if f != 0 {
				return true
			}
		}
		return false
	}
}

// lanes returns the numeric components of v in canonical order, used by
// IsTruthy and by hashing. Non-numeric kinds return nil.
func (v Value) lanes() []float32 {
	switch v.Kind {
	case KindFloat:
		return []float32{v.Float}
	case KindVec2:
		return v.Vec2[:]
	case KindVec3:
		return v.Vec3[:]
	case KindVec4:
		return v.Vec4[:]
	case KindQuat:
		return v.Quat[:]
	case KindColorRgba:
		return v.ColorRgba[:]
	case KindTransform:
		out := make([]float32, 0, 10)
		out = append(out, v.Transform.Pos[:]...)
		out = append(out, v.Transform.Rot[:]...)
		out = append(out, v.Transform.Scale[:]...)
		return out
	case KindVector:
		return v.Vector
	default:
		return nil
	}
}

// canonFloat canonicalizes a float32 for hashing: all NaN bit patterns
// collapse to a single canonical NaN so that NaN-bearing values hash and
// compare equal to one another, as required for cache-key stability.
func canonFloat(f float32) float32 {
	if math.IsNaN(float64(f)) {
		return float32(math.NaN())
	}
	return f
}

// HashKey returns a value usable as a map/cache key that treats all NaN
// payloads as equal, per the canonicalization rule in the data model.
func (v Value) HashKey() uint64 {
	h := fnvOffset
	h = hashByte(h, byte(v.Kind))
	switch v.Kind {
	case KindBool:
		if v.Bool {
			h = hashByte(h, 1)
		} else {
			h = hashByte(h, 0)
		}
	case KindText:
		h = hashString(h, v.Text)
	case KindEnum:
		h = hashString(h, v.EnumTag)
		if v.EnumValue != nil {
			h = hashUint64(h, v.EnumValue.HashKey())
		}
	default:
		for _, f := range v.lanes() {
			h = hashFloat(h, canonFloat(f))
		}
	}
	return h
}

const fnvOffset uint64 = 14695981039346656037
const fnvPrime uint64 = 1099511628211

func hashByte(h uint64, b byte) uint64 {
	h ^= uint64(b)
	h *= fnvPrime
	return h
}

func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h = hashByte(h, s[i])
	}
	return h
}

func hashUint64(h uint64, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h = hashByte(h, byte(v>>(8*i)))
	}
	return h
}

func hashFloat(h uint64, f float32) uint64 {
	return hashUint64(h, uint64(math.Float32bits(f)))
}

// Equal reports whether v and o are the same kind with bit-identical
// payloads, treating all NaN bit patterns as equal per the canonicalization
// rule used for hashing.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindText:
		return v.Text == o.Text
	case KindEnum:
		if v.EnumTag != o.EnumTag {
			return false
		}
		if (v.EnumValue == nil) != (o.EnumValue == nil) {
			return false
		}
		if v.EnumValue == nil {
			return true
		}
		return v.EnumValue.Equal(*o.EnumValue)
	default:
		a, b := v.lanes(), o.lanes()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if canonFloat(a[i]) != canonFloat(b[i]) && !(math.IsNaN(float64(a[i])) && math.IsNaN(float64(b[i]))) {
				return false
			}
		}
		return true
	}
}
