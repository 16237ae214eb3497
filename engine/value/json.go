package value

import (
	"encoding/json"
	"fmt"
)

// jsonEnvelope is the wire shape for a Value: a type tag plus an opaque
// payload, matching the "Value JSON" schema.
type jsonEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON encodes v using the tagged {"type","data"} envelope described
// in the external interface schema.
func (v Value) MarshalJSON() ([]byte, error) {
	var data any

	switch v.Kind {
	case KindFloat:
		data = v.Float
	case KindBool:
		data = v.Bool
	case KindVec2:
		data = v.Vec2
	case KindVec3:
		data = v.Vec3
	case KindVec4:
		data = v.Vec4
	case KindQuat:
		data = v.Quat
	case KindColorRgba:
		data = v.ColorRgba
	case KindTransform:
		data = jsonTransform{
			Pos:   v.Transform.Pos,
			Rot:   v.Transform.Rot,
			Scale: v.Transform.Scale,
		}
	case KindVector:
		data = v.Vector
	case KindText:
		data = v.Text
	case KindEnum:
		var payload Value
		if v.EnumValue != nil {
			payload = *v.EnumValue
		}
		data = []any{v.EnumTag, payload}
	default:
		return nil, fmt.Errorf("value: unknown kind %d", v.Kind)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("value: marshal %s payload: %w", v.Kind, err)
	}
	return json.Marshal(jsonEnvelope{Type: v.Kind.String(), Data: raw})
}

type jsonTransform struct {
	Pos   [3]float32 `json:"pos"`
	Rot   [4]float32 `json:"rot"`
	Scale [3]float32 `json:"scale"`
}

// UnmarshalJSON decodes v from the tagged {"type","data"} envelope.
func (v *Value) UnmarshalJSON(b []byte) error {
	var env jsonEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return fmt.Errorf("value: decode envelope: %w", err)
	}

	switch env.Type {
	case "Float":
		var f float32
		if err := json.Unmarshal(env.Data, &f); err != nil {
			return fmt.Errorf("value: decode Float: %w", err)
		}
		*v = Float32(f)
	case "Bool":
		var b bool
		if err := json.Unmarshal(env.Data, &b); err != nil {
			return fmt.Errorf("value: decode Bool: %w", err)
		}
		*v = BoolVal(b)
	case "Vec2":
		var a [2]float32
		if err := json.Unmarshal(env.Data, &a); err != nil {
			return fmt.Errorf("value: decode Vec2: %w", err)
		}
		*v = Vec2Val(a)
	case "Vec3":
		var a [3]float32
		if err := json.Unmarshal(env.Data, &a); err != nil {
			return fmt.Errorf("value: decode Vec3: %w", err)
		}
		*v = Vec3Val(a)
	case "Vec4":
		var a [4]float32
		if err := json.Unmarshal(env.Data, &a); err != nil {
			return fmt.Errorf("value: decode Vec4: %w", err)
		}
		*v = Vec4Val(a)
	case "Quat":
		var a [4]float32
		if err := json.Unmarshal(env.Data, &a); err != nil {
			return fmt.Errorf("value: decode Quat: %w", err)
		}
		*v = QuatVal(a)
	case "ColorRgba":
		var a [4]float32
		if err := json.Unmarshal(env.Data, &a); err != nil {
			return fmt.Errorf("value: decode ColorRgba: %w", err)
		}
		*v = ColorRgbaVal(a)
	case "Transform":
		var t jsonTransform
		if err := json.Unmarshal(env.Data, &t); err != nil {
			return fmt.Errorf("value: decode Transform: %w", err)
		}
		*v = TransformVal(Transform{Pos: t.Pos, Rot: t.Rot, Scale: t.Scale})
	case "Vector":
		var s []float32
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return fmt.Errorf("value: decode Vector: %w", err)
		}
		*v = VectorVal(s)
	case "Text":
		var s string
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return fmt.Errorf("value: decode Text: %w", err)
		}
		*v = TextVal(s)
	case "Enum":
		var pair [2]json.RawMessage
		if err := json.Unmarshal(env.Data, &pair); err != nil {
			return fmt.Errorf("value: decode Enum: %w", err)
		}
		var tag string
		if err := json.Unmarshal(pair[0], &tag); err != nil {
			return fmt.Errorf("value: decode Enum tag: %w", err)
		}
		var payload Value
		if err := json.Unmarshal(pair[1], &payload); err != nil {
			return fmt.Errorf("value: decode Enum payload: %w", err)
		}
		*v = EnumVal(tag, payload)
	default:
		return fmt.Errorf("value: unknown type tag %q", env.Type)
	}
	return nil
}
