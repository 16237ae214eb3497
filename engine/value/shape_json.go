package value

import (
	"encoding/json"
	"fmt"
)

// shapeKindNames maps ShapeKind to its JSON tag. It is an unexported
// lookup used by this package's Shape JSON encoding and by
// ShapeKind.String.
var shapeKindNames = map[ShapeKind]string{
	ShapeScalar:    "Scalar",
	ShapeBool:      "Bool",
	ShapeVec2:      "Vec2",
	ShapeVec3:      "Vec3",
	ShapeVec4:      "Vec4",
	ShapeQuat:      "Quat",
	ShapeColorRgba: "ColorRgba",
	ShapeTransform: "Transform",
	ShapeVector:    "Vector",
	ShapeText:      "Text",
	ShapeRecord:    "Record",
	ShapeArray:     "Array",
	ShapeList:      "List",
	ShapeTuple:     "Tuple",
	ShapeEnum:      "Enum",
}

var shapeKindByName = func() map[string]ShapeKind {
	m := make(map[string]ShapeKind, len(shapeKindNames))
	for k, v := range shapeKindNames {
		m[v] = k
	}
	return m
}()

// String returns the JSON tag name for the shape kind.
func (k ShapeKind) String() string {
	if s, ok := shapeKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

type shapeJSON struct {
	Kind      string               `json:"kind"`
	VectorLen *int                 `json:"vectorLen,omitempty"`
	Fields    map[string]shapeJSON `json:"fields,omitempty"`
	Elem      *shapeJSON           `json:"elem,omitempty"`
	ArrayLen  *int                 `json:"arrayLen,omitempty"`
	Tuple     []shapeJSON          `json:"tuple,omitempty"`
	Variants  map[string]shapeJSON `json:"variants,omitempty"`
	Metadata  map[string]string    `json:"metadata,omitempty"`
}

func toShapeJSON(s Shape) shapeJSON {
	out := shapeJSON{Kind: s.Kind.String(), Metadata: s.Metadata}
	if s.VectorLen >= 0 {
		v := s.VectorLen
		out.VectorLen = &v
	}
	if s.Fields != nil {
		out.Fields = make(map[string]shapeJSON, len(s.Fields))
		for k, v := range s.Fields {
			out.Fields[k] = toShapeJSON(v)
		}
	}
	if s.Elem != nil {
		e := toShapeJSON(*s.Elem)
		out.Elem = &e
	}
	if s.ArrayLen != 0 {
		l := s.ArrayLen
		out.ArrayLen = &l
	}
	for _, t := range s.Tuple {
		out.Tuple = append(out.Tuple, toShapeJSON(t))
	}
	if s.Variants != nil {
		out.Variants = make(map[string]shapeJSON, len(s.Variants))
		for k, v := range s.Variants {
			out.Variants[k] = toShapeJSON(v)
		}
	}
	return out
}

func fromShapeJSON(j shapeJSON) (Shape, error) {
	kind, ok := shapeKindByName[j.Kind]
	if !ok {
		return Shape{}, fmt.Errorf("shape: unknown kind %q", j.Kind)
	}
	out := Shape{Kind: kind, VectorLen: -1, Metadata: j.Metadata}
	if j.VectorLen != nil {
		out.VectorLen = *j.VectorLen
	}
	if j.Fields != nil {
		out.Fields = make(map[string]Shape, len(j.Fields))
		for k, v := range j.Fields {
			fs, err := fromShapeJSON(v)
			if err != nil {
				return Shape{}, err
			}
			out.Fields[k] = fs
		}
	}
	if j.Elem != nil {
		es, err := fromShapeJSON(*j.Elem)
		if err != nil {
			return Shape{}, err
		}
		out.Elem = &es
	}
	if j.ArrayLen != nil {
		out.ArrayLen = *j.ArrayLen
	}
	for _, t := range j.Tuple {
		ts, err := fromShapeJSON(t)
		if err != nil {
			return Shape{}, err
		}
		out.Tuple = append(out.Tuple, ts)
	}
	if j.Variants != nil {
		out.Variants = make(map[string]Shape, len(j.Variants))
		for k, v := range j.Variants {
			vs, err := fromShapeJSON(v)
			if err != nil {
				return Shape{}, err
			}
			out.Variants[k] = vs
		}
	}
	return out, nil
}

// MarshalJSON encodes the Shape using named kind tags and only the fields
// relevant to that kind.
func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(toShapeJSON(s))
}

// UnmarshalJSON decodes a Shape from its named-kind JSON form.
func (s *Shape) UnmarshalJSON(b []byte) error {
	var j shapeJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return fmt.Errorf("shape: decode: %w", err)
	}
	parsed, err := fromShapeJSON(j)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
