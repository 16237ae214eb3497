// Package path implements TypedPath, the canonical string identifier used
// to address values in the blackboard, write batches, and node graph
// bindings.
package path

import "strings"

// TypedPath is a canonical dot/slash-separated identifier, e.g.
// "node/Transform.translation". It round-trips through Parse and Format:
// Format(Parse(s)) == s for any well-formed s.
type TypedPath struct {
	raw string
}

// Parse validates and wraps a raw path string. A TypedPath carries no
// structural requirement beyond being non-empty; segment syntax ('/' and
// '.') is preserved verbatim so callers may split on it themselves.
func Parse(raw string) (TypedPath, error) {
	if raw == "" {
		return TypedPath{}, errEmptyPath
	}
	return TypedPath{raw: raw}, nil
}

// MustParse is Parse but panics on error. Intended for constant paths
// known at compile time (node wiring tables, tests).
func MustParse(raw string) TypedPath {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Format returns the canonical string form of the path.
func (p TypedPath) Format() string {
	return p.raw
}

// String implements fmt.Stringer.
func (p TypedPath) String() string {
	return p.raw
}

// IsZero reports whether p is the zero value (never produced by Parse).
func (p TypedPath) IsZero() bool {
	return p.raw == ""
}

// Segments splits the path on '/' and '.' boundaries, in the order they
// appear, discarding empty segments produced by repeated separators.
func (p TypedPath) Segments() []string {
	fields := strings.FieldsFunc(p.raw, func(r rune) bool {
		return r == '/' || r == '.'
	})
	return fields
}

// MarshalText implements encoding.TextMarshaler so TypedPath serializes as
// a bare JSON string rather than an object.
func (p TypedPath) MarshalText() ([]byte, error) {
	return []byte(p.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *TypedPath) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
