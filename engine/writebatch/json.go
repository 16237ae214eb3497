package writebatch

import (
	"encoding/json"
	"fmt"

	"github.com/vizij-ai/vizij-go-runtime/engine/path"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
)

// writeOpJSON is the wire shape for a single WriteOp.
type writeOpJSON struct {
	Path  string        `json:"path"`
	Value value.Value   `json:"value"`
	Shape *value.Shape  `json:"shape,omitempty"`
}

// MarshalJSON encodes the batch as a bare JSON array of write ops, per the
// WriteBatch JSON schema.
func (b *WriteBatch) MarshalJSON() ([]byte, error) {
	out := make([]writeOpJSON, 0, len(b.ops))
	for _, op := range b.ops {
		out = append(out, writeOpJSON{
			Path:  op.Path.Format(),
			Value: op.Value,
			Shape: op.Shape,
		})
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a batch from a JSON array of write ops, preserving
// array order.
func (b *WriteBatch) UnmarshalJSON(data []byte) error {
	var in []writeOpJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("writebatch: decode: %w", err)
	}
	b.ops = make([]WriteOp, 0, len(in))
	for i, op := range in {
		p, err := path.Parse(op.Path)
		if err != nil {
			return fmt.Errorf("writebatch: op %d: %w", i, err)
		}
		b.ops = append(b.ops, WriteOp{Path: p, Value: op.Value, Shape: op.Shape})
	}
	return nil
}
