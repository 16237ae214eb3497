// Package writebatch implements the WriteOp/WriteBatch types that carry
// per-frame writes from the animation and graph engines to the blackboard
// and, ultimately, to the host.
package writebatch

import (
	"github.com/vizij-ai/vizij-go-runtime/engine/path"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
)

// WriteOp is a single write to a canonical path. Shape is optional — nil
// when the writer has no structural metadata to attach.
type WriteOp struct {
	Path  path.TypedPath
	Value value.Value
	Shape *value.Shape
}

// WriteBatch is an ordered collection of WriteOps. Order is significant:
// the orchestrator's merge policy is last-wins per path, so insertion
// order determines which write survives.
type WriteBatch struct {
	ops []WriteOp
}

// New returns an empty WriteBatch.
func New() *WriteBatch {
	return &WriteBatch{}
}

// Push appends a single WriteOp.
func (b *WriteBatch) Push(op WriteOp) {
	b.ops = append(b.ops, op)
}

// PushValue appends a WriteOp built from its parts, for the common case of
// no shape metadata.
func (b *WriteBatch) PushValue(p path.TypedPath, v value.Value) {
	b.Push(WriteOp{Path: p, Value: v})
}

// Append concatenates another batch's ops onto b, in order.
func (b *WriteBatch) Append(other *WriteBatch) {
	if other == nil {
		return
	}
	b.ops = append(b.ops, other.ops...)
}

// Ops returns the batch's ops in insertion order. The returned slice is
// owned by the batch and must not be mutated by the caller.
func (b *WriteBatch) Ops() []WriteOp {
	return b.ops
}

// Len returns the number of ops currently staged.
func (b *WriteBatch) Len() int {
	return len(b.ops)
}
