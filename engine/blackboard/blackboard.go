// Package blackboard implements the flat, epoch-stamped value store shared
// across an orchestrator's controllers: every write lands at a canonical
// path, and a later read always sees the last write that path received.
package blackboard

import (
	"sort"

	"github.com/vizij-ai/vizij-go-runtime/engine/path"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
	"github.com/vizij-ai/vizij-go-runtime/engine/writebatch"
)

// Entry is one blackboard row: the current value, its optional structural
// shape, and the epoch it was last written at.
type Entry struct {
	Value     value.Value
	Shape     *value.Shape
	LastEpoch uint64
}

// Blackboard is a flat map from canonical path string to Entry. The core
// runs single-threaded per tick, so no internal locking is required: the
// orchestrator is the sole writer, once per frame, and the sole reader
// during staging.
type Blackboard struct {
	entries map[string]Entry
}

// New returns an empty Blackboard.
func New() *Blackboard {
	return &Blackboard{entries: make(map[string]Entry)}
}

// Get retrieves the entry at p, if present.
func (b *Blackboard) Get(p path.TypedPath) (Entry, bool) {
	e, ok := b.entries[p.Format()]
	return e, ok
}

// Apply merges batch into the blackboard at the given epoch: within the
// batch, a later WriteOp to the same path overwrites an earlier one
// (last-write-wins); across calls, every applied op is stamped with epoch.
func (b *Blackboard) Apply(batch *writebatch.WriteBatch, epoch uint64) {
	if batch == nil {
		return
	}
	for _, op := range batch.Ops() {
		b.entries[op.Path.Format()] = Entry{Value: op.Value, Shape: op.Shape, LastEpoch: epoch}
	}
}

// IterChanged returns the paths of every entry last written at or after sinceEpoch, in
// ascending path order, for deterministic diagnostics output.
func (b *Blackboard) IterChanged(sinceEpoch uint64) []path.TypedPath {
	var keys []string
	for k, e := range b.entries {
		if e.LastEpoch >= sinceEpoch {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]path.TypedPath, 0, len(keys))
	for _, k := range keys {
		out = append(out, path.MustParse(k))
	}
	return out
}

// Len returns the number of distinct paths currently held.
func (b *Blackboard) Len() int {
	return len(b.entries)
}
