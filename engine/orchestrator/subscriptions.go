package orchestrator

import "github.com/vizij-ai/vizij-go-runtime/engine/writebatch"

// Subscriptions scopes one controller's participation in a tick: which
// blackboard paths are staged into it before evaluation, which of its own
// written paths are eligible to leave the controller, and whether those
// eligible writes actually get merged into the frame (and, in turn, the
// blackboard) or are kept purely internal.
type Subscriptions struct {
	// Inputs lists the canonical paths staged into the controller before
	// its turn. An empty slice stages nothing.
	Inputs []string

	// Outputs whitelists which written paths may leave the controller. A
	// nil or empty slice means no filtering — every write passes.
	Outputs []string

	// MirrorWrites controls whether whitelisted writes are merged into the
	// frame's output batch. When false, the controller still runs and
	// updates its own runtime state, but nothing it writes is visible
	// outside it.
	MirrorWrites bool
}

// filterWrites returns a batch containing only the ops whose path passes
// the outputs whitelist, preserving insertion order.
func (s Subscriptions) filterWrites(batch *writebatch.WriteBatch) *writebatch.WriteBatch {
	if batch == nil {
		return writebatch.New()
	}
	if len(s.Outputs) == 0 {
		return batch
	}
	allow := make(map[string]bool, len(s.Outputs))
	for _, p := range s.Outputs {
		allow[p] = true
	}
	out := writebatch.New()
	for _, op := range batch.Ops() {
		if allow[op.Path.Format()] {
			out.Push(op)
		}
	}
	return out
}
