// Package orchestrator sequences animation and graph controllers each
// tick, stages blackboard inputs into them, and merges their writes into
// a single deterministic Frame.
package orchestrator

import (
	"sync/atomic"

	"github.com/vizij-ai/vizij-go-runtime/engine/blackboard"
	"github.com/vizij-ai/vizij-go-runtime/engine/diagnostics"
	"github.com/vizij-ai/vizij-go-runtime/engine/path"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
	"github.com/vizij-ai/vizij-go-runtime/engine/writebatch"
)

type entry struct {
	id         string
	controller Controller
	subs       Subscriptions
}

// Frame is the result of one orchestrator tick.
type Frame struct {
	Epoch        uint64
	MergedWrites *writebatch.WriteBatch
	Diagnostics  *diagnostics.Summary
}

// Orchestrator holds the blackboard and every registered animation and
// graph controller, each keyed by a unique string id, plus the Schedule
// that governs their per-tick ordering.
type Orchestrator struct {
	blackboard *blackboard.Blackboard
	schedule   Schedule
	epoch      atomic.Uint64

	animations []entry
	graphs     []entry
}

// Option is a functional option for configuring an Orchestrator, applied
// directly to the instance during construction.
type Option func(*Orchestrator)

// WithSchedule sets the tick schedule. Defaults to SinglePass.
func WithSchedule(s Schedule) Option {
	return func(o *Orchestrator) { o.schedule = s }
}

// WithAnimationController registers an animation controller under id with
// the given Subscriptions, evaluated during each tick's animation phase.
func WithAnimationController(id string, c *AnimationController, subs Subscriptions) Option {
	return func(o *Orchestrator) { o.animations = append(o.animations, entry{id: id, controller: c, subs: subs}) }
}

// WithGraphController registers a graph controller under id with the
// given Subscriptions, evaluated during each tick's graph phase.
func WithGraphController(id string, c *GraphController, subs Subscriptions) Option {
	return func(o *Orchestrator) { o.graphs = append(o.graphs, entry{id: id, controller: c, subs: subs}) }
}

// New constructs an Orchestrator over a fresh blackboard, applying options
// in order. Later options that register the same id append a second
// controller under that id; callers are responsible for id uniqueness.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		blackboard: blackboard.New(),
		schedule:   SinglePass,
	}
	for _, opt := range options {
		opt(o)
	}
	return o
}

// Blackboard exposes the orchestrator's blackboard for host reads between
// ticks.
func (o *Orchestrator) Blackboard() *blackboard.Blackboard { return o.blackboard }

// Epoch returns the number of ticks processed so far. Safe to call from a
// goroutine other than the one driving Step, since ticks themselves are
// not reentrant but the counter is read with atomic semantics.
func (o *Orchestrator) Epoch() uint64 { return o.epoch.Load() }

func (o *Orchestrator) stageInputs(subs Subscriptions) map[string]value.Value {
	if len(subs.Inputs) == 0 {
		return nil
	}
	staged := make(map[string]value.Value, len(subs.Inputs))
	for _, raw := range subs.Inputs {
		p, err := path.Parse(raw)
		if err != nil {
			continue
		}
		if e, ok := o.blackboard.Get(p); ok {
			staged[raw] = e.Value
		}
	}
	return staged
}

// runOne stages subs.Inputs into e's controller, steps it, filters the
// resulting batch through subs.Outputs, and — only when MirrorWrites is
// set — applies the filtered batch to the blackboard at the current
// epoch and returns it for inclusion in the frame. Any other write
// remains purely internal to the controller.
func (o *Orchestrator) runOne(e entry, dt float32, log *diagnostics.Summary) *writebatch.WriteBatch {
	e.controller.Stage(o.stageInputs(e.subs))
	batch, clog, err := e.controller.Step(dt)
	if clog != nil {
		log.Merge(clog)
	}
	if err != nil {
		log.Addf(e.id, "EvaluationError", "controller %q: %v", e.id, err)
	}
	filtered := e.subs.filterWrites(batch)
	if !e.subs.MirrorWrites {
		return writebatch.New()
	}
	o.blackboard.Apply(filtered, o.epoch.Load())
	return filtered
}

// Step advances the orchestrator by one tick: it increments epoch, then
// runs controllers per the configured Schedule, and returns the merged
// Frame.
func (o *Orchestrator) Step(dt float32) Frame {
	epoch := o.epoch.Add(1)
	log := diagnostics.NewSummary()
	merged := writebatch.New()

	switch o.schedule {
	case TwoPass:
		for _, e := range o.graphs {
			merged.Append(o.runOne(e, dt, log))
		}
		for _, e := range o.graphs {
			merged.Append(o.runOne(e, dt, log))
		}
		for _, e := range o.animations {
			merged.Append(o.runOne(e, dt, log))
		}
	default: // SinglePass
		for _, e := range o.animations {
			merged.Append(o.runOne(e, dt, log))
		}
		for _, e := range o.graphs {
			merged.Append(o.runOne(e, dt, log))
		}
	}

	return Frame{Epoch: epoch, MergedWrites: merged, Diagnostics: log}
}
