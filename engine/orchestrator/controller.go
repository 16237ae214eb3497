package orchestrator

import (
	"github.com/vizij-ai/vizij-go-runtime/engine/animation"
	"github.com/vizij-ai/vizij-go-runtime/engine/diagnostics"
	"github.com/vizij-ai/vizij-go-runtime/engine/graph"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
	"github.com/vizij-ai/vizij-go-runtime/engine/writebatch"
)

// Controller is one evaluable unit the Orchestrator sequences each tick:
// an animation engine or a graph runtime, wrapped behind a uniform
// stage/step contract so the scheduler doesn't need to know which.
type Controller interface {
	// Stage receives this tick's subscribed blackboard inputs, keyed by
	// canonical path string, before Step runs.
	Stage(inputs map[string]value.Value)

	// Step advances the controller by dt and returns its write batch.
	Step(dt float32) (*writebatch.WriteBatch, *diagnostics.Summary, error)
}

// AnimationController adapts an animation.Engine to the Controller
// interface. Queued player/instance commands are consumed on the next
// Step and cleared afterward.
type AnimationController struct {
	engine  *animation.Engine
	pending animation.Inputs
}

// NewAnimationController wraps engine for orchestrator scheduling.
func NewAnimationController(engine *animation.Engine) *AnimationController {
	return &AnimationController{engine: engine}
}

// QueueCommands stages player commands and instance updates to be applied
// on the controller's next Step.
func (c *AnimationController) QueueCommands(inputs animation.Inputs) {
	c.pending.PlayerCommands = append(c.pending.PlayerCommands, inputs.PlayerCommands...)
	c.pending.InstanceUpdates = append(c.pending.InstanceUpdates, inputs.InstanceUpdates...)
}

// Stage is a no-op: the animation engine has no blackboard-path inputs of
// its own, only player/instance commands queued via QueueCommands.
func (c *AnimationController) Stage(map[string]value.Value) {}

// Step advances the wrapped engine by dt and applies any queued commands.
func (c *AnimationController) Step(dt float32) (*writebatch.WriteBatch, *diagnostics.Summary, error) {
	batch, log := c.engine.UpdateWriteBatch(dt, c.pending)
	c.pending = animation.Inputs{}
	return batch, log, nil
}

// Engine exposes the wrapped animation.Engine for host configuration
// (LoadAnimation, CreatePlayer, AddInstance, Prebind).
func (c *AnimationController) Engine() *animation.Engine { return c.engine }

// GraphController adapts a graph.Runtime to the Controller interface.
// Subscribed inputs are injected as synthetic node outputs keyed by the
// subscribed path string under output key "value", so a GraphSpec node
// can read a blackboard value by wiring an InputConnection to that
// path as its upstream node id.
type GraphController struct {
	runtime *graph.Runtime
	spec    graph.GraphSpec
	staged  map[string]value.Value
}

// NewGraphController wraps runtime, evaluating spec on each Step.
func NewGraphController(runtime *graph.Runtime, spec graph.GraphSpec) *GraphController {
	return &GraphController{runtime: runtime, spec: spec}
}

// Stage records this tick's subscribed blackboard values for injection.
func (c *GraphController) Stage(inputs map[string]value.Value) {
	c.staged = inputs
}

// Step advances the graph epoch, injects staged inputs as synthetic
// outputs, then evaluates the spec.
func (c *GraphController) Step(dt float32) (*writebatch.WriteBatch, *diagnostics.Summary, error) {
	c.runtime.AdvanceEpoch()
	c.runtime.InjectExternal(c.staged)
	log, err := c.runtime.Evaluate(c.spec, dt)
	return c.runtime.Writes, log, err
}

// Runtime exposes the wrapped graph.Runtime for host inspection.
func (c *GraphController) Runtime() *graph.Runtime { return c.runtime }

// SetSpec replaces the evaluated GraphSpec, taking effect on the next Step.
func (c *GraphController) SetSpec(spec graph.GraphSpec) { c.spec = spec }
