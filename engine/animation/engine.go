package animation

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/vizij-ai/vizij-go-runtime/engine/clip"
	"github.com/vizij-ai/vizij-go-runtime/engine/diagnostics"
	"github.com/vizij-ai/vizij-go-runtime/engine/interp"
	"github.com/vizij-ai/vizij-go-runtime/engine/path"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
	"github.com/vizij-ai/vizij-go-runtime/engine/writebatch"
)

// Metrics accumulates playback counters surfaced for host diagnostics
// dashboards; it is not consulted by any evaluation decision.
type Metrics struct {
	TicksProcessed   uint64
	ChannelsSampled  uint64
	ShapeFallbacks   uint64
	CompletionEvents uint64
}

// Change is one channel's resolved value, the alternate flat shape used by
// update_values for JS-style consumers that prefer arrays of plain
// records over a WriteBatch.
type Change struct {
	Path       path.TypedPath
	Value      value.Value
	Derivative *value.Value
}

// Engine is the animation engine: a clip store plus the live players and
// instances that sample it each tick.
type Engine struct {
	clips    *clip.Store
	registry *interp.Registry
	bindings *BindingTable

	players      []*player
	playerIndex  map[PlayerId]int
	nextPlayerID PlayerId

	instances     []*instance
	instanceIndex map[InstId]int
	nextInstID    InstId

	prevValues map[int]value.Value

	Metrics Metrics
}

// NewEngine constructs an Engine over a clip Store, with a fresh
// interpolation registry bounded to cacheCapacity entries (0 disables
// caching).
func NewEngine(clips *clip.Store, cacheCapacity int) *Engine {
	return &Engine{
		clips:         clips,
		registry:      interp.NewRegistry(cacheCapacity),
		bindings:      NewBindingTable(),
		playerIndex:   make(map[PlayerId]int),
		instanceIndex: make(map[InstId]int),
		prevValues:    make(map[int]value.Value),
	}
}

// LoadAnimation validates and stores data, returning its assigned AnimID.
func (e *Engine) LoadAnimation(data clip.AnimationData) (clip.AnimID, error) {
	return e.clips.Load(data)
}

// CreatePlayer allocates a new player, returning its PlayerId.
func (e *Engine) CreatePlayer(name string) PlayerId {
	id := e.nextPlayerID
	e.nextPlayerID++
	p := newPlayer(id, name)
	e.playerIndex[id] = len(e.players)
	e.players = append(e.players, p)
	return id
}

// AddInstance binds playerID to animID with cfg, returning the new InstId.
// Unknown playerID or animID returns an UnknownIDError.
func (e *Engine) AddInstance(playerID PlayerId, animID clip.AnimID, cfg InstanceConfig) (InstId, error) {
	if _, ok := e.playerIndex[playerID]; !ok {
		return 0, &diagnostics.UnknownIDError{Domain: "player", ID: idString(uint32(playerID))}
	}
	if _, ok := e.clips.Get(animID); !ok {
		return 0, &diagnostics.UnknownIDError{Domain: "animation", ID: idString(uint32(animID))}
	}
	id := e.nextInstID
	e.nextInstID++
	inst := newInstance(id, playerID, animID, cfg)
	e.instanceIndex[id] = len(e.instances)
	e.instances = append(e.instances, inst)
	return id, nil
}

// Apply applies player commands and instance updates, logging a
// diagnostic and dropping the entry for any unknown id rather than
// failing the whole batch.
func (e *Engine) Apply(inputs Inputs) *diagnostics.Summary {
	log := diagnostics.NewSummary()
	for _, cmd := range inputs.PlayerCommands {
		idx, ok := e.playerIndex[cmd.PlayerID]
		if !ok {
			log.Addf("animation", "UnknownId", "player command references unknown player %d", cmd.PlayerID)
			continue
		}
		e.players[idx].applyCommand(cmd, log)
	}
	for _, u := range inputs.InstanceUpdates {
		idx, ok := e.instanceIndex[u.InstID]
		if !ok {
			log.Addf("animation", "UnknownId", "instance update references unknown instance %d", u.InstID)
			continue
		}
		e.instances[idx].applyUpdate(u)
	}
	return log
}

// Prebind resolves every loaded instance's clip tracks against resolver,
// upserting resolved rows into the shared BindingTable and recording each
// instance's track-to-row BindingSet. Unresolved tracks are skipped and
// logged; prebind is idempotent given the same resolver since upsert
// overwrites rather than duplicates rows.
func (e *Engine) Prebind(resolver TargetResolver) *diagnostics.Summary {
	log := diagnostics.NewSummary()
	for _, inst := range e.instances {
		data, ok := e.clips.Get(inst.animID)
		if !ok {
			continue
		}
		for ti, tr := range data.Tracks {
			handle, ok := resolver.Resolve(tr.AnimatableID)
			if !ok {
				err := &diagnostics.UnresolvedBindingError{Path: tr.AnimatableID.Format()}
				log.Addf("animation", "UnresolvedBinding", "instance %d track %d: %v", inst.id, ti, err)
				if idx, ok := e.playerIndex[inst.playerID]; ok {
					e.players[idx].markError()
				}
				continue
			}
			inst.bindings[ti] = e.bindings.upsert(tr.AnimatableID, handle)
		}
	}
	return log
}

// UpdateWriteBatch applies inputs first, advances every playing player by
// dt, samples and blends the enabled instances of every player that is
// neither stopped nor paused, and returns the resulting writes as a
// WriteBatch.
func (e *Engine) UpdateWriteBatch(dt float32, inputs Inputs) (*writebatch.WriteBatch, *diagnostics.Summary) {
	changes, log := e.update(dt, inputs)
	batch := writebatch.New()
	for _, c := range changes {
		batch.PushValue(c.Path, c.Value)
	}
	return batch, log
}

// UpdateValues is UpdateWriteBatch's alternate flat-record shape.
func (e *Engine) UpdateValues(dt float32, inputs Inputs) ([]Change, *diagnostics.Summary) {
	return e.update(dt, inputs)
}

func (e *Engine) update(dt float32, inputs Inputs) ([]Change, *diagnostics.Summary) {
	log := e.Apply(inputs)
	e.Metrics.TicksProcessed++

	for _, p := range e.players {
		events := p.advance(dt)
		e.Metrics.CompletionEvents += uint64(len(events))
	}

	order := make([]int, 0)
	rows := make(map[int]*accumT)

	for _, p := range e.players {
		if p.state == Stopped || p.state == Paused {
			continue
		}
		for _, inst := range e.instances {
			if inst.playerID != p.id || !inst.enabled || inst.weight <= 0 {
				continue
			}
			data, ok := e.clips.Get(inst.animID)
			if !ok || data.DurationMs == 0 {
				continue
			}
			durationSec := float32(data.DurationMs) / 1000
			localTime := inst.localTime(p.currentTime)
			normTime := clampf(localTime, 0, durationSec)
			stampFrac := normTime / durationSec

			for ti, tr := range data.Tracks {
				rowID, ok := inst.bindings[ti]
				if !ok {
					continue
				}
				e.Metrics.ChannelsSampled++

				seg, segErr := buildSegment(tr, stampFrac)
				var sampled value.Value
				if segErr != nil {
					if prev, ok := e.prevValues[rowID]; ok {
						sampled = prev
					} else {
						sampled = tr.Points[0].Value
					}
					log.Addf("animation", "ShapeMismatch", "instance %d track %d: %v", inst.id, ti, segErr)
					e.Metrics.ShapeFallbacks++
					p.markError()
				} else {
					v, err := e.registry.Sample(seg)
					if err != nil {
						if prev, ok := e.prevValues[rowID]; ok {
							v = prev
						} else {
							v = seg.Start
						}
						log.Addf("animation", "ShapeMismatch", "instance %d track %d: %v", inst.id, ti, err)
						e.Metrics.ShapeFallbacks++
						p.markError()
					}
					sampled = v
				}

				a, exists := rows[rowID]
				if !exists {
					row, _ := e.bindings.Row(rowID)
					a = &accumT{path: mustParseHandle(row.Handle)}
					rows[rowID] = a
					order = append(order, rowID)
				}
				accumulate(a, sampled, inst.weight)
			}
		}
	}

	var changes []Change
	for _, rowID := range order {
		a := rows[rowID]
		blended := finalize(a)
		change := Change{Path: a.path, Value: blended}
		if prev, ok := e.prevValues[rowID]; ok {
			if d, ok := derivative(blended, prev, dt); ok {
				change.Derivative = &d
			}
		}
		e.prevValues[rowID] = blended
		changes = append(changes, change)
	}

	return changes, log
}

func idString(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

func mustParseHandle(handle string) path.TypedPath {
	p, err := path.Parse(handle)
	if err != nil {
		return path.TypedPath{}
	}
	return p
}

// buildSegment locates the track segment straddling stampFrac and
// constructs the interp.Segment describing it. A single-point track
// returns a degenerate zero-length segment at that point's value.
func buildSegment(tr clip.Track, stampFrac float32) (interp.Segment, error) {
	pts := tr.Points
	if len(pts) == 1 {
		return interp.Segment{Variant: tr.Variant(), Start: pts[0].Value, End: pts[0].Value, T: 0, StepThreshold: tr.StepThreshold()}, nil
	}

	idx := sort.Search(len(pts), func(i int) bool { return pts[i].Stamp >= stampFrac })
	var lo, hi int
	switch {
	case idx == 0:
		lo, hi = 0, 1
	case idx >= len(pts):
		lo, hi = len(pts)-2, len(pts)-1
	default:
		lo, hi = idx-1, idx
	}

	if pts[lo].Value.Kind != pts[hi].Value.Kind {
		return interp.Segment{}, &diagnostics.ShapeMismatchError{
			Op:      "buildSegment",
			Details: fmt.Sprintf("track %q: keypoint kinds %s vs %s", tr.ID, pts[lo].Value.Kind, pts[hi].Value.Kind),
		}
	}

	span := pts[hi].Stamp - pts[lo].Stamp
	var t float32
	if span > 0 {
		t = (stampFrac - pts[lo].Stamp) / span
	}

	seg := interp.Segment{
		Variant:       tr.Variant(),
		Start:         pts[lo].Value,
		End:           pts[hi].Value,
		TangentOut:    pts[lo].TransitionOut,
		TangentIn:     pts[hi].TransitionIn,
		T:             t,
		StepThreshold: tr.StepThreshold(),
	}
	if lo-1 >= 0 {
		seg.Before = &pts[lo-1].Value
	}
	if hi+1 < len(pts) {
		seg.After = &pts[hi+1].Value
	}
	return seg, nil
}

func accumulate(a *accumT, v value.Value, weight float32) {
	a.sumWeight += weight
	switch v.Kind {
	case value.KindBool, value.KindText, value.KindEnum:
		if !a.bestSet || weight > a.bestWeight {
			a.bestValue = v
			a.bestWeight = weight
			a.bestSet = true
		}
	case value.KindQuat:
		a.isNumeric = true
		if !a.haveQuat {
			a.quatAccum = [4]float32{v.Quat[0] * weight, v.Quat[1] * weight, v.Quat[2] * weight, v.Quat[3] * weight}
			a.haveQuat = true
		} else {
			dot := a.quatAccum[0]*v.Quat[0] + a.quatAccum[1]*v.Quat[1] + a.quatAccum[2]*v.Quat[2] + a.quatAccum[3]*v.Quat[3]
			sign := float32(1)
			if dot < 0 {
				sign = -1
			}
			for i := range a.quatAccum {
				a.quatAccum[i] += sign * v.Quat[i] * weight
			}
		}
		a.bestValue = v
		a.bestSet = true
	default:
		a.isNumeric = true
		if !a.bestSet {
			a.numeric = zeroLike(v)
			a.bestSet = true
		}
		addWeighted(&a.numeric, v, weight)
		a.bestValue = v
	}
}

func finalize(a *accumT) value.Value {
	if a.haveQuat {
		n := vecNormalize4(a.quatAccum)
		return value.QuatVal(n)
	}
	if a.isNumeric && a.sumWeight > 0 {
		return scaleValue(a.numeric, 1/a.sumWeight)
	}
	return a.bestValue
}
