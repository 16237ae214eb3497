package animation

import (
	"github.com/vizij-ai/vizij-go-runtime/common"
	"github.com/vizij-ai/vizij-go-runtime/engine/clip"
	"github.com/vizij-ai/vizij-go-runtime/engine/path"
)

// InstId is a dense, engine-assigned identifier for an instance.
type InstId uint32

// instance binds a player to a loaded clip with a blend weight and local
// time remapping.
type instance struct {
	id       InstId
	playerID PlayerId
	animID   clip.AnimID

	weight      float32
	timeScale   float32
	startOffset float32
	enabled     bool

	// bindings maps track index within the clip to a row id in the
	// engine's shared BindingTable. Tracks without an entry were
	// unresolved at the last prebind and are skipped during sampling.
	bindings map[int]int
}

// InstanceConfig seeds an instance's initial blend parameters.
type InstanceConfig struct {
	Weight      float32
	TimeScale   float32
	StartOffset float32
	Enabled     bool
}

// DefaultInstanceConfig returns the config used when the caller passes a
// zero-value InstanceConfig: full weight, unit time scale, enabled.
func DefaultInstanceConfig() InstanceConfig {
	return InstanceConfig{Weight: 1, TimeScale: 1, StartOffset: 0, Enabled: true}
}

func newInstance(id InstId, playerID PlayerId, animID clip.AnimID, cfg InstanceConfig) *instance {
	if cfg == (InstanceConfig{}) {
		cfg = DefaultInstanceConfig()
	}
	cfg.TimeScale = common.Coalesce(cfg.TimeScale, 1)
	return &instance{
		id:          id,
		playerID:    playerID,
		animID:      animID,
		weight:      cfg.Weight,
		timeScale:   cfg.TimeScale,
		startOffset: cfg.StartOffset,
		enabled:     cfg.Enabled,
		bindings:    make(map[int]int),
	}
}

func (inst *instance) applyUpdate(u InstanceUpdate) {
	if u.Weight != nil {
		inst.weight = *u.Weight
	}
	if u.TimeScale != nil {
		inst.timeScale = *u.TimeScale
	}
	if u.StartOffset != nil {
		inst.startOffset = *u.StartOffset
	}
	if u.Enabled != nil {
		inst.enabled = *u.Enabled
	}
}

// localTime maps a player's current time to this instance's clip-local
// time, per spec §4.3.
func (inst *instance) localTime(playerTime float32) float32 {
	return (playerTime - inst.startOffset) * inst.timeScale
}

// TargetResolver is the host-provided contract used during prebind to turn
// a track's canonical animatable path into an opaque target handle.
type TargetResolver interface {
	Resolve(p path.TypedPath) (handle string, ok bool)
}

// BindingRow is one resolved (path, handle) pair shared by every instance
// whose tracks address the same path.
type BindingRow struct {
	Path   path.TypedPath
	Handle string
}

// BindingTable is a flat, deduplicated table of resolved target bindings.
// Bindings are a many-to-one relationship (many channels, one handle);
// representing them as a flat table plus per-instance index sets avoids
// back-references between instances and targets.
type BindingTable struct {
	rows   []BindingRow
	byPath map[string]int
}

// NewBindingTable returns an empty BindingTable.
func NewBindingTable() *BindingTable {
	return &BindingTable{byPath: make(map[string]int)}
}

// upsert resolves p to its row id, inserting a new row if p hasn't been
// seen before.
func (b *BindingTable) upsert(p path.TypedPath, handle string) int {
	key := p.Format()
	if id, ok := b.byPath[key]; ok {
		b.rows[id].Handle = handle
		return id
	}
	id := len(b.rows)
	b.rows = append(b.rows, BindingRow{Path: p, Handle: handle})
	b.byPath[key] = id
	return id
}

// Row retrieves a binding row by id.
func (b *BindingTable) Row(id int) (BindingRow, bool) {
	if id < 0 || id >= len(b.rows) {
		return BindingRow{}, false
	}
	return b.rows[id], true
}

// Len returns the number of distinct bindings in the table.
func (b *BindingTable) Len() int {
	return len(b.rows)
}
