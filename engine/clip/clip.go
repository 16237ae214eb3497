// Package clip implements the immutable animation clip store: tracks of
// keypoints addressed by canonical path, loaded from the stored-animation
// JSON schema and validated at load time.
package clip

import (
	"fmt"

	"github.com/vizij-ai/vizij-go-runtime/engine/diagnostics"
	"github.com/vizij-ai/vizij-go-runtime/engine/path"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
)

// AnimID is a dense, store-assigned identifier for a loaded clip.
type AnimID uint32

// Keypoint is a single sample within a Track: a normalized stamp in
// [0,1], the sampled Value, and optional outgoing/incoming bezier
// control-point tangents.
type Keypoint struct {
	ID    string
	Stamp float32
	Value value.Value

	// TransitionIn is the incoming tangent handle, present on every
	// keypoint except the first.
	TransitionIn *[2]float32

	// TransitionOut is the outgoing tangent handle, present on every
	// keypoint except the last.
	TransitionOut *[2]float32
}

// Track is a sequence of keypoints bound to a canonical animatable path.
// Points must be ordered by strictly ascending Stamp.
type Track struct {
	ID           string
	Name         string
	AnimatableID path.TypedPath
	Points       []Keypoint
	Settings     map[string]string
}

// Variant returns the interpolation variant configured for this track via
// its Settings["variant"] entry, defaulting to "Linear" when absent or
// empty. Unrecognized values are returned as-is; the interpolation
// registry samples them as Linear.
func (t Track) Variant() string {
	if t.Settings == nil {
		return "Linear"
	}
	if v, ok := t.Settings["variant"]; ok && v != "" {
		return v
	}
	return "Linear"
}

// StepThreshold returns the configured Step-interpolation hold threshold,
// defaulting to 1.0 per the interpolation design.
func (t Track) StepThreshold() float32 {
	if t.Settings == nil {
		return 1.0
	}
	if s, ok := t.Settings["stepThreshold"]; ok {
		var f float32
		if _, err := fmt.Sscanf(s, "%f", &f); err == nil {
			return f
		}
	}
	return 1.0
}

// AnimationData is an immutable animation clip: a set of tracks sharing a
// duration, addressed by AnimID once loaded into a Store.
type AnimationData struct {
	ID         string
	Name       string
	Tracks     []Track
	DurationMs uint32
}

// Validate checks the invariants required at load time: positive
// duration, every track has at least one point, stamps are ascending and
// within [0,1], and interior segments that imply a non-linear variant
// carry the tangent handles that variant requires.
func (a AnimationData) Validate() error {
	if a.DurationMs == 0 {
		return &diagnostics.InvalidClipError{Reason: "duration must be > 0"}
	}
	for ti, tr := range a.Tracks {
		if len(tr.Points) == 0 {
			return &diagnostics.InvalidClipError{Reason: fmt.Sprintf("track %d (%s) has no points", ti, tr.ID)}
		}
		var last float32 = -1
		for pi, pt := range tr.Points {
			if pt.Stamp < 0 || pt.Stamp > 1 {
				return &diagnostics.InvalidClipError{Reason: fmt.Sprintf("track %d point %d stamp %v out of [0,1]", ti, pi, pt.Stamp)}
			}
			if pt.Stamp <= last {
				return &diagnostics.InvalidClipError{Reason: fmt.Sprintf("track %d point %d stamp %v not strictly ascending", ti, pi, pt.Stamp)}
			}
			last = pt.Stamp
			if pi > 0 && pt.TransitionIn == nil && requiresTangents(tr.Variant()) {
				return &diagnostics.InvalidClipError{Reason: fmt.Sprintf("track %d point %d missing incoming transition for variant %s", ti, pi, tr.Variant())}
			}
			if pi < len(tr.Points)-1 && pt.TransitionOut == nil && requiresTangents(tr.Variant()) {
				return &diagnostics.InvalidClipError{Reason: fmt.Sprintf("track %d point %d missing outgoing transition for variant %s", ti, pi, tr.Variant())}
			}
		}
	}
	return nil
}

func requiresTangents(variant string) bool {
	switch variant {
	case "CubicBezier", "EaseIn", "EaseOut", "EaseInOut":
		return true
	default:
		return false
	}
}

// Store holds immutable, dense-id-addressed clips shared by all players
// and instances that reference them.
type Store struct {
	clips []AnimationData
}

// NewStore returns an empty clip Store.
func NewStore() *Store {
	return &Store{}
}

// Load validates data and, on success, assigns it a dense AnimID and
// stores it. Clips are immutable once loaded.
func (s *Store) Load(data AnimationData) (AnimID, error) {
	if err := data.Validate(); err != nil {
		return 0, err
	}
	id := AnimID(len(s.clips))
	s.clips = append(s.clips, data)
	return id, nil
}

// Get retrieves a loaded clip by id.
func (s *Store) Get(id AnimID) (AnimationData, bool) {
	if int(id) < 0 || int(id) >= len(s.clips) {
		return AnimationData{}, false
	}
	return s.clips[id], true
}

// Len returns the number of loaded clips.
func (s *Store) Len() int {
	return len(s.clips)
}
