package clip

import (
	"encoding/json"
	"fmt"

	"github.com/vizij-ai/vizij-go-runtime/engine/diagnostics"
	"github.com/vizij-ai/vizij-go-runtime/engine/path"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
)

type vec2JSON struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type transitionsJSON struct {
	In  *vec2JSON `json:"in,omitempty"`
	Out *vec2JSON `json:"out,omitempty"`
}

type keypointJSON struct {
	ID          string           `json:"id"`
	Stamp       float32          `json:"stamp"`
	Value       value.Value      `json:"value"`
	Transitions *transitionsJSON `json:"transitions,omitempty"`
}

type trackJSON struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	AnimatableID string            `json:"animatableId"`
	Points       []keypointJSON    `json:"points"`
	Settings     map[string]string `json:"settings,omitempty"`
}

type animationDataJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Tracks      []trackJSON     `json:"tracks"`
	Groups      json.RawMessage `json:"groups,omitempty"`
	Transitions json.RawMessage `json:"transitions,omitempty"`
	Duration    uint32          `json:"duration"`
}

// ParseJSON decodes the stored-animation JSON schema into an AnimationData.
// It does not validate the result; callers typically pass the result
// directly to Store.Load, which validates before assigning an AnimID.
func ParseJSON(data []byte) (AnimationData, error) {
	var in animationDataJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return AnimationData{}, &diagnostics.IOError{Cause: fmt.Errorf("clip: decode: %w", err)}
	}

	out := AnimationData{
		ID:         in.ID,
		Name:       in.Name,
		DurationMs: in.Duration,
	}

	for _, t := range in.Tracks {
		animPath, err := path.Parse(t.AnimatableID)
		if err != nil {
			return AnimationData{}, &diagnostics.IOError{Cause: fmt.Errorf("clip: track %s: %w", t.ID, err)}
		}

		track := Track{
			ID:           t.ID,
			Name:         t.Name,
			AnimatableID: animPath,
			Settings:     t.Settings,
		}

		for _, p := range t.Points {
			kp := Keypoint{ID: p.ID, Stamp: p.Stamp, Value: p.Value}
			if p.Transitions != nil {
				if p.Transitions.In != nil {
					v := [2]float32{p.Transitions.In.X, p.Transitions.In.Y}
					kp.TransitionIn = &v
				}
				if p.Transitions.Out != nil {
					v := [2]float32{p.Transitions.Out.X, p.Transitions.Out.Y}
					kp.TransitionOut = &v
				}
			}
			track.Points = append(track.Points, kp)
		}

		out.Tracks = append(out.Tracks, track)
	}

	return out, nil
}

// MarshalJSON encodes the clip in the stored-animation JSON schema.
func (a AnimationData) MarshalJSON() ([]byte, error) {
	out := animationDataJSON{
		ID:       a.ID,
		Name:     a.Name,
		Duration: a.DurationMs,
	}
	for _, t := range a.Tracks {
		tj := trackJSON{
			ID:           t.ID,
			Name:         t.Name,
			AnimatableID: t.AnimatableID.Format(),
			Settings:     t.Settings,
		}
		for _, p := range t.Points {
			pj := keypointJSON{ID: p.ID, Stamp: p.Stamp, Value: p.Value}
			if p.TransitionIn != nil || p.TransitionOut != nil {
				tr := &transitionsJSON{}
				if p.TransitionIn != nil {
					tr.In = &vec2JSON{X: p.TransitionIn[0], Y: p.TransitionIn[1]}
				}
				if p.TransitionOut != nil {
					tr.Out = &vec2JSON{X: p.TransitionOut[0], Y: p.TransitionOut[1]}
				}
				pj.Transitions = tr
			}
			tj.Points = append(tj.Points, pj)
		}
		out.Tracks = append(out.Tracks, tj)
	}
	return json.Marshal(out)
}
