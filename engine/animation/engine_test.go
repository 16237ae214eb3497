package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go-runtime/engine/clip"
	"github.com/vizij-ai/vizij-go-runtime/engine/path"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
)

type fakeResolver struct{}

func (fakeResolver) Resolve(p path.TypedPath) (string, bool) {
	return p.Format(), true
}

func scalarRampClip() clip.AnimationData {
	return clip.AnimationData{
		ID:         "ramp",
		DurationMs: 1000,
		Tracks: []clip.Track{
			{
				ID:           "t",
				AnimatableID: path.MustParse("node.t"),
				Points: []clip.Keypoint{
					{Stamp: 0, Value: value.Float32(0)},
					{Stamp: 1, Value: value.Float32(1)},
				},
			},
		},
	}
}

func TestScalarRampTenTicks(t *testing.T) {
	store := clip.NewStore()
	animID, err := store.Load(scalarRampClip())
	require.NoError(t, err)

	e := NewEngine(store, 16)
	playerID := e.CreatePlayer("p")
	instID, err := e.AddInstance(playerID, animID, DefaultInstanceConfig())
	require.NoError(t, err)
	_ = instID

	e.Apply(Inputs{PlayerCommands: []PlayerCommand{
		{PlayerID: playerID, Kind: CmdSetLoopMode, Mode: Loop},
		{PlayerID: playerID, Kind: CmdPlay},
	}})
	e.Prebind(fakeResolver{})

	expected := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.0}
	for i, want := range expected {
		changes, _ := e.UpdateValues(0.1, Inputs{})
		require.Len(t, changes, 1, "tick %d", i)
		assert.InDelta(t, want, changes[0].Value.Float, 1e-4, "tick %d", i)
	}
}

func TestConstantVec3SingleWrite(t *testing.T) {
	store := clip.NewStore()
	data := clip.AnimationData{
		ID:         "const",
		DurationMs: 1000,
		Tracks: []clip.Track{
			{
				ID:           "t",
				AnimatableID: path.MustParse("node.v"),
				Points: []clip.Keypoint{
					{Stamp: 0, Value: value.Vec3Val([3]float32{1, 2, 3})},
					{Stamp: 1, Value: value.Vec3Val([3]float32{1, 2, 3})},
				},
			},
		},
	}
	animID, err := store.Load(data)
	require.NoError(t, err)

	e := NewEngine(store, 16)
	playerID := e.CreatePlayer("p")
	_, err = e.AddInstance(playerID, animID, DefaultInstanceConfig())
	require.NoError(t, err)
	e.Apply(Inputs{PlayerCommands: []PlayerCommand{{PlayerID: playerID, Kind: CmdPlay}}})
	e.Prebind(fakeResolver{})

	batch, _ := e.UpdateWriteBatch(1.0/60, Inputs{})
	require.Equal(t, 1, batch.Len())
	assert.Equal(t, [3]float32{1, 2, 3}, batch.Ops()[0].Value.Vec3)
}

func TestPingPongBounce(t *testing.T) {
	store := clip.NewStore()
	data := clip.AnimationData{
		ID:         "pp",
		DurationMs: 1000,
		Tracks: []clip.Track{
			{
				ID:           "t",
				AnimatableID: path.MustParse("node.t"),
				Points: []clip.Keypoint{
					{Stamp: 0, Value: value.Float32(0)},
					{Stamp: 1, Value: value.Float32(1)},
				},
			},
		},
	}
	animID, err := store.Load(data)
	require.NoError(t, err)

	e := NewEngine(store, 16)
	playerID := e.CreatePlayer("p")
	_, err = e.AddInstance(playerID, animID, DefaultInstanceConfig())
	require.NoError(t, err)
	e.Apply(Inputs{PlayerCommands: []PlayerCommand{
		{PlayerID: playerID, Kind: CmdSetLoopMode, Mode: PingPong},
		{PlayerID: playerID, Kind: CmdPlay},
	}})
	e.Prebind(fakeResolver{})

	_, _ = e.UpdateValues(1.5, Inputs{})
	p := e.players[e.playerIndex[playerID]]
	assert.InDelta(t, 0.5, p.currentTime, 1e-4)
	assert.False(t, p.isForward)
}

func TestApplyEmptyInputsOnPausedEngineProducesEmptyBatch(t *testing.T) {
	store := clip.NewStore()
	animID, err := store.Load(scalarRampClip())
	require.NoError(t, err)

	e := NewEngine(store, 16)
	playerID := e.CreatePlayer("p")
	_, err = e.AddInstance(playerID, animID, DefaultInstanceConfig())
	require.NoError(t, err)
	e.Prebind(fakeResolver{})

	batch, log := e.UpdateWriteBatch(0.1, Inputs{})
	assert.Equal(t, 0, batch.Len())
	assert.Equal(t, 0, log.Len())
}

func TestUnknownPlayerCommandIsDiagnosedNotFatal(t *testing.T) {
	store := clip.NewStore()
	e := NewEngine(store, 16)
	log := e.Apply(Inputs{PlayerCommands: []PlayerCommand{{PlayerID: 999, Kind: CmdPlay}}})
	assert.Equal(t, 1, log.Len())
}

// TestMultiInstanceWeightBlending puts two weighted instances of the same
// clip, bound to the same channel, on two players and checks the
// weight-normalized average the spec's blending rule defines.
func TestMultiInstanceWeightBlending(t *testing.T) {
	store := clip.NewStore()
	animID, err := store.Load(clip.AnimationData{
		ID:         "const",
		DurationMs: 1000,
		Tracks: []clip.Track{{
			ID:           "t",
			AnimatableID: path.MustParse("node.v"),
			Points: []clip.Keypoint{
				{Stamp: 0, Value: value.Float32(10)},
				{Stamp: 1, Value: value.Float32(10)},
			},
		}},
	})
	require.NoError(t, err)

	e := NewEngine(store, 16)
	p1 := e.CreatePlayer("p1")
	p2 := e.CreatePlayer("p2")
	_, err = e.AddInstance(p1, animID, InstanceConfig{Weight: 1, TimeScale: 1, Enabled: true})
	require.NoError(t, err)
	_, err = e.AddInstance(p2, animID, InstanceConfig{Weight: 3, TimeScale: 1, Enabled: true})
	require.NoError(t, err)
	e.Apply(Inputs{PlayerCommands: []PlayerCommand{
		{PlayerID: p1, Kind: CmdPlay},
		{PlayerID: p2, Kind: CmdPlay},
	}})
	e.Prebind(fakeResolver{})

	changes, _ := e.UpdateValues(1.0/60, Inputs{})
	require.Len(t, changes, 1)
	assert.InDelta(t, 10, changes[0].Value.Float, 1e-4)
}

func TestDerivativeReportedOnSecondTick(t *testing.T) {
	store := clip.NewStore()
	animID, err := store.Load(scalarRampClip())
	require.NoError(t, err)

	e := NewEngine(store, 16)
	playerID := e.CreatePlayer("p")
	_, err = e.AddInstance(playerID, animID, DefaultInstanceConfig())
	require.NoError(t, err)
	e.Apply(Inputs{PlayerCommands: []PlayerCommand{{PlayerID: playerID, Kind: CmdPlay}}})
	e.Prebind(fakeResolver{})

	first, _ := e.UpdateValues(0.1, Inputs{})
	require.Len(t, first, 1)
	assert.Nil(t, first[0].Derivative)

	second, _ := e.UpdateValues(0.1, Inputs{})
	require.Len(t, second, 1)
	require.NotNil(t, second[0].Derivative)
	assert.InDelta(t, 1.0, second[0].Derivative.Float, 1e-3)
}

// TestUnresolvedBindingMarksPlayerError regresses the Prebind transition
// path: a track whose AnimatableID the resolver can't map leaves its
// owning player in the Error state, not just a logged diagnostic.
func TestUnresolvedBindingMarksPlayerError(t *testing.T) {
	store := clip.NewStore()
	animID, err := store.Load(scalarRampClip())
	require.NoError(t, err)

	e := NewEngine(store, 16)
	playerID := e.CreatePlayer("p")
	_, err = e.AddInstance(playerID, animID, DefaultInstanceConfig())
	require.NoError(t, err)

	log := e.Prebind(unresolvingResolver{})
	assert.Equal(t, 1, log.Len())

	p := e.players[e.playerIndex[playerID]]
	assert.Equal(t, Error, p.state)
}

// TestShapeMismatchMarksPlayerError regresses the sampling-failure
// transition path: a track whose two straddling keypoints carry
// different value Kinds fails buildSegment's kind check and leaves the
// owning player in the Error state.
func TestShapeMismatchMarksPlayerError(t *testing.T) {
	store := clip.NewStore()
	animID, err := store.Load(clip.AnimationData{
		ID:         "mismatched",
		DurationMs: 1000,
		Tracks: []clip.Track{{
			ID:           "t",
			AnimatableID: path.MustParse("node.v"),
			Points: []clip.Keypoint{
				{Stamp: 0, Value: value.Float32(0)},
				{Stamp: 1, Value: value.Vec3Val([3]float32{1, 2, 3})},
			},
		}},
	})
	require.NoError(t, err)

	e := NewEngine(store, 16)
	playerID := e.CreatePlayer("p")
	_, err = e.AddInstance(playerID, animID, DefaultInstanceConfig())
	require.NoError(t, err)
	e.Apply(Inputs{PlayerCommands: []PlayerCommand{{PlayerID: playerID, Kind: CmdPlay}}})
	e.Prebind(fakeResolver{})

	_, log := e.UpdateWriteBatch(0.5, Inputs{})
	assert.Equal(t, 1, log.Len())

	p := e.players[e.playerIndex[playerID]]
	assert.Equal(t, Error, p.state)
}

type unresolvingResolver struct{}

func (unresolvingResolver) Resolve(path.TypedPath) (string, bool) { return "", false }

func TestInstanceUpdateDisableStopsContributing(t *testing.T) {
	store := clip.NewStore()
	animID, err := store.Load(scalarRampClip())
	require.NoError(t, err)

	e := NewEngine(store, 16)
	playerID := e.CreatePlayer("p")
	instID, err := e.AddInstance(playerID, animID, DefaultInstanceConfig())
	require.NoError(t, err)
	e.Apply(Inputs{PlayerCommands: []PlayerCommand{{PlayerID: playerID, Kind: CmdPlay}}})
	e.Prebind(fakeResolver{})

	disabled := false
	e.Apply(Inputs{InstanceUpdates: []InstanceUpdate{{InstID: instID, Enabled: &disabled}}})

	batch, _ := e.UpdateWriteBatch(0.1, Inputs{})
	assert.Equal(t, 0, batch.Len())
}
