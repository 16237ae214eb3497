package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vizij-ai/vizij-go-runtime/engine/diagnostics"
)

// Diagnostics mirror to diagnostics.Logger (stderr) on Add; keep test
// output clean since this package's tests deliberately trigger many.
func init() {
	diagnostics.SetOutputDisabled()
}

func TestOnceModeEndsAndEmitsCompleted(t *testing.T) {
	p := newPlayer(1, "p")
	p.state = Playing
	p.mode = Once

	events := p.advance(1.5)
	assert.Equal(t, float32(1), p.currentTime)
	assert.Equal(t, Ended, p.state)
	assert.Len(t, events, 1)
	assert.Equal(t, Completed, events[0].Kind)
}

func TestOnceModeNegativeSpeedEndsAtWindowStart(t *testing.T) {
	p := newPlayer(1, "p")
	p.state = Playing
	p.mode = Once
	p.speed = -1
	p.currentTime = 0.5

	events := p.advance(1.0)
	assert.Equal(t, float32(0), p.currentTime)
	assert.Equal(t, Ended, p.state)
	assert.Len(t, events, 1)
}

// TestPingPongNegativeSpeedStillBounces is a regression test: branching on
// remaining's sign (rather than the stale isForward flag) keeps a
// negative-speed PingPong player bouncing off both window edges instead
// of running currentTime past them.
func TestPingPongNegativeSpeedStillBounces(t *testing.T) {
	p := newPlayer(1, "p")
	p.state = Playing
	p.mode = PingPong
	p.speed = -1
	p.isForward = true
	p.currentTime = 0.2

	p.advance(1.5)
	assert.GreaterOrEqual(t, p.currentTime, float32(0))
	assert.LessOrEqual(t, p.currentTime, float32(1))
}

func TestPingPongZeroLengthWindowDoesNotHang(t *testing.T) {
	p := newPlayer(1, "p")
	p.state = Playing
	p.mode = PingPong
	p.windowStart = 0.5
	p.windowEnd = 0.5

	done := make(chan struct{})
	go func() {
		p.advance(10)
		close(done)
	}()
	select {
	case <-done:
		assert.Equal(t, float32(0.5), p.currentTime)
	case <-time.After(time.Second):
		t.Fatal("advance hung on a zero-length PingPong window")
	}
}

func TestApplyCommandUnknownKindLogsDiagnostic(t *testing.T) {
	p := newPlayer(1, "p")
	log := diagnostics.NewSummary()
	p.applyCommand(PlayerCommand{Kind: CommandKind(99)}, log)
	assert.Equal(t, 1, log.Len())
}

func TestStatePredicatesMirrorOriginal(t *testing.T) {
	assert.Equal(t, "stopped", Stopped.Name())
	assert.Equal(t, "playing", Playing.Name())
	assert.Equal(t, "paused", Paused.Name())
	assert.Equal(t, "ended", Ended.Name())
	assert.Equal(t, "error", Error.Name())

	assert.True(t, Paused.CanResume())
	assert.True(t, Stopped.CanResume())
	assert.True(t, Ended.CanResume())
	assert.False(t, Error.CanResume())
	assert.False(t, Playing.CanResume())

	assert.True(t, Playing.CanPause())
	assert.False(t, Paused.CanPause())

	assert.True(t, Playing.CanStop())
	assert.True(t, Paused.CanStop())
	assert.False(t, Stopped.CanStop())
	assert.False(t, Error.CanStop())
}

// TestMarkErrorHaltsAdvanceUntilStop is a regression test for the
// sampling-failure transition: once a player is marked Error, advance is a
// no-op (state != Playing) and CmdPlay cannot resume it directly, but a
// host's CmdStop still clears it back to Stopped.
func TestMarkErrorHaltsAdvanceUntilStop(t *testing.T) {
	p := newPlayer(1, "p")
	p.state = Playing
	p.currentTime = 0.3
	p.markError()
	assert.Equal(t, Error, p.state)

	events := p.advance(1.0)
	assert.Nil(t, events)
	assert.Equal(t, float32(0.3), p.currentTime, "advance must not move time while in Error")

	log := diagnostics.NewSummary()
	p.applyCommand(PlayerCommand{Kind: CmdPlay}, log)
	assert.Equal(t, Error, p.state, "CmdPlay must not resume directly from Error")
	assert.Equal(t, 1, log.Len())

	p.applyCommand(PlayerCommand{Kind: CmdStop}, diagnostics.NewSummary())
	assert.Equal(t, Stopped, p.state)
}
