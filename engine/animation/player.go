// Package animation implements the tick-driven animation engine: players
// advance time over a playback window, instances bind a player to a loaded
// clip with a blend weight, and sampling walks each track to produce a
// WriteBatch of resolved channel values.
package animation

import "github.com/vizij-ai/vizij-go-runtime/engine/diagnostics"

// PlayerId is a dense, engine-assigned identifier for a player.
type PlayerId uint32

// Mode selects how a player's time wraps at the playback window bounds.
type Mode int

const (
	Once Mode = iota
	Loop
	PingPong
)

// State is a player's run state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
	Ended
	// Error is entered when sampling an instance bound to this player
	// fails (an unresolved binding or a shape mismatch between a track's
	// keypoints): the player stops advancing until a host issues CmdStop.
	Error
)

// Name returns state's stable, lowercase name.
func (s State) Name() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	case Error:
		return "error"
	default:
		return "stopped"
	}
}

// CanResume reports whether a CmdPlay may move state to Playing. A
// player in Error cannot resume directly; it must be stopped first.
func (s State) CanResume() bool {
	return s == Paused || s == Stopped || s == Ended
}

// CanPause reports whether a CmdPause is meaningful from state.
func (s State) CanPause() bool {
	return s == Playing
}

// CanStop reports whether state represents something actively running
// that a CmdStop would interrupt; Stopped and Error have nothing to
// interrupt. This is advisory (e.g. for a host disabling a Stop button);
// applyCommand's CmdStop handler always resets the player regardless, so
// a host still has a way to clear Error.
func (s State) CanStop() bool {
	return s != Stopped && s != Error
}

// CompletionKind classifies the completion events a player can fire in a
// single tick.
type CompletionKind int

const (
	Completed CompletionKind = iota
	LoopWrapped
	PingPongBounced
)

// CompletionEvent records one completion notification raised while
// advancing a player during a tick.
type CompletionEvent struct {
	PlayerID PlayerId
	Kind     CompletionKind
}

// player holds one player's mutable run state. Players are addressed only
// through the Engine; the zero value is not meaningful on its own.
type player struct {
	id   PlayerId
	name string

	mode  Mode
	state State
	speed float32

	currentTime float32
	windowStart float32
	windowEnd   float32

	isForward       bool
	loopCount       uint32
	loopUntilTarget *float32
}

func newPlayer(id PlayerId, name string) *player {
	return &player{
		id:          id,
		name:        name,
		mode:        Once,
		state:       Stopped,
		speed:       1.0,
		isForward:   true,
		windowStart: 0,
		windowEnd:   1,
	}
}

// windowLen returns the playback window length, guarding against a
// degenerate zero-length window.
func (p *player) windowLen() float32 {
	l := p.windowEnd - p.windowStart
	if l <= 0 {
		return 1
	}
	return l
}

// advance moves the player's current time by dt*speed according to its
// mode, returning any completion events raised this call.
func (p *player) advance(dt float32) []CompletionEvent {
	if p.state != Playing {
		return nil
	}
	step := dt * p.speed
	if !p.isForward {
		step = -step
	}

	var events []CompletionEvent
	switch p.mode {
	case Once:
		t := p.currentTime + step
		if t >= p.windowEnd && step >= 0 {
			p.currentTime = p.windowEnd
			p.state = Ended
			events = append(events, CompletionEvent{PlayerID: p.id, Kind: Completed})
		} else if t <= p.windowStart && step < 0 {
			p.currentTime = p.windowStart
			p.state = Ended
			events = append(events, CompletionEvent{PlayerID: p.id, Kind: Completed})
		} else {
			p.currentTime = t
		}

	case Loop:
		length := p.windowLen()
		t := p.currentTime - p.windowStart + step
		wrapped := false
		for t >= length {
			t -= length
			p.loopCount++
			wrapped = true
		}
		for t < 0 {
			t += length
			p.loopCount++
			wrapped = true
		}
		p.currentTime = p.windowStart + t
		if wrapped {
			events = append(events, CompletionEvent{PlayerID: p.id, Kind: LoopWrapped})
		}
		if p.loopUntilTarget != nil && reachedTarget(p.currentTime, *p.loopUntilTarget, step) {
			p.currentTime = *p.loopUntilTarget
			p.state = Ended
			events = append(events, CompletionEvent{PlayerID: p.id, Kind: Completed})
		}

	case PingPong:
		// Bounce direction for each sub-step is driven by the sign of
		// remaining itself, not by the pre-loop isForward flag: negative
		// speed can make remaining's sign disagree with isForward (it
		// seeds the intended direction, but a negative speed reverses
		// actual motion), so branching on isForward here would silently
		// skip the room/overshoot check and let currentTime run past the
		// window edge without bouncing. isForward records whether the motion
		// actually taken runs in the direction of speed's sign, so the next
		// tick's seed step continues that motion.
		remaining := step
		t := p.currentTime
		if p.windowEnd <= p.windowStart {
			p.currentTime = p.windowStart
			break
		}
		for remaining != 0 {
			if remaining > 0 {
				room := p.windowEnd - t
				if remaining <= room {
					t += remaining
					remaining = 0
					p.isForward = p.speed > 0
				} else {
					t = p.windowEnd
					remaining = room - remaining
					p.isForward = p.speed < 0
					p.loopCount++
					events = append(events, CompletionEvent{PlayerID: p.id, Kind: PingPongBounced})
				}
			} else {
				room := t - p.windowStart
				if -remaining <= room {
					t += remaining
					remaining = 0
					p.isForward = false
				} else {
					t = p.windowStart
					remaining = -(room + remaining)
					p.isForward = true
					p.loopCount++
					events = append(events, CompletionEvent{PlayerID: p.id, Kind: PingPongBounced})
				}
			}
		}
		p.currentTime = t
		if p.loopUntilTarget != nil && t == *p.loopUntilTarget {
			p.state = Ended
			events = append(events, CompletionEvent{PlayerID: p.id, Kind: Completed})
		}
	}
	return events
}

// markError transitions p into the Error state, halting further
// advancement (advance returns immediately once state != Playing) until a
// CmdStop clears it.
func (p *player) markError() {
	p.state = Error
}

func reachedTarget(current, target, step float32) bool {
	if step >= 0 {
		return current >= target
	}
	return current <= target
}

// applyCommand mutates p per cmd, recording a diagnostic in log when the
// command cannot be applied from the current state (InvalidTransition) or
// its kind is unrecognized (UnknownCommand); unknown player ids are handled
// by the caller before applyCommand is reached.
func (p *player) applyCommand(cmd PlayerCommand, log *diagnostics.Summary) {
	switch cmd.Kind {
	case CmdPlay:
		if p.state == Playing {
			break
		}
		if !p.state.CanResume() {
			log.Addf("animation", "InvalidTransition", "player %d: cannot resume from %s state", p.id, p.state.Name())
			break
		}
		p.state = Playing
	case CmdPause:
		if p.state == Error {
			log.Addf("animation", "InvalidTransition", "player %d: cannot pause from %s state", p.id, p.state.Name())
			break
		}
		p.state = Paused
	case CmdStop:
		p.state = Stopped
		p.currentTime = p.windowStart
		p.loopCount = 0
		p.isForward = true
	case CmdSetSpeed:
		p.speed = cmd.Speed
	case CmdSeek:
		p.currentTime = clampf(cmd.Seek, p.windowStart, p.windowEnd)
	case CmdSetLoopMode:
		p.mode = cmd.Mode
	case CmdSetWindow:
		p.windowStart = cmd.WindowStart
		p.windowEnd = cmd.WindowEnd
		p.currentTime = clampf(p.currentTime, p.windowStart, p.windowEnd)
	default:
		log.Addf("animation", "UnknownCommand", "player %d: unrecognized command kind %d", p.id, cmd.Kind)
	}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
