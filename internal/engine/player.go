package engine

import (
	"context"
	"time"
)

// PlayerState enumerates playback states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are callbacks into whatever displays the resolved frames.
type Hooks struct {
	// FrameRendered runs after the layers were updated for frame.
	FrameRendered func(frame int)
}

// Player steps an Animation through a frame range, wrapping from End back to
// Start. Time is supplied from outside, one Tick per frame.
type Player struct {
	State PlayerState
	Start int
	End   int

	anim  *Animation
	frame int
	hooks Hooks
}

// NewPlayer constructs a Player over anim's export range
func NewPlayer(anim *Animation, h Hooks) *Player {
	start, end := anim.Export.Start, anim.Export.End
	if start < 1 {
		start = 1
	}
	if end < start {
		end = start
	}
	return &Player{
		State: Idle,
		Start: start,
		End:   end,
		anim:  anim,
		frame: start,
		hooks: h,
	}
}

// Frame is the frame currently shown.
func (p *Player) Frame() int { return p.frame }

// Play shows the current frame and moves to Running.
func (p *Player) Play() {
	if p.State == Running {
		return
	}
	p.State = Running
	p.show()
}

func (p *Player) Pause() {
	if p.State == Running {
		p.State = Paused
	}
}

// Stop stops playback and rewinds to Start.
func (p *Player) Stop() {
	p.State = Idle
	p.frame = p.Start
}

// Seek shows frame f, clamped into the range.
func (p *Player) Seek(f int) {
	p.frame = min(max(f, p.Start), p.End)
	p.show()
}

// Tick advances one frame while Running.
func (p *Player) Tick() {
	if p.State != Running {
		return
	}
	p.frame++
	if p.frame > p.End {
		p.frame = p.Start
	}
	p.show()
}

func (p *Player) show() {
	p.anim.ApplyFrame(p.frame)
	if p.hooks.FrameRendered != nil {
		p.hooks.FrameRendered(p.frame)
	}
}

// Run plays until ctx is done, ticking every interval. The ticker is the
// only clock; Tick stays a pure step.
func (p *Player) Run(ctx context.Context, interval time.Duration) error {
	p.Play()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			p.Pause()
			return ctx.Err()
		case <-t.C:
			p.Tick()
		}
	}
}
