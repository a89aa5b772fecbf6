// Package engine computes every layer's position, opacity and visibility for
// a requested frame from the stored keyframes and cycles.
package engine

import (
	"errors"
	"slices"

	"github.com/rs/zerolog"

	"github.com/ivlev/layeranim/internal/config"
	"github.com/ivlev/layeranim/internal/cycle"
	"github.com/ivlev/layeranim/internal/keyframe"
	"github.com/ivlev/layeranim/internal/layer"
	"github.com/ivlev/layeranim/internal/project"
)

var (
	ErrFrame = errors.New("key frame must be positive")
	ErrLayer = errors.New("layer index out of range")
)

// Animation owns the keyframe tracks and the cycle pool of one document and
// applies them to its layer table. It is not safe for concurrent use.
type Animation struct {
	Layers layer.Table
	Export project.Export
	Limits config.Limits
	Interp keyframe.Interpolator
	Log    zerolog.Logger

	tracks  []keyframe.Track
	pool    *cycle.Pool
	members []cycle.Membership
}

// New creates an Animation with no keyframes over layers
func New(layers layer.Table, lim config.Limits) *Animation {
	return &Animation{
		Layers:  layers,
		Export:  project.DefaultExport(),
		Limits:  lim,
		Interp:  keyframe.NewInterpolator(),
		Log:     zerolog.Nop(),
		pool:    cycle.NewPool(),
		members: make([]cycle.Membership, layers.Total()+1),
	}
}

// CycleLimits converts the configured limits for the cycle text reader.
func CycleLimits(lim config.Limits) cycle.Limits {
	return cycle.Limits{Cycles: lim.Cycles, Items: lim.CycleItems, Layers: lim.Layers}
}

// ProjectLimits converts the configured limits for the project reader.
func ProjectLimits(lim config.Limits) project.Limits {
	return project.Limits{PosSlots: lim.PosSlots, Cycle: CycleLimits(lim)}
}

// Track returns the keyframes of layer i.
func (a *Animation) Track(i int) keyframe.Track {
	if i < 0 || i >= len(a.tracks) {
		return nil
	}
	return a.tracks[i]
}

// SetTrack replaces the keyframes of layer i. It reports how many slots did
// not fit the slot limit.
func (a *Animation) SetTrack(i int, t keyframe.Track) (dropped int, err error) {
	if i < 0 || i > a.Layers.Total() {
		return 0, ErrLayer
	}
	if !t.Valid() {
		return 0, errors.New("keyframes out of order")
	}
	t = slices.Clone(t)
	if n := a.Limits.PosSlots; n > 0 && len(t) > n {
		dropped = len(t) - n
		t = t[:n]
	}
	for len(a.tracks) <= i {
		a.tracks = append(a.tracks, nil)
	}
	a.tracks[i] = t
	return dropped, nil
}

// Pool returns the cycle pool. Callers that change it must call SetCycles.
func (a *Animation) Pool() *cycle.Pool { return a.pool }

// ApplyFrame writes the state at frame into layers 1..Total. Layers without
// keyframes keep their position and opacity, and layers no cycle applies to
// keep their visibility.
func (a *Animation) ApplyFrame(frame int) {
	for i := 1; i <= a.Layers.Total(); i++ {
		rec := a.Layers.Layer(i)

		pos := keyframe.Position{X: rec.X, Y: rec.Y, Opacity: rec.Opacity}
		if a.Interp.Apply(a.Track(i), frame, &pos) {
			rec.X, rec.Y, rec.Opacity = pos.X, pos.Y, pos.Opacity
		}

		if v, ok := a.Visibility(i, frame); ok {
			rec.Visible = v
		}
	}
}

// Visibility reports the visibility cycles force on layer i at frame.
func (a *Animation) Visibility(i, frame int) (visible, ok bool) {
	if i < 0 || i >= len(a.members) {
		return false, false
	}
	return a.pool.Visibility(a.members[i], frame)
}

// KeyReport lists what SetKeyFrame had to drop to stay within limits.
type KeyReport struct {
	Slots   int  // layers whose last slot fell off, or whose new slot did not fit
	Items   int  // layers left out of the visibility snapshot
	Cycle   bool // a cycle fell off the end of the pool
	Members int  // memberships lost when redistributing cycles
}

func (r KeyReport) Clean() bool {
	return r.Slots == 0 && r.Items == 0 && !r.Cycle && r.Members == 0
}

// SetKeyFrame records the current state of every layer at frame: a position
// slot per layer and a batch toggle holding each layer's visibility.
func (a *Animation) SetKeyFrame(frame int) (KeyReport, error) {
	var rep KeyReport
	if frame <= 0 {
		return rep, ErrFrame
	}

	total := a.Layers.Total()
	items := make([]cycle.Item, 0, total)
	for i := 0; i <= total; i++ {
		rec := a.Layers.Layer(i)
		for len(a.tracks) <= i {
			a.tracks = append(a.tracks, nil)
		}
		slot := keyframe.Slot{Frame: frame, X: rec.X, Y: rec.Y, Opacity: rec.Opacity, Effect: keyframe.Linear}
		var dropped bool
		a.tracks[i], dropped = a.tracks[i].Set(slot, a.Limits.PosSlots)
		if dropped {
			rep.Slots++
		}
		if i > 0 {
			it := cycle.Item{Layer: i}
			if !rec.Visible {
				it.Phase = 1
			}
			items = append(items, it)
		}
	}

	_, lost, droppedCycle, err := a.pool.SetBatch(frame, items, a.Limits.Cycles, a.Limits.CycleItems)
	if err != nil {
		return rep, err
	}
	rep.Items = lost
	rep.Cycle = droppedCycle != nil
	rep.Members = a.scatter().Lost()

	if !rep.Clean() {
		a.Log.Warn().Int("frame", frame).
			Int("slots", rep.Slots).Int("items", rep.Items).
			Bool("cycle", rep.Cycle).Int("members", rep.Members).
			Msg("key frame truncated")
	}
	a.Log.Debug().Int("frame", frame).Int("layers", total).Msg("key frame set")
	return rep, nil
}

// RemoveKeyFrame deletes every slot at frame and the batch toggle there. It
// returns the number of slots removed.
func (a *Animation) RemoveKeyFrame(frame int) int {
	n := 0
	for i := range a.tracks {
		var ok bool
		if a.tracks[i], ok = a.tracks[i].Remove(frame); ok {
			n++
		}
	}
	for _, c := range a.pool.Cycles() {
		if c.Batch() && c.Frame0 == frame {
			a.pool.Remove(c.ID)
			a.scatter()
			break
		}
	}
	return n
}

// ClearKeyFrames removes all keyframes and cycles.
func (a *Animation) ClearKeyFrames() {
	a.tracks = nil
	a.pool.Clear()
	a.members = make([]cycle.Membership, a.Layers.Total()+1)
	a.Log.Debug().Msg("key frames cleared")
}

// SetCycles replaces the cycle pool and rebuilds every layer's membership.
func (a *Animation) SetCycles(p *cycle.Pool) cycle.Report {
	a.pool = p
	return a.scatter()
}

// Membership returns layer i's cycle list.
func (a *Animation) Membership(i int) cycle.Membership {
	if i < 0 || i >= len(a.members) {
		return nil
	}
	return slices.Clone(a.members[i])
}

// SetMembership replaces layer i's cycle list and regroups the pool from the
// per-layer lists. The stored list is re-derived from the pool, so it comes
// back in pool order.
func (a *Animation) SetMembership(i int, m cycle.Membership) (cycle.Report, error) {
	if i < 0 || i > a.Layers.Total() {
		return cycle.Report{}, ErrLayer
	}
	for len(a.members) <= a.Layers.Total() {
		a.members = append(a.members, nil)
	}
	a.members[i] = slices.Clone(m)
	rep := a.pool.Gather(a.members, a.Limits.CycleItems)
	srep := a.scatter()
	rep.Dropped += srep.Dropped
	rep.Invalid += srep.Invalid
	return rep, nil
}

func (a *Animation) scatter() cycle.Report {
	var rep cycle.Report
	a.members, rep = a.pool.Scatter(a.Layers.Total(), a.Limits.CycleItems)
	if rep.Lost() > 0 {
		a.Log.Warn().Int("dropped", rep.Dropped).Int("invalid", rep.Invalid).Msg("cycle memberships truncated")
	}
	return rep
}

// Load replaces keyframes, cycles and export settings with those of p.
func (a *Animation) Load(p *project.Project) cycle.Report {
	a.Export = p.Export
	a.tracks = nil
	for i, t := range p.Tracks {
		if i > a.Layers.Total() {
			a.Log.Warn().Int("layer", i).Msg("keyframes for missing layer ignored")
			break
		}
		if _, err := a.SetTrack(i, t); err != nil {
			a.Log.Warn().Err(err).Int("layer", i).Msg("keyframes ignored")
		}
	}
	pool := p.Cycles
	if pool == nil {
		pool = cycle.NewPool()
	}
	return a.SetCycles(pool)
}

// Project returns the persisted form of the animation. Every layer gets a
// track entry, including the background.
func (a *Animation) Project() *project.Project {
	p := &project.Project{Export: a.Export, Cycles: a.pool}
	p.Tracks = make([]keyframe.Track, a.Layers.Total()+1)
	for i := range p.Tracks {
		p.Tracks[i] = a.Track(i)
	}
	return p
}
