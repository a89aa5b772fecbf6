// Package project reads and writes the animation section of a document:
// export settings, the cycle table and every layer's keyframes.
package project

import (
	"github.com/ivlev/layeranim/internal/cycle"
	"github.com/ivlev/layeranim/internal/keyframe"
	"github.com/ivlev/layeranim/internal/textline"
)

// Header is the first line of an animation section.
const Header = "# mtPaint animation"

// Export holds the frame range and output settings of a frame-sequence export.
type Export struct {
	Start  int    `yaml:"start"`
	End    int    `yaml:"end"`
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Delay  int    `yaml:"delay"` // centiseconds per frame
	GIF    bool   `yaml:"gif"`
}

// DefaultExport returns the settings of a fresh document
func DefaultExport() Export {
	return Export{Start: 1, End: 100, Dir: "frames", Prefix: "anim_", Delay: 10, GIF: true}
}

// Project is the persisted animation state. Tracks[i] belongs to layer i,
// layer 0 being the background.
type Project struct {
	Export Export
	Cycles *cycle.Pool
	Tracks []keyframe.Track
}

// New creates an empty project
func New() *Project {
	return &Project{Export: DefaultExport(), Cycles: cycle.NewPool()}
}

// Limits bounds what Decode accepts. Zero fields are unbounded.
type Limits struct {
	PosSlots int
	Cycle    cycle.Limits
}

// Summary tells how much of each table Decode recovered.
type Summary struct {
	Cycles textline.Result
	Tracks []textline.Result
}

// Truncated reports whether any table lost lines.
func (s Summary) Truncated() bool {
	if s.Cycles.Stopped || s.Cycles.Dropped > 0 {
		return true
	}
	for _, r := range s.Tracks {
		if r.Stopped || r.Dropped > 0 {
			return true
		}
	}
	return false
}
