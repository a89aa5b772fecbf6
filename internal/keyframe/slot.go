// Package keyframe holds per-layer position keyframes and resolves a layer's
// position and opacity at any frame.
package keyframe

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Effect selects how the segment starting at a slot is interpolated.
type Effect int

const (
	Linear Effect = iota
	Smooth
)

func (e Effect) String() string {
	switch e {
	case Linear:
		return "linear"
	case Smooth:
		return "smooth"
	default:
		return fmt.Sprintf("effect(%d)", int(e))
	}
}

// MaxOpacity is the fully opaque value.
const MaxOpacity = 100

// Slot is one authored anchor of a layer's motion path.
type Slot struct {
	Frame   int    `yaml:"frame"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Opacity int    `yaml:"opacity"` // 0..100
	Effect  Effect `yaml:"effect"`
}

// Position is the part of a layer record the interpolator writes.
type Position struct {
	X, Y    int
	Opacity int
}

// Track is a layer's slots, ascending by frame with at most one slot per
// frame. Every slot has Frame > 0.
type Track []Slot

// Find returns the index of the first slot with Frame >= frame, or len(t).
func (t Track) Find(frame int) int {
	lo, hi := 0, len(t)
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if t[m].Frame < frame {
			lo = m + 1
		} else {
			hi = m
		}
	}
	return lo
}

// Set inserts s, or overwrites the slot already at s.Frame. Later slots
// shift down by one; with limit > 0 a track that would exceed limit loses its
// last slot and dropped reports that. A slot that would itself land past the
// limit is not stored.
func (t Track) Set(s Slot, limit int) (out Track, dropped bool) {
	i := t.Find(s.Frame)
	if i < len(t) && t[i].Frame == s.Frame {
		t[i] = s
		return t, false
	}
	if limit > 0 && i >= limit {
		return t, true
	}
	t = append(t, Slot{})
	copy(t[i+1:], t[i:])
	t[i] = s
	if limit > 0 && len(t) > limit {
		return t[:limit], true
	}
	return t, false
}

// Remove deletes the slot at frame, if any.
func (t Track) Remove(frame int) (Track, bool) {
	i := t.Find(frame)
	if i == len(t) || t[i].Frame != frame {
		return t, false
	}
	return append(t[:i], t[i+1:]...), true
}

// Valid reports whether t satisfies the ordering invariant.
func (t Track) Valid() bool {
	prev := 0
	for _, s := range t {
		if s.Frame <= prev {
			return false
		}
		prev = s.Frame
	}
	return true
}

// MarshalYAML writes the effect by name.
func (e Effect) MarshalYAML() (interface{}, error) {
	return e.String(), nil
}

// UnmarshalYAML accepts an effect name or its number.
func (e *Effect) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "linear", "0":
		*e = Linear
	case "smooth", "1":
		*e = Smooth
	default:
		return fmt.Errorf("unknown effect %q", value.Value)
	}
	return nil
}
