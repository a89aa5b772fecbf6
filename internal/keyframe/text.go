package keyframe

import (
	"fmt"
	"strings"

	"github.com/ivlev/layeranim/internal/textline"
)

// FormatSlot renders one slot line without the trailing newline.
func FormatSlot(s Slot) string {
	return fmt.Sprintf("%d\t%d\t%d\t%d\t%d", s.Frame, s.X, s.Y, s.Opacity, int(s.Effect))
}

// ParseSlot reads one slot line. prev is the frame of the preceding slot (0
// for the first); a slot must lie strictly after it.
//
// Fewer than two leading integers, a non-positive frame or an out-of-order
// frame make the line Invalid. Missing trailing fields default to 0, and an
// out-of-range opacity or effect is clamped; those lines are Partial.
func ParseSlot(line string, prev int) (Slot, textline.Status) {
	vals, _ := textline.LeadingInts(line, 5)
	if len(vals) < 2 || vals[0] <= 0 || vals[0] <= prev {
		return Slot{}, textline.Invalid
	}

	st := textline.Complete
	if len(vals) < 5 {
		st = textline.Partial
		vals = append(vals, make([]int, 5-len(vals))...)
	}

	s := Slot{Frame: vals[0], X: vals[1], Y: vals[2], Opacity: vals[3], Effect: Effect(vals[4])}
	if s.Opacity < 0 || s.Opacity > MaxOpacity {
		s.Opacity = min(max(s.Opacity, 0), MaxOpacity)
		st = textline.Partial
	}
	if s.Effect != Linear && s.Effect != Smooth {
		s.Effect = Linear
		st = textline.Partial
	}
	return s, st
}

// FormatTrack renders a track, one slot per line.
func FormatTrack(t Track) string {
	var b strings.Builder
	for _, s := range t {
		b.WriteString(FormatSlot(s))
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseTrack reads slot lines until the first Invalid one. With limit > 0 at
// most limit slots are kept; the rest count as dropped in the result.
func ParseTrack(text string, limit int) (Track, textline.Result) {
	var (
		t    Track
		res  textline.Result
		prev int
	)
	for n, line := range textline.Lines(text) {
		s, st := ParseSlot(line, prev)
		if !res.Add(n+1, st) {
			break
		}
		prev = s.Frame
		if limit > 0 && len(t) >= limit {
			res.Dropped++
			continue
		}
		t = append(t, s)
	}
	return t, res
}
