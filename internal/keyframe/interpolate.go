package keyframe

import "github.com/ivlev/layeranim/internal/geom"

// DefaultCurviness is the tangent damping used for Smooth segments.
const DefaultCurviness = 0.35

// Interpolator resolves a track at arbitrary frames.
type Interpolator struct {
	Curviness float64
}

// NewInterpolator creates an Interpolator with the default curviness
func NewInterpolator() Interpolator {
	return Interpolator{Curviness: DefaultCurviness}
}

// Apply writes the position and opacity of track t at frame into p. With no
// slots p is left untouched and Apply returns false.
func (ip Interpolator) Apply(t Track, frame int, p *Position) bool {
	n := len(t)
	if n == 0 {
		return false
	}

	i := t.Find(frame)
	// After the last keyframe hold the last one
	if i == n {
		setSlot(p, t[n-1])
		return true
	}
	// Exact hit, or before the first keyframe
	if i == 0 || t[i].Frame == frame {
		setSlot(p, t[i])
		return true
	}

	a, b := t[i-1], t[i]
	p1 := float64(b.Frame-frame) / float64(b.Frame-a.Frame)
	p2 := 1 - p1

	p.X = geom.Round(p1*float64(a.X) + p2*float64(b.X))
	p.Y = geom.Round(p1*float64(a.Y) + p2*float64(b.Y))
	p.Opacity = geom.Round(p1*float64(a.Opacity) + p2*float64(b.Opacity))

	if a.Effect != Smooth {
		return true
	}

	// Neighbours repeat at the ends of the track
	i0, i3 := i-2, i+1
	if i0 < 0 {
		i0 = i - 1
	}
	if i3 >= n {
		i3 = i
	}
	s0, s3 := t[i0], t[i3]

	v := geom.Palin(p2, ip.Curviness,
		vec(s0), vec(a), vec(b), vec(s3),
		float64(a.Frame-s0.Frame), float64(b.Frame-a.Frame), float64(s3.Frame-b.Frame))
	p.X = geom.Round(v.X)
	p.Y = geom.Round(v.Y)
	return true
}

func setSlot(p *Position, s Slot) {
	p.X, p.Y, p.Opacity = s.X, s.Y, s.Opacity
}

func vec(s Slot) geom.Vec {
	return geom.Vec{X: float64(s.X), Y: float64(s.Y)}
}
