package geom

import "math"

// Vec is a point or displacement on the layer plane.
type Vec struct {
	X, Y float64
}

func (a Vec) Add(b Vec) Vec { return Vec{a.X + b.X, a.Y + b.Y} }

func (a Vec) Sub(b Vec) Vec { return Vec{a.X - b.X, a.Y - b.Y} }

func (a Vec) Scale(k float64) Vec { return Vec{a.X * k, a.Y * k} }

// Lerp performs linear interpolation between a and b
func Lerp(a, b Vec, t float64) Vec {
	return a.Add(b.Sub(a).Scale(t))
}

// Round rounds half away from zero to the nearest integer.
func Round(v float64) int {
	return int(math.Round(v))
}

// Palin returns the point at t (0..1) on the curve segment between p1 and p2.
//
// The segment is a cubic Hermite blend whose end tangents are taken from the
// neighbours p0 and p3 and damped by curviness r. d0, d1 and d2 are the frame
// spans of the segments p0-p1, p1-p2 and p2-p3; they weight the tangents so
// that speed stays continuous across segments of different length. Spans
// below 1 are treated as 1.
func Palin(t, r float64, p0, p1, p2, p3 Vec, d0, d1, d2 float64) Vec {
	d0, d1, d2 = math.Max(d0, 1), math.Max(d1, 1), math.Max(d2, 1)

	m1 := p2.Sub(p0).Scale(2 * r * d1 / (d0 + d1))
	m2 := p3.Sub(p1).Scale(2 * r * d1 / (d1 + d2))

	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return p1.Scale(h00).Add(m1.Scale(h10)).Add(p2.Scale(h01)).Add(m2.Scale(h11))
}
