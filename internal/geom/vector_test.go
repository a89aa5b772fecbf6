package geom

import (
	"math"
	"testing"
)

func near(a, b Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestPalinEndpoints(t *testing.T) {
	p0, p1, p2, p3 := Vec{0, 0}, Vec{10, 40}, Vec{50, -20}, Vec{90, 0}

	if got := Palin(0, 0.35, p0, p1, p2, p3, 5, 10, 3); !near(got, p1) {
		t.Errorf("t=0: expected %v, got %v", p1, got)
	}
	if got := Palin(1, 0.35, p0, p1, p2, p3, 5, 10, 3); !near(got, p2) {
		t.Errorf("t=1: expected %v, got %v", p2, got)
	}
}

func TestPalinCollinearMidpoint(t *testing.T) {
	// Evenly spaced points with equal spans are symmetric around the middle segment.
	p0, p1, p2, p3 := Vec{0, 0}, Vec{10, 10}, Vec{20, 20}, Vec{30, 30}
	got := Palin(0.5, 0.35, p0, p1, p2, p3, 4, 4, 4)
	if !near(got, Vec{15, 15}) {
		t.Errorf("expected midpoint {15 15}, got %v", got)
	}
}

func TestPalinZeroSpans(t *testing.T) {
	p := Vec{3, 4}
	got := Palin(0.25, 0.35, p, p, Vec{7, 8}, Vec{7, 8}, 0, 0, -2)
	if math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Fatalf("zero spans produced NaN: %v", got)
	}
}

func TestLerpAndRound(t *testing.T) {
	if got := Lerp(Vec{0, 10}, Vec{10, 20}, 0.25); !near(got, Vec{2.5, 12.5}) {
		t.Errorf("Lerp: got %v", got)
	}

	tests := []struct {
		in   float64
		want int
	}{
		{2.4, 2}, {2.5, 3}, {-2.5, -3}, {-0.4, 0},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
