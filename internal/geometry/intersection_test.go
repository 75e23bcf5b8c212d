package geometry

import "testing"

func TestLineIntersectionCrossing(t *testing.T) {
	a := Line{Start: Point{0, 0}, End: Point{100, 100}}
	b := Line{Start: Point{0, 100}, End: Point{100, 0}}

	p, ok := LineIntersection(a, b)
	if !ok {
		t.Fatal("expected an intersection")
	}
	if p.X != 50 || p.Y != 50 {
		t.Errorf("LineIntersection = %+v, want {50,50}", p)
	}
}

func TestLineIntersectionParallel(t *testing.T) {
	a := Line{Start: Point{0, 0}, End: Point{100, 0}}
	b := Line{Start: Point{0, 10}, End: Point{100, 10}}

	if _, ok := LineIntersection(a, b); ok {
		t.Error("expected parallel lines to not intersect")
	}
}

func TestLineIntersectionOutsideSegments(t *testing.T) {
	a := Line{Start: Point{0, 0}, End: Point{10, 10}}
	b := Line{Start: Point{20, 0}, End: Point{30, 10}}

	if _, ok := LineIntersection(a, b); ok {
		t.Error("expected non-overlapping segments to not intersect")
	}
}

func TestAngleBetweenDegrees(t *testing.T) {
	if got := AngleBetweenDegrees(1, 0, 1, 0); got != 0 {
		t.Errorf("parallel vectors angle = %v, want 0", got)
	}
	if got := AngleBetweenDegrees(1, 0, 0, 1); got != 90 {
		t.Errorf("perpendicular vectors angle = %v, want 90", got)
	}
	if got := AngleBetweenDegrees(1, 0, -1, 0); got != 0 {
		t.Errorf("anti-parallel vectors angle (unsigned, collinear) = %v, want 0", got)
	}
}
