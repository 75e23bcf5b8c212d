package geometry

import "math"

// LineIntersection returns the point at which segments a and b cross, if
// any. Collinear and parallel segments never report an intersection,
// even if they overlap; endpoints touching exactly are reported as an
// intersection.
//
// Grounded on the line-line intersection test used by the original
// vectorizer's graph builder to split crossing segments that do not
// share an endpoint, a condition common in vectorized line drawings.
func LineIntersection(a, b Line) (Point, bool) {
	x1, y1 := a.Start.X, a.Start.Y
	x2, y2 := a.End.X, a.End.Y
	x3, y3 := b.Start.X, b.Start.Y
	x4, y4 := b.End.X, b.End.Y

	denom := (x2-x1)*(y4-y3) - (y2-y1)*(x4-x3)
	if denom == 0 {
		return Point{}, false
	}

	t := ((x3-x1)*(y4-y3) - (y3-y1)*(x4-x3)) / denom
	u := ((x3-x1)*(y2-y1) - (y3-y1)*(x2-x1)) / denom

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}

	return Point{
		X: x1 + t*(x2-x1),
		Y: y1 + t*(y2-y1),
	}, true
}

// AngleBetweenDegrees returns the angle, in degrees from 0 to 90, between
// the lines along two unit direction vectors; opposite directions give 0.
func AngleBetweenDegrees(dx1, dy1, dx2, dy2 float64) float64 {
	dot := dx1*dx2 + dy1*dy2
	// direction vectors from Direction() are already unit length or
	// zero; guard against tiny floating error pushing dot outside
	// [-1, 1] before acos.
	if dot > 1 {
		dot = 1
	}
	if dot < -1 {
		dot = -1
	}
	angle := math.Acos(dot) * 180 / math.Pi
	if angle > 90 {
		angle = 180 - angle
	}
	return angle
}
