package geometry

import (
	"encoding/json"
	"math"
)

// BoundingBox is an axis-aligned box with XMin <= XMax and YMin <= YMax.
type BoundingBox struct {
	XMin, YMin, XMax, YMax float64
}

// MarshalJSON encodes b as the wire's [xmin, ymin, xmax, ymax] array
// rather than an object, matching the room-detector response shape.
func (b BoundingBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.XMin, b.YMin, b.XMax, b.YMax})
}

// UnmarshalJSON decodes b from a [xmin, ymin, xmax, ymax] array.
func (b *BoundingBox) UnmarshalJSON(data []byte) error {
	var arr [4]float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	b.XMin, b.YMin, b.XMax, b.YMax = arr[0], arr[1], arr[2], arr[3]
	return nil
}

// PolygonArea returns the area of the polygon described by points via the
// shoelace formula: half the absolute value of the sum of
// (x_i*y_(i+1) - x_(i+1)*y_i) over the closed loop. A polygon with fewer
// than 3 points has area 0.
func PolygonArea(points []Point) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return math.Abs(sum) / 2
}

// PolygonBoundingBox returns the coordinate-wise min/max bounding box of
// points. Calling it with an empty slice returns the zero BoundingBox.
func PolygonBoundingBox(points []Point) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	box := BoundingBox{
		XMin: points[0].X, XMax: points[0].X,
		YMin: points[0].Y, YMax: points[0].Y,
	}
	for _, p := range points[1:] {
		box.XMin = math.Min(box.XMin, p.X)
		box.XMax = math.Max(box.XMax, p.X)
		box.YMin = math.Min(box.YMin, p.Y)
		box.YMax = math.Max(box.YMax, p.Y)
	}
	return box
}

// Width returns the bounding box width.
func (b BoundingBox) Width() float64 { return b.XMax - b.XMin }

// Height returns the bounding box height.
func (b BoundingBox) Height() float64 { return b.YMax - b.YMin }

// AspectRatio returns max(w,h) / max(1,min(w,h)), the ratio used by the
// raster component filters and the room-name heuristic.
func (b BoundingBox) AspectRatio() float64 {
	w, h := b.Width(), b.Height()
	longer := math.Max(w, h)
	shorter := math.Max(1, math.Min(w, h))
	return longer / shorter
}

// PointInPolygon reports whether p lies strictly inside the polygon
// described by points, using the standard ray-casting algorithm. Points
// exactly on an edge are not guaranteed to report true or false
// consistently, which is acceptable for the minimal-cycle heuristic that
// consumes this predicate.
func PointInPolygon(p Point, points []Point) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := points[i], points[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xCross := pi.X + (p.Y-pi.Y)/(pj.Y-pi.Y)*(pj.X-pi.X)
			if p.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
