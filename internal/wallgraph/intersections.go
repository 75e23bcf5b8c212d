package wallgraph

import (
	"sort"

	"github.com/ironsheep/floorplan-detectd/internal/geometry"
)

// splitAtIntersections finds every pairwise segment crossing and splits
// both crossing lines there. Grounds the IntersectionMode enrichment
// used for SVG/vectorizer-derived line sets, where crossing walls
// commonly do not share an endpoint the way explicit `lines` input
// does.
func splitAtIntersections(lines []geometry.Line) []geometry.Line {
	splits := make([][]geometry.Point, len(lines))

	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			point, ok := geometry.LineIntersection(lines[i], lines[j])
			if !ok {
				continue
			}
			if isStrictInterior(point, lines[i]) {
				splits[i] = append(splits[i], point)
			}
			if isStrictInterior(point, lines[j]) {
				splits[j] = append(splits[j], point)
			}
		}
	}

	var result []geometry.Line
	for i, line := range lines {
		result = append(result, splitLine(line, splits[i])...)
	}
	return result
}

// isStrictInterior reports whether p lies strictly between line's
// endpoints at PointKey precision — i.e. it rounds to neither endpoint.
func isStrictInterior(p geometry.Point, line geometry.Line) bool {
	key := geometry.KeyOf(p)
	return key != geometry.KeyOf(line.Start) && key != geometry.KeyOf(line.End)
}

// splitLine cuts line at each of splitPoints (assumed to lie on the
// segment), returning the ordered, non-degenerate sub-segments from
// Start to End.
func splitLine(line geometry.Line, splitPoints []geometry.Point) []geometry.Line {
	if len(splitPoints) == 0 {
		return []geometry.Line{line}
	}

	dx, dy := line.End.X-line.Start.X, line.End.Y-line.Start.Y
	lengthSq := dx*dx + dy*dy

	type withT struct {
		point geometry.Point
		t     float64
	}
	ordered := make([]withT, 0, len(splitPoints)+2)
	ordered = append(ordered, withT{line.Start, 0})
	for _, p := range splitPoints {
		t := 0.0
		if lengthSq > 0 {
			t = ((p.X-line.Start.X)*dx + (p.Y-line.Start.Y)*dy) / lengthSq
		}
		ordered = append(ordered, withT{p, t})
	}
	ordered = append(ordered, withT{line.End, 1})

	sort.Slice(ordered, func(a, b int) bool { return ordered[a].t < ordered[b].t })

	var segments []geometry.Line
	for i := 0; i+1 < len(ordered); i++ {
		start, end := ordered[i].point, ordered[i+1].point
		if geometry.KeyOf(start) == geometry.KeyOf(end) {
			continue
		}
		segments = append(segments, geometry.Line{Start: start, End: end, IsLoadBearing: line.IsLoadBearing})
	}
	return segments
}
