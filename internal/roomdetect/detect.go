package roomdetect

import (
	"sort"

	"github.com/ironsheep/floorplan-detectd/internal/geometry"
	"github.com/ironsheep/floorplan-detectd/internal/wallgraph"
)

// DefaultAreaThreshold is the minimum room area, in input units^2, a
// cycle must clear to be emitted as a Room.
const DefaultAreaThreshold = 100.0

// DefaultOuterBoundaryRatio is the ratio above which the largest
// surviving cycle is assumed to be the building envelope and discarded.
const DefaultOuterBoundaryRatio = 1.5

// DetectOptions configures DetectRooms.
type DetectOptions struct {
	AreaThreshold      float64
	OuterBoundaryRatio float64
	DetectionMethod    string

	// VerifyMinimalCycle rejects a cycle that is not a minimal graph
	// face: one with a chord (a graph edge joining two of its nodes
	// that are not adjacent in the cycle) or another graph node lying
	// strictly inside its polygon. Intended for graphs built with
	// wallgraph.BuildOptions.IntersectionMode, where a synthesized
	// crossing node can otherwise leave a larger, decomposable cycle
	// (e.g. the union of two sub-rooms split by a divider) indistinguishable
	// from a true room by area and aspect ratio alone.
	VerifyMinimalCycle bool
}

// Result is the outcome of a DetectRooms call.
type Result struct {
	Rooms     []Room
	Truncated bool
}

// DetectRooms enumerates the simple cycles of g, filters them by area,
// applies the outer-boundary heuristic, then (when VerifyMinimalCycle is
// set) drops non-minimal cycles, and returns the surviving cycles as
// Rooms with sequential ids.
func DetectRooms(g *wallgraph.Graph, opts DetectOptions) Result {
	areaThreshold := opts.AreaThreshold
	if areaThreshold == 0 {
		areaThreshold = DefaultAreaThreshold
	}
	outerRatio := opts.OuterBoundaryRatio
	if outerRatio == 0 {
		outerRatio = DefaultOuterBoundaryRatio
	}
	method := opts.DetectionMethod
	if method == "" {
		method = "graph_cycle"
	}

	cycles, truncated := findAllCycles(g)

	type candidate struct {
		points []geometry.Point
		area   float64
		box    geometry.BoundingBox
		cycle  []int
	}

	var candidates []candidate
	for _, cycle := range cycles {
		if len(cycle) < 3 {
			continue
		}

		points := make([]geometry.Point, len(cycle))
		for i, nodeIdx := range cycle {
			points[i] = g.Nodes[nodeIdx]
		}

		area := geometry.PolygonArea(points)
		if area < areaThreshold {
			continue
		}

		candidates = append(candidates, candidate{
			points: points,
			area:   area,
			box:    geometry.PolygonBoundingBox(points),
			cycle:  cycle,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].area > candidates[j].area
	})

	// Outer-boundary filter: only applies when >=2 cycles remain after
	// area thresholding. A single surviving cycle is kept as-is.
	if len(candidates) >= 2 {
		largest := candidates[0].area
		secondLargest := candidates[1].area
		if largest > outerRatio*secondLargest {
			candidates = candidates[1:]
		}
	}

	if opts.VerifyMinimalCycle {
		kept := candidates[:0]
		for _, c := range candidates {
			if isMinimalCycle(g, c.cycle) {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	rooms := make([]Room, 0, len(candidates))
	for id, c := range candidates {
		rooms = append(rooms, Room{
			ID:              id,
			BoundingBox:     c.box,
			Area:            c.area,
			Polygon:         c.points,
			NameHint:        generateNameHint(c.area, c.box),
			Features:        nil,
			DetectionMethod: method,
		})
	}

	return Result{Rooms: rooms, Truncated: truncated}
}
