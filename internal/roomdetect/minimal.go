package roomdetect

import (
	"github.com/ironsheep/floorplan-detectd/internal/geometry"
	"github.com/ironsheep/floorplan-detectd/internal/wallgraph"
)

// isMinimalCycle reports whether cycle is a minimal face of g: no graph
// edge joins two of its nodes without being one of the cycle's own
// boundary edges (a "chord", which would mean the cycle is really the
// union of two or more smaller faces), and no other graph node lies
// strictly inside its polygon.
//
// Grounded on the original vectorizer's is_minimal_cycle_vtracer, which
// exists because IntersectionMode can synthesize a node in the interior
// of what would otherwise look like a single room, splitting it into
// faces that a pure area/aspect-ratio filter cannot tell apart from the
// union they compose.
func isMinimalCycle(g *wallgraph.Graph, cycle []int) bool {
	n := len(cycle)
	inCycle := make(map[int]bool, n)
	for _, node := range cycle {
		inCycle[node] = true
	}

	adjacent := make(map[[2]int]bool, n)
	for i := 0; i < n; i++ {
		a, b := cycle[i], cycle[(i+1)%n]
		adjacent[[2]int{a, b}] = true
		adjacent[[2]int{b, a}] = true
	}

	for _, edge := range g.Edges {
		if edge.From == edge.To {
			continue
		}
		if !inCycle[edge.From] || !inCycle[edge.To] {
			continue
		}
		if !adjacent[[2]int{edge.From, edge.To}] {
			return false
		}
	}

	points := make([]geometry.Point, n)
	for i, node := range cycle {
		points[i] = g.Nodes[node]
	}
	for idx, p := range g.Nodes {
		if inCycle[idx] {
			continue
		}
		if geometry.PointInPolygon(p, points) {
			return false
		}
	}

	return true
}
