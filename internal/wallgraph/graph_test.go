package wallgraph

import (
	"testing"

	"github.com/ironsheep/floorplan-detectd/internal/geometry"
)

func TestBuildSimpleGraph(t *testing.T) {
	lines := []geometry.Line{
		{Start: geometry.Point{X: 0, Y: 0}, End: geometry.Point{X: 1, Y: 0}},
		{Start: geometry.Point{X: 1, Y: 0}, End: geometry.Point{X: 1, Y: 1}},
	}

	g, err := Build(lines, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("node count = %d, want 3", len(g.Nodes))
	}
	if len(g.Edges) != 2 {
		t.Errorf("edge count = %d, want 2", len(g.Edges))
	}
}

func TestBuildSharedPoints(t *testing.T) {
	shared := geometry.Point{X: 5, Y: 5}
	lines := []geometry.Line{
		{Start: geometry.Point{X: 0, Y: 0}, End: shared},
		{Start: shared, End: geometry.Point{X: 10, Y: 0}},
		{Start: shared, End: geometry.Point{X: 5, Y: 10}},
	}

	g, err := Build(lines, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(g.Nodes) != 4 {
		t.Errorf("node count = %d, want 4", len(g.Nodes))
	}
	if len(g.Edges) != 3 {
		t.Errorf("edge count = %d, want 3", len(g.Edges))
	}
}

func TestBuildEmptyLines(t *testing.T) {
	g, err := Build(nil, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("expected empty graph, got %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
}

func TestBuildDegenerateLineSkipped(t *testing.T) {
	lines := []geometry.Line{
		{Start: geometry.Point{X: 1, Y: 1}, End: geometry.Point{X: 1, Y: 1}},
	}
	g, err := Build(lines, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("expected degenerate line to be skipped, got %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
}

func TestBuildRejectsInvalidCoordinate(t *testing.T) {
	lines := []geometry.Line{
		{Start: geometry.Point{X: 1e10, Y: 0}, End: geometry.Point{X: 1, Y: 1}},
	}
	if _, err := Build(lines, BuildOptions{}); err == nil {
		t.Fatal("expected an error for out-of-bounds coordinate")
	}
}

func TestBuildRejectsTooManyLines(t *testing.T) {
	lines := make([]geometry.Line, MaxLines+1)
	for i := range lines {
		lines[i] = geometry.Line{
			Start: geometry.Point{X: float64(i), Y: 0},
			End:   geometry.Point{X: float64(i), Y: 1},
		}
	}
	if _, err := Build(lines, BuildOptions{}); err == nil {
		t.Fatal("expected an error for too many lines")
	}
}

// door gap: two collinear segments along y=150, one from x=0..190, one
// from x=210..400, with a 20-unit gap. The wall ends nearest the gap
// point along the same line, so bridging should connect them.
func TestBuildBridgesCollinearDoorGap(t *testing.T) {
	lines := []geometry.Line{
		{Start: geometry.Point{X: 0, Y: 150}, End: geometry.Point{X: 190, Y: 150}},
		{Start: geometry.Point{X: 210, Y: 150}, End: geometry.Point{X: 400, Y: 150}},
	}

	g, err := Build(lines, BuildOptions{DoorThreshold: 50})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var doorEdges int
	for _, e := range g.Edges {
		if e.Kind == VirtualDoor {
			doorEdges++
		}
	}
	if doorEdges != 1 {
		t.Errorf("door edges = %d, want 1", doorEdges)
	}
}

// Non-collinear near points (an L corner) within the door threshold
// should not be bridged, since they are not a door gap in the same
// wall line.
func TestBuildDoesNotBridgeNonCollinearGap(t *testing.T) {
	lines := []geometry.Line{
		{Start: geometry.Point{X: 0, Y: 0}, End: geometry.Point{X: 100, Y: 0}},
		{Start: geometry.Point{X: 100, Y: 20}, End: geometry.Point{X: 200, Y: 20}},
	}

	g, err := Build(lines, BuildOptions{DoorThreshold: 50})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for _, e := range g.Edges {
		if e.Kind == VirtualDoor {
			t.Errorf("did not expect a virtual door edge for a non-collinear near gap")
		}
	}
}

// IntersectionMode should split a rectangle's perimeter at the points
// where an internal dividing line touches its edges, even though those
// points are not endpoints of the original perimeter lines.
func TestBuildIntersectionModeSplitsCrossingWalls(t *testing.T) {
	lines := []geometry.Line{
		{Start: geometry.Point{X: 50, Y: 50}, End: geometry.Point{X: 350, Y: 50}},   // top
		{Start: geometry.Point{X: 350, Y: 50}, End: geometry.Point{X: 350, Y: 250}}, // right
		{Start: geometry.Point{X: 350, Y: 250}, End: geometry.Point{X: 50, Y: 250}}, // bottom
		{Start: geometry.Point{X: 50, Y: 250}, End: geometry.Point{X: 50, Y: 50}},   // left
		{Start: geometry.Point{X: 150, Y: 50}, End: geometry.Point{X: 150, Y: 250}}, // divider
	}

	without, err := Build(lines, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(without.Nodes) != 6 {
		// the 4 rectangle corners plus the divider's own 2 endpoints,
		// unconnected to the perimeter since nothing splits it
		t.Errorf("without IntersectionMode, got %d nodes, want 6", len(without.Nodes))
	}

	with, err := Build(lines, BuildOptions{IntersectionMode: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// 4 rectangle corners + 2 split points where the divider meets the
	// top and bottom edges; the divider's own endpoints now coincide
	// with those split points rather than creating new nodes.
	if len(with.Nodes) != 6 {
		t.Errorf("with IntersectionMode, got %d nodes, want 6", len(with.Nodes))
	}
	if !with.HasEdge(indexOfPoint(with, geometry.Point{X: 150, Y: 50}), indexOfPoint(with, geometry.Point{X: 50, Y: 50})) {
		t.Errorf("expected the top edge to be split at the divider's crossing point")
	}
}

func indexOfPoint(g *Graph, p geometry.Point) int {
	key := geometry.KeyOf(p)
	for i, n := range g.Nodes {
		if geometry.KeyOf(n) == key {
			return i
		}
	}
	return -1
}
