package wallgraph

import (
	"github.com/ironsheep/floorplan-detectd/internal/apierr"
	"github.com/ironsheep/floorplan-detectd/internal/geometry"
)

// MaxLines is the DoS bound on the number of input lines a single
// request may supply.
const MaxLines = 10_000

// DefaultDoorAngleToleranceDegrees is the default angular tolerance used
// when deciding whether two wall ends are "approximately collinear"
// enough to bridge with a virtual door edge.
const DefaultDoorAngleToleranceDegrees = 15.0

// EdgeKind tags a Graph edge as a real wall or a synthesized door
// bridge. Virtual edges are otherwise indistinguishable from walls
// during cycle search.
type EdgeKind int

const (
	Wall EdgeKind = iota
	VirtualDoor
)

// Edge is one edge of the graph: the node indices of its endpoints, its
// kind, and the Line it was built from (or synthesized for VirtualDoor
// edges).
type Edge struct {
	From, To int
	Kind     EdgeKind
	Line     geometry.Line
}

// Graph is an undirected multigraph over wall endpoints. Nodes are
// stored by index; Nodes[i] is the representative (first-seen,
// un-rounded) coordinate for that index's PointKey.
type Graph struct {
	Nodes []geometry.Point
	Edges []Edge

	// Adjacency maps a node index to the indices, in Edges, of edges
	// incident to it. Populated incrementally as edges are added.
	Adjacency [][]int

	keyToNode map[geometry.PointKey]int
}

// NewGraph returns an empty Graph ready for AddLine calls.
func NewGraph() *Graph {
	return &Graph{keyToNode: make(map[geometry.PointKey]int)}
}

// nodeFor returns the node index for p, creating a new node if p's
// PointKey has not been seen before.
func (g *Graph) nodeFor(p geometry.Point) int {
	key := geometry.KeyOf(p)
	if idx, ok := g.keyToNode[key]; ok {
		return idx
	}
	idx := len(g.Nodes)
	g.Nodes = append(g.Nodes, p)
	g.Adjacency = append(g.Adjacency, nil)
	g.keyToNode[key] = idx
	return idx
}

// AddLine inserts line as a Wall edge, creating nodes for its endpoints
// as needed. Degenerate lines (endpoints share a PointKey) are skipped.
func (g *Graph) AddLine(line geometry.Line) {
	if line.IsDegenerate() {
		return
	}
	from := g.nodeFor(line.Start)
	to := g.nodeFor(line.End)
	g.addEdge(from, to, Wall, line)
}

func (g *Graph) addEdge(from, to int, kind EdgeKind, line geometry.Line) {
	edgeIdx := len(g.Edges)
	g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: kind, Line: line})
	g.Adjacency[from] = append(g.Adjacency[from], edgeIdx)
	g.Adjacency[to] = append(g.Adjacency[to], edgeIdx)
}

// HasEdge reports whether nodes a and b are already directly connected.
func (g *Graph) HasEdge(a, b int) bool {
	for _, edgeIdx := range g.Adjacency[a] {
		e := g.Edges[edgeIdx]
		if (e.From == a && e.To == b) || (e.From == b && e.To == a) {
			return true
		}
	}
	return false
}

// BuildOptions configures Build.
type BuildOptions struct {
	// DoorThreshold is the maximum gap distance bridged with a virtual
	// door edge. Zero disables door bridging.
	DoorThreshold float64

	// DoorAngleToleranceDegrees is the maximum angle between a
	// candidate gap and the incident walls at both of its endpoints for
	// the gap to be bridged. Zero selects
	// DefaultDoorAngleToleranceDegrees.
	DoorAngleToleranceDegrees float64

	// IntersectionMode, when true, inserts a node at every pairwise
	// segment crossing discovered via geometry.LineIntersection and
	// splits both crossing walls there, before the graph is built. Off
	// by default: spec.md's graph builder operates purely on explicit
	// Line endpoints, and leaving this off keeps that behavior
	// unaffected for plain `lines`-only input.
	IntersectionMode bool
}

// Build constructs a Graph from lines per opts. It validates every
// coordinate and the MaxLines bound before building.
func Build(lines []geometry.Line, opts BuildOptions) (*Graph, error) {
	if len(lines) > MaxLines {
		return nil, apierr.New(apierr.InputTooLarge, "too many lines in request")
	}
	for _, line := range lines {
		if !line.Start.IsValid() || !line.End.IsValid() {
			return nil, apierr.New(apierr.InvalidCoordinate, "line endpoint out of bounds or non-finite")
		}
	}

	if opts.IntersectionMode {
		lines = splitAtIntersections(lines)
	}

	g := NewGraph()
	for _, line := range lines {
		g.AddLine(line)
	}

	if opts.DoorThreshold > 0 {
		tolerance := opts.DoorAngleToleranceDegrees
		if tolerance == 0 {
			tolerance = DefaultDoorAngleToleranceDegrees
		}
		g.bridgeDoorGaps(opts.DoorThreshold, tolerance)
	}

	return g, nil
}

// incidentDirections returns the unit direction vectors of every wall
// edge incident to node, pointing away from it.
func (g *Graph) incidentDirections(node int) [][2]float64 {
	dirs := make([][2]float64, 0, len(g.Adjacency[node]))
	for _, edgeIdx := range g.Adjacency[node] {
		e := g.Edges[edgeIdx]
		line := e.Line
		if e.To == node {
			// flip so the direction points away from node
			line = geometry.Line{Start: line.End, End: line.Start}
		}
		dx, dy := line.Direction()
		if dx == 0 && dy == 0 {
			continue
		}
		dirs = append(dirs, [2]float64{dx, dy})
	}
	return dirs
}

// bridgeDoorGaps scans every pair of not-yet-connected nodes within
// threshold distance and adds a VirtualDoor edge when the gap direction
// is approximately collinear, within toleranceDegrees, with an incident
// wall direction at both endpoints.
func (g *Graph) bridgeDoorGaps(threshold, toleranceDegrees float64) {
	n := len(g.Nodes)
	type bridge struct {
		from, to int
		line     geometry.Line
	}
	var bridges []bridge

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if g.HasEdge(i, j) {
				continue
			}
			pi, pj := g.Nodes[i], g.Nodes[j]
			distance := pi.DistanceTo(pj)
			if distance <= 0 || distance > threshold {
				continue
			}

			gapLine := geometry.Line{Start: pi, End: pj}
			gdx, gdy := gapLine.Direction()

			if !hasCollinearDirection(g.incidentDirections(i), gdx, gdy, toleranceDegrees) {
				continue
			}
			if !hasCollinearDirection(g.incidentDirections(j), gdx, gdy, toleranceDegrees) {
				continue
			}

			bridges = append(bridges, bridge{from: i, to: j, line: gapLine})
		}
	}

	for _, b := range bridges {
		g.addEdge(b.from, b.to, VirtualDoor, b.line)
	}
}

func hasCollinearDirection(dirs [][2]float64, gdx, gdy, toleranceDegrees float64) bool {
	for _, d := range dirs {
		if geometry.AngleBetweenDegrees(d[0], d[1], gdx, gdy) <= toleranceDegrees {
			return true
		}
	}
	return false
}
