package roomdetect

import (
	"github.com/ironsheep/floorplan-detectd/internal/wallgraph"
)

// MaxCycles bounds the total number of cycles enumerated per request.
const MaxCycles = 1000

// MaxCycleLength bounds the number of nodes considered in a single
// cycle search path.
const MaxCycleLength = 100

type dfsFrame struct {
	current int
	parent  int // -1 for "no parent"
	path    []int
}

// findAllCycles enumerates simple cycles of g via DFS from every node,
// in node-insertion order, and deduplicates them by canonical signature.
// truncated reports whether MaxCycles or MaxCycleLength was hit during
// the search.
func findAllCycles(g *wallgraph.Graph) (cycles [][]int, truncated bool) {
	globalVisited := make(map[int]bool)
	var raw [][]int

	for start := 0; start < len(g.Nodes); start++ {
		if len(raw) >= MaxCycles {
			truncated = true
			break
		}
		found, hitLengthCap := findCyclesFromNode(g, start, globalVisited)
		if hitLengthCap {
			truncated = true
		}
		raw = append(raw, found...)
	}

	if len(raw) > MaxCycles {
		raw = raw[:MaxCycles]
		truncated = true
	}

	cycles = deduplicateCycles(raw)
	return cycles, truncated
}

func findCyclesFromNode(g *wallgraph.Graph, start int, globalVisited map[int]bool) (cycles [][]int, hitLengthCap bool) {
	if globalVisited[start] {
		return nil, false
	}

	stack := []dfsFrame{{current: start, parent: -1, path: []int{start}}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(cycles) >= MaxCycles {
			break
		}
		if len(frame.path) > MaxCycleLength {
			hitLengthCap = true
			continue
		}

		for _, edgeIdx := range g.Adjacency[frame.current] {
			edge := g.Edges[edgeIdx]
			neighbor := edge.To
			if neighbor == frame.current {
				neighbor = edge.From
			}

			if neighbor == frame.parent {
				continue
			}

			if neighbor == start && len(frame.path) >= 3 {
				cycles = append(cycles, append([]int(nil), frame.path...))
				continue
			}

			// Cycles through an already-explored start node were found
			// from that node; a node already on this path would make the
			// cycle non-simple.
			if globalVisited[neighbor] {
				continue
			}
			onPath := false
			for _, v := range frame.path {
				if v == neighbor {
					onPath = true
					break
				}
			}
			if !onPath {
				newPath := append(append([]int(nil), frame.path...), neighbor)
				stack = append(stack, dfsFrame{current: neighbor, parent: frame.current, path: newPath})
			}
		}
	}

	globalVisited[start] = true
	return cycles, hitLengthCap
}

// deduplicateCycles removes cycles that are rotations or reversals of
// an already-seen cycle, using the canonical signature below.
func deduplicateCycles(cycles [][]int) [][]int {
	seen := make(map[string]bool)
	var unique [][]int
	for _, cycle := range cycles {
		if len(cycle) < 3 {
			continue
		}
		sig := cycleSignatureKey(cycle)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		unique = append(unique, cycle)
	}
	return unique
}

// cycleSignature returns the lexicographically minimal rotation of
// cycle's node-id sequence, comparing the forward rotation starting at
// the minimum element against the equivalent reverse rotation, and
// returning whichever orientation sorts first.
func cycleSignature(cycle []int) []int {
	n := len(cycle)
	minPos := 0
	for i, v := range cycle {
		if v < cycle[minPos] {
			minPos = i
		}
	}

	forward := make([]int, n)
	for i := 0; i < n; i++ {
		forward[i] = cycle[(minPos+i)%n]
	}

	reverse := make([]int, n)
	for i := 0; i < n; i++ {
		reverse[i] = cycle[(minPos-i+n)%n]
	}

	if lessIntSlice(forward, reverse) {
		return forward
	}
	return reverse
}

func lessIntSlice(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func cycleSignatureKey(cycle []int) string {
	sig := cycleSignature(cycle)
	// sort.Search not needed; build a stable string key from the int
	// signature for map lookups.
	b := make([]byte, 0, len(sig)*7)
	for _, v := range sig {
		b = appendInt(b, v)
		b = append(b, ',')
	}
	return string(b)
}

func appendInt(b []byte, v int) []byte {
	if v == 0 {
		return append(b, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(b)
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	if neg {
		b = append(b, '-')
	}
	// reverse the digits just appended
	end := len(b)
	for i, j := start, end-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}
