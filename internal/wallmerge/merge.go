package wallmerge

import "github.com/ironsheep/floorplan-detectd/internal/geometry"

// DefaultTolerance is the default maximum per-endpoint distance for two
// Lines to be considered a match.
const DefaultTolerance = 5.0

// DefaultConfidenceThreshold is the default minimum source confidence
// required for that source's unmatched lines to be kept.
const DefaultConfidenceThreshold = 0.75

// Source is one input to Merge: a labelled sequence of Lines and the
// confidence attached to that source as a whole.
type Source struct {
	Label      string
	Lines      []geometry.Line
	Confidence float64
}

// MergedLine is one output Line plus the summed source weight backing
// it. A consensus line (born from a matched pair) carries the sum of
// both sources' confidences; a pass-through unmatched line carries its
// own source's confidence.
type MergedLine struct {
	Line   geometry.Line
	Weight float64
}

// Options configures Merge.
type Options struct {
	// Tolerance is the maximum per-endpoint pairing distance. Zero
	// selects DefaultTolerance.
	Tolerance float64
	// ConfidenceThreshold is the minimum source confidence required to
	// keep that source's unmatched lines. Zero selects
	// DefaultConfidenceThreshold.
	ConfidenceThreshold float64
}

// Merge reconciles a and b into a consensus sequence per spec.md §4.9.
func Merge(a, b Source, opts Options) []MergedLine {
	tolerance := opts.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}
	threshold := opts.ConfidenceThreshold
	if threshold == 0 {
		threshold = DefaultConfidenceThreshold
	}

	matchedA := make([]bool, len(a.Lines))
	matchedB := make([]bool, len(b.Lines))

	var merged []MergedLine

	for i, la := range a.Lines {
		bestJ := -1
		bestDist := tolerance*2 + 1
		var bestPairing pairing

		for j, lb := range b.Lines {
			if matchedB[j] {
				continue
			}
			p, totalDist, ok := matchPairing(la, lb, tolerance)
			if !ok {
				continue
			}
			if totalDist < bestDist {
				bestDist = totalDist
				bestJ = j
				bestPairing = p
			}
		}

		if bestJ == -1 {
			continue
		}

		matchedA[i] = true
		matchedB[bestJ] = true
		lb := b.Lines[bestJ]

		merged = append(merged, MergedLine{
			Line:   consensusLine(la, lb, bestPairing),
			Weight: a.Confidence + b.Confidence,
		})
	}

	if a.Confidence >= threshold {
		for i, la := range a.Lines {
			if !matchedA[i] {
				merged = append(merged, MergedLine{Line: la, Weight: a.Confidence})
			}
		}
	}
	if b.Confidence >= threshold {
		for j, lb := range b.Lines {
			if !matchedB[j] {
				merged = append(merged, MergedLine{Line: lb, Weight: b.Confidence})
			}
		}
	}

	return merged
}

// Lines extracts the plain geometry.Lines from a Merge result, for
// callers (like the orchestrator's graph_only stage) that only need the
// geometry and not the per-line weight.
func Lines(merged []MergedLine) []geometry.Line {
	lines := make([]geometry.Line, len(merged))
	for i, m := range merged {
		lines[i] = m.Line
	}
	return lines
}

type pairing int

const (
	pairingDirect   pairing = iota // a.Start-b.Start, a.End-b.End
	pairingReversed                // a.Start-b.End, a.End-b.Start
)

// matchPairing reports whether a and b match within tolerance under
// either endpoint orientation, returning the better-fitting orientation
// and its total paired distance.
func matchPairing(a, b geometry.Line, tolerance float64) (pairing, float64, bool) {
	directStart := a.Start.DistanceTo(b.Start)
	directEnd := a.End.DistanceTo(b.End)
	directOK := directStart <= tolerance && directEnd <= tolerance

	reversedStart := a.Start.DistanceTo(b.End)
	reversedEnd := a.End.DistanceTo(b.Start)
	reversedOK := reversedStart <= tolerance && reversedEnd <= tolerance

	switch {
	case directOK && reversedOK:
		if directStart+directEnd <= reversedStart+reversedEnd {
			return pairingDirect, directStart + directEnd, true
		}
		return pairingReversed, reversedStart + reversedEnd, true
	case directOK:
		return pairingDirect, directStart + directEnd, true
	case reversedOK:
		return pairingReversed, reversedStart + reversedEnd, true
	default:
		return pairingDirect, 0, false
	}
}

func consensusLine(a, b geometry.Line, p pairing) geometry.Line {
	var bStart, bEnd geometry.Point
	if p == pairingReversed {
		bStart, bEnd = b.End, b.Start
	} else {
		bStart, bEnd = b.Start, b.End
	}

	return geometry.Line{
		Start:         midpoint(a.Start, bStart),
		End:           midpoint(a.End, bEnd),
		IsLoadBearing: a.IsLoadBearing || b.IsLoadBearing,
	}
}

func midpoint(p1, p2 geometry.Point) geometry.Point {
	return geometry.Point{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}
}
