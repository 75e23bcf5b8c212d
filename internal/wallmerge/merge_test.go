package wallmerge

import (
	"testing"

	"github.com/ironsheep/floorplan-detectd/internal/geometry"
)

func TestMergeConsensusLineIsMidpointWithSummedWeight(t *testing.T) {
	a := Source{
		Label:      "vectorizer",
		Lines:      []geometry.Line{{Start: geometry.Point{X: 0, Y: 0}, End: geometry.Point{X: 100, Y: 0}}},
		Confidence: 0.6,
	}
	b := Source{
		Label:      "vision",
		Lines:      []geometry.Line{{Start: geometry.Point{X: 2, Y: 0}, End: geometry.Point{X: 98, Y: 0}}},
		Confidence: 0.9,
	}

	merged := Merge(a, b, Options{Tolerance: 5})
	if len(merged) != 1 {
		t.Fatalf("got %d merged lines, want 1 consensus line", len(merged))
	}
	got := merged[0]
	if got.Line.Start.X != 1 || got.Line.End.X != 99 {
		t.Errorf("consensus line = %+v, want midpoints (1,0)-(99,0)", got.Line)
	}
	if got.Weight != 1.5 {
		t.Errorf("Weight = %v, want 1.5 (summed confidence)", got.Weight)
	}
}

func TestMergeReversedOrientationMatches(t *testing.T) {
	a := Source{
		Lines:      []geometry.Line{{Start: geometry.Point{X: 0, Y: 0}, End: geometry.Point{X: 100, Y: 0}}},
		Confidence: 0.9,
	}
	b := Source{
		Lines:      []geometry.Line{{Start: geometry.Point{X: 100, Y: 1}, End: geometry.Point{X: 0, Y: 1}}},
		Confidence: 0.9,
	}

	merged := Merge(a, b, Options{Tolerance: 5})
	if len(merged) != 1 {
		t.Fatalf("got %d merged lines, want 1 (endpoints matched in reversed orientation)", len(merged))
	}
}

func TestMergeUnmatchedLineKeptOnlyAboveThreshold(t *testing.T) {
	a := Source{
		Lines:      []geometry.Line{{Start: geometry.Point{X: 0, Y: 0}, End: geometry.Point{X: 100, Y: 0}}},
		Confidence: 0.9,
	}
	lowConfidenceOnly := Source{
		Lines:      []geometry.Line{{Start: geometry.Point{X: 500, Y: 500}, End: geometry.Point{X: 600, Y: 500}}},
		Confidence: 0.3,
	}

	merged := Merge(a, lowConfidenceOnly, Options{Tolerance: 5, ConfidenceThreshold: 0.75})
	if len(merged) != 1 {
		t.Fatalf("got %d merged lines, want 1 (a's line kept, b's low-confidence unmatched line dropped)", len(merged))
	}
	if merged[0].Line.Start.X != 0 {
		t.Errorf("expected the surviving line to be a's, got %+v", merged[0].Line)
	}
}

// Merger monotonicity: if A's Lines are, within tolerance, a subset of
// B's and both sources clear the confidence threshold, merge(A,B) must
// equal B.
func TestMergeMonotonicity(t *testing.T) {
	shared := geometry.Line{Start: geometry.Point{X: 0, Y: 0}, End: geometry.Point{X: 100, Y: 0}}
	extra := geometry.Line{Start: geometry.Point{X: 0, Y: 50}, End: geometry.Point{X: 100, Y: 50}}

	a := Source{Lines: []geometry.Line{shared}, Confidence: 0.9}
	b := Source{Lines: []geometry.Line{shared, extra}, Confidence: 0.9}

	merged := Lines(Merge(a, b, Options{Tolerance: 5}))
	if len(merged) != 2 {
		t.Fatalf("got %d lines, want 2 (B's full line set)", len(merged))
	}

	want := map[[2]float64]bool{
		{shared.Start.X, shared.End.X}: false,
		{extra.Start.X, extra.End.X}:   false,
	}
	for _, l := range merged {
		want[[2]float64{l.Start.X, l.End.X}] = true
	}
	for k, found := range want {
		if !found {
			t.Errorf("expected line with endpoints x=%v present in merge result", k)
		}
	}
}
