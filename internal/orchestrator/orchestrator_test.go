package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/ironsheep/floorplan-detectd/internal/apierr"
	"github.com/ironsheep/floorplan-detectd/internal/geometry"
	"github.com/ironsheep/floorplan-detectd/internal/roomdetect"
)

func rectangleLines(x0, y0, x1, y1 float64) []geometry.Line {
	a := geometry.Point{X: x0, Y: y0}
	b := geometry.Point{X: x1, Y: y0}
	c := geometry.Point{X: x1, Y: y1}
	d := geometry.Point{X: x0, Y: y1}
	return []geometry.Line{{Start: a, End: b}, {Start: b, End: c}, {Start: c, End: d}, {Start: d, End: a}}
}

func TestStrategyAppliesMatchesInputs(t *testing.T) {
	withLines := Request{Lines: rectangleLines(0, 0, 10, 10)}
	withSVGText := Request{SVGText: "<svg></svg>"}
	withImage := Request{ImageBytes: []byte{1, 2, 3}}

	cases := []struct {
		strategy Strategy
		req      Request
		want     bool
	}{
		{GraphOnly, withLines, true},
		{GraphOnly, withSVGText, false},
		{SVGAlgorithmic, withSVGText, true},
		{SVGAlgorithmic, withImage, false},
		{VTracerOnly, withImage, true},
		{HybridVision, withImage, true},
		{ConnectedComponents, withImage, true},
		{ConnectedComponents, withLines, false},
	}
	for _, c := range cases {
		if got := strategyApplies(c.strategy, c.req); got != c.want {
			t.Errorf("strategyApplies(%s, ...) = %v, want %v", c.strategy, got, c.want)
		}
	}
}

func TestDetectGraphOnlyProducesRoom(t *testing.T) {
	o := New(nil, nil, nil)
	req := Request{
		Strategy:      GraphOnly,
		Lines:         rectangleLines(0, 0, 100, 100),
		AreaThreshold: 10,
	}
	result, err := o.Detect(context.Background(), req)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(result.Rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(result.Rooms))
	}
	if result.MethodUsed != GraphOnly {
		t.Errorf("method used = %s, want %s", result.MethodUsed, GraphOnly)
	}
	if result.Metadata.GraphRooms != 1 {
		t.Errorf("graph rooms = %d, want 1", result.Metadata.GraphRooms)
	}
	if len(result.Metadata.PerMethodTimings) != 1 {
		t.Errorf("got %d timings, want 1", len(result.Metadata.PerMethodTimings))
	}
}

func TestDetectUnknownStrategyFails(t *testing.T) {
	o := New(nil, nil, nil)
	_, err := o.Detect(context.Background(), Request{Strategy: Strategy("not_a_real_strategy")})
	if err == nil {
		t.Fatal("expected an error for an unknown strategy")
	}
}

// TestBestAvailableFallsBackToGraphOnly covers the case where only
// graph input is present: hybrid_vision and vtracer_only do not apply
// (no image bytes), so best_available must fall through to graph_only.
func TestBestAvailableFallsBackToGraphOnly(t *testing.T) {
	o := New(nil, nil, nil)
	req := Request{
		Strategy:      BestAvailable,
		Lines:         rectangleLines(0, 0, 50, 50),
		AreaThreshold: 10,
	}
	result, err := o.Detect(context.Background(), req)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(result.Rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(result.Rooms))
	}
	// method_used reflects the winning sub-strategy, not the
	// best_available meta-selector itself.
	if result.MethodUsed != GraphOnly {
		t.Errorf("method used = %s, want %s", result.MethodUsed, GraphOnly)
	}
}

func TestBestAvailableFailsWhenNoStrategyApplies(t *testing.T) {
	o := New(nil, nil, nil)
	_, err := o.Detect(context.Background(), Request{Strategy: BestAvailable})
	if err == nil {
		t.Fatal("expected AllMethodsFailed when no strategy applies")
	}
	ae, ok := err.(*apierr.Error)
	if !ok || ae.Kind != apierr.AllMethodsFailed {
		t.Errorf("err = %v, want apierr.AllMethodsFailed", err)
	}
}

// TestEnsembleTieBreakPrefersMostRooms mirrors the concrete scenario
// where hybrid_vision returns 6 rooms at mean confidence 0.9 and
// connected_components returns 10 rooms with no confidence at all;
// ensemble must select the 10-room result purely on room count.
func TestEnsembleTieBreakPrefersMostRooms(t *testing.T) {
	confidence := 0.9
	sixRoomsHighConfidence := DetectionResult{Rooms: makeRoomsWithConfidence(6, &confidence)}
	tenRoomsNoConfidence := DetectionResult{Rooms: makeRoomsWithConfidence(10, nil)}

	type candidateAttempt = struct {
		strategy Strategy
		result   DetectionResult
		err      error
		duration time.Duration
	}

	hybrid := candidateAttempt{strategy: HybridVision, result: sixRoomsHighConfidence, duration: 10 * time.Millisecond}
	components := candidateAttempt{strategy: ConnectedComponents, result: tenRoomsNoConfidence, duration: 500 * time.Millisecond}

	if !betterEnsembleCandidate(components, hybrid) {
		t.Error("connected_components (10 rooms) should beat hybrid_vision (6 rooms) regardless of confidence or latency")
	}
	if betterEnsembleCandidate(hybrid, components) {
		t.Error("hybrid_vision (6 rooms) should not beat connected_components (10 rooms)")
	}
}

func TestEnsembleTieBreakPrefersHigherMeanConfidenceOnEqualRoomCount(t *testing.T) {
	high, low := 0.9, 0.4
	type candidateAttempt = struct {
		strategy Strategy
		result   DetectionResult
		err      error
		duration time.Duration
	}
	a := candidateAttempt{strategy: HybridVision, result: DetectionResult{Rooms: makeRoomsWithConfidence(4, &high)}}
	b := candidateAttempt{strategy: GPT5Only, result: DetectionResult{Rooms: makeRoomsWithConfidence(4, &low)}}

	if !betterEnsembleCandidate(a, b) {
		t.Error("higher mean confidence should win when room counts tie")
	}
}

func TestEnsembleTieBreakPrefersLowerLatencyOnFullTie(t *testing.T) {
	conf := 0.8
	type candidateAttempt = struct {
		strategy Strategy
		result   DetectionResult
		err      error
		duration time.Duration
	}
	fast := candidateAttempt{result: DetectionResult{Rooms: makeRoomsWithConfidence(3, &conf)}, duration: 10 * time.Millisecond}
	slow := candidateAttempt{result: DetectionResult{Rooms: makeRoomsWithConfidence(3, &conf)}, duration: 900 * time.Millisecond}

	if !betterEnsembleCandidate(fast, slow) {
		t.Error("lower latency should win a full room-count/confidence tie")
	}
}

func TestMeanConfidenceIgnoresNilEntries(t *testing.T) {
	conf := 0.6
	rooms := append(makeRoomsWithConfidence(2, &conf), makeRoomsWithConfidence(3, nil)...)
	got := meanConfidence(DetectionResult{Rooms: rooms})
	if got != 0.6 {
		t.Errorf("meanConfidence = %v, want 0.6 (nil-confidence rooms excluded)", got)
	}
}

func TestMeanConfidenceOfNoRoomsIsZero(t *testing.T) {
	if got := meanConfidence(DetectionResult{}); got != 0 {
		t.Errorf("meanConfidence of no rooms = %v, want 0", got)
	}
}

func makeRoomsWithConfidence(n int, confidence *float64) []roomdetect.Room {
	rooms := make([]roomdetect.Room, n)
	for i := range rooms {
		rooms[i] = roomdetect.Room{ID: i, Confidence: confidence}
	}
	return rooms
}
