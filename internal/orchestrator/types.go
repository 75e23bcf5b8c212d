package orchestrator

import (
	"context"
	"time"

	"github.com/ironsheep/floorplan-detectd/internal/geometry"
	"github.com/ironsheep/floorplan-detectd/internal/roomdetect"
)

// Strategy is one of the closed set of detection strategies spec.md
// §4.10 names.
type Strategy string

const (
	GraphOnly           Strategy = "graph_only"
	SVGAlgorithmic      Strategy = "svg_algorithmic"
	SVGAIParser         Strategy = "svg_ai_parser"
	SVGCombined         Strategy = "svg_combined"
	VTracerOnly         Strategy = "vtracer_only"
	VTracerAIParser     Strategy = "vtracer_ai_parser"
	HybridVision        Strategy = "hybrid_vision"
	GPT5Only            Strategy = "gpt5_only"
	ConnectedComponents Strategy = "connected_components"
	BestAvailable       Strategy = "best_available"
	Ensemble            Strategy = "ensemble"
)

// Request is the orchestrator's input, a superset covering every
// strategy's requirements; a given strategy only reads the fields it
// needs. Absent fields are not rejected up front: graph_only with no
// Lines or svg_algorithmic with empty SVGText returns no rooms, and an
// image strategy with no ImageBytes fails with the error of the
// sub-engine it calls.
type Request struct {
	Lines               []geometry.Line
	SVGText             string
	ImageBytes          []byte
	ImageMIME           string
	Strategy            Strategy
	AreaThreshold       float64
	DoorThreshold       float64
	ConfidenceThreshold float64
	VisionModel         string
}

// MethodTiming records one sub-engine invocation's outcome, collected in
// invocation order.
type MethodTiming struct {
	Method   string
	Duration time.Duration
	Err      string
	TimedOut bool
}

// Metadata accompanies every DetectionResult, per spec.md §3's
// `metadata: {graph_rooms, vision_rooms, yolo_rooms, per_method_timings}`.
// GraphRooms/VisionRooms/YOLORooms are mutually exclusive per-request:
// whichever single engine (or, for best_available/ensemble, whichever
// winning engine) actually produced Rooms gets credited, the other two
// stay zero. The three buckets are grounded on
// `detector_orchestrator.rs`'s DetectionMetadata fields
// graph_based_rooms/vision_classified/yolo_detected: graph_rooms covers
// every cycle-detection engine (graph_only, the svg_*/vtracer_* family,
// hybrid_vision's final graph pass), vision_rooms covers gpt5_only's
// direct multimodal room extraction (no graph step), and yolo_rooms
// covers connected_components — the closest in-scope analog to the
// original's raster object-detection bucket, since the object-detection
// model runtime itself is out of scope per spec.md §1.
type Metadata struct {
	GraphRooms       int
	VisionRooms      int
	YOLORooms        int
	PerMethodTimings []MethodTiming
	Truncated        bool
	CurveHandling    string
}

// DetectionResult is the orchestrator's output, matching spec.md §3's
// DetectionResult shape: rooms, the strategy that actually produced
// them (method_used), the total wall-clock cost of the request
// (execution_time_ms), and Metadata.
type DetectionResult struct {
	Rooms           []roomdetect.Room
	MethodUsed      Strategy
	ExecutionTimeMs int64
	Metadata        Metadata
}

// Vectorizer models the out-of-scope raster-to-vector collaborator
// named in spec.md §1 (VTracer or equivalent). Production wiring calls
// out to an external process or service; this interface lets
// vtracer_only/vtracer_ai_parser/hybrid_vision compose against it
// without this module depending on a concrete vectorizer.
type Vectorizer interface {
	VectorizeToSVG(ctx context.Context, imageBytes []byte, mimeType string) (svgText string, err error)
}
