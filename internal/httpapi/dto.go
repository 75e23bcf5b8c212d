package httpapi

import (
	"encoding/base64"

	"github.com/ironsheep/floorplan-detectd/internal/apierr"
	"github.com/ironsheep/floorplan-detectd/internal/geometry"
	"github.com/ironsheep/floorplan-detectd/internal/orchestrator"
	"github.com/ironsheep/floorplan-detectd/internal/roomdetect"
)

// defaultAreaThreshold mirrors the default area_threshold the original
// transport assumes when a request omits it.
const defaultAreaThreshold = 100.0

// detectRequest is the wire shape of POST /detect.
type detectRequest struct {
	Lines         []geometry.Line `json:"lines"`
	AreaThreshold *float64        `json:"area_threshold,omitempty"`
	DoorThreshold *float64        `json:"door_threshold,omitempty"`
}

// enhancedDetectRequest is the wire shape of POST /detect/enhanced.
type enhancedDetectRequest struct {
	Lines               []geometry.Line `json:"lines,omitempty"`
	ImageBase64         string          `json:"image_base64,omitempty"`
	Strategy            string          `json:"strategy"`
	AreaThreshold       *float64        `json:"area_threshold,omitempty"`
	DoorThreshold       *float64        `json:"door_threshold,omitempty"`
	ConfidenceThreshold *float64        `json:"confidence_threshold,omitempty"`
	VisionModel         string          `json:"vision_model,omitempty"`
}

// svgDetectRequest is the wire shape of POST /detect/svg.
type svgDetectRequest struct {
	SVGText       string   `json:"svg_text"`
	Strategy      string   `json:"strategy"`
	AreaThreshold *float64 `json:"area_threshold,omitempty"`
}

// uploadImageRequest is the wire shape of POST /upload-image.
type uploadImageRequest struct {
	ImageBase64   string   `json:"image_base64"`
	AreaThreshold *float64 `json:"area_threshold,omitempty"`
	DoorThreshold *float64 `json:"door_threshold,omitempty"`
}

// detectResponse is the wire shape every detection endpoint returns,
// matching spec.md §3's DetectionResult: rooms, method_used,
// execution_time_ms, and metadata.
type detectResponse struct {
	Rooms           []roomdetect.Room `json:"rooms"`
	TotalRooms      int               `json:"total_rooms"`
	MethodUsed      string            `json:"method_used"`
	ExecutionTimeMs int64             `json:"execution_time_ms"`
	Metadata        responseMetadata  `json:"metadata"`
}

type responseMetadata struct {
	GraphRooms    int      `json:"graph_rooms"`
	VisionRooms   int      `json:"vision_rooms"`
	YOLORooms     int      `json:"yolo_rooms"`
	Truncated     bool     `json:"truncated,omitempty"`
	CurveHandling string   `json:"curve_handling,omitempty"`
	Timings       []timing `json:"per_method_timings,omitempty"`
}

type timing struct {
	Method     string `json:"method"`
	DurationMs int64  `json:"duration_ms"`
	Err        string `json:"error,omitempty"`
	TimedOut   bool   `json:"timed_out,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func toDetectionResponse(result orchestrator.DetectionResult) detectResponse {
	timings := make([]timing, len(result.Metadata.PerMethodTimings))
	for i, t := range result.Metadata.PerMethodTimings {
		timings[i] = timing{
			Method:     t.Method,
			DurationMs: t.Duration.Milliseconds(),
			Err:        t.Err,
			TimedOut:   t.TimedOut,
		}
	}
	return detectResponse{
		Rooms:           result.Rooms,
		TotalRooms:      len(result.Rooms),
		MethodUsed:      string(result.MethodUsed),
		ExecutionTimeMs: result.ExecutionTimeMs,
		Metadata: responseMetadata{
			GraphRooms:    result.Metadata.GraphRooms,
			VisionRooms:   result.Metadata.VisionRooms,
			YOLORooms:     result.Metadata.YOLORooms,
			Truncated:     result.Metadata.Truncated,
			CurveHandling: result.Metadata.CurveHandling,
			Timings:       timings,
		},
	}
}

func floatOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func decodeImageBase64(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, apierr.New(apierr.DecodeError, "image_base64 is required")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apierr.Wrap(apierr.DecodeError, "image_base64 is not valid base64", err)
	}
	return data, nil
}
