package roomdetect

import "github.com/ironsheep/floorplan-detectd/internal/geometry"

// Room is a single detected enclosed area.
type Room struct {
	ID              int                  `json:"id"`
	BoundingBox     geometry.BoundingBox `json:"bounding_box"`
	Area            float64              `json:"area"`
	Polygon         []geometry.Point     `json:"polygon,omitempty"`
	NameHint        string               `json:"name_hint"`
	RoomType        *string              `json:"room_type,omitempty"`
	Confidence      *float64             `json:"confidence,omitempty"`
	Features        []string             `json:"features,omitempty"`
	DetectionMethod string               `json:"detection_method"`
}

// generateNameHint derives a coarse room-size label from area and
// aspect ratio, per this spec's heuristic (deliberately coarser than
// the three-tier heuristic in the original backend this was grounded
// on): small room under 500 units^2, corridor when the bounding box's
// aspect ratio exceeds 3, large room otherwise.
func generateNameHint(area float64, box geometry.BoundingBox) string {
	if area < 500 {
		return "small room"
	}
	if box.AspectRatio() > 3 {
		return "corridor"
	}
	return "large room"
}
