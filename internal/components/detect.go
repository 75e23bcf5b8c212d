package components

import (
	"github.com/ironsheep/floorplan-detectd/internal/geometry"
	"github.com/ironsheep/floorplan-detectd/internal/imagenorm"
	"github.com/ironsheep/floorplan-detectd/internal/roomdetect"
)

// MinAreaPixels is the early-filter absolute minimum component area.
const MinAreaPixels = 500

// MaxAreaFraction is the early-filter absolute maximum component area,
// expressed as a fraction of the total frame area.
const MaxAreaFraction = 0.30

// EarlyAspectRatioLimit rejects thin, elongated blobs (likely stray
// wall fragments) before they can inflate the relative threshold.
const EarlyAspectRatioLimit = 15.0

// RelativeThresholdFraction is the fraction of the largest
// already-early-filtered component's area used as the adaptive lower
// bound applied by the late filter.
const RelativeThresholdFraction = 0.05

// LateAspectRatioLimit is the final, more lenient aspect-ratio cutoff
// applied after the relative threshold.
const LateAspectRatioLimit = 8.0

type blob struct {
	area int
	box  pixelBox
}

type pixelBox struct {
	minX, minY, maxX, maxY int
}

func (b pixelBox) width() int  { return b.maxX - b.minX }
func (b pixelBox) height() int { return b.maxY - b.minY }

func (b pixelBox) aspectRatio() float64 {
	w, h := b.width(), b.height()
	longer := w
	shorter := h
	if h > w {
		longer, shorter = h, w
	}
	if shorter < 1 {
		shorter = 1
	}
	return float64(longer) / float64(shorter)
}

// floodFillFunc is implemented by each flood-fill variant: given a
// thresholded frame, a starting pixel, and a shared visited bitmap, it
// fills the connected 8-neighborhood foreground region and returns its
// pixel count and bounding box.
type floodFillFunc func(frame *imagenorm.ImageFrame, startX, startY int, visited []bool) blob

// detect runs the shared threshold -> scan -> early filter -> relative
// threshold -> late filter pipeline using the given flood-fill
// implementation.
func detect(frame *imagenorm.ImageFrame, threshold byte, fill floodFillFunc) []roomdetect.Room {
	binary := imagenorm.Binarize(frame, imagenorm.ThresholdFixed, threshold)

	width, height := binary.Width, binary.Height
	visited := make([]bool, width*height)

	maxAreaPixels := int(float64(width*height) * MaxAreaFraction)

	var candidates []blob
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || binary.At(x, y) != 255 {
				continue
			}
			b := fill(binary, x, y, visited)

			// Early filter: applied before appending to the candidate
			// list, so `largest` below is computed over already
			// filtered candidates.
			if b.area < MinAreaPixels || b.area > maxAreaPixels {
				continue
			}
			if b.box.aspectRatio() >= EarlyAspectRatioLimit {
				continue
			}
			candidates = append(candidates, b)
		}
	}

	largest := 0
	for _, c := range candidates {
		if c.area > largest {
			largest = c.area
		}
	}
	relativeThreshold := float64(largest) * RelativeThresholdFraction

	rooms := make([]roomdetect.Room, 0, len(candidates))
	id := 0
	for _, c := range candidates {
		if float64(c.area) < relativeThreshold {
			continue
		}
		if c.box.aspectRatio() >= LateAspectRatioLimit {
			continue
		}

		box := geometry.BoundingBox{
			XMin: float64(c.box.minX),
			YMin: float64(c.box.minY),
			XMax: float64(c.box.maxX),
			YMax: float64(c.box.maxY),
		}
		rooms = append(rooms, roomdetect.Room{
			ID:              id,
			BoundingBox:     box,
			Area:            float64(c.area),
			NameHint:        nameHintForArea(float64(c.area)),
			DetectionMethod: "connected_components",
		})
		id++
	}

	return rooms
}

// nameHintForArea mirrors the original connected_components module's
// coarse pixel-area naming, distinct from the cycle detector's
// geometry-unit thresholds since raster pixel area and input-unit
// polygon area are not the same scale.
func nameHintForArea(area float64) string {
	switch {
	case area < 5000:
		return "small room"
	case area < 20000:
		return "medium room"
	default:
		return "large room"
	}
}

// NormalizeBoundingBox rescales a pixel-space bounding box into the
// 0-1000 canonical canvas frame, for callers whose source frame was not
// already the canonical size.
func NormalizeBoundingBox(box geometry.BoundingBox, frameWidth, frameHeight int) geometry.BoundingBox {
	return geometry.BoundingBox{
		XMin: box.XMin / float64(frameWidth) * 1000,
		YMin: box.YMin / float64(frameHeight) * 1000,
		XMax: box.XMax / float64(frameWidth) * 1000,
		YMax: box.YMax / float64(frameHeight) * 1000,
	}
}
