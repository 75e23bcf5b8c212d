package components

import (
	"testing"

	"github.com/ironsheep/floorplan-detectd/internal/geometry"
	"github.com/ironsheep/floorplan-detectd/internal/imagenorm"
)

func solidFrame(w, h int, v byte) *imagenorm.ImageFrame {
	pixels := make([]byte, w*h)
	for i := range pixels {
		pixels[i] = v
	}
	return &imagenorm.ImageFrame{Width: w, Height: h, Pixels: pixels}
}

func fillRect(frame *imagenorm.ImageFrame, x1, y1, x2, y2 int, v byte) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			frame.Set(x, y, v)
		}
	}
}

func TestDetectUniformForegroundYieldsNoRooms(t *testing.T) {
	// One component spanning more than 30% of the pixels is rejected by
	// the max-area early filter.
	frame := solidFrame(100, 100, 200)

	rooms := DetectBFS(frame, 128)
	if len(rooms) != 0 {
		t.Errorf("got %d rooms, want 0 for a uniform foreground image", len(rooms))
	}
}

func TestDetectUniformBackgroundYieldsNoRooms(t *testing.T) {
	frame := solidFrame(100, 100, 0)

	rooms := DetectBFS(frame, 128)
	if len(rooms) != 0 {
		t.Errorf("got %d rooms, want 0 for a uniform background image", len(rooms))
	}
}

func TestDetectSingleRectangle(t *testing.T) {
	frame := solidFrame(200, 200, 0)
	fillRect(frame, 20, 20, 80, 80, 200)

	rooms := DetectBFS(frame, 128)
	if len(rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(rooms))
	}
	if rooms[0].Area != 60*60 {
		t.Errorf("area = %v, want 3600", rooms[0].Area)
	}
}

// Scenario 4 from the spec: ten filled rectangles of varied sizes plus
// one 40-pixel speckle; the speckle must be removed by the early
// absolute-area filter, and both variants must agree exactly. Areas
// range 9600-24000 px (well clear of MinAreaPixels=500, well under
// MaxAreaFraction's 300000 px cap, and within a ~2.5x spread, so none
// of the ten trips the 5% relative threshold against the largest).
func TestDetectParityTenRectanglesPlusSpeckle(t *testing.T) {
	frame := solidFrame(1000, 1000, 0)

	sizes := [][4]int{
		{10, 10, 170, 70},
		{210, 10, 370, 80},
		{410, 10, 570, 90},
		{610, 10, 770, 100},
		{810, 10, 970, 110},
		{10, 300, 170, 410},
		{210, 300, 370, 420},
		{410, 300, 570, 430},
		{610, 300, 770, 440},
		{810, 300, 970, 450},
	}
	for _, s := range sizes {
		fillRect(frame, s[0], s[1], s[2], s[3], 200)
	}
	// a 40-pixel speckle, isolated from every rectangle above
	fillRect(frame, 980, 980, 990, 984, 200) // 10x4 = 40 px

	bfsRooms := DetectBFS(frame, 128)
	stackRooms := DetectStack(frame, 128)

	if len(bfsRooms) != len(stackRooms) {
		t.Fatalf("variant parity: BFS found %d rooms, stack found %d", len(bfsRooms), len(stackRooms))
	}
	for i := range bfsRooms {
		if bfsRooms[i].BoundingBox != stackRooms[i].BoundingBox {
			t.Errorf("variant parity: room %d bounding box differs: %+v vs %+v", i, bfsRooms[i].BoundingBox, stackRooms[i].BoundingBox)
		}
		if bfsRooms[i].Area != stackRooms[i].Area {
			t.Errorf("variant parity: room %d area differs: %v vs %v", i, bfsRooms[i].Area, stackRooms[i].Area)
		}
	}

	if len(bfsRooms) != 10 {
		t.Errorf("got %d rooms, want 10 (the speckle should be filtered out)", len(bfsRooms))
	}
}

func TestNormalizeBoundingBox(t *testing.T) {
	box := NormalizeBoundingBox(geometry.BoundingBox{XMin: 50, YMin: 50, XMax: 150, YMax: 150}, 500, 500)
	if box.XMin != 100 || box.YMin != 100 || box.XMax != 300 || box.YMax != 300 {
		t.Errorf("NormalizeBoundingBox = %+v, want {100,100,300,300}", box)
	}
}
