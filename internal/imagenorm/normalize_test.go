package imagenorm

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/floorplan-detectd/internal/geometry"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// Scenario from the original backend's preprocessor tests: a square
// image should scale by exactly canonicalSize/side with no padding.
func TestNormalizeSquareImageNoPadding(t *testing.T) {
	data := encodePNG(t, solidImage(500, 500, color.White))

	n, err := Normalize(data, 1000)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if n.ScaleFactor != 2.0 {
		t.Errorf("ScaleFactor = %v, want 2.0", n.ScaleFactor)
	}
	if n.Padding != (Padding{}) {
		t.Errorf("Padding = %+v, want all zero", n.Padding)
	}
}

// A portrait rectangle should pad symmetrically on the narrower axis.
func TestNormalizeRectangularImagePads(t *testing.T) {
	data := encodePNG(t, solidImage(400, 800, color.White))

	n, err := Normalize(data, 1000)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if n.ScaleFactor != 1.25 {
		t.Errorf("ScaleFactor = %v, want 1.25", n.ScaleFactor)
	}
	if n.Padding.Top != 0 || n.Padding.Bottom != 0 {
		t.Errorf("expected no vertical padding for a portrait image filling the height, got %+v", n.Padding)
	}
	if n.Padding.Left != n.Padding.Right {
		t.Errorf("expected symmetric horizontal padding, got left=%d right=%d", n.Padding.Left, n.Padding.Right)
	}
	if n.Padding.Left != 250 {
		t.Errorf("Padding.Left = %d, want 250", n.Padding.Left)
	}
}

func TestNormalizePointRoundTrip(t *testing.T) {
	data := encodePNG(t, solidImage(400, 800, color.White))
	n, err := Normalize(data, 1000)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	original := geometry.Point{X: 123.4, Y: 567.8}
	normalized := n.NormalizePoint(original)
	roundTripped := n.DenormalizePoint(normalized)

	if diff := roundTripped.X - original.X; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("round-tripped X = %v, want %v", roundTripped.X, original.X)
	}
	if diff := roundTripped.Y - original.Y; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("round-tripped Y = %v, want %v", roundTripped.Y, original.Y)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Error("expected an error decoding garbage bytes")
	}
}

func TestBinarizeFixedThreshold(t *testing.T) {
	frame := &ImageFrame{Width: 2, Height: 1, Pixels: []byte{10, 200}}
	out := Binarize(frame, ThresholdFixed, 128)

	if out.At(0, 0) != 0 {
		t.Errorf("pixel below threshold should be 0, got %d", out.At(0, 0))
	}
	if out.At(1, 0) != 255 {
		t.Errorf("pixel above threshold should be 255, got %d", out.At(1, 0))
	}
}

func TestBinarizeOtsuSeparatesBimodalImage(t *testing.T) {
	pixels := make([]byte, 100)
	for i := range pixels {
		if i < 50 {
			pixels[i] = 10
		} else {
			pixels[i] = 240
		}
	}
	frame := &ImageFrame{Width: 10, Height: 10, Pixels: pixels}

	out := Binarize(frame, ThresholdOtsu, 0)

	for i := 0; i < 50; i++ {
		if out.Pixels[i] != 0 {
			t.Fatalf("expected dark half to binarize to 0, got %d at %d", out.Pixels[i], i)
		}
	}
	for i := 50; i < 100; i++ {
		if out.Pixels[i] != 255 {
			t.Fatalf("expected bright half to binarize to 255, got %d at %d", out.Pixels[i], i)
		}
	}
}
