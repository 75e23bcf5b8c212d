package imagenorm

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/ironsheep/floorplan-detectd/internal/apierr"
	"github.com/ironsheep/floorplan-detectd/internal/geometry"
)

// MaxDecodedDimension is the safety ceiling on decoded image width or
// height, beyond which a request fails with ImageTooLarge rather than
// attempting to resize an unreasonably large input.
const MaxDecodedDimension = 20000

// Decode decodes a PNG or JPEG payload into an image.Image.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apierr.Wrap(apierr.DecodeError, "failed to decode image", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDecodedDimension || bounds.Dy() > MaxDecodedDimension {
		return nil, apierr.New(apierr.ImageTooLarge, "decoded image exceeds the safety ceiling")
	}
	return img, nil
}

// Normalize decodes data and resizes/letterboxes it into a
// canonicalSize x canonicalSize square on a white background,
// preserving the source aspect ratio. canonicalSize <= 0 selects
// NormalizedSize.
func Normalize(data []byte, canonicalSize int) (*NormalizedImage, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return NormalizeImage(img, canonicalSize)
}

// NormalizeImage performs the resize/letterbox step of Normalize on an
// already-decoded image.
func NormalizeImage(img image.Image, canonicalSize int) (*NormalizedImage, error) {
	if canonicalSize <= 0 {
		canonicalSize = NormalizedSize
	}

	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW == 0 || origH == 0 {
		return nil, apierr.New(apierr.DecodeError, "image has zero width or height")
	}

	scale := math.Min(float64(canonicalSize)/float64(origW), float64(canonicalSize)/float64(origH))
	resizedW := int(math.Round(float64(origW) * scale))
	resizedH := int(math.Round(float64(origH) * scale))
	if resizedW < 1 {
		resizedW = 1
	}
	if resizedH < 1 {
		resizedH = 1
	}

	resized := imaging.Resize(img, resizedW, resizedH, imaging.Lanczos)

	canvas := image.NewRGBA(image.Rect(0, 0, canonicalSize, canonicalSize))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(image.White), image.Point{}, draw.Src)

	left := (canonicalSize - resizedW) / 2
	top := (canonicalSize - resizedH) / 2
	destRect := image.Rect(left, top, left+resizedW, top+resizedH)
	draw.Draw(canvas, destRect, resized, image.Point{}, draw.Src)

	frame := toGrayFrame(canvas)

	return &NormalizedImage{
		Frame:          frame,
		OriginalWidth:  origW,
		OriginalHeight: origH,
		ScaleFactor:    scale,
		Padding: Padding{
			Top:    top,
			Bottom: canonicalSize - resizedH - top,
			Left:   left,
			Right:  canonicalSize - resizedW - left,
		},
	}, nil
}

// toGrayFrame converts img to a single-channel ImageFrame using
// perceptually-weighted luminance (go-colorful's CIE L* channel) rather
// than a flat BT.601 weighting, so scanned floor plans with tinted
// backgrounds binarize more consistently.
func toGrayFrame(img image.Image) *ImageFrame {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	frame := &ImageFrame{Width: w, Height: h, Pixels: make([]byte, w*h)}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			frame.Set(x, y, grayLevel(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return frame
}

func grayLevel(c color.Color) byte {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return 0
	}
	l, _, _ := cf.Lab()
	v := l / 100 * 255
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(v)
}

// NormalizePoint maps a point from the original image's coordinate
// space into the normalized canonical frame, the inverse of
// DenormalizePoint.
func (n *NormalizedImage) NormalizePoint(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: p.X*n.ScaleFactor + float64(n.Padding.Left),
		Y: p.Y*n.ScaleFactor + float64(n.Padding.Top),
	}
}

// DenormalizePoint maps a point from the normalized canonical frame back
// into the original image's coordinate space.
func (n *NormalizedImage) DenormalizePoint(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: (p.X - float64(n.Padding.Left)) / n.ScaleFactor,
		Y: (p.Y - float64(n.Padding.Top)) / n.ScaleFactor,
	}
}
