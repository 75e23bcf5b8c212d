package imagenorm

// NormalizedSize is the canonical square frame size raster inputs are
// resized to before detection, absent an explicit override.
const NormalizedSize = 1000

// ImageFrame is a decoded, single-channel (grayscale or binary) raster
// buffer in row-major order.
type ImageFrame struct {
	Width, Height int
	// Pixels holds one byte per pixel, row-major, top-to-bottom,
	// left-to-right. For a binarized frame every value is either 0 or
	// 255.
	Pixels []byte
}

// At returns the pixel value at (x, y). Callers are expected to stay
// within bounds; this is a hot path for flood fill.
func (f *ImageFrame) At(x, y int) byte {
	return f.Pixels[y*f.Width+x]
}

// Set writes the pixel value at (x, y).
func (f *ImageFrame) Set(x, y int, v byte) {
	f.Pixels[y*f.Width+x] = v
}

// Padding records the letterbox padding, in canonical-frame pixels,
// added on each side: Top, Right, Bottom, Left.
type Padding struct {
	Top, Right, Bottom, Left int
}

// NormalizedImage is the result of decoding and resizing a raster input
// into the canonical coordinate frame, with enough bookkeeping to map
// points between the original and normalized frames.
type NormalizedImage struct {
	Frame *ImageFrame

	OriginalWidth, OriginalHeight int
	ScaleFactor                   float64
	Padding                       Padding
}
