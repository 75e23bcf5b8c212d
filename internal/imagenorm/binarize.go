package imagenorm

import (
	"image"

	"github.com/anthonynsimon/bild/segment"
)

// ThresholdMode selects how Binarize picks the cut level between
// foreground and background.
type ThresholdMode int

const (
	// ThresholdFixed uses a caller-supplied level.
	ThresholdFixed ThresholdMode = iota
	// ThresholdOtsu computes the level that minimizes intra-class
	// variance over the frame's gray-level histogram.
	ThresholdOtsu
)

// Binarize thresholds frame, setting every pixel to 255 (foreground) if
// it is greater than the effective level, else 0. The effective level is
// fixedLevel for ThresholdFixed, or the Otsu-computed level for
// ThresholdOtsu; the actual per-pixel cut is applied by
// bild/segment.Threshold.
func Binarize(frame *ImageFrame, mode ThresholdMode, fixedLevel byte) *ImageFrame {
	level := fixedLevel
	if mode == ThresholdOtsu {
		level = otsuLevel(frame)
	}

	gray := image.NewGray(image.Rect(0, 0, frame.Width, frame.Height))
	copy(gray.Pix, frame.Pixels)

	out := &ImageFrame{Width: frame.Width, Height: frame.Height, Pixels: make([]byte, frame.Width*frame.Height)}
	if level == 255 {
		// No pixel is greater than 255: the frame is all background.
		return out
	}

	// segment.Threshold marks pixels >= its level, so the level is
	// shifted by one to keep only pixels strictly above it.
	binary := segment.Threshold(gray, level+1)

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			out.Set(x, y, binary.GrayAt(x, y).Y)
		}
	}
	return out
}

// OtsuLevel exposes the Otsu threshold level Binarize(frame,
// ThresholdOtsu, _) would use, for callers (like the raster connected-
// component detector) that need the level itself rather than an
// already-binarized frame.
func OtsuLevel(frame *ImageFrame) byte {
	return otsuLevel(frame)
}

// otsuLevel computes Otsu's threshold over frame's gray-level
// histogram: the level that maximizes between-class variance of the
// foreground/background split.
func otsuLevel(frame *ImageFrame) byte {
	var histogram [256]int
	for _, v := range frame.Pixels {
		histogram[v]++
	}
	total := len(frame.Pixels)
	if total == 0 {
		return 128
	}

	var sumAll float64
	for level, count := range histogram {
		sumAll += float64(level * count)
	}

	var weightBackground, sumBackground float64
	var bestLevel byte
	var bestVariance float64

	for level := 0; level < 256; level++ {
		weightBackground += float64(histogram[level])
		if weightBackground == 0 {
			continue
		}
		weightForeground := float64(total) - weightBackground
		if weightForeground == 0 {
			break
		}

		sumBackground += float64(level * histogram[level])
		meanBackground := sumBackground / weightBackground
		meanForeground := (sumAll - sumBackground) / weightForeground

		variance := weightBackground * weightForeground * (meanBackground - meanForeground) * (meanBackground - meanForeground)
		if variance > bestVariance {
			bestVariance = variance
			bestLevel = byte(level)
		}
	}

	return bestLevel
}
