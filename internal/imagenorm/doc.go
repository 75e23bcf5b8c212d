// Package imagenorm decodes a raster floor-plan (PNG/JPEG), resizes it
// to a canonical square coordinate frame, and optionally binarizes it.
// The canonical frame is what the raster component detector and the
// vision wall extractor both operate against, so that bounding boxes
// and wall coordinates returned by either are directly comparable.
//
// Grounded on the original floor-plan backend's image_preprocessor
// module (NormalizedImage, scale-factor-and-padding bookkeeping, the
// normalize/denormalize point round trip) translated onto the teacher's
// own resize dependency, github.com/disintegration/imaging, instead of
// the original's Rust image crate.
package imagenorm
