// Package components implements the raster connected-components room
// detector: threshold an image frame, flood-fill its foreground with
// 8-connectivity, and filter the surviving blobs by area and aspect
// ratio. Two independently-implemented variants are exported,
// DetectBFS and DetectStack; both must produce identical rooms for the
// same input — see the parity test in detect_test.go.
//
// The early/late filter ordering below is load-bearing: the early
// filter (minimum/maximum absolute area, aspect ratio under 15) runs
// before the candidate list is populated, and the 5% relative threshold
// is computed from the largest AREA AMONG ALREADY-FILTERED candidates.
// Computing it from the unfiltered component set — a bug present in one
// of the two flood-fill implementations this package is grounded on —
// lets noise components inflate the relative threshold and silently
// changes which rooms survive. Both variants here compute it the same,
// correct way.
//
// Grounded on the original floor-plan backend's connected_components
// and new_algorithms modules (BFS-queue flood fill) and the teacher's
// own internal/detection/shapes.go floodFill (iterative-stack flood
// fill).
package components
