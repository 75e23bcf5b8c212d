// Package orchestrator dispatches a detection request to one of the
// eleven strategies spec.md §4.10 names, fanning out to whichever
// sub-engines a strategy composes and merging their output.
//
// Grounded on the overall shape of
// original_source/axum-backend/src/detector_orchestrator.rs
// (DetectorOrchestrator, DetectorConfig, DetectionMetadata,
// method_timings), but the strategy set, the best_available priority
// order, and the ensemble tie-break rule follow spec.md exactly rather
// than the weaker rules the Rust original uses for its equivalents.
package orchestrator
