// Package wallmerge reconciles two wall-line sources — typically a
// geometric vectorizer and a language-model extractor — into one
// consensus sequence, per spec.md §4.9.
//
// Two Lines match when their endpoints can be paired (in either
// orientation) such that each paired distance is within the configured
// tolerance. A matched pair becomes a single consensus Line at the
// midpoint of each paired endpoint, carrying the summed weight of its
// two sources. Unmatched lines from a source are kept only when that
// source's confidence clears the configured threshold — spec.md's
// rationale is that an OR of sources recovers walls either one missed,
// while this threshold keeps a low-confidence source from fabricating
// walls nothing else corroborates.
//
// Grounded on the endpoint-pairing predicate style used throughout the
// original backend's merge-adjacent-segment helpers (graph_builder.rs,
// image_vectorizer.rs), which all pair candidate endpoints by distance
// rather than by index.
package wallmerge
