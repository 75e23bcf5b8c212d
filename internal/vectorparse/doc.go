// Package vectorparse reads an SVG document and emits the Lines implied
// by its drawing elements: <line>, <rect>, <polyline>/<polygon>, and the
// straight-line subset of <path> (M, L, H, V, Z, absolute and relative).
// Curves, arcs, and element transforms are a documented limitation —
// they are discarded rather than approximated, and the decision is
// surfaced to the caller as Metadata.CurveHandling.
//
// Grounded on the original floor-plan backend's image_vectorizer.rs
// (parse_path_commands) and vector_graph.rs for the set of path commands
// worth supporting, translated from string-splitting on the "d"
// attribute to walking encoding/xml's token stream — no SVG-parsing
// library exists anywhere in the example corpus.
package vectorparse
