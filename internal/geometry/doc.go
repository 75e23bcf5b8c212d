// Package geometry provides the coordinate primitives shared by every
// floor-plan detection engine: points, line segments, polygons, and the
// predicates used to build graphs and measure rooms from them.
//
// # Coordinate system
//
// Coordinates are plain float64 pairs. Valid coordinates are finite and
// within +/-MaxCoordinateValue. Point equality for graph construction is
// defined on coordinates rounded to 6 decimal places (see PointKey), not
// on raw float equality, so near-coincident endpoints produced by
// different extraction paths (hand-authored lines, SVG parsing, vision
// models) collapse to the same graph node.
//
// # Failure behavior
//
// Every function in this package is a pure total function on valid
// input; none of them fail. Validation of input coordinates happens at
// the callers that accept external input (the wall graph builder, the
// HTTP handlers), not here.
package geometry
