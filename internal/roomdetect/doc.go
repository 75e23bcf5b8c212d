// Package roomdetect enumerates the simple cycles of a wallgraph.Graph
// and turns the surviving ones into Rooms.
//
// Grounded on the original floor-plan backend's room_detector module:
// a DFS-based cycle search per start node, a canonical min-rotation
// signature for deduplication, shoelace area, and an area threshold.
// Two things are NOT carried over from the original: its room-naming
// thresholds (replaced by this spec's coarser area/aspect heuristic) and
// its lack of an outer-boundary filter (added here, since the original
// never distinguishes the building envelope from an interior room).
//
// # DoS bounds
//
// Cycle enumeration is capped at MaxCycles total cycles and
// MaxCycleLength nodes per cycle. Hitting either cap does not fail the
// request; it sets Truncated on the result.
package roomdetect
