// Package wallgraph builds the undirected multigraph the cycle-based
// room detector searches. Nodes are wall endpoints identified by their
// rounded geometry.PointKey; edges are either real Wall segments or
// VirtualDoor segments synthesized to bridge small gaps between
// otherwise-unconnected, nearly collinear wall ends.
//
// Grounded on the original floor-plan backend's graph_builder module:
// lines are consumed in two phases, real walls first, then an optional
// door-bridging pass over every pair of not-yet-adjacent nodes within
// the configured threshold distance. Unlike the original, bridging here
// also requires the two candidate endpoints' incident walls to be
// approximately collinear with the gap itself, since "might represent a
// door opening" is not a safe assumption for unrelated nearby points.
package wallgraph
