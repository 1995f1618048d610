// SPDX-License-Identifier: MIT

// Package mesh is the mutable half of hemesh: a 2D half-edge mesh with
// per-entity refinement levels, named auxiliary data and adaptive
// refine/coarsen passes.
//
// What:
//
//	A Mesh owns node coordinates (gonum r2.Vec), node/half-edge/cell levels
//	and data arrays, and embeds a topology.Topology for every adjacency query.
//		• FromSimpleMesh: build from a node list and per-cell node indices
//		• Refine / RefinePoly / RefineTriangle / RefineQuad
//		• Coarsen / CoarsenPoly / CoarsenTriangle / CoarsenQuad
//		• SetEntityData / EntityData: data that follows the mesh through
//		  refinement and coarsening
//		• MarkCells / RefineMarker: build all-cells marking arrays
//
// Families:
//
//	The vertex-count hint chosen at construction (WithVertexCount) selects
//	the family:
//		• polygon (0): fan around a centroid; one hanging node per side
//		• triangle (3): red (1→4) with green (1→2) closure, conforming
//		• quad (4): red (1→4) with blue (1→3) closure, conforming
//
// Levels:
//
//	A half-edge's level is its edge's level (twins agree). Every half-edge
//	of a level-L interior cell has level L or L+1; an edge one level deeper
//	than its cell is half of a side split by a finer neighbour. Validate
//	checks this after any sequence of calls.
//
//	    level 0            level 1 (RefinePoly on the square)
//	    ┌───────┐          ┌───┬───┐
//	    │       │          │   │   │
//	    │       │   →      ├───┼───┤
//	    │       │          │   │   │
//	    └───────┘          └───┴───┘
//
// Errors:
//
//	Every mutation validates its input completely before touching the mesh,
//	so an error leaves it unchanged. See errors.go for the sentinel set.
//
// Logging:
//
//	Silent by default; see SetLogger.
package mesh
