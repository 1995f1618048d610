// SPDX-License-Identifier: MIT

// Package topology is the read/derive layer of a 2D half-edge mesh.
//
// What:
//
//	A Topology owns a flat array of HalfEdge records (two per undirected
//	edge) together with a per-cell subdomain tag, and derives from them every
//	adjacency query a mesh consumer needs:
//		• cell → node / edge / cell (dense rings or sparse incidence)
//		• edge → node / cell
//		• node → node / cell (sparse incidence)
//		• boundary classification of half-edges, nodes, edges and cells
//
// Why:
//
//	Index-linked records instead of pointer graphs: next/prev/twin/cell are
//	plain integers into flat slices. Whole-array mutation (split, merge,
//	renumber) stays a sequence of scatter/gather passes and the derived
//	indexes are simply recomputed by Reinit.
//
// Cells and subdomains:
//
//	Cells are numbered over "all cells" [0, NumAllCells). Tag 0 marks the
//	unbounded exterior (at most one), negative tags mark holes, positive tags
//	mark interior regions. Non-interior cells come first; interior cells
//	occupy [CellStart, NumAllCells) and are exposed to callers through the
//	compacted interior index c - CellStart.
//
//	    holes… | exterior | interior cells …
//	           ^ CellStart-1
//
// Edge numbering:
//
//	Exactly one half-edge per twin pair carries Primary=true. Edge e is the
//	e-th primary half-edge in ascending half-edge index.
//
// Complexity:
//
//	New/Reinit: O(H) where H = len(half-edges).
//	Dense ring queries: O(H). Sparse incidence: O(H log H) (row sort).
//
// Errors:
//
//	ErrOddHalfEdges, ErrMultipleExterior, ErrUnsupportedVertexCount,
//	ErrIndexRange, ErrSubdomainOrder, ErrEmptyCell, ErrVertexCountMismatch,
//	ErrBrokenTopology (Validate only).
//
// A Topology is immutable between Reinit calls and therefore safe for
// concurrent readers; Reinit itself must not race with readers.
package topology
