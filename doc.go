// SPDX-License-Identifier: MIT

// Package hemesh is an index-based half-edge engine for 2D meshes with
// adaptive refinement and coarsening.
//
// 🚀 What is hemesh?
//
//	A small, pure-Go library that keeps a polygonal, triangular or
//	quadrilateral mesh as flat integer-linked half-edge records and mutates it
//	in bulk while keeping it conforming:
//		• Topology: every cell/edge/node adjacency, dense or CSR-sparse
//		• Refinement: polygon fans, red/green triangles, red/blue quads
//		• Coarsening: exact reversal of complete refinement families
//		• Data: node/edge/cell/half-edge arrays that follow every mutation
//		• Marking: L2 (bulk), MAX and COARSEN strategies
//
// Under the hood, everything is organized under three subpackages:
//
//	topology/  HalfEdge records, derived indexes, adjacency and boundary queries
//	mesh/      Mesh container, FromSimpleMesh, Refine*/Coarsen*, entity data
//	mark/      indicator → marking array
//
// Quick ASCII example:
//
//	    3───2        3───6───2
//	    │   │   →    │   │   │
//	    │   │        7───8───5
//	    │   │        │   │   │
//	    0───1        0───4───1
//
// is one RefinePoly call on the unit square: four midpoints, one centroid,
// four children of area 1/4.
//
//	go get github.com/katalvlaran/hemesh
package hemesh
