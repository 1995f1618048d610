// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"

	"github.com/katalvlaran/hemesh/topology"
	"gonum.org/v1/gonum/spatial/r2"
)

// Mesh is a 2D half-edge mesh with per-entity refinement levels and named
// auxiliary data. It owns its node, level and data arrays; the half-edge
// array and every adjacency index live in the embedded topology.Topology.
//
// A Mesh is not safe for concurrent mutation: Refine*/Coarsen* must run to
// completion before any other call on the same instance.
type Mesh struct {
	nodes  []r2.Vec
	nlevel []int // per node
	hlevel []int // per half-edge; twins always agree
	clevel []int // per cell, all cells

	ds *topology.Topology

	nodeData   map[string][]float64
	edgeData   map[string][]float64 // stored per half-edge
	cellData   map[string][]float64 // stored over all cells
	heData     map[string][]float64
	globalData map[string][]float64
}

// Topology returns the adjacency layer. Every Refine/Coarsen call rebuilds
// it; do not keep derived indices across mutations.
func (m *Mesh) Topology() *topology.Topology { return m.ds }

// NumNodes returns the node count.
func (m *Mesh) NumNodes() int { return len(m.nodes) }

// NumEdges returns the undirected edge count.
func (m *Mesh) NumEdges() int { return m.ds.NumEdges() }

// NumHalfEdges returns the half-edge count.
func (m *Mesh) NumHalfEdges() int { return m.ds.NumHalfEdges() }

// NumCells returns the interior cell count.
func (m *Mesh) NumCells() int { return m.ds.NumCells() }

// NumAllCells returns the cell count including exterior and holes.
func (m *Mesh) NumAllCells() int { return m.ds.NumAllCells() }

// CellStart returns the all-cells index of the first interior cell.
func (m *Mesh) CellStart() int { return m.ds.CellStart() }

// VertexCount returns the mesh-wide vertex-count hint.
func (m *Mesh) VertexCount() int { return m.ds.VertexCount() }

// Node returns the coordinates of node i.
func (m *Mesh) Node(i int) r2.Vec { return m.nodes[i] }

// Nodes returns a copy of all node coordinates.
func (m *Mesh) Nodes() []r2.Vec { return append([]r2.Vec(nil), m.nodes...) }

// Edges returns (origin, target) of every edge.
func (m *Mesh) Edges() [][2]int { return m.ds.EdgeToNode() }

// Cells returns the ring of nodes of every interior cell.
func (m *Mesh) Cells() [][]int { return m.ds.CellToNode() }

// HalfEdges returns a copy of the half-edge array.
func (m *Mesh) HalfEdges() []topology.HalfEdge { return m.ds.HalfEdges() }

// NodeLevels returns a copy of the per-node levels.
func (m *Mesh) NodeLevels() []int { return append([]int(nil), m.nlevel...) }

// HalfEdgeLevels returns a copy of the per-half-edge levels.
func (m *Mesh) HalfEdgeLevels() []int { return append([]int(nil), m.hlevel...) }

// CellLevels returns a copy of the levels of interior cells.
func (m *Mesh) CellLevels() []int { return append([]int(nil), m.clevel[m.ds.CellStart():]...) }

// BoundaryNodeFlag marks nodes on the domain boundary (exterior or hole).
func (m *Mesh) BoundaryNodeFlag() []bool { return m.ds.BoundaryNodeFlag() }

// BoundaryEdgeFlag marks edges on the domain boundary.
func (m *Mesh) BoundaryEdgeFlag() []bool { return m.ds.BoundaryEdgeFlag() }

// BoundaryCellFlag marks interior cells touching the domain boundary.
func (m *Mesh) BoundaryCellFlag() []bool { return m.ds.BoundaryCellFlag() }

// Validate checks topology closure and the level invariants:
//
//	hlevel(h) == hlevel(twin(h))
//	clevel(c) ≤ hlevel(h) ≤ clevel(c)+1 for every half-edge h of interior cell c
//
// Complexity:
//   - Time O(H), Space O(1).
func (m *Mesh) Validate() error {
	if err := m.ds.Validate(); err != nil {
		return err
	}
	hes := m.ds.Raw()
	for h, he := range hes {
		if m.hlevel[h] != m.hlevel[he.Twin] {
			return fmt.Errorf("Validate: half-edge %d level %d, twin %d: %w", h, m.hlevel[h], m.hlevel[he.Twin], ErrLevelInvariant)
		}
		if !m.ds.IsInterior(he.Cell) {
			continue
		}
		if l := m.clevel[he.Cell]; m.hlevel[h] < l || m.hlevel[h] > l+1 {
			return fmt.Errorf("Validate: half-edge %d level %d in cell %d of level %d: %w", h, m.hlevel[h], he.Cell, l, ErrLevelInvariant)
		}
	}

	return nil
}
