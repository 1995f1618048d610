// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"

	"github.com/katalvlaran/hemesh/topology"
)

// Refine subdivides the marked cells with the family selected by the mesh's
// vertex-count hint: RefineTriangle for 3, RefineQuad for 4, RefinePoly
// otherwise. marked covers all cells (see MarkCells); exterior and hole
// entries must be false.
func (m *Mesh) Refine(marked []bool) error {
	switch m.ds.VertexCount() {
	case topology.Triangle:
		return m.RefineTriangle(marked)
	case topology.Quadrilateral:
		return m.RefineQuad(marked)
	}

	return m.RefinePoly(marked)
}

// checkMarked validates a marking array over all cells.
func (m *Mesh) checkMarked(op string, marked []bool) error {
	if len(marked) != m.ds.NumAllCells() {
		return fmt.Errorf("%s: %d flags for %d cells: %w", op, len(marked), m.ds.NumAllCells(), ErrMarkLength)
	}
	for c, f := range marked {
		if f && !m.ds.IsInterior(c) {
			return fmt.Errorf("%s: cell %d (tag %d): %w", op, c, m.ds.Subdomain(c), ErrExteriorMarked)
		}
	}

	return nil
}

// requireVertexCount rejects a family-specific call on a mesh with another hint.
func (m *Mesh) requireVertexCount(op string, nv int) error {
	if got := m.ds.VertexCount(); got != nv {
		return fmt.Errorf("%s: mesh vertex count %d, need %d: %w", op, got, nv, topology.ErrUnsupportedVertexCount)
	}

	return nil
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}

	return n
}

// RefinePoly refines a general polygon mesh, allowing one hanging node per
// side.
//
// Implementation:
//   - Stage 1 (Closure): an unmarked interior neighbour of a marked cell is
//     marked when its level is lower; repeated until nothing changes. Then a
//     half-edge is split iff its cell is marked and its level equals the
//     cell's level (sides already halved sit one level deeper); twins follow.
//   - Stage 2 (Bisect): every split edge is bisected once, through its
//     primary half-edge.
//   - Stage 3 (Fan): each marked cell of level L now has one midpoint of
//     level L+1 per side and splits into one child per corner around a new
//     centroid.
//   - Stage 4 (Renumber): children follow their parent.
//
// A fixed vertex-count mesh is switched to topology.Polygon, since hanging
// nodes change ring lengths.
//
// Complexity:
//   - Time O(k·H) for k closure passes, Space O(H).
func (m *Mesh) RefinePoly(marked []bool) error {
	const op = "RefinePoly"
	if err := m.checkMarked(op, marked); err != nil {
		return err
	}
	hes := m.ds.Raw()

	// Stage 1 (Closure)
	cm := append([]bool(nil), marked...)
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		for _, he := range hes {
			c, d := he.Cell, hes[he.Twin].Cell
			if cm[c] && !cm[d] && m.ds.IsInterior(d) && m.clevel[d] < m.clevel[c] {
				cm[d] = true
				changed = true
			}
		}
	}
	split := make([]bool, len(hes))
	for h, he := range hes {
		if cm[he.Cell] && m.hlevel[h] == m.clevel[he.Cell] {
			split[h] = true
			split[he.Twin] = true
		}
	}
	Logger().Debug("mesh: polygon closure", "marked", countTrue(marked), "closed", countTrue(cm), "passes", passes)

	// Stage 2 (Bisect)
	s := m.newSurgery()
	nsplit := 0
	for h, he := range hes {
		if split[h] && he.Primary {
			s.splitEdge(h)
			nsplit++
		}
	}

	// Stage 3 (Fan)
	children := 0
	for c, f := range cm {
		if !f {
			continue
		}
		level := m.clevel[c] + 1
		children += s.fan(c, m.ds.CellHalfEdge(c), func(v int) bool { return s.nlevel[v] == level })
	}

	// Stage 4 (Renumber)
	if err := s.commit(op, topology.Polygon); err != nil {
		return err
	}
	Logger().Info("mesh: refined", "family", "polygon", "cells", countTrue(cm), "split", nsplit,
		"children", children, "numCells", m.NumCells())

	return nil
}
