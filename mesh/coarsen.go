// SPDX-License-Identifier: MIT

package mesh

import (
	"github.com/katalvlaran/hemesh/topology"
)

// Coarsen merges marked cells back into their parents with the family
// selected by the mesh's vertex-count hint. Only complete families whose
// refinement can be reversed exactly are merged; other marked cells are left
// alone. marked covers all cells.
func (m *Mesh) Coarsen(marked []bool) error {
	switch m.ds.VertexCount() {
	case topology.Triangle:
		return m.CoarsenTriangle(marked)
	case topology.Quadrilateral:
		return m.CoarsenQuad(marked)
	}

	return m.CoarsenPoly(marked)
}

// incoming lists, per node, the half-edges targeting it.
func (m *Mesh) incoming() [][]int {
	in := make([][]int, len(m.nodes))
	for h, he := range m.ds.Raw() {
		in[he.Target] = append(in[he.Target], h)
	}

	return in
}

// clean reports whether every half-edge of cell c sits at the cell's level.
func (m *Mesh) clean(c int) bool {
	for _, h := range m.ds.Ring(c) {
		if m.hlevel[h] != m.clevel[c] {
			return false
		}
	}

	return true
}

// removable reports whether node v is the centre of a complete family: all
// cells around it are interior, marked, clean and at v's level, and all its
// neighbours were created at that level too.
func (m *Mesh) removable(v int, in []int, marked []bool) bool {
	lv := m.nlevel[v]
	if lv < 1 || len(in) == 0 {
		return false
	}
	for _, h := range in {
		c := m.ds.HalfEdge(h).Cell
		if !m.ds.IsInterior(c) || !marked[c] || m.clevel[c] != lv || !m.clean(c) {
			return false
		}
		if m.nlevel[m.ds.Origin(h)] != lv {
			return false
		}
	}

	return true
}

// dissolvable reports whether node u is left with exactly two edges once the
// removed nodes rm are gone, and both sit at u's own level.
func (m *Mesh) dissolvable(u int, in []int, rm []bool) bool {
	if rm[u] || m.nlevel[u] < 1 {
		return false
	}
	left := 0
	for _, h := range in {
		if rm[m.ds.Origin(h)] {
			continue
		}
		left++
		if m.hlevel[h] != m.nlevel[u] {
			return false
		}
	}

	return left == 2
}

// CoarsenPoly reverses polygon fans around removable centroids. A merged cell
// may keep hanging nodes on its sides; those that end up with two straight
// edges are dissolved.
//
// Implementation:
//   - Stage 1 (Detect): removable nodes; nodes sharing a cell with another
//     removable node are dropped.
//   - Stage 2 (Plan): every edge at a removed node is deleted, the cells
//     around it merge at level nlevel(v)-1, and dissolvable neighbours are
//     scheduled.
//   - Stage 3 (Merge): applyMerge.
//
// Errors: ErrMarkLength, ErrExteriorMarked.
//
// Complexity:
//   - Time O(H), Space O(H + N).
func (m *Mesh) CoarsenPoly(marked []bool) error {
	const op = "CoarsenPoly"
	if err := m.checkMarked(op, marked); err != nil {
		return err
	}

	return m.coarsenStars(op, marked, topology.Polygon, false)
}

// CoarsenQuad reverses red quad refinements. A centroid is removed only when
// every midpoint around it dissolves as well, so no hanging node is left;
// blue transition cells are not coarsened.
//
// Errors: topology.ErrUnsupportedVertexCount on a non-quad mesh,
// ErrMarkLength, ErrExteriorMarked.
//
// Complexity:
//   - Time O(k·H) for k pruning passes, Space O(H + N).
func (m *Mesh) CoarsenQuad(marked []bool) error {
	const op = "CoarsenQuad"
	if err := m.requireVertexCount(op, topology.Quadrilateral); err != nil {
		return err
	}
	if err := m.checkMarked(op, marked); err != nil {
		return err
	}

	return m.coarsenStars(op, marked, topology.Quadrilateral, true)
}

// coarsenStars removes centroid-like nodes and merges the cells around them.
// With conforming set, a node stays only if all its neighbours dissolve.
func (m *Mesh) coarsenStars(op string, marked []bool, nv int, conforming bool) error {
	hes := m.ds.Raw()
	in := m.incoming()

	// Stage 1 (Detect)
	rm := make([]bool, len(m.nodes))
	for v := range rm {
		rm[v] = m.removable(v, in[v], marked)
	}
	owners := make([]int, m.ds.NumAllCells())
	for v, ok := range rm {
		if !ok {
			continue
		}
		for _, h := range in[v] {
			owners[hes[h].Cell]++
		}
	}
	for v, ok := range rm {
		if !ok {
			continue
		}
		for _, h := range in[v] {
			if owners[hes[h].Cell] > 1 {
				rm[v] = false
				break
			}
		}
	}
	passes := 0
	for changed := conforming; changed; passes++ {
		changed = false
		for v, ok := range rm {
			if !ok {
				continue
			}
			for _, h := range in[v] {
				if u := m.ds.Origin(h); !m.dissolvable(u, in[u], rm) {
					rm[v] = false
					changed = true
					break
				}
			}
		}
	}

	// Stage 2 (Plan)
	p := m.newMergePlan()
	removed, merged := 0, 0
	for v, ok := range rm {
		if !ok {
			continue
		}
		removed++
		p.delNode[v] = true
		cells := make([]int, 0, len(in[v]))
		for _, h := range in[v] {
			p.deleteEdge(hes, h)
			cells = append(cells, hes[h].Cell)
		}
		p.group(cells, m.nlevel[v]-1)
		merged += len(cells)
	}
	for v, ok := range rm {
		if !ok {
			continue
		}
		for _, h := range in[v] {
			u := m.ds.Origin(h)
			if !p.delNode[u] && m.dissolvable(u, in[u], rm) {
				p.delNode[u] = true
				p.dissolve = append(p.dissolve, u)
			}
		}
	}
	m.logIneligible(op, marked, merged, passes)
	if p.empty() {
		Logger().Info("mesh: coarsened", "op", op, "removed", 0, "numCells", m.NumCells())
		return nil
	}

	// Stage 3 (Merge)
	if err := m.applyMerge(op, p, nv); err != nil {
		return err
	}
	Logger().Info("mesh: coarsened", "op", op, "removed", removed, "dissolved", len(p.dissolve),
		"numCells", m.NumCells())

	return nil
}

// logIneligible reports marked cells that no family could take.
func (m *Mesh) logIneligible(op string, marked []bool, merged, passes int) {
	if left := countTrue(marked) - merged; left > 0 {
		Logger().Debug("mesh: marked cells kept", "op", op, "cells", left, "passes", passes)
	}
}

// redFamily is the output of one red triangle refinement: the centre and
// the three corner children across its edges.
type redFamily struct {
	cells [4]int // centre first
	inner [3]int // centre half-edges
	mids  [3]int // centre vertices
}

// findRedFamily reports whether the marked cell c is the centre of a
// complete red family.
func (m *Mesh) findRedFamily(c int, marked []bool) (redFamily, bool) {
	var f redFamily
	l := m.clevel[c]
	if !marked[c] || l < 1 {
		return f, false
	}
	hes := m.ds.Raw()
	f.cells[0] = c
	for i, h := range m.ds.Ring(c) {
		if m.hlevel[h] != l || m.nlevel[hes[h].Target] != l {
			return f, false
		}
		tw := hes[h].Twin
		t := hes[tw].Cell
		if !m.ds.IsInterior(t) || !marked[t] || m.clevel[t] != l || !m.clean(t) {
			return f, false
		}
		if m.nlevel[hes[hes[tw].Next].Target] > l-1 {
			return f, false
		}
		f.cells[i+1] = t
		f.inner[i] = h
		f.mids[i] = hes[h].Target
	}

	return f, true
}

// CoarsenTriangle reverses red triangle refinements. A family merges only
// when each of its midpoints dissolves: its remaining edges must be the two
// halves of the parent side, or those two plus the bisector of an unmarked
// green pair, which is then merged back at its own level.
//
// Implementation:
//   - Stage 1 (Detect): centres of complete, marked red families.
//   - Stage 2 (Prune): drop families with a midpoint that would keep a
//     third edge, until nothing changes.
//   - Stage 3 (Plan) and Stage 4 (Merge).
//
// Errors: topology.ErrUnsupportedVertexCount on a non-triangle mesh,
// ErrMarkLength, ErrExteriorMarked.
//
// Complexity:
//   - Time O(k·H) for k pruning passes, Space O(H + N).
func (m *Mesh) CoarsenTriangle(marked []bool) error {
	const op = "CoarsenTriangle"
	if err := m.requireVertexCount(op, topology.Triangle); err != nil {
		return err
	}
	if err := m.checkMarked(op, marked); err != nil {
		return err
	}
	hes := m.ds.Raw()
	in := m.incoming()

	// Stage 1 (Detect)
	var fams []redFamily
	for c := m.ds.CellStart(); c < m.ds.NumAllCells(); c++ {
		if f, ok := m.findRedFamily(c, marked); ok {
			fams = append(fams, f)
		}
	}

	// Stage 2 (Prune)
	active := make([]bool, len(fams))
	for i := range active {
		active[i] = true
	}
	del := make([]bool, len(hes))
	bisector := make(map[int]int) // midpoint → incoming bisector half-edge
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		clear(del)
		for i, f := range fams {
			if !active[i] {
				continue
			}
			for _, h := range f.inner {
				del[h], del[hes[h].Twin] = true, true
			}
		}
		clear(bisector)
		for i, f := range fams {
			if !active[i] {
				continue
			}
			for _, u := range f.mids {
				b, ok := m.triangleDissolve(u, in[u], del)
				if !ok {
					active[i] = false
					changed = true
					break
				}
				if b >= 0 {
					bisector[u] = b
				}
			}
		}
	}

	// Stage 3 (Plan)
	p := m.newMergePlan()
	kept, merged := 0, 0
	for i, f := range fams {
		if !active[i] {
			continue
		}
		kept++
		merged += len(f.cells)
		for _, h := range f.inner {
			p.deleteEdge(hes, h)
		}
		p.group(f.cells[:], m.clevel[f.cells[0]]-1)
		for _, u := range f.mids {
			if !p.delNode[u] {
				p.delNode[u] = true
				p.dissolve = append(p.dissolve, u)
			}
		}
	}
	greens := 0
	for _, u := range p.dissolve {
		b, ok := bisector[u]
		if !ok {
			continue
		}
		p.deleteEdge(hes, b)
		g := []int{hes[b].Cell, hes[hes[b].Twin].Cell}
		p.group(g, m.clevel[g[0]])
		greens++
	}
	m.logIneligible(op, marked, merged, passes)
	if p.empty() {
		Logger().Info("mesh: coarsened", "op", op, "families", 0, "numCells", m.NumCells())
		return nil
	}

	// Stage 4 (Merge)
	if err := m.applyMerge(op, p, topology.Triangle); err != nil {
		return err
	}
	Logger().Info("mesh: coarsened", "op", op, "families", kept, "greens", greens,
		"dissolved", len(p.dissolve), "numCells", m.NumCells())

	return nil
}

// triangleDissolve checks the edges left at midpoint u once del is applied.
// It returns the green bisector to drop along with them, or -1 when the two
// halves are all that remain.
func (m *Mesh) triangleDissolve(u int, in []int, del []bool) (int, bool) {
	lu := m.nlevel[u]
	hes := m.ds.Raw()
	left, bis := 0, -1
	for _, h := range in {
		if del[h] {
			continue
		}
		left++
		if m.hlevel[h] != lu {
			return -1, false
		}
		a, b := hes[h].Cell, hes[hes[h].Twin].Cell
		if m.ds.IsInterior(a) && m.ds.IsInterior(b) && m.clevel[a] == lu-1 && m.clevel[b] == lu-1 {
			if bis >= 0 {
				return -1, false
			}
			bis = h
		}
	}
	switch {
	case left == 2 && bis < 0:
		return -1, true
	case left == 3 && bis >= 0:
		return bis, true
	}

	return -1, false
}
