// SPDX-License-Identifier: MIT

package mesh

import (
	"github.com/katalvlaran/hemesh/topology"
)

// greenPair is the output of one green bisection of a parent [A, B, C]
// whose side B→C was split at M (see greenTriangle):
//
//	c = [A→B, B→M, M→A]   q = [M→C, C→A, A→M]
type greenPair struct {
	c, q  int
	bis   int    // M→A in c
	sides [4]int // A→B, B→M, M→C, C→A
}

// touched reports whether any outer side of g is split.
func (g *greenPair) touched(split []bool) bool {
	for _, h := range g.sides {
		if split[h] {
			return true
		}
	}

	return false
}

// greenPairs finds every green pair of the mesh. pairOf maps each cell to
// its pair index, or -1.
func (m *Mesh) greenPairs() (pairs []greenPair, pairOf []int) {
	pairOf = make([]int, m.ds.NumAllCells())
	for c := range pairOf {
		pairOf[c] = -1
	}
	for h := range m.ds.Raw() {
		g, ok := m.findGreenPair(h)
		if !ok || pairOf[g.c] >= 0 || pairOf[g.q] >= 0 {
			continue
		}
		pairOf[g.c], pairOf[g.q] = len(pairs), len(pairs)
		pairs = append(pairs, g)
	}

	return pairs, pairOf
}

// findGreenPair reports whether h is the bisector M→A of a green pair: both
// cells are interior at level L, h and the halves B→M, M→C sit at L+1, the
// parent sides A→B, C→A at L, M was created at L+1 and A before it.
func (m *Mesh) findGreenPair(h int) (greenPair, bool) {
	var g greenPair
	hes := m.ds.Raw()
	t := hes[h].Twin
	c, q := hes[h].Cell, hes[t].Cell
	if !m.ds.IsInterior(c) || !m.ds.IsInterior(q) {
		return g, false
	}
	l := m.clevel[c]
	mid, apex := hes[t].Target, hes[h].Target
	if m.clevel[q] != l || m.hlevel[h] != l+1 || m.nlevel[mid] != l+1 || m.nlevel[apex] > l {
		return g, false
	}
	g.sides = [4]int{hes[h].Next, hes[h].Prev, hes[t].Next, hes[t].Prev}
	for i, x := range g.sides {
		want := l
		if i == 1 || i == 2 {
			want = l + 1
		}
		if m.hlevel[x] != want {
			return g, false
		}
	}
	g.c, g.q, g.bis = c, q, h

	return g, true
}

// RefineTriangle refines a triangle mesh with red/green closure; the result
// has no hanging nodes and no green child is ever bisected again.
//
// Implementation:
//   - Stage 1 (Pairs): green pairs left by earlier passes are found at their
//     bisectors. A pair is one closure unit: when either child is marked or
//     any of its four outer sides is split, it is restored to its parent and
//     the parent's own sides A→B and C→A are split.
//   - Stage 2 (Closure): marked regular cells are red and all their edges
//     split. Until nothing changes, a regular triangle becomes red when it
//     has two or more split edges, or one split edge whose level differs
//     from its own. Triangles left with exactly one split edge are green.
//   - Stage 3 (Bisect): every split edge is bisected once.
//   - Stage 4 (Subdivide): red triangles split into three corner children
//     and a centre child of level L+1; restored pairs do the same from their
//     parent, reusing the bisector as a centre side, and a corner child
//     whose half side was bisected is split green; green triangles are
//     bisected from the midpoint to the opposite vertex into two children
//     that keep level L.
//   - Stage 5 (Renumber).
//
// Every cell is then a red child, an unrefined cell or a green child of
// such a cell, so angles never drop below those of one green bisection of
// the input triangles.
//
// Errors: topology.ErrUnsupportedVertexCount on a non-triangle mesh,
// ErrMarkLength, ErrExteriorMarked.
//
// Complexity:
//   - Time O(k·C) for k closure passes, Space O(H).
func (m *Mesh) RefineTriangle(marked []bool) error {
	const op = "RefineTriangle"
	if err := m.requireVertexCount(op, topology.Triangle); err != nil {
		return err
	}
	if err := m.checkMarked(op, marked); err != nil {
		return err
	}
	ds := m.ds
	hes := ds.Raw()
	start, nc := ds.CellStart(), ds.NumAllCells()

	// Stage 1 (Pairs)
	pairs, pairOf := m.greenPairs()

	// Stage 2 (Closure)
	red := make([]bool, nc)
	split := make([]bool, len(hes))
	mark := func(h int) bool {
		if split[h] {
			return false
		}
		split[h], split[hes[h].Twin] = true, true
		return true
	}
	setRed := func(c int) {
		red[c] = true
		for _, h := range ds.Ring(c) {
			mark(h)
		}
	}
	restore := make([]bool, len(pairs))
	for c, f := range marked {
		if !f {
			continue
		}
		if k := pairOf[c]; k >= 0 {
			restore[k] = true
		} else {
			setRed(c)
		}
	}
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		for k := range pairs {
			g := &pairs[k]
			if !restore[k] && !g.touched(split) {
				continue
			}
			restore[k] = true
			changed = mark(g.sides[0]) || changed
			changed = mark(g.sides[3]) || changed
		}
		for c := start; c < nc; c++ {
			if red[c] || pairOf[c] >= 0 {
				continue
			}
			k, deep := m.splitSides(c, split, 3)
			if k >= 2 || (k == 1 && deep) {
				setRed(c)
				changed = true
			}
		}
	}
	var green []int
	for c := start; c < nc; c++ {
		if red[c] || pairOf[c] >= 0 {
			continue
		}
		if k, _ := m.splitSides(c, split, 3); k == 1 {
			green = append(green, c)
		}
	}
	restored := countTrue(restore)
	Logger().Debug("mesh: triangle closure", "marked", countTrue(marked), "red", countTrue(red),
		"green", len(green), "restored", restored, "passes", passes)

	// Stage 3 (Bisect)
	s := m.newSurgery()
	nsplit := 0
	for h, he := range hes {
		if split[h] && he.Primary {
			s.splitEdge(h)
			nsplit++
		}
	}

	// Stage 4 (Subdivide)
	for c := start; c < nc; c++ {
		if red[c] {
			s.redTriangle(c)
		}
	}
	ngreen := len(green)
	for k, g := range pairs {
		if restore[k] {
			ngreen += s.redPair(g)
		}
	}
	for _, c := range green {
		s.greenTriangle(c, s.intoNew(ds.CellHalfEdge(c)))
	}

	// Stage 5 (Renumber)
	if err := s.commit(op, topology.Triangle); err != nil {
		return err
	}
	Logger().Info("mesh: refined", "family", "triangle", "red", countTrue(red), "green", ngreen,
		"restored", restored, "split", nsplit, "numCells", m.NumCells())

	return nil
}

// splitSides counts the split sides among the nv half-edges of cell c and
// reports whether any of them sits above the cell's level.
func (m *Mesh) splitSides(c int, split []bool, nv int) (int, bool) {
	hes := m.ds.Raw()
	h := m.ds.CellHalfEdge(c)
	k, deep := 0, false
	for i := 0; i < nv; i++ {
		if split[h] {
			k++
			if m.hlevel[h] != m.clevel[c] {
				deep = true
			}
		}
		h = hes[h].Next
	}

	return k, deep
}

// redTriangle splits a triangle whose three edges were bisected. With the
// ring a_i = P_i→m_i, b_i = m_i→P_{i+1}, corner child i is
// [b_i, a_{i+1}, m_{i+1}→m_i] and the centre is [m_0→m_1, m_1→m_2, m_2→m_0].
func (s *surgery) redTriangle(c int) {
	ring := s.ring(s.m.ds.CellHalfEdge(c))
	// rotate so ring[0] targets a midpoint
	for j, h := range ring {
		if s.isNew(s.he[h].Target) {
			ring = append(ring[j:], ring[:j]...)
			break
		}
	}
	a := [3]int{ring[0], ring[2], ring[4]}
	b := [3]int{ring[1], ring[3], ring[5]}
	var mid [3]int
	for i := range mid {
		mid[i] = s.he[a[i]].Target
	}

	level := s.clevel[c] + 1
	s.clevel[c] = level
	corner := [3]int{c, s.addCell(c, level), s.addCell(c, level)}
	centre := s.addCell(c, level)

	var inner, outer [3]int // m_{i+1}→m_i in corner i, m_i→m_{i+1} in centre
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		inner[i], outer[i] = s.addPair(mid[i], corner[i], mid[j], centre, level)
	}
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		s.he[b[i]].Cell = corner[i]
		s.he[a[j]].Cell = corner[i]
		s.link(b[i], a[j])
		s.link(a[j], inner[i])
		s.link(inner[i], b[i])
		s.link(outer[i], outer[j])
	}
}

// intoNew returns the first half-edge of the ring through h whose target
// was created by this pass.
func (s *surgery) intoNew(h int) int {
	for _, x := range s.ring(h) {
		if s.isNew(s.he[x].Target) {
			return x
		}
	}

	return h
}

// redPair restores the green pair g to its parent [A, B, C] and splits the
// parent red once A→B (at m1) and C→A (at m2) are bisected. The bisector
// M→A becomes the centre side M→m2:
//
//	K_B = [m1, B, M] (c)    K_C = [M, C, m2] (q)
//	K_A = [A, m1, m2]       centre = [m1, M, m2]
//
// A corner child whose half side was bisected in the same pass is then
// split green. It returns the number of those green splits.
func (s *surgery) redPair(g greenPair) int {
	h, t := g.bis, s.he[g.bis].Twin
	aM1 := s.he[h].Next
	m1B := s.he[aM1].Next
	bM := s.he[h].Prev
	mc := s.he[t].Next
	m2A := s.he[t].Prev
	cm2 := s.he[m2A].Prev
	m1, m2, mid := s.he[aM1].Target, s.he[cm2].Target, s.he[t].Target

	level := s.clevel[g.c] + 1
	s.clevel[g.c], s.clevel[g.q] = level, level
	s.mergeCellData(g.c, g.q)
	kA := s.addCell(g.c, level)
	centre := s.addCell(g.c, level)

	s.he[h].Target = m2
	x, xt := s.addPair(m2, kA, m1, centre, level)  // m1→m2, m2→m1
	y, yt := s.addPair(m1, g.c, mid, centre, level) // M→m1, m1→M
	// K_A
	s.he[aM1].Cell, s.he[m2A].Cell = kA, kA
	s.link(aM1, x)
	s.link(x, m2A)
	s.link(m2A, aM1)
	// K_B
	s.link(bM, y)
	s.link(y, m1B)
	// K_C
	s.link(cm2, t)
	s.link(t, mc)
	// centre
	s.he[h].Cell = centre
	s.link(yt, h)
	s.link(h, xt)
	s.link(xt, yt)

	n := 0
	if hin := s.he[m1B].Next; hin != bM {
		s.greenTriangle(g.c, hin)
		n++
	}
	if s.he[mc].Next != cm2 {
		s.greenTriangle(g.q, mc)
		n++
	}

	return n
}

// greenTriangle bisects a triangle with one split side B→m→C, where hin is
// B→m, from the midpoint m to the opposite vertex A:
//
//	[A→B, B→m, m→A]  (keeps c)      [m→C, C→A, A→m]  (new)
//
// Both children keep level L; the bisector gets level L+1.
func (s *surgery) greenTriangle(c, hin int) {
	hout := s.he[hin].Next
	hCA := s.he[hout].Next
	hAB := s.he[hCA].Next
	apex, mid := s.he[hCA].Target, s.he[hin].Target

	level := s.clevel[c]
	q := s.addCell(c, level)
	up, down := s.addPair(apex, c, mid, q, level+1) // m→A, A→m
	s.link(hin, up)
	s.link(up, hAB)
	s.link(hCA, down)
	s.link(down, hout)
	s.he[hout].Cell = q
	s.he[hCA].Cell = q
}
