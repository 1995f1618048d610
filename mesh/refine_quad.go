// SPDX-License-Identifier: MIT

package mesh

import (
	"slices"

	"github.com/katalvlaran/hemesh/topology"
)

// quadPattern classifies the split sides of one quad: bits[i] is set when
// local side i (ring[i] from the representative) is split.
type quadPattern struct {
	bits [4]bool
	n    int
}

// adjacent returns i when exactly sides i and i+1 (mod 4) are split.
func (p quadPattern) adjacent() (int, bool) {
	if p.n != 2 {
		return 0, false
	}
	for i := 0; i < 4; i++ {
		if p.bits[i] && p.bits[(i+1)%4] {
			return i, true
		}
	}

	return 0, false
}

// blueFamily is the output of one blue split of a parent quad [A, B, C, D]
// around its node p (see blueQuad):
//
//	K0 = [A, m1, p, D]   K1 = [m1, B, m2, p]   K2 = [m2, C, D, p]
type blueFamily struct {
	cells [3]int
	p     int
	x1    int    // m1→p in K0
	y1    int    // p→D in K0
	x3    int    // m2→p in K1
	sides [6]int // A→m1, m1→B, B→m2, m2→C, C→D, D→A
}

// memberSides are the family sides each member borders.
var memberSides = [3][2]int{{0, 5}, {1, 2}, {3, 4}}

// touched reports whether any family side is split.
func (f *blueFamily) touched(split []bool) bool {
	for _, h := range f.sides {
		if split[h] {
			return true
		}
	}

	return false
}

// close marks what converting f needs: both sides of the parent that were
// never halved, and every half pair (A→m1, m1→B or B→m2, m2→C) with a split
// half.
func (f *blueFamily) close(split []bool, mark func(h int) bool) bool {
	changed := mark(f.sides[4])
	changed = mark(f.sides[5]) || changed
	for _, pair := range [2][2]int{{0, 1}, {2, 3}} {
		a, b := f.sides[pair[0]], f.sides[pair[1]]
		if split[a] || split[b] {
			changed = mark(a) || changed
			changed = mark(b) || changed
		}
	}

	return changed
}

// blueFamilies finds every blue family of the mesh. famOf maps each cell to
// its family index, or -1.
func (m *Mesh) blueFamilies() (fams []blueFamily, famOf []int) {
	famOf = make([]int, m.ds.NumAllCells())
	for c := range famOf {
		famOf[c] = -1
	}
	for p, in := range m.incoming() {
		f, ok := m.findBlueFamily(p, in)
		if !ok || famOf[f.cells[0]] >= 0 || famOf[f.cells[1]] >= 0 || famOf[f.cells[2]] >= 0 {
			continue
		}
		for _, c := range f.cells {
			famOf[c] = len(fams)
		}
		fams = append(fams, f)
	}

	return fams, famOf
}

// findBlueFamily reports whether p is the interior node of a blue family:
// p has degree 3 and level L+1, exactly one neighbour D sits below that
// level, and the three cells around p are interior quads of level L laid out
// as blueQuad leaves them.
func (m *Mesh) findBlueFamily(p int, in []int) (blueFamily, bool) {
	var f blueFamily
	lp := m.nlevel[p]
	if lp < 1 || len(in) != 3 {
		return f, false
	}
	y2 := -1 // D→p
	for _, h := range in {
		switch lo := m.nlevel[m.ds.Origin(h)]; {
		case lo == lp:
		case lo < lp && y2 < 0:
			y2 = h
		default:
			return f, false
		}
	}
	if y2 < 0 {
		return f, false
	}

	hes := m.ds.Raw()
	y1 := hes[y2].Twin
	hDA := hes[y1].Next
	hAm1 := hes[hDA].Next
	x1 := hes[hAm1].Next
	x2 := hes[x1].Twin
	hm1B := hes[x2].Next
	hBm2 := hes[hm1B].Next
	x3 := hes[hBm2].Next
	x4 := hes[x3].Twin
	hm2C := hes[x4].Next
	hCD := hes[hm2C].Next
	if hes[x1].Next != y1 || hes[x3].Next != x2 || hes[hCD].Next != y2 {
		return f, false
	}
	l := lp - 1
	f.cells = [3]int{hes[y1].Cell, hes[x2].Cell, hes[x4].Cell}
	for _, c := range f.cells {
		if !m.ds.IsInterior(c) || m.clevel[c] != l {
			return f, false
		}
	}
	for _, h := range []int{x1, y1, x3, hAm1, hm1B, hBm2, hm2C} {
		if m.hlevel[h] != lp {
			return f, false
		}
	}
	if m.hlevel[hCD] != l || m.hlevel[hDA] != l {
		return f, false
	}
	f.p, f.x1, f.y1, f.x3 = p, x1, y1, x3
	f.sides = [6]int{hAm1, hm1B, hBm2, hm2C, hCD, hDA}

	return f, true
}

// RefineQuad refines a quadrilateral mesh with red/blue closure; the result
// has no hanging nodes and every cell remains a quad.
//
// Implementation:
//   - Stage 1 (Families): blue families left by earlier passes are found
//     around their degree-3 nodes. A family is one closure unit: marking a
//     member splits that member's outer sides, and a family with any split
//     side converts (both untouched parent sides split, half pairs split
//     together).
//   - Stage 2 (Closure): marked regular cells are red. Every other regular
//     quad follows its split pattern until nothing changes: an adjacent pair
//     at the cell's level is a blue transition and any other pattern with
//     two or more splits turns red. Only when nothing else changes does one
//     quad with a single split side pull in a side next to it (see pull),
//     so every pull sees the splits already forced around it.
//   - Stage 3 (Bisect).
//   - Stage 4 (Subdivide): red quads fan into four children of level L+1;
//     blue quads split into three quads of level L around a new node;
//     converting families become the parent's four red children around
//     their existing node, and halves split in the same pass resolve inside
//     those children.
//   - Stage 5 (Renumber).
//
// Every fixed point of the closure is resolvable: rings have four sides on
// a quad mesh, regular quads end with no split, an adjacent pair or all four
// sides, and families end either untouched or fully converted.
//
// Errors: topology.ErrUnsupportedVertexCount on a non-quad mesh,
// ErrMarkLength, ErrExteriorMarked.
//
// Complexity:
//   - Time O(k·C) for k closure passes (one per single-side pull at most),
//     Space O(H).
func (m *Mesh) RefineQuad(marked []bool) error {
	const op = "RefineQuad"
	if err := m.requireVertexCount(op, topology.Quadrilateral); err != nil {
		return err
	}
	if err := m.checkMarked(op, marked); err != nil {
		return err
	}
	ds := m.ds
	hes := ds.Raw()
	start, nc := ds.CellStart(), ds.NumAllCells()

	// Stage 1 (Families)
	fams, famOf := m.blueFamilies()

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
	for c, f := range marked {
		if !f {
			continue
		}
		k := famOf[c]
		if k < 0 {
			setRed(c)
			continue
		}
		for _, i := range memberSides[slices.Index(fams[k].cells[:], c)] {
			mark(fams[k].sides[i])
		}
	}
	convert := make([]bool, len(fams))
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		for k := range fams {
			f := &fams[k]
			if !convert[k] && !f.touched(split) {
				continue
			}
			convert[k] = true
			changed = f.close(split, mark) || changed
		}
		for c := start; c < nc; c++ {
			if red[c] || famOf[c] >= 0 {
				continue
			}
			ring := ds.Ring(c)
			p := m.pattern(ring, split)
			if p.n < 2 {
				continue
			}
			if i, ok := p.adjacent(); ok && m.blueReady(c, ring[i], ring[(i+1)%4]) {
				continue
			}
			setRed(c)
			changed = true
		}
		if changed {
			continue
		}
		for c := start; c < nc && !changed; c++ {
			if red[c] || famOf[c] >= 0 {
				continue
			}
			ring := ds.Ring(c)
			if p := m.pattern(ring, split); p.n == 1 {
				mark(ring[m.pull(ring, p, split, famOf)])
				changed = true
			}
		}
	}
	var blue [][2]int // cell, first split side
	for c := start; c < nc; c++ {
		if red[c] || famOf[c] >= 0 {
			continue
		}
		ring := ds.Ring(c)
		if i, ok := m.pattern(ring, split).adjacent(); ok {
			blue = append(blue, [2]int{c, ring[i]})
		}
	}
	converted := countTrue(convert)
	Logger().Debug("mesh: quad closure", "marked", countTrue(marked), "red", countTrue(red),
		"blue", len(blue), "families", len(fams), "converted", converted, "passes", passes)

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
			s.fan(c, ds.CellHalfEdge(c), s.isNew)
		}
	}
	for _, b := range blue {
		s.blueQuad(b[0], b[1])
	}
	for k, f := range fams {
		if convert[k] {
			s.convertFamily(f, split[f.sides[0]], split[f.sides[2]])
		}
	}

	// Stage 5 (Renumber)
	if err := s.commit(op, topology.Quadrilateral); err != nil {
		return err
	}
	Logger().Info("mesh: refined", "family", "quad", "red", countTrue(red), "blue", len(blue),
		"converted", converted, "split", nsplit, "numCells", m.NumCells())

	return nil
}

// pull picks the side a quad with one split side adds, out of the two sides
// next to it. The cell across each candidate is ranked by the work it is
// left with: none across the boundary, none for a neighbour whose single
// split meets the shared side at a corner (it becomes a blue pair), one
// split for an untouched neighbour, and more for a family or anything else.
// Ties go to the side after the split one.
func (m *Mesh) pull(ring []int, p quadPattern, split []bool, famOf []int) int {
	i := slices.Index(p.bits[:], true)
	a, b := ring[(i+1)%4], ring[(i+3)%4]
	if m.pullCost(b, split, famOf) < m.pullCost(a, split, famOf) {
		return (i + 3) % 4
	}

	return (i + 1) % 4
}

// pullCost ranks splitting side h by what it leaves the cell across it.
func (m *Mesh) pullCost(h int, split []bool, famOf []int) int {
	tw := m.ds.HalfEdge(h).Twin
	d := m.ds.HalfEdge(tw).Cell
	switch {
	case !m.ds.IsInterior(d):
		return 0
	case famOf[d] >= 0:
		return 3
	}
	ring := m.ds.Ring(d)
	switch p := m.pattern(ring, split); p.n {
	case 0:
		return 2
	case 1:
		if j := slices.Index(ring, tw); !p.bits[(j+2)%4] {
			return 1
		}
	}

	return 3
}

func (m *Mesh) pattern(ring []int, split []bool) quadPattern {
	var p quadPattern
	for i, h := range ring {
		if split[h] {
			p.bits[i] = true
			p.n++
		}
	}

	return p
}

// blueReady reports whether both split sides of c sit at the cell's level.
func (m *Mesh) blueReady(c, h1, h2 int) bool {
	return m.hlevel[h1] == m.clevel[c] && m.hlevel[h2] == m.clevel[c]
}

// blueQuad splits quad c = [A, B, C, D] whose sides A→B (at m1) and B→C (at
// m2) were bisected into three quads around a new node p:
//
//	K0 = [A, m1, p, D] (keeps c)   K1 = [m1, B, m2, p]   K2 = [m2, C, D, p]
//
// hm1B is the second half m1→B of side A→B. Children keep level L; the inner
// edges and p get level L+1.
func (s *surgery) blueQuad(c, hm1B int) {
	hAm1 := s.he[hm1B].Prev
	hBm2 := s.he[hm1B].Next
	hm2C := s.he[hBm2].Next
	hCD := s.he[hm2C].Next
	hDA := s.he[hCD].Next

	m1, m2 := s.he[hAm1].Target, s.he[hBm2].Target
	d := s.he[hCD].Target
	corners := []int{s.origin(hAm1), s.he[hm1B].Target, s.he[hm2C].Target, d} // A, B, C, D

	level := s.clevel[c]
	p := s.addNode(vertexMean(s.points(corners)), level+1, corners...)
	k1 := s.addCell(c, level)
	k2 := s.addCell(c, level)

	x1, x2 := s.addPair(p, c, m1, k1, level+1)  // m1→p, p→m1
	y1, y2 := s.addPair(d, c, p, k2, level+1)   // p→D, D→p
	x3, x4 := s.addPair(p, k1, m2, k2, level+1) // m2→p, p→m2

	// K0
	s.link(hAm1, x1)
	s.link(x1, y1)
	s.link(y1, hDA)
	// K1
	for _, h := range []int{hm1B, hBm2} {
		s.he[h].Cell = k1
	}
	s.link(hBm2, x3)
	s.link(x3, x2)
	s.link(x2, hm1B)
	// K2
	for _, h := range []int{hm2C, hCD} {
		s.he[h].Cell = k2
	}
	s.link(hCD, y2)
	s.link(y2, x4)
	s.link(x4, hm2C)
}

// convertFamily rebuilds the blue family f of parent [A, B, C, D] as the
// parent's four red children around its existing node p, once C→D (at m3)
// and D→A (at m4) are bisected:
//
//	K_A = [A, m1, p, m4] (K0)   K_B = [m1, B, m2, p] (K1)
//	K_C = [m2, C, m3, p] (K2)   K_D = [m3, D, m4, p] (new)
//
// All four get level L+1. When ab is set the halves A→m1 and m1→B were
// bisected too: the edge p–m1 is bisected and K_A, K_B turn blue around
// nodes of level L+2. bc does the same for B→m2, m2→C and p–m2. With both,
// K_B is red instead.
func (s *surgery) convertFamily(f blueFamily, ab, bc bool) {
	k0, k1, k2 := f.cells[0], f.cells[1], f.cells[2]
	hCD, hDA := f.sides[4], f.sides[5] // m3→D, m4→A
	cm3, dm4 := s.he[hCD].Prev, s.he[hDA].Prev
	m3, m4 := s.he[cm3].Target, s.he[dm4].Target
	y2 := s.he[f.y1].Twin
	x2, x4 := s.he[f.x1].Twin, s.he[f.x3].Twin

	level := s.clevel[k0] + 1
	for _, c := range f.cells {
		s.clevel[c] = level
	}
	kD := s.addCell(k2, level)

	// K_A: p→D becomes p→m4, so D→p becomes m4→p
	s.he[f.y1].Target = m4
	s.link(f.y1, hDA)
	// K_C and K_D share the new edge p–m3
	z1, z2 := s.addPair(f.p, k2, m3, kD, level) // m3→p, p→m3
	s.link(cm3, z1)
	s.link(z1, x4)
	for _, h := range []int{hCD, dm4, y2} {
		s.he[h].Cell = kD
	}
	s.link(z2, hCD)
	s.link(hCD, dm4)
	s.link(dm4, y2)
	s.link(y2, z2)

	switch {
	case ab && bc:
		s.splitEdge(f.x1)
		s.splitEdge(f.x3)
		s.blueQuad(k0, f.sides[0])
		s.blueQuad(k2, x4)
		s.fan(k1, f.sides[1], s.isNew)
	case ab:
		s.splitEdge(f.x1)
		s.blueQuad(k0, f.sides[0])
		s.blueQuad(k1, x2)
	case bc:
		s.splitEdge(f.x3)
		s.blueQuad(k1, f.sides[2])
		s.blueQuad(k2, x4)
	}
}
