// SPDX-License-Identifier: MIT

package topology

// edgeShift is the ring offset between a cell's local node i and the
// half-edge carrying its local edge i. For polygons and quads local edge i
// joins nodes i and i+1 (the half-edge targeting node i+1); for triangles
// local edge i is opposite node i (the half-edge targeting node i+2).
func (t *Topology) edgeShift() int {
	if t.nv == Triangle {
		return 2
	}

	return 1
}

// ring returns the half-edges of all-cells index c starting at its
// representative. Fixed vertex-count meshes walk exactly nv steps.
func (t *Topology) ring(c int) []int {
	n := t.ringLen[c]
	if t.nv != Polygon && t.cidx[c] >= 0 {
		n = t.nv
	}
	out := make([]int, n)
	h := t.cell2he[c]
	for i := 0; i < n; i++ {
		out[i] = h
		h = t.hes[h].Next
	}

	return out
}

// Ring returns the half-edges of all-cells index c in counter-clockwise order,
// starting from CellHalfEdge(c). The exterior may hold several rings; only the
// one containing its representative is walked.
func (t *Topology) Ring(c int) []int {
	h0 := t.cell2he[c]
	out := []int{h0}
	for h := t.hes[h0].Next; h != h0 && len(out) <= len(t.hes); h = t.hes[h].Next {
		out = append(out, h)
	}

	return out
}

// CellToNode returns, per interior cell, its nodes in ring order. Local node i
// is the target of the i-th half-edge walked from CellHalfEdge.
//
// Complexity:
//   - Time O(H), Space O(H).
func (t *Topology) CellToNode() [][]int {
	out := make([][]int, t.NumCells())
	for k := range out {
		r := t.ring(k + t.cellStart)
		nodes := make([]int, len(r))
		for i, h := range r {
			nodes[i] = t.hes[h].Target
		}
		out[k] = nodes
	}

	return out
}

// CellToEdge returns, per interior cell, its edges in local order (see
// edgeShift for the triangle convention).
//
// Complexity:
//   - Time O(H), Space O(H).
func (t *Topology) CellToEdge() [][]int {
	shift := t.edgeShift()
	out := make([][]int, t.NumCells())
	for k := range out {
		r := t.ring(k + t.cellStart)
		n := len(r)
		edges := make([]int, n)
		for i := range edges {
			edges[i] = t.edgeOf[r[(i+shift)%n]]
		}
		out[k] = edges
	}

	return out
}

// CellToCell returns, per interior cell, the interior neighbour across each
// local edge. Sides facing the exterior or a hole map to the cell itself.
//
// Complexity:
//   - Time O(H), Space O(H).
func (t *Topology) CellToCell() [][]int {
	shift := t.edgeShift()
	out := make([][]int, t.NumCells())
	for k := range out {
		r := t.ring(k + t.cellStart)
		n := len(r)
		nb := make([]int, n)
		for i := range nb {
			h := r[(i+shift)%n]
			j := t.cidx[t.hes[t.hes[h].Twin].Cell]
			if j < 0 {
				j = k
			}
			nb[i] = j
		}
		out[k] = nb
	}

	return out
}

// EdgeToNode returns (origin, target) of every edge's primary half-edge.
func (t *Topology) EdgeToNode() [][2]int {
	out := make([][2]int, len(t.primary))
	for e, h := range t.primary {
		out[e] = [2]int{t.Origin(h), t.hes[h].Target}
	}

	return out
}

// EdgeToCell returns, per edge, {cell0, cell1, local0, local1}: the interior
// cells on the primary and twin sides and the edge's local index in each.
// Boundary edges repeat the interior side in both halves.
//
// Complexity:
//   - Time O(H), Space O(E).
func (t *Topology) EdgeToCell() [][4]int {
	local := t.localEdgeIndex()
	out := make([][4]int, len(t.primary))
	for e, h := range t.primary {
		tw := t.hes[h].Twin
		c0, l0 := t.cidx[t.hes[h].Cell], local[h]
		c1, l1 := t.cidx[t.hes[tw].Cell], local[tw]
		if c0 < 0 {
			c0, l0 = c1, l1
		}
		if c1 < 0 {
			c1, l1 = c0, l0
		}
		out[e] = [4]int{c0, c1, l0, l1}
	}

	return out
}

// localEdgeIndex gives each interior half-edge its local edge index within its
// cell, -1 for exterior/hole half-edges.
func (t *Topology) localEdgeIndex() []int {
	local := make([]int, len(t.hes))
	for i := range local {
		local[i] = -1
	}
	shift := t.edgeShift()
	for c := t.cellStart; c < len(t.subdomain); c++ {
		r := t.ring(c)
		n := len(r)
		for j, h := range r {
			local[h] = (j - shift + n) % n
		}
	}

	return local
}

// CellToNodeIncidence returns the NumCells×NumNodes incidence.
func (t *Topology) CellToNodeIncidence() *Incidence {
	var I, J []int
	for h, he := range t.hes {
		if t.hflag[h] {
			I = append(I, t.cidx[he.Cell])
			J = append(J, he.Target)
		}
	}

	return mustIncidence(t.NumCells(), t.numNodes, I, J)
}

// CellToEdgeIncidence returns the NumCells×NumEdges incidence.
func (t *Topology) CellToEdgeIncidence() *Incidence {
	var I, J []int
	for h, he := range t.hes {
		if t.hflag[h] {
			I = append(I, t.cidx[he.Cell])
			J = append(J, t.edgeOf[h])
		}
	}

	return mustIncidence(t.NumCells(), t.NumEdges(), I, J)
}

// CellToCellIncidence returns the symmetric NumCells×NumCells incidence of
// interior cells sharing an edge.
func (t *Topology) CellToCellIncidence() *Incidence {
	var I, J []int
	for h, he := range t.hes {
		if t.hflag[h] && t.hflag[he.Twin] {
			I = append(I, t.cidx[he.Cell])
			J = append(J, t.cidx[t.hes[he.Twin].Cell])
		}
	}

	return mustIncidence(t.NumCells(), t.NumCells(), I, J)
}

// EdgeToNodeIncidence returns the NumEdges×NumNodes incidence.
func (t *Topology) EdgeToNodeIncidence() *Incidence {
	I := make([]int, 0, 2*len(t.primary))
	J := make([]int, 0, 2*len(t.primary))
	for e, h := range t.primary {
		I = append(I, e, e)
		J = append(J, t.Origin(h), t.hes[h].Target)
	}

	return mustIncidence(t.NumEdges(), t.numNodes, I, J)
}

// EdgeToEdge returns the symmetric NumEdges×NumEdges incidence of edges
// sharing a node, computed as EdgeToNodeIncidence times its transpose. Every
// edge is its own neighbour, so the diagonal is set.
//
// Complexity:
//   - Time O(Σ_v deg(v)²), Space O(NNZ).
func (t *Topology) EdgeToEdge() *Incidence {
	e2n := t.EdgeToNodeIncidence()
	e2e, err := e2n.Mul(e2n.Transpose())
	if err != nil {
		panic(err) // shapes are NumEdges×NumNodes and its transpose
	}

	return e2e
}

// NodeToNode returns the symmetric NumNodes×NumNodes incidence of nodes joined
// by an edge.
func (t *Topology) NodeToNode() *Incidence {
	I := make([]int, len(t.hes))
	J := make([]int, len(t.hes))
	for h, he := range t.hes {
		I[h] = t.Origin(h)
		J[h] = he.Target
	}

	return mustIncidence(t.numNodes, t.numNodes, I, J)
}

// NodeToCell returns the NumNodes×NumCells incidence of nodes and the
// interior cells around them.
func (t *Topology) NodeToCell() *Incidence {
	var I, J []int
	for h, he := range t.hes {
		if t.hflag[h] {
			I = append(I, he.Target)
			J = append(J, t.cidx[he.Cell])
		}
	}

	return mustIncidence(t.numNodes, t.NumCells(), I, J)
}
