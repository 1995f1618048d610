// SPDX-License-Identifier: MIT

package topology

// BoundaryHalfEdgeFlag marks half-edges that border an interior cell while
// their twin borders the exterior or a hole.
func (t *Topology) BoundaryHalfEdgeFlag() []bool {
	flag := make([]bool, len(t.hes))
	for h, he := range t.hes {
		flag[h] = t.hflag[h] && !t.hflag[he.Twin]
	}

	return flag
}

// BoundaryNodeFlag marks nodes lying on a boundary half-edge.
func (t *Topology) BoundaryNodeFlag() []bool {
	flag := make([]bool, t.numNodes)
	for h, bd := range t.BoundaryHalfEdgeFlag() {
		if bd {
			flag[t.hes[h].Target] = true
			flag[t.Origin(h)] = true
		}
	}

	return flag
}

// BoundaryEdgeFlag marks edges with a boundary half-edge.
func (t *Topology) BoundaryEdgeFlag() []bool {
	flag := make([]bool, len(t.primary))
	for h, bd := range t.BoundaryHalfEdgeFlag() {
		if bd {
			flag[t.edgeOf[h]] = true
		}
	}

	return flag
}

// BoundaryCellFlag marks interior cells owning a boundary half-edge.
func (t *Topology) BoundaryCellFlag() []bool {
	flag := make([]bool, t.NumCells())
	for h, bd := range t.BoundaryHalfEdgeFlag() {
		if bd {
			flag[t.cidx[t.hes[h].Cell]] = true
		}
	}

	return flag
}

// BoundaryNodeIndex lists boundary nodes in ascending order.
func (t *Topology) BoundaryNodeIndex() []int { return indexOf(t.BoundaryNodeFlag()) }

// BoundaryEdgeIndex lists boundary edges in ascending order.
func (t *Topology) BoundaryEdgeIndex() []int { return indexOf(t.BoundaryEdgeFlag()) }

// BoundaryCellIndex lists boundary interior cells in ascending order.
func (t *Topology) BoundaryCellIndex() []int { return indexOf(t.BoundaryCellFlag()) }

func indexOf(flag []bool) []int {
	var idx []int
	for i, f := range flag {
		if f {
			idx = append(idx, i)
		}
	}

	return idx
}
