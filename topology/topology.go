// SPDX-License-Identifier: MIT

package topology

import "fmt"

// Topology owns the half-edge array of a 2D mesh and every index derived
// from it. The zero value is not usable; construct with New.
type Topology struct {
	numNodes  int
	hes       []HalfEdge
	subdomain []int
	nv        int

	cellStart int
	cidx      []int  // all-cell → interior index, -1 for exterior/holes
	hflag     []bool // half-edge borders an interior cell
	cell2he   []int  // all-cell → smallest bordering half-edge
	ringLen   []int  // all-cell → number of bordering half-edges
	edgeOf    []int  // half-edge → edge index
	primary   []int  // edge index → primary half-edge
}

// New builds a Topology over numNodes nodes from a subdomain tag per cell and
// a half-edge array. nv is the fixed vertex-count hint (Polygon, Triangle or
// Quadrilateral). New takes ownership of subdomain and hes; the caller must
// not modify them afterwards.
//
// Complexity:
//   - Time O(H + C), Space O(H + C).
func New(numNodes int, subdomain []int, hes []HalfEdge, nv int) (*Topology, error) {
	t := &Topology{}
	if err := t.Reinit(numNodes, subdomain, hes, nv); err != nil {
		return nil, err
	}

	return t, nil
}

// Reinit replaces the half-edge array and recomputes every derived index from
// scratch. On error the receiver is left unchanged.
//
// Implementation:
//   - Stage 1 (Validate): parity, exterior uniqueness, vertex-count hint,
//     field ranges, subdomain ordering, twin involution and primary pairing.
//   - Stage 2 (Derive): interior map, half-edge flags, cell representatives,
//     ring lengths and edge numbering.
//   - Stage 3 (Commit): swap the new state in.
//
// Complexity:
//   - Time O(H + C), Space O(H + C).
func (t *Topology) Reinit(numNodes int, subdomain []int, hes []HalfEdge, nv int) error {
	// Stage 1 (Validate)
	nh, nc := len(hes), len(subdomain)
	if nh%2 != 0 {
		return fmt.Errorf("Reinit: %d half-edges: %w", nh, ErrOddHalfEdges)
	}
	cellStart, err := findCellStart(subdomain)
	if err != nil {
		return err
	}
	if nv != Polygon && nv != Triangle && nv != Quadrilateral {
		return fmt.Errorf("Reinit: nv=%d: %w", nv, ErrUnsupportedVertexCount)
	}
	if numNodes < 0 {
		return fmt.Errorf("Reinit: numNodes=%d: %w", numNodes, ErrIndexRange)
	}
	for i, h := range hes {
		switch {
		case h.Target < 0 || h.Target >= numNodes:
			return fmt.Errorf("Reinit: half-edge %d target %d: %w", i, h.Target, ErrIndexRange)
		case h.Cell < 0 || h.Cell >= nc:
			return fmt.Errorf("Reinit: half-edge %d cell %d: %w", i, h.Cell, ErrIndexRange)
		case h.Next < 0 || h.Next >= nh, h.Prev < 0 || h.Prev >= nh, h.Twin < 0 || h.Twin >= nh:
			return fmt.Errorf("Reinit: half-edge %d link: %w", i, ErrIndexRange)
		}
	}
	for c, tag := range subdomain {
		if (c < cellStart && tag > 0) || (c >= cellStart && tag <= 0) {
			return fmt.Errorf("Reinit: cell %d tag %d (cellStart %d): %w", c, tag, cellStart, ErrSubdomainOrder)
		}
	}
	for i, h := range hes {
		if h.Twin == i || hes[h.Twin].Twin != i {
			return fmt.Errorf("Reinit: half-edge %d twin %d: %w", i, h.Twin, ErrBrokenTopology)
		}
		if h.Primary == hes[h.Twin].Primary {
			return fmt.Errorf("Reinit: half-edge %d primary pairing: %w", i, ErrBrokenTopology)
		}
	}

	// Stage 2 (Derive)
	cidx := make([]int, nc)
	for c := range cidx {
		cidx[c] = -1
		if c >= cellStart {
			cidx[c] = c - cellStart
		}
	}
	hflag := make([]bool, nh)
	cell2he := make([]int, nc)
	for c := range cell2he {
		cell2he[c] = -1
	}
	ringLen := make([]int, nc)
	for i := nh - 1; i >= 0; i-- {
		c := hes[i].Cell
		hflag[i] = subdomain[c] > 0
		cell2he[c] = i
		ringLen[c]++
	}
	for c, h := range cell2he {
		if h < 0 {
			return fmt.Errorf("Reinit: cell %d: %w", c, ErrEmptyCell)
		}
		if nv != Polygon && c >= cellStart && ringLen[c] != nv {
			return fmt.Errorf("Reinit: cell %d has %d half-edges, nv=%d: %w", c, ringLen[c], nv, ErrVertexCountMismatch)
		}
	}
	edgeOf := make([]int, nh)
	primary := make([]int, 0, nh/2)
	for i, h := range hes {
		if h.Primary {
			edgeOf[i] = len(primary)
			edgeOf[h.Twin] = len(primary)
			primary = append(primary, i)
		}
	}

	// Stage 3 (Commit)
	t.numNodes = numNodes
	t.hes = hes
	t.subdomain = subdomain
	t.nv = nv
	t.cellStart = cellStart
	t.cidx = cidx
	t.hflag = hflag
	t.cell2he = cell2he
	t.ringLen = ringLen
	t.edgeOf = edgeOf
	t.primary = primary

	return nil
}

// findCellStart returns 1 + the index of the unique zero-tag cell, or 0 when
// no exterior exists.
func findCellStart(subdomain []int) (int, error) {
	start, seen := 0, false
	for c, tag := range subdomain {
		if tag != ExteriorTag {
			continue
		}
		if seen {
			return 0, fmt.Errorf("Reinit: cells %d and %d: %w", start-1, c, ErrMultipleExterior)
		}
		start, seen = c+1, true
	}

	return start, nil
}

// NumNodes returns the node count.
func (t *Topology) NumNodes() int { return t.numNodes }

// NumHalfEdges returns the number of half-edges (2 × NumEdges).
func (t *Topology) NumHalfEdges() int { return len(t.hes) }

// NumEdges returns the number of undirected edges.
func (t *Topology) NumEdges() int { return len(t.hes) / 2 }

// NumAllCells returns the number of cells including exterior and holes.
func (t *Topology) NumAllCells() int { return len(t.subdomain) }

// NumCells returns the number of interior cells.
func (t *Topology) NumCells() int { return len(t.subdomain) - t.cellStart }

// CellStart returns the all-cells index of the first interior cell.
func (t *Topology) CellStart() int { return t.cellStart }

// VertexCount returns the fixed vertex-count hint (0 for general polygons).
func (t *Topology) VertexCount() int { return t.nv }

// Subdomain returns the tag of all-cells index c.
func (t *Topology) Subdomain(c int) int { return t.subdomain[c] }

// Subdomains returns a copy of the per-cell tags over all cells.
func (t *Topology) Subdomains() []int { return append([]int(nil), t.subdomain...) }

// HalfEdge returns half-edge i by value.
func (t *Topology) HalfEdge(i int) HalfEdge { return t.hes[i] }

// HalfEdges returns a copy of the half-edge array.
func (t *Topology) HalfEdges() []HalfEdge { return append([]HalfEdge(nil), t.hes...) }

// Raw returns the half-edge array itself. Callers must treat it as read-only;
// mutate a copy and hand it back through Reinit instead.
func (t *Topology) Raw() []HalfEdge { return t.hes }

// Origin returns the node half-edge h starts from.
func (t *Topology) Origin(h int) int { return t.hes[t.hes[h].Twin].Target }

// InteriorIndex maps an all-cells index to its interior index, or -1.
func (t *Topology) InteriorIndex(c int) int { return t.cidx[c] }

// IsInterior reports whether all-cells index c is an interior cell.
func (t *Topology) IsInterior(c int) bool { return t.cidx[c] >= 0 }

// IsInteriorHalfEdge reports whether half-edge h borders an interior cell.
func (t *Topology) IsInteriorHalfEdge(h int) bool { return t.hflag[h] }

// CellHalfEdge returns the representative half-edge of all-cells index c.
func (t *Topology) CellHalfEdge(c int) int { return t.cell2he[c] }

// EdgeIndex returns the undirected edge that half-edge h belongs to.
func (t *Topology) EdgeIndex(h int) int { return t.edgeOf[h] }

// PrimaryHalfEdge returns the primary half-edge of edge e.
func (t *Topology) PrimaryHalfEdge(e int) int { return t.primary[e] }

// CellVertexCounts returns the ring length of every interior cell.
func (t *Topology) CellVertexCounts() []int {
	return append([]int(nil), t.ringLen[t.cellStart:]...)
}

// AllCellVertexCounts returns the ring length of every cell, exterior and
// holes included. The exterior may consist of several rings.
func (t *Topology) AllCellVertexCounts() []int { return append([]int(nil), t.ringLen...) }
