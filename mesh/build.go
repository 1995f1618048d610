// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/hemesh/topology"
	"gonum.org/v1/gonum/spatial/r2"
)

// FromSimpleMesh builds a half-edge mesh from a conventional element list:
// nodes and, per cell, its node indices in either orientation.
//
// Implementation:
//   - Stage 1 (Validate): sizes, indices, duplicates, degenerate areas, the
//     fixed vertex count; clockwise cells are reversed.
//   - Stage 2 (Order): holes (negative tags) first, then the exterior slot,
//     then interior regions in input order.
//   - Stage 3 (Emit): one half-edge per cell side v_j → v_{j+1}.
//   - Stage 4 (Pair): sort sides by (low, high) node key; pairs become twins,
//     singletons become boundary sides, larger groups are non-manifold.
//   - Stage 5 (Close): append an exterior twin per boundary side, chained by
//     "next leaves my target", and pick primaries.
//
// Errors: ErrEmptyMesh, ErrInvalidCell, ErrDegenerateCell,
// ErrSubdomainLength, ErrNonManifold, ErrOrientation,
// topology.ErrVertexCountMismatch and any topology construction error.
//
// Complexity:
//   - Time O(H log H), Space O(N + H).
func FromSimpleMesh(nodes []r2.Vec, cells [][]int, opts ...Option) (*Mesh, error) {
	o := gatherOptions(opts...)

	// Stage 1 (Validate)
	if len(nodes) == 0 || len(cells) == 0 {
		return nil, ErrEmptyMesh
	}
	if o.subdomains != nil && len(o.subdomains) != len(cells) {
		return nil, fmt.Errorf("FromSimpleMesh: %d tags for %d cells: %w", len(o.subdomains), len(cells), ErrSubdomainLength)
	}
	rings := make([][]int, len(cells))
	for k, cell := range cells {
		ring, err := checkCell(nodes, cell, k, o)
		if err != nil {
			return nil, err
		}
		rings[k] = ring
	}

	// Stage 2 (Order)
	var holes, regions []int
	for k := range cells {
		if o.subdomains != nil && o.subdomains[k] < 0 {
			holes = append(holes, k)
		} else {
			regions = append(regions, k)
		}
	}
	order := append(append([]int(nil), holes...), regions...)
	ext := len(holes) // exterior slot; regions start at ext+1
	cellID := func(pos int) int {
		if pos < len(holes) {
			return pos
		}
		return pos + 1
	}

	// Stage 3 (Emit)
	var hes []topology.HalfEdge
	var origin []int
	for pos, k := range order {
		ring := rings[k]
		base, n := len(hes), len(ring)
		for j := range ring {
			hes = append(hes, topology.HalfEdge{
				Target: ring[(j+1)%n],
				Cell:   cellID(pos),
				Next:   base + (j+1)%n,
				Prev:   base + (j+n-1)%n,
				Twin:   -1,
			})
			origin = append(origin, ring[j])
		}
	}

	// Stage 4 (Pair)
	boundary, err := pairTwins(hes, origin)
	if err != nil {
		return nil, err
	}

	// Stage 5 (Close)
	nInterior := len(hes)
	if len(boundary) > 0 {
		extOut := make([]int, len(nodes)) // node → exterior half-edge leaving it
		for i := range extOut {
			extOut[i] = -1
		}
		for _, h := range boundary {
			e := len(hes)
			hes = append(hes, topology.HalfEdge{Target: origin[h], Cell: ext, Twin: h})
			hes[h].Twin = e
			b := hes[h].Target
			if extOut[b] >= 0 {
				return nil, fmt.Errorf("FromSimpleMesh: boundary loops touch at node %d: %w", b, ErrNonManifold)
			}
			extOut[b] = e
		}
		for e := nInterior; e < len(hes); e++ {
			nx := extOut[hes[e].Target]
			if nx < 0 {
				return nil, fmt.Errorf("FromSimpleMesh: open boundary at node %d: %w", hes[e].Target, ErrNonManifold)
			}
			hes[e].Next = nx
			hes[nx].Prev = e
		}
	}
	for h := 0; h < nInterior; h++ {
		tw := hes[h].Twin
		if tw >= nInterior {
			hes[h].Primary = true
		} else {
			hes[h].Primary = origin[h] < hes[h].Target
		}
	}

	subdomain := make([]int, 0, len(order)+1)
	for _, k := range holes {
		subdomain = append(subdomain, o.subdomains[k])
	}
	if len(boundary) > 0 {
		subdomain = append(subdomain, topology.ExteriorTag)
	} else {
		// closed surface: no exterior slot, shift regions down by one
		for h := range hes {
			if hes[h].Cell > ext {
				hes[h].Cell--
			}
		}
	}
	for _, k := range regions {
		tag := DefaultSubdomain
		if o.subdomains != nil {
			tag = o.subdomains[k]
		}
		subdomain = append(subdomain, tag)
	}

	ds, err := topology.New(len(nodes), subdomain, hes, o.nv)
	if err != nil {
		return nil, fmt.Errorf("FromSimpleMesh: %w", err)
	}
	m := &Mesh{
		nodes:      append([]r2.Vec(nil), nodes...),
		nlevel:     make([]int, len(nodes)),
		hlevel:     make([]int, len(hes)),
		clevel:     make([]int, len(subdomain)),
		ds:         ds,
		nodeData:   map[string][]float64{},
		edgeData:   map[string][]float64{},
		cellData:   map[string][]float64{},
		heData:     map[string][]float64{},
		globalData: map[string][]float64{},
	}
	Logger().Debug("mesh: built from simple mesh",
		"nodes", len(nodes), "cells", ds.NumCells(), "edges", ds.NumEdges(), "boundary", len(boundary))

	return m, nil
}

// checkCell validates cell k and returns it in counter-clockwise order.
func checkCell(nodes []r2.Vec, cell []int, k int, o Options) ([]int, error) {
	if len(cell) < 3 {
		return nil, fmt.Errorf("FromSimpleMesh: cell %d has %d nodes: %w", k, len(cell), ErrInvalidCell)
	}
	if o.nv != topology.Polygon && len(cell) != o.nv {
		return nil, fmt.Errorf("FromSimpleMesh: cell %d has %d nodes, nv=%d: %w", k, len(cell), o.nv, topology.ErrVertexCountMismatch)
	}
	pts := make([]r2.Vec, len(cell))
	for j, v := range cell {
		if v < 0 || v >= len(nodes) {
			return nil, fmt.Errorf("FromSimpleMesh: cell %d node %d: %w", k, v, ErrInvalidCell)
		}
		for _, w := range cell[:j] {
			if w == v {
				return nil, fmt.Errorf("FromSimpleMesh: cell %d repeats node %d: %w", k, v, ErrInvalidCell)
			}
		}
		pts[j] = nodes[v]
	}

	a := signedArea(pts)
	if math.Abs(a) <= o.eps {
		return nil, fmt.Errorf("FromSimpleMesh: cell %d area %g: %w", k, a, ErrDegenerateCell)
	}
	ring := append([]int(nil), cell...)
	if a < 0 {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
		Logger().Debug("mesh: reversed clockwise cell", "cell", k)
	}

	return ring, nil
}

// pairTwins links interior half-edges sharing an undirected edge and returns
// the unpaired (boundary) ones ordered by edge key.
func pairTwins(hes []topology.HalfEdge, origin []int) ([]int, error) {
	type side struct{ lo, hi, h int }
	sides := make([]side, len(hes))
	for h := range hes {
		a, b := origin[h], hes[h].Target
		if a > b {
			a, b = b, a
		}
		sides[h] = side{lo: a, hi: b, h: h}
	}
	sort.Slice(sides, func(i, j int) bool {
		if sides[i].lo != sides[j].lo {
			return sides[i].lo < sides[j].lo
		}
		if sides[i].hi != sides[j].hi {
			return sides[i].hi < sides[j].hi
		}
		return sides[i].h < sides[j].h
	})

	var boundary []int
	for i := 0; i < len(sides); {
		j := i + 1
		for j < len(sides) && sides[j].lo == sides[i].lo && sides[j].hi == sides[i].hi {
			j++
		}
		switch j - i {
		case 1:
			boundary = append(boundary, sides[i].h)
		case 2:
			h0, h1 := sides[i].h, sides[i+1].h
			if origin[h0] == origin[h1] {
				return nil, fmt.Errorf("FromSimpleMesh: edge (%d,%d): %w", sides[i].lo, sides[i].hi, ErrOrientation)
			}
			hes[h0].Twin, hes[h1].Twin = h1, h0
		default:
			return nil, fmt.Errorf("FromSimpleMesh: edge (%d,%d) has %d sides: %w", sides[i].lo, sides[i].hi, j-i, ErrNonManifold)
		}
		i = j
	}

	return boundary, nil
}
