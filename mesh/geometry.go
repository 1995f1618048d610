// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// signedArea is the shoelace area of a closed polygon; positive when
// counter-clockwise.
func signedArea(pts []r2.Vec) float64 {
	var a float64
	for i, p := range pts {
		a += r2.Cross(p, pts[(i+1)%len(pts)])
	}

	return a / 2
}

// polygonCentroid is the area centroid of a closed polygon.
func polygonCentroid(pts []r2.Vec) r2.Vec {
	var a float64
	var c r2.Vec
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		w := r2.Cross(p, q)
		a += w
		c = r2.Add(c, r2.Scale(w, r2.Add(p, q)))
	}

	return r2.Vec{X: c.X / (3 * a), Y: c.Y / (3 * a)}
}

// vertexMean is the arithmetic mean of pts.
func vertexMean(pts []r2.Vec) r2.Vec {
	var c r2.Vec
	for _, p := range pts {
		c = r2.Add(c, p)
	}

	return r2.Scale(1/float64(len(pts)), c)
}

// CellArea returns the shoelace area of every interior cell.
//
// Complexity:
//   - Time O(H), Space O(C).
func (m *Mesh) CellArea() []float64 {
	start := m.ds.CellStart()
	area := make([]float64, m.ds.NumCells())
	for h, he := range m.ds.Raw() {
		if !m.ds.IsInteriorHalfEdge(h) {
			continue
		}
		o := m.nodes[m.ds.Origin(h)]
		area[he.Cell-start] += r2.Cross(o, m.nodes[he.Target]) / 2
	}

	return area
}

// NodeNormal returns, per interior cell and local node (CellToNode order),
// the corner normal: half of the vector from the previous to the next node,
// rotated clockwise by 90°. It points out of the cell. Over one cell the
// normals sum to zero and Σ n_i·x_i is twice the cell's area.
//
// Complexity:
//   - Time O(H), Space O(H).
func (m *Mesh) NodeNormal() [][]r2.Vec {
	cells := m.ds.CellToNode()
	out := make([][]r2.Vec, len(cells))
	for c, ring := range cells {
		n := len(ring)
		normals := make([]r2.Vec, n)
		for i := range ring {
			d := r2.Sub(m.nodes[ring[(i+1)%n]], m.nodes[ring[(i+n-1)%n]])
			normals[i] = r2.Vec{X: d.Y / 2, Y: -d.X / 2}
		}
		out[c] = normals
	}

	return out
}

// CellBarycenter returns the area centroid of every interior cell, or of
// every cell (exterior and holes first, in all-cells order) when includeAll
// is true. The exterior's centroid is the centroid of the whole domain.
//
// Complexity:
//   - Time O(H), Space O(C).
func (m *Mesh) CellBarycenter(includeAll bool) []r2.Vec {
	nc := m.ds.NumAllCells()
	twice := make([]float64, nc)
	acc := make([]r2.Vec, nc)
	for h, he := range m.ds.Raw() {
		o, t := m.nodes[m.ds.Origin(h)], m.nodes[he.Target]
		w := r2.Cross(o, t)
		twice[he.Cell] += w
		acc[he.Cell] = r2.Add(acc[he.Cell], r2.Scale(w, r2.Add(o, t)))
	}
	out := make([]r2.Vec, nc)
	for c := range out {
		out[c] = r2.Vec{X: acc[c].X / (3 * twice[c]), Y: acc[c].Y / (3 * twice[c])}
	}
	if includeAll {
		return out
	}

	return out[m.ds.CellStart():]
}

// EntityBarycenter returns the barycenter of every entity of the given kind:
// node coordinates, edge and half-edge midpoints, or interior cell centroids.
func (m *Mesh) EntityBarycenter(kind EntityKind) ([]r2.Vec, error) {
	switch kind {
	case NodeEntity:
		return m.Nodes(), nil
	case EdgeEntity:
		edges := m.ds.EdgeToNode()
		out := make([]r2.Vec, len(edges))
		for e, ends := range edges {
			out[e] = m.midpoint(ends[0], ends[1])
		}
		return out, nil
	case HalfEdgeEntity:
		hes := m.ds.Raw()
		out := make([]r2.Vec, len(hes))
		for h, he := range hes {
			out[h] = m.midpoint(m.ds.Origin(h), he.Target)
		}
		return out, nil
	case CellEntity:
		return m.CellBarycenter(false), nil
	}

	return nil, fmt.Errorf("EntityBarycenter: %v: %w", kind, ErrInvalidEntityKind)
}

func (m *Mesh) midpoint(a, b int) r2.Vec {
	return r2.Scale(0.5, r2.Add(m.nodes[a], m.nodes[b]))
}

// points gathers the coordinates of the given nodes.
func (m *Mesh) points(idx []int) []r2.Vec {
	out := make([]r2.Vec, len(idx))
	for i, v := range idx {
		out[i] = m.nodes[v]
	}

	return out
}
