// SPDX-License-Identifier: MIT

package topology

// Vertex-count hints. A mesh-wide hint selects the ring walk strategy and,
// in the mesh package, the refinement family.
const (
	// Polygon means no fixed vertex count: ring lengths are counted per cell.
	Polygon = 0

	// Triangle fixes every interior ring at 3 half-edges.
	Triangle = 3

	// Quadrilateral fixes every interior ring at 4 half-edges.
	Quadrilateral = 4
)

// ExteriorTag is the subdomain tag of the unbounded exterior region.
const ExteriorTag = 0

// HalfEdge is one directed side of an undirected edge.
//
// Target is the node the half-edge points to; its origin is the target of
// Prev (equivalently of Twin). Cell is an all-cells index. Next/Prev walk the
// ring of Cell counter-clockwise; Twin is the opposite half-edge bordering the
// neighbouring cell. Exactly one half-edge of every twin pair is Primary.
type HalfEdge struct {
	Target  int
	Cell    int
	Next    int
	Prev    int
	Twin    int
	Primary bool
}
