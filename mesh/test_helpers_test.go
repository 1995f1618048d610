package mesh_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/hemesh/mesh"
	"github.com/katalvlaran/hemesh/topology"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// unitSquareNodes are the corners of [0,1]², counter-clockwise from the origin.
func unitSquareNodes() []r2.Vec {
	return []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

// unitSquare is the single-cell polygon mesh of [0,1]².
func unitSquare(t testing.TB) *mesh.Mesh {
	t.Helper()
	m, err := mesh.FromSimpleMesh(unitSquareNodes(), [][]int{{0, 1, 2, 3}})
	require.NoError(t, err)

	return m
}

// twoTriangles splits [0,1]² along the 0-2 diagonal.
func twoTriangles(t testing.TB) *mesh.Mesh {
	t.Helper()
	m, err := mesh.FromSimpleMesh(unitSquareNodes(), [][]int{{1, 2, 0}, {3, 0, 2}},
		mesh.WithVertexCount(3))
	require.NoError(t, err)

	return m
}

// quadStrip is two unit quads side by side over [0,2]×[0,1]:
//
//	3───4───5
//	│ 0 │ 1 │
//	0───1───2
func quadStrip(t testing.TB) *mesh.Mesh {
	t.Helper()
	nodes := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	m, err := mesh.FromSimpleMesh(nodes, [][]int{{0, 1, 4, 3}, {1, 2, 5, 4}}, mesh.WithVertexCount(4))
	require.NoError(t, err)

	return m
}

// mixedNodes is the 3×3 lattice over [0,2]², column by column.
func mixedNodes() []r2.Vec {
	return []r2.Vec{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2},
		{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2},
		{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2},
	}
}

// mixedCells are two triangles and three quads over mixedNodes.
func mixedCells() [][]int {
	return [][]int{{0, 3, 4}, {4, 1, 0}, {1, 4, 5, 2}, {3, 6, 7, 4}, {4, 7, 8, 5}}
}

func mixedMesh(t testing.TB) *mesh.Mesh {
	t.Helper()
	m, err := mesh.FromSimpleMesh(mixedNodes(), mixedCells())
	require.NoError(t, err)

	return m
}

// framedGrid is a 3×3 grid of unit quads whose centre cell is a hole.
func framedGrid(t testing.TB) *mesh.Mesh {
	t.Helper()
	var nodes []r2.Vec
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			nodes = append(nodes, r2.Vec{X: float64(i), Y: float64(j)})
		}
	}
	var cells [][]int
	tags := make([]int, 0, 9)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			v := 4*j + i
			cells = append(cells, []int{v, v + 1, v + 5, v + 4})
			if i == 1 && j == 1 {
				tags = append(tags, -1)
			} else {
				tags = append(tags, 1)
			}
		}
	}
	m, err := mesh.FromSimpleMesh(nodes, cells, mesh.WithVertexCount(4), mesh.WithSubdomains(tags))
	require.NoError(t, err)

	return m
}

// gridMesh builds an n×n grid of unit quads over [0,n]², or of right
// triangles split along each square's 0-2 diagonal when tri is set.
func gridMesh(t testing.TB, n int, tri bool) *mesh.Mesh {
	t.Helper()
	nodes := make([]r2.Vec, 0, (n+1)*(n+1))
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			nodes = append(nodes, r2.Vec{X: float64(i), Y: float64(j)})
		}
	}
	var cells [][]int
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			v := (n+1)*j + i
			a, c, d := v+1, v+n+2, v+n+1
			if tri {
				cells = append(cells, []int{v, a, c}, []int{v, c, d})
			} else {
				cells = append(cells, []int{v, a, c, d})
			}
		}
	}
	nv := topology.Quadrilateral
	if tri {
		nv = topology.Triangle
	}
	m, err := mesh.FromSimpleMesh(nodes, cells, mesh.WithVertexCount(nv))
	require.NoError(t, err)

	return m
}

// cellAt returns the first interior cell whose (convex, counter-clockwise)
// ring contains p, or -1.
func cellAt(m *mesh.Mesh, p r2.Vec) int {
	nodes := m.Nodes()
	for c, ring := range m.Cells() {
		inside := true
		for i, v := range ring {
			a, b := nodes[v], nodes[ring[(i+1)%len(ring)]]
			if r2.Cross(r2.Sub(b, a), r2.Sub(p, a)) < 0 {
				inside = false
				break
			}
		}
		if inside {
			return c
		}
	}

	return -1
}

// minAngle is the smallest interior corner angle over all cells, in degrees.
func minAngle(m *mesh.Mesh) float64 {
	nodes := m.Nodes()
	best := 180.0
	for _, ring := range m.Cells() {
		n := len(ring)
		for i, v := range ring {
			u := r2.Sub(nodes[ring[(i+n-1)%n]], nodes[v])
			w := r2.Sub(nodes[ring[(i+1)%n]], nodes[v])
			cos := r2.Dot(u, w) / (r2.Norm(u) * r2.Norm(w))
			best = math.Min(best, math.Acos(math.Max(-1, math.Min(1, cos)))*180/math.Pi)
		}
	}

	return best
}

// topLevel is the highest interior cell level.
func topLevel(m *mesh.Mesh) int {
	top := 0
	for _, l := range m.CellLevels() {
		top = max(top, l)
	}

	return top
}

// markAll marks every interior cell.
func markAll(t testing.TB, m *mesh.Mesh) []bool {
	t.Helper()
	idx := make([]int, m.NumCells())
	for i := range idx {
		idx[i] = i
	}
	marked, err := m.MarkCells(idx)
	require.NoError(t, err)

	return marked
}

// markCells marks the given interior cells.
func markCells(t testing.TB, m *mesh.Mesh, idx ...int) []bool {
	t.Helper()
	marked, err := m.MarkCells(idx)
	require.NoError(t, err)

	return marked
}

func totalArea(m *mesh.Mesh) float64 {
	var a float64
	for _, x := range m.CellArea() {
		a += x
	}

	return a
}

// countPrimary counts primary half-edges.
func countPrimary(m *mesh.Mesh) int {
	n := 0
	for _, he := range m.HalfEdges() {
		if he.Primary {
			n++
		}
	}

	return n
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

// requireSound checks the structural properties every mutation preserves.
func requireSound(t testing.TB, m *mesh.Mesh, area float64) {
	t.Helper()
	require.NoError(t, m.Validate())
	require.Equal(t, m.NumEdges(), countPrimary(m))
	require.Equal(t, 2*m.NumEdges(), m.NumHalfEdges())
	require.InDelta(t, area, totalArea(m), 1e-12)
	for c, a := range m.CellArea() {
		require.Greater(t, a, 0.0, "cell %d", c)
	}
}
