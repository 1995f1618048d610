package topology_test

import (
	"testing"

	"github.com/katalvlaran/hemesh/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCellToNode_Triangle(t *testing.T) {
	topo := mustTwoTriangles(topology.Triangle)
	assert.Equal(t, [][]int{{1, 2, 0}, {2, 3, 0}}, topo.CellToNode())
}

// TestCellToEdge_TriangleOpposite checks that local edge i is opposite local node i.
func TestCellToEdge_TriangleOpposite(t *testing.T) {
	topo := mustTwoTriangles(topology.Triangle)
	c2n := topo.CellToNode()
	c2e := topo.CellToEdge()
	e2n := topo.EdgeToNode()

	assert.Equal(t, [][]int{{2, 0, 1}, {4, 2, 3}}, c2e)
	for c := range c2e {
		for i, e := range c2e[c] {
			assert.NotContains(t, e2n[e][:], c2n[c][i], "cell %d local edge %d touches its opposite node", c, i)
		}
	}
}

// TestCellToEdge_PolygonConsecutive checks that local edge i joins nodes i and i+1.
func TestCellToEdge_PolygonConsecutive(t *testing.T) {
	topo := mustTwoTriangles(topology.Polygon)
	c2n := topo.CellToNode()
	e2n := topo.EdgeToNode()
	for c, edges := range topo.CellToEdge() {
		n := len(edges)
		for i, e := range edges {
			assert.ElementsMatch(t, []int{c2n[c][i], c2n[c][(i+1)%n]}, e2n[e][:])
		}
	}
}

func TestCellToCell_BoundaryIsSelf(t *testing.T) {
	topo := mustTwoTriangles(topology.Triangle)
	assert.Equal(t, [][]int{{1, 0, 0}, {1, 0, 1}}, topo.CellToCell())
}

func TestEdgeToNodeAndCell(t *testing.T) {
	topo := mustTwoTriangles(topology.Triangle)
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {3, 0}}, topo.EdgeToNode())

	e2c := topo.EdgeToCell()
	require.Len(t, e2c, 5)
	assert.Equal(t, [4]int{1, 0, 1, 0}, e2c[2], "diagonal joins both cells")
	assert.Equal(t, [4]int{0, 0, 1, 1}, e2c[0], "boundary edge repeats its cell")
	for e, h := range []int{0, 1, 3, 4, 5} {
		assert.Equal(t, h, topo.PrimaryHalfEdge(e))
		assert.Equal(t, e, topo.EdgeIndex(topo.HalfEdge(h).Twin))
	}
}

func TestRing_WalksExterior(t *testing.T) {
	topo := mustTwoTriangles(topology.Triangle)
	assert.Equal(t, []int{6, 9, 8, 7}, topo.Ring(0))
	assert.Equal(t, []int{3, 4, 5}, topo.Ring(2))
}

//--------------------------------------------------------------------------------//
// Sparse incidence
//--------------------------------------------------------------------------------//

// TestIncidence_MatchesDense cross-checks every sparse query with the dense walks.
func TestIncidence_MatchesDense(t *testing.T) {
	topo := mustTwoTriangles(topology.Triangle)

	c2n := topo.CellToNodeIncidence()
	assert.Equal(t, 2, c2n.Rows())
	assert.Equal(t, 4, c2n.Cols())
	assert.Equal(t, 6, c2n.NNZ())
	for c, nodes := range topo.CellToNode() {
		for _, v := range nodes {
			assert.True(t, c2n.At(c, v))
		}
	}

	c2e := topo.CellToEdgeIncidence()
	for c, edges := range topo.CellToEdge() {
		assert.ElementsMatch(t, edges, c2e.Row(c))
	}

	c2c := topo.CellToCellIncidence()
	assert.Equal(t, 2, c2c.NNZ())
	assert.True(t, c2c.At(0, 1))
	assert.True(t, c2c.At(1, 0))
	assert.False(t, c2c.At(0, 0))

	e2n := topo.EdgeToNodeIncidence()
	for e, ends := range topo.EdgeToNode() {
		assert.ElementsMatch(t, ends[:], e2n.Row(e))
	}

	n2n := topo.NodeToNode()
	assert.Equal(t, []int{1, 2, 3}, n2n.Row(0))
	assert.Equal(t, []int{0, 2}, n2n.Row(1))
	assert.Equal(t, 10, n2n.NNZ())

	n2c := topo.NodeToCell()
	assert.Equal(t, []int{0, 1}, n2c.Row(0))
	assert.Equal(t, []int{0}, n2c.Row(1))
	assert.Equal(t, []int{1}, n2c.Row(3))
	assert.Equal(t, c2n.Transpose().Row(2), n2c.Row(2))
}

// TestEdgeToEdge checks the edge-sharing product against the node lists.
func TestEdgeToEdge(t *testing.T) {
	topo := mustTwoTriangles(topology.Triangle)
	e2e := topo.EdgeToEdge()

	want := [][]int{{0, 1, 2, 4}, {0, 1, 2, 3}, {0, 1, 2, 3, 4}, {1, 2, 3, 4}, {0, 2, 3, 4}}
	require.Equal(t, 5, e2e.Rows())
	require.Equal(t, 5, e2e.Cols())
	assert.Equal(t, 21, e2e.NNZ())
	for e, row := range want {
		assert.Equal(t, row, e2e.Row(e), "edge %d", e)
	}
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			assert.Equal(t, e2e.At(i, j), e2e.At(j, i), "symmetric at (%d,%d)", i, j)
		}
	}
	assert.Equal(t, 1.0, e2e.Matrix().At(0, 4), "product entries are normalised to 1")
	assert.Equal(t, 0.0, e2e.Matrix().At(0, 3))
}

// TestIncidence_Mul covers the boolean product and its shape check.
func TestIncidence_Mul(t *testing.T) {
	topo := mustTwoTriangles(topology.Triangle)
	c2n := topo.CellToNodeIncidence()

	// cells sharing at least one node: both triangles share 0 and 2
	c2c, err := c2n.Mul(c2n.Transpose())
	require.NoError(t, err)
	assert.Equal(t, 4, c2c.NNZ())
	assert.Equal(t, 4.0, mat.Sum(c2c.Matrix()))

	_, err = c2n.Mul(c2n)
	assert.ErrorIs(t, err, topology.ErrIndexRange)
}

func TestNewIncidence_Errors(t *testing.T) {
	_, err := topology.NewIncidence(2, 2, []int{0}, []int{0, 1})
	assert.ErrorIs(t, err, topology.ErrIndexRange)

	_, err = topology.NewIncidence(2, 2, []int{2}, []int{0})
	assert.ErrorIs(t, err, topology.ErrIndexRange)

	m, err := topology.NewIncidence(2, 3, []int{1, 1, 0}, []int{2, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, m.NNZ(), "duplicates collapse")
	assert.False(t, m.At(5, 0))
	assert.Equal(t, []int{2}, m.Row(1))
	assert.Equal(t, 1.0, m.Matrix().At(1, 2))

	empty, err := topology.NewIncidence(3, 2, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, empty.NNZ())
	assert.Empty(t, empty.Row(2))
	assert.Equal(t, 2, empty.Transpose().Rows())
}

//--------------------------------------------------------------------------------//
// Boundary classification
//--------------------------------------------------------------------------------//

func TestBoundaryFlags(t *testing.T) {
	topo := mustTwoTriangles(topology.Triangle)

	assert.Equal(t, []bool{true, true, false, false, true, true, false, false, false, false}, topo.BoundaryHalfEdgeFlag())
	assert.Equal(t, []bool{true, true, true, true}, topo.BoundaryNodeFlag())
	assert.Equal(t, []int{0, 1, 3, 4}, topo.BoundaryEdgeIndex())
	assert.Equal(t, []int{0, 1}, topo.BoundaryCellIndex())
	assert.Equal(t, []int{0, 1, 2, 3}, topo.BoundaryNodeIndex())
}
