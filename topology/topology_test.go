package topology_test

import (
	"testing"

	"github.com/katalvlaran/hemesh/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//--------------------------------------------------------------------------------//
// Construction
//--------------------------------------------------------------------------------//

// TestNew_Counts verifies the derived counts of the two-triangle square.
func TestNew_Counts(t *testing.T) {
	topo := mustTwoTriangles(topology.Triangle)

	assert.Equal(t, 4, topo.NumNodes())
	assert.Equal(t, 10, topo.NumHalfEdges())
	assert.Equal(t, 5, topo.NumEdges())
	assert.Equal(t, 3, topo.NumAllCells())
	assert.Equal(t, 2, topo.NumCells())
	assert.Equal(t, 1, topo.CellStart())
	assert.Equal(t, topology.Triangle, topo.VertexCount())
	assert.Equal(t, []int{3, 3}, topo.CellVertexCounts())
	assert.Equal(t, []int{4, 3, 3}, topo.AllCellVertexCounts())
	assert.Equal(t, 0, topo.CellHalfEdge(1))
	assert.Equal(t, 3, topo.CellHalfEdge(2))
	assert.Equal(t, 6, topo.CellHalfEdge(0))
	assert.Equal(t, -1, topo.InteriorIndex(0))
	assert.Equal(t, 1, topo.InteriorIndex(2))
	assert.False(t, topo.IsInteriorHalfEdge(7))
	assert.True(t, topo.IsInteriorHalfEdge(4))
	assert.Equal(t, 2, topo.Origin(4))
	require.NoError(t, topo.Validate())
}

// TestNew_PolygonCountsRings verifies that a polygon hint counts ring lengths.
func TestNew_PolygonCountsRings(t *testing.T) {
	topo := mustTwoTriangles(topology.Polygon)
	assert.Equal(t, []int{3, 3}, topo.CellVertexCounts())
	assert.Equal(t, [][]int{{1, 2, 0}, {2, 3, 0}}, topo.CellToNode())
}

// TestNew_Errors walks every construction sentinel.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(nn *int, sd *[]int, hes *[]topology.HalfEdge, nv *int)
		want   error
	}{
		{"odd", func(_ *int, _ *[]int, hes *[]topology.HalfEdge, _ *int) { *hes = (*hes)[:9] }, topology.ErrOddHalfEdges},
		{"two exteriors", func(_ *int, sd *[]int, _ *[]topology.HalfEdge, _ *int) { *sd = []int{0, 0, 1} }, topology.ErrMultipleExterior},
		{"nv=5", func(_ *int, _ *[]int, _ *[]topology.HalfEdge, nv *int) { *nv = 5 }, topology.ErrUnsupportedVertexCount},
		{"target range", func(_ *int, _ *[]int, hes *[]topology.HalfEdge, _ *int) { (*hes)[0].Target = 99 }, topology.ErrIndexRange},
		{"cell range", func(_ *int, _ *[]int, hes *[]topology.HalfEdge, _ *int) { (*hes)[0].Cell = 3 }, topology.ErrIndexRange},
		{"order", func(_ *int, sd *[]int, _ *[]topology.HalfEdge, _ *int) { *sd = []int{1, 0, 1} }, topology.ErrSubdomainOrder},
		{"empty cell", func(_ *int, sd *[]int, _ *[]topology.HalfEdge, _ *int) { *sd = []int{0, 1, 1, 1} }, topology.ErrEmptyCell},
		{"nv mismatch", func(_ *int, _ *[]int, _ *[]topology.HalfEdge, nv *int) { *nv = topology.Quadrilateral }, topology.ErrVertexCountMismatch},
		{"twin", func(_ *int, _ *[]int, hes *[]topology.HalfEdge, _ *int) { (*hes)[0].Twin = 1 }, topology.ErrBrokenTopology},
		{"primary", func(_ *int, _ *[]int, hes *[]topology.HalfEdge, _ *int) { (*hes)[6].Primary = true }, topology.ErrBrokenTopology},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nn, sd, hes := twoTriangles()
			nv := topology.Triangle
			tc.mutate(&nn, &sd, &hes, &nv)
			_, err := topology.New(nn, sd, hes, nv)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestReinit_KeepsStateOnError ensures a failed Reinit leaves the receiver intact.
func TestReinit_KeepsStateOnError(t *testing.T) {
	topo := mustTwoTriangles(topology.Triangle)
	nn, _, hes := twoTriangles()

	err := topo.Reinit(nn, []int{0, 0, 1}, hes, topology.Triangle)
	require.ErrorIs(t, err, topology.ErrMultipleExterior)
	assert.Equal(t, 2, topo.NumCells())
	assert.Equal(t, 5, topo.NumEdges())
}

// TestHalfEdges_IsCopy ensures the exported array cannot alias internal state.
func TestHalfEdges_IsCopy(t *testing.T) {
	topo := mustTwoTriangles(topology.Triangle)
	hes := topo.HalfEdges()
	hes[0].Target = 3
	assert.Equal(t, 1, topo.HalfEdge(0).Target)

	sd := topo.Subdomains()
	sd[0] = 7
	assert.Equal(t, 0, topo.Subdomain(0))
}

//--------------------------------------------------------------------------------//
// Validate
//--------------------------------------------------------------------------------//

func TestValidate_DetectsBrokenLinks(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(hes []topology.HalfEdge)
	}{
		{"prev", func(hes []topology.HalfEdge) { hes[0].Prev = 1 }},
		{"next cell", func(hes []topology.HalfEdge) { hes[0].Cell = 2 }},
		{"origin", func(hes []topology.HalfEdge) { hes[2].Target = 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nn, sd, hes := twoTriangles()
			tc.mutate(hes)
			topo, err := topology.New(nn, sd, hes, topology.Polygon)
			require.NoError(t, err)
			assert.ErrorIs(t, topo.Validate(), topology.ErrBrokenTopology)
		})
	}
}
