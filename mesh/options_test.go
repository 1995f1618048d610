package mesh_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/hemesh/mesh"
	"github.com/katalvlaran/hemesh/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { mesh.WithVertexCount(5) })
	assert.Panics(t, func() { mesh.WithVertexCount(-1) })
	assert.Panics(t, func() { mesh.WithSubdomains([]int{1, 0}) })
	assert.Panics(t, func() { mesh.WithEpsilon(-1) })
	assert.Panics(t, func() { mesh.WithEpsilon(math.NaN()) })
	assert.Panics(t, func() { mesh.WithEpsilon(math.Inf(1)) })

	assert.NotPanics(t, func() { mesh.WithVertexCount(topology.Quadrilateral) })
	assert.NotPanics(t, func() { mesh.WithSubdomains([]int{1, -2, 3}) })
	assert.NotPanics(t, func() { mesh.WithEpsilon(0) })
}

// TestOptions_Epsilon rejects a sliver only when the tolerance says so.
func TestOptions_Epsilon(t *testing.T) {
	nodes := unitSquareNodes()
	nodes[2].Y = 1e-9
	nodes[3].Y = 1e-9
	cells := [][]int{{0, 1, 2, 3}}

	_, err := mesh.FromSimpleMesh(nodes, cells)
	require.NoError(t, err)

	_, err = mesh.FromSimpleMesh(nodes, cells, mesh.WithEpsilon(1e-6))
	assert.ErrorIs(t, err, mesh.ErrDegenerateCell)
}

// TestOptions_NilIgnored skips nil options.
func TestOptions_NilIgnored(t *testing.T) {
	m, err := mesh.FromSimpleMesh(unitSquareNodes(), [][]int{{0, 1, 2, 3}}, nil, mesh.WithVertexCount(4))
	require.NoError(t, err)
	assert.Equal(t, topology.Quadrilateral, m.VertexCount())
}

// TestOptions_SubdomainsCopied detaches tags from the caller's slice.
func TestOptions_SubdomainsCopied(t *testing.T) {
	tags := []int{5}
	opt := mesh.WithSubdomains(tags)
	tags[0] = 6

	m, err := mesh.FromSimpleMesh(unitSquareNodes(), [][]int{{0, 1, 2, 3}}, opt)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5}, m.Topology().Subdomains())
}
