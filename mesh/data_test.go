package mesh_test

import (
	"testing"

	"github.com/katalvlaran/hemesh/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntityKind(t *testing.T) {
	cases := []struct {
		in   string
		want mesh.EntityKind
	}{
		{"node", mesh.NodeEntity},
		{"EDGE", mesh.EdgeEntity},
		{" cell ", mesh.CellEntity},
		{"halfedge", mesh.HalfEdgeEntity},
		{"half-edge", mesh.HalfEdgeEntity},
		{"Global", mesh.GlobalEntity},
	}
	for _, tc := range cases {
		got, err := mesh.ParseEntityKind(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.want, mustKind(t, got.String()))
	}

	_, err := mesh.ParseEntityKind("face")
	assert.ErrorIs(t, err, mesh.ErrInvalidEntityKind)
	assert.Equal(t, "EntityKind(9)", mesh.EntityKind(9).String())
}

func mustKind(t *testing.T, name string) mesh.EntityKind {
	t.Helper()
	k, err := mesh.ParseEntityKind(name)
	require.NoError(t, err)

	return k
}

// TestEntityData_RoundTrip reads back what was set, for every kind.
func TestEntityData_RoundTrip(t *testing.T) {
	m := twoTriangles(t)
	in := map[mesh.EntityKind][]float64{
		mesh.NodeEntity:     {1, 2, 3, 4},
		mesh.EdgeEntity:     {1, 2, 3, 4, 5},
		mesh.CellEntity:     {8, 9},
		mesh.HalfEdgeEntity: make([]float64, 10),
		mesh.GlobalEntity:   {1, 2, 3},
	}
	for kind, vals := range in {
		require.NoError(t, m.SetEntityData(kind, "v", vals), kind.String())
		got, err := m.EntityData(kind, "v")
		require.NoError(t, err, kind.String())
		assert.Equal(t, vals, got, kind.String())
	}
}

// TestEntityData_Copies keeps stored arrays private.
func TestEntityData_Copies(t *testing.T) {
	m := unitSquare(t)
	vals := []float64{1, 2, 3, 4}
	require.NoError(t, m.SetEntityData(mesh.NodeEntity, "u", vals))
	vals[0] = 99

	got, err := m.EntityData(mesh.NodeEntity, "u")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got[0])
	got[1] = 99

	again, err := m.EntityData(mesh.NodeEntity, "u")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, again)
}

func TestEntityData_Errors(t *testing.T) {
	m := unitSquare(t)

	err := m.SetEntityData(mesh.NodeEntity, "u", []float64{1})
	assert.ErrorIs(t, err, mesh.ErrDataLength)
	err = m.SetEntityData(mesh.CellEntity, "k", []float64{1, 2})
	assert.ErrorIs(t, err, mesh.ErrDataLength)
	err = m.SetEntityData(mesh.EntityKind(-1), "u", nil)
	assert.ErrorIs(t, err, mesh.ErrInvalidEntityKind)

	_, err = m.EntityData(mesh.NodeEntity, "missing")
	assert.ErrorIs(t, err, mesh.ErrDataNotFound)
	_, err = m.EntityData(mesh.EntityKind(7), "u")
	assert.ErrorIs(t, err, mesh.ErrInvalidEntityKind)
	_, err = m.DataNames(mesh.EntityKind(7))
	assert.ErrorIs(t, err, mesh.ErrInvalidEntityKind)
}

func TestDataNames(t *testing.T) {
	m := unitSquare(t)
	names, err := m.DataNames(mesh.CellEntity)
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, name := range []string{"pressure", "alpha", "k"} {
		require.NoError(t, m.SetEntityData(mesh.CellEntity, name, []float64{0}))
	}
	names, err = m.DataNames(mesh.CellEntity)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "k", "pressure"}, names)
}

// TestEntityData_EdgeFollowsTwins checks that both half-edges of an edge
// carry the edge value after a refinement.
func TestEntityData_EdgeFollowsTwins(t *testing.T) {
	m := twoTriangles(t)
	vals := make([]float64, m.NumEdges())
	for e := range vals {
		vals[e] = float64(e + 1)
	}
	require.NoError(t, m.SetEntityData(mesh.EdgeEntity, "id", vals))
	require.NoError(t, m.Refine(markAll(t, m)))

	got, err := m.EntityData(mesh.EdgeEntity, "id")
	require.NoError(t, err)
	require.Len(t, got, m.NumEdges())
	var sum float64
	for _, x := range got {
		sum += x
	}
	// every original edge is bisected and both halves keep its value
	assert.Equal(t, 2*(1.0+2+3+4+5), sum)
}
