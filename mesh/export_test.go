package mesh

// Test bridge for unexported surgery steps.
//
// Purpose:
//   - Let mesh_test drive one edge split and commit with a chosen vertex-count
//     hint, so a failing rebuild can be observed from outside.

// SplitAndCommit splits half-edge h on a fresh working copy and commits it
// with hint nv.
func SplitAndCommit(m *Mesh, h, nv int) error {
	s := m.newSurgery()
	s.splitEdge(h)

	return s.commit("SplitAndCommit", nv)
}
