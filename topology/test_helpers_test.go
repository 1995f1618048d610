package topology_test

import "github.com/katalvlaran/hemesh/topology"

// twoTriangles returns the unit square split along its 0–2 diagonal:
//
//	3───2
//	│ ╱ │    cell 1 = [0,1,2], cell 2 = [0,2,3], cell 0 = exterior
//	0───1
//
// Half-edges 0..5 are interior, 6..9 the exterior ring.
func twoTriangles() (int, []int, []topology.HalfEdge) {
	hes := []topology.HalfEdge{
		{Target: 1, Cell: 1, Next: 1, Prev: 2, Twin: 6, Primary: true},  // 0: 0→1
		{Target: 2, Cell: 1, Next: 2, Prev: 0, Twin: 7, Primary: true},  // 1: 1→2
		{Target: 0, Cell: 1, Next: 0, Prev: 1, Twin: 3, Primary: false}, // 2: 2→0
		{Target: 2, Cell: 2, Next: 4, Prev: 5, Twin: 2, Primary: true},  // 3: 0→2
		{Target: 3, Cell: 2, Next: 5, Prev: 3, Twin: 8, Primary: true},  // 4: 2→3
		{Target: 0, Cell: 2, Next: 3, Prev: 4, Twin: 9, Primary: true},  // 5: 3→0
		{Target: 0, Cell: 0, Next: 9, Prev: 7, Twin: 0},                 // 6: 1→0
		{Target: 1, Cell: 0, Next: 6, Prev: 8, Twin: 1},                 // 7: 2→1
		{Target: 2, Cell: 0, Next: 7, Prev: 9, Twin: 4},                 // 8: 3→2
		{Target: 3, Cell: 0, Next: 8, Prev: 6, Twin: 5},                 // 9: 0→3
	}

	return 4, []int{0, 1, 1}, hes
}

func mustTwoTriangles(nv int) *topology.Topology {
	nn, sd, hes := twoTriangles()
	t, err := topology.New(nn, sd, hes, nv)
	if err != nil {
		panic(err)
	}

	return t
}
