// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"

	"github.com/katalvlaran/hemesh/topology"
	"gonum.org/v1/gonum/spatial/r2"
)

// mergePlan describes one coarsening pass. Every coarsening family reduces
// to the same three moves: delete whole edges, merge the cells those edges
// separated, and dissolve degree-2 nodes left on a straight side.
type mergePlan struct {
	delEdge  []bool      // per half-edge; always set on both twins
	delNode  []bool      // removed and dissolved nodes
	cellMap  []int       // all cells → representative (itself when untouched)
	level    map[int]int // representative → merged level
	dissolve []int       // nodes whose two remaining edges fuse
}

func (m *Mesh) newMergePlan() *mergePlan {
	p := &mergePlan{
		delEdge: make([]bool, m.ds.NumHalfEdges()),
		delNode: make([]bool, len(m.nodes)),
		cellMap: make([]int, m.ds.NumAllCells()),
		level:   map[int]int{},
	}
	for c := range p.cellMap {
		p.cellMap[c] = c
	}

	return p
}

// deleteEdge schedules the edge of h (both twins) for removal.
func (p *mergePlan) deleteEdge(hes []topology.HalfEdge, h int) {
	p.delEdge[h] = true
	p.delEdge[hes[h].Twin] = true
}

// group merges cells into their smallest id at the given level.
func (p *mergePlan) group(cells []int, level int) {
	rep := cells[0]
	for _, c := range cells {
		rep = min(rep, p.cellMap[c])
	}
	for _, c := range cells {
		p.cellMap[c] = rep
	}
	p.level[rep] = level
}

// empty reports whether the plan would leave the mesh untouched.
func (p *mergePlan) empty() bool {
	for _, d := range p.delEdge {
		if d {
			return false
		}
	}

	return true
}

// applyMerge executes p on a working copy and swaps the result in. On error
// the mesh is unchanged.
//
// Implementation:
//   - Stage 1 (Copy): half-edges and levels.
//   - Stage 2 (Relink): a surviving h whose next was deleted continues with
//     the next surviving half-edge leaving target(h), found by rotating
//     next∘twin around it. All links are computed before any is written.
//   - Stage 3 (Cells): cell fields follow cellMap.
//   - Stage 4 (Dissolve): for each node u with incoming h = w1→u and
//     n = u→w2, the pair h,twin(n) is deleted and n,twin(h) become the twins
//     of the fused edge w1→w2 at level nlevel(u)-1.
//   - Stage 5 (Compact): nodes, half-edges and cells are renumbered
//     densely; merged cells take their representative's subdomain and the
//     mean of the group's cell data.
//
// Complexity:
//   - Time O(H + N + C), Space O(H + N + C).
func (m *Mesh) applyMerge(op string, p *mergePlan, nv int) error {
	// Stage 1 (Copy)
	he := m.ds.HalfEdges()
	hl := append([]int(nil), m.hlevel...)
	del := append([]bool(nil), p.delEdge...)

	// Stage 2 (Relink)
	next := make([]int, len(he))
	for h := range he {
		if del[h] {
			continue
		}
		n := he[h].Next
		for steps := 0; del[n]; steps++ {
			if steps > len(he) {
				return fmt.Errorf("%s: node %d has no surviving edge: %w", op, he[h].Target, topology.ErrBrokenTopology)
			}
			n = he[he[n].Twin].Next
		}
		next[h] = n
	}
	for h := range he {
		if !del[h] {
			he[h].Next = next[h]
			he[next[h]].Prev = h
		}
	}

	// Stage 3 (Cells)
	for h := range he {
		he[h].Cell = p.cellMap[he[h].Cell]
	}

	// Stage 4 (Dissolve)
	incoming := make(map[int]int, len(p.dissolve))
	for _, u := range p.dissolve {
		incoming[u] = -1
	}
	for h := range he {
		if _, ok := incoming[he[h].Target]; ok && !del[h] {
			incoming[he[h].Target] = h
		}
	}
	for _, u := range p.dissolve {
		h := incoming[u]
		if h < 0 {
			return fmt.Errorf("%s: node %d has no incoming edge: %w", op, u, topology.ErrBrokenTopology)
		}
		n := he[h].Next
		tn, th := he[n].Twin, he[h].Twin
		if he[tn].Next != th {
			return fmt.Errorf("%s: node %d is not of degree 2: %w", op, u, topology.ErrBrokenTopology)
		}
		link := func(a, b int) { he[a].Next, he[b].Prev = b, a }
		link(he[h].Prev, n)
		link(he[tn].Prev, th)
		he[n].Twin, he[th].Twin = th, n
		he[n].Primary, he[th].Primary = he[h].Primary, !he[h].Primary
		hl[n], hl[th] = m.nlevel[u]-1, m.nlevel[u]-1
		del[h], del[tn] = true, true
	}

	// Stage 5 (Compact)
	keepNode := func(v int) bool { return !p.delNode[v] }
	nodeID := compactIndex(len(m.nodes), keepNode)
	heID := compactIndex(len(he), func(h int) bool { return !del[h] })
	cellID := compactIndex(len(p.cellMap), func(c int) bool { return p.cellMap[c] == c })

	hes := make([]topology.HalfEdge, 0, len(he))
	hlevel := make([]int, 0, len(he))
	for h, x := range he {
		if del[h] {
			continue
		}
		hes = append(hes, topology.HalfEdge{
			Target:  nodeID[x.Target],
			Cell:    cellID[x.Cell],
			Next:    heID[x.Next],
			Prev:    heID[x.Prev],
			Twin:    heID[x.Twin],
			Primary: x.Primary,
		})
		hlevel = append(hlevel, hl[h])
	}

	var subdomain, clevel, reps []int
	members := make(map[int][]int, len(p.level))
	for c, r := range p.cellMap {
		members[r] = append(members[r], c)
	}
	for c, r := range p.cellMap {
		if c != r {
			continue
		}
		reps = append(reps, c)
		subdomain = append(subdomain, m.ds.Subdomain(c))
		if l, ok := p.level[c]; ok {
			clevel = append(clevel, l)
		} else {
			clevel = append(clevel, m.clevel[c])
		}
	}

	nodes := make([]r2.Vec, 0, len(m.nodes))
	nlevel := make([]int, 0, len(m.nodes))
	for v := range m.nodes {
		if keepNode(v) {
			nodes = append(nodes, m.nodes[v])
			nlevel = append(nlevel, m.nlevel[v])
		}
	}
	ds, err := topology.New(len(nodes), subdomain, hes, nv)
	if err != nil {
		return fmt.Errorf("%s: rebuild topology: %w", op, err)
	}

	// Commit
	for name, vals := range m.nodeData {
		m.nodeData[name] = compactValues(vals, keepNode)
	}
	for _, store := range []map[string][]float64{m.edgeData, m.heData} {
		for name, vals := range store {
			store[name] = compactValues(vals, func(h int) bool { return !del[h] })
		}
	}
	for name, vals := range m.cellData {
		out := make([]float64, len(reps))
		for i, r := range reps {
			var sum float64
			for _, c := range members[r] {
				sum += vals[c]
			}
			out[i] = sum / float64(len(members[r]))
		}
		m.cellData[name] = out
	}
	m.nodes, m.nlevel, m.hlevel, m.clevel, m.ds = nodes, nlevel, hlevel, clevel, ds

	return nil
}

// compactIndex maps kept indices in [0, n) to a dense range; dropped ones map
// to -1.
func compactIndex(n int, keep func(i int) bool) []int {
	id := make([]int, n)
	next := 0
	for i := range id {
		if keep(i) {
			id[i] = next
			next++
		} else {
			id[i] = -1
		}
	}

	return id
}

func compactValues(vals []float64, keep func(i int) bool) []float64 {
	out := make([]float64, 0, len(vals))
	for i, x := range vals {
		if keep(i) {
			out = append(out, x)
		}
	}

	return out
}
