// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/hemesh/topology"
	"gonum.org/v1/gonum/spatial/r2"
)

// surgery is a mutable working copy of everything one refinement pass
// touches: half-edges, nodes, levels and every data store. Nothing reaches
// the mesh before commit has rebuilt the topology, so a failing pass leaves
// the mesh as it was.
type surgery struct {
	m      *Mesh
	he     []topology.HalfEdge
	hlevel []int
	clevel []int // all cells, grows with new children
	parent []int // parent of cell ncell0+k
	nodes  []r2.Vec
	nlevel []int

	nodeData map[string][]float64
	edgeData map[string][]float64
	heData   map[string][]float64
	cellData map[string][]float64 // over the cells of the pass start

	ncell0 int
	nn0    int
}

func (m *Mesh) newSurgery() *surgery {
	return &surgery{
		m:        m,
		he:       m.ds.HalfEdges(),
		hlevel:   slices.Clone(m.hlevel),
		clevel:   slices.Clone(m.clevel),
		nodes:    slices.Clone(m.nodes),
		nlevel:   slices.Clone(m.nlevel),
		nodeData: cloneStore(m.nodeData),
		edgeData: cloneStore(m.edgeData),
		heData:   cloneStore(m.heData),
		cellData: cloneStore(m.cellData),
		ncell0:   m.ds.NumAllCells(),
		nn0:      len(m.nodes),
	}
}

// cloneStore deep-copies a named data store.
func cloneStore(store map[string][]float64) map[string][]float64 {
	out := make(map[string][]float64, len(store))
	for name, vals := range store {
		out[name] = slices.Clone(vals)
	}

	return out
}

// isNew reports whether node v was created by this pass.
func (s *surgery) isNew(v int) bool { return v >= s.nn0 }

// midpoint is the centre of the segment between working nodes a and b.
func (s *surgery) midpoint(a, b int) r2.Vec {
	return r2.Scale(0.5, r2.Add(s.nodes[a], s.nodes[b]))
}

// points gathers the working coordinates of the given nodes.
func (s *surgery) points(idx []int) []r2.Vec {
	out := make([]r2.Vec, len(idx))
	for i, v := range idx {
		out[i] = s.nodes[v]
	}

	return out
}

// addNode appends a node at p with the given level. Node data is the mean of
// the src nodes' values.
func (s *surgery) addNode(p r2.Vec, level int, src ...int) int {
	v := len(s.nodes)
	s.nodes = append(s.nodes, p)
	s.nlevel = append(s.nlevel, level)
	for name, vals := range s.nodeData {
		var sum float64
		for _, u := range src {
			sum += vals[u]
		}
		s.nodeData[name] = append(vals, sum/float64(len(src)))
	}

	return v
}

// addHalfEdge appends he with the given level. Edge and half-edge data copy
// the values of src, or 0 when src < 0.
func (s *surgery) addHalfEdge(he topology.HalfEdge, level, src int) int {
	h := len(s.he)
	s.he = append(s.he, he)
	s.hlevel = append(s.hlevel, level)
	for _, store := range []map[string][]float64{s.edgeData, s.heData} {
		for name, vals := range store {
			var x float64
			if src >= 0 {
				x = vals[src]
			}
			store[name] = append(vals, x)
		}
	}

	return h
}

// mergeCellData gives cells a and b the mean of their cell data.
func (s *surgery) mergeCellData(a, b int) {
	for _, vals := range s.cellData {
		mean := (vals[a] + vals[b]) / 2
		vals[a], vals[b] = mean, mean
	}
}

// addPair appends a twin pair: a → target ta in cell ca and b → target tb in
// cell cb. The first half-edge is primary. Links are left to the caller.
func (s *surgery) addPair(ta, ca, tb, cb, level int) (int, int) {
	a := s.addHalfEdge(topology.HalfEdge{Target: ta, Cell: ca, Primary: true}, level, -1)
	b := s.addHalfEdge(topology.HalfEdge{Target: tb, Cell: cb}, level, -1)
	s.he[a].Twin, s.he[b].Twin = b, a

	return a, b
}

// addCell registers a new child of parent at the given level.
func (s *surgery) addCell(parent, level int) int {
	c := s.ncell0 + len(s.parent)
	s.parent = append(s.parent, parent)
	s.clevel = append(s.clevel, level)

	return c
}

// link sets a.Next = b and b.Prev = a.
func (s *surgery) link(a, b int) {
	s.he[a].Next = b
	s.he[b].Prev = a
}

// ring walks the working array from h until it closes.
func (s *surgery) ring(h int) []int {
	out := []int{h}
	for x := s.he[h].Next; x != h; x = s.he[x].Next {
		out = append(out, x)
	}

	return out
}

// origin returns the node half-edge h starts from in the working array.
func (s *surgery) origin(h int) int { return s.he[s.he[h].Twin].Target }

// splitEdge bisects the edge of h = a→b (twin t = b→a) at a new midpoint m.
//
//	before:  a ──h──▶ b        after:  a ─h1─▶ m ──h──▶ b
//	         a ◀──t── b                a ◀─t── m ◀─t1── b
//
// Twins become (h1, t) and (h, t1); h1 inherits Primary(h), t1 inherits
// Primary(t). All four half-edges and m get level hlevel(h)+1.
func (s *surgery) splitEdge(h int) int {
	t := s.he[h].Twin
	a, b := s.he[t].Target, s.he[h].Target
	level := s.hlevel[h] + 1
	mid := s.addNode(s.midpoint(a, b), level, a, b)

	hp, tp := s.he[h].Prev, s.he[t].Prev
	h1 := s.addHalfEdge(topology.HalfEdge{Target: mid, Cell: s.he[h].Cell, Twin: t, Primary: s.he[h].Primary}, level, h)
	t1 := s.addHalfEdge(topology.HalfEdge{Target: mid, Cell: s.he[t].Cell, Twin: h, Primary: s.he[t].Primary}, level, t)
	s.link(hp, h1)
	s.link(h1, h)
	s.link(tp, t1)
	s.link(t1, t)
	s.he[h].Twin, s.he[t].Twin = t1, h1
	s.hlevel[h], s.hlevel[t] = level, level

	return mid
}

// fan splits cell c, whose ring runs through start, around a new centroid
// node. Split points are the ring nodes accepted by isMid; child i is the run of the ring from split point
// i-1 to split point i closed through the centroid:
//
//	m_{i-1} → … → m_i → p → m_{i-1}
//
// Child 0 keeps the id of c; children and inner edges get level clevel(c)+1.
// The centroid is placed at the area centroid of the ring and carries the
// mean node data of the pre-existing ring nodes. Cells with fewer than two
// split points are left intact.
func (s *surgery) fan(c, start int, isMid func(v int) bool) int {
	ring := s.ring(start)
	var at []int // ring positions whose target is a split point
	var pts []r2.Vec
	var old []int
	for k, h := range ring {
		v := s.he[h].Target
		if isMid(v) {
			at = append(at, k)
		}
		if !s.isNew(v) {
			old = append(old, v)
		}
		pts = append(pts, s.nodes[v])
	}
	n := len(at)
	if n < 2 {
		return 0
	}

	level := s.clevel[c] + 1
	p := s.addNode(polygonCentroid(pts), level, old...)
	child := make([]int, n)
	child[0] = c
	s.clevel[c] = level
	for i := 1; i < n; i++ {
		child[i] = s.addCell(c, level)
	}

	out := make([]int, n) // m_i → p, in child i
	in := make([]int, n)  // p → m_i, in child i+1
	for i := 0; i < n; i++ {
		mi := s.he[ring[at[i]]].Target
		out[i], in[i] = s.addPair(p, child[i], mi, child[(i+1)%n], level)
	}
	for i := 0; i < n; i++ {
		prev := (i + n - 1) % n
		first := (at[prev] + 1) % len(ring)
		for k := first; ; k = (k + 1) % len(ring) {
			s.he[ring[k]].Cell = child[i]
			if k == at[i] {
				break
			}
		}
		s.link(ring[at[i]], out[i])
		s.link(out[i], in[prev])
		s.link(in[prev], ring[first])
	}

	return n
}

// commit renumbers cells so every child directly follows its parent, carries
// subdomain tags and cell data over, rebuilds the topology with hint nv and
// only then swaps the staged arrays into the mesh.
func (s *surgery) commit(op string, nv int) error {
	m := s.m
	total := s.ncell0 + len(s.parent)
	children := make([][]int, s.ncell0)
	for k, p := range s.parent {
		children[p] = append(children[p], s.ncell0+k)
	}
	newID := make([]int, total)
	order := make([]int, 0, total) // new position → working id
	for c := 0; c < s.ncell0; c++ {
		newID[c] = len(order)
		order = append(order, c)
		for _, k := range children[c] {
			newID[k] = len(order)
			order = append(order, k)
		}
	}
	source := func(c int) int {
		if c < s.ncell0 {
			return c
		}
		return s.parent[c-s.ncell0]
	}

	subdomain := make([]int, total)
	clevel := make([]int, total)
	for i, c := range order {
		subdomain[i] = m.ds.Subdomain(source(c))
		clevel[i] = s.clevel[c]
	}
	cellData := make(map[string][]float64, len(s.cellData))
	for name, vals := range s.cellData {
		next := make([]float64, total)
		for i, c := range order {
			next[i] = vals[source(c)]
		}
		cellData[name] = next
	}
	for h := range s.he {
		s.he[h].Cell = newID[s.he[h].Cell]
	}

	if err := m.ds.Reinit(len(s.nodes), subdomain, s.he, nv); err != nil {
		return fmt.Errorf("%s: rebuild topology: %w", op, err)
	}
	m.nodes, m.nlevel, m.hlevel, m.clevel = s.nodes, s.nlevel, s.hlevel, clevel
	m.nodeData, m.edgeData, m.heData, m.cellData = s.nodeData, s.edgeData, s.heData, cellData

	return nil
}
