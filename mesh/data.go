// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"slices"
	"strings"
)

// EntityKind selects which entity family a data array is attached to.
type EntityKind int

const (
	// NodeEntity data has one value per node.
	NodeEntity EntityKind = iota
	// EdgeEntity data has one value per undirected edge.
	EdgeEntity
	// CellEntity data has one value per interior cell.
	CellEntity
	// HalfEdgeEntity data has one value per half-edge.
	HalfEdgeEntity
	// GlobalEntity data has any length and is never propagated.
	GlobalEntity
)

var entityNames = [...]string{"node", "edge", "cell", "halfedge", "global"}

// String returns the lower-case selector name.
func (k EntityKind) String() string {
	if k < 0 || int(k) >= len(entityNames) {
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}

	return entityNames[k]
}

// ParseEntityKind maps "node", "edge", "cell", "halfedge" (or "half-edge")
// and "global" to an EntityKind.
func ParseEntityKind(name string) (EntityKind, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "half-edge" {
		s = "halfedge"
	}
	for k, n := range entityNames {
		if n == s {
			return EntityKind(k), nil
		}
	}

	return 0, fmt.Errorf("ParseEntityKind: %q: %w", name, ErrInvalidEntityKind)
}

// store returns the backing map of kind.
func (m *Mesh) store(kind EntityKind) (map[string][]float64, error) {
	switch kind {
	case NodeEntity:
		return m.nodeData, nil
	case EdgeEntity:
		return m.edgeData, nil
	case CellEntity:
		return m.cellData, nil
	case HalfEdgeEntity:
		return m.heData, nil
	case GlobalEntity:
		return m.globalData, nil
	}

	return nil, ErrInvalidEntityKind
}

// entityCount is the length callers see for kind; -1 means any.
func (m *Mesh) entityCount(kind EntityKind) int {
	switch kind {
	case NodeEntity:
		return len(m.nodes)
	case EdgeEntity:
		return m.ds.NumEdges()
	case CellEntity:
		return m.ds.NumCells()
	case HalfEdgeEntity:
		return m.ds.NumHalfEdges()
	}

	return -1
}

// SetEntityData attaches a copy of values under name. Edge values are
// scattered to both half-edges of every edge; cell values are stored over all
// cells with zeros on exterior and hole cells.
//
// Propagation: Refine interpolates node data onto new midpoints (mean of the
// endpoints) and centroids (mean of the parent's pre-split ring), copies
// edge/half-edge data onto both halves of a split edge (new interior edges get
// 0) and copies cell data onto children. Coarsen averages cell data over merged
// children and compacts everything else. Global data is never touched.
func (m *Mesh) SetEntityData(kind EntityKind, name string, values []float64) error {
	store, err := m.store(kind)
	if err != nil {
		return fmt.Errorf("SetEntityData: %v: %w", kind, err)
	}
	if n := m.entityCount(kind); n >= 0 && len(values) != n {
		return fmt.Errorf("SetEntityData: %v %q: got %d values for %d entities: %w", kind, name, len(values), n, ErrDataLength)
	}

	switch kind {
	case EdgeEntity:
		full := make([]float64, m.ds.NumHalfEdges())
		for h := range full {
			full[h] = values[m.ds.EdgeIndex(h)]
		}
		store[name] = full
	case CellEntity:
		full := make([]float64, m.ds.NumAllCells())
		copy(full[m.ds.CellStart():], values)
		store[name] = full
	default:
		store[name] = append([]float64(nil), values...)
	}

	return nil
}

// EntityData returns a copy of the array stored under name.
func (m *Mesh) EntityData(kind EntityKind, name string) ([]float64, error) {
	store, err := m.store(kind)
	if err != nil {
		return nil, fmt.Errorf("EntityData: %v: %w", kind, err)
	}
	vals, ok := store[name]
	if !ok {
		return nil, fmt.Errorf("EntityData: %v %q: %w", kind, name, ErrDataNotFound)
	}

	switch kind {
	case EdgeEntity:
		out := make([]float64, m.ds.NumEdges())
		for e := range out {
			out[e] = vals[m.ds.PrimaryHalfEdge(e)]
		}
		return out, nil
	case CellEntity:
		return append([]float64(nil), vals[m.ds.CellStart():]...), nil
	}

	return append([]float64(nil), vals...), nil
}

// DataNames lists the names attached to kind in ascending order.
func (m *Mesh) DataNames(kind EntityKind) ([]string, error) {
	store, err := m.store(kind)
	if err != nil {
		return nil, fmt.Errorf("DataNames: %v: %w", kind, err)
	}
	names := make([]string, 0, len(store))
	for name := range store {
		names = append(names, name)
	}
	slices.Sort(names)

	return names, nil
}
