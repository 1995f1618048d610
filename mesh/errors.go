// SPDX-License-Identifier: MIT

// Package mesh: sentinel error set.
// Every message is prefixed with "mesh: ...". Operations return these
// sentinels (wrapped with the operation name and the offending index where one
// exists) and callers match them with errors.Is. Vertex-count and
// more-than-one-exterior violations surface the topology sentinels
// (topology.ErrUnsupportedVertexCount, topology.ErrMultipleExterior).

package mesh

import "errors"

var (
	// ErrEmptyMesh is returned when FromSimpleMesh receives no nodes or no cells.
	ErrEmptyMesh = errors.New("mesh: empty node or cell list")

	// ErrInvalidCell reports a cell with fewer than three nodes, a node index
	// out of range, or a node repeated within the cell.
	ErrInvalidCell = errors.New("mesh: invalid cell")

	// ErrDegenerateCell reports a cell whose signed area is within epsilon of zero.
	ErrDegenerateCell = errors.New("mesh: degenerate cell area")

	// ErrNonManifold reports an edge shared by more than two cell sides, or a
	// boundary node where two boundary loops touch.
	ErrNonManifold = errors.New("mesh: non-manifold edge incidence")

	// ErrOrientation reports two cells traversing a shared edge in the same
	// direction after orientation repair.
	ErrOrientation = errors.New("mesh: inconsistent cell orientation")

	// ErrSubdomainLength reports a subdomain tag list whose length differs from
	// the number of cells.
	ErrSubdomainLength = errors.New("mesh: subdomain tag count differs from cell count")

	// ErrInvalidEntityKind reports an unrecognised entity-kind selector.
	ErrInvalidEntityKind = errors.New("mesh: invalid entity kind")

	// ErrDataLength reports an entity data array of the wrong length.
	ErrDataLength = errors.New("mesh: data length does not match entity count")

	// ErrDataNotFound reports a data name that was never set for the kind.
	ErrDataNotFound = errors.New("mesh: entity data not found")

	// ErrMarkLength reports a marking array that does not cover all cells
	// (or, for indicator input, all interior cells).
	ErrMarkLength = errors.New("mesh: marking length does not match cell count")

	// ErrExteriorMarked reports a marked exterior or hole cell.
	ErrExteriorMarked = errors.New("mesh: exterior or hole cell marked")

	// ErrCellIndex reports an interior cell index out of range.
	ErrCellIndex = errors.New("mesh: cell index out of range")

	// ErrLevelInvariant is returned by Validate when a refinement level
	// invariant does not hold.
	ErrLevelInvariant = errors.New("mesh: level invariant violated")
)
