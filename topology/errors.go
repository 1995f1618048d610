// SPDX-License-Identifier: MIT

// Package topology: sentinel error set.
// Every message is prefixed with "topology: ..." so it can be grepped across
// logs. Callers match with errors.Is; constructors wrap the sentinel with the
// offending index via fmt.Errorf("...: %w", ErrX).

package topology

import "errors"

var (
	// ErrOddHalfEdges is returned when the half-edge array length is odd;
	// every undirected edge must occupy a twin pair.
	ErrOddHalfEdges = errors.New("topology: half-edge count must be even")

	// ErrMultipleExterior is returned when more than one cell carries the
	// unbounded exterior tag 0. Holes use negative tags and are not counted.
	ErrMultipleExterior = errors.New("topology: more than one unbounded exterior cell")

	// ErrUnsupportedVertexCount is returned when a fixed vertex count is
	// neither 0 (general polygon), 3 (triangle) nor 4 (quadrilateral).
	ErrUnsupportedVertexCount = errors.New("topology: unsupported vertex count")

	// ErrIndexRange reports a half-edge field pointing outside its index space.
	ErrIndexRange = errors.New("topology: index out of range")

	// ErrSubdomainOrder reports a non-positive tag after CellStart or a
	// positive tag before it.
	ErrSubdomainOrder = errors.New("topology: exterior and hole cells must precede interior cells")

	// ErrEmptyCell reports a cell id that no half-edge borders.
	ErrEmptyCell = errors.New("topology: cell has no half-edge")

	// ErrVertexCountMismatch reports an interior ring whose length differs
	// from the fixed vertex count.
	ErrVertexCountMismatch = errors.New("topology: cell ring length differs from fixed vertex count")

	// ErrBrokenTopology is returned by Validate when a closure property of the
	// half-edge array does not hold.
	ErrBrokenTopology = errors.New("topology: broken half-edge structure")
)
