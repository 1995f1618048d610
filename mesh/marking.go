// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"

	"github.com/katalvlaran/hemesh/mark"
)

// MarkCells returns an all-cells flag array with the given interior indices
// set, ready for Refine or Coarsen.
func (m *Mesh) MarkCells(indices []int) ([]bool, error) {
	marked := make([]bool, m.ds.NumAllCells())
	start, n := m.ds.CellStart(), m.ds.NumCells()
	for _, i := range indices {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("MarkCells: index %d of %d cells: %w", i, n, ErrCellIndex)
		}
		marked[start+i] = true
	}

	return marked, nil
}

// RefineMarker applies mark.Mark to one indicator value per interior cell and
// embeds the result into an all-cells flag array; exterior and hole entries
// stay false.
func (m *Mesh) RefineMarker(eta []float64, theta float64, s mark.Strategy) ([]bool, error) {
	if len(eta) != m.ds.NumCells() {
		return nil, fmt.Errorf("RefineMarker: %d values for %d cells: %w", len(eta), m.ds.NumCells(), ErrMarkLength)
	}
	flags, err := mark.Mark(eta, theta, s)
	if err != nil {
		return nil, fmt.Errorf("RefineMarker: %w", err)
	}
	marked := make([]bool, m.ds.NumAllCells())
	copy(marked[m.ds.CellStart():], flags)

	return marked, nil
}
