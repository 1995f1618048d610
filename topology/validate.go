// SPDX-License-Identifier: MIT

package topology

import "fmt"

// Validate checks the closure properties of the half-edge array:
//
//	twin(twin(h)) == h, twin(h) != h
//	next(prev(h)) == h == prev(next(h))
//	cell(next(h)) == cell(h)
//	target(prev(h)) == target(twin(h))    (consistent origins)
//	exactly one Primary per twin pair
//
// The first violation found is returned wrapped in ErrBrokenTopology.
//
// Complexity:
//   - Time O(H), Space O(1).
func (t *Topology) Validate() error {
	hes := t.hes
	for h, he := range hes {
		switch {
		case he.Twin == h || hes[he.Twin].Twin != h:
			return fmt.Errorf("Validate: half-edge %d: twin involution: %w", h, ErrBrokenTopology)
		case hes[he.Prev].Next != h || hes[he.Next].Prev != h:
			return fmt.Errorf("Validate: half-edge %d: next/prev inverse: %w", h, ErrBrokenTopology)
		case hes[he.Next].Cell != he.Cell:
			return fmt.Errorf("Validate: half-edge %d: next leaves cell %d: %w", h, he.Cell, ErrBrokenTopology)
		case hes[he.Prev].Target != hes[he.Twin].Target:
			return fmt.Errorf("Validate: half-edge %d: origin mismatch: %w", h, ErrBrokenTopology)
		case he.Primary == hes[he.Twin].Primary:
			return fmt.Errorf("Validate: half-edge %d: primary pairing: %w", h, ErrBrokenTopology)
		}
	}

	return nil
}
