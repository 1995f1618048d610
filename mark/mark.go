// SPDX-License-Identifier: MIT

package mark

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Strategy selects the marking rule.
type Strategy int

const (
	// L2 marks the largest cells until they carry a θ fraction of Σ eta².
	L2 Strategy = iota

	// Max marks cells with eta > θ·max(eta).
	Max

	// Coarsen marks cells with eta < θ·max(eta).
	Coarsen
)

// String returns the canonical upper-case name.
func (s Strategy) String() string {
	switch s {
	case L2:
		return "L2"
	case Max:
		return "MAX"
	case Coarsen:
		return "COARSEN"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "L2", "MAX" or "COARSEN" (any case) to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "L2":
		return L2, nil
	case "MAX":
		return Max, nil
	case "COARSEN":
		return Coarsen, nil
	}

	return 0, fmt.Errorf("ParseStrategy: %q: %w", name, ErrUnknownStrategy)
}

// Mark returns one flag per entry of eta.
//
// Implementation:
//   - Stage 1 (Validate): non-empty, finite eta; finite θ in [0, 1].
//   - Stage 2 (Execute): apply the strategy.
//
// Complexity:
//   - Time O(n) for Max/Coarsen, O(n log n) for L2. Space O(n).
func Mark(eta []float64, theta float64, s Strategy) ([]bool, error) {
	// Stage 1 (Validate)
	if len(eta) == 0 {
		return nil, ErrEmptyIndicator
	}
	if math.IsNaN(theta) || math.IsInf(theta, 0) || theta < 0 || theta > 1 {
		return nil, fmt.Errorf("Mark: theta=%v: %w", theta, ErrBadTheta)
	}
	if floats.HasNaN(eta) {
		return nil, fmt.Errorf("Mark: %w", ErrNaNInf)
	}
	for i, v := range eta {
		if math.IsInf(v, 0) {
			return nil, fmt.Errorf("Mark: eta[%d]=%v: %w", i, v, ErrNaNInf)
		}
	}

	// Stage 2 (Execute)
	marked := make([]bool, len(eta))
	switch s {
	case Max:
		cut := theta * floats.Max(eta)
		for i, v := range eta {
			marked[i] = v > cut
		}
	case Coarsen:
		cut := theta * floats.Max(eta)
		for i, v := range eta {
			marked[i] = v < cut
		}
	case L2:
		markBulk(eta, theta, marked)
	default:
		return nil, fmt.Errorf("Mark: %v: %w", s, ErrUnknownStrategy)
	}

	return marked, nil
}

// markBulk sorts eta² descending and marks every cell whose running mass is
// still below θ·total, always including the largest one.
func markBulk(eta []float64, theta float64, marked []bool) {
	n := len(eta)
	sq := make([]float64, n)
	floats.MulTo(sq, eta, eta)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	floats.Argsort(sq, idx) // ascending; walk it backwards
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		sq[i], sq[j] = sq[j], sq[i]
		idx[i], idx[j] = idx[j], idx[i]
	}
	cum := floats.CumSum(make([]float64, n), sq)
	cut := theta * cum[n-1]
	for k, x := range cum {
		if x < cut {
			marked[idx[k]] = true
		}
	}
	marked[idx[0]] = true
}
