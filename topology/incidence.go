// SPDX-License-Identifier: MIT

package topology

import (
	"fmt"
	"slices"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Incidence is a boolean sparse matrix stored as a *sparse.CSR whose
// non-zero entries are all 1. Every row keeps its column indices sorted and
// de-duplicated, so Row and At never rescan the whole row.
type Incidence struct {
	csr *sparse.CSR
}

// NewIncidence builds a rows×cols incidence from coordinate pairs (I[k], J[k]).
// Duplicate pairs collapse into one entry.
//
// Implementation:
//   - Stage 1: validate lengths and ranges.
//   - Stage 2: assemble a sparse.COO with unit values and compress it to CSR
//     (duplicates are summed by the conversion).
//   - Stage 3: normalise, see fromCSR.
//
// Complexity:
//   - Time O(K log K) for K pairs, Space O(rows + K).
func NewIncidence(rows, cols int, I, J []int) (*Incidence, error) {
	if rows < 0 || cols < 0 || len(I) != len(J) {
		return nil, fmt.Errorf("NewIncidence: %dx%d with %d/%d pairs: %w", rows, cols, len(I), len(J), ErrIndexRange)
	}
	for k := range I {
		if I[k] < 0 || I[k] >= rows || J[k] < 0 || J[k] >= cols {
			return nil, fmt.Errorf("NewIncidence: pair %d (%d,%d): %w", k, I[k], J[k], ErrIndexRange)
		}
	}

	ones := make([]float64, len(I))
	for k := range ones {
		ones[k] = 1
	}
	// NewCOO needs non-nil backing slices, even when there are no pairs.
	coo := sparse.NewCOO(rows, cols, append(make([]int, 0, len(I)), I...), append(make([]int, 0, len(J)), J...), ones)

	return fromCSR(coo.ToCSR()), nil
}

// fromCSR sorts every row of csr and resets its stored values to 1, in place.
func fromCSR(csr *sparse.CSR) *Incidence {
	raw := csr.RawMatrix()
	for i := 0; i < raw.I; i++ {
		slices.Sort(raw.Ind[raw.Indptr[i]:raw.Indptr[i+1]])
	}
	for k := range raw.Data {
		raw.Data[k] = 1
	}

	return &Incidence{csr: csr}
}

// Rows returns the number of rows.
func (m *Incidence) Rows() int {
	r, _ := m.csr.Dims()

	return r
}

// Cols returns the number of columns.
func (m *Incidence) Cols() int {
	_, c := m.csr.Dims()

	return c
}

// NNZ returns the number of true entries.
func (m *Incidence) NNZ() int { return m.csr.NNZ() }

// Row returns a copy of the sorted column indices set in row i.
func (m *Incidence) Row(i int) []int {
	raw := m.csr.RawMatrix()

	return slices.Clone(raw.Ind[raw.Indptr[i]:raw.Indptr[i+1]])
}

// At reports whether entry (i, j) is set. Out-of-range indices report false.
//
// Complexity:
//   - Time O(log deg(i)).
func (m *Incidence) At(i, j int) bool {
	raw := m.csr.RawMatrix()
	if i < 0 || i >= raw.I || j < 0 || j >= raw.J {
		return false
	}
	_, ok := slices.BinarySearch(raw.Ind[raw.Indptr[i]:raw.Indptr[i+1]], j)

	return ok
}

// Matrix exposes the entries as a gonum matrix of 0/1 values for use with
// gonum/mat and sparse arithmetic. The result shares storage with m.
func (m *Incidence) Matrix() mat.Matrix { return m.csr }

// Transpose returns the cols×rows incidence with every entry mirrored.
func (m *Incidence) Transpose() *Incidence {
	return fromCSR(m.csr.T().(*sparse.CSC).ToCSR())
}

// Mul returns the boolean product m·n: entry (i, j) is set when some k has
// both m(i, k) and n(k, j). It reports ErrIndexRange when the inner
// dimensions differ.
//
// Complexity:
//   - Time O(Σ_k deg_m(k)·deg_n(k)), Space O(NNZ of the product).
func (m *Incidence) Mul(n *Incidence) (*Incidence, error) {
	if m.Cols() != n.Rows() {
		return nil, fmt.Errorf("Incidence.Mul: %dx%d by %dx%d: %w", m.Rows(), m.Cols(), n.Rows(), n.Cols(), ErrIndexRange)
	}
	var prod sparse.CSR
	prod.Mul(m.csr, n.csr)

	return fromCSR(&prod), nil
}

// mustIncidence is NewIncidence for pairs derived from a validated Topology.
func mustIncidence(rows, cols int, I, J []int) *Incidence {
	m, err := NewIncidence(rows, cols, I, J)
	if err != nil {
		panic(err)
	}

	return m
}
