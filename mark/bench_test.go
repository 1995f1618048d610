package mark_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/hemesh/mark"
)

// BenchmarkMark measures every strategy on 100k random indicator values.
// Complexity: O(n) for Max/Coarsen, O(n log n) for L2
func BenchmarkMark(b *testing.B) {
	const n = 100_000
	rng := rand.New(rand.NewSource(42))
	eta := make([]float64, n)
	for i := range eta {
		eta[i] = rng.Float64()
	}

	for _, s := range []mark.Strategy{mark.L2, mark.Max, mark.Coarsen} {
		b.Run(s.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := mark.Mark(eta, 0.5, s); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
