package hic

import (
	"math"
	"testing"
)

func TestBalanceUnbalanceRoundTrip(t *testing.T) {
	c := NewContactMatrix(4, []uint64{
		0, 2, 0, 1,
		2, 0, 3, 0,
		0, 3, 0, 4,
		1, 0, 4, 0,
	})
	w := Weights{1.2, 0.8, 1.5, 0.9}

	b := Balance(c, w)
	back := Unbalance(b, w)

	dense := c.Dense()
	n := c.N()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(back.At(i, j)-dense.At(i, j)) > 1e-6 {
				t.Errorf("back[%d,%d] = %v, want %v", i, j, back.At(i, j), dense.At(i, j))
			}
		}
	}
}

func TestBalanceSanitizesNonPositiveWeights(t *testing.T) {
	c := NewContactMatrix(3, []uint64{
		0, 1, 0,
		1, 0, 2,
		0, 2, 0,
	})
	w := Weights{0, math.NaN(), math.Inf(1)}
	// Should not panic or produce NaN/Inf: sanitized weights fall back to 1.
	b := Balance(c, w)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := b.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("Balance with degenerate weights produced non-finite value at (%d,%d): %v", i, j, v)
			}
		}
	}
}

func TestBalanceIsSymmetric(t *testing.T) {
	c := NewContactMatrix(5, []uint64{
		0, 0, 0, 0, 0,
		0, 0, 2, 0, 1,
		0, 2, 0, 3, 0,
		0, 0, 3, 0, 4,
		0, 1, 0, 4, 0,
	})
	w := Weights{1, 1.1, 0.95, 1.2, 0.7}
	b := Balance(c, w)
	n, _ := b.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(b.At(i, j)-b.At(j, i)) > 1e-12 {
				t.Errorf("Balance result not symmetric at (%d,%d)", i, j)
			}
		}
	}
}
