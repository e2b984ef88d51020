package hic

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// symmetricFixture builds a deterministic n×n symmetric matrix whose
// entries vary with both indices, so a transposition or misrouted diagonal
// is very unlikely to go unnoticed.
func symmetricFixture(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := float64(i*7+j*3+1) + 0.5*float64((i+j)%4)
			m.Set(i, j, v)
			m.Set(j, i, v)
		}
	}
	return m
}

func TestDiagonalRelayoutRoundTrip(t *testing.T) {
	for n := 2; n <= 64; n++ {
		m := symmetricFixture(n)
		relaid := RelayoutForward(m)
		got := RelayoutInverse(relaid, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if math.Abs(got.At(i, j)-m.At(i, j)) > 1e-9 {
					t.Fatalf("n=%d: round-trip mismatch at (%d,%d): got %v, want %v", n, i, j, got.At(i, j), m.At(i, j))
				}
			}
		}
	}
}

func TestRelayoutTargetRows(t *testing.T) {
	tests := []struct{ n, want int }{
		{2, 2}, {3, 2}, {4, 3}, {5, 3}, {64, 33},
	}
	for _, test := range tests {
		if got := relayoutTargetRows(test.n); got != test.want {
			t.Errorf("relayoutTargetRows(%d) = %d, want %d", test.n, got, test.want)
		}
	}
}

func TestDiagonalOf(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	tests := []struct {
		offset int
		want   []float64
	}{
		{0, []float64{1, 5, 9}},
		{1, []float64{2, 6}},
		{2, []float64{3}},
		{-1, []float64{4, 8}},
		{-2, []float64{7}},
	}
	for _, test := range tests {
		got := diagonalOf(m, test.offset)
		if len(got) != len(test.want) {
			t.Fatalf("offset %d: got %v, want %v", test.offset, got, test.want)
		}
		for i := range got {
			if got[i] != test.want[i] {
				t.Errorf("offset %d: got %v, want %v", test.offset, got, test.want)
			}
		}
	}
}
