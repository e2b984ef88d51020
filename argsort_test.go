package hic

import "testing"

// symmetricCHat returns a deterministic symmetric float accessor over an
// n×n grid, standing in for a DomainModel-reconstructed Ĉ.
func symmetricCHat(n int) func(i, j int) float64 {
	vals := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := float64((i*5+j*7)%13) + 0.25
			vals[i*n+j] = v
			vals[j*n+i] = v
		}
	}
	return func(i, j int) float64 { return vals[i*n+j] }
}

func symmetricCounts(n int) *ContactMatrix {
	data := make([]uint64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := uint64((i*3+j*2)%9) + 1
			data[i*n+j] = v
			data[j*n+i] = v
		}
	}
	return NewContactMatrix(n, data)
}

func TestArgSortRoundTrip(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 8, 9} {
		x := symmetricCounts(n)
		cHat := symmetricCHat(n)

		y := ArgSortForward(x, cHat)
		back := ArgSortInverse(y, cHat, n)

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				want := x.At(i, j)
				got := back.At(i*n + j)
				if got != want {
					t.Errorf("n=%d: ArgSortInverse[%d,%d] = %d, want %d", n, i, j, got, want)
				}
			}
		}
	}
}

func TestKeptRows(t *testing.T) {
	tests := []struct{ n, want int }{
		{1, 1}, {2, 2}, {3, 2}, {4, 3}, {5, 3}, {8, 5},
	}
	for _, test := range tests {
		if got := keptRows(test.n); got != test.want {
			t.Errorf("keptRows(%d) = %d, want %d", test.n, got, test.want)
		}
	}
}
