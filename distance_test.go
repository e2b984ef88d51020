package hic

import "testing"

func TestGenDistMatProperties(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 7, 16} {
		g := GenDistMat(n)
		if g.N() != n {
			t.Fatalf("n=%d: GenDistMat returned N=%d", n, g.N())
		}
		for i := 0; i < n; i++ {
			if g.At(i, i) != 0 {
				t.Errorf("n=%d: G[%d,%d] = %d, want 0", n, i, i, g.At(i, i))
			}
			for j := 0; j < n; j++ {
				if g.At(i, j) != g.At(j, i) {
					t.Errorf("n=%d: G not symmetric at (%d,%d): %d != %d", n, i, j, g.At(i, j), g.At(j, i))
				}
				want := uint64(i - j)
				if i < j {
					want = uint64(j - i)
				}
				if g.At(i, j) != want {
					t.Errorf("n=%d: G[%d,%d] = %d, want |%d-%d| = %d", n, i, j, g.At(i, j), i, j, want)
				}
			}
		}
	}
}

func TestGenDistMat4x4(t *testing.T) {
	g := GenDistMat(4)
	want := [][]uint64{
		{0, 1, 2, 3},
		{1, 0, 1, 2},
		{2, 1, 0, 1},
		{3, 2, 1, 0},
	}
	for i := range want {
		for j := range want[i] {
			if g.At(i, j) != want[i][j] {
				t.Errorf("G[%d,%d] = %d, want %d", i, j, g.At(i, j), want[i][j])
			}
		}
	}
}

func TestMod(t *testing.T) {
	tests := []struct{ a, n, want int }{
		{0, 5, 0},
		{5, 5, 0},
		{-1, 5, 4},
		{-6, 5, 4},
		{7, 5, 2},
	}
	for _, test := range tests {
		if got := mod(test.a, test.n); got != test.want {
			t.Errorf("mod(%d, %d) = %d, want %d", test.a, test.n, got, test.want)
		}
	}
}
