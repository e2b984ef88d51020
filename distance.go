package hic

import "gonum.org/v1/gonum/mat"

// cumshiftCols is the "cumulative column shift" primitive (§4.5): column c
// of m is cyclically rolled by k*c positions. It underlies GenDistMat, the
// forward/inverse DiagonalRelayout (§4.6), and ArgSortTransform (§4.10).
// The shift follows the roll convention where the element at row r moves to
// row (r+shift) mod rows, so reading the shifted matrix at (r,c) samples
// the source at row (r-shift) mod rows.
func cumshiftCols(m *mat.Dense, k int) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	for c := 0; c < cols; c++ {
		shift := k * c
		for r := 0; r < rows; r++ {
			src := mod(r-shift, rows)
			out.Set(r, c, m.At(src, c))
		}
	}
	return out
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// GenDistMat builds the symmetric genomic-distance matrix G (§4.5) with
// G[i,j] = |i-j|, via the cumshift construction: D0[i,j]=i, cumshift_cols
// with k=1 turns that into (r-c) mod n, whose lower triangle already equals
// r-c for r>=c; mirroring across the diagonal then gives |i-j| everywhere.
func GenDistMat(n int) *ContactMatrix {
	d0 := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d0.Set(i, j, float64(i))
		}
	}
	shifted := cumshiftCols(d0, 1)

	out := make([]uint64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v := uint64(shifted.At(i, j))
			out[i*n+j] = v
			out[j*n+i] = v
		}
	}
	return NewContactMatrix(n, out)
}
