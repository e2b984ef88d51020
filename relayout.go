package hic

import "gonum.org/v1/gonum/mat"

// diagonalOf extracts the numpy-style offset diagonal of m: offset 0 is the
// main diagonal, offset>0 walks toward the upper-right, offset<0 toward the
// lower-left.
func diagonalOf(m *mat.Dense, offset int) []float64 {
	n, _ := m.Dims()
	if offset >= 0 {
		length := n - offset
		out := make([]float64, length)
		for i := 0; i < length; i++ {
			out[i] = m.At(i, i+offset)
		}
		return out
	}
	k := -offset
	length := n - k
	out := make([]float64, length)
	for i := 0; i < length; i++ {
		out[i] = m.At(i+k, i)
	}
	return out
}

// rollRows cyclically shifts every row of m down by shift, the row-axis
// analogue of cumshiftCols's per-column roll.
func rollRows(m *mat.Dense, shift int) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		src := mod(r-shift, rows)
		for c := 0; c < cols; c++ {
			out.Set(r, c, m.At(src, c))
		}
	}
	return out
}

// relayoutTargetRows returns target_rows = n/2 + 1 (§4.6).
func relayoutTargetRows(n int) int {
	return n/2 + 1
}

// RelayoutForward is φ(M) (§4.6): pack the unique entries of a symmetric
// n×n matrix into a dense (target_rows × n) rectangle, by concatenating
// every offset diagonal (0, 1, …, n-1, -1, …, -(n-1)) into a length-n²
// vector, reshaping it row-major to n×n, and keeping only the top rows.
// For symmetric input diagonal(k) == diagonal(-k), so the discarded rows
// carry no information.
func RelayoutForward(m *mat.Dense) *mat.Dense {
	n, _ := m.Dims()

	offsets := make([]int, 0, 2*n-1)
	for k := 0; k < n; k++ {
		offsets = append(offsets, k)
	}
	for k := 1; k < n; k++ {
		offsets = append(offsets, -k)
	}

	flat := make([]float64, 0, n*n)
	for _, o := range offsets {
		flat = append(flat, diagonalOf(m, o)...)
	}

	targetRows := relayoutTargetRows(n)
	out := mat.NewDense(targetRows, n, nil)
	for r := 0; r < targetRows; r++ {
		for c := 0; c < n; c++ {
			out.Set(r, c, flat[r*n+c])
		}
	}
	return out
}

// RelayoutInverse is φ⁻¹(P) (§4.6), reconstructing the symmetric n×n
// matrix packed by RelayoutForward. It redistributes P's flattened values
// into the upper-triangular slots they occupied before reshape-and-
// truncate, then undoes the reshape via a forward column cumshift and a
// row roll, and finally mirrors the upper triangle to the lower.
func RelayoutInverse(p *mat.Dense, n int) *mat.Dense {
	flat := flattenRowMajor(p)

	d := mat.NewDense(n, n, nil)
	cursor := 0
	for idx := 0; idx < n; idx++ {
		row := n - idx - 1
		length := n - idx
		for c := 0; c < length; c++ {
			d.Set(row, idx+c, flat[cursor])
			cursor++
		}
	}

	shifted := cumshiftCols(d, 1)
	rolled := rollRows(shifted, 1)

	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i <= j {
				out.Set(i, j, rolled.At(i, j))
			} else {
				out.Set(i, j, rolled.At(j, i))
			}
		}
	}
	return out
}

func flattenRowMajor(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out = append(out, m.At(r, c))
		}
	}
	return out
}
