package hic

import "gonum.org/v1/gonum/mat"

// Balance returns B[i,j] = C[i,j] / (w[i]*w[j]) (§4.8), computed as
// Dinv·C·Dinv where Dinv is the diagonal matrix of 1/w. w is sanitised
// first (non-finite or non-positive -> 1), matching Weights.Sanitize.
// Grounded on diagonal.go's DIA type and compressed_arith.go's CSR.Mul
// fast path for diagonal multiplication, a mechanism for scaling a matrix
// by a diagonal without materialising it densely.
func Balance(c *ContactMatrix, w Weights) *mat.Dense {
	n := c.N()
	winv := make([]float64, n)
	sanitized := append(Weights(nil), w...).Sanitize()
	for i, v := range sanitized {
		winv[i] = 1 / v
	}
	dinv := NewDIA(n, winv)

	dense := c.Dense()

	right := new(CSR)
	right.Mul(dense, dinv) // C · Dinv
	rightDense := right.ToDense()

	left := new(CSR)
	left.Mul(dinv, rightDense) // Dinv · (C · Dinv)

	return symmetrize(left.ToDense())
}

// Unbalance is the inverse of Balance: Ĉ[i,j] = B[i,j] · w[i] · w[j].
func Unbalance(b *mat.Dense, w Weights) *mat.Dense {
	n, _ := b.Dims()
	sanitized := append(Weights(nil), w...).Sanitize()
	d := NewDIA(n, sanitized)

	dense := mat.DenseCopyOf(b)

	right := new(CSR)
	right.Mul(dense, d)
	rightDense := right.ToDense()

	left := new(CSR)
	left.Mul(d, rightDense)

	return symmetrize(left.ToDense())
}

// symmetrize averages m with its transpose in place, a safeguard against
// floating-point asymmetry introduced by the two sequential diagonal
// multiplications; Balance and Unbalance are symmetric by construction.
func symmetrize(m *mat.Dense) *mat.Dense {
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			avg := (m.At(i, j) + m.At(j, i)) / 2
			m.Set(i, j, avg)
			m.Set(j, i, avg)
		}
	}
	return m
}
