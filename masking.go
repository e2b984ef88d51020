package hic

// Axis names a matrix side for documentation purposes; ContactMatrix is
// always square and symmetric, so in practice a single mask computed along
// rows doubles as the column mask (§4.4).
type Axis int

const (
	Row Axis = iota
	Col
)

// Other returns the opposite axis.
func (a Axis) Other() Axis {
	if a == Row {
		return Col
	}
	return Row
}

// contactMatrixToCOO ingests a ContactMatrix as COO triplets, the natural
// shape for a .cool-style pixel table and coordinate.go's own construction
// format.
func contactMatrixToCOO(c *ContactMatrix) *COO {
	n := c.N()
	rows := make([]int, 0, n)
	cols := make([]int, 0, n)
	data := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := c.At(i, j); v != 0 {
				rows = append(rows, i)
				cols = append(cols, j)
				data = append(data, float64(v))
			}
		}
	}
	return NewCOO(n, n, rows, cols, data)
}

// ComputeRowMask derives the row/column mask of a ContactMatrix (§4.4):
// m[i] is true iff row i (equivalently column i, by symmetry) is entirely
// zero. The matrix is scanned once (O(n²)) into COO triplets, converted to
// CSR, and each row is then tested with compressed.go's RowNNZ.
func ComputeRowMask(c *ContactMatrix) *Mask {
	csr := contactMatrixToCOO(c).ToCSR()
	m := NewMask(c.N())
	for i := 0; i < c.N(); i++ {
		if csr.RowNNZ(i) == 0 {
			m.Set(i, true)
		}
	}
	return m
}

// keepIndices returns the indices of m's false (unmasked) entries, in
// order.
func keepIndices(m *Mask) []int {
	keep := make([]int, 0, m.Len())
	for i := 0; i < m.Len(); i++ {
		if !m.Get(i) {
			keep = append(keep, i)
		}
	}
	return keep
}

// ApplyMask drops the rows and columns named by m from c, returning a
// smaller square ContactMatrix holding only the unmasked rows/columns in
// order. Because m is derived from both axes at once (ComputeRowMask), this
// single pass implements "apply row then column masking using the same
// predicate" from §4.4 without a second reduction.
func ApplyMask(c *ContactMatrix, m *Mask) *ContactMatrix {
	keep := keepIndices(m)
	n2 := len(keep)
	out := make([]uint64, n2*n2)
	for a, i := range keep {
		for b, j := range keep {
			out[a*n2+b] = c.At(i, j)
		}
	}
	return NewContactMatrix(n2, out)
}

// UnmaskMatrix is the inverse of ApplyMask: it produces an n×n
// ContactMatrix (n = m.Len()) whose unmasked positions hold reduced's
// values in order, and whose masked rows/columns are zero.
func UnmaskMatrix(reduced *ContactMatrix, m *Mask) *ContactMatrix {
	n := m.Len()
	out := make([]uint64, n*n)
	keep := keepIndices(m)
	for a, i := range keep {
		for b, j := range keep {
			out[i*n+j] = reduced.At(a, b)
		}
	}
	return NewContactMatrix(n, out)
}

// ApplyMaskVector drops the entries named by m from w, the per-bin
// counterpart of ApplyMask for the Weights vector (and similarly for a
// boundary bit vector widened via Boundaries.Bits).
func ApplyMaskVector(w Weights, m *Mask) Weights {
	keep := keepIndices(m)
	out := make(Weights, len(keep))
	for a, i := range keep {
		out[a] = w[i]
	}
	return out
}

// UnmaskVector is the inverse of ApplyMaskVector: masked slots are filled
// with zero.
func UnmaskVector(reduced Weights, m *Mask) Weights {
	n := m.Len()
	out := make(Weights, n)
	keep := keepIndices(m)
	for a, i := range keep {
		out[i] = reduced[a]
	}
	return out
}

// ApplyMaskBools and UnmaskBools are ApplyMaskVector/UnmaskVector's plain
// []bool counterpart, used for the per-bin boundary vector.
func ApplyMaskBools(bs []bool, m *Mask) []bool {
	keep := keepIndices(m)
	out := make([]bool, len(keep))
	for a, i := range keep {
		out[a] = bs[i]
	}
	return out
}

func UnmaskBools(reduced []bool, m *Mask) []bool {
	n := m.Len()
	out := make([]bool, n)
	keep := keepIndices(m)
	for a, i := range keep {
		out[i] = reduced[a]
	}
	return out
}
