package hic

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Average returns the arithmetic mean of vals, grounded on gonum/stat's
// Mean (uniform weights).
func Average(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// Deviation returns the population standard deviation of vals (divisor n,
// not n-1, unlike stat.StdDev's sample convention), computed from the
// population variance.
func Deviation(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return 0
	}
	mean := Average(vals)
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}

// Sparsity returns 1 - nonzero_count/size.
func Sparsity(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	nz := 0
	for _, v := range vals {
		if v != 0 {
			nz++
		}
	}
	return 1 - float64(nz)/float64(len(vals))
}

// statisticByName resolves domain_mask_statistic (§6.4) to the reducer it
// names; an unrecognised name is an InvalidArgument error since it can only
// originate from CLI configuration.
func statisticByName(name string) (func([]float64) float64, error) {
	switch name {
	case "average":
		return Average, nil
	case "deviation":
		return Deviation, nil
	case "sparsity":
		return Sparsity, nil
	default:
		return nil, &Error{Kind: InvalidArgument, Message: "unknown domain_mask_statistic: " + name}
	}
}

// assertSquare returns m's side length, panicking if m is not square: shape
// mismatches here are a programmer error in the caller, not a data-
// dependent failure, matching coordinate.go's own panic-on-shape-mismatch
// convention (e.g. NewCOO).
func assertSquare(m *mat.Dense) int {
	r, c := m.Dims()
	if r != c {
		panic("hic: assertSquare: matrix is not square")
	}
	return r
}

// MapDomains computes the D×D domain statistic S (§4.7): S[p,q] =
// f(C[rows_of_p, cols_of_q]) for p<=q, mirrored to the lower triangle.
// Domain ranges come from boundaries.Domains(n), inclusive-start,
// exclusive-end, with virtual boundaries 0 and n. Each row of a domain
// rectangle is gathered via vector.go's Vector.Gather rather than indexed
// cell-by-cell: a sparse Vector whose indices are the rectangle's column
// range gathers that row's values out of a dense row vector in one call.
func MapDomains(c *mat.Dense, boundaries Boundaries, f func([]float64) float64) *mat.Dense {
	n := assertSquare(c)
	domains := boundaries.Domains(n)
	d := len(domains)

	s := mat.NewDense(d, d, nil)
	for p := 0; p < d; p++ {
		pr := domains[p]
		for q := p; q < d; q++ {
			qr := domains[q]
			colIdx := make([]int, qr[1]-qr[0])
			for x := range colIdx {
				colIdx[x] = qr[0] + x
			}

			vals := make([]float64, 0, (pr[1]-pr[0])*len(colIdx))
			for i := pr[0]; i < pr[1]; i++ {
				rowVec := mat.NewVecDense(n, mat.Row(nil, i, c))
				gatherer := NewVector(n, append([]int(nil), colIdx...), make([]float64, len(colIdx)))
				gatherer.Gather(rowVec)
				gatherer.DoNonZero(func(_, _ int, v float64) {
					vals = append(vals, v)
				})
			}
			v := f(vals)
			s.Set(p, q, v)
			s.Set(q, p, v)
		}
	}
	return s
}
