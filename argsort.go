package hic

import "sort"

// keptRows returns ⌈(n+1)/2⌉, the row count ArgSortTransform keeps after
// the forward cumshift (§4.10).
func keptRows(n int) int {
	return (n + 2) / 2
}

// shiftU64Cols applies cumshift_cols(k) (§4.5) to an n×n grid of uint64
// accessed through get, returning the shifted grid flattened row-major.
// Kept separate from cumshiftCols (float64-only, via gonum's mat.Dense)
// so ArgSortTransform never loses precision converting raw counts through
// float64.
func shiftU64Cols(get func(i, j int) uint64, n, k int) []uint64 {
	out := make([]uint64, n*n)
	for c := 0; c < n; c++ {
		shift := k * c
		for r := 0; r < n; r++ {
			src := mod(r-shift, n)
			out[r*n+c] = get(src, c)
		}
	}
	return out
}

// argsort returns the permutation that stably sorts vals ascending, with
// ties broken by index — a total order recoverable from vals alone, the
// property ArgSortTransform's decoder relies on (§4.10).
func argsort(vals []float64) []int {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		if vals[idx[a]] != vals[idx[b]] {
			return vals[idx[a]] < vals[idx[b]]
		}
		return idx[a] < idx[b]
	})
	return idx
}

// argsortInts is argsort specialised to []int, used to invert a
// permutation: argsort(argsort(perm)) == perm⁻¹.
func argsortInts(vals []int) []int {
	fvals := make([]float64, len(vals))
	for i, v := range vals {
		fvals[i] = float64(v)
	}
	return argsort(fvals)
}

// topRowsFlatU64 and topRowsFlatF64 extract the top `kept` rows of an n×n
// grid, flattened row-major; the grid is given as a row-major uint64 slice
// or as a float64 accessor respectively.
func topRowsFlatU64(grid []uint64, n, kept int) []uint64 {
	return grid[:kept*n]
}

func topRowsFlatF64(get func(i, j int) float64, n, kept int) []float64 {
	out := make([]float64, kept*n)
	idx := 0
	for r := 0; r < kept; r++ {
		for c := 0; c < n; c++ {
			out[idx] = get(r, c)
			idx++
		}
	}
	return out
}

// ArgSortForward is A(X, Ĉ) -> Y (§4.10): X (raw per-bin counts) and Ĉ
// (the reconstructed model) are each cumshift_cols(-1)'d, truncated to the
// top kept rows, and flattened; Y is X's flattened values permuted into Ĉ's
// ascending sort order, which by construction places near-identical raw
// values next to each other wherever the model predicts near-identical
// contact strength.
func ArgSortForward(x *ContactMatrix, cHat func(i, j int) float64) *TaggedInts {
	n := x.N()
	kept := keptRows(n)

	shiftedX := shiftU64Cols(x.At, n, -1)
	flatX := topRowsFlatU64(shiftedX, n, kept)

	shiftedCGet := func(i, j int) float64 {
		return cumshiftColsAt(cHat, n, -1, i, j)
	}
	flatC := topRowsFlatF64(shiftedCGet, n, kept)

	perm := argsort(flatC)
	y := make([]uint64, len(flatX))
	for i, p := range perm {
		y[i] = flatX[p]
	}
	return TagUint64s(y)
}

// cumshiftColsAt evaluates cumshift_cols(k) of a matrix given only by an
// At(i,j) accessor, at position (i,j), without materialising the shifted
// matrix — used so Ĉ (produced by DomainModel.Reconstruct) need not be
// copied into a second dense buffer purely to compute the sort key.
func cumshiftColsAt(get func(i, j int) float64, n, k, i, j int) float64 {
	shift := k * j
	src := mod(i-shift, n)
	return get(src, j)
}

// ArgSortInverse is A⁻¹(Y, Ĉ): recompute the same sort key from Ĉ alone,
// invert the permutation via argsort(argsort(.)), and undo the cumshift
// and row-truncation by exploiting the symmetry of the pre-shift matrix
// directly: for symmetric M, cumshift_cols(-1)(M)[r,c] = M[c, (r+c) mod n],
// so for any cell (i,j) at least one of the row indices mod(j-i,n) or
// mod(i-j,n) falls inside the kept top rows, which is enough to recover
// every cell without separately padding, re-shifting and mirroring.
func ArgSortInverse(y *TaggedInts, cHat func(i, j int) float64, n int) *TaggedInts {
	kept := keptRows(n)

	shiftedCGet := func(i, j int) float64 {
		return cumshiftColsAt(cHat, n, -1, i, j)
	}
	flatC := topRowsFlatF64(shiftedCGet, n, kept)

	perm := argsort(flatC)
	invPerm := argsortInts(perm)

	topFlat := make([]uint64, kept*n)
	for j := range topFlat {
		topFlat[j] = y.At(invPerm[j])
	}
	topAt := func(r, c int) uint64 {
		return topFlat[r*n+c]
	}

	out := make([]uint64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r := mod(j-i, n)
			if r < kept {
				out[i*n+j] = topAt(r, i)
			} else {
				r2 := mod(i-j, n)
				out[i*n+j] = topAt(r2, j)
			}
		}
	}
	return TagUint64s(out)
}
