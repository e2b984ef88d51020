package hic

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// DomainModel factors a balanced contact matrix into a sparse per-domain
// summary (§4.9): "simple" domain pairs (M[p,q]=false) carry one averaged
// scalar, "complex" pairs (M[p,q]=true) carry one value per distinct
// genomic distance appearing in the pair's rectangle. Build and
// Reconstruct must traverse domain pairs in the same row-major
// upper-triangle order (p outer, q inner), visiting distances within a
// rectangle via their sorted-ascending distinct values, or the two sides
// disagree on how T_flat's columns map back to cells.

// distinctDistances restricts g to the rectangle rows × cols (the bin
// ranges of a domain pair) and returns the distinct distances present,
// sorted ascending.
func distinctDistances(g *ContactMatrix, rows, cols [2]int) []uint64 {
	seen := make(map[uint64]bool)
	for i := rows[0]; i < rows[1]; i++ {
		for j := cols[0]; j < cols[1]; j++ {
			seen[g.At(i, j)] = true
		}
	}
	out := make([]uint64, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func maxDistance(g *ContactMatrix) uint64 {
	n := g.N()
	var max uint64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := g.At(i, j); v > max {
				max = v
			}
		}
	}
	return max
}

// Build runs the forward half of DomainModel, producing V_transformed and
// T_flat from the balanced matrix b, the distance matrix g, the domain
// boundaries, the per-distance statistic f, and the complex/simple
// selector m.
func Build(balanced *mat.Dense, g *ContactMatrix, boundaries Boundaries, f func([]float64) float64, m *DomainMask) (vFlat, tFlat []float64) {
	n := assertSquare(balanced)
	domains := boundaries.Domains(n)
	d := m.D()

	v := MapDomains(balanced, boundaries, Average)

	maxDist := maxDistance(g)
	k := m.TriuCount()
	distIDs := make([]int, maxDist+1)

	// Each per-distance reduction is collected as a (flattened index, value)
	// triplet rather than written directly into a dense table: domain pairs
	// are visited in row-major (p,q) order, but a later pair's distances are
	// not monotonic in dist*k+column, so the triplets only become a valid
	// VecCOO (whose AtVec relies on indices being sorted) once, at the end.
	var ind []int
	var data []float64

	for p := 0; p < d; p++ {
		rows := domains[p]
		for q := p; q < d; q++ {
			if !m.Get(p, q) {
				continue
			}
			cols := domains[q]
			for _, dist := range distinctDistances(g, rows, cols) {
				vals := make([]float64, 0)
				for i := rows[0]; i < rows[1]; i++ {
					for j := cols[0]; j < cols[1]; j++ {
						if g.At(i, j) == dist {
							vals = append(vals, balanced.At(i, j))
						}
					}
				}
				ind = append(ind, int(dist)*k+distIDs[dist])
				data = append(data, f(vals))
				distIDs[dist]++
			}
		}
	}

	order := argsortInts(ind)
	sortedInd := make([]int, len(ind))
	sortedData := make([]float64, len(data))
	for i, o := range order {
		sortedInd[i] = ind[o]
		sortedData[i] = data[o]
	}
	table := NewVecCOO((int(maxDist)+1)*k, sortedInd, sortedData)

	relaidV := RelayoutForward(v)
	relaidM := RelayoutForward(m.Dense())
	flatV := flattenRowMajor(relaidV)
	flatM := flattenRowMajor(relaidM)
	for i := range flatM {
		if flatM[i] == 0 {
			vFlat = append(vFlat, flatV[i])
		}
	}

	for dist := uint64(0); dist <= maxDist; dist++ {
		for col := 0; col < distIDs[dist]; col++ {
			tFlat = append(tFlat, table.AtVec(int(dist)*k+col))
		}
	}
	return vFlat, tFlat
}

// replayDistanceCounts walks the same domain-pair/distance order as Build
// using only g, boundaries and m, returning the total number of times each
// distance is visited — the row widths T_flat was concatenated with.
func replayDistanceCounts(g *ContactMatrix, boundaries Boundaries, m *DomainMask) []int {
	n := g.N()
	domains := boundaries.Domains(n)
	d := m.D()
	maxDist := maxDistance(g)
	counts := make([]int, maxDist+1)

	for p := 0; p < d; p++ {
		rows := domains[p]
		for q := p; q < d; q++ {
			if !m.Get(p, q) {
				continue
			}
			cols := domains[q]
			for _, dist := range distinctDistances(g, rows, cols) {
				counts[dist]++
			}
		}
	}
	return counts
}

// Reconstruct runs the inverse half of DomainModel, producing the
// symmetric n×n Ĉ from g, boundaries, m and the serialized V_flat/T_flat.
func Reconstruct(g *ContactMatrix, boundaries Boundaries, m *DomainMask, vFlat, tFlat []float64) *mat.Dense {
	n := g.N()
	d := m.D()
	domains := boundaries.Domains(n)

	counts := replayDistanceCounts(g, boundaries, m)
	table := make([][]float64, len(counts))
	offset := 0
	for dist, c := range counts {
		table[dist] = tFlat[offset : offset+c]
		offset += c
	}

	relaidM := RelayoutForward(m.Dense())
	flatM := flattenRowMajor(relaidM)
	relaidVFlat := make([]float64, len(flatM))
	vi := 0
	for i := range flatM {
		if flatM[i] == 0 {
			relaidVFlat[i] = vFlat[vi]
			vi++
		}
	}
	rows, _ := relaidM.Dims()
	relaidV := mat.NewDense(rows, d, relaidVFlat)
	v := RelayoutInverse(relaidV, d)

	out := mat.NewDense(n, n, nil)
	distIDs := make([]int, len(counts))

	for p := 0; p < d; p++ {
		rowRange := domains[p]
		for q := p; q < d; q++ {
			colRange := domains[q]
			if !m.Get(p, q) {
				scalar := v.At(p, q)
				for i := rowRange[0]; i < rowRange[1]; i++ {
					for j := colRange[0]; j < colRange[1]; j++ {
						out.Set(i, j, scalar)
					}
				}
				continue
			}
			for _, dist := range distinctDistances(g, rowRange, colRange) {
				val := table[dist][distIDs[dist]]
				distIDs[dist]++
				for i := rowRange[0]; i < rowRange[1]; i++ {
					for j := colRange[0]; j < colRange[1]; j++ {
						if g.At(i, j) == dist {
							out.Set(i, j, val)
						}
					}
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out.Set(j, i, out.At(i, j))
		}
	}
	return out
}
