package hic

// Split implements split(X) -> (mask, values) (§4.11): mask flags the
// nonzero entries of X (a flattened row-major n×n contact grid, or any
// tagged integer vector), values holds X's nonzero entries in the same
// order, at X's own dtype. Structurally this is a gather over the nonzero
// positions, the same shape of operation as blas/level1.go's Dusga/Dussc
// (sparse gather/scatter), specialised to a predicate (nonzero) rather
// than an explicit index list.
func Split(x *TaggedInts) (mask *Mask, values *TaggedInts) {
	n := x.Len()
	m := NewMask(n)
	vals := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		if v := x.At(i); v != 0 {
			m.Set(i, true)
			vals = append(vals, v)
		}
	}
	values = NewTaggedInts(x.Dtype(), len(vals))
	for i, v := range vals {
		values.Set(i, v)
	}
	return m, values
}

// Unsplit is unsplit(mask, values) -> X: the inverse scatter, placing
// values back at mask's true positions and leaving the rest zero.
func Unsplit(mask *Mask, values *TaggedInts) *TaggedInts {
	n := mask.Len()
	out := make([]uint64, n)
	vi := 0
	for i := 0; i < n; i++ {
		if mask.Get(i) {
			out[i] = values.At(vi)
			vi++
		}
	}
	return TagUint64s(out)
}
