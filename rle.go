package hic

// EncodeBinaryRLE run-length encodes a boolean vector (§4.2). The result is
// the value of the first element plus a sequence of run lengths, starting
// with the run of first, that sum to len(arr). Grounded on
// FreakyLittleDawg-go-openexr/compression/rle.go's run-length scheme,
// simplified to pure runs (no literal runs) since the payload here is
// boolean rather than arbitrary bytes: every element belongs to exactly one
// run, so there is nothing to fall back to a literal encoding for.
//
// runs is narrowed to the smallest unsigned Dtype holding max(runs) only
// after every run (including the final, possibly-largest tail run) has been
// appended — narrowing before concatenating the tail can under-size the
// dtype, since the tail's length is not bounded by the runs seen so far.
func EncodeBinaryRLE(arr []bool) (first bool, runs *TaggedInts) {
	if len(arr) == 0 {
		return false, NewTaggedInts(U8, 0)
	}

	first = arr[0]
	raw := make([]uint64, 0, 8)
	cur := arr[0]
	runLen := uint64(0)
	for _, v := range arr {
		if v == cur {
			runLen++
			continue
		}
		raw = append(raw, runLen)
		cur = v
		runLen = 1
	}
	raw = append(raw, runLen)

	return first, TagUint64s(raw)
}

// DecodeBinaryRLE reverses EncodeBinaryRLE: it alternates between first and
// !first, emitting each run length's worth of the current value.
func DecodeBinaryRLE(first bool, runs *TaggedInts) []bool {
	total := 0
	for i := 0; i < runs.Len(); i++ {
		total += int(runs.At(i))
	}

	arr := make([]bool, 0, total)
	cur := first
	for i := 0; i < runs.Len(); i++ {
		n := int(runs.At(i))
		for k := 0; k < n; k++ {
			arr = append(arr, cur)
		}
		cur = !cur
	}
	return arr
}
