package hic

const (
	paddingBits    = 4
	countsSizeBits = 8
)

// EncodeBinArray frames a boolean vector as bytes on top of BitStream
// (§4.3), optionally via BinaryRLE. The on-wire header is, bit by bit:
// transform(1), then if transform is set, first_value(1) and
// counts_size(8), then padding(4), zero-padded to the next byte boundary.
// The body is either the packed boolean sequence (transform=false) or the
// run-length counts at counts_size bits each (transform=true), itself
// zero-padded to a byte.
func EncodeBinArray(arr []bool, transform bool) []byte {
	head := NewBitStream()
	head.WriteBool(transform)

	data := NewBitStream()
	if transform {
		first, runs := EncodeBinaryRLE(arr)
		countsSize := bitsNeeded(maxTagged(runs))

		head.WriteBool(first)
		head.WriteUint(uint64(countsSize), countsSizeBits)

		for i := 0; i < runs.Len(); i++ {
			data.WriteUint(runs.At(i), countsSize)
		}
	} else {
		for _, b := range arr {
			data.WriteBool(b)
		}
	}

	padding := (8 - data.LenBits()%8) % 8
	head.WriteUint(uint64(padding), paddingBits)
	for i := 0; i < padding; i++ {
		data.WriteBool(false)
	}

	for head.LenBits()%8 != 0 {
		head.WriteBool(false)
	}

	return append(head.DrainToBytes(), data.DrainToBytes()...)
}

// DecodeBinArray reverses EncodeBinArray. A padding field greater than 7 is
// corrupt input and is reported as a fatal Integrity error.
func DecodeBinArray(payload []byte) ([]bool, error) {
	stream := NewBitStreamFromBytes(payload)

	transform, err := stream.ReadBool()
	if err != nil {
		return nil, err
	}

	if transform {
		first, err := stream.ReadBool()
		if err != nil {
			return nil, err
		}
		countsSizeU, err := stream.ReadUint(countsSizeBits)
		if err != nil {
			return nil, err
		}
		countsSize := int(countsSizeU)

		paddingU, err := stream.ReadUint(paddingBits)
		if err != nil {
			return nil, err
		}
		padding := int(paddingU)
		if padding > 7 {
			return nil, &Error{Kind: Integrity, Message: "BinArraySerde: padding field out of range"}
		}
		if err := stream.AlignToByte(); err != nil {
			return nil, err
		}

		n := 0
		if countsSize > 0 {
			n = (stream.RemainingBits() - padding) / countsSize
		}
		raw := make([]uint64, n)
		for i := 0; i < n; i++ {
			raw[i], err = stream.ReadUint(countsSize)
			if err != nil {
				return nil, err
			}
		}
		return DecodeBinaryRLE(first, TagUint64s(raw)), nil
	}

	paddingU, err := stream.ReadUint(paddingBits)
	if err != nil {
		return nil, err
	}
	padding := int(paddingU)
	if padding > 7 {
		return nil, &Error{Kind: Integrity, Message: "BinArraySerde: padding field out of range"}
	}
	if err := stream.AlignToByte(); err != nil {
		return nil, err
	}

	n := stream.RemainingBits() - padding
	arr := make([]bool, n)
	for i := range arr {
		arr[i], err = stream.ReadBool()
		if err != nil {
			return nil, err
		}
	}
	return arr, nil
}

// bitsNeeded returns ceil(log2(max+1)), the number of bits required to
// represent every value in [0, max].
func bitsNeeded(max uint64) int {
	n := 0
	for uint64(1)<<uint(n) <= max {
		n++
	}
	return n
}

func maxTagged(t *TaggedInts) uint64 {
	var max uint64
	for i := 0; i < t.Len(); i++ {
		if v := t.At(i); v > max {
			max = v
		}
	}
	return max
}
