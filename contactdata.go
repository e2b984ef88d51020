package hic

import "encoding/binary"

// encodeTaggedInts serializes t as a one-byte bit-width header, a 4-byte
// length, then t's values as little-endian integers at their native width
// — the payload contact-data.ppmd's byte codec compresses (§6.1).
func encodeTaggedInts(t *TaggedInts) []byte {
	width := t.Dtype().Bytes()
	out := make([]byte, 5+width*t.Len())
	out[0] = byte(t.Dtype().Bits())
	binary.LittleEndian.PutUint32(out[1:5], uint32(t.Len()))

	for i := 0; i < t.Len(); i++ {
		off := 5 + i*width
		v := t.At(i)
		switch width {
		case 1:
			out[off] = byte(v)
		case 2:
			binary.LittleEndian.PutUint16(out[off:], uint16(v))
		case 4:
			binary.LittleEndian.PutUint32(out[off:], uint32(v))
		case 8:
			binary.LittleEndian.PutUint64(out[off:], v)
		}
	}
	return out
}

// decodeTaggedInts reverses encodeTaggedInts. An unrecognised width byte is
// reported as an Integrity error (§7), via dtypeFromBits.
func decodeTaggedInts(b []byte) (*TaggedInts, error) {
	if len(b) < 5 {
		return nil, &Error{Kind: Integrity, Message: "contact-data payload too short"}
	}
	dtype, err := dtypeFromBits(int(b[0]))
	if err != nil {
		return nil, err
	}
	n := int(binary.LittleEndian.Uint32(b[1:5]))
	width := dtype.Bytes()
	if len(b) < 5+width*n {
		return nil, &Error{Kind: Integrity, Message: "contact-data payload truncated"}
	}

	t := NewTaggedInts(dtype, n)
	for i := 0; i < n; i++ {
		off := 5 + i*width
		var v uint64
		switch width {
		case 1:
			v = uint64(b[off])
		case 2:
			v = uint64(binary.LittleEndian.Uint16(b[off:]))
		case 4:
			v = uint64(binary.LittleEndian.Uint32(b[off:]))
		case 8:
			v = binary.LittleEndian.Uint64(b[off:])
		}
		t.Set(i, v)
	}
	return t, nil
}
