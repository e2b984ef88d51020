package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrCorrupted reports malformed RLE-encoded payloads.
var ErrCorrupted = errors.New("codec: corrupted RLE payload")

const (
	rleMinRunLength = 3
	rleMaxRunLength = 127
)

// RLEBitmapCodec is the BinaryCodec stand-in for JBIG (design note 4): the
// matrix is packed row-major into bytes (8 bits/byte) and the byte stream
// is then run-length encoded with OpenEXR's signed-count scheme — negative
// count -n means the next byte repeats (n+1) times, positive count +n
// means the next (n+1) bytes are literal — ported from
// FreakyLittleDawg-go-openexr/compression/rle.go and adapted to operate on
// a packed bitmap rather than raw pixel bytes.
type RLEBitmapCodec struct{}

// NewRLEBitmapCodec returns a ready-to-use RLEBitmapCodec.
func NewRLEBitmapCodec() *RLEBitmapCodec {
	return &RLEBitmapCodec{}
}

func packBits(rows, cols int, bits []bool) []byte {
	n := rows * cols
	packed := make([]byte, (n+7)/8)
	for i, b := range bits {
		if b {
			packed[i/8] |= 1 << uint(7-i%8)
		}
	}
	return packed
}

func unpackBits(packed []byte, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = packed[i/8]&(1<<uint(7-i%8)) != 0
	}
	return out
}

func rleCompress(src []byte) []byte {
	if len(src) == 0 {
		return nil
	}
	dst := make([]byte, 0, len(src)+len(src)/2)

	i := 0
	for i < len(src) {
		val := src[i]
		runEnd := i + 1
		for runEnd < len(src) && src[runEnd] == val && runEnd-i < rleMaxRunLength {
			runEnd++
		}
		runLength := runEnd - i

		if runLength >= rleMinRunLength {
			dst = append(dst, byte(-(runLength - 1)), val)
			i = runEnd
			continue
		}

		literalStart := i
		for i < len(src) && i-literalStart < rleMaxRunLength {
			if i+rleMinRunLength <= len(src) {
				v := src[i]
				if src[i+1] == v && src[i+2] == v {
					break
				}
			}
			i++
		}
		literalLength := i - literalStart
		if literalLength > 0 {
			dst = append(dst, byte(literalLength-1))
			dst = append(dst, src[literalStart:i]...)
		}
	}
	return dst
}

func rleDecompress(src []byte, expectedSize int) ([]byte, error) {
	if len(src) == 0 {
		if expectedSize != 0 {
			return nil, ErrCorrupted
		}
		return nil, nil
	}

	dst := make([]byte, expectedSize)
	dstPos := 0
	i := 0
	for i < len(src) {
		count := int(int8(src[i]))
		i++

		if count < 0 {
			runLength := -count + 1
			if i >= len(src) {
				return nil, ErrCorrupted
			}
			if dstPos+runLength > expectedSize {
				return nil, ErrCorrupted
			}
			val := src[i]
			i++
			for end := dstPos + runLength; dstPos < end; dstPos++ {
				dst[dstPos] = val
			}
		} else {
			literalLength := count + 1
			if i+literalLength > len(src) {
				return nil, ErrCorrupted
			}
			if dstPos+literalLength > expectedSize {
				return nil, ErrCorrupted
			}
			copy(dst[dstPos:], src[i:i+literalLength])
			dstPos += literalLength
			i += literalLength
		}
	}
	if dstPos != expectedSize {
		return nil, ErrCorrupted
	}
	return dst, nil
}

// Encode packs bits row-major and run-length encodes the result behind an
// 8-byte (rows, cols) header.
func (c *RLEBitmapCodec) Encode(rows, cols int, bits []bool) ([]byte, error) {
	if rows*cols != len(bits) {
		return nil, fmt.Errorf("codec: bits length %d does not match %d×%d", len(bits), rows, cols)
	}
	packed := packBits(rows, cols, bits)
	body := rleCompress(packed)

	out := make([]byte, 8+len(body))
	binary.LittleEndian.PutUint32(out[0:4], uint32(rows))
	binary.LittleEndian.PutUint32(out[4:8], uint32(cols))
	copy(out[8:], body)
	return out, nil
}

// Decode reverses Encode, recovering the shape from the header.
func (c *RLEBitmapCodec) Decode(data []byte) (rows, cols int, bits []bool, err error) {
	if len(data) < 8 {
		return 0, 0, nil, fmt.Errorf("codec: bitmap payload too short: %d bytes", len(data))
	}
	rows = int(binary.LittleEndian.Uint32(data[0:4]))
	cols = int(binary.LittleEndian.Uint32(data[4:8]))
	n := rows * cols
	expectedPacked := (n + 7) / 8

	packed, err := rleDecompress(data[8:], expectedPacked)
	if err != nil {
		return 0, 0, nil, err
	}
	return rows, cols, unpackBits(packed, n), nil
}
