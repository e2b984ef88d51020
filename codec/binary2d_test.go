package codec

import "testing"

func TestRLEBitmapCodecRoundTrip(t *testing.T) {
	tests := []struct {
		rows, cols int
		bits       []bool
	}{
		{1, 1, []bool{true}},
		{1, 1, []bool{false}},
		{2, 2, []bool{true, false, false, true}},
		{4, 4, []bool{
			true, true, true, true,
			true, true, true, true,
			false, false, false, false,
			true, false, true, false,
		}},
		{3, 5, make([]bool, 15)}, // all-false
	}
	c := NewRLEBitmapCodec()
	for i, test := range tests {
		payload, err := c.Encode(test.rows, test.cols, test.bits)
		if err != nil {
			t.Fatalf("test %d: Encode: %v", i, err)
		}
		rows, cols, bits, err := c.Decode(payload)
		if err != nil {
			t.Fatalf("test %d: Decode: %v", i, err)
		}
		if rows != test.rows || cols != test.cols {
			t.Fatalf("test %d: shape = %dx%d, want %dx%d", i, rows, cols, test.rows, test.cols)
		}
		for j := range test.bits {
			if bits[j] != test.bits[j] {
				t.Errorf("test %d: bits[%d] = %v, want %v", i, j, bits[j], test.bits[j])
			}
		}
	}
}

func TestRLEBitmapCodecLargeUniformRun(t *testing.T) {
	n := 1000
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = true
	}
	c := NewRLEBitmapCodec()
	payload, err := c.Encode(1, n, bits)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(payload) > n/8 {
		t.Errorf("expected a long uniform run to compress well below the packed size, got %d bytes for %d bits", len(payload), n)
	}
	_, _, got, err := c.Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range got {
		if got[i] != bits[i] {
			t.Fatalf("bit %d mismatch after round trip", i)
		}
	}
}

func TestRLEBitmapCodecRejectsShapeMismatch(t *testing.T) {
	c := NewRLEBitmapCodec()
	_, err := c.Encode(2, 2, []bool{true, false})
	if err == nil {
		t.Fatal("expected an error when bits length does not match rows*cols")
	}
}

func TestRLEBitmapCodecDecodeRejectsCorruptPayload(t *testing.T) {
	c := NewRLEBitmapCodec()
	payload, err := c.Encode(4, 4, []bool{
		true, true, true, true,
		false, false, false, false,
		true, false, true, false,
		false, true, false, true,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Flip the first RLE count byte after the 8-byte header: the literal
	// count 0x01 becomes 0xFE, a 3-byte run that overflows the 2-byte
	// packed bitmap the header promises.
	payload[8] ^= 0xFF
	if _, _, _, err := c.Decode(payload); err == nil {
		t.Fatal("expected corrupted RLE payload to surface an error")
	}
}

func TestPackUnpackBits(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, true, false, true}
	packed := packBits(3, 3, bits)
	got := unpackBits(packed, len(bits))
	for i := range bits {
		if got[i] != bits[i] {
			t.Errorf("bit %d: got %v, want %v", i, got[i], bits[i])
		}
	}
}
