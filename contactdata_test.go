package hic

import "testing"

func TestEncodeDecodeTaggedIntsRoundTrip(t *testing.T) {
	tests := []struct {
		dtype Dtype
		vals  []uint64
	}{
		{U8, []uint64{0, 1, 255}},
		{U16, []uint64{0, 300, 65535}},
		{U32, []uint64{0, 70000, 4294967295}},
		{U64, []uint64{0, 1 << 40, 18446744073709551615}},
		{U8, []uint64{}},
	}
	for i, test := range tests {
		ti := NewTaggedInts(test.dtype, len(test.vals))
		for j, v := range test.vals {
			ti.Set(j, v)
		}
		payload := encodeTaggedInts(ti)
		got, err := decodeTaggedInts(payload)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if got.Dtype() != test.dtype {
			t.Errorf("test %d: Dtype() = %v, want %v", i, got.Dtype(), test.dtype)
		}
		if got.Len() != len(test.vals) {
			t.Fatalf("test %d: Len() = %d, want %d", i, got.Len(), len(test.vals))
		}
		for j, v := range test.vals {
			if got.At(j) != v {
				t.Errorf("test %d: At(%d) = %d, want %d", i, j, got.At(j), v)
			}
		}
	}
}

func TestDecodeTaggedIntsRejectsBadWidth(t *testing.T) {
	payload := []byte{0xFF, 0, 0, 0, 0}
	_, err := decodeTaggedInts(payload)
	if err == nil {
		t.Fatal("expected an error for an unrecognised width byte")
	}
	herr, ok := err.(*Error)
	if !ok || herr.Kind != Integrity {
		t.Errorf("expected an Integrity error, got %v", err)
	}
}

func TestDecodeTaggedIntsRejectsTruncatedPayload(t *testing.T) {
	ti := NewTaggedInts(U32, 3)
	payload := encodeTaggedInts(ti)
	_, err := decodeTaggedInts(payload[:len(payload)-2])
	if err == nil {
		t.Fatal("expected an error for a truncated payload")
	}
	herr, ok := err.(*Error)
	if !ok || herr.Kind != Integrity {
		t.Errorf("expected an Integrity error, got %v", err)
	}
}

func TestDecodeTaggedIntsRejectsTooShort(t *testing.T) {
	_, err := decodeTaggedInts([]byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected an error for a too-short payload")
	}
}
