package hic

import (
	"reflect"
	"testing"
)

func TestBinArraySerdeRoundTrip(t *testing.T) {
	tests := [][]bool{
		{},
		{true},
		{false},
		{true, false, true, true, false, false, false, true},
		repeatBool(true, 17),
		repeatBool(false, 64),
		{true, true, false, true, false, true, false, false, true, true, true},
	}

	for _, transform := range []bool{true, false} {
		for i, arr := range tests {
			payload := EncodeBinArray(arr, transform)
			got, err := DecodeBinArray(payload)
			if err != nil {
				t.Fatalf("transform=%v test %d: %v", transform, i, err)
			}
			if len(arr) == 0 {
				if len(got) != 0 {
					t.Errorf("transform=%v test %d: got %v, want empty", transform, i, got)
				}
				continue
			}
			if !reflect.DeepEqual(got, arr) {
				t.Errorf("transform=%v test %d: got %v, want %v", transform, i, got, arr)
			}
		}
	}
}

func TestBinArraySerdeRejectsOutOfRangePadding(t *testing.T) {
	payload := EncodeBinArray([]bool{true, false, true}, false)
	// Corrupt the padding field (bits 1-4 of the header byte) to an
	// out-of-range value.
	payload[0] |= 0b01111000
	_, err := DecodeBinArray(payload)
	if err == nil {
		t.Fatal("expected an error for an out-of-range padding field")
	}
	herr, ok := err.(*Error)
	if !ok || herr.Kind != Integrity {
		t.Errorf("expected an Integrity error, got %v", err)
	}
}
