package hic

import (
	"reflect"
	"testing"
)

func TestBinaryRLERoundTrip(t *testing.T) {
	tests := [][]bool{
		{true},
		{false},
		{true, true, true, true},
		{false, true, false, true, false},
		{true, true, false, false, false, true, true, true, true, false},
		repeatBool(false, 300),
		repeatBool(true, 1),
	}

	for i, arr := range tests {
		first, runs := EncodeBinaryRLE(arr)
		got := DecodeBinaryRLE(first, runs)
		if !reflect.DeepEqual(got, arr) {
			t.Errorf("test %d: round-trip mismatch: got %v, want %v", i, got, arr)
		}
	}
}

func TestBinaryRLEEmpty(t *testing.T) {
	first, runs := EncodeBinaryRLE(nil)
	if first {
		t.Error("expected first=false for an empty array")
	}
	if runs.Len() != 0 {
		t.Errorf("expected zero runs, got %d", runs.Len())
	}
	if got := DecodeBinaryRLE(first, runs); len(got) != 0 {
		t.Errorf("expected an empty decode, got %v", got)
	}
}

func TestBinaryRLENarrowsToSmallestDtype(t *testing.T) {
	arr := repeatBool(false, 1000)
	_, runs := EncodeBinaryRLE(arr)
	if runs.Dtype() != U16 {
		t.Errorf("expected a single 1000-run to narrow to U16, got %v", runs.Dtype())
	}
}

func repeatBool(v bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = v
	}
	return out
}
