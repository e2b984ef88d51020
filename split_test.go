package hic

import "testing"

func TestSplitUnsplitRoundTrip(t *testing.T) {
	tests := [][]uint64{
		{},
		{0},
		{1},
		{0, 0, 0},
		{1, 0, 2, 0, 3},
		{0, 0, 0, 4},
		{5, 6, 7, 8},
	}
	for i, vals := range tests {
		x := TagUint64s(vals)
		mask, values := Split(x)
		got := Unsplit(mask, values)

		if got.Len() != x.Len() {
			t.Fatalf("test %d: Len() = %d, want %d", i, got.Len(), x.Len())
		}
		for j := 0; j < x.Len(); j++ {
			if got.At(j) != x.At(j) {
				t.Errorf("test %d: Unsplit(Split(X))[%d] = %d, want %d", i, j, got.At(j), x.At(j))
			}
		}
	}
}

func TestSplitMaskMatchesNonZero(t *testing.T) {
	x := TagUint64s([]uint64{0, 3, 0, 0, 9, 1})
	mask, values := Split(x)
	wantMask := []bool{false, true, false, false, true, true}
	for i, want := range wantMask {
		if mask.Get(i) != want {
			t.Errorf("mask[%d] = %v, want %v", i, mask.Get(i), want)
		}
	}
	wantValues := []uint64{3, 9, 1}
	if values.Len() != len(wantValues) {
		t.Fatalf("values.Len() = %d, want %d", values.Len(), len(wantValues))
	}
	for i, want := range wantValues {
		if values.At(i) != want {
			t.Errorf("values[%d] = %d, want %d", i, values.At(i), want)
		}
	}
}
