package hic

import "testing"

func TestComputeRowMaskIdempotence(t *testing.T) {
	c := NewContactMatrix(5, []uint64{
		0, 0, 0, 0, 0,
		0, 0, 2, 0, 1,
		0, 2, 0, 3, 0,
		0, 0, 3, 0, 4,
		0, 1, 0, 4, 0,
	})
	m1 := ComputeRowMask(c)
	reduced := ApplyMask(c, m1)
	m2 := ComputeRowMask(reduced)
	if m2.NNZ() != 0 {
		t.Errorf("masking a matrix twice should leave nothing further masked, got %d masked rows", m2.NNZ())
	}
}

func TestComputeRowMaskAllZero(t *testing.T) {
	c := NewContactMatrix(5, make([]uint64, 25))
	m := ComputeRowMask(c)
	if m.NNZ() != 5 {
		t.Fatalf("expected all 5 rows masked, got %d", m.NNZ())
	}
	reduced := ApplyMask(c, m)
	if reduced.N() != 0 {
		t.Errorf("expected an empty working matrix, got N=%d", reduced.N())
	}
	restored := UnmaskMatrix(reduced, m)
	if restored.N() != 5 {
		t.Fatalf("expected restored N=5, got %d", restored.N())
	}
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			if restored.At(i, j) != 0 {
				t.Errorf("restored[%d,%d] = %d, want 0", i, j, restored.At(i, j))
			}
		}
	}
}

func TestApplyMaskUnmaskMatrixRoundTrip(t *testing.T) {
	c := NewContactMatrix(5, []uint64{
		0, 0, 0, 0, 0,
		0, 0, 2, 0, 1,
		0, 2, 0, 3, 0,
		0, 0, 3, 0, 4,
		0, 1, 0, 4, 0,
	})
	m := ComputeRowMask(c)
	reduced := ApplyMask(c, m)
	if reduced.N() != 4 {
		t.Fatalf("expected N=4 after dropping the all-zero row, got %d", reduced.N())
	}
	restored := UnmaskMatrix(reduced, m)
	for i := 0; i < c.N(); i++ {
		for j := 0; j < c.N(); j++ {
			if restored.At(i, j) != c.At(i, j) {
				t.Errorf("restored[%d,%d] = %d, want %d", i, j, restored.At(i, j), c.At(i, j))
			}
		}
	}
}

func TestApplyMaskVectorUnmaskVectorRoundTrip(t *testing.T) {
	w := Weights{1, 2, 3, 4, 5}
	m := NewMask(5)
	m.Set(1, true)
	m.Set(3, true)

	reduced := ApplyMaskVector(w, m)
	if len(reduced) != 3 {
		t.Fatalf("expected 3 unmasked entries, got %d", len(reduced))
	}
	restored := UnmaskVector(reduced, m)
	for i, v := range w {
		if m.Get(i) {
			if restored[i] != 0 {
				t.Errorf("restored[%d] = %v, want 0 (masked)", i, restored[i])
			}
			continue
		}
		if restored[i] != v {
			t.Errorf("restored[%d] = %v, want %v", i, restored[i], v)
		}
	}
}

func TestApplyMaskBoolsUnmaskBoolsRoundTrip(t *testing.T) {
	bits := []bool{true, false, true, true, false}
	m := NewMask(5)
	m.Set(0, true)
	m.Set(4, true)

	reduced := ApplyMaskBools(bits, m)
	if len(reduced) != 3 {
		t.Fatalf("expected 3 unmasked entries, got %d", len(reduced))
	}
	restored := UnmaskBools(reduced, m)
	for i, v := range bits {
		if m.Get(i) {
			if restored[i] {
				t.Errorf("restored[%d] = true, want false (masked)", i)
			}
			continue
		}
		if restored[i] != v {
			t.Errorf("restored[%d] = %v, want %v", i, restored[i], v)
		}
	}
}
