package hic

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestDomainModelRoundTripC4 covers a 4x4 matrix split into two size-2
// domains, both pairs marked "complex".
func TestDomainModelRoundTripC4(t *testing.T) {
	c4 := NewContactMatrix(4, []uint64{
		0, 2, 0, 1,
		2, 0, 3, 0,
		0, 3, 0, 4,
		1, 0, 4, 0,
	})
	boundaries := Boundaries{2}
	g := GenDistMat(4)

	m := NewDomainMask(2)
	m.Set(0, 0, true)
	m.Set(0, 1, true)
	m.Set(1, 1, true)

	balanced := c4.Dense()
	vFlat, tFlat := Build(balanced, g, boundaries, Average, m)

	// All pairs are complex, so V_flat should be empty.
	if len(vFlat) != 0 {
		t.Errorf("expected an empty V_flat when every pair is complex, got %v", vFlat)
	}

	got := Reconstruct(g, boundaries, m, vFlat, tFlat)
	n, _ := got.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(got.At(i, j)-balanced.At(i, j)) > 1e-9 {
				t.Errorf("Reconstruct[%d,%d] = %v, want %v", i, j, got.At(i, j), balanced.At(i, j))
			}
		}
	}
}

// TestDomainModelRoundTripMixed covers a larger matrix with a mix of simple
// and complex domain pairs.
func TestDomainModelRoundTripMixed(t *testing.T) {
	n := 8
	data := make([]uint64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := uint64((i*3+j*5)%11) + 1
			data[i*n+j] = v
		}
	}
	c := NewContactMatrix(n, data)
	boundaries := Boundaries{2, 5}
	g := GenDistMat(n)

	balanced := c.Dense()
	vFull := MapDomains(balanced, boundaries, Average)
	sFull := MapDomains(balanced, boundaries, Deviation)
	d := boundaries.Domains(n)
	_ = vFull

	m := NewDomainMask(len(d))
	for p := 0; p < len(d); p++ {
		for q := p; q < len(d); q++ {
			m.Set(p, q, sFull.At(p, q) > 2.0)
		}
	}

	vFlat, tFlat := Build(balanced, g, boundaries, Average, m)
	got := Reconstruct(g, boundaries, m, vFlat, tFlat)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(got.At(i, j)-balanced.At(i, j)) > 1e-9 {
				t.Errorf("Reconstruct[%d,%d] = %v, want %v", i, j, got.At(i, j), balanced.At(i, j))
			}
		}
	}
}

func TestDomainMaskTriuCountAndDense(t *testing.T) {
	m := NewDomainMask(3)
	m.Set(0, 1, true)
	m.Set(2, 2, true)
	if got := m.TriuCount(); got != 2 {
		t.Errorf("TriuCount() = %d, want 2", got)
	}
	dense := m.Dense()
	want := mat.NewDense(3, 3, []float64{
		0, 1, 0,
		1, 0, 0,
		0, 0, 1,
	})
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if dense.At(i, j) != want.At(i, j) {
				t.Errorf("Dense[%d,%d] = %v, want %v", i, j, dense.At(i, j), want.At(i, j))
			}
		}
	}
}
