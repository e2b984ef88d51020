package hic

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAverage(t *testing.T) {
	if got := Average([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("Average = %v, want 2.5", got)
	}
	if got := Average(nil); got != 0 {
		t.Errorf("Average(nil) = %v, want 0", got)
	}
}

func TestDeviationIsPopulationStdDev(t *testing.T) {
	// Population variance of {2,4,4,4,5,5,7,9} is 4, so stddev is 2.
	vals := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	got := Deviation(vals)
	if math.Abs(got-2) > 1e-9 {
		t.Errorf("Deviation = %v, want 2", got)
	}
}

func TestSparsity(t *testing.T) {
	got := Sparsity([]float64{0, 1, 0, 2, 0})
	want := 1 - 2.0/5.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Sparsity = %v, want %v", got, want)
	}
	if got := Sparsity(nil); got != 0 {
		t.Errorf("Sparsity(nil) = %v, want 0", got)
	}
}

func TestAssertSquarePanicsOnNonSquare(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a non-square matrix")
		}
	}()
	assertSquare(mat.NewDense(2, 3, nil))
}

// TestMapDomainsC4 covers a 4x4 matrix split into two size-2 domains at
// boundary index 2.
func TestMapDomainsC4(t *testing.T) {
	c4 := mat.NewDense(4, 4, []float64{
		0, 2, 0, 1,
		2, 0, 3, 0,
		0, 3, 0, 4,
		1, 0, 4, 0,
	})
	boundaries := Boundaries{2}

	v := MapDomains(c4, boundaries, Average)
	if math.Abs(v.At(0, 0)-0.5) > 1e-9 {
		t.Errorf("V[0,0] = %v, want 0.5", v.At(0, 0))
	}
	if math.Abs(v.At(1, 1)-1.0) > 1e-9 {
		t.Errorf("V[1,1] = %v, want 1.0", v.At(1, 1))
	}
	if math.Abs(v.At(0, 1)-1.75) > 1e-9 {
		t.Errorf("V[0,1] = %v, want 1.75", v.At(0, 1))
	}
	if math.Abs(v.At(1, 0)-1.75) > 1e-9 {
		t.Errorf("V[1,0] = %v, want 1.75", v.At(1, 0))
	}

	s := MapDomains(c4, boundaries, Deviation)
	for p := 0; p < 2; p++ {
		for q := p; q < 2; q++ {
			if s.At(p, q) <= 0 {
				t.Errorf("M[%d,%d] should be the \"complex\" case (std>0), got std=%v", p, q, s.At(p, q))
			}
		}
	}
}

func TestStatisticByName(t *testing.T) {
	if _, err := statisticByName("unknown"); err == nil {
		t.Fatal("expected an error for an unrecognised statistic name")
	} else if herr, ok := err.(*Error); !ok || herr.Kind != InvalidArgument {
		t.Errorf("expected an InvalidArgument error, got %v", err)
	}

	for _, name := range []string{"average", "deviation", "sparsity"} {
		if _, err := statisticByName(name); err != nil {
			t.Errorf("statisticByName(%q): unexpected error %v", name, err)
		}
	}
}
