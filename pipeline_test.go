package hic

import (
	"testing"

	"github.com/james-bowman/hic/codec"
)

// fakeContactSource is an in-memory codec.ContactSource fixture.
type fakeContactSource struct {
	names   []string
	n       map[string]int
	counts  map[string][]uint64
	weights map[string][]float64
}

func (f *fakeContactSource) Chromosomes() []string { return f.names }

func (f *fakeContactSource) Load(chromosome string) (int, []uint64, []float64, error) {
	return f.n[chromosome], f.counts[chromosome], f.weights[chromosome], nil
}

// fakeInsulationSource is an in-memory codec.InsulationSource fixture.
type fakeInsulationSource struct {
	boundaries map[string][]bool
}

func (f *fakeInsulationSource) Boundaries(chromosome string, window int) ([]bool, error) {
	return f.boundaries[chromosome], nil
}

func newTestPipeline(dir string, contacts codec.ContactSource, insulation codec.InsulationSource) *Pipeline {
	_ = dir
	return &Pipeline{
		Contacts:         contacts,
		Insulation:       insulation,
		Float:            codec.NewMantissaTruncateCodec(),
		Binary:           codec.NewRLEBitmapCodec(),
		Byte:             codec.NewZlibByteCodec(),
		InsulationWindow: 50000,
		Resolution:       10000,
		Config:           DefaultConfig(),
	}
}

// TestPipelineEndToEndRoundTrip covers property 10: despite the lossy float
// codecs, the final decoded integer contact matrix exactly matches the
// original input.
func TestPipelineEndToEndRoundTrip(t *testing.T) {
	contacts := &fakeContactSource{
		names: []string{"chrT"},
		n:     map[string]int{"chrT": 6},
		counts: map[string][]uint64{
			"chrT": {
				0, 2, 0, 1, 0, 0,
				2, 0, 3, 0, 1, 0,
				0, 3, 0, 4, 0, 2,
				1, 0, 4, 0, 5, 0,
				0, 1, 0, 5, 0, 3,
				0, 0, 2, 0, 3, 0,
			},
		},
		weights: map[string][]float64{
			"chrT": {1.0, 1.1, 0.9, 1.2, 0.8, 1.05},
		},
	}
	insulation := &fakeInsulationSource{
		boundaries: map[string][]bool{
			"chrT": {false, false, true, false, false, false},
		},
	}

	out := t.TempDir()
	p := newTestPipeline(out, contacts, insulation)

	if err := p.EncodeAll(out); err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}

	meta, err := ReadMetadata(out)
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if meta.Resolution != 10000 || len(meta.ChrNames) != 1 || meta.ChrNames[0] != "chrT" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}

	decoded, err := p.DecodeChromosome(out, 0)
	if err != nil {
		t.Fatalf("DecodeChromosome: %v", err)
	}

	want := NewContactMatrix(6, contacts.counts["chrT"])
	if !matricesEqual(decoded, want) {
		t.Fatalf("decoded matrix does not match input:\ngot:  %v\nwant: %v", decoded, want)
	}
}

// TestPipelineAllZeroChromosome covers the boundary scenario where the
// entire contact matrix is zero: every row is masked out, leaving an empty
// working matrix, and decoding must restore the all-zero n×n shape exactly.
func TestPipelineAllZeroChromosome(t *testing.T) {
	n := 5
	contacts := &fakeContactSource{
		names:   []string{"chrZ"},
		n:       map[string]int{"chrZ": n},
		counts:  map[string][]uint64{"chrZ": make([]uint64, n*n)},
		weights: map[string][]float64{"chrZ": {1, 1, 1, 1, 1}},
	}
	insulation := &fakeInsulationSource{
		boundaries: map[string][]bool{"chrZ": make([]bool, n)},
	}

	out := t.TempDir()
	p := newTestPipeline(out, contacts, insulation)

	if err := p.EncodeAll(out); err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}
	decoded, err := p.DecodeChromosome(out, 0)
	if err != nil {
		t.Fatalf("DecodeChromosome: %v", err)
	}
	if decoded.N() != n {
		t.Fatalf("decoded.N() = %d, want %d", decoded.N(), n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if decoded.At(i, j) != 0 {
				t.Errorf("decoded[%d,%d] = %d, want 0", i, j, decoded.At(i, j))
			}
		}
	}
}

func TestPipelineCheckResultDetectsNothingWrongOnAHealthyRun(t *testing.T) {
	contacts := &fakeContactSource{
		names:   []string{"chrC"},
		n:       map[string]int{"chrC": 4},
		counts:  map[string][]uint64{"chrC": {0, 1, 0, 2, 1, 0, 3, 0, 0, 3, 0, 4, 2, 0, 4, 0}},
		weights: map[string][]float64{"chrC": {1, 1, 1, 1}},
	}
	insulation := &fakeInsulationSource{
		boundaries: map[string][]bool{"chrC": {false, false, false, false}},
	}

	out := t.TempDir()
	p := newTestPipeline(out, contacts, insulation)
	p.Config.CheckResult = true

	if err := p.EncodeAll(out); err != nil {
		t.Fatalf("EncodeAll with check_result enabled: %v", err)
	}
}

func TestPipelineEncodeChromosomeSkipsCompleteDirectory(t *testing.T) {
	contacts := &fakeContactSource{
		names:   []string{"chrS"},
		n:       map[string]int{"chrS": 3},
		counts:  map[string][]uint64{"chrS": {0, 1, 0, 1, 0, 2, 0, 2, 0}},
		weights: map[string][]float64{"chrS": {1, 1, 1}},
	}
	insulation := &fakeInsulationSource{
		boundaries: map[string][]bool{"chrS": {false, false, false}},
	}

	out := t.TempDir()
	p := newTestPipeline(out, contacts, insulation)
	if err := p.EncodeAll(out); err != nil {
		t.Fatalf("first EncodeAll: %v", err)
	}

	// A second run with a source holding no data for chrS must still
	// succeed, because the directory is already complete. An actual encode
	// would fail: the source's empty matrix disagrees with the three-entry
	// boundary vector.
	p2 := newTestPipeline(out, &fakeContactSource{names: []string{"chrS"}}, insulation)
	if err := p2.EncodeChromosome("chrS", 0, out); err != nil {
		t.Fatalf("EncodeChromosome on a complete directory should be a no-op, got: %v", err)
	}
}
