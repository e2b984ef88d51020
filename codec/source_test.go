package codec

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestCSVContactSourceLoad(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "chr1.csv", "0,1,2\n1,2,3\n0,3,1\n")
	writeTestFile(t, dir, "weights.csv", "chr1,0,1.2\nchr1,1,0.8\nchr2,0,9.9\n")

	src := NewCSVContactSource(dir)
	n, counts, weights, err := src.Load("chr1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n != 4 {
		t.Fatalf("n = %d, want 4", n)
	}
	if counts[0*n+1] != 2 || counts[1*n+0] != 2 {
		t.Errorf("expected counts[0,1]=counts[1,0]=2, got %d, %d", counts[0*n+1], counts[1*n+0])
	}
	if counts[1*n+2] != 3 || counts[2*n+1] != 3 {
		t.Errorf("expected counts[1,2]=counts[2,1]=3, got %d, %d", counts[1*n+2], counts[2*n+1])
	}
	if weights[0] != 1.2 || weights[1] != 0.8 {
		t.Errorf("expected weights[0]=1.2 weights[1]=0.8, got %v", weights)
	}
	if weights[2] != 1 || weights[3] != 1 {
		t.Errorf("expected default weight 1 for unlisted bins, got %v", weights)
	}
}

func TestCSVContactSourceChromosomes(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "chr1.csv", "0,1,1\n")
	writeTestFile(t, dir, "chr2.csv", "0,1,1\n")
	writeTestFile(t, dir, "weights.csv", "chr1,0,1\n")

	names := NewCSVContactSource(dir).Chromosomes()
	if len(names) != 2 {
		t.Fatalf("Chromosomes() = %v, want 2 entries (weights.csv excluded)", names)
	}
}

func TestCSVContactSourceRejectsMalformedRow(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "chr1.csv", "0,1\n")
	_, _, _, err := NewCSVContactSource(dir).Load("chr1")
	if err == nil {
		t.Fatal("expected an error for a row with the wrong field count")
	}
}

func TestTSVInsulationSourceBoundaries(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "insulation.tsv",
		"chrom\tstart\tend\tis_boundary_50000\tis_boundary_100000\n"+
			"chr1\t0\t50000\ttrue\tfalse\n"+
			"chr1\t50000\t100000\tfalse\ttrue\n"+
			"chr2\t0\t50000\ttrue\ttrue\n")

	src, err := NewTSVInsulationSource(path)
	if err != nil {
		t.Fatalf("NewTSVInsulationSource: %v", err)
	}

	got, err := src.Boundaries("chr1", 50000)
	if err != nil {
		t.Fatalf("Boundaries: %v", err)
	}
	want := []bool{true, false}
	if len(got) != len(want) {
		t.Fatalf("Boundaries() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Boundaries()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := src.Boundaries("chr1", 999); err == nil {
		t.Error("expected an error for an unrecognised window size")
	}
}
