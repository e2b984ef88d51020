package codec

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CSVContactSource is a reference ContactSource: one file per chromosome,
// "<chromosome>.csv", holding sparse "row,col,count" triplets (upper
// triangle only; the matrix is symmetrised on load), and one shared
// "weights.csv" holding "chromosome,bin,weight" rows. This stands in for
// the original tool's `.cool`-file reader (see
// _examples/original_source/hicmc/encode.py) with a format that needs no
// third-party `.cool` binding.
type CSVContactSource struct {
	Dir string
}

// NewCSVContactSource returns a source reading per-chromosome CSVs from dir.
func NewCSVContactSource(dir string) *CSVContactSource {
	return &CSVContactSource{Dir: dir}
}

// Chromosomes lists the chromosome names discoverable as "<name>.csv"
// files in Dir, excluding weights.csv.
func (s *CSVContactSource) Chromosomes() []string {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".csv") || name == "weights.csv" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".csv"))
	}
	return names
}

// Load reads <chromosome>.csv's triplets into a dense, symmetric n×n grid
// (n is one more than the largest row/col index seen) and the matching
// rows of weights.csv.
func (s *CSVContactSource) Load(chromosome string) (n int, counts []uint64, weights []float64, err error) {
	rows, err := readCSVRows(filepath.Join(s.Dir, chromosome+".csv"))
	if err != nil {
		return 0, nil, nil, err
	}

	type triplet struct {
		i, j int
		v    uint64
	}
	triplets := make([]triplet, 0, len(rows))
	maxIdx := -1
	for _, rec := range rows {
		if len(rec) != 3 {
			return 0, nil, nil, fmt.Errorf("codec: %s.csv: expected 3 fields, got %d", chromosome, len(rec))
		}
		i, err1 := strconv.Atoi(strings.TrimSpace(rec[0]))
		j, err2 := strconv.Atoi(strings.TrimSpace(rec[1]))
		v, err3 := strconv.ParseUint(strings.TrimSpace(rec[2]), 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, nil, nil, fmt.Errorf("codec: %s.csv: malformed row %v", chromosome, rec)
		}
		triplets = append(triplets, triplet{i, j, v})
		if i > maxIdx {
			maxIdx = i
		}
		if j > maxIdx {
			maxIdx = j
		}
	}
	n = maxIdx + 1
	counts = make([]uint64, n*n)
	for _, t := range triplets {
		counts[t.i*n+t.j] = t.v
		counts[t.j*n+t.i] = t.v
	}

	weights = make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	wrows, err := readCSVRows(filepath.Join(s.Dir, "weights.csv"))
	if err == nil {
		for _, rec := range wrows {
			if len(rec) != 3 || rec[0] != chromosome {
				continue
			}
			bin, err1 := strconv.Atoi(strings.TrimSpace(rec[1]))
			w, err2 := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
			if err1 == nil && err2 == nil && bin >= 0 && bin < n {
				weights[bin] = w
			}
		}
	}
	return n, counts, weights, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// TSVInsulationSource is a reference InsulationSource grounded on
// _examples/original_source/hicmc/domain.py's load_insulation_table /
// select_boundaries: a single tab-separated file with "chrom", "start",
// "end" columns plus one "is_boundary_<window>" column per supported
// window size.
type TSVInsulationSource struct {
	header  []string
	records [][]string
}

// NewTSVInsulationSource reads and indexes path once.
func NewTSVInsulationSource(path string) (*TSVInsulationSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("codec: %s: empty insulation table", path)
	}
	return &TSVInsulationSource{header: rows[0], records: rows[1:]}, nil
}

// Boundaries returns the is_boundary_<window> column for chromosome, in
// row order, or an InputFormat-worthy error if that window isn't a column
// of the table.
func (s *TSVInsulationSource) Boundaries(chromosome string, window int) ([]bool, error) {
	col := -1
	want := fmt.Sprintf("is_boundary_%d", window)
	chromCol := -1
	for i, name := range s.header {
		switch name {
		case want:
			col = i
		case "chrom":
			chromCol = i
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("codec: unrecognized insulation window %d", window)
	}
	if chromCol == -1 {
		return nil, fmt.Errorf("codec: insulation table missing chrom column")
	}

	var out []bool
	for _, rec := range s.records {
		if rec[chromCol] != chromosome {
			continue
		}
		out = append(out, strings.TrimSpace(strings.ToLower(rec[col])) == "true" || rec[col] == "1")
	}
	return out, nil
}
