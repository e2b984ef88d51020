package hic

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/james-bowman/hic/codec"
)

// chromosomeFiles lists the eight files §6.1 requires for a chromosome
// directory to be considered complete.
var chromosomeFiles = []string{
	"mask.bin",
	"weights.fpzip",
	"boundaries.bin",
	"domain-mask.jbig",
	"domain-values.fpizp",
	"distance-table.fpizp",
	"contact-mask.jbig",
	"contact-data.ppmd",
}

// Metadata is chr_names.json (§6.2).
type Metadata struct {
	Resolution int      `json:"res"`
	ChrNames   []string `json:"chr_names"`
}

// Pipeline runs the per-chromosome encode/decode sequence of §4.12 over a
// single set of external collaborators (§6.3), single-threaded and with no
// shared state between chromosomes — independent chromosomes may be driven
// concurrently by the caller (§5) by constructing one Pipeline value per
// goroutine or sharing the (stateless) collaborators across goroutines.
type Pipeline struct {
	Contacts   codec.ContactSource
	Insulation codec.InsulationSource
	Float      codec.FloatCodec
	Binary     codec.BinaryCodec
	Byte       codec.ByteCodec

	InsulationWindow int
	Resolution       int
	Config           Config

	Logger *log.Logger
}

func (p *Pipeline) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}

// chromosomeDir is the §6.1 "NN-NN" per-chromosome directory name.
func chromosomeDir(out string, index int) string {
	return filepath.Join(out, fmt.Sprintf("%02d-%02d", index, index))
}

func directoryComplete(dir string) bool {
	for _, f := range chromosomeFiles {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			return false
		}
	}
	return true
}

func writeFile(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &Error{Kind: IO, File: path, Message: "write output file", Cause: err}
	}
	return nil
}

func readFile(dir, name string) ([]byte, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: IO, File: path, Message: "read expected output file", Cause: err}
	}
	return data, nil
}

func denseToBools(m *mat.Dense) []bool {
	rows, cols := m.Dims()
	out := make([]bool, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[r*cols+c] = m.At(r, c) != 0
		}
	}
	return out
}

func boolsToDense(rows, cols int, bits []bool) *mat.Dense {
	data := make([]float64, rows*cols)
	for i, b := range bits {
		if b {
			data[i] = 1
		}
	}
	return mat.NewDense(rows, cols, data)
}

// WriteMetadata writes chr_names.json under out (§6.2).
func WriteMetadata(out string, meta Metadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return &Error{Kind: IO, Message: "marshal chr_names.json", Cause: err}
	}
	if err := os.WriteFile(filepath.Join(out, "chr_names.json"), data, 0o644); err != nil {
		return &Error{Kind: IO, File: filepath.Join(out, "chr_names.json"), Message: "write chr_names.json", Cause: err}
	}
	return nil
}

// ReadMetadata reads chr_names.json under dir.
func ReadMetadata(dir string) (Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, "chr_names.json"))
	if err != nil {
		return Metadata{}, &Error{Kind: IO, File: filepath.Join(dir, "chr_names.json"), Message: "read chr_names.json", Cause: err}
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, &Error{Kind: InputFormat, Message: "parse chr_names.json", Cause: err}
	}
	return meta, nil
}

// EncodeAll writes chr_names.json and then encodes every chromosome the
// ContactSource names, in order.
func (p *Pipeline) EncodeAll(out string) error {
	if p.Config.DryRun {
		return nil
	}
	chroms := p.Contacts.Chromosomes()
	if err := os.MkdirAll(out, 0o755); err != nil {
		return &Error{Kind: IO, Message: "create output directory", Cause: err}
	}
	if err := WriteMetadata(out, Metadata{Resolution: p.Resolution, ChrNames: chroms}); err != nil {
		return err
	}
	for i, name := range chroms {
		if err := p.EncodeChromosome(name, i, out); err != nil {
			p.logger().Printf("%s chromosome=%s: %v", err.(*Error).Kind, name, err)
			return err
		}
	}
	return nil
}

// EncodeChromosome runs the forward half of §4.12 for a single chromosome,
// writing the eight files of §6.1 into its NN-NN directory. A directory
// already holding all eight files is treated as complete and skipped,
// unless Config.Overwrite is set.
func (p *Pipeline) EncodeChromosome(name string, index int, out string) error {
	dir := chromosomeDir(out, index)
	if !p.Config.Overwrite && directoryComplete(dir) {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{Kind: IO, Chromosome: name, Message: "create chromosome directory", Cause: err}
	}

	n, rawCounts, rawWeights, err := p.Contacts.Load(name)
	if err != nil {
		return &Error{Kind: InputFormat, Chromosome: name, Message: "load contact matrix", Cause: err}
	}
	c := NewContactMatrix(n, rawCounts)

	boundaryBits, err := p.Insulation.Boundaries(name, p.InsulationWindow)
	if err != nil {
		return &Error{Kind: InputFormat, Chromosome: name, Message: "load insulation boundaries", Cause: err}
	}
	if len(boundaryBits) != n {
		return &Error{Kind: InputFormat, Chromosome: name, Message: fmt.Sprintf("boundary vector length %d does not match %d bins", len(boundaryBits), n)}
	}

	mask := ComputeRowMask(c)
	masked := ApplyMask(c, mask)
	weights := ApplyMaskVector(Weights(rawWeights), mask).Sanitize()
	keptBoundaryBits := ApplyMaskBools(boundaryBits, mask)
	boundaries := BoundariesFromBits(boolsToBinaryVec(keptBoundaryBits))

	if err := writeFile(dir, "mask.bin", EncodeBinArray(mask.Bools(), true)); err != nil {
		return err
	}

	weightBytes, err := p.Float.Compress(weights, p.Config.WeightsPrecision)
	if err != nil {
		return &Error{Kind: ExternalTool, Chromosome: name, File: "weights.fpzip", Message: "compress weights", Cause: err}
	}
	reloadedWeights, err := p.Float.Decompress(weightBytes)
	if err != nil {
		return &Error{Kind: ExternalTool, Chromosome: name, File: "weights.fpzip", Message: "reload weights", Cause: err}
	}
	weights = Weights(reloadedWeights).Sanitize()
	if err := writeFile(dir, "weights.fpzip", weightBytes); err != nil {
		return err
	}

	if err := writeFile(dir, "boundaries.bin", EncodeBinArray(keptBoundaryBits, true)); err != nil {
		return err
	}

	statFn, err := statisticByName(p.Config.DomainMaskStatistic)
	if err != nil {
		return err
	}

	balanced := Balance(masked, weights)
	s := MapDomains(balanced, boundaries, statFn)
	domainMask := NewDomainMask(len(boundaries) + 1)
	for pp := 0; pp < domainMask.D(); pp++ {
		for qq := pp; qq < domainMask.D(); qq++ {
			domainMask.Set(pp, qq, s.At(pp, qq) > p.Config.DomainMaskThreshold)
		}
	}

	relaidDomainMask := RelayoutForward(domainMask.Dense())
	dmRows, dmCols := relaidDomainMask.Dims()
	domainMaskBytes, err := p.Binary.Encode(dmRows, dmCols, denseToBools(relaidDomainMask))
	if err != nil {
		return &Error{Kind: ExternalTool, Chromosome: name, File: "domain-mask.jbig", Message: "encode domain mask", Cause: err}
	}
	if err := writeFile(dir, "domain-mask.jbig", domainMaskBytes); err != nil {
		return err
	}

	g := GenDistMat(masked.N())
	vFlat, tFlat := Build(balanced, g, boundaries, statFn, domainMask)

	domainValuesBytes, err := p.Float.Compress(vFlat, p.Config.DomainValuesPrecision)
	if err != nil {
		return &Error{Kind: ExternalTool, Chromosome: name, File: "domain-values.fpizp", Message: "compress domain values", Cause: err}
	}
	vFlat, err = p.Float.Decompress(domainValuesBytes)
	if err != nil {
		return &Error{Kind: ExternalTool, Chromosome: name, File: "domain-values.fpizp", Message: "reload domain values", Cause: err}
	}
	if err := writeFile(dir, "domain-values.fpizp", domainValuesBytes); err != nil {
		return err
	}

	distanceTableBytes, err := p.Float.Compress(tFlat, p.Config.DistanceTablePrecision)
	if err != nil {
		return &Error{Kind: ExternalTool, Chromosome: name, File: "distance-table.fpizp", Message: "compress distance table", Cause: err}
	}
	tFlat, err = p.Float.Decompress(distanceTableBytes)
	if err != nil {
		return &Error{Kind: ExternalTool, Chromosome: name, File: "distance-table.fpizp", Message: "reload distance table", Cause: err}
	}
	if err := writeFile(dir, "distance-table.fpizp", distanceTableBytes); err != nil {
		return err
	}

	cHat := Reconstruct(g, boundaries, domainMask, vFlat, tFlat)
	unbalanced := Unbalance(cHat, weights)

	y := ArgSortForward(masked, unbalanced.At)
	contactMask, contactValues := Split(y)

	cmRows := keptRows(masked.N())
	contactMaskBytes, err := p.Binary.Encode(cmRows, masked.N(), contactMask.Bools())
	if err != nil {
		return &Error{Kind: ExternalTool, Chromosome: name, File: "contact-mask.jbig", Message: "encode contact mask", Cause: err}
	}
	if err := writeFile(dir, "contact-mask.jbig", contactMaskBytes); err != nil {
		return err
	}

	bytesPerValue := contactValues.Dtype().Bytes()
	contactDataBytes, err := p.Byte.Encode(encodeTaggedInts(contactValues), 2*bytesPerValue)
	if err != nil {
		return &Error{Kind: ExternalTool, Chromosome: name, File: "contact-data.ppmd", Message: "encode contact data", Cause: err}
	}
	if err := writeFile(dir, "contact-data.ppmd", contactDataBytes); err != nil {
		return err
	}

	if p.Config.CheckResult {
		decoded, err := p.decodeDir(dir)
		if err != nil {
			return &Error{Kind: Integrity, Chromosome: name, Message: "check_result: decode failed", Cause: err}
		}
		if !matricesEqual(decoded, c) {
			return &Error{Kind: Integrity, Chromosome: name, Message: "check_result: decoded matrix disagrees with original"}
		}
	}
	return nil
}

// DecodeChromosome inverts EncodeChromosome for the chromosome at out's
// index-th "NN-NN" directory.
func (p *Pipeline) DecodeChromosome(out string, index int) (*ContactMatrix, error) {
	return p.decodeDir(chromosomeDir(out, index))
}

func (p *Pipeline) decodeDir(dir string) (*ContactMatrix, error) {
	maskBytes, err := readFile(dir, "mask.bin")
	if err != nil {
		return nil, err
	}
	maskBools, err := DecodeBinArray(maskBytes)
	if err != nil {
		return nil, err
	}
	mask := MaskFromBools(maskBools)

	weightBytes, err := readFile(dir, "weights.fpzip")
	if err != nil {
		return nil, err
	}
	weights, err := p.Float.Decompress(weightBytes)
	if err != nil {
		return nil, &Error{Kind: ExternalTool, File: "weights.fpzip", Message: "decompress weights", Cause: err}
	}
	weightsVec := Weights(weights).Sanitize()

	boundaryBytes, err := readFile(dir, "boundaries.bin")
	if err != nil {
		return nil, err
	}
	boundaryBools, err := DecodeBinArray(boundaryBytes)
	if err != nil {
		return nil, err
	}
	boundaries := BoundariesFromBits(boolsToBinaryVec(boundaryBools))

	domainMaskBytes, err := readFile(dir, "domain-mask.jbig")
	if err != nil {
		return nil, err
	}
	dmRows, dmCols, dmBits, err := p.Binary.Decode(domainMaskBytes)
	if err != nil {
		return nil, &Error{Kind: ExternalTool, File: "domain-mask.jbig", Message: "decode domain mask", Cause: err}
	}
	d := len(boundaries) + 1
	domainMask := domainMaskFromRelaid(boolsToDense(dmRows, dmCols, dmBits), d)

	domainValuesBytes, err := readFile(dir, "domain-values.fpizp")
	if err != nil {
		return nil, err
	}
	vFlat, err := p.Float.Decompress(domainValuesBytes)
	if err != nil {
		return nil, &Error{Kind: ExternalTool, File: "domain-values.fpizp", Message: "decompress domain values", Cause: err}
	}

	distanceTableBytes, err := readFile(dir, "distance-table.fpizp")
	if err != nil {
		return nil, err
	}
	tFlat, err := p.Float.Decompress(distanceTableBytes)
	if err != nil {
		return nil, &Error{Kind: ExternalTool, File: "distance-table.fpizp", Message: "decompress distance table", Cause: err}
	}

	n := len(weightsVec)
	g := GenDistMat(n)
	cHat := Reconstruct(g, boundaries, domainMask, vFlat, tFlat)
	unbalanced := Unbalance(cHat, weightsVec)

	contactMaskBytes, err := readFile(dir, "contact-mask.jbig")
	if err != nil {
		return nil, err
	}
	cmRows, cmCols, cmBits, err := p.Binary.Decode(contactMaskBytes)
	if err != nil {
		return nil, &Error{Kind: ExternalTool, File: "contact-mask.jbig", Message: "decode contact mask", Cause: err}
	}
	if cmCols != n || cmRows != keptRows(n) {
		return nil, &Error{Kind: Integrity, File: "contact-mask.jbig", Message: "contact mask shape disagrees with weights length"}
	}
	contactMask := MaskFromBools(cmBits)

	contactDataBytes, err := readFile(dir, "contact-data.ppmd")
	if err != nil {
		return nil, err
	}
	rawValueBytes, err := p.Byte.Decode(contactDataBytes)
	if err != nil {
		return nil, &Error{Kind: ExternalTool, File: "contact-data.ppmd", Message: "decode contact data", Cause: err}
	}
	contactValues, err := decodeTaggedInts(rawValueBytes)
	if err != nil {
		return nil, err
	}

	y := Unsplit(contactMask, contactValues)
	x := ArgSortInverse(y, unbalanced.At, n)

	reduced := NewContactMatrix(n, x.Uint64s())
	return UnmaskMatrix(reduced, mask), nil
}

// boolsToBinaryVec widens a []bool into a *BinaryVec, the bit-packed
// storage BoundariesFromBits expects.
func boolsToBinaryVec(bs []bool) *BinaryVec {
	v := NewBinaryVec(len(bs))
	for i, b := range bs {
		if b {
			v.SetBit(i)
		}
	}
	return v
}

// domainMaskFromRelaid inverts RelayoutForward(m.Dense()) back to a
// DomainMask, the decode-side counterpart of the encode path's
// RelayoutForward(domainMask.Dense()).
func domainMaskFromRelaid(relaid *mat.Dense, d int) *DomainMask {
	dense := RelayoutInverse(relaid, d)
	m := NewDomainMask(d)
	for p := 0; p < d; p++ {
		for q := p; q < d; q++ {
			m.Set(p, q, dense.At(p, q) != 0)
		}
	}
	return m
}

func matricesEqual(a, b *ContactMatrix) bool {
	if a.N() != b.N() {
		return false
	}
	n := a.N()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if a.At(i, j) != b.At(i, j) {
				return false
			}
		}
	}
	return true
}
