// hic is the ENCODE/DECODE command line front end (§6.4) for the hic
// contact-matrix compressor.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/james-bowman/hic"
	"github.com/james-bowman/hic/codec"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "ENCODE":
		err = runEncode(os.Args[2:])
	case "DECODE":
		err = runDecode(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  %[1]s ENCODE [options] input_file resolution output_directory
  %[1]s DECODE [options] -input <dir> [-output <dir>]
`, os.Args[0])
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("ENCODE", flag.ExitOnError)
	insulationFile := fs.String("insulation_file", "", "insulation table TSV (required)")
	insulationWindow := fs.Int("insulation_window", 10, "insulation window size")
	insulationWindowMult := fs.Int("insulation_window_mult", 1, "insulation window multiplier (accepted for interface parity, has no effect)")
	weightsPrecision := fs.Int("weights_precision", 32, "balancing weights mantissa bits kept")
	domainMaskStatistic := fs.String("domain_mask_statistic", "deviation", "domain mask statistic: average, sparsity, or deviation")
	domainMaskThreshold := fs.Float64("domain_mask_threshold", 0, "domain mask threshold")
	domainValuesPrecision := fs.Int("domain_values_precision", 32, "domain-value mantissa bits kept")
	distanceTablePrecision := fs.Int("distance_table_precision", 32, "distance-table mantissa bits kept")
	balancing := fs.String("balancing", "KR", "balancing method name (informational; weights are supplied pre-balanced)")
	checkResult := fs.Bool("check_result", false, "decode each chromosome immediately after encoding it and verify equality")
	overwrite := fs.Bool("overwrite", false, "re-encode chromosome directories that already hold all eight output files")
	dryRun := fs.Bool("dry_run", false, "parse configuration and exit without writing output")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s ENCODE [options] input_file resolution output_directory\n\n", os.Args[0])
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	_ = insulationWindowMult

	if fs.NArg() != 3 {
		fs.Usage()
		os.Exit(2)
	}
	inputFile := fs.Arg(0)
	resolution, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return &hic.Error{Kind: hic.InvalidArgument, Message: "resolution must be an integer: " + fs.Arg(1)}
	}
	outputDir := fs.Arg(2)

	if *insulationFile == "" {
		return &hic.Error{Kind: hic.InvalidArgument, Message: "-insulation_file is required"}
	}

	contacts := codec.NewCSVContactSource(inputFile)
	insulation, err := codec.NewTSVInsulationSource(*insulationFile)
	if err != nil {
		return &hic.Error{Kind: hic.InputFormat, File: *insulationFile, Message: "load insulation table", Cause: err}
	}

	cfg := hic.DefaultConfig()
	cfg.WeightsPrecision = *weightsPrecision
	cfg.DomainMaskStatistic = *domainMaskStatistic
	cfg.DomainMaskThreshold = *domainMaskThreshold
	cfg.DomainValuesPrecision = *domainValuesPrecision
	cfg.DistanceTablePrecision = *distanceTablePrecision
	cfg.Balancing = *balancing
	cfg.CheckResult = *checkResult
	cfg.Overwrite = *overwrite
	cfg.DryRun = *dryRun

	p := &hic.Pipeline{
		Contacts:         contacts,
		Insulation:       insulation,
		Float:            codec.NewMantissaTruncateCodec(),
		Binary:           codec.NewRLEBitmapCodec(),
		Byte:             codec.NewZlibByteCodec(),
		InsulationWindow: *insulationWindow,
		Resolution:       resolution,
		Config:           cfg,
		Logger:           log.Default(),
	}
	return p.EncodeAll(outputDir)
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("DECODE", flag.ExitOnError)
	input := fs.String("input", "", "compressed directory to decode (required)")
	output := fs.String("output", "", "directory to write decoded CSV files into (optional)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s DECODE -input <dir> [-output <dir>]\n\n", os.Args[0])
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return &hic.Error{Kind: hic.InvalidArgument, Message: "-input is required"}
	}

	meta, err := hic.ReadMetadata(*input)
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.MkdirAll(*output, 0o755); err != nil {
			return &hic.Error{Kind: hic.IO, Message: "create output directory", Cause: err}
		}
	}

	p := &hic.Pipeline{
		Float:      codec.NewMantissaTruncateCodec(),
		Binary:     codec.NewRLEBitmapCodec(),
		Byte:       codec.NewZlibByteCodec(),
		Resolution: meta.Resolution,
		Config:     hic.DefaultConfig(),
		Logger:     log.Default(),
	}

	for i, name := range meta.ChrNames {
		m, err := p.DecodeChromosome(*input, i)
		if err != nil {
			return err
		}
		log.Printf("decoded chromosome=%s n=%d", name, m.N())
		if *output != "" {
			if err := writeContactCSV(*output, name, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeContactCSV writes the upper-triangle nonzero entries of m as
// "row,col,count" rows to <output>/<chromosome>.csv, the decode-side
// counterpart of codec.CSVContactSource's input format.
func writeContactCSV(output, chromosome string, m *hic.ContactMatrix) error {
	path := output + string(os.PathSeparator) + chromosome + ".csv"
	f, err := os.Create(path)
	if err != nil {
		return &hic.Error{Kind: hic.IO, Chromosome: chromosome, File: path, Message: "create CSV output", Cause: err}
	}
	defer f.Close()

	n := m.N()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if v := m.At(i, j); v != 0 {
				if _, err := fmt.Fprintf(f, "%d,%d,%d\n", i, j, v); err != nil {
					return &hic.Error{Kind: hic.IO, Chromosome: chromosome, File: path, Message: "write CSV row", Cause: err}
				}
			}
		}
	}
	return nil
}
