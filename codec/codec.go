// Package codec holds the external-collaborator adapters named in §6.3 of
// the Hi-C compression format: a lossy float codec, a lossless 2D binary
// codec, a lossless byte codec, and the two data sources (contact counts,
// insulation boundaries) a pipeline run is driven from. The Python tool
// this format was distilled from shells out to fpzip/JBIG/PPMd over
// tempfiles; these interfaces keep the same bytes-in/bytes-out contract so
// a real binding can replace the stand-ins in this package without
// touching the pipeline that calls them.
package codec

// FloatCodec is a lossy compressor for a flat array of float64 values at a
// configurable mantissa precision. Compress must be idempotent under
// repeated Decompress/Compress cycles: re-compressing what Decompress
// returns must reproduce the same bytes, since the pipeline re-decodes
// after compressing to keep encoder and decoder bit-identical.
type FloatCodec interface {
	Compress(values []float64, precisionBits int) ([]byte, error)
	Decompress(data []byte) ([]float64, error)
}

// BinaryCodec losslessly compresses a dense 2D boolean matrix, row-major.
// The encoded payload carries its own shape.
type BinaryCodec interface {
	Encode(rows, cols int, bits []bool) ([]byte, error)
	Decode(data []byte) (rows, cols int, bits []bool, err error)
}

// ByteCodec losslessly compresses an arbitrary byte stream. modelOrder
// mirrors the PPMd model-order parameter of the original tool; stand-in
// implementations may map it onto whatever compression-effort knob they
// expose.
type ByteCodec interface {
	Encode(data []byte, modelOrder int) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// ContactSource yields, per chromosome, the raw n×n contact counts
// (flattened row-major) and the balancing weights vector named for that
// chromosome.
type ContactSource interface {
	Chromosomes() []string
	Load(chromosome string) (n int, counts []uint64, weights []float64, err error)
}

// InsulationSource yields a per-bin "is domain boundary" vector for a
// chromosome at a requested window size. An unrecognised window is an
// InputFormat error at the call site, per §7.
type InsulationSource interface {
	Boundaries(chromosome string, window int) (isBoundary []bool, err error)
}
