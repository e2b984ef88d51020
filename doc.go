/*
Package hic implements a lossless compressor for Hi-C chromosomal contact
matrices: large, symmetric, sparse integer tables recording pairwise contact
counts between genomic bins. Raw contact counts are extremely skewed and
strongly concentrated near the main diagonal, which makes them a poor fit for
general-purpose compressors applied directly to the dense matrix.

The package splits a per-chromosome matrix into independently-compressible
layers: a boolean mask of non-empty rows/columns, a float balancing-weight
vector, topologically-associating-domain boundaries, and a domain-aware
statistical model (§4 of the design) that the raw counts are reordered
against before a binary run-length encoder takes over. Each layer is handed
to an external byte/bitmap/float codec (see the codec sub-package) so the
final bytes on disk are produced by a general-purpose compressor operating
on a much more regular signal than the original matrix.

A handful of sparse matrix formats carried over from this package's prior
life as a general sparse linear algebra library remain in service: COO
holds a contact matrix's nonzero triplets, CSR backs zero-row detection
and dense materialisation, and DIA plus CSR's diagonal-multiply fast path
implement the balancing step as D⁻¹·C·D⁻¹. CSC and DOK are kept only for
format conversion. All of them implement the gonum/mat Matrix interface
and so interoperate with mat.Dense and the rest of gonum/mat.
*/
package hic
