package codec

import (
	"math"
	"testing"
)

func TestMantissaTruncateCodecRoundTrip(t *testing.T) {
	c := NewMantissaTruncateCodec()
	values := []float64{0, 1.5, -2.25, 3.14159265358979, 1e10, -1e-10}

	for _, precision := range []int{0, 8, 23, 52} {
		payload, err := c.Compress(values, precision)
		if err != nil {
			t.Fatalf("precision=%d: Compress: %v", precision, err)
		}
		got, err := c.Decompress(payload)
		if err != nil {
			t.Fatalf("precision=%d: Decompress: %v", precision, err)
		}
		if len(got) != len(values) {
			t.Fatalf("precision=%d: got %d values, want %d", precision, len(got), len(values))
		}
	}
}

func TestMantissaTruncateCodecIsIdempotentAfterDecompress(t *testing.T) {
	c := NewMantissaTruncateCodec()
	values := []float64{1.23456789, -9.87654321, 42.0}
	precision := 10

	payload, err := c.Compress(values, precision)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	decoded, err := c.Decompress(payload)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}

	payload2, err := c.Compress(decoded, precision)
	if err != nil {
		t.Fatalf("Compress (2nd pass): %v", err)
	}
	decoded2, err := c.Decompress(payload2)
	if err != nil {
		t.Fatalf("Decompress (2nd pass): %v", err)
	}

	for i := range decoded {
		if decoded[i] != decoded2[i] {
			t.Errorf("re-compressing a decoded array changed value %d: %v -> %v", i, decoded[i], decoded2[i])
		}
	}
}

func TestTruncateMantissaZeroesLowBits(t *testing.T) {
	v := math.Pi
	got := truncateMantissa(v, 4)
	bits := math.Float64bits(got)
	if bits&((1<<48)-1) != 0 {
		t.Errorf("expected the low 48 mantissa bits to be zero, got bits=%064b", bits)
	}
}

func TestTruncateMantissaPassesThroughOutOfRangePrecision(t *testing.T) {
	v := 123.456
	if got := truncateMantissa(v, 52); got != v {
		t.Errorf("truncateMantissa(v, 52) = %v, want %v", got, v)
	}
	if got := truncateMantissa(v, -1); got != v {
		t.Errorf("truncateMantissa(v, -1) = %v, want %v", got, v)
	}
}

func TestDecompressRejectsShortPayload(t *testing.T) {
	c := NewMantissaTruncateCodec()
	if _, err := c.Decompress([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected an error for a too-short payload")
	}
}

func TestDecompressRejectsMisalignedPayload(t *testing.T) {
	c := NewMantissaTruncateCodec()
	payload := make([]byte, 4+3)
	if _, err := c.Decompress(payload); err == nil {
		t.Fatal("expected an error for a payload not a multiple of 8 bytes")
	}
}
