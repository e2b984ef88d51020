package codec

import (
	"bytes"
	"testing"
)

func TestZlibByteCodecRoundTrip(t *testing.T) {
	tests := [][]byte{
		{},
		[]byte("a"),
		[]byte("hello, hic!"),
		bytes.Repeat([]byte{0x42}, 4096),
	}
	c := NewZlibByteCodec()
	for i, data := range tests {
		for _, modelOrder := range []int{0, 2, 8, 16, 100} {
			payload, err := c.Encode(data, modelOrder)
			if err != nil {
				t.Fatalf("test %d modelOrder=%d: Encode: %v", i, modelOrder, err)
			}
			got, err := c.Decode(payload)
			if err != nil {
				t.Fatalf("test %d modelOrder=%d: Decode: %v", i, modelOrder, err)
			}
			if !bytes.Equal(got, data) {
				t.Errorf("test %d modelOrder=%d: round trip mismatch: got %v, want %v", i, modelOrder, got, data)
			}
		}
	}
}

func TestModelOrderToLevelClamps(t *testing.T) {
	tests := []struct{ order, want int }{
		{0, 1}, {2, 1}, {16, 9}, {100, 9}, {-5, 1},
	}
	for _, test := range tests {
		if got := modelOrderToLevel(test.order); got != test.want {
			t.Errorf("modelOrderToLevel(%d) = %d, want %d", test.order, got, test.want)
		}
	}
}

func TestZlibByteCodecDecodeRejectsGarbage(t *testing.T) {
	c := NewZlibByteCodec()
	if _, err := c.Decode([]byte{1, 2, 3, 4}); err == nil {
		t.Fatal("expected an error decoding a non-zlib payload")
	}
}
