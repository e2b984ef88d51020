package hic

import "testing"

func TestBitStreamWriteReadBool(t *testing.T) {
	bits := []bool{true, false, false, true, true, false, true, true, false}
	bs := NewBitStream()
	for _, b := range bits {
		bs.WriteBool(b)
	}
	if bs.LenBits() != len(bits) {
		t.Fatalf("LenBits: got %d, want %d", bs.LenBits(), len(bits))
	}

	read := NewBitStreamFromBytes(bs.DrainToBytes())
	for i, want := range bits {
		got, err := read.ReadBool()
		if err != nil {
			t.Fatalf("bit %d: %v", i, err)
		}
		if got != want {
			t.Errorf("bit %d: got %v, want %v", i, got, want)
		}
	}
}

func TestBitStreamWriteReadUint(t *testing.T) {
	tests := []struct {
		value uint64
		width int
	}{
		{0, 1},
		{1, 1},
		{5, 3},
		{255, 8},
		{12345, 16},
		{0xFFFFFFFF, 32},
	}

	bs := NewBitStream()
	for _, test := range tests {
		bs.WriteUint(test.value, test.width)
	}

	read := NewBitStreamFromBytes(bs.DrainToBytes())
	for i, test := range tests {
		got, err := read.ReadUint(test.width)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if got != test.value {
			t.Errorf("test %d: got %d, want %d", i, got, test.value)
		}
	}
}

func TestBitStreamWriteUintPanicsOnOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic writing a value that does not fit in the given width")
		}
	}()
	NewBitStream().WriteUint(8, 3)
}

func TestBitStreamReadPastEndIsIntegrityError(t *testing.T) {
	bs := NewBitStream()
	bs.WriteBool(true)
	read := NewBitStreamFromBytes(bs.DrainToBytes())
	read.readPos = read.bitLen
	_, err := read.ReadBool()
	if err == nil {
		t.Fatal("expected an error reading past the end of the stream")
	}
	if herr, ok := err.(*Error); !ok || herr.Kind != Integrity {
		t.Errorf("expected an Integrity error, got %v", err)
	}
}

func TestBitStreamAlignToByte(t *testing.T) {
	bs := NewBitStream()
	bs.WriteUint(0b101, 3)
	for bs.LenBits()%8 != 0 {
		bs.WriteBool(false)
	}
	bs.WriteUint(0xAB, 8)

	read := NewBitStreamFromBytes(bs.DrainToBytes())
	if _, err := read.ReadUint(3); err != nil {
		t.Fatal(err)
	}
	if err := read.AlignToByte(); err != nil {
		t.Fatal(err)
	}
	got, err := read.ReadUint(8)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xAB {
		t.Errorf("got %#x, want 0xAB", got)
	}
}
