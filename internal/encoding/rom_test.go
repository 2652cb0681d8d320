package encoding

import (
	"encoding"
	"testing"

	"github.com/td12dk/td12dk/internal/vm"
)

var (
	_ encoding.BinaryMarshaler   = ROM(nil)
	_ encoding.BinaryUnmarshaler = (*ROM)(nil)
)

func TestPackUnpack_RoundTrip(t *testing.T) {
	t.Parallel()

	words := []vm.Word{0x000, 0xFFF, 0x800, 0x001, 0x7FE, 0x123}

	bytes := PackWords(words)
	if len(bytes) != 9 {
		t.Fatalf("PackWords: got %d bytes, want 9", len(bytes))
	}

	got := UnpackBytes(bytes)
	if len(got) != len(words) {
		t.Fatalf("UnpackBytes: got %d words, want %d", len(got), len(words))
	}

	for i, w := range words {
		if got[i] != w {
			t.Errorf("word %d: got %s, want %s", i, got[i], w)
		}
	}

	again := PackWords(got)
	if string(again) != string(bytes) {
		t.Errorf("pack(unpack(bytes)) != bytes: got % x, want % x", again, bytes)
	}
}

func TestPackUnpack_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := PackWords(nil); len(got) != 0 {
		t.Errorf("PackWords(nil): got %d bytes, want 0", len(got))
	}

	if got := UnpackBytes(nil); len(got) != 0 {
		t.Errorf("UnpackBytes(nil): got %d words, want 0", len(got))
	}
}

func TestROM_MarshalBinary_WrongSize(t *testing.T) {
	t.Parallel()

	short := ROM{0x001, 0x002}

	if _, err := short.MarshalBinary(); err == nil {
		t.Fatal("expected error marshaling a short ROM, got nil")
	}
}

func TestROM_MarshalUnmarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	rom := make(ROM, ROMWords)
	rom[0] = 0x001
	rom[1] = 0xFFF
	rom[ROMWords-1] = 0x7FE

	data, err := rom.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %s", err)
	}

	if len(data) != ROMBytes {
		t.Fatalf("MarshalBinary: got %d bytes, want %d", len(data), ROMBytes)
	}

	var got ROM
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %s", err)
	}

	if len(got) != ROMWords {
		t.Fatalf("UnmarshalBinary: got %d words, want %d", len(got), ROMWords)
	}

	for i := range rom {
		if got[i] != rom[i] {
			t.Fatalf("word %#o: got %s, want %s", i, got[i], rom[i])
		}
	}
}

func TestROM_UnmarshalBinary_ShortInputIsZeroPadded(t *testing.T) {
	t.Parallel()

	data := PackWords([]vm.Word{0x042, 0x123})

	var rom ROM
	if err := rom.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %s", err)
	}

	if len(rom) != ROMWords {
		t.Fatalf("got %d words, want %d", len(rom), ROMWords)
	}

	if rom[0] != 0x042 || rom[1] != 0x123 {
		t.Fatalf("leading words: got %s, %s", rom[0], rom[1])
	}

	for i := 2; i < ROMWords; i++ {
		if rom[i] != 0 {
			t.Fatalf("word %#o: got %s, want zero padding", i, rom[i])
		}
	}
}

func TestROM_UnmarshalBinary_Overflow(t *testing.T) {
	t.Parallel()

	var rom ROM
	if err := rom.UnmarshalBinary(make([]byte, ROMBytes+3)); err == nil {
		t.Fatal("expected error unmarshaling an oversized ROM image, got nil")
	}
}
