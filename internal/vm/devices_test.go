package vm

import (
	"bytes"
	"strings"
	"testing"
)

type stubDevice struct {
	start, end Word
	reads      map[Word]Word
	writes     map[Word]Word
}

func newStubDevice(start, end Word) *stubDevice {
	return &stubDevice{start: start, end: end, reads: map[Word]Word{}, writes: map[Word]Word{}}
}

func (d *stubDevice) Range() (Word, Word) { return d.start, d.end }

func (d *stubDevice) Read(addr Word) Word { return d.reads[addr] }

func (d *stubDevice) Write(addr Word, val Word) { d.writes[addr] = val }

func TestMemory_DeviceDispatchFirstMatchWins(t *testing.T) {
	t.Parallel()

	first := newStubDevice(0x700, 0x701)
	first.reads[0x700] = 0x111

	second := newStubDevice(0x700, 0x702)
	second.reads[0x700] = 0x222

	mem := NewMemory(nil, first, second)

	got, err := mem.Load(0x700)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}

	if got != 0x111 {
		t.Errorf("got %s, want first device's value 0x111", got)
	}

	if err := mem.Store(0x702, 0x333); err != nil {
		t.Fatalf("Store: %s", err)
	}

	if second.writes[0x702] != 0x333 {
		t.Errorf("second device: got write %s, want 0x333", second.writes[0x702])
	}

	if _, ok := first.writes[0x702]; ok {
		t.Error("first device received a write outside its range")
	}
}

func TestMemory_UnmappedDeviceAddressReadsZero(t *testing.T) {
	t.Parallel()

	mem := NewMemory(nil)

	got, err := mem.Load(0x750)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}

	if got != 0 {
		t.Errorf("got %s, want 0", got)
	}

	if err := mem.Store(0x750, 0x123); err != nil {
		t.Errorf("Store: %s", err)
	}
}

func TestMemory_ROMWritesAreDropped(t *testing.T) {
	t.Parallel()

	mem := NewMemory([]Word{0x123})

	if err := mem.Store(0x000, 0x456); err != nil {
		t.Fatalf("Store: %s", err)
	}

	got, err := mem.Load(0x000)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}

	if got != 0x123 {
		t.Errorf("got %s, want unchanged 0x123", got)
	}
}

func TestMemory_ROMIsZeroPaddedWhenShort(t *testing.T) {
	t.Parallel()

	mem := NewMemory([]Word{0x001})

	got, err := mem.Load(ROMEnd)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}

	if got != 0 {
		t.Errorf("got %s, want 0", got)
	}
}

func TestTTY_WriteFormats(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	tty := NewTTY(0x700, strings.NewReader(""), &out)

	tty.Write(0x700, 0x0FF)
	tty.Write(0x701, 0xFFF) // -1 sign-extended
	tty.Write(0x702, Word('!'))

	if got, want := out.String(), "255-1!"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTTY_ReadBlocksOnCharSubAddress(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	tty := NewTTY(0x700, strings.NewReader("A"), &out)

	if got := tty.Read(0x702); got != Word('A') {
		t.Errorf("got %s, want 'A'", got)
	}

	if got := tty.Read(0x700); got != 0 {
		t.Errorf("decimal sub-address read: got %s, want 0", got)
	}
}

func TestTTY_ReadEOFReturnsZero(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	tty := NewTTY(0x700, strings.NewReader(""), &out)

	if got := tty.Read(0x702); got != 0 {
		t.Errorf("got %s, want 0 on EOF", got)
	}
}
