package vm

import "testing"

func TestLoader_LoadBuildsRunnableMachine(t *testing.T) {
	t.Parallel()

	l := NewLoader()

	dev := newStubDevice(0x700, 0x700)
	dev.reads[0x700] = 0x042

	// liu 0x1C (MP = 0x700) ; lod D0 ; hlt
	m, err := l.Load([]Word{0x05C, 0x024, 0x001}, dev)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}

	if err := m.Run(); err != nil {
		t.Fatalf("Run: %s", err)
	}

	if got := m.CPU.Regs.Get(D0); got != 0x042 {
		t.Errorf("D0: got %s, want 0x042", got)
	}
}

func TestLoader_RejectsOversizedROM(t *testing.T) {
	t.Parallel()

	l := NewLoader()

	_, err := l.Load(make([]Word, romSize+1))
	if err == nil {
		t.Fatal("expected an error loading an oversized rom image, got nil")
	}
}
