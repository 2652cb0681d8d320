package vm

import "testing"

func TestMachine_RunHaltsOnHLT(t *testing.T) {
	t.Parallel()

	// ldi 3 ; ldi 4 ; add D0, ZR, ZR ; hlt
	m := New([]Word{0x083, 0x084, 0xE04, 0x001})

	if err := m.Run(); err != nil {
		t.Fatalf("Run: %s", err)
	}

	if !m.CPU.Halted {
		t.Error("Halted: got false, want true")
	}

	if got := m.CPU.Regs.Get(PC); got != 4 {
		t.Errorf("PC: got %s, want 0x004", got)
	}
}

func TestMachine_RunPropagatesDecodeError(t *testing.T) {
	t.Parallel()

	m := New([]Word{0x006})

	if err := m.Run(); err == nil {
		t.Fatal("expected decode error from Run, got nil")
	}
}

func TestMachine_String(t *testing.T) {
	t.Parallel()

	m := New([]Word{0x001})

	if s := m.String(); s == "" {
		t.Error("String: got empty string")
	}
}

func TestMachine_StepIsIncremental(t *testing.T) {
	t.Parallel()

	m := New([]Word{0x083, 0x001})

	if err := m.Step(); err != nil {
		t.Fatalf("Step 1: %s", err)
	}

	if m.CPU.Halted {
		t.Fatal("Halted after first step, want still running")
	}

	if err := m.Step(); err != nil {
		t.Fatalf("Step 2: %s", err)
	}

	if !m.CPU.Halted {
		t.Error("Halted: got false after hlt, want true")
	}
}
