package vm

import (
	"errors"
	"testing"
)

func newTestCPU(rom ...Word) *CPU {
	return NewCPU(NewMemory(rom))
}

func TestCPU_AddOverflowWraps(t *testing.T) {
	t.Parallel()

	// add D0, D0, D0; D0 starts at 0xFFF and wraps to 0xFFE.
	cpu := newTestCPU(0xF24)
	cpu.Regs.Set(D0, 0xFFF)

	if err := cpu.Step(); err != nil {
		t.Fatalf("Step: %s", err)
	}

	if got := cpu.Regs.Get(D0); got != 0xFFE {
		t.Errorf("D0: got %s, want 0xffe", got)
	}

	if !cpu.Flags.Negative {
		t.Error("Negative flag: got false, want true")
	}

	if cpu.Flags.Zero {
		t.Error("Zero flag: got true, want false")
	}

	if cpu.Regs.Get(PC) != 1 {
		t.Errorf("PC: got %s, want 0x001", cpu.Regs.Get(PC))
	}
}

func TestCPU_HaltStopsExecution(t *testing.T) {
	t.Parallel()

	cpu := newTestCPU(0x001)

	if err := cpu.Step(); err != nil {
		t.Fatalf("Step: %s", err)
	}

	if !cpu.Halted {
		t.Error("Halted: got false, want true")
	}
}

func TestCPU_ZeroRegisterDiscardsWrites(t *testing.T) {
	t.Parallel()

	cpu := newTestCPU()
	cpu.Regs.Set(ZR, 0x123)

	if got := cpu.Regs.Get(ZR); got != 0 {
		t.Errorf("ZR: got %s, want 0", got)
	}
}

func TestCPU_LoadImmediate(t *testing.T) {
	t.Parallel()

	// liu 0x3F sets MP = 0x3F << 6 = 0xFC0; lil 0x2A then ORs in the low
	// six bits, giving 0xFEA.
	cpu := newTestCPU(0x07F, 0x0EA)

	if err := cpu.Step(); err != nil {
		t.Fatalf("Step 1: %s", err)
	}

	if got := cpu.Regs.Get(MP); got != 0xFC0 {
		t.Fatalf("after liu: MP = %s, want 0xfc0", got)
	}

	if err := cpu.Step(); err != nil {
		t.Fatalf("Step 2: %s", err)
	}

	if got := cpu.Regs.Get(MP); got != 0xFEA {
		t.Errorf("after lil: MP = %s, want 0xfea", got)
	}
}

func TestCPU_LoadStore(t *testing.T) {
	t.Parallel()

	// liu 0x20 ; lil 5 ; lod D1 ; liu 0x20 ; lil 6 ; str D1
	cpu := newTestCPU(0x060, 0x0C5, 0x025, 0x060, 0x0C6, 0x02D)
	cpu.Mem.Store(RAMStart+5, 0x321)

	for i := 0; i < 6; i++ {
		if err := cpu.Step(); err != nil {
			t.Fatalf("Step %d: %s", i, err)
		}
	}

	got, err := cpu.Mem.Load(RAMStart + 6)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}

	if got != 0x321 {
		t.Errorf("mem[0x806]: got %s, want 0x321", got)
	}
}

func TestCPU_PushPopNoAutoAdjust(t *testing.T) {
	t.Parallel()

	// psh D0 does not touch SP; pop D1 reads the same address again.
	cpu := newTestCPU(0x03C, 0x035)
	cpu.Regs.Set(SP, RAMStart)
	cpu.Regs.Set(D0, 0x555)

	for i := 0; i < 2; i++ {
		if err := cpu.Step(); err != nil {
			t.Fatalf("Step %d: %s", i, err)
		}
	}

	if got := cpu.Regs.Get(SP); got != RAMStart {
		t.Errorf("SP: got %s, want unchanged %s", got, Word(RAMStart))
	}

	if got := cpu.Regs.Get(D1); got != 0x555 {
		t.Errorf("D1: got %s, want 0x555", got)
	}
}

func TestCPU_BranchTakenStillAdvancesPC(t *testing.T) {
	t.Parallel()

	// ldi 0 puts 0 in MP; with the zero flag set, bnz is taken and sets
	// PC to MP (0), and Step's +1 still applies afterward.
	cpu := newTestCPU(0x080, 0x002) // ldi 0 ; bnz
	cpu.Flags.Zero = true

	for i := 0; i < 2; i++ {
		if err := cpu.Step(); err != nil {
			t.Fatalf("Step %d: %s", i, err)
		}
	}

	if got := cpu.Regs.Get(PC); got != 1 {
		t.Errorf("PC: got %s, want 0x001 (MP=0, then +1)", got)
	}
}

func TestCPU_UndefinedEncodingIsDecodeError(t *testing.T) {
	t.Parallel()

	cpu := newTestCPU(0x006)

	err := cpu.Step()
	if err == nil {
		t.Fatal("expected decode error, got nil")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("got %T, want *DecodeError", err)
	}

	if !errors.Is(err, ErrDecode) {
		t.Error("errors.Is(err, ErrDecode): got false, want true")
	}
}

func TestCPU_ShiftsAndIncDec(t *testing.T) {
	t.Parallel()

	// lsh D1, D0 ; rsh D2, D0 ; inc D3, D0 ; dec D0, D0
	cpu := newTestCPU(0x125, 0x166, 0x1A7, 0x1E4)
	cpu.Regs.Set(D0, 0x004)

	for i := 0; i < 4; i++ {
		if err := cpu.Step(); err != nil {
			t.Fatalf("Step %d: %s", i, err)
		}
	}

	if got := cpu.Regs.Get(D1); got != 0x008 {
		t.Errorf("D1 (lsh): got %s, want 0x008", got)
	}

	if got := cpu.Regs.Get(D2); got != 0x002 {
		t.Errorf("D2 (rsh): got %s, want 0x002", got)
	}

	if got := cpu.Regs.Get(D3); got != 0x005 {
		t.Errorf("D3 (inc): got %s, want 0x005", got)
	}

	if got := cpu.Regs.Get(D0); got != 0x003 {
		t.Errorf("D0 (dec): got %s, want 0x003", got)
	}
}
