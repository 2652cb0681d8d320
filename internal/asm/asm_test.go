package asm_test

import (
	"strings"
	"testing"

	"github.com/td12dk/td12dk/internal/asm"
)

func TestAssemble_DeferredImmediate(t *testing.T) {
	src := "ldi 5\nldi :L\nL:\n"

	prog, err := asm.Assemble("test.asm", src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if prog.Words[0] != 0x085 {
		t.Errorf("word 0 = %#03x, want 0x085", prog.Words[0])
	}

	if prog.Words[1] != 0x082 {
		t.Errorf("word 1 = %#03x, want 0x082", prog.Words[1])
	}

	if prog.Labels["L"] != 2 {
		t.Errorf("label L = %#03x, want 0x002", prog.Labels["L"])
	}
}

func TestAssemble_NoOperandAndRegisterOps(t *testing.T) {
	src := "lod D1\nstr D2\nhlt\n"

	prog, err := asm.Assemble("test.asm", src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	// LOD field 4, reg D1 (index 5) => 0x020 | 5.
	if prog.Words[0] != 0x025 {
		t.Errorf("word 0 = %#03x, want 0x025", prog.Words[0])
	}

	// STR field 5, reg D2 (index 6) => 0x028 | 6.
	if prog.Words[1] != 0x02E {
		t.Errorf("word 1 = %#03x, want 0x02E", prog.Words[1])
	}

	if prog.Words[2] != 0x001 {
		t.Errorf("word 2 = %#03x, want 0x001 (HLT)", prog.Words[2])
	}
}

func TestAssemble_ALUOperandOrder(t *testing.T) {
	// ADD D1, D2, D3: dst=D1(5), a=D2(6), b=D3(7).
	prog, err := asm.Assemble("test.asm", "add D1, D2, D3\n")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	want := asm.Word(7)<<9 | asm.Word(7)<<6 | asm.Word(6)<<3 | asm.Word(5)
	if prog.Words[0] != want {
		t.Errorf("word 0 = %#03x, want %#03x", prog.Words[0], want)
	}
}

func TestAssemble_MemoryLocationDirective(t *testing.T) {
	src := ".0x010\nboot: hlt\n"

	prog, err := asm.Assemble("test.asm", src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if prog.Labels["boot"] != 0x010 {
		t.Errorf("label boot = %#03x, want 0x010", prog.Labels["boot"])
	}

	if prog.Words[0x010] != 0x001 {
		t.Errorf("word at 0x010 = %#03x, want 0x001 (HLT)", prog.Words[0x010])
	}
}

func TestAssemble_GapsFillWithNOP(t *testing.T) {
	src := ".0x005\nhlt\n"

	prog, err := asm.Assemble("test.asm", src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	for addr := 0; addr < 5; addr++ {
		if prog.Words[addr] != 0 {
			t.Errorf("word at %#03x = %#03x, want 0 (NOP)", addr, prog.Words[addr])
		}
	}
}

func TestAssemble_UnknownMnemonic(t *testing.T) {
	_, err := asm.Assemble("test.asm", "frobnicate D0\n")
	if err == nil {
		t.Fatal("expected an error")
	}

	if !strings.Contains(err.Error(), "InvalidInstruction") {
		t.Errorf("got %v, want an InvalidInstruction error", err)
	}
}

func TestAssemble_LabelRedeclared(t *testing.T) {
	_, err := asm.Assemble("test.asm", "L: hlt\nL: hlt\n")
	if err == nil {
		t.Fatal("expected an error")
	}

	if !strings.Contains(err.Error(), "LabelRedeclared") {
		t.Errorf("got %v, want a LabelRedeclared error", err)
	}
}

func TestAssemble_UnresolvedReference(t *testing.T) {
	_, err := asm.Assemble("test.asm", "ldi :nowhere\n")
	if err == nil {
		t.Fatal("expected an error")
	}

	if !strings.Contains(err.Error(), "UnresolvedReference") {
		t.Errorf("got %v, want an UnresolvedReference error", err)
	}
}

func TestAssemble_LabelListing(t *testing.T) {
	prog, err := asm.Assemble("test.asm", "A: hlt\nB: hlt\n")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	listing := prog.LabelListing()
	if !strings.Contains(listing, "0x000, A") || !strings.Contains(listing, "0x001, B") {
		t.Errorf("unexpected label listing:\n%s", listing)
	}
}
