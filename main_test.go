package main_test

import (
	"bytes"
	"testing"

	"github.com/td12dk/td12dk/internal/asm"
	"github.com/td12dk/td12dk/internal/encoding"
	"github.com/td12dk/td12dk/internal/vm"
)

// TestPipeline_AssembleAndRun exercises the assembler and emulator together:
// assemble a program that writes two characters to the TTY device and check
// the bytes it receives.
func TestPipeline_AssembleAndRun(t *testing.T) {
	t.Parallel()

	const source = `
.0x000
liu 0x1C        ; MP = 0x700
lil 0x02        ; MP = 0x702, the TTY device's character sub-address
or D1, MP, ZR   ; stash the device address in D1

ldi 48          ; '0'
or D0, MP, ZR
or MP, D1, ZR
str D0

ldi 49          ; '1'
or D0, MP, ZR
or MP, D1, ZR
str D0

hlt
`

	prog, err := asm.Assemble("pipeline_test.asm", source)
	if err != nil {
		t.Fatalf("Assemble: %s", err)
	}

	rom := make(encoding.ROM, len(prog.Words))
	for i, w := range prog.Words {
		rom[i] = vm.Word(w)
	}

	data, err := rom.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %s", err)
	}

	var loaded encoding.ROM
	if err := loaded.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %s", err)
	}

	words := make([]vm.Word, len(loaded))
	for i, w := range loaded {
		words[i] = vm.Word(w)
	}

	var out bytes.Buffer
	tty := vm.NewTTY(vm.DeviceStart, bytes.NewReader(nil), &out)

	m, err := vm.NewLoader().Load(words, tty)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}

	if err := m.Run(); err != nil {
		t.Fatalf("Run: %s", err)
	}

	if !m.CPU.Halted {
		t.Error("machine did not halt")
	}

	if got := out.String(); got != "01" {
		t.Errorf("TTY output: got %q, want %q", got, "01")
	}
}
