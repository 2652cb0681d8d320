// vm.go assembles the machine from its smaller parts and runs the
// cycle-stepped execution loop.
package vm

import "fmt"

// Machine is a computer simulated in software: a CPU, its memory, and the
// devices wired into the memory-mapped window.
type Machine struct {
	CPU *CPU
	Mem *Memory
}

// New assembles a machine from a ROM image and a set of devices. PC, SP and
// MP all start at zero; the ROM's own boot code (conventionally at address
// zero) is responsible for initializing the stack pointer and jumping to
// the entry point, per the code generator's prologue.
func New(rom []Word, devices ...Device) *Machine {
	mem := NewMemory(rom, devices...)

	return &Machine{
		CPU: NewCPU(mem),
		Mem: mem,
	}
}

func (m *Machine) String() string {
	return fmt.Sprintf(
		"PC: %s SP: %s MP: %s D0: %s D1: %s D2: %s D3: %s Z: %t N: %t HALT: %t",
		m.CPU.Regs.Get(PC), m.CPU.Regs.Get(SP), m.CPU.Regs.Get(MP),
		m.CPU.Regs.Get(D0), m.CPU.Regs.Get(D1), m.CPU.Regs.Get(D2), m.CPU.Regs.Get(D3),
		m.CPU.Flags.Zero, m.CPU.Flags.Negative, m.CPU.Halted,
	)
}

// Step executes exactly one instruction.
func (m *Machine) Step() error {
	return m.CPU.Step()
}

// Run steps the machine until it halts or a step fails, returning the
// error from the failing step, if any. Each call to step sees exactly the
// state left by the previous call; there is no ordering guarantee beyond
// that for any inter-step delay a caller chooses to insert by stepping
// directly instead of calling Run.
func (m *Machine) Run() error {
	for !m.CPU.Halted {
		if err := m.Step(); err != nil {
			return err
		}
	}

	return nil
}
