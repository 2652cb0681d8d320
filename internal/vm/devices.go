package vm

// devices.go declares the memory-mapped device contract. Dispatch to a
// device is linear over the registered list and first-match-wins, per the
// inclusive-range contract; callers with many devices should switch to a
// sorted-by-start search rather than changing the contract itself.

// Device is an external peripheral mapped into the [0x700, 0x7FF] window.
// A device declares the inclusive address range it answers to and responds
// to reads and writes within it. The emulator never propagates a device's
// internal errors back to the CPU; a device that cannot make sense of an
// access absorbs it silently (returns zero on read, ignores the write).
type Device interface {
	// Range returns the inclusive [start, end] addresses this device owns.
	Range() (start, end Word)

	// Read returns the 12-bit value at addr.
	Read(addr Word) Word

	// Write stores a 12-bit value at addr.
	Write(addr Word, val Word)
}
