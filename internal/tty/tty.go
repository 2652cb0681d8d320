// Package tty adapts the host terminal to the machine's memory-mapped TTY
// device.
package tty

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNoTTY is returned if standard input is not a terminal. Raw mode and
// restoring terminal state only make sense on a real TTY; piped input
// still works, just without the mode switch.
var ErrNoTTY = errors.New("console: not a TTY")

// Console is a serial console for the machine, adapting host terminal I/O
// to the blocking reads and immediate writes the emulator's TTY device
// expects. Unlike a hardware teletype, there is no interrupt controller
// behind it; a read simply blocks the calling goroutine until a byte is
// available, matching the machine's single-threaded execution model.
type Console struct {
	in    *os.File
	out   io.Writer
	fd    int
	state *term.State
}

// NewConsole wraps sin/sout for use as a machine's TTY streams. If sin is
// a terminal, it is put into raw mode so keystrokes reach the machine
// unbuffered and unechoed; callers must call Restore to undo this. If sin
// is not a terminal (e.g. input is piped), NewConsole returns ErrNoTTY but
// the Console is still usable for reading/writing without raw mode.
func NewConsole(sin, sout *os.File) (*Console, error) {
	fd := int(sin.Fd())

	cons := &Console{fd: fd, in: sin, out: sout}

	if !term.IsTerminal(fd) {
		return cons, ErrNoTTY
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return cons, fmt.Errorf("%w: %w", ErrNoTTY, err)
	}

	cons.state = saved

	// Force byte-at-a-time reads: VMIN=1, VTIME=0. term.MakeRaw already
	// disables canonical mode; this pins the read granularity explicitly
	// rather than relying on the platform default.
	if err := cons.setTerminalParams(1, 0); err != nil {
		return cons, fmt.Errorf("%w: %w", ErrNoTTY, err)
	}

	return cons, nil
}

// setTerminalParams sets the termios VMIN/VTIME control characters via a
// raw ioctl, since neither golang.org/x/term nor the standard library
// exposes them directly.
func (c *Console) setTerminalParams(vmin, vtime byte) error {
	termIO, err := unix.IoctlGetTermios(c.fd, getTermiosIoctl)
	if err != nil {
		return err
	}

	termIO.Cc[unix.VMIN] = vmin
	termIO.Cc[unix.VTIME] = vtime

	return unix.IoctlSetTermios(c.fd, setTermiosIoctl, termIO)
}

// Read implements io.Reader, reading raw bytes from the console's input.
func (c *Console) Read(p []byte) (int, error) {
	return c.in.Read(p)
}

// Write implements io.Writer, writing to the console's output.
func (c *Console) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

// Restore returns the terminal to the state it was in before NewConsole.
// It is a no-op if the console was never put into raw mode.
func (c *Console) Restore() error {
	if c.state == nil {
		return nil
	}

	return term.Restore(c.fd, c.state)
}
