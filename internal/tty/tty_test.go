// Package tty_test exercises the console's non-terminal fallback path.
//
// Raw-mode behavior itself needs a real TTY and is not exercised under
// "go test", which redirects standard streams; see NewConsole's ErrNoTTY
// path, covered below with a piped (non-terminal) file.
package tty_test

import (
	"errors"
	"os"
	"testing"

	"github.com/td12dk/td12dk/internal/tty"
)

func TestNewConsole_NonTerminalReturnsErrNoTTY(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %s", err)
	}

	defer r.Close()
	defer w.Close()

	cons, err := tty.NewConsole(r, w)
	if !errors.Is(err, tty.ErrNoTTY) {
		t.Fatalf("got %v, want ErrNoTTY", err)
	}

	if cons == nil {
		t.Fatal("got nil console on ErrNoTTY, want a usable console")
	}

	if err := cons.Restore(); err != nil {
		t.Errorf("Restore on non-raw console: %s", err)
	}
}

func TestConsole_ReadWrite(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %s", err)
	}

	defer r.Close()
	defer w.Close()

	cons, _ := tty.NewConsole(r, w)

	go func() {
		_, _ = cons.Write([]byte("hi"))
	}()

	buf := make([]byte, 2)
	if _, err := cons.Read(buf); err != nil {
		t.Fatalf("Read: %s", err)
	}

	if string(buf) != "hi" {
		t.Errorf("got %q, want %q", buf, "hi")
	}
}
