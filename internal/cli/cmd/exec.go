package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/td12dk/td12dk/internal/cli"
	"github.com/td12dk/td12dk/internal/encoding"
	"github.com/td12dk/td12dk/internal/log"
	"github.com/td12dk/td12dk/internal/tty"
	"github.com/td12dk/td12dk/internal/vm"
)

// Executor is the command that runs a packed ROM image in the emulator.
//
//	td12dk exec [-machine tty] [-trace] [-step] [-clock ms] prog.rom
func Executor() cli.Command {
	return &executor{log: log.DefaultLogger()}
}

type executor struct {
	machine string
	trace   bool
	step    bool
	clockMS int

	log *log.Logger
}

func (executor) Description() string {
	return "run a ROM image"
}

func (executor) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `exec [-machine tty] [-trace] [-step] [-clock ms] prog.rom

Run a packed ROM image in the emulator. Exit code 0 on a clean halt,
nonzero on decode error or uncaught diagnostic.`)

	return err
}

func (ex *executor) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("exec", flag.ExitOnError)
	fs.StringVar(&ex.machine, "machine", "tty", "device assembly to wire in (`tty` or `none`)")
	fs.BoolVar(&ex.trace, "trace", false, "print machine state after every step")
	fs.BoolVar(&ex.step, "step", false, "wait for a newline on stdin before each step")
	fs.IntVar(&ex.clockMS, "clock", 0, "delay, in `ms`, inserted between steps")

	return fs
}

// Run loads and executes a ROM image until it halts or faults.
func (ex *executor) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	if len(args) != 1 {
		logger.Error("exec requires exactly one input file")
		return 1
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		logger.Error("read failed", "file", args[0], "err", err)
		return 1
	}

	var rom encoding.ROM
	if err := rom.UnmarshalBinary(data); err != nil {
		logger.Error("rom load error", "err", err)
		return 1
	}

	words := make([]vm.Word, len(rom))
	for i, w := range rom {
		words[i] = vm.Word(w)
	}

	devices, cleanup, err := ex.devices(stdout)
	if err != nil {
		logger.Error("device setup failed", "err", err)
		return 1
	}

	defer cleanup()

	loader := vm.NewLoader()

	m, err := loader.Load(words, devices...)
	if err != nil {
		logger.Error("load failed", "err", err)
		return 1
	}

	for !m.CPU.Halted {
		select {
		case <-ctx.Done():
			logger.Warn("execution cancelled", "err", ctx.Err())
			return 2
		default:
		}

		if ex.step {
			fmt.Fprint(stdout, "step> ")

			var discard string
			fmt.Fscanln(os.Stdin, &discard)
		}

		if err := m.Step(); err != nil {
			logger.Error("execution fault", "err", err)
			return 1
		}

		if ex.trace {
			fmt.Fprintln(stdout, m.String())
		}

		if ex.clockMS > 0 {
			time.Sleep(time.Duration(ex.clockMS) * time.Millisecond)
		}
	}

	return 0
}

// devices builds the device assembly named by the -machine flag, returning
// a cleanup function that must run regardless of how execution ends (e.g.
// to restore terminal state).
func (ex *executor) devices(stdout io.Writer) ([]vm.Device, func(), error) {
	switch ex.machine {
	case "none":
		return nil, func() {}, nil
	case "tty", "":
		console, err := tty.NewConsole(os.Stdin, os.Stdout)
		if err != nil && !errors.Is(err, tty.ErrNoTTY) {
			return nil, func() {}, err
		}

		return []vm.Device{vm.NewTTY(vm.DeviceStart, console, stdout)},
			func() { _ = console.Restore() },
			nil
	default:
		return nil, func() {}, fmt.Errorf("exec: unknown machine %q", ex.machine)
	}
}
