package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/td12dk/td12dk/internal/asm"
	"github.com/td12dk/td12dk/internal/cli"
	"github.com/td12dk/td12dk/internal/encoding"
	"github.com/td12dk/td12dk/internal/log"
	"github.com/td12dk/td12dk/internal/vm"
)

// Assembler is the command that translates assembly source into a packed
// ROM image.
//
//	td12dk asm [-o a.rom] [-labels a.labels] [-hex a.hex] prog.asm
func Assembler() cli.Command {
	return new(assembler)
}

type assembler struct {
	debug     bool
	output    string
	labelsOut string
	hexOut    string
}

func (assembler) Description() string {
	return "assemble source into a ROM image"
}

func (assembler) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `asm [-o a.rom] [-labels a.labels] [-hex a.hex] prog.asm

Assemble source into a packed ROM image, with optional label listing and
hex-dump output.`)

	return err
}

func (a *assembler) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	fs.BoolVar(&a.debug, "debug", false, "enable debug logging")
	fs.StringVar(&a.output, "o", "a.rom", "binary output `file`")
	fs.StringVar(&a.labelsOut, "labels", "", "label-listing output `file`")
	fs.StringVar(&a.hexOut, "hex", "", "hex-dump output `file`")

	return fs
}

// Run assembles a single source file into a ROM image.
func (a *assembler) Run(_ context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	if a.debug {
		log.LogLevel.Set(log.Debug)
	}

	if len(args) != 1 {
		logger.Error("asm requires exactly one input file")
		return 1
	}

	fn := args[0]

	src, err := os.ReadFile(fn)
	if err != nil {
		logger.Error("read failed", "file", fn, "err", err)
		return 1
	}

	prog, err := asm.Assemble(fn, string(src))
	if err != nil {
		logger.Error("assemble error", "err", err)
		return 1
	}

	rom := make(encoding.ROM, len(prog.Words))
	for i, w := range prog.Words {
		rom[i] = vm.Word(w)
	}

	data, err := rom.MarshalBinary()
	if err != nil {
		logger.Error("pack error", "err", err)
		return 1
	}

	if err := os.WriteFile(a.output, data, 0o644); err != nil {
		logger.Error("write failed", "out", a.output, "err", err)
		return 1
	}

	if a.labelsOut != "" {
		if err := os.WriteFile(a.labelsOut, []byte(prog.LabelListing()), 0o644); err != nil {
			logger.Error("write failed", "out", a.labelsOut, "err", err)
			return 1
		}
	}

	if a.hexOut != "" {
		if err := os.WriteFile(a.hexOut, []byte(hexDump(data)), 0o644); err != nil {
			logger.Error("write failed", "out", a.hexOut, "err", err)
			return 1
		}
	}

	logger.Debug("assembled", "words", len(prog.Words), "out", a.output)

	return 0
}

// hexDump renders a byte slice as space-separated hex pairs, sixteen per
// line, for human inspection of the packed ROM image.
func hexDump(data []byte) string {
	var b strings.Builder

	for i, c := range data {
		if i > 0 && i%16 == 0 {
			b.WriteByte('\n')
		} else if i > 0 {
			b.WriteByte(' ')
		}

		fmt.Fprintf(&b, "%02x", c)
	}

	b.WriteByte('\n')

	return b.String()
}
