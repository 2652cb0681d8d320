package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/td12dk/td12dk/internal/cli"
	"github.com/td12dk/td12dk/internal/codegen"
	"github.com/td12dk/td12dk/internal/diag"
	"github.com/td12dk/td12dk/internal/lexer"
	"github.com/td12dk/td12dk/internal/log"
	"github.com/td12dk/td12dk/internal/parser"
	"github.com/td12dk/td12dk/internal/sema"
)

// Compiler is the command that lowers source code through the lexer,
// parser, semantic analyzer and code generator to assembly text.
//
//	td12dk compile [-tokens f] [-syntax f] [-analyzed f] -o prog.asm prog.c
func Compiler() cli.Command {
	return new(compiler)
}

type compiler struct {
	tokensOut   string
	syntaxOut   string
	analyzedOut string
	output      string
}

func (compiler) Description() string {
	return "compile source into assembly"
}

func (compiler) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `compile [-tokens f] [-syntax f] [-analyzed f] [-o prog.asm] prog.c

Lower source code through the lexer, parser, semantic analyzer and code
generator. Each dump flag writes that stage's intermediate form if, and
only if, the pipeline reaches that stage successfully.`)

	return err
}

func (c *compiler) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	fs.StringVar(&c.tokensOut, "tokens", "", "write token dump to `file`")
	fs.StringVar(&c.syntaxOut, "syntax", "", "write syntax tree dump to `file`")
	fs.StringVar(&c.analyzedOut, "analyzed", "", "write annotated tree dump to `file`")
	fs.StringVar(&c.output, "o", "", "write assembly output to `file`")

	return fs
}

func (c *compiler) Run(_ context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	if len(args) != 1 {
		logger.Error("compile requires exactly one input file")
		return 1
	}

	fn := args[0]

	src, err := os.ReadFile(fn)
	if err != nil {
		logger.Error("read failed", "file", fn, "err", err)
		return 1
	}

	toks, err := lexer.Lex(fn, string(src))
	if err != nil {
		return c.reportf(logger, string(src), err)
	}

	if c.tokensOut != "" {
		if err := dumpTokens(c.tokensOut, toks); err != nil {
			logger.Error("token dump failed", "err", err)
			return 1
		}
	}

	file, err := parser.Parse(fn, string(src))
	if err != nil {
		return c.reportf(logger, string(src), err)
	}

	if c.syntaxOut != "" {
		if err := dumpTree(c.syntaxOut, file); err != nil {
			logger.Error("syntax dump failed", "err", err)
			return 1
		}
	}

	analyzed, err := sema.Analyze(file)
	if err != nil {
		return c.reportf(logger, string(src), err)
	}

	if c.analyzedOut != "" {
		if err := dumpTree(c.analyzedOut, analyzed); err != nil {
			logger.Error("analyzed-tree dump failed", "err", err)
			return 1
		}
	}

	asmText, err := codegen.Generate(analyzed)
	if err != nil {
		return c.reportf(logger, string(src), err)
	}

	if c.output == "" {
		_, err = fmt.Fprint(stdout, asmText)
	} else {
		err = os.WriteFile(c.output, []byte(asmText), 0o644)
	}

	if err != nil {
		logger.Error("write failed", "err", err)
		return 1
	}

	return 0
}

// reportf formats a pipeline diagnostic for the user, per the propagation
// policy: the first stage error aborts the whole run.
func (compiler) reportf(logger *log.Logger, src string, err error) int {
	var diagErr *diag.Error
	if d, ok := err.(*diag.Error); ok {
		diagErr = d
		fmt.Fprint(os.Stderr, diag.Format(src, diagErr))
	} else {
		logger.Error(err.Error())
	}

	return 1
}

func dumpTokens(fn string, toks []lexer.Token) error {
	var b []byte

	for _, t := range toks {
		b = fmt.Appendf(b, "%s\n", t)
	}

	return os.WriteFile(fn, b, 0o644)
}

func dumpTree(fn string, tree any) error {
	return os.WriteFile(fn, fmt.Appendf(nil, "%+v\n", tree), 0o644)
}
