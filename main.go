// td12dk is the command-line interface to a 12-bit word-addressed
// computer's compiler, assembler and emulator.
package main

import (
	"context"
	"os"

	"github.com/td12dk/td12dk/internal/cli"
	"github.com/td12dk/td12dk/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Compiler(),
	cmd.Assembler(),
	cmd.Executor(),
	cmd.Version(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
