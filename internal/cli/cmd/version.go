package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"golang.org/x/mod/semver"

	"github.com/td12dk/td12dk/internal/cli"
	"github.com/td12dk/td12dk/internal/log"
)

// buildVersion is overridden at link time with -ldflags "-X ...buildVersion=vX.Y.Z".
var buildVersion = "v0.0.0-dev"

// Version is the command that reports the tool's build version.
func Version() cli.Command {
	return new(version)
}

type version struct{}

func (version) Description() string {
	return "print the build version"
}

func (version) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `version

Print the build version.`)

	return err
}

func (version) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("version", flag.ExitOnError)
}

func (version) Run(_ context.Context, _ []string, stdout io.Writer, logger *log.Logger) int {
	if !semver.IsValid(buildVersion) {
		logger.Warn("build version is not valid semver", "version", buildVersion)
		fmt.Fprintln(stdout, buildVersion)

		return 0
	}

	fmt.Fprintf(stdout, "%s (%s)\n", semver.Canonical(buildVersion), semver.Major(buildVersion))

	return 0
}
