package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/mchmarny/exmenu/pkg/logger"
)

// Name is the binary and logging module name.
const Name = "exmenu"

var (
	version = "dev"     // Set at build time via -ldflags "-X github.com/mchmarny/exmenu/pkg/cli.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X github.com/mchmarny/exmenu/pkg/cli.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X github.com/mchmarny/exmenu/pkg/cli.date=date"
)

// ErrUsage is returned for unknown commands and invalid flags.
var ErrUsage = errors.New("usage error")

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string, out io.Writer) error
}

var commands = []command{
	{name: "build", summary: "compile definitions into menu and parameter assets", run: runBuild},
	{name: "preview", summary: "print the compiled menu and parameter tables of a definition", run: runPreview},
	{name: "icons", summary: "check the size and format of icon files referenced by definitions", run: runIcons},
}

// Run parses args, without the program name, and executes the selected command.
func Run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(Name, flag.ContinueOnError)
	fs.SetOutput(out)
	showVersion := fs.Bool("version", false, "Print version and exit")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error), overrides "+logger.EnvVarLogLevel)
	fs.Usage = func() { usage(fs, out) }

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if *showVersion {
		fmt.Fprintf(out, "%s %s (commit: %s, built: %s)\n", Name, version, commit, date)
		return nil
	}

	logger.SetDefaultLogger(Name, version, *logLevel)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("%w: command required", ErrUsage)
	}

	for _, c := range commands {
		if c.name == rest[0] {
			slog.Debug("running command", "command", c.name, "commit", commit, "date", date)
			return c.run(ctx, rest[1:], out)
		}
	}

	fs.Usage()
	return fmt.Errorf("%w: unknown command %q", ErrUsage, rest[0])
}

func usage(fs *flag.FlagSet, out io.Writer) {
	fmt.Fprintf(out, "Usage: %s [flags] <command> [command flags] <definition>...\n\nCommands:\n", Name)
	for _, c := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(out, "\nFlags:")
	fs.PrintDefaults()
}

func newFlagSet(name string, out io.Writer, positional string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: %s %s [flags] %s\n", Name, name, positional)
		fs.PrintDefaults()
	}
	return fs
}

func parse(fs *flag.FlagSet, args []string, minArgs int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() < minArgs {
		fs.Usage()
		return nil, fmt.Errorf("%w: %s requires at least %d definition file(s)", ErrUsage, fs.Name(), minArgs)
	}
	return fs.Args(), nil
}
