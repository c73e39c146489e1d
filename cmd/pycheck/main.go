package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pycheck/internal/version"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitFault   = 2
)

// exitError carries a process exit code through cobra's error return.
// A nil err means the outcome has already been printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// ExitCode returns the process exit status.
func (e *exitError) ExitCode() int { return e.code }

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pycheck [flags] <file>",
		Short: "Check whether a Python source file parses",
		Long: `pycheck reads one Python file and reports whether it parses.
On failure it prints the error kind, line number, message and offending line.`,
		Args:          cobra.ExactArgs(1),
		RunE:          runCheck,
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version.String(),
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.Flags().String("format", "plain", "output format (plain|json|pretty)")
	cmd.Flags().String("color", "auto", "colorize pretty output (auto|on|off)")
	cmd.Flags().String("parser", "native", "grammar backend (native|treesitter)")
	cmd.Flags().String("trace", "", "write stage trace to file (- for stderr)")
	cmd.Flags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	cmd.Flags().Bool("timings", false, "print per-stage timings to stderr")
	cmd.Flags().String("cpuprofile", "", "write CPU profile to file")
	cmd.Flags().String("memprofile", "", "write heap profile to file")
	return cmd
}

// main runs the root command and exits with 0 (parses), 1 (does not parse)
// or 2 (usage or I/O fault).
func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	var exit *exitError
	if errors.As(err, &exit) && exit.err == nil {
		return exit.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	if exit != nil {
		return exit.ExitCode()
	}
	return exitFault
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
