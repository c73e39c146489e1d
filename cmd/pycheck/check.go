package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pycheck/internal/diagfmt"
	"pycheck/internal/driver"
	"pycheck/internal/grammar"
	"pycheck/internal/observ"
	"pycheck/internal/parser"
	"pycheck/internal/prof"
)

func runCheck(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("unknown color mode %q (want auto, on or off)", colorFlag)
	}

	backend, err := selectParser(cmd)
	if err != nil {
		return err
	}

	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiles, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiles()

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	result, err := driver.Check(cmd.Context(), args[0], driver.Options{Parser: backend, Timer: timer})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := diagfmt.Opts{
		Pretty: diagfmt.PrettyOpts{
			Color:     colorFlag == "on" || (colorFlag == "auto" && writerIsTerminal(out)),
			ShowNotes: true,
		},
	}
	if showTimings {
		report := timer.Report()
		opts.JSON.Timings = &report
	}
	if err := diagfmt.Render(out, format, result, opts); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if !result.OK() {
		return &exitError{code: exitFailure}
	}
	return nil
}

// selectParser builds the grammar backend named by --parser.
func selectParser(cmd *cobra.Command) (driver.Parser, error) {
	name, err := cmd.Flags().GetString("parser")
	if err != nil {
		return nil, fmt.Errorf("failed to get parser flag: %w", err)
	}
	switch name {
	case "native":
		return parser.NewGrammar(parser.Options{}), nil
	case "treesitter":
		py, err := grammar.NewPython()
		if err != nil {
			return nil, fmt.Errorf("failed to load python grammar: %w", err)
		}
		return py, nil
	default:
		return nil, fmt.Errorf("unknown parser %q (want native or treesitter)", name)
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func setupProfiling(cmd *cobra.Command) (func(), error) {
	cpuPath, err := cmd.Flags().GetString("cpuprofile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	memPath, err := cmd.Flags().GetString("memprofile")
	if err != nil {
		return nil, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	session, err := prof.Start(cpuPath, memPath)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}
