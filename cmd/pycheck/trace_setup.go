package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pycheck/internal/trace"
)

// traceFlags is what --trace and --trace-level ask for.
type traceFlags struct {
	output string
	level  trace.Level
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	output, err := cmd.Flags().GetString("trace")
	if err != nil {
		return traceFlags{}, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := cmd.Flags().GetString("trace-level")
	if err != nil {
		return traceFlags{}, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return traceFlags{}, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без --trace-level показывает стадии
	if output != "" && !cmd.Flags().Changed("trace-level") {
		level = trace.LevelPhase
	}
	return traceFlags{output: output, level: level}, nil
}

// setupTracing attaches the requested tracer to the command context and
// returns the function that closes it once the verdict is printed.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}

	cfg := trace.Config{Level: flags.level, Path: flags.output}
	if flags.output == "" || flags.output == "-" {
		// stderr команды, а не процесса: так его видят тесты
		cfg.Output = cmd.ErrOrStderr()
	}
	tracer, err := trace.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	return func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}
