package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/shibukawa/snapparse/testrunner"
)

// TestCmd represents the test command
type TestCmd struct {
	RunPattern string        `help:"Run only cases whose '<file>/<case>' name matches the regular expression" short:"r"`
	Timeout    time.Duration `help:"Overall timeout" default:"1m"`
	Paths      []string      `arg:"" optional:"" help:"Case files or directories (default: cases_dir from config)"`
}

// Run executes the test command
func (cmd *TestCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	paths := cmd.Paths
	if len(paths) == 0 {
		paths = []string{config.CasesDir}
	}

	runner := testrunner.NewCaseRunner()
	runner.SetVerbose(ctx.Verbose)
	runner.SetErrorFormatter(config.ErrorFormatter(false))
	runner.SetLanguageFilter(config.IsLanguageEnabled)

	if err := runner.SetRunPattern(cmd.RunPattern); err != nil {
		return err
	}

	if ctx.Verbose {
		color.Blue("Running cases from %v", paths)

		if cmd.RunPattern != "" {
			color.Blue("Case pattern: %s", cmd.RunPattern)
		}
	}

	testCtx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	summary, err := runner.Run(testCtx, paths...)
	if err != nil {
		return fmt.Errorf("case execution failed: %w", err)
	}

	if !ctx.Quiet {
		runner.PrintSummary(summary)
	}

	if summary.FailedCases > 0 {
		return fmt.Errorf("%w: %d of %d", ErrCasesFailed, summary.FailedCases, summary.TotalCases)
	}

	return nil
}
