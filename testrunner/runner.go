package testrunner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/shibukawa/snapparse"
	"github.com/shibukawa/snapparse/langs"
	"github.com/shibukawa/snapparse/markdownparser"
)

// Sentinel errors
var (
	ErrNoCaseFiles       = errors.New("no case files found")
	ErrLanguageDisabled  = errors.New("language disabled")
	ErrUnexpectedSuccess = errors.New("expected an error but parsing succeeded")
	ErrUnexpectedError   = errors.New("unexpected error")
	ErrValueMismatch     = errors.New("value mismatch")
	ErrMessageMismatch   = errors.New("error message mismatch")
)

// CaseRunner runs the grammar cases written in Markdown case files
type CaseRunner struct {
	verbose        bool
	runPattern     *regexp.Regexp
	errorFormatter snapparse.ErrorFormatter
	enabled        func(language string) bool
	out            io.Writer
}

// CaseResult is the outcome of one case
type CaseResult struct {
	File     string
	Name     string
	Line     int
	Language string
	Success  bool
	Skipped  bool
	Duration time.Duration
	Error    error
}

// FullName is the name matched by the run pattern: `<file base>/<case name>`
func (r CaseResult) FullName() string {
	return caseName(r.File, r.Name)
}

// CaseSummary represents the overall case execution summary
type CaseSummary struct {
	TotalCases    int
	PassedCases   int
	FailedCases   int
	SkippedCases  int
	TotalDuration time.Duration
	Results       []CaseResult
}

// NewCaseRunner creates a new case runner instance
func NewCaseRunner() *CaseRunner {
	return &CaseRunner{
		errorFormatter: snapparse.ErrorFormatter{ExcerptLength: snapparse.DefaultExcerptLength},
		enabled:        func(string) bool { return true },
		out:            color.Output,
	}
}

// SetVerbose enables or disables per-case output
func (r *CaseRunner) SetVerbose(verbose bool) {
	r.verbose = verbose
}

// SetOutput redirects progress and summary output
func (r *CaseRunner) SetOutput(out io.Writer) {
	r.out = out
}

// SetErrorFormatter sets how parse errors are rendered before they are
// compared with `error` blocks. Color is always turned off for comparison.
func (r *CaseRunner) SetErrorFormatter(f snapparse.ErrorFormatter) {
	f.Color = false
	r.errorFormatter = f
}

// SetLanguageFilter decides which languages run. Cases of other languages
// are reported as skipped.
func (r *CaseRunner) SetLanguageFilter(enabled func(language string) bool) {
	if enabled == nil {
		enabled = func(string) bool { return true }
	}

	r.enabled = enabled
}

// SetRunPattern sets the case name filter pattern
func (r *CaseRunner) SetRunPattern(pattern string) error {
	if pattern == "" {
		r.runPattern = nil
		return nil
	}

	regex, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid run pattern: %w", err)
	}

	r.runPattern = regex

	return nil
}

// Run executes every case found under paths (files or directories)
func (r *CaseRunner) Run(ctx context.Context, paths ...string) (*CaseSummary, error) {
	files, err := findCaseFiles(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to find case files: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCaseFiles, strings.Join(paths, ", "))
	}

	if r.verbose {
		fmt.Fprintf(r.out, "Found %d case files\n", len(files))
	}

	summary := &CaseSummary{}
	startTime := time.Now()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, result := range r.runFile(file) {
			summary.add(result)
			r.report(result)
		}
	}

	summary.TotalDuration = time.Since(startTime)

	return summary, nil
}

func (s *CaseSummary) add(result CaseResult) {
	s.TotalCases++

	switch {
	case result.Skipped:
		s.SkippedCases++
	case result.Success:
		s.PassedCases++
	default:
		s.FailedCases++
	}

	s.Results = append(s.Results, result)
}

func (r *CaseRunner) runFile(file string) []CaseResult {
	doc, err := parseCaseFile(file)
	if err != nil {
		return []CaseResult{{File: file, Name: "(file)", Error: err}}
	}

	var results []CaseResult

	for _, c := range doc.Cases {
		if r.runPattern != nil && !r.runPattern.MatchString(caseName(file, c.Name)) {
			continue
		}

		results = append(results, r.runCase(file, c))
	}

	return results
}

func (r *CaseRunner) runCase(file string, c markdownparser.Case) CaseResult {
	result := CaseResult{File: file, Name: c.Name, Line: c.Line, Language: c.Language}

	if !r.enabled(c.Language) {
		result.Skipped = true
		result.Error = fmt.Errorf("%w: %s", ErrLanguageDisabled, c.Language)

		return result
	}

	startTime := time.Now()
	result.Error = r.check(c)
	result.Duration = time.Since(startTime)
	result.Success = result.Error == nil

	return result
}

func (r *CaseRunner) check(c markdownparser.Case) error {
	language, err := langs.Lookup(c.Language)
	if err != nil {
		return err
	}

	value, runErr := language.Run(c.Input)

	if c.HasError {
		if runErr == nil {
			return ErrUnexpectedSuccess
		}

		message := r.errorMessage(c.Input, runErr)
		if message != c.ExpectedError {
			return fmt.Errorf("%w:\n  expected: %s\n  actual:   %s", ErrMessageMismatch, c.ExpectedError, message)
		}

		return nil
	}

	if runErr != nil {
		return fmt.Errorf("%w: %s", ErrUnexpectedError, r.errorMessage(c.Input, runErr))
	}

	actual, err := normalize(value)
	if err != nil {
		return err
	}

	if !valuesEqual(c.Expected, actual) {
		return fmt.Errorf("%w:\n  expected: %s\n  actual:   %s", ErrValueMismatch, compactJSON(c.Expected), compactJSON(actual))
	}

	return nil
}

func (r *CaseRunner) errorMessage(input string, err error) string {
	var parseErr *snapparse.ParseError
	if errors.As(err, &parseErr) {
		return r.errorFormatter.Format(input, parseErr.Position, parseErr.Expected)
	}

	return err.Error()
}

func (r *CaseRunner) report(result CaseResult) {
	if !r.verbose {
		return
	}

	name := result.FullName()

	switch {
	case result.Skipped:
		fmt.Fprintf(r.out, "--- %s: %s (%v)\n", color.YellowString("SKIP"), name, result.Error)
	case result.Success:
		fmt.Fprintf(r.out, "--- %s: %s (%.3fs)\n", color.GreenString("PASS"), name, result.Duration.Seconds())
	default:
		fmt.Fprintf(r.out, "--- %s: %s (%.3fs)\n", color.RedString("FAIL"), name, result.Duration.Seconds())
		fmt.Fprintf(r.out, "    %v\n", result.Error)
	}
}

// PrintSummary prints the case execution summary
func (r *CaseRunner) PrintSummary(summary *CaseSummary) {
	fmt.Fprintf(r.out, "\n")
	fmt.Fprintf(r.out, "=== Case Summary ===\n")
	fmt.Fprintf(r.out, "Cases: %d total, %d passed, %d failed, %d skipped\n",
		summary.TotalCases, summary.PassedCases, summary.FailedCases, summary.SkippedCases)
	fmt.Fprintf(r.out, "Duration: %.3fs\n", summary.TotalDuration.Seconds())

	if summary.FailedCases > 0 {
		fmt.Fprintf(r.out, "\nFailed cases:\n")

		for _, result := range summary.Results {
			if result.Success || result.Skipped {
				continue
			}

			fmt.Fprintf(r.out, "  %s (%s:%d)\n", color.RedString(result.FullName()), result.File, result.Line)

			if result.Error != nil {
				fmt.Fprintf(r.out, "    Error: %v\n", result.Error)
			}
		}
	}

	if summary.FailedCases == 0 {
		fmt.Fprintf(r.out, "\n%s\n", color.GreenString("All cases passed! ✅"))
	} else {
		fmt.Fprintf(r.out, "\n%s\n", color.RedString("Some cases failed! ❌"))
	}
}

func parseCaseFile(file string) (*markdownparser.CaseDocument, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	doc, err := markdownparser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	return doc, nil
}

func findCaseFiles(paths []string) ([]string, error) {
	var files []string

	for _, root := range paths {
		err := walkAndProcessFiles(root, true, func(p string, info os.FileInfo) {
			if p == root || strings.EqualFold(filepath.Ext(info.Name()), ".md") {
				files = append(files, p)
			}
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func caseName(file, name string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return base + "/" + name
}
