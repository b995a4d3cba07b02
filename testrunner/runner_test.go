package testrunner

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/snapparse/markdownparser"
)

const fence = "```"

func block(info, body string) string {
	return fence + info + "\n" + body + "\n" + fence + "\n\n"
}

func writeCaseFiles(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	calcCases := "---\nlanguage: calc\n---\n\n# Calc\n\n" +
		"## precedence\n\n" + block("input", "1 + 2 * 3") + block("expected", "7") +
		"## division\n\n" + block("input", "7 / 2") + block("expected", "3.50") +
		"## syntax error\n\n" + block("input", "1 +") +
		block("error", "expected one of '(', '-', a number at line 1 column 4, got the end of the stream") +
		"## division by zero\n\n" + block("input", "1 / 0") + block("error", "division by zero: '/' at offset 2") +
		"## wrong value\n\n" + block("input", "2 + 2") + block("expected", "5")

	jsonCases := "## array\n\n" + block("json", `[1, "a", null]`) + block("expected", `[1.0, "a", null]`)

	lispCases := "## quote\n\n" + block("lisp", "'x") + block("expected", `[["quote", "x"]]`)

	nested := filepath.Join(dir, "nested")
	assert.NoError(t, os.Mkdir(nested, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "calc.md"), []byte(calcCases), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "json.md"), []byte(jsonCases), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(nested, "lisp.md"), []byte(lispCases), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	return dir
}

func newQuietRunner(buf *bytes.Buffer) *CaseRunner {
	runner := NewCaseRunner()
	runner.SetOutput(buf)

	return runner
}

func TestCaseRunner_Run(t *testing.T) {
	dir := writeCaseFiles(t)

	var buf bytes.Buffer

	runner := newQuietRunner(&buf)

	summary, err := runner.Run(context.Background(), dir)
	assert.NoError(t, err)

	assert.Equal(t, 7, summary.TotalCases)
	assert.Equal(t, 6, summary.PassedCases)
	assert.Equal(t, 1, summary.FailedCases)
	assert.Equal(t, 0, summary.SkippedCases)

	var failed []CaseResult

	for _, result := range summary.Results {
		if !result.Success {
			failed = append(failed, result)
		}
	}

	assert.Equal(t, 1, len(failed))
	assert.Equal(t, "calc/wrong value", failed[0].FullName())
	assert.IsError(t, failed[0].Error, ErrValueMismatch)
	assert.Contains(t, failed[0].Error.Error(), "expected: 5")
	assert.Contains(t, failed[0].Error.Error(), "actual:   4")

	runner.PrintSummary(summary)
	assert.Contains(t, buf.String(), "Cases: 7 total, 6 passed, 1 failed, 0 skipped")
	assert.Contains(t, buf.String(), "calc/wrong value")
	assert.Contains(t, buf.String(), "Some cases failed!")
}

func TestCaseRunner_RunPattern(t *testing.T) {
	dir := writeCaseFiles(t)

	var buf bytes.Buffer

	runner := newQuietRunner(&buf)
	assert.NoError(t, runner.SetRunPattern("^calc/division"))

	summary, err := runner.Run(context.Background(), dir)
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.TotalCases)
	assert.Equal(t, 2, summary.PassedCases)

	assert.Error(t, runner.SetRunPattern("("))
}

func TestCaseRunner_LanguageFilter(t *testing.T) {
	dir := writeCaseFiles(t)

	var buf bytes.Buffer

	runner := newQuietRunner(&buf)
	runner.SetLanguageFilter(func(language string) bool { return language != "lisp" })
	runner.SetVerbose(true)

	summary, err := runner.Run(context.Background(), dir)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.SkippedCases)
	assert.Contains(t, buf.String(), "SKIP")
	assert.Contains(t, buf.String(), "--- PASS: json/array")
}

func TestCaseRunner_SingleFileAndErrors(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer

	runner := newQuietRunner(&buf)

	_, err := runner.Run(context.Background(), dir)
	assert.IsError(t, err, ErrNoCaseFiles)

	broken := filepath.Join(dir, "broken.md")
	assert.NoError(t, os.WriteFile(broken, []byte("# nothing\n"), 0o644))

	summary, err := runner.Run(context.Background(), broken)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.FailedCases)
	assert.IsError(t, summary.Results[0].Error, markdownparser.ErrNoTestCases)

	unknown := filepath.Join(dir, "unknown.md")
	content := "## a\n\n" + block("cobol", "x") + block("expected", "1")
	assert.NoError(t, os.WriteFile(unknown, []byte(content), 0o644))

	summary, err = runner.Run(context.Background(), unknown)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.FailedCases)
	assert.True(t, strings.Contains(summary.Results[0].Error.Error(), `unknown language "cobol"`))
}

func TestCaseRunner_Cancelled(t *testing.T) {
	dir := writeCaseFiles(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer

	_, err := newQuietRunner(&buf).Run(ctx, dir)
	assert.IsError(t, err, context.Canceled)
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		equal    bool
	}{
		{"numbers by value", json.Number("7.0"), json.Number("7"), true},
		{"different numbers", json.Number("7"), json.Number("8"), false},
		{"number vs string", json.Number("7"), "7", false},
		{"maps", map[string]any{"a": nil}, map[string]any{"a": nil}, true},
		{"missing key", map[string]any{"a": nil}, map[string]any{"b": nil}, false},
		{"arrays", []any{true, "x"}, []any{true, "x"}, true},
		{"array length", []any{true}, []any{true, true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, valuesEqual(tt.expected, tt.actual))
		})
	}
}

func TestCaseRunner_BundledCases(t *testing.T) {
	var buf bytes.Buffer

	runner := newQuietRunner(&buf)
	runner.SetVerbose(true)

	summary, err := runner.Run(context.Background(), filepath.Join("..", "cases"))
	assert.NoError(t, err)
	assert.True(t, summary.TotalCases > 0)
	assert.Equal(t, 0, summary.FailedCases, buf.String())
}
