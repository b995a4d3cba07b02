package testhelper

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
)

var (
	whiteSpaces = regexp.MustCompile(`^(\s+)`)
	leadingTabs = regexp.MustCompile(`^(\t+)`)
)

func replaceTab(match string) string {
	return strings.Repeat("    ", strings.Count(match, "\t"))
}

// TrimIndent drops the first line of src and removes the indentation of the
// second line from every line, so multi-line fixtures can be indented with
// the surrounding Go code. Remaining leading tabs become four spaces and a
// blank closing line is emptied.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) < 2 {
		return src
	}

	indent := whiteSpaces.FindString(lines[1])

	for i, line := range lines {
		line = strings.TrimPrefix(line, indent)
		lines[i] = leadingTabs.ReplaceAllStringFunc(line, replaceTab)
	}

	if last := len(lines) - 1; strings.TrimSpace(lines[last]) == "" {
		lines[last] = ""
	}

	return strings.Join(lines[1:], "\n")
}

// Markdown is TrimIndent for Markdown fixtures. Raw string literals cannot
// hold backquotes, so ''' is written for a code fence.
func Markdown(t *testing.T, src string) string {
	t.Helper()

	return strings.ReplaceAll(TrimIndent(t, src), "'''", "```")
}

// GetCaller returns "(file:line)" of the caller, for naming table entries
// after the line that declares them.
func GetCaller(t *testing.T) string {
	t.Helper()

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}

	return fmt.Sprintf("(%s:%d)", filepath.Base(file), line)
}
