package testhelper

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTrimIndent(t *testing.T) {
	src := `
		## case
		'''calc
		1
		'''
	`

	assert.Equal(t, "## case\n```calc\n1\n```\n", Markdown(t, src))
	assert.Equal(t, "single", TrimIndent(t, "single"))
}

func TestGetCaller(t *testing.T) {
	assert.True(t, strings.HasPrefix(GetCaller(t), "(helper_test.go:"))
}
