package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/snapparse"
	"github.com/shibukawa/snapparse/markdownparser"
)

// FormatErrorCmd represents the format-error command
type FormatErrorCmd struct {
	Lang    string `short:"l" help:"Grammar to use (default from config)"`
	Expr    string `short:"e" help:"Use this text instead of a file"`
	Excerpt int    `help:"Characters of input to show after the failure offset (default from config)"`
	Case    string `help:"Wrap the result in a Markdown case with this heading"`
	File    string `arg:"" optional:"" help:"Input file ('-' or omitted reads standard input)"`
}

// Run executes the format-error command
func (cmd *FormatErrorCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	language, err := resolveLanguage(config, cmd.Lang)
	if err != nil {
		return err
	}

	input, source, err := readInput(cmd.Expr, cmd.File)
	if err != nil {
		return err
	}

	_, runErr := language.Run(input)
	if runErr == nil {
		return fmt.Errorf("%w: %s", ErrInputSucceeded, source)
	}

	errorFormatter := config.ErrorFormatter(false)
	if cmd.Excerpt > 0 {
		errorFormatter.ExcerptLength = cmd.Excerpt
	}

	message := runErr.Error()

	var parseErr *snapparse.ParseError
	if errors.As(runErr, &parseErr) {
		message = errorFormatter.Format(input, parseErr.Position, parseErr.Expected)
	}

	if cmd.Case == "" {
		fmt.Println(message)
		return nil
	}

	fmt.Print(caseSnippet(cmd.Case, language.Name, input, message))

	return nil
}

// caseSnippet renders a Markdown case that expects message for input
func caseSnippet(name, language, input, message string) string {
	fence := "```"
	for strings.Contains(input, fence) || strings.Contains(message, fence) {
		fence += "`"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", name)
	fmt.Fprintf(&b, "%s%s\n%s\n%s\n\n", fence, language, strings.TrimSuffix(input, "\n"), fence)
	fmt.Fprintf(&b, "%s%s\n%s\n%s\n", fence, markdownparser.ErrorBlock, message, fence)

	return b.String()
}
