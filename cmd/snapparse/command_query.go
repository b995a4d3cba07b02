package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/shibukawa/snapparse/explang"
	"github.com/shibukawa/snapparse/formatter"
)

// QueryCmd represents the query command
type QueryCmd struct {
	Lang   string `short:"l" help:"Grammar of the document" default:"json"`
	Format string `short:"f" help:"Output format: json, yaml or xml (default from config)"`
	Path   string `arg:"" help:"Access path such as users[0].name; documents that are not objects are bound to 'root'"`
	File   string `arg:"" optional:"" help:"Document file ('-' or omitted reads standard input)"`
}

// Run executes the query command
func (cmd *QueryCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	steps, err := explang.ParseSteps(cmd.Path, 1, 1)
	if err != nil {
		return err
	}

	language, err := resolveLanguage(config, cmd.Lang)
	if err != nil {
		return err
	}

	input, source, err := readInput("", cmd.File)
	if err != nil {
		return err
	}

	document, err := language.Run(input)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInputRejected, source, describeFailure(config, input, err, !color.NoColor))
	}

	if ctx.Verbose {
		color.Blue("Resolving %s in %s", explang.FormatPath(steps), source)
	}

	value, err := explang.Resolve(steps, queryRoot(document))
	if err != nil {
		return err
	}

	format := cmd.Format
	if format == "" {
		format = config.Output.Format
	}

	valueFormatter, err := formatter.NewValueFormatter(format, config.Output.Pretty)
	if err != nil {
		return err
	}

	return valueFormatter.Write(os.Stdout, value)
}

// queryRoot exposes the members of an object document as path roots and
// binds any other document to `root`.
func queryRoot(document any) map[string]any {
	if object, ok := document.(map[string]any); ok {
		return object
	}

	return map[string]any{"root": document}
}
