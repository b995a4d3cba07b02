package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/shibukawa/snapparse/formatter"
)

// ParseCmd represents the parse command
type ParseCmd struct {
	Lang   string `short:"l" help:"Grammar to use (default from config)"`
	Expr   string `short:"e" help:"Parse this text instead of a file"`
	Format string `short:"f" help:"Output format: json, yaml or xml (default from config)"`
	NoEval bool   `help:"Print the parsed value without the grammar's evaluation step"`
	File   string `arg:"" optional:"" help:"Input file ('-' or omitted reads standard input)"`
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
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

	if ctx.Verbose {
		color.Blue("Parsing %s as %s", source, language.Name)
	}

	var value any
	if cmd.NoEval {
		value, err = language.Parser.Parse(input)
	} else {
		value, err = language.Run(input)
	}

	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInputRejected, source, describeFailure(config, input, err, !color.NoColor))
	}

	format := cmd.Format
	if format == "" {
		format = config.Output.Format
	}

	valueFormatter, err := formatter.NewValueFormatter(format, config.Output.Pretty)
	if err != nil {
		return err
	}

	if ctx.Quiet {
		return nil
	}

	return valueFormatter.Write(os.Stdout, value)
}
