package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
)

// version is overwritten at build time with -ldflags "-X main.version=..."
var version = "v0.1.0"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
}

// CLI represents the command-line interface
var CLI struct {
	Config      string         `help:"Configuration file path" default:"snapparse.yaml"`
	Verbose     bool           `help:"Enable verbose output" short:"v"`
	Quiet       bool           `help:"Suppress output" short:"q"`
	Parse       ParseCmd       `cmd:"" help:"Parse input with a bundled grammar and print the value"`
	Test        TestCmd        `cmd:"" help:"Run grammar cases written in Markdown"`
	Langs       LangsCmd       `cmd:"" help:"List bundled grammars"`
	Query       QueryCmd       `cmd:"" help:"Extract a value from a parsed document with an access path"`
	FormatError FormatErrorCmd `cmd:"" name:"format-error" help:"Print the error a grammar reports for input, ready for a case file"`
	Version     VersionCmd     `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Printf("snapparse %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("snapparse"),
		kong.Description("Parser combinator toolkit: run grammars, test them and inspect their errors."),
		kong.UsageOnError(),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}
