package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/shibukawa/snapparse/langs"
)

// LangsCmd represents the langs command
type LangsCmd struct{}

// Run executes the langs command
func (cmd *LangsCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	for _, language := range langs.All() {
		name := color.GreenString("%-6s", language.Name)
		status := ""

		if !config.IsLanguageEnabled(language.Name) {
			name = color.YellowString("%-6s", language.Name)
			status = " (disabled)"
		}

		if language.Name == config.DefaultLanguage {
			status += " (default)"
		}

		fmt.Fprintf(color.Output, "%s %s: %s%s\n", name, language.Title(), language.Description, status)
	}

	return nil
}
