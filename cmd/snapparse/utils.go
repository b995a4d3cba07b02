package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/shibukawa/snapparse"
	"github.com/shibukawa/snapparse/langs"
)

// loadConfig loads the configuration and reports where it came from
func loadConfig(ctx *Context) (*snapparse.Config, error) {
	config, err := snapparse.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if ctx.Verbose {
		color.Cyan("Configuration: %s", ctx.Config)
	}

	return config, nil
}

// resolveLanguage picks name or the configured default and checks that it is enabled
func resolveLanguage(config *snapparse.Config, name string) (langs.Language, error) {
	if name == "" {
		name = config.DefaultLanguage
	}

	language, err := langs.Lookup(name)
	if err != nil {
		return langs.Language{}, err
	}

	if !config.IsLanguageEnabled(language.Name) {
		return langs.Language{}, fmt.Errorf("%w: %s", ErrLanguageDisabled, language.Name)
	}

	return language, nil
}

// readInput returns inline text when given, otherwise the file contents
// (`-` or empty reads standard input)
func readInput(inline, file string) (string, string, error) {
	if inline != "" {
		return inline, "<inline>", nil
	}

	if file == "" || file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read standard input: %w", err)
		}

		return string(data), "<stdin>", nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read input file: %w", err)
	}

	return string(data), file, nil
}

// describeFailure renders err for the terminal. Parse errors get the
// configured excerpt and colors.
func describeFailure(config *snapparse.Config, input string, err error, tty bool) string {
	var parseErr *snapparse.ParseError
	if errors.As(err, &parseErr) {
		return config.ErrorFormatter(tty).Format(input, parseErr.Position, parseErr.Expected)
	}

	return err.Error()
}
