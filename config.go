package snapparse

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config represents the snapparse tool configuration (snapparse.yaml)
type Config struct {
	DefaultLanguage string                    `yaml:"default_language"`
	CasesDir        string                    `yaml:"cases_dir"`
	Output          OutputConfig              `yaml:"output"`
	Errors          ErrorsConfig              `yaml:"errors"`
	Languages       map[string]LanguageConfig `yaml:"languages"`
}

// OutputConfig controls how parsed values are printed
type OutputConfig struct {
	Format string `yaml:"format"`
	Pretty bool   `yaml:"pretty"`
}

// ErrorsConfig controls how parse failures are rendered
type ErrorsConfig struct {
	ExcerptLength int   `yaml:"excerpt_length"`
	Color         *bool `yaml:"color"` // nil means colored when the terminal supports it
}

// LanguageConfig holds per-grammar switches
type LanguageConfig struct {
	Disabled bool `yaml:"disabled"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Return default configuration if file doesn't exist
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	if config.Output.Format != "" {
		validFormats := map[string]bool{
			"json": true,
			"yaml": true,
			"xml":  true,
		}
		if !validFormats[config.Output.Format] {
			return fmt.Errorf("%w: output.format '%s' is invalid: must be one of json, yaml, xml", ErrConfigValidation, config.Output.Format)
		}
	}

	if config.Errors.ExcerptLength < 0 {
		return fmt.Errorf("%w: errors.excerpt_length must be non-negative, got %d", ErrConfigValidation, config.Errors.ExcerptLength)
	}

	for name := range config.Languages {
		if name == "" {
			return fmt.Errorf("%w: languages: empty language name", ErrConfigValidation)
		}
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		DefaultLanguage: "json",
		CasesDir:        "./cases",
		Output: OutputConfig{
			Format: "json",
			Pretty: true,
		},
		Errors: ErrorsConfig{
			ExcerptLength: DefaultExcerptLength,
		},
		Languages: make(map[string]LanguageConfig),
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	if config.DefaultLanguage == "" {
		config.DefaultLanguage = "json"
	}

	if config.CasesDir == "" {
		config.CasesDir = "./cases"
	}

	if config.Output.Format == "" {
		config.Output.Format = "json"
	}

	if config.Errors.ExcerptLength == 0 {
		config.Errors.ExcerptLength = DefaultExcerptLength
	}

	if config.Languages == nil {
		config.Languages = make(map[string]LanguageConfig)
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return bareEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in path-like settings
func expandConfigEnvVars(config *Config) {
	config.CasesDir = expandEnvVars(config.CasesDir)
	config.DefaultLanguage = expandEnvVars(config.DefaultLanguage)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsLanguageEnabled returns true unless the language is disabled in the configuration
func (c *Config) IsLanguageEnabled(name string) bool {
	return !c.Languages[name].Disabled
}

// ErrorFormatter builds the formatter described by the errors section.
// tty reports whether output goes to a terminal; it decides colouring when
// errors.color is not set.
func (c *Config) ErrorFormatter(tty bool) ErrorFormatter {
	colored := tty
	if c.Errors.Color != nil {
		colored = *c.Errors.Color
	}

	return ErrorFormatter{
		ExcerptLength: c.Errors.ExcerptLength,
		Color:         colored,
	}
}
