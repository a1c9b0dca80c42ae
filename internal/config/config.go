package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultStateFile   = ".inkform-state.json"
)

// Config holds all configuration for the inkform CLI and export engine.
type Config struct {
	// Input/output
	Source string // source PDF path
	Layout string // field layout JSON path
	Output string // output PDF path (".pdf" suffix enforced)

	// Resources
	FontsDirectory string
	StateFile      string

	// Modes
	Inspect bool // print page geometry and a text preview instead of exporting

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64 // maximum source PDF size in bytes
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Output:         "output.pdf",
		FontsDirectory: filepath.Join(currentDir, "fonts"),
		StateFile:      filepath.Join(currentDir, DefaultStateFile),
		Version:        "1.0.0",
		LogLevel:       DefaultLogLevel,
		MaxFileSize:    DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	for _, p := range []*string{&cfg.Source, &cfg.Layout, &cfg.Output, &cfg.FontsDirectory, &cfg.StateFile} {
		if *p != "" {
			if expanded, err := filepath.Abs(*p); err == nil {
				*p = expanded
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("INKFORM")
	viper.AutomaticEnv()

	viper.SetDefault("source", cfg.Source)
	viper.SetDefault("layout", cfg.Layout)
	viper.SetDefault("output", cfg.Output)
	viper.SetDefault("fontsdir", cfg.FontsDirectory)
	viper.SetDefault("statefile", cfg.StateFile)
	viper.SetDefault("inspect", cfg.Inspect)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("source", cfg.Source, "Source PDF file")
	pflag.String("layout", cfg.Layout, "Field layout JSON file")
	pflag.String("output", cfg.Output, "Output PDF file")
	pflag.String("fontsdir", cfg.FontsDirectory, "Directory containing handwriting font files")
	pflag.String("statefile", cfg.StateFile, "Editor state file (recipients, zoom)")
	pflag.Bool("inspect", cfg.Inspect, "Print page geometry and text preview of the source PDF")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum source PDF size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("source", pflag.Lookup("source"))
	_ = viper.BindPFlag("layout", pflag.Lookup("layout"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("fontsdir", pflag.Lookup("fontsdir"))
	_ = viper.BindPFlag("statefile", pflag.Lookup("statefile"))
	_ = viper.BindPFlag("inspect", pflag.Lookup("inspect"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ninkform - stamp positioned form fields into a PDF\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --source=in.pdf --layout=fields.json --output=out.pdf\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --source=in.pdf --inspect\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  INKFORM_SOURCE      Source PDF file\n")
		fmt.Fprintf(os.Stderr, "  INKFORM_LAYOUT      Field layout JSON file\n")
		fmt.Fprintf(os.Stderr, "  INKFORM_OUTPUT      Output PDF file\n")
		fmt.Fprintf(os.Stderr, "  INKFORM_FONTSDIR    Handwriting fonts directory\n")
		fmt.Fprintf(os.Stderr, "  INKFORM_STATEFILE   Editor state file\n")
		fmt.Fprintf(os.Stderr, "  INKFORM_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  INKFORM_MAXFILESIZE Maximum source file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Source = viper.GetString("source")
	cfg.Layout = viper.GetString("layout")
	cfg.Output = viper.GetString("output")
	cfg.FontsDirectory = viper.GetString("fontsdir")
	cfg.StateFile = viper.GetString("statefile")
	cfg.Inspect = viper.GetBool("inspect")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Source == "" {
		return errors.New("source PDF cannot be empty")
	}

	if !c.Inspect && c.Layout == "" {
		return errors.New("layout file is required unless --inspect is set")
	}

	if c.Output == "" {
		return errors.New("output path cannot be empty")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Source: %s, Layout: %s, Output: %s, FontsDirectory: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Source, c.Layout, c.Output, c.FontsDirectory, c.LogLevel, c.MaxFileSize)
}
