package config

import (
	"cs-balancer/logging"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Input formats
const (
	InputAuto = "auto"
	InputCSV  = "csv"
	InputYAML = "yaml"
)

var (
	ErrMissingInput       = fmt.Errorf("input file is required")
	ErrInvalidFormat      = fmt.Errorf("format must be one of: text, json, csv")
	ErrInvalidInputFormat = fmt.Errorf("input format must be one of: auto, csv, yaml")
	ErrInvalidLogFormat   = fmt.Errorf("log format must be one of: text, json")
	ErrInvalidLogLevel    = fmt.Errorf("log level must be one of: debug, info, warn, error")
)

// Config holds the settings of one CLI run.
type Config struct {
	Input       string // Input file path (required)
	InputFormat string // auto, csv or yaml
	Format      string // Output format: text, json, csv
	Away        []int  // Extra away agent ids, merged with the file's roster
	LogLevel    string // debug, info, warn, error
	LogFormat   string // text, json
	MetricsAddr string // Address to expose Prometheus metrics on, empty to disable
	PushURL     string // Pushgateway URL, empty to disable
	Wait        bool   // Keep serving metrics after the run
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		InputFormat: InputAuto,
		Format:      "text",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Validate checks required fields and enum values.
func (c Config) Validate() error {
	if c.Input == "" {
		return ErrMissingInput
	}
	if !slices.Contains([]string{"text", "json", "csv"}, c.Format) {
		return fmt.Errorf("%w (got: %s)", ErrInvalidFormat, c.Format)
	}
	if !slices.Contains([]string{InputAuto, InputCSV, InputYAML}, c.InputFormat) {
		return fmt.Errorf("%w (got: %s)", ErrInvalidInputFormat, c.InputFormat)
	}
	if !slices.Contains([]string{"text", "json"}, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("%w (got: %s)", ErrInvalidLogFormat, c.LogFormat)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w (got: %s)", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// ResolvedInputFormat picks the parser for the input file. In auto mode
// .yaml, .yml and .json files are read as documents, anything else as CSV.
func (c Config) ResolvedInputFormat() string {
	if c.InputFormat != InputAuto {
		return c.InputFormat
	}
	switch strings.ToLower(filepath.Ext(c.Input)) {
	case ".yaml", ".yml", ".json":
		return InputYAML
	default:
		return InputCSV
	}
}
