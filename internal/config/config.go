// Package config loads CLI settings from an optional YAML file.
//
// Example file:
//
//	dialect: generic
//	format: csv
//	log:
//	  level: debug
//	  format: json
//
// Command-line flags override values from the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/fsql/internal/logging"
	"github.com/vegasq/fsql/parser"
)

// Output formats for printed results
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// Config holds CLI settings
type Config struct {
	Dialect string `yaml:"dialect"`
	Format  string `yaml:"format"`
	Log     Log    `yaml:"log"`
}

// Log holds logger settings
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the settings used without a config file
func Default() Config {
	return Config{
		Dialect: parser.DefaultDialect.Name,
		Format:  FormatTable,
		Log:     Log{Level: "warn", Format: "text"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the dialect, output format and log settings
func (c Config) Validate() error {
	if _, err := parser.LookupDialect(c.Dialect); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case FormatTable, FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q (want table, csv or json)", c.Format)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Logging returns the logger configuration
func (c Config) Logging() logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Output: c.Log.Output,
	}
}
