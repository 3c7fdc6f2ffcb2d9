// Package config loads rstnc settings from rstn.toml or a YAML equivalent.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/rstn/internal/types2"
)

// DefaultPaths are searched in order when no config file is named.
var DefaultPaths = []string{"rstn.toml", "rstn.yaml", "rstn.yml"}

// Config holds the complete rstnc configuration.
type Config struct {
	Check  CheckConfig  `toml:"check" yaml:"check"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// CheckConfig controls the semantic checker.
type CheckConfig struct {
	Resolution string `toml:"resolution" yaml:"resolution"`
	AllErrors  bool   `toml:"all_errors" yaml:"all_errors"`
}

// OutputConfig controls what the CLI prints and generates.
type OutputConfig struct {
	ASTFormat string `toml:"ast_format" yaml:"ast_format"`
	Color     bool   `toml:"color" yaml:"color"`
	Indent    int    `toml:"indent" yaml:"indent"`
}

// LogConfig controls the phase logger.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Check: CheckConfig{
			Resolution: types2.Lexical.String(),
		},
		Output: OutputConfig{
			ASTFormat: "text",
			Color:     true,
			Indent:    4,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration at path. Keys missing from the file keep
// their defaults. An empty path searches DefaultPaths and falls back to
// Default when none exists; a named file that does not exist is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, p := range DefaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return Default(), nil
		}
	}

	path = os.ExpandEnv(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// formatOf determines the format from the file extension.
// Anything other than .yaml or .yml is read as TOML.
func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return nil, fmt.Errorf("unknown key %q", undec[0].String())
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := types2.ParseResolution(c.Check.Resolution); err != nil {
		errs = append(errs, fmt.Errorf("check.resolution: %w", err))
	}
	switch c.Output.ASTFormat {
	case "text", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("output.ast_format: unknown format %q (want text, json or yaml)", c.Output.ASTFormat))
	}
	if c.Output.Indent < 1 || c.Output.Indent > 16 {
		errs = append(errs, fmt.Errorf("output.indent: %d out of range [1, 16]", c.Output.Indent))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// Resolution returns the configured identifier resolution.
func (c *Config) Resolution() types2.Resolution {
	r, _ := types2.ParseResolution(c.Check.Resolution)
	return r
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown level %q", s)
	}
	return l, nil
}
