package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the config file Discover looks for.
const FileName = "charon.toml"

// EnvVar names a config file that takes precedence over discovery.
const EnvVar = "CHARON_CONFIG"

// Config holds the complete charonc configuration
type Config struct {
	Compiler CompilerConfig `toml:"compiler"`
	Report   ReportConfig   `toml:"report"`
	Log      LogConfig      `toml:"log"`
}

// CompilerConfig controls which files are compiled and how many at once
type CompilerConfig struct {
	Extension      string `toml:"extension"`
	Workers        int    `toml:"workers"`
	MaxDiagnostics int    `toml:"max_diagnostics"` // 0 means unlimited
}

// ReportConfig controls how results are printed
type ReportConfig struct {
	Format string `toml:"format"` // text, json or yaml
	Color  *bool  `toml:"color"`
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// ConfigError is returned by Validate for the first invalid setting
type ConfigError struct {
	Field string
	Value interface{}
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s = %v: %s", e.Field, e.Value, e.Msg)
}

// Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file, the file must exist
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Parse decodes configuration from TOML text
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Discover loads $CHARON_CONFIG if set, else dir/charon.toml if present, else defaults
func Discover(dir string) (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Compiler.Extension == "" {
		c.Compiler.Extension = ".charon"
	}
	if c.Compiler.Workers == 0 {
		c.Compiler.Workers = 4
	}
	if c.Report.Format == "" {
		c.Report.Format = "text"
	}
	if c.Report.Color == nil {
		color := true
		c.Report.Color = &color
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks every setting
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Compiler.Extension, ".") {
		return &ConfigError{Field: "compiler.extension", Value: c.Compiler.Extension, Msg: "must start with '.'"}
	}
	if c.Compiler.Workers < 1 {
		return &ConfigError{Field: "compiler.workers", Value: c.Compiler.Workers, Msg: "must be at least 1"}
	}
	if c.Compiler.MaxDiagnostics < 0 {
		return &ConfigError{Field: "compiler.max_diagnostics", Value: c.Compiler.MaxDiagnostics, Msg: "must not be negative"}
	}
	switch c.Report.Format {
	case "text", "json", "yaml":
	default:
		return &ConfigError{Field: "report.format", Value: c.Report.Format, Msg: "must be text, json or yaml"}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return &ConfigError{Field: "log.level", Value: c.Log.Level, Msg: err.Error()}
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return &ConfigError{Field: "log.format", Value: c.Log.Format, Msg: "must be text or json"}
	}
	return nil
}

// ColorEnabled reports the effective report.color setting
func (c *Config) ColorEnabled() bool {
	return c.Report.Color == nil || *c.Report.Color
}

// ParseLevel maps debug, info, warn and error to their slog levels
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown level %q", level)
}

// NewLogger builds the logger described by the log section, writing to w
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
