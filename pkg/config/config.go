// Package config loads the editor configuration from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ieee1451/teds-go/pkg/teds"
)

// Config errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidConfig     = errors.New("invalid config")
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Config holds editor settings. Zero values are replaced by Default.
type Config struct {
	// LogLevel is the slog level: debug, info, warn or error.
	LogLevel string `yaml:"logLevel" toml:"log_level"`

	// ProtocolLog is the path of the CBOR event log (.tlog). Empty disables it.
	ProtocolLog string `yaml:"protocolLog" toml:"protocol_log"`

	// DecodePolicy is "strict" or "skip".
	DecodePolicy string `yaml:"decodePolicy" toml:"decode_policy"`

	// DefsDir overrides the embedded record definitions.
	DefsDir string `yaml:"defsDir" toml:"defs_dir"`

	// OutputDir is where new TEDS files are saved.
	OutputDir string `yaml:"outputDir" toml:"output_dir"`

	// OutputFormat is table, json or yaml.
	OutputFormat string `yaml:"outputFormat" toml:"output_format"`

	// StateFile is the editor state path. Empty uses DefaultStateFile.
	StateFile string `yaml:"stateFile" toml:"state_file"`
}

// DefaultStateFile returns the default editor state path under the user
// config directory.
func DefaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".teds-edit", "state.json")
	}
	return filepath.Join(dir, "teds-edit", "state.json")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		DecodePolicy: "strict",
		OutputDir:    ".",
		OutputFormat: FormatTable,
		StateFile:    DefaultStateFile(),
	}
}

// Load reads path and applies it over Default. The format follows the
// file extension: .yaml/.yml or .toml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := cfg.mergeYAML(data); err != nil {
			return nil, err
		}
	case ".toml":
		if err := cfg.mergeTOML(data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeYAML(data []byte) error {
	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	c.merge(raw)
	return nil
}

func (c *Config) mergeTOML(data []byte) error {
	var raw Config
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %s", ErrInvalidConfig, undecoded[0])
	}
	c.merge(raw)
	return nil
}

// merge copies the non-empty settings of o into c.
func (c *Config) merge(o Config) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&c.LogLevel, o.LogLevel)
	set(&c.ProtocolLog, o.ProtocolLog)
	set(&c.DecodePolicy, o.DecodePolicy)
	set(&c.DefsDir, o.DefsDir)
	set(&c.OutputDir, o.OutputDir)
	set(&c.OutputFormat, o.OutputFormat)
	set(&c.StateFile, o.StateFile)
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.OutputFormat {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: output format %q", ErrInvalidConfig, c.OutputFormat)
	}
	return nil
}

// SlogLevel returns LogLevel as an slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return lvl, nil
}

// Policy returns DecodePolicy as a teds.DecodePolicy.
func (c *Config) Policy() (teds.DecodePolicy, error) {
	return teds.ParseDecodePolicy(c.DecodePolicy)
}
