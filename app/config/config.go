// Package config loads settings for the unitcalc command-line tool from
// TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"unitcalc/app/lang"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "UNITCALC_CONFIG"

// Output formats understood by the CLI.
const (
	FormatText = "text"
	FormatRepr = "repr"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the complete tool configuration.
type Config struct {
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Watch  WatchConfig  `toml:"watch" yaml:"watch"`
}

// ParserConfig holds parser limits.
type ParserConfig struct {
	MaxInputLength int `toml:"max_input_length" yaml:"max_input_length"`
	MaxDepth       int `toml:"max_depth" yaml:"max_depth"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Deps   bool   `toml:"deps" yaml:"deps"`
}

// WatchConfig holds file watching settings.
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from UNITCALC_CONFIG or the default
// locations, falling back to Default when none exists.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range defaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func defaultPaths() []string {
	paths := []string{"./unitcalc.toml", "./unitcalc.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config/unitcalc/config.toml"),
			filepath.Join(home, ".config/unitcalc/config.yaml"),
		)
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Parser.MaxInputLength == 0 {
		c.Parser.MaxInputLength = lang.DefaultMaxInputLength
	}
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = lang.DefaultMaxDepth
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 100 * time.Millisecond
	}
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.Parser.MaxInputLength < 0 {
		return fmt.Errorf("parser.max_input_length must be positive, got %d", c.Parser.MaxInputLength)
	}
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must be positive, got %d", c.Parser.MaxDepth)
	}
	if c.Watch.Debounce.Duration < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return ValidateFormat(c.Output.Format)
}

// ValidateFormat checks that format names a known output format.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatRepr, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, repr, json or yaml)", format)
}

// ParserOptions converts the parser section into lang options.
func (c *Config) ParserOptions() lang.Options {
	return lang.Options{
		MaxInputLength: c.Parser.MaxInputLength,
		MaxDepth:       c.Parser.MaxDepth,
	}
}
