package wiredump

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Output formats
const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// Stdio is the Input or Output value standing for stdin or stdout.
const Stdio = "-"

// Config holds all configuration options for a decode run
type Config struct {
	// Captured server responses, or "-" for stdin
	Input string `mapstructure:"input"`
	// Output file path, or "-" for stdout
	Output string `mapstructure:"output"`
	// Output format, FormatJSON or FormatCBOR
	Format string `mapstructure:"format"`

	// Base directory of payloads delivered as [FILE] references
	PayloadDir string `mapstructure:"payload_dir"`
	// Largest literal accepted in the capture, in bytes
	MaxLiteralSize int `mapstructure:"max_literal_size"`

	// Base directory for output (prefixes output path)
	Dir string `mapstructure:"dir"`

	// Log file path; logs go to stderr when empty
	LogFile string `mapstructure:"log_file"`
	// Enable verbose logging
	Verbose bool `mapstructure:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Input:  Stdio,
		Output: Stdio,
		Format: FormatJSON,

		MaxLiteralSize: DefaultMaxLiteralSize,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if c.Format != FormatJSON && c.Format != FormatCBOR {
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	if c.MaxLiteralSize < 0 {
		return fmt.Errorf("max literal size must not be negative")
	}
	return nil
}

// GetOutputPath returns the full output path, applying Dir prefix if set
func (c *Config) GetOutputPath() string {
	if c.Dir != "" && c.Output != "" && c.Output != Stdio {
		return filepath.Join(c.Dir, c.Output)
	}
	return c.Output
}

// LoadConfig reads configuration from the given YAML file and from
// WIREDUMP_* environment variables, the latter taking precedence.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	defaults := NewConfig()

	v := viper.New()
	v.SetEnvPrefix("WIREDUMP")
	v.AutomaticEnv()

	v.SetDefault("input", defaults.Input)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("payload_dir", "")
	v.SetDefault("max_literal_size", defaults.MaxLiteralSize)
	v.SetDefault("dir", "")
	v.SetDefault("log_file", "")
	v.SetDefault("verbose", false)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := NewConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
