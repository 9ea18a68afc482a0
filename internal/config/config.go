package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcncl/pastejson/internal/errors"
	"github.com/mcncl/pastejson/internal/parser"
	"gopkg.in/yaml.v3"
)

// Line ending names accepted in OutputConfig.
const (
	LineEndingsLF   = "lf"
	LineEndingsCRLF = "crlf"
)

// Config represents the complete configuration for pastejson
type Config struct {
	KeyOrder string       `yaml:"key_order"`
	Output   OutputConfig `yaml:"output"`
	Dev      DevConfig    `yaml:"dev"`
}

// OutputConfig controls post-processing of the generated classes
type OutputConfig struct {
	FileHeader  string `yaml:"file_header"`
	LineEndings string `yaml:"line_endings"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// CLIOverrides carries command-line values. Nil or empty fields were not set
// on the command line and leave the file value in place.
type CLIOverrides struct {
	KeyOrder   string
	FileHeader *string
	CRLF       *bool
	Debug      *bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		KeyOrder: string(parser.KeyOrderSorted),
		Output: OutputConfig{
			FileHeader:  "",
			LineEndings: LineEndingsLF,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".pastejson.yml", ".pastejson.yaml", "pastejson.yml", "pastejson.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	if _, err := parser.ParseKeyOrder(c.KeyOrder); err != nil {
		return errors.NewConfigError(err.Error(), errors.ErrInvalidConfig)
	}
	switch c.Output.LineEndings {
	case LineEndingsLF, LineEndingsCRLF:
	case "":
		c.Output.LineEndings = LineEndingsLF
	default:
		return errors.NewConfigError(
			fmt.Sprintf("unknown line endings %q (want %q or %q)", c.Output.LineEndings, LineEndingsLF, LineEndingsCRLF),
			errors.ErrInvalidConfig,
		)
	}
	return nil
}

// ParsedKeyOrder returns the validated key order.
func (c *Config) ParsedKeyOrder() parser.KeyOrder {
	order, err := parser.ParseKeyOrder(c.KeyOrder)
	if err != nil {
		return parser.KeyOrderSorted
	}
	return order
}

// LoadConfigWithCLI loads the config file at configPath, or the defaults when it
// is empty, and applies the command-line values that were explicitly set.
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.KeyOrder != "" {
		cfg.KeyOrder = cli.KeyOrder
	}
	if cli.FileHeader != nil {
		cfg.Output.FileHeader = *cli.FileHeader
	}
	if cli.CRLF != nil {
		if *cli.CRLF {
			cfg.Output.LineEndings = LineEndingsCRLF
		} else {
			cfg.Output.LineEndings = LineEndingsLF
		}
	}
	if cli.Debug != nil {
		cfg.Dev.Debug = *cli.Debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
