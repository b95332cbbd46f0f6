package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read from the working directory when no config file is named.
const DefaultPath = "pdfprint.yaml"

type Config struct {
	PricePerSheet float64 `yaml:"price_per_sheet"`
	Output        string  `yaml:"output"`
	Exclude       string  `yaml:"exclude"`
	Reader        string  `yaml:"reader"`
	Color         bool    `yaml:"color"`
	OpenLimit     int     `yaml:"open_limit"`
	// Viewer replaces the platform opener. The file path is appended as the last argument.
	Viewer  []string `yaml:"viewer"`
	Verbose bool     `yaml:"verbose"`
}

func Default() *Config {
	return &Config{
		PricePerSheet: 0.03,
		Output:        "compact_pdf.pdf",
		Reader:        "pdfcpu",
		Color:         true,
		OpenLimit:     5,
	}
}

// Load reads path over the defaults. Keys missing from the file keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve loads the named file, or DefaultPath when name is empty. Only a
// missing DefaultPath falls back to the defaults.
func Resolve(name string) (*Config, error) {
	if name != "" {
		return Load(name)
	}

	cfg, err := Load(DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) validate() error {
	if c.PricePerSheet < 0 {
		return fmt.Errorf("price_per_sheet must not be negative, got %v", c.PricePerSheet)
	}
	if c.OpenLimit < 0 {
		return fmt.Errorf("open_limit must not be negative, got %d", c.OpenLimit)
	}
	if c.Output == "" {
		return errors.New("output must not be empty")
	}
	return nil
}
