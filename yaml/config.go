// Package yaml loads the user configuration file and merges it over the
// built-in defaults.
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/paperpress/paperpress"
)

// Config is the on-disk configuration schema. Nested sections map
// naturally to CLI flags.
type Config struct {
	Defaults paperpress.ConversionOptions `yaml:"defaults"`

	Extractors struct {
		// Primary and Fallback name the extraction strategies in order.
		Primary  string `yaml:"primary"`
		Fallback string `yaml:"fallback"`

		// TimeoutSeconds bounds each page fetch.
		TimeoutSeconds int `yaml:"timeout"`

		UserAgent string `yaml:"user_agent"`
	} `yaml:"extractors"`

	Batch struct {
		Concurrency       int     `yaml:"concurrency"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
	} `yaml:"batch"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	var cfg Config
	cfg.Defaults = paperpress.ConversionOptions{
		Columns:        2,
		FontSize:       "11pt",
		Template:       "article",
		IncludeImages:  true,
		Margins:        "2cm",
		FontFamily:     "times",
		PDFEngine:      "xelatex",
		TimeoutSeconds: 120,
	}
	cfg.Extractors.Primary = "trafilatura"
	cfg.Extractors.Fallback = "readability"
	cfg.Extractors.TimeoutSeconds = 30
	cfg.Batch.Concurrency = 2
	cfg.Batch.RequestsPerSecond = 1
	return cfg
}

// configPaths returns candidate config file locations in precedence order.
func configPaths(home string) []string {
	return []string{
		filepath.Join(home, ".paperpress.yml"),
		filepath.Join(home, ".paperpress.yaml"),
		filepath.Join(home, ".config", "paperpress", "config.yml"),
		filepath.Join(home, ".config", "paperpress", "config.yaml"),
	}
}

// Load returns the defaults merged with the first config file found in the
// standard locations. A missing file is not an error.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil
	}

	for _, path := range configPaths(home) {
		cfg, err := LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return DefaultConfig(), nil
}

// LoadFile returns the defaults merged with the config file at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	if err := yamlv3.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
