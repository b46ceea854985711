package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/wdm0006/hotdeck/pkg/logging"
)

// envPrefix prefixes every environment override, e.g. HOTDECK_REFERENCE.
const envPrefix = "HOTDECK"

type Config struct {
	// Reference is the complete table outputs are scored against. Optional.
	Reference  string          `json:"reference" toml:"reference" yaml:"reference" envconfig:"REFERENCE"`
	Datasets   []DatasetConfig `json:"datasets" toml:"datasets" yaml:"datasets" ignored:"true"`
	Strategies []string        `json:"strategies" toml:"strategies" yaml:"strategies" envconfig:"STRATEGIES"`
	Input      InputConfig     `json:"input" toml:"input" yaml:"input" envconfig:"INPUT"`
	Output     OutputConfig    `json:"output" toml:"output" yaml:"output" envconfig:"OUTPUT"`
	Log        logging.Config  `json:"log" toml:"log" yaml:"log" envconfig:"LOG"`
}

type DatasetConfig struct {
	Name string `json:"name" toml:"name" yaml:"name"`
	Path string `json:"path" toml:"path" yaml:"path"`
}

type InputConfig struct {
	MissingToken string `json:"missing_token" toml:"missing_token" yaml:"missing_token" envconfig:"MISSING_TOKEN"`
	// Delimiter is a single character; empty sniffs it from the first line.
	Delimiter string `json:"delimiter" toml:"delimiter" yaml:"delimiter" envconfig:"DELIMITER"`
	NoHeader  bool   `json:"no_header" toml:"no_header" yaml:"no_header" envconfig:"NO_HEADER"`
}

type OutputConfig struct {
	// Dir receives one file per dataset and strategy. Empty disables writing.
	Dir    string `json:"dir" toml:"dir" yaml:"dir" envconfig:"DIR"`
	Prefix string `json:"prefix" toml:"prefix" yaml:"prefix" envconfig:"PREFIX"`
	// Format is csv, jsonl or parquet.
	Format    string `json:"format" toml:"format" yaml:"format" envconfig:"FORMAT"`
	Delimiter string `json:"delimiter" toml:"delimiter" yaml:"delimiter" envconfig:"DELIMITER"`
	Header    bool   `json:"header" toml:"header" yaml:"header" envconfig:"HEADER"`
	Gzip      bool   `json:"gzip" toml:"gzip" yaml:"gzip" envconfig:"GZIP"`
}

func defaultConfig() Config {
	return Config{
		Strategies: []string{"mean", "hotdeck"},
		Input:      InputConfig{MissingToken: "?"},
		Output:     OutputConfig{Format: "csv"},
		Log:        logging.Config{Level: "info", Format: "text", Output: "stderr"},
	}
}

// loadConfig applies defaults, then the config file (decoder chosen by
// extension), then HOTDECK_* environment overrides.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := decodeConfig(path, b, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("config env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func decodeConfig(path string, b []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(b, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	case ".json", "":
		return json.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

func (c *Config) validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("no datasets configured")
	}
	seen := make(map[string]bool, len(c.Datasets))
	for i := range c.Datasets {
		d := &c.Datasets[i]
		if d.Path == "" {
			return fmt.Errorf("dataset %d: path is required", i)
		}
		if d.Name == "" {
			d.Name = datasetName(d.Path)
		}
		if seen[d.Name] {
			return fmt.Errorf("dataset %q listed twice", d.Name)
		}
		seen[d.Name] = true
	}
	if len(c.Strategies) == 0 {
		return fmt.Errorf("no strategies configured")
	}
	switch c.Output.Format {
	case "csv", "jsonl", "parquet":
	default:
		return fmt.Errorf("unsupported output format %q", c.Output.Format)
	}
	if c.Output.Format == "parquet" && c.Output.Gzip {
		return fmt.Errorf("gzip does not apply to parquet output")
	}
	for _, d := range []string{c.Input.Delimiter, c.Output.Delimiter} {
		if utf8.RuneCountInString(d) > 1 {
			return fmt.Errorf("delimiter %q must be a single character", d)
		}
	}
	return nil
}

// datasetName strips directories and every extension: "lib/V1_missing01.csv.gz"
// becomes "V1_missing01".
func datasetName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

func delimiter(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// outputPath names the imputed file <prefix>_<dataset>_imputed_<strategy>.<ext>.
func (c *Config) outputPath(dataset, strategy string) string {
	name := dataset + "_imputed_" + strings.ReplaceAll(strategy, "+", "_") + "." + c.Output.Format
	if c.Output.Prefix != "" {
		name = c.Output.Prefix + "_" + name
	}
	if c.Output.Gzip {
		name += ".gz"
	}
	return filepath.Join(c.Output.Dir, name)
}
