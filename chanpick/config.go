package chanpick

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "config.json"

// ColumnConfig selects the table columns explicitly. Empty fields fall back to header detection.
type ColumnConfig struct {
	Key   string `json:"key,omitempty" yaml:"key,omitempty"`
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Score string `json:"score,omitempty" yaml:"score,omitempty"`
}

// ChartConfig controls both chart modes.
type ChartConfig struct {
	ScaleFactor      float64 `json:"scaleFactor" yaml:"scaleFactor"`
	Width            int     `json:"width" yaml:"width"`
	Height           int     `json:"height" yaml:"height"`
	CumulativeWidth  int     `json:"cumulativeWidth" yaml:"cumulativeWidth"`
	CumulativeHeight int     `json:"cumulativeHeight" yaml:"cumulativeHeight"`
	XMin             float64 `json:"xMin" yaml:"xMin"`
	XMax             float64 `json:"xMax" yaml:"xMax"`
	YMargin          float64 `json:"yMargin" yaml:"yMargin"`
}

// Config aggregates runtime settings persisted to config.json (or a YAML file).
type Config struct {
	TablePath         string       `json:"tablePath" yaml:"tablePath"`
	ExclusionPath     string       `json:"exclusionPath" yaml:"exclusionPath"`
	Key               Key          `json:"key" yaml:"key"`
	DefaultExclusions []float64    `json:"defaultExclusions" yaml:"defaultExclusions"`
	Iterations        int          `json:"iterations" yaml:"iterations"`
	Columns           ColumnConfig `json:"columns" yaml:"columns"`
	// Candidates lists the header names tried when a column is not set explicitly.
	Candidates ColumnCandidates `json:"columnCandidates" yaml:"columnCandidates"`
	Chart      ChartConfig      `json:"chart" yaml:"chart"`
	LogLevel   string           `json:"logLevel" yaml:"logLevel"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	if c.DefaultExclusions != nil && out.DefaultExclusions == nil {
		out.DefaultExclusions = []float64{}
	}
	return out
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.TablePath) == "" {
		c.TablePath = DefaultTablePath
	}
	if strings.TrimSpace(c.ExclusionPath) == "" {
		c.ExclusionPath = DefaultExclusionPath
	}
	if len(c.Key) == 0 {
		c.Key = DefaultKey()
	}
	if c.DefaultExclusions == nil {
		c.DefaultExclusions = DefaultExclusions()
	}
	if c.Iterations <= 0 {
		c.Iterations = DefaultIterations
	}
	c.Candidates = c.Candidates.withDefaults()
	if c.Chart.ScaleFactor == 0 {
		c.Chart.ScaleFactor = DefaultScaleFactor
	}
	if c.Chart.Width <= 0 {
		c.Chart.Width = 800
	}
	if c.Chart.Height <= 0 {
		c.Chart.Height = 1000
	}
	if c.Chart.CumulativeWidth <= 0 {
		c.Chart.CumulativeWidth = 1000
	}
	if c.Chart.CumulativeHeight <= 0 {
		c.Chart.CumulativeHeight = 1000
	}
	if c.Chart.XMin == 0 && c.Chart.XMax == 0 {
		c.Chart.XMin = DefaultXMin
		c.Chart.XMax = DefaultXMax
	}
	if c.Chart.YMargin == 0 {
		c.Chart.YMargin = DefaultYMargin
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// TableOptions converts the column settings into loader options.
func (c Config) TableOptions() TableOptions {
	return TableOptions{
		KeyColumn:   c.Columns.Key,
		IDColumn:    c.Columns.ID,
		ScoreColumn: c.Columns.Score,
		Candidates:  c.Candidates,
	}
}

// LoadConfig loads configuration from the given path or the default config.json.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	cfg.ApplyDefaults()
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := replaceFile(path, data); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// UnmarshalYAML accepts either a sequence of numbers or the hyphen-joined string form.
func (k *Key) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		parsed, err := ParseKey(value.Value)
		if err != nil {
			return err
		}
		*k = parsed
		return nil
	}
	var list []float64
	if err := value.Decode(&list); err != nil {
		return fmt.Errorf("decode key: %w", err)
	}
	*k = list
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// replaceFile writes data next to path and renames it into place.
func replaceFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
