package rootcmd

import (
	"fmt"
	"log/slog"

	"yashubustudio/chanpick/chanpick"
	"yashubustudio/chanpick/logger"
)

// Globals are the flags shared by every chanpick binary. Values set here
// override the configuration file.
type Globals struct {
	Config        string `short:"c" help:"Configuration file (.json, .yaml or .yml)" default:"config.json" type:"path"`
	TableFile     string `name:"table" short:"t" help:"Results table (CSV, or TSV by extension)" type:"path"`
	ExclusionFile string `name:"exclusions" short:"e" help:"Exclusion list JSON file" type:"path"`
	Key           string `short:"q" help:"Configuration key, e.g. 1530-1537-1538"`
	LogLevel      string `name:"log-level" help:"Log level (debug, info, warn, error)"`
}

// Load reads the configuration file, applies flag overrides and sets up logging.
func (g *Globals) Load() (chanpick.Config, *slog.Logger, error) {
	cfg, err := chanpick.LoadConfig(g.Config)
	if err != nil {
		return cfg, nil, err
	}
	if g.TableFile != "" {
		cfg.TablePath = g.TableFile
	}
	if g.ExclusionFile != "" {
		cfg.ExclusionPath = g.ExclusionFile
	}
	if g.Key != "" {
		key, err := chanpick.ParseKey(g.Key)
		if err != nil {
			return cfg, nil, fmt.Errorf("--key: %w", err)
		}
		cfg.Key = key
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	logger.SetLevel(cfg.LogLevel)
	return cfg, logger.Setup(), nil
}
