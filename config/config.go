package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/mgallet/horaire/core/metrics"
)

// Config is the root configuration of the service.
type Config struct {
	Optimizer OptimizerConfig    `json:"optimizer"`
	Metrics   coremetrics.Config `json:"metrics"`
	Logging   LoggingConfig      `json:"logging"`
	// Holidays lists excluded dates as YYYY-MM-DD strings.
	Holidays []string `json:"holidays"`
}

// OptimizerConfig carries the planning parameters and strategy selection.
type OptimizerConfig struct {
	Algorithm      string  `json:"algorithm"`
	MaxHoursPerDay float64 `json:"max_hours_per_day"`
	IncludeAllDays bool    `json:"include_all_days"`
	DayStartHour   int     `json:"day_start_hour"`
	DayEndHour     int     `json:"day_end_hour"`
	HorizonDays    int     `json:"horizon_days"`
	Seed           int64   `json:"seed"`
	// Settings holds strategy specific options such as slice_hours or
	// population_size, decoded by the strategy factory.
	Settings map[string]any `json:"settings"`
}

// SetDefaults applies sane defaults.
func (c *OptimizerConfig) SetDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = "greedy"
	}
	if c.MaxHoursPerDay == 0 {
		c.MaxHoursPerDay = 8
	}
}

// Validate checks mandatory fields.
func (c OptimizerConfig) Validate() error {
	if c.MaxHoursPerDay <= 0 {
		return fmt.Errorf("max_hours_per_day must be positive")
	}
	return nil
}

// Load reads the configuration from a JSON or YAML file, applying
// environment overrides with the H_ prefix.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("H_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "h_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Optimizer.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Optimizer.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
