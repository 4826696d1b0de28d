package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"DispositionSentinel/internal/rules"
)

// Config holds all application configuration. The rules section overrides the
// built-in regulatory threshold table; unset fields keep their defaults.
type Config struct {
	Rules struct {
		AmplitudePct     float64 `yaml:"amplitude_pct"`
		AmplitudeDiffPct float64 `yaml:"amplitude_diff_pct"`
		ChangePct        float64 `yaml:"change_pct"`
		ChangeDiffPct    float64 `yaml:"change_diff_pct"`
		TurnoverPct      float64 `yaml:"turnover_pct"`
		MinVolume        float64 `yaml:"min_volume"`
		ConsecutiveDays  int     `yaml:"consecutive_days"`
		ShortWindow      int     `yaml:"short_window"`
		ShortWindowCount int     `yaml:"short_window_count"`
		LongWindow       int     `yaml:"long_window"`
		LongWindowCount  int     `yaml:"long_window_count"`
	} `yaml:"rules"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	def := rules.DefaultThresholds()
	if cfg.Rules.AmplitudePct == 0 {
		cfg.Rules.AmplitudePct = def.AmplitudePct
	}
	if cfg.Rules.AmplitudeDiffPct == 0 {
		cfg.Rules.AmplitudeDiffPct = def.AmplitudeDiffPct
	}
	if cfg.Rules.ChangePct == 0 {
		cfg.Rules.ChangePct = def.ChangePct
	}
	if cfg.Rules.ChangeDiffPct == 0 {
		cfg.Rules.ChangeDiffPct = def.ChangeDiffPct
	}
	if cfg.Rules.TurnoverPct == 0 {
		cfg.Rules.TurnoverPct = def.TurnoverPct
	}
	if cfg.Rules.MinVolume == 0 {
		cfg.Rules.MinVolume = def.MinVolume
	}
	if cfg.Rules.ConsecutiveDays == 0 {
		cfg.Rules.ConsecutiveDays = def.ConsecutiveDays
	}
	if cfg.Rules.ShortWindow == 0 {
		cfg.Rules.ShortWindow = def.ShortWindow
	}
	if cfg.Rules.ShortWindowCount == 0 {
		cfg.Rules.ShortWindowCount = def.ShortWindowCount
	}
	if cfg.Rules.LongWindow == 0 {
		cfg.Rules.LongWindow = def.LongWindow
	}
	if cfg.Rules.LongWindowCount == 0 {
		cfg.Rules.LongWindowCount = def.LongWindowCount
	}

	return cfg, nil
}

// Thresholds converts the config's rules section into the evaluator's table.
func (c *Config) Thresholds() rules.Thresholds {
	return rules.Thresholds{
		AmplitudePct:     c.Rules.AmplitudePct,
		AmplitudeDiffPct: c.Rules.AmplitudeDiffPct,
		ChangePct:        c.Rules.ChangePct,
		ChangeDiffPct:    c.Rules.ChangeDiffPct,
		TurnoverPct:      c.Rules.TurnoverPct,
		MinVolume:        c.Rules.MinVolume,
		ConsecutiveDays:  c.Rules.ConsecutiveDays,
		ShortWindow:      c.Rules.ShortWindow,
		ShortWindowCount: c.Rules.ShortWindowCount,
		LongWindow:       c.Rules.LongWindow,
		LongWindowCount:  c.Rules.LongWindowCount,
	}
}

// Validate checks that the threshold table is usable.
func (c *Config) Validate() error {
	r := c.Rules
	if r.AmplitudePct <= 0 || r.ChangePct <= 0 || r.TurnoverPct <= 0 {
		return fmt.Errorf("rule percentage thresholds must be positive")
	}
	if r.AmplitudeDiffPct <= 0 || r.ChangeDiffPct <= 0 {
		return fmt.Errorf("rule index-margin thresholds must be positive")
	}
	if r.MinVolume < 0 {
		return fmt.Errorf("rules.min_volume must be non-negative")
	}
	if r.ConsecutiveDays < 1 {
		return fmt.Errorf("rules.consecutive_days must be at least 1")
	}
	if r.ShortWindow < 1 || r.LongWindow < 1 {
		return fmt.Errorf("rule windows must be at least 1 day")
	}
	if r.ShortWindowCount > r.ShortWindow {
		return fmt.Errorf("rules.short_window_count exceeds the window length")
	}
	if r.LongWindowCount > r.LongWindow {
		return fmt.Errorf("rules.long_window_count exceeds the window length")
	}
	return nil
}
