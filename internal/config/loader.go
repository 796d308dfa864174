package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/gridiron/internal/domain/tuning"
)

// Environment variables read by Load.
const (
	EnvPrefix = "GRIDIRON_"
	EnvFile   = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if GRIDIRON_CONFIG is set
//  3. env (prefix GRIDIRON_, "__" separates nested keys:
//     GRIDIRON_RULES__OVERTIME -> rules.overtime)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvFile {
			return ""
		}
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first bad setting wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	case c.MaxStandingsLimit < 1:
		return fmt.Errorf("%w: max_standings_limit must be positive, got %d", ErrInvalidConfig, c.MaxStandingsLimit)
	case c.Season < 1:
		return fmt.Errorf("%w: season must be positive, got %d", ErrInvalidConfig, c.Season)
	case c.Teams < 2:
		return fmt.Errorf("%w: teams must be at least 2, got %d", ErrInvalidConfig, c.Teams)
	case c.Calibration.Seasons < 1:
		return fmt.Errorf("%w: calibration.seasons must be positive, got %d", ErrInvalidConfig, c.Calibration.Seasons)
	case c.Calibration.Parallel < 1:
		return fmt.Errorf("%w: calibration.parallel must be positive, got %d", ErrInvalidConfig, c.Calibration.Parallel)
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.TuningParameters(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for i, b := range c.Calibration.Bands {
		if b.Metric == "" || b.Lo > b.Hi {
			return fmt.Errorf("%w: calibration.bands[%d] is malformed", ErrInvalidConfig, i)
		}
	}
	return nil
}

// TuningParameters overlays the configured knobs on the defaults.
func (c *Config) TuningParameters() (tuning.Parameters, error) {
	return tuning.FromMap(c.Tuning)
}
