// Package config defines process configuration and how it is loaded.
package config

import (
	"runtime"

	"github.com/okian/gridiron/internal/domain/calibration"
	"github.com/okian/gridiron/internal/domain/ruleset"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr is the HTTP listen address of the serve command.
	Addr string `koanf:"addr"`
	// MaxStandingsLimit caps GET /standings?limit.
	MaxStandingsLimit int `koanf:"max_standings_limit"`

	// WorkerCount sets the number of game workers per season.
	WorkerCount int `koanf:"worker_count"`
	// QueueSize bounds the game job queue.
	QueueSize int `koanf:"queue_size"`

	// Season is the season number played by the season command.
	Season int `koanf:"season"`
	// Teams is the size of the generated league.
	Teams int `koanf:"teams"`
	// LeagueSeed drives roster generation.
	LeagueSeed uint64 `koanf:"league_seed"`
	// Seed is mixed into every schedule and game seed.
	Seed uint64 `koanf:"seed"`

	Rules ruleset.Rules `koanf:"rules"`
	// Tuning overrides named knobs; unset knobs keep their defaults.
	Tuning map[string]float64 `koanf:"tuning"`

	Calibration Calibration `koanf:"calibration"`
	Store       Store       `koanf:"store"`
	Export      Export      `koanf:"export"`
}

// Calibration configures the calibrate command.
type Calibration struct {
	Seasons  int `koanf:"seasons"`
	Parallel int `koanf:"parallel"`
	// Bands replaces the default realism bands when set.
	Bands []calibration.Band `koanf:"bands"`
}

// Store configures the SQLite result store. An empty path disables it.
type Store struct {
	Path      string `koanf:"path"`
	BatchSize int    `koanf:"batch_size"`
}

// Export configures the file export. An empty dir disables it.
type Export struct {
	Dir string `koanf:"dir"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		MaxStandingsLimit: 100,
		WorkerCount:       runtime.NumCPU(),
		QueueSize:         64,
		Season:            1,
		Teams:             8,
		LeagueSeed:        1,
		Seed:              0,
		Rules:             ruleset.DefaultRules(),
		Tuning:            map[string]float64{},
		Calibration: Calibration{
			Seasons:  10,
			Parallel: 2,
		},
		Store: Store{BatchSize: 500},
	}
}
