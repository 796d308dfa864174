package config

import "errors"

var (
	// ErrInvalidConfig wraps every Validate failure, including bad rules
	// and tuning knobs.
	ErrInvalidConfig = errors.New("gridiron: invalid config")
	// ErrLoadConfig wraps file, env and decode failures in Load.
	ErrLoadConfig = errors.New("gridiron: load config")
)
