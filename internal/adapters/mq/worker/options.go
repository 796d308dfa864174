package worker

import (
	"github.com/okian/gridiron/pkg/logger"
)

// Option applies a configuration option to a Pool.
type Option func(*Pool)

// WithName sets the pool name used in worker names and logs.
func WithName(name string) Option {
	return func(p *Pool) {
		if name != "" {
			p.name = name
		}
	}
}

// WithLogger sets a custom logger for the pool and its workers.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithSimulator replaces the game simulator.
func WithSimulator(s Simulator) Option {
	return func(p *Pool) {
		if s != nil {
			p.sim = s
		}
	}
}
