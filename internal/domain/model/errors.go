package model

import (
	"errors"
	"fmt"
)

// Sentinel kinds for engine errors. Use errors.Is against these; the concrete
// types below carry the offending field or check.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrInvariant     = errors.New("invariant violation")
)

// ConfigurationError reports malformed input detected before a simulation
// starts. Nothing is simulated when one is returned.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// NewConfigurationError builds a ConfigurationError with a formatted reason.
func NewConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InvariantViolation reports an internal state contradiction found mid-game.
// It is fatal for the current game and is never retried.
type InvariantViolation struct {
	Check  string
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s: %s", e.Check, e.Detail)
}

// Unwrap lets errors.Is match ErrInvariant.
func (e *InvariantViolation) Unwrap() error { return ErrInvariant }

// NewInvariantViolation builds an InvariantViolation with a formatted detail.
func NewInvariantViolation(check, format string, args ...any) *InvariantViolation {
	return &InvariantViolation{Check: check, Detail: fmt.Sprintf(format, args...)}
}
