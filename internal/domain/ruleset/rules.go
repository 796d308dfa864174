// Package ruleset runs a full game as a state machine over downs, drives,
// quarters and overtime. It asks playcall for calls, the engine for plays
// and records every event in a per-game statbook. Every transition is
// checked against the game invariants and a violation aborts the game.
package ruleset

import (
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/playcall"
	"github.com/okian/gridiron/internal/domain/tuning"
	"github.com/okian/gridiron/pkg/logger"
)

// OvertimeMode selects how a tie after regulation is settled.
type OvertimeMode string

// Overtime modes.
const (
	// OvertimeSuddenDeath ends the game on any score.
	OvertimeSuddenDeath OvertimeMode = "sudden_death"
	// OvertimeModified ends the game on an opening-drive touchdown; any
	// other result guarantees the second team a possession, then sudden
	// death.
	OvertimeModified OvertimeMode = "modified"
	// OvertimeNone lets regulation ties stand.
	OvertimeNone OvertimeMode = "none"
)

// Rules are the game-level settings.
type Rules struct {
	QuarterLength    float64      `json:"quarter_length" koanf:"quarter_length"`
	Quarters         int          `json:"quarters" koanf:"quarters"`
	MaxPlays         int          `json:"max_plays" koanf:"max_plays"`
	Overtime         OvertimeMode `json:"overtime" koanf:"overtime"`
	OvertimeLength   float64      `json:"overtime_length" koanf:"overtime_length"`
	TimeoutsPerHalf  int          `json:"timeouts_per_half" koanf:"timeouts_per_half"`
	KickoffSpot      float64      `json:"kickoff_spot" koanf:"kickoff_spot"`
	KickoffTouchback float64      `json:"kickoff_touchback" koanf:"kickoff_touchback"`
	TwoMinuteWarning float64      `json:"two_minute_warning" koanf:"two_minute_warning"`
}

// DefaultRules are four 15-minute quarters with modified overtime.
func DefaultRules() Rules {
	return Rules{
		QuarterLength:    900,
		Quarters:         4,
		MaxPlays:         200,
		Overtime:         OvertimeModified,
		OvertimeLength:   600,
		TimeoutsPerHalf:  3,
		KickoffSpot:      35,
		KickoffTouchback: 25,
		TwoMinuteWarning: 120,
	}
}

// Validate reports the first bad setting as a *model.ConfigurationError.
func (r Rules) Validate() error {
	switch {
	case r.QuarterLength <= 0:
		return model.NewConfigurationError("rules.quarter_length", "%v must be positive", r.QuarterLength)
	case r.Quarters < 2 || r.Quarters%2 != 0:
		return model.NewConfigurationError("rules.quarters", "%d must be an even number of at least 2", r.Quarters)
	case r.MaxPlays <= 0:
		return model.NewConfigurationError("rules.max_plays", "%d must be positive", r.MaxPlays)
	case r.TimeoutsPerHalf < 0:
		return model.NewConfigurationError("rules.timeouts_per_half", "%d must not be negative", r.TimeoutsPerHalf)
	case r.KickoffSpot <= 0 || r.KickoffSpot >= 100:
		return model.NewConfigurationError("rules.kickoff_spot", "%v outside (0,100)", r.KickoffSpot)
	case r.KickoffTouchback <= 0 || r.KickoffTouchback >= 100:
		return model.NewConfigurationError("rules.kickoff_touchback", "%v outside (0,100)", r.KickoffTouchback)
	case r.TwoMinuteWarning < 0 || r.TwoMinuteWarning >= r.QuarterLength:
		return model.NewConfigurationError("rules.two_minute_warning", "%v outside [0,quarter_length)", r.TwoMinuteWarning)
	}
	switch r.Overtime {
	case OvertimeNone:
	case OvertimeSuddenDeath, OvertimeModified:
		if r.OvertimeLength <= 0 {
			return model.NewConfigurationError("rules.overtime_length", "%v must be positive", r.OvertimeLength)
		}
	default:
		return model.NewConfigurationError("rules.overtime", "unknown mode %q", r.Overtime)
	}
	return nil
}

type settings struct {
	rules   Rules
	tuning  tuning.Parameters
	logger  logger.Logger
	offense []playcall.Rule
	gameID  string
}

// Option configures SimulateGame.
type Option func(*settings)

// WithRules replaces the default rules.
func WithRules(r Rules) Option {
	return func(s *settings) { s.rules = r }
}

// WithTuning sets the engine's tuning knobs.
func WithTuning(t tuning.Parameters) Option {
	return func(s *settings) { s.tuning = t }
}

// WithLogger logs drive and game summaries at debug level.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOffenseRules replaces the situational playcalling table.
func WithOffenseRules(rules []playcall.Rule) Option {
	return func(s *settings) { s.offense = rules }
}

// WithGameID overrides the derived game id.
func WithGameID(id string) Option {
	return func(s *settings) { s.gameID = id }
}
