// Package calibration compares league aggregates against realism bands and
// suggests bounded tuning changes. It never changes tuning by itself; a
// caller applies a report explicitly.
package calibration

import (
	"github.com/okian/gridiron/internal/domain/tuning"
)

// Metric names a league aggregate.
type Metric string

// Calibrated metrics.
const (
	PlaysPerTeam     Metric = "plays_per_team"
	CompletionPct    Metric = "completion_pct"
	YardsPerAttempt  Metric = "yards_per_attempt"
	SackRate         Metric = "sack_rate"
	IntRate          Metric = "int_rate"
	YardsPerCarry    Metric = "rush_ypc"
	PenaltiesPerTeam Metric = "penalties_per_team"
)

// Band is the realistic range of a metric and the knob that moves it. An
// empty Knob means the metric is reported only.
type Band struct {
	Metric Metric  `json:"metric" koanf:"metric"`
	Lo     float64 `json:"lo" koanf:"lo"`
	Hi     float64 `json:"hi" koanf:"hi"`
	Knob   string  `json:"knob,omitempty" koanf:"knob"`
}

// Contains reports whether v is inside the band, bounds included.
func (b Band) Contains(v float64) bool { return v >= b.Lo && v <= b.Hi }

// Midpoint is the target a suggestion aims for.
func (b Band) Midpoint() float64 { return (b.Lo + b.Hi) / 2 }

// DefaultBands are NFL-like targets.
func DefaultBands() []Band {
	return []Band{
		{Metric: CompletionPct, Lo: 0.58, Hi: 0.68, Knob: tuning.CompletionMod},
		{Metric: YardsPerAttempt, Lo: 6.0, Hi: 7.8, Knob: tuning.YACMod},
		{Metric: SackRate, Lo: 0.05, Hi: 0.09, Knob: tuning.SackDistance},
		{Metric: IntRate, Lo: 0.015, Hi: 0.03, Knob: tuning.IntMod},
		{Metric: YardsPerCarry, Lo: 4.0, Hi: 4.7, Knob: tuning.RushBlockMod},
		{Metric: PenaltiesPerTeam, Lo: 4, Hi: 9, Knob: tuning.PenaltyRateMod},
		{Metric: PlaysPerTeam, Lo: 60, Hi: 75},
	}
}
