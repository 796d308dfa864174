// Package playcall chooses plays. Offensive and defensive calls come from a
// team's gameplan sliders adjusted by data-driven situational rule tables;
// builders turn a call into a concrete play from the available depth chart.
package playcall

import (
	"math"

	"github.com/okian/gridiron/internal/domain/model"
)

// Gameplan holds a team's sliders, each in [0,1]. Man coverage is the
// complement of ZoneRate so the two always sum to one.
type Gameplan struct {
	RunRate   float64
	DeepRate  float64
	BlitzRate float64
	ZoneRate  float64
}

// NewGameplan validates a team's tendencies.
func NewGameplan(t model.Tendencies) (Gameplan, error) {
	sliders := []struct {
		name string
		v    float64
	}{
		{"run_rate", t.RunRate},
		{"deep_rate", t.DeepRate},
		{"blitz_rate", t.BlitzRate},
		{"zone_rate", t.ZoneRate},
	}
	for _, s := range sliders {
		if s.v < 0 || s.v > 1 || math.IsNaN(s.v) {
			return Gameplan{}, model.NewConfigurationError("gameplan."+s.name, "%v outside [0,1]", s.v)
		}
	}
	return Gameplan(t), nil
}

// ManRate is the share of man coverage calls.
func (g Gameplan) ManRate() float64 { return 1 - g.ZoneRate }

// Situation is what a playcaller sees before the snap.
type Situation struct {
	Down     int
	Distance float64
	// Yardline is the offense's distance from its own goal line.
	Yardline float64
	// HalfClock is seconds left in the current half.
	HalfClock float64
	// ScoreDiff is the offense's score minus the defense's.
	ScoreDiff int
	Quarter   int
}
