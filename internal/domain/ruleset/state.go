package ruleset

import (
	"github.com/okian/gridiron/internal/domain/model"
)

// Phase is where the game state machine is.
type Phase string

// Phases.
const (
	PhasePreKickoff       Phase = "pre_kickoff"
	PhaseLiveDown         Phase = "live_down"
	PhaseBetweenDowns     Phase = "between_downs"
	PhaseTwoMinuteWarning Phase = "two_minute_warning"
	PhaseQuarterEnd       Phase = "quarter_end"
	PhaseOvertime         Phase = "overtime"
	PhaseFinal            Phase = "final"
)

// Side indexes.
const (
	home = 0
	away = 1
)

// GameState is the scoreboard and ball position. Yardline is measured from
// the possessing team's own goal line.
type GameState struct {
	Phase      Phase   `json:"phase"`
	Quarter    int     `json:"quarter"`
	Clock      float64 `json:"clock"`
	Possession int     `json:"possession"`
	Down       int     `json:"down"`
	Distance   float64 `json:"distance"`
	Yardline   float64 `json:"yardline"`
	Score      [2]int  `json:"score"`
	Timeouts   [2]int  `json:"timeouts"`
	Overtime   bool    `json:"overtime"`
}

// Offense returns the possessing side index.
func (s GameState) Offense() int { return s.Possession }

// Defense returns the other side index.
func (s GameState) Defense() int { return 1 - s.Possession }

// ScoreDiff is the offense's score minus the defense's.
func (s GameState) ScoreDiff() int { return s.Score[s.Offense()] - s.Score[s.Defense()] }

// check verifies the state after a transition. period is the length of the
// current quarter.
func (s GameState) check(period float64) error {
	switch {
	case s.Clock < 0 || s.Clock > period:
		return model.NewInvariantViolation("clock", "%.2f outside [0,%.0f] in quarter %d", s.Clock, period, s.Quarter)
	case s.Yardline < 0 || s.Yardline > 100:
		return model.NewInvariantViolation("yardline", "%.2f outside [0,100]", s.Yardline)
	case s.Score[home] < 0 || s.Score[away] < 0:
		return model.NewInvariantViolation("score", "negative score %v", s.Score)
	case s.Down < 1 || s.Down > 4:
		return model.NewInvariantViolation("down", "%d outside 1-4", s.Down)
	case s.Distance <= 0:
		return model.NewInvariantViolation("distance", "%.2f must be positive", s.Distance)
	case s.Possession != home && s.Possession != away:
		return model.NewInvariantViolation("possession", "unknown side %d", s.Possession)
	case s.Timeouts[home] < 0 || s.Timeouts[away] < 0:
		return model.NewInvariantViolation("timeouts", "negative timeouts %v", s.Timeouts)
	}
	return nil
}
