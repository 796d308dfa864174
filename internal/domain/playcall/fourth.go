package playcall

import (
	"github.com/okian/gridiron/internal/domain/model"
)

// Decision is a fourth-down choice.
type Decision string

// Fourth-down choices.
const (
	DecisionGo        Decision = "go"
	DecisionPunt      Decision = "punt"
	DecisionFieldGoal Decision = "field_goal"
)

// Fourth-down thresholds.
const (
	fieldGoalRange   = 52.0
	kickDepth        = 17.0
	shortYardage     = 1.0
	midfield         = 50.0
	lateClock        = 300.0
	oneScore         = -3
	rangePerKickPwr  = 0.2
	averageKickPower = model.LeagueAverageRating
)

// KickRange is the longest field goal the kicker will try.
func KickRange(kicker model.Attributes) float64 {
	return fieldGoalRange + (kicker.KickPower-averageKickPower)*rangePerKickPwr
}

// FourthDown decides between going for it, a field goal and a punt. Short
// yardage in opponent territory goes; trailing late goes unless a field
// goal ties or wins.
func FourthDown(s Situation, kicker model.Attributes) Decision {
	inRange := 100-s.Yardline+kickDepth <= KickRange(kicker)
	late := s.Quarter >= 4 && s.HalfClock <= lateClock
	switch {
	case late && s.ScoreDiff < 0:
		if inRange && s.ScoreDiff >= oneScore {
			return DecisionFieldGoal
		}
		return DecisionGo
	case s.Distance <= shortYardage && s.Yardline > midfield:
		return DecisionGo
	case inRange:
		return DecisionFieldGoal
	}
	return DecisionPunt
}
