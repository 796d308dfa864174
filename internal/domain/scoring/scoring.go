// Package scoring holds the expected-points model: the average number of
// points the offense will score next, given down, distance and field
// position. EPA for a play is the change it causes.
package scoring

import (
	"math"

	"github.com/okian/gridiron/internal/domain/model"
)

// Model coefficients.
const (
	ownGoalPoints   = -0.6
	pointsPerYard   = 0.069
	distancePenalty = 0.045
	standardToGo    = 10.0
	goalToGoBonus   = 0.3
	minPoints       = -2.5
	maxPoints       = 6.8
	touchdownValue  = 7.0
)

// downPenalty is what later downs cost against first down.
var downPenalty = [5]float64{0, 0, 0.35, 0.85, 1.4} //nolint:gochecknoglobals // lookup table

// State is the situation before or after a snap.
type State struct {
	Down     int
	Distance float64
	// Yardline is the offense's distance from its own goal line.
	Yardline float64
}

// ExpectedPoints returns the offense's expected points in s.
func ExpectedPoints(s State) float64 {
	down := s.Down
	if down < 1 || down > 4 {
		down = 1
	}
	ep := ownGoalPoints + pointsPerYard*s.Yardline - downPenalty[down]
	ep -= distancePenalty * (s.Distance - standardToGo)
	if s.Yardline+s.Distance >= 100 {
		ep += goalToGoBonus
	}
	return math.Max(minPoints, math.Min(maxPoints, ep))
}

// Next returns the state after a play gains yards from s, with flipped
// reporting whether the ball changed hands on downs.
func Next(s State, yards float64) (next State, flipped bool) {
	yl := s.Yardline + yards
	if yards >= s.Distance {
		return State{Down: 1, Distance: math.Min(standardToGo, 100-yl), Yardline: yl}, false
	}
	if s.Down >= 4 {
		return State{Down: 1, Distance: standardToGo, Yardline: 100 - yl}, true
	}
	return State{Down: s.Down + 1, Distance: s.Distance - yards, Yardline: yl}, false
}

// Added returns EPA for a play run from s with result r.
func Added(s State, r model.PlayResult) float64 {
	before := ExpectedPoints(s)
	switch {
	case r.Touchdown:
		return touchdownValue - before
	case r.Safety:
		return -float64(model.PointsSafety) - before
	case r.Turnover:
		opp := State{Down: 1, Distance: standardToGo, Yardline: clampField(100 - (s.Yardline + r.Yards))}
		return -ExpectedPoints(opp) - before
	}
	next, flipped := Next(s, r.Yards)
	next.Yardline = clampField(next.Yardline)
	if flipped {
		return -ExpectedPoints(next) - before
	}
	return ExpectedPoints(next) - before
}

// Success reports whether a gain kept the offense on schedule: 40% of the
// distance on first down, 60% on second, all of it on third and fourth.
func Success(s State, yards float64) bool {
	need := s.Distance
	switch s.Down {
	case 1:
		need *= 0.4
	case 2:
		need *= 0.6
	}
	return yards >= need
}

func clampField(y float64) float64 {
	return math.Max(1, math.Min(99, y))
}
