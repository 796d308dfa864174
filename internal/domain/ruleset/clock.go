package ruleset

import (
	"math"

	"github.com/okian/gridiron/internal/domain/seed"
)

// Runoff between snaps while the clock keeps running.
const (
	runoffLo     = 38.0
	runoffHi     = 48.0
	hurryRunoffL = 6.0
	hurryRunoffH = 12.0
	// the game clock stops for out of bounds and penalties only in the
	// last lateWindow seconds of the game, or late in the first half.
	lateWindow = 300.0
)

// tick takes a play's duration off the clock and, unless the play stopped
// it, the runoff to the next snap. It returns the game time that passed.
func (g *game) tick(duration float64, stops bool) float64 {
	st := &g.state
	before := st.Clock
	st.Clock = math.Max(0, st.Clock-duration)
	if g.crossedWarning(before) {
		g.warnPending = true
	} else if !stops && st.Clock > 0 {
		runoff := g.runoff()
		if g.timeout() {
			runoff = 0
		}
		st.Clock = math.Max(0, st.Clock-runoff)
		if g.crossedWarning(before) {
			st.Clock = g.rules.TwoMinuteWarning
			g.warnPending = true
		}
	}
	elapsed := before - st.Clock
	if g.drive != nil {
		g.drive.Duration += elapsed
	}
	return elapsed
}

func (g *game) runoff() float64 {
	r := seed.New(seed.Stream(g.seed, g.idx, seed.SaltClock))
	if g.hurryUp() {
		return r.Uniform(hurryRunoffL, hurryRunoffH)
	}
	return r.Uniform(runoffLo, runoffHi)
}

// closingQuarter reports whether the current quarter ends a half.
func (g *game) closingQuarter() bool {
	q := g.state.Quarter
	return g.state.Overtime || q == g.rules.Quarters/2 || q == g.rules.Quarters
}

// lateInHalf is the final two minutes of a half.
func (g *game) lateInHalf() bool {
	return g.closingQuarter() && g.state.Clock <= g.rules.TwoMinuteWarning
}

// finalMinutes is the stretch where out of bounds and penalties stop the
// clock: the two minutes before the half and the last five of the game.
func (g *game) finalMinutes() bool {
	st := g.state
	if st.Overtime || st.Quarter == g.rules.Quarters {
		return st.Clock <= lateWindow
	}
	return g.lateInHalf()
}

func (g *game) crossedWarning(before float64) bool {
	w := g.rules.TwoMinuteWarning
	return g.closingQuarter() && !g.warned && !g.warnPending && before > w && g.state.Clock <= w
}

// trailing returns the side that wants the clock stopped: the team behind,
// or the offense when tied in the second half.
func (g *game) trailing() (int, bool) {
	st := g.state
	switch diff := st.ScoreDiff(); {
	case diff < 0:
		return st.Offense(), true
	case diff > 0:
		return st.Defense(), true
	case st.Quarter > g.rules.Quarters/2:
		return st.Offense(), true
	}
	return 0, false
}

// timeout spends a timeout for the trailing side late in a half.
func (g *game) timeout() bool {
	if !g.lateInHalf() {
		return false
	}
	who, ok := g.trailing()
	if !ok || g.state.Timeouts[who] == 0 {
		return false
	}
	g.state.Timeouts[who]--
	return true
}

// hurryUp is a two-minute offense: any offense before the half, a trailing
// or tied one at the end of the game.
func (g *game) hurryUp() bool {
	if !g.lateInHalf() {
		return false
	}
	if g.state.Quarter == g.rules.Quarters/2 {
		return true
	}
	who, ok := g.trailing()
	return ok && who == g.state.Offense()
}

// halfClock is the time left in the current half.
func (g *game) halfClock() float64 {
	st := g.state
	if st.Overtime {
		return st.Clock
	}
	half := g.rules.Quarters / 2
	end := half
	if st.Quarter > half {
		end = g.rules.Quarters
	}
	return float64(end-st.Quarter)*g.rules.QuarterLength + st.Clock
}
