// Package fatigue tracks per-player stamina across a game and decides
// injuries on high-impact events.
package fatigue

import (
	"github.com/okian/gridiron/internal/domain/model"
)

// Accumulation and recovery rates.
const (
	perYard         = 0.004
	perSecond       = 0.01
	recoveryPerSec  = 0.004
	multiplierSlope = 0.35

	// RotateThreshold is the fatigue level above which a player is
	// replaced by a fresher backup when one is available.
	RotateThreshold = 0.6
)

// Load is what one participant did on one snap.
type Load struct {
	PlayerID   string
	Distance   float64
	Duration   float64
	Durability float64
}

// Tracker holds the current fatigue level of every player in one game.
// It is owned by a single game and not safe for concurrent use.
type Tracker struct {
	levels map[string]float64
}

// NewTracker returns a tracker with everyone fresh.
func NewTracker() *Tracker {
	return &Tracker{levels: make(map[string]float64)}
}

// Level returns a player's fatigue in [0,1].
func (t *Tracker) Level(id string) float64 {
	return t.levels[id]
}

// Apply accumulates a snap's load. Durable players tire more slowly.
func (t *Tracker) Apply(l Load) {
	gain := (perYard*l.Distance + perSecond*l.Duration) * (1.3 - l.Durability/200)
	t.levels[l.PlayerID] = clamp01(t.levels[l.PlayerID] + gain)
}

// Recover decays a resting player's fatigue over seconds of game time.
func (t *Tracker) Recover(id string, seconds float64) {
	if seconds <= 0 {
		return
	}
	if lvl, ok := t.levels[id]; ok {
		t.levels[id] = clamp01(lvl - recoveryPerSec*seconds)
	}
}

// Snapshot returns a copy of every tracked level.
func (t *Tracker) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(t.levels))
	for k, v := range t.levels {
		out[k] = v
	}
	return out
}

// Multiplier scales speed and acceleration for a fatigue level.
func Multiplier(level float64) float64 {
	return 1 - multiplierSlope*clamp01(level)
}

// Freshest picks the least tired candidate, keeping roster order on ties.
// It returns false when candidates is empty.
func (t *Tracker) Freshest(candidates []model.Player) (model.Player, bool) {
	if len(candidates) == 0 {
		return model.Player{}, false
	}
	best := candidates[0]
	for _, p := range candidates[1:] {
		if t.Level(p.ID) < t.Level(best.ID) {
			best = p
		}
	}
	return best, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
