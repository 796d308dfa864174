package statbook

import (
	"github.com/okian/gridiron/internal/domain/model"
)

// Rates are the derived efficiency numbers for one team or the league.
type Rates struct {
	TeamID          string  `json:"team_id"`
	Plays           int     `json:"plays"`
	EPAPerPlay      float64 `json:"epa_per_play"`
	SuccessRate     float64 `json:"success_rate"`
	PressureRate    float64 `json:"pressure_rate"`
	CompletionPct   float64 `json:"completion_pct"`
	YardsPerAttempt float64 `json:"yards_per_attempt"`
	SackRate        float64 `json:"sack_rate"`
	IntRate         float64 `json:"int_rate"`
	YardsPerCarry   float64 `json:"yards_per_carry"`
}

// RatesOf derives rates from a team line.
func RatesOf(t TeamLine) Rates {
	return Rates{
		TeamID:          t.TeamID,
		Plays:           t.Plays,
		EPAPerPlay:      ratio(t.EPA, t.Plays),
		SuccessRate:     ratio(float64(t.Successes), t.Plays),
		PressureRate:    ratio(float64(t.Pressured), t.Dropbacks()),
		CompletionPct:   ratio(float64(t.Completions), t.PassAttempts),
		YardsPerAttempt: ratio(t.PassYards, t.PassAttempts),
		SackRate:        ratio(float64(t.SacksTaken), t.Dropbacks()),
		IntRate:         ratio(float64(t.Interceptions), t.PassAttempts),
		YardsPerCarry:   ratio(t.RushYards, t.RushAttempts),
	}
}

// Advanced holds per-team and league rates.
type Advanced struct {
	Teams  map[string]Rates `json:"teams"`
	League Rates            `json:"league"`
}

// AdvancedRates derives EPA per play, success rate, pressure rate and the
// passing and rushing rates from the book.
func (b *Book) AdvancedRates() Advanced {
	return AdvancedOf(b.Boxscore())
}

// AdvancedOf derives rates from an already reduced box score.
func AdvancedOf(bx Boxscore) Advanced {
	a := Advanced{Teams: make(map[string]Rates, len(bx.Teams))}
	for _, id := range bx.TeamIDs() {
		a.Teams[id] = RatesOf(*bx.Teams[id])
	}
	a.League = RatesOf(bx.League())
	return a
}

// Reconcile checks that every team's pass_attempt events match its
// terminal pass events.
func (bx Boxscore) Reconcile() error {
	for _, id := range bx.TeamIDs() {
		t := bx.Teams[id]
		if t.AttemptEvents != t.PassAttempts {
			return model.NewInvariantViolation("pass_attempts",
				"team %s: %d attempt events, %d completions+incompletions+interceptions",
				id, t.AttemptEvents, t.PassAttempts)
		}
	}
	return nil
}

func ratio(num float64, den int) float64 {
	if den == 0 {
		return 0
	}
	return num / float64(den)
}
