package fatigue

import (
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/seed"
)

// Injury rates.
const (
	baseInjuryRate = 0.004
	maxInjuryRate  = 0.05
)

// Severity tier cut points on a uniform draw.
const (
	minorCut    = 0.70
	moderateCut = 0.93
)

// InjuryRate is the per-event injury probability for an impact magnitude.
// Impact 1 is a routine full-speed tackle.
func InjuryRate(impact, durability float64) float64 {
	p := baseInjuryRate * impact * (1.5 - durability/100)
	switch {
	case p < 0:
		return 0
	case p > maxInjuryRate:
		return maxInjuryRate
	}
	return p
}

// CheckInjury draws whether a high-impact event injures the player and, if
// so, how badly. It consumes draws from g only, so it is deterministic under
// the play seed.
func CheckInjury(kind model.EventType, playerID string, attrs model.Attributes, impact float64, g *seed.RNG) (model.Injury, bool) {
	if impact <= 0 {
		return model.Injury{}, false
	}
	if kind == model.EventSack {
		impact *= 1.2
	}
	if !g.Bernoulli(InjuryRate(impact, attrs.Durability)) {
		return model.Injury{}, false
	}
	inj := model.Injury{PlayerID: playerID}
	switch roll := g.Float64(); {
	case roll < minorCut:
		inj.Severity = model.Minor
		inj.OutPlays = g.IntRange(3, 10)
	case roll < moderateCut:
		inj.Severity = model.Moderate
		inj.OutGames = g.IntRange(1, 3)
	default:
		inj.Severity = model.Severe
		inj.OutWeeks = g.IntRange(2, 8)
	}
	return inj, true
}
