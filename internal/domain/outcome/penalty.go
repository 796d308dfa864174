package outcome

import (
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/seed"
	"github.com/okian/gridiron/internal/domain/tuning"
)

// basePenaltyRate is the chance any foul is called on a snap.
const basePenaltyRate = 0.085

// PenaltyIncidence is the per-snap foul probability.
func PenaltyIncidence(t tuning.Parameters) float64 {
	return Clamp(basePenaltyRate*t.PenaltyRate(), 0, 0.5)
}

type foul struct {
	penalty model.Penalty
	weight  float64
}

var fouls = []foul{ //nolint:gochecknoglobals // fixed foul table
	{model.Penalty{Type: model.FalseStart, Side: model.SideOffense, Yards: 5, PreSnap: true}, 0.28},
	{model.Penalty{Type: model.Offside, Side: model.SideDefense, Yards: 5, PreSnap: true}, 0.17},
	{model.Penalty{Type: model.OffensiveHolding, Side: model.SideOffense, Yards: 10}, 0.30},
	{model.Penalty{Type: model.DefensiveHolding, Side: model.SideDefense, Yards: 5, AutoFirst: true}, 0.13},
	{model.Penalty{Type: model.PassInterference, Side: model.SideDefense, AutoFirst: true}, 0.12},
}

// PenaltyKind draws which foul was called. Pass interference on a play
// without a throw becomes defensive holding; its yardage is the spot of the
// foul and is filled in by the engine.
func PenaltyKind(g *seed.RNG, passPlay bool) model.Penalty {
	weights := make([]float64, len(fouls))
	for i, f := range fouls {
		weights[i] = f.weight
	}
	p := fouls[g.Choose(weights)].penalty
	if p.Type == model.PassInterference && !passPlay {
		return fouls[3].penalty
	}
	return p
}
