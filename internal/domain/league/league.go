// Package league generates rosters. Every team is drawn from the same
// position archetypes around the league-average rating, so a generated
// league plays to the calibration targets with neutral tuning.
package league

import (
	"fmt"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/seed"
)

// Roster composition per position.
var template = []struct { //nolint:gochecknoglobals // fixed roster template
	pos   model.Position
	count int
	first int
}{
	{model.QB, 2, 1},
	{model.RB, 3, 20},
	{model.WR, 6, 10},
	{model.TE, 2, 80},
	{model.OL, 7, 60},
	{model.DL, 6, 90},
	{model.LB, 5, 50},
	{model.CB, 4, 30},
	{model.S, 3, 40},
	{model.K, 1, 3},
	{model.P, 1, 4},
}

// RosterSize is the number of players Generate creates.
const RosterSize = 40

// archetype centers per position; unlisted attributes sit at the average.
var archetypes = map[model.Position]model.Attributes{ //nolint:gochecknoglobals // archetype table
	model.QB: {Speed: 60, Agility: 70, ThrowPower: 70, Accuracy: 70, Awareness: 70},
	model.RB: {Speed: 78, Agility: 78, BreakTackle: 70, Catching: 62, Strength: 65},
	model.WR: {Speed: 80, Agility: 78, Catching: 70, BreakTackle: 60},
	model.TE: {Speed: 66, Catching: 66, Blocking: 66, Strength: 74},
	model.OL: {Speed: 45, Strength: 80, Blocking: 70, Agility: 50},
	model.DL: {Speed: 60, Strength: 78, PassRush: 70, Tackling: 70},
	model.LB: {Speed: 68, Tackling: 72, Coverage: 64, PassRush: 62},
	model.CB: {Speed: 80, Agility: 78, Coverage: 70, Tackling: 62},
	model.S:  {Speed: 75, Coverage: 68, Tackling: 70},
	model.K:  {KickPower: 75, KickAccuracy: 75},
	model.P:  {KickPower: 72, KickAccuracy: 70},
}

// spread is the standard deviation of generated ratings.
const spread = 5.0

// Generate builds a deterministic roster for id from s.
func Generate(id, name string, s uint64) model.Team {
	g := seed.New(s)
	t := model.Team{ID: id, Name: name, Tendencies: model.DefaultTendencies()}
	for _, slot := range template {
		for k := 0; k < slot.count; k++ {
			base := model.LeagueAverage()
			overlay(&base, archetypes[slot.pos])
			t.Players = append(t.Players, model.Player{
				ID:         fmt.Sprintf("%s-%s%d", id, slot.pos, k+1),
				Name:       fmt.Sprintf("%s %s%d", name, slot.pos, k+1),
				Position:   slot.pos,
				Jersey:     slot.first + k,
				Attributes: jitter(base, g),
			})
		}
	}
	return t
}

// Uniform builds a roster where every rating is r. It isolates the
// models from roster variance.
func Uniform(id, name string, r float64) model.Team {
	t := model.Team{ID: id, Name: name, Tendencies: model.DefaultTendencies()}
	for _, slot := range template {
		for k := 0; k < slot.count; k++ {
			t.Players = append(t.Players, model.Player{
				ID:         fmt.Sprintf("%s-%s%d", id, slot.pos, k+1),
				Name:       fmt.Sprintf("%s %s%d", name, slot.pos, k+1),
				Position:   slot.pos,
				Jersey:     slot.first + k,
				Attributes: model.Uniform(r),
			})
		}
	}
	return t
}

// Teams generates n teams named T01..Tnn from a base seed.
func Teams(n int, base uint64) []model.Team {
	out := make([]model.Team, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("T%02d", i)
		out = append(out, Generate(id, "Team "+id, seed.Stream(base, i, "roster")))
	}
	return out
}

func overlay(dst *model.Attributes, src model.Attributes) {
	set := make(map[string]float64)
	src.Each(func(name string, v *float64) {
		if *v != 0 {
			set[name] = *v
		}
	})
	dst.Each(func(name string, v *float64) {
		if s, ok := set[name]; ok {
			*v = s
		}
	})
}

func jitter(a model.Attributes, g *seed.RNG) model.Attributes {
	a.Each(func(_ string, v *float64) {
		*v = clampRating(*v + g.Normal(0, spread))
	})
	return a
}

func clampRating(v float64) float64 {
	switch {
	case v < model.MinRating:
		return model.MinRating
	case v > model.MaxRating:
		return model.MaxRating
	}
	return v
}
