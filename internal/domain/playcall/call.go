package playcall

import (
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/seed"
)

// Split of base run and short-pass weight.
const (
	insideShare   = 0.6
	shortShare    = 0.75
	goalLineYards = 95
)

func baseWeights(plan Gameplan) map[model.Concept]float64 {
	pass := 1 - plan.RunRate
	rest := pass * (1 - plan.DeepRate)
	return map[model.Concept]float64{
		model.RunInside:    plan.RunRate * insideShare,
		model.RunOutside:   plan.RunRate * (1 - insideShare),
		model.PassShort:    rest * shortShare,
		model.PassDeep:     pass * plan.DeepRate,
		model.PassSideline: rest * (1 - shortShare),
	}
}

// OffenseDistribution applies rules to the gameplan's base weights for a
// situation and normalizes. A nil rules slice uses OffenseRules.
func OffenseDistribution(s Situation, plan Gameplan, rules []Rule) Distribution {
	if rules == nil {
		rules = OffenseRules
	}
	w := baseWeights(plan)
	for _, r := range rules {
		if r.When.Match(s) {
			r.apply(w)
		}
	}
	total := 0.0
	for _, c := range Concepts {
		if w[c] < 0 {
			w[c] = 0
		}
		total += w[c]
	}
	d := make(Distribution, len(Concepts))
	for i, c := range Concepts {
		if total == 0 {
			d[i] = 1 / float64(len(Concepts))
			continue
		}
		d[i] = w[c] / total
	}
	return d
}

// CallOffense draws a concept for the situation from OffenseRules.
func CallOffense(s Situation, plan Gameplan, g *seed.RNG) model.Concept {
	return CallOffenseWith(s, plan, nil, g)
}

// CallOffenseWith draws a concept using a custom rule table.
func CallOffenseWith(s Situation, plan Gameplan, rules []Rule, g *seed.RNG) model.Concept {
	i := g.Choose(OffenseDistribution(s, plan, rules))
	if i < 0 {
		return model.RunInside
	}
	return Concepts[i]
}

// Front is a defensive personnel grouping.
type Front string

// Fronts.
const (
	FrontBase     Front = "base"
	FrontNickel   Front = "nickel"
	FrontDime     Front = "dime"
	FrontGoalLine Front = "goal_line"
)

// DefenseCall is the defensive decision for one snap.
type DefenseCall struct {
	Front    Front
	Coverage model.Coverage
	Blitz    bool
}

// DefenseOdds returns the front for a situation and the blitz probability.
func DefenseOdds(s Situation, plan Gameplan) (Front, float64) {
	front := FrontBase
	blitz := plan.BlitzRate
	switch {
	case s.Yardline >= goalLineYards:
		front = FrontGoalLine
		blitz *= 1.4
	case s.Down >= 2 && s.Distance >= 10:
		front = FrontDime
		blitz *= 0.8
	case s.Down >= 2 && s.Distance >= 7:
		front = FrontNickel
		blitz *= 0.8
	case s.Down >= 3 && s.Distance <= 2:
		blitz *= 1.6
	}
	return front, clampUnit(blitz, 0.9)
}

// CallDefense draws the defensive call.
func CallDefense(s Situation, plan Gameplan, g *seed.RNG) DefenseCall {
	front, blitz := DefenseOdds(s, plan)
	call := DefenseCall{Front: front, Coverage: model.Man, Blitz: g.Bernoulli(blitz)}
	if g.Bernoulli(plan.ZoneRate) {
		call.Coverage = model.Zone
	}
	return call
}

func clampUnit(v, hi float64) float64 {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
