package playcall

import (
	"math"

	"github.com/okian/gridiron/internal/domain/model"
)

// Range is an inclusive interval. The zero value matches anything.
type Range struct {
	Lo, Hi float64
	set    bool
}

// Between matches lo <= v <= hi.
func Between(lo, hi float64) Range { return Range{Lo: lo, Hi: hi, set: true} }

// AtLeast matches v >= lo.
func AtLeast(lo float64) Range { return Between(lo, math.Inf(1)) }

// AtMost matches v <= hi.
func AtMost(hi float64) Range { return Between(math.Inf(-1), hi) }

// Contains reports whether v is in the range.
func (r Range) Contains(v float64) bool {
	return !r.set || (v >= r.Lo && v <= r.Hi)
}

// Bucket selects situations. Unset ranges match anything.
type Bucket struct {
	Down      Range
	Distance  Range
	Yardline  Range
	HalfClock Range
	ScoreDiff Range
	Quarter   Range
}

// Match reports whether s falls in the bucket.
func (b Bucket) Match(s Situation) bool {
	return b.Down.Contains(float64(s.Down)) &&
		b.Distance.Contains(s.Distance) &&
		b.Yardline.Contains(s.Yardline) &&
		b.HalfClock.Contains(s.HalfClock) &&
		b.ScoreDiff.Contains(float64(s.ScoreDiff)) &&
		b.Quarter.Contains(float64(s.Quarter))
}

// Rule rescales concept weights in a bucket: w = w*Mul + Add. Concepts
// missing from Mul keep their weight.
type Rule struct {
	Name string
	When Bucket
	Mul  map[model.Concept]float64
	Add  map[model.Concept]float64
}

func (r Rule) apply(w map[model.Concept]float64) {
	for _, c := range Concepts {
		if m, ok := r.Mul[c]; ok {
			w[c] *= m
		}
		w[c] += r.Add[c]
	}
}

// Concepts lists offensive concepts in draw order.
var Concepts = []model.Concept{ //nolint:gochecknoglobals // fixed draw order
	model.RunInside, model.RunOutside, model.PassShort, model.PassDeep, model.PassSideline,
}

func runs(m float64) map[model.Concept]float64 {
	return map[model.Concept]float64{model.RunInside: m, model.RunOutside: m}
}

func passes(m float64) map[model.Concept]float64 {
	return map[model.Concept]float64{model.PassShort: m, model.PassDeep: m, model.PassSideline: m}
}

// OffenseRules is the default situational table, applied in order.
var OffenseRules = []Rule{ //nolint:gochecknoglobals // default rule table
	{
		Name: "third_and_long",
		When: Bucket{Down: Between(3, 3), Distance: AtLeast(7)},
		Mul:  runs(0.15),
		Add:  map[model.Concept]float64{model.PassShort: 0.5, model.PassDeep: 0.2, model.PassSideline: 0.1},
	},
	{
		Name: "third_and_short",
		When: Bucket{Down: Between(3, 4), Distance: AtMost(2)},
		Mul: map[model.Concept]float64{
			model.RunInside: 2, model.RunOutside: 2,
			model.PassShort: 0.5, model.PassDeep: 0.5, model.PassSideline: 0.5,
		},
		Add: map[model.Concept]float64{model.RunInside: 0.5, model.RunOutside: 0.3},
	},
	{
		Name: "fourth_and_medium",
		When: Bucket{Down: Between(4, 4), Distance: AtLeast(3)},
		Mul:  runs(0.3),
		Add:  map[model.Concept]float64{model.PassShort: 0.4},
	},
	{
		Name: "two_minute_trailing",
		When: Bucket{HalfClock: AtMost(120), ScoreDiff: AtMost(-1)},
		Mul:  runs(0.3),
		Add:  map[model.Concept]float64{model.PassSideline: 0.8, model.PassShort: 0.3},
	},
	{
		Name: "protect_lead",
		When: Bucket{Quarter: AtLeast(4), HalfClock: AtMost(300), ScoreDiff: AtLeast(8)},
		Mul:  passes(0.6),
		Add:  runs(0.3),
	},
	{
		Name: "goal_line",
		When: Bucket{Yardline: AtLeast(97)},
		Mul:  map[model.Concept]float64{model.RunInside: 1.5, model.PassDeep: 0.2},
	},
}

// Distribution is a normalized probability per concept in Concepts order.
type Distribution []float64

// P returns the probability of c.
func (d Distribution) P(c model.Concept) float64 {
	for i, k := range Concepts {
		if k == c && i < len(d) {
			return d[i]
		}
	}
	return 0
}

// Pass is the total probability of a pass concept.
func (d Distribution) Pass() float64 {
	return d.P(model.PassShort) + d.P(model.PassDeep) + d.P(model.PassSideline)
}

// Run is the total probability of a run concept.
func (d Distribution) Run() float64 {
	return d.P(model.RunInside) + d.P(model.RunOutside)
}
