package calibration

import (
	"math"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/statbook"
	"github.com/okian/gridiron/internal/domain/tuning"
)

// Suggestions move a knob by at most this factor per report.
const (
	minRatio = 0.9
	maxRatio = 1.1
)

// Observation is one batch's league-wide metrics.
type Observation struct {
	Games  int                `json:"games"`
	Values map[Metric]float64 `json:"values"`
}

// Observe computes league metrics from a merged book of games games.
// Per-team metrics are per team-game.
func Observe(book *statbook.Book, games int) Observation {
	l := book.Boxscore().League()
	teamGames := 2 * games
	return Observation{
		Games: games,
		Values: map[Metric]float64{
			PlaysPerTeam:     ratio(float64(l.Plays), teamGames),
			CompletionPct:    ratio(float64(l.Completions), l.PassAttempts),
			YardsPerAttempt:  ratio(l.PassYards, l.PassAttempts),
			SackRate:         ratio(float64(l.SacksTaken), l.Dropbacks()),
			IntRate:          ratio(float64(l.Interceptions), l.PassAttempts),
			YardsPerCarry:    ratio(l.RushYards, l.RushAttempts),
			PenaltiesPerTeam: ratio(float64(l.Penalties), teamGames),
		},
	}
}

// Suggestion is a proposed knob value.
type Suggestion struct {
	Knob      string  `json:"knob"`
	Current   float64 `json:"current"`
	Suggested float64 `json:"suggested"`
	Delta     float64 `json:"delta"`
}

// Spread is the range of a metric across batches.
type Spread struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Line is one metric's verdict.
type Line struct {
	Band       Band        `json:"band"`
	Observed   float64     `json:"observed"`
	InBand     bool        `json:"in_band"`
	Spread     Spread      `json:"spread"`
	Suggestion *Suggestion `json:"suggestion,omitempty"`
}

// Report is the result of a calibration run.
type Report struct {
	Seasons int    `json:"seasons"`
	Games   int    `json:"games"`
	Lines   []Line `json:"lines"`
}

// Evaluate averages the observations, checks each band and proposes a
// knob change for every out-of-band metric that has one. The ratio is
// midpoint/observed, clamped to [0.9,1.1]; every knob moves its metric
// upward.
func Evaluate(obs []Observation, current tuning.Parameters, bands []Band) Report {
	r := Report{Seasons: len(obs)}
	for _, o := range obs {
		r.Games += o.Games
	}
	for _, b := range bands {
		line := Line{Band: b, Spread: Spread{Min: math.Inf(1), Max: math.Inf(-1)}}
		total, weight := 0.0, 0
		for _, o := range obs {
			v, ok := o.Values[b.Metric]
			if !ok {
				continue
			}
			w := max(o.Games, 1)
			total += v * float64(w)
			weight += w
			line.Spread.Min = math.Min(line.Spread.Min, v)
			line.Spread.Max = math.Max(line.Spread.Max, v)
		}
		if weight == 0 {
			line.Spread = Spread{}
		} else {
			line.Observed = total / float64(weight)
		}
		line.InBand = b.Contains(line.Observed)
		if !line.InBand && b.Knob != "" && weight > 0 {
			cur := current.Get(b.Knob)
			next := cur * knobStep(b.Midpoint(), line.Observed)
			line.Suggestion = &Suggestion{Knob: b.Knob, Current: cur, Suggested: next, Delta: next - cur}
		}
		r.Lines = append(r.Lines, line)
	}
	return r
}

// knobStep is midpoint/observed within [minRatio,maxRatio]. A metric at or
// below zero is as far under its band as it can be.
func knobStep(midpoint, observed float64) float64 {
	if observed <= 0 {
		return maxRatio
	}
	return clamp(midpoint/observed, minRatio, maxRatio)
}

// OutOfBand returns the lines that missed their band.
func (r Report) OutOfBand() []Line {
	var out []Line
	for _, l := range r.Lines {
		if !l.InBand {
			out = append(out, l)
		}
	}
	return out
}

// Line returns the line for m.
func (r Report) Line(m Metric) (Line, bool) {
	for _, l := range r.Lines {
		if l.Band.Metric == m {
			return l, true
		}
	}
	return Line{}, false
}

// Apply returns a new snapshot with every suggestion applied. p is not
// changed.
func (r Report) Apply(p tuning.Parameters) (tuning.Parameters, error) {
	for _, l := range r.Lines {
		if l.Suggestion == nil {
			continue
		}
		next, err := p.With(l.Suggestion.Knob, l.Suggestion.Suggested)
		if err != nil {
			return tuning.Parameters{}, model.NewConfigurationError("calibration."+string(l.Band.Metric), "%v", err)
		}
		p = next
	}
	return p, nil
}

func ratio(num float64, den int) float64 {
	if den == 0 {
		return 0
	}
	return num / float64(den)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
