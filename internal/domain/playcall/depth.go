package playcall

import (
	"github.com/okian/gridiron/internal/domain/model"
)

// fallbacks lists who fills in, in order, when a position runs dry.
var fallbacks = map[model.Position][]model.Position{ //nolint:gochecknoglobals // lookup table
	model.QB: {model.RB, model.WR},
	model.RB: {model.WR, model.TE},
	model.WR: {model.TE, model.RB, model.CB},
	model.TE: {model.OL, model.WR},
	model.OL: {model.TE, model.DL},
	model.DL: {model.LB, model.OL},
	model.LB: {model.S, model.DL},
	model.CB: {model.S, model.WR},
	model.S:  {model.CB, model.LB},
	model.K:  {model.P},
	model.P:  {model.K},
}

// Depth is a depth chart: available players per position, starters first.
type Depth struct {
	team  string
	lists map[model.Position][]model.Player
}

// NewDepth builds a depth chart in roster order, skipping players for
// which out returns true. A nil out keeps everyone.
func NewDepth(t model.Team, out func(model.Player) bool) Depth {
	d := Depth{team: t.ID, lists: make(map[model.Position][]model.Player)}
	for _, p := range t.Players {
		if out != nil && out(p) {
			continue
		}
		d.lists[p.Position] = append(d.lists[p.Position], p)
	}
	return d
}

// At returns the players listed at pos.
func (d Depth) At(pos model.Position) []model.Player {
	return d.lists[pos]
}

// Reorder replaces the list at pos, for example to rotate a tired starter
// behind a fresh backup.
func (d Depth) Reorder(pos model.Position, players []model.Player) {
	d.lists[pos] = players
}

// picker hands out players for one play without repeats.
type picker struct {
	d    Depth
	used map[string]bool
}

func (d Depth) picker() *picker {
	return &picker{d: d, used: make(map[string]bool)}
}

// take returns n distinct players for pos, falling back to related
// positions when the list runs short.
func (p *picker) take(pos model.Position, n int) ([]model.Player, error) {
	out := make([]model.Player, 0, n)
	for _, from := range append([]model.Position{pos}, fallbacks[pos]...) {
		for _, pl := range p.d.lists[from] {
			if len(out) == n {
				return out, nil
			}
			if p.used[pl.ID] {
				continue
			}
			p.used[pl.ID] = true
			out = append(out, pl)
		}
	}
	if len(out) < n {
		return nil, model.NewConfigurationError("depth."+p.d.team+"."+string(pos),
			"need %d players, %d available", n, len(out))
	}
	return out, nil
}

func (p *picker) one(pos model.Position) (model.Player, error) {
	pl, err := p.take(pos, 1)
	if err != nil {
		return model.Player{}, err
	}
	return pl[0], nil
}
