package ruleset

import (
	"errors"
	"math"

	"github.com/okian/gridiron/internal/domain/fatigue"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/playcall"
)

// restForGame marks a player out for the rest of the game.
const restForGame = math.MaxInt

// halftimeRest is the recovery everyone gets at the half.
const halftimeRest = 900.0

// rotated lists the positions whose starters rotate on fatigue.
var rotated = []model.Position{ //nolint:gochecknoglobals // fixed order
	model.QB, model.RB, model.WR, model.TE, model.OL,
	model.DL, model.LB, model.CB, model.S,
}

// side is one team's in-game state.
type side struct {
	team   model.Team
	roster model.Roster
	plan   playcall.Gameplan
	// out maps a player to the play index they are available again at.
	out map[string]int
}

func newSide(t model.Team) (*side, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	plan, err := playcall.NewGameplan(t.Tendencies)
	if err != nil {
		return nil, model.NewConfigurationError("team."+t.ID+"."+fieldName(err), "%s", reasonOf(err))
	}
	return &side{team: t, roster: model.RosterOf(t), plan: plan, out: make(map[string]int)}, nil
}

func fieldName(err error) string {
	var ce *model.ConfigurationError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return "tendencies"
}

func reasonOf(err error) string {
	var ce *model.ConfigurationError
	if errors.As(err, &ce) {
		return ce.Reason
	}
	return err.Error()
}

// depth builds the depth chart for play index idx. Injured players are
// skipped; a tired starter gives way to the freshest backup.
func (sd *side) depth(idx int, t *fatigue.Tracker) playcall.Depth {
	d := playcall.NewDepth(sd.team, func(p model.Player) bool {
		until, ok := sd.out[p.ID]
		return ok && idx < until
	})
	for _, pos := range rotated {
		list := d.At(pos)
		if len(list) < 2 || t.Level(list[0].ID) <= fatigue.RotateThreshold {
			continue
		}
		var fresh, tired []model.Player
		for _, p := range list {
			if t.Level(p.ID) <= fatigue.RotateThreshold {
				fresh = append(fresh, p)
			} else {
				tired = append(tired, p)
			}
		}
		best, ok := t.Freshest(fresh)
		if !ok {
			continue
		}
		order := make([]model.Player, 0, len(list))
		order = append(order, best)
		for _, p := range fresh {
			if p.ID != best.ID {
				order = append(order, p)
			}
		}
		d.Reorder(pos, append(order, tired...))
	}
	return d
}

// kicker returns the first available kicker's ratings.
func kicker(d playcall.Depth) model.Attributes {
	for _, pos := range []model.Position{model.K, model.P} {
		if ks := d.At(pos); len(ks) > 0 {
			return ks[0].Attributes
		}
	}
	return model.LeagueAverage()
}

// injure takes a player off the depth chart. Minor injuries cost a few
// plays; anything worse ends the player's game.
func (sd *side) injure(inj model.Injury, idx int) {
	until := restForGame
	if inj.Severity == model.Minor {
		until = idx + 1 + inj.OutPlays
	}
	if prev, ok := sd.out[inj.PlayerID]; ok && prev > until {
		return
	}
	sd.out[inj.PlayerID] = until
}

// wear applies a snap's loads to participants and rests everyone else on
// both teams for the elapsed game time.
func wear(t *fatigue.Tracker, loads []fatigue.Load, elapsed float64, sides ...*side) {
	played := make(map[string]bool, len(loads))
	for _, l := range loads {
		t.Apply(l)
		played[l.PlayerID] = true
	}
	for _, sd := range sides {
		for _, p := range sd.team.Players {
			if !played[p.ID] {
				t.Recover(p.ID, elapsed)
			}
		}
	}
}

// rest recovers every player on both teams.
func rest(t *fatigue.Tracker, seconds float64, sides ...*side) {
	for _, sd := range sides {
		for _, p := range sd.team.Players {
			t.Recover(p.ID, seconds)
		}
	}
}
