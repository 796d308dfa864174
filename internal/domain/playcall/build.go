package playcall

import (
	"github.com/okian/gridiron/internal/domain/model"
)

// at is a waypoint at t seconds, x yards from the middle of the field and
// dy yards past the line of scrimmage.
func at(t, x, dy float64) model.Waypoint {
	return model.Waypoint{T: t, X: x, Y: model.DesignLineOfScrimmage + dy}
}

func route(id string, ws ...model.Waypoint) model.Assignment {
	return model.Assignment{PlayerID: id, Role: model.RoleRoute, Route: ws}
}

func block(id string, ws ...model.Waypoint) model.Assignment {
	return model.Assignment{PlayerID: id, Role: model.RoleBlock, Route: ws}
}

type lineup struct {
	qb, te, rb model.Player
	wr, ol     []model.Player
}

func (d Depth) offense() (lineup, error) {
	pk := d.picker()
	var (
		l   lineup
		err error
	)
	if l.qb, err = pk.one(model.QB); err != nil {
		return l, err
	}
	if l.wr, err = pk.take(model.WR, 3); err != nil {
		return l, err
	}
	if l.te, err = pk.one(model.TE); err != nil {
		return l, err
	}
	if l.rb, err = pk.one(model.RB); err != nil {
		return l, err
	}
	if l.ol, err = pk.take(model.OL, 5); err != nil {
		return l, err
	}
	return l, nil
}

func (l lineup) line() []model.Assignment {
	out := make([]model.Assignment, 0, len(l.ol))
	for _, p := range l.ol {
		out = append(out, block(p.ID))
	}
	return out
}

// BuildOffense turns a concept into a concrete play from the depth chart.
func BuildOffense(c model.Concept, d Depth) (model.Play, error) {
	l, err := d.offense()
	if err != nil {
		return model.Play{}, err
	}
	x, z, slot := l.wr[0].ID, l.wr[1].ID, l.wr[2].ID
	play := model.Play{
		ID:        string(c),
		Type:      model.Offense,
		Concept:   c,
		Formation: "shotgun",
		Personnel: "11",
	}
	as := []model.Assignment{{PlayerID: l.qb.ID, Role: model.RolePass}}

	switch c {
	case model.RunInside, model.RunOutside:
		play.Formation = "singleback"
		as[0].Route = []model.Waypoint{at(0, 0, -1), at(0.5, 0.5, -3), at(0.8, 0.5, -3)}
		carry := []model.Waypoint{at(0, 0, -7), at(0.6, 0.5, -3), at(1.1, 1, 1.5)}
		if c == model.RunOutside {
			carry = []model.Waypoint{at(0, 0, -7), at(0.7, 4, -4), at(1.3, 8, 0.5)}
		}
		as = append(as,
			block(x, at(0, -20, 0)),
			block(z, at(0, 20, 0)),
			block(slot, at(0, 12, 0)),
			block(l.te.ID),
			model.Assignment{PlayerID: l.rb.ID, Role: model.RoleCarry, Route: carry},
		)
	case model.PassDeep:
		play.ID = "four_verticals"
		as = append(as,
			route(x, at(0, -20, 0), at(1.6, -20, 12), at(3.2, -20, 25)),
			route(z, at(0, 20, 0), at(1.6, 20, 12), at(3.2, 20, 25)),
			route(slot, at(0, 12, 0), at(2.0, 10, 15)),
			route(l.te.ID, at(0, 5, -1), at(2.2, 5, 14)),
			block(l.rb.ID),
		)
	case model.PassSideline:
		play.ID = "outs"
		as = append(as,
			route(x, at(0, -20, 0), at(1.4, -20, 10), at(2.2, -25, 10)),
			route(z, at(0, 20, 0), at(1.8, 20, 13), at(2.4, 23, 10)),
			route(slot, at(0, 12, 0), at(1.0, 12, 6), at(2.0, 20, 6)),
			route(l.rb.ID, at(0, -2, -5), at(0.6, -6, -3), at(2.0, -16, -1)),
			block(l.te.ID),
		)
	default:
		play.ID = "slant_flat"
		play.Concept = model.PassShort
		as = append(as,
			route(x, at(0, -20, 0), at(0.8, -20, 5), at(1.8, -14, 9)),
			route(z, at(0, 20, 0), at(0.8, 20, 5), at(1.8, 14, 9)),
			route(slot, at(0, 12, 0), at(0.5, 14, 2), at(1.5, 22, 3)),
			route(l.rb.ID, at(0, -2, -5), at(0.6, -6, -3), at(2.0, -16, -1)),
			block(l.te.ID),
		)
	}
	play.Name = play.ID
	play.Assignments = append(as, l.line()...)
	return play, nil
}

// SlantFlat is the canned quick-game concept: both outside receivers run
// slants while the slot and the back release to the flats.
func SlantFlat(d Depth) (model.Play, error) {
	return BuildOffense(model.PassShort, d)
}

type personnel struct{ dl, lb, cb, s int }

var fronts = map[Front]personnel{ //nolint:gochecknoglobals // lookup table
	FrontBase:     {dl: 4, lb: 3, cb: 2, s: 2},
	FrontNickel:   {dl: 4, lb: 2, cb: 3, s: 2},
	FrontDime:     {dl: 4, lb: 1, cb: 4, s: 2},
	FrontGoalLine: {dl: 5, lb: 3, cb: 2, s: 1},
}

// BuildDefense turns a call into a concrete play. Man coverage lists the
// corners first so they pair with the wide receivers; zone lists the
// safeties first so they take the deep landmarks.
func BuildDefense(call DefenseCall, d Depth) (model.Play, error) {
	n, ok := fronts[call.Front]
	if !ok {
		return model.Play{}, model.NewConfigurationError("defense.front", "unknown front %q", call.Front)
	}
	pk := d.picker()
	dl, err := pk.take(model.DL, n.dl)
	if err != nil {
		return model.Play{}, err
	}
	lb, err := pk.take(model.LB, n.lb)
	if err != nil {
		return model.Play{}, err
	}
	cb, err := pk.take(model.CB, n.cb)
	if err != nil {
		return model.Play{}, err
	}
	s, err := pk.take(model.S, n.s)
	if err != nil {
		return model.Play{}, err
	}

	as := make([]model.Assignment, 0, 11)
	for _, p := range dl {
		as = append(as, model.Assignment{PlayerID: p.ID, Role: model.RoleRush})
	}
	if call.Blitz {
		if len(lb) > 0 {
			as = append(as, model.Assignment{PlayerID: lb[0].ID, Role: model.RoleRush})
			lb = lb[1:]
		} else {
			as = append(as, model.Assignment{PlayerID: s[0].ID, Role: model.RoleRush})
			s = s[1:]
		}
	}
	order := [][]model.Player{cb, lb, s}
	if call.Coverage == model.Zone {
		order = [][]model.Player{s, lb, cb}
	}
	for _, group := range order {
		for _, p := range group {
			as = append(as, model.Assignment{PlayerID: p.ID, Role: model.RoleDefend})
		}
	}

	id := string(call.Front) + "_" + string(call.Coverage)
	if call.Blitz {
		id += "_blitz"
	}
	return model.Play{
		ID:          id,
		Name:        id,
		Formation:   string(call.Front),
		Personnel:   string(call.Front),
		Type:        model.Defense,
		Coverage:    call.Coverage,
		Assignments: as,
	}, nil
}
