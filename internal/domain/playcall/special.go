package playcall

import (
	"github.com/okian/gridiron/internal/domain/model"
)

func (d Depth) kickUnit(id, formation string, kicker model.Position, holder bool, cover int) (model.Play, error) {
	pk := d.picker()
	k, err := pk.one(kicker)
	if err != nil {
		return model.Play{}, err
	}
	as := []model.Assignment{{PlayerID: k.ID, Role: model.RoleKick}}
	if holder {
		h, err := pk.one(model.P)
		if err != nil {
			if h, err = pk.one(model.QB); err != nil {
				return model.Play{}, err
			}
		}
		as = append(as, model.Assignment{PlayerID: h.ID, Role: model.RoleHold})
	}
	if cover > 0 {
		gunners, err := pk.take(model.LB, cover)
		if err != nil {
			return model.Play{}, err
		}
		for _, p := range gunners {
			as = append(as, model.Assignment{PlayerID: p.ID, Role: model.RoleDefend})
		}
	} else {
		line, err := pk.take(model.OL, 5)
		if err != nil {
			return model.Play{}, err
		}
		for _, p := range line {
			as = append(as, block(p.ID))
		}
	}
	return model.Play{
		ID:          id,
		Name:        id,
		Formation:   formation,
		Personnel:   "special",
		Type:        model.SpecialTeams,
		Assignments: as,
	}, nil
}

// FieldGoal builds the field goal unit.
func FieldGoal(d Depth) (model.Play, error) {
	return d.kickUnit("field_goal", model.FormationFieldGoal, model.K, true, 0)
}

// ExtraPoint builds the try unit.
func ExtraPoint(d Depth) (model.Play, error) {
	return d.kickUnit("extra_point", model.FormationExtraPoint, model.K, true, 0)
}

// Punt builds the punt unit.
func Punt(d Depth) (model.Play, error) {
	return d.kickUnit("punt", model.FormationPunt, model.P, false, 0)
}

// Kickoff builds the kickoff coverage unit.
func Kickoff(d Depth) (model.Play, error) {
	return d.kickUnit("kickoff", model.FormationKickoff, model.K, false, 4)
}

// ReturnUnit builds the receiving side of any kick. The returner is listed
// first.
func ReturnUnit(d Depth) (model.Play, error) {
	pk := d.picker()
	ret, err := pk.one(model.RB)
	if err != nil {
		return model.Play{}, err
	}
	rest, err := pk.take(model.CB, 4)
	if err != nil {
		return model.Play{}, err
	}
	as := []model.Assignment{{PlayerID: ret.ID, Role: model.RoleDefend}}
	for _, p := range rest {
		as = append(as, model.Assignment{PlayerID: p.ID, Role: model.RoleDefend})
	}
	return model.Play{
		ID:          "return",
		Name:        "return",
		Formation:   "return",
		Personnel:   "special",
		Type:        model.Defense,
		Assignments: as,
	}, nil
}
