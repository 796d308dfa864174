package engine

import (
	"github.com/okian/gridiron/internal/domain/model"
)

var kickFormations = map[string]struct{}{ //nolint:gochecknoglobals // lookup table
	model.FormationFieldGoal:  {},
	model.FormationExtraPoint: {},
	model.FormationPunt:       {},
	model.FormationKickoff:    {},
}

func validate(in Input) error {
	if err := in.Offense.Validate(); err != nil {
		return err
	}
	if err := in.Defense.Validate(); err != nil {
		return err
	}
	switch in.Offense.Type {
	case model.Offense:
		if in.Defense.Type != model.Defense {
			return model.NewConfigurationError("defense.type", "%s play cannot defend an offensive snap", in.Defense.Type)
		}
	case model.SpecialTeams:
		if _, ok := kickFormations[in.Offense.Formation]; !ok {
			return model.NewConfigurationError("offense.formation", "unknown kicking formation %q", in.Offense.Formation)
		}
		if in.Defense.Type == model.Offense {
			return model.NewConfigurationError("defense.type", "offense play cannot receive a kick")
		}
	default:
		return model.NewConfigurationError("offense.type", "%s play cannot take the snap", in.Offense.Type)
	}
	if err := in.Offense.ValidateAgainst(in.OffenseRoster); err != nil {
		return err
	}
	if err := in.Defense.ValidateAgainst(in.DefenseRoster); err != nil {
		return err
	}
	for _, a := range in.Defense.Assignments {
		if in.Offense.Has(a.PlayerID) {
			return model.NewConfigurationError("defense.assignments", "player %q is on both sides", a.PlayerID)
		}
	}
	if yl := in.Situation.Yardline; yl <= 0 || yl >= 100 {
		return model.NewConfigurationError("situation.yardline", "%.1f outside (0,100)", yl)
	}
	for id, lvl := range in.Fatigue {
		if lvl < 0 || lvl > 1 {
			return model.NewConfigurationError("fatigue."+id, "level %.3f outside [0,1]", lvl)
		}
	}
	return nil
}
