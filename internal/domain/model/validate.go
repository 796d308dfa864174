package model

import (
	"strconv"
	"strings"
)

// Tag length limits.
const (
	maxFormationLen = 64
	maxPersonnelLen = 32
)

// roles lists the roles each play type may use.
var roles = map[PlayType]map[Role]struct{}{ //nolint:gochecknoglobals // lookup table
	Offense: {
		RolePass: {}, RoleCarry: {}, RoleRoute: {}, RoleBlock: {},
	},
	Defense: {
		RoleDefend: {}, RoleRush: {},
	},
	SpecialTeams: {
		RoleKick: {}, RoleHold: {}, RoleBlock: {}, RoleDefend: {}, RoleRush: {}, RoleCarry: {},
	},
}

// Validate checks every structural invariant of a play. The first
// violation is returned as a *ConfigurationError naming the field.
func (p Play) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return NewConfigurationError("play.id", "must not be empty")
	}
	field := "play." + p.ID
	allowed, ok := roles[p.Type]
	if !ok {
		return NewConfigurationError(field+".type", "unknown play type %q", p.Type)
	}
	if n := len(p.Formation); n < 1 || n > maxFormationLen {
		return NewConfigurationError(field+".formation", "length %d outside 1-%d", n, maxFormationLen)
	}
	if n := len(p.Personnel); n < 1 || n > maxPersonnelLen {
		return NewConfigurationError(field+".personnel", "length %d outside 1-%d", n, maxPersonnelLen)
	}
	if len(p.Assignments) == 0 {
		return NewConfigurationError(field+".assignments", "no assignments")
	}

	seen := make(map[string]struct{}, len(p.Assignments))
	counts := make(map[Role]int, len(allowed))
	for i, a := range p.Assignments {
		af := field + ".assignments[" + strconv.Itoa(i) + "]"
		if strings.TrimSpace(a.PlayerID) == "" {
			return NewConfigurationError(af+".player_id", "must not be empty")
		}
		if _, dup := seen[a.PlayerID]; dup {
			return NewConfigurationError(af+".player_id", "duplicate player id %q", a.PlayerID)
		}
		seen[a.PlayerID] = struct{}{}
		if _, ok := allowed[a.Role]; !ok {
			return NewConfigurationError(af+".role", "role %q not allowed on %s plays", a.Role, p.Type)
		}
		counts[a.Role]++
		if a.Role.RouteBearing() && len(a.Route) == 0 {
			return NewConfigurationError(af+".route", "role %q requires a route", a.Role)
		}
		if err := validateRoute(af+".route", a.Route); err != nil {
			return err
		}
	}

	switch p.Type {
	case Offense:
		if counts[RolePass] > 1 {
			return NewConfigurationError(field+".assignments", "%d pass assignments, want at most 1", counts[RolePass])
		}
		if counts[RolePass]+counts[RoleCarry] == 0 {
			return NewConfigurationError(field+".assignments", "needs a pass or carry assignment")
		}
	case Defense:
		if counts[RoleDefend]+counts[RoleRush] == 0 {
			return NewConfigurationError(field+".assignments", "needs a defend or rush assignment")
		}
		if p.Coverage != "" && p.Coverage != Man && p.Coverage != Zone {
			return NewConfigurationError(field+".coverage", "unknown coverage %q", p.Coverage)
		}
	case SpecialTeams:
		if counts[RoleKick] != 1 {
			return NewConfigurationError(field+".assignments", "%d kick assignments, want exactly 1", counts[RoleKick])
		}
	}
	return nil
}

func validateRoute(field string, route []Waypoint) error {
	for i, w := range route {
		wf := field + "[" + strconv.Itoa(i) + "]"
		if w.T < 0 {
			return NewConfigurationError(wf+".t", "negative timestamp %.3f", w.T)
		}
		if i > 0 && w.T <= route[i-1].T {
			return NewConfigurationError(wf+".t", "timestamp %.3f not after %.3f", w.T, route[i-1].T)
		}
		if w.X < -FieldHalfWidth || w.X > FieldHalfWidth {
			return NewConfigurationError(wf+".x", "%.2f outside [-26.5,26.5]", w.X)
		}
		if w.Y < 0 || w.Y > FieldLength {
			return NewConfigurationError(wf+".y", "%.2f outside [0,120]", w.Y)
		}
	}
	return nil
}

// ValidateAgainst checks that every assigned player exists in the roster.
func (p Play) ValidateAgainst(r Roster) error {
	for i, a := range p.Assignments {
		if _, ok := r[a.PlayerID]; !ok {
			return NewConfigurationError("play."+p.ID+".assignments["+strconv.Itoa(i)+"].player_id",
				"player %q not on roster", a.PlayerID)
		}
	}
	return nil
}
