package model

// Field geometry in yards.
const (
	FieldHalfWidth = 26.5
	FieldLength    = 120.0

	// DesignLineOfScrimmage is the y coordinate of the line of scrimmage in
	// the play-design frame. Waypoints are authored on a full field with the
	// ball spotted here, so backfield positions keep y >= 0.
	DesignLineOfScrimmage = 15.0
)

// PlayType is the unit a play is drawn for.
type PlayType string

// Play types.
const (
	Offense      PlayType = "offense"
	Defense      PlayType = "defense"
	SpecialTeams PlayType = "special_teams"
)

// Role is what an assigned player does on the snap.
type Role string

// Assignment roles.
const (
	RolePass   Role = "pass"
	RoleCarry  Role = "carry"
	RoleRoute  Role = "route"
	RoleBlock  Role = "block"
	RoleDefend Role = "defend"
	RoleRush   Role = "rush"
	RoleKick   Role = "kick"
	RoleHold   Role = "hold"
)

// RouteBearing reports whether the role needs waypoints.
func (r Role) RouteBearing() bool {
	return r == RoleRoute || r == RoleCarry
}

// Coverage is a defensive coverage family.
type Coverage string

// Coverage families.
const (
	Man  Coverage = "man"
	Zone Coverage = "zone"
)

// Concept tags the intent of an offensive play. The engine uses it for the
// quarterback's read and for ball-carrier behavior after the catch.
type Concept string

// Offensive concepts.
const (
	RunInside    Concept = "run_inside"
	RunOutside   Concept = "run_outside"
	PassShort    Concept = "pass_short"
	PassDeep     Concept = "pass_deep"
	PassSideline Concept = "pass_sideline"
)

// IsRun reports whether c is a designed run.
func (c Concept) IsRun() bool { return c == RunInside || c == RunOutside }

// Special-teams formations. The engine picks the kick model from these.
const (
	FormationFieldGoal  = "field_goal"
	FormationExtraPoint = "extra_point"
	FormationPunt       = "punt"
	FormationKickoff    = "kickoff"
)

// Waypoint is a timed point on a route in the play-design frame.
type Waypoint struct {
	T float64 `json:"t"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Assignment binds one player to a role for a play.
type Assignment struct {
	PlayerID string     `json:"player_id"`
	Role     Role       `json:"role"`
	Route    []Waypoint `json:"route,omitempty"`
}

// Play is an immutable play definition.
type Play struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Formation   string       `json:"formation"`
	Personnel   string       `json:"personnel"`
	Type        PlayType     `json:"type"`
	Concept     Concept      `json:"concept,omitempty"`
	Coverage    Coverage     `json:"coverage,omitempty"`
	Assignments []Assignment `json:"assignments"`
}

// ByRole returns the assignments with role r in play order.
func (p Play) ByRole(r Role) []Assignment {
	var out []Assignment
	for _, a := range p.Assignments {
		if a.Role == r {
			out = append(out, a)
		}
	}
	return out
}

// Has reports whether the play assigns playerID.
func (p Play) Has(playerID string) bool {
	for _, a := range p.Assignments {
		if a.PlayerID == playerID {
			return true
		}
	}
	return false
}
