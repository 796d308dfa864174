package model

import (
	"strings"
)

// Position is a roster position.
type Position string

// Roster positions.
const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	TE Position = "TE"
	OL Position = "OL"
	DL Position = "DL"
	LB Position = "LB"
	CB Position = "CB"
	S  Position = "S"
	K  Position = "K"
	P  Position = "P"
)

var positions = map[Position]struct{}{ //nolint:gochecknoglobals // lookup table
	QB: {}, RB: {}, WR: {}, TE: {}, OL: {}, DL: {}, LB: {}, CB: {}, S: {}, K: {}, P: {},
}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	_, ok := positions[p]
	return ok
}

// Player is a rostered player.
type Player struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Position   Position   `json:"position"`
	Jersey     int        `json:"jersey"`
	Attributes Attributes `json:"attributes"`
}

// Validate checks identity fields and ratings.
func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return NewConfigurationError("player.id", "must not be empty")
	}
	if !p.Position.Valid() {
		return NewConfigurationError("player."+p.ID+".position", "unknown position %q", p.Position)
	}
	if p.Jersey < 0 || p.Jersey > 99 {
		return NewConfigurationError("player."+p.ID+".jersey", "jersey %d outside 0-99", p.Jersey)
	}
	if err := p.Attributes.Validate(); err != nil {
		return NewConfigurationError("player."+p.ID+"."+fieldOf(err), "%s", reasonOf(err))
	}
	return nil
}

// Tendencies are a team's gameplan sliders, each in [0,1]. Man coverage is
// the complement of ZoneRate.
type Tendencies struct {
	RunRate   float64 `json:"run_rate" koanf:"run_rate"`
	DeepRate  float64 `json:"deep_rate" koanf:"deep_rate"`
	BlitzRate float64 `json:"blitz_rate" koanf:"blitz_rate"`
	ZoneRate  float64 `json:"zone_rate" koanf:"zone_rate"`
}

// DefaultTendencies is a balanced gameplan.
func DefaultTendencies() Tendencies {
	return Tendencies{RunRate: 0.45, DeepRate: 0.12, BlitzRate: 0.25, ZoneRate: 0.6}
}

// Team is a roster plus its gameplan.
type Team struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Players    []Player   `json:"players"`
	Tendencies Tendencies `json:"tendencies"`
}

// Validate checks the roster: ids must be unique and every player valid.
func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return NewConfigurationError("team.id", "must not be empty")
	}
	if len(t.Players) == 0 {
		return NewConfigurationError("team."+t.ID+".players", "roster is empty")
	}
	seen := make(map[string]struct{}, len(t.Players))
	for _, p := range t.Players {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.ID]; dup {
			return NewConfigurationError("team."+t.ID+".players", "duplicate player id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// Lookup finds a player by id.
func (t Team) Lookup(id string) (Player, bool) {
	for _, p := range t.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// ByPosition returns the players at pos in roster order.
func (t Team) ByPosition(pos Position) []Player {
	var out []Player
	for _, p := range t.Players {
		if p.Position == pos {
			out = append(out, p)
		}
	}
	return out
}

// Roster indexes a team's players by id.
type Roster map[string]Player

// RosterOf builds a Roster from a team.
func RosterOf(t Team) Roster {
	r := make(Roster, len(t.Players))
	for _, p := range t.Players {
		r[p.ID] = p
	}
	return r
}

func fieldOf(err error) string {
	if ce, ok := err.(*ConfigurationError); ok { //nolint:errorlint // only unwrapped values reach here
		return strings.TrimPrefix(ce.Field, "attributes.")
	}
	return "attributes"
}

func reasonOf(err error) string {
	if ce, ok := err.(*ConfigurationError); ok { //nolint:errorlint // only unwrapped values reach here
		return ce.Reason
	}
	return err.Error()
}
