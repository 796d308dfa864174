// Package types contains the standings row shared by storage, export and
// the HTTP API.
package types

// Standing is one team's row in the league table.
type Standing struct {
	Rank          int    `json:"rank"`
	TeamID        string `json:"team_id"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Ties          int    `json:"ties"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
}

// Games returns games played.
func (s Standing) Games() int { return s.Wins + s.Losses + s.Ties }

// WinPct counts a tie as half a win. A team with no games has 0.
func (s Standing) WinPct() float64 {
	if s.Games() == 0 {
		return 0
	}
	return (float64(s.Wins) + float64(s.Ties)/2) / float64(s.Games())
}

// PointDiff is points for minus points against.
func (s Standing) PointDiff() int { return s.PointsFor - s.PointsAgainst }

// Ahead reports whether s ranks strictly above o, ignoring team id.
// Win percentage is compared exactly as (2W+T)/2G.
func (s Standing) Ahead(o Standing) bool {
	a := (2*s.Wins + s.Ties) * max(o.Games(), 1)
	b := (2*o.Wins + o.Ties) * max(s.Games(), 1)
	if a != b {
		return a > b
	}
	return s.PointDiff() > o.PointDiff()
}

// Level reports whether neither row ranks above the other.
func (s Standing) Level(o Standing) bool { return !s.Ahead(o) && !o.Ahead(s) }
