// Package schedule builds league schedules.
package schedule

import (
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/seed"
)

// bye pads an odd league; a pairing with it is skipped.
const bye = ""

// Fixture is one scheduled game.
type Fixture struct {
	Week int    `json:"week"`
	Home string `json:"home"`
	Away string `json:"away"`
}

// Schedule is every fixture of a season in week order.
type Schedule []Fixture

// Weeks returns the number of weeks.
func (s Schedule) Weeks() int {
	w := 0
	for _, f := range s {
		w = max(w, f.Week)
	}
	return w
}

// Week returns the fixtures of week w.
func (s Schedule) Week(w int) []Fixture {
	var out []Fixture
	for _, f := range s {
		if f.Week == w {
			out = append(out, f)
		}
	}
	return out
}

// RoundRobin builds a double round robin with the circle method. The team
// order is shuffled by seed, weeks 1..n-1 are the first round and the rest
// mirror them with home and away swapped. An odd league gives one team a
// bye each week.
func RoundRobin(teamIDs []string, s uint64) (Schedule, error) {
	if len(teamIDs) < 2 {
		return nil, model.NewConfigurationError("schedule.teams", "need at least 2 teams, got %d", len(teamIDs))
	}
	seen := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if id == bye {
			return nil, model.NewConfigurationError("schedule.teams", "empty team id")
		}
		if _, dup := seen[id]; dup {
			return nil, model.NewConfigurationError("schedule.teams", "duplicate team id %q", id)
		}
		seen[id] = struct{}{}
	}

	ring := shuffle(teamIDs, s)
	if len(ring)%2 == 1 {
		ring = append(ring, bye)
	}
	n := len(ring)
	rounds := n - 1

	first := make(Schedule, 0, rounds*n/2)
	for r := 0; r < rounds; r++ {
		for i := 0; i < n/2; i++ {
			a, b := ring[i], ring[n-1-i]
			if a == bye || b == bye {
				continue
			}
			// The fixed team alternates venue each week; the other pairs
			// alternate by slot so nobody is home every week.
			if (i == 0 && r%2 == 1) || (i > 0 && (r+i)%2 == 1) {
				a, b = b, a
			}
			first = append(first, Fixture{Week: r + 1, Home: a, Away: b})
		}
		rotate(ring)
	}

	out := make(Schedule, 0, 2*len(first))
	out = append(out, first...)
	for _, f := range first {
		out = append(out, Fixture{Week: f.Week + rounds, Home: f.Away, Away: f.Home})
	}
	return out, nil
}

// rotate keeps ring[0] fixed and turns the rest one step clockwise.
func rotate(ring []string) {
	last := ring[len(ring)-1]
	copy(ring[2:], ring[1:len(ring)-1])
	ring[1] = last
}

func shuffle(ids []string, s uint64) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	g := seed.New(s)
	for i := len(out) - 1; i > 0; i-- {
		j := g.IntRange(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
