package statbook

import (
	"sort"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/scoring"
)

// PlayerLine is one player's counting stats.
type PlayerLine struct {
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id"`

	PassAttempts  int     `json:"pass_attempts"`
	Completions   int     `json:"completions"`
	PassYards     float64 `json:"pass_yards"`
	PassTD        int     `json:"pass_td"`
	Interceptions int     `json:"interceptions"`
	SacksTaken    int     `json:"sacks_taken"`

	RushAttempts int     `json:"rush_attempts"`
	RushYards    float64 `json:"rush_yards"`
	RushTD       int     `json:"rush_td"`

	Targets    int     `json:"targets"`
	Receptions int     `json:"receptions"`
	RecYards   float64 `json:"rec_yards"`
	RecTD      int     `json:"rec_td"`

	Tackles          int `json:"tackles"`
	Sacks            int `json:"sacks"`
	DefInterceptions int `json:"def_interceptions"`
	Pressures        int `json:"pressures"`

	Fumbles     int `json:"fumbles"`
	FumblesLost int `json:"fumbles_lost"`
	Penalties   int `json:"penalties"`

	FGMade     int     `json:"fg_made"`
	FGAttempts int     `json:"fg_attempts"`
	XPMade     int     `json:"xp_made"`
	XPAttempts int     `json:"xp_attempts"`
	Punts      int     `json:"punts"`
	PuntYards  float64 `json:"punt_yards"`
}

// TeamLine is one team's counting stats on offense, plus the penalties
// and sacks charged to it on defense.
type TeamLine struct {
	TeamID string `json:"team_id"`

	Plays     int     `json:"plays"`
	Yards     float64 `json:"yards"`
	Successes int     `json:"successes"`
	EPA       float64 `json:"epa"`

	// AttemptEvents counts pass_attempt events. It must equal
	// PassAttempts, which is derived from the terminal pass events.
	AttemptEvents int     `json:"attempt_events"`
	PassAttempts  int     `json:"pass_attempts"`
	Completions   int     `json:"completions"`
	Incompletions int     `json:"incompletions"`
	Interceptions int     `json:"interceptions"`
	PassYards     float64 `json:"pass_yards"`
	SacksTaken    int     `json:"sacks_taken"`
	SackYards     float64 `json:"sack_yards"`
	Pressured     int     `json:"pressured"`

	RushAttempts int     `json:"rush_attempts"`
	RushYards    float64 `json:"rush_yards"`

	Touchdowns   int     `json:"touchdowns"`
	FumblesLost  int     `json:"fumbles_lost"`
	Turnovers    int     `json:"turnovers"`
	Penalties    int     `json:"penalties"`
	PenaltyYards float64 `json:"penalty_yards"`
	FGMade       int     `json:"fg_made"`
	FGAttempts   int     `json:"fg_attempts"`
	Punts        int     `json:"punts"`

	Sacks int `json:"sacks"`
}

// Dropbacks is pass attempts plus sacks.
func (t TeamLine) Dropbacks() int { return t.PassAttempts + t.SacksTaken }

// Boxscore holds every player and team line.
type Boxscore struct {
	Players map[string]*PlayerLine `json:"players"`
	Teams   map[string]*TeamLine   `json:"teams"`
}

func (bx Boxscore) player(id, team string) *PlayerLine {
	p, ok := bx.Players[id]
	if !ok {
		p = &PlayerLine{PlayerID: id, TeamID: team}
		bx.Players[id] = p
	}
	return p
}

func (bx Boxscore) team(id string) *TeamLine {
	t, ok := bx.Teams[id]
	if !ok {
		t = &TeamLine{TeamID: id}
		bx.Teams[id] = t
	}
	return t
}

// TeamIDs returns the team ids in sorted order.
func (bx Boxscore) TeamIDs() []string {
	ids := make([]string, 0, len(bx.Teams))
	for id := range bx.Teams {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PlayerIDs returns the player ids in sorted order.
func (bx Boxscore) PlayerIDs() []string {
	ids := make([]string, 0, len(bx.Players))
	for id := range bx.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// League sums every team line.
func (bx Boxscore) League() TeamLine {
	var l TeamLine
	for _, id := range bx.TeamIDs() {
		l.add(*bx.Teams[id])
	}
	l.TeamID = "league"
	return l
}

func (t *TeamLine) add(o TeamLine) {
	t.Plays += o.Plays
	t.Yards += o.Yards
	t.Successes += o.Successes
	t.EPA += o.EPA
	t.AttemptEvents += o.AttemptEvents
	t.PassAttempts += o.PassAttempts
	t.Completions += o.Completions
	t.Incompletions += o.Incompletions
	t.Interceptions += o.Interceptions
	t.PassYards += o.PassYards
	t.SacksTaken += o.SacksTaken
	t.SackYards += o.SackYards
	t.Pressured += o.Pressured
	t.RushAttempts += o.RushAttempts
	t.RushYards += o.RushYards
	t.Touchdowns += o.Touchdowns
	t.FumblesLost += o.FumblesLost
	t.Turnovers += o.Turnovers
	t.Penalties += o.Penalties
	t.PenaltyYards += o.PenaltyYards
	t.FGMade += o.FGMade
	t.FGAttempts += o.FGAttempts
	t.Punts += o.Punts
	t.Sacks += o.Sacks
}

// Boxscore reduces the book to counting stats.
func (b *Book) Boxscore() Boxscore {
	bx := Boxscore{Players: make(map[string]*PlayerLine), Teams: make(map[string]*TeamLine)}
	for _, p := range b.plays() {
		bx.notePlay(p)
	}
	return bx
}

func (bx Boxscore) notePlay(p play) {
	off, def := bx.team(p.ctx.Offense), bx.team(p.ctx.Defense)
	r := model.Reduce(p.events)
	ofPlayer := func(id string) *PlayerLine { return bx.player(id, p.ctx.Offense) }
	dfPlayer := func(id string) *PlayerLine { return bx.player(id, p.ctx.Defense) }

	var passer, target, rusher string
	for _, e := range p.events {
		switch e.Type {
		case model.EventPassAttempt:
			passer, target = e.Actor(0), e.Actor(1)
			off.AttemptEvents++
			if target != "" {
				ofPlayer(target).Targets++
			}
		case model.EventCompletion:
			off.Completions++
			ofPlayer(e.Actor(1)).Completions++
			ofPlayer(e.Actor(0)).Receptions++
		case model.EventIncompletion:
			off.Incompletions++
		case model.EventInterception:
			off.Interceptions++
			ofPlayer(e.Actor(1)).Interceptions++
			dfPlayer(e.Actor(0)).DefInterceptions++
		case model.EventRushAttempt:
			rusher = e.Actor(0)
			off.RushAttempts++
			ofPlayer(rusher).RushAttempts++
		case model.EventPressure:
			off.Pressured++
			dfPlayer(e.Actor(0)).Pressures++
		case model.EventSack:
			off.SacksTaken++
			off.SackYards += e.Payload.Yards
			def.Sacks++
			dfPlayer(e.Actor(0)).Sacks++
			ofPlayer(e.Actor(1)).SacksTaken++
		case model.EventTackle:
			dfPlayer(e.Actor(0)).Tackles++
		case model.EventFumble:
			ofPlayer(e.Actor(0)).Fumbles++
		case model.EventFumbleRecovery:
			if e.Payload.Lost {
				off.FumblesLost++
			}
		case model.EventPenalty:
			bx.penalty(p, e, off, def)
		case model.EventFieldGoal:
			k := ofPlayer(e.Actor(0))
			k.FGAttempts++
			off.FGAttempts++
			if e.Payload.Made {
				k.FGMade++
				off.FGMade++
			}
		case model.EventExtraPoint:
			k := ofPlayer(e.Actor(0))
			k.XPAttempts++
			if e.Payload.Made {
				k.XPMade++
			}
		case model.EventPunt:
			k := ofPlayer(e.Actor(0))
			k.Punts++
			k.PuntYards += e.Payload.Distance
			off.Punts++
		}
	}
	if r.FumbleLost && rusher != "" {
		ofPlayer(rusher).FumblesLost++
	} else if r.FumbleLost && r.Completed {
		ofPlayer(target).FumblesLost++
	}

	if r.Turnover {
		off.Turnovers++
	}
	if r.Touchdown && !r.Interception && !r.FumbleLost {
		off.Touchdowns++
	}

	switch r.Kind {
	case model.KindPass:
		if r.Completed {
			off.PassYards += r.Yards
			ofPlayer(passer).PassYards += r.Yards
			ofPlayer(target).RecYards += r.Yards
			if r.Touchdown {
				ofPlayer(passer).PassTD++
				ofPlayer(target).RecTD++
			}
		}
		if passer != "" {
			ofPlayer(passer).PassAttempts++
		}
	case model.KindRun:
		off.RushYards += r.Yards
		if rusher != "" {
			ofPlayer(rusher).RushYards += r.Yards
			if r.Touchdown && !r.FumbleLost {
				ofPlayer(rusher).RushTD++
			}
		}
	}

	switch r.Kind {
	case model.KindPass, model.KindRun, model.KindSack:
		s := scoring.State{Down: p.ctx.Down, Distance: p.ctx.Distance, Yardline: p.ctx.Yardline}
		off.Plays++
		off.Yards += r.Yards
		off.EPA += scoring.Added(s, r)
		if !r.Turnover && (r.Touchdown || scoring.Success(s, r.Yards)) {
			off.Successes++
		}
	}
	off.PassAttempts = off.Completions + off.Incompletions + off.Interceptions
}

func (bx Boxscore) penalty(p play, e model.Event, off, def *TeamLine) {
	if e.Payload.Penalty == nil {
		return
	}
	side, team := def, p.ctx.Defense
	if e.Payload.Penalty.Side == model.SideOffense {
		side, team = off, p.ctx.Offense
	}
	side.Penalties++
	side.PenaltyYards += e.Payload.Penalty.Yards
	if who := e.Actor(0); who != "" {
		bx.player(who, team).Penalties++
	}
}
