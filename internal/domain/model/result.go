package model

// ResultKind classifies a resolved play.
type ResultKind string

// Result kinds.
const (
	KindPass   ResultKind = "pass"
	KindRun    ResultKind = "run"
	KindSack   ResultKind = "sack"
	KindKick   ResultKind = "kick"
	KindNoPlay ResultKind = "no_play"
)

// PlayResult summarizes one play. It is produced only by Reduce so that it
// can never disagree with the event stream.
type PlayResult struct {
	Kind              ResultKind `json:"kind"`
	Yards             float64    `json:"yards"`
	AirYards          float64    `json:"air_yards"`
	YardsAfterCatch   float64    `json:"yards_after_catch"`
	YardsAfterContact float64    `json:"yards_after_contact"`
	Completed         bool       `json:"completed"`
	Interception      bool       `json:"interception"`
	FumbleLost        bool       `json:"fumble_lost"`
	Turnover          bool       `json:"turnover"`
	Sack              bool       `json:"sack"`
	Pressure          bool       `json:"pressure"`
	Touchdown         bool       `json:"touchdown"`
	Safety            bool       `json:"safety"`
	OutOfBounds       bool       `json:"out_of_bounds"`
	Penalty           *Penalty   `json:"penalty,omitempty"`
	FieldGoal         bool       `json:"field_goal"`
	ExtraPoint        bool       `json:"extra_point"`
	KickMade          bool       `json:"kick_made"`
	Punt              bool       `json:"punt"`
	Kickoff           bool       `json:"kickoff"`
	Touchback         bool       `json:"touchback"`
	// NextSpot is the receiving team's yardline after a punt, kickoff or
	// missed field goal.
	NextSpot          float64    `json:"next_spot,omitempty"`
	Points            int        `json:"points"`
	DefensePoints     int        `json:"defense_points"`
	Duration          float64    `json:"duration"`
	Injuries          []Injury   `json:"injuries,omitempty"`
}

// Scoring values.
const (
	PointsTouchdown  = 6
	PointsFieldGoal  = 3
	PointsExtraPoint = 1
	PointsSafety     = 2
)

// Reduce folds an event stream into its PlayResult.
func Reduce(events []Event) PlayResult {
	var r PlayResult
	contact := false
	contactAt := 0.0
	catchAt := 0.0
	for _, e := range events {
		switch e.Type {
		case EventPassAttempt:
			r.Kind = KindPass
			r.AirYards = e.Payload.AirYards
		case EventRushAttempt:
			r.Kind = KindRun
		case EventPressure:
			r.Pressure = true
		case EventSack:
			r.Kind = KindSack
			r.Sack = true
		case EventCompletion:
			r.Completed = true
			r.AirYards = e.Payload.AirYards
			catchAt = e.Payload.Y
		case EventInterception:
			r.Interception = true
		case EventTackle, EventBrokenTackle:
			if !contact {
				contact = true
				contactAt = e.Payload.Yards
			}
		case EventFumbleRecovery:
			r.FumbleLost = e.Payload.Lost
		case EventOutOfBounds:
			r.OutOfBounds = true
		case EventTouchdown:
			r.Touchdown = true
		case EventSafety:
			r.Safety = true
		case EventPenalty:
			p := *e.Payload.Penalty
			r.Penalty = &p
			if p.PreSnap && r.Kind == "" {
				r.Kind = KindNoPlay
			}
		case EventInjury:
			r.Injuries = append(r.Injuries, *e.Payload.Injury)
		case EventFieldGoal:
			r.Kind = KindKick
			r.FieldGoal = true
			r.KickMade = e.Payload.Made
			r.NextSpot = e.Payload.Spot
		case EventExtraPoint:
			r.Kind = KindKick
			r.ExtraPoint = true
			r.KickMade = e.Payload.Made
		case EventPunt:
			r.Kind = KindKick
			r.Punt = true
			r.Touchback = e.Payload.Touchback
			r.NextSpot = e.Payload.Spot
		case EventKickoff:
			r.Kind = KindKick
			r.Kickoff = true
			r.Touchback = e.Payload.Touchback
			r.NextSpot = e.Payload.Spot
		case EventPlayEnd:
			r.Yards = e.Payload.Yards
			r.Duration = e.Time
		}
	}
	if r.Kind == "" {
		r.Kind = KindNoPlay
	}
	if r.Completed {
		r.YardsAfterCatch = r.Yards - catchAt
		if r.YardsAfterCatch < 0 {
			r.YardsAfterCatch = 0
		}
	}
	if contact && !r.Sack {
		r.YardsAfterContact = r.Yards - contactAt
		if r.YardsAfterContact < 0 {
			r.YardsAfterContact = 0
		}
	}
	r.Turnover = r.Interception || r.FumbleLost
	switch {
	case r.Touchdown:
		r.Points = PointsTouchdown
	case r.FieldGoal && r.KickMade:
		r.Points = PointsFieldGoal
	case r.ExtraPoint && r.KickMade:
		r.Points = PointsExtraPoint
	}
	if r.Safety {
		r.DefensePoints = PointsSafety
	}
	return r
}
