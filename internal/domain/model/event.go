package model

// EventType names what happened.
type EventType string

// Event types emitted by the engine.
const (
	EventSnap           EventType = "snap"
	EventHandoff        EventType = "handoff"
	EventRushAttempt    EventType = "rush_attempt"
	EventPressure       EventType = "pressure"
	EventSack           EventType = "sack"
	EventPassAttempt    EventType = "pass_attempt"
	EventCompletion     EventType = "pass_completion"
	EventIncompletion   EventType = "pass_incomplete"
	EventInterception   EventType = "interception"
	EventTackle         EventType = "tackle"
	EventBrokenTackle   EventType = "broken_tackle"
	EventFumble         EventType = "fumble"
	EventFumbleRecovery EventType = "fumble_recovery"
	EventOutOfBounds    EventType = "out_of_bounds"
	EventTouchdown      EventType = "touchdown"
	EventSafety         EventType = "safety"
	EventPenalty        EventType = "penalty"
	EventInjury         EventType = "injury"
	EventFieldGoal      EventType = "field_goal"
	EventExtraPoint     EventType = "extra_point"
	EventPunt           EventType = "punt"
	EventKickoff        EventType = "kickoff"
	EventPlayEnd        EventType = "play_end"
)

// Side is relative to the snap.
type Side string

// Sides.
const (
	SideOffense Side = "offense"
	SideDefense Side = "defense"
)

// PenaltyType names a foul.
type PenaltyType string

// Fouls the engine can call.
const (
	FalseStart       PenaltyType = "false_start"
	Offside          PenaltyType = "offside"
	OffensiveHolding PenaltyType = "offensive_holding"
	DefensiveHolding PenaltyType = "defensive_holding"
	PassInterference PenaltyType = "pass_interference"
)

// Penalty is a called foul.
type Penalty struct {
	Type      PenaltyType `json:"type"`
	Side      Side        `json:"side"`
	Yards     float64     `json:"yards"`
	AutoFirst bool        `json:"auto_first,omitempty"`
	PreSnap   bool        `json:"pre_snap,omitempty"`
}

// Severity is an injury tier.
type Severity string

// Injury tiers.
const (
	Minor    Severity = "minor"
	Moderate Severity = "moderate"
	Severe   Severity = "severe"
)

// Injury is one injury with how long the player is out. Only the field
// matching the tier is set.
type Injury struct {
	PlayerID string   `json:"player_id"`
	Severity Severity `json:"severity"`
	OutPlays int      `json:"out_plays,omitempty"`
	OutGames int      `json:"out_games,omitempty"`
	OutWeeks int      `json:"out_weeks,omitempty"`
}

// Payload carries the numeric detail of an event. Yards and Y are measured
// from the line of scrimmage toward the defense's goal.
type Payload struct {
	Yards     float64  `json:"yards,omitempty"`
	AirYards  float64  `json:"air_yards,omitempty"`
	X         float64  `json:"x,omitempty"`
	Y         float64  `json:"y,omitempty"`
	Distance  float64  `json:"distance,omitempty"`
	Impact    float64  `json:"impact,omitempty"`
	Spot      float64  `json:"spot,omitempty"`
	Made      bool     `json:"made,omitempty"`
	Lost      bool     `json:"lost,omitempty"`
	Touchback bool     `json:"touchback,omitempty"`
	Pressured bool     `json:"pressured,omitempty"`
	Penalty   *Penalty `json:"penalty,omitempty"`
	Injury    *Injury  `json:"injury,omitempty"`
}

// Event is one immutable, timestamped record in a play's stream. Actors
// lists player ids with the primary actor first.
type Event struct {
	Seq     int       `json:"seq"`
	Type    EventType `json:"type"`
	Time    float64   `json:"t"`
	Actors  []string  `json:"actors,omitempty"`
	Payload Payload   `json:"payload"`
}

// Actor returns the i-th actor or "".
func (e Event) Actor(i int) string {
	if i < len(e.Actors) {
		return e.Actors[i]
	}
	return ""
}

// Stream is an append-only event log for one play.
type Stream struct {
	events []Event
}

// Append adds an event, stamping its sequence number. Callers must not
// reuse the actors slice after appending.
func (s *Stream) Append(t EventType, at float64, payload Payload, actors ...string) {
	s.events = append(s.events, Event{
		Seq:     len(s.events),
		Type:    t,
		Time:    at,
		Actors:  actors,
		Payload: payload,
	})
}

// Len returns the number of events.
func (s *Stream) Len() int { return len(s.events) }

// Events returns a copy of the log.
func (s *Stream) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Count returns how many events of type t a log holds.
func Count(events []Event, t EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == t {
			n++
		}
	}
	return n
}
