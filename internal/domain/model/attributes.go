// Package model contains the immutable value types shared by every part of
// the simulator: player attributes, rosters, play definitions, events and
// play results.
package model

// Rating bounds.
const (
	MinRating = 0
	MaxRating = 100

	// LeagueAverageRating is the value every attribute takes for a
	// league-average player.
	LeagueAverageRating = 70
)

// Attributes are a player's 0-100 ratings. They are fixed for the duration
// of a game.
type Attributes struct {
	Speed        float64 `json:"speed"`
	Strength     float64 `json:"strength"`
	Agility      float64 `json:"agility"`
	Awareness    float64 `json:"awareness"`
	Catching     float64 `json:"catching"`
	Coverage     float64 `json:"coverage"`
	Tackling     float64 `json:"tackling"`
	BreakTackle  float64 `json:"break_tackle"`
	Blocking     float64 `json:"blocking"`
	PassRush     float64 `json:"pass_rush"`
	ThrowPower   float64 `json:"throw_power"`
	Accuracy     float64 `json:"accuracy"`
	KickPower    float64 `json:"kick_power"`
	KickAccuracy float64 `json:"kick_accuracy"`
	Durability   float64 `json:"durability"`
}

// LeagueAverage returns attributes with every rating at LeagueAverageRating.
func LeagueAverage() Attributes {
	return Uniform(LeagueAverageRating)
}

// Uniform returns attributes with every rating set to v.
func Uniform(v float64) Attributes {
	return Attributes{
		Speed: v, Strength: v, Agility: v, Awareness: v,
		Catching: v, Coverage: v, Tackling: v, BreakTackle: v,
		Blocking: v, PassRush: v, ThrowPower: v, Accuracy: v,
		KickPower: v, KickAccuracy: v, Durability: v,
	}
}

func (a Attributes) named() []struct {
	name  string
	value float64
} {
	return []struct {
		name  string
		value float64
	}{
		{"speed", a.Speed}, {"strength", a.Strength}, {"agility", a.Agility},
		{"awareness", a.Awareness}, {"catching", a.Catching}, {"coverage", a.Coverage},
		{"tackling", a.Tackling}, {"break_tackle", a.BreakTackle}, {"blocking", a.Blocking},
		{"pass_rush", a.PassRush}, {"throw_power", a.ThrowPower}, {"accuracy", a.Accuracy},
		{"kick_power", a.KickPower}, {"kick_accuracy", a.KickAccuracy}, {"durability", a.Durability},
	}
}

// Validate rejects ratings outside [0,100].
func (a Attributes) Validate() error {
	for _, n := range a.named() {
		if n.value < MinRating || n.value > MaxRating || n.value != n.value {
			return NewConfigurationError("attributes."+n.name, "rating %.2f outside [0,100]", n.value)
		}
	}
	return nil
}

// Each calls f with every rating's name and a pointer to it, in
// declaration order.
func (a *Attributes) Each(f func(name string, v *float64)) {
	f("speed", &a.Speed)
	f("strength", &a.Strength)
	f("agility", &a.Agility)
	f("awareness", &a.Awareness)
	f("catching", &a.Catching)
	f("coverage", &a.Coverage)
	f("tackling", &a.Tackling)
	f("break_tackle", &a.BreakTackle)
	f("blocking", &a.Blocking)
	f("pass_rush", &a.PassRush)
	f("throw_power", &a.ThrowPower)
	f("accuracy", &a.Accuracy)
	f("kick_power", &a.KickPower)
	f("kick_accuracy", &a.KickAccuracy)
	f("durability", &a.Durability)
}
