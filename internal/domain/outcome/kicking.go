package outcome

import (
	"math"

	"github.com/okian/gridiron/internal/domain/seed"
)

// KickInput describes a place kick.
type KickInput struct {
	Distance     float64
	KickPower    float64
	KickAccuracy float64
}

// FieldGoal is the make probability for a kick of the given distance.
func FieldGoal(in KickInput) float64 {
	var base float64
	switch d := in.Distance; {
	case d < 40:
		base = 0.845
	case d < 50:
		base = 0.75
	case d <= 60:
		base = 0.60
	default:
		base = 0.60 - (d-60)*0.03
	}
	adj := (in.KickAccuracy-75)*0.004 +
		(in.KickPower-75)*0.002*math.Max(0, in.Distance-35)/20
	return Clamp(base+adj, 0.05, 0.99)
}

// ExtraPoint is the make probability for the try after a touchdown.
func ExtraPoint(kickAccuracy float64) float64 {
	return Clamp(0.94+(kickAccuracy-75)*0.002, 0.5, 0.995)
}

// PuntGross draws the gross distance of a punt. With returns and fair
// catches the league net averages about 38 yards.
func PuntGross(kickPower float64, g *seed.RNG) float64 {
	return Clamp(g.Normal(43+(kickPower-70)*0.25, 5), 25, 70)
}

// PuntReturn draws return yardage on a fielded punt.
func PuntReturn(g *seed.RNG) float64 {
	return Clamp(g.Normal(8, 4), 0, 40)
}

// KickoffDistance draws how far a kickoff travels.
func KickoffDistance(kickPower float64, g *seed.RNG) float64 {
	return Clamp(g.Normal(62+(kickPower-70)*0.3, 4), 40, 75)
}

// KickoffReturn draws return yardage on a fielded kickoff.
func KickoffReturn(g *seed.RNG) float64 {
	return Clamp(g.Normal(23, 6), 5, 60)
}
