// Package outcome holds the probability models the engine consults at
// contact and decision points. Every model is a pure function of its inputs
// that returns a probability in [0,1]; the caller performs the seeded draw.
// Each model is monotonic in the attributes it consumes.
package outcome

import (
	"math"

	"github.com/okian/gridiron/internal/domain/seed"
	"github.com/okian/gridiron/internal/domain/tuning"
)

// Model intercepts (log-odds at league-average inputs).
const (
	tackleBase       = 0.6190392084062235 // logit(0.65)
	catchBase        = 0.703
	interceptionBase = -2.55
	pressureBase     = -0.944
	sackBase         = -1.2657
)

// Run block hold, in seconds at an even matchup.
const (
	blockHoldFloor = 2.0
	blockHoldMean  = 1.5
)

// TackleBaseAngle is the approach angle (radians) at which equal skill and
// equal speed give the baseline tackle probability.
const TackleBaseAngle = math.Pi / 6

// Logistic is the standard sigmoid.
func Logistic(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// Clamp bounds v to [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

// Draw performs a Bernoulli draw at probability p.
func Draw(g *seed.RNG, p float64) bool { return g.Bernoulli(p) }

// TackleInput describes a tackle attempt.
type TackleInput struct {
	Tackling    float64
	BreakTackle float64
	// Angle between the carrier's heading and the direction to the
	// tackler: 0 is head-on, pi is from behind.
	Angle        float64
	TacklerSpeed float64
	CarrierSpeed float64
}

// TackleSuccess is not tunable.
func TackleSuccess(in TackleInput) float64 {
	angle := Clamp(in.Angle, 0, math.Pi)
	x := tackleBase +
		0.35*(in.Tackling-in.BreakTackle)/10 +
		0.6*(TackleBaseAngle-angle) +
		0.15*(in.TacklerSpeed-in.CarrierSpeed)
	return Logistic(x)
}

// PassInput describes a throw.
type PassInput struct {
	Accuracy  float64
	Catching  float64
	Distance  float64
	Pressured bool
}

// Cone geometry.
const (
	coneFloorDeg      = 1.0
	conePerPointDeg   = 0.06
	pressureConeScale = 1.6
	reachBase         = 1.2
)

// ConeHalfAngle returns the accuracy cone half-angle in radians.
func ConeHalfAngle(accuracy float64, pressured bool) float64 {
	deg := coneFloorDeg + (100-Clamp(accuracy, 0, 100))*conePerPointDeg
	if pressured {
		deg *= pressureConeScale
	}
	return deg * math.Pi / 180
}

// PassOnTarget is the chance the ball arrives within the receiver's reach.
// Lateral error is normal with sigma set by the cone at the throw distance.
func PassOnTarget(in PassInput) float64 {
	dist := math.Max(in.Distance, 1)
	sigma := dist * math.Tan(ConeHalfAngle(in.Accuracy, in.Pressured))
	reach := reachBase + Clamp(in.Catching, 0, 100)/100
	return math.Erf(reach / (sigma * math.Sqrt2))
}

// CatchInput describes a catchable ball arriving at a receiver.
type CatchInput struct {
	Catching   float64
	Coverage   float64
	Separation float64
}

// CatchContest is the completion chance for an on-target ball. The
// completion knob scales it.
func CatchContest(in CatchInput, t tuning.Parameters) float64 {
	sep := Clamp(in.Separation, 0, 5)
	p := Logistic(catchBase + (in.Catching-in.Coverage)/20 + 0.08*(sep-2))
	return Clamp(p*t.Completion(), 0.02, 0.98)
}

// InterceptionInput describes an incomplete throw.
type InterceptionInput struct {
	Coverage   float64
	Accuracy   float64
	Separation float64
	Pressured  bool
}

// Interception is the chance an incompletion is picked off.
func Interception(in InterceptionInput, t tuning.Parameters) float64 {
	sep := Clamp(in.Separation, 0, 5)
	x := interceptionBase + (in.Coverage-in.Accuracy)/20 - 0.1*(sep-2)
	if in.Pressured {
		x += 0.3
	}
	return Clamp(Logistic(x)*t.Interception(), 0, 0.95)
}

// PressureInput describes the pass rush against the protection.
type PressureInput struct {
	PassRush float64
	Blocking float64
	Rushers  int
	Blockers int
}

// Pressure is the per-dropback chance a rusher gets home.
func Pressure(in PressureInput, t tuning.Parameters) float64 {
	x := pressureBase +
		(in.PassRush-in.Blocking)/15 +
		0.3*float64(in.Rushers-4) -
		0.15*float64(in.Blockers-5)
	return Clamp(Logistic(x)*t.Pressure(), 0, 0.95)
}

// SackInput describes a pressuring rusher against the quarterback.
type SackInput struct {
	PassRush float64
	Escape   float64
}

// Sack is the chance a pressure becomes a sack. It scales with the rusher
// reach knob relative to its default.
func Sack(in SackInput, t tuning.Parameters) float64 {
	p := Logistic(sackBase + (in.PassRush-in.Escape)/20)
	return Clamp(p*t.SackReach()/tuning.DefaultSackDistance, 0, 0.95)
}

// ReleaseTime draws when the quarterback lets the ball go, in seconds
// after the snap.
func ReleaseTime(awareness float64, g *seed.RNG) float64 {
	return Clamp(2.0-(awareness-70)*0.012+g.Normal(0, 0.15), 1.2, 3.2)
}

// Fumble is the chance a tackle knocks the ball loose.
func Fumble(hitterStrength, carrierStrength float64) float64 {
	return 0.024 * Logistic((hitterStrength-carrierStrength)/20)
}

// BlockHold draws how long a run blocker keeps a defender engaged: a
// guaranteed hold plus an exponential tail, both scaled by the matchup.
func BlockHold(blocking, strength float64, t tuning.Parameters, g *seed.RNG) float64 {
	k := math.Exp((blocking-strength)/40) * t.RushBlock()
	return Clamp(blockHoldFloor*k+g.Exp(blockHoldMean*k), 0.1, 6)
}
