// Package tuning holds the immutable snapshot of named multipliers the
// outcome models read. A snapshot is never mutated; With and Scale return a
// new one, so a batch of simulations can share it without synchronization.
package tuning

import (
	"math"
	"sort"

	"github.com/okian/gridiron/internal/domain/model"
)

// Knob names.
const (
	CompletionMod  = "completion_mod"
	PressureMod    = "pressure_mod"
	IntMod         = "int_mod"
	YACMod         = "yac_mod"
	RushBlockMod   = "rush_block_mod"
	PenaltyRateMod = "penalty_rate_mod"
	SackDistance   = "sack_distance"
)

// DefaultSackDistance is the rusher reach in yards that the sack model is
// normalized against.
const DefaultSackDistance = 1.0

// Parameters is a read-only set of multipliers.
type Parameters struct {
	values map[string]float64
}

// Defaults returns the neutral snapshot.
func Defaults() Parameters {
	return Parameters{values: map[string]float64{
		CompletionMod:  1.0,
		PressureMod:    1.0,
		IntMod:         1.0,
		YACMod:         1.0,
		RushBlockMod:   1.0,
		PenaltyRateMod: 1.0,
		SackDistance:   DefaultSackDistance,
	}}
}

// Known reports whether name is a tunable knob.
func Known(name string) bool {
	_, ok := Defaults().values[name]
	return ok
}

// FromMap overlays overrides on the defaults. Unknown names and
// non-positive values are configuration errors.
func FromMap(overrides map[string]float64) (Parameters, error) {
	p := Defaults()
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		next, err := p.With(name, overrides[name])
		if err != nil {
			return Parameters{}, err
		}
		p = next
	}
	return p, nil
}

// Get returns the value of a knob. Unknown knobs read as 1.
func (p Parameters) Get(name string) float64 {
	if v, ok := p.values[name]; ok {
		return v
	}
	if name == SackDistance {
		return DefaultSackDistance
	}
	return 1.0
}

// With returns a copy with name set to v.
func (p Parameters) With(name string, v float64) (Parameters, error) {
	if !Known(name) {
		return Parameters{}, model.NewConfigurationError("tuning."+name, "unknown knob")
	}
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Parameters{}, model.NewConfigurationError("tuning."+name, "value %v must be positive", v)
	}
	next := make(map[string]float64, len(p.values)+1)
	for k, val := range p.values {
		next[k] = val
	}
	next[name] = v
	return Parameters{values: next}, nil
}

// Scale returns a copy with name multiplied by ratio.
func (p Parameters) Scale(name string, ratio float64) (Parameters, error) {
	return p.With(name, p.Get(name)*ratio)
}

// Map returns a copy of every knob.
func (p Parameters) Map() map[string]float64 {
	out := make(map[string]float64, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Names returns the knob names in sorted order.
func (p Parameters) Names() []string {
	names := make([]string, 0, len(p.values))
	for k := range p.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Convenience accessors used on the hot path.

func (p Parameters) Completion() float64   { return p.Get(CompletionMod) }
func (p Parameters) Pressure() float64     { return p.Get(PressureMod) }
func (p Parameters) Interception() float64 { return p.Get(IntMod) }
func (p Parameters) YAC() float64          { return p.Get(YACMod) }
func (p Parameters) RushBlock() float64    { return p.Get(RushBlockMod) }
func (p Parameters) PenaltyRate() float64  { return p.Get(PenaltyRateMod) }
func (p Parameters) SackReach() float64    { return p.Get(SackDistance) }
