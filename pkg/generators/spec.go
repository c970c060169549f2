package generators

import (
	"fmt"
	"math"
)

// SequenceSpec is the immutable parameter record shared by every
// generator in the registry. Each family only reads the fields it needs.
type SequenceSpec struct {
	Length     int     `json:"length" yaml:"length"`
	DomainMin  float64 `json:"domainMin" yaml:"domainMin"`
	DomainMax  float64 `json:"domainMax" yaml:"domainMax"`
	Step       float64 `json:"step" yaml:"step"`
	Period     float64 `json:"period" yaml:"period"`
	Frequency  float64 `json:"frequency" yaml:"frequency"`
	NoiseLevel float64 `json:"noiseLevel" yaml:"noiseLevel"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
	Inversions int     `json:"inversions" yaml:"inversions"`
	OutOfPlace int     `json:"outOfPlace" yaml:"outOfPlace"`
	// StrictRange makes the noise range samplers fail with
	// ErrInsufficientRange instead of clamping the output length.
	StrictRange bool `json:"strictRange" yaml:"strictRange"`
}

// IntegerDomain rounds the domain bounds for the integer range samplers.
// Bounds beyond MaxNoiseMagnitude are saturated just past it, so the
// samplers reject them instead of converting out of range floats.
func (s SequenceSpec) IntegerDomain() (min, max int) {
	return saturateBound(s.DomainMin), saturateBound(s.DomainMax)
}

func saturateBound(bound float64) int {
	const limit = MaxNoiseMagnitude + 1
	rounded := math.Round(bound)
	switch {
	case math.IsNaN(rounded):
		return limit
	case rounded > limit:
		return limit
	case rounded < -limit:
		return -limit
	}
	return int(rounded)
}

// Family groups generators by the spec fields they depend on.
type Family int

const (
	FamilyRange Family = iota
	FamilySawtooth
	FamilySquare
	FamilySine
	FamilyInversions
	FamilySwaps
)

// Validate checks the SequenceSpec invariants relevant to the family.
func (s SequenceSpec) Validate(family Family) error {
	const method = "SequenceSpec.Validate"
	switch family {
	case FamilyRange:
		if s.Length < 0 {
			return invalidf(method, "length must not be negative, got %d", s.Length)
		}
		if math.IsNaN(s.DomainMin) || math.IsNaN(s.DomainMax) {
			return invalidf(method, "domain bounds must be numbers")
		}
		if s.DomainMin > s.DomainMax {
			return invalidf(method, "domain min %v is greater than max %v", s.DomainMin, s.DomainMax)
		}
	case FamilySawtooth:
		if s.Length < 0 {
			return invalidf(method, "length must not be negative, got %d", s.Length)
		}
		if !(s.Period > 0) {
			return invalidf(method, "period must be positive, got %v", s.Period)
		}
	case FamilySquare:
		if s.Length < 0 {
			return invalidf(method, "length must not be negative, got %d", s.Length)
		}
		if !(s.Frequency > 0) {
			return invalidf(method, "frequency must be positive, got %v", s.Frequency)
		}
	case FamilySine:
	case FamilyInversions:
		return InversionTarget{N: s.Length, K: s.Inversions}.Validate()
	case FamilySwaps:
		return SwapTarget{N: s.Length, C: s.OutOfPlace}.Validate()
	default:
		return fmt.Errorf("%s: unknown family %d: %w", method, family, ErrInvalidParameter)
	}
	if s.NoiseLevel < 0 {
		return invalidf(method, "noise level must not be negative, got %v", s.NoiseLevel)
	}
	return nil
}

// InversionTarget is the (n, k) contract of WithInversions.
type InversionTarget struct {
	N int
	K int
}

// Validate requires 0 <= K <= MaxInversions(N).
func (t InversionTarget) Validate() error {
	const method = "InversionTarget.Validate"
	if t.N < 0 {
		return invalidf(method, "length must not be negative, got %d", t.N)
	}
	if t.K < 0 || int64(t.K) > MaxInversions(t.N) {
		return invalidf(method, "inversion count %d outside [0, %d] for length %d", t.K, MaxInversions(t.N), t.N)
	}
	return nil
}

// SwapTarget is the (n, c) contract of OutOfPlace. C is a displacement
// budget, not an exact count.
type SwapTarget struct {
	N int
	C int
}

// Validate requires an even budget C in [0, N], with N >= 3 when C > 0.
func (t SwapTarget) Validate() error {
	const method = "SwapTarget.Validate"
	if t.N < 0 {
		return invalidf(method, "length must not be negative, got %d", t.N)
	}
	if t.C < 0 || t.C%2 != 0 {
		return invalidf(method, "out of place budget must be a non-negative even number, got %d", t.C)
	}
	if t.C > t.N {
		return invalidf(method, "out of place budget %d exceeds length %d", t.C, t.N)
	}
	if t.C > 0 && t.N < minSwapLength {
		return invalidf(method, "length %d is too short for skip-one swaps", t.N)
	}
	return nil
}

// MaxInversions is n(n-1)/2, the inversion count of the reversed permutation.
func MaxInversions(n int) int64 {
	if n < 2 {
		return 0
	}
	return int64(n) * int64(n-1) / 2
}

// DefaultSpec returns the parameters of the reference dataset run, used
// wherever a caller leaves a field unset.
func DefaultSpec() SequenceSpec {
	return SequenceSpec{
		Length:     1000,
		DomainMin:  0,
		DomainMax:  100,
		Step:       1,
		Period:     0.25,
		Frequency:  1,
		NoiseLevel: 200,
		Multiplier: 125,
	}
}
