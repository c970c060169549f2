package generators

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/fr3shw3b/sortbench-datagen/pkg/sequence"
)

// Generator produces a sequence from a spec. Deterministic generators
// ignore rng.
type Generator func(rng *rand.Rand, spec SequenceSpec) (sequence.Sequence, error)

// Descriptor describes a named generator in the registry.
type Descriptor struct {
	Name   string
	Family Family
	// Random generators draw from the rng and are repeated in batch sweeps.
	Random   bool
	Generate Generator
}

// Generator names, matching the dataset file prefixes.
const (
	NameAscending                   = "ascendingData"
	NameDescending                  = "descendingData"
	NameAscendingWithNoise          = "ascendingDataWithNoise"
	NameDescendingWithNoise         = "descendingDataWithNoise"
	NameSawtoothAscending           = "sawtoothAscendingData"
	NameSawtoothDescending          = "sawtoothDescendingData"
	NameSawtoothAscendingWithNoise  = "sawtoothAscendingDataWithNoise"
	NameSawtoothDescendingWithNoise = "sawtoothDescendingDataWithNoise"
	NameSawtoothIncreasingAmplitude = "sawtoothAscendingDataWithIncreasingAmplitude"
	NameSquare                      = "squareData"
	NameSquareWithNoise             = "squareDataWithNoise"
	NameSine                        = "sinData"
	NameSineWithNoise               = "sinDataWithNoise"
	NameWithInversions              = "dataWithInversions"
	NameOutOfPlace                  = "dataOutOfPlace"
)

var registry = map[string]Descriptor{}

func register(name string, family Family, random bool, generate Generator) {
	registry[name] = Descriptor{Name: name, Family: family, Random: random, Generate: generate}
}

func init() {
	register(NameAscending, FamilyRange, false, func(_ *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		return Ascending(s.DomainMin, s.DomainMax, s.Length, s.Step)
	})
	register(NameDescending, FamilyRange, false, func(_ *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		return Descending(s.DomainMin, s.DomainMax, s.Length, s.Step)
	})
	register(NameAscendingWithNoise, FamilyRange, true, func(rng *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		min, max := s.IntegerDomain()
		if s.StrictRange {
			return AscendingWithNoiseStrict(rng, min, max, s.Length, s.NoiseLevel)
		}
		return AscendingWithNoise(rng, min, max, s.Length, s.NoiseLevel)
	})
	register(NameDescendingWithNoise, FamilyRange, true, func(rng *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		min, max := s.IntegerDomain()
		if s.StrictRange {
			return DescendingWithNoiseStrict(rng, min, max, s.Length, s.NoiseLevel)
		}
		return DescendingWithNoise(rng, min, max, s.Length, s.NoiseLevel)
	})
	register(NameSawtoothAscending, FamilySawtooth, false, func(_ *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		return Sawtooth(s.Length, s.Period, s.Multiplier)
	})
	register(NameSawtoothDescending, FamilySawtooth, false, func(_ *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		return SawtoothDescending(s.Length, s.Period, s.Multiplier)
	})
	register(NameSawtoothAscendingWithNoise, FamilySawtooth, true, func(rng *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		return SawtoothWithNoise(rng, s.Length, s.Period, s.NoiseLevel, s.Multiplier)
	})
	register(NameSawtoothDescendingWithNoise, FamilySawtooth, true, func(rng *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		return SawtoothDescendingWithNoise(rng, s.Length, s.Period, s.NoiseLevel, s.Multiplier)
	})
	register(NameSawtoothIncreasingAmplitude, FamilySawtooth, false, func(_ *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		return SawtoothWithIncreasingAmplitude(s.Length, s.Period, s.Multiplier)
	})
	register(NameSquare, FamilySquare, false, func(_ *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		return Square(s.Length, s.Frequency, s.Multiplier)
	})
	register(NameSquareWithNoise, FamilySquare, true, func(rng *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		return SquareWithNoise(rng, s.Length, s.Frequency, s.NoiseLevel, s.Multiplier)
	})
	register(NameSine, FamilySine, false, func(_ *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		return Sine(s.Multiplier), nil
	})
	register(NameSineWithNoise, FamilySine, true, func(rng *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		return SineWithNoise(rng, s.NoiseLevel, s.Multiplier)
	})
	register(NameWithInversions, FamilyInversions, false, func(_ *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		p, err := WithInversions(s.Length, s.Inversions)
		if err != nil {
			return nil, err
		}
		return p.Sequence(), nil
	})
	register(NameOutOfPlace, FamilySwaps, true, func(rng *rand.Rand, s SequenceSpec) (sequence.Sequence, error) {
		p, err := OutOfPlace(rng, s.Length, s.OutOfPlace)
		if err != nil {
			return nil, err
		}
		return p.Sequence(), nil
	})
}

// Lookup returns the generator registered under name.
func Lookup(name string) (Descriptor, error) {
	descriptor, exists := registry[name]
	if !exists {
		return Descriptor{}, fmt.Errorf("generator %q: %w", name, ErrUnknownGenerator)
	}
	return descriptor, nil
}

// Names lists the registered generator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run validates spec for the generator's family and runs it.
func (d Descriptor) Run(rng *rand.Rand, spec SequenceSpec) (sequence.Sequence, error) {
	if err := spec.Validate(d.Family); err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	return d.Generate(rng, spec)
}
