package batch

import (
	"github.com/fr3shw3b/sortbench-datagen/pkg/generators"
)

// job is one generated file.
type job struct {
	generator string
	index     int
	spec      generators.SequenceSpec
}

// noisyGenerators are repeated NumToGen times, in this order.
var noisyGenerators = []string{
	generators.NameAscendingWithNoise,
	generators.NameDescendingWithNoise,
	generators.NameSawtoothAscendingWithNoise,
	generators.NameSawtoothDescendingWithNoise,
	generators.NameSquareWithNoise,
	generators.NameSineWithNoise,
}

var deterministicGenerators = []string{
	generators.NameAscending,
	generators.NameDescending,
	generators.NameSawtoothAscending,
	generators.NameSawtoothDescending,
	generators.NameSawtoothIncreasingAmplitude,
	generators.NameSquare,
	generators.NameSine,
}

func (s *Sweep) baseSpec(strictRange bool) generators.SequenceSpec {
	return generators.SequenceSpec{
		Length:      s.ArrayLen,
		DomainMin:   s.MinVal,
		DomainMax:   s.MaxVal,
		Step:        s.Step,
		Period:      s.SawtoothPeriod,
		Frequency:   s.SquareFreq,
		NoiseLevel:  s.Noise,
		Multiplier:  s.Multiplier,
		StrictRange: strictRange,
	}
}

// jobs expands the sweep into the full, ordered list of files to produce.
// The position of a job in the list seeds its random source.
func (s *Sweep) jobs(strictRange bool) []job {
	base := s.baseSpec(strictRange)
	jobs := []job{}

	for n := 0; n < s.NumToGen; n++ {
		for _, name := range noisyGenerators {
			jobs = append(jobs, job{generator: name, index: n, spec: base})
		}
	}

	for c := 2; c < s.CountOutOfPlace; c += 2 {
		spec := base
		spec.OutOfPlace = c
		jobs = append(jobs, job{generator: generators.NameOutOfPlace, index: c, spec: spec})
	}

	for i := 0; i < s.InvCount; i++ {
		spec := base
		spec.Length = s.InvArrayLen
		spec.Inversions = i
		jobs = append(jobs, job{generator: generators.NameWithInversions, index: i, spec: spec})
	}

	if s.IncludeDeterministic {
		for _, name := range deterministicGenerators {
			jobs = append(jobs, job{generator: name, index: 0, spec: base})
		}
	}
	return jobs
}
