package generators

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/fr3shw3b/sortbench-datagen/pkg/sequence"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Ascending produces length values min, min+step, min+2*step, ...
// The max bound only takes part in validation.
func Ascending(min, max float64, length int, step float64) (sequence.Sequence, error) {
	if err := validateRamp("Ascending", min, max, length, step); err != nil {
		return nil, err
	}
	seq := make(sequence.Sequence, length)
	for i := range seq {
		seq[i] = min + float64(i)*step
	}
	return seq, nil
}

// Descending produces length values max, max-step, max-2*step, ...
func Descending(min, max float64, length int, step float64) (sequence.Sequence, error) {
	if err := validateRamp("Descending", min, max, length, step); err != nil {
		return nil, err
	}
	seq := make(sequence.Sequence, length)
	for i := range seq {
		seq[i] = max - float64(i)*step
	}
	return seq, nil
}

func validateRamp(method string, min, max float64, length int, step float64) error {
	if length < 0 {
		return invalidf(method, "length must not be negative, got %d", length)
	}
	if min > max {
		return invalidf(method, "min %v is greater than max %v", min, max)
	}
	if step <= 0 {
		return invalidf(method, "step must be positive, got %v", step)
	}
	return nil
}

// MaxNoiseMagnitude bounds both the integer domain of the noise samplers
// and the width of the sampled window, so every sampled integer stays
// within ±2^53 and is exact as a float64.
const MaxNoiseMagnitude = 1 << 52

// NoiseSampleSize returns how many unique values the noise samplers will
// draw for the request, and whether that is fewer than length.
//
// The sampled range is max(1, round((max-min+1)*noiseFactor)) wide, capped
// at MaxNoiseMagnitude, so a small noiseFactor narrows the range and can
// clamp the output length.
func NoiseSampleSize(min, max int, length int, noiseFactor float64) (size int, clamped bool) {
	scaled := scaledRange(min, max, noiseFactor)
	if length <= scaled {
		return length, false
	}
	return scaled, true
}

// scaledRange works in float64 so wide domains and large noise factors
// saturate at MaxNoiseMagnitude instead of overflowing int.
func scaledRange(min, max int, noiseFactor float64) int {
	scaled := math.Round((float64(max) - float64(min) + 1) * noiseFactor)
	switch {
	case math.IsNaN(scaled) || scaled < 1:
		return 1
	case scaled > MaxNoiseMagnitude:
		return MaxNoiseMagnitude
	}
	return int(scaled)
}

// AscendingWithNoise draws unique integers without replacement from
// [min, min+scaledRange) and returns them sorted ascending. When the range
// holds fewer than length values the output is clamped to the range size;
// use NoiseSampleSize to detect this, or AscendingWithNoiseStrict to fail.
func AscendingWithNoise(rng *rand.Rand, min, max int, length int, noiseFactor float64) (sequence.Sequence, error) {
	return sampleNoise("AscendingWithNoise", rng, min, max, length, noiseFactor, false, false)
}

// DescendingWithNoise draws unique integers without replacement from
// (max-scaledRange, max] and returns them sorted descending.
func DescendingWithNoise(rng *rand.Rand, min, max int, length int, noiseFactor float64) (sequence.Sequence, error) {
	return sampleNoise("DescendingWithNoise", rng, min, max, length, noiseFactor, true, false)
}

// AscendingWithNoiseStrict is AscendingWithNoise returning
// ErrInsufficientRange rather than clamping.
func AscendingWithNoiseStrict(rng *rand.Rand, min, max int, length int, noiseFactor float64) (sequence.Sequence, error) {
	return sampleNoise("AscendingWithNoiseStrict", rng, min, max, length, noiseFactor, false, true)
}

// DescendingWithNoiseStrict is DescendingWithNoise returning
// ErrInsufficientRange rather than clamping.
func DescendingWithNoiseStrict(rng *rand.Rand, min, max int, length int, noiseFactor float64) (sequence.Sequence, error) {
	return sampleNoise("DescendingWithNoiseStrict", rng, min, max, length, noiseFactor, true, true)
}

func sampleNoise(
	method string,
	rng *rand.Rand,
	min, max int,
	length int,
	noiseFactor float64,
	descending bool,
	strict bool,
) (sequence.Sequence, error) {
	if rng == nil {
		return nil, invalidf(method, "random source is required")
	}
	if length < 0 {
		return nil, invalidf(method, "length must not be negative, got %d", length)
	}
	if min > max {
		return nil, invalidf(method, "min %d is greater than max %d", min, max)
	}
	if noiseFactor < 0 || math.IsNaN(noiseFactor) {
		return nil, invalidf(method, "noise factor must not be negative, got %v", noiseFactor)
	}
	if min < -MaxNoiseMagnitude || max > MaxNoiseMagnitude {
		return nil, invalidf(method, "domain [%d, %d] exceeds ±%d", min, max, MaxNoiseMagnitude)
	}

	scaled := scaledRange(min, max, noiseFactor)
	size, clamped := NoiseSampleSize(min, max, length, noiseFactor)
	if clamped && strict {
		return nil, fmt.Errorf(
			"%s: %d unique values requested but the scaled range only holds %d: %w",
			method, length, scaled, ErrInsufficientRange,
		)
	}
	if size == 0 {
		return sequence.Sequence{}, nil
	}

	offsets := make([]int, size)
	sampleuv.WithoutReplacement(offsets, scaled, rng)

	// Lowest value of the sampled window.
	base := min
	if descending {
		base = max - scaled + 1
	}

	if descending {
		sort.Sort(sort.Reverse(sort.IntSlice(offsets)))
	} else {
		sort.Ints(offsets)
	}

	seq := make(sequence.Sequence, size)
	for i, offset := range offsets {
		seq[i] = float64(base + offset)
	}
	return seq, nil
}
