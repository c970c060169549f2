package generators

import (
	"math"
	"math/rand/v2"

	"github.com/fr3shw3b/sortbench-datagen/pkg/sequence"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// Sine waves are sampled on a fixed real-time axis 0, 0.1, ..., 9.9.
	sineAxisEnd  = 10.0
	sineAxisStep = 0.1

	// Linear drift added by SawtoothWithIncreasingAmplitude: 3.7 * 0.7 * t.
	driftScale = 3.7
	driftSlope = 0.7
)

// timeBase returns length samples evenly spaced over [0, 1).
func timeBase(length int) []float64 {
	if length == 0 {
		return []float64{}
	}
	// Span includes both endpoints, drop the trailing 1.
	return floats.Span(make([]float64, length+1), 0, 1)[:length]
}

// sawtoothAt is the standard unit sawtooth ramping from -1 to 1 once per
// period, so sawtoothAt(t, p) == (2πt/p mod 2π)/π - 1.
func sawtoothAt(t, period float64) float64 {
	frac := t/period - math.Floor(t/period)
	return 2*frac - 1
}

// squareAt is sign(sin(2π f t)). The zero crossings take the sign of the
// half cycle being entered so the output never leaves {-1, 1}.
func squareAt(t, frequency float64) float64 {
	phase := t*frequency - math.Floor(t*frequency)
	if phase < 0.5 {
		return 1
	}
	return -1
}

func validateWave(method string, length int, periodOrFrequency float64, name string) error {
	if length < 0 {
		return invalidf(method, "length must not be negative, got %d", length)
	}
	if periodOrFrequency <= 0 || math.IsNaN(periodOrFrequency) {
		return invalidf(method, "%s must be positive, got %v", name, periodOrFrequency)
	}
	return nil
}

func validateNoise(method string, rng *rand.Rand, noise float64) error {
	if rng == nil {
		return invalidf(method, "random source is required")
	}
	if noise < 0 || math.IsNaN(noise) {
		return invalidf(method, "noise level must not be negative, got %v", noise)
	}
	return nil
}

// addNoise perturbs every sample with independent N(0, sigma) noise.
func addNoise(rng *rand.Rand, seq sequence.Sequence, sigma float64) {
	if sigma == 0 {
		return
	}
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: rng}
	for i := range seq {
		seq[i] += noise.Rand()
	}
}

// Sawtooth samples multiplier * sawtooth(2πt/period) at length points over [0, 1).
func Sawtooth(length int, period, multiplier float64) (sequence.Sequence, error) {
	return sawtooth("Sawtooth", length, period, multiplier)
}

// SawtoothDescending is Sawtooth with the amplitude negated.
func SawtoothDescending(length int, period, multiplier float64) (sequence.Sequence, error) {
	return sawtooth("SawtoothDescending", length, period, -multiplier)
}

func sawtooth(method string, length int, period, multiplier float64) (sequence.Sequence, error) {
	if err := validateWave(method, length, period, "period"); err != nil {
		return nil, err
	}
	t := timeBase(length)
	seq := make(sequence.Sequence, length)
	for i := range seq {
		seq[i] = multiplier * sawtoothAt(t[i], period)
	}
	return seq, nil
}

// SawtoothWithNoise adds independent Gaussian noise with standard
// deviation noiseLevel to every sample of Sawtooth.
func SawtoothWithNoise(rng *rand.Rand, length int, period, noiseLevel, multiplier float64) (sequence.Sequence, error) {
	const method = "SawtoothWithNoise"
	if err := validateNoise(method, rng, noiseLevel); err != nil {
		return nil, err
	}
	seq, err := sawtooth(method, length, period, multiplier)
	if err != nil {
		return nil, err
	}
	addNoise(rng, seq, noiseLevel)
	return seq, nil
}

// SawtoothDescendingWithNoise adds Gaussian noise to SawtoothDescending.
func SawtoothDescendingWithNoise(rng *rand.Rand, length int, period, noiseLevel, multiplier float64) (sequence.Sequence, error) {
	const method = "SawtoothDescendingWithNoise"
	if err := validateNoise(method, rng, noiseLevel); err != nil {
		return nil, err
	}
	seq, err := sawtooth(method, length, period, -multiplier)
	if err != nil {
		return nil, err
	}
	addNoise(rng, seq, noiseLevel)
	return seq, nil
}

// SawtoothWithIncreasingAmplitude scales each sawtooth sample by
// t mod (1/period) and adds a 3.7*0.7*t drift, giving mostly ascending
// data whose local jitter grows along the sequence.
func SawtoothWithIncreasingAmplitude(length int, period, multiplier float64) (sequence.Sequence, error) {
	const method = "SawtoothWithIncreasingAmplitude"
	if err := validateWave(method, length, period, "period"); err != nil {
		return nil, err
	}
	t := timeBase(length)
	envelopePeriod := 1 / period
	seq := make(sequence.Sequence, length)
	for i := range seq {
		envelope := math.Mod(t[i], envelopePeriod)
		seq[i] = multiplier*sawtoothAt(t[i], period)*envelope + driftScale*(t[i]*driftSlope)
	}
	return seq, nil
}

// Square samples sign(sin(2π frequency t)) * multiplier at length points
// over [0, 1). Without noise every value is either -multiplier or multiplier.
func Square(length int, frequency, multiplier float64) (sequence.Sequence, error) {
	return square("Square", length, frequency, multiplier)
}

func square(method string, length int, frequency, multiplier float64) (sequence.Sequence, error) {
	if err := validateWave(method, length, frequency, "frequency"); err != nil {
		return nil, err
	}
	t := timeBase(length)
	seq := make(sequence.Sequence, length)
	for i := range seq {
		seq[i] = multiplier * squareAt(t[i], frequency)
	}
	return seq, nil
}

// SquareWithNoise adds Gaussian noise with standard deviation
// noiseAmplitude to every sample of Square.
func SquareWithNoise(rng *rand.Rand, length int, frequency, noiseAmplitude, multiplier float64) (sequence.Sequence, error) {
	const method = "SquareWithNoise"
	if err := validateNoise(method, rng, noiseAmplitude); err != nil {
		return nil, err
	}
	seq, err := square(method, length, frequency, multiplier)
	if err != nil {
		return nil, err
	}
	addNoise(rng, seq, noiseAmplitude)
	return seq, nil
}

// SineTimeAxis returns the fixed time samples used by the sine generators.
func SineTimeAxis() sequence.Sequence {
	n := int(math.Round(sineAxisEnd / sineAxisStep))
	axis := make(sequence.Sequence, n)
	for i := range axis {
		axis[i] = float64(i) * sineAxisStep
	}
	return axis
}

// Sine returns multiplier * sin(t) over SineTimeAxis.
func Sine(multiplier float64) sequence.Sequence {
	axis := SineTimeAxis()
	seq := make(sequence.Sequence, len(axis))
	for i, t := range axis {
		seq[i] = multiplier * math.Sin(t)
	}
	return seq
}

// SineWithNoise returns multiplier * (sin(t) + noise*N(0,1)) over
// SineTimeAxis, so the multiplier scales the noise as well.
func SineWithNoise(rng *rand.Rand, noise, multiplier float64) (sequence.Sequence, error) {
	if err := validateNoise("SineWithNoise", rng, noise); err != nil {
		return nil, err
	}
	axis := SineTimeAxis()
	seq := make(sequence.Sequence, len(axis))
	for i, t := range axis {
		seq[i] = math.Sin(t)
	}
	addNoise(rng, seq, noise)
	for i := range seq {
		seq[i] *= multiplier
	}
	return seq, nil
}
