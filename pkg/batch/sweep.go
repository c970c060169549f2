package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Sweep enumerates the parameters of one batch run. Zero values in a
// loaded file fall back to DefaultSweep.
type Sweep struct {
	NumToGen        int     `json:"numToGen" yaml:"numToGen"`
	ArrayLen        int     `json:"arrayLen" yaml:"arrayLen"`
	SawtoothPeriod  float64 `json:"sawtoothPeriod" yaml:"sawtoothPeriod"`
	MinVal          float64 `json:"minVal" yaml:"minVal"`
	MaxVal          float64 `json:"maxVal" yaml:"maxVal"`
	Step            float64 `json:"step" yaml:"step"`
	SquareFreq      float64 `json:"squareFreq" yaml:"squareFreq"`
	Noise           float64 `json:"noise" yaml:"noise"`
	InvArrayLen     int     `json:"invArrayLen" yaml:"invArrayLen"`
	InvCount        int     `json:"invCount" yaml:"invCount"`
	CountOutOfPlace int     `json:"countOutOfPlace" yaml:"countOutOfPlace"`
	Multiplier      float64 `json:"multiplier" yaml:"multiplier"`
	// IncludeDeterministic also writes one file per noise-free generator.
	IncludeDeterministic bool `json:"includeDeterministic" yaml:"includeDeterministic"`
}

// DefaultSweep returns the parameters of the reference dataset run.
func DefaultSweep() *Sweep {
	return &Sweep{
		NumToGen:        5,
		ArrayLen:        1000,
		SawtoothPeriod:  0.25,
		MinVal:          0,
		MaxVal:          100,
		Step:            1,
		SquareFreq:      1.0,
		Noise:           200,
		InvArrayLen:     10,
		InvCount:        5,
		CountOutOfPlace: 6,
		Multiplier:      125,
	}
}

// LoadSweep reads a sweep from a JSON or YAML file, chosen by extension.
func LoadSweep(path string) (*Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep file: %w", err)
	}

	sweep := DefaultSweep()
	if filepath.Ext(path) == ".json" {
		if err := json.Unmarshal(data, sweep); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, sweep); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := sweep.Validate(); err != nil {
		return nil, err
	}
	return sweep, nil
}

// Validate checks the sweep-level counts. Generator parameters are
// validated by each generator when the batch runs.
func (s *Sweep) Validate() error {
	if s.NumToGen < 0 {
		return &ValidationError{Message: "numToGen must not be negative"}
	}
	if s.ArrayLen < 0 || s.InvArrayLen < 0 {
		return &ValidationError{Message: "array lengths must not be negative"}
	}
	if s.InvCount < 0 || s.CountOutOfPlace < 0 {
		return &ValidationError{Message: "invCount and countOutOfPlace must not be negative"}
	}
	if s.MinVal > s.MaxVal {
		return &ValidationError{Message: fmt.Sprintf("minVal %v is greater than maxVal %v", s.MinVal, s.MaxVal)}
	}
	return nil
}

// ValidationError reports an invalid sweep file.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid sweep: " + e.Message
}
