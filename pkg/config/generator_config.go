package config

import (
	"os"
	"runtime"
	"strconv"
)

// GeneratorConfig configures batch dataset generation.
type GeneratorConfig struct {
	OutputDir string
	// Seed is nil when every run should pick a fresh seed.
	Seed        *uint64
	Workers     int
	StrictRange bool
	LogLevel    string
}

func LoadForGenerator() (*GeneratorConfig, error) {
	outputDir, outputDirExists := os.LookupEnv("OUTPUT_DIR")
	if !outputDirExists {
		outputDir = "data"
	}

	var seed *uint64
	if seedStr, seedExists := os.LookupEnv("SEED"); seedExists && seedStr != "" {
		parsed, err := strconv.ParseUint(seedStr, 10, 64)
		if err != nil {
			return nil, err
		}
		seed = &parsed
	}

	workers, err := intFromEnv("WORKERS", runtime.NumCPU())
	if err != nil {
		return nil, err
	}

	strictRange, err := boolFromEnv("STRICT_RANGE", false)
	if err != nil {
		return nil, err
	}

	return &GeneratorConfig{
		OutputDir:   outputDir,
		Seed:        seed,
		Workers:     workers,
		StrictRange: strictRange,
		LogLevel:    logLevelFromEnv(),
	}, nil
}
