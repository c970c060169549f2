package config

import (
	"os"
	"strconv"
)

type Config struct {
	SequenceMessageInterval    int
	SessionStateIdleTimeExpiry int
	MaxSequenceLength          int
	LogLevel                   string
}

func Load() (*Config, error) {
	sequenceMessageInterval, err := intFromEnv("SEQUENCE_MESSAGE_INTERVAL", 1)
	if err != nil {
		return nil, err
	}

	sessionStateIdleTimeExpiry, err := intFromEnv("SESSION_STATE_IDLE_TIME_EXPIRY", 30)
	if err != nil {
		return nil, err
	}

	maxSequenceLength, err := intFromEnv("MAX_SEQUENCE_LENGTH", 0xffff)
	if err != nil {
		return nil, err
	}

	return &Config{
		SequenceMessageInterval:    sequenceMessageInterval,
		SessionStateIdleTimeExpiry: sessionStateIdleTimeExpiry,
		MaxSequenceLength:          maxSequenceLength,
		LogLevel:                   logLevelFromEnv(),
	}, nil
}

func intFromEnv(name string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(name)
	if !exists {
		return defaultValue, nil
	}
	return strconv.Atoi(valueStr)
}

func boolFromEnv(name string, defaultValue bool) (bool, error) {
	valueStr, exists := os.LookupEnv(name)
	if !exists {
		return defaultValue, nil
	}
	return strconv.ParseBool(valueStr)
}

func logLevelFromEnv() string {
	logLevel, logLevelExists := os.LookupEnv("LOG_LEVEL")
	if !logLevelExists {
		logLevel = "info"
	}
	return logLevel
}
