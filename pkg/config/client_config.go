package config

type ClientConfig struct {
	SendLastReceivedIndex bool
	MaxReconnectAttempts  int
	LogLevel              string
}

func LoadForClient() (*ClientConfig, error) {
	sendLastReceived, err := boolFromEnv("SEND_LAST_RECEIVED_INDEX", false)
	if err != nil {
		return nil, err
	}

	maxReconnectAttempts, err := intFromEnv("MAX_RECONNECTION_ATTEMPTS", 100)
	if err != nil {
		return nil, err
	}

	return &ClientConfig{
		SendLastReceivedIndex: sendLastReceived,
		MaxReconnectAttempts:  maxReconnectAttempts,
		LogLevel:              logLevelFromEnv(),
	}, nil
}
