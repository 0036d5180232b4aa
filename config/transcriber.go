package config

import (
	"os"
	"sync"
	"time"
)

var (
	transcriberOnce   sync.Once
	transcriberConfig *TranscriberConfig
)

type TranscriberConfig struct {
	// Endpoint of the speech-to-text HTTP service. When empty the
	// worker falls back to the simulated transcriber.
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

func GetTranscriberConfig() *TranscriberConfig {
	transcriberOnce.Do(func() {
		loadEnv()
		transcriberConfig = &TranscriberConfig{
			Endpoint: os.Getenv("TRANSCRIBER_ENDPOINT"),
			APIKey:   os.Getenv("TRANSCRIBER_API_KEY"),
			Timeout:  time.Duration(getEnvInt("TRANSCRIBER_TIMEOUT_SECONDS", 120)) * time.Second,
		}
	})
	return transcriberConfig
}
