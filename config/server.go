package config

import (
	"sync"
)

var (
	serverOnce   sync.Once
	serverConfig *ServerConfig
)

type ServerConfig struct {
	Addr           string
	StorageBackend string
	LogLevel       string
	LogFile        string
}

func GetServerConfig() *ServerConfig {
	serverOnce.Do(func() {
		loadEnv()
		serverConfig = &ServerConfig{
			Addr:           getEnv("SERVER_ADDR", ":8080"),
			StorageBackend: getEnv("STORAGE_BACKEND", "minio"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFile:        getEnv("LOG_FILE", ""),
		}
	})
	return serverConfig
}
