package config

import (
	"sync"
)

var (
	dbOnce   sync.Once
	dbConfig *DatabaseConfig
)

type DatabaseConfig struct {
	File          string
	MigrationsDir string
}

func GetDatabaseConfig() *DatabaseConfig {
	dbOnce.Do(func() {
		loadEnv()
		dbConfig = &DatabaseConfig{
			File:          getEnv("DATABASE_FILE", "content-engine.db"),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "internal/repository/migrations"),
		}
	})
	return dbConfig
}
