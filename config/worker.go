package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	workerOnce   sync.Once
	workerConfig *WorkerConfig
	workerErr    error
)

// WorkerConfig controls the asynq server: how many handler goroutines
// run and how weight is split across the priority queues.
type WorkerConfig struct {
	Concurrency int            `yaml:"concurrency"`
	Queues      map[string]int `yaml:"queues"`
}

func defaultWorkerConfig() *WorkerConfig {
	return &WorkerConfig{
		Concurrency: 5,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
	}
}

// GetWorkerConfig reads the yaml file named by WORKER_CONFIG, falling
// back to built-in defaults when the variable is unset.
func GetWorkerConfig() (*WorkerConfig, error) {
	workerOnce.Do(func() {
		loadEnv()

		path := os.Getenv("WORKER_CONFIG")
		if path == "" {
			workerConfig = defaultWorkerConfig()
			return
		}

		data, err := os.ReadFile(path)
		if err != nil {
			workerErr = fmt.Errorf("failed to read worker config: %w", err)
			return
		}

		cfg := defaultWorkerConfig()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			workerErr = fmt.Errorf("failed to parse worker config: %w", err)
			return
		}
		if cfg.Concurrency <= 0 {
			cfg.Concurrency = defaultWorkerConfig().Concurrency
		}
		if len(cfg.Queues) == 0 {
			cfg.Queues = defaultWorkerConfig().Queues
		}
		workerConfig = cfg
	})
	return workerConfig, workerErr
}
