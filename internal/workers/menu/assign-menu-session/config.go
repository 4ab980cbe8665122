// internal/workers/menu/assign-menu-session/config.go
package assignmenusession

import (
	"time"

	"franchise-ops/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(appCfg, TaskType).Timeout),
	}
}
