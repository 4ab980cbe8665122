// internal/workers/data-access/query-menu-catalog/config.go
package querymenucatalog

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
