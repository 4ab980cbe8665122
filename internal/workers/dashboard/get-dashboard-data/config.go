// internal/workers/dashboard/get-dashboard-data/config.go
package getdashboarddata

import (
	"time"

	"franchise-ops/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	CacheEnabled bool
	CacheTTL     time.Duration
	KeyPrefix    string
}

func LoadConfig(appCfg *config.Config) *Config {
	wcfg := config.GetWorkerConfig(appCfg, TaskType)
	return &Config{
		Timeout:      config.GetDuration(wcfg.Timeout),
		CacheEnabled: appCfg.Dashboard.CacheEnabled,
		CacheTTL:     time.Duration(appCfg.Dashboard.CacheTTL) * time.Second,
		KeyPrefix:    appCfg.Dashboard.KeyPrefix,
	}
}
