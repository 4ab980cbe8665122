// internal/workers/menu/search-menu-items/config.go
package searchmenuitems

import (
	"time"

	"franchise-ops/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	Index   string
}

func LoadConfig(appCfg *config.Config) *Config {
	index := appCfg.Menu.SearchIndex
	if index == "" {
		index = DefaultIndex
	}
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(appCfg, TaskType).Timeout),
		Index:   index,
	}
}
