// internal/workers/dashboard/export-dashboard-report/config.go
package exportdashboardreport

import (
	"time"

	"franchise-ops/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	Upload  bool
	Bucket  string
	Prefix  string
}

func LoadConfig(appCfg *config.Config) *Config {
	wcfg := config.GetWorkerConfig(appCfg, TaskType)
	s3cfg := appCfg.Integrations.AWS.S3
	return &Config{
		Timeout: config.GetDuration(wcfg.Timeout),
		Upload:  s3cfg.Enabled,
		Bucket:  s3cfg.Bucket,
		Prefix:  s3cfg.Prefix,
	}
}
