// cmd/worker-manager/workers.go
package main

import (
	"context"
	"database/sql"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	awsclient "franchise-ops/internal/common/aws"
	"franchise-ops/internal/common/camunda"
	"franchise-ops/internal/common/config"
	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/common/observability"
	"franchise-ops/internal/dashboard"
	"franchise-ops/internal/menu"
	"franchise-ops/internal/notify"

	// Dashboard Workers (2)
	edr "franchise-ops/internal/workers/dashboard/export-dashboard-report"
	gdd "franchise-ops/internal/workers/dashboard/get-dashboard-data"

	// Menu Workers (6)
	ams "franchise-ops/internal/workers/menu/assign-menu-session"
	dmi "franchise-ops/internal/workers/menu/delete-menu-item"
	rms "franchise-ops/internal/workers/menu/remove-menu-session"
	smi "franchise-ops/internal/workers/menu/save-menu-item"
	sms "franchise-ops/internal/workers/menu/search-menu-items"
	sma "franchise-ops/internal/workers/menu/set-menu-session-availability"

	// Data Access Workers (1)
	qmc "franchise-ops/internal/workers/data-access/query-menu-catalog"
)

type workerDependencies struct {
	cfg      *config.Config
	db       *sql.DB
	es       *elasticsearch.Client
	redis    redis.Cmdable
	s3       awsclient.S3API
	menu     *menu.Service
	pipeline *dashboard.Pipeline
	log      logger.Logger
}

type awsClients struct {
	s3  awsclient.S3API
	ses awsclient.SESAPI
	sns awsclient.SNSAPI
}

// newAWSClients builds only the clients whose integration is enabled. With
// every integration off no AWS configuration is resolved.
func newAWSClients(ctx context.Context, cfg *config.Config) (awsClients, error) {
	integrations := cfg.Integrations.AWS
	if !integrations.S3.Enabled && !integrations.SES.Enabled && !integrations.SNS.Enabled {
		return awsClients{}, nil
	}

	awsCfg, err := awsclient.LoadConfig(ctx, integrations.Region)
	if err != nil {
		return awsClients{}, err
	}

	var clients awsClients
	if integrations.S3.Enabled {
		clients.s3 = awsclient.NewS3Client(awsCfg)
	}
	if integrations.SES.Enabled {
		clients.ses = awsclient.NewSESClient(awsCfg)
	}
	if integrations.SNS.Enabled {
		clients.sns = awsclient.NewSNSClient(awsCfg)
	}
	return clients, nil
}

func newNotifier(cfg *config.Config, clients awsClients, log logger.Logger) notify.Notifier {
	channels := []notify.Notifier{notify.NewLogNotifier(log)}
	if clients.sns != nil {
		channels = append(channels, notify.NewSNSNotifier(clients.sns, cfg.Integrations.AWS.SNS.TopicARN))
	}
	if clients.ses != nil {
		ses := cfg.Integrations.AWS.SES
		channels = append(channels, notify.NewSESNotifier(clients.ses, ses.FromEmail, ses.To))
	}
	return notify.NewFanout(channels...)
}

func startWorkers(client zbc.Client, deps workerDependencies, obs *observability.Observability) []*camunda.JobWorker {
	cfg := deps.cfg
	var started []*camunda.JobWorker
	start := func(w *camunda.JobWorker) {
		if w != nil {
			started = append(started, w)
		}
	}

	// --- 1. Dashboard Workers (2) ---
	gddCfg := gdd.LoadConfig(cfg)
	var cacheClient redis.Cmdable
	if gddCfg.CacheEnabled {
		cacheClient = deps.redis
	}
	cached := dashboard.NewCachedPipeline(deps.pipeline, cacheClient, gddCfg.KeyPrefix, gddCfg.CacheTTL, deps.log)
	start(camunda.StartWorker(client, gdd.TaskType, config.GetWorkerConfig(cfg, gdd.TaskType),
		gdd.NewHandler(gddCfg, cached, deps.log).Handle, obs, deps.log))

	start(camunda.StartWorker(client, edr.TaskType, config.GetWorkerConfig(cfg, edr.TaskType),
		edr.NewHandler(edr.LoadConfig(cfg), deps.pipeline, deps.s3, deps.log).Handle, obs, deps.log))

	// --- 2. Menu Workers (6) ---
	start(camunda.StartWorker(client, ams.TaskType, config.GetWorkerConfig(cfg, ams.TaskType),
		ams.NewHandler(ams.LoadConfig(cfg), deps.menu, deps.log).Handle, obs, deps.log))

	start(camunda.StartWorker(client, rms.TaskType, config.GetWorkerConfig(cfg, rms.TaskType),
		rms.NewHandler(rms.LoadConfig(cfg), deps.menu, deps.log).Handle, obs, deps.log))

	start(camunda.StartWorker(client, sma.TaskType, config.GetWorkerConfig(cfg, sma.TaskType),
		sma.NewHandler(sma.LoadConfig(cfg), deps.menu, deps.log).Handle, obs, deps.log))

	start(camunda.StartWorker(client, smi.TaskType, config.GetWorkerConfig(cfg, smi.TaskType),
		smi.NewHandler(smi.LoadConfig(cfg), deps.menu, deps.log).Handle, obs, deps.log))

	start(camunda.StartWorker(client, dmi.TaskType, config.GetWorkerConfig(cfg, dmi.TaskType),
		dmi.NewHandler(dmi.LoadConfig(cfg), deps.menu, deps.log).Handle, obs, deps.log))

	start(camunda.StartWorker(client, sms.TaskType, config.GetWorkerConfig(cfg, sms.TaskType),
		sms.NewHandler(sms.LoadConfig(cfg), deps.es, deps.log).Handle, obs, deps.log))

	// --- 3. Data Access Workers (1) ---
	start(camunda.StartWorker(client, qmc.TaskType, config.GetWorkerConfig(cfg, qmc.TaskType),
		qmc.NewHandler(qmc.LoadConfig(cfg), deps.db, deps.log).Handle, obs, deps.log))

	return started
}
