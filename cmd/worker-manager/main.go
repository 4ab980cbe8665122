// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"franchise-ops/internal/common/camunda"
	"franchise-ops/internal/common/config"
	"franchise-ops/internal/common/database"
	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/common/observability"
	"franchise-ops/internal/dashboard"
	"franchise-ops/internal/menu"
	"franchise-ops/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	brokers, err := zeebe.BrokerCount(ctx)
	if err != nil {
		zapLog.Fatal("zeebe topology failed", zap.Error(err))
	}
	log.Info("Zeebe client connected successfully", map[string]interface{}{"brokers": brokers})

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	log.Info("PostgreSQL connected successfully", nil)

	// --- Elasticsearch ---
	var es *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return es.Ping()
	}, 15, 2*time.Second, log, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	log.Info("Elasticsearch connected successfully", nil)

	// --- Redis ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	log.Info("Redis connected successfully", nil)

	// --- Notifications and report storage ---
	aws, err := newAWSClients(ctx, cfg)
	if err != nil {
		zapLog.Fatal("aws client setup failed", zap.Error(err))
	}
	notifier := newNotifier(cfg, aws, log)

	// --- Menu catalog ---
	repo := menu.NewPostgresRepository(pg.DB)
	if err := repo.Migrate(ctx); err != nil {
		zapLog.Fatal("menu schema migration failed", zap.Error(err))
	}
	if err := es.EnsureIndex(ctx, cfg.Menu.SearchIndex, menu.SearchMapping); err != nil {
		zapLog.Fatal("menu search index setup failed", zap.Error(err))
	}
	searchIndex := menu.NewESIndex(es.Client, cfg.Menu.SearchIndex)

	menuService := menu.NewService(menu.ServiceDependencies{
		Repository: repo,
		Notifier:   notifier,
		Indexer:    searchIndex,
		Logger:     log,
	})
	if err := menuService.Load(ctx); err != nil {
		zapLog.Fatal("menu catalog load failed", zap.Error(err))
	}
	if n, err := searchIndex.Sync(ctx, menuService.Catalog()); err != nil {
		log.Warn("menu search index sync failed", map[string]interface{}{"error": err.Error()})
	} else {
		log.Info("menu search index synced", map[string]interface{}{"documents": n})
	}

	// --- Dashboard ---
	pipeline := dashboard.NewSeedPipeline()

	deps := workerDependencies{
		cfg:      cfg,
		db:       pg.DB,
		es:       es.Client,
		redis:    rdb.Client,
		s3:       aws.s3,
		menu:     menuService,
		pipeline: pipeline,
		log:      log,
	}
	workers := startWorkers(zeebe.GetClient(), deps, obs)
	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	checkRegistry(cfg, workers, log)

	// --- Health & Metrics Server ---
	server := newHealthServer(cfg.App.HTTPPort, readinessChecks{
		"zeebe":    zeebe.HealthCheck,
		"postgres": pg.Ping,
		"redis":    rdb.Ping,
		"elasticsearch": func(ctx context.Context) error {
			return es.Info(ctx)
		},
	}, log)
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"port": cfg.App.HTTPPort})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping workers...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping health server", map[string]interface{}{"error": err.Error()})
	}
	if err := zeebe.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Worker manager stopped gracefully", nil)
}

// checkRegistry warns about running workers the activity registry does not
// describe. A missing registry file only produces a warning.
func checkRegistry(cfg *config.Config, workers []*camunda.JobWorker, log logger.Logger) {
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		log.Warn("activity registry unavailable", map[string]interface{}{
			"path":  cfg.Registry.Path,
			"error": err.Error(),
		})
		return
	}

	taskTypes := make([]string, 0, len(workers))
	for _, w := range workers {
		taskTypes = append(taskTypes, w.TaskType())
	}
	for _, taskType := range reg.Missing(taskTypes) {
		log.Warn("worker not described in activity registry", map[string]interface{}{"taskType": taskType})
	}
}
