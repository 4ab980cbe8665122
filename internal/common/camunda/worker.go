// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"franchise-ops/internal/common/config"
	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/common/observability"
)

// JobWorker is an open job subscription for one task type.
type JobWorker struct {
	taskType string
	worker   worker.JobWorker
	logger   logger.Logger
}

// StartWorker subscribes handler to taskType. It returns nil when the worker
// is disabled in configuration.
func StartWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler worker.JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) *JobWorker {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})

	if !wcfg.Enabled {
		log.Info("worker disabled", nil)
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(instrument(taskType, handler, obs)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})

	return &JobWorker{taskType: taskType, worker: jobWorker, logger: log}
}

func instrument(taskType string, handler worker.JobHandler, obs *observability.Observability) worker.JobHandler {
	if obs == nil {
		return handler
	}
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		handler(client, job)
		obs.RecordJobProcessed(context.Background(), taskType, "handled")
		obs.RecordJobDuration(context.Background(), taskType, time.Since(start), "handled")
	}
}

// Stop closes the subscription and waits for in-flight jobs.
func (w *JobWorker) Stop() {
	if w == nil {
		return
	}
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}

func (w *JobWorker) TaskType() string {
	return w.taskType
}

// CompleteJob completes job with output marshaled as process variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete job command: %w", err)
	}
	return nil
}
