// internal/workers/dashboard/get-dashboard-data/handler.go
package getdashboarddata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"franchise-ops/internal/common/camunda"
	"franchise-ops/internal/common/errors"
	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/common/metrics"
	"franchise-ops/internal/dashboard"
)

const TaskType = "get-dashboard-data"

type Handler struct {
	config    *Config
	pipeline  *dashboard.CachedPipeline
	logger    logger.Logger
	errorsOut *errors.ErrorHandler
}

func NewHandler(config *Config, pipeline *dashboard.CachedPipeline, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		pipeline:  pipeline,
		logger:    log,
		errorsOut: errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, errors.NewDashboardInputInvalidError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"error": err.Error()})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewDashboardInputInvalidError("input cannot be nil")
	}

	view, hit := h.pipeline.Derive(ctx, input.Actor(), input.Filters())

	h.logger.Debug("dashboard derived", map[string]interface{}{
		"role":       input.Role,
		"dateBucket": input.DateBucket,
		"location":   input.LocationScope,
		"cacheHit":   hit,
	})

	return &Output{
		Dashboard:   view,
		CacheHit:    hit,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errorsOut.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
