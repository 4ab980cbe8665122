// internal/workers/menu/assign-menu-session/handler.go
package assignmenusession

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"franchise-ops/internal/common/camunda"
	"franchise-ops/internal/common/errors"
	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/common/metrics"
	"franchise-ops/internal/common/validation"
	"franchise-ops/internal/menu"
)

const TaskType = "assign-menu-session"

type Handler struct {
	config    *Config
	service   *menu.Service
	logger    logger.Logger
	errorsOut *errors.ErrorHandler
}

func NewHandler(config *Config, service *menu.Service, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		service:   service,
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
		h.failJob(ctx, client, job, errors.NewMenuItemValidationFailedError(fmt.Sprintf("parse input: %v", err)))
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
		return nil, errors.NewMenuItemValidationFailedError("input cannot be nil")
	}
	if result := validation.ValidateDocument(input, GetInputSchema()); !result.Valid {
		return nil, errors.NewMenuItemValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}

	result, err := h.service.Assign(ctx, input.Actor(), input.MenuItemID, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &Output{
		Success:    result.Success,
		Changed:    result.Changed,
		MenuItemID: result.MenuItemID,
		SessionID:  result.SessionID,
		State:      string(result.State),
		Sessions:   result.Sessions,
	}, nil
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errorsOut.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
