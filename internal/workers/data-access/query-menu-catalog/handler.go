// internal/workers/data-access/query-menu-catalog/handler.go
package querymenucatalog

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"franchise-ops/internal/common/camunda"
	"franchise-ops/internal/common/errors"
	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/common/metrics"
	"franchise-ops/internal/models"
	"franchise-ops/internal/workers/data-access/query-menu-catalog/queries"
)

const TaskType = "query-menu-catalog"

type Handler struct {
	config    *Config
	db        *sql.DB
	logger    logger.Logger
	errorsOut *errors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		db:        db,
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
		h.failJob(ctx, client, job, errors.NewInvalidFilterFormatError(fmt.Sprintf("parse input: %v", err)))
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
		return nil, errors.NewInvalidFilterFormatError("input cannot be nil")
	}

	queryType := models.QueryType(input.QueryType)
	if _, exists := queries.Registry[queryType]; !exists {
		return nil, errors.NewInvalidQueryTypeError(input.QueryType)
	}

	params := queries.Params{
		MenuItemID:    input.MenuItemID,
		SessionID:     input.SessionID,
		Category:      input.Category,
		AvailableOnly: input.AvailableOnly,
	}

	data, rowCount, execTime, err := queries.Execute(ctx, h.db, queryType, params)
	if err != nil {
		switch {
		case stderrors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, errors.NewQueryTimeoutError(input.QueryType)
		case stderrors.Is(err, driver.ErrBadConn), stderrors.Is(err, sql.ErrConnDone):
			return nil, errors.NewDatabaseConnectionFailedError(err)
		case stderrors.Is(err, queries.ErrMissingParam):
			return nil, errors.NewInvalidFilterFormatError(err.Error())
		case stderrors.Is(err, sql.ErrNoRows):
			return nil, errors.NewMenuItemNotFoundError(input.MenuItemID)
		}
		return nil, errors.NewQueryExecutionFailedError(input.QueryType, err)
	}

	h.logger.Debug("query completed", map[string]interface{}{
		"queryType": input.QueryType,
		"rowCount":  rowCount,
		"ms":        execTime,
	})

	return &Output{
		Data:               data,
		RowCount:           rowCount,
		QueryExecutionTime: execTime,
	}, nil
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errorsOut.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
