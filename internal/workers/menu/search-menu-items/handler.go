// internal/workers/menu/search-menu-items/handler.go
package searchmenuitems

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"

	"franchise-ops/internal/common/camunda"
	"franchise-ops/internal/common/errors"
	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/common/metrics"
	"franchise-ops/internal/common/validation"
	"franchise-ops/internal/menu"
	"franchise-ops/internal/models"
)

const TaskType = "search-menu-items"

type Handler struct {
	config    *Config
	client    *elasticsearch.Client
	logger    logger.Logger
	errorsOut *errors.ErrorHandler
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		client:    client,
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

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		MaxScore *float64 `json:"max_score"`
		Hits     []struct {
			Source menu.SearchDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidFilterFormatError("input cannot be nil")
	}
	if result := validation.ValidateDocument(input, GetInputSchema()); !result.Valid {
		return nil, errors.NewInvalidFilterFormatError(strings.Join(result.GetErrorMessages(), "; "))
	}

	req, err := buildRequest(h.config.Index, input)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(h.config.Index, err)
	}

	res, err := req.Do(ctx, h.client)
	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.NewSearchTimeoutError(h.config.Index)
		}
		return nil, errors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, errors.NewIndexNotFoundError(h.config.Index)
	}
	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(h.config.Index, fmt.Errorf("%s", res.String()))
	}

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, errors.NewSearchQueryFailedError(h.config.Index, fmt.Errorf("decode response: %w", err))
	}

	items := make([]models.MenuItem, 0, len(body.Hits.Hits))
	for _, hit := range body.Hits.Hits {
		item := hit.Source.MenuItem
		if item.Sessions == nil {
			item.Sessions = []string{}
		}
		items = append(items, item)
	}

	output := &Output{
		Items:     items,
		TotalHits: body.Hits.Total.Value,
		Took:      body.Took,
	}
	if body.Hits.MaxScore != nil {
		output.MaxScore = *body.Hits.MaxScore
	}

	h.logger.Debug("menu search completed", map[string]interface{}{
		"index":     h.config.Index,
		"totalHits": output.TotalHits,
		"returned":  len(items),
	})
	return output, nil
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errorsOut.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"role":       {Type: "string"},
			"tenantId":   {Type: "string"},
			"keywords":   {Type: "string", MaxLength: validation.Int(200)},
			"category":   {Type: "string"},
			"sessionId":  {Type: "string"},
			"vegetarian": {Type: "boolean"},
			"glutenFree": {Type: "boolean"},
			"dairyFree":  {Type: "boolean"},
			"popular":    {Type: "boolean"},
			"sortBy":     {Type: "string", Enum: []string{"relevance", "name", "price", "price_desc"}},
			"pagination": {
				Type: "object",
				Properties: map[string]validation.Property{
					"from": {Type: "integer", Minimum: validation.Float(0)},
					"size": {Type: "integer"},
				},
			},
		},
		AdditionalProperties: true,
	}
}
