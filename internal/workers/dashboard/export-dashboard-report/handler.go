// internal/workers/dashboard/export-dashboard-report/handler.go
package exportdashboardreport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	awsclient "franchise-ops/internal/common/aws"
	"franchise-ops/internal/common/camunda"
	"franchise-ops/internal/common/errors"
	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/common/metrics"
	"franchise-ops/internal/common/validation"
	"franchise-ops/internal/dashboard"
)

const TaskType = "export-dashboard-report"

type Handler struct {
	config    *Config
	pipeline  *dashboard.Pipeline
	s3        awsclient.S3API
	logger    logger.Logger
	errorsOut *errors.ErrorHandler
	now       func() time.Time
}

func NewHandler(config *Config, pipeline *dashboard.Pipeline, s3Client awsclient.S3API, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		pipeline:  pipeline,
		s3:        s3Client,
		logger:    log,
		errorsOut: errors.NewErrorHandler(log),
		now:       time.Now,
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
	if result := validation.ValidateDocument(input, GetInputSchema()); !result.Valid {
		return nil, errors.NewDashboardInputInvalidError(strings.Join(result.GetErrorMessages(), "; "))
	}

	view := h.pipeline.Derive(input.Actor(), input.Filters())
	rows := dashboard.Rows(view)

	var buf bytes.Buffer
	if err := dashboard.WriteCSV(&buf, view); err != nil {
		return nil, errors.NewExportFailedError(err)
	}
	metrics.DashboardExportBytes.Observe(float64(buf.Len()))

	now := h.now().UTC()
	output := &Output{
		Rows:      len(rows),
		Bytes:     buf.Len(),
		Generated: now.Format(time.RFC3339),
	}

	if !h.config.Upload || h.s3 == nil {
		output.Report = buf.String()
		return output, nil
	}

	key := path.Join(h.config.Prefix, now.Format("2006/01/02"), fmt.Sprintf("%s-%s.csv", reportName(input), uuid.NewString()))
	_, err := h.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/csv"),
		Metadata: map[string]string{
			"role":       input.Role,
			"datebucket": input.DateBucket,
		},
	})
	if err != nil {
		return nil, errors.NewExportUploadFailedError(h.config.Bucket, err)
	}

	h.logger.Info("dashboard report uploaded", map[string]interface{}{
		"bucket": h.config.Bucket,
		"key":    key,
		"bytes":  buf.Len(),
	})

	output.Bucket = h.config.Bucket
	output.Key = key
	output.Location = fmt.Sprintf("s3://%s/%s", h.config.Bucket, key)
	return output, nil
}

func reportName(input *Input) string {
	bucket := keyPart(input.DateBucket)
	if bucket == "" {
		bucket = "all"
	}
	role := keyPart(input.Role)
	if role == "" {
		role = "anonymous"
	}
	return role + "-" + bucket
}

// keyPart lowercases s and replaces anything outside [a-z0-9_-] with '_', so
// no input can add path segments to the object key.
func keyPart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, strings.ToLower(s))
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errorsOut.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
