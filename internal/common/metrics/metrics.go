// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	DashboardCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_lookups_total",
			Help: "Dashboard view cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	DashboardExportBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_export_bytes",
			Help:    "Size of rendered dashboard CSV reports",
			Buckets: prometheus.ExponentialBuckets(512, 2, 10),
		},
	)

	MenuAssignmentActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_assignment_actions_total",
			Help: "Menu/session assignment actions by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Notifications delivered per channel and level",
		},
		[]string{"channel", "level"},
	)
)
