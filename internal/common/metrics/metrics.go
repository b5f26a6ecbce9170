package metrics

import (
	"time"

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

	PlatformFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_fetch_total",
			Help: "Platform lookups by outcome (ok, error, timeout, cached)",
		},
		[]string{"platform", "outcome"},
	)

	PlatformCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_cache_lookups_total",
			Help: "Platform cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	ReadinessOverallScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "readiness_overall_score",
			Help:    "Distribution of overall readiness scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	CatalogFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fallback_total",
			Help: "Catalog sections served from the builtin document",
		},
		[]string{"section"},
	)
)

// JobTimer tracks one job from activation to completion.
type JobTimer struct {
	taskType string
	start    time.Time
}

// StartJob increments the active gauge and returns a timer for the job.
func StartJob(taskType string) *JobTimer {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{taskType: taskType, start: time.Now()}
}

// Done records the outcome. An empty errorCode counts as completed.
func (t *JobTimer) Done(errorCode string) {
	WorkerJobsActive.WithLabelValues(t.taskType).Dec()
	WorkerJobDuration.WithLabelValues(t.taskType).Observe(time.Since(t.start).Seconds())
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(t.taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(t.taskType, errorCode).Inc()
}
