// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"readiness-workers/internal/common/config"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/observability"
)

// HandlerFunc is the signature every task handler's Handle method has.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// JobWorker is one open job subscription.
type JobWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// Instrument records the OpenTelemetry job count and duration around handler.
func Instrument(taskType string, obs *observability.Observability, handler HandlerFunc) HandlerFunc {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		handler(client, job)

		ctx := context.Background()
		obs.RecordJobProcessed(ctx, taskType, "handled")
		obs.RecordJobDuration(ctx, taskType, time.Since(start), "handled")
	}
}

// StartWorker opens a job worker for taskType, or returns nil when the
// worker is disabled in configuration.
func StartWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler HandlerFunc,
	obs *observability.Observability,
	log logger.Logger,
) *JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(Instrument(taskType, obs, handler))).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})

	return &JobWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

func (w *JobWorker) TaskType() string { return w.taskType }

// Stop closes the subscription and waits for in-flight jobs.
func (w *JobWorker) Stop() {
	w.logger.Info("stopping worker", map[string]interface{}{"taskType": w.taskType})
	w.worker.Close()
	w.worker.AwaitClose()
}
