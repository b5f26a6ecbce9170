// internal/workers/readiness/query-analyses/handler.go
package queryanalyses

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
	"readiness-workers/internal/models"
	"readiness-workers/internal/storage"
)

const (
	TaskType = "query-analyses"
)

type Handler struct {
	config *Config
	store  *storage.AnalysisStore
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, store *storage.AnalysisStore, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		store:  store,
		errors: errors.NewErrorHandler(scoped),
		logger: scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(job.Variables)
	if err == nil {
		var output *Output
		if output, err = h.execute(ctx, input); err == nil {
			h.completeJob(client, job, output)
			timer.Done("")
			return
		}
	}

	timer.Done(string(errors.Normalize(err).Code))
	h.errors.HandleJobError(ctx, client, job, err)
}

func parseInput(raw string) (*Input, error) {
	if result := inputValidator.ValidateJSON(raw); !result.Valid {
		return nil, errors.NewProfileInvalidError(result.Summary())
	}

	var input Input
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return nil, errors.NewProfileInvalidError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	queryType := models.AnalysisQueryType(input.QueryType)
	if _, exists := storage.Registry[queryType]; !exists {
		return nil, errors.NewInvalidQueryTypeError(input.QueryType)
	}
	if h.store == nil {
		return nil, errors.NewDatabaseConnectionFailedError(fmt.Errorf("analysis store is not configured"))
	}

	params := make(map[string]interface{})
	if input.UserID != "" {
		params["userId"] = input.UserID
	}
	if input.Limit > 0 {
		params["limit"] = input.Limit
	}

	data, rowCount, execTime, err := storage.Execute(ctx, h.store, queryType, params)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewQueryTimeoutError(input.QueryType)
		}
		if stderrors.Is(err, storage.ErrMissingParam) {
			return nil, errors.NewProfileInvalidError(err.Error()).WithMetadata("field", "userId")
		}
		return nil, errors.NewAnalysisQueryFailedError(input.QueryType, err)
	}

	return &Output{
		Data:               data,
		RowCount:           rowCount,
		QueryExecutionTime: execTime,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
