// internal/workers/readiness/fetch-platform-data/handler.go
package fetchplatformdata

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
	"readiness-workers/internal/models"
	"readiness-workers/internal/platform"
	"readiness-workers/internal/readiness"
)

const (
	TaskType = "fetch-platform-data"
)

type Handler struct {
	config   *Config
	provider platform.DataProvider
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, provider platform.DataProvider, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		provider: provider,
		errors:   errors.NewErrorHandler(scoped),
		logger:   scoped,
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
		return nil, errors.NewProfileInvalidError("input cannot be nil")
	}
	if err := readiness.ValidateProfile(&input.Profile); err != nil {
		return nil, err
	}

	if h.provider == nil {
		return &Output{PlatformData: &models.PlatformMetrics{}}, nil
	}

	data := h.provider.Fetch(ctx, &input.Profile)

	h.logger.Debug("platform data fetched", map[string]interface{}{
		"leetcodeProblems": data.LeetCode.ProblemsSolved,
		"codeforcesRating": data.Codeforces.Rating,
		"githubRepos":      data.GitHub.Repositories,
	})

	return &Output{PlatformData: data}, nil
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
