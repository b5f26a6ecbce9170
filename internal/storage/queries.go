package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"readiness-workers/internal/models"
)

var (
	ErrMissingParam     = errors.New("missing required parameter")
	ErrUnknownQueryType = errors.New("unknown query type")
)

// QueryFunc returns: data, rowCount, executionTime (ms), error
type QueryFunc func(ctx context.Context, store *AnalysisStore, params map[string]interface{}) (interface{}, int, int64, error)

var Registry = map[models.AnalysisQueryType]QueryFunc{
	models.QueryTypeAnalysisHistory:  AnalysisHistory,
	models.QueryTypeAnalyticsSummary: AnalyticsSummary,
}

func Execute(ctx context.Context, store *AnalysisStore, queryType models.AnalysisQueryType, params map[string]interface{}) (interface{}, int, int64, error) {
	fn, exists := Registry[queryType]
	if !exists {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrUnknownQueryType, queryType)
	}
	return fn(ctx, store, params)
}

// AnalysisHistory expects "userId" and accepts an optional "limit".
func AnalysisHistory(ctx context.Context, store *AnalysisStore, params map[string]interface{}) (interface{}, int, int64, error) {
	userID, _ := params["userId"].(string)
	if userID == "" {
		return nil, 0, 0, fmt.Errorf("%w: userId", ErrMissingParam)
	}

	start := time.Now()
	records, err := store.History(ctx, userID, intParam(params, "limit"))
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return nil, 0, elapsed, err
	}
	return records, len(records), elapsed, nil
}

func AnalyticsSummary(ctx context.Context, store *AnalysisStore, _ map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()
	summary, err := store.Analytics(ctx)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return nil, 0, elapsed, err
	}
	return summary, 1, elapsed, nil
}

// intParam accepts the numeric shapes job variables decode into.
func intParam(params map[string]interface{}, key string) int {
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
