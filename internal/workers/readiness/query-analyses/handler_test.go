package queryanalyses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/models"
	"readiness-workers/internal/storage"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

func createTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHandler(createTestConfig(), storage.NewAnalysisStore(db), logger.NewTestLogger(t)), mock
}

var historyColumns = []string{
	"id", "user_id", "cgpa", "leetcode_problems", "codeforces_rating", "github_repos",
	"project_count", "skills_count", "work_experience", "overall_score",
	"predicted_company_type", "created_at",
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		mockQuery      func(mock sqlmock.Sqlmock)
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:  "analysis history",
			input: &Input{QueryType: string(QueryTypeAnalysisHistory), UserID: "user-9", Limit: 5},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM user_analyses WHERE user_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
					WithArgs("user-9", 5).
					WillReturnRows(sqlmock.NewRows(historyColumns).
						AddRow("a-2", "user-9", 8.5, 200, 1400, 12, 3, 6, 0.5, 58, "Startups", time.Now()).
						AddRow("a-1", "user-9", 8.5, 150, 1300, 10, 3, 6, 0.5, 51, "Startups", time.Now().Add(-time.Hour)))
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 2, output.RowCount)
				records := output.Data.([]models.AnalysisRecord)
				assert.Equal(t, "a-2", records[0].ID)
				assert.Equal(t, 58, records[0].OverallScore)
			},
		},
		{
			name:  "analytics summary",
			input: &Input{QueryType: string(QueryTypeAnalyticsSummary)},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`COUNT`).
					WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(3, 47.4))
				mock.ExpectQuery(`profile_data->'skills'`).
					WillReturnRows(sqlmock.NewRows([]string{"skill", "n"}).AddRow("Go", 3))
				mock.ExpectQuery(`profile_data->'preferredCountries'`).
					WillReturnRows(sqlmock.NewRows([]string{"country", "n"}).AddRow("Canada", 2))
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)
				summary := output.Data.(*models.AnalyticsSummary)
				assert.Equal(t, 3, summary.TotalAnalyses)
				assert.Equal(t, 47, summary.AverageScore)
				assert.Equal(t, []string{"Go"}, summary.TopSkills)
				assert.Equal(t, []string{"Canada"}, summary.PopularCountries)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mock := createTestHandler(t)
			tt.mockQuery(mock)

			output, err := handler.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, output.QueryExecutionTime, int64(0))
			tt.validateOutput(t, output)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     *Input
		mockQuery func(mock sqlmock.Sqlmock)
		wantCode  apperrors.ErrorCode
	}{
		{
			name:     "unknown query type",
			input:    &Input{QueryType: "top_users"},
			wantCode: apperrors.ErrCodeInvalidQueryType,
		},
		{
			name:     "history without user",
			input:    &Input{QueryType: string(QueryTypeAnalysisHistory)},
			wantCode: apperrors.ErrCodeProfileInvalid,
		},
		{
			name:  "database failure",
			input: &Input{QueryType: string(QueryTypeAnalyticsSummary)},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`COUNT`).WillReturnError(errors.New("relation does not exist"))
			},
			wantCode: apperrors.ErrCodeAnalysisQueryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mock := createTestHandler(t)
			if tt.mockQuery != nil {
				tt.mockQuery(mock)
			}

			_, err := handler.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.Normalize(err).Code)
		})
	}
}

func TestHandler_Execute_Timeout(t *testing.T) {
	handler, mock := createTestHandler(t)
	mock.ExpectQuery(`COUNT`).
		WillDelayFor(200 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(1, 50.0))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := handler.Execute(ctx, &Input{QueryType: string(QueryTypeAnalyticsSummary)})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeQueryTimeout, apperrors.Normalize(err).Code)
}

func TestParseInput(t *testing.T) {
	input, err := parseInput(`{"queryType": "analysis_history", "userId": "u-1", "limit": 3}`)
	require.NoError(t, err)
	assert.Equal(t, 3, input.Limit)

	_, err = parseInput(`{"userId": "u-1"}`)
	require.Error(t, err)

	_, err = parseInput(`{"queryType": "analysis_history", "limit": -2}`)
	require.Error(t, err)
}
