package saveanalysis

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

func createValidInput() *Input {
	return &Input{
		Profile: models.Profile{
			UserID:       "user-7",
			CGPA:         8.0,
			Skills:       []string{"Go", "SQL"},
			ProjectCount: 2,
		},
		PlatformData: &models.PlatformMetrics{
			LeetCode: models.LeetCodeStats{ProblemsSolved: 150},
		},
		Prediction: &models.PredictionResult{
			OverallScore:   52,
			CompanyMatches: []models.CompanyMatch{{Type: "Startups", MatchPercentage: 60}},
		},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	handler, mock := createTestHandler(t)
	created := time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO user_analyses`).
		WithArgs(
			sqlmock.AnyArg(), "user-7", 8.0, 150, 0, 0, 2, 2, 0.0, 52,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	output, err := handler.Execute(context.Background(), createValidInput())
	require.NoError(t, err)

	assert.NotEmpty(t, output.AnalysisID)
	assert.Equal(t, "2026-05-04T12:30:00Z", output.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name      string
		handler   func(t *testing.T) *Handler
		input     func() *Input
		wantCode  apperrors.ErrorCode
		retryable bool
	}{
		{
			name: "database failure is retryable",
			handler: func(t *testing.T) *Handler {
				h, mock := createTestHandler(t)
				mock.ExpectQuery(`INSERT INTO user_analyses`).WillReturnError(errors.New("connection reset by peer"))
				return h
			},
			input:     createValidInput,
			wantCode:  apperrors.ErrCodeAnalysisSaveFailed,
			retryable: true,
		},
		{
			name: "missing prediction",
			handler: func(t *testing.T) *Handler {
				h, _ := createTestHandler(t)
				return h
			},
			input: func() *Input {
				in := createValidInput()
				in.Prediction = nil
				return in
			},
			wantCode: apperrors.ErrCodeProfileInvalid,
		},
		{
			name: "no store configured",
			handler: func(t *testing.T) *Handler {
				return NewHandler(createTestConfig(), nil, logger.NewNoOpLogger())
			},
			input:     createValidInput,
			wantCode:  apperrors.ErrCodeDatabaseConnectionFailed,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.handler(t).Execute(context.Background(), tt.input())
			require.Error(t, err)

			stdErr := apperrors.Normalize(err)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
		})
	}
}

func TestParseInput(t *testing.T) {
	input, err := parseInput(`{"cgpa": 8, "userId": "u-1", "prediction": {"overallScore": 64, "focusAreas": ["System Design"]}}`)
	require.NoError(t, err)
	assert.Equal(t, "u-1", input.UserID)
	assert.Equal(t, 64, input.Prediction.OverallScore)
	assert.Nil(t, input.PlatformData)

	_, err = parseInput(`{"cgpa": 8}`)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeProfileInvalid))

	_, err = parseInput(`{"cgpa": 8, "prediction": {"overallScore": 140}}`)
	require.Error(t, err)
}
