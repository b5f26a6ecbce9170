package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func newMockStore(t *testing.T) (*AnalysisStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAnalysisStore(db), mock
}

func sampleProfile() *models.Profile {
	return &models.Profile{
		UserID:             "user-42",
		CGPA:               9.2,
		Skills:             []string{"Go", "SQL", "Docker"},
		ProjectCount:       4,
		PreferredCountries: []string{"Germany", "Canada"},
		WorkExperience:     1.5,
		EnglishProficiency: models.ProficiencyAdvanced,
	}
}

func sampleMetrics() *models.PlatformMetrics {
	return &models.PlatformMetrics{
		LeetCode:   models.LeetCodeStats{ProblemsSolved: 320},
		Codeforces: models.CodeforcesStats{Rating: 1540},
		GitHub:     models.GitHubStats{Repositories: 18},
	}
}

func sampleResult() *models.PredictionResult {
	return &models.PredictionResult{
		OverallScore: 71,
		CompanyMatches: []models.CompanyMatch{
			{Type: "Product-Based Companies", MatchPercentage: 71},
		},
	}
}

var historyColumns = []string{
	"id", "user_id", "cgpa", "leetcode_problems", "codeforces_rating", "github_repos",
	"project_count", "skills_count", "work_experience", "overall_score",
	"predicted_company_type", "created_at",
}

// ==========================
// Save
// ==========================

func TestAnalysisStore_Save(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO user_analyses`).
		WithArgs(
			sqlmock.AnyArg(), "user-42", 9.2, 320, 1540, 18, 4, 3, 1.5, 71,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	rec, err := store.Save(context.Background(), sampleProfile(), sampleMetrics(), sampleResult())
	require.NoError(t, err)

	assert.Len(t, rec.ID, 36)
	assert.Equal(t, "user-42", rec.UserID)
	assert.Equal(t, 320, rec.LeetcodeProblems)
	assert.Equal(t, 3, rec.SkillsCount)
	assert.Equal(t, "Product-Based Companies", rec.PredictedCompanyType)
	assert.Equal(t, created, rec.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisStore_Save_NilMetricsStoreZeros(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO user_analyses`).
		WithArgs(
			sqlmock.AnyArg(), "user-42", 9.2, 0, 0, 0, 4, 3, 1.5, 71,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	_, err := store.Save(context.Background(), sampleProfile(), nil, sampleResult())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisStore_Save_Errors(t *testing.T) {
	store, mock := newMockStore(t)

	_, err := store.Save(context.Background(), nil, nil, sampleResult())
	assert.Error(t, err)

	mock.ExpectQuery(`INSERT INTO user_analyses`).WillReturnError(errors.New("connection reset"))
	_, err = store.Save(context.Background(), sampleProfile(), sampleMetrics(), sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert analysis")
}

// ==========================
// History
// ==========================

func TestAnalysisStore_History(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "default limit", limit: 0, wantLimit: DefaultHistoryLimit},
		{name: "explicit limit", limit: 3, wantLimit: 3},
		{name: "capped limit", limit: 5000, wantLimit: MaxHistoryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			newer := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
			older := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

			rows := sqlmock.NewRows(historyColumns).
				AddRow("a-2", "user-42", 9.2, 320, 1540, 18, 4, 3, 1.5, 74, "Product-Based Companies", newer).
				AddRow("a-1", "user-42", 9.2, 300, 1500, 17, 4, 3, 1.5, 70, nil, older)
			mock.ExpectQuery(`FROM user_analyses WHERE user_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
				WithArgs("user-42", tt.wantLimit).
				WillReturnRows(rows)

			got, err := store.History(context.Background(), "user-42", tt.limit)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "a-2", got[0].ID)
			assert.Equal(t, "Product-Based Companies", got[0].PredictedCompanyType)
			assert.Empty(t, got[1].PredictedCompanyType)
			assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAnalysisStore_History_EmptyIsNotNil(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(`FROM user_analyses`).
		WithArgs("nobody", DefaultHistoryLimit).
		WillReturnRows(sqlmock.NewRows(historyColumns))

	got, err := store.History(context.Background(), "nobody", 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAnalysisStore_History_RequiresUser(t *testing.T) {
	store, _ := newMockStore(t)
	_, err := store.History(context.Background(), "", 5)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

// ==========================
// Analytics
// ==========================

func TestAnalysisStore_Analytics(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(AVG\(overall_score\), 0\) FROM user_analyses`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(12, 63.5))
	mock.ExpectQuery(`jsonb_array_elements_text\(profile_data->'skills'\)`).
		WithArgs(topListSize).
		WillReturnRows(sqlmock.NewRows([]string{"skill", "n"}).
			AddRow("Go", 7).
			AddRow("Python", 7).
			AddRow("Docker", 2))
	mock.ExpectQuery(`jsonb_array_elements_text\(profile_data->'preferredCountries'\)`).
		WithArgs(topListSize).
		WillReturnRows(sqlmock.NewRows([]string{"country", "n"}).AddRow("Germany", 9))

	summary, err := store.Analytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, summary.TotalAnalyses)
	assert.Equal(t, 64, summary.AverageScore)
	assert.Equal(t, []string{"Go", "Python", "Docker"}, summary.TopSkills)
	assert.Equal(t, []string{"Germany"}, summary.PopularCountries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{63.5, 64},
		{63.49, 63},
		{0, 0},
		{99.999999, 100},
		{-2.5, -3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundHalfUp(tt.in), "roundHalfUp(%v)", tt.in)
	}
}

func TestAnalysisStore_Analytics_EmptyTable(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(0, 0.0))
	mock.ExpectQuery(`profile_data->'skills'`).WillReturnRows(sqlmock.NewRows([]string{"skill", "n"}))
	mock.ExpectQuery(`profile_data->'preferredCountries'`).WillReturnRows(sqlmock.NewRows([]string{"country", "n"}))

	summary, err := store.Analytics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalAnalyses)
	assert.Zero(t, summary.AverageScore)
	assert.Empty(t, summary.TopSkills)
	assert.NotNil(t, summary.PopularCountries)
}

// ==========================
// Query Registry
// ==========================

func TestExecute_History(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(`FROM user_analyses`).
		WithArgs("user-42", 2).
		WillReturnRows(sqlmock.NewRows(historyColumns).
			AddRow("a-1", "user-42", 9.2, 300, 1500, 17, 4, 3, 1.5, 70, "Service-Based Companies", time.Now()))

	data, count, elapsed, err := Execute(context.Background(), store, models.QueryTypeAnalysisHistory,
		map[string]interface{}{"userId": "user-42", "limit": float64(2)})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.GreaterOrEqual(t, elapsed, int64(0))
	assert.IsType(t, []models.AnalysisRecord{}, data)
}

func TestExecute_Errors(t *testing.T) {
	store, _ := newMockStore(t)

	_, _, _, err := Execute(context.Background(), store, "top_users", nil)
	assert.ErrorIs(t, err, ErrUnknownQueryType)

	_, _, _, err = Execute(context.Background(), store, models.QueryTypeAnalysisHistory, map[string]interface{}{})
	assert.ErrorIs(t, err, ErrMissingParam)
}
