// Package storage persists completed readiness analyses in Postgres.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"readiness-workers/internal/models"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
	topListSize         = 10
)

var ErrMissingUserID = errors.New("userId is required")

const (
	insertAnalysisQuery = `
		INSERT INTO user_analyses (
			id, user_id, cgpa, leetcode_problems, codeforces_rating, github_repos,
			project_count, skills_count, work_experience, overall_score,
			predicted_company_type, profile_data, prediction_results
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at`

	selectHistoryQuery = `
		SELECT id, user_id, cgpa, leetcode_problems, codeforces_rating, github_repos,
		       project_count, skills_count, work_experience, overall_score,
		       predicted_company_type, created_at
		FROM user_analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	selectTotalsQuery = `
		SELECT COUNT(*), COALESCE(AVG(overall_score), 0)
		FROM user_analyses`

	selectTopSkillsQuery = `
		SELECT skill, COUNT(*) AS n
		FROM user_analyses, jsonb_array_elements_text(profile_data->'skills') AS skill
		GROUP BY skill
		ORDER BY n DESC, skill ASC
		LIMIT $1`

	selectTopCountriesQuery = `
		SELECT country, COUNT(*) AS n
		FROM user_analyses, jsonb_array_elements_text(profile_data->'preferredCountries') AS country
		GROUP BY country
		ORDER BY n DESC, country ASC
		LIMIT $1`
)

// AnalysisStore reads and writes the user_analyses table.
type AnalysisStore struct {
	db *sql.DB
}

func NewAnalysisStore(db *sql.DB) *AnalysisStore {
	return &AnalysisStore{db: db}
}

// Save inserts one analysis and returns the stored summary row.
func (s *AnalysisStore) Save(ctx context.Context, profile *models.Profile, m *models.PlatformMetrics, result *models.PredictionResult) (*models.AnalysisRecord, error) {
	if profile == nil || result == nil {
		return nil, fmt.Errorf("profile and prediction are required")
	}
	if m == nil {
		m = &models.PlatformMetrics{}
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal prediction: %w", err)
	}

	rec := &models.AnalysisRecord{
		ID:                   uuid.New().String(),
		UserID:               profile.UserID,
		CGPA:                 profile.CGPA,
		LeetcodeProblems:     m.LeetCode.ProblemsSolved,
		CodeforcesRating:     m.Codeforces.Rating,
		GithubRepos:          m.GitHub.Repositories,
		ProjectCount:         profile.ProjectCount,
		SkillsCount:          len(profile.Skills),
		WorkExperience:       profile.WorkExperience,
		OverallScore:         result.OverallScore,
		PredictedCompanyType: result.TopCompanyType(),
	}

	err = s.db.QueryRowContext(ctx, insertAnalysisQuery,
		rec.ID,
		rec.UserID,
		rec.CGPA,
		rec.LeetcodeProblems,
		rec.CodeforcesRating,
		rec.GithubRepos,
		rec.ProjectCount,
		rec.SkillsCount,
		rec.WorkExperience,
		rec.OverallScore,
		nullString(rec.PredictedCompanyType),
		profileJSON,
		resultJSON,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert analysis: %w", err)
	}

	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}

// History returns the newest analyses of a user. A non-positive limit means
// DefaultHistoryLimit.
func (s *AnalysisStore) History(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx, selectHistoryQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := make([]models.AnalysisRecord, 0)
	for rows.Next() {
		var (
			rec         models.AnalysisRecord
			companyType sql.NullString
			createdAt   time.Time
		)
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.CGPA, &rec.LeetcodeProblems, &rec.CodeforcesRating,
			&rec.GithubRepos, &rec.ProjectCount, &rec.SkillsCount, &rec.WorkExperience,
			&rec.OverallScore, &companyType, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		rec.PredictedCompanyType = companyType.String
		rec.CreatedAt = createdAt.UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return records, nil
}

// Analytics aggregates every stored analysis.
func (s *AnalysisStore) Analytics(ctx context.Context) (*models.AnalyticsSummary, error) {
	var (
		total   int
		average float64
	)
	if err := s.db.QueryRowContext(ctx, selectTotalsQuery).Scan(&total, &average); err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}

	skills, err := s.topValues(ctx, selectTopSkillsQuery)
	if err != nil {
		return nil, fmt.Errorf("query top skills: %w", err)
	}
	countries, err := s.topValues(ctx, selectTopCountriesQuery)
	if err != nil {
		return nil, fmt.Errorf("query popular countries: %w", err)
	}

	return &models.AnalyticsSummary{
		TotalAnalyses:    total,
		AverageScore:     roundHalfUp(average),
		TopSkills:        skills,
		PopularCountries: countries,
	}, nil
}

func (s *AnalysisStore) topValues(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, topListSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, topListSize)
	for rows.Next() {
		var (
			value string
			count int
		)
		if err := rows.Scan(&value, &count); err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// roundHalfUp rounds half away from zero, like the engine's scores.
func roundHalfUp(v float64) int {
	return int(math.Round(v))
}
