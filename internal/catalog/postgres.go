package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"readiness-workers/internal/models"
	"readiness-workers/pkg/registry"
)

const (
	selectCoursesQuery = `
		SELECT id, title, provider, duration, difficulty, rating, price,
		       description, skills, url, category, is_fallback
		FROM course_recommendations
		ORDER BY position ASC`

	selectOpportunitiesQuery = `
		SELECT country, flag, visa_type, average_salary, top_companies,
		       requirements, advantages, challenges, time_to_process,
		       popular_cities, work_culture, adjustment
		FROM international_opportunities
		ORDER BY position ASC`

	insertCourseQuery = `
		INSERT INTO course_recommendations
			(id, title, provider, duration, difficulty, rating, price,
			 description, skills, url, category, is_fallback, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, provider = EXCLUDED.provider,
			duration = EXCLUDED.duration, difficulty = EXCLUDED.difficulty,
			rating = EXCLUDED.rating, price = EXCLUDED.price,
			description = EXCLUDED.description, skills = EXCLUDED.skills,
			url = EXCLUDED.url, category = EXCLUDED.category,
			is_fallback = EXCLUDED.is_fallback, position = EXCLUDED.position`

	insertOpportunityQuery = `
		INSERT INTO international_opportunities
			(country, flag, visa_type, average_salary, top_companies,
			 requirements, advantages, challenges, time_to_process,
			 popular_cities, work_culture, adjustment, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (country) DO UPDATE SET
			flag = EXCLUDED.flag, visa_type = EXCLUDED.visa_type,
			average_salary = EXCLUDED.average_salary,
			top_companies = EXCLUDED.top_companies,
			requirements = EXCLUDED.requirements,
			advantages = EXCLUDED.advantages, challenges = EXCLUDED.challenges,
			time_to_process = EXCLUDED.time_to_process,
			popular_cities = EXCLUDED.popular_cities,
			work_culture = EXCLUDED.work_culture,
			adjustment = EXCLUDED.adjustment, position = EXCLUDED.position`
)

// PostgresSource reads the catalog from the course_recommendations and
// international_opportunities tables.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Load(ctx context.Context) (*registry.Document, error) {
	doc := &registry.Document{Version: "postgres"}

	courses, fallback, err := s.loadCourses(ctx)
	if err != nil {
		return nil, err
	}
	doc.Courses = courses
	doc.FallbackCourses = fallback

	opportunities, err := s.loadOpportunities(ctx)
	if err != nil {
		return nil, err
	}
	doc.Opportunities = opportunities

	return doc, nil
}

func (s *PostgresSource) loadCourses(ctx context.Context) ([]models.Course, []string, error) {
	rows, err := s.db.QueryContext(ctx, selectCoursesQuery)
	if err != nil {
		return nil, nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var (
		courses  []models.Course
		fallback []string
	)
	for rows.Next() {
		var (
			c          models.Course
			difficulty string
			isFallback bool
		)
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Provider, &c.Duration, &difficulty, &c.Rating, &c.Price,
			&c.Description, pq.Array(&c.Skills), &c.URL, &c.Category, &isFallback,
		); err != nil {
			return nil, nil, fmt.Errorf("scan course: %w", err)
		}
		c.Difficulty = models.Difficulty(difficulty)
		courses = append(courses, c)
		if isFallback {
			fallback = append(fallback, c.Title)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate courses: %w", err)
	}
	return courses, fallback, nil
}

func (s *PostgresSource) loadOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	rows, err := s.db.QueryContext(ctx, selectOpportunitiesQuery)
	if err != nil {
		return nil, fmt.Errorf("query opportunities: %w", err)
	}
	defer rows.Close()

	var out []models.Opportunity
	for rows.Next() {
		var (
			o          models.Opportunity
			adjustment sql.NullString
		)
		if err := rows.Scan(
			&o.Country, &o.Flag, &o.VisaType, &o.AverageSalary, pq.Array(&o.TopCompanies),
			pq.Array(&o.Requirements), pq.Array(&o.Advantages), pq.Array(&o.Challenges), &o.TimeToProcess,
			pq.Array(&o.PopularCities), &o.WorkCulture, &adjustment,
		); err != nil {
			return nil, fmt.Errorf("scan opportunity: %w", err)
		}
		o.Adjustment = adjustment.String
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate opportunities: %w", err)
	}
	return out, nil
}

// Seed upserts doc into the catalog tables in one transaction.
func (s *PostgresSource) Seed(ctx context.Context, doc *registry.Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	fallback := make(map[string]bool, len(doc.FallbackCourses))
	for _, title := range doc.FallbackCourses {
		fallback[title] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, c := range doc.Courses {
		id := c.ID
		if id == "" {
			id = fmt.Sprintf("course-%d", i+1)
		}
		if _, err := tx.ExecContext(ctx, insertCourseQuery,
			id, c.Title, c.Provider, c.Duration, string(c.Difficulty), c.Rating, c.Price,
			c.Description, pq.Array(c.Skills), c.URL, c.Category, fallback[c.Title], i,
		); err != nil {
			return fmt.Errorf("insert course %q: %w", c.Title, err)
		}
	}

	for i, o := range doc.Opportunities {
		if _, err := tx.ExecContext(ctx, insertOpportunityQuery,
			o.Country, o.Flag, o.VisaType, o.AverageSalary, pq.Array(o.TopCompanies),
			pq.Array(o.Requirements), pq.Array(o.Advantages), pq.Array(o.Challenges), o.TimeToProcess,
			pq.Array(o.PopularCities), o.WorkCulture, o.Adjustment, i,
		); err != nil {
			return fmt.Errorf("insert opportunity %q: %w", o.Country, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog: %w", err)
	}
	return nil
}
