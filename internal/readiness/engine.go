package readiness

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
	"readiness-workers/internal/common/observability"
	"readiness-workers/internal/models"
	"readiness-workers/internal/platform"
	"readiness-workers/internal/resume"
)

// Catalog is the reference data the engine ranks and matches against.
type Catalog interface {
	OpportunityCatalog
	CourseCatalog
}

// Engine runs the full prediction pipeline.
type Engine struct {
	provider platform.DataProvider
	catalog  Catalog
	ranker   *Ranker
	weights  WeightTable
	resume   resume.Analyzer
	obs      *observability.Observability
	tracer   trace.Tracer
	log      logger.Logger
}

type Option func(*Engine)

func WithWeights(w WeightTable) Option {
	return func(e *Engine) { e.weights = w }
}

func WithRanker(r *Ranker) Option {
	return func(e *Engine) { e.ranker = r }
}

// WithResumeAnalyzer enables resume analysis for profiles with a ResumeRef.
func WithResumeAnalyzer(a resume.Analyzer) Option {
	return func(e *Engine) { e.resume = a }
}

func WithObservability(o *observability.Observability) Option {
	return func(e *Engine) { e.obs = o }
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// NewEngine validates the weight table before returning.
func NewEngine(provider platform.DataProvider, cat Catalog, log logger.Logger, opts ...Option) (*Engine, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	e := &Engine{
		provider: provider,
		catalog:  cat,
		ranker:   NewRanker(),
		weights:  CanonicalWeights,
		tracer:   observability.Tracer("readiness-workers/readiness"),
		log:      log.WithFields(map[string]interface{}{"component": "readiness-engine"}),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weight table: %w", err)
	}
	return e, nil
}

// Predict fetches platform metrics for profile and evaluates it. The metrics
// are returned alongside the report so callers can persist them.
func (e *Engine) Predict(ctx context.Context, profile *models.Profile) (*models.PredictionResult, *models.PlatformMetrics, error) {
	if err := ValidateProfile(profile); err != nil {
		return nil, nil, err
	}

	m := e.FetchMetrics(ctx, profile)

	result, err := e.Evaluate(ctx, profile, m)
	if err != nil {
		return nil, nil, err
	}
	return result, m, nil
}

// FetchMetrics runs the provider under its own span. Without a provider the
// metrics are all zero.
func (e *Engine) FetchMetrics(ctx context.Context, profile *models.Profile) *models.PlatformMetrics {
	if e.provider == nil {
		return &models.PlatformMetrics{}
	}
	ctx, span := e.tracer.Start(ctx, "readiness.fetch-platform-data")
	defer span.End()
	return e.provider.Fetch(ctx, profile)
}

// Evaluate runs the pure pipeline on already fetched metrics. Only profile
// preconditions produce an error.
func (e *Engine) Evaluate(ctx context.Context, profile *models.Profile, m *models.PlatformMetrics) (*models.PredictionResult, error) {
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}
	if m == nil {
		m = &models.PlatformMetrics{}
	}

	ctx, span := e.tracer.Start(ctx, "readiness.evaluate")
	defer span.End()

	card := e.scores(ctx, profile, m)
	insights := DeriveInsights(card, profile)

	_, rankSpan := e.tracer.Start(ctx, "readiness.rank-opportunities")
	opportunities := e.ranker.Rank(e.catalog, profile, m, card.Overall)
	rankSpan.SetAttributes(attribute.Int("opportunities", len(opportunities)))
	rankSpan.End()

	_, courseSpan := e.tracer.Start(ctx, "readiness.match-courses")
	courses := MatchCourses(insights.FocusAreas, e.catalog)
	courseSpan.SetAttributes(attribute.Int("courses", len(courses)))
	courseSpan.End()

	analysis := e.analyzeResume(ctx, profile)

	// The report is complete; deadline handling belongs to the caller.
	if err := ctx.Err(); err != nil {
		span.AddEvent("context done before assembly", trace.WithAttributes(attribute.String("error", err.Error())))
	}

	result := Assemble(AssemblyInput{
		Profile:       profile,
		Metrics:       m,
		Card:          card,
		Insights:      insights,
		Opportunities: opportunities,
		Courses:       courses,
		Resume:        analysis,
	})

	metrics.ReadinessOverallScore.Observe(float64(result.OverallScore))
	e.obs.RecordPrediction(ctx, result.OverallScore, result.TopCompanyType())
	span.SetAttributes(attribute.Int("overallScore", result.OverallScore))

	e.log.Debug("prediction assembled", map[string]interface{}{
		"overallScore":  result.OverallScore,
		"focusAreas":    len(result.FocusAreas),
		"opportunities": len(result.InternationalOpportunities),
		"courses":       len(result.CourseRecommendations),
	})
	return result, nil
}

func (e *Engine) scores(ctx context.Context, profile *models.Profile, m *models.PlatformMetrics) ScoreCard {
	_, span := e.tracer.Start(ctx, "readiness.compute-scores")
	defer span.End()

	card := ComputeScoresWith(e.weights, profile, m)
	span.SetAttributes(attribute.Int("overall", card.Overall))
	return card
}

// analyzeResume never fails the prediction; errors drop the resume fields.
func (e *Engine) analyzeResume(ctx context.Context, profile *models.Profile) *models.ResumeAnalysis {
	if e.resume == nil || profile.ResumeRef == "" {
		return nil
	}

	ctx, span := e.tracer.Start(ctx, "readiness.analyze-resume")
	defer span.End()

	analysis, err := e.resume.Analyze(ctx, profile.ResumeRef, profile)
	if err != nil {
		if !stderrors.Is(err, resume.ErrNoResume) {
			span.RecordError(err)
			e.log.Warn("resume analysis failed, omitting resume fields", map[string]interface{}{
				"error": errors.NewResumeAnalysisFailedError(err),
			})
		}
		return nil
	}
	return analysis
}
