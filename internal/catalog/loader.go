package catalog

import (
	"context"

	"readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
	"readiness-workers/internal/models"
	"readiness-workers/pkg/registry"
)

// Source produces a catalog document.
type Source interface {
	Name() string
	Load(ctx context.Context) (*registry.Document, error)
}

// Load builds the process catalog from primary. Any section the primary
// source cannot supply is taken from the builtin document, so Load only
// fails if the builtin data itself is broken.
func Load(ctx context.Context, primary Source, log logger.Logger) (*Catalog, error) {
	builtin, err := BuiltinDocument()
	if err != nil {
		return nil, err
	}
	if primary == nil {
		primary = BuiltinSource{}
	}

	log = log.WithFields(map[string]interface{}{"catalogSource": primary.Name()})

	doc, err := primary.Load(ctx)
	if err != nil {
		log.Warn("catalog source unavailable, using builtin catalog", map[string]interface{}{
			"error": errors.NewCatalogUnavailableError(primary.Name(), err),
		})
		metrics.CatalogFallbacks.WithLabelValues("all").Inc()
		return New(builtin)
	}

	merged := mergeWithBuiltin(doc, builtin, log)
	cat, err := New(merged)
	if err != nil {
		log.Warn("catalog from source is invalid, using builtin catalog", map[string]interface{}{
			"error": err,
		})
		metrics.CatalogFallbacks.WithLabelValues("all").Inc()
		return New(builtin)
	}

	log.Info("catalog loaded", map[string]interface{}{
		"version":       cat.Version(),
		"courses":       len(merged.Courses),
		"opportunities": len(merged.Opportunities),
	})
	return cat, nil
}

func mergeWithBuiltin(doc, builtin *registry.Document, log logger.Logger) *registry.Document {
	out := *doc

	if len(out.Courses) == 0 {
		log.Warn("catalog source has no courses, using builtin courses", nil)
		metrics.CatalogFallbacks.WithLabelValues("courses").Inc()
		out.Courses = builtin.Courses
	}

	if len(out.Opportunities) == 0 {
		log.Warn("catalog source has no opportunities, using builtin opportunities", nil)
		metrics.CatalogFallbacks.WithLabelValues("opportunities").Inc()
		out.Opportunities = builtin.Opportunities
	}

	if len(out.FallbackCourses) == 0 {
		metrics.CatalogFallbacks.WithLabelValues("fallbackCourses").Inc()
		out.Courses, out.FallbackCourses = withBuiltinFallback(out.Courses, builtin)
	}

	return &out
}

// withBuiltinFallback points the fallback list at the builtin fallback titles,
// adding any of those courses that courses lacks.
func withBuiltinFallback(courses []models.Course, builtin *registry.Document) ([]models.Course, []string) {
	have := make(map[string]bool, len(courses))
	for _, c := range courses {
		have[c.Title] = true
	}

	builtinByTitle := make(map[string]models.Course, len(builtin.Courses))
	for _, c := range builtin.Courses {
		builtinByTitle[c.Title] = c
	}

	out := append([]models.Course(nil), courses...)
	for _, title := range builtin.FallbackCourses {
		if !have[title] {
			out = append(out, builtinByTitle[title])
			have[title] = true
		}
	}
	return out, append([]string(nil), builtin.FallbackCourses...)
}
