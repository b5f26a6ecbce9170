package readiness

import "readiness-workers/internal/models"

const (
	maxCourses            = 6
	maxCoursesPerCategory = 2
	defaultFocusCategory  = "Web Development"
)

// focusCategories maps focus-area labels to course categories.
var focusCategories = map[string][]string{
	"Data Structures & Algorithms": {"DSA", "Competitive Programming"},
	"Project Development":          {"Web Development", "Mobile Development"},
	"Technical Skills":             {"Web Development", "Machine Learning", "Mobile Development"},
	"Open Source Contributions":    {"Web Development", "DevOps"},
	"System Design":                {"System Design", "Cloud Computing"},
	"Competitive Programming":      {"Competitive Programming", "DSA"},
	"LinkedIn Profile":             {"Web Development", "DevOps"},
	"International Readiness":      {"System Design", "Cloud Computing"},
}

var defaultCategories = []string{"DSA", "Web Development"}

// CourseCatalog supplies courses by category plus a static fallback set.
type CourseCatalog interface {
	CoursesInCategories(categories []string) []models.Course
	FallbackCourses() []models.Course
}

// CategoriesFor returns the distinct course categories for focusAreas in
// first-seen order.
func CategoriesFor(focusAreas []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, area := range focusAreas {
		categories, ok := focusCategories[area]
		if !ok {
			categories = []string{defaultFocusCategory}
		}
		for _, c := range categories {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultCategories...)
	}
	return out
}

// MatchCourses picks up to six courses, highest rated first, with at most two
// per category. If nothing matches, the catalog fallback set is returned.
func MatchCourses(focusAreas []string, cat CourseCatalog) []models.Course {
	candidates := cat.CoursesInCategories(CategoriesFor(focusAreas))

	perCategory := make(map[string]int)
	selected := make([]models.Course, 0, maxCourses)
	for _, course := range candidates {
		if len(selected) == maxCourses {
			break
		}
		if perCategory[course.Category] >= maxCoursesPerCategory {
			continue
		}
		perCategory[course.Category]++
		selected = append(selected, course)
	}

	if len(selected) == 0 {
		fallback := cat.FallbackCourses()
		if len(fallback) > maxCourses {
			fallback = fallback[:maxCourses]
		}
		return fallback
	}
	return selected
}
