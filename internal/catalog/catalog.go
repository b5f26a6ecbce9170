// Package catalog holds the read-only course and opportunity reference data.
// A Catalog is built once at startup and shared by all requests; every
// accessor returns copies so callers may modify what they receive.
package catalog

import (
	"fmt"
	"sort"

	"readiness-workers/internal/models"
	"readiness-workers/pkg/registry"
)

type Catalog struct {
	version       string
	courses       []models.Course
	byCategory    map[string][]int // course positions, rating desc then catalog order
	opportunities []models.Opportunity
	byCountry     map[string]int
	fallback      []int
}

// New indexes doc. The document is validated first.
func New(doc *registry.Document) (*Catalog, error) {
	if doc == nil {
		return nil, fmt.Errorf("catalog document is nil")
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	c := &Catalog{
		version:       doc.Version,
		courses:       make([]models.Course, len(doc.Courses)),
		byCategory:    make(map[string][]int),
		opportunities: make([]models.Opportunity, len(doc.Opportunities)),
		byCountry:     make(map[string]int, len(doc.Opportunities)),
	}

	titleIndex := make(map[string]int, len(doc.Courses))
	for i, course := range doc.Courses {
		c.courses[i] = course.Clone()
		c.byCategory[course.Category] = append(c.byCategory[course.Category], i)
		titleIndex[course.Title] = i
	}
	for _, positions := range c.byCategory {
		c.sortByRating(positions)
	}

	for i, opp := range doc.Opportunities {
		opp = opp.Clone()
		opp.MatchScore = 0
		c.opportunities[i] = opp
		c.byCountry[opp.Country] = i
	}

	for _, title := range doc.FallbackCourses {
		c.fallback = append(c.fallback, titleIndex[title])
	}

	return c, nil
}

func (c *Catalog) sortByRating(positions []int) {
	sort.SliceStable(positions, func(a, b int) bool {
		ra, rb := c.courses[positions[a]].Rating, c.courses[positions[b]].Rating
		if ra != rb {
			return ra > rb
		}
		return positions[a] < positions[b]
	})
}

func (c *Catalog) Version() string { return c.version }

// Courses returns every course in catalog order.
func (c *Catalog) Courses() []models.Course {
	out := make([]models.Course, len(c.courses))
	for i, course := range c.courses {
		out[i] = course.Clone()
	}
	return out
}

// CoursesInCategories returns the courses of every listed category, sorted by
// rating descending with catalog order breaking ties. Unknown categories are
// ignored and duplicates are collapsed.
func (c *Catalog) CoursesInCategories(categories []string) []models.Course {
	seen := make(map[string]bool, len(categories))
	var positions []int
	for _, category := range categories {
		if seen[category] {
			continue
		}
		seen[category] = true
		positions = append(positions, c.byCategory[category]...)
	}
	c.sortByRating(positions)

	out := make([]models.Course, len(positions))
	for i, pos := range positions {
		out[i] = c.courses[pos].Clone()
	}
	return out
}

// Categories lists the known course categories in sorted order.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.byCategory))
	for category := range c.byCategory {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// FallbackCourses is the static recommendation set used when matching yields
// nothing.
func (c *Catalog) FallbackCourses() []models.Course {
	out := make([]models.Course, len(c.fallback))
	for i, pos := range c.fallback {
		out[i] = c.courses[pos].Clone()
	}
	return out
}

// Opportunities returns every opportunity in catalog order with a zero MatchScore.
func (c *Catalog) Opportunities() []models.Opportunity {
	out := make([]models.Opportunity, len(c.opportunities))
	for i, opp := range c.opportunities {
		out[i] = opp.Clone()
	}
	return out
}

func (c *Catalog) Opportunity(country string) (models.Opportunity, bool) {
	i, ok := c.byCountry[country]
	if !ok {
		return models.Opportunity{}, false
	}
	return c.opportunities[i].Clone(), true
}

// Document rebuilds a registry document from the catalog.
func (c *Catalog) Document() *registry.Document {
	doc := &registry.Document{
		Version:       c.version,
		Courses:       c.Courses(),
		Opportunities: c.Opportunities(),
	}
	for _, pos := range c.fallback {
		doc.FallbackCourses = append(doc.FallbackCourses, c.courses[pos].Title)
	}
	return doc
}
