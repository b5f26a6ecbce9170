// pkg/registry/schema.go
package registry

import "readiness-workers/internal/models"

// Document is the on-disk catalog format shared by the builtin data, the file
// source and the catalog tool.
type Document struct {
	Version         string               `json:"version"`
	LastUpdated     string               `json:"lastUpdated"`
	Courses         []models.Course      `json:"courses"`
	Opportunities   []models.Opportunity `json:"opportunities"`
	FallbackCourses []string             `json:"fallbackCourses"` // course titles
}
