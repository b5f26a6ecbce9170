// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog document: %w", err)
	}
	return &doc, nil
}

// SaveDocument writes doc as indented JSON, creating parent directories.
func SaveDocument(doc *Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// Validate checks the invariants catalog consumers rely on.
func (d *Document) Validate() error {
	titles := make(map[string]bool, len(d.Courses))
	for i, c := range d.Courses {
		if strings.TrimSpace(c.Title) == "" {
			return fmt.Errorf("course %d missing required field: title", i)
		}
		if strings.TrimSpace(c.Category) == "" {
			return fmt.Errorf("course %q missing required field: category", c.Title)
		}
		if c.Rating < 0 || c.Rating > 5 {
			return fmt.Errorf("course %q rating %.2f outside [0,5]", c.Title, c.Rating)
		}
		if !c.Difficulty.Valid() {
			return fmt.Errorf("course %q has unknown difficulty %q", c.Title, c.Difficulty)
		}
		if titles[c.Title] {
			return fmt.Errorf("duplicate course title: %s", c.Title)
		}
		titles[c.Title] = true
	}

	countries := make(map[string]bool, len(d.Opportunities))
	for i, o := range d.Opportunities {
		if strings.TrimSpace(o.Country) == "" {
			return fmt.Errorf("opportunity %d missing required field: country", i)
		}
		if countries[o.Country] {
			return fmt.Errorf("duplicate opportunity country: %s", o.Country)
		}
		countries[o.Country] = true
	}

	for _, title := range d.FallbackCourses {
		if !titles[title] {
			return fmt.Errorf("fallback course %q is not in the course list", title)
		}
	}

	return nil
}
