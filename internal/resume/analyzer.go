// Package resume scores an uploaded resume. Parsing the document itself is
// out of scope; analyzers only see the artifact reference and the profile.
package resume

import (
	"context"
	"errors"
	"strings"

	"github.com/cespare/xxhash/v2"

	"readiness-workers/internal/models"
)

// ErrNoResume is returned when the profile carries no resume reference.
var ErrNoResume = errors.New("no resume reference")

var DefaultSoftSkills = []string{"Leadership", "Teamwork", "Problem Solving"}

const maxProfileKeywords = 5

type Analyzer interface {
	Analyze(ctx context.Context, ref string, profile *models.Profile) (*models.ResumeAnalysis, error)
}

// KeywordAnalyzer derives a stable score from the resume reference and
// echoes the profile's leading skills as keywords.
type KeywordAnalyzer struct {
	softSkills []string
}

// NewKeywordAnalyzer uses DefaultSoftSkills when softSkills is empty.
func NewKeywordAnalyzer(softSkills []string) *KeywordAnalyzer {
	if len(softSkills) == 0 {
		softSkills = DefaultSoftSkills
	}
	return &KeywordAnalyzer{softSkills: append([]string(nil), softSkills...)}
}

func (a *KeywordAnalyzer) Analyze(ctx context.Context, ref string, profile *models.Profile) (*models.ResumeAnalysis, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrNoResume
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var skills []string
	if profile != nil {
		skills = profile.Skills
	}
	if len(skills) > maxProfileKeywords {
		skills = skills[:maxProfileKeywords]
	}

	keywords := make([]string, 0, len(skills)+len(a.softSkills))
	keywords = append(keywords, skills...)
	keywords = append(keywords, a.softSkills...)

	return &models.ResumeAnalysis{
		Score:    60 + int(xxhash.Sum64String(ref)%40),
		Keywords: keywords,
	}, nil
}
