// internal/models/prediction.go
package models

// ComponentScores holds the eight bounded component scores, each in [0,100].
type ComponentScores struct {
	Academic    float64 `json:"academic"`
	Algorithmic float64 `json:"algorithmic"`
	Project     float64 `json:"project"`
	Skills      float64 `json:"skills"`
	Community   float64 `json:"community"`
	Network     float64 `json:"network"`
	Experience  float64 `json:"experience"`
	Language    float64 `json:"language"`
}

// Values returns the scores in declaration order.
func (s ComponentScores) Values() []float64 {
	return []float64{
		s.Academic, s.Algorithmic, s.Project, s.Skills,
		s.Community, s.Network, s.Experience, s.Language,
	}
}

type CompanyMatch struct {
	Type            string   `json:"type"`
	MatchPercentage int      `json:"matchPercentage"`
	Description     string   `json:"description"`
	Requirements    []string `json:"requirements"`
	Suggestions     []string `json:"suggestions"`
	SalaryRange     string   `json:"salaryRange,omitempty"`
	Locations       []string `json:"locations,omitempty"`
}

type LinkedInInsights struct {
	ProfileStrength   int      `json:"profileStrength"`
	NetworkQuality    int      `json:"networkQuality"`
	IndustryAlignment int      `json:"industryAlignment"`
	Suggestions       []string `json:"suggestions"`
}

// ResumeAnalysis is returned by an external resume analyzer.
type ResumeAnalysis struct {
	Score    int      `json:"score"`
	Keywords []string `json:"keywords"`
}

// PredictionResult is the assembled readiness report. It is built once and
// not modified afterwards.
type PredictionResult struct {
	OverallScore               int               `json:"overallScore"`
	ComponentScores            ComponentScores   `json:"componentScores"`
	CompanyMatches             []CompanyMatch    `json:"companyMatches"`
	FocusAreas                 []string          `json:"focusAreas"`
	Strengths                  []string          `json:"strengths"`
	Improvements               []string          `json:"improvements"`
	CourseRecommendations      []Course          `json:"courseRecommendations"`
	InternationalOpportunities []Opportunity     `json:"internationalOpportunities"`
	LinkedInInsights           *LinkedInInsights `json:"linkedinInsights,omitempty"`
	ResumeScore                *int              `json:"resumeScore,omitempty"`
	ResumeKeywords             []string          `json:"resumeKeywords,omitempty"`
}

// TopCompanyType is the first company segment, or "" if there is none.
func (r *PredictionResult) TopCompanyType() string {
	if len(r.CompanyMatches) == 0 {
		return ""
	}
	return r.CompanyMatches[0].Type
}
