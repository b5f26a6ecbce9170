package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness-workers/internal/models"
)

func TestCompanyMatches_OffsetsAndClipping(t *testing.T) {
	tests := []struct {
		overall int
		want    []int
	}{
		{overall: 41, want: []int{26, 46, 51, 56}},
		{overall: 10, want: []int{0, 15, 20, 25}},
		{overall: 95, want: []int{80, 100, 100, 100}},
	}

	for _, tt := range tests {
		matches := CompanyMatches(tt.overall)
		require.Len(t, matches, 4)

		got := make([]int, len(matches))
		for i, m := range matches {
			got[i] = m.MatchPercentage
		}
		assert.Equal(t, tt.want, got, "overall=%d", tt.overall)
	}

	m := CompanyMatches(50)
	assert.Equal(t, []string{
		"Global Tech Giants", "International Startups", "European Tech Companies", "Remote-First Companies",
	}, []string{m[0].Type, m[1].Type, m[2].Type, m[3].Type})
	assert.Equal(t, "€50k - €90k", m[2].SalaryRange)
	assert.Equal(t, []string{"Remote Worldwide", "Flexible Location"}, m[3].Locations)
}

func TestAssemble(t *testing.T) {
	courses := []models.Course{{Title: "Course", Skills: []string{"Go"}}}
	opps := []models.Opportunity{{Country: "Canada", MatchScore: 80, TopCompanies: []string{"Shopify"}}}
	insights := Insights{FocusAreas: []string{"System Design"}, Strengths: []string{"Active in Open Source"}}

	tests := []struct {
		name           string
		in             AssemblyInput
		validateOutput func(t *testing.T, got *models.PredictionResult)
	}{
		{
			name: "linkedin insights only with professional profile",
			in: AssemblyInput{
				Profile:  &models.Profile{CGPA: 8},
				Card:     ScoreCard{Overall: 50, Components: models.ComponentScores{Network: 90}},
				Insights: insights,
			},
			validateOutput: func(t *testing.T, got *models.PredictionResult) {
				assert.Nil(t, got.LinkedInInsights)
				assert.Nil(t, got.ResumeScore)
				assert.Empty(t, got.ResumeKeywords)
			},
		},
		{
			name: "linkedin insights derived from network score",
			in: AssemblyInput{
				Profile: &models.Profile{CGPA: 8, LinkedinProfile: "in/x"},
				Card:    ScoreCard{Overall: 50, Components: models.ComponentScores{Network: 87.6}},
			},
			validateOutput: func(t *testing.T, got *models.PredictionResult) {
				require.NotNil(t, got.LinkedInInsights)
				assert.Equal(t, 100, got.LinkedInInsights.ProfileStrength)
				assert.Equal(t, 100, got.LinkedInInsights.NetworkQuality)
				assert.Equal(t, 98, got.LinkedInInsights.IndustryAlignment)
				assert.Equal(t, LinkedInSuggestions, got.LinkedInInsights.Suggestions)
			},
		},
		{
			name: "resume fields copied when present",
			in: AssemblyInput{
				Profile: &models.Profile{CGPA: 8},
				Card:    ScoreCard{Overall: 70},
				Resume:  &models.ResumeAnalysis{Score: 77, Keywords: []string{"Go", "Leadership"}},
			},
			validateOutput: func(t *testing.T, got *models.PredictionResult) {
				require.NotNil(t, got.ResumeScore)
				assert.Equal(t, 77, *got.ResumeScore)
				assert.Equal(t, []string{"Go", "Leadership"}, got.ResumeKeywords)
			},
		},
		{
			name: "fixed improvements and copied lists",
			in: AssemblyInput{
				Profile:       &models.Profile{CGPA: 8},
				Card:          ScoreCard{Overall: 60},
				Insights:      insights,
				Courses:       courses,
				Opportunities: opps,
			},
			validateOutput: func(t *testing.T, got *models.PredictionResult) {
				assert.Equal(t, 60, got.OverallScore)
				assert.Equal(t, Improvements, got.Improvements)
				assert.Len(t, got.Improvements, 6)
				assert.Equal(t, "Global Tech Giants", got.TopCompanyType())

				got.CourseRecommendations[0].Skills[0] = "mutated"
				got.InternationalOpportunities[0].TopCompanies[0] = "mutated"
				got.FocusAreas[0] = "mutated"
				assert.Equal(t, "Go", courses[0].Skills[0])
				assert.Equal(t, "Shopify", opps[0].TopCompanies[0])
				assert.Equal(t, "System Design", insights.FocusAreas[0])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateOutput(t, Assemble(tt.in))
		})
	}
}
