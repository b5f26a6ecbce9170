package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"readiness-workers/internal/models"
)

func TestDeriveInsights_Scenario(t *testing.T) {
	p := scenarioProfile()
	insights := DeriveInsights(ComputeScores(p, nil), p)

	assert.Equal(t, []string{
		"Data Structures & Algorithms",
		"Open Source Contributions",
		"LinkedIn Profile",
	}, insights.FocusAreas)
	assert.Equal(t, []string{
		"Strong Academic Performance",
		"Diverse Technical Skills",
		"Excellent English Communication",
		"Clear International Goals",
	}, insights.Strengths)
}

func TestDeriveInsights_Rules(t *testing.T) {
	tests := []struct {
		name           string
		card           ScoreCard
		profile        *models.Profile
		validateOutput func(t *testing.T, got Insights)
	}{
		{
			name: "focus fallback when no rule fires",
			card: ScoreCard{
				Components: models.ComponentScores{
					Academic: 75, Algorithmic: 65, Project: 65, Skills: 65,
					Community: 55, Network: 50, Language: 75,
				},
				Overall: 65,
			},
			profile: &models.Profile{LinkedinProfile: "in/x", PreferredCountries: []string{"Canada"}},
			validateOutput: func(t *testing.T, got Insights) {
				assert.Equal(t, []string{"Continue building on your strengths"}, got.FocusAreas)
				assert.Equal(t, []string{"Clear International Goals"}, got.Strengths)
			},
		},
		{
			name: "strength fallback when no rule fires",
			card: ScoreCard{
				Components: models.ComponentScores{
					Academic: 75, Algorithmic: 65, Project: 65, Skills: 65,
					Community: 55, Network: 50, Language: 75,
				},
				Overall: 65,
			},
			profile: &models.Profile{LinkedinProfile: "in/x", WorkExperience: 1},
			validateOutput: func(t *testing.T, got Insights) {
				assert.Equal(t, []string{"International Career Planning"}, got.FocusAreas)
				assert.Equal(t, []string{"Dedicated to learning and growth"}, got.Strengths)
			},
		},
		{
			name: "system design for strong candidates",
			card: ScoreCard{
				Components: models.ComponentScores{
					Academic: 90, Algorithmic: 85, Project: 80, Skills: 90,
					Community: 70, Network: 70, Experience: 50, Language: 100,
				},
				Overall: 82,
			},
			profile: &models.Profile{LinkedinProfile: "in/x", WorkExperience: 2, PreferredCountries: []string{"Canada"}},
			validateOutput: func(t *testing.T, got Insights) {
				assert.Equal(t, []string{"System Design"}, got.FocusAreas)
				assert.Equal(t, []string{
					"Strong Academic Performance",
					"Excellent Problem Solving Skills",
					"Strong Project Portfolio",
					"Diverse Technical Skills",
					"Active in Open Source",
					"Strong Professional Network",
					"Excellent English Communication",
					"Relevant Work Experience",
					"Clear International Goals",
				}, got.Strengths)
			},
		},
		{
			name: "low network with professional profile is not a focus",
			card: ScoreCard{
				Components: models.ComponentScores{
					Academic: 60, Algorithmic: 10, Project: 10, Skills: 10,
					Community: 10, Network: 10, Language: 40,
				},
				Overall: 20,
			},
			profile: &models.Profile{LinkedinProfile: "in/x"},
			validateOutput: func(t *testing.T, got Insights) {
				assert.Equal(t, []string{
					"Data Structures & Algorithms",
					"Project Development",
					"Technical Skills",
					"Academic Performance",
					"Open Source Contributions",
					"English Communication",
					"International Career Planning",
				}, got.FocusAreas)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateOutput(t, DeriveInsights(tt.card, tt.profile))
		})
	}
}
