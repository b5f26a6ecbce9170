package readiness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness-workers/internal/models"
)

func scenarioProfile() *models.Profile {
	return &models.Profile{
		CGPA: 9.0,
		Skills: []string{
			"Go", "Python", "Java", "SQL", "Docker", "Kubernetes",
			"React", "AWS", "Linux", "Git", "GraphQL", "Redis",
		},
		ProjectCount:       5,
		WorkExperience:     0,
		EnglishProficiency: models.ProficiencyAdvanced,
		PreferredCountries: []string{"Germany"},
	}
}

// ==========================
// Weight table
// ==========================

func TestCanonicalWeights_SumToOne(t *testing.T) {
	require.NoError(t, CanonicalWeights.Validate())
	assert.InDelta(t, 1.0, CanonicalWeights.Sum(), 1e-9)
}

func TestWeightTable_Validate(t *testing.T) {
	bad := CanonicalWeights
	bad.Language = 0.06
	assert.ErrorContains(t, bad.Validate(), "sum")

	negative := CanonicalWeights
	negative.Academic = -0.18
	negative.Algorithmic = 0.58
	assert.ErrorContains(t, negative.Validate(), "negative")
}

// ==========================
// ComputeScores
// ==========================

func TestComputeScores_Scenario(t *testing.T) {
	card := ComputeScores(scenarioProfile(), &models.PlatformMetrics{})

	assert.InDelta(t, 90, card.Components.Academic, 1e-9)
	assert.Zero(t, card.Components.Algorithmic)
	assert.InDelta(t, 60, card.Components.Project, 1e-9)
	assert.InDelta(t, 100, card.Components.Skills, 1e-9)
	assert.Zero(t, card.Components.Community)
	assert.Zero(t, card.Components.Network)
	assert.Zero(t, card.Components.Experience)
	assert.InDelta(t, 85, card.Components.Language, 1e-9)
	assert.Equal(t, 41, card.Overall)
}

func TestComputeScores_Formulas(t *testing.T) {
	tests := []struct {
		name           string
		profile        *models.Profile
		metrics        *models.PlatformMetrics
		validateOutput func(t *testing.T, c models.ComponentScores)
	}{
		{
			name:    "algorithmic combines four platform inputs",
			profile: &models.Profile{CGPA: 7},
			metrics: &models.PlatformMetrics{
				LeetCode:   models.LeetCodeStats{ProblemsSolved: 200, ContestRating: 1500},
				Codeforces: models.CodeforcesStats{Rating: 1500},
				CodeChef:   models.CodeChefStats{Rating: 1600},
			},
			validateOutput: func(t *testing.T, c models.ComponentScores) {
				// (60 + 60 + 48 + 30) / 8
				assert.InDelta(t, 24.75, c.Algorithmic, 1e-9)
			},
		},
		{
			name:    "community from github activity",
			profile: &models.Profile{CGPA: 7},
			metrics: &models.PlatformMetrics{
				GitHub: models.GitHubStats{Repositories: 10, Contributions: 500, Followers: 10},
			},
			validateOutput: func(t *testing.T, c models.ComponentScores) {
				assert.InDelta(t, 38, c.Community, 1e-9)
			},
		},
		{
			name:    "network ignored without professional profile",
			profile: &models.Profile{CGPA: 7},
			metrics: &models.PlatformMetrics{
				LinkedIn: models.LinkedInStats{Connections: 500, Endorsements: 50},
			},
			validateOutput: func(t *testing.T, c models.ComponentScores) {
				assert.Zero(t, c.Network)
			},
		},
		{
			name:    "network with professional profile",
			profile: &models.Profile{CGPA: 7, LinkedinProfile: "https://linkedin.com/in/x"},
			metrics: &models.PlatformMetrics{
				LinkedIn: models.LinkedInStats{
					Connections:     100,
					Endorsements:    10,
					Recommendations: 2,
					Certifications:  []string{"AWS", "GCP", "Azure"},
				},
			},
			validateOutput: func(t *testing.T, c models.ComponentScores) {
				// 8 + 12 + 8 + 9
				assert.InDelta(t, 37, c.Network, 1e-9)
			},
		},
		{
			name:    "experience and unset proficiency",
			profile: &models.Profile{CGPA: 7, WorkExperience: 1.5},
			metrics: nil,
			validateOutput: func(t *testing.T, c models.ComponentScores) {
				assert.InDelta(t, 37.5, c.Experience, 1e-9)
				assert.InDelta(t, 65, c.Language, 1e-9)
			},
		},
		{
			name: "every component capped at 100",
			profile: &models.Profile{
				CGPA:               10,
				Skills:             make([]string, 40),
				ProjectCount:       50,
				WorkExperience:     12,
				LinkedinProfile:    "https://linkedin.com/in/x",
				EnglishProficiency: models.ProficiencyNative,
			},
			metrics: &models.PlatformMetrics{
				LeetCode:   models.LeetCodeStats{ProblemsSolved: 3000, ContestRating: 3000},
				Codeforces: models.CodeforcesStats{Rating: 3500},
				CodeChef:   models.CodeChefStats{Rating: 3000},
				GitHub:     models.GitHubStats{Repositories: 200, Contributions: 10000, Followers: 1000},
				LinkedIn:   models.LinkedInStats{Connections: 5000, Endorsements: 500, Recommendations: 50},
			},
			validateOutput: func(t *testing.T, c models.ComponentScores) {
				for _, v := range c.Values() {
					assert.Equal(t, 100.0, v)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := ComputeScores(tt.profile, tt.metrics)
			tt.validateOutput(t, card.Components)
		})
	}
}

func TestComputeScores_Bounds(t *testing.T) {
	profiles := []*models.Profile{
		{CGPA: 0.1},
		{CGPA: 10, ProjectCount: 1000, WorkExperience: 1000, Skills: make([]string, 1000)},
		{CGPA: 5, EnglishProficiency: models.ProficiencyBasic},
		scenarioProfile(),
	}
	metrics := []*models.PlatformMetrics{
		{},
		{LeetCode: models.LeetCodeStats{ProblemsSolved: math.MaxInt32}},
		{GitHub: models.GitHubStats{Repositories: 1 << 20, Followers: 1 << 20}},
	}

	for _, p := range profiles {
		for _, m := range metrics {
			card := ComputeScores(p, m)
			assert.GreaterOrEqual(t, card.Overall, 0)
			assert.LessOrEqual(t, card.Overall, 100)
			for _, v := range card.Components.Values() {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 100.0)
			}
		}
	}
}

func TestComputeScores_ProjectMonotonic(t *testing.T) {
	prev := -1.0
	for n := 0; n <= 15; n++ {
		p := scenarioProfile()
		p.ProjectCount = n
		score := ComputeScores(p, nil).Components.Project
		assert.GreaterOrEqual(t, score, prev, "projectCount=%d", n)
		prev = score
	}
	assert.Equal(t, 100.0, prev)
}

func TestOverall_RoundsHalfAwayFromZero(t *testing.T) {
	w := WeightTable{Academic: 1}
	assert.Equal(t, 43, w.Overall(models.ComponentScores{Academic: 42.5}))
	assert.Equal(t, 42, w.Overall(models.ComponentScores{Academic: 42.49}))
}
