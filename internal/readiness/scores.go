package readiness

import (
	"math"

	"readiness-workers/internal/models"
)

// Points per unit for the linear component formulas.
const (
	pointsPerProject = 12
	pointsPerSkill   = 10
	pointsPerYear    = 25

	algorithmicNormalizer = 8
)

var languagePoints = map[models.EnglishProficiency]float64{
	models.ProficiencyBasic:        40,
	models.ProficiencyIntermediate: 65,
	models.ProficiencyAdvanced:     85,
	models.ProficiencyNative:       100,
}

// ScoreCard is the output of the score calculator.
type ScoreCard struct {
	Components models.ComponentScores `json:"components"`
	Overall    int                    `json:"overall"`
}

// ComputeScores scores a profile with CanonicalWeights.
func ComputeScores(profile *models.Profile, m *models.PlatformMetrics) ScoreCard {
	return ComputeScoresWith(CanonicalWeights, profile, m)
}

// ComputeScoresWith scores a profile with an explicit weight table. A nil
// metrics value is treated as all zeros.
func ComputeScoresWith(weights WeightTable, profile *models.Profile, m *models.PlatformMetrics) ScoreCard {
	if m == nil {
		m = &models.PlatformMetrics{}
	}

	c := models.ComponentScores{
		Academic:    clip(profile.CGPA / 10 * 100),
		Algorithmic: clip(algorithmicRaw(m)),
		Project:     clip(float64(profile.ProjectCount * pointsPerProject)),
		Skills:      clip(float64(len(profile.Skills) * pointsPerSkill)),
		Community:   clip(communityRaw(m)),
		Network:     clip(networkRaw(profile, m)),
		Experience:  clip(profile.WorkExperience * pointsPerYear),
		Language:    languagePoints[proficiencyOf(profile)],
	}

	return ScoreCard{Components: c, Overall: weights.Overall(c)}
}

func algorithmicRaw(m *models.PlatformMetrics) float64 {
	return (float64(m.LeetCode.ProblemsSolved)*0.3 +
		float64(m.Codeforces.Rating)*0.04 +
		float64(m.CodeChef.Rating)*0.03 +
		float64(m.LeetCode.ContestRating)*0.02) / algorithmicNormalizer
}

func communityRaw(m *models.PlatformMetrics) float64 {
	return float64(m.GitHub.Repositories)*1.5 +
		float64(m.GitHub.Contributions)*0.03 +
		float64(m.GitHub.Followers)*0.8
}

// networkRaw is zero unless the profile links a professional profile.
func networkRaw(profile *models.Profile, m *models.PlatformMetrics) float64 {
	if !profile.HasProfessionalProfile() {
		return 0
	}
	li := m.LinkedIn
	return float64(li.Connections)*0.08 +
		float64(li.Endorsements)*1.2 +
		float64(li.Recommendations)*4 +
		float64(len(li.Certifications))*3
}

// proficiencyOf treats an unset level as Intermediate.
func proficiencyOf(profile *models.Profile) models.EnglishProficiency {
	if profile.EnglishProficiency == "" {
		return models.ProficiencyIntermediate
	}
	return profile.EnglishProficiency
}

func clip(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 100:
		return 100
	}
	return v
}
