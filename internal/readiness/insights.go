package readiness

import "readiness-workers/internal/models"

const (
	fallbackFocusArea = "Continue building on your strengths"
	fallbackStrength  = "Dedicated to learning and growth"
)

// Insights are the ordered focus areas and strengths of a score card.
type Insights struct {
	FocusAreas []string `json:"focusAreas"`
	Strengths  []string `json:"strengths"`
}

type insightRule struct {
	label string
	when  func(s models.ComponentScores, overall int, p *models.Profile) bool
}

// Rules are evaluated independently, in order.
var focusRules = []insightRule{
	{"Data Structures & Algorithms", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Algorithmic < 60 }},
	{"Project Development", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Project < 60 }},
	{"Technical Skills", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Skills < 60 }},
	{"Academic Performance", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Academic < 70 }},
	{"Open Source Contributions", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Community < 50 }},
	{"LinkedIn Profile", func(s models.ComponentScores, _ int, p *models.Profile) bool {
		return s.Network < 40 && !p.HasProfessionalProfile()
	}},
	{"English Communication", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Language < 70 }},
	{"International Career Planning", func(_ models.ComponentScores, _ int, p *models.Profile) bool {
		return len(p.PreferredCountries) == 0
	}},
	{"System Design", func(s models.ComponentScores, overall int, _ *models.Profile) bool {
		return overall > 70 && s.Algorithmic > 60
	}},
}

var strengthRules = []insightRule{
	{"Strong Academic Performance", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Academic >= 80 }},
	{"Excellent Problem Solving Skills", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Algorithmic >= 70 }},
	{"Strong Project Portfolio", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Project >= 70 }},
	{"Diverse Technical Skills", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Skills >= 70 }},
	{"Active in Open Source", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Community >= 60 }},
	{"Strong Professional Network", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Network >= 60 }},
	{"Excellent English Communication", func(s models.ComponentScores, _ int, _ *models.Profile) bool { return s.Language >= 85 }},
	{"Relevant Work Experience", func(_ models.ComponentScores, _ int, p *models.Profile) bool { return p.WorkExperience > 1 }},
	{"Clear International Goals", func(_ models.ComponentScores, _ int, p *models.Profile) bool {
		return len(p.PreferredCountries) > 0
	}},
}

// DeriveInsights applies the focus and strength rules. An empty list is
// replaced by its single fallback label.
func DeriveInsights(card ScoreCard, profile *models.Profile) Insights {
	return Insights{
		FocusAreas: applyRules(focusRules, card, profile, fallbackFocusArea),
		Strengths:  applyRules(strengthRules, card, profile, fallbackStrength),
	}
}

func applyRules(rules []insightRule, card ScoreCard, profile *models.Profile, fallback string) []string {
	var out []string
	for _, r := range rules {
		if r.when(card.Components, card.Overall, profile) {
			out = append(out, r.label)
		}
	}
	if len(out) == 0 {
		return []string{fallback}
	}
	return out
}
