package readiness

import (
	"math"
	"sort"

	"readiness-workers/internal/models"
)

const (
	maxOpportunities      = 6
	preferredCountryBonus = 15
)

var englishBonus = map[models.EnglishProficiency]float64{
	models.ProficiencyBasic:        0,
	models.ProficiencyIntermediate: 10,
	models.ProficiencyAdvanced:     20,
	models.ProficiencyNative:       25,
}

// OpportunityCatalog supplies the opportunities to rank.
type OpportunityCatalog interface {
	Opportunities() []models.Opportunity
}

// RankInput is what adjustment rules may look at.
type RankInput struct {
	Profile *models.Profile
	Metrics *models.PlatformMetrics
	Overall int
}

// Adjustment rewrites the running score of one opportunity.
type Adjustment func(score float64, in RankInput) float64

// Adjustment keys referenced by catalog entries.
const (
	AdjustEliteSkillBar     = "elite-skill-bar"
	AdjustLanguageFluency   = "language-fluency"
	AdjustSecondaryLanguage = "secondary-language"
	AdjustExperiencedHires  = "experienced-hires"
)

// DefaultAdjustments returns a fresh copy of the builtin rules.
func DefaultAdjustments() map[string]Adjustment {
	return map[string]Adjustment{
		AdjustEliteSkillBar: func(score float64, in RankInput) float64 {
			if in.Overall < 70 {
				score *= 0.7
			}
			if in.Metrics.LeetCode.ProblemsSolved > 300 {
				score += 10
			}
			return score
		},
		AdjustLanguageFluency: func(score float64, in RankInput) float64 {
			score += 5
			if proficiencyOf(in.Profile).Fluent() {
				score += 10
			}
			return score
		},
		AdjustSecondaryLanguage: func(score float64, in RankInput) float64 {
			if proficiencyOf(in.Profile) == models.ProficiencyBasic {
				score *= 0.8
			}
			return score
		},
		AdjustExperiencedHires: func(score float64, in RankInput) float64 {
			if in.Profile.WorkExperience > 2 {
				score += 10
			}
			return score
		},
	}
}

// Ranker scores catalog opportunities against a profile.
type Ranker struct {
	rules map[string]Adjustment
	limit int
}

func NewRanker() *Ranker {
	return &Ranker{rules: DefaultAdjustments(), limit: maxOpportunities}
}

// Register adds or replaces the rule for key.
func (r *Ranker) Register(key string, rule Adjustment) {
	r.rules[key] = rule
}

// Rank returns at most six opportunities sorted by descending match score.
// Ties keep catalog order.
func (r *Ranker) Rank(cat OpportunityCatalog, profile *models.Profile, m *models.PlatformMetrics, overall int) []models.Opportunity {
	if m == nil {
		m = &models.PlatformMetrics{}
	}
	in := RankInput{Profile: profile, Metrics: m, Overall: overall}
	base := baseScore(in)

	opps := cat.Opportunities()
	for i := range opps {
		opps[i].MatchScore = r.score(opps[i], base, in)
	}

	sort.SliceStable(opps, func(a, b int) bool {
		return opps[a].MatchScore > opps[b].MatchScore
	})

	if len(opps) > r.limit {
		opps = opps[:r.limit]
	}
	return opps
}

func (r *Ranker) score(opp models.Opportunity, base float64, in RankInput) int {
	score := base
	if rule, ok := r.rules[opp.Adjustment]; ok && opp.Adjustment != "" {
		score = rule(score, in)
	}
	if in.Profile.PrefersCountry(opp.Country) {
		score += preferredCountryBonus
	}
	return int(math.Round(clip(score)))
}

// baseScore is the country-independent part of the match score.
func baseScore(in RankInput) float64 {
	p := in.Profile

	score := float64(in.Overall) * 0.4
	score += englishBonus[proficiencyOf(p)]
	score += math.Min(p.WorkExperience*5, 20)
	score += p.CGPA / 10 * 15

	if n := len(p.Skills); n > 5 {
		score += 10
		if n > 10 {
			score += 5
		}
	}
	if p.HasProfessionalProfile() {
		score += 10
	}
	if in.Metrics.GitHub.Repositories > 10 {
		score += 5
	}
	if in.Metrics.LeetCode.ProblemsSolved > 100 {
		score += 5
	}
	return score
}
