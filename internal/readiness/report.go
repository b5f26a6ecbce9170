package readiness

import (
	"math"

	"readiness-workers/internal/models"
)

// CompanySegment is a fixed employer category with a match offset from the
// overall score.
type CompanySegment struct {
	Type         string
	Offset       int
	Description  string
	Requirements []string
	Suggestions  []string
	SalaryRange  string
	Locations    []string
}

var CompanySegments = []CompanySegment{
	{
		Type:        "Global Tech Giants",
		Offset:      -15,
		Description: "Top-tier global tech companies with offices worldwide",
		Requirements: []string{
			"Strong DSA skills (500+ LeetCode problems)",
			"System design knowledge",
			"International experience preferred",
			"Strong LinkedIn presence",
		},
		Suggestions: []string{
			"Focus on advanced DSA problems",
			"Practice system design interviews",
			"Build international network on LinkedIn",
		},
		SalaryRange: "$120k - $300k+",
		Locations:   []string{"USA", "Canada", "UK", "Singapore", "Australia"},
	},
	{
		Type:        "International Startups",
		Offset:      5,
		Description: "Fast-growing startups with global ambitions",
		Requirements: []string{
			"Versatile skill set",
			"Quick learning ability",
			"Cultural adaptability",
			"Remote work experience",
		},
		Suggestions: []string{
			"Develop diverse technical skills",
			"Build portfolio of international projects",
			"Improve English communication",
		},
		SalaryRange: "$60k - $150k + equity",
		Locations:   []string{"Remote", "Berlin", "Amsterdam", "Toronto", "Singapore"},
	},
	{
		Type:        "European Tech Companies",
		Offset:      10,
		Description: "Established tech companies in Europe with visa sponsorship",
		Requirements: []string{
			"EU Blue Card eligibility",
			"English proficiency",
			"Relevant degree",
			"Clean background check",
		},
		Suggestions: []string{
			"Learn basic German/Dutch",
			"Research EU visa requirements",
			"Network with European professionals",
		},
		SalaryRange: "€50k - €90k",
		Locations:   []string{"Germany", "Netherlands", "Switzerland", "Sweden"},
	},
	{
		Type:        "Remote-First Companies",
		Offset:      15,
		Description: "Companies offering full remote work with global teams",
		Requirements: []string{
			"Strong communication skills",
			"Self-motivated",
			"Reliable internet",
			"Overlap with team timezones",
		},
		Suggestions: []string{
			"Improve async communication",
			"Build remote work portfolio",
			"Get timezone management tools",
		},
		SalaryRange: "$50k - $120k",
		Locations:   []string{"Remote Worldwide", "Flexible Location"},
	},
}

var Improvements = []string{
	"Practice more coding problems daily",
	"Build larger scale projects",
	"Contribute to open source projects",
	"Improve system design knowledge",
	"Strengthen LinkedIn profile",
	"Research visa requirements for target countries",
}

var LinkedInSuggestions = []string{
	"Add more technical skills to your profile",
	"Get recommendations from colleagues",
	"Share technical articles and insights",
	"Connect with professionals in target countries",
	"Optimize headline for international opportunities",
}

// AssemblyInput is everything the report is built from. Resume is optional.
type AssemblyInput struct {
	Profile       *models.Profile
	Metrics       *models.PlatformMetrics
	Card          ScoreCard
	Insights      Insights
	Opportunities []models.Opportunity
	Courses       []models.Course
	Resume        *models.ResumeAnalysis
}

// Assemble shapes the final report. Slices are copied so the result shares
// nothing with its inputs.
func Assemble(in AssemblyInput) *models.PredictionResult {
	result := &models.PredictionResult{
		OverallScore:               in.Card.Overall,
		ComponentScores:            in.Card.Components,
		CompanyMatches:             CompanyMatches(in.Card.Overall),
		FocusAreas:                 append([]string(nil), in.Insights.FocusAreas...),
		Strengths:                  append([]string(nil), in.Insights.Strengths...),
		Improvements:               append([]string(nil), Improvements...),
		CourseRecommendations:      make([]models.Course, len(in.Courses)),
		InternationalOpportunities: make([]models.Opportunity, len(in.Opportunities)),
	}

	for i, c := range in.Courses {
		result.CourseRecommendations[i] = c.Clone()
	}
	for i, o := range in.Opportunities {
		result.InternationalOpportunities[i] = o.Clone()
	}

	if in.Profile != nil && in.Profile.HasProfessionalProfile() {
		result.LinkedInInsights = linkedInInsights(in.Card.Components.Network)
	}

	if in.Resume != nil {
		score := in.Resume.Score
		result.ResumeScore = &score
		result.ResumeKeywords = append([]string(nil), in.Resume.Keywords...)
	}

	return result
}

// CompanyMatches applies each segment offset to overall, clipped to [0,100].
func CompanyMatches(overall int) []models.CompanyMatch {
	out := make([]models.CompanyMatch, len(CompanySegments))
	for i, s := range CompanySegments {
		out[i] = models.CompanyMatch{
			Type:            s.Type,
			MatchPercentage: int(clip(float64(overall + s.Offset))),
			Description:     s.Description,
			Requirements:    append([]string(nil), s.Requirements...),
			Suggestions:     append([]string(nil), s.Suggestions...),
			SalaryRange:     s.SalaryRange,
			Locations:       append([]string(nil), s.Locations...),
		}
	}
	return out
}

func linkedInInsights(network float64) *models.LinkedInInsights {
	return &models.LinkedInInsights{
		ProfileStrength:   int(math.Round(math.Min(network+20, 100))),
		NetworkQuality:    int(math.Round(math.Min(network+15, 100))),
		IndustryAlignment: int(math.Round(math.Min(network+10, 100))),
		Suggestions:       append([]string(nil), LinkedInSuggestions...),
	}
}
