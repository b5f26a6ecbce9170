package models

import "time"

// AnalysisRecord is a persisted summary of one prediction.
type AnalysisRecord struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"userId"`
	CGPA                 float64   `json:"cgpa"`
	LeetcodeProblems     int       `json:"leetcodeProblems"`
	CodeforcesRating     int       `json:"codeforcesRating"`
	GithubRepos          int       `json:"githubRepos"`
	ProjectCount         int       `json:"projectCount"`
	SkillsCount          int       `json:"skillsCount"`
	WorkExperience       float64   `json:"workExperience"`
	OverallScore         int       `json:"overallScore"`
	PredictedCompanyType string    `json:"predictedCompanyType,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

type AnalyticsSummary struct {
	TotalAnalyses    int      `json:"totalAnalyses"`
	AverageScore     int      `json:"averageScore"`
	TopSkills        []string `json:"topSkills"`
	PopularCountries []string `json:"popularCountries"`
}

// AnalysisQueryType selects a read over persisted analyses.
type AnalysisQueryType string

const (
	QueryTypeAnalysisHistory  AnalysisQueryType = "analysis_history"
	QueryTypeAnalyticsSummary AnalysisQueryType = "analytics_summary"
)
