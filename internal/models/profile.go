// internal/models/profile.go
package models

import "strings"

// EnglishProficiency is the self-reported English level of a candidate.
type EnglishProficiency string

const (
	ProficiencyBasic        EnglishProficiency = "Basic"
	ProficiencyIntermediate EnglishProficiency = "Intermediate"
	ProficiencyAdvanced     EnglishProficiency = "Advanced"
	ProficiencyNative       EnglishProficiency = "Native"
)

// Valid reports whether p is one of the four known levels.
func (p EnglishProficiency) Valid() bool {
	switch p {
	case ProficiencyBasic, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyNative:
		return true
	}
	return false
}

// Fluent is true for Advanced and Native.
func (p EnglishProficiency) Fluent() bool {
	return p == ProficiencyAdvanced || p == ProficiencyNative
}

// Profile is the candidate input to the readiness pipeline.
type Profile struct {
	UserID             string             `json:"userId,omitempty"`
	LeetcodeUsername   string             `json:"leetcodeUsername,omitempty"`
	CodeforcesUsername string             `json:"codeforcesUsername,omitempty"`
	CodechefUsername   string             `json:"codechefUsername,omitempty"`
	GithubUsername     string             `json:"githubUsername,omitempty"`
	HackerrankUsername string             `json:"hackerrankUsername,omitempty"`
	LinkedinProfile    string             `json:"linkedinProfile,omitempty"`
	CGPA               float64            `json:"cgpa"`
	Skills             []string           `json:"skills"`
	ProjectCount       int                `json:"projectCount"`
	PreferredCountries []string           `json:"preferredCountries"`
	WorkExperience     float64            `json:"workExperience"`
	EnglishProficiency EnglishProficiency `json:"englishProficiency"`
	ResumeRef          string             `json:"resumeRef,omitempty"`
}

// Username returns the identifier the profile holds for a platform, or "".
func (p *Profile) Username(platform Platform) string {
	var v string
	switch platform {
	case PlatformLeetCode:
		v = p.LeetcodeUsername
	case PlatformCodeforces:
		v = p.CodeforcesUsername
	case PlatformCodeChef:
		v = p.CodechefUsername
	case PlatformGitHub:
		v = p.GithubUsername
	case PlatformHackerRank:
		v = p.HackerrankUsername
	case PlatformLinkedIn:
		v = p.LinkedinProfile
	}
	return strings.TrimSpace(v)
}

// HasProfessionalProfile is true when a LinkedIn profile link was supplied.
func (p *Profile) HasProfessionalProfile() bool {
	return strings.TrimSpace(p.LinkedinProfile) != ""
}

func (p *Profile) PrefersCountry(country string) bool {
	for _, c := range p.PreferredCountries {
		if c == country {
			return true
		}
	}
	return false
}
