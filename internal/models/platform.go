// internal/models/platform.go
package models

import "fmt"

// Platform names an external activity source.
type Platform string

const (
	PlatformLeetCode   Platform = "leetcode"
	PlatformCodeforces Platform = "codeforces"
	PlatformCodeChef   Platform = "codechef"
	PlatformGitHub     Platform = "github"
	PlatformHackerRank Platform = "hackerrank"
	PlatformLinkedIn   Platform = "linkedin"
)

// Platforms lists every platform in a fixed order.
var Platforms = []Platform{
	PlatformLeetCode,
	PlatformCodeforces,
	PlatformCodeChef,
	PlatformGitHub,
	PlatformHackerRank,
	PlatformLinkedIn,
}

type LeetCodeStats struct {
	ProblemsSolved       int `json:"problemsSolved"`
	ContestRating        int `json:"contestRating"`
	ContestsParticipated int `json:"contestsParticipated"`
}

type CodeforcesStats struct {
	Rating               int `json:"rating"`
	MaxRating            int `json:"maxRating"`
	ContestsParticipated int `json:"contestsParticipated"`
}

type CodeChefStats struct {
	Rating               int `json:"rating"`
	Stars                int `json:"stars"`
	ContestsParticipated int `json:"contestsParticipated"`
}

type GitHubStats struct {
	Repositories  int      `json:"repositories"`
	Contributions int      `json:"contributions"`
	Followers     int      `json:"followers"`
	Languages     []string `json:"languages"`
}

type HackerRankStats struct {
	ProblemsSolved int `json:"problemsSolved"`
	Badges         int `json:"badges"`
	Certifications int `json:"certifications"`
}

type LinkedInStats struct {
	Connections     int      `json:"connections"`
	Endorsements    int      `json:"endorsements"`
	Recommendations int      `json:"recommendations"`
	Experience      []string `json:"experience"`
	Education       []string `json:"education"`
	Certifications  []string `json:"certifications"`
	Skills          []string `json:"skills"`
}

// PlatformStats is one slot of PlatformMetrics.
type PlatformStats interface {
	Platform() Platform
}

func (*LeetCodeStats) Platform() Platform   { return PlatformLeetCode }
func (*CodeforcesStats) Platform() Platform { return PlatformCodeforces }
func (*CodeChefStats) Platform() Platform   { return PlatformCodeChef }
func (*GitHubStats) Platform() Platform     { return PlatformGitHub }
func (*HackerRankStats) Platform() Platform { return PlatformHackerRank }
func (*LinkedInStats) Platform() Platform   { return PlatformLinkedIn }

// NewPlatformStats returns an empty slot for platform, ready to be decoded into.
func NewPlatformStats(platform Platform) (PlatformStats, error) {
	switch platform {
	case PlatformLeetCode:
		return &LeetCodeStats{}, nil
	case PlatformCodeforces:
		return &CodeforcesStats{}, nil
	case PlatformCodeChef:
		return &CodeChefStats{}, nil
	case PlatformGitHub:
		return &GitHubStats{}, nil
	case PlatformHackerRank:
		return &HackerRankStats{}, nil
	case PlatformLinkedIn:
		return &LinkedInStats{}, nil
	}
	return nil, fmt.Errorf("unknown platform %q", platform)
}

// PlatformMetrics aggregates per-platform activity. Absent platforms stay zero.
type PlatformMetrics struct {
	LeetCode   LeetCodeStats   `json:"leetcode"`
	Codeforces CodeforcesStats `json:"codeforces"`
	CodeChef   CodeChefStats   `json:"codechef"`
	GitHub     GitHubStats     `json:"github"`
	HackerRank HackerRankStats `json:"hackerrank"`
	LinkedIn   LinkedInStats   `json:"linkedin"`
}

// Apply copies stats into the matching slot. A nil value is ignored.
func (m *PlatformMetrics) Apply(stats PlatformStats) {
	switch s := stats.(type) {
	case *LeetCodeStats:
		if s != nil {
			m.LeetCode = *s
		}
	case *CodeforcesStats:
		if s != nil {
			m.Codeforces = *s
		}
	case *CodeChefStats:
		if s != nil {
			m.CodeChef = *s
		}
	case *GitHubStats:
		if s != nil {
			m.GitHub = *s
		}
	case *HackerRankStats:
		if s != nil {
			m.HackerRank = *s
		}
	case *LinkedInStats:
		if s != nil {
			m.LinkedIn = *s
		}
	}
}

// Stats returns a copy of the slot for platform.
func (m *PlatformMetrics) Stats(platform Platform) PlatformStats {
	switch platform {
	case PlatformLeetCode:
		s := m.LeetCode
		return &s
	case PlatformCodeforces:
		s := m.Codeforces
		return &s
	case PlatformCodeChef:
		s := m.CodeChef
		return &s
	case PlatformGitHub:
		s := m.GitHub
		return &s
	case PlatformHackerRank:
		s := m.HackerRank
		return &s
	case PlatformLinkedIn:
		s := m.LinkedIn
		return &s
	}
	return nil
}
