package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"readiness-workers/internal/common/http"
	"readiness-workers/internal/models"
)

const (
	DefaultLeetCodeURL   = "https://leetcode.com/graphql"
	DefaultCodeforcesURL = "https://codeforces.com/api"
	DefaultGitHubURL     = "https://api.github.com"
)

// NetworkConfig configures the public-API fetchers.
type NetworkConfig struct {
	Timeout       time.Duration
	LeetCodeURL   string
	CodeforcesURL string
	GitHubURL     string
	GitHubToken   string
}

// NetworkFetchers returns the fetchers for platforms with a public API.
// CodeChef, HackerRank and LinkedIn are not covered and stay zero.
func NetworkFetchers(cfg NetworkConfig) []Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultLookupTimeout
	}
	client := http.NewClient(cfg.Timeout)

	return []Fetcher{
		NewLeetCodeFetcher(client, cfg.LeetCodeURL),
		NewCodeforcesFetcher(client, cfg.CodeforcesURL),
		NewGitHubFetcher(client, cfg.GitHubURL, cfg.GitHubToken),
	}
}

// ==========================
// LeetCode
// ==========================

const leetCodeQuery = `query userStats($username: String!) {
  matchedUser(username: $username) {
    submitStats: submitStatsGlobal {
      acSubmissionNum { difficulty count }
    }
    profile { ranking }
  }
  userContestRanking(username: $username) {
    attendedContestsCount
    rating
  }
}`

type leetCodeResponse struct {
	Data struct {
		MatchedUser *struct {
			SubmitStats struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStats"`
		} `json:"matchedUser"`
		UserContestRanking *struct {
			AttendedContestsCount int     `json:"attendedContestsCount"`
			Rating                float64 `json:"rating"`
		} `json:"userContestRanking"`
	} `json:"data"`
}

type LeetCodeFetcher struct {
	client   *http.Client
	endpoint string
}

func NewLeetCodeFetcher(client *http.Client, endpoint string) *LeetCodeFetcher {
	if endpoint == "" {
		endpoint = DefaultLeetCodeURL
	}
	return &LeetCodeFetcher{client: client, endpoint: endpoint}
}

func (f *LeetCodeFetcher) Platform() models.Platform { return models.PlatformLeetCode }

func (f *LeetCodeFetcher) Fetch(ctx context.Context, username string, _ *models.Profile) (models.PlatformStats, error) {
	body := map[string]interface{}{
		"query":     leetCodeQuery,
		"variables": map[string]string{"username": username},
	}

	var resp leetCodeResponse
	if err := f.client.PostJSON(ctx, f.endpoint, body, &resp); err != nil {
		return nil, fmt.Errorf("leetcode query: %w", err)
	}
	if resp.Data.MatchedUser == nil {
		return nil, fmt.Errorf("leetcode user %q not found", username)
	}

	stats := &models.LeetCodeStats{}
	for _, n := range resp.Data.MatchedUser.SubmitStats.AcSubmissionNum {
		if n.Difficulty == "All" {
			stats.ProblemsSolved = n.Count
		}
	}
	if r := resp.Data.UserContestRanking; r != nil {
		stats.ContestRating = int(r.Rating + 0.5)
		stats.ContestsParticipated = r.AttendedContestsCount
	}
	return stats, nil
}

// ==========================
// Codeforces
// ==========================

type codeforcesResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Result  []struct {
		Rating    int `json:"rating"`
		MaxRating int `json:"maxRating"`
	} `json:"result"`
}

type codeforcesRatingResponse struct {
	Status string            `json:"status"`
	Result []struct {
		ContestID int `json:"contestId"`
	} `json:"result"`
}

type CodeforcesFetcher struct {
	client  *http.Client
	baseURL string
}

func NewCodeforcesFetcher(client *http.Client, baseURL string) *CodeforcesFetcher {
	if baseURL == "" {
		baseURL = DefaultCodeforcesURL
	}
	return &CodeforcesFetcher{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (f *CodeforcesFetcher) Platform() models.Platform { return models.PlatformCodeforces }

func (f *CodeforcesFetcher) Fetch(ctx context.Context, username string, _ *models.Profile) (models.PlatformStats, error) {
	var info codeforcesResponse
	infoURL := fmt.Sprintf("%s/user.info?handles=%s", f.baseURL, url.QueryEscape(username))
	if err := f.client.GetJSON(ctx, infoURL, &info); err != nil {
		return nil, fmt.Errorf("codeforces user.info: %w", err)
	}
	if info.Status != "OK" || len(info.Result) == 0 {
		return nil, fmt.Errorf("codeforces user.info status %s: %s", info.Status, info.Comment)
	}

	stats := &models.CodeforcesStats{
		Rating:    info.Result[0].Rating,
		MaxRating: info.Result[0].MaxRating,
	}

	// Contest history is optional; a failure keeps the ratings.
	var history codeforcesRatingResponse
	historyURL := fmt.Sprintf("%s/user.rating?handle=%s", f.baseURL, url.QueryEscape(username))
	if err := f.client.GetJSON(ctx, historyURL, &history); err == nil && history.Status == "OK" {
		stats.ContestsParticipated = len(history.Result)
	}
	return stats, nil
}

// ==========================
// GitHub
// ==========================

type gitHubUser struct {
	PublicRepos int `json:"public_repos"`
	Followers   int `json:"followers"`
}

type gitHubRepo struct {
	Language string `json:"language"`
	Fork     bool   `json:"fork"`
}

type GitHubFetcher struct {
	client  *http.Client
	baseURL string
}

func NewGitHubFetcher(client *http.Client, baseURL, token string) *GitHubFetcher {
	if baseURL == "" {
		baseURL = DefaultGitHubURL
	}
	client = client.WithHeader("Accept", "application/vnd.github.v3+json")
	if token != "" {
		client = client.WithHeader("Authorization", "Bearer "+token)
	}
	return &GitHubFetcher{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (f *GitHubFetcher) Platform() models.Platform { return models.PlatformGitHub }

func (f *GitHubFetcher) Fetch(ctx context.Context, username string, _ *models.Profile) (models.PlatformStats, error) {
	user := url.PathEscape(username)

	var u gitHubUser
	if err := f.client.GetJSON(ctx, fmt.Sprintf("%s/users/%s", f.baseURL, user), &u); err != nil {
		return nil, fmt.Errorf("github user: %w", err)
	}

	stats := &models.GitHubStats{
		Repositories: u.PublicRepos,
		Followers:    u.Followers,
	}

	var repos []gitHubRepo
	if err := f.client.GetJSON(ctx, fmt.Sprintf("%s/users/%s/repos?per_page=100", f.baseURL, user), &repos); err == nil {
		stats.Languages = repoLanguages(repos)
	}
	return stats, nil
}

// repoLanguages lists the distinct languages of non-fork repos in first-seen order.
func repoLanguages(repos []gitHubRepo) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range repos {
		if r.Fork || r.Language == "" || seen[r.Language] {
			continue
		}
		seen[r.Language] = true
		out = append(out, r.Language)
	}
	return out
}
