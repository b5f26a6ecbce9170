package platform

import (
	"context"
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"

	"readiness-workers/internal/models"
)

// SeededFetchers returns one deterministic fetcher per platform. Every value
// is derived from a hash of (seed, platform, username), so the same profile
// always yields the same metrics. Intended for demos and tests.
func SeededFetchers(seed uint64) []Fetcher {
	out := make([]Fetcher, len(models.Platforms))
	for i, p := range models.Platforms {
		out[i] = &seededFetcher{platform: p, seed: seed}
	}
	return out
}

type seededFetcher struct {
	platform models.Platform
	seed     uint64
}

func (f *seededFetcher) Platform() models.Platform { return f.platform }

func (f *seededFetcher) Fetch(ctx context.Context, username string, profile *models.Profile) (models.PlatformStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := newStream(f.seed, f.platform, username)

	switch f.platform {
	case models.PlatformLeetCode:
		return &models.LeetCodeStats{
			ProblemsSolved:       s.between(100, 500),
			ContestRating:        s.between(1200, 1000),
			ContestsParticipated: s.between(5, 20),
		}, nil
	case models.PlatformCodeforces:
		return &models.CodeforcesStats{
			Rating:               s.between(1200, 800),
			MaxRating:            s.between(1300, 900),
			ContestsParticipated: s.between(10, 30),
		}, nil
	case models.PlatformCodeChef:
		return &models.CodeChefStats{
			Rating:               s.between(1400, 600),
			Stars:                s.between(2, 5),
			ContestsParticipated: s.between(8, 25),
		}, nil
	case models.PlatformGitHub:
		return &models.GitHubStats{
			Repositories:  s.between(10, 50),
			Contributions: s.between(200, 1000),
			Followers:     s.between(5, 100),
			Languages:     []string{"JavaScript", "Python", "Java", "C++", "React"},
		}, nil
	case models.PlatformHackerRank:
		return &models.HackerRankStats{
			ProblemsSolved: s.between(50, 200),
			Badges:         s.between(3, 15),
			Certifications: s.between(1, 5),
		}, nil
	case models.PlatformLinkedIn:
		skills := make([]string, 0, len(profile.Skills)+3)
		skills = append(skills, profile.Skills...)
		skills = append(skills, "Leadership", "Communication", "Project Management")
		return &models.LinkedInStats{
			Connections:     s.between(100, 500),
			Endorsements:    s.between(10, 50),
			Recommendations: s.between(2, 10),
			Experience:      []string{"Software Developer", "Intern", "Freelancer"},
			Education:       []string{"Computer Science", "Engineering"},
			Certifications:  []string{"AWS", "Google Cloud", "Microsoft Azure"},
			Skills:          skills,
		}, nil
	}
	return models.NewPlatformStats(f.platform)
}

// stream is a hash chain: each value is the xxhash of the previous one.
type stream struct {
	state uint64
}

func newStream(seed uint64, platform models.Platform, username string) *stream {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(string(platform))
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(strings.ToLower(strings.TrimSpace(username)))
	return &stream{state: d.Sum64()}
}

func (s *stream) next() uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], s.state)
	s.state = xxhash.Sum64(buf[:])
	return s.state
}

// between returns a value in [base, base+span).
func (s *stream) between(base, span int) int {
	return base + int(s.next()%uint64(span))
}
