package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"readiness-workers/internal/common/cache"
	"readiness-workers/internal/common/config"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/models"
)

// ==========================
// Test doubles
// ==========================

type stubFetcher struct {
	platform models.Platform
	stats    models.PlatformStats
	err      error
	delay    time.Duration
	calls    int32
}

func (f *stubFetcher) Platform() models.Platform { return f.platform }

func (f *stubFetcher) Fetch(ctx context.Context, username string, _ *models.Profile) (models.PlatformStats, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		// ignores ctx on purpose
		time.Sleep(f.delay)
	}
	return f.stats, f.err
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func (m *mockCache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// stallingCache blocks every call until its context is done.
type stallingCache struct {
	calls int32
}

func (c *stallingCache) Get(ctx context.Context, _ string) ([]byte, error) {
	atomic.AddInt32(&c.calls, 1)
	<-ctx.Done()
	return nil, ctx.Err()
}

func (c *stallingCache) Put(ctx context.Context, _ string, _ []byte, _ time.Duration) error {
	atomic.AddInt32(&c.calls, 1)
	<-ctx.Done()
	return ctx.Err()
}

func (c *stallingCache) Delete(ctx context.Context, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// ==========================
// Provider.Fetch
// ==========================

func TestProvider_FetchAggregatesSlots(t *testing.T) {
	lc := &stubFetcher{platform: models.PlatformLeetCode, stats: &models.LeetCodeStats{ProblemsSolved: 250, ContestRating: 1700}}
	gh := &stubFetcher{platform: models.PlatformGitHub, stats: &models.GitHubStats{Repositories: 12, Followers: 30}}
	cf := &stubFetcher{platform: models.PlatformCodeforces, stats: &models.CodeforcesStats{Rating: 1500}}

	p := NewProvider([]Fetcher{lc, gh, cf}, Options{}, logger.NewTestLogger(t))

	profile := &models.Profile{LeetcodeUsername: "alice", GithubUsername: "alice-gh", CGPA: 8}
	got := p.Fetch(context.Background(), profile)

	assert.Equal(t, 250, got.LeetCode.ProblemsSolved)
	assert.Equal(t, 12, got.GitHub.Repositories)
	// no codeforces username, so no lookup
	assert.Zero(t, got.Codeforces.Rating)
	assert.Equal(t, int32(0), atomic.LoadInt32(&cf.calls))
}

func TestProvider_FailuresLeaveZeros(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *stubFetcher
	}{
		{"error", &stubFetcher{platform: models.PlatformLeetCode, err: fmt.Errorf("503 from upstream")}},
		{"nil stats", &stubFetcher{platform: models.PlatformLeetCode}},
		{"timeout", &stubFetcher{
			platform: models.PlatformLeetCode,
			stats:    &models.LeetCodeStats{ProblemsSolved: 999},
			delay:    300 * time.Millisecond,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gh := &stubFetcher{platform: models.PlatformGitHub, stats: &models.GitHubStats{Repositories: 7}}
			p := NewProvider([]Fetcher{tt.fetcher, gh}, Options{LookupTimeout: 30 * time.Millisecond}, logger.NewTestLogger(t))

			start := time.Now()
			got := p.Fetch(context.Background(), &models.Profile{LeetcodeUsername: "bob", GithubUsername: "bob"})

			assert.Less(t, time.Since(start), 250*time.Millisecond)
			assert.Zero(t, got.LeetCode.ProblemsSolved)
			assert.Equal(t, 7, got.GitHub.Repositories)
		})
	}
}

func TestProvider_NilProfile(t *testing.T) {
	p := NewProvider(SeededFetchers(1), Options{}, logger.NewNoOpLogger())
	assert.Equal(t, &models.PlatformMetrics{}, p.Fetch(context.Background(), nil))
}

func TestProvider_CacheHitSkipsFetcher(t *testing.T) {
	mem := cache.NewMemoryCache(fixedClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	raw, err := json.Marshal(&models.LeetCodeStats{ProblemsSolved: 42})
	require.NoError(t, err)
	require.NoError(t, mem.Put(context.Background(), "platform:default:leetcode:alice", raw, time.Hour))

	lc := &stubFetcher{platform: models.PlatformLeetCode, stats: &models.LeetCodeStats{ProblemsSolved: 1}}
	p := NewProvider([]Fetcher{lc}, Options{Cache: mem}, logger.NewTestLogger(t))

	got := p.Fetch(context.Background(), &models.Profile{LeetcodeUsername: "Alice"})
	assert.Equal(t, 42, got.LeetCode.ProblemsSolved)
	assert.Equal(t, int32(0), atomic.LoadInt32(&lc.calls))
}

func TestProvider_CacheMissStoresResult(t *testing.T) {
	mem := cache.NewMemoryCache(fixedClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	gh := &stubFetcher{platform: models.PlatformGitHub, stats: &models.GitHubStats{Repositories: 9, Languages: []string{"Go"}}}
	p := NewProvider([]Fetcher{gh}, Options{Cache: mem}, logger.NewTestLogger(t))

	profile := &models.Profile{GithubUsername: "Carol"}
	first := p.Fetch(context.Background(), profile)
	second := p.Fetch(context.Background(), profile)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&gh.calls))

	raw, err := mem.Get(context.Background(), "platform:default:github:carol")
	require.NoError(t, err)
	assert.JSONEq(t, `{"repositories":9,"contributions":0,"followers":0,"languages":["Go"]}`, string(raw))
}

func TestProvider_CacheErrorsAreIgnored(t *testing.T) {
	c := &mockCache{}
	c.On("Get", mock.Anything, "platform:default:leetcode:dave").Return(nil, fmt.Errorf("connection refused"))
	c.On("Put", mock.Anything, "platform:default:leetcode:dave", mock.Anything, time.Hour).Return(fmt.Errorf("connection refused"))

	lc := &stubFetcher{platform: models.PlatformLeetCode, stats: &models.LeetCodeStats{ProblemsSolved: 120}}
	p := NewProvider([]Fetcher{lc}, Options{Cache: c}, logger.NewTestLogger(t))

	got := p.Fetch(context.Background(), &models.Profile{LeetcodeUsername: "dave"})
	assert.Equal(t, 120, got.LeetCode.ProblemsSolved)
	c.AssertExpectations(t)
}

func TestProvider_StalledCacheDoesNotBlockLookup(t *testing.T) {
	c := &stallingCache{}
	gh := &stubFetcher{platform: models.PlatformGitHub, stats: &models.GitHubStats{Repositories: 14}}
	p := NewProvider([]Fetcher{gh}, Options{Cache: c, LookupTimeout: 50 * time.Millisecond}, logger.NewTestLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	got := p.Fetch(ctx, &models.Profile{GithubUsername: "grace"})

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, 14, got.GitHub.Repositories)
	assert.Equal(t, int32(2), atomic.LoadInt32(&c.calls))
	assert.NoError(t, ctx.Err())
}

func TestProvider_UndecodableCacheEntryRefetches(t *testing.T) {
	c := &mockCache{}
	c.On("Get", mock.Anything, "platform:default:codeforces:erin").Return([]byte("not json"), nil)
	c.On("Put", mock.Anything, "platform:default:codeforces:erin", mock.Anything, 2*time.Hour).Return(nil)

	cf := &stubFetcher{platform: models.PlatformCodeforces, stats: &models.CodeforcesStats{Rating: 1800}}
	p := NewProvider([]Fetcher{cf}, Options{Cache: c, CacheTTL: 2 * time.Hour}, logger.NewTestLogger(t))

	got := p.Fetch(context.Background(), &models.Profile{CodeforcesUsername: "erin"})
	assert.Equal(t, 1800, got.Codeforces.Rating)
	c.AssertExpectations(t)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "platform:network:github:octocat", CacheKey("network", models.PlatformGitHub, " OctoCat "))
}

// ==========================
// NewProviderForMode
// ==========================

func TestNewProviderForMode(t *testing.T) {
	seeded, err := NewProviderForMode(config.PlatformsConfig{Mode: config.PlatformModeSeeded, Seed: 7}, nil, logger.NewNoOpLogger())
	require.NoError(t, err)
	assert.Equal(t, models.Platforms, seeded.Platforms())

	network, err := NewProviderForMode(config.PlatformsConfig{Mode: config.PlatformModeNetwork}, nil, logger.NewNoOpLogger())
	require.NoError(t, err)
	assert.Equal(t, []models.Platform{models.PlatformLeetCode, models.PlatformCodeforces, models.PlatformGitHub}, network.Platforms())

	_, err = NewProviderForMode(config.PlatformsConfig{Mode: "mixed"}, nil, logger.NewNoOpLogger())
	assert.Error(t, err)
}

func TestNewProviderForMode_ModesDoNotShareCacheEntries(t *testing.T) {
	mem := cache.NewMemoryCache(cache.SystemClock())
	profile := &models.Profile{GithubUsername: "heidi"}

	seeded, err := NewProviderForMode(config.PlatformsConfig{Mode: config.PlatformModeSeeded, Seed: 3, CacheEnabled: true}, mem, logger.NewNoOpLogger())
	require.NoError(t, err)
	fake := seeded.Fetch(context.Background(), profile)
	require.NotZero(t, fake.GitHub.Repositories)

	_, err = mem.Get(context.Background(), CacheKey("seeded-3", models.PlatformGitHub, "heidi"))
	require.NoError(t, err)

	// a network-family provider over the same cache must reach its fetcher
	gh := &stubFetcher{platform: models.PlatformGitHub, stats: &models.GitHubStats{Repositories: fake.GitHub.Repositories + 1}}
	network := NewProvider([]Fetcher{gh}, Options{Cache: mem, CacheNamespace: config.PlatformModeNetwork}, logger.NewNoOpLogger())
	live := network.Fetch(context.Background(), profile)

	assert.Equal(t, int32(1), atomic.LoadInt32(&gh.calls))
	assert.Equal(t, fake.GitHub.Repositories+1, live.GitHub.Repositories)

	// a different seed is a different namespace too
	reseeded, err := NewProviderForMode(config.PlatformsConfig{Mode: config.PlatformModeSeeded, Seed: 4, CacheEnabled: true}, mem, logger.NewNoOpLogger())
	require.NoError(t, err)
	reseeded.Fetch(context.Background(), profile)
	_, err = mem.Get(context.Background(), CacheKey("seeded-4", models.PlatformGitHub, "heidi"))
	assert.NoError(t, err)
}

func TestNewProviderForMode_CacheOnlyWhenEnabled(t *testing.T) {
	mem := cache.NewMemoryCache(cache.SystemClock())

	off, err := NewProviderForMode(config.PlatformsConfig{Mode: config.PlatformModeSeeded}, mem, logger.NewNoOpLogger())
	require.NoError(t, err)
	off.Fetch(context.Background(), &models.Profile{GithubUsername: "frank"})
	assert.Zero(t, mem.Len())

	on, err := NewProviderForMode(config.PlatformsConfig{Mode: config.PlatformModeSeeded, CacheEnabled: true, CacheTTL: 60}, mem, logger.NewNoOpLogger())
	require.NoError(t, err)
	on.Fetch(context.Background(), &models.Profile{GithubUsername: "frank"})
	assert.Equal(t, 1, mem.Len())
}
