// Package platform gathers per-platform activity for a profile. Lookups run
// concurrently, each bounded by a timeout; a failed or slow platform simply
// contributes zero metrics.
package platform

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"readiness-workers/internal/common/cache"
	"readiness-workers/internal/common/errors"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/metrics"
	"readiness-workers/internal/models"
)

const (
	DefaultLookupTimeout = 10 * time.Second
	// DefaultCacheTimeout bounds each cache read and write.
	DefaultCacheTimeout = 100 * time.Millisecond
)

// DataProvider returns the platform metrics for a profile. It never fails;
// missing data is reported as zeros.
type DataProvider interface {
	Fetch(ctx context.Context, profile *models.Profile) *models.PlatformMetrics
}

// Fetcher looks up one platform.
type Fetcher interface {
	Platform() models.Platform
	Fetch(ctx context.Context, username string, profile *models.Profile) (models.PlatformStats, error)
}

type Options struct {
	LookupTimeout time.Duration
	Cache         cache.Cache // nil disables caching
	CacheTTL      time.Duration
	CacheTimeout  time.Duration
	// CacheNamespace separates entries written by different fetcher families.
	CacheNamespace string
}

// Provider fans a profile out to its fetchers.
type Provider struct {
	fetchers     []Fetcher
	timeout      time.Duration
	cache        cache.Cache
	cacheTTL     time.Duration
	cacheTimeout time.Duration
	namespace    string
	log          logger.Logger
}

func NewProvider(fetchers []Fetcher, opts Options, log logger.Logger) *Provider {
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = DefaultLookupTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = cache.DefaultTTL
	}
	if opts.CacheTimeout <= 0 {
		opts.CacheTimeout = DefaultCacheTimeout
	}
	if opts.CacheTimeout > opts.LookupTimeout {
		opts.CacheTimeout = opts.LookupTimeout
	}
	if opts.CacheNamespace == "" {
		opts.CacheNamespace = DefaultCacheNamespace
	}
	return &Provider{
		fetchers:     fetchers,
		timeout:      opts.LookupTimeout,
		cache:        opts.Cache,
		cacheTTL:     opts.CacheTTL,
		cacheTimeout: opts.CacheTimeout,
		namespace:    opts.CacheNamespace,
		log:          log.WithFields(map[string]interface{}{"component": "platform-provider"}),
	}
}

// Platforms lists the platforms this provider can look up.
func (p *Provider) Platforms() []models.Platform {
	out := make([]models.Platform, len(p.fetchers))
	for i, f := range p.fetchers {
		out[i] = f.Platform()
	}
	return out
}

// Fetch runs one lookup per platform the profile has a username for.
func (p *Provider) Fetch(ctx context.Context, profile *models.Profile) *models.PlatformMetrics {
	result := &models.PlatformMetrics{}
	if profile == nil {
		return result
	}

	results := make(chan models.PlatformStats, len(p.fetchers))
	var wg sync.WaitGroup

	for _, f := range p.fetchers {
		username := profile.Username(f.Platform())
		if username == "" {
			continue
		}

		wg.Add(1)
		go func(f Fetcher, username string) {
			defer wg.Done()
			if stats := p.lookup(ctx, f, username, profile); stats != nil {
				results <- stats
			}
		}(f, username)
	}

	wg.Wait()
	close(results)

	for stats := range results {
		result.Apply(stats)
	}
	return result
}

func (p *Provider) lookup(ctx context.Context, f Fetcher, username string, profile *models.Profile) models.PlatformStats {
	platform := f.Platform()
	key := CacheKey(p.namespace, platform, username)

	if stats := p.cached(ctx, platform, key); stats != nil {
		metrics.PlatformFetches.WithLabelValues(string(platform), "cached").Inc()
		return stats
	}

	stats, err := p.fetchWithTimeout(ctx, f, username, profile)
	if err != nil {
		outcome := "error"
		if stderrors.Is(err, context.DeadlineExceeded) {
			outcome = "timeout"
		}
		metrics.PlatformFetches.WithLabelValues(string(platform), outcome).Inc()
		p.log.Warn("platform lookup failed, using zero metrics", map[string]interface{}{
			"platform": string(platform),
			"username": username,
			"error":    errors.NewPlatformDataUnavailableError(string(platform), err),
		})
		return nil
	}

	metrics.PlatformFetches.WithLabelValues(string(platform), "ok").Inc()
	p.store(ctx, key, stats)
	return stats
}

// fetchWithTimeout waits at most p.timeout even for a fetcher that ignores
// its context.
func (p *Provider) fetchWithTimeout(ctx context.Context, f Fetcher, username string, profile *models.Profile) (models.PlatformStats, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type outcome struct {
		stats models.PlatformStats
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		stats, err := f.Fetch(lookupCtx, username, profile)
		done <- outcome{stats: stats, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			return nil, o.err
		}
		if o.stats == nil {
			return nil, fmt.Errorf("no data returned")
		}
		return o.stats, nil
	case <-lookupCtx.Done():
		return nil, lookupCtx.Err()
	}
}

func (p *Provider) cached(ctx context.Context, platform models.Platform, key string) models.PlatformStats {
	if p.cache == nil {
		return nil
	}

	var raw []byte
	err := p.withCacheTimeout(ctx, func(cctx context.Context) error {
		var err error
		raw, err = p.cache.Get(cctx, key)
		return err
	})
	if err != nil {
		if stderrors.Is(err, cache.ErrNotFound) {
			metrics.PlatformCacheLookups.WithLabelValues("miss").Inc()
		} else {
			metrics.PlatformCacheLookups.WithLabelValues("error").Inc()
			p.log.Debug("platform cache read failed", map[string]interface{}{
				"key":   key,
				"error": errors.NewCacheUnavailableError(err),
			})
		}
		return nil
	}

	stats, err := models.NewPlatformStats(platform)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(raw, stats); err != nil {
		metrics.PlatformCacheLookups.WithLabelValues("error").Inc()
		p.log.Debug("discarding undecodable cache entry", map[string]interface{}{"key": key, "error": err})
		return nil
	}

	metrics.PlatformCacheLookups.WithLabelValues("hit").Inc()
	return stats
}

func (p *Provider) store(ctx context.Context, key string, stats models.PlatformStats) {
	if p.cache == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	err = p.withCacheTimeout(ctx, func(cctx context.Context) error {
		return p.cache.Put(cctx, key, raw, p.cacheTTL)
	})
	if err != nil {
		p.log.Debug("platform cache write failed", map[string]interface{}{
			"key":   key,
			"error": errors.NewCacheUnavailableError(err),
		})
	}
}

// withCacheTimeout gives a cache call at most p.cacheTimeout. A cache that
// ignores its context is abandoned rather than waited on.
func (p *Provider) withCacheTimeout(ctx context.Context, op func(context.Context) error) error {
	cctx, cancel := context.WithTimeout(ctx, p.cacheTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- op(cctx) }()

	select {
	case err := <-done:
		return err
	case <-cctx.Done():
		return cctx.Err()
	}
}

const DefaultCacheNamespace = "default"

// CacheKey is platform:<namespace>:<platform>:<lowercased username>.
func CacheKey(namespace string, platform models.Platform, username string) string {
	return fmt.Sprintf("platform:%s:%s:%s", namespace, platform, strings.ToLower(strings.TrimSpace(username)))
}
