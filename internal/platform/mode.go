package platform

import (
	"fmt"
	"time"

	"readiness-workers/internal/common/cache"
	"readiness-workers/internal/common/config"
	"readiness-workers/internal/common/logger"
)

// NewProviderForMode builds a provider with exactly one fetcher family.
// c may be nil.
func NewProviderForMode(cfg config.PlatformsConfig, c cache.Cache, log logger.Logger) (*Provider, error) {
	timeout := config.GetDuration(cfg.LookupTimeout)

	var (
		fetchers  []Fetcher
		namespace string
	)
	switch cfg.Mode {
	case config.PlatformModeSeeded, "":
		fetchers = SeededFetchers(cfg.Seed)
		namespace = fmt.Sprintf("%s-%d", config.PlatformModeSeeded, cfg.Seed)
	case config.PlatformModeNetwork:
		namespace = config.PlatformModeNetwork
		fetchers = NetworkFetchers(NetworkConfig{
			Timeout:       timeout,
			LeetCodeURL:   cfg.LeetCodeURL,
			CodeforcesURL: cfg.CodeforcesURL,
			GitHubURL:     cfg.GitHubBaseURL,
			GitHubToken:   cfg.GitHubToken,
		})
	default:
		return nil, fmt.Errorf("unknown platform mode %q", cfg.Mode)
	}

	opts := Options{
		LookupTimeout:  timeout,
		CacheTTL:       time.Duration(cfg.CacheTTL) * time.Second,
		CacheNamespace: namespace,
	}
	if cfg.CacheEnabled {
		opts.Cache = c
	}

	log.Info("platform provider configured", map[string]interface{}{
		"mode":         cfg.Mode,
		"platforms":    len(fetchers),
		"cacheEnabled": opts.Cache != nil,
		"cacheSpace":   namespace,
	})
	return NewProvider(fetchers, opts, log), nil
}
