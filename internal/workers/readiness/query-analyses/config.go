// internal/workers/readiness/query-analyses/config.go
package queryanalyses

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
