// internal/workers/readiness/save-analysis/config.go
package saveanalysis

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
