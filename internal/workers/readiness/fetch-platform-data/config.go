// internal/workers/readiness/fetch-platform-data/config.go
package fetchplatformdata

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
