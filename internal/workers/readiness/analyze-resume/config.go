// internal/workers/readiness/analyze-resume/config.go
package analyzeresume

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
