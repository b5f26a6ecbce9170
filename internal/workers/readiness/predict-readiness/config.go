// internal/workers/readiness/predict-readiness/config.go
package predictreadiness

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
