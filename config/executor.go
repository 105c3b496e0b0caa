package config

import (
	"strings"
	"time"
)

// ExecutorConfig points at the browser automation sidecar.
type ExecutorConfig struct {
	BaseURL    string        `env:"BASE_URL" envDefault:"http://127.0.0.1:9222"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"90s"`
	RetryLimit int           `env:"RETRY_LIMIT" envDefault:"2"`
	AuthToken  string        `env:"AUTH_TOKEN"`
}

// Sanitize applies guardrails to executor settings.
func (c *ExecutorConfig) Sanitize() {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.Timeout <= 0 {
		c.Timeout = 90 * time.Second
	}
	if c.RetryLimit < 0 {
		c.RetryLimit = 0
	}
	c.AuthToken = strings.TrimSpace(c.AuthToken)
}
