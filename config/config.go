package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - state.go: profile path, state directory, history archive
//   - engine.go: pacing, scoring, and cycle configuration
//   - sources.go: platform source adapters
//   - executor.go: browser automation sidecar
//   - observability.go: metrics and cycle report notifications
type AppConfig struct {
	// IsDev controls development mode behavior (verbose logging, relaxed
	// pacing floors). Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	State    StateConfig    `envPrefix:"STATE_"`
	Engine   EngineConfig   `envPrefix:"ENGINE_"`
	Sources  SourcesConfig  `envPrefix:"SOURCES_"`
	Executor ExecutorConfig `envPrefix:"EXECUTOR_"`

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment
// variables.
func (c *AppConfig) Sanitize() {
	c.State.Sanitize()
	c.Engine.Sanitize()
	c.Sources.Sanitize()
	c.Executor.Sanitize()
	c.Observability.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks the APP_ENV variable as a fallback for DEV.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		appEnv := strings.ToLower(os.Getenv("APP_ENV"))
		c.IsDev = appEnv == "development" || appEnv == "dev"
	}
}
