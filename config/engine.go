package config

import "time"

// EngineConfig tunes pacing, scoring, and cycle behaviour.
type EngineConfig struct {
	// ScoreFloor is the minimum overall score a posting needs to enter
	// the attempt queue.
	ScoreFloor float64 `env:"SCORE_FLOOR" envDefault:"70"`

	// CheckpointEvery flushes state after this many successful
	// applications within one cycle.
	CheckpointEvery int `env:"CHECKPOINT_EVERY" envDefault:"10"`

	// MaxAttempts bounds cross-cycle retries per posting.
	MaxAttempts int `env:"MAX_ATTEMPTS" envDefault:"5"`

	// Interval is the wait between cycles in loop mode.
	Interval time.Duration `env:"INTERVAL" envDefault:"30m"`

	// Once runs a single cycle and exits.
	Once bool `env:"ONCE" envDefault:"false"`

	Pacing PacingConfig `envPrefix:"PACING_"`
}

// Sanitize applies guardrails to engine values.
func (c *EngineConfig) Sanitize() {
	if c.ScoreFloor <= 0 || c.ScoreFloor > 100 {
		c.ScoreFloor = 70
	}
	if c.CheckpointEvery <= 0 {
		c.CheckpointEvery = 10
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.Interval < time.Minute {
		c.Interval = 30 * time.Minute
	}
	c.Pacing.Sanitize()
}

// PacingConfig tunes the admission controller.
type PacingConfig struct {
	BusinessMin time.Duration `env:"BUSINESS_MIN" envDefault:"15s"`
	BusinessMax time.Duration `env:"BUSINESS_MAX" envDefault:"25s"`
	EveningMin  time.Duration `env:"EVENING_MIN"  envDefault:"10s"`
	EveningMax  time.Duration `env:"EVENING_MAX"  envDefault:"20s"`
	NightMin    time.Duration `env:"NIGHT_MIN"    envDefault:"8s"`
	NightMax    time.Duration `env:"NIGHT_MAX"    envDefault:"18s"`

	Adaptive bool `env:"ADAPTIVE" envDefault:"true"`

	MaxPerCycle int `env:"MAX_PER_CYCLE" envDefault:"60"`
	MaxPerHour  int `env:"MAX_PER_HOUR"  envDefault:"12"`

	MinDelay time.Duration `env:"MIN_DELAY" envDefault:"5s"`
}

// Sanitize enforces sane delay windows and caps.
func (c *PacingConfig) Sanitize() {
	sanitizeWindow(&c.BusinessMin, &c.BusinessMax, 15*time.Second, 25*time.Second)
	sanitizeWindow(&c.EveningMin, &c.EveningMax, 10*time.Second, 20*time.Second)
	sanitizeWindow(&c.NightMin, &c.NightMax, 8*time.Second, 18*time.Second)
	if c.MaxPerCycle <= 0 {
		c.MaxPerCycle = 60
	}
	if c.MaxPerHour <= 0 {
		c.MaxPerHour = 12
	}
	if c.MinDelay <= 0 {
		c.MinDelay = 5 * time.Second
	}
}

func sanitizeWindow(min, max *time.Duration, defMin, defMax time.Duration) {
	if *min <= 0 || *max < *min {
		*min, *max = defMin, defMax
	}
}
