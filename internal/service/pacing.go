package service

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/jobhawk/jobhawk/internal/core"
)

// PacingConfig holds the admission controller tuning knobs. Zero values are
// replaced by DefaultPacingConfig in the constructor.
type PacingConfig struct {
	BusinessMin time.Duration
	BusinessMax time.Duration
	EveningMin  time.Duration
	EveningMax  time.Duration
	NightMin    time.Duration
	NightMax    time.Duration

	// Adaptive widens the jitter band and turns on success-rate feedback.
	Adaptive bool

	MaxPerCycle int
	MaxPerHour  int

	// MinDelay is the floor no adaptive shave may cross.
	MinDelay time.Duration
}

// DefaultPacingConfig returns the production pacing profile: slower during
// business hours when platform anti-bot scrutiny is highest, faster at night.
func DefaultPacingConfig() PacingConfig {
	return PacingConfig{
		BusinessMin: 15 * time.Second,
		BusinessMax: 25 * time.Second,
		EveningMin:  10 * time.Second,
		EveningMax:  20 * time.Second,
		NightMin:    8 * time.Second,
		NightMax:    18 * time.Second,
		Adaptive:    true,
		MaxPerCycle: 60,
		MaxPerHour:  12,
		MinDelay:    5 * time.Second,
	}
}

// GateDecision is the admission controller's verdict for one attempt.
type GateDecision struct {
	Allowed bool
	Delay   time.Duration
	Reason  string
}

// AdmissionControllerOptions groups dependencies for AdmissionController.
type AdmissionControllerOptions struct {
	Config PacingConfig
	Clock  core.Clock   // Required: wall clock, injectable for tests
	Rand   *rand.Rand   // Required: jitter source, seeded in tests
	Logger *slog.Logger // Optional: structured logger
}

// AdmissionController decides, before every application attempt, whether the
// attempt may proceed and how long to wait first. Delays are drawn from
// hour-of-day buckets with multiplicative jitter, then adjusted by the rolling
// success rate when adaptive mode is on. Counters enforce a per-cycle and a
// per-clock-hour attempt cap.
//
// The controller is used from a single goroutine; it is not safe for
// concurrent use.
type AdmissionController struct {
	cfg    PacingConfig
	clock  core.Clock
	rng    *rand.Rand
	logger *slog.Logger

	cycleCount int
	hourWindow time.Time
	hourCount  int
}

// NewAdmissionController constructs an AdmissionController. Zero config
// fields fall back to DefaultPacingConfig values.
func NewAdmissionController(opts AdmissionControllerOptions) *AdmissionController {
	if opts.Clock == nil {
		panic("Clock is required")
	}
	if opts.Rand == nil {
		panic("Rand is required")
	}

	cfg := opts.Config
	def := DefaultPacingConfig()
	if cfg.BusinessMin <= 0 || cfg.BusinessMax < cfg.BusinessMin {
		cfg.BusinessMin, cfg.BusinessMax = def.BusinessMin, def.BusinessMax
	}
	if cfg.EveningMin <= 0 || cfg.EveningMax < cfg.EveningMin {
		cfg.EveningMin, cfg.EveningMax = def.EveningMin, def.EveningMax
	}
	if cfg.NightMin <= 0 || cfg.NightMax < cfg.NightMin {
		cfg.NightMin, cfg.NightMax = def.NightMin, def.NightMax
	}
	if cfg.MaxPerCycle <= 0 {
		cfg.MaxPerCycle = def.MaxPerCycle
	}
	if cfg.MaxPerHour <= 0 {
		cfg.MaxPerHour = def.MaxPerHour
	}
	if cfg.MinDelay <= 0 {
		cfg.MinDelay = def.MinDelay
	}

	return &AdmissionController{
		cfg:    cfg,
		clock:  opts.Clock,
		rng:    opts.Rand,
		logger: opts.Logger,
	}
}

// ResetCycle zeroes the per-cycle counter. The hourly window survives across
// cycles on purpose.
func (c *AdmissionController) ResetCycle() {
	c.cycleCount = 0
}

// Gate decides one attempt. An allowed decision counts against both caps;
// a denied decision counts against neither.
func (c *AdmissionController) Gate(successRate float64) GateDecision {
	now := c.clock.Now()
	c.rollHourWindow(now)

	if c.cycleCount >= c.cfg.MaxPerCycle {
		return GateDecision{Allowed: false, Reason: "cycle cap reached"}
	}
	if c.hourCount >= c.cfg.MaxPerHour {
		return GateDecision{Allowed: false, Reason: "hourly cap reached"}
	}

	c.cycleCount++
	c.hourCount++

	delay := c.DelayFor(now, successRate)
	if c.logger != nil {
		c.logger.Debug("attempt admitted",
			"delay", delay,
			"cycle_count", c.cycleCount,
			"hour_count", c.hourCount,
			"success_rate", successRate)
	}
	return GateDecision{Allowed: true, Delay: delay}
}

// DelayFor computes the pre-attempt delay for the given instant without
// touching the counters. Exposed for deterministic distribution tests.
func (c *AdmissionController) DelayFor(now time.Time, successRate float64) time.Duration {
	min, max := c.bucket(now.Hour())
	delay := c.durationBetween(min, max)

	jitterLo, jitterHi := 0.8, 1.2
	if c.cfg.Adaptive {
		jitterLo, jitterHi = 0.7, 1.4
	}
	jitter := jitterLo + c.rng.Float64()*(jitterHi-jitterLo)
	delay = time.Duration(float64(delay) * jitter)

	if c.cfg.Adaptive {
		switch {
		case successRate < 0.5:
			delay += c.durationBetween(5*time.Second, 15*time.Second)
		case successRate > 0.9:
			delay -= c.durationBetween(2*time.Second, 8*time.Second)
		}
	}

	if delay < c.cfg.MinDelay {
		delay = c.cfg.MinDelay
	}
	return delay
}

// bucket maps an hour of day to its delay range. Business is 09:00-17:59,
// evening is 18:00-22:59, everything else is night.
func (c *AdmissionController) bucket(hour int) (time.Duration, time.Duration) {
	switch {
	case hour >= 9 && hour < 18:
		return c.cfg.BusinessMin, c.cfg.BusinessMax
	case hour >= 18 && hour < 23:
		return c.cfg.EveningMin, c.cfg.EveningMax
	default:
		return c.cfg.NightMin, c.cfg.NightMax
	}
}

func (c *AdmissionController) durationBetween(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(c.rng.Int63n(int64(max-min)))
}

// rollHourWindow resets the hourly counter when the clock crosses into a new
// hour. The window is the clock hour itself, not a sliding 60 minutes.
func (c *AdmissionController) rollHourWindow(now time.Time) {
	window := now.Truncate(time.Hour)
	if !window.Equal(c.hourWindow) {
		c.hourWindow = window
		c.hourCount = 0
	}
}
