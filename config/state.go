package config

import "strings"

// StateConfig locates the operator profile and the durable state files.
type StateConfig struct {
	// ProfilePath is the operator profile JSON file.
	ProfilePath string `env:"PROFILE_PATH" envDefault:"profile.json"`

	// Dir holds applied.json, stats.json, and retry.json.
	Dir string `env:"DIR" envDefault:"state"`

	// HistoryDBPath is the sqlite application history archive. Empty
	// disables the archive; the engine runs fine without it.
	HistoryDBPath string `env:"HISTORY_DB_PATH" envDefault:"state/history.db"`
}

// Sanitize applies guardrails to state paths.
func (c *StateConfig) Sanitize() {
	c.ProfilePath = strings.TrimSpace(c.ProfilePath)
	if c.ProfilePath == "" {
		c.ProfilePath = "profile.json"
	}
	c.Dir = strings.TrimSpace(c.Dir)
	if c.Dir == "" {
		c.Dir = "state"
	}
	c.HistoryDBPath = strings.TrimSpace(c.HistoryDBPath)
}

// HistoryEnabled reports whether the sqlite archive should be opened.
func (c *StateConfig) HistoryEnabled() bool {
	return c.HistoryDBPath != ""
}
