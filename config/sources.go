package config

import (
	"strings"
	"time"
)

// SourcesConfig enables and tunes platform source adapters. RemoteOK is the
// built-in platform; additional platforms arrive as JMESPath-described feeds.
type SourcesConfig struct {
	RemoteOK RemoteOKConfig `envPrefix:"REMOTEOK_"`

	// FeedURLs lists extra feed endpoints as platform=url pairs, comma
	// separated, e.g. "weworkremotely=https://wwr.example/feed".
	FeedURLs []string `env:"FEED_URLS" envSeparator:","`

	// FeedItemsPath selects the job array in each feed document.
	FeedItemsPath string `env:"FEED_ITEMS_PATH" envDefault:"jobs"`

	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize normalises source settings.
func (c *SourcesConfig) Sanitize() {
	c.RemoteOK.Sanitize()
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	c.FeedItemsPath = strings.TrimSpace(c.FeedItemsPath)
	if c.FeedItemsPath == "" {
		c.FeedItemsPath = "jobs"
	}

	cleaned := c.FeedURLs[:0]
	for _, raw := range c.FeedURLs {
		if pair := strings.TrimSpace(raw); pair != "" {
			cleaned = append(cleaned, pair)
		}
	}
	c.FeedURLs = cleaned
}

// Feeds parses FeedURLs into (platform, url) pairs, skipping malformed
// entries.
func (c *SourcesConfig) Feeds() [][2]string {
	feeds := make([][2]string, 0, len(c.FeedURLs))
	for _, pair := range c.FeedURLs {
		platform, url, ok := strings.Cut(pair, "=")
		platform = strings.TrimSpace(platform)
		url = strings.TrimSpace(url)
		if !ok || platform == "" || url == "" {
			continue
		}
		feeds = append(feeds, [2]string{platform, url})
	}
	return feeds
}

// RemoteOKConfig tunes the RemoteOK adapter.
type RemoteOKConfig struct {
	Enabled           bool   `env:"ENABLED" envDefault:"true"`
	BaseURL           string `env:"BASE_URL" envDefault:"https://remoteok.com/api"`
	MaxPostings       int    `env:"MAX_POSTINGS" envDefault:"50"`
	RequestsPerMinute int    `env:"REQUESTS_PER_MINUTE" envDefault:"10"`
}

// Sanitize enforces RemoteOK limits.
func (c *RemoteOKConfig) Sanitize() {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL == "" {
		c.Enabled = false
	}
	if c.MaxPostings <= 0 || c.MaxPostings > 200 {
		c.MaxPostings = 50
	}
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = 10
	}
}
