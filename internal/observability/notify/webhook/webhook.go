// Package webhook delivers end-of-cycle reports to a JSON webhook, typically
// a Slack-compatible incoming hook.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jobhawk/jobhawk/internal/domain/model"
	"github.com/jobhawk/jobhawk/internal/service"
)

// Config captures the webhook endpoint and retry behaviour.
type Config struct {
	URL        string
	Username   string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
}

// Client posts cycle reports to a webhook.
type Client struct {
	url        string
	username   string
	retryLimit int
	client     *http.Client
}

var _ service.CycleNotifier = (*Client)(nil)

// NewClient builds a webhook client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	username := strings.TrimSpace(cfg.Username)
	if username == "" {
		username = "jobhawk"
	}

	return &Client{
		url:        url,
		username:   username,
		retryLimit: retries,
		client:     hc,
	}, nil
}

// PublishCycleReport posts the formatted summary, retrying transport
// failures with linear backoff.
func (c *Client) PublishCycleReport(ctx context.Context, summary model.CycleSummary) error {
	body, err := json.Marshal(map[string]any{
		"username": c.username,
		"text":     service.FormatSummary(summary),
		"summary":  summary,
	})
	if err != nil {
		return fmt.Errorf("encode cycle report: %w", err)
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		err = c.post(ctx, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < attempts-1 {
			delay := time.Duration(attempt+1) * 200 * time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return lastErr
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if closeErr := resp.Body.Close(); closeErr != nil {
			return errors.Join(
				fmt.Errorf("webhook %s: %s", resp.Status, strings.TrimSpace(string(respBody))),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("webhook %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("drain webhook response: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}
	return nil
}
