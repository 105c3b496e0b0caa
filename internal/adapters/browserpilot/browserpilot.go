// Package browserpilot drives the browser automation sidecar over HTTP. The
// sidecar owns the real browser session; this client submits one application
// action per call and maps the sidecar's verdict into a canonical
// AttemptResult.
package browserpilot

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
	apperrors "github.com/jobhawk/jobhawk/internal/errors"
)

// Config captures the sidecar endpoint and retry behaviour.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RetryLimit bounds transport-level retries within one Execute call.
	// A verdict from the sidecar, even a failing one, is never retried
	// here; cross-cycle retries belong to the orchestrator.
	RetryLimit int
	AuthToken  string
	Client     *http.Client
}

// Client is the HTTP executor client.
type Client struct {
	baseURL    string
	retryLimit int
	authToken  string
	client     *http.Client
}

// NewClient builds a browserpilot client. Callers should pass a validated
// config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("browserpilot base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		// Applications involve page loads and form fills; give the
		// sidecar room before declaring the attempt dead.
		timeout = 90 * time.Second
	}

	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		retryLimit: retries,
		authToken:  strings.TrimSpace(cfg.AuthToken),
		client:     hc,
	}, nil
}

// applyRequest is the wire request for one application action.
type applyRequest struct {
	URL         string `json:"url"`
	Platform    string `json:"platform"`
	ExternalID  string `json:"external_id"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	CoverLetter string `json:"cover_letter,omitempty"`
}

// applyResponse is the sidecar's verdict.
type applyResponse struct {
	Status         string `json:"status"`
	PageReached    bool   `json:"page_reached"`
	ConfirmationID string `json:"confirmation_id"`
	Detail         string `json:"detail"`
}

// Sidecar status values.
const (
	statusApplied        = "applied"
	statusNoApplyControl = "no_apply_control"
	statusPageError      = "page_error"
)

// Execute submits one application and returns the sidecar's verdict. A
// transport failure after all retries is returned as an error; the
// orchestrator classifies it as a retryable failure.
func (c *Client) Execute(ctx context.Context, posting *model.JobPosting, coverLetter string) (model.AttemptResult, error) {
	body, err := json.Marshal(applyRequest{
		URL:         posting.URL,
		Platform:    posting.Platform,
		ExternalID:  posting.ExternalID,
		Company:     posting.Company,
		Title:       posting.Title,
		CoverLetter: coverLetter,
	})
	if err != nil {
		return model.AttemptResult{}, fmt.Errorf("encode apply request: %w", err)
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		verdict, err := c.post(ctx, body)
		if err == nil {
			return mapVerdict(verdict), nil
		}
		lastErr = err
		if attempt < attempts-1 {
			// Linear backoff between transport retries.
			delay := time.Duration(attempt+1) * 500 * time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return model.AttemptResult{}, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return model.AttemptResult{}, apperrors.AttemptFailure(lastErr, "browserpilot unreachable")
}

func mapVerdict(v *applyResponse) model.AttemptResult {
	switch v.Status {
	case statusApplied:
		return model.AttemptResult{
			Outcome:      model.OutcomeApplied,
			PageReached:  true,
			Confirmation: v.ConfirmationID,
			Detail:       v.Detail,
		}
	case statusNoApplyControl:
		return model.AttemptResult{
			Outcome:     model.OutcomeApplyButtonNotFound,
			PageReached: v.PageReached,
			Detail:      v.Detail,
		}
	case statusPageError:
		return model.AttemptResult{
			Outcome:     model.OutcomeNetworkOrPageError,
			PageReached: v.PageReached,
			Detail:      v.Detail,
		}
	default:
		return model.AttemptResult{
			Outcome: model.OutcomeNetworkOrPageError,
			Detail:  "unknown sidecar status " + v.Status,
		}
	}
}

func (c *Client) post(ctx context.Context, body []byte) (*applyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/apply", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create apply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apply request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, handleErrorResponse(resp)
	}

	var verdict applyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return nil, errors.Join(
				fmt.Errorf("decode apply response: %w", err),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return nil, fmt.Errorf("decode apply response: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return nil, fmt.Errorf("close response body: %w", err)
	}
	return &verdict, nil
}

func handleErrorResponse(resp *http.Response) error {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if readErr != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("read error response: %w", readErr),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("read error response: %w", readErr)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return fmt.Errorf("browserpilot %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
}
