// Package remoteok fetches candidate postings from the RemoteOK public API.
package remoteok

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jobhawk/jobhawk/internal/domain/model"
	apperrors "github.com/jobhawk/jobhawk/internal/errors"
)

const platformName = "remoteok"

// Config captures the subset of RemoteOK API behaviour we need.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxPostings int
	// RequestsPerMinute throttles outbound calls; RemoteOK rate-limits
	// aggressive clients by IP.
	RequestsPerMinute int
	UserAgent         string
	Client            *http.Client
}

// Adapter is the RemoteOK source adapter.
type Adapter struct {
	baseURL     string
	maxPostings int
	userAgent   string
	client      *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// New builds a RemoteOK adapter with defaults filled in.
func New(cfg Config, logger *slog.Logger) *Adapter {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://remoteok.com/api"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	maxPostings := cfg.MaxPostings
	if maxPostings <= 0 {
		maxPostings = 50
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 10
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Adapter{
		baseURL:     baseURL,
		maxPostings: maxPostings,
		userAgent:   fallbackString(strings.TrimSpace(cfg.UserAgent), "jobhawk/1.0"),
		client:      hc,
		limiter:     rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		logger:      logger,
	}
}

// Platform returns the stable platform name.
func (a *Adapter) Platform() string { return platformName }

// apiJob is the wire shape of one RemoteOK listing. The first element of the
// response array is a legal notice, not a job; it decodes to a zero apiJob
// and is dropped by the id check.
type apiJob struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location"`
	SalaryMin   int      `json:"salary_min"`
	SalaryMax   int      `json:"salary_max"`
	URL         string   `json:"url"`
}

// Fetch pulls current listings and keeps the ones relevant to the profile,
// capped at MaxPostings.
func (a *Adapter) Fetch(ctx context.Context, profile *model.UserProfile) ([]model.JobPosting, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	jobs, err := a.get(ctx)
	if err != nil {
		return nil, apperrors.SourceFailure(platformName, err)
	}

	postings := make([]model.JobPosting, 0, a.maxPostings)
	for i := range jobs {
		job := &jobs[i]
		if job.ID == "" || job.Company == "" || job.Position == "" {
			continue
		}
		if !relevant(job, profile) {
			continue
		}
		postings = append(postings, model.JobPosting{
			Platform:     platformName,
			ExternalID:   job.ID,
			Title:        job.Position,
			Company:      job.Company,
			Description:  job.Description,
			Requirements: strings.Join(job.Tags, " "),
			Location:     fallbackString(job.Location, "Remote"),
			SalaryText:   salaryText(job.SalaryMin, job.SalaryMax),
			URL:          job.URL,
		})
		if len(postings) == a.maxPostings {
			break
		}
	}

	a.logger.DebugContext(ctx, "remoteok fetch complete",
		"listings", len(jobs), "relevant", len(postings))
	return postings, nil
}

func (a *Adapter) get(ctx context.Context) (jobs []apiJob, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create remoteok request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close response body: %w", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("remoteok %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return nil, fmt.Errorf("decode remoteok response: %w", err)
	}
	if len(jobs) == 0 {
		return nil, errors.New("remoteok returned an empty document")
	}
	return jobs, nil
}

// relevant reports whether any profile skill, preferred role, or keyword
// appears in the listing's title, tags, or description.
func relevant(job *apiJob, profile *model.UserProfile) bool {
	if profile == nil {
		return true
	}
	haystack := strings.ToLower(job.Position + " " + strings.Join(job.Tags, " ") + " " + job.Description)
	for _, terms := range [][]string{profile.Skills, profile.PreferredRoles, profile.Keywords} {
		for _, term := range terms {
			if term != "" && strings.Contains(haystack, term) {
				return true
			}
		}
	}
	return false
}

func salaryText(min, max int) string {
	switch {
	case min > 0 && max > min:
		return fmt.Sprintf("$%d - $%d", min, max)
	case min > 0:
		return fmt.Sprintf("$%d", min)
	default:
		return ""
	}
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
