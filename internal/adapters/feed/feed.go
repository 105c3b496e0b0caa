// Package feed adapts arbitrary JSON job feeds into canonical postings. The
// shape of a feed is described by JMESPath expressions, so onboarding a new
// platform is configuration, not code.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/jobhawk/jobhawk/internal/domain/model"
	apperrors "github.com/jobhawk/jobhawk/internal/errors"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// FieldPaths maps posting fields to JMESPath expressions evaluated against
// each feed item. ExternalID, Title, and Company are required; the rest
// default to empty.
type FieldPaths struct {
	ExternalID   string
	Title        string
	Company      string
	Description  string
	Requirements string
	Location     string
	SalaryText   string
	URL          string
}

// DefaultFieldPaths matches the common flat feed shape.
func DefaultFieldPaths() FieldPaths {
	return FieldPaths{
		ExternalID:   "id",
		Title:        "title",
		Company:      "company",
		Description:  "description",
		Requirements: "requirements",
		Location:     "location",
		SalaryText:   "salary",
		URL:          "url",
	}
}

// Config describes one feed endpoint.
type Config struct {
	Platform string
	URL      string
	// ItemsPath selects the array of job items from the response document.
	ItemsPath string
	Fields    FieldPaths
	Timeout   time.Duration
	Client    *http.Client
}

// Adapter is a configuration-driven feed source.
type Adapter struct {
	platform  string
	url       string
	itemsPath string
	fields    FieldPaths
	client    *http.Client
	evaluator JMESPathEvaluator
	logger    *slog.Logger
}

// New builds a feed adapter, validating every configured expression up front.
func New(cfg Config, logger *slog.Logger) (*Adapter, error) {
	platform := strings.ToLower(strings.TrimSpace(cfg.Platform))
	if platform == "" {
		return nil, apperrors.ValidationField("platform", "feed platform is required")
	}
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, apperrors.ValidationField("url", "feed url is required")
	}
	if cfg.Fields == (FieldPaths{}) {
		cfg.Fields = DefaultFieldPaths()
	}

	itemsPath := strings.TrimSpace(cfg.ItemsPath)
	if itemsPath == "" {
		itemsPath = "jobs"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	evaluator := jmespathLibEvaluator{}
	for _, expr := range []string{
		itemsPath,
		cfg.Fields.ExternalID, cfg.Fields.Title, cfg.Fields.Company,
		cfg.Fields.Description, cfg.Fields.Requirements,
		cfg.Fields.Location, cfg.Fields.SalaryText, cfg.Fields.URL,
	} {
		if err := evaluator.Validate(expr); err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrCodeValidation, "invalid feed expression %q", expr)
		}
	}

	return &Adapter{
		platform:  platform,
		url:       strings.TrimSpace(cfg.URL),
		itemsPath: itemsPath,
		fields:    cfg.Fields,
		client:    hc,
		evaluator: evaluator,
		logger:    logger,
	}, nil
}

// Platform returns the configured platform name.
func (a *Adapter) Platform() string { return a.platform }

// Fetch downloads the feed document and maps each item through the configured
// expressions. Items missing a required field are dropped with a log line.
func (a *Adapter) Fetch(ctx context.Context, _ *model.UserProfile) ([]model.JobPosting, error) {
	doc, err := a.get(ctx)
	if err != nil {
		return nil, apperrors.SourceFailure(a.platform, err)
	}

	raw, err := a.evaluator.Evaluate(a.itemsPath, doc)
	if err != nil {
		return nil, apperrors.SourceFailure(a.platform, fmt.Errorf("evaluate items path: %w", err))
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, apperrors.SourceFailure(a.platform,
			fmt.Errorf("items path %q did not select an array", a.itemsPath))
	}

	postings := make([]model.JobPosting, 0, len(items))
	for _, item := range items {
		posting, err := a.mapItem(item)
		if err != nil {
			a.logger.WarnContext(ctx, "dropping feed item",
				"platform", a.platform, "error", err)
			continue
		}
		postings = append(postings, posting)
	}
	return postings, nil
}

func (a *Adapter) mapItem(item any) (model.JobPosting, error) {
	externalID, err := requiredField(a, item, a.fields.ExternalID, "external id")
	if err != nil {
		return model.JobPosting{}, err
	}
	title, err := requiredField(a, item, a.fields.Title, "title")
	if err != nil {
		return model.JobPosting{}, err
	}
	company, err := requiredField(a, item, a.fields.Company, "company")
	if err != nil {
		return model.JobPosting{}, err
	}

	posting := model.JobPosting{
		Platform:   a.platform,
		ExternalID: externalID,
		Title:      title,
		Company:    company,
	}
	posting.Description, _ = a.stringField(item, a.fields.Description)
	posting.Requirements, _ = a.stringField(item, a.fields.Requirements)
	posting.Location, _ = a.stringField(item, a.fields.Location)
	posting.SalaryText, _ = a.stringField(item, a.fields.SalaryText)
	posting.URL, _ = a.stringField(item, a.fields.URL)
	return posting, nil
}

func requiredField(a *Adapter, item any, expr, name string) (string, error) {
	value, err := a.stringField(item, expr)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if value == "" {
		return "", fmt.Errorf("missing %s", name)
	}
	return value, nil
}

// stringField evaluates expr against item and coerces the result to a string.
// Numeric ids are common in feeds and are formatted without an exponent.
func (a *Adapter) stringField(item any, expr string) (string, error) {
	if strings.TrimSpace(expr) == "" {
		return "", nil
	}
	value, err := a.evaluator.Evaluate(expr, item)
	if err != nil {
		return "", fmt.Errorf("evaluate %q: %w", expr, err)
	}
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64:
		return fmt.Sprintf("%.0f", v), nil
	case bool:
		return fmt.Sprintf("%t", v), nil
	default:
		return "", fmt.Errorf("expression %q selected a %T, want scalar", expr, value)
	}
}

func (a *Adapter) get(ctx context.Context) (doc any, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close response body: %w", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("feed %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}
	return doc, nil
}
