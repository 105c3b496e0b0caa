package core

import (
	"context"
	"time"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

// ActionExecutor performs the actual application action for one posting. The
// executor owns a single browser session, may retry internally, and reports
// exactly one terminal AttemptResult. Transport and challenge failures are
// folded into OutcomeNetworkOrPageError by the implementation.
type ActionExecutor interface {
	Execute(ctx context.Context, posting *model.JobPosting, coverLetter string) (model.AttemptResult, error)
}

// CoverLetterGenerator renders the cover-letter text for an attempt. It must
// be pure: identical inputs produce identical text.
type CoverLetterGenerator interface {
	Generate(title, company string) string
}

// Clock provides the current time; injected so pacing decisions are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// Sleeper performs the pacing wait. The production implementation blocks on
// a timer honoring ctx; test implementations return immediately so tests
// never really sleep.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}
