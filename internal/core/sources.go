package core

import (
	"context"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

// SourceAdapter produces a finite sequence of canonical postings for one
// platform per cycle. Adapters map their native payload shape into
// model.JobPosting at the boundary.
//
// Failure contract: an adapter that cannot reach its platform returns a nil
// slice and an error; the orchestrator logs it and the cycle continues with
// the remaining platforms. A failing platform never aborts the cycle.
type SourceAdapter interface {
	// Platform returns the stable lowercase platform name used in
	// fingerprints and priority tables.
	Platform() string

	// Fetch returns this cycle's candidate postings for the profile.
	Fetch(ctx context.Context, profile *model.UserProfile) ([]model.JobPosting, error)
}
