package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jobhawk/jobhawk/internal/domain/model"
)

// CycleNotifier publishes the end-of-cycle report to an external channel.
// Publishing is best-effort; the orchestrator logs failures and moves on.
type CycleNotifier interface {
	PublishCycleReport(ctx context.Context, summary model.CycleSummary) error
}

// FormatSummary renders a cycle summary as a short human-readable block for
// notification bodies and CLI output.
func FormatSummary(summary model.CycleSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cycle %s (%s)\n", summary.RunID, summary.Duration.Round(100*time.Millisecond))
	fmt.Fprintf(&b, "  found %d, retried %d, deduped %d, queued %d\n",
		summary.Found, summary.Retried, summary.Deduped, summary.ScoredAboveFloor)
	fmt.Fprintf(&b, "  attempted %d: applied %d, failed %d\n",
		summary.Attempted, summary.Applied, summary.Failed)
	fmt.Fprintf(&b, "  skipped %d, denied %d, source errors %d",
		summary.Skipped, summary.Denied, summary.SourceErrors)
	return b.String()
}
