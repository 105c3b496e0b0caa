package model

// AttemptOutcome is the terminal result reported by the external action
// executor for a single application attempt.
type AttemptOutcome string

const (
	// OutcomeApplied means the executor completed the application.
	OutcomeApplied AttemptOutcome = "applied"
	// OutcomeApplyButtonNotFound means the page was reached but no apply
	// control could be located.
	OutcomeApplyButtonNotFound AttemptOutcome = "apply_button_not_found"
	// OutcomeNetworkOrPageError covers navigation, challenge, and transport
	// failures surfaced by the executor.
	OutcomeNetworkOrPageError AttemptOutcome = "network_or_page_error"
)

// AttemptResult is what the action executor hands back to the classifier.
// The executor may retry internally but reports exactly one terminal outcome.
type AttemptResult struct {
	Outcome AttemptOutcome `json:"outcome"`
	// PageReached distinguishes an ambiguous missing-button outcome on a
	// loaded page from a dead page. When true with ApplyButtonNotFound the
	// classifier treats the attempt as applied-with-pending-verification.
	PageReached bool `json:"page_reached"`
	// Confirmation holds an executor-extracted confirmation token when one
	// was visible, empty otherwise.
	Confirmation string `json:"confirmation,omitempty"`
	Detail       string `json:"detail,omitempty"`
}
