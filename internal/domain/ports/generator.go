package ports

import "context"

// Route identifies which call shape produced a draft.
type Route string

const (
	// RouteStream is the streaming call, tried first.
	RouteStream Route = "stream"
	// RouteBlocking is the non-streaming fallback call.
	RouteBlocking Route = "blocking"
)

// Attempt records the outcome of one internal generation leg. Callers never
// see partial chunks; attempts exist so a final failure can explain what was
// tried.
type Attempt struct {
	Route Route  `json:"route"`
	Chars int    `json:"chars"`
	Err   string `json:"err,omitempty"`
}

// Draft is the fully resolved result of a generation call.
type Draft struct {
	// Text is the complete draft. Empty means the model produced nothing
	// usable even after the fallback attempt.
	Text string

	// Blocked reports whether a safety filter suppressed the response.
	Blocked bool
	// Reason carries the block reason when Blocked is set.
	Reason string

	// Route is the call shape that produced Text.
	Route Route
	// Attempts lists every leg that was tried, in order.
	Attempts []Attempt
}

// DraftGenerator defines the interface for requesting a model draft.
// Implementations try a streaming call first and fall back to at most one
// non-streaming call; the retry policy is internal and bounded.
type DraftGenerator interface {
	// Generate produces a draft for the prompt. A non-nil error means both
	// legs failed; the Draft still carries the attempt detail in that case.
	Generate(ctx context.Context, prompt string) (*Draft, error)

	// Model returns the model or endpoint identifier used for generation.
	Model() string
}
