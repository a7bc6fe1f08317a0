package llm

import "context"

// Purpose labels recorded with every LLM event. `lingo llm list --purpose`
// filters on them.
const (
	PurposeLesson   = "lesson"
	PurposeFeedback = "pronunciation-feedback"
)

type purposeKey struct{}

// WithPurpose tags ctx with the reason for an LLM call.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose tag, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
