package practice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/lingo/internal/llm"
)

// FallbackFeedback is shown whenever coaching cannot be produced.
const FallbackFeedback = "حدث خطأ أثناء تحليل النطق. حاول مرة أخرى."

// FeedbackSchema defines the JSON schema for pronunciation coaching.
var FeedbackSchema = &llm.Schema{
	Name:        "pronunciation-tip",
	Description: "One short pronunciation tip in Arabic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tip": map[string]any{
				"type":        "string",
				"description": "One short, simple, encouraging tip written in Arabic",
			},
		},
		"required":             []any{"tip"},
		"additionalProperties": false,
	},
}

const feedbackSystemPrompt = `You are an English pronunciation coach for an Arabic speaker. Give one short, simple, and encouraging tip in Arabic. Focus on the most significant error. Start the tip directly without any greetings. If the attempt is very close to correct, just give encouragement in Arabic.`

// Coach produces pronunciation feedback. Implementations never fail.
type Coach interface {
	Feedback(ctx context.Context, expected, spoken string) string
}

// FeedbackService asks an LLM for pronunciation coaching.
type FeedbackService struct {
	provider llm.Provider
	logger   *slog.Logger
}

// NewFeedbackService creates a coach backed by provider.
func NewFeedbackService(provider llm.Provider, logger *slog.Logger) *FeedbackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedbackService{provider: provider, logger: logger}
}

// Feedback returns a tip comparing spoken with expected, or
// FallbackFeedback on any failure.
func (s *FeedbackService) Feedback(ctx context.Context, expected, spoken string) string {
	if s == nil || s.provider == nil {
		return FallbackFeedback
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: feedbackSystemPrompt,
		Messages: []llm.Message{{
			Role: llm.RoleUser,
			Content: fmt.Sprintf("The learner was supposed to say: %q\nBut they said: %q\n"+
				"Example tip: \"نصيحة جيدة! حاول نطق كلمة 'the' بصوت 'ذ' وليس 'ز'.\"", expected, spoken),
		}},
		Schema:      FeedbackSchema,
		MaxTokens:   256,
		Temperature: 0.4,
	})
	if err != nil {
		s.logger.Warn("pronunciation feedback failed", "error", err)
		return FallbackFeedback
	}

	var out struct {
		Tip string `json:"tip"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil || strings.TrimSpace(out.Tip) == "" {
		s.logger.Warn("unusable pronunciation feedback", "error", err)
		return FallbackFeedback
	}
	return strings.TrimSpace(out.Tip)
}
