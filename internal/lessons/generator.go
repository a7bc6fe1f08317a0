package lessons

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lingo/internal/llm"
)

// ErrGenerationUnavailable is returned for every generation failure:
// transport, schema, or a lesson of the wrong shape.
var ErrGenerationUnavailable = errors.New("could not generate the daily lesson; the AI service might be unavailable")

// Request describes the lesson to generate.
type Request struct {
	Level Level
	// Avoid lists words the learner has already studied.
	Avoid []string
}

// Generator produces lesson content for a level.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Content, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (*Content, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (*Content, error) {
	return f(ctx, req)
}

// Offline is a Generator for when no LLM provider is configured.
var Offline Generator = GeneratorFunc(func(context.Context, Request) (*Content, error) {
	return nil, fmt.Errorf("%w: no LLM provider configured", ErrGenerationUnavailable)
})

// LLMGenerator generates lessons with an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	cfg      Config
}

// NewLLMGenerator creates a lesson generator backed by provider.
func NewLLMGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, cfg: cfg}
}

type lessonOutput struct {
	Words     []string   `json:"words"`
	Sentences []Sentence `json:"sentences"`
}

// Generate asks the provider for a lesson and checks its shape. All errors
// wrap ErrGenerationUnavailable.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*Content, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeLesson)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(req.Level, req.Avoid)},
		},
		Schema:      DailyLessonSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
	}

	var out lessonOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("%w: parse lesson response: %w", ErrGenerationUnavailable, err)
	}

	content, err := checkContent(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
	}
	return content, nil
}

// checkContent trims and dedupes the words and enforces the lesson shape.
func checkContent(out lessonOutput) (*Content, error) {
	seen := make(map[string]bool, len(out.Words))
	words := make([]string, 0, len(out.Words))
	for _, w := range out.Words {
		w = strings.TrimSpace(w)
		key := strings.ToLower(w)
		if w == "" || seen[key] {
			continue
		}
		seen[key] = true
		words = append(words, w)
	}
	if len(words) < MinWords || len(words) > MaxWords {
		return nil, fmt.Errorf("got %d unique words, want %d-%d", len(words), MinWords, MaxWords)
	}

	if len(out.Sentences) != SentenceCount {
		return nil, fmt.Errorf("got %d sentences, want exactly %d", len(out.Sentences), SentenceCount)
	}
	sentences := make([]Sentence, len(out.Sentences))
	for i, s := range out.Sentences {
		s.Source = strings.TrimSpace(s.Source)
		s.Translation = strings.TrimSpace(s.Translation)
		if s.Source == "" || s.Translation == "" {
			return nil, fmt.Errorf("sentence %d is incomplete", i+1)
		}
		sentences[i] = s
	}

	return &Content{Words: words, Sentences: sentences}, nil
}
