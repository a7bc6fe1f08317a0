package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/lingo/internal/store"
)

type factoryOptions struct {
	events store.EventRepo
	logger *slog.Logger
}

// Option configures NewProvider.
type Option func(*factoryOptions)

// WithEventRepo records every attempt in repo.
func WithEventRepo(repo store.EventRepo) Option {
	return func(o *factoryOptions) { o.events = repo }
}

// WithLogger sets the logger used for retries and event-write failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *factoryOptions) { o.logger = l }
}

// NewProvider creates a Provider from configuration, wrapped as
// caller → timeout → retry → logging → base so every individual attempt
// is recorded in the event log.
func NewProvider(ctx context.Context, cfg Config, opts ...Option) (Provider, error) {
	o := factoryOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewDemoProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if o.events != nil {
		p = WithLogging(p, cfg.Provider, o.events, o.logger)
	}
	p = WithRetry(p, cfg.Retry, o.logger)
	p = WithTimeout(p, cfg.Timeout)
	return p, nil
}
