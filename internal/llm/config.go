package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvPrefix namespaces every environment variable read by ConfigFromEnv.
const EnvPrefix = "LINGO_"

// Config selects and configures the LLM provider.
type Config struct {
	// Provider is one of "gemini", "anthropic", "openai", "openrouter"
	// or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single logical request, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible gateways
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig shapes the exponential backoff between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// vendor binds a provider name to its Config fields. The order of vendors
// is the order DiscoverConfig probes for keys.
type vendor struct {
	name   string
	env    string // LINGO_<env>_API_KEY, LINGO_<env>_MODEL, ...
	fields func(*Config) (key, model, baseURL *string)
}

var vendors = []vendor{
	{"gemini", "GEMINI", func(c *Config) (*string, *string, *string) {
		return &c.Gemini.APIKey, &c.Gemini.Model, nil
	}},
	{"openai", "OPENAI", func(c *Config) (*string, *string, *string) {
		return &c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL
	}},
	{"anthropic", "ANTHROPIC", func(c *Config) (*string, *string, *string) {
		return &c.Anthropic.APIKey, &c.Anthropic.Model, nil
	}},
	{"openrouter", "OPENROUTER", func(c *Config) (*string, *string, *string) {
		return &c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL
	}},
}

func lookupVendor(name string) (vendor, bool) {
	for _, v := range vendors {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

// DefaultConfig is Gemini Flash with three attempts and a one minute
// budget.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: time.Minute,
	}
}

func override(dst *string, name string) {
	if dst == nil {
		return
	}
	if v := os.Getenv(EnvPrefix + name); v != "" {
		*dst = v
	}
}

// ConfigFromEnv layers LINGO_* environment variables over DefaultConfig.
// Malformed numbers and durations are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	override(&cfg.Provider, "LLM_PROVIDER")

	for _, v := range vendors {
		key, model, base := v.fields(&cfg)
		override(key, v.env+"_API_KEY")
		override(model, v.env+"_MODEL")
		override(base, v.env+"_BASE_URL")
	}

	if d, err := time.ParseDuration(os.Getenv(EnvPrefix + "LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv(EnvPrefix + "LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	return cfg
}

// DiscoverConfig looks for the vendors' own unprefixed key variables
// (GEMINI_API_KEY and friends) and selects the first vendor found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, v := range vendors {
		k := os.Getenv(v.env + "_API_KEY")
		if k == "" {
			continue
		}
		key, _, _ := v.fields(&cfg)
		*key = k
		cfg.Provider = v.name
		return cfg, true
	}
	return Config{}, false
}

// Resolve prefers the LINGO_* configuration and falls back to
// DiscoverConfig when it is unusable.
func Resolve() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if discovered, ok := DiscoverConfig(); ok {
		return discovered, nil
	}
	return Config{}, err
}

// Validate checks that the selected provider exists and has an API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	v, ok := lookupVendor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key, _, _ := v.fields(&c); *key == "" {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider", EnvPrefix, v.env, c.Provider)
	}
	return nil
}
