package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicServer(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 120, "output_tokens": 80},
	}
}

func anthropicFailure(status int, kind string, header http.Header) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		for k, v := range header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": kind, "message": kind},
		})
	}
}

func TestAnthropicGenerate(t *testing.T) {
	var body map[string]any
	p := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(anthropicMessage(shortLesson, "end_turn"))
	})

	resp, err := p.Generate(context.Background(), lessonRequest())
	require.NoError(t, err)
	assert.JSONEq(t, shortLesson, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 120, OutputTokens: 80, TotalTokens: 200}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)

	assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
	assert.NotNil(t, body["system"])
}

func TestAnthropicTruncated(t *testing.T) {
	p := anthropicServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(anthropicMessage(`{"words":["jour`, "max_tokens"))
	})

	_, err := p.Generate(context.Background(), lessonRequest())
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}

func TestAnthropicErrors(t *testing.T) {
	t.Run("rate limit honours Retry-After", func(t *testing.T) {
		p := anthropicServer(t, anthropicFailure(http.StatusTooManyRequests, "rate_limit_error",
			http.Header{"Retry-After": []string{"7"}}))
		_, err := p.Generate(context.Background(), lessonRequest())
		var rl *ErrRateLimit
		require.ErrorAs(t, err, &rl)
		assert.Equal(t, 7*time.Second, rl.RetryAfter)
	})

	t.Run("overloaded", func(t *testing.T) {
		p := anthropicServer(t, anthropicFailure(529, "overloaded_error", nil))
		_, err := p.Generate(context.Background(), lessonRequest())
		var unavail *ErrProviderUnavailable
		assert.ErrorAs(t, err, &unavail)
	})

	t.Run("bad key", func(t *testing.T) {
		p := anthropicServer(t, anthropicFailure(http.StatusUnauthorized, "authentication_error", nil))
		_, err := p.Generate(context.Background(), lessonRequest())
		var rejected *ErrRejected
		assert.ErrorAs(t, err, &rejected)
	})
}

func TestAnthropicConfig(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)

	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicModels))
}
