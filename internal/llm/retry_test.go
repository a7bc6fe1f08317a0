package llm

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func invalid() MockResponse {
	return MockResponse{Err: &ErrInvalidResponse{Content: raw(`{"words":`), Err: errors.New("truncated")}}
}

func TestRetryProvider(t *testing.T) {
	ok := MockResponse{Content: raw(shortLesson)}

	cases := []struct {
		name      string
		attempts  int
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", 3, []MockResponse{ok}, false, 1},
		{"outage then success", 3, []MockResponse{down(), ok}, false, 2},
		{"outage every time", 3, []MockResponse{down(), down(), down(), ok}, true, 3},
		{"rate limited", 3, []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, ok}, false, 2},
		{"invalid once", 3, []MockResponse{invalid(), ok}, false, 2},
		{"invalid twice", 3, []MockResponse{invalid(), invalid(), ok}, true, 2},
		{"truncated", 3, []MockResponse{{Err: &ErrMaxTokensExceeded{}}, ok}, true, 1},
		{"rejected", 3, []MockResponse{{Err: &ErrRejected{Status: 401}}, ok}, true, 1},
		{"zero attempts still tries once", 0, []MockResponse{down(), ok}, true, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := NewMockProvider(tc.responses...)
			p := WithRetry(mock, fastRetry(tc.attempts), slog.New(slog.DiscardHandler))

			resp, err := p.Generate(context.Background(), lessonRequest())
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, shortLesson, string(resp.Content))
			}
			assert.Equal(t, tc.wantCalls, mock.CallCount())
		})
	}
}

func TestRetryProviderLogsRetries(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	mock := NewMockProvider(down(), MockResponse{Content: raw(shortLesson)})
	p := WithRetry(mock, fastRetry(3), logger)

	ctx := WithPurpose(context.Background(), PurposeLesson)
	_, err := p.Generate(ctx, lessonRequest())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "retrying LLM request")
	assert.Contains(t, out, "purpose=lesson")
	assert.Contains(t, out, "attempt=1")
}

func TestRetryProviderStopsOnCancel(t *testing.T) {
	mock := NewMockProvider(down(), down(), MockResponse{Content: raw(shortLesson)})
	cfg := fastRetry(3)
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour
	p := WithRetry(mock, cfg, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Generate(ctx, lessonRequest())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryBackoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{
		InitialWait: 100 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2,
	}}

	first := r.backoff(1, errors.New("x"))
	assert.InDelta(t, float64(100*time.Millisecond), float64(first), float64(20*time.Millisecond))

	capped := r.backoff(10, errors.New("x"))
	assert.LessOrEqual(t, capped, 1200*time.Millisecond)

	assert.Equal(t, 300*time.Millisecond, r.backoff(1, &ErrRateLimit{RetryAfter: 300 * time.Millisecond}))
	assert.Equal(t, time.Second, r.backoff(1, &ErrRateLimit{RetryAfter: time.Minute}))
}
