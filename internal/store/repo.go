package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// Blob is a stored value together with its write metadata.
type Blob struct {
	Key       string
	Value     []byte
	Revision  int64
	UpdatedAt time.Time
}

// BlobRepo is a key-value store for opaque serialized documents.
type BlobRepo interface {
	// Get returns the blob stored under key, or nil if there is none.
	Get(ctx context.Context, key string) (*Blob, error)

	// Put stores value under key, replacing any previous value and
	// incrementing the revision.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the blob stored under key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a persisted LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token consumption for one grouping key.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// PruneLLMEvents deletes events older than before and reports how
	// many were removed.
	PruneLLMEvents(ctx context.Context, before time.Time) (int, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage per model ID.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
