package state

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/store"
)

// BlobStore is the key-value medium the adapter persists to.
type BlobStore interface {
	Get(ctx context.Context, key string) (*store.Blob, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Adapter loads and saves AppState as one JSON blob. It never returns
// storage or decoding errors from Load or Save; they are logged instead.
type Adapter struct {
	blobs  BlobStore
	logger *slog.Logger
}

// NewAdapter creates an adapter over blobs. A nil logger uses slog.Default().
func NewAdapter(blobs BlobStore, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{blobs: blobs, logger: logger}
}

// Load returns the saved state. ok is false when nothing usable is stored:
// no blob, a read failure, or a payload that is not a JSON object. When
// ok is true each field that is missing or malformed has its default.
func (a *Adapter) Load(ctx context.Context) (st AppState, ok bool) {
	blob, err := a.blobs.Get(ctx, StorageKey)
	if err != nil {
		a.logger.Warn("failed to load saved state", "error", err)
		return Default(), false
	}
	if blob == nil {
		return Default(), false
	}
	return Decode(blob.Value, a.logger)
}

// Save writes st. It is a no-op until a level has been chosen, so a
// half-finished first run is never persisted. It reports whether the
// state was written.
func (a *Adapter) Save(ctx context.Context, st AppState) bool {
	if !st.HasLevel() {
		return false
	}
	if st.History == nil {
		st.History = lessons.History{}
	}
	data, err := json.Marshal(st)
	if err != nil {
		a.logger.Error("failed to serialize state", "error", err)
		return false
	}
	if err := a.blobs.Put(ctx, StorageKey, data); err != nil {
		a.logger.Error("failed to save state", "error", err)
		return false
	}
	return true
}

// Clear removes the saved state.
func (a *Adapter) Clear(ctx context.Context) error {
	return a.blobs.Delete(ctx, StorageKey)
}

// Decode parses a saved payload field by field. See Load.
func Decode(data []byte, logger *slog.Logger) (AppState, bool) {
	if logger == nil {
		logger = slog.Default()
	}
	st := Default()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		logger.Warn("ignoring unreadable saved state", "error", err)
		return st, false
	}

	field := func(name string, dst any) bool {
		raw, present := fields[name]
		if !present || string(raw) == "null" {
			return false
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			logger.Warn("ignoring malformed saved field", "field", name, "error", err)
			return false
		}
		return true
	}

	var level string
	if field("userLevel", &level) {
		if l, err := lessons.ParseLevel(level); err == nil {
			st.Level = &l
		} else {
			logger.Warn("ignoring unknown saved level", "level", level)
		}
	}

	for _, key := range []string{"currentLesson", legacyLessonKey} {
		var l lessons.Lesson
		if field(key, &l) && l.Date != "" {
			st.CurrentLesson = &l
			break
		}
	}

	var ledger progress.Ledger
	if field("progress", &ledger) {
		ledger.Streak = max(ledger.Streak, 0)
		ledger.Points = max(ledger.Points, 0)
		ledger.WordsMastered = max(ledger.WordsMastered, 0)
		ledger.Badges = dedupe(ledger.Badges)
		st.Progress = ledger
	}

	var history []lessons.Lesson
	if field("history", &history) {
		st.History = dedupeHistory(history)
	}

	var theme string
	if field("theme", &theme) {
		if t, ok := ParseTheme(theme); ok {
			st.Theme = t
		}
	}

	return st, true
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// dedupeHistory keeps the first (newest) entry for each date.
func dedupeHistory(in []lessons.Lesson) lessons.History {
	seen := make(map[string]bool, len(in))
	out := make(lessons.History, 0, len(in))
	for _, l := range in {
		if l.Date == "" || seen[l.Date] {
			continue
		}
		seen[l.Date] = true
		out = append(out, l)
	}
	return out
}
