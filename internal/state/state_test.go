package state

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/store"
)

type memBlobs struct {
	data   map[string][]byte
	getErr error
	putErr error
	puts   int
}

func newMemBlobs() *memBlobs { return &memBlobs{data: map[string][]byte{}} }

func (m *memBlobs) Get(_ context.Context, key string) (*store.Blob, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return &store.Blob{Key: key, Value: v}, nil
}

func (m *memBlobs) Put(_ context.Context, key string, value []byte) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func levelPtr(l lessons.Level) *lessons.Level { return &l }

func sampleState() AppState {
	lesson := lessons.Lesson{
		Date:      "2026-07-01",
		Words:     []string{"brave", "calm"},
		Sentences: []lessons.Sentence{{Source: "Be brave.", Translation: "كن شجاعا."}},
	}
	return AppState{
		Level:         levelPtr(lessons.Intermediate),
		CurrentLesson: &lesson,
		Progress:      progress.Ledger{Streak: 3, Points: 30, WordsMastered: 15, Badges: []string{"Word Novice", "3-Day Streak"}},
		History:       lessons.History{lesson},
		Theme:         ThemeDark,
	}
}

func TestAdapter_RoundTrip(t *testing.T) {
	blobs := newMemBlobs()
	a := NewAdapter(blobs, nil)
	ctx := context.Background()

	want := sampleState()
	require.True(t, a.Save(ctx, want))

	got, ok := a.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestAdapter_SkipsSaveWithoutLevel(t *testing.T) {
	blobs := newMemBlobs()
	a := NewAdapter(blobs, nil)

	st := Default()
	st.Theme = ThemeDark
	assert.False(t, a.Save(context.Background(), st))
	assert.Zero(t, blobs.puts)
}

func TestAdapter_SaveFailureIsSwallowed(t *testing.T) {
	blobs := newMemBlobs()
	blobs.putErr = errors.New("disk full")
	a := NewAdapter(blobs, nil)

	assert.NotPanics(t, func() {
		assert.False(t, a.Save(context.Background(), sampleState()))
	})
}

func TestAdapter_LoadNothingUsable(t *testing.T) {
	tests := []struct {
		name    string
		payload *string
		getErr  error
	}{
		{name: "missing key"},
		{name: "read failure", getErr: errors.New("io")},
		{name: "garbage", payload: ptr("{not json")},
		{name: "array", payload: ptr(`[1,2,3]`)},
		{name: "string", payload: ptr(`"hello"`)},
		{name: "null", payload: ptr(`null`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := newMemBlobs()
			blobs.getErr = tt.getErr
			if tt.payload != nil {
				blobs.data[StorageKey] = []byte(*tt.payload)
			}
			st, ok := NewAdapter(blobs, nil).Load(context.Background())
			assert.False(t, ok)
			assert.Equal(t, Default(), st)
		})
	}
}

func ptr(s string) *string { return &s }

func TestDecode_PerFieldDefaults(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		check func(t *testing.T, st AppState)
	}{
		{
			name: "empty object",
			json: `{}`,
			check: func(t *testing.T, st AppState) {
				assert.Equal(t, Default(), st)
			},
		},
		{
			name: "only level",
			json: `{"userLevel":"Advanced"}`,
			check: func(t *testing.T, st AppState) {
				require.NotNil(t, st.Level)
				assert.Equal(t, lessons.Advanced, *st.Level)
				assert.Nil(t, st.CurrentLesson)
				assert.Equal(t, progress.Ledger{}, st.Progress)
				assert.Empty(t, st.History)
				assert.Equal(t, ThemeLight, st.Theme)
			},
		},
		{
			name: "malformed progress keeps other fields",
			json: `{"userLevel":"Beginner","progress":"lots","theme":"dark"}`,
			check: func(t *testing.T, st AppState) {
				assert.Equal(t, lessons.Beginner, *st.Level)
				assert.Equal(t, progress.Ledger{}, st.Progress)
				assert.Equal(t, ThemeDark, st.Theme)
			},
		},
		{
			name: "unknown level and theme",
			json: `{"userLevel":"Wizard","theme":"sepia"}`,
			check: func(t *testing.T, st AppState) {
				assert.Nil(t, st.Level)
				assert.Equal(t, ThemeLight, st.Theme)
			},
		},
		{
			name: "legacy dailyData field",
			json: `{"userLevel":"Beginner","dailyData":{"date":"2026-01-05","words":["a"],"sentences":[]}}`,
			check: func(t *testing.T, st AppState) {
				require.NotNil(t, st.CurrentLesson)
				assert.Equal(t, "2026-01-05", st.CurrentLesson.Date)
			},
		},
		{
			name: "lesson without date is dropped",
			json: `{"userLevel":"Beginner","currentLesson":{"words":["a"]}}`,
			check: func(t *testing.T, st AppState) {
				assert.Nil(t, st.CurrentLesson)
			},
		},
		{
			name: "history deduped keeping newest",
			json: `{"history":[{"date":"2026-01-02","words":["new"]},{"date":"2026-01-02","words":["old"]},{"date":"2026-01-01"}]}`,
			check: func(t *testing.T, st AppState) {
				require.Len(t, st.History, 2)
				assert.Equal(t, []string{"new"}, st.History[0].Words)
			},
		},
		{
			name: "negative counters and duplicate badges repaired",
			json: `{"progress":{"streak":-2,"points":5,"wordsMastered":-1,"badges":["Word Novice","Word Novice"]}}`,
			check: func(t *testing.T, st AppState) {
				assert.Equal(t, progress.Ledger{Points: 5, Badges: []string{"Word Novice"}}, st.Progress)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := Decode([]byte(tt.json), nil)
			require.True(t, ok)
			tt.check(t, st)
		})
	}
}

func TestAdapter_WithSQLiteStore(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	a := NewAdapter(s.BlobRepo(), nil)

	_, ok := a.Load(ctx)
	assert.False(t, ok, "first run")

	require.True(t, a.Save(ctx, sampleState()))
	got, ok := a.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, sampleState(), got)

	require.NoError(t, a.Clear(ctx))
	_, ok = a.Load(ctx)
	assert.False(t, ok)
}

func TestReconcile(t *testing.T) {
	today := "2026-07-01"
	lesson := func(date string) *lessons.Lesson { return &lessons.Lesson{Date: date} }

	tests := []struct {
		name string
		st   AppState
		want Decision
	}{
		{"no level", AppState{CurrentLesson: lesson(today)}, Decision{Action: ActionSelectLevel}},
		{"cached today", AppState{Level: levelPtr(lessons.Beginner), CurrentLesson: lesson(today)}, Decision{Action: ActionUseCached}},
		{"stale lesson", AppState{Level: levelPtr(lessons.Beginner), CurrentLesson: lesson("2026-06-30")},
			Decision{Action: ActionFetch, Level: lessons.Beginner}},
		{"future-dated lesson", AppState{Level: levelPtr(lessons.Advanced), CurrentLesson: lesson("2026-07-02")},
			Decision{Action: ActionFetch, Level: lessons.Advanced}},
		{"no lesson", AppState{Level: levelPtr(lessons.Intermediate)},
			Decision{Action: ActionFetch, Level: lessons.Intermediate}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.st, today))
		})
	}
}

func TestThemeAndClone(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	_, ok := ParseTheme("blue")
	assert.False(t, ok)

	orig := sampleState()
	c := orig.Clone()
	c.Progress.Badges[0] = "changed"
	c.History[0].Words[0] = "changed"
	*c.Level = lessons.Beginner
	assert.Equal(t, sampleState(), orig)
}
