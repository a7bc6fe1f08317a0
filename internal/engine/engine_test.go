package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/practice"
	"github.com/abhisek/lingo/internal/state"
	"github.com/abhisek/lingo/internal/store"
)

var fixedNow = time.Date(2026, 7, 2, 9, 0, 0, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

func identityShuffle(int, func(i, j int)) {}

func content(tag string) *lessons.Content {
	c := &lessons.Content{Words: []string{tag + "-a", tag + "-b", tag + "-c", tag + "-d", tag + "-e"}}
	for i := range 10 {
		c.Sentences = append(c.Sentences, lessons.Sentence{
			Source:      fmt.Sprintf("%s sentence %d uses %s-a.", tag, i, tag),
			Translation: fmt.Sprintf("ترجمة %d", i),
		})
	}
	return c
}

type fakeGen struct {
	calls atomic.Int32
	err   error
	last  atomic.Pointer[lessons.Request]
}

func (g *fakeGen) Generate(_ context.Context, req lessons.Request) (*lessons.Content, error) {
	n := g.calls.Add(1)
	g.last.Store(&req)
	if g.err != nil {
		return nil, g.err
	}
	return content(fmt.Sprintf("gen%d", n)), nil
}

type harness struct {
	engine  *Engine
	adapter *state.Adapter
	gen     *fakeGen
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	if opts.Now == nil {
		opts.Now = fixedClock
	}
	if opts.Shuffle == nil {
		opts.Shuffle = identityShuffle
	}
	adapter := state.NewAdapter(s.BlobRepo(), nil)
	gen := &fakeGen{}
	return &harness{engine: New(adapter, gen, opts), adapter: adapter, gen: gen}
}

func (h *harness) saved(t *testing.T) (state.AppState, bool) {
	t.Helper()
	return h.adapter.Load(context.Background())
}

func levelPtr(l lessons.Level) *lessons.Level { return &l }

func TestStartup_FirstRun(t *testing.T) {
	h := newHarness(t, Options{})

	snap, ticket := h.engine.Startup(context.Background())
	assert.Nil(t, ticket)
	assert.Equal(t, ScreenLevelSelect, snap.Screen())
	assert.Equal(t, lessons.FetchIdle, snap.Fetch)
	assert.Equal(t, state.ThemeLight, snap.State.Theme)
	assert.Zero(t, h.gen.calls.Load())

	_, ok := h.saved(t)
	assert.False(t, ok, "nothing is saved before a level is chosen")
}

func TestStartup_CachedLessonForToday(t *testing.T) {
	h := newHarness(t, Options{})
	ctx := context.Background()
	today := lessons.Lesson{Date: "2026-07-02", Words: []string{"calm"}}
	require.True(t, h.adapter.Save(ctx, state.AppState{
		Level:         levelPtr(lessons.Beginner),
		CurrentLesson: &today,
		Theme:         state.ThemeDark,
	}))

	snap, ticket := h.engine.Startup(ctx)
	assert.Nil(t, ticket)
	assert.Equal(t, lessons.FetchReady, snap.Fetch)
	assert.Equal(t, ScreenLesson, snap.Screen())
	assert.Equal(t, state.ThemeDark, snap.State.Theme)
	assert.Zero(t, h.gen.calls.Load())
}

func TestStartup_StaleLessonFetches(t *testing.T) {
	h := newHarness(t, Options{})
	ctx := context.Background()
	old := lessons.Lesson{Date: "2026-07-01", Words: []string{"old"}}
	require.True(t, h.adapter.Save(ctx, state.AppState{
		Level:         levelPtr(lessons.Advanced),
		CurrentLesson: &old,
		History:       lessons.History{old},
	}))

	snap, ticket := h.engine.Startup(ctx)
	require.NotNil(t, ticket)
	assert.Equal(t, ScreenLoading, snap.Screen())
	assert.Nil(t, snap.State.CurrentLesson, "the stale lesson is not shown")
	assert.Equal(t, lessons.Advanced, ticket.Request.Level)
	assert.Equal(t, []string{"old"}, ticket.Request.Avoid)

	snap, applied := h.engine.RunFetch(ctx, *ticket)
	require.True(t, applied)
	assert.Equal(t, lessons.FetchReady, snap.Fetch)
	require.NotNil(t, snap.State.CurrentLesson)
	assert.Equal(t, "2026-07-02", snap.State.CurrentLesson.Date)
	assert.Len(t, snap.State.CurrentLesson.Sentences, 10)

	saved, ok := h.saved(t)
	require.True(t, ok)
	assert.Equal(t, "2026-07-02", saved.CurrentLesson.Date)
}

func TestLoad_StaleLessonLeavesFetchToCaller(t *testing.T) {
	ctx := context.Background()
	old := lessons.Lesson{Date: "2026-07-01", Words: []string{"old"}}
	saved := state.AppState{Level: levelPtr(lessons.Beginner), CurrentLesson: &old}

	for _, tc := range []struct {
		name  string
		start func(*Engine) (lessons.Ticket, error)
		level lessons.Level
	}{
		{"retry", func(e *Engine) (lessons.Ticket, error) { return e.Retry(ctx) }, lessons.Beginner},
		{"select level", func(e *Engine) (lessons.Ticket, error) { return e.SelectLevel(ctx, lessons.Advanced) }, lessons.Advanced},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, Options{})
			require.True(t, h.adapter.Save(ctx, saved))

			snap := h.engine.Load(ctx)
			assert.Equal(t, lessons.FetchIdle, snap.Fetch)
			assert.Nil(t, snap.State.CurrentLesson, "the stale lesson is not shown")
			assert.Zero(t, h.gen.calls.Load())

			ticket, err := tc.start(h.engine)
			require.NoError(t, err)
			assert.Equal(t, tc.level, ticket.Request.Level)

			snap, applied := h.engine.RunFetch(ctx, ticket)
			require.True(t, applied)
			require.NotNil(t, snap.State.CurrentLesson)
			assert.Equal(t, "2026-07-02", snap.State.CurrentLesson.Date)
		})
	}
}

func TestLoad_CachedLessonIsReady(t *testing.T) {
	h := newHarness(t, Options{})
	ctx := context.Background()
	today := lessons.Lesson{Date: "2026-07-02", Words: []string{"w"}}
	require.True(t, h.adapter.Save(ctx, state.AppState{Level: levelPtr(lessons.Beginner), CurrentLesson: &today}))

	snap := h.engine.Load(ctx)
	assert.Equal(t, lessons.FetchReady, snap.Fetch)
	require.NotNil(t, snap.State.CurrentLesson)
	assert.Equal(t, "2026-07-02", snap.State.CurrentLesson.Date)
}

func TestSelectLevel_FetchAndSave(t *testing.T) {
	h := newHarness(t, Options{})
	ctx := context.Background()
	h.engine.Startup(ctx)

	_, err := h.engine.SelectLevel(ctx, lessons.Level("Expert"))
	require.Error(t, err)

	ticket, err := h.engine.SelectLevel(ctx, lessons.Intermediate)
	require.NoError(t, err)
	assert.Equal(t, ScreenLoading, h.engine.Snapshot().Screen())

	_, err = h.engine.SelectLevel(ctx, lessons.Beginner)
	assert.ErrorIs(t, err, lessons.ErrFetchInFlight)

	saved, ok := h.saved(t)
	require.True(t, ok)
	assert.Equal(t, lessons.Intermediate, *saved.Level)

	require.NoError(t, h.engine.SetView(ViewReview))
	snap, applied := h.engine.RunFetch(ctx, ticket)
	require.True(t, applied)
	assert.Equal(t, ViewLesson, snap.View, "success lands on the lesson view")
	assert.Equal(t, ScreenLesson, snap.Screen())
}

func TestRunFetch_FailureKeepsPriorData(t *testing.T) {
	h := newHarness(t, Options{})
	ctx := context.Background()
	h.engine.Startup(ctx)

	ticket, err := h.engine.SelectLevel(ctx, lessons.Beginner)
	require.NoError(t, err)
	h.engine.RunFetch(ctx, ticket)
	_, err = h.engine.CompleteLesson(ctx)
	require.NoError(t, err)
	before := h.engine.Snapshot()

	h.gen.err = errors.New("network down")
	ticket, err = h.engine.Retry(ctx)
	require.NoError(t, err)
	snap, applied := h.engine.RunFetch(ctx, ticket)
	require.True(t, applied)

	assert.Equal(t, lessons.FetchFailed, snap.Fetch)
	assert.Equal(t, lessons.FailureMessage, snap.Message)
	assert.Equal(t, ScreenError, snap.Screen())
	assert.Equal(t, before.State.CurrentLesson, snap.State.CurrentLesson)
	assert.Equal(t, before.State.History, snap.State.History)
	assert.Equal(t, before.State.Progress, snap.State.Progress)

	h.gen.err = nil
	ticket, err = h.engine.Retry(ctx)
	require.NoError(t, err)
	assert.Empty(t, h.engine.Snapshot().Message, "entering Loading clears the error")
	snap, _ = h.engine.RunFetch(ctx, ticket)
	assert.Equal(t, lessons.FetchReady, snap.Fetch)
}

func TestRetry_RequiresLevel(t *testing.T) {
	h := newHarness(t, Options{})
	h.engine.Startup(context.Background())

	_, err := h.engine.Retry(context.Background())
	assert.ErrorIs(t, err, ErrNoLevel)
}

func TestRunFetch_SupersededResultDropped(t *testing.T) {
	h := newHarness(t, Options{})
	ctx := context.Background()
	h.engine.Startup(ctx)

	stale, err := h.engine.SelectLevel(ctx, lessons.Beginner)
	require.NoError(t, err)
	require.NoError(t, h.engine.Reset(ctx))

	snap, applied := h.engine.RunFetch(ctx, stale)
	assert.False(t, applied)
	assert.Nil(t, snap.State.CurrentLesson)
	assert.Equal(t, ScreenLevelSelect, snap.Screen())

	_, ok := h.saved(t)
	assert.False(t, ok)
}

func TestCompleteLesson(t *testing.T) {
	h := newHarness(t, Options{})
	ctx := context.Background()
	h.engine.Startup(ctx)

	_, err := h.engine.CompleteLesson(ctx)
	assert.ErrorIs(t, err, ErrNoLevel)

	ticket, err := h.engine.SelectLevel(ctx, lessons.Beginner)
	require.NoError(t, err)
	_, err = h.engine.CompleteLesson(ctx)
	assert.ErrorIs(t, err, ErrNoLesson)

	h.engine.RunFetch(ctx, ticket)
	c, err := h.engine.CompleteLesson(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Ledger.Streak)
	assert.Equal(t, 10, c.Ledger.Points)
	assert.Equal(t, 5, c.Ledger.WordsMastered)
	assert.Empty(t, c.Awarded)
	assert.True(t, h.engine.Snapshot().CompletedToday())

	// unguarded: a second completion counts again
	c, err = h.engine.CompleteLesson(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Ledger.Streak)
	assert.Equal(t, 10, c.Ledger.WordsMastered)
	require.Len(t, c.Awarded, 1)
	assert.Equal(t, "Word Novice", c.Awarded[0].Name)
	assert.Len(t, c.History, 1, "history keeps one entry per date")

	saved, ok := h.saved(t)
	require.True(t, ok)
	assert.Equal(t, c.Ledger, saved.Progress)
	assert.Equal(t, c.History, saved.History)
}

func TestCompleteLesson_Guarded(t *testing.T) {
	h := newHarness(t, Options{GuardRepeatCompletion: true})
	ctx := context.Background()
	h.engine.Startup(ctx)

	ticket, err := h.engine.SelectLevel(ctx, lessons.Beginner)
	require.NoError(t, err)
	h.engine.RunFetch(ctx, ticket)

	_, err = h.engine.CompleteLesson(ctx)
	require.NoError(t, err)
	_, err = h.engine.CompleteLesson(ctx)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, 1, h.engine.Snapshot().State.Progress.Streak)
}

func TestCompleteLesson_GuardedOlderHistoryEntry(t *testing.T) {
	h := newHarness(t, Options{GuardRepeatCompletion: true})
	ctx := context.Background()
	today := lessons.Lesson{Date: "2026-07-02", Words: []string{"w"}}
	require.True(t, h.adapter.Save(ctx, state.AppState{
		Level:         levelPtr(lessons.Beginner),
		CurrentLesson: &today,
		History:       lessons.History{{Date: "2026-07-03"}, today},
	}))
	h.engine.Load(ctx)

	_, err := h.engine.CompleteLesson(ctx)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Zero(t, h.engine.Snapshot().State.Progress.Points)
}

func TestStartQuiz(t *testing.T) {
	h := newHarness(t, Options{})
	ctx := context.Background()
	h.engine.Startup(ctx)

	s := h.engine.StartQuiz()
	assert.True(t, s.Empty(), "no history means no quiz")

	ticket, err := h.engine.SelectLevel(ctx, lessons.Beginner)
	require.NoError(t, err)
	h.engine.RunFetch(ctx, ticket)
	_, err = h.engine.CompleteLesson(ctx)
	require.NoError(t, err)

	s = h.engine.StartQuiz()
	assert.Equal(t, 10, s.Total())
	assert.Equal(t, ScreenQuiz, h.engine.Snapshot().Screen())

	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "gen1-a", q.TargetWord)
	assert.Contains(t, q.Options, q.CorrectAnswer)
}

func TestTheme(t *testing.T) {
	h := newHarness(t, Options{})
	ctx := context.Background()
	h.engine.Startup(ctx)

	assert.ErrorIs(t, h.engine.SetTheme(ctx, state.Theme("blue")), ErrInvalidTheme)
	assert.Equal(t, state.ThemeDark, h.engine.ToggleTheme(ctx))

	_, ok := h.saved(t)
	assert.False(t, ok, "theme alone is not persisted before a level")

	_, err := h.engine.SelectLevel(ctx, lessons.Beginner)
	require.NoError(t, err)
	require.NoError(t, h.engine.SetTheme(ctx, state.ThemeLight))

	saved, ok := h.saved(t)
	require.True(t, ok)
	assert.Equal(t, state.ThemeLight, saved.Theme)
}

func TestSetView(t *testing.T) {
	h := newHarness(t, Options{})
	assert.ErrorIs(t, h.engine.SetView(View(42)), ErrInvalidView)

	v, err := ParseView("review")
	require.NoError(t, err)
	require.NoError(t, h.engine.SetView(v))
	assert.Equal(t, ViewReview, h.engine.Snapshot().View)

	_, err = ParseView("settings")
	assert.ErrorIs(t, err, ErrInvalidView)
}

func TestReset(t *testing.T) {
	h := newHarness(t, Options{})
	ctx := context.Background()
	h.engine.Startup(ctx)

	ticket, err := h.engine.SelectLevel(ctx, lessons.Beginner)
	require.NoError(t, err)
	h.engine.RunFetch(ctx, ticket)
	require.NoError(t, h.engine.Reset(ctx))

	snap := h.engine.Snapshot()
	assert.Equal(t, ScreenLevelSelect, snap.Screen())
	assert.Equal(t, lessons.FetchIdle, snap.Fetch)
	_, ok := h.saved(t)
	assert.False(t, ok)
}

type stubCoach struct{ got [2]string }

func (c *stubCoach) Feedback(_ context.Context, expected, spoken string) string {
	c.got = [2]string{expected, spoken}
	return "نصيحة"
}

func TestPracticeFeedback(t *testing.T) {
	h := newHarness(t, Options{})
	assert.Equal(t, practice.FallbackFeedback, h.engine.PracticeFeedback(context.Background(), "a", "b"))

	coach := &stubCoach{}
	h = newHarness(t, Options{Coach: coach})
	assert.Equal(t, "نصيحة", h.engine.PracticeFeedback(context.Background(), "I am calm.", "I am come."))
	assert.Equal(t, [2]string{"I am calm.", "I am come."}, coach.got)
}

func TestSnapshot_IsACopy(t *testing.T) {
	h := newHarness(t, Options{})
	ctx := context.Background()
	h.engine.Startup(ctx)
	ticket, err := h.engine.SelectLevel(ctx, lessons.Beginner)
	require.NoError(t, err)
	h.engine.RunFetch(ctx, ticket)

	snap := h.engine.Snapshot()
	snap.State.CurrentLesson.Words[0] = "mutated"
	assert.NotEqual(t, "mutated", h.engine.Snapshot().State.CurrentLesson.Words[0])
}

func TestNoLessonScreen(t *testing.T) {
	snap := Snapshot{State: state.AppState{Level: levelPtr(lessons.Beginner)}, Fetch: lessons.FetchReady}
	assert.Equal(t, ScreenNoLesson, snap.Screen())
	assert.False(t, snap.CompletedToday())
}
