// Package engine is the application aggregate. It owns the saved state, the
// current view and the lesson fetcher, and applies every user action to
// them under one lock, writing the result through to storage.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/practice"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/quiz"
	"github.com/abhisek/lingo/internal/state"
)

var (
	ErrNoLevel          = errors.New("choose a level first")
	ErrNoLesson         = errors.New("no lesson available for today")
	ErrAlreadyCompleted = errors.New("today's lesson is already completed")
	ErrInvalidTheme     = errors.New("theme must be light or dark")
	ErrInvalidView      = errors.New("unknown view")
)

// NoLessonMessage is shown when the lesson view has nothing to display.
const NoLessonMessage = "No lesson available for today. Try refreshing."

// CompletedMessage confirms a completed lesson.
const CompletedMessage = "Great job! You've completed today's lesson. Your progress has been saved."

// avoidLessons is how many recent lessons' words are sent as words to avoid.
const avoidLessons = 7

// View is the secondary screen the learner is on once a level is chosen.
type View int

const (
	ViewLesson View = iota
	ViewReview
	ViewQuiz
)

func (v View) String() string {
	switch v {
	case ViewLesson:
		return "lesson"
	case ViewReview:
		return "review"
	case ViewQuiz:
		return "quiz"
	default:
		return "unknown"
	}
}

// ParseView accepts the names returned by View.String.
func ParseView(s string) (View, error) {
	for _, v := range []View{ViewLesson, ViewReview, ViewQuiz} {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidView, s)
}

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	// GuardRepeatCompletion rejects completing a lesson whose date is
	// already in the history.
	GuardRepeatCompletion bool

	Now     func() time.Time
	Shuffle quiz.Shuffler
	Coach   practice.Coach
	Logger  *slog.Logger
}

// Engine serializes all state transitions. LLM calls never run under its lock.
type Engine struct {
	mu      sync.Mutex
	st      state.AppState
	view    View
	fetcher *lessons.Fetcher

	adapter     *state.Adapter
	now         func() time.Time
	shuffle     quiz.Shuffler
	coach       practice.Coach
	guardRepeat bool
	logger      *slog.Logger
}

// New creates an engine holding the default state. Call Startup to load
// the saved one. A nil gen behaves as lessons.Offline.
func New(adapter *state.Adapter, gen lessons.Generator, opts Options) *Engine {
	if gen == nil {
		gen = lessons.Offline
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Shuffle == nil {
		opts.Shuffle = quiz.RandomShuffle
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{
		st:          state.Default(),
		fetcher:     lessons.NewFetcher(gen, opts.Now),
		adapter:     adapter,
		now:         opts.Now,
		shuffle:     opts.Shuffle,
		coach:       opts.Coach,
		guardRepeat: opts.GuardRepeatCompletion,
		logger:      opts.Logger,
	}
}

// Startup loads the saved state and reconciles the saved lesson with today.
// When a new lesson is needed it returns a ticket to pass to RunFetch.
func (e *Engine) Startup(ctx context.Context) (Snapshot, *lessons.Ticket) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := e.loadLocked(ctx)
	if d.Action != state.ActionFetch {
		return e.snapshotLocked(), nil
	}
	t, err := e.fetcher.Begin(e.requestLocked(d.Level))
	if err != nil {
		return e.snapshotLocked(), nil
	}
	return e.snapshotLocked(), &t
}

// Load is Startup without the fetch. A stale lesson is still dropped, and
// the fetcher stays idle so the caller can start its own with SelectLevel
// or Retry.
func (e *Engine) Load(ctx context.Context) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.loadLocked(ctx)
	return e.snapshotLocked()
}

func (e *Engine) loadLocked(ctx context.Context) state.Decision {
	st, ok := e.adapter.Load(ctx)
	if !ok {
		st = state.Default()
	}
	e.st = st
	e.view = ViewLesson

	today := lessons.Today(e.now())
	d := state.Reconcile(e.st, today)
	e.logger.Debug("load state", "action", d.Action, "today", today)

	switch d.Action {
	case state.ActionUseCached:
		e.fetcher.MarkReady()
	case state.ActionFetch:
		// a stale lesson is never shown
		e.st.CurrentLesson = nil
	}
	return d
}

// SelectLevel stores level and starts generating a lesson for it.
func (e *Engine) SelectLevel(ctx context.Context, level lessons.Level) (lessons.Ticket, error) {
	if !level.Valid() {
		return lessons.Ticket{}, fmt.Errorf("invalid level %q", level)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.fetcher.Begin(e.requestLocked(level))
	if err != nil {
		return lessons.Ticket{}, err
	}
	e.st.Level = &level
	e.adapter.Save(ctx, e.st)
	return t, nil
}

// Retry starts a new fetch for the saved level. It serves both the retry
// button after a failure and an explicit refresh.
func (e *Engine) Retry(ctx context.Context) (lessons.Ticket, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.Level == nil {
		return lessons.Ticket{}, ErrNoLevel
	}
	return e.fetcher.Begin(e.requestLocked(*e.st.Level))
}

// RunFetch generates the lesson for t and applies the outcome. It reports
// false when t was superseded while generating; the result is then
// dropped. Generation failures become the Failed fetch state.
func (e *Engine) RunFetch(ctx context.Context, t lessons.Ticket) (Snapshot, bool) {
	lesson, genErr := e.fetcher.Generate(ctx, t)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.fetcher.Finish(t, lesson, genErr) {
		e.logger.Info("dropping superseded lesson fetch", "ticket", t.Seq, "error", genErr)
		return e.snapshotLocked(), false
	}
	if genErr != nil {
		e.logger.Warn("lesson generation failed", "level", t.Request.Level, "error", genErr)
		return e.snapshotLocked(), true
	}

	e.st.CurrentLesson = lesson
	e.view = ViewLesson
	e.adapter.Save(ctx, e.st)
	return e.snapshotLocked(), true
}

// CompleteLesson credits the current lesson to the ledger and archives it.
// The ledger, the history and the saved copy change together.
func (e *Engine) CompleteLesson(ctx context.Context) (progress.Completion, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.Level == nil {
		return progress.Completion{}, ErrNoLevel
	}
	lesson := e.st.CurrentLesson
	if lesson == nil {
		return progress.Completion{}, ErrNoLesson
	}
	if e.guardRepeat {
		if _, done := e.st.History.Find(lesson.Date); done {
			return progress.Completion{}, ErrAlreadyCompleted
		}
	}

	c := progress.Complete(e.st.Progress, *lesson, e.st.History)
	e.st.Progress = c.Ledger
	e.st.History = c.History
	e.adapter.Save(ctx, e.st)

	for _, b := range c.Awarded {
		e.logger.Info("badge awarded", "badge", b.Name)
	}
	return c, nil
}

// StartQuiz builds a quiz from the history and switches to the quiz view.
// The session is empty when the history has too few sentences.
func (e *Engine) StartQuiz() *quiz.Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.view = ViewQuiz
	return quiz.NewSession(quiz.Build(e.st.History, e.shuffle))
}

// SetTheme changes and saves the theme.
func (e *Engine) SetTheme(ctx context.Context, t state.Theme) error {
	if !t.Valid() {
		return ErrInvalidTheme
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.st.Theme = t
	e.adapter.Save(ctx, e.st)
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (e *Engine) ToggleTheme(ctx context.Context) state.Theme {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.st.Theme = e.st.Theme.Toggle()
	e.adapter.Save(ctx, e.st)
	return e.st.Theme
}

// SetView switches the secondary view.
func (e *Engine) SetView(v View) error {
	if v.String() == "unknown" {
		return ErrInvalidView
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.view = v
	return nil
}

// Reset abandons any fetch and deletes the saved profile.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.fetcher.Cancel()
	e.st = state.Default()
	e.view = ViewLesson
	if err := e.adapter.Clear(ctx); err != nil {
		return fmt.Errorf("clear saved state: %w", err)
	}
	return nil
}

// PracticeFeedback asks the coach about a mispronounced sentence. It never
// fails and does not take the engine lock.
func (e *Engine) PracticeFeedback(ctx context.Context, expected, spoken string) string {
	if e.coach == nil {
		return practice.FallbackFeedback
	}
	return e.coach.Feedback(ctx, expected, spoken)
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		State:   e.st.Clone(),
		View:    e.view,
		Fetch:   e.fetcher.State(),
		Message: e.fetcher.Message(),
		Today:   lessons.Today(e.now()),
	}
}

// requestLocked builds a generation request that steers away from the
// words of recent lessons.
func (e *Engine) requestLocked(level lessons.Level) lessons.Request {
	var avoid []string
	for i, l := range e.st.History {
		if i == avoidLessons {
			break
		}
		avoid = append(avoid, l.Words...)
	}
	return lessons.Request{Level: level, Avoid: avoid}
}
