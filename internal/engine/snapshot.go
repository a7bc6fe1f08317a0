package engine

import (
	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/state"
)

// Snapshot is an immutable copy of the engine state.
type Snapshot struct {
	State   state.AppState
	View    View
	Fetch   lessons.FetchState
	Message string
	Today   string
}

// Screen names what the learner should be looking at.
type Screen string

const (
	ScreenLevelSelect Screen = "level-select"
	ScreenLoading     Screen = "loading"
	ScreenError       Screen = "error"
	ScreenNoLesson    Screen = "no-lesson"
	ScreenLesson      Screen = "lesson"
	ScreenReview      Screen = "review"
	ScreenQuiz        Screen = "quiz"
)

// Screen derives the screen from the level, the fetch state and the view,
// in that order of precedence.
func (s Snapshot) Screen() Screen {
	switch {
	case s.State.Level == nil:
		return ScreenLevelSelect
	case s.Fetch == lessons.FetchLoading:
		return ScreenLoading
	case s.Fetch == lessons.FetchFailed:
		return ScreenError
	}
	switch s.View {
	case ViewReview:
		return ScreenReview
	case ViewQuiz:
		return ScreenQuiz
	}
	if s.State.CurrentLesson == nil {
		return ScreenNoLesson
	}
	return ScreenLesson
}

// CompletedToday reports whether the current lesson is already the newest
// history entry.
func (s Snapshot) CompletedToday() bool {
	l := s.State.CurrentLesson
	h := s.State.History
	return l != nil && len(h) > 0 && h[0].Date == l.Date
}
