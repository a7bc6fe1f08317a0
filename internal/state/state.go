// Package state holds the persisted application envelope and the rules for
// loading it at startup.
package state

import (
	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/progress"
)

// StorageKey is the blob key the whole application state lives under.
const StorageKey = "lingoDailyAppData"

// legacyLessonKey is the field older payloads stored the current lesson in.
const legacyLessonKey = "dailyData"

// Theme is the color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool { return t == ThemeLight || t == ThemeDark }

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, bool) {
	t := Theme(s)
	return t, t.Valid()
}

// AppState is everything that survives a restart.
type AppState struct {
	Level         *lessons.Level  `json:"userLevel"`
	CurrentLesson *lessons.Lesson `json:"currentLesson"`
	Progress      progress.Ledger `json:"progress"`
	History       lessons.History `json:"history"`
	Theme         Theme           `json:"theme"`
}

// Default is the state of a first run.
func Default() AppState {
	return AppState{
		History: lessons.History{},
		Theme:   ThemeLight,
	}
}

// HasLevel reports whether a level has been chosen.
func (s AppState) HasLevel() bool { return s.Level != nil }

// Clone returns a copy that shares no slices or pointers with s.
func (s AppState) Clone() AppState {
	out := s
	if s.Level != nil {
		l := *s.Level
		out.Level = &l
	}
	if s.CurrentLesson != nil {
		l := cloneLesson(*s.CurrentLesson)
		out.CurrentLesson = &l
	}
	out.Progress.Badges = append([]string(nil), s.Progress.Badges...)
	out.History = make(lessons.History, len(s.History))
	for i, l := range s.History {
		out.History[i] = cloneLesson(l)
	}
	return out
}

func cloneLesson(l lessons.Lesson) lessons.Lesson {
	l.Words = append([]string(nil), l.Words...)
	l.Sentences = append([]lessons.Sentence(nil), l.Sentences...)
	return l
}
