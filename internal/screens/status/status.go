// Package status shows the transient screens around lesson generation:
// loading, failure with retry, and a missing lesson.
package status

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// Kind selects what the status screen shows.
type Kind int

const (
	Loading Kind = iota
	Failed
	NoLesson
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type spinnerTickMsg time.Time

// StatusScreen is a centered message with an optional retry action.
type StatusScreen struct {
	deps    screen.Deps
	kind    Kind
	message string
	frame   int
}

var _ screen.Screen = (*StatusScreen)(nil)
var _ screen.KeyHintProvider = (*StatusScreen)(nil)

// New creates a status screen. message is shown for Failed.
func New(deps screen.Deps, kind Kind, message string) *StatusScreen {
	return &StatusScreen{deps: deps, kind: kind, message: message}
}

func (s *StatusScreen) Init() tea.Cmd {
	if s.kind == Loading {
		return spin()
	}
	return nil
}

func spin() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *StatusScreen) Title() string {
	if s.kind == Loading {
		return "Today's lesson"
	}
	return "Something went wrong"
}

func (s *StatusScreen) KeyHints() []layout.KeyHint {
	if s.kind == Loading {
		return nil
	}
	return []layout.KeyHint{
		{Key: "R", Description: "Try again"},
		{Key: "L", Description: "Change level"},
	}
}

func (s *StatusScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if s.kind != Loading {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spin()

	case tea.KeyPressMsg:
		if s.kind == Loading {
			return s, nil
		}
		switch msg.String() {
		case "r", "enter":
			return s, s.retry()
		case "l":
			return s, screen.PickLevel()
		}
	}
	return s, nil
}

func (s *StatusScreen) retry() tea.Cmd {
	t, err := s.deps.Engine.Retry(context.Background())
	switch {
	case errors.Is(err, lessons.ErrFetchInFlight):
		return nil
	case err != nil:
		return screen.Notice(err.Error())
	}
	return screen.StartFetch(s.deps.Engine, t)
}

func (s *StatusScreen) View(width, height int) string {
	var content string
	switch s.kind {
	case Loading:
		content = lipgloss.NewStyle().Foreground(theme.Primary).Render(spinnerFrames[s.frame]) +
			" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Generating your daily lesson...")

	case Failed:
		content = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(s.message) +
			"\n\n" + theme.Hint.Render("Press R to try again.")

	case NoLesson:
		content = lipgloss.NewStyle().Foreground(theme.Text).Render(engine.NoLessonMessage) +
			"\n\n" + theme.Hint.Render("Press R to refresh.")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(min(width-4, 60)).Align(lipgloss.Center).Render(content))
}
