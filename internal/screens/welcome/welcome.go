// Package welcome is the first-run greeting shown before the level picker.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/theme"
)

const frameInterval = 100 * time.Millisecond

// The greeting appears first, sparkles from sparkleFrame on, and the
// banner and prompt from bannerFrame on. Ticking stops at lastFrame.
const (
	sparkleFrame = 5
	bannerFrame  = 15
	lastFrame    = 30
)

const greeting = `╭──────────────╮
│  Hello!      │
│      مرحبا!  │
╰───────┬──────╯
        ╰─●`

type frameMsg struct{}

// WelcomeScreen plays a short intro and hands over to the level picker on
// the first key press.
type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns a WelcomeScreen replaced by next() when a key is pressed.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done || w.frame >= lastFrame {
			return w, nil
		}
		w.frame++
		return w, nextFrame()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		next := w.next()
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	bubble := lipgloss.NewStyle().Foreground(theme.Primary).Render(greeting)
	if w.frame >= sparkleFrame {
		bubble = sparkle(bubble, w.frame)
	}

	parts := []string{bubble}
	if w.frame >= bannerFrame {
		parts = append(parts,
			"",
			RenderBanner(width),
			"",
			theme.Body.Bold(true).Render("A new English lesson every day."),
			"",
			theme.Hint.Render("press any key to choose your level"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// sparkle frames the first and third lines of art with twinkling stars.
func sparkle(art string, frame int) string {
	star := "✦"
	if frame%2 == 1 {
		star = "✧"
	}
	a := lipgloss.NewStyle().Foreground(theme.Accent).Render(star)
	b := lipgloss.NewStyle().Foreground(theme.Secondary).Render(star)

	lines := strings.Split(art, "\n")
	lines[0] = a + "  " + lines[0] + "  " + b
	lines[2] = b + "  " + lines[2] + "  " + a
	return strings.Join(lines, "\n")
}
