// Package levelselect lets the learner choose the difficulty of their
// daily lessons.
package levelselect

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

var descriptions = map[lessons.Level]string{
	lessons.Beginner:     "Everyday words in short, simple sentences",
	lessons.Intermediate: "Common idioms and longer sentences",
	lessons.Advanced:     "Nuanced vocabulary and complex grammar",
}

// LevelScreen shows the three levels as a menu.
type LevelScreen struct {
	deps    screen.Deps
	menu    components.Menu
	current *lessons.Level
}

var _ screen.Screen = (*LevelScreen)(nil)
var _ screen.KeyHintProvider = (*LevelScreen)(nil)

// New creates the level picker. current marks the saved level, if any.
func New(deps screen.Deps, current *lessons.Level) *LevelScreen {
	s := &LevelScreen{deps: deps, current: current}

	items := make([]components.MenuItem, 0, len(lessons.Levels))
	for _, l := range lessons.Levels {
		items = append(items, components.MenuItem{
			Label:       string(l),
			Description: descriptions[l],
			Action:      s.choose(l),
			Current:     current != nil && *current == l,
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *LevelScreen) choose(l lessons.Level) func() tea.Cmd {
	return func() tea.Cmd {
		t, err := s.deps.Engine.SelectLevel(context.Background(), l)
		if errors.Is(err, lessons.ErrFetchInFlight) {
			return screen.Notice("A lesson is already being generated. Please wait.")
		}
		if err != nil {
			return screen.Notice(err.Error())
		}
		return screen.StartFetch(s.deps.Engine, t)
	}
}

func (s *LevelScreen) Init() tea.Cmd {
	return nil
}

func (s *LevelScreen) Title() string {
	return "Choose your level"
}

func (s *LevelScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-3/Enter", Description: "Start"},
	}
	if s.current != nil {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return hints
}

func (s *LevelScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LevelScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	cw = min(cw, 60)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("What is your English level?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("You can change it any time."))
	b.WriteString("\n\n")
	b.WriteString(components.Card(s.menu.View(), cw, true))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
