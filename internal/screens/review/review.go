// Package review shows past lessons as an accordion and leads to the quiz.
package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/quiz"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// ReviewScreen lists completed lessons, newest first. The newest entry
// starts expanded.
type ReviewScreen struct {
	deps     screen.Deps
	history  lessons.History
	selected int
	offset   int
	expanded map[int]bool
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a review screen over history.
func New(deps screen.Deps, history lessons.History) *ReviewScreen {
	return &ReviewScreen{
		deps:     deps,
		history:  history,
		expanded: map[int]bool{0: true},
	}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Expand"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Q", Description: "Quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		s.history = msg.Snapshot.State.History
		s.selected = min(s.selected, max(len(s.history)-1, 0))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			_ = s.deps.Engine.SetView(engine.ViewLesson)
			return s, screen.Sync()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.history)-1 {
				s.selected++
			}
		case "enter", "space":
			s.expanded[s.selected] = !s.expanded[s.selected]
		case "q":
			_ = s.deps.Engine.SetView(engine.ViewQuiz)
			return s, screen.Sync()
		}
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	var head strings.Builder
	head.WriteString(theme.Title.Width(width).Render("Your learning history"))
	head.WriteString("\n")
	head.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%d lessons · %d sentences", len(s.history), s.history.SentenceCount())))
	head.WriteString("\n")
	if QuizAvailable(s.history) {
		head.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render("Press Q to test yourself"))
	} else if len(s.history) > 0 {
		head.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(quiz.InsufficientHistoryMessage))
	}
	head.WriteString("\n")

	if len(s.history) == 0 {
		return head.String() + "\n" + lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No completed lessons yet. Finish today's lesson to start your history.")
	}

	cw := components.ContentWidth(width)
	blocks := make([]string, len(s.history))
	for i, l := range s.history {
		blocks[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderEntry(i, l, cw))
	}

	var list string
	avail := height - lipgloss.Height(head.String()) - 1
	list, s.offset = components.Window(blocks, s.selected, s.offset, max(avail, 1))
	return head.String() + "\n" + list
}

func (s *ReviewScreen) renderEntry(i int, l lessons.Lesson, cw int) string {
	marker := "▸"
	if s.expanded[i] {
		marker = "▾"
	}
	style := theme.Unselected
	if i == s.selected {
		style = theme.Selected
	}

	var b strings.Builder
	b.WriteString(style.Render(fmt.Sprintf("%s %s", marker, l.Date)))
	b.WriteString("  ")
	b.WriteString(theme.Hint.Render(strings.Join(l.Words, " · ")))

	if s.expanded[i] {
		for _, sent := range l.Sentences {
			b.WriteString("\n  ")
			b.WriteString(components.Highlight(sent.Source, l.Words))
			b.WriteString("\n  ")
			b.WriteString(theme.Arabic.Render(sent.Translation))
		}
	}
	return components.Card(b.String(), cw, i == s.selected)
}

// QuizAvailable reports whether the history is long enough for a quiz.
func QuizAvailable(h lessons.History) bool {
	return h.SentenceCount() >= quiz.MinPool
}
