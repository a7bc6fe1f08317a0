// Package lesson shows today's words and sentences with read-aloud and
// pronunciation practice.
package lesson

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/practice"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/badges"
	"github.com/abhisek/lingo/internal/speech"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// submitter is implemented by recognizers that take typed transcripts.
type submitter interface {
	Submit(text string) error
}

// LessonScreen renders the current lesson.
type LessonScreen struct {
	deps screen.Deps
	snap engine.Snapshot

	selected int
	offset   int

	status    map[int]practice.Status
	listening int // sentence index, -1 when idle
	typing    bool
	input     components.TextInput
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.Leaver = (*LessonScreen)(nil)

// New creates a lesson screen for snap.CurrentLesson.
func New(deps screen.Deps, snap engine.Snapshot) *LessonScreen {
	return &LessonScreen{
		deps:      deps,
		snap:      snap,
		status:    make(map[int]practice.Status),
		listening: -1,
		input:     components.NewTextInput("Type what you said and press Enter", 200),
	}
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	return "Today's lesson"
}

func (s *LessonScreen) lesson() *lessons.Lesson {
	return s.snap.State.CurrentLesson
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if s.typing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Stop"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Sentence"},
		{Key: "S", Description: "Listen"},
		{Key: "P", Description: "Practice"},
		{Key: "C", Description: "Complete"},
		{Key: "R", Description: "Review"},
		{Key: "B", Description: "Badges"},
		{Key: "L", Description: "Level"},
		{Key: "N", Description: "New lesson"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		if l := msg.Snapshot.State.CurrentLesson; l == nil || s.lesson() == nil || l.Date != s.lesson().Date {
			s.resetPractice()
		}
		s.snap = msg.Snapshot
		return s, nil

	case recognizerEventMsg:
		return s, s.handleRecognizerEvent(msg)

	case feedbackMsg:
		s.status[msg.sentence] = practice.ApplyFeedback(s.status[msg.sentence], msg.attempt, msg.text)
		return s, nil

	case tea.KeyPressMsg:
		if s.typing {
			return s, s.handleTypingKey(msg)
		}
		return s, s.handleKey(msg)
	}

	if s.typing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	l := s.lesson()
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if l != nil && s.selected < len(l.Sentences)-1 {
			s.selected++
		}
	case "s":
		if sent, ok := s.current(); ok {
			return s.speak(sent.Source)
		}
	case "w":
		if l != nil {
			return s.speak(strings.Join(l.Words, ", "))
		}
	case "p", "space":
		return s.togglePractice(s.selected)
	case "c":
		return s.complete()
	case "r":
		s.stopPractice()
		_ = s.deps.Engine.SetView(engine.ViewReview)
		return screen.Sync()
	case "b":
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: badges.New(s.snap.State.Progress)}
		}
	case "l":
		s.stopPractice()
		return screen.PickLevel()
	case "n":
		s.stopPractice()
		t, err := s.deps.Engine.Retry(context.Background())
		if err != nil {
			return screen.Notice(err.Error())
		}
		return screen.StartFetch(s.deps.Engine, t)
	}
	return nil
}

func (s *LessonScreen) current() (lessons.Sentence, bool) {
	l := s.lesson()
	if l == nil || s.selected < 0 || s.selected >= len(l.Sentences) {
		return lessons.Sentence{}, false
	}
	return l.Sentences[s.selected], true
}

func (s *LessonScreen) speak(text string) tea.Cmd {
	if s.deps.Speaker == nil {
		return screen.Notice(speech.ErrUnavailable.Error())
	}
	if err := s.deps.Speaker.Speak(context.Background(), text); err != nil {
		return screen.Notice(err.Error())
	}
	return nil
}

func (s *LessonScreen) complete() tea.Cmd {
	c, err := s.deps.Engine.CompleteLesson(context.Background())
	if err != nil {
		return screen.Notice(capitalize(err.Error()) + ".")
	}

	notice := engine.CompletedMessage
	for _, b := range c.Awarded {
		notice += fmt.Sprintf("  %s New badge: %s", b.Kind.Icon(), b.Name)
	}
	return tea.Batch(screen.Notice(notice), screen.Sync())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (s *LessonScreen) View(width, height int) string {
	l := s.lesson()
	if l == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render(engine.NoLessonMessage))
	}
	cw := components.ContentWidth(width)

	var top strings.Builder
	title := theme.Title.Render("Daily lesson · " + l.Date)
	if s.snap.CompletedToday() {
		title += "  " + theme.Correct.Render("✓ Completed")
	}
	top.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, title))
	top.WriteString("\n")

	words := make([]string, len(l.Words))
	for i, w := range l.Words {
		words[i] = theme.Word.Render(" " + w + " ")
	}
	top.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(theme.Hint.Render("Words  ")+strings.Join(words, " "), cw, false)))

	var bottom string
	if s.typing {
		bottom = lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.Card(s.input.View(), cw, true))
	} else if !layout.Compact(height) {
		bottom = s.renderGoals(cw, width)
	}

	avail := height - lipgloss.Height(top.String()) - lipgloss.Height(bottom) - 1
	blocks := make([]string, len(l.Sentences))
	for i, sent := range l.Sentences {
		blocks[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderSentence(i, sent, l.Words, cw))
	}
	var list string
	list, s.offset = components.Window(blocks, s.selected, s.offset, max(avail, 1))

	parts := []string{top.String(), list}
	if bottom != "" {
		parts = append(parts, bottom)
	}
	return strings.Join(parts, "\n")
}

func (s *LessonScreen) renderSentence(i int, sent lessons.Sentence, words []string, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%2d. ", i+1)))
	b.WriteString(components.Highlight(sent.Source, words))
	b.WriteString("\n    ")
	b.WriteString(theme.Arabic.Render(sent.Translation))

	if line := renderStatus(s.status[i]); line != "" {
		b.WriteString("\n    ")
		b.WriteString(line)
	}
	return components.Card(b.String(), cw, i == s.selected)
}

func renderStatus(st practice.Status) string {
	switch st.State {
	case practice.Listening:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("🎤 Listening...")
	case practice.Correct:
		return theme.Correct.Render("✓ " + st.Feedback)
	case practice.Incorrect:
		fb := st.Feedback
		if fb == "" {
			fb = "Getting feedback..."
		}
		return theme.Incorrect.Render(fmt.Sprintf("✗ You said: %q", st.Spoken)) + "\n    " +
			lipgloss.NewStyle().Foreground(theme.Text).Render(fb)
	case practice.Error:
		return theme.Incorrect.Render(st.Feedback)
	}
	return ""
}

func (s *LessonScreen) renderGoals(cw, width int) string {
	goals := s.snap.State.Progress.NextGoals()
	if len(goals) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Correct.Render("Every badge unlocked!"))
	}
	lines := make([]string, 0, len(goals))
	for _, g := range goals {
		label := fmt.Sprintf("%s %-18s", g.Badge.Kind.Icon(), g.Badge.Name)
		lines = append(lines, components.NewProgressBar(label, g.Current, g.Badge.Threshold, cw-4).View())
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(strings.Join(lines, "\n"), cw, false))
}
