// Package quiz runs a multiple-choice review quiz over past lessons.
package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/quiz"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// QuizScreen asks each question of one session in turn.
type QuizScreen struct {
	deps    screen.Deps
	session *quiz.Session
	choice  components.MultiChoice
	correct bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New starts a fresh quiz session from the engine's history.
func New(deps screen.Deps) *QuizScreen {
	s := &QuizScreen{deps: deps, session: deps.Engine.StartQuiz()}
	s.loadQuestion()
	return s
}

func (s *QuizScreen) loadQuestion() {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	s.correct = false
	s.choice = components.NewMultiChoice(
		fmt.Sprintf("Which sentence uses the word %q?", q.TargetWord),
		q.Options, q.CorrectAnswer)
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session.Empty():
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.session.Done():
		return []layout.KeyHint{
			{Key: "R", Description: "Try again"},
			{Key: "Esc", Description: "Back"},
		}
	case s.session.Answered():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if kmsg.String() == "esc" {
		_ = s.deps.Engine.SetView(engine.ViewReview)
		return s, screen.Sync()
	}

	switch {
	case s.session.Empty():
		return s, nil

	case s.session.Done():
		if kmsg.String() == "r" {
			return s, func() tea.Msg { return screen.SyncMsg{Force: true} }
		}
		return s, nil

	case s.session.Answered():
		if kmsg.String() == "enter" || kmsg.String() == "space" {
			s.session.Next()
			s.loadQuestion()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(kmsg)
	if chosen, ok := s.choice.Chosen(); ok {
		s.correct, _ = s.session.Answer(chosen)
	}
	return s, cmd
}

func (s *QuizScreen) View(width, height int) string {
	if s.session.Empty() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render(quiz.InsufficientHistoryMessage))
	}
	if s.session.Done() {
		return s.renderScore(width, height)
	}

	q, _ := s.session.Current()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.session.Index()+1, s.session.Total())))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View(cw - 6))

	if s.session.Answered() {
		b.WriteString("\n")
		if s.correct {
			b.WriteString(theme.Correct.Render("✓ Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("✗ Not quite."))
		}
		b.WriteString("\n")
		b.WriteString(theme.Arabic.Render(q.Translation))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Press Enter to continue"))
	}

	card := components.Card(b.String(), cw, true)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *QuizScreen) renderScore(width, height int) string {
	score, total := s.session.Score(), s.session.Total()

	verdict := "Keep practicing!"
	switch {
	case score == total:
		verdict = "Perfect score!"
	case score*2 >= total:
		verdict = "Nice work!"
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Quiz complete"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("You scored %d out of %d", score, total)))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(verdict))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("", score, total, 30).View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
