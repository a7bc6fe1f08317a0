package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// MultiChoice asks one question with lettered options. The first answer
// is final; afterwards the right option shows green and a wrong pick red.
type MultiChoice struct {
	question string
	options  []string
	answer   int // -1 when no option is right
	cursor   int
	picked   int // -1 until answered
}

// NewMultiChoice creates a selector whose right option is the one equal
// to correct.
func NewMultiChoice(question string, options []string, correct string) MultiChoice {
	m := MultiChoice{question: question, options: options, answer: -1, picked: -1}
	for i, o := range options {
		if o == correct {
			m.answer = i
			break
		}
	}
	return m
}

func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || m.Answered() {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.options)-1)
	case "enter":
		m.picked = m.cursor
	default:
		// options are lettered a, b, c...
		if len(key) == 1 {
			if i := int(strings.ToLower(key)[0]) - 'a'; i >= 0 && i < len(m.options) {
				m.cursor, m.picked = i, i
			}
		}
	}
	return m, nil
}

func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Width(width).Render(m.question))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		marker := "  "
		if i == m.cursor && !m.Answered() {
			marker = "▸ "
		}
		line := marker + string(rune('A'+i)) + ")  " + opt
		b.WriteString(m.optionStyle(i).Width(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m MultiChoice) optionStyle(i int) lipgloss.Style {
	switch {
	case !m.Answered() && i == m.cursor:
		return theme.Selected
	case !m.Answered():
		return theme.Unselected
	case i == m.answer:
		return theme.Correct
	case i == m.picked:
		return theme.Incorrect
	default:
		return theme.Hint
	}
}

// Answered reports whether an option has been picked.
func (m MultiChoice) Answered() bool {
	return m.picked >= 0
}

// Chosen returns the picked option.
func (m MultiChoice) Chosen() (string, bool) {
	if !m.Answered() {
		return "", false
	}
	return m.options[m.picked], true
}

func (m MultiChoice) IsCorrect() bool {
	return m.Answered() && m.picked == m.answer
}
