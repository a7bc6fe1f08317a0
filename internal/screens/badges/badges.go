// Package badges shows the badge catalog with what has been earned.
package badges

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

var kinds = []progress.BadgeKind{progress.BadgeWords, progress.BadgeStreak}

// BadgesScreen lists the catalog one kind at a time.
type BadgesScreen struct {
	ledger       progress.Ledger
	selectedKind int
}

var _ screen.Screen = (*BadgesScreen)(nil)
var _ screen.KeyHintProvider = (*BadgesScreen)(nil)

// New creates a badge screen for ledger.
func New(ledger progress.Ledger) *BadgesScreen {
	return &BadgesScreen{ledger: ledger}
}

func (s *BadgesScreen) Init() tea.Cmd {
	return nil
}

func (s *BadgesScreen) Title() string {
	return "Badges"
}

func (s *BadgesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch kind"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "right", "l":
			s.selectedKind = (s.selectedKind + 1) % len(kinds)
		case "shift+tab", "left", "h":
			s.selectedKind = (s.selectedKind - 1 + len(kinds)) % len(kinds)
		}
	}
	return s, nil
}

// counter returns the ledger value a badge kind is measured against.
func (s *BadgesScreen) counter(k progress.BadgeKind) int {
	if k == progress.BadgeStreak {
		return s.ledger.Streak
	}
	return s.ledger.WordsMastered
}

func (s *BadgesScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\n%d of %d badges earned\n", len(s.ledger.Badges), len(progress.Catalog))))
	b.WriteString("\n")

	var tabs []string
	for i, k := range kinds {
		label := fmt.Sprintf("%s %s (%d)", k.Icon(), k.DisplayName(), s.counter(k))
		if i == s.selectedKind {
			tabs = append(tabs, theme.Selected.Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	kind := kinds[s.selectedKind]
	cw := min(components.ContentWidth(width), 60)
	for _, badge := range progress.Catalog {
		if badge.Kind != kind {
			continue
		}
		var line string
		if s.ledger.HasBadge(badge.Name) {
			line = theme.Correct.Render(fmt.Sprintf("%s %-20s earned", kind.Icon(), badge.Name))
		} else {
			line = components.NewProgressBar(
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %-20s", badge.Name)),
				s.counter(kind), badge.Threshold, cw,
			).View()
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	return b.String()
}
