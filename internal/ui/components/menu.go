package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// MenuItem is one numbered choice in a Menu.
type MenuItem struct {
	Label       string
	Description string
	Action      func() tea.Cmd
	Disabled    bool

	// Current marks the saved choice, e.g. the learner's level.
	Current bool
}

// Menu is a vertical list of numbered choices. Arrow keys move the cursor;
// enter or the item's number picks it.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the cursor on the current item, or on the
// first enabled one.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	for i, item := range items {
		if item.Disabled {
			continue
		}
		if item.Current {
			m.Selected = i
			break
		}
		if m.Selected < 0 {
			m.Selected = i
		}
	}
	m.Selected = max(m.Selected, 0)
	return m
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.Selected = m.step(-1)
	case "down", "j":
		m.Selected = m.step(+1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

// step returns the next enabled index in direction dir, or the current
// one at either end.
func (m Menu) step(dir int) int {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		label := fmt.Sprintf("%d. %s", i+1, item.Label)
		if item.Current {
			label += lipgloss.NewStyle().Foreground(theme.Accent).Render("  ● current")
		}

		switch {
		case item.Disabled:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + label))
		default:
			b.WriteString(theme.Unselected.Render("    " + label))
		}
		b.WriteString("\n")
		if item.Description != "" {
			b.WriteString(theme.Hint.Render("       " + item.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}
