package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// ContentWidth returns the inner width every card on a screen shares.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 90)
}

// Card wraps content in a rounded border at content width cw.
func Card(content string, cw int, focused bool) string {
	border := theme.Border
	if focused {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Padding(0, 1).
		Render(content)
}

// Center places content in the middle of a width x height box.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
