package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// ProgressBar shows a counter's progress toward a target, e.g. words
// mastered toward the next badge.
type ProgressBar struct {
	Label   string
	Current int
	Target  int
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, current, target, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Current: current,
		Target:  target,
		Width:   width,
	}
}

// Fraction is Current/Target clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Target <= 0 {
		return 1
	}
	return min(max(float64(p.Current)/float64(p.Target), 0), 1)
}

// View renders the label, the bar, and "current/target".
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	count := fmt.Sprintf("  %d/%d", min(p.Current, p.Target), p.Target)
	barWidth := max(p.Width-lipgloss.Width(result)-len(count), 4)

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(count)

	return result
}
