// Package layout draws the chrome around every screen: the header bar with
// the learner's level and counters, the key-hint footer, and the notice
// line.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	// ChromeHeight is the rows taken by the header and footer bars.
	ChromeHeight = 6

	compactWidth  = 100
	compactHeight = 30
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Compact reports whether a screen with the given content height should
// drop optional panels.
func Compact(contentHeight int) bool {
	return contentHeight+ChromeHeight < compactHeight
}

// HeaderStats are the ledger counters shown on the right of the header.
type HeaderStats struct {
	Level  string
	Points int
	Streak int
}

// Frame is one rendered terminal frame.
type Frame struct {
	Width, Height int

	Title  string
	Stats  HeaderStats
	Hints  []KeyHint
	Notice string
}

// Narrow reports whether optional footer hints should be left out.
func (f Frame) Narrow() bool {
	return f.Width < compactWidth
}

// Render draws the frame around the content produced by body, which is
// given the width and height left for it.
func (f Frame) Render(body func(width, height int) string) string {
	if f.Width < MinWidth || f.Height < MinHeight {
		return f.tooSmall()
	}

	header := f.header()
	footer := f.footer()
	h := max(f.Height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().
		Width(f.Width).
		Height(h).
		Render(body(f.Width, h))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (f Frame) tooSmall() string {
	return lipgloss.Place(f.Width, f.Height, lipgloss.Center, lipgloss.Center,
		theme.Body.Render(fmt.Sprintf(
			"Terminal too small\n\nNeed %dx%d, have %dx%d",
			MinWidth, MinHeight, f.Width, f.Height,
		)))
}

func (f Frame) header() string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Lingo")
	if f.Stats.Level != "" {
		brand += lipgloss.NewStyle().Foreground(theme.TextDim).Render(" · " + f.Stats.Level)
	}
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	counters := lipgloss.NewStyle().Foreground(theme.Accent).
		Render(fmt.Sprintf("★ %d pts   🔥 %d day", f.Stats.Points, f.Stats.Streak))

	// title centred, brand left, counters right
	inner := max(f.Width-4, 0)
	bw, tw, cw := lipgloss.Width(brand), lipgloss.Width(title), lipgloss.Width(counters)
	gapL := max((inner-tw)/2-bw, 1)
	gapR := max(inner-bw-gapL-tw-cw, 1)

	line := brand + strings.Repeat(" ", gapL) + title + strings.Repeat(" ", gapR) + counters
	return theme.Bar.Width(f.Width).Render(line)
}

func (f Frame) footer() string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	bar := theme.Bar.Width(f.Width).Render("  " + strings.Join(parts, "   "))

	if f.Notice == "" {
		return bar
	}
	notice := lipgloss.NewStyle().
		Width(f.Width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(f.Notice)
	return notice + "\n" + bar
}
