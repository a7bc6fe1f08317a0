package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is one color scheme.
type Palette struct {
	Name      string
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgCard    color.Color
	Border    color.Color
	Highlight color.Color
}

var Light = Palette{
	Name:      "light",
	Primary:   lipgloss.Color("#4F46E5"), // Indigo
	Secondary: lipgloss.Color("#0D9488"), // Teal
	Accent:    lipgloss.Color("#EA580C"), // Orange
	Success:   lipgloss.Color("#16A34A"),
	Error:     lipgloss.Color("#DC2626"),
	Text:      lipgloss.Color("#1E293B"),
	TextDim:   lipgloss.Color("#64748B"),
	BgCard:    lipgloss.Color("#E2E8F0"),
	Border:    lipgloss.Color("#CBD5E1"),
	Highlight: lipgloss.Color("#FDE68A"),
}

var Dark = Palette{
	Name:      "dark",
	Primary:   lipgloss.Color("#818CF8"),
	Secondary: lipgloss.Color("#2DD4BF"),
	Accent:    lipgloss.Color("#FB923C"),
	Success:   lipgloss.Color("#22C55E"),
	Error:     lipgloss.Color("#F43F5E"),
	Text:      lipgloss.Color("#F8FAFC"),
	TextDim:   lipgloss.Color("#94A3B8"),
	BgCard:    lipgloss.Color("#1E293B"),
	Border:    lipgloss.Color("#334155"),
	Highlight: lipgloss.Color("#854D0E"),
}

// Active colors. Apply replaces them.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgCard    color.Color
	Border    color.Color
	Highlight color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
	Word     lipgloss.Style
	Arabic   lipgloss.Style
)

// Layout
var (
	Bar  lipgloss.Style
	Card lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
)

var current = Light

func init() { Apply(Light) }

// Current returns the palette last applied.
func Current() Palette { return current }

// ForName returns the palette called name, defaulting to Light.
func ForName(name string) Palette {
	if name == Dark.Name {
		return Dark
	}
	return Light
}

// Apply makes p the active palette and rebuilds every style.
func Apply(p Palette) {
	current = p

	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Success = p.Success
	Error = p.Error
	Text = p.Text
	TextDim = p.TextDim
	BgCard = p.BgCard
	Border = p.Border
	Highlight = p.Highlight

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Word = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text).
		Background(Highlight)

	Arabic = lipgloss.NewStyle().
		Foreground(Secondary)

	Bar = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)
}
