// Package screen defines what the app shell expects from each screen and
// the messages screens use to talk back to it.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/ui/layout"
)

// Screen is one page of the TUI. The app draws the header and footer;
// a screen only renders the content area it is given.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the centre of the header.
	Title() string
}

// KeyHintProvider is implemented by screens that list their own keys in
// the footer.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is implemented by screens holding resources that must be
// released when the screen is navigated away from, such as an open
// microphone.
type Leaver interface {
	Leave()
}

// Hints returns s's footer hints, or nil when it has none.
func Hints(s Screen) []layout.KeyHint {
	if p, ok := s.(KeyHintProvider); ok {
		return p.KeyHints()
	}
	return nil
}

// Leave releases s's resources if it holds any.
func Leave(s Screen) {
	if l, ok := s.(Leaver); ok {
		l.Leave()
	}
}
