package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/practice"
	"github.com/abhisek/lingo/internal/speech"
)

// Deps are the collaborators screens act through.
type Deps struct {
	Engine     *engine.Engine
	Speaker    speech.Speaker
	Recognizer practice.Recognizer
}

// SyncMsg asks the app to show the screen matching the engine's current
// state. Force rebuilds the screen even if it is already showing.
type SyncMsg struct {
	Force bool
}

// NoticeMsg shows a one-line message until the next key press.
type NoticeMsg struct {
	Text string
}

// Sync returns a command that emits SyncMsg.
func Sync() tea.Cmd {
	return func() tea.Msg { return SyncMsg{} }
}

// Notice returns a command that emits NoticeMsg.
func Notice(text string) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Text: text} }
}

// Fetch runs the lesson fetch for t off the UI goroutine and syncs when it
// finishes, whatever the outcome.
func Fetch(e *engine.Engine, t lessons.Ticket) tea.Cmd {
	return func() tea.Msg {
		e.RunFetch(context.Background(), t)
		return SyncMsg{}
	}
}

// StartFetch shows the loading screen and then runs the fetch.
func StartFetch(e *engine.Engine, t lessons.Ticket) tea.Cmd {
	return tea.Sequence(Sync(), Fetch(e, t))
}

// PickLevelMsg asks the app to open the level picker over the current screen.
type PickLevelMsg struct{}

// PickLevel returns a command that emits PickLevelMsg.
func PickLevel() tea.Cmd {
	return func() tea.Msg { return PickLevelMsg{} }
}

// StateMsg delivers a fresh snapshot to the active screen when the app
// keeps it after a sync.
type StateMsg struct {
	Snapshot engine.Snapshot
}
