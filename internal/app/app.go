package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/lesson"
	"github.com/abhisek/lingo/internal/screens/levelselect"
	quizscreen "github.com/abhisek/lingo/internal/screens/quiz"
	"github.com/abhisek/lingo/internal/screens/review"
	"github.com/abhisek/lingo/internal/screens/status"
	"github.com/abhisek/lingo/internal/screens/welcome"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// AppModel is the root Bubble Tea model. The root screen always matches
// the engine's derived screen; other screens are pushed on top of it.
type AppModel struct {
	deps   screen.Deps
	router *router.Router
	snap   engine.Snapshot
	kind   engine.Screen
	ticket *lessons.Ticket
	notice string
	width  int
	height int
}

// newAppModel loads the saved state and picks the first screen.
func newAppModel(deps screen.Deps) AppModel {
	snap, ticket := deps.Engine.Startup(context.Background())
	theme.Apply(theme.ForName(string(snap.State.Theme)))

	m := AppModel{deps: deps, snap: snap, kind: snap.Screen(), ticket: ticket}
	if m.kind == engine.ScreenLevelSelect {
		m.router = router.New(welcome.New(func() screen.Screen {
			return levelselect.New(deps, nil)
		}))
	} else {
		m.router = router.New(m.screenFor(snap))
	}
	return m
}

// screenFor builds the root screen for the snapshot's derived screen.
func (m AppModel) screenFor(snap engine.Snapshot) screen.Screen {
	switch snap.Screen() {
	case engine.ScreenLevelSelect:
		return levelselect.New(m.deps, nil)
	case engine.ScreenLoading:
		return status.New(m.deps, status.Loading, "")
	case engine.ScreenError:
		return status.New(m.deps, status.Failed, snap.Message)
	case engine.ScreenNoLesson:
		return status.New(m.deps, status.NoLesson, "")
	case engine.ScreenReview:
		return review.New(m.deps, snap.State.History)
	case engine.ScreenQuiz:
		return quizscreen.New(m.deps)
	}
	return lesson.New(m.deps, snap)
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.ticket != nil {
		cmds = append(cmds, screen.Fetch(m.deps.Engine, *m.ticket))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.SyncMsg:
		cmd := m.sync(msg.Force)
		return m, cmd

	case screen.NoticeMsg:
		m.notice = msg.Text
		return m, nil

	case screen.PickLevelMsg:
		return m, m.router.Push(levelselect.New(m.deps, m.snap.State.Level))

	case tea.KeyPressMsg:
		m.notice = ""
		switch msg.String() {
		case "ctrl+c":
			m.router.Close()
			return m, tea.Quit
		case "ctrl+t":
			m.deps.Engine.ToggleTheme(context.Background())
			return m, screen.Sync()
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// sync re-reads the engine. The root screen is rebuilt when the derived
// screen changes; otherwise the active screen gets the new snapshot.
func (m *AppModel) sync(force bool) tea.Cmd {
	m.snap = m.deps.Engine.Snapshot()
	theme.Apply(theme.ForName(string(m.snap.State.Theme)))

	kind := m.snap.Screen()
	if kind != m.kind || force {
		m.kind = kind
		return m.router.Reset(m.screenFor(m.snap))
	}
	return m.router.Update(screen.StateMsg{Snapshot: m.snap})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render composes the header, the active screen, and the footer.
func (m AppModel) render() string {
	active := m.router.Active()
	f := layout.Frame{
		Width:  m.width,
		Height: m.height,
		Title:  active.Title(),
		Stats: layout.HeaderStats{
			Points: m.snap.State.Progress.Points,
			Streak: m.snap.State.Progress.Streak,
		},
		Hints:  screen.Hints(active),
		Notice: m.notice,
	}
	if m.snap.State.Level != nil {
		f.Stats.Level = string(*m.snap.State.Level)
	}
	if f.Hints == nil && m.router.Depth() > 1 {
		f.Hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if !f.Narrow() {
		f.Hints = append(f.Hints, layout.KeyHint{Key: "Ctrl+T", Description: "Theme"})
	}
	f.Hints = append(f.Hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	return f.Render(m.router.View)
}

// Run starts the Bubble Tea program.
func Run(deps screen.Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
