// Package router keeps the stack of screens the app shell draws. The root
// mirrors the engine's current screen; overlays such as the level picker
// or badges are pushed above it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/screen"
)

// PushScreenMsg opens a screen above the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the top screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen, e.g. welcome for the level picker.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router manages a stack of screens. Screens removed from the stack are
// told to leave so they can release the microphone or speaker.
type Router struct {
	stack []screen.Screen
}

// New creates a Router showing root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s above the current screen.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen. The root is never popped.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	top := len(r.stack) - 1
	screen.Leave(r.stack[top])
	r.stack[top] = nil
	r.stack = r.stack[:top]
	return nil
}

// Replace swaps the top screen for s.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	top := len(r.stack) - 1
	screen.Leave(r.stack[top])
	r.stack[top] = s
	return s.Init()
}

// Reset closes every screen and makes s the new root.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	r.Close()
	r.stack = []screen.Screen{s}
	return s.Init()
}

// Close tells every screen to leave. The stack is kept so the final frame
// can still render.
func (r *Router) Close() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		screen.Leave(r.stack[i])
	}
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Root returns the bottom screen, the one that mirrors the engine.
func (r *Router) Root() screen.Screen {
	return r.stack[0]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	top := len(r.stack) - 1
	updated, cmd := r.stack[top].Update(msg)
	r.stack[top] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
