package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	left    int
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) Leave()               { s.left++ }

func TestPushPop(t *testing.T) {
	lesson := &stubScreen{title: "lesson"}
	r := New(lesson)

	picker := &stubScreen{title: "level"}
	r.Push(picker)
	require.Equal(t, 2, r.Depth())
	assert.True(t, picker.initRan)
	assert.Same(t, picker, r.Active())
	assert.Same(t, lesson, r.Root())

	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, 1, picker.left)
	assert.Zero(t, lesson.left)

	r.Pop()
	assert.Equal(t, 1, r.Depth(), "root is never popped")
	assert.Zero(t, lesson.left)
}

func TestReplace(t *testing.T) {
	welcome := &stubScreen{title: "welcome"}
	r := New(welcome)

	picker := &stubScreen{title: "level"}
	r.Update(ReplaceScreenMsg{Screen: picker})

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "level", r.View(80, 24))
	assert.True(t, picker.initRan)
	assert.Equal(t, 1, welcome.left)
}

func TestReset(t *testing.T) {
	root := &stubScreen{title: "lesson"}
	badges := &stubScreen{title: "badges"}
	r := New(root)
	r.Push(badges)

	review := &stubScreen{title: "review"}
	r.Reset(review)

	require.Equal(t, 1, r.Depth())
	assert.Same(t, review, r.Active())
	assert.True(t, review.initRan)
	assert.Equal(t, 1, root.left)
	assert.Equal(t, 1, badges.left)
	assert.Zero(t, review.left)
}

func TestClose(t *testing.T) {
	root := &stubScreen{title: "lesson"}
	r := New(root)
	r.Close()

	assert.Equal(t, 1, root.left)
	assert.Equal(t, "lesson", r.View(80, 24), "stack survives for the last frame")
}

func TestUpdateForwardsToActive(t *testing.T) {
	root := &stubScreen{title: "lesson"}
	r := New(root)
	r.Update(PushScreenMsg{Screen: &stubScreen{title: "level"}})

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	top := r.Active().(*stubScreen)
	assert.Len(t, top.got, 1)
	assert.Empty(t, root.got)

	r.Update(PopScreenMsg{})
	assert.Equal(t, "lesson", r.View(80, 24))
}
