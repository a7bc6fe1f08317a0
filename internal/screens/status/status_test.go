package status

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/state"
	"github.com/abhisek/lingo/internal/store"
)

func newEngine(t *testing.T, gen lessons.Generator) *engine.Engine {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "status.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return engine.New(state.NewAdapter(s.BlobRepo(), nil), gen, engine.Options{})
}

func TestLoadingIgnoresKeys(t *testing.T) {
	s := New(screen.Deps{}, Loading, "")
	require.NotNil(t, s.Init())

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(80, 20), "Generating your daily lesson")
}

func TestFailedRetry(t *testing.T) {
	gen := lessons.GeneratorFunc(func(context.Context, lessons.Request) (*lessons.Content, error) {
		return nil, errors.New("boom")
	})
	e := newEngine(t, gen)
	ctx := context.Background()
	tk, err := e.SelectLevel(ctx, lessons.Beginner)
	require.NoError(t, err)
	snap, _ := e.RunFetch(ctx, tk)
	require.Equal(t, engine.ScreenError, snap.Screen())

	s := New(screen.Deps{Engine: e}, Failed, snap.Message)
	assert.Contains(t, s.View(80, 20), snap.Message)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	require.NotNil(t, cmd)
	assert.Equal(t, engine.ScreenLoading, e.Snapshot().Screen())
}

func TestFailedRetryWithoutLevel(t *testing.T) {
	s := New(screen.Deps{Engine: newEngine(t, nil)}, NoLesson, "")
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	require.NotNil(t, cmd)
	assert.Equal(t, screen.NoticeMsg{Text: engine.ErrNoLevel.Error()}, cmd())
}

func TestChangeLevel(t *testing.T) {
	s := New(screen.Deps{}, Failed, "x")
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'l', Text: "l"})
	require.NotNil(t, cmd)
	assert.Equal(t, screen.PickLevelMsg{}, cmd())
}
