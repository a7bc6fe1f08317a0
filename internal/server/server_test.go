package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/practice"
	"github.com/abhisek/lingo/internal/quiz"
	"github.com/abhisek/lingo/internal/state"
	"github.com/abhisek/lingo/internal/store"
)

type staticGen struct{ err error }

func (g *staticGen) Generate(_ context.Context, req lessons.Request) (*lessons.Content, error) {
	if g.err != nil {
		return nil, g.err
	}
	c := &lessons.Content{Words: []string{"brave", "quiet", "journey", "harvest", "borrow"}}
	for i := range 10 {
		c.Sentences = append(c.Sentences, lessons.Sentence{
			Source:      fmt.Sprintf("Sentence %d is brave.", i),
			Translation: fmt.Sprintf("جملة %d", i),
		})
	}
	return c, nil
}

type echoCoach struct{}

func (echoCoach) Feedback(_ context.Context, expected, spoken string) string {
	return "tip: " + spoken
}

func newTestServer(t *testing.T, gen lessons.Generator) *Server {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	e := engine.New(state.NewAdapter(s.BlobRepo(), nil), gen, engine.Options{
		Now:     func() time.Time { return time.Date(2026, 7, 2, 12, 0, 0, 0, time.Local) },
		Shuffle: func(int, func(i, j int)) {},
		Coach:   echoCoach{},
	})
	e.Startup(context.Background())
	return New(e, nil)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type stateBody struct {
	UserLevel     *string         `json:"userLevel"`
	CurrentLesson *lessons.Lesson `json:"currentLesson"`
	View          string          `json:"view"`
	Screen        string          `json:"screen"`
	Fetch         string          `json:"fetch"`
	Message       string          `json:"message"`
	Theme         string          `json:"theme"`
	NextGoals     []goalJSON      `json:"nextGoals"`
}

func TestGetState_FirstRun(t *testing.T) {
	srv := newTestServer(t, &staticGen{})

	rec := do(t, srv, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	body := decode[stateBody](t, rec)
	assert.Nil(t, body.UserLevel)
	assert.Equal(t, "level-select", body.Screen)
	assert.Equal(t, "light", body.Theme)
	assert.Len(t, body.NextGoals, 2)
}

func TestLevelCompleteAndQuiz(t *testing.T) {
	srv := newTestServer(t, &staticGen{})

	rec := do(t, srv, http.MethodPut, "/api/level", `{"level":"expert"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPut, "/api/level", `{"level":"beginner"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[stateBody](t, rec)
	assert.Equal(t, "lesson", body.Screen)
	assert.Equal(t, "ready", body.Fetch)
	require.NotNil(t, body.CurrentLesson)
	assert.Equal(t, "2026-07-02", body.CurrentLesson.Date)

	rec = do(t, srv, http.MethodPost, "/api/quiz/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	q := decode[quizResponse](t, rec)
	assert.Empty(t, q.Questions)
	assert.Equal(t, quiz.InsufficientHistoryMessage, q.Message)

	rec = do(t, srv, http.MethodPost, "/api/lesson/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	c := decode[completeResponse](t, rec)
	assert.Equal(t, 10, c.Progress.Points)
	assert.Equal(t, engine.CompletedMessage, c.Message)
	assert.Empty(t, c.Awarded)

	rec = do(t, srv, http.MethodPost, "/api/quiz/start", "")
	q = decode[quizResponse](t, rec)
	assert.Len(t, q.Questions, 10)
	assert.NotEmpty(t, q.ID)
}

func TestStartQuiz_OnlyPostChangesView(t *testing.T) {
	srv := newTestServer(t, &staticGen{})
	rec := do(t, srv, http.MethodPut, "/api/level", `{"level":"beginner"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lesson", decode[stateBody](t, rec).View)

	rec = do(t, srv, http.MethodGet, "/api/quiz/start", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	rec = do(t, srv, http.MethodGet, "/api/quiz", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/state", "")
	assert.Equal(t, "lesson", decode[stateBody](t, rec).View)

	rec = do(t, srv, http.MethodPost, "/api/quiz/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, srv, http.MethodGet, "/api/state", "")
	assert.Equal(t, "quiz", decode[stateBody](t, rec).View)
}

func TestCompleteWithoutLesson(t *testing.T) {
	srv := newTestServer(t, &staticGen{})

	rec := do(t, srv, http.MethodPost, "/api/lesson/complete", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRefreshFailure(t *testing.T) {
	srv := newTestServer(t, &staticGen{err: errors.New("offline")})

	rec := do(t, srv, http.MethodPost, "/api/lesson/refresh", "")
	assert.Equal(t, http.StatusConflict, rec.Code, "no level yet")

	rec = do(t, srv, http.MethodPut, "/api/level", `{"level":"Advanced"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[stateBody](t, rec)
	assert.Equal(t, "error", body.Screen)
	assert.Equal(t, "failed", body.Fetch)
	assert.Equal(t, lessons.FailureMessage, body.Message)
}

func TestTheme(t *testing.T) {
	srv := newTestServer(t, &staticGen{})

	rec := do(t, srv, http.MethodPut, "/api/theme", `{"theme":"neon"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPut, "/api/theme", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dark", decode[map[string]string](t, rec)["theme"])

	rec = do(t, srv, http.MethodPut, "/api/theme", `{"theme":"light"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "light", decode[map[string]string](t, rec)["theme"])
}

func TestView(t *testing.T) {
	srv := newTestServer(t, &staticGen{})
	do(t, srv, http.MethodPut, "/api/level", `{"level":"Beginner"}`)

	rec := do(t, srv, http.MethodPut, "/api/view", `{"view":"review"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "review", decode[stateBody](t, rec).Screen)

	rec = do(t, srv, http.MethodPut, "/api/view", `{"view":"settings"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPracticeFeedback(t *testing.T) {
	srv := newTestServer(t, &staticGen{})

	rec := do(t, srv, http.MethodPost, "/api/practice/feedback", `{"expected":"I am brave.","spoken":"i am brave"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	fb := decode[feedbackResponse](t, rec)
	assert.True(t, fb.Correct)
	assert.Equal(t, practice.PerfectMessage, fb.Feedback)

	rec = do(t, srv, http.MethodPost, "/api/practice/feedback", `{"expected":"I am brave.","spoken":"I am grave"}`)
	fb = decode[feedbackResponse](t, rec)
	assert.False(t, fb.Correct)
	assert.Equal(t, "tip: I am grave", fb.Feedback)

	rec = do(t, srv, http.MethodPost, "/api/practice/feedback", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t, &staticGen{})
	do(t, srv, http.MethodGet, "/api/state", "")

	rec := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lingo_http_requests_total{code="200",method="GET",route="/api/state"}`)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, &staticGen{})
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, srv, http.MethodDelete, "/api/state", "").Code)
}
