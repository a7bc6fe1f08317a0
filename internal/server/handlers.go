package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/practice"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/quiz"
	"github.com/abhisek/lingo/internal/state"
)

type goalJSON struct {
	Badge     string `json:"badge"`
	Kind      string `json:"kind"`
	Current   int    `json:"current"`
	Threshold int    `json:"threshold"`
	Remaining int    `json:"remaining"`
}

type stateResponse struct {
	state.AppState
	View           string     `json:"view"`
	Screen         string     `json:"screen"`
	Fetch          string     `json:"fetch"`
	Message        string     `json:"message,omitempty"`
	Today          string     `json:"today"`
	CompletedToday bool       `json:"completedToday"`
	NextGoals      []goalJSON `json:"nextGoals"`
}

func newStateResponse(snap engine.Snapshot) stateResponse {
	resp := stateResponse{
		AppState:       snap.State,
		View:           snap.View.String(),
		Screen:         string(snap.Screen()),
		Fetch:          snap.Fetch.String(),
		Message:        snap.Message,
		Today:          snap.Today,
		CompletedToday: snap.CompletedToday(),
		NextGoals:      []goalJSON{},
	}
	if resp.Screen == string(engine.ScreenNoLesson) {
		resp.Message = engine.NoLessonMessage
	}
	for _, g := range snap.State.Progress.NextGoals() {
		resp.NextGoals = append(resp.NextGoals, goalJSON{
			Badge:     g.Badge.Name,
			Kind:      g.Badge.Kind.DisplayName(),
			Current:   g.Current,
			Threshold: g.Badge.Threshold,
			Remaining: g.Remaining(),
		})
	}
	return resp
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, newStateResponse(s.engine.Snapshot()))
}

func (s *Server) putLevel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Level string `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	level, err := lessons.ParseLevel(req.Level)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ticket, err := s.engine.SelectLevel(r.Context(), level)
	if err != nil {
		s.fetchError(w, err)
		return
	}
	s.runFetch(w, r, ticket)
}

func (s *Server) refreshLesson(w http.ResponseWriter, r *http.Request) {
	ticket, err := s.engine.Retry(r.Context())
	if err != nil {
		s.fetchError(w, err)
		return
	}
	s.runFetch(w, r, ticket)
}

// runFetch generates the lesson within the request and replies with the
// resulting state. A failed generation is still a 200 carrying the
// failed fetch state and its message.
func (s *Server) runFetch(w http.ResponseWriter, r *http.Request, t lessons.Ticket) {
	snap, applied := s.engine.RunFetch(r.Context(), t)
	switch {
	case !applied:
		lessonFetches.WithLabelValues("superseded").Inc()
		respondWithError(w, http.StatusConflict, "the lesson request was superseded")
		return
	case snap.Fetch == lessons.FetchFailed:
		lessonFetches.WithLabelValues("failed").Inc()
	default:
		lessonFetches.WithLabelValues("ready").Inc()
	}
	respondWithJSON(w, http.StatusOK, newStateResponse(snap))
}

func (s *Server) fetchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lessons.ErrFetchInFlight), errors.Is(err, engine.ErrNoLevel):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("lesson fetch request failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

type completeResponse struct {
	Progress progress.Ledger `json:"progress"`
	Awarded  []string        `json:"awarded"`
	Message  string          `json:"message"`
}

func (s *Server) completeLesson(w http.ResponseWriter, r *http.Request) {
	c, err := s.engine.CompleteLesson(r.Context())
	switch {
	case errors.Is(err, engine.ErrNoLevel), errors.Is(err, engine.ErrNoLesson), errors.Is(err, engine.ErrAlreadyCompleted):
		respondWithError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	lessonsCompleted.Inc()

	resp := completeResponse{Progress: c.Ledger, Awarded: []string{}, Message: engine.CompletedMessage}
	for _, b := range c.Awarded {
		resp.Awarded = append(resp.Awarded, b.Name)
	}
	respondWithJSON(w, http.StatusOK, resp)
}

type quizResponse struct {
	ID        string          `json:"id"`
	Questions []quiz.Question `json:"questions"`
	Message   string          `json:"message,omitempty"`
}

// startQuiz builds a fresh session from the history and switches the view
// to the quiz.
func (s *Server) startQuiz(w http.ResponseWriter, r *http.Request) {
	session := s.engine.StartQuiz()
	resp := quizResponse{ID: session.ID, Questions: session.Questions}
	if session.Empty() {
		resp.Questions = []quiz.Question{}
		resp.Message = quiz.InsufficientHistoryMessage
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// putTheme sets the theme, or toggles it when the body names none.
func (s *Server) putTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	theme := state.Theme(req.Theme)
	if req.Theme == "" {
		theme = s.engine.ToggleTheme(r.Context())
	} else if err := s.engine.SetTheme(r.Context(), theme); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"theme": string(theme)})
}

func (s *Server) putView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		View string `json:"view"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	v, err := engine.ParseView(req.View)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	_ = s.engine.SetView(v)
	respondWithJSON(w, http.StatusOK, newStateResponse(s.engine.Snapshot()))
}

type feedbackRequest struct {
	Expected string `json:"expected"`
	Spoken   string `json:"spoken"`
}

type feedbackResponse struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
}

// practiceFeedback grades one spoken attempt the same way the practice
// state machine does, asking the coach only for a mismatch.
func (s *Server) practiceFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Expected == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	st, effect := practice.Handle(practice.Status{State: practice.Listening}, req.Expected,
		practice.Event{Kind: practice.EventResult, Final: true, Text: req.Spoken})
	if effect == practice.EffectRequestFeedback {
		st = practice.ApplyFeedback(st, st.Attempt, s.engine.PracticeFeedback(r.Context(), req.Expected, req.Spoken))
	}
	respondWithJSON(w, http.StatusOK, feedbackResponse{
		Correct:  st.State == practice.Correct,
		Feedback: st.Feedback,
	})
}
