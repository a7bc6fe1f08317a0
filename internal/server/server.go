// Package server exposes the engine as a small JSON API on localhost.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/lingo/internal/engine"
)

// DefaultAddr is where `lingo serve` listens unless told otherwise.
const DefaultAddr = "127.0.0.1:8787"

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingo_http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"route", "method", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lingo_http_request_duration_seconds",
			Help:    "Time spent serving API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	lessonFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingo_lesson_fetches_total",
			Help: "Lesson fetches by outcome",
		},
		[]string{"outcome"},
	)

	lessonsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lingo_lessons_completed_total",
			Help: "Total number of completed lessons",
		},
	)
)

// Server routes API requests to an engine.
type Server struct {
	engine *engine.Engine
	logger *slog.Logger
	router *mux.Router
}

// New creates a server for e. A nil logger uses slog.Default().
func New(e *engine.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{engine: e, logger: logger, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.observe)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", s.getState).Methods(http.MethodGet)
	api.HandleFunc("/level", s.putLevel).Methods(http.MethodPut)
	api.HandleFunc("/lesson/refresh", s.refreshLesson).Methods(http.MethodPost)
	api.HandleFunc("/lesson/complete", s.completeLesson).Methods(http.MethodPost)
	api.HandleFunc("/quiz/start", s.startQuiz).Methods(http.MethodPost)
	api.HandleFunc("/theme", s.putTheme).Methods(http.MethodPut)
	api.HandleFunc("/view", s.putView).Methods(http.MethodPut)
	api.HandleFunc("/practice/feedback", s.practiceFeedback).Methods(http.MethodPost)

	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until the server fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("serving API", "addr", addr)
	return srv.ListenAndServe()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// observe tags each request with an ID, logs it, and records metrics.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		timer := prometheus.NewTimer(requestDuration.WithLabelValues(route))
		start := time.Now()
		next.ServeHTTP(rec, r)
		timer.ObserveDuration()

		requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		s.logger.Debug("api request",
			"id", id,
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
