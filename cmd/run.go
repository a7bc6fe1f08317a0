package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/app"
	"github.com/abhisek/lingo/internal/engine"
	"github.com/abhisek/lingo/internal/lessons"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/practice"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/speech"
	"github.com/abhisek/lingo/internal/state"
	"github.com/abhisek/lingo/internal/store"
)

// eventRetention is how long LLM call records are kept.
const eventRetention = 90 * 24 * time.Hour

// appEnv holds everything a command needs. Close releases it.
type appEnv struct {
	store   *store.Store
	engine  *engine.Engine
	logger  *slog.Logger
	closers []io.Closer
}

func (r *appEnv) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i].Close()
	}
}

// openEnv opens the store and builds the engine. With tui set, logs go
// to a file next to the database so they don't corrupt the screen.
func openEnv(cmd *cobra.Command, tui bool) (*appEnv, error) {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	rt := &appEnv{}
	rt.logger, err = newLogger(cmd, dbPath, tui, rt)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(rt.logger)

	st, err := store.Open(dbPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.store = st
	rt.closers = append(rt.closers, st)

	if n, err := st.EventRepo().PruneLLMEvents(ctx, time.Now().Add(-eventRetention)); err != nil {
		rt.logger.Warn("prune LLM events", "error", err)
	} else if n > 0 {
		rt.logger.Info("pruned old LLM events", "count", n)
	}

	opts := engine.Options{
		GuardRepeatCompletion: guardRepeat(cmd),
		Logger:                rt.logger,
	}
	gen := lessons.Offline

	cfg, err := llm.Resolve()
	if err == nil {
		var provider llm.Provider
		provider, err = llm.NewProvider(ctx, cfg, llm.WithEventRepo(st.EventRepo()), llm.WithLogger(rt.logger))
		if err == nil {
			gen = lessons.NewLLMGenerator(provider, lessons.DefaultConfig())
			opts.Coach = practice.NewFeedbackService(provider, rt.logger)
		}
	}
	if err != nil {
		rt.logger.Warn("LLM provider not configured; lessons cannot be generated", "error", err)
		if !tui {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		}
	}

	adapter := state.NewAdapter(st.BlobRepo(), rt.logger)
	rt.engine = engine.New(adapter, gen, opts)
	return rt, nil
}

func newLogger(cmd *cobra.Command, dbPath string, tui bool, rt *appEnv) (*slog.Logger, error) {
	level := slog.LevelWarn
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	if !tui {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
	}

	logPath := strings.TrimSuffix(dbPath, filepath.Ext(dbPath)) + ".log"
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	rt.closers = append(rt.closers, f)
	if level > slog.LevelInfo {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})), nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	speaker, closer := speech.NewSpeaker(cmd.Context(), speech.ConfigFromEnv(), rt.logger)
	defer closer.Close()

	return app.Run(screen.Deps{
		Engine:     rt.engine,
		Speaker:    speaker,
		Recognizer: speech.NewRecognizer(speech.ConfigFromEnv()),
	})
}
