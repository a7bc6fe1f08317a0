package speech

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"

	"github.com/abhisek/lingo/internal/practice"
)

// ErrNotListening is returned by TypedRecognizer.Submit outside an attempt.
var ErrNotListening = errors.New("not listening")

// TypedRecognizer is a recognizer for terminals without a microphone: the
// learner types what they said and Submit delivers it as the final result.
type TypedRecognizer struct {
	mu sync.Mutex
	ch chan practice.Event
}

// NewTypedRecognizer creates an idle typed recognizer.
func NewTypedRecognizer() *TypedRecognizer { return &TypedRecognizer{} }

// Start begins an attempt, ending any attempt already in progress.
func (r *TypedRecognizer) Start(context.Context) (<-chan practice.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endLocked()
	r.ch = make(chan practice.Event, 3)
	r.ch <- practice.Event{Kind: practice.EventStarted}
	return r.ch, nil
}

// Submit delivers text as the final transcript and ends the attempt.
func (r *TypedRecognizer) Submit(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ch == nil {
		return ErrNotListening
	}
	r.ch <- practice.Event{Kind: practice.EventResult, Final: true, Text: text}
	r.endLocked()
	return nil
}

// Listening reports whether an attempt is in progress.
func (r *TypedRecognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ch != nil
}

// Stop ends the attempt without a result.
func (r *TypedRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endLocked()
}

func (r *TypedRecognizer) endLocked() {
	if r.ch == nil {
		return
	}
	r.ch <- practice.Event{Kind: practice.EventEnded}
	close(r.ch)
	r.ch = nil
}

// CommandRecognizer runs an external speech-to-text command per attempt
// and treats its trimmed stdout as the final transcript.
type CommandRecognizer struct {
	argv []string

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewCommandRecognizer creates a recognizer for a command line such as
// "whisper-listen --lang en".
func NewCommandRecognizer(command string) *CommandRecognizer {
	return &CommandRecognizer{argv: strings.Fields(command)}
}

// Start launches the command.
func (r *CommandRecognizer) Start(ctx context.Context) (<-chan practice.Event, error) {
	if len(r.argv) == 0 {
		return nil, practice.ErrNoRecognizer
	}
	if _, err := exec.LookPath(r.argv[0]); err != nil {
		return nil, practice.ErrNoRecognizer
	}

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	ch := make(chan practice.Event, 3)
	ch <- practice.Event{Kind: practice.EventStarted}

	go func() {
		defer close(ch)
		defer cancel()

		var out bytes.Buffer
		cmd := exec.CommandContext(runCtx, r.argv[0], r.argv[1:]...)
		cmd.Stdout = &out
		err := cmd.Run()

		switch {
		case runCtx.Err() != nil:
			// stopped
		case err != nil:
			ch <- practice.Event{Kind: practice.EventError, Code: "command-failed"}
		case strings.TrimSpace(out.String()) == "":
			ch <- practice.Event{Kind: practice.EventError, Code: "no-speech"}
		default:
			ch <- practice.Event{Kind: practice.EventResult, Final: true, Text: strings.TrimSpace(out.String())}
		}
		ch <- practice.Event{Kind: practice.EventEnded}
	}()
	return ch, nil
}

// Stop cancels a running command.
func (r *CommandRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// NewRecognizer returns the recognizer described by cfg.
func NewRecognizer(cfg Config) practice.Recognizer {
	if cfg.STTCommand != "" {
		return NewCommandRecognizer(cfg.STTCommand)
	}
	return NewTypedRecognizer()
}
