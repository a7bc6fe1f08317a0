package lessons

import (
	"context"
	"errors"
	"time"
)

// FetchState is the state of the lesson fetch orchestrator.
type FetchState int

const (
	FetchIdle FetchState = iota
	FetchLoading
	FetchReady
	FetchFailed
)

func (s FetchState) String() string {
	switch s {
	case FetchIdle:
		return "idle"
	case FetchLoading:
		return "loading"
	case FetchReady:
		return "ready"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FailureMessage is shown to the learner whenever generation fails.
const FailureMessage = "Failed to generate a new lesson. Please check your connection and try again."

// ErrFetchInFlight is returned when a fetch is requested while one is
// already loading.
var ErrFetchInFlight = errors.New("a lesson is already being generated")

// Ticket identifies one fetch. Only the most recently issued ticket may
// complete a fetch.
type Ticket struct {
	Seq     uint64
	Request Request
}

// Fetcher drives Idle → Loading → {Ready, Failed}. It holds no lock:
// Begin, Finish, Cancel and MarkReady must be serialized by the caller.
// Generate touches no mutable state and may run concurrently with them.
type Fetcher struct {
	gen Generator
	now func() time.Time

	state   FetchState
	message string
	seq     uint64
}

// NewFetcher creates a fetcher. now supplies the clock used to date
// generated lessons; nil means time.Now.
func NewFetcher(gen Generator, now func() time.Time) *Fetcher {
	if now == nil {
		now = time.Now
	}
	return &Fetcher{gen: gen, now: now}
}

// State returns the current state.
func (f *Fetcher) State() FetchState { return f.state }

// Message returns the failure message while Failed, and "" otherwise.
func (f *Fetcher) Message() string { return f.message }

// Begin enters Loading and issues a ticket for req. It is refused while
// another fetch is loading.
func (f *Fetcher) Begin(req Request) (Ticket, error) {
	if f.state == FetchLoading {
		return Ticket{}, ErrFetchInFlight
	}
	f.seq++
	f.state = FetchLoading
	f.message = ""
	return Ticket{Seq: f.seq, Request: req}, nil
}

// Generate calls the generator for t and dates the result with today's
// calendar date.
func (f *Fetcher) Generate(ctx context.Context, t Ticket) (*Lesson, error) {
	content, err := f.gen.Generate(ctx, t.Request)
	if err != nil {
		return nil, err
	}
	return &Lesson{
		Date:      Today(f.now()),
		Words:     content.Words,
		Sentences: content.Sentences,
	}, nil
}

// Finish applies the outcome of t. It returns false, changing nothing,
// when t has been superseded by a newer Begin or a Cancel.
func (f *Fetcher) Finish(t Ticket, lesson *Lesson, err error) bool {
	if t.Seq != f.seq || f.state != FetchLoading {
		return false
	}
	if err != nil || lesson == nil {
		f.state = FetchFailed
		f.message = FailureMessage
		return true
	}
	f.state = FetchReady
	f.message = ""
	return true
}

// Cancel abandons any in-flight fetch and returns to Idle.
func (f *Fetcher) Cancel() {
	f.seq++
	f.state = FetchIdle
	f.message = ""
}

// MarkReady records that a usable lesson is already present.
func (f *Fetcher) MarkReady() {
	f.state = FetchReady
	f.message = ""
}
