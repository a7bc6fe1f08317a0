// Package practice models pronunciation practice for one sentence as a state
// machine driven by speech-recognition events.
package practice

import "strings"

// State is the practice state of a sentence.
type State int

const (
	Idle State = iota
	Listening
	Correct
	Incorrect
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Listening:
		return "listening"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Fixed learner-facing messages.
const (
	PerfectMessage          = "Perfect!"
	RecognitionErrorMessage = "Sorry, there was an error with speech recognition."
	UnsupportedMessage      = "Sorry, speech recognition is not available here."
)

// EventKind distinguishes recognizer events.
type EventKind int

const (
	EventStarted EventKind = iota
	EventResult
	EventError
	EventEnded
)

// Event is one message from a recognizer.
type Event struct {
	Kind  EventKind
	Final bool   // EventResult
	Text  string // EventResult
	Code  string // EventError
}

// Status is the full practice status of a sentence. Attempt increases with
// every start so late feedback for an earlier attempt can be recognized.
type Status struct {
	State    State
	Feedback string
	Spoken   string
	Attempt  int
}

// Command tells the caller what to do with the recognizer.
type Command int

const (
	CommandNone Command = iota
	CommandStart
	CommandStop
)

// Toggle is the practice button: it stops a listening recognizer, and
// otherwise clears old feedback and starts a new attempt.
func Toggle(cur Status) (Status, Command) {
	if cur.State == Listening {
		return Status{State: Idle, Attempt: cur.Attempt}, CommandStop
	}
	return Status{State: cur.State, Attempt: cur.Attempt + 1}, CommandStart
}

// Effect is work the caller must perform after a transition.
type Effect int

const (
	EffectNone Effect = iota
	// EffectRequestFeedback asks for coaching on Status.Spoken.
	EffectRequestFeedback
)

// Handle applies ev to cur for the sentence expected. It has no side
// effects; feedback requests are returned as an Effect.
func Handle(cur Status, expected string, ev Event) (Status, Effect) {
	switch ev.Kind {
	case EventStarted:
		return Status{State: Listening, Attempt: cur.Attempt}, EffectNone

	case EventResult:
		if !ev.Final {
			return cur, EffectNone
		}
		next := Status{Spoken: ev.Text, Attempt: cur.Attempt}
		if Normalize(ev.Text) == Normalize(expected) {
			next.State = Correct
			next.Feedback = PerfectMessage
			return next, EffectNone
		}
		next.State = Incorrect
		return next, EffectRequestFeedback

	case EventError:
		return Status{State: Error, Feedback: RecognitionErrorMessage, Attempt: cur.Attempt}, EffectNone

	case EventEnded:
		if cur.State == Listening {
			return Status{State: Idle, Attempt: cur.Attempt}, EffectNone
		}
	}
	return cur, EffectNone
}

// ApplyFeedback stores coaching text for attempt. It is ignored if a newer
// attempt has started or the attempt is no longer Incorrect.
func ApplyFeedback(cur Status, attempt int, text string) Status {
	if cur.Attempt != attempt || cur.State != Incorrect {
		return cur
	}
	cur.Feedback = text
	return cur
}

var punctuation = strings.NewReplacer(".", "", ",", "", "?", "", "!", "")

// Normalize lowercases s, trims it, and drops . , ? and ! for comparison.
func Normalize(s string) string {
	return punctuation.Replace(strings.ToLower(strings.TrimSpace(s)))
}
