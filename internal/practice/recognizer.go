package practice

import (
	"context"
	"errors"
)

// ErrNoRecognizer is returned when speech recognition is unavailable.
var ErrNoRecognizer = errors.New("speech recognition is not available")

// Recognizer transcribes one utterance. Start begins listening and returns
// a channel of events that is closed after EventEnded. Stop ends listening
// early; it is safe to call when not listening.
type Recognizer interface {
	Start(ctx context.Context) (<-chan Event, error)
	Stop()
}
