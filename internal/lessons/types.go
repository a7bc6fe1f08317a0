package lessons

import (
	"fmt"
	"strings"
	"time"
)

// Level selects the difficulty of generated lessons.
type Level string

const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Advanced     Level = "Advanced"
)

// Levels lists every level in presentation order.
var Levels = []Level{Beginner, Intermediate, Advanced}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// ParseLevel accepts a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q (want Beginner, Intermediate or Advanced)", s)
}

// Sentence is an English example sentence with its Arabic translation.
type Sentence struct {
	Source      string `json:"english"`
	Translation string `json:"arabic"`
}

// Content is what a Generator produces for one level.
type Content struct {
	Words     []string
	Sentences []Sentence
}

// Lesson is the vocabulary set and example sentences for one calendar day.
// Two lessons with the same Date are the same lesson.
type Lesson struct {
	Date      string     `json:"date"`
	Words     []string   `json:"words"`
	Sentences []Sentence `json:"sentences"`
}

// DateLayout is the calendar-date format used for lesson identity.
const DateLayout = "2006-01-02"

// Today returns the local calendar date of now as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// History is the archive of completed lessons, newest first, with at most
// one entry per date.
type History []Lesson

// Prepend returns a new history with l first and any older entry for the
// same date removed. The receiver is not modified.
func (h History) Prepend(l Lesson) History {
	out := make(History, 0, len(h)+1)
	out = append(out, l)
	for _, old := range h {
		if old.Date != l.Date {
			out = append(out, old)
		}
	}
	return out
}

// Find returns the lesson for date, if present.
func (h History) Find(date string) (Lesson, bool) {
	for _, l := range h {
		if l.Date == date {
			return l, true
		}
	}
	return Lesson{}, false
}

// SentenceCount is the number of sentences across all lessons.
func (h History) SentenceCount() int {
	n := 0
	for _, l := range h {
		n += len(l.Sentences)
	}
	return n
}
