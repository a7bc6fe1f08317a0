package quiz

import "github.com/google/uuid"

// Session walks through a fixed set of questions. Questions are captured at
// creation and never rebuilt.
type Session struct {
	ID        string
	Questions []Question

	index    int
	selected string
	answered bool
	score    int
}

// NewSession starts a session over questions.
func NewSession(questions []Question) *Session {
	return &Session{ID: uuid.NewString(), Questions: questions}
}

// Empty reports whether there was not enough history to build a quiz.
func (s *Session) Empty() bool { return len(s.Questions) == 0 }

// Current returns the question being asked, or false once the session is done.
func (s *Session) Current() (Question, bool) {
	if s.Done() {
		return Question{}, false
	}
	return s.Questions[s.index], true
}

// Answer records option as the answer to the current question and reports
// whether it was correct. Only the first answer to a question counts; later
// calls return the original verdict with accepted=false.
func (s *Session) Answer(option string) (correct, accepted bool) {
	q, ok := s.Current()
	if !ok {
		return false, false
	}
	if s.answered {
		return s.selected == q.CorrectAnswer, false
	}
	s.selected = option
	s.answered = true
	if option == q.CorrectAnswer {
		s.score++
		return true, true
	}
	return false, true
}

// Next moves to the following question. It does nothing until the current
// question is answered.
func (s *Session) Next() {
	if s.Done() || !s.answered {
		return
	}
	s.index++
	s.selected = ""
	s.answered = false
}

// Done reports whether every question has been passed.
func (s *Session) Done() bool { return s.index >= len(s.Questions) }

// Index is the 0-based position of the current question.
func (s *Session) Index() int { return s.index }

// Total is the number of questions in the session.
func (s *Session) Total() int { return len(s.Questions) }

// Score is the number of correct first answers so far.
func (s *Session) Score() int { return s.score }

// Answered reports whether the current question has been answered.
func (s *Session) Answered() bool { return s.answered }

// Selected is the answer given to the current question, if any.
func (s *Session) Selected() string { return s.selected }
