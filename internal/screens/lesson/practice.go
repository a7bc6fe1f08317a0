package lesson

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/practice"
	"github.com/abhisek/lingo/internal/screen"
)

// recognizerEventMsg carries one recognizer event for an attempt. ok is
// false once the event channel is closed.
type recognizerEventMsg struct {
	sentence int
	attempt  int
	ev       practice.Event
	ok       bool
	ch       <-chan practice.Event
}

// feedbackMsg carries coaching for an incorrect attempt.
type feedbackMsg struct {
	sentence int
	attempt  int
	text     string
}

func waitEvent(ch <-chan practice.Event, sentence, attempt int) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		return recognizerEventMsg{sentence: sentence, attempt: attempt, ev: ev, ok: ok, ch: ch}
	}
}

// togglePractice starts or stops practice for sentence i. Only one
// sentence listens at a time.
func (s *LessonScreen) togglePractice(i int) tea.Cmd {
	l := s.lesson()
	if l == nil || i < 0 || i >= len(l.Sentences) {
		return nil
	}
	if s.listening >= 0 && s.listening != i {
		s.stopPractice()
	}

	next, cmd := practice.Toggle(s.status[i])
	switch cmd {
	case practice.CommandStop:
		s.status[i] = next
		s.stopRecognizer()
		return nil

	case practice.CommandStart:
		if s.deps.Recognizer == nil {
			return s.unsupported()
		}
		ch, err := s.deps.Recognizer.Start(context.Background())
		if errors.Is(err, practice.ErrNoRecognizer) {
			return s.unsupported()
		}
		if err != nil {
			return s.notice(practice.RecognitionErrorMessage)
		}
		s.status[i] = next
		s.listening = i

		cmds := []tea.Cmd{waitEvent(ch, i, next.Attempt)}
		if _, ok := s.deps.Recognizer.(submitter); ok {
			s.typing = true
			s.input.Reset()
			cmds = append(cmds, s.input.Init())
		}
		return tea.Batch(cmds...)
	}
	return nil
}

func (s *LessonScreen) unsupported() tea.Cmd {
	return s.notice(practice.UnsupportedMessage)
}

func (s *LessonScreen) notice(text string) tea.Cmd {
	return screen.Notice(text)
}

// stopPractice stops a listening sentence, returning it to Idle.
func (s *LessonScreen) stopPractice() {
	if s.listening < 0 {
		return
	}
	if next, cmd := practice.Toggle(s.status[s.listening]); cmd == practice.CommandStop {
		s.status[s.listening] = next
	}
	s.stopRecognizer()
}

// Leave releases the microphone when the app navigates away.
func (s *LessonScreen) Leave() {
	s.stopPractice()
}

func (s *LessonScreen) stopRecognizer() {
	if s.deps.Recognizer != nil {
		s.deps.Recognizer.Stop()
	}
	s.listening = -1
	s.typing = false
}

// resetPractice forgets every attempt, e.g. when a new lesson arrives.
func (s *LessonScreen) resetPractice() {
	s.stopPractice()
	s.status = make(map[int]practice.Status)
	s.selected = 0
	s.offset = 0
}

func (s *LessonScreen) handleRecognizerEvent(msg recognizerEventMsg) tea.Cmd {
	cur := s.status[msg.sentence]
	if !msg.ok {
		if s.listening == msg.sentence && cur.Attempt == msg.attempt {
			s.listening = -1
			s.typing = false
		}
		return nil
	}
	next := waitEvent(msg.ch, msg.sentence, msg.attempt)
	if cur.Attempt != msg.attempt {
		// drain a superseded attempt
		return next
	}

	l := s.lesson()
	if l == nil || msg.sentence >= len(l.Sentences) {
		return next
	}
	expected := l.Sentences[msg.sentence].Source

	st, effect := practice.Handle(cur, expected, msg.ev)
	s.status[msg.sentence] = st
	if st.State != practice.Listening && s.listening == msg.sentence {
		s.listening = -1
		s.typing = false
	}

	if effect != practice.EffectRequestFeedback {
		return next
	}
	engine := s.deps.Engine
	sentence, attempt, spoken := msg.sentence, st.Attempt, st.Spoken
	return tea.Batch(next, func() tea.Msg {
		return feedbackMsg{
			sentence: sentence,
			attempt:  attempt,
			text:     engine.PracticeFeedback(context.Background(), expected, spoken),
		}
	})
}

func (s *LessonScreen) handleTypingKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.stopPractice()
		return nil
	case "enter":
		sub, ok := s.deps.Recognizer.(submitter)
		if !ok {
			return nil
		}
		text := s.input.Value()
		s.input.Reset()
		s.typing = false
		if err := sub.Submit(text); err != nil {
			return s.notice(practice.RecognitionErrorMessage)
		}
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}
