// Package quiz runs a comprehension quiz one question at a time.
package quiz

import (
	"errors"
	"time"

	"github.com/tatianab/hikaye/internal/models"
)

// FeedbackDelay is how long feedback stays on screen before Resolve is due.
const FeedbackDelay = 1500 * time.Millisecond

// MaxMistakes is the number of wrong answers, across the whole quiz, that
// makes it a failure.
const MaxMistakes = 2

var (
	ErrFrozen        = errors.New("waiting for feedback to clear")
	ErrFinished      = errors.New("quiz is finished")
	ErrInvalidOption = errors.New("no such option")
	ErrNotFrozen     = errors.New("no answer to resolve")
)

// Feedback describes the answer that was just given.
type Feedback struct {
	Question int
	Option   int
	Correct  bool
}

// Session tracks progress through a quiz.
type Session struct {
	quiz     models.Quiz
	current  int
	mistakes int
	pending  *Feedback
	finished bool
}

func New(q models.Quiz) *Session {
	return &Session{quiz: q, finished: len(q.Questions) == 0}
}

// Current returns the question being asked and its index.
func (s *Session) Current() (models.Question, int) {
	if s.current >= len(s.quiz.Questions) {
		return models.Question{}, s.current
	}
	return s.quiz.Questions[s.current], s.current
}

func (s *Session) Total() int { return len(s.quiz.Questions) }

// Answer selects an option for the current question. Input stays frozen
// until Resolve is called.
func (s *Session) Answer(option int) (Feedback, error) {
	if s.finished {
		return Feedback{}, ErrFinished
	}
	if s.pending != nil {
		return Feedback{}, ErrFrozen
	}
	q := s.quiz.Questions[s.current]
	if option < 0 || option >= len(q.Options) {
		return Feedback{}, ErrInvalidOption
	}

	fb := Feedback{Question: s.current, Option: option, Correct: option == q.CorrectIndex}
	if !fb.Correct {
		s.mistakes++
	}
	s.pending = &fb
	return fb, nil
}

// Pending returns the feedback currently shown, if any.
func (s *Session) Pending() (Feedback, bool) {
	if s.pending == nil {
		return Feedback{}, false
	}
	return *s.pending, true
}

func (s *Session) Frozen() bool { return s.pending != nil }

// Resolve clears the feedback. A correct answer moves on to the next question
// (or finishes the quiz), a wrong one lets the child try the same question again.
func (s *Session) Resolve() (finished bool, err error) {
	if s.pending == nil {
		return s.finished, ErrNotFrozen
	}
	fb := *s.pending
	s.pending = nil
	if fb.Correct {
		if s.current+1 < len(s.quiz.Questions) {
			s.current++
		} else {
			s.finished = true
		}
	}
	return s.finished, nil
}

func (s *Session) Finished() bool { return s.finished }

// Mistakes counts every wrong answer so far, including retries.
func (s *Session) Mistakes() int { return s.mistakes }

// Success reports whether the quiz was passed.
func (s *Session) Success() bool { return s.mistakes < MaxMistakes }
