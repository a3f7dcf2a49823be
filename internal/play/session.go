// Package play runs a single lesson: answer checking, retries, skips,
// combos, timing and resumable checkpoints. It has no UI dependencies.
package play

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/ledger"
	"github.com/abhisek/questisland/internal/lesson"
	"github.com/abhisek/questisland/internal/profile"
	"github.com/abhisek/questisland/internal/rewards"
)

// Phase is the current step of a lesson.
type Phase int

const (
	PhaseAnswering Phase = iota // Waiting for an answer
	PhaseFeedback               // Showing the result of the last answer
	PhaseFinished               // All questions done
)

// ErrWrongPhase is returned when an action is not valid right now.
var ErrWrongPhase = errors.New("action not allowed in current phase")

// Result is the outcome of one answer.
type Result struct {
	Correct     bool
	Answer      string
	Explanation string
	Combo       int
}

// Session tracks one lesson in progress.
type Session struct {
	lesson *lesson.Lesson
	index  int
	phase  Phase
	last   Result

	combo         int
	maxCombo      int
	mistakesByCat bank.CategoryCounts
	wrong         []string
	skipped       []string

	accumulated time.Duration
	resumedAt   time.Time
	now         func() time.Time
}

// New starts l from the first question. A nil now uses time.Now.
func New(l *lesson.Lesson, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{lesson: l, now: now}
	s.resumedAt = now()
	if len(l.Questions) == 0 {
		s.phase = PhaseFinished
	}
	return s
}

// Resume continues l from a checkpoint saved for the same day.
func Resume(l *lesson.Lesson, cp profile.Checkpoint, now func() time.Time) (*Session, error) {
	if cp.Day != l.Day {
		return nil, fmt.Errorf("resume lesson: checkpoint is for day %d, lesson is day %d", cp.Day, l.Day)
	}
	if cp.QIndex < 0 || cp.QIndex >= len(l.Questions) {
		return nil, fmt.Errorf("resume lesson: question index %d outside 0..%d", cp.QIndex, len(l.Questions)-1)
	}
	s := New(l, now)
	s.index = cp.QIndex
	s.combo = cp.CurrentCombo
	s.maxCombo = cp.MaxCombo
	s.mistakesByCat = cp.MistakesByCat
	s.wrong = slices.Clone(cp.WrongIDs)
	s.skipped = slices.Clone(cp.SkippedIDs)
	s.accumulated = time.Duration(cp.AccumulatedTime) * time.Second
	return s, nil
}

// Lesson returns the lesson being played.
func (s *Session) Lesson() *lesson.Lesson { return s.lesson }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Index returns the zero-based current question index.
func (s *Session) Index() int { return s.index }

// Combo returns the current run of correct answers.
func (s *Session) Combo() int { return s.combo }

// MaxCombo returns the best run so far.
func (s *Session) MaxCombo() int { return s.maxCombo }

// LastResult returns the most recent answer result.
func (s *Session) LastResult() Result { return s.last }

// Current returns the active question. ok is false once finished.
func (s *Session) Current() (q bank.Question, ok bool) {
	if s.phase == PhaseFinished {
		return bank.Question{}, false
	}
	return s.lesson.Questions[s.index], true
}

// Answer checks input against the current question.
func (s *Session) Answer(input string) (Result, error) {
	if s.phase != PhaseAnswering {
		return Result{}, ErrWrongPhase
	}
	q := s.lesson.Questions[s.index]
	r := Result{
		Correct:     CheckAnswer(q, input),
		Answer:      q.Answer,
		Explanation: q.Explanation,
	}
	if r.Correct {
		s.combo++
		s.maxCombo = max(s.maxCombo, s.combo)
	} else {
		s.combo = 0
		s.mistakesByCat = s.mistakesByCat.Inc(q.Category, 1)
		if !slices.Contains(s.wrong, q.ID) {
			s.wrong = append(s.wrong, q.ID)
		}
	}
	r.Combo = s.combo
	s.last = r
	s.phase = PhaseFeedback
	return r, nil
}

// Retry returns to the same question after a wrong answer.
func (s *Session) Retry() error {
	if s.phase != PhaseFeedback || s.last.Correct {
		return ErrWrongPhase
	}
	s.phase = PhaseAnswering
	return nil
}

// Skip gives up on the current question and moves on.
func (s *Session) Skip() error {
	if s.phase == PhaseFinished || (s.phase == PhaseFeedback && s.last.Correct) {
		return ErrWrongPhase
	}
	q := s.lesson.Questions[s.index]
	if !slices.Contains(s.skipped, q.ID) {
		s.skipped = append(s.skipped, q.ID)
	}
	s.combo = 0
	s.advance()
	return nil
}

// Next moves past the feedback for the current question.
func (s *Session) Next() error {
	if s.phase != PhaseFeedback {
		return ErrWrongPhase
	}
	s.advance()
	return nil
}

func (s *Session) advance() {
	s.last = Result{}
	if s.index+1 >= len(s.lesson.Questions) {
		s.accumulated = s.Elapsed()
		s.resumedAt = s.now()
		s.phase = PhaseFinished
		return
	}
	s.index++
	s.phase = PhaseAnswering
}

// Elapsed returns the play time including earlier resumed segments. The
// clock stops once the lesson is finished.
func (s *Session) Elapsed() time.Duration {
	if s.phase == PhaseFinished {
		return s.accumulated
	}
	return s.accumulated + s.now().Sub(s.resumedAt)
}

// Checkpoint captures the session so it can be resumed later.
func (s *Session) Checkpoint() profile.Checkpoint {
	return profile.Checkpoint{
		Day:             s.lesson.Day,
		QIndex:          s.index,
		MistakesByCat:   s.mistakesByCat,
		CurrentCombo:    s.combo,
		MaxCombo:        s.maxCombo,
		AccumulatedTime: int(s.Elapsed() / time.Second),
		WrongIDs:        slices.Clone(s.wrong),
		SkippedIDs:      slices.Clone(s.skipped),
	}
}

// Completion builds the ledger record for a finished lesson.
func (s *Session) Completion(reward *rewards.Item) (ledger.Completion, error) {
	if s.phase != PhaseFinished {
		return ledger.Completion{}, ErrWrongPhase
	}
	return ledger.Completion{
		Day:            s.lesson.Day,
		Points:         s.lesson.Points,
		PresentedIDs:   s.lesson.IDs(),
		PresentedByCat: presentedByCategory(s.lesson),
		WrongIDs:       slices.Clone(s.wrong),
		SkippedIDs:     slices.Clone(s.skipped),
		Stats: profile.LevelStats{
			Day:           s.lesson.Day,
			TimeSpent:     int(s.accumulated / time.Second),
			MistakesByCat: s.mistakesByCat,
			MaxCombo:      s.maxCombo,
		},
		Reward: reward,
	}, nil
}

func presentedByCategory(l *lesson.Lesson) bank.CategoryCounts {
	var cc bank.CategoryCounts
	for _, q := range l.Questions {
		cc = cc.Inc(q.Category, 1)
	}
	return cc
}

// ErrNotInLesson is returned by Record for IDs the lesson does not contain.
var ErrNotInLesson = errors.New("question not in lesson")

// Record builds the completion of l as if played with the given wrong and
// skipped questions. Each wrong question counts as one mistake and the
// combo is the longest run of questions in neither list.
func Record(l *lesson.Lesson, wrong, skipped []string, seconds int) (ledger.Completion, error) {
	var mistakes bank.CategoryCounts
	for _, id := range wrong {
		i := slices.IndexFunc(l.Questions, func(q bank.Question) bool { return q.ID == id })
		if i < 0 {
			return ledger.Completion{}, fmt.Errorf("record day %d: %w: %s", l.Day, ErrNotInLesson, id)
		}
		mistakes = mistakes.Inc(l.Questions[i].Category, 1)
	}
	for _, id := range skipped {
		if !slices.Contains(l.IDs(), id) {
			return ledger.Completion{}, fmt.Errorf("record day %d: %w: %s", l.Day, ErrNotInLesson, id)
		}
	}

	var combo, best int
	for _, q := range l.Questions {
		if slices.Contains(wrong, q.ID) || slices.Contains(skipped, q.ID) {
			combo = 0
			continue
		}
		combo++
		best = max(best, combo)
	}

	return ledger.Completion{
		Day:            l.Day,
		Points:         l.Points,
		PresentedIDs:   l.IDs(),
		PresentedByCat: presentedByCategory(l),
		WrongIDs:       slices.Clone(wrong),
		SkippedIDs:     slices.Clone(skipped),
		Stats: profile.LevelStats{
			Day:           l.Day,
			TimeSpent:     max(seconds, 0),
			MistakesByCat: mistakes,
			MaxCombo:      best,
		},
	}, nil
}
