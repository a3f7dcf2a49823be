// Package quest is the screen where a day's questions are played.
package quest

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/ledger"
	"github.com/abhisek/questisland/internal/lesson"
	"github.com/abhisek/questisland/internal/play"
	"github.com/abhisek/questisland/internal/profile"
	"github.com/abhisek/questisland/internal/router"
	"github.com/abhisek/questisland/internal/screen"
	"github.com/abhisek/questisland/internal/screens/summary"
	"github.com/abhisek/questisland/internal/ui/components"
	"github.com/abhisek/questisland/internal/ui/layout"
)

// Recorder persists lesson progress. *game.Service implements it.
type Recorder interface {
	SaveCheckpoint(ctx context.Context, p *profile.Profile, cp profile.Checkpoint) (*profile.Profile, error)
	Complete(ctx context.Context, p *profile.Profile, c ledger.Completion) (*profile.Profile, ledger.Outcome, error)
}

// QuestScreen plays one lesson.
type QuestScreen struct {
	recorder Recorder
	profile  *profile.Profile
	session  *play.Session
	now      func() time.Time
	resumed  bool

	choices components.ChoiceList
	picks   []string // filled blanks so far
	tiles   []string // unscramble fragments
	order   []int    // tile indices in the order picked

	quitConfirm bool
	saving      bool
	errMsg      string

	// Autosaves run one at a time. A save requested meanwhile waits in
	// queued so snapshots land in play order.
	autosaving bool
	resave     bool
	queued     func() tea.Cmd
}

var _ screen.Screen = (*QuestScreen)(nil)
var _ screen.KeyHintProvider = (*QuestScreen)(nil)
var _ screen.EscapeHandler = (*QuestScreen)(nil)

// Option configures a QuestScreen.
type Option func(*QuestScreen)

// WithClock replaces time.Now for the lesson timer.
func WithClock(now func() time.Time) Option {
	return func(s *QuestScreen) { s.now = now }
}

// New plays l for p. A checkpoint saved on p for the same day is resumed.
func New(rec Recorder, p *profile.Profile, l *lesson.Lesson, opts ...Option) *QuestScreen {
	s := &QuestScreen{recorder: rec, profile: p, now: time.Now}
	for _, o := range opts {
		o(s)
	}

	if cp := p.CurrentSession; cp != nil && cp.Day == l.Day {
		if sess, err := play.Resume(l, *cp, s.now); err == nil {
			s.session = sess
			s.resumed = true
		}
	}
	if s.session == nil {
		s.session = play.New(l, s.now)
	}
	s.setupQuestion()
	return s
}

// Resumed reports whether the lesson continued from a checkpoint.
func (s *QuestScreen) Resumed() bool {
	return s.resumed
}

func (s *QuestScreen) Init() tea.Cmd {
	if len(s.session.Lesson().Questions) == 0 {
		s.errMsg = "This day has no questions."
		return nil
	}
	return clockTick()
}

func (s *QuestScreen) HandlesEscape() bool { return true }

func (s *QuestScreen) Title() string {
	return lesson.Title(s.session.Lesson().Day)
}

func (s *QuestScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Save and leave"},
			{Key: "N", Description: "Keep going"},
		}
	case s.session.Phase() == play.PhaseFeedback && s.session.LastResult().Correct:
		return []layout.KeyHint{{Key: "any key", Description: "Next"}}
	case s.session.Phase() == play.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Try again"},
			{Key: "S", Description: "Skip"},
		}
	}

	q, _ := s.session.Current()
	if q.Type == bank.TypeUnscramble {
		return []layout.KeyHint{
			{Key: "1-9", Description: "Place piece"},
			{Key: "⌫", Description: "Undo"},
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Pick"},
		{Key: "Enter", Description: "Select"},
		{Key: "S", Description: "Skip"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case clockTickMsg:
		if s.session.Phase() == play.PhaseFinished || s.saving {
			return s, nil
		}
		return s, clockTick()

	case completedMsg:
		return s.handleCompleted(msg)

	case autosavedMsg:
		return s.handleAutosaved(msg)

	case checkpointSavedMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		// The map and its detail page may sit between here and home.
		return s, tea.Sequence(
			func() tea.Msg { return router.PopToRootMsg{} },
			screen.ProfileChanged(msg.Profile),
		)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuestScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.saving {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, s.saveCheckpoint()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	switch s.session.Phase() {
	case play.PhaseFeedback:
		return s.handleFeedbackKey(key)
	case play.PhaseAnswering:
		return s.handleAnswerKey(msg)
	}
	return s, nil
}

func (s *QuestScreen) handleFeedbackKey(key string) (screen.Screen, tea.Cmd) {
	if s.session.LastResult().Correct {
		if err := s.session.Next(); err != nil {
			return s, nil
		}
		return s, s.afterAdvance()
	}

	switch key {
	case "enter", "r", "R":
		if err := s.session.Retry(); err == nil {
			s.setupQuestion()
		}
	case "s", "S":
		if err := s.session.Skip(); err == nil {
			return s, s.afterAdvance()
		}
	}
	return s, nil
}

func (s *QuestScreen) handleAnswerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q, ok := s.session.Current()
	if !ok {
		return s, nil
	}
	key := msg.String()

	if q.Type == bank.TypeUnscramble {
		switch key {
		case "backspace":
			if n := len(s.order); n > 0 {
				s.order = s.order[:n-1]
			}
		case "enter":
			if len(s.order) == len(s.tiles) {
				return s.submit(s.assembled())
			}
		case "s", "S":
			return s.skip()
		default:
			if i, err := strconv.Atoi(key); err == nil && i >= 1 && i <= len(s.tiles) && !s.tileUsed(i-1) {
				s.order = append(s.order, i-1)
			}
		}
		return s, nil
	}

	if key == "s" || key == "S" {
		return s.skip()
	}

	var picked string
	s.choices, picked, ok = s.choices.Update(msg)
	if !ok {
		return s, nil
	}
	if q.Type == bank.TypeFillInBlank {
		s.picks = append(s.picks, picked)
		if len(s.picks) < max(play.Blanks(q), 1) {
			s.choices = components.NewChoiceList(play.Options(q))
			return s, nil
		}
		return s.submit(strings.Join(s.picks, ""))
	}
	return s.submit(picked)
}

func (s *QuestScreen) submit(input string) (screen.Screen, tea.Cmd) {
	res, err := s.session.Answer(input)
	if err != nil {
		return s, nil
	}
	// A wrong pick is marked without giving the answer away.
	if res.Correct {
		s.choices.Reveal(res.Answer)
	} else {
		s.choices.Reveal("")
	}
	return s, nil
}

func (s *QuestScreen) skip() (screen.Screen, tea.Cmd) {
	if err := s.session.Skip(); err != nil {
		return s, nil
	}
	return s, s.afterAdvance()
}

// afterAdvance prepares the next question and autosaves, or saves the
// finished lesson.
func (s *QuestScreen) afterAdvance() tea.Cmd {
	if s.session.Phase() == play.PhaseFinished {
		return s.complete()
	}
	s.setupQuestion()
	return s.autosave()
}

func (s *QuestScreen) setupQuestion() {
	s.picks = nil
	s.order = nil
	s.tiles = nil

	q, ok := s.session.Current()
	if !ok {
		return
	}
	switch q.Type {
	case bank.TypeUnscramble:
		s.tiles = play.Fragments(q)
	default:
		s.choices = components.NewChoiceList(play.Options(q))
	}
}

func (s *QuestScreen) tileUsed(i int) bool {
	for _, j := range s.order {
		if j == i {
			return true
		}
	}
	return false
}

func (s *QuestScreen) assembled() string {
	parts := make([]string, len(s.order))
	for i, j := range s.order {
		parts[i] = s.tiles[j]
	}
	return strings.Join(parts, "")
}

func (s *QuestScreen) complete() tea.Cmd {
	s.saving = true
	if s.autosaving {
		s.queued = s.complete
		return nil
	}
	rec, p, sess := s.recorder, s.profile, s.session
	return func() tea.Msg {
		c, err := sess.Completion(nil)
		if err != nil {
			return completedMsg{Err: err}
		}
		next, out, err := rec.Complete(context.Background(), p, c)
		return completedMsg{Profile: next, Outcome: out, Err: err}
	}
}

func (s *QuestScreen) handleCompleted(msg completedMsg) (screen.Screen, tea.Cmd) {
	s.saving = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.profile = msg.Profile

	l := s.session.Lesson()
	report := summary.Report{
		Day:       l.Day,
		Title:     lesson.Title(l.Day),
		Questions: len(l.Questions),
		Elapsed:   s.session.Elapsed(),
		MaxCombo:  s.session.MaxCombo(),
		Outcome:   msg.Outcome,
	}
	next := summary.New(report, msg.Profile)
	return s, tea.Sequence(
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
		screen.ProfileChanged(msg.Profile),
	)
}

func (s *QuestScreen) saveCheckpoint() tea.Cmd {
	s.saving = true
	if s.autosaving {
		s.queued = s.saveCheckpoint
		return nil
	}
	rec, p, cp := s.recorder, s.profile, s.session.Checkpoint()
	return func() tea.Msg {
		next, err := rec.SaveCheckpoint(context.Background(), p, cp)
		return checkpointSavedMsg{Profile: next, Err: err}
	}
}

// autosave stores a checkpoint without leaving the screen, so a killed
// terminal loses at most the current question.
func (s *QuestScreen) autosave() tea.Cmd {
	if s.autosaving {
		s.resave = true
		return nil
	}
	s.autosaving = true
	rec, p, cp := s.recorder, s.profile, s.session.Checkpoint()
	return func() tea.Msg {
		next, err := rec.SaveCheckpoint(context.Background(), p, cp)
		return autosavedMsg{Profile: next, Err: err}
	}
}

func (s *QuestScreen) handleAutosaved(msg autosavedMsg) (screen.Screen, tea.Cmd) {
	s.autosaving = false
	var changed tea.Cmd
	// A failed autosave is retried on the next question.
	if msg.Err == nil {
		s.profile = msg.Profile
		changed = screen.ProfileChanged(msg.Profile)
	}

	if q := s.queued; q != nil {
		s.queued = nil
		s.resave = false
		return s, q()
	}
	if s.resave {
		s.resave = false
		return s, tea.Batch(changed, s.autosave())
	}
	return s, changed
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
