// Package quiz hosts a running session for any of the four trainer
// flows. The flow differences (countdown, immediate feedback, group
// breaks) all live in the session engine; this screen only maps keys to
// engine calls and renders what the engine says.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/AmalShalabi/psycho-arabic/internal/catalog"
	"github.com/AmalShalabi/psycho-arabic/internal/engine"
	"github.com/AmalShalabi/psycho-arabic/internal/router"
	"github.com/AmalShalabi/psycho-arabic/internal/screen"
	"github.com/AmalShalabi/psycho-arabic/internal/screens/groupresult"
	resultsscreen "github.com/AmalShalabi/psycho-arabic/internal/screens/results"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/components"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/layout"
)

// QuizScreen implements screen.Screen for an active session.
type QuizScreen struct {
	cat     *catalog.Catalog
	results store.ResultStore
	cfg     engine.Config

	sess      *engine.Session
	choice    components.Choice
	showIntro bool
	errMsg    string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscHandler = (*QuizScreen)(nil)

// New creates a session screen for the given configuration. The exam
// flow opens with an intro card; the others start immediately.
func New(cat *catalog.Catalog, results store.ResultStore, cfg engine.Config) *QuizScreen {
	return &QuizScreen{
		cat:       cat,
		results:   results,
		cfg:       cfg,
		showIntro: cfg.Mode == engine.ModeExam,
	}
}

// HandlesEsc marks that esc is interpreted here, not by the app shell.
func (s *QuizScreen) HandlesEsc() {}

func (s *QuizScreen) Init() tea.Cmd {
	if s.showIntro {
		return nil
	}
	return s.start()
}

// start builds the session and kicks off the clock.
func (s *QuizScreen) start() tea.Cmd {
	sess, err := engine.NewSession(s.cat, s.cfg, s.results)
	if err != nil {
		if errors.Is(err, engine.ErrNoQuestions) {
			s.errMsg = "لا توجد أسئلة مطابقة"
		} else {
			s.errMsg = err.Error()
		}
		return nil
	}
	s.sess = sess
	s.syncChoice()
	return tickCmd(sess.ID)
}

// syncChoice rebuilds the option list for the current position.
func (s *QuizScreen) syncChoice() {
	q := s.sess.Current()
	c := components.NewChoice(q.Prompt, q.Options, q.CorrectIndex)
	c.Chosen = s.sess.SelectedAnswer()
	c.Revealed = s.sess.Revealed()
	c.Locked = c.Revealed
	c.Explanation = q.Explanation
	if c.Chosen >= 0 {
		c.Cursor = c.Chosen
	}
	s.choice = c
}

func (s *QuizScreen) Title() string {
	return s.cfg.Mode.Label()
}

// Status shows the countdown for timed runs, the running score for
// immediate-feedback runs, and the stopwatch otherwise.
func (s *QuizScreen) Status() string {
	if s.sess == nil {
		return ""
	}
	if s.cfg.TimeBudget > 0 {
		return "⏱ " + layout.FormatClock(int(s.sess.Remaining().Seconds()))
	}
	if s.cfg.Immediate {
		sc := s.sess.RunningScore()
		return fmt.Sprintf("%s  ✓%d/%d",
			layout.FormatClock(int(s.sess.Elapsed.Seconds())), sc.Correct, sc.Total)
	}
	return layout.FormatClock(int(s.sess.Elapsed.Seconds()))
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "أي زر", Description: "رجوع"}}
	case s.showIntro:
		return []layout.KeyHint{
			{Key: "Enter", Description: "ابدأ الامتحان"},
			{Key: "Esc", Description: "رجوع"},
		}
	case s.sess == nil:
		return nil
	case s.sess.Phase() == engine.PhasePendingConfirmation:
		return []layout.KeyHint{
			{Key: "Y", Description: "إنهاء الامتحان"},
			{Key: "N", Description: "متابعة"},
		}
	case s.cfg.Immediate:
		hints := []layout.KeyHint{
			{Key: "1-4", Description: "إجابة"},
			{Key: "Enter", Description: "التالي"},
			{Key: "←", Description: "السابق"},
		}
		if s.cfg.GroupSize > 0 {
			hints = append(hints, layout.KeyHint{Key: "Tab", Description: "مجموعة أخرى"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "إنهاء"})
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "إجابة"},
			{Key: "←→", Description: "تنقل"},
			{Key: "F", Description: "إنهاء"},
			{Key: "Esc", Description: "خروج"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick(msg)

	case groupresult.NavigateMsg:
		if s.sess != nil {
			s.sess.JumpToGroup(msg.Group)
			s.syncChoice()
		}
		return s, nil

	case groupresult.RetryMsg:
		if s.sess != nil {
			s.sess.ResetGroup(msg.Group)
			s.syncChoice()
		}
		return s, nil

	case groupresult.FinishMsg:
		return s.finish()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.sess == nil || msg.sessionID != s.sess.ID {
		return s, nil
	}

	rec, err := s.sess.Tick(context.Background(), msg.at)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if rec != nil {
		// Time ran out; the engine finished and persisted the run.
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: resultsscreen.NewFromRecord(s.cfg.Mode.ResultKind(), rec),
			}
		}
	}
	if s.sess.Phase() == engine.PhaseCompleted {
		return s, nil
	}
	return s, tickCmd(s.sess.ID)
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.showIntro {
		switch key {
		case "enter":
			s.showIntro = false
			return s, s.start()
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.sess == nil {
		return s, nil
	}

	// Finish confirmation dialog (exam).
	if s.sess.Phase() == engine.PhasePendingConfirmation {
		switch key {
		case "y", "Y":
			return s.finish()
		case "n", "N", "esc":
			s.sess.CancelFinish()
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.cfg.Mode == engine.ModeExam {
			s.sess.RequestFinish()
			return s, nil
		}
		// Leave without saving a partial run.
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "1", "2", "3", "4", "5", "6":
		return s.recordAnswer(int(key[0] - '1'))

	case "enter":
		if s.cfg.Immediate && s.sess.Revealed() {
			return s.advance()
		}
		return s.recordAnswer(s.choice.Cursor)

	case "right", "l":
		if s.cfg.Immediate && !s.sess.Revealed() {
			return s, nil
		}
		return s.advance()

	case "left", "h":
		s.sess.Retreat()
		s.syncChoice()
		return s, nil

	case "tab":
		if s.cfg.GroupSize > 0 {
			s.sess.JumpToGroup(engine.CurrentGroup(s.sess.Position, s.cfg.GroupSize) + 1)
			s.syncChoice()
		}
		return s, nil

	case "shift+tab":
		if s.cfg.GroupSize > 0 {
			s.sess.JumpToGroup(engine.CurrentGroup(s.sess.Position, s.cfg.GroupSize) - 1)
			s.syncChoice()
		}
		return s, nil

	case "f":
		if !s.cfg.Immediate {
			if s.cfg.Mode == engine.ModeExam {
				s.sess.RequestFinish()
				return s, nil
			}
			return s.finish()
		}
		return s, nil
	}

	// Cursor movement.
	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return s, cmd
}

// recordAnswer records an answer for the current question.
func (s *QuizScreen) recordAnswer(option int) (screen.Screen, tea.Cmd) {
	if !s.sess.SelectAnswer(option) {
		return s, nil
	}
	s.syncChoice()
	return s, nil
}

// advance moves forward. A completed group interrupts with its break
// screen; advancing past the final question of an ungrouped
// immediate-feedback run finishes it.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if s.cfg.Immediate && s.cfg.GroupSize <= 0 && s.sess.AtLast() {
		return s.finish()
	}

	gc := s.sess.Advance()
	if gc == nil {
		s.syncChoice()
		return s, nil
	}

	// Keep the latest group break recoverable across restarts.
	if s.results != nil {
		_ = s.results.Save(context.Background(), store.KindGroup, gc.Record())
	}
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: groupresult.New(gc)}
	}
}

func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	rec, err := s.sess.Finish(context.Background())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: resultsscreen.NewFromRecord(s.cfg.Mode.ResultKind(), rec),
		}
	}
}

// tickCmd returns a 1-second tick bound to one session.
func tickCmd(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{sessionID: sessionID, at: t}
	})
}
