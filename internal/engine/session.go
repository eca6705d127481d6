package engine

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/AmalShalabi/psycho-arabic/internal/catalog"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	// PhasePendingConfirmation is the exam-only sub-state between a
	// manual finish request and its confirmation. A timeout finish
	// skips it.
	PhasePendingConfirmation
	PhaseCompleted
)

// ErrNoQuestions is surfaced when a mode's build rules yield an empty
// question set; hosts show an empty state instead of starting.
var ErrNoQuestions = errors.New("no questions available")

// Session is one run through an ordered question list. All methods are
// called from a single UI event loop; there is no internal locking.
type Session struct {
	ID        string
	Questions []catalog.Question
	Answers   map[int]int
	Position  int
	StartedAt time.Time
	Elapsed   time.Duration

	cfg      Config
	phase    Phase
	revealed bool
	score    Score
	results  store.ResultStore
}

// NewSession builds the question set for cfg.Mode and starts the run.
// Returns ErrNoQuestions when the build rules produce an empty set.
func NewSession(cat *catalog.Catalog, cfg Config, results store.ResultStore) (*Session, error) {
	questions := buildQuestions(cat, cfg)
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Session{
		ID:        uuid.New().String(),
		Questions: questions,
		Answers:   make(map[int]int),
		StartedAt: cfg.now(),
		cfg:       cfg,
		phase:     PhaseInProgress,
		results:   results,
	}, nil
}

// Config returns the session's configuration.
func (s *Session) Config() Config { return s.cfg }

// Phase returns the current lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Current returns the question at the current position.
func (s *Session) Current() catalog.Question { return s.Questions[s.Position] }

// Revealed reports whether the current position's correctness is shown
// (immediate-feedback modes only).
func (s *Session) Revealed() bool { return s.revealed }

// RunningScore returns the live counters of an immediate-feedback run.
// Total counts submissions, not questions.
func (s *Session) RunningScore() Score { return s.score }

// AnsweredCount returns how many positions have a recorded answer.
func (s *Session) AnsweredCount() int { return len(s.Answers) }

// SelectedAnswer returns the recorded answer at the current position,
// or -1 when unanswered.
func (s *Session) SelectedAnswer() int {
	if a, ok := s.Answers[s.Position]; ok {
		return a
	}
	return -1
}

// AtFirst reports whether the session is at position 0.
func (s *Session) AtFirst() bool { return s.Position == 0 }

// AtLast reports whether the session is at the final position.
func (s *Session) AtLast() bool { return s.Position == len(s.Questions)-1 }

// SelectAnswer records the answer at the current position and reports
// whether it was accepted.
//
// Immediate-feedback modes lock each position on first submission: the
// first answer wins, correctness is revealed, and the running score
// counters advance exactly once. Deferred modes (exam, practice) allow
// overwriting any number of times until finish.
func (s *Session) SelectAnswer(option int) bool {
	if s.phase != PhaseInProgress {
		return false
	}
	if option < 0 || option >= len(s.Current().Options) {
		return false
	}

	if s.cfg.Immediate {
		if _, answered := s.Answers[s.Position]; answered {
			return false
		}
		s.Answers[s.Position] = option
		s.score.Total++
		if catalog.IsCorrect(s.Current(), option) {
			s.score.Correct++
		}
		s.revealed = true
		return true
	}

	s.Answers[s.Position] = option
	return true
}

// Advance moves forward one position, clamped to the last question.
// In grouped mode, advancing off a group's last index does not move;
// it returns the group's completion event instead and leaves the host
// to navigate (JumpToGroup or Finish).
func (s *Session) Advance() *GroupCompletion {
	if s.phase != PhaseInProgress {
		return nil
	}

	if s.cfg.GroupSize > 0 {
		group := CurrentGroup(s.Position, s.cfg.GroupSize)
		info := Group(group, len(s.Questions), s.cfg.GroupSize)
		if s.Position == info.EndIndex {
			return s.completeGroup(group, info)
		}
	}

	if s.Position < len(s.Questions)-1 {
		s.Position++
	}
	s.restoreVisibility()
	return nil
}

// Retreat moves back one position; a no-op at position 0.
func (s *Session) Retreat() {
	if s.phase != PhaseInProgress {
		return
	}
	if s.Position > 0 {
		s.Position--
	}
	s.restoreVisibility()
}

// JumpToGroup moves to the first question of a 1-based group number,
// clamped to the valid range. Only meaningful in grouped mode.
func (s *Session) JumpToGroup(group int) {
	if s.phase != PhaseInProgress || s.cfg.GroupSize <= 0 {
		return
	}
	total := TotalGroups(len(s.Questions), s.cfg.GroupSize)
	if group < 1 {
		group = 1
	}
	if group > total {
		group = total
	}
	s.Position = Group(group, len(s.Questions), s.cfg.GroupSize).StartIndex
	s.restoreVisibility()
}

// ResetGroup clears the recorded answers of one group so it can be
// retaken, rolling the running score counters back by the cleared
// submissions, and moves to the group's first question.
func (s *Session) ResetGroup(group int) {
	if s.phase != PhaseInProgress || s.cfg.GroupSize <= 0 {
		return
	}
	info := Group(group, len(s.Questions), s.cfg.GroupSize)
	for pos := info.StartIndex; pos <= info.EndIndex; pos++ {
		a, ok := s.Answers[pos]
		if !ok {
			continue
		}
		if s.cfg.Immediate {
			s.score.Total--
			if catalog.IsCorrect(s.Questions[pos], a) {
				s.score.Correct--
			}
		}
		delete(s.Answers, pos)
	}
	s.Position = info.StartIndex
	s.restoreVisibility()
}

// restoreVisibility re-derives the "result visible" flag after any
// navigation: in immediate modes a previously answered position shows
// its result again, an unanswered one does not.
func (s *Session) restoreVisibility() {
	_, answered := s.Answers[s.Position]
	s.revealed = s.cfg.Immediate && answered
}

func (s *Session) completeGroup(group int, info GroupInfo) *GroupCompletion {
	groupAnswers := make(map[int]int)
	for pos := info.StartIndex; pos <= info.EndIndex; pos++ {
		if a, ok := s.Answers[pos]; ok {
			groupAnswers[pos] = a
		}
	}

	total := TotalGroups(len(s.Questions), s.cfg.GroupSize)
	gc := &GroupCompletion{
		GroupNumber: group,
		UnitName:    s.Questions[info.StartIndex].Unit,
		Range:       info,
		Score:       GroupScore(s.Answers, s.Questions, info),
		TotalGroups: total,
		TimeSpent:   s.Elapsed,
		Answers:     groupAnswers,
		Questions:   slices.Clone(s.Questions[info.StartIndex : info.EndIndex+1]),
	}
	if group > 1 {
		gc.PrevGroup = group - 1
	}
	if group < total {
		gc.NextGroup = group + 1
	}
	return gc
}

// Record snapshots a group completion as a persistable result record.
func (gc *GroupCompletion) Record() *store.Result {
	rec := &store.Result{
		TotalQuestions:    gc.Range.Count,
		AnsweredQuestions: len(gc.Answers),
		TimeSpentSeconds:  int(gc.TimeSpent.Seconds()),
		Answers:           maps.Clone(gc.Answers),
		Questions:         slices.Clone(gc.Questions),
		CompletedAt:       time.Now(),
	}
	rec.CorrectAnswers = gc.Score.Correct
	return rec
}

// Tick advances the session clock to now. When a time budget is set and
// reached, the session finishes itself with whatever answers exist at
// that instant and the forced result is returned; unanswered positions
// count as incorrect. Ticks after completion are ignored, so a stale
// timer can never mutate a replaced session.
func (s *Session) Tick(ctx context.Context, now time.Time) (*store.Result, error) {
	if s.phase != PhaseInProgress && s.phase != PhasePendingConfirmation {
		return nil, nil
	}

	s.Elapsed = now.Sub(s.StartedAt)
	if s.cfg.TimeBudget <= 0 || s.Elapsed < s.cfg.TimeBudget {
		return nil, nil
	}

	s.Elapsed = s.cfg.TimeBudget
	s.phase = PhaseInProgress // timeout bypasses any pending confirmation
	return s.Finish(ctx)
}

// Remaining returns the countdown remainder, or 0 for untimed sessions.
func (s *Session) Remaining() time.Duration {
	if s.cfg.TimeBudget <= 0 {
		return 0
	}
	r := s.cfg.TimeBudget - s.Elapsed
	if r < 0 {
		return 0
	}
	return r
}

// RequestFinish enters the manual-finish confirmation sub-state.
func (s *Session) RequestFinish() {
	if s.phase == PhaseInProgress {
		s.phase = PhasePendingConfirmation
	}
}

// CancelFinish leaves the confirmation sub-state without finishing.
func (s *Session) CancelFinish() {
	if s.phase == PhasePendingConfirmation {
		s.phase = PhaseInProgress
	}
}

// Finish folds the recorded answers into a result record, persists it
// under the mode's kind, and completes the session. Valid only while
// in progress (or confirming); a second call fails rather than writing
// a duplicate record.
func (s *Session) Finish(ctx context.Context) (*store.Result, error) {
	if s.phase != PhaseInProgress && s.phase != PhasePendingConfirmation {
		return nil, fmt.Errorf("finish: session is not in progress")
	}

	correct := 0
	for pos, selected := range s.Answers {
		if pos >= 0 && pos < len(s.Questions) && catalog.IsCorrect(s.Questions[pos], selected) {
			correct++
		}
	}

	rec := &store.Result{
		TotalQuestions:    len(s.Questions),
		AnsweredQuestions: len(s.Answers),
		CorrectAnswers:    correct,
		TimeSpentSeconds:  int(s.Elapsed.Seconds()),
		Answers:           maps.Clone(s.Answers),
		Questions:         slices.Clone(s.Questions),
		CompletedAt:       s.cfg.now(),
	}

	if s.results != nil {
		if err := s.results.Save(ctx, s.cfg.Mode.ResultKind(), rec); err != nil {
			return nil, fmt.Errorf("persist %s result: %w", s.cfg.Mode, err)
		}
	}

	s.phase = PhaseCompleted
	return rec, nil
}
