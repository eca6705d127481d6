package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/AmalShalabi/psycho-arabic/internal/catalog"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
)

// makeQuestions builds n four-option questions with a rotating correct
// index.
func makeQuestions(n int, section catalog.Section) []catalog.Question {
	qs := make([]catalog.Question, n)
	for i := range qs {
		correct := i % 4
		qs[i] = catalog.Question{
			ID:           i + 1,
			Section:      section,
			Prompt:       fmt.Sprintf("q%d", i+1),
			Options:      []string{"a", "b", "c", "d"},
			Correct:      &correct,
			CorrectIndex: correct,
			Unit:         fmt.Sprintf("Unit %d", i/DefaultGroupSize+1),
		}
	}
	return qs
}

func vocabularyCatalog(n int) *catalog.Catalog {
	return catalog.New(map[catalog.Section][]catalog.Question{
		catalog.SectionVocabulary: makeQuestions(n, catalog.SectionVocabulary),
	})
}

func wrongOption(q catalog.Question) int {
	return (q.CorrectIndex + 1) % len(q.Options)
}

func TestNewSessionEmptyCatalog(t *testing.T) {
	_, err := NewSession(catalog.New(nil), NewConfig(ModeVocabulary), store.NewMemoryStore())
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestAdvanceAndRetreatClamp(t *testing.T) {
	cfg := NewConfig(ModeSentenceCompletion)
	cat := catalog.New(map[catalog.Section][]catalog.Question{
		catalog.SectionSentenceCompletion: makeQuestions(3, catalog.SectionSentenceCompletion),
	})
	s, err := NewSession(cat, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Retreat at the first question is a no-op, repeatedly.
	s.Retreat()
	s.Retreat()
	if s.Position != 0 {
		t.Fatalf("retreat at start moved to %d", s.Position)
	}

	// Answer each question so advancing is allowed to reach the end.
	for i := 0; i < 3; i++ {
		s.SelectAnswer(0)
		s.Advance()
	}
	if s.Position != 2 {
		t.Fatalf("advance past end moved to %d", s.Position)
	}
}

func TestImmediateFirstAnswerWins(t *testing.T) {
	s, err := NewSession(vocabularyCatalog(25), NewConfig(ModeVocabulary), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := s.Current()
	if !s.SelectAnswer(q.CorrectIndex) {
		t.Fatal("first selection rejected")
	}
	if !s.Revealed() {
		t.Error("correctness not revealed after first selection")
	}

	// Re-submission is rejected and changes nothing.
	if s.SelectAnswer(wrongOption(q)) {
		t.Fatal("re-submission accepted in immediate mode")
	}
	if got := s.SelectedAnswer(); got != q.CorrectIndex {
		t.Errorf("recorded answer changed to %d", got)
	}

	sc := s.RunningScore()
	if sc.Total != 1 || sc.Correct != 1 {
		t.Errorf("expected running score 1/1, got %d/%d", sc.Correct, sc.Total)
	}
}

func TestImmediateVisibilityFollowsNavigation(t *testing.T) {
	s, err := NewSession(vocabularyCatalog(25), NewConfig(ModeVocabulary), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.SelectAnswer(s.Current().CorrectIndex)
	s.Advance()
	if s.Revealed() {
		t.Error("unanswered question must not show a result")
	}
	s.Retreat()
	if !s.Revealed() {
		t.Error("answered question must show its result again")
	}
}

func TestDeferredAnswersOverwrite(t *testing.T) {
	cfg := NewConfig(ModePractice)
	cfg.Rand = rand.New(rand.NewSource(1))
	cat := catalog.New(map[catalog.Section][]catalog.Question{
		catalog.SectionVerbal: makeQuestions(10, catalog.SectionVerbal),
	})
	s, err := NewSession(cat, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !s.SelectAnswer(0) {
		t.Fatal("first selection rejected")
	}
	if !s.SelectAnswer(2) {
		t.Fatal("overwrite rejected in deferred mode")
	}
	if got := s.SelectedAnswer(); got != 2 {
		t.Errorf("expected overwritten answer 2, got %d", got)
	}
	if s.Revealed() {
		t.Error("deferred mode must not reveal correctness")
	}
	if sc := s.RunningScore(); sc.Total != 0 {
		t.Errorf("deferred mode must not advance the running score, got total %d", sc.Total)
	}
}

func TestSelectAnswerRejectsOutOfRange(t *testing.T) {
	s, err := NewSession(vocabularyCatalog(5), NewConfig(ModeVocabulary), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.SelectAnswer(9) {
		t.Error("accepted out-of-range option")
	}
	if s.SelectAnswer(-1) {
		t.Error("accepted negative option")
	}
}

func TestPracticeFilterAndCap(t *testing.T) {
	quant := makeQuestions(30, catalog.SectionQuantitative)
	for i := range quant {
		quant[i].Difficulty = []catalog.Difficulty{
			catalog.DifficultyEasy, catalog.DifficultyMedium, catalog.DifficultyHard,
		}[i%3]
	}
	verbal := makeQuestions(20, catalog.SectionVerbal)
	cat := catalog.New(map[catalog.Section][]catalog.Question{
		catalog.SectionQuantitative: quant,
		catalog.SectionVerbal:       verbal,
	})

	cfg := NewConfig(ModePractice)
	cfg.Rand = rand.New(rand.NewSource(7))
	cfg.Section = catalog.SectionQuantitative
	cfg.Difficulty = catalog.DifficultyEasy

	s, err := NewSession(cat, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.Questions) != 10 {
		t.Fatalf("expected 10 capped questions, got %d", len(s.Questions))
	}
	for _, q := range s.Questions {
		if q.Section != catalog.SectionQuantitative {
			t.Errorf("question %d leaked from section %s", q.ID, q.Section)
		}
		if q.Difficulty != catalog.DifficultyEasy {
			t.Errorf("question %d leaked difficulty %s", q.ID, q.Difficulty)
		}
	}
}

func TestExamAssemblyQuotas(t *testing.T) {
	cat := catalog.New(map[catalog.Section][]catalog.Question{
		catalog.SectionQuantitative: makeQuestions(12, catalog.SectionQuantitative),
		catalog.SectionVerbal:       makeQuestions(12, catalog.SectionVerbal),
		catalog.SectionEnglish:      makeQuestions(12, catalog.SectionEnglish),
		catalog.SectionVocabulary:   makeQuestions(12, catalog.SectionVocabulary),
	})

	cfg := NewConfig(ModeExam)
	cfg.Rand = rand.New(rand.NewSource(42))

	s, err := NewSession(cat, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.Questions) != 30 {
		t.Fatalf("expected 30 exam questions, got %d", len(s.Questions))
	}

	counts := make(map[catalog.Section]int)
	for _, q := range s.Questions {
		counts[q.Section]++
	}
	want := map[catalog.Section]int{
		catalog.SectionQuantitative: 8,
		catalog.SectionVerbal:       8,
		catalog.SectionEnglish:      7,
		catalog.SectionVocabulary:   7,
	}
	for sec, n := range want {
		if counts[sec] != n {
			t.Errorf("section %s: expected %d questions, got %d", sec, n, counts[sec])
		}
	}
}

func TestExamAssemblyShortSection(t *testing.T) {
	// Only 3 english questions exist; the quota clamps instead of failing.
	cat := catalog.New(map[catalog.Section][]catalog.Question{
		catalog.SectionQuantitative: makeQuestions(12, catalog.SectionQuantitative),
		catalog.SectionVerbal:       makeQuestions(12, catalog.SectionVerbal),
		catalog.SectionEnglish:      makeQuestions(3, catalog.SectionEnglish),
		catalog.SectionVocabulary:   makeQuestions(12, catalog.SectionVocabulary),
	})

	cfg := NewConfig(ModeExam)
	cfg.Rand = rand.New(rand.NewSource(1))

	s, err := NewSession(cat, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Questions) != 26 {
		t.Fatalf("expected 26 questions with a short section, got %d", len(s.Questions))
	}
}

func TestExamTimeoutForcesFinish(t *testing.T) {
	cat := catalog.New(map[catalog.Section][]catalog.Question{
		catalog.SectionQuantitative: makeQuestions(12, catalog.SectionQuantitative),
		catalog.SectionVerbal:       makeQuestions(12, catalog.SectionVerbal),
		catalog.SectionEnglish:      makeQuestions(12, catalog.SectionEnglish),
		catalog.SectionVocabulary:   makeQuestions(12, catalog.SectionVocabulary),
	})

	started := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	cfg := NewConfig(ModeExam)
	cfg.Rand = rand.New(rand.NewSource(3))
	cfg.Clock = func() time.Time { return started }

	results := store.NewMemoryStore()
	s, err := NewSession(cat, cfg, results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Answer 5 questions: 3 correct, 2 wrong.
	for i := 0; i < 5; i++ {
		s.Position = i
		if i < 3 {
			s.SelectAnswer(s.Current().CorrectIndex)
		} else {
			s.SelectAnswer(wrongOption(s.Current()))
		}
	}

	ctx := context.Background()

	// One second short of the budget: nothing happens.
	rec, err := s.Tick(ctx, started.Add(DefaultExamBudget-time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != nil {
		t.Fatal("finished before the budget elapsed")
	}

	// A pending manual-finish confirmation does not block the timeout.
	s.RequestFinish()

	rec, err = s.Tick(ctx, started.Add(DefaultExamBudget))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatal("expected forced finish at the budget")
	}

	if rec.TotalQuestions != 30 || rec.AnsweredQuestions != 5 || rec.CorrectAnswers != 3 {
		t.Errorf("expected 3/5/30, got %d/%d/%d",
			rec.CorrectAnswers, rec.AnsweredQuestions, rec.TotalQuestions)
	}
	if rec.TimeSpentSeconds != int(DefaultExamBudget.Seconds()) {
		t.Errorf("expected full budget spent, got %ds", rec.TimeSpentSeconds)
	}

	// The record was persisted under the exam slot.
	saved, err := results.Load(ctx, store.KindExam)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil || saved.CorrectAnswers != 3 {
		t.Fatalf("exam record not persisted: %+v", saved)
	}

	// Stale ticks after completion are ignored.
	rec, err = s.Tick(ctx, started.Add(2*DefaultExamBudget))
	if err != nil || rec != nil {
		t.Fatalf("expected stale tick to be ignored, got %v, %v", rec, err)
	}
}

func TestManualFinishConfirmation(t *testing.T) {
	cat := catalog.New(map[catalog.Section][]catalog.Question{
		catalog.SectionQuantitative: makeQuestions(12, catalog.SectionQuantitative),
		catalog.SectionVerbal:       makeQuestions(12, catalog.SectionVerbal),
		catalog.SectionEnglish:      makeQuestions(12, catalog.SectionEnglish),
		catalog.SectionVocabulary:   makeQuestions(12, catalog.SectionVocabulary),
	})
	cfg := NewConfig(ModeExam)
	cfg.Rand = rand.New(rand.NewSource(5))

	s, err := NewSession(cat, cfg, store.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.RequestFinish()
	if s.Phase() != PhasePendingConfirmation {
		t.Fatalf("expected pending confirmation, got %v", s.Phase())
	}
	if s.SelectAnswer(0) {
		t.Error("answers must be rejected while confirming")
	}

	s.CancelFinish()
	if s.Phase() != PhaseInProgress {
		t.Fatalf("expected in progress after cancel, got %v", s.Phase())
	}
	if !s.SelectAnswer(0) {
		t.Error("answers must be accepted again after cancel")
	}

	s.RequestFinish()
	if _, err := s.Finish(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Phase() != PhaseCompleted {
		t.Fatalf("expected completed, got %v", s.Phase())
	}
	if _, err := s.Finish(context.Background()); err == nil {
		t.Fatal("second finish must fail instead of writing a duplicate record")
	}
}

func TestGroupedAdvanceEmitsCompletion(t *testing.T) {
	s, err := NewSession(vocabularyCatalog(45), NewConfig(ModeVocabulary), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Answer group 1 and advance through it.
	for i := 0; i < 19; i++ {
		s.SelectAnswer(s.Current().CorrectIndex)
		if gc := s.Advance(); gc != nil {
			t.Fatalf("premature group completion at position %d", i)
		}
	}
	s.SelectAnswer(wrongOption(s.Current()))

	gc := s.Advance()
	if gc == nil {
		t.Fatal("expected a group completion at the group boundary")
	}
	if s.Position != 19 {
		t.Errorf("completion must not move the position, got %d", s.Position)
	}
	if gc.GroupNumber != 1 || gc.TotalGroups != 3 {
		t.Errorf("expected group 1 of 3, got %d of %d", gc.GroupNumber, gc.TotalGroups)
	}
	if gc.Score.Correct != 19 || gc.Score.Total != 20 {
		t.Errorf("expected score 19/20, got %d/%d", gc.Score.Correct, gc.Score.Total)
	}
	if gc.PrevGroup != 0 || gc.NextGroup != 2 {
		t.Errorf("expected nav hints 0/2, got %d/%d", gc.PrevGroup, gc.NextGroup)
	}
	if gc.UnitName != "Unit 1" {
		t.Errorf("expected Unit 1, got %q", gc.UnitName)
	}

	s.JumpToGroup(gc.NextGroup)
	if s.Position != 20 {
		t.Errorf("expected jump to position 20, got %d", s.Position)
	}
}

func TestFinalGroupCompletion(t *testing.T) {
	s, err := NewSession(vocabularyCatalog(45), NewConfig(ModeVocabulary), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.JumpToGroup(3)
	if s.Position != 40 {
		t.Fatalf("expected position 40, got %d", s.Position)
	}

	for i := 0; i < 4; i++ {
		s.SelectAnswer(s.Current().CorrectIndex)
		s.Advance()
	}
	s.SelectAnswer(s.Current().CorrectIndex)

	gc := s.Advance()
	if gc == nil {
		t.Fatal("expected completion for the final short group")
	}
	if gc.Score.Total != 5 || gc.Range.Count != 5 {
		t.Errorf("expected short group of 5, got total %d count %d", gc.Score.Total, gc.Range.Count)
	}
	if gc.NextGroup != 0 {
		t.Errorf("final group must have no next, got %d", gc.NextGroup)
	}
	if gc.PrevGroup != 2 {
		t.Errorf("expected prev group 2, got %d", gc.PrevGroup)
	}
}

func TestJumpToGroupClamps(t *testing.T) {
	s, err := NewSession(vocabularyCatalog(45), NewConfig(ModeVocabulary), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.JumpToGroup(99)
	if s.Position != 40 {
		t.Errorf("expected clamp to last group start 40, got %d", s.Position)
	}
	s.JumpToGroup(-2)
	if s.Position != 0 {
		t.Errorf("expected clamp to first group start 0, got %d", s.Position)
	}
}

func TestResetGroupRollsBackScore(t *testing.T) {
	s, err := NewSession(vocabularyCatalog(45), NewConfig(ModeVocabulary), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		s.SelectAnswer(s.Current().CorrectIndex)
		s.Advance()
	}
	if sc := s.RunningScore(); sc.Total != 3 {
		t.Fatalf("expected 3 submissions, got %d", sc.Total)
	}

	s.ResetGroup(1)
	if s.Position != 0 {
		t.Errorf("expected reset to group start, got position %d", s.Position)
	}
	if len(s.Answers) != 0 {
		t.Errorf("expected answers cleared, got %d", len(s.Answers))
	}
	if sc := s.RunningScore(); sc.Total != 0 || sc.Correct != 0 {
		t.Errorf("expected score rolled back to 0/0, got %d/%d", sc.Correct, sc.Total)
	}
	if s.Revealed() {
		t.Error("reset position must not show a stale result")
	}
}

func TestGroupCompletionRecord(t *testing.T) {
	s, err := NewSession(vocabularyCatalog(45), NewConfig(ModeVocabulary), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 19; i++ {
		s.SelectAnswer(s.Current().CorrectIndex)
		s.Advance()
	}
	s.SelectAnswer(s.Current().CorrectIndex)
	gc := s.Advance()
	if gc == nil {
		t.Fatal("expected group completion")
	}

	rec := gc.Record()
	if rec.TotalQuestions != 20 || rec.AnsweredQuestions != 20 || rec.CorrectAnswers != 20 {
		t.Errorf("expected 20/20/20, got %d/%d/%d",
			rec.CorrectAnswers, rec.AnsweredQuestions, rec.TotalQuestions)
	}
	if len(rec.Questions) != 20 {
		t.Errorf("expected the group's questions snapshotted, got %d", len(rec.Questions))
	}
}

func TestFinishPersistsUnderModeKind(t *testing.T) {
	results := store.NewMemoryStore()
	s, err := NewSession(vocabularyCatalog(5), NewConfig(ModeSentenceCompletion), results)
	if err == nil {
		t.Fatal("expected no sentence questions in a vocabulary-only catalog")
	}

	cat := catalog.New(map[catalog.Section][]catalog.Question{
		catalog.SectionSentenceCompletion: makeQuestions(6, catalog.SectionSentenceCompletion),
	})
	s, err = NewSession(cat, NewConfig(ModeSentenceCompletion), results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.SelectAnswer(s.Current().CorrectIndex)
	if _, err := s.Finish(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := results.Load(context.Background(), store.KindSentenceCompletion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatal("record not saved under the sentence-completion slot")
	}
	if rec.CorrectAnswers != 1 || rec.TotalQuestions != 6 {
		t.Errorf("expected 1/6, got %d/%d", rec.CorrectAnswers, rec.TotalQuestions)
	}
}
