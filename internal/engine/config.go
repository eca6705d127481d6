package engine

import (
	"math/rand"
	"time"

	"github.com/AmalShalabi/psycho-arabic/internal/catalog"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
)

// Mode selects which trainer flow a session runs.
type Mode string

const (
	ModeExam               Mode = "exam"
	ModePractice           Mode = "practice"
	ModeVocabulary         Mode = "vocabulary"
	ModeSentenceCompletion Mode = "sentence-completion"
)

// Label returns the Arabic display name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeExam:
		return "امتحان تجريبي"
	case ModePractice:
		return "تدريب سريع"
	case ModeVocabulary:
		return "مفردات إنجليزية"
	case ModeSentenceCompletion:
		return "إكمال جمل"
	}
	return string(m)
}

// ResultKind returns the persistence slot a full run of this mode
// writes its record to.
func (m Mode) ResultKind() store.Kind {
	switch m {
	case ModeExam:
		return store.KindExam
	case ModePractice:
		return store.KindPractice
	case ModeVocabulary:
		return store.KindVocabulary
	case ModeSentenceCompletion:
		return store.KindSentenceCompletion
	}
	return store.Kind(m)
}

// Default session constants.
const (
	DefaultExamBudget  = 3600 * time.Second
	DefaultPracticeCap = 10
	DefaultGroupSize   = 20
)

// SectionQuota is one fixed-size per-section prefix of the exam set.
type SectionQuota struct {
	Section catalog.Section
	Count   int
}

// DefaultExamQuotas is the fixed section order and per-section count
// used to assemble the 30-question exam.
var DefaultExamQuotas = []SectionQuota{
	{catalog.SectionQuantitative, 8},
	{catalog.SectionVerbal, 8},
	{catalog.SectionEnglish, 7},
	{catalog.SectionVocabulary, 7},
}

// Config parameterizes a session. The four trainer flows differ only in
// these knobs; NewConfig fills them per mode.
type Config struct {
	Mode Mode

	// Shuffle randomizes question order at start (exam, practice).
	Shuffle bool
	// Cap truncates the built set after shuffling; 0 means no cap.
	Cap int
	// TimeBudget turns on the countdown; 0 means an elapsed stopwatch.
	TimeBudget time.Duration
	// Immediate reveals and locks correctness at selection time.
	Immediate bool
	// GroupSize enables fixed-size group navigation when > 0.
	GroupSize int

	// Practice filters; zero values mean "all".
	Section    catalog.Section
	Difficulty catalog.Difficulty

	// ExamQuotas overrides DefaultExamQuotas when non-nil.
	ExamQuotas []SectionQuota

	// Rand drives shuffling; nil uses the global source.
	Rand *rand.Rand
	// Clock supplies the current time; nil uses time.Now.
	Clock func() time.Time
}

// NewConfig returns the standard configuration for a mode.
func NewConfig(mode Mode) Config {
	switch mode {
	case ModeExam:
		return Config{
			Mode:       mode,
			Shuffle:    true,
			TimeBudget: DefaultExamBudget,
		}
	case ModePractice:
		return Config{
			Mode:    mode,
			Shuffle: true,
			Cap:     DefaultPracticeCap,
		}
	case ModeVocabulary:
		return Config{
			Mode:      mode,
			Immediate: true,
			GroupSize: DefaultGroupSize,
		}
	case ModeSentenceCompletion:
		return Config{
			Mode:      mode,
			Immediate: true,
		}
	}
	return Config{Mode: mode}
}

func (c Config) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

func (c Config) shuffle(qs []catalog.Question) {
	swap := func(i, j int) { qs[i], qs[j] = qs[j], qs[i] }
	if c.Rand != nil {
		c.Rand.Shuffle(len(qs), swap)
	} else {
		rand.Shuffle(len(qs), swap)
	}
}
