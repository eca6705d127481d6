package catalog

// Section identifies which part of the psychometric test a question
// belongs to. Values match the section keys of the raw catalog.
type Section string

const (
	SectionQuantitative       Section = "quantitative"
	SectionVerbal             Section = "verbal"
	SectionEnglish            Section = "english"
	SectionVocabulary         Section = "vocabulary"
	SectionSentenceCompletion Section = "sentence-completion"
)

// SectionOrder is the fixed display and exam-assembly order of sections.
var SectionOrder = []Section{
	SectionQuantitative,
	SectionVerbal,
	SectionEnglish,
	SectionVocabulary,
	SectionSentenceCompletion,
}

// Label returns the Arabic display name of the section.
func (s Section) Label() string {
	switch s {
	case SectionQuantitative:
		return "كمي"
	case SectionVerbal:
		return "لفظي"
	case SectionEnglish:
		return "إنجليزي"
	case SectionVocabulary:
		return "مفردات إنجليزية"
	case SectionSentenceCompletion:
		return "إكمال جمل"
	}
	return string(s)
}

// Difficulty is an optional question tag used only for practice filtering.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Label returns the Arabic display name of the difficulty.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "سهل"
	case DifficultyMedium:
		return "متوسط"
	case DifficultyHard:
		return "صعب"
	}
	return string(d)
}

// Question is one testable item in canonical form.
//
// Correctness is carried in one of two source encodings: Correct (an
// index into Options) or Answer (the exact text of the correct option).
// The loader resolves whichever is present into CorrectIndex once, so
// comparison sites never branch on the encoding. CorrectIndex is also
// serialized, but readers of persisted records re-derive it through
// ResolveCorrectIndex so stale blobs cannot smuggle in a bogus index.
type Question struct {
	ID          int        `json:"id"`
	Section     Section    `json:"section"`
	Prompt      string     `json:"question"`
	Options     []string   `json:"choices"`
	Correct     *int       `json:"correct,omitempty"`
	Answer      string     `json:"answer,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
	Unit        string     `json:"unit,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`

	CorrectIndex int `json:"correctIndex"`
}

// Catalog holds the flattened, id-sorted question list for every section.
type Catalog struct {
	sections map[Section][]Question
}

// New builds a catalog from already-flattened per-section lists. Load
// is the usual entry point; New exists for callers that assemble
// questions programmatically.
func New(sections map[Section][]Question) *Catalog {
	c := &Catalog{sections: make(map[Section][]Question, len(sections))}
	for s, qs := range sections {
		c.sections[s] = qs
	}
	return c
}

// Section returns the questions of one section in id order.
func (c *Catalog) Section(s Section) []Question {
	return c.sections[s]
}

// All returns every question, concatenated in SectionOrder.
func (c *Catalog) All() []Question {
	var all []Question
	for _, s := range SectionOrder {
		all = append(all, c.sections[s]...)
	}
	return all
}

// Len returns the total question count.
func (c *Catalog) Len() int {
	n := 0
	for _, qs := range c.sections {
		n += len(qs)
	}
	return n
}

// Filter returns questions matching the given section and difficulty.
// The zero value of either argument means "all".
func (c *Catalog) Filter(section Section, difficulty Difficulty) []Question {
	var pool []Question
	if section == "" {
		pool = c.All()
	} else {
		pool = c.sections[section]
	}
	if difficulty == "" {
		return pool
	}
	var out []Question
	for _, q := range pool {
		if q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	return out
}
