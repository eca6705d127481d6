package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// UnitSize is the number of questions per synthesized vocabulary unit.
const UnitSize = 20

// ErrEmptyCatalog is returned when a catalog yields no questions after
// flattening. Callers treat it as "no questions available", not a crash.
var ErrEmptyCatalog = errors.New("catalog contains no questions")

// sectionKeys maps raw catalog keys to canonical sections.
var sectionKeys = map[string]Section{
	"quantitative":       SectionQuantitative,
	"verbal":             SectionVerbal,
	"english":            SectionEnglish,
	"vocabulary":         SectionVocabulary,
	"sentenceCompletion": SectionSentenceCompletion,
}

// rawQuestion is a question record as it appears in the source catalog.
// The prompt may live in either "word" (vocabulary lists) or "question".
type rawQuestion struct {
	ID          *int     `json:"id"`
	Word        string   `json:"word"`
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	Correct     *int     `json:"correct"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	Unit        string   `json:"unit"`
	Difficulty  string   `json:"difficulty"`
	Section     string   `json:"section"`
}

// rawEntry is one top-level catalog entry. Shapes may be mixed within a
// single section list, so each entry is inspected independently: a level
// wrapper carries Units, a unit wrapper carries Words, and anything else
// is treated as a flat question record.
type rawEntry struct {
	rawQuestion
	Units []rawUnit     `json:"units"`
	Words []rawQuestion `json:"words"`
}

type rawUnit struct {
	Unit      string        `json:"unit"`
	Questions []rawQuestion `json:"questions"`
}

// Load parses a raw JSON catalog (a map of section name to entry list)
// and flattens it into id-sorted per-section question lists. Entries
// failing schema validation are skipped with a warning; an entirely
// empty result yields ErrEmptyCatalog.
func Load(raw []byte) (*Catalog, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	cat := &Catalog{sections: make(map[Section][]Question)}
	for key, section := range sectionKeys {
		list, ok := top[key]
		if !ok {
			continue
		}
		qs, err := loadSection(section, list)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", key, err)
		}
		cat.sections[section] = qs
	}

	if cat.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	return cat, nil
}

// LoadFile reads and loads a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Load(raw)
}

func loadSection(section Section, list json.RawMessage) ([]Question, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(list, &entries); err != nil {
		return nil, fmt.Errorf("parse entry list: %w", err)
	}

	var flat []Question
	for i, raw := range entries {
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			warnf("catalog: %s entry %d: invalid JSON, skipped: %v", section, i, err)
			continue
		}
		if err := validateEntry(parsed); err != nil {
			warnf("catalog: %s entry %d: schema violation, skipped: %v", section, i, err)
			continue
		}

		var entry rawEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			warnf("catalog: %s entry %d: decode failed, skipped: %v", section, i, err)
			continue
		}
		flat = append(flat, flattenEntry(section, entry)...)
	}

	return normalize(section, flat), nil
}

// flattenEntry expands one top-level entry into its question records.
func flattenEntry(section Section, entry rawEntry) []Question {
	switch {
	case len(entry.Units) > 0:
		var out []Question
		for _, u := range entry.Units {
			for _, q := range u.Questions {
				out = append(out, toQuestion(section, q, u.Unit))
			}
		}
		return out

	case len(entry.Words) > 0 && entry.Unit != "":
		out := make([]Question, 0, len(entry.Words))
		for _, q := range entry.Words {
			out = append(out, toQuestion(section, q, entry.Unit))
		}
		return out

	default:
		return []Question{toQuestion(section, entry.rawQuestion, entry.Unit)}
	}
}

func toQuestion(section Section, raw rawQuestion, unit string) Question {
	prompt := raw.Word
	if prompt == "" {
		prompt = raw.Question
	}
	if raw.Section != "" {
		if s, ok := sectionKeys[raw.Section]; ok {
			section = s
		} else {
			section = Section(raw.Section)
		}
	}
	q := Question{
		Section:     section,
		Prompt:      prompt,
		Options:     raw.Choices,
		Correct:     raw.Correct,
		Answer:      raw.Answer,
		Explanation: raw.Explanation,
		Unit:        unit,
		Difficulty:  Difficulty(raw.Difficulty),
	}
	if raw.ID != nil {
		q.ID = *raw.ID
	}
	return q
}

// normalize sorts by id, fills synthetic ids and unit labels by
// position, and resolves the canonical correct index once per question.
func normalize(section Section, qs []Question) []Question {
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].ID < qs[j].ID })

	for i := range qs {
		if qs[i].ID == 0 {
			qs[i].ID = i + 1
		}
		if qs[i].Unit == "" {
			qs[i].Unit = fmt.Sprintf("Unit %d", i/UnitSize+1)
		}
		qs[i].CorrectIndex = ResolveCorrectIndex(qs[i])
		if qs[i].CorrectIndex < 0 && qs[i].Answer != "" {
			warnf("catalog: %s question %d: answer %q not among choices, question is unwinnable",
				section, qs[i].ID, qs[i].Answer)
		}
	}
	return qs
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
