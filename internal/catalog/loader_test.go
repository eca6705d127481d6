package catalog

import (
	"errors"
	"testing"
)

func TestLoadFlatSection(t *testing.T) {
	raw := []byte(`{
		"quantitative": [
			{"id": 2, "question": "٢+٢؟", "choices": ["٣", "٤", "٥", "٦"], "correct": 1},
			{"id": 1, "question": "١+١؟", "choices": ["١", "٢", "٣", "٤"], "correct": 1, "difficulty": "easy"}
		]
	}`)

	cat, err := Load(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	qs := cat.Section(SectionQuantitative)
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].ID != 1 || qs[1].ID != 2 {
		t.Errorf("expected id order 1,2, got %d,%d", qs[0].ID, qs[1].ID)
	}
	if qs[0].CorrectIndex != 1 {
		t.Errorf("expected resolved index 1, got %d", qs[0].CorrectIndex)
	}
	if qs[0].Difficulty != DifficultyEasy {
		t.Errorf("expected easy difficulty, got %q", qs[0].Difficulty)
	}
}

func TestLoadLevelUnitsShape(t *testing.T) {
	raw := []byte(`{
		"vocabulary": [
			{"level": "A", "units": [
				{"unit": "Unit 1", "questions": [
					{"id": 1, "word": "cat", "choices": ["قطة", "كلب"], "answer": "قطة"},
					{"id": 2, "word": "dog", "choices": ["قطة", "كلب"], "answer": "كلب"}
				]},
				{"unit": "Unit 2", "questions": [
					{"id": 3, "word": "sun", "choices": ["شمس", "قمر"], "answer": "شمس"}
				]}
			]}
		]
	}`)

	cat, err := Load(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	qs := cat.Section(SectionVocabulary)
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	if qs[0].Prompt != "cat" {
		t.Errorf("expected word promoted to prompt, got %q", qs[0].Prompt)
	}
	if qs[0].Unit != "Unit 1" || qs[2].Unit != "Unit 2" {
		t.Errorf("unit labels not carried: %q, %q", qs[0].Unit, qs[2].Unit)
	}
	if qs[0].CorrectIndex != 0 || qs[1].CorrectIndex != 1 {
		t.Errorf("answer text not resolved: %d, %d", qs[0].CorrectIndex, qs[1].CorrectIndex)
	}
}

func TestLoadUnitWordsShape(t *testing.T) {
	raw := []byte(`{
		"vocabulary": [
			{"unit": "Unit 5", "words": [
				{"id": 10, "word": "book", "choices": ["كتاب", "قلم"], "answer": "كتاب"}
			]}
		]
	}`)

	cat, err := Load(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	qs := cat.Section(SectionVocabulary)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if qs[0].Unit != "Unit 5" {
		t.Errorf("expected Unit 5, got %q", qs[0].Unit)
	}
}

func TestLoadMixedShapesInOneSection(t *testing.T) {
	raw := []byte(`{
		"vocabulary": [
			{"id": 1, "word": "cat", "choices": ["قطة", "كلب"], "answer": "قطة"},
			{"unit": "Unit 2", "words": [
				{"id": 2, "word": "dog", "choices": ["قطة", "كلب"], "answer": "كلب"}
			]}
		]
	}`)

	cat, err := Load(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(cat.Section(SectionVocabulary)); got != 2 {
		t.Fatalf("expected 2 questions across mixed shapes, got %d", got)
	}
}

func TestLoadSyntheticIDsAndUnits(t *testing.T) {
	// No ids, no units: positions fill both in.
	raw := []byte(`{
		"sentenceCompletion": [
			{"question": "أكمل ...", "choices": ["أ", "ب"], "answer": "أ"},
			{"question": "أكمل ...", "choices": ["أ", "ب"], "answer": "ب"}
		]
	}`)

	cat, err := Load(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	qs := cat.Section(SectionSentenceCompletion)
	if qs[0].ID != 1 || qs[1].ID != 2 {
		t.Errorf("expected synthetic ids 1,2, got %d,%d", qs[0].ID, qs[1].ID)
	}
	if qs[0].Unit != "Unit 1" {
		t.Errorf("expected synthetic unit label, got %q", qs[0].Unit)
	}
}

func TestLoadSkipsInvalidEntries(t *testing.T) {
	// The middle entry has a single choice and fails validation; the
	// others still load.
	raw := []byte(`{
		"verbal": [
			{"id": 1, "question": "س١", "choices": ["أ", "ب"], "correct": 0},
			{"id": 2, "question": "س٢", "choices": ["أ"]},
			{"id": 3, "question": "س٣", "choices": ["أ", "ب"], "correct": 1}
		]
	}`)

	cat, err := Load(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	qs := cat.Section(SectionVerbal)
	if len(qs) != 2 {
		t.Fatalf("expected invalid entry skipped, got %d questions", len(qs))
	}
	if qs[0].ID != 1 || qs[1].ID != 3 {
		t.Errorf("wrong survivors: %d, %d", qs[0].ID, qs[1].ID)
	}
}

func TestLoadEmptyCatalog(t *testing.T) {
	_, err := Load([]byte(`{}`))
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}

	// Unknown top-level keys contribute nothing.
	_, err = Load([]byte(`{"history": [{"question": "؟", "choices": ["أ", "ب"]}]}`))
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog for unknown sections, got %v", err)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	if _, err := Load([]byte(`{`)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadUnwinnableQuestionKept(t *testing.T) {
	raw := []byte(`{
		"english": [
			{"id": 1, "question": "pick", "choices": ["a", "b"], "answer": "z"}
		]
	}`)

	cat, err := Load(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	qs := cat.Section(SectionEnglish)
	if len(qs) != 1 {
		t.Fatalf("unwinnable question should load, got %d questions", len(qs))
	}
	if qs[0].CorrectIndex != -1 {
		t.Errorf("expected -1 resolution, got %d", qs[0].CorrectIndex)
	}
}
