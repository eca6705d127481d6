package engine

import (
	"slices"

	"github.com/AmalShalabi/psycho-arabic/internal/catalog"
)

// buildQuestions assembles the session's question list per mode rules:
//
//   - exam: fixed-size per-section prefixes in quota order, then one
//     uniform shuffle of the combined list
//   - practice: section/difficulty filter, shuffle, truncate to cap
//   - vocabulary and sentence completion: the full section in id order,
//     stable across runs
func buildQuestions(cat *catalog.Catalog, cfg Config) []catalog.Question {
	switch cfg.Mode {
	case ModeExam:
		quotas := cfg.ExamQuotas
		if quotas == nil {
			quotas = DefaultExamQuotas
		}
		var set []catalog.Question
		for _, quota := range quotas {
			sec := cat.Section(quota.Section)
			n := min(quota.Count, len(sec))
			set = append(set, sec[:n]...)
		}
		cfg.shuffle(set)
		return set

	case ModePractice:
		set := slices.Clone(cat.Filter(cfg.Section, cfg.Difficulty))
		cfg.shuffle(set)
		if cfg.Cap > 0 && len(set) > cfg.Cap {
			set = set[:cfg.Cap]
		}
		return set

	case ModeVocabulary:
		return slices.Clone(cat.Section(catalog.SectionVocabulary))

	case ModeSentenceCompletion:
		return slices.Clone(cat.Section(catalog.SectionSentenceCompletion))
	}
	return nil
}
