// Package summary is the read side of a persisted result record: it
// recomputes scores from the record's own questions and answers, never
// from live session state, so it works identically after a reload.
package summary

import (
	"math"

	"github.com/AmalShalabi/psycho-arabic/internal/catalog"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
)

// Status classifies one reviewed question position.
type Status int

const (
	StatusUnanswered Status = iota
	StatusCorrect
	StatusIncorrect
)

// SectionScore is the per-section breakdown row.
type SectionScore struct {
	Section    catalog.Section
	Correct    int
	Total      int
	Percentage int
}

// Summary is the computed view over one result record.
type Summary struct {
	Percentage int
	Sections   []SectionScore
	Statuses   []Status

	Correct  int
	Answered int
	Total    int
	Seconds  int
}

// Summarize computes the aggregate score, per-section breakdown and
// per-question review status of a record. Correctness is re-derived
// through the answer resolver so both correctness encodings work.
func Summarize(rec *store.Result) Summary {
	sum := Summary{
		Correct:  rec.CorrectAnswers,
		Answered: rec.AnsweredQuestions,
		Total:    rec.TotalQuestions,
		Seconds:  rec.TimeSpentSeconds,
	}
	if rec.TotalQuestions > 0 {
		sum.Percentage = percent(rec.CorrectAnswers, rec.TotalQuestions)
	}

	bySection := make(map[catalog.Section]*SectionScore)
	var order []catalog.Section

	sum.Statuses = make([]Status, len(rec.Questions))
	for pos, q := range rec.Questions {
		sec, ok := bySection[q.Section]
		if !ok {
			sec = &SectionScore{Section: q.Section}
			bySection[q.Section] = sec
			order = append(order, q.Section)
		}
		sec.Total++

		selected, answered := rec.Answers[pos]
		switch {
		case !answered:
			sum.Statuses[pos] = StatusUnanswered
		case catalog.IsCorrect(q, selected):
			sum.Statuses[pos] = StatusCorrect
			sec.Correct++
		default:
			sum.Statuses[pos] = StatusIncorrect
		}
	}

	for _, s := range order {
		sec := bySection[s]
		sec.Percentage = percent(sec.Correct, sec.Total)
		sum.Sections = append(sum.Sections, *sec)
	}
	return sum
}

func percent(correct, total int) int {
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// Message returns the Arabic encouragement line for a percentage score.
func Message(percentage int) string {
	switch {
	case percentage >= 90:
		return "ممتاز! أداء رائع"
	case percentage >= 75:
		return "جيد جداً! استمر في التقدم"
	case percentage >= 50:
		return "جيد، يمكنك التحسن أكثر"
	default:
		return "تحتاج إلى مزيد من التدريب"
	}
}
