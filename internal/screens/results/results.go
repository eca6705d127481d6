// Package results renders a persisted result record: the aggregate
// score, the per-section breakdown, and a per-question review. It reads
// only the record, never live session state, so it shows the same thing
// right after a run and after a restart.
package results

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/AmalShalabi/psycho-arabic/internal/router"
	"github.com/AmalShalabi/psycho-arabic/internal/screen"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
	"github.com/AmalShalabi/psycho-arabic/internal/summary"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/components"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/layout"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/theme"
)

type recordLoadedMsg struct {
	rec *store.Result
	err error
}

// ResultsScreen shows one result slot.
type ResultsScreen struct {
	results store.ResultStore
	kind    store.Kind

	rec    *store.Result
	sum    summary.Summary
	loaded bool
	errMsg string

	reviewing bool
	reviewIdx int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen that loads the slot's record on init.
func New(results store.ResultStore, kind store.Kind) *ResultsScreen {
	return &ResultsScreen{results: results, kind: kind}
}

// NewFromRecord creates a results screen for a just-finished run whose
// record is already in hand.
func NewFromRecord(kind store.Kind, rec *store.Result) *ResultsScreen {
	r := &ResultsScreen{kind: kind, rec: rec, loaded: true}
	r.sum = summary.Summarize(rec)
	return r
}

func (r *ResultsScreen) Init() tea.Cmd {
	if r.loaded {
		return nil
	}
	results, kind := r.results, r.kind
	return func() tea.Msg {
		rec, err := results.Load(context.Background(), kind)
		return recordLoadedMsg{rec: rec, err: err}
	}
}

func (r *ResultsScreen) Title() string {
	return "النتيجة — " + KindLabel(r.kind)
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	if r.reviewing {
		return []layout.KeyHint{
			{Key: "←→", Description: "تصفح الأسئلة"},
			{Key: "Enter", Description: "رجوع للملخص"},
			{Key: "Esc", Description: "رجوع"},
		}
	}
	if r.rec == nil {
		return []layout.KeyHint{
			{Key: "Esc", Description: "رجوع"},
		}
	}
	return []layout.KeyHint{
		{Key: "R", Description: "مراجعة الأسئلة"},
		{Key: "Esc", Description: "رجوع"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordLoadedMsg:
		r.loaded = true
		if msg.err != nil {
			r.errMsg = msg.err.Error()
			return r, nil
		}
		r.rec = msg.rec
		if r.rec != nil {
			r.sum = summary.Summarize(r.rec)
		}
		return r, nil

	case tea.KeyMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *ResultsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if r.errMsg != "" || (r.loaded && r.rec == nil) {
		// Nothing to show; any key goes back.
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if r.rec == nil {
		return r, nil
	}

	key := msg.String()
	if r.reviewing {
		switch key {
		case "left", "h", "down", "j":
			if r.reviewIdx < len(r.rec.Questions)-1 {
				r.reviewIdx++
			}
		case "right", "l", "up", "k":
			if r.reviewIdx > 0 {
				r.reviewIdx--
			}
		case "enter", "r":
			r.reviewing = false
		}
		return r, nil
	}

	switch key {
	case "r", "enter":
		if len(r.rec.Questions) > 0 {
			r.reviewing = true
			r.reviewIdx = 0
		}
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	switch {
	case r.errMsg != "":
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(r.errMsg))
	case !r.loaded:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("جارٍ التحميل..."))
	case r.rec == nil:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Card.Render(theme.Subtitle.Render("لا توجد نتائج محفوظة بعد")))
	case r.reviewing:
		return r.viewReview(width, height)
	}
	return r.viewSummary(width, height)
}

func (r *ResultsScreen) viewSummary(width, height int) string {
	sum := r.sum

	pct := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("%d%%", sum.Percentage))

	headline := lipgloss.JoinVertical(lipgloss.Center,
		pct,
		theme.Subtitle.Render(summary.Message(sum.Percentage)),
		"",
		theme.Body.Render(fmt.Sprintf("صحيح %d · مُجاب %d · الكل %d · الوقت %s",
			sum.Correct, sum.Answered, sum.Total, layout.FormatClock(sum.Seconds))),
	)

	var rows []string
	for _, sec := range sum.Sections {
		rows = append(rows, fmt.Sprintf("%-18s %3d/%-3d %3d%%",
			sec.Section.Label(), sec.Correct, sec.Total, sec.Percentage))
	}
	table := ""
	if len(rows) > 0 {
		table = theme.Body.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	strip := r.statusStrip()

	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Card.Render(headline), "", table, "", strip)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// statusStrip renders one dot per question, colored by review status.
func (r *ResultsScreen) statusStrip() string {
	var s string
	for _, st := range r.sum.Statuses {
		switch st {
		case summary.StatusCorrect:
			s += theme.Correct.Render("●")
		case summary.StatusIncorrect:
			s += theme.Incorrect.Render("●")
		default:
			s += theme.Hint.Render("○")
		}
	}
	return s
}

func (r *ResultsScreen) viewReview(width, height int) string {
	q := r.rec.Questions[r.reviewIdx]

	chosen := -1
	if a, ok := r.rec.Answers[r.reviewIdx]; ok {
		chosen = a
	}

	choice := components.NewChoice(q.Prompt, q.Options, q.CorrectIndex)
	choice.Chosen = chosen
	choice.Revealed = true
	choice.Locked = true
	choice.Explanation = q.Explanation

	header := theme.Subtitle.Render(fmt.Sprintf("سؤال %d من %d · %s",
		r.reviewIdx+1, len(r.rec.Questions), q.Section.Label()))

	status := ""
	switch r.sum.Statuses[r.reviewIdx] {
	case summary.StatusCorrect:
		status = theme.Correct.Render("إجابة صحيحة")
	case summary.StatusIncorrect:
		status = theme.Incorrect.Render("إجابة خاطئة")
	default:
		status = theme.Hint.Render("لم تتم الإجابة")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header, "", choice.View(), status)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// KindLabel returns the Arabic display name of a result slot.
func KindLabel(k store.Kind) string {
	switch k {
	case store.KindExam:
		return "امتحان تجريبي"
	case store.KindPractice:
		return "تدريب سريع"
	case store.KindVocabulary:
		return "مفردات إنجليزية"
	case store.KindSentenceCompletion:
		return "إكمال جمل"
	case store.KindGroup:
		return "آخر مجموعة"
	}
	return string(k)
}
