package quiz

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/AmalShalabi/psycho-arabic/internal/engine"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/components"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(s.errMsg))
	case s.showIntro:
		return s.viewIntro(width, height)
	case s.sess == nil:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("جارٍ التحضير..."))
	case s.sess.Phase() == engine.PhasePendingConfirmation:
		return s.viewConfirm(width, height)
	}
	return s.viewQuestion(width, height)
}

// viewIntro is the exam rules card shown before the countdown starts.
func (s *QuizScreen) viewIntro(width, height int) string {
	total := 0
	quotas := s.cfg.ExamQuotas
	if quotas == nil {
		quotas = engine.DefaultExamQuotas
	}
	var lines []string
	for _, q := range quotas {
		lines = append(lines, fmt.Sprintf("%s: %d أسئلة", q.Section.Label(), q.Count))
		total += q.Count
	}

	minutes := int(s.cfg.TimeBudget / time.Minute)
	card := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("امتحان تجريبي"),
		"",
		theme.Body.Render(fmt.Sprintf("%d سؤالاً · %d دقيقة", total, minutes)),
		"",
		theme.Subtitle.Render(lipgloss.JoinVertical(lipgloss.Right, lines...)),
		"",
		theme.Hint.Render("اضغط Enter للبدء"),
	))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// viewConfirm is the manual-finish confirmation dialog.
func (s *QuizScreen) viewConfirm(width, height int) string {
	unanswered := len(s.sess.Questions) - s.sess.AnsweredCount()

	body := "هل أنت متأكد من إنهاء الامتحان؟"
	if unanswered > 0 {
		body += fmt.Sprintf("\nبقي %d سؤالاً بدون إجابة", unanswered)
	}

	card := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("إنهاء الامتحان"),
		"",
		theme.Body.Render(body),
		"",
		theme.Hint.Render("Y إنهاء · N متابعة"),
	))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *QuizScreen) viewQuestion(width, height int) string {
	q := s.sess.Current()

	var sections []string

	if s.cfg.GroupSize > 0 {
		sections = append(sections, s.unitTabs(width))
	}

	header := theme.Subtitle.Render(fmt.Sprintf("سؤال %d من %d · %s",
		s.sess.Position+1, len(s.sess.Questions), q.Section.Label()))
	sections = append(sections, header)

	bar := components.NewProgressBar("", s.sess.AnsweredCount(), len(s.sess.Questions), min(width-8, 50))
	sections = append(sections, bar.View())

	sections = append(sections, "", s.choice.View())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// unitTabs renders the group navigator row for grouped runs.
func (s *QuizScreen) unitTabs(width int) string {
	total := engine.TotalGroups(len(s.sess.Questions), s.cfg.GroupSize)
	tabs := make([]components.UnitTab, 0, total)
	for g := 1; g <= total; g++ {
		info := engine.Group(g, len(s.sess.Questions), s.cfg.GroupSize)
		label := s.sess.Questions[info.StartIndex].Unit
		if label == "" {
			label = fmt.Sprintf("مجموعة %d", g)
		}
		tabs = append(tabs, components.UnitTab{
			Label:         label,
			StartQuestion: info.StartQuestion,
			EndQuestion:   info.EndQuestion,
		})
	}
	active := engine.CurrentGroup(s.sess.Position, s.cfg.GroupSize)
	return components.UnitNav(tabs, active, width-4)
}
