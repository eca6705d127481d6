// Package groupresult is the break screen shown when a question group
// is completed mid-run. It reports the group score and lets the learner
// move on, go back, or retake the group; the owning session screen
// reacts to the messages emitted here.
package groupresult

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/AmalShalabi/psycho-arabic/internal/engine"
	"github.com/AmalShalabi/psycho-arabic/internal/router"
	"github.com/AmalShalabi/psycho-arabic/internal/screen"
	"github.com/AmalShalabi/psycho-arabic/internal/summary"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/components"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/layout"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/theme"
)

// NavigateMsg asks the session screen below to jump to a group.
type NavigateMsg struct {
	Group int
}

// RetryMsg asks the session screen below to clear and retake a group.
type RetryMsg struct {
	Group int
}

// FinishMsg asks the session screen below to finish the whole run.
type FinishMsg struct{}

// GroupResultScreen shows one group's completion summary.
type GroupResultScreen struct {
	completion *engine.GroupCompletion
	menu       components.Menu
}

var _ screen.Screen = (*GroupResultScreen)(nil)
var _ screen.KeyHintProvider = (*GroupResultScreen)(nil)

// New creates the break screen for a completed group.
func New(gc *engine.GroupCompletion) *GroupResultScreen {
	var items []components.MenuItem

	if gc.NextGroup > 0 {
		next := gc.NextGroup
		items = append(items, components.MenuItem{
			Label: "المجموعة التالية",
			Action: func() tea.Cmd {
				return tea.Sequence(
					func() tea.Msg { return router.PopScreenMsg{} },
					func() tea.Msg { return NavigateMsg{Group: next} },
				)
			},
		})
	} else {
		items = append(items, components.MenuItem{
			Label: "عرض النتيجة النهائية",
			Action: func() tea.Cmd {
				return tea.Sequence(
					func() tea.Msg { return router.PopScreenMsg{} },
					func() tea.Msg { return FinishMsg{} },
				)
			},
		})
	}

	group := gc.GroupNumber
	items = append(items, components.MenuItem{
		Label: "إعادة المجموعة",
		Action: func() tea.Cmd {
			return tea.Sequence(
				func() tea.Msg { return router.PopScreenMsg{} },
				func() tea.Msg { return RetryMsg{Group: group} },
			)
		},
	})

	if gc.PrevGroup > 0 {
		prev := gc.PrevGroup
		items = append(items, components.MenuItem{
			Label: "المجموعة السابقة",
			Action: func() tea.Cmd {
				return tea.Sequence(
					func() tea.Msg { return router.PopScreenMsg{} },
					func() tea.Msg { return NavigateMsg{Group: prev} },
				)
			},
		})
	}

	return &GroupResultScreen{
		completion: gc,
		menu:       components.NewMenu(items),
	}
}

func (g *GroupResultScreen) Init() tea.Cmd {
	return nil
}

func (g *GroupResultScreen) Title() string {
	return fmt.Sprintf("المجموعة %d من %d", g.completion.GroupNumber, g.completion.TotalGroups)
}

func (g *GroupResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "تنقل"},
		{Key: "Enter", Description: "اختيار"},
		{Key: "Ctrl+C", Description: "خروج"},
	}
}

func (g *GroupResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	g.menu, cmd = g.menu.Update(msg)
	return g, cmd
}

func (g *GroupResultScreen) View(width, height int) string {
	gc := g.completion

	pct := 0
	if gc.Score.Total > 0 {
		pct = 100 * gc.Score.Correct / gc.Score.Total
	}

	title := theme.Title.Render(fmt.Sprintf("أحسنت! أكملت المجموعة %d", gc.GroupNumber))
	unit := theme.Subtitle.Render(fmt.Sprintf("%s · الأسئلة %d-%d",
		gc.UnitName, gc.Range.StartQuestion, gc.Range.EndQuestion))

	score := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("%d من %d  (%d%%)", gc.Score.Correct, gc.Score.Total, pct))

	message := theme.Subtitle.Render(summary.Message(pct))

	card := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Center,
		title, "", unit, "", score, message))

	content := lipgloss.JoinVertical(lipgloss.Center, card, "", g.menu.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
