// Package home is the main menu: one entry per trainer flow, the saved
// results list, and exit.
package home

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/AmalShalabi/psycho-arabic/internal/catalog"
	"github.com/AmalShalabi/psycho-arabic/internal/engine"
	"github.com/AmalShalabi/psycho-arabic/internal/router"
	"github.com/AmalShalabi/psycho-arabic/internal/screen"
	"github.com/AmalShalabi/psycho-arabic/internal/screens/filter"
	"github.com/AmalShalabi/psycho-arabic/internal/screens/quiz"
	"github.com/AmalShalabi/psycho-arabic/internal/screens/results"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/components"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/theme"
)

// HomeScreen is the application's root screen.
type HomeScreen struct {
	menu      components.Menu
	questions int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen with the given dependencies.
func New(cat *catalog.Catalog, resultStore store.ResultStore, settings quiz.Settings) *HomeScreen {
	pushQuiz := func(mode engine.Mode) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quiz.New(cat, resultStore, settings.ConfigFor(mode)),
				}
			}
		}
	}

	items := []components.MenuItem{
		{Label: engine.ModeExam.Label(), Action: pushQuiz(engine.ModeExam)},
		{Label: engine.ModePractice.Label(), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: filter.New(cat, resultStore, settings),
				}
			}
		}},
		{Label: engine.ModeVocabulary.Label(), Action: pushQuiz(engine.ModeVocabulary)},
		{Label: engine.ModeSentenceCompletion.Label(), Action: pushQuiz(engine.ModeSentenceCompletion)},
		{Label: "النتائج المحفوظة", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: results.NewOverview(resultStore)}
			}
		}},
		{Label: "خروج", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:      components.NewMenu(items),
		questions: cat.Len(),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "الرئيسية"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Render("مدرب الامتحان النفسي")
	subtitle := theme.Subtitle.Render("تدرب على أقسام الامتحان: كمي، لفظي، إنجليزي")
	count := theme.Hint.Render(fmt.Sprintf("عدد الأسئلة المتاحة: %d", h.questions))

	card := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Center,
		title, subtitle, "", count))

	content := lipgloss.JoinVertical(lipgloss.Center, card, "", h.menu.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
