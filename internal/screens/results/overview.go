package results

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/AmalShalabi/psycho-arabic/internal/router"
	"github.com/AmalShalabi/psycho-arabic/internal/screen"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/components"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/theme"
)

type slotsLoadedMsg struct {
	records map[store.Kind]*store.Result
	err     error
}

// OverviewScreen lists every result slot and opens the chosen one.
type OverviewScreen struct {
	results store.ResultStore

	menu   components.Menu
	loaded bool
	errMsg string
}

var _ screen.Screen = (*OverviewScreen)(nil)

// NewOverview creates the saved-results list screen.
func NewOverview(results store.ResultStore) *OverviewScreen {
	return &OverviewScreen{results: results}
}

func (o *OverviewScreen) Init() tea.Cmd {
	results := o.results
	return func() tea.Msg {
		records := make(map[store.Kind]*store.Result)
		for _, k := range store.Kinds {
			rec, err := results.Load(context.Background(), k)
			if err != nil {
				return slotsLoadedMsg{err: err}
			}
			records[k] = rec
		}
		return slotsLoadedMsg{records: records}
	}
}

func (o *OverviewScreen) Title() string {
	return "النتائج المحفوظة"
}

func (o *OverviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case slotsLoadedMsg:
		o.loaded = true
		if msg.err != nil {
			o.errMsg = msg.err.Error()
			return o, nil
		}
		o.menu = components.NewMenu(o.buildItems(msg.records))
		return o, nil

	case tea.KeyMsg:
		if o.errMsg != "" {
			return o, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	if !o.loaded {
		return o, nil
	}
	var cmd tea.Cmd
	o.menu, cmd = o.menu.Update(msg)
	return o, cmd
}

func (o *OverviewScreen) buildItems(records map[store.Kind]*store.Result) []components.MenuItem {
	var items []components.MenuItem
	for _, k := range store.Kinds {
		kind := k
		rec := records[k]

		label := KindLabel(k)
		if rec == nil {
			label += "  —  لا توجد نتيجة"
		} else {
			label += fmt.Sprintf("  —  %d/%d · %s",
				rec.CorrectAnswers, rec.TotalQuestions,
				rec.CompletedAt.Format("2006-01-02 15:04"))
		}

		items = append(items, components.MenuItem{
			Label:    label,
			Disabled: rec == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: New(o.results, kind)}
				}
			},
		})
	}
	return items
}

func (o *OverviewScreen) View(width, height int) string {
	switch {
	case o.errMsg != "":
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(o.errMsg))
	case !o.loaded:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("جارٍ التحميل..."))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("النتائج المحفوظة"), "", o.menu.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
