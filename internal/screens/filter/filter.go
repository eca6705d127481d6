// Package filter is the practice setup screen: pick a section, a
// difficulty, and a question count, then start the run.
package filter

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/AmalShalabi/psycho-arabic/internal/catalog"
	"github.com/AmalShalabi/psycho-arabic/internal/engine"
	"github.com/AmalShalabi/psycho-arabic/internal/router"
	"github.com/AmalShalabi/psycho-arabic/internal/screen"
	"github.com/AmalShalabi/psycho-arabic/internal/screens/quiz"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/components"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/layout"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/theme"
)

type stage int

const (
	stageSection stage = iota
	stageDifficulty
	stageCount
)

// FilterScreen collects the practice filters step by step.
type FilterScreen struct {
	cat      *catalog.Catalog
	results  store.ResultStore
	settings quiz.Settings

	stage      stage
	section    catalog.Section
	difficulty catalog.Difficulty
	notice     string

	sectionMenu    components.Menu
	difficultyMenu components.Menu
	count          components.NumberInput
}

var _ screen.Screen = (*FilterScreen)(nil)
var _ screen.KeyHintProvider = (*FilterScreen)(nil)

// New creates the practice setup screen.
func New(cat *catalog.Catalog, results store.ResultStore, settings quiz.Settings) *FilterScreen {
	f := &FilterScreen{
		cat:      cat,
		results:  results,
		settings: settings,
	}

	sectionItems := []components.MenuItem{
		{Label: "كل الأقسام", Action: f.chooseSection("")},
	}
	for _, sec := range catalog.SectionOrder {
		if len(cat.Section(sec)) == 0 {
			continue
		}
		sectionItems = append(sectionItems, components.MenuItem{
			Label:  fmt.Sprintf("%s (%d)", sec.Label(), len(cat.Section(sec))),
			Action: f.chooseSection(sec),
		})
	}
	f.sectionMenu = components.NewMenu(sectionItems)

	difficultyItems := []components.MenuItem{
		{Label: "كل المستويات", Action: f.chooseDifficulty("")},
		{Label: catalog.DifficultyEasy.Label(), Action: f.chooseDifficulty(catalog.DifficultyEasy)},
		{Label: catalog.DifficultyMedium.Label(), Action: f.chooseDifficulty(catalog.DifficultyMedium)},
		{Label: catalog.DifficultyHard.Label(), Action: f.chooseDifficulty(catalog.DifficultyHard)},
	}
	f.difficultyMenu = components.NewMenu(difficultyItems)

	defaultCap := settings.PracticeCap
	if defaultCap <= 0 {
		defaultCap = engine.DefaultPracticeCap
	}
	f.count = components.NewNumberInput(strconv.Itoa(defaultCap))

	return f
}

func (f *FilterScreen) chooseSection(sec catalog.Section) func() tea.Cmd {
	return func() tea.Cmd {
		f.section = sec
		f.notice = ""
		f.stage = stageDifficulty
		return nil
	}
}

func (f *FilterScreen) chooseDifficulty(d catalog.Difficulty) func() tea.Cmd {
	return func() tea.Cmd {
		f.difficulty = d
		f.stage = stageCount
		return f.count.Init()
	}
}

func (f *FilterScreen) Init() tea.Cmd {
	return nil
}

func (f *FilterScreen) Title() string {
	return "تدريب سريع"
}

func (f *FilterScreen) KeyHints() []layout.KeyHint {
	if f.stage == stageCount {
		return []layout.KeyHint{
			{Key: "Enter", Description: "ابدأ"},
			{Key: "Esc", Description: "رجوع"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "تنقل"},
		{Key: "Enter", Description: "اختيار"},
		{Key: "Esc", Description: "رجوع"},
	}
}

func (f *FilterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd

	switch f.stage {
	case stageSection:
		f.sectionMenu, cmd = f.sectionMenu.Update(msg)
		return f, cmd

	case stageDifficulty:
		f.difficultyMenu, cmd = f.difficultyMenu.Update(msg)
		return f, cmd

	case stageCount:
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			return f, f.startPractice()
		}
		f.count, cmd = f.count.Update(msg)
		return f, cmd
	}
	return f, nil
}

// startPractice replaces this screen with the running session, so back
// from the session returns to home rather than a half-filled form. An
// empty filter result returns to the section picker instead.
func (f *FilterScreen) startPractice() tea.Cmd {
	if len(f.cat.Filter(f.section, f.difficulty)) == 0 {
		f.notice = "لا توجد أسئلة مطابقة، جرّب مرشحات أخرى"
		f.stage = stageSection
		return nil
	}

	cfg := f.settings.ConfigFor(engine.ModePractice)
	cfg.Section = f.section
	cfg.Difficulty = f.difficulty
	if n, err := strconv.Atoi(f.count.Value()); err == nil && n > 0 {
		cfg.Cap = n
	}

	return func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: quiz.New(f.cat, f.results, cfg),
		}
	}
}

func (f *FilterScreen) View(width, height int) string {
	var title, body string

	switch f.stage {
	case stageSection:
		title = "اختر القسم"
		body = f.sectionMenu.View()
	case stageDifficulty:
		title = "اختر المستوى"
		body = f.difficultyMenu.View()
	case stageCount:
		title = "عدد الأسئلة"
		body = f.count.View() + "\n\n" + theme.Hint.Render("اتركه فارغاً للعدد الافتراضي")
	}

	parts := []string{theme.Title.Render(title), "", body}
	if f.notice != "" {
		parts = append(parts, "", theme.Incorrect.Render(f.notice))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
