package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/AmalShalabi/psycho-arabic/internal/catalog"
	"github.com/AmalShalabi/psycho-arabic/internal/engine"
	"github.com/AmalShalabi/psycho-arabic/internal/router"
	"github.com/AmalShalabi/psycho-arabic/internal/screen"
	"github.com/AmalShalabi/psycho-arabic/internal/screens/filter"
	"github.com/AmalShalabi/psycho-arabic/internal/screens/home"
	"github.com/AmalShalabi/psycho-arabic/internal/screens/quiz"
	"github.com/AmalShalabi/psycho-arabic/internal/store"
	"github.com/AmalShalabi/psycho-arabic/internal/ui/layout"
)

// Options wires the loaded catalog and the persistence gateway into the
// TUI. StartMode skips the home menu and launches a flow directly.
type Options struct {
	Catalog  *catalog.Catalog
	Results  store.ResultStore
	Settings quiz.Settings

	StartMode engine.Mode
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen as the root.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Catalog, opts.Results, opts.Settings)
	return AppModel{
		router: router.New(homeScreen),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	switch m.opts.StartMode {
	case "":
		return nil
	case engine.ModePractice:
		return m.router.Push(filter.New(m.opts.Catalog, m.opts.Results, m.opts.Settings))
	default:
		cfg := m.opts.Settings.ConfigFor(m.opts.StartMode)
		return m.router.Push(quiz.New(m.opts.Catalog, m.opts.Results, cfg))
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens that run a session intercept esc themselves; only
			// fall back to popping when the active screen ignored it.
			if _, handles := m.router.Active().(screen.EscHandler); !handles {
				if m.router.Depth() > 1 {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
				return m, nil
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "رجوع"},
				{Key: "Ctrl+C", Description: "خروج"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "تنقل"},
				{Key: "Enter", Description: "اختيار"},
				{Key: "Ctrl+C", Description: "خروج"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
