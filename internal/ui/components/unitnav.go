package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/AmalShalabi/psycho-arabic/internal/ui/theme"
)

// UnitTab is one entry in the vocabulary unit navigator.
type UnitTab struct {
	Label         string
	StartQuestion int
	EndQuestion   int
}

// UnitNav renders the row of unit tabs with the active group
// highlighted. Switching groups is handled by the owning screen.
func UnitNav(tabs []UnitTab, active int, width int) string {
	var parts []string
	for i, tab := range tabs {
		text := fmt.Sprintf(" %s %d-%d ", tab.Label, tab.StartQuestion, tab.EndQuestion)
		if i+1 == active {
			parts = append(parts, lipgloss.NewStyle().
				Background(theme.Primary).
				Foreground(theme.Text).
				Bold(true).
				Render(text))
		} else {
			parts = append(parts, lipgloss.NewStyle().
				Background(theme.BgCard).
				Foreground(theme.TextDim).
				Render(text))
		}
	}

	row := strings.Join(parts, " ")
	if lipgloss.Width(row) > width {
		// Too many tabs to show at once; fall back to a compact label.
		return theme.Hint.Render(fmt.Sprintf("%s (%d/%d)", tabs[active-1].Label, active, len(tabs)))
	}
	return row
}
