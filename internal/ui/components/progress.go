package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/AmalShalabi/psycho-arabic/internal/ui/theme"
)

// ProgressBar displays question progress as a current-of-total bar.
type ProgressBar struct {
	Label   string
	Current int
	Total   int
	Width   int
}

// NewProgressBar creates a progress bar for position Current of Total.
func NewProgressBar(label string, current, total, width int) ProgressBar {
	return ProgressBar{Label: label, Current: current, Total: total, Width: width}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	counter := fmt.Sprintf("  %d/%d", p.Current, p.Total)
	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(counter)
	if barWidth < 4 {
		barWidth = 4
	}

	ratio := 0.0
	if p.Total > 0 {
		ratio = float64(p.Current) / float64(p.Total)
	}
	filled := int(float64(barWidth) * ratio)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	result += lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(counter)

	return result
}
