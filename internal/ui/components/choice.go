package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/AmalShalabi/psycho-arabic/internal/ui/theme"
)

// Choice renders a question with its options in fixed order. It covers
// both feedback styles: with Revealed set, the correct option and a
// wrong pick are colored; otherwise a recorded answer is only marked as
// chosen, with no hint at correctness.
type Choice struct {
	Prompt       string
	Options      []string
	CorrectIndex int

	// Cursor is the highlighted option.
	Cursor int
	// Chosen is the recorded answer index, -1 when unanswered.
	Chosen int
	// Revealed switches to correct/incorrect coloring.
	Revealed bool
	// Locked freezes cursor movement (immediate modes after answering).
	Locked bool

	Explanation string
}

// NewChoice creates a choice list for one question.
func NewChoice(prompt string, options []string, correctIndex int) Choice {
	return Choice{
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correctIndex,
		Chosen:       -1,
	}
}

// Init returns nil.
func (c Choice) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement. Selection itself is decided by the
// owning screen, which knows the session's answer rules.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Locked {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	}
	return c, nil
}

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// View renders the prompt and option list.
func (c Choice) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt) + "\n\n"

	for i, opt := range c.Options {
		label := fmt.Sprintf("%d", i+1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == c.Cursor && !c.Revealed && !c.Locked {
			prefix = "▸ "
		}
		marker := " "
		if i == c.Chosen {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, label, opt)

		switch {
		case c.Revealed && i == c.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case c.Revealed && i == c.Chosen:
			s += theme.Incorrect.Render(line) + "\n"
		case c.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == c.Cursor:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	if c.Revealed && c.Explanation != "" {
		s += "\n" + theme.Hint.Render(c.Explanation) + "\n"
	}
	return s
}

// IsCorrect reports whether the chosen option is the correct one.
func (c Choice) IsCorrect() bool {
	return c.Chosen >= 0 && c.Chosen == c.CorrectIndex
}
