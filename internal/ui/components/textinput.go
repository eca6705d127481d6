package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NumberInput is a small wrapper around the bubbles text input used for
// numeric settings (practice question count).
type NumberInput struct {
	input textinput.Model
}

// NewNumberInput creates a focused numeric input with a placeholder.
func NewNumberInput(placeholder string) NumberInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 3
	ti.Focus()
	return NumberInput{input: ti}
}

// Init returns the input's initial command.
func (n NumberInput) Init() tea.Cmd {
	return n.input.Focus()
}

// Update forwards messages, dropping non-digit runes.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		s := kmsg.String()
		if len(s) == 1 && (s[0] < '0' || s[0] > '9') {
			return n, nil
		}
	}
	var cmd tea.Cmd
	n.input, cmd = n.input.Update(msg)
	return n, cmd
}

// Value returns the raw text.
func (n NumberInput) Value() string {
	return n.input.Value()
}

// View renders the input.
func (n NumberInput) View() string {
	return n.input.View()
}
