package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/AmalShalabi/psycho-arabic/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// StatusProvider is an optional interface for screens that show a
// status (clock, progress) in the header's right slot.
type StatusProvider interface {
	Status() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscHandler marks screens that own the esc key (quit confirmations,
// mid-session dialogs). The app shell does not auto-pop these.
type EscHandler interface {
	HandlesEsc()
}
