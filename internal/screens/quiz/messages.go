package quiz

import "time"

// timerTickMsg is the once-a-second clock message. It carries the
// session id so a tick scheduled for an abandoned session is dropped
// instead of mutating its replacement.
type timerTickMsg struct {
	sessionID string
	at        time.Time
}
