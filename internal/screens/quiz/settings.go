package quiz

import (
	"time"

	"github.com/AmalShalabi/psycho-arabic/internal/engine"
)

// Settings carries the user-tunable session knobs from configuration
// into the screens that start sessions. Zero values keep the mode's
// defaults.
type Settings struct {
	ExamBudget  time.Duration
	PracticeCap int
	GroupSize   int
}

// ConfigFor returns the mode's standard configuration with the
// settings' overrides applied. Overrides only tighten knobs the mode
// already uses: an untimed mode stays untimed, an ungrouped mode stays
// ungrouped.
func (st Settings) ConfigFor(mode engine.Mode) engine.Config {
	cfg := engine.NewConfig(mode)
	if st.ExamBudget > 0 && cfg.TimeBudget > 0 {
		cfg.TimeBudget = st.ExamBudget
	}
	if st.PracticeCap > 0 && cfg.Cap > 0 {
		cfg.Cap = st.PracticeCap
	}
	if st.GroupSize > 0 && cfg.GroupSize > 0 {
		cfg.GroupSize = st.GroupSize
	}
	return cfg
}
