package catalog

// ResolveCorrectIndex returns the canonical index of the correct option.
//
// A valid Correct index wins. Otherwise the Answer text is located in
// Options; a missing match yields -1, which is a defined "no correct
// option" state rather than an error: such a question can never be
// answered correctly. Questions carrying neither encoding also resolve
// to -1.
func ResolveCorrectIndex(q Question) int {
	if q.Correct != nil && *q.Correct >= 0 && *q.Correct < len(q.Options) {
		return *q.Correct
	}
	if q.Answer != "" {
		for i, opt := range q.Options {
			if opt == q.Answer {
				return i
			}
		}
	}
	return -1
}

// IsCorrect reports whether the selected option index is the correct one.
// Negative selections never match, even against a -1 resolution; option
// selection in the UI only ever produces indices >= 0, and an unwinnable
// question must stay unwinnable.
func IsCorrect(q Question, selected int) bool {
	return selected >= 0 && selected == ResolveCorrectIndex(q)
}
