package catalog

import "testing"

func intp(n int) *int { return &n }

func TestResolveCorrectIndexPrefersValidIndex(t *testing.T) {
	q := Question{
		Options: []string{"a", "b", "c", "d"},
		Correct: intp(2),
		Answer:  "a", // contradicts the index; the index wins
	}
	if got := ResolveCorrectIndex(q); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestResolveCorrectIndexFallsBackToAnswerText(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		want int
	}{
		{
			name: "no index at all",
			q:    Question{Options: []string{"a", "b", "c"}, Answer: "c"},
			want: 2,
		},
		{
			name: "index out of range",
			q:    Question{Options: []string{"a", "b", "c"}, Correct: intp(7), Answer: "b"},
			want: 1,
		},
		{
			name: "negative index",
			q:    Question{Options: []string{"a", "b", "c"}, Correct: intp(-1), Answer: "a"},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCorrectIndex(tt.q); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestResolveCorrectIndexUnresolvable(t *testing.T) {
	// The answer text matches no option: a defined "no correct option"
	// state, not an error.
	q := Question{Options: []string{"a", "b", "c"}, Answer: "z"}
	if got := ResolveCorrectIndex(q); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}

	// Neither encoding present.
	q = Question{Options: []string{"a", "b"}}
	if got := ResolveCorrectIndex(q); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestIsCorrect(t *testing.T) {
	q := Question{Options: []string{"a", "b", "c"}, Answer: "b"}

	if !IsCorrect(q, 1) {
		t.Error("expected index 1 to be correct")
	}
	if IsCorrect(q, 0) {
		t.Error("expected index 0 to be incorrect")
	}
	if IsCorrect(q, -1) {
		t.Error("a negative selection must never count as correct")
	}
}

func TestIsCorrectUnwinnableQuestion(t *testing.T) {
	// Resolution is -1; no selection, including -1, may ever match it.
	q := Question{Options: []string{"a", "b", "c"}, Answer: "z"}
	for sel := -1; sel < 3; sel++ {
		if IsCorrect(q, sel) {
			t.Errorf("selection %d counted correct on an unwinnable question", sel)
		}
	}
}
