package engine

import (
	"time"

	"github.com/AmalShalabi/psycho-arabic/internal/catalog"
)

// GroupInfo describes one fixed-size contiguous slice of the question
// list. Indices are 0-based positions; StartQuestion/EndQuestion are the
// 1-based question numbers shown to the user.
type GroupInfo struct {
	StartIndex    int
	EndIndex      int
	StartQuestion int
	EndQuestion   int
	Count         int
}

// Group computes the boundaries of a 1-based group number.
func Group(groupNumber, totalQuestions, groupSize int) GroupInfo {
	startIndex := (groupNumber - 1) * groupSize
	endIndex := startIndex + groupSize - 1
	if endIndex > totalQuestions-1 {
		endIndex = totalQuestions - 1
	}
	count := endIndex - startIndex + 1
	if count < 0 {
		count = 0
	}
	return GroupInfo{
		StartIndex:    startIndex,
		EndIndex:      endIndex,
		StartQuestion: startIndex + 1,
		EndQuestion:   endIndex + 1,
		Count:         count,
	}
}

// CurrentGroup returns the 1-based group containing a position.
func CurrentGroup(position, groupSize int) int {
	return position/groupSize + 1
}

// TotalGroups returns the number of groups covering totalQuestions,
// never less than 1.
func TotalGroups(totalQuestions, groupSize int) int {
	n := (totalQuestions + groupSize - 1) / groupSize
	if n < 1 {
		return 1
	}
	return n
}

// Score is a correct-out-of-total pair.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// GroupScore folds the recorded answers inside a group's slice into a
// score. Total is the group's question count, so unanswered positions
// count against the group.
func GroupScore(answers map[int]int, questions []catalog.Question, info GroupInfo) Score {
	s := Score{Total: info.Count}
	for pos := info.StartIndex; pos <= info.EndIndex && pos < len(questions); pos++ {
		selected, ok := answers[pos]
		if !ok {
			continue
		}
		if catalog.IsCorrect(questions[pos], selected) {
			s.Correct++
		}
	}
	return s
}

// GroupCompletion is emitted when Advance crosses a group boundary in
// grouped mode. It is a distinct completion event from a full-session
// finish: the session stays in progress and the host decides where to
// navigate next.
type GroupCompletion struct {
	GroupNumber int
	UnitName    string
	Range       GroupInfo
	Score       Score
	TotalGroups int
	TimeSpent   time.Duration
	Answers     map[int]int
	Questions   []catalog.Question

	// PrevGroup/NextGroup are navigation hints; 0 means no such group.
	PrevGroup int
	NextGroup int
}
