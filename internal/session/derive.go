package session

import (
	"math"
	"sort"

	"github.com/quizforge/quizforge/internal/quiz"
)

// Derived quantities. All are pure functions recomputed on demand; none are
// persisted.

// Progress is the percentage of the quiz reached by position: the current
// question counts as reached. 0 for an empty quiz.
func Progress(currentIndex, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(currentIndex+1) / float64(total) * 100))
}

func AnsweredCount(answers map[int]string) int { return len(answers) }

// IsComplete reports whether every question has an answer. Vacuously true for
// an empty quiz.
func IsComplete(answers map[int]string, total int) bool {
	return AnsweredCount(answers) >= total
}

// UnansweredIndices returns the 0-based indices of questions without a
// recorded answer, in ascending order.
func UnansweredIndices(questions []quiz.Question, answers map[int]string) []int {
	var out []int
	for i, q := range questions {
		if _, ok := answers[q.ID]; !ok {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// Result is a computed score.
type Result struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// Score grades the recorded answers. The second return is false when the quiz
// cannot be scored: an empty quiz, or any question without a correct label
// (review-only mode).
func Score(questions []quiz.Question, answers map[int]string) (Result, bool) {
	if len(questions) == 0 {
		return Result{}, false
	}
	correct := 0
	for _, q := range questions {
		if q.CorrectLabel == "" {
			return Result{}, false
		}
		if answers[q.ID] == q.CorrectLabel {
			correct++
		}
	}
	percent := int(math.Round(float64(correct) / float64(len(questions)) * 100))
	return Result{Correct: correct, Total: len(questions), Percent: percent}, true
}
