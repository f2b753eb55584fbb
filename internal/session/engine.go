// Package session holds one user's progress through a loaded quiz: current
// position, answer selections, and the NotStarted -> InProgress -> Completed
// lifecycle. Every state mutation is mirrored to an external Store; in-memory
// state is always the source of truth and storage failures are logged, never
// surfaced.
package session

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/quiz"
)

// Persisted keys. Each is read and written independently so that one corrupt
// value cannot block restoration of the others.
const (
	keyAnswers   = "quiz_answers"
	keyIndex     = "quiz_current_index"
	keyCompleted = "quiz_completed"
	keyStarted   = "quiz_started"
)

type Engine struct {
	questions []quiz.Question
	answers   map[int]string
	current   int
	started   bool
	completed bool

	store Store
	log   *zap.Logger
}

func NewEngine(data quiz.QuizData, store Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		questions: data.Questions,
		answers:   map[int]string{},
		store:     store,
		log:       log,
	}
}

// Restore loads previously persisted state. The four keys are independent:
// a missing or corrupt value for one is ignored without affecting the rest,
// and Restore itself never fails.
func (e *Engine) Restore() {
	if v, ok := e.get(keyAnswers); ok {
		var m map[int]string
		if err := json.Unmarshal([]byte(v), &m); err == nil && m != nil {
			e.answers = m
		}
	}
	if v, ok := e.get(keyIndex); ok {
		var i int
		if err := json.Unmarshal([]byte(v), &i); err == nil {
			e.current = i
		}
	}
	if v, ok := e.get(keyCompleted); ok {
		var b bool
		if err := json.Unmarshal([]byte(v), &b); err == nil {
			e.completed = b
		}
	}
	if v, ok := e.get(keyStarted); ok {
		var b bool
		if err := json.Unmarshal([]byte(v), &b); err == nil {
			e.started = b
		}
	}
}

// InProgress is the only state in which navigation and answer selection have
// any effect.
func (e *Engine) InProgress() bool { return e.started && !e.completed }

// Start enters InProgress. It is also the one place where restored state is
// repaired: a current index that drifted out of bounds is clamped back.
func (e *Engine) Start() {
	e.started = true
	e.completed = false
	if ci := clamp(e.current, len(e.questions)); ci != e.current {
		e.current = ci
		e.persist(keyIndex, e.current)
	}
	e.persist(keyStarted, e.started)
	e.persist(keyCompleted, e.completed)
}

// SelectAnswer records label for the current question, overwriting any prior
// selection. A no-op when no question is current or the label is not
// canonical.
func (e *Engine) SelectAnswer(label string) {
	if !e.InProgress() || !quiz.ValidLabel(label) {
		return
	}
	q, ok := e.currentQuestion()
	if !ok {
		return
	}
	e.answers[q.ID] = label
	e.persist(keyAnswers, e.answers)
}

// GoTo jumps to index if it is in bounds; out-of-range requests are dropped.
func (e *Engine) GoTo(index int) {
	if !e.InProgress() {
		return
	}
	if index < 0 || index >= len(e.questions) {
		return
	}
	e.current = index
	e.persist(keyIndex, e.current)
}

// Next moves forward one question, clamped at the end.
func (e *Engine) Next() { e.GoTo(e.current + 1) }

// Previous moves back one question, clamped at the start.
func (e *Engine) Previous() { e.GoTo(e.current - 1) }

// Submit marks the session Completed. Gating submission behind "all questions
// answered" is the caller's policy, not the engine's.
func (e *Engine) Submit() {
	if !e.InProgress() {
		return
	}
	e.completed = true
	e.persist(keyCompleted, e.completed)
}

// Restart clears all answers and returns to the first question, erasing the
// persisted values it resets. The started flag is deliberately kept: a
// restarted user lands back in the quiz, not on the intro screen.
func (e *Engine) Restart() {
	if !e.started {
		return
	}
	e.answers = map[int]string{}
	e.current = 0
	e.completed = false
	e.erase(keyAnswers)
	e.erase(keyIndex)
	e.erase(keyCompleted)
}

func (e *Engine) currentQuestion() (quiz.Question, bool) {
	if e.current < 0 || e.current >= len(e.questions) {
		return quiz.Question{}, false
	}
	return e.questions[e.current], true
}

func (e *Engine) CurrentIndex() int { return e.current }
func (e *Engine) Started() bool     { return e.started }
func (e *Engine) Completed() bool   { return e.completed }
func (e *Engine) Len() int          { return len(e.questions) }

// Answers returns a copy of the recorded selections.
func (e *Engine) Answers() map[int]string {
	out := make(map[int]string, len(e.answers))
	for k, v := range e.answers {
		out[k] = v
	}
	return out
}

func (e *Engine) Progress() int      { return Progress(e.current, len(e.questions)) }
func (e *Engine) AnsweredCount() int { return AnsweredCount(e.answers) }
func (e *Engine) IsComplete() bool   { return IsComplete(e.answers, len(e.questions)) }
func (e *Engine) Unanswered() []int  { return UnansweredIndices(e.questions, e.answers) }

func (e *Engine) ScoreResult() (Result, bool) { return Score(e.questions, e.answers) }

func (e *Engine) get(key string) (string, bool) {
	v, ok, err := e.store.Get(key)
	if err != nil {
		e.log.Warn("session state read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, ok
}

func (e *Engine) persist(key string, v any) {
	b, err := json.Marshal(v)
	if err == nil {
		err = e.store.Set(key, string(b))
	}
	if err != nil {
		e.log.Warn("session state not persisted", zap.String("key", key), zap.Error(err))
	}
}

func (e *Engine) erase(key string) {
	if err := e.store.Delete(key); err != nil {
		e.log.Warn("session state not erased", zap.String("key", key), zap.Error(err))
	}
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
