package session_test

import (
	"reflect"
	"testing"

	"github.com/quizforge/quizforge/internal/session"
)

func TestProgress(t *testing.T) {
	if got := session.Progress(0, 0); got != 0 {
		t.Errorf("Progress(0,0) = %d, want 0", got)
	}
	for _, n := range []int{1, 3, 7, 100} {
		prev := -1
		for i := 0; i < n; i++ {
			p := session.Progress(i, n)
			if p < prev {
				t.Fatalf("Progress not monotonic at i=%d n=%d: %d < %d", i, n, p, prev)
			}
			prev = p
		}
		if got := session.Progress(n-1, n); got != 100 {
			t.Errorf("Progress(%d,%d) = %d, want 100", n-1, n, got)
		}
	}
	if got := session.Progress(0, 3); got != 33 {
		t.Errorf("Progress(0,3) = %d, want 33", got)
	}
}

func TestIsComplete(t *testing.T) {
	answers := map[int]string{1: "A", 2: "B"}
	if !session.IsComplete(answers, 2) {
		t.Error("all answered but not complete")
	}
	if session.IsComplete(answers, 3) {
		t.Error("complete with one unanswered")
	}
	if !session.IsComplete(nil, 0) {
		t.Error("empty quiz must be vacuously complete")
	}
}

func TestUnansweredIndices(t *testing.T) {
	qs := dataset(5).Questions
	answers := map[int]string{2: "A", 4: "C"}
	got := session.UnansweredIndices(qs, answers)
	if !reflect.DeepEqual(got, []int{0, 2, 4}) {
		t.Errorf("unanswered = %v, want [0 2 4]", got)
	}
	if len(got) != len(qs)-session.AnsweredCount(answers) {
		t.Errorf("length %d, want total minus answered", len(got))
	}
	if got := session.UnansweredIndices(qs, map[int]string{1: "A", 2: "A", 3: "A", 4: "A", 5: "A"}); got != nil {
		t.Errorf("unanswered = %v, want none", got)
	}
}

func TestScore_ReviewOnlyWithoutFullKey(t *testing.T) {
	d := dataset(2, "A") // only first question keyed
	if _, ok := session.Score(d.Questions, map[int]string{1: "A", 2: "A"}); ok {
		t.Error("partial key must not be scorable")
	}
	d = dataset(2, "A", "B")
	res, ok := session.Score(d.Questions, map[int]string{1: "A", 2: "B"})
	if !ok || res.Correct != 2 || res.Percent != 100 {
		t.Errorf("score = %+v ok=%v, want 2/2 = 100%%", res, ok)
	}
}
