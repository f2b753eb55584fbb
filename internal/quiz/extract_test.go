package quiz_test

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/quiz"
)

type sliceSource struct {
	ps  []quiz.Paragraph
	pos int
}

func (s *sliceSource) Next() (quiz.Paragraph, error) {
	if s.pos >= len(s.ps) {
		return quiz.Paragraph{}, io.EOF
	}
	p := s.ps[s.pos]
	s.pos++
	return p, nil
}

func body(text string) quiz.Paragraph { return quiz.Paragraph{Text: text} }
func item(text string) quiz.Paragraph { return quiz.Paragraph{Text: text, ListItem: true} }

func TestExtract_TwoQuestions(t *testing.T) {
	src := &sliceSource{ps: []quiz.Paragraph{
		body("Intro paragraph that is not a question."),
		body("Question 1"),
		body("What color is the sky?"),
		item("A) Red"),
		item("B) Green"),
		item("C) Blue"),
		item("D) Yellow"),
		body(""),
		body("Question 2: What is 2+2?"),
		item("Three"),
		item("Four"),
		item("Five"),
		item("Six"),
	}}

	data, err := quiz.Extract(src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(data.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(data.Questions))
	}

	q1 := data.Questions[0]
	if q1.ID != 1 {
		t.Errorf("q1 id = %d, want 1", q1.ID)
	}
	if q1.Text != "Question 1 What color is the sky?" {
		t.Errorf("q1 text = %q", q1.Text)
	}
	if q1.Choices[2].Label != "C" || q1.Choices[2].Text != "Blue" {
		t.Errorf("q1 choice C = %+v", q1.Choices[2])
	}

	// second question: positional labels
	q2 := data.Questions[1]
	if q2.ID != 2 {
		t.Errorf("q2 id = %d, want 2", q2.ID)
	}
	wantLabels := []string{"A", "B", "C", "D"}
	for i, c := range q2.Choices {
		if c.Label != wantLabels[i] {
			t.Errorf("q2 choice %d label = %q, want %q", i, c.Label, wantLabels[i])
		}
	}
	if q2.Choices[1].Text != "Four" {
		t.Errorf("q2 choice B text = %q", q2.Choices[1].Text)
	}
}

func TestExtract_WellFormedRandomSpans(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(10)
		var ps []quiz.Paragraph
		for i := 0; i < n; i++ {
			ps = append(ps, body(fmt.Sprintf("Question %d what about topic %d?", i+1, rng.Intn(1000))))
			if rng.Intn(2) == 0 {
				ps = append(ps, body("   ")) // whitespace never interrupts a span
			}
			for _, l := range quiz.Labels {
				if rng.Intn(2) == 0 {
					ps = append(ps, item(fmt.Sprintf("%s) option %d", l, rng.Intn(1000))))
				} else {
					ps = append(ps, item(fmt.Sprintf("option %d", rng.Intn(1000))))
				}
			}
		}
		data, err := quiz.Extract(&sliceSource{ps: ps})
		if err != nil {
			t.Fatalf("round %d: Extract: %v", round, err)
		}
		if len(data.Questions) != n {
			t.Fatalf("round %d: got %d questions, want %d", round, len(data.Questions), n)
		}
		for i, q := range data.Questions {
			if q.ID != i+1 {
				t.Fatalf("round %d: question %d has id %d", round, i, q.ID)
			}
			if len(q.Choices) != 4 {
				t.Fatalf("round %d: question %d has %d choices", round, i, len(q.Choices))
			}
			for j, c := range q.Choices {
				if c.Label != quiz.Labels[j] || c.Text == "" {
					t.Fatalf("round %d: question %d choice %d = %+v", round, i, j, c)
				}
			}
		}
	}
}

func TestExtract_MalformedSpans(t *testing.T) {
	cases := []struct {
		name    string
		choices []string
		wantIn  string
	}{
		{"three choices", []string{"A) a", "B) b", "C) c"}, "3 answer choices"},
		{"five choices", []string{"A) a", "B) b", "C) c", "D) d", "A) extra"}, "5 answer choices"},
		{"duplicate label", []string{"A) a", "A) again", "C) c", "D) d"}, `labeled "A"`},
		{"scrambled order", []string{"B) b", "A) a", "C) c", "D) d"}, `labeled "B"`},
		{"empty choice text", []string{"A) a", "B)", "C) c", "D) d"}, "empty text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ps := []quiz.Paragraph{body("Question 1 is fine?")}
			for _, c := range tc.choices {
				ps = append(ps, item(c))
			}
			_, err := quiz.Extract(&sliceSource{ps: ps})
			if err == nil {
				t.Fatal("Extract succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.wantIn) {
				t.Errorf("error %q does not mention %q", err, tc.wantIn)
			}
		})
	}
}

func TestExtract_SecondQuestionMissingChoice(t *testing.T) {
	src := &sliceSource{ps: []quiz.Paragraph{
		body("Question 1"),
		item("A) a"), item("B) b"), item("C) c"), item("D) d"),
		body("Question 2"),
		item("A) a"), item("B) b"), item("D) d"),
	}}
	_, err := quiz.Extract(src)
	if err == nil {
		t.Fatal("Extract succeeded, want error")
	}
	if !strings.Contains(err.Error(), "question 2") {
		t.Errorf("error %q does not identify question 2", err)
	}
}

func TestExtract_TrailingQuestionWithoutChoices(t *testing.T) {
	src := &sliceSource{ps: []quiz.Paragraph{
		body("Question 1"),
		item("A) a"), item("B) b"), item("C) c"), item("D) d"),
		body("Question 2 dangling"),
	}}
	_, err := quiz.Extract(src)
	if err == nil {
		t.Fatal("Extract succeeded, want error")
	}
	if !strings.Contains(err.Error(), "0 answer choices") {
		t.Errorf("error %q does not report the missing choices", err)
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	for _, ps := range [][]quiz.Paragraph{
		nil,
		{body("just some prose"), body("   "), body("more prose")},
	} {
		_, err := quiz.Extract(&sliceSource{ps: ps})
		if err != quiz.ErrNoQuestions {
			t.Errorf("got %v, want ErrNoQuestions", err)
		}
	}
}

func TestExtract_BodyParagraphEndsChoiceRun(t *testing.T) {
	// A body paragraph after the choices closes the run; later list items in
	// the same span do not count as choices.
	src := &sliceSource{ps: []quiz.Paragraph{
		body("Question 1"),
		item("A) a"), item("B) b"), item("C) c"), item("D) d"),
		body("See appendix for details."),
		item("stray list item"),
	}}
	data, err := quiz.Extract(src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(data.Questions[0].Choices) != 4 {
		t.Errorf("got %d choices, want 4", len(data.Questions[0].Choices))
	}
}
