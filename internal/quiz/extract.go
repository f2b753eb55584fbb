package quiz

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Paragraph is one text node of the source document. ListItem reflects the
// document's own markup classification and is treated as ground truth.
type Paragraph struct {
	Text     string
	ListItem bool
}

// ParagraphSource yields document paragraphs in order. Next returns io.EOF
// when the stream is exhausted. Keeping extraction behind this interface
// means the concrete container format (docx today) is swappable without
// touching validation.
type ParagraphSource interface {
	Next() (Paragraph, error)
}

// ErrNoQuestions is returned when a document yields no recognized questions.
var ErrNoQuestions = errors.New("no questions found in document")

const questionMarker = "question"

type rawQuestion struct {
	ordinal int // 1-based position in document order
	text    string
	choices []Choice
	// set once a non-list body paragraph interrupts the choice run;
	// later list items in the span are ignored
	choicesDone bool
}

// Extract scans the paragraph stream into validated questions. Validation is
// all-or-nothing: any malformed question fails the whole run and nothing is
// emitted.
func Extract(src ParagraphSource) (QuizData, error) {
	raws, err := scan(src)
	if err != nil {
		return QuizData{}, err
	}
	if len(raws) == 0 {
		return QuizData{}, ErrNoQuestions
	}

	var out QuizData
	for _, rq := range raws {
		if err := validate(rq); err != nil {
			return QuizData{}, err
		}
		out.Questions = append(out.Questions, Question{
			ID:      len(out.Questions) + 1,
			Text:    rq.text,
			Choices: rq.choices,
		})
	}
	return out, nil
}

func scan(src ParagraphSource) ([]*rawQuestion, error) {
	var raws []*rawQuestion
	var cur *rawQuestion

	for {
		p, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}

		if !p.ListItem && isMarker(text) {
			cur = &rawQuestion{ordinal: len(raws) + 1, text: text}
			raws = append(raws, cur)
			continue
		}
		if cur == nil {
			// preamble before the first marker
			continue
		}

		if p.ListItem {
			if cur.choicesDone {
				continue
			}
			cur.choices = append(cur.choices, parseChoice(text, len(cur.choices)))
			continue
		}

		// body paragraph inside a span: question continuation before the
		// first choice, otherwise it ends the choice run
		if len(cur.choices) == 0 {
			cur.text = cur.text + " " + text
		} else {
			cur.choicesDone = true
		}
	}
	return raws, nil
}

func isMarker(trimmed string) bool {
	return len(trimmed) >= len(questionMarker) &&
		strings.EqualFold(trimmed[:len(questionMarker)], questionMarker)
}

// parseChoice splits "B) some text" style paragraphs into label and text.
// Paragraphs without an explicit label keep the authoring convention of
// labeling by position.
func parseChoice(trimmed string, pos int) Choice {
	if len(trimmed) >= 2 && ValidLabel(trimmed[:1]) {
		switch trimmed[1] {
		case '.', ')', ':':
			return Choice{Label: trimmed[:1], Text: strings.TrimSpace(trimmed[2:])}
		}
	}
	label := ""
	if pos < len(Labels) {
		label = Labels[pos]
	}
	return Choice{Label: label, Text: trimmed}
}

func validate(rq *rawQuestion) error {
	if rq.text == "" {
		return fmt.Errorf("question %d: empty question text", rq.ordinal)
	}
	if len(rq.choices) != len(Labels) {
		return fmt.Errorf("question %d (%q) has %d answer choices, expected exactly %d labeled %s",
			rq.ordinal, prefix(rq.text), len(rq.choices), len(Labels), strings.Join(Labels, ", "))
	}
	for i, c := range rq.choices {
		if c.Label != Labels[i] {
			return fmt.Errorf("question %d (%q): choice %d is labeled %q, want %q (labels must be %s in order)",
				rq.ordinal, prefix(rq.text), i+1, c.Label, Labels[i], strings.Join(Labels, ", "))
		}
		if c.Text == "" {
			return fmt.Errorf("question %d (%q): choice %s has empty text", rq.ordinal, prefix(rq.text), c.Label)
		}
	}
	return nil
}

func prefix(s string) string {
	const n = 40
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
