package quiz

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a serialized dataset and re-validates it. The engine side
// never trusts a dataset file blindly: a hand-edited or truncated file is
// rejected here rather than surfacing as broken session behavior.
func Decode(r io.Reader) (QuizData, error) {
	var d QuizData
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return QuizData{}, fmt.Errorf("malformed dataset: %w", err)
	}
	if err := ValidateData(d); err != nil {
		return QuizData{}, err
	}
	return d, nil
}

// Encode writes the dataset as indented JSON.
func Encode(w io.Writer, d QuizData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

// ValidateData checks the structural invariants of a dataset: unique positive
// ids, non-empty question text, exactly four choices with canonical labels in
// canonical order, and canonical correct labels where present.
func ValidateData(d QuizData) error {
	seen := make(map[int]bool, len(d.Questions))
	for i, q := range d.Questions {
		if q.ID <= 0 {
			return fmt.Errorf("question %d: invalid id %d", i+1, q.ID)
		}
		if seen[q.ID] {
			return fmt.Errorf("question %d: duplicate id %d", i+1, q.ID)
		}
		seen[q.ID] = true
		if q.Text == "" {
			return fmt.Errorf("question %d (id %d): empty text", i+1, q.ID)
		}
		if len(q.Choices) != len(Labels) {
			return fmt.Errorf("question %d (id %d): has %d choices, want %d", i+1, q.ID, len(q.Choices), len(Labels))
		}
		for j, c := range q.Choices {
			if c.Label != Labels[j] {
				return fmt.Errorf("question %d (id %d): choice %d labeled %q, want %q", i+1, q.ID, j+1, c.Label, Labels[j])
			}
			if c.Text == "" {
				return fmt.Errorf("question %d (id %d): choice %s has empty text", i+1, q.ID, c.Label)
			}
		}
		if q.CorrectLabel != "" && !ValidLabel(q.CorrectLabel) {
			return fmt.Errorf("question %d (id %d): correct label %q is not one of %v", i+1, q.ID, q.CorrectLabel, Labels)
		}
	}
	return nil
}

// ApplyAnswerKey merges a question-id -> correct-label map into the dataset.
// Unknown ids and non-canonical labels are errors; the merge is rejected as a
// whole rather than partially applied.
func ApplyAnswerKey(d *QuizData, key map[int]string) error {
	byID := make(map[int]int, len(d.Questions))
	for i, q := range d.Questions {
		byID[q.ID] = i
	}
	for id, label := range key {
		i, ok := byID[id]
		if !ok {
			return fmt.Errorf("answer key refers to unknown question id %d", id)
		}
		if !ValidLabel(label) {
			return fmt.Errorf("answer key for question %d: label %q is not one of %v", id, label, Labels)
		}
		d.Questions[i].CorrectLabel = label
	}
	return nil
}

// Redacted returns a copy of the dataset with correct labels stripped, for
// serving to clients. Scoring stays server-side.
func Redacted(d QuizData) QuizData {
	out := QuizData{Questions: make([]Question, len(d.Questions))}
	copy(out.Questions, d.Questions)
	for i := range out.Questions {
		out.Questions[i].CorrectLabel = ""
	}
	return out
}
