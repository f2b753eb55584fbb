package quiz

// Labels is the canonical choice label set, in presentation order.
var Labels = []string{"A", "B", "C", "D"}

// ValidLabel reports whether s is one of the four canonical labels.
func ValidLabel(s string) bool {
	for _, l := range Labels {
		if s == l {
			return true
		}
	}
	return false
}

type Choice struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type Question struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	// CorrectLabel is optional; when empty the question cannot be scored
	// and the client runs in review-only mode.
	CorrectLabel string   `json:"correctLabel,omitempty"`
	Choices      []Choice `json:"choices"`
}

type QuizData struct {
	Questions []Question `json:"questions"`
}

// ScoringEnabled reports whether every question carries a correct label.
// Scoring is all-or-nothing: a dataset with a partial answer key is served
// review-only.
func (d QuizData) ScoringEnabled() bool {
	if len(d.Questions) == 0 {
		return false
	}
	for _, q := range d.Questions {
		if q.CorrectLabel == "" {
			return false
		}
	}
	return true
}
