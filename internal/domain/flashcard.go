package domain

// Flashcard is a single question/answer pair derived from a summary.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Validate checks that the flashcard has a question. The answer of the
// main-idea card mirrors the summary verbatim and may therefore be empty.
func (f Flashcard) Validate() error {
	if f.Question == "" {
		return NewValidationError("question", "cannot be empty")
	}
	return nil
}
