package domain

// QuestionType discriminates the variants of a Question.
type QuestionType string

const (
	Basic          QuestionType = "basic"
	MultipleChoice QuestionType = "multiple-choice"
	FillBlank      QuestionType = "fill-blank"
	Matching       QuestionType = "matching"
	Ordering       QuestionType = "ordering"
	MultiSelect    QuestionType = "multi-select"
)

// MatchPair is one left/right pairing of a matching question.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is a single authored flashcard question. Type selects which of
// the optional fields are meaningful; the review scheduler only ever reads
// the common fields.
type Question struct {
	Type     QuestionType `json:"type"`
	Question string       `json:"question" validate:"required"`
	Answer   string       `json:"answer"`
	ImageURL string       `json:"image_url,omitempty"`

	// Type-specific fields.
	Options        []string    `json:"options,omitempty"`         // multiple-choice
	Blanks         []string    `json:"blanks,omitempty"`          // fill-blank
	MatchPairs     []MatchPair `json:"match_pairs,omitempty"`     // matching
	OrderItems     []string    `json:"order_items,omitempty"`     // ordering
	CorrectAnswers []string    `json:"correct_answers,omitempty"` // multi-select
}

// Deck is a named, ordered collection of questions.
type Deck struct {
	ID        string     `json:"id"`
	Name      string     `json:"name" validate:"required"`
	Questions []Question `json:"questions"`
}
