package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Shape of a positive model answer.
const (
	ExampleCount    = 3
	QuizOptionCount = 4
)

// Example is an English sentence paired with its Persian translation.
type Example struct {
	English string `json:"english"`
	Persian string `json:"persian"`
}

// QuizOption is one multiple-choice option of a Quiz.
type QuizOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Quiz is a multiple-choice question about the meaning of a word.
// Answer holds the ID of the correct option.
type Quiz struct {
	Question string       `json:"question"`
	Word     string       `json:"word"`
	Options  []QuizOption `json:"options"`
	Answer   string       `json:"answer"`
}

// ModelAnswer is the JSON document the language model returns for a word.
// Only Word and Correct are set when the spelling is rejected.
type ModelAnswer struct {
	Word         string    `json:"word"`
	Correct      bool      `json:"correct"`
	PartOfSpeech string    `json:"partOfSpeech,omitempty"`
	Meaning      string    `json:"meaning,omitempty"`
	Examples     []Example `json:"examples,omitempty"`
	Quiz         *Quiz     `json:"quiz,omitempty"`
}

// Enrichment is the best-effort phonetic data taken from the dictionary service.
type Enrichment struct {
	Phonetic string
	Audio    string
}

// WordResult is the data payload of a successful lookup.
// Phonetic and Audio are present (possibly empty) only for correctly spelled words.
type WordResult struct {
	ModelAnswer
	Phonetic *string `json:"phonetic,omitempty"`
	Audio    *string `json:"audio,omitempty"`
}

// NewRejectedResult builds the payload for a word the model considers misspelled.
func NewRejectedResult(word string) WordResult {
	return WordResult{ModelAnswer: ModelAnswer{Word: word, Correct: false}}
}

// NewEnrichedResult merges a positive model answer with dictionary enrichment.
func NewEnrichedResult(answer ModelAnswer, e Enrichment) WordResult {
	phonetic, audio := e.Phonetic, e.Audio
	return WordResult{
		ModelAnswer: answer,
		Phonetic:    &phonetic,
		Audio:       &audio,
	}
}

// ParseModelAnswer decodes the model's message content. The content must be a
// JSON object, optionally wrapped in a single Markdown code fence.
func ParseModelAnswer(content string) (ModelAnswer, error) {
	raw := unwrapCodeFence(strings.TrimSpace(content))
	if !strings.HasPrefix(raw, "{") {
		return ModelAnswer{}, fmt.Errorf("%w: content is not a JSON object", ErrInvalidModelOutput)
	}

	var answer ModelAnswer
	if err := json.Unmarshal([]byte(raw), &answer); err != nil {
		return ModelAnswer{}, fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
	}
	return answer, nil
}

func unwrapCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	inner := s[3 : len(s)-3]
	// Drop the info string ("json") on the opening fence line.
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		inner = inner[nl+1:]
	}
	return strings.TrimSpace(inner)
}

// Validate checks a positive answer against the documented shape:
// three examples, a quiz with four uniquely identified options and an answer
// naming one of them. Negative answers are always valid.
func (a ModelAnswer) Validate() error {
	if !a.Correct {
		return nil
	}

	var errs []FieldError
	if a.Word == "" {
		errs = append(errs, FieldError{Field: "word", Message: "required"})
	}
	if a.Meaning == "" {
		errs = append(errs, FieldError{Field: "meaning", Message: "required"})
	}
	if len(a.Examples) != ExampleCount {
		errs = append(errs, FieldError{
			Field:   "examples",
			Message: fmt.Sprintf("expected %d, got %d", ExampleCount, len(a.Examples)),
		})
	}
	for i, ex := range a.Examples {
		if ex.English == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("examples[%d].english", i), Message: "required"})
		}
	}

	if a.Quiz == nil {
		errs = append(errs, FieldError{Field: "quiz", Message: "required"})
		return NewValidationErrors(errs)
	}

	if len(a.Quiz.Options) != QuizOptionCount {
		errs = append(errs, FieldError{
			Field:   "quiz.options",
			Message: fmt.Sprintf("expected %d, got %d", QuizOptionCount, len(a.Quiz.Options)),
		})
	}
	seen := make(map[string]bool, len(a.Quiz.Options))
	for i, opt := range a.Quiz.Options {
		if opt.ID == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("quiz.options[%d].id", i), Message: "required"})
			continue
		}
		if seen[opt.ID] {
			errs = append(errs, FieldError{Field: fmt.Sprintf("quiz.options[%d].id", i), Message: "duplicate id " + opt.ID})
		}
		seen[opt.ID] = true
	}
	if !seen[a.Quiz.Answer] {
		errs = append(errs, FieldError{Field: "quiz.answer", Message: fmt.Sprintf("%q is not an option id", a.Quiz.Answer)})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
