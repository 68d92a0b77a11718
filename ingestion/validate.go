package ingestion

import (
	"fmt"
	"strings"

	"cert-quiz/models"
	"cert-quiz/utils"
)

// ValidationError points at the first malformed record of a bank.
type ValidationError struct {
	Index  int    // Zero-based record position
	Field  string // "question", "options" or "correct_answers"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %d: %s: %s", e.Index, e.Field, e.Reason)
}

// Validate checks every record against the bank schema. An empty bank is rejected.
func Validate(questions []models.Question) error {
	if len(questions) == 0 {
		return ErrEmptyBank
	}
	for i, q := range questions {
		if err := validateQuestion(i, q); err != nil {
			return err
		}
	}
	return nil
}

func validateQuestion(i int, q models.Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return &ValidationError{Index: i, Field: "question", Reason: "text is empty"}
	}
	if len(q.Options) == 0 {
		return &ValidationError{Index: i, Field: "options", Reason: "no options"}
	}
	letters := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		letter := utils.OptionLetter(o)
		if letter == "" {
			return &ValidationError{Index: i, Field: "options", Reason: fmt.Sprintf("option %q has no letter", o)}
		}
		if letters[letter] {
			return &ValidationError{Index: i, Field: "options", Reason: fmt.Sprintf("duplicate letter %q", letter)}
		}
		letters[letter] = true
	}
	if len(q.CorrectAnswers) == 0 {
		return &ValidationError{Index: i, Field: "correct_answers", Reason: "no correct answer"}
	}
	seen := make(map[string]bool, len(q.CorrectAnswers))
	for _, a := range q.CorrectAnswers {
		if !letters[a] {
			return &ValidationError{Index: i, Field: "correct_answers", Reason: fmt.Sprintf("%q is not an option letter", a)}
		}
		if seen[a] {
			return &ValidationError{Index: i, Field: "correct_answers", Reason: fmt.Sprintf("%q listed twice", a)}
		}
		seen[a] = true
	}
	return nil
}
