package seed

import (
	"fmt"
	"strings"

	"github.com/mathquest/backend/internal/models"
)

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// Validate checks the structure the questions table relies on: at least two
// distinct choices, an answer index inside them, a prompt and a known
// difficulty. Every problem is reported, not just the first.
func Validate(subjects []Subject) error {
	var errs []string

	for _, s := range subjects {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, "subject with empty name")
		}
		if len(s.Questions) == 0 {
			errs = append(errs, fmt.Sprintf("subject %q: no questions", s.Name))
		}

		for i, q := range s.Questions {
			qNum := i + 1

			if strings.TrimSpace(q.Prompt) == "" {
				errs = append(errs, fmt.Sprintf("subject %q question %d: empty prompt", s.Name, qNum))
			}
			if len(q.Choices) < 2 {
				errs = append(errs, fmt.Sprintf("subject %q question %d: expected at least 2 choices, got %d", s.Name, qNum, len(q.Choices)))
			}
			if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Choices) {
				errs = append(errs, fmt.Sprintf("subject %q question %d: answer index %d outside %d choices", s.Name, qNum, q.AnswerIndex, len(q.Choices)))
			}

			seen := make(map[string]bool, len(q.Choices))
			for _, c := range q.Choices {
				if seen[c] {
					errs = append(errs, fmt.Sprintf("subject %q question %d: duplicate choice %q", s.Name, qNum, c))
				}
				seen[c] = true
			}

			if !models.ValidDifficulties[q.Difficulty] {
				errs = append(errs, fmt.Sprintf("subject %q question %d: invalid difficulty %q", s.Name, qNum, q.Difficulty))
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
