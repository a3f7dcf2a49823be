package bank

import (
	"fmt"
	"slices"
	"strings"
)

// validateQuestions performs structural checks on a question set.
// Returns a combined error describing every problem found, or nil.
func validateQuestions(questions []Question) error {
	var errs []string

	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			errs = append(errs, fmt.Sprintf("question with text %q has an empty ID", q.Text))
			continue
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		seen[q.ID] = true

		if !q.Category.Valid() {
			errs = append(errs, fmt.Sprintf("question %q has unknown category %q", q.ID, q.Category))
		}
		if !q.Type.Valid() {
			errs = append(errs, fmt.Sprintf("question %q has unknown type %q", q.ID, q.Type))
		}
		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("question %q has empty text", q.ID))
		}
		if strings.TrimSpace(q.Answer) == "" {
			errs = append(errs, fmt.Sprintf("question %q has empty answer", q.ID))
		}
		if q.Difficulty != 0 && (q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty) {
			errs = append(errs, fmt.Sprintf("question %q difficulty %d outside %d..%d", q.ID, q.Difficulty, MinDifficulty, MaxDifficulty))
		}

		switch q.Type {
		case TypeMultipleChoice, TypeFillInBlank:
			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("question %q needs at least 2 options", q.ID))
			} else if !slices.Contains(q.Options, q.Answer) {
				errs = append(errs, fmt.Sprintf("question %q answer %q is not among its options", q.ID, q.Answer))
			}
		case TypeUnscramble:
			if !strings.Contains(q.Text, "/") {
				errs = append(errs, fmt.Sprintf("question %q is unscramble but has no / separated fragments", q.ID))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
