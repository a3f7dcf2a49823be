// Package settings holds the parent-controlled lesson configuration.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/questisland/internal/bank"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid parent settings")

// CustomReward is a parent-defined chest prize.
type CustomReward struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Probability int    `json:"probability" yaml:"probability"` // percent, 0..100
}

// ParentSettings controls lesson composition and chest prizes.
type ParentSettings struct {
	QuestionCounts   bank.CategoryCounts `json:"questionCounts" yaml:"question_counts"`
	ShuffleQuestions bool                `json:"shuffleQuestions" yaml:"shuffle_questions"`
	CustomRewards    []CustomReward      `json:"customRewards" yaml:"custom_rewards"`
}

// Default returns the settings a new profile starts with.
func Default() ParentSettings {
	return ParentSettings{
		QuestionCounts: bank.CategoryCounts{
			Basic:       2,
			Application: 1,
			Logic:       1,
			Sentence:    1,
			Word:        1,
		},
		ShuffleQuestions: true,
		CustomRewards: []CustomReward{
			{ID: "r1", Name: "Watch cartoons for 15 minutes", Probability: 20},
			{ID: "r2", Name: "Pick tonight's dessert", Probability: 30},
		},
	}
}

// MaxPerCategory bounds a single category quota.
const MaxPerCategory = 20

// Validate reports every problem with s in a single error wrapping ErrInvalid.
func (s ParentSettings) Validate() error {
	var errs []string

	for _, c := range bank.Categories() {
		n := s.QuestionCounts.Get(c)
		if n < 0 || n > MaxPerCategory {
			errs = append(errs, fmt.Sprintf("question count for %s is %d, want 0..%d", c, n, MaxPerCategory))
		}
	}

	ids := make(map[string]bool, len(s.CustomRewards))
	for i, r := range s.CustomRewards {
		if strings.TrimSpace(r.ID) == "" {
			errs = append(errs, fmt.Sprintf("custom reward #%d has an empty id", i+1))
		} else if ids[r.ID] {
			errs = append(errs, fmt.Sprintf("duplicate custom reward id %q", r.ID))
		}
		ids[r.ID] = true
		if strings.TrimSpace(r.Name) == "" {
			errs = append(errs, fmt.Sprintf("custom reward %q has an empty name", r.ID))
		}
		if r.Probability < 0 || r.Probability > 100 {
			errs = append(errs, fmt.Sprintf("custom reward %q probability %d outside 0..100", r.ID, r.Probability))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalid, strings.Join(errs, "\n  "))
	}
	return nil
}

// MergeCounts overlays a possibly partial legacy quota map on top of base.
// Unknown keys are ignored.
func MergeCounts(base bank.CategoryCounts, partial map[string]int) bank.CategoryCounts {
	for _, c := range bank.Categories() {
		if n, ok := partial[string(c)]; ok {
			base = base.Set(c, n)
		}
	}
	return base
}
