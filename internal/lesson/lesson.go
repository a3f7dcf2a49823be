// Package lesson assembles a day's questions. Generation is a pure function
// of the bank and the request: the same inputs always yield the same lesson.
package lesson

import (
	"errors"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/settings"
)

// ErrInvalidRequest is wrapped by every generation failure.
var ErrInvalidRequest = errors.New("invalid lesson request")

// Request carries everything generation depends on.
type Request struct {
	Day          int
	ExcludeIDs   []string // already-used question IDs
	UserSeed     int
	Settings     settings.ParentSettings
	MistakeQueue []string
}

// Lesson is one day's ordered question set with its cosmetic metadata.
// Lessons are regenerated on demand and never persisted.
type Lesson struct {
	Day             int             `json:"day"`
	Title           string          `json:"title"`
	Icon            string          `json:"icon"`
	Story           string          `json:"story"`
	Questions       []bank.Question `json:"questions"`
	ReviewIDs       []string        `json:"reviewIds,omitempty"`
	Points          int             `json:"points"`
	DifficultyLevel int             `json:"difficultyLevel"`
}

// IDs returns the question IDs in presentation order.
func (l *Lesson) IDs() []string {
	ids := make([]string, len(l.Questions))
	for i, q := range l.Questions {
		ids[i] = q.ID
	}
	return ids
}

// Points returns the star reward for completing day.
func Points(day int) int {
	return 100 + day*5
}

// Seed combines day and the per-user seed into the lesson seed.
func Seed(day, userSeed int) int {
	return day*123 + userSeed
}

// finalShuffleOffset separates the ordering shuffle from the selection
// shuffles that use the bare seed.
const finalShuffleOffset = 999
