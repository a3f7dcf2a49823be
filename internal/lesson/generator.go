package lesson

import (
	"fmt"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/mistakes"
	"github.com/abhisek/questisland/internal/seedrand"
)

// Source is the bank view generation needs.
type Source interface {
	CategorySource
	mistakes.Lookup
}

// Generator builds lessons from a question source.
type Generator struct {
	src        Source
	difficulty DifficultyPolicy
	reviewCap  int
}

// Option configures a Generator.
type Option func(*Generator)

// WithDifficultyPolicy replaces the day-to-difficulty ramp.
func WithDifficultyPolicy(p DifficultyPolicy) Option {
	return func(g *Generator) { g.difficulty = p }
}

// WithReviewCap changes how many due mistakes a lesson may carry.
func WithReviewCap(n int) Option {
	return func(g *Generator) { g.reviewCap = n }
}

// NewGenerator creates a Generator with the default ramp and review cap.
func NewGenerator(src Source, opts ...Option) *Generator {
	g := &Generator{
		src:        src,
		difficulty: DefaultDifficulty,
		reviewCap:  mistakes.ReviewCap,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate builds the lesson for req. Invalid settings or a day below 1 fail
// with ErrInvalidRequest. A bank that cannot fill the quotas produces a
// shorter lesson, not an error.
func (g *Generator) Generate(req Request) (*Lesson, error) {
	if req.Day < 1 {
		return nil, fmt.Errorf("%w: day %d is below 1", ErrInvalidRequest, req.Day)
	}
	if err := req.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	seed := Seed(req.Day, req.UserSeed)
	target := clampDifficulty(g.difficulty(req.Day))

	reviews := mistakes.DueForReview(req.MistakeQueue, g.src, g.reviewCap)
	reviewIDs := make([]string, len(reviews))
	var reviewCounts bank.CategoryCounts
	for i, q := range reviews {
		reviewIDs[i] = q.ID
		reviewCounts = reviewCounts.Inc(q.Category, 1)
	}

	questions := append([]bank.Question(nil), reviews...)
	for _, c := range bank.Categories() {
		quota := req.Settings.QuestionCounts.Get(c)
		if quota <= 0 {
			continue
		}
		needed := max(0, quota-reviewCounts.Get(c))
		questions = append(questions, Select(g.src, c, needed, req.ExcludeIDs, reviewIDs, seed, target)...)
	}

	if req.Settings.ShuffleQuestions {
		questions = seedrand.Shuffle(questions, seed+finalShuffleOffset)
	}

	icon, story := Flavor(req.Day)
	return &Lesson{
		Day:             req.Day,
		Title:           Title(req.Day),
		Icon:            icon,
		Story:           story,
		Questions:       questions,
		ReviewIDs:       reviewIDs,
		Points:          Points(req.Day),
		DifficultyLevel: target,
	}, nil
}

// Generate is a convenience wrapper around a default Generator.
func Generate(src Source, req Request) (*Lesson, error) {
	return NewGenerator(src).Generate(req)
}
