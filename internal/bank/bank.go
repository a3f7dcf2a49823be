package bank

import (
	"errors"
	"fmt"
)

// ErrUnknownQuestion is returned when a question ID does not resolve.
var ErrUnknownQuestion = errors.New("unknown question")

// Bank is the validated question catalog with precomputed indices.
// A Bank is never mutated after construction and is safe for concurrent use.
type Bank struct {
	questions  []Question
	byID       map[string]int
	byCategory map[Category][]Question
}

// New validates questions and builds a Bank. Category order follows input
// order, which the selector relies on for reproducibility.
func New(questions []Question) (*Bank, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	b := &Bank{
		questions:  make([]Question, len(questions)),
		byID:       make(map[string]int, len(questions)),
		byCategory: make(map[Category][]Question),
	}
	copy(b.questions, questions)

	for i, q := range b.questions {
		b.byID[q.ID] = i
		b.byCategory[q.Category] = append(b.byCategory[q.Category], q)
	}
	return b, nil
}

// Get returns the question with the given ID.
func (b *Bank) Get(id string) (Question, error) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	return b.questions[i], nil
}

// Has reports whether id is in the bank.
func (b *Bank) Has(id string) bool {
	_, ok := b.byID[id]
	return ok
}

// ByCategory returns the questions of category c in bank order.
// The returned slice is a copy.
func (b *Bank) ByCategory(c Category) []Question {
	qs := b.byCategory[c]
	out := make([]Question, len(qs))
	copy(out, qs)
	return out
}

// All returns every question in bank order.
func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Counts returns the number of questions per category.
func (b *Bank) Counts() CategoryCounts {
	var cc CategoryCounts
	for _, c := range Categories() {
		cc = cc.Set(c, len(b.byCategory[c]))
	}
	return cc
}

// Merge returns a new Bank holding b's questions followed by extra.
func (b *Bank) Merge(extra []Question) (*Bank, error) {
	all := append(b.All(), extra...)
	return New(all)
}
