// Package mistakes schedules missed questions for review. A question missed
// in a level waits in a pending bucket until enough further levels have been
// completed, then joins the review queue until it is answered correctly.
package mistakes

import (
	"slices"

	"github.com/abhisek/questisland/internal/bank"
)

const (
	// ReviewCap is the maximum number of review questions per lesson.
	ReviewCap = 2

	// Cooldown is the number of completed levels a pending bucket waits
	// before its questions are due.
	Cooldown = 2
)

// Bucket holds the questions missed while completing one level.
type Bucket struct {
	LevelIndex  int      `json:"levelIndex"`
	QuestionIDs []string `json:"questionIds"`
}

// State is the review queue plus the buckets still cooling down.
//
// A question can sit in Queue and in a Bucket at once when it was missed
// again while already due. Release merges by ID, so the duplicate collapses.
type State struct {
	Queue   []string `json:"mistakeQueue"`
	Pending []Bucket `json:"pendingMistakes"`
}

// Lookup resolves question IDs.
type Lookup interface {
	Get(id string) (bank.Question, error)
}

// DueForReview returns up to limit queued questions that still resolve, in
// queue order. IDs no longer in the bank, and repeats, are skipped.
func DueForReview(queue []string, lookup Lookup, limit int) []bank.Question {
	var out []bank.Question
	seen := make(map[string]bool)
	for _, id := range queue {
		if len(out) >= limit {
			break
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		q, err := lookup.Get(id)
		if err != nil {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Update applies one completed level to s and returns the new state; s is
// not modified. completed is the level count after this completion. The
// steps run in a fixed order: promotion, cooldown release, then recording
// new mistakes.
func (s State) Update(completed int, presented, wrong, skipped []string) State {
	wrongSet := toSet(wrong)
	skippedSet := toSet(skipped)

	// Promotion: anything answered correctly leaves the queue.
	correct := make(map[string]bool)
	for _, id := range presented {
		if !wrongSet[id] && !skippedSet[id] {
			correct[id] = true
		}
	}
	queue := make([]string, 0, len(s.Queue))
	for _, id := range s.Queue {
		if !correct[id] {
			queue = append(queue, id)
		}
	}

	// Release.
	var pending []Bucket
	for _, b := range s.Pending {
		if completed-b.LevelIndex >= Cooldown {
			for _, id := range b.QuestionIDs {
				if !slices.Contains(queue, id) {
					queue = append(queue, id)
				}
			}
			continue
		}
		pending = append(pending, Bucket{
			LevelIndex:  b.LevelIndex,
			QuestionIDs: slices.Clone(b.QuestionIDs),
		})
	}

	// New mistakes. Skipped questions are not treated as mistakes.
	var fresh []string
	seen := make(map[string]bool)
	for _, id := range wrong {
		if skippedSet[id] || seen[id] {
			continue
		}
		seen[id] = true
		fresh = append(fresh, id)
	}
	if len(fresh) > 0 {
		pending = append(pending, Bucket{LevelIndex: completed, QuestionIDs: fresh})
	}

	return State{Queue: queue, Pending: pending}
}

// PendingIDs returns every ID waiting in a bucket, deduplicated, in bucket
// order.
func (s State) PendingIDs() []string {
	var out []string
	for _, b := range s.Pending {
		for _, id := range b.QuestionIDs {
			if !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	return out
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{Queue: slices.Clone(s.Queue)}
	if s.Pending != nil {
		out.Pending = make([]Bucket, 0, len(s.Pending))
	}
	for _, b := range s.Pending {
		out.Pending = append(out.Pending, Bucket{LevelIndex: b.LevelIndex, QuestionIDs: slices.Clone(b.QuestionIDs)})
	}
	return out
}

func toSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
