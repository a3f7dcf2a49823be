package lesson

import (
	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/seedrand"
)

// CategorySource lists the questions of a category in stable order.
type CategorySource interface {
	ByCategory(c bank.Category) []bank.Question
}

// Select picks count questions of category c.
//
// Unused questions inside the difficulty band are preferred. When the band
// cannot fill the quota the whole unused pool is used, and when that is
// still short, previously used questions pad the remainder. Review IDs are
// never selected. An empty category yields an empty result.
func Select(src CategorySource, c bank.Category, count int, excludeIDs, reviewIDs []string, seed, target int) []bank.Question {
	if count <= 0 {
		return nil
	}
	excluded := toSet(excludeIDs)
	review := toSet(reviewIDs)
	lo, hi := Band(target)

	var pool, banded, reused []bank.Question
	for _, q := range src.ByCategory(c) {
		switch {
		case review[q.ID]:
		case excluded[q.ID]:
			reused = append(reused, q)
		default:
			pool = append(pool, q)
			if d := q.EffectiveDifficulty(); d >= lo && d <= hi {
				banded = append(banded, q)
			}
		}
	}

	candidates := banded
	if len(candidates) < count {
		candidates = pool
	}
	if short := count - len(candidates); short > 0 && len(reused) > 0 {
		pad := seedrand.Shuffle(reused, seed)
		if len(pad) > short {
			pad = pad[:short]
		}
		candidates = append(append([]bank.Question(nil), candidates...), pad...)
	}

	out := seedrand.Shuffle(candidates, seed)
	if len(out) > count {
		out = out[:count]
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
