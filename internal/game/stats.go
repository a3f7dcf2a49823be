package game

import (
	"context"
	"fmt"

	"github.com/abhisek/questisland/internal/achievements"
	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/profile"
	"github.com/abhisek/questisland/internal/rewards"
	"github.com/abhisek/questisland/internal/store"
)

// Stats is the progress report shown to parents.
type Stats struct {
	Name          string
	Stars         int
	Streak        int
	CompletedDays int
	NextDay       int

	TotalCorrect     int
	TotalTimeSeconds int
	PerfectRun       int

	DueForReview int
	Pending      int

	Cards    []achievements.Card
	Stickers int
	Coupons  []rewards.Item

	Today         profile.DailyStats
	MistakesByCat bank.CategoryCounts
	History       []store.CompletionEvent
}

// Accuracy is the share of lesson questions answered right first time,
// from the completion log.
func (s Stats) Accuracy() float64 {
	var correct, total int
	for _, ev := range s.History {
		correct += ev.Correct
		total += ev.Questions
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// Stats gathers a report from the saved profile and the completion log.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	p, err := s.LoadProfile(ctx)
	if err != nil {
		return Stats{}, err
	}
	history, err := s.events.ListCompletions(ctx, s.key, store.QueryOpts{})
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}

	st := Stats{
		Name:             p.Name,
		Stars:            p.Stars,
		Streak:           p.Streak,
		CompletedDays:    p.CompletedCount(),
		NextDay:          p.NextDay(),
		TotalCorrect:     p.TotalCorrectAnswers,
		TotalTimeSeconds: p.TotalTimeSpent,
		PerfectRun:       p.ConsecutivePerfectLevels,
		DueForReview:     len(p.Queue),
		Pending:          len(p.PendingIDs()),
		Stickers:         rewards.DistinctStickers(p.Inventory),
		Today:            p.StatsHistory[s.now().Format(profile.DateLayout)],
		History:          history,
	}
	for _, id := range p.UnlockedAchievements {
		if c, ok := achievements.Get(id); ok {
			st.Cards = append(st.Cards, c)
		}
	}
	for _, it := range p.Inventory {
		if it.Type == rewards.ItemCustomCoupon && !it.Redeemed {
			st.Coupons = append(st.Coupons, it)
		}
	}
	for _, day := range p.StatsHistory {
		st.MistakesByCat = st.MistakesByCat.Add(day.MistakesByCategory)
	}
	return st, nil
}
