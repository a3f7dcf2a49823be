// Package ledger applies finished levels and daily logins to a profile.
// Every function returns a new profile and leaves its input untouched.
package ledger

import (
	"slices"
	"time"

	"github.com/abhisek/questisland/internal/achievements"
	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/profile"
	"github.com/abhisek/questisland/internal/rewards"
	"github.com/abhisek/questisland/internal/settings"
)

// Completion is everything recorded when a level is finished.
type Completion struct {
	Day            int
	Points         int
	PresentedIDs   []string
	PresentedByCat bank.CategoryCounts
	WrongIDs       []string
	SkippedIDs     []string
	Stats          profile.LevelStats
	Reward         *rewards.Item
}

// Outcome summarises what a completion changed.
type Outcome struct {
	StarsEarned    int
	CompletedCount int
	Correct        int
	Perfect        bool
	NewCards       []achievements.Card
	Reward         *rewards.Item
	DueForReview   []string
}

// Apply records c against p at time now. A completion that presented no
// questions changes nothing and earns nothing.
func Apply(p *profile.Profile, c Completion, now time.Time) (*profile.Profile, Outcome) {
	next := p.Clone()
	next.Normalize()
	if len(c.PresentedIDs) == 0 {
		return next, Outcome{
			CompletedCount: len(next.CourseProgress[next.ActiveCourseID]),
			DueForReview:   slices.Clone(next.Queue),
		}
	}

	next.Stars += c.Points
	next.UsedQuestionIDs = union(next.UsedQuestionIDs, c.PresentedIDs)

	course := next.ActiveCourseID
	if !slices.Contains(next.CourseProgress[course], c.Day) {
		next.CourseProgress[course] = append(next.CourseProgress[course], c.Day)
	}
	completed := len(next.CourseProgress[course])

	stats := c.Stats
	if stats.Day == 0 {
		stats.Day = c.Day
	}
	if stats.Timestamp.IsZero() {
		stats.Timestamp = now
	}
	mistakeCount := stats.Mistakes()

	date := now.Format(profile.DateLayout)
	daily, ok := next.StatsHistory[date]
	if !ok {
		daily = profile.DailyStats{Date: date}
	}
	daily.TimeSpentSeconds += stats.TimeSpent
	daily.Mistakes += mistakeCount
	daily.MistakesByCategory = daily.MistakesByCategory.Add(stats.MistakesByCat)
	daily.TotalQuestionsByCategory = daily.TotalQuestionsByCategory.Add(c.PresentedByCat)
	daily.LevelsCompleted++
	next.StatsHistory[date] = daily

	perfect := mistakeCount == 0
	if perfect {
		next.ConsecutivePerfectLevels++
	} else {
		next.ConsecutivePerfectLevels = 0
	}
	correct := countCorrect(c.PresentedIDs, c.WrongIDs, c.SkippedIDs)
	next.TotalTimeSpent += stats.TimeSpent
	next.TotalCorrectAnswers += correct
	next.LastLevelStats = &stats

	if c.Reward != nil {
		next.Inventory = append(next.Inventory, *c.Reward)
	}

	cards := achievements.Evaluate(achievements.Stats{
		CompletedLevels:    completed,
		Mistakes:           mistakeCount,
		TimeSpentSeconds:   stats.TimeSpent,
		ConsecutivePerfect: next.ConsecutivePerfectLevels,
		TotalTimeSeconds:   next.TotalTimeSpent,
		TotalCorrect:       next.TotalCorrectAnswers,
		DistinctStickers:   rewards.DistinctStickers(next.Inventory),
	}, next.UnlockedAchievements)
	next.UnlockedAchievements = achievements.Unlock(next.UnlockedAchievements, cards)

	next.State = next.State.Update(completed, c.PresentedIDs, c.WrongIDs, c.SkippedIDs)

	if next.CurrentSession != nil && next.CurrentSession.Day == c.Day {
		next.CurrentSession = nil
	}
	next.Normalize()

	return next, Outcome{
		StarsEarned:    c.Points,
		CompletedCount: completed,
		Correct:        correct,
		Perfect:        perfect,
		NewCards:       cards,
		Reward:         c.Reward,
		DueForReview:   slices.Clone(next.Queue),
	}
}

// Login updates the daily login streak for a visit on today. It reports
// whether anything changed; a second visit on the same day is a no-op.
func Login(p *profile.Profile, today time.Time) (*profile.Profile, bool) {
	todayStr := today.Format(profile.DateLayout)
	if p.LastLoginDate == todayStr {
		return p, false
	}
	yesterday := today.AddDate(0, 0, -1).Format(profile.DateLayout)

	next := p.Clone()
	switch {
	case p.LastLoginDate == yesterday:
		next.Streak++
	case p.LastLoginDate < yesterday:
		// Covers a broken streak and the never-logged-in empty date.
		next.Streak = 1
	case p.Streak == 0:
		next.Streak = 1
	}
	next.LastLoginDate = todayStr
	return next, true
}

// SaveCheckpoint stores an in-progress lesson on p.
func SaveCheckpoint(p *profile.Profile, cp profile.Checkpoint) *profile.Profile {
	next := p.Clone()
	next.CurrentSession = &cp
	return next
}

// SetSettings replaces the parent settings after validating them.
func SetSettings(p *profile.Profile, s settings.ParentSettings) (*profile.Profile, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	next := p.Clone()
	next.ParentSettings = s
	next.ParentSettings.CustomRewards = slices.Clone(s.CustomRewards)
	next.Normalize()
	return next, nil
}

func union(base, add []string) []string {
	out := slices.Clone(base)
	seen := make(map[string]bool, len(out)+len(add))
	for _, id := range out {
		seen[id] = true
	}
	for _, id := range add {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func countCorrect(presented, wrong, skipped []string) int {
	n := 0
	for _, id := range presented {
		if !slices.Contains(wrong, id) && !slices.Contains(skipped, id) {
			n++
		}
	}
	return n
}
