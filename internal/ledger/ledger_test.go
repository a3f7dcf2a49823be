package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/mistakes"
	"github.com/abhisek/questisland/internal/profile"
	"github.com/abhisek/questisland/internal/rewards"
	"github.com/abhisek/questisland/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)

func completion(day int, presented, wrong, skipped []string, seconds int, mistakesByCat bank.CategoryCounts) Completion {
	return Completion{
		Day:            day,
		Points:         100 + day*5,
		PresentedIDs:   presented,
		PresentedByCat: bank.CategoryCounts{Basic: len(presented)},
		WrongIDs:       wrong,
		SkippedIDs:     skipped,
		Stats: profile.LevelStats{
			Day:           day,
			TimeSpent:     seconds,
			MistakesByCat: mistakesByCat,
			MaxCombo:      2,
		},
	}
}

func TestApply_Basics(t *testing.T) {
	p := profile.New(42)
	p.UsedQuestionIDs = []string{"a"}

	next, out := Apply(p, completion(1, []string{"a", "b", "c"}, []string{"c"}, nil, 120, bank.CategoryCounts{Logic: 1}), now)

	assert.Equal(t, 105, next.Stars)
	assert.Equal(t, []string{"a", "b", "c"}, next.UsedQuestionIDs)
	assert.Equal(t, []int{1}, next.CompletedDays())
	assert.Equal(t, 1, out.CompletedCount)
	assert.Equal(t, 2, out.Correct)
	assert.False(t, out.Perfect)

	daily := next.StatsHistory["2026-05-04"]
	assert.Equal(t, "2026-05-04", daily.Date)
	assert.Equal(t, 120, daily.TimeSpentSeconds)
	assert.Equal(t, 1, daily.Mistakes)
	assert.Equal(t, 1, daily.MistakesByCategory.Logic)
	assert.Equal(t, 3, daily.TotalQuestionsByCategory.Basic)
	assert.Equal(t, 1, daily.LevelsCompleted)

	require.NotNil(t, next.LastLevelStats)
	assert.Equal(t, now, next.LastLevelStats.Timestamp)
	assert.Equal(t, 120, next.TotalTimeSpent)
	assert.Equal(t, 2, next.TotalCorrectAnswers)

	assert.Equal(t, []mistakes.Bucket{{LevelIndex: 1, QuestionIDs: []string{"c"}}}, next.Pending)
	assert.Empty(t, next.Queue)
}

func TestApply_EmptyCompletionEarnsNothing(t *testing.T) {
	p := profile.New(42)
	p.CourseProgress[profile.MainCourse] = []int{1}
	reward := rewards.Item{ID: "x", Type: rewards.ItemSticker, Name: "Star"}
	c := completion(2, nil, nil, nil, 5, bank.CategoryCounts{})
	c.Reward = &reward

	next, out := Apply(p, c, now)
	assert.Equal(t, 0, next.Stars)
	assert.Equal(t, []int{1}, next.CompletedDays())
	assert.Empty(t, next.Inventory)
	assert.Empty(t, next.UnlockedAchievements)
	assert.Empty(t, next.StatsHistory)
	assert.Zero(t, out.StarsEarned)
	assert.Equal(t, 1, out.CompletedCount)
	assert.Nil(t, out.Reward)
	assert.Empty(t, out.NewCards)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	p := profile.New(42)
	before := p.Clone()
	_, _ = Apply(p, completion(1, []string{"a"}, []string{"a"}, nil, 30, bank.CategoryCounts{Basic: 1}), now)
	assert.Equal(t, before, p)
}

func TestApply_RepeatDayIsIdempotentForProgress(t *testing.T) {
	p := profile.New(1)
	p, _ = Apply(p, completion(1, []string{"a"}, nil, nil, 100, bank.CategoryCounts{}), now)
	p, out := Apply(p, completion(1, []string{"b"}, nil, nil, 100, bank.CategoryCounts{}), now)

	assert.Equal(t, []int{1}, p.CompletedDays())
	assert.Equal(t, 1, out.CompletedCount)
	assert.Equal(t, 210, p.Stars)
	assert.Equal(t, 2, p.StatsHistory["2026-05-04"].LevelsCompleted)
}

func TestApply_DailyStatsKeyedByDate(t *testing.T) {
	p := profile.New(1)
	p, _ = Apply(p, completion(1, []string{"a"}, nil, nil, 50, bank.CategoryCounts{}), now)
	p, _ = Apply(p, completion(2, []string{"b"}, nil, nil, 70, bank.CategoryCounts{}), now.AddDate(0, 0, 1))
	assert.Len(t, p.StatsHistory, 2)
	assert.Equal(t, 70, p.StatsHistory["2026-05-05"].TimeSpentSeconds)
}

func TestApply_Achievements(t *testing.T) {
	p := profile.New(1)

	p, out := Apply(p, completion(1, []string{"a"}, nil, nil, 45, bank.CategoryCounts{}), now)
	assert.ElementsMatch(t, []string{"perfect_score", "speed_runner", "perfect_storm"}, ids(out))

	p, out = Apply(p, completion(2, []string{"b"}, nil, nil, 45, bank.CategoryCounts{}), now)
	assert.Empty(t, out.NewCards, "unlocks are idempotent")

	p, out = Apply(p, completion(3, []string{"c"}, nil, nil, 45, bank.CategoryCounts{}), now)
	assert.ElementsMatch(t, []string{"streak_3", "perfect_trio"}, ids(out))
	assert.Equal(t, 3, p.ConsecutivePerfectLevels)

	p, _ = Apply(p, completion(4, []string{"d"}, []string{"d"}, nil, 45, bank.CategoryCounts{Word: 1}), now)
	assert.Equal(t, 0, p.ConsecutivePerfectLevels)
	assert.Len(t, p.UnlockedAchievements, 5)
}

func TestApply_CollectorCountsRewardJustWon(t *testing.T) {
	p := profile.New(1)
	for _, id := range []string{"s1", "s2", "s3", "s4"} {
		p.Inventory = append(p.Inventory, rewards.Item{ID: id, Type: rewards.ItemSticker, SourceID: id})
	}
	c := completion(1, []string{"a"}, []string{"a"}, nil, 300, bank.CategoryCounts{Basic: 1})
	c.Reward = &rewards.Item{ID: "new", Type: rewards.ItemSticker, SourceID: "s5"}

	next, out := Apply(p, c, now)
	assert.Len(t, next.Inventory, 5)
	assert.Equal(t, []string{"collector"}, ids(out))
	assert.Equal(t, c.Reward, out.Reward)
}

func TestApply_MistakeLifecycle(t *testing.T) {
	p := profile.New(1)
	p.CourseProgress[profile.MainCourse] = []int{1}

	// Second level: Q1 missed.
	p, _ = Apply(p, completion(2, []string{"Q1", "Q2"}, []string{"Q1"}, nil, 90, bank.CategoryCounts{Basic: 1}), now)
	assert.Equal(t, []mistakes.Bucket{{LevelIndex: 2, QuestionIDs: []string{"Q1"}}}, p.Pending)

	p, _ = Apply(p, completion(3, []string{"Q3"}, nil, nil, 90, bank.CategoryCounts{}), now)
	assert.Empty(t, p.Queue)

	p, out := Apply(p, completion(4, []string{"Q4"}, nil, nil, 90, bank.CategoryCounts{}), now)
	assert.Equal(t, []string{"Q1"}, p.Queue)
	assert.Equal(t, []string{"Q1"}, out.DueForReview)

	p, _ = Apply(p, completion(5, []string{"Q1", "Q5"}, nil, nil, 90, bank.CategoryCounts{}), now)
	assert.Empty(t, p.Queue)
	assert.Empty(t, p.Pending)
}

func TestApply_ClearsCheckpointForThatDay(t *testing.T) {
	p := profile.New(1)
	p.CurrentSession = &profile.Checkpoint{Day: 1, QIndex: 3}
	next, _ := Apply(p, completion(1, []string{"a"}, nil, nil, 10, bank.CategoryCounts{}), now)
	assert.Nil(t, next.CurrentSession)

	p.CurrentSession = &profile.Checkpoint{Day: 2, QIndex: 3}
	next, _ = Apply(p, completion(1, []string{"a"}, nil, nil, 10, bank.CategoryCounts{}), now)
	assert.NotNil(t, next.CurrentSession)
}

func TestLogin(t *testing.T) {
	today := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		last      string
		streak    int
		want      int
		wantTouch bool
	}{
		{"first ever", "", 0, 1, true},
		{"consecutive", "2026-05-03", 4, 5, true},
		{"broken streak", "2026-04-20", 9, 1, true},
		{"same day", "2026-05-04", 3, 3, false},
		{"clock moved back keeps streak", "2026-05-09", 6, 6, true},
		{"clock moved back with no streak", "2026-05-09", 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile.New(1)
			p.LastLoginDate = tt.last
			p.Streak = tt.streak

			next, changed := Login(p, today)
			assert.Equal(t, tt.wantTouch, changed)
			assert.Equal(t, tt.want, next.Streak)
			assert.Equal(t, "2026-05-04", next.LastLoginDate)
			assert.Equal(t, tt.last, p.LastLoginDate, "input must be untouched")
		})
	}
}

func TestLogin_AcrossMonthBoundary(t *testing.T) {
	p := profile.New(1)
	p.LastLoginDate = "2026-02-28"
	p.Streak = 2
	next, _ := Login(p, time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC))
	assert.Equal(t, 3, next.Streak)
}

func TestSaveCheckpoint(t *testing.T) {
	p := profile.New(1)
	next := SaveCheckpoint(p, profile.Checkpoint{Day: 2, QIndex: 1})
	require.NotNil(t, next.CurrentSession)
	assert.Nil(t, p.CurrentSession)
}

func TestSetSettings(t *testing.T) {
	p := profile.New(1)
	s := settings.Default()
	s.QuestionCounts.Word = 3

	next, err := SetSettings(p, s)
	require.NoError(t, err)
	assert.Equal(t, 3, next.ParentSettings.QuestionCounts.Word)
	assert.Equal(t, 1, p.ParentSettings.QuestionCounts.Word)

	s.QuestionCounts.Word = -1
	_, err = SetSettings(p, s)
	assert.True(t, errors.Is(err, settings.ErrInvalid))
}

func ids(out Outcome) []string {
	var r []string
	for _, c := range out.NewCards {
		r = append(r, c.ID)
	}
	return r
}
