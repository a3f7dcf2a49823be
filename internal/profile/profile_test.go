package profile

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/mistakes"
	"github.com/abhisek/questisland/internal/rewards"
	"github.com/abhisek/questisland/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSeed() int { return 777 }

func TestNew(t *testing.T) {
	p := New(12345)
	assert.Equal(t, CurrentVersion, p.Version)
	assert.Equal(t, 12345, p.GameSeed)
	assert.Equal(t, MainCourse, p.ActiveCourseID)
	assert.Equal(t, 0, p.CompletedCount())
	assert.Equal(t, 1, p.NextDay())
	assert.Equal(t, settings.Default(), p.ParentSettings)
	assert.NotNil(t, p.Queue)
	assert.NotNil(t, p.Pending)
}

func TestNextDay(t *testing.T) {
	p := New(1)
	p.CourseProgress[MainCourse] = []int{1, 2, 4}
	assert.Equal(t, 3, p.NextDay())
	assert.True(t, p.IsCompleted(4))
	assert.False(t, p.IsCompleted(3))
}

func TestMigrate_RoundTripCurrentVersion(t *testing.T) {
	p := New(99)
	p.Stars = 340
	p.CourseProgress[MainCourse] = []int{1, 2}
	p.Queue = []string{"m-b-1"}
	p.Pending = []mistakes.Bucket{{LevelIndex: 2, QuestionIDs: []string{"c-w-3"}}}
	p.Inventory = []rewards.Item{{
		ID: "x", Type: rewards.ItemSticker, Name: "Robot", Icon: "🤖",
		ObtainedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), SourceID: "s3",
	}}
	p.CurrentSession = &Checkpoint{Day: 3, QIndex: 2, WrongIDs: []string{"q"}}

	data, err := Encode(p)
	require.NoError(t, err)

	got, err := Migrate(data, fixedSeed)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestMigrate_LegacyBlobBackfillsDefaults(t *testing.T) {
	legacy := `{
		"name": "Mia",
		"avatar": "🦁",
		"stars": 250,
		"courseProgress": {"main": [1, 2]},
		"usedQuestionIds": ["m-b-1", "c-w-2"],
		"activeCourseId": "main",
		"unlockedItems": ["cat", "theme_sky", "lion"],
		"gameSeed": 424242,
		"parentSettings": {
			"questionCounts": {"basic": 3, "logic": 2},
			"shuffleQuestions": false
		},
		"inventory": [
			{"id": "sticker_1700000000000", "type": "sticker", "name": "Robot", "icon": "🤖", "obtainedAt": 1700000000000},
			{"id": "custom_1700000001000", "type": "custom_coupon", "name": "Cartoons", "icon": "🎟️", "obtainedAt": 1700000001000, "isRedeemed": true}
		],
		"lastLevelStats": {"day": 2, "timeSpent": 95, "mistakesByCat": {"basic": 1, "application": 0, "logic": 0, "sentence": 0, "word": 0}, "maxCombo": 4, "timestamp": 1700000002000},
		"currentSession": {"day": 3, "qIndex": 1, "mistakesByCat": {"basic": 0, "application": 0, "logic": 1, "sentence": 0, "word": 0}, "currentCombo": 0, "maxCombo": 1, "accumulatedTime": 40}
	}`

	p, err := Migrate([]byte(legacy), fixedSeed)
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, p.Version)
	assert.Equal(t, "Mia", p.Name)
	assert.Equal(t, 424242, p.GameSeed)
	assert.Equal(t, []int{1, 2}, p.CompletedDays())

	// Partial quotas merge over defaults.
	assert.Equal(t, bank.CategoryCounts{Basic: 3, Application: 1, Logic: 2, Sentence: 1, Word: 1}, p.ParentSettings.QuestionCounts)
	assert.False(t, p.ParentSettings.ShuffleQuestions)
	assert.Equal(t, settings.Default().CustomRewards, p.ParentSettings.CustomRewards)

	// Fields the blob lacked.
	assert.Equal(t, 0, p.Streak)
	assert.Empty(t, p.LastLoginDate)
	assert.NotNil(t, p.StatsHistory)
	assert.NotNil(t, p.UnlockedAchievements)
	assert.Equal(t, []string{}, p.Queue)
	assert.Equal(t, []mistakes.Bucket{}, p.Pending)
	assert.Equal(t, "theme_sky", p.ActiveDecorations.Theme)

	require.Len(t, p.Inventory, 2)
	assert.Equal(t, "s3", p.Inventory[0].SourceID)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), p.Inventory[0].ObtainedAt)
	assert.True(t, p.Inventory[1].Redeemed)
	assert.Empty(t, p.Inventory[1].SourceID)

	require.NotNil(t, p.LastLevelStats)
	assert.Equal(t, 95, p.LastLevelStats.TimeSpent)
	assert.Equal(t, 1, p.LastLevelStats.Mistakes())
	assert.Equal(t, time.UnixMilli(1700000002000).UTC(), p.LastLevelStats.Timestamp)

	require.NotNil(t, p.CurrentSession)
	assert.Equal(t, 40, p.CurrentSession.AccumulatedTime)
	assert.Equal(t, 1, p.CurrentSession.MistakesByCat.Logic)
}

func TestMigrate_LegacyWithoutSeedGetsOne(t *testing.T) {
	p, err := Migrate([]byte(`{"name":"x"}`), fixedSeed)
	require.NoError(t, err)
	assert.Equal(t, 777, p.GameSeed)
	assert.Equal(t, []int{}, p.CompletedDays())
}

func TestMigrate_NullCollections(t *testing.T) {
	p, err := Migrate([]byte(`{"version":1,"usedQuestionIds":null,"mistakeQueue":null,"statsHistory":null}`), fixedSeed)
	require.NoError(t, err)
	assert.NotNil(t, p.UsedQuestionIDs)
	assert.NotNil(t, p.Queue)
	assert.NotNil(t, p.StatsHistory)
}

func TestMigrate_Errors(t *testing.T) {
	_, err := Migrate([]byte(`{"version": 9}`), fixedSeed)
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))

	_, err = Migrate([]byte(`not json`), fixedSeed)
	assert.Error(t, err)

	_, err = Migrate([]byte(`{"parentSettings":{"questionCounts":{"word":-1}}}`), fixedSeed)
	assert.True(t, errors.Is(err, settings.ErrInvalid))
}

func TestClone_IsDeep(t *testing.T) {
	p := New(1)
	p.CourseProgress[MainCourse] = []int{1}
	p.Queue = []string{"a"}
	p.StatsHistory["2026-01-01"] = DailyStats{Mistakes: 1}
	p.CurrentSession = &Checkpoint{Day: 2, WrongIDs: []string{"w"}}

	c := p.Clone()
	assert.Equal(t, p, c)

	c.CourseProgress[MainCourse][0] = 9
	c.Queue[0] = "b"
	c.StatsHistory["2026-01-01"] = DailyStats{Mistakes: 5}
	c.CurrentSession.WrongIDs[0] = "z"
	c.ParentSettings.CustomRewards[0].Name = "changed"

	assert.Equal(t, []int{1}, p.CourseProgress[MainCourse])
	assert.Equal(t, []string{"a"}, p.Queue)
	assert.Equal(t, 1, p.StatsHistory["2026-01-01"].Mistakes)
	assert.Equal(t, []string{"w"}, p.CurrentSession.WrongIDs)
	assert.NotEqual(t, "changed", p.ParentSettings.CustomRewards[0].Name)
}
