// Package profile defines the persisted learner state and its versioned
// migration from older saved blobs.
package profile

import (
	"maps"
	"slices"
	"time"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/mistakes"
	"github.com/abhisek/questisland/internal/rewards"
	"github.com/abhisek/questisland/internal/settings"
)

// StorageKey names the saved profile slot.
const StorageKey = "quest_island_v10"

// CurrentVersion is the schema version written by this build.
const CurrentVersion = 1

// MainCourse is the only course shipped.
const MainCourse = "main"

// DateLayout formats the daily statistics keys.
const DateLayout = "2006-01-02"

// DailyStats aggregates all levels finished on one calendar day.
type DailyStats struct {
	Date                     string              `json:"date"`
	TimeSpentSeconds         int                 `json:"timeSpentSeconds"`
	Mistakes                 int                 `json:"mistakes"`
	MistakesByCategory       bank.CategoryCounts `json:"mistakesByCategory"`
	TotalQuestionsByCategory bank.CategoryCounts `json:"totalQuestionsByCategory"`
	LevelsCompleted          int                 `json:"levelsCompleted"`
}

// LevelStats describes the most recently finished level.
type LevelStats struct {
	Day           int                 `json:"day"`
	TimeSpent     int                 `json:"timeSpent"` // seconds
	MistakesByCat bank.CategoryCounts `json:"mistakesByCat"`
	MaxCombo      int                 `json:"maxCombo"`
	Timestamp     time.Time           `json:"timestamp"`
}

// Mistakes returns the total mistakes across categories.
func (s LevelStats) Mistakes() int {
	return s.MistakesByCat.Total()
}

// Checkpoint is a resumable in-progress lesson.
type Checkpoint struct {
	Day             int                 `json:"day"`
	QIndex          int                 `json:"qIndex"`
	MistakesByCat   bank.CategoryCounts `json:"mistakesByCat"`
	CurrentCombo    int                 `json:"currentCombo"`
	MaxCombo        int                 `json:"maxCombo"`
	AccumulatedTime int                 `json:"accumulatedTime"` // seconds
	WrongIDs        []string            `json:"wrongIds,omitempty"`
	SkippedIDs      []string            `json:"skippedIds,omitempty"`
}

// Decorations are the cosmetic island choices.
type Decorations struct {
	Theme    string `json:"theme"`
	Pet      string `json:"pet"`
	Building string `json:"building"`
}

// Profile is the complete learner state.
type Profile struct {
	Version int `json:"version"`

	Name           string           `json:"name"`
	Avatar         string           `json:"avatar"`
	Stars          int              `json:"stars"`
	CourseProgress map[string][]int `json:"courseProgress"`
	ActiveCourseID string           `json:"activeCourseId"`

	UsedQuestionIDs []string `json:"usedQuestionIds"`
	mistakes.State

	UnlockedItems        []string       `json:"unlockedItems"`
	UnlockedAchievements []string       `json:"unlockedAchievements"`
	Inventory            []rewards.Item `json:"inventory"`
	ActiveDecorations    Decorations    `json:"activeDecorations"`

	GameSeed      int    `json:"gameSeed"`
	Streak        int    `json:"streak"`
	LastLoginDate string `json:"lastLoginDate"`

	StatsHistory             map[string]DailyStats `json:"statsHistory"`
	LastLevelStats           *LevelStats           `json:"lastLevelStats,omitempty"`
	ConsecutivePerfectLevels int                   `json:"consecutivePerfectLevels"`
	TotalTimeSpent           int                   `json:"totalTimeSpent"`
	TotalCorrectAnswers      int                   `json:"totalCorrectAnswers"`

	ParentSettings settings.ParentSettings `json:"parentSettings"`
	CurrentSession *Checkpoint             `json:"currentSession,omitempty"`
}

// New returns a fresh profile using seed as its game seed.
func New(seed int) *Profile {
	return &Profile{
		Version:              CurrentVersion,
		Name:                 "Super Explorer",
		Avatar:               "🐱",
		CourseProgress:       map[string][]int{MainCourse: {}},
		ActiveCourseID:       MainCourse,
		UsedQuestionIDs:      []string{},
		State:                mistakes.State{Queue: []string{}, Pending: []mistakes.Bucket{}},
		UnlockedItems:        []string{"cat", "theme_sky"},
		UnlockedAchievements: []string{},
		Inventory:            []rewards.Item{},
		ActiveDecorations:    Decorations{Theme: "theme_sky"},
		GameSeed:             seed,
		StatsHistory:         map[string]DailyStats{},
		ParentSettings:       settings.Default(),
	}
}

// CompletedDays returns the finished days of the active course.
func (p *Profile) CompletedDays() []int {
	return slices.Clone(p.CourseProgress[p.ActiveCourseID])
}

// CompletedCount returns how many levels of the active course are finished.
func (p *Profile) CompletedCount() int {
	return len(p.CourseProgress[p.ActiveCourseID])
}

// IsCompleted reports whether day is finished in the active course.
func (p *Profile) IsCompleted(day int) bool {
	return slices.Contains(p.CourseProgress[p.ActiveCourseID], day)
}

// NextDay returns the lowest day not yet completed.
func (p *Profile) NextDay() int {
	day := 1
	for p.IsCompleted(day) {
		day++
	}
	return day
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	c := *p
	c.CourseProgress = make(map[string][]int, len(p.CourseProgress))
	for k, v := range p.CourseProgress {
		c.CourseProgress[k] = slices.Clone(v)
	}
	c.UsedQuestionIDs = slices.Clone(p.UsedQuestionIDs)
	c.State = p.State.Clone()
	c.UnlockedItems = slices.Clone(p.UnlockedItems)
	c.UnlockedAchievements = slices.Clone(p.UnlockedAchievements)
	c.Inventory = slices.Clone(p.Inventory)
	c.StatsHistory = maps.Clone(p.StatsHistory)
	if p.LastLevelStats != nil {
		ls := *p.LastLevelStats
		c.LastLevelStats = &ls
	}
	c.ParentSettings.CustomRewards = slices.Clone(p.ParentSettings.CustomRewards)
	if p.CurrentSession != nil {
		cp := *p.CurrentSession
		cp.WrongIDs = slices.Clone(cp.WrongIDs)
		cp.SkippedIDs = slices.Clone(cp.SkippedIDs)
		c.CurrentSession = &cp
	}
	return &c
}
