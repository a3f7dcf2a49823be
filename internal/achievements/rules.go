package achievements

import "slices"

// Thresholds used by the unlock rules.
const (
	SpeedLimitSeconds = 60
	PerfectRunLength  = 3
	MarathonSeconds   = 3600
	ScholarCorrect    = 100
	CollectorStickers = 5
	persistenceLevels = 3
	victoryLevels     = 10
)

// Stats is the post-completion snapshot the rules read.
type Stats struct {
	CompletedLevels    int // including the level just finished
	Mistakes           int // in the level just finished
	TimeSpentSeconds   int // for the level just finished
	ConsecutivePerfect int
	TotalTimeSeconds   int
	TotalCorrect       int
	DistinctStickers   int
}

type rule struct {
	cardID string
	met    func(Stats) bool
}

var rules = []rule{
	{"streak_3", func(s Stats) bool { return s.CompletedLevels >= persistenceLevels }},
	{"streak_10", func(s Stats) bool { return s.CompletedLevels >= victoryLevels }},
	{"perfect_score", func(s Stats) bool { return s.Mistakes == 0 }},
	{"speed_runner", func(s Stats) bool { return s.TimeSpentSeconds < SpeedLimitSeconds }},
	{"perfect_storm", func(s Stats) bool { return s.Mistakes == 0 && s.TimeSpentSeconds < SpeedLimitSeconds }},
	{"perfect_trio", func(s Stats) bool { return s.ConsecutivePerfect >= PerfectRunLength }},
	{"marathon", func(s Stats) bool { return s.TotalTimeSeconds >= MarathonSeconds }},
	{"scholar", func(s Stats) bool { return s.TotalCorrect >= ScholarCorrect }},
	{"collector", func(s Stats) bool { return s.DistinctStickers >= CollectorStickers }},
}

// Evaluate returns the cards newly earned by s, in catalog order. Cards in
// unlocked are never returned again.
func Evaluate(s Stats, unlocked []string) []Card {
	var out []Card
	for _, r := range rules {
		if slices.Contains(unlocked, r.cardID) || !r.met(s) {
			continue
		}
		if c, ok := Get(r.cardID); ok {
			out = append(out, c)
		}
	}
	return out
}

// Unlock appends the IDs of cards to unlocked, skipping any already present.
func Unlock(unlocked []string, cards []Card) []string {
	out := slices.Clone(unlocked)
	for _, c := range cards {
		if !slices.Contains(out, c.ID) {
			out = append(out, c.ID)
		}
	}
	return out
}
