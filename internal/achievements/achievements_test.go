package achievements

import (
	"fmt"
	"testing"

	"github.com/abhisek/questisland/internal/seedrand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardIDs(cs []Card) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestCatalog(t *testing.T) {
	all := All()
	require.Len(t, all, 9)

	seen := map[string]bool{}
	images := map[string]bool{}
	for _, c := range all {
		assert.False(t, seen[c.ID], "duplicate card %s", c.ID)
		seen[c.ID] = true
		assert.NotEmpty(t, c.Image)
		images[c.Image] = true
	}
	assert.Len(t, images, len(all), "images should be distinct while the pool is larger than the catalog")
}

func TestImageAssignmentIsStable(t *testing.T) {
	pool := make([]int, imagePoolSize)
	for i := range pool {
		pool[i] = i + 1
	}
	first := seedrand.Shuffle(pool, imageSeed)[0]

	c, ok := Get("streak_3")
	require.True(t, ok)
	assert.Equal(t, fmt.Sprintf("/media/card_%d.png", first), c.Image)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		stats    Stats
		unlocked []string
		want     []string
	}{
		{
			name:  "first sloppy slow level",
			stats: Stats{CompletedLevels: 1, Mistakes: 2, TimeSpentSeconds: 300},
			want:  nil,
		},
		{
			name:  "perfect and fast",
			stats: Stats{CompletedLevels: 1, Mistakes: 0, TimeSpentSeconds: 59},
			want:  []string{"perfect_score", "speed_runner", "perfect_storm"},
		},
		{
			name:  "speed boundary is exclusive",
			stats: Stats{CompletedLevels: 1, Mistakes: 1, TimeSpentSeconds: 60},
			want:  nil,
		},
		{
			name:     "third level",
			stats:    Stats{CompletedLevels: 3, Mistakes: 1, TimeSpentSeconds: 120},
			unlocked: []string{"perfect_score"},
			want:     []string{"streak_3"},
		},
		{
			name:     "tenth level already has three",
			stats:    Stats{CompletedLevels: 10, Mistakes: 1, TimeSpentSeconds: 120},
			unlocked: []string{"streak_3"},
			want:     []string{"streak_10"},
		},
		{
			name: "cumulative cards",
			stats: Stats{
				CompletedLevels: 2, Mistakes: 3, TimeSpentSeconds: 200,
				ConsecutivePerfect: 3, TotalTimeSeconds: 3600, TotalCorrect: 100, DistinctStickers: 5,
			},
			want: []string{"perfect_trio", "marathon", "scholar", "collector"},
		},
		{
			name:     "idempotent",
			stats:    Stats{CompletedLevels: 1, TimeSpentSeconds: 10},
			unlocked: []string{"perfect_score", "speed_runner", "perfect_storm"},
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cardIDs(Evaluate(tt.stats, tt.unlocked)))
		})
	}
}

func TestUnlock(t *testing.T) {
	a, _ := Get("streak_3")
	b, _ := Get("marathon")
	got := Unlock([]string{"streak_3"}, []Card{a, b, b})
	assert.Equal(t, []string{"streak_3", "marathon"}, got)
}

func TestRarityDisplayName(t *testing.T) {
	assert.Equal(t, "Legendary", RarityLegendary.DisplayName())
	assert.Len(t, AllRarities(), 4)
}
