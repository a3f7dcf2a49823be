package lesson

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.Default()
	require.NoError(t, err)
	return b
}

// smallBank builds perCat questions per category with difficulty cycling
// through 1..5.
func smallBank(t *testing.T, perCat int) *bank.Bank {
	t.Helper()
	var qs []bank.Question
	for _, c := range bank.Categories() {
		for i := 0; i < perCat; i++ {
			qs = append(qs, bank.Question{
				ID:         fmt.Sprintf("%s-%d", c, i),
				Category:   c,
				Type:       bank.TypeMultipleChoice,
				Text:       fmt.Sprintf("%s question %d", c, i),
				Options:    []string{"x", "y"},
				Answer:     "x",
				Difficulty: i%5 + 1,
			})
		}
	}
	b, err := bank.New(qs)
	require.NoError(t, err)
	return b
}

func request(day, seed int) Request {
	return Request{Day: day, UserSeed: seed, Settings: settings.Default()}
}

func TestGenerate_DayOneScenario(t *testing.T) {
	l, err := Generate(defaultBank(t), request(1, 42))
	require.NoError(t, err)

	assert.Len(t, l.Questions, 6)
	assert.Equal(t, 105, l.Points)
	assert.Equal(t, 1, l.DifficultyLevel)
	assert.Equal(t, 1, l.Day)
	assert.Equal(t, "Day 1: Island Adventure", l.Title)
	assert.Equal(t, icons[1], l.Icon)
	assert.Equal(t, stories[1], l.Story)
	for _, q := range l.Questions {
		assert.Equal(t, 1, q.EffectiveDifficulty(), "question %s", q.ID)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	b := defaultBank(t)
	req := request(7, 42)
	req.ExcludeIDs = []string{"m-b-1", "m-l-3"}
	req.MistakeQueue = []string{"c-w-2"}

	a, err := Generate(b, req)
	require.NoError(t, err)
	c, err := Generate(b, req)
	require.NoError(t, err)
	assert.Equal(t, a, c)
}

func TestGenerate_SeedSensitivity(t *testing.T) {
	b := defaultBank(t)
	a, err := Generate(b, request(1, 42))
	require.NoError(t, err)
	c, err := Generate(b, request(1, 43))
	require.NoError(t, err)
	assert.NotEqual(t, a.IDs(), c.IDs())
}

func TestGenerate_QuotaRespect(t *testing.T) {
	b := smallBank(t, 10)
	for day := 1; day <= 30; day++ {
		l, err := Generate(b, request(day, 5))
		require.NoError(t, err)
		assert.Len(t, l.Questions, 6, "day %d", day)
	}
}

func TestGenerate_NoDuplicates(t *testing.T) {
	b := defaultBank(t)
	for day := 1; day <= 40; day++ {
		req := request(day, 99)
		req.MistakeQueue = []string{"m-b-3", "m-b-3", "c-s-4"}
		l, err := Generate(b, req)
		require.NoError(t, err)
		ids := l.IDs()
		sorted := slices.Clone(ids)
		slices.Sort(sorted)
		assert.Equal(t, len(sorted), len(slices.Compact(sorted)), "day %d: %v", day, ids)
	}
}

func TestGenerate_ReviewInjection(t *testing.T) {
	b := smallBank(t, 10)
	req := request(3, 1)
	req.MistakeQueue = []string{"basic-9", "logic-8", "word-7", "word-6", "sentence-1",
		"sentence-2", "sentence-3", "sentence-4", "sentence-5", "sentence-6"}

	l, err := Generate(b, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"basic-9", "logic-8"}, l.ReviewIDs)

	ids := l.IDs()
	assert.Contains(t, ids, "basic-9")
	assert.Contains(t, ids, "logic-8")
	assert.NotContains(t, ids, "word-7")

	// Each review counts toward its category quota.
	var perCat bank.CategoryCounts
	for _, q := range l.Questions {
		perCat = perCat.Inc(q.Category, 1)
	}
	assert.Equal(t, settings.Default().QuestionCounts, perCat)
}

func TestGenerate_ReviewBeyondQuota(t *testing.T) {
	b := smallBank(t, 10)
	req := request(3, 1)
	req.Settings.QuestionCounts.Word = 0
	req.MistakeQueue = []string{"word-4"}

	l, err := Generate(b, req)
	require.NoError(t, err)
	assert.Len(t, l.Questions, 6)
	assert.Contains(t, l.IDs(), "word-4")
}

func TestGenerate_UnknownReviewIDsSkipped(t *testing.T) {
	l, err := Generate(smallBank(t, 4), Request{
		Day: 2, Settings: settings.Default(), MistakeQueue: []string{"retired", "logic-0"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"logic-0"}, l.ReviewIDs)
}

func TestGenerate_GroupedOrderWithoutShuffle(t *testing.T) {
	req := request(2, 11)
	req.Settings.ShuffleQuestions = false
	req.MistakeQueue = []string{"word-3"}

	l, err := Generate(smallBank(t, 10), req)
	require.NoError(t, err)

	require.NotEmpty(t, l.Questions)
	assert.Equal(t, "word-3", l.Questions[0].ID, "reviews lead")

	var order []bank.Category
	for _, q := range l.Questions[1:] {
		if len(order) == 0 || order[len(order)-1] != q.Category {
			order = append(order, q.Category)
		}
	}
	assert.Equal(t, []bank.Category{
		bank.CategoryBasic, bank.CategoryApplication, bank.CategoryLogic, bank.CategorySentence,
	}, order)
}

func TestGenerate_ShortBankDegrades(t *testing.T) {
	b, err := bank.New([]bank.Question{{
		ID: "only", Category: bank.CategoryBasic, Type: bank.TypeMultipleChoice,
		Text: "1+1", Options: []string{"2", "3"}, Answer: "2",
	}})
	require.NoError(t, err)

	l, err := Generate(b, request(1, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, l.IDs())
}

func TestGenerate_InvalidRequest(t *testing.T) {
	b := smallBank(t, 2)

	_, err := Generate(b, request(0, 1))
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	req := request(1, 1)
	req.Settings.QuestionCounts.Logic = -2
	_, err = Generate(b, req)
	assert.True(t, errors.Is(err, ErrInvalidRequest))
	assert.True(t, errors.Is(err, settings.ErrInvalid))
}

func TestGenerate_CustomDifficultyPolicy(t *testing.T) {
	g := NewGenerator(smallBank(t, 10), WithDifficultyPolicy(func(int) int { return 9 }))
	l, err := g.Generate(request(1, 3))
	require.NoError(t, err)
	assert.Equal(t, 5, l.DifficultyLevel)
	for _, q := range l.Questions {
		assert.GreaterOrEqual(t, q.Difficulty, 4)
	}
}

func TestGenerate_ReviewCapOption(t *testing.T) {
	req := request(2, 2)
	req.MistakeQueue = []string{"basic-1", "logic-1", "word-1"}
	l, err := NewGenerator(smallBank(t, 5), WithReviewCap(3)).Generate(req)
	require.NoError(t, err)
	assert.Len(t, l.ReviewIDs, 3)
}

func TestGenerate_ExclusionRespected(t *testing.T) {
	b := smallBank(t, 10)
	req := request(1, 8)
	req.ExcludeIDs = []string{"basic-0", "basic-5", "logic-0", "word-0"}
	l, err := Generate(b, req)
	require.NoError(t, err)
	for _, id := range req.ExcludeIDs {
		assert.NotContains(t, l.IDs(), id)
	}
}

func TestDefaultDifficulty(t *testing.T) {
	tests := []struct{ day, want int }{
		{1, 1}, {4, 1}, {5, 2}, {8, 2}, {9, 3}, {10, 3},
		{11, 4}, {12, 4}, {13, 5}, {16, 5}, {40, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultDifficulty(tt.day), "day %d", tt.day)
	}
}

func TestBand(t *testing.T) {
	lo, hi := Band(1)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 1, hi)
	lo, hi = Band(4)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 4, hi)
}

func TestPointsAndSeed(t *testing.T) {
	assert.Equal(t, 105, Points(1))
	assert.Equal(t, 200, Points(20))
	assert.Equal(t, 165, Seed(1, 42))
}

func TestFlavorCycles(t *testing.T) {
	i0, s0 := Flavor(0)
	i8, s8 := Flavor(8)
	assert.Equal(t, i0, i8)
	assert.Equal(t, s0, s8)
}
