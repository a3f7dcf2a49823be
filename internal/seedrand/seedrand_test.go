package seedrand

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextFloat_Range(t *testing.T) {
	for seed := -500; seed <= 5000; seed++ {
		v := NextFloat(seed)
		if v < 0 || v >= 1 {
			t.Fatalf("NextFloat(%d) = %v, want [0,1)", seed, v)
		}
	}
}

func TestNextFloat_Formula(t *testing.T) {
	for _, seed := range []int{0, 1, 42, 123, 8888} {
		x := math.Sin(float64(seed)) * 10000
		want := x - math.Floor(x)
		assert.Equal(t, want, NextFloat(seed), "seed %d", seed)
	}
	assert.Equal(t, 0.0, NextFloat(0))
}

func TestShuffle_Deterministic(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e", "f", "g"}
	first := Shuffle(in, 165)
	second := Shuffle(in, 165)
	assert.Equal(t, first, second)
}

func TestShuffle_IsPermutation(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	for seed := 0; seed < 50; seed++ {
		out := Shuffle(in, seed)
		require.Len(t, out, len(in))
		sorted := slices.Clone(out)
		slices.Sort(sorted)
		assert.Equal(t, in, sorted, "seed %d", seed)
	}
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	orig := slices.Clone(in)
	_ = Shuffle(in, 7)
	assert.Equal(t, orig, in)
}

func TestShuffle_MatchesReference(t *testing.T) {
	// Hand-run of the algorithm for a three element slice.
	in := []int{10, 20, 30}
	seed := 42
	want := slices.Clone(in)
	for i := 2; i > 0; i-- {
		j := int(math.Floor(NextFloat(seed+i) * float64(i+1)))
		want[i], want[j] = want[j], want[i]
	}
	assert.Equal(t, want, Shuffle(in, seed))
}

func TestShuffle_SmallInputs(t *testing.T) {
	assert.Empty(t, Shuffle([]int{}, 1))
	assert.Equal(t, []int{9}, Shuffle([]int{9}, 1))
	assert.Empty(t, Shuffle[int](nil, 1))
}

func TestShuffle_SeedsDiffer(t *testing.T) {
	in := make([]int, 20)
	for i := range in {
		in[i] = i
	}
	differ := false
	base := Shuffle(in, 1)
	for seed := 2; seed < 10; seed++ {
		if !slices.Equal(base, Shuffle(in, seed)) {
			differ = true
			break
		}
	}
	assert.True(t, differ, "expected distinct seeds to yield a different order")
}

func TestPick(t *testing.T) {
	assert.Equal(t, 0, Pick(5, 0))
	for seed := 0; seed < 100; seed++ {
		p := Pick(seed, 8)
		if p < 0 || p >= 8 {
			t.Fatalf("Pick(%d, 8) = %d", seed, p)
		}
	}
}
