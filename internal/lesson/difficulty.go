package lesson

import "github.com/abhisek/questisland/internal/bank"

// DifficultyPolicy maps a day number to a target difficulty in 1..5.
type DifficultyPolicy func(day int) int

// DefaultDifficulty steps up every four days, with one extra step after
// day ten, capped at the hardest tier.
func DefaultDifficulty(day int) int {
	target := (day + 3) / 4 // ceil(day/4) for day >= 1
	if day > 10 {
		target++
	}
	return clampDifficulty(target)
}

// Band returns the inclusive difficulty range accepted for target.
func Band(target int) (lo, hi int) {
	return max(bank.MinDifficulty, target-1), target
}

func clampDifficulty(d int) int {
	return min(bank.MaxDifficulty, max(bank.MinDifficulty, d))
}
