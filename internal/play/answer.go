package play

import (
	"hash/fnv"
	"strconv"
	"strings"
	"unicode"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/seedrand"
)

// BlankMarker marks a gap in fill-in-the-blank text.
const BlankMarker = "（ ）"

// CheckAnswer compares a learner's input against q.
//
// Normalization rules:
//   - Whitespace is ignored everywhere
//   - Multiple choice and fill-in accept the option text or its 1-based
//     index; an input that is itself an option is never read as an index
//   - Unscramble ignores the "/" fragment separators
func CheckAnswer(q bank.Question, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	switch q.Type {
	case bank.TypeMultipleChoice, bank.TypeFillInBlank:
		if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(q.Options) && !hasOption(q, input) {
			input = q.Options[idx-1]
		}
		return strings.EqualFold(squash(input), squash(q.Answer))
	case bank.TypeUnscramble:
		return squash(strings.ReplaceAll(input, "/", "")) == squash(strings.ReplaceAll(q.Answer, "/", ""))
	}
	return false
}

// Blanks counts the gaps in a fill-in-the-blank question.
func Blanks(q bank.Question) int {
	return strings.Count(q.Text, BlankMarker)
}

// Fragments returns the pieces of an unscramble question in a stable
// shuffled order, so the same question always shows the same layout.
func Fragments(q bank.Question) []string {
	var parts []string
	for _, p := range strings.Split(q.Text, "/") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return seedrand.Shuffle(parts, questionSeed(q.ID))
}

// Options returns the choices of q in a stable shuffled order.
func Options(q bank.Question) []string {
	return seedrand.Shuffle(q.Options, questionSeed(q.ID))
}

func hasOption(q bank.Question, input string) bool {
	for _, o := range q.Options {
		if squash(o) == squash(input) {
			return true
		}
	}
	return false
}

func questionSeed(id string) int {
	h := fnv.New32a()
	h.Write([]byte(id))
	return int(h.Sum32() % 1_000_000)
}

func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
