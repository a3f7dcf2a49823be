package authoring

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/play"
)

// Validator checks one drafted question. Implementations are stateless.
type Validator interface {
	Name() string
	Validate(q bank.Question, req Request) *ValidationError
}

// ValidationError describes why a draft was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators is the chain run on every draft, in order.
func DefaultValidators() []Validator {
	return []Validator{
		&LengthValidator{MaxText: 300, MaxExplanation: 500},
		&CatalogValidator{},
		&PlayableValidator{},
		&DifficultyValidator{Slack: 1},
	}
}

// LengthValidator bounds text and explanation length in runes.
type LengthValidator struct {
	MaxText        int
	MaxExplanation int
}

func (v *LengthValidator) Name() string { return "length" }

func (v *LengthValidator) Validate(q bank.Question, _ Request) *ValidationError {
	if n := utf8.RuneCountInString(q.Text); n > v.MaxText {
		return &ValidationError{v.Name(), fmt.Sprintf("text is %d characters, max %d", n, v.MaxText)}
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return &ValidationError{v.Name(), "explanation is empty"}
	}
	if n := utf8.RuneCountInString(q.Explanation); n > v.MaxExplanation {
		return &ValidationError{v.Name(), fmt.Sprintf("explanation is %d characters, max %d", n, v.MaxExplanation)}
	}
	return nil
}

// CatalogValidator applies the same structural rules as bank loading.
type CatalogValidator struct{}

func (v *CatalogValidator) Name() string { return "catalog" }

func (v *CatalogValidator) Validate(q bank.Question, _ Request) *ValidationError {
	if _, err := bank.New([]bank.Question{q}); err != nil {
		return &ValidationError{v.Name(), err.Error()}
	}
	return nil
}

// PlayableValidator checks that the answer can actually be entered.
type PlayableValidator struct{}

func (v *PlayableValidator) Name() string { return "playable" }

func (v *PlayableValidator) Validate(q bank.Question, _ Request) *ValidationError {
	switch q.Type {
	case bank.TypeFillInBlank:
		if play.Blanks(q) == 0 {
			return &ValidationError{v.Name(), fmt.Sprintf("fill-in text has no %s blank", play.BlankMarker)}
		}
	case bank.TypeUnscramble:
		if !fragmentsCover(q) {
			return &ValidationError{v.Name(), "fragments do not rebuild the answer"}
		}
	}
	if !play.CheckAnswer(q, q.Answer) {
		return &ValidationError{v.Name(), "answer is not accepted by the checker"}
	}
	return nil
}

// fragmentsCover reports whether the fragments use exactly the characters of
// the answer, in any order. Whitespace and separators are ignored.
func fragmentsCover(q bank.Question) bool {
	count := make(map[rune]int)
	for _, r := range strings.Join(play.Fragments(q), "") {
		if !ignorable(r) {
			count[r]++
		}
	}
	for _, r := range q.Answer {
		if !ignorable(r) {
			count[r]--
		}
	}
	for _, n := range count {
		if n != 0 {
			return false
		}
	}
	return true
}

func ignorable(r rune) bool { return r == '/' || unicode.IsSpace(r) }

// DifficultyValidator rejects drafts too far from the requested level.
type DifficultyValidator struct {
	Slack int
}

func (v *DifficultyValidator) Name() string { return "difficulty" }

func (v *DifficultyValidator) Validate(q bank.Question, req Request) *ValidationError {
	if req.Difficulty == 0 {
		return nil
	}
	if d := q.EffectiveDifficulty() - req.Difficulty; d > v.Slack || d < -v.Slack {
		return &ValidationError{v.Name(), fmt.Sprintf("difficulty %d, requested %d", q.Difficulty, req.Difficulty)}
	}
	return nil
}
