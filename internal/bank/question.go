// Package bank holds the read-only question catalog: question types, the
// fixed category enumeration, per-category counters, and the loader for
// JSON bank files.
package bank

// Category is the fixed question category enumeration.
type Category string

const (
	CategoryBasic       Category = "basic"
	CategoryApplication Category = "application"
	CategoryLogic       Category = "logic"
	CategorySentence    Category = "sentence"
	CategoryWord        Category = "word"
)

// Categories returns every category in enumeration order. Lesson assembly
// walks categories in exactly this order.
func Categories() []Category {
	return []Category{
		CategoryBasic,
		CategoryApplication,
		CategoryLogic,
		CategorySentence,
		CategoryWord,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryBasic, CategoryApplication, CategoryLogic, CategorySentence, CategoryWord:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryBasic:
		return "Basics"
	case CategoryApplication:
		return "Word Problems"
	case CategoryLogic:
		return "Logic"
	case CategorySentence:
		return "Sentences"
	case CategoryWord:
		return "Words"
	default:
		return string(c)
	}
}

// QuestionType describes how a question is presented and answered.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeUnscramble     QuestionType = "unscramble"
	TypeFillInBlank    QuestionType = "fill-in-the-blank"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeMultipleChoice, TypeUnscramble, TypeFillInBlank:
		return true
	}
	return false
}

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question is an immutable catalog entry.
type Question struct {
	ID          string       `json:"id"`
	Category    Category     `json:"category"`
	Type        QuestionType `json:"type"`
	Text        string       `json:"text"`
	Options     []string     `json:"options,omitempty"`
	Answer      string       `json:"answer"`
	Explanation string       `json:"explanation"`

	// Difficulty is 1..5. Zero means unset.
	Difficulty int `json:"difficulty,omitempty"`
}

// EffectiveDifficulty returns the difficulty used for band filtering.
// Questions without a difficulty count as the easiest tier.
func (q Question) EffectiveDifficulty() int {
	if q.Difficulty == 0 {
		return MinDifficulty
	}
	return q.Difficulty
}

// CategoryCounts is a fixed per-category integer record, used for quotas,
// mistake tallies and presented-question tallies.
type CategoryCounts struct {
	Basic       int `json:"basic" yaml:"basic"`
	Application int `json:"application" yaml:"application"`
	Logic       int `json:"logic" yaml:"logic"`
	Sentence    int `json:"sentence" yaml:"sentence"`
	Word        int `json:"word" yaml:"word"`
}

// Get returns the count for c. Unknown categories yield 0.
func (cc CategoryCounts) Get(c Category) int {
	switch c {
	case CategoryBasic:
		return cc.Basic
	case CategoryApplication:
		return cc.Application
	case CategoryLogic:
		return cc.Logic
	case CategorySentence:
		return cc.Sentence
	case CategoryWord:
		return cc.Word
	}
	return 0
}

// Set returns a copy of cc with the count for c replaced by n.
func (cc CategoryCounts) Set(c Category, n int) CategoryCounts {
	switch c {
	case CategoryBasic:
		cc.Basic = n
	case CategoryApplication:
		cc.Application = n
	case CategoryLogic:
		cc.Logic = n
	case CategorySentence:
		cc.Sentence = n
	case CategoryWord:
		cc.Word = n
	}
	return cc
}

// Inc returns a copy of cc with the count for c incremented by n.
func (cc CategoryCounts) Inc(c Category, n int) CategoryCounts {
	return cc.Set(c, cc.Get(c)+n)
}

// Add returns the element-wise sum of cc and other.
func (cc CategoryCounts) Add(other CategoryCounts) CategoryCounts {
	for _, c := range Categories() {
		cc = cc.Inc(c, other.Get(c))
	}
	return cc
}

// Total returns the sum over all categories.
func (cc CategoryCounts) Total() int {
	return cc.Basic + cc.Application + cc.Logic + cc.Sentence + cc.Word
}
