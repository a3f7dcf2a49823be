// Package authoring drafts new bank questions with a language model. Drafts
// are checked by a validator chain, deduplicated against the bank by text,
// and given fresh IDs before they are written out as a bank file.
package authoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/llm"
	"github.com/abhisek/questisland/internal/logging"
)

// ErrInvalidRequest is returned for a request that cannot be authored.
var ErrInvalidRequest = errors.New("invalid authoring request")

// MaxCount bounds a single request.
const MaxCount = 20

// Config controls an Author.
type Config struct {
	// Validators run in order; the first failure rejects the draft.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxPriorQuestions caps how many existing texts go into the prompt.
	MaxPriorQuestions int

	// MaxRounds is how many provider calls one request may make while
	// drafts keep getting rejected.
	MaxRounds int
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators:        DefaultValidators(),
		MaxTokens:         4096,
		Temperature:       0.8,
		MaxPriorQuestions: 40,
		MaxRounds:         3,
	}
}

// Request asks for Count new questions.
type Request struct {
	Category   bank.Category
	Type       bank.QuestionType // empty allows any type
	Difficulty int               // 0 leaves it to the model
	Count      int
	Topic      string
}

func (r Request) validate() error {
	var errs []string
	if !r.Category.Valid() {
		errs = append(errs, fmt.Sprintf("unknown category %q", r.Category))
	}
	if r.Type != "" && !r.Type.Valid() {
		errs = append(errs, fmt.Sprintf("unknown question type %q", r.Type))
	}
	if r.Difficulty != 0 && (r.Difficulty < bank.MinDifficulty || r.Difficulty > bank.MaxDifficulty) {
		errs = append(errs, fmt.Sprintf("difficulty %d outside %d..%d", r.Difficulty, bank.MinDifficulty, bank.MaxDifficulty))
	}
	if r.Count < 1 || r.Count > MaxCount {
		errs = append(errs, fmt.Sprintf("count %d outside 1..%d", r.Count, MaxCount))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(errs, "; "))
	}
	return nil
}

// Rejection records a draft that was thrown away.
type Rejection struct {
	Text   string
	Reason string
}

// Result is the outcome of one request.
type Result struct {
	Questions []bank.Question
	Rejected  []Rejection
}

// Encode renders the accepted questions as a bank file.
func (r *Result) Encode(subject string) ([]byte, error) {
	return bank.Encode(subject, r.Questions)
}

// Author drafts questions for a bank.
type Author struct {
	provider llm.Provider
	bank     *bank.Bank
	config   Config
	newID    func(bank.Category) string
}

// Option configures an Author.
type Option func(*Author)

// WithIDFunc replaces the ID generator.
func WithIDFunc(f func(bank.Category) string) Option {
	return func(a *Author) { a.newID = f }
}

// New creates an Author that drafts questions not already in b.
func New(provider llm.Provider, b *bank.Bank, cfg Config, opts ...Option) *Author {
	a := &Author{provider: provider, bank: b, config: cfg, newID: generatedID}
	for _, o := range opts {
		o(a)
	}
	return a
}

func generatedID(c bank.Category) string {
	return fmt.Sprintf("%s_gen_%s", c, uuid.NewString()[:8])
}

// Generate drafts up to req.Count new questions. It returns fewer when the
// provider keeps producing rejected drafts for MaxRounds calls.
func (a *Author) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, "question-authoring")
	log := logging.FromContext(ctx)

	var prior []string
	seen := make(map[string]bool)
	for _, q := range a.bank.ByCategory(req.Category) {
		prior = append(prior, q.Text)
		seen[normalizeText(q.Text)] = true
	}

	res := &Result{}
	rounds := max(a.config.MaxRounds, 1)
	for round := 0; round < rounds && len(res.Questions) < req.Count; round++ {
		ask := req
		ask.Count = req.Count - len(res.Questions)

		drafts, err := a.request(ctx, ask, prior)
		if err != nil {
			if len(res.Questions) > 0 {
				log.Warn().Err(err).Int("accepted", len(res.Questions)).Msg("authoring stopped early")
				break
			}
			return nil, err
		}

		for _, d := range drafts {
			q := a.toQuestion(d, req.Category)
			if reason := a.check(q, req, seen); reason != "" {
				res.Rejected = append(res.Rejected, Rejection{Text: q.Text, Reason: reason})
				continue
			}
			seen[normalizeText(q.Text)] = true
			prior = append(prior, q.Text)
			res.Questions = append(res.Questions, q)
			if len(res.Questions) == req.Count {
				break
			}
		}
		log.Debug().
			Int("round", round+1).
			Int("drafts", len(drafts)).
			Int("accepted", len(res.Questions)).
			Int("rejected", len(res.Rejected)).
			Msg("authoring round")
	}

	if _, err := a.bank.Merge(res.Questions); err != nil {
		return nil, fmt.Errorf("authored questions conflict with bank: %w", err)
	}
	return res, nil
}

func (a *Author) request(ctx context.Context, req Request, prior []string) ([]draft, error) {
	llmReq := llm.Prompt(systemPrompt, buildUserMessage(req, prior, a.config.MaxPriorQuestions))
	llmReq.Schema = draftSchema
	llmReq.MaxTokens = a.config.MaxTokens
	llmReq.Temperature = a.config.Temperature

	resp, err := a.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("draft questions: %w", err)
	}
	var batch draftBatch
	if err := json.Unmarshal(resp.Content, &batch); err != nil {
		return nil, fmt.Errorf("parse drafts: %w", err)
	}
	return batch.Questions, nil
}

func (a *Author) toQuestion(d draft, c bank.Category) bank.Question {
	q := bank.Question{
		ID:          a.newID(c),
		Category:    c,
		Type:        bank.QuestionType(d.Type),
		Text:        strings.TrimSpace(d.Text),
		Answer:      strings.TrimSpace(d.Answer),
		Explanation: strings.TrimSpace(d.Explanation),
		Difficulty:  d.Difficulty,
	}
	for _, o := range d.Options {
		if o = strings.TrimSpace(o); o != "" {
			q.Options = append(q.Options, o)
		}
	}
	return q
}

// check returns why q is rejected, or "" when it is accepted.
func (a *Author) check(q bank.Question, req Request, seen map[string]bool) string {
	if req.Type != "" && q.Type != req.Type {
		return fmt.Sprintf("type %s, requested %s", q.Type, req.Type)
	}
	if seen[normalizeText(q.Text)] {
		return "duplicate of an existing question"
	}
	for _, v := range a.config.Validators {
		if err := v.Validate(q, req); err != nil {
			return err.Error()
		}
	}
	return ""
}

// normalizeText keys questions for duplicate detection: case, spacing and
// punctuation are ignored.
func normalizeText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
