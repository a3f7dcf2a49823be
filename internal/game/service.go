// Package game ties the pure pieces (lesson generation, play, ledger,
// rewards) to persistence. Every state change is saved as a new profile
// snapshot; finished lessons are also appended to the completion log.
package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/ledger"
	"github.com/abhisek/questisland/internal/lesson"
	"github.com/abhisek/questisland/internal/profile"
	"github.com/abhisek/questisland/internal/rewards"
	"github.com/abhisek/questisland/internal/settings"
	"github.com/abhisek/questisland/internal/store"
)

// DefaultSnapshotKeep is how many profile snapshots survive a save.
const DefaultSnapshotKeep = 20

// maxGameSeed bounds generated per-profile seeds.
const maxGameSeed = 1_000_000

// Service runs game operations for one storage key.
type Service struct {
	mu sync.Mutex

	profiles store.ProfileRepo
	events   store.EventRepo
	bank     *bank.Bank
	gen      *lesson.Generator
	chest    *rewards.Chest

	key     string
	keep    int
	now     func() time.Time
	newSeed func() int
	log     zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithStorageKey selects which profile the service works on.
func WithStorageKey(key string) Option { return func(s *Service) { s.key = key } }

// WithSnapshotKeep sets how many snapshots to retain.
func WithSnapshotKeep(n int) Option { return func(s *Service) { s.keep = n } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithSeedSource replaces the random seed used for new profiles.
func WithSeedSource(f func() int) Option { return func(s *Service) { s.newSeed = f } }

// WithChest replaces the reward chest.
func WithChest(c *rewards.Chest) Option { return func(s *Service) { s.chest = c } }

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// WithGenerator replaces the default lesson generator.
func WithGenerator(g *lesson.Generator) Option { return func(s *Service) { s.gen = g } }

// NewService creates a Service over the given repositories and bank.
func NewService(profiles store.ProfileRepo, events store.EventRepo, b *bank.Bank, opts ...Option) *Service {
	s := &Service{
		profiles: profiles,
		events:   events,
		bank:     b,
		key:      profile.StorageKey,
		keep:     DefaultSnapshotKeep,
		now:      time.Now,
		newSeed:  func() int { return rand.IntN(maxGameSeed) },
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.gen == nil {
		s.gen = lesson.NewGenerator(b)
	}
	if s.chest == nil {
		s.chest = rewards.NewChest(nil)
	}
	return s
}

// Bank returns the question bank in use.
func (s *Service) Bank() *bank.Bank { return s.bank }

// LoadProfile returns the latest saved profile, migrating old formats. A
// fresh profile is returned, unsaved, when nothing is stored yet.
func (s *Service) LoadProfile(ctx context.Context) (*profile.Profile, error) {
	snap, err := s.profiles.Latest(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if snap == nil {
		p := profile.New(s.newSeed())
		s.log.Info().Str("key", s.key).Int("seed", p.GameSeed).Msg("new profile")
		return p, nil
	}
	p, err := profile.Migrate(snap.Data, s.newSeed)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// SaveProfile writes p as a new snapshot and prunes old ones.
func (s *Service) SaveProfile(ctx context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, p)
}

func (s *Service) save(ctx context.Context, p *profile.Profile) error {
	data, err := profile.Encode(p)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	snap := &store.Snapshot{StorageKey: s.key, Timestamp: s.now(), Data: data}
	if err := s.profiles.Save(ctx, snap); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err := s.profiles.Prune(ctx, s.key, s.keep); err != nil {
		// Old snapshots are harmless; keep going.
		s.log.Warn().Err(err).Msg("prune snapshots")
	}
	s.log.Debug().Int64("sequence", snap.Sequence).Int("stars", p.Stars).Msg("profile saved")
	return nil
}

// Login loads the profile and records today's visit.
func (s *Service) Login(ctx context.Context) (*profile.Profile, error) {
	p, err := s.LoadProfile(ctx)
	if err != nil {
		return nil, err
	}
	next, changed := ledger.Login(p, s.now())
	if !changed {
		return next, nil
	}
	if err := s.SaveProfile(ctx, next); err != nil {
		return nil, err
	}
	s.log.Info().Int("streak", next.Streak).Msg("login")
	return next, nil
}

// ErrEmptyLesson is returned when a day has no questions to play, which
// happens when every category count is zero or the bank is used up.
var ErrEmptyLesson = errors.New("no questions for this day")

// Lesson builds the lesson for day from p's history and settings.
func (s *Service) Lesson(p *profile.Profile, day int) (*lesson.Lesson, error) {
	l, err := s.gen.Generate(lesson.Request{
		Day:          day,
		ExcludeIDs:   p.UsedQuestionIDs,
		UserSeed:     p.GameSeed,
		Settings:     p.ParentSettings,
		MistakeQueue: p.Queue,
	})
	if err != nil {
		return nil, err
	}
	if len(l.Questions) == 0 {
		return nil, fmt.Errorf("day %d: %w", day, ErrEmptyLesson)
	}
	s.log.Debug().Int("day", day).Int("questions", len(l.Questions)).Int("reviews", len(l.ReviewIDs)).
		Int("difficulty", l.DifficultyLevel).Msg("lesson generated")
	return l, nil
}

// NextLesson builds the lesson for the first unfinished day.
func (s *Service) NextLesson(p *profile.Profile) (*lesson.Lesson, error) {
	return s.Lesson(p, p.NextDay())
}

// Complete records a finished lesson. When c carries no reward the chest
// is opened with p's custom rewards.
func (s *Service) Complete(ctx context.Context, p *profile.Profile, c ledger.Completion) (*profile.Profile, ledger.Outcome, error) {
	if len(c.PresentedIDs) == 0 {
		return nil, ledger.Outcome{}, fmt.Errorf("complete day %d: %w", c.Day, ErrEmptyLesson)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Reward == nil {
		item := s.chest.Open(p.ParentSettings.CustomRewards)
		c.Reward = &item
	}

	next, out := ledger.Apply(p, c, s.now())
	if err := s.save(ctx, next); err != nil {
		return nil, ledger.Outcome{}, fmt.Errorf("complete day %d: %w", c.Day, err)
	}

	payload, err := json.Marshal(CompletionDetails{
		WrongIDs:     c.WrongIDs,
		SkippedIDs:   c.SkippedIDs,
		PresentedIDs: c.PresentedIDs,
		NewCards:     cardIDs(out),
		Reward:       c.Reward.Name,
	})
	if err != nil {
		return nil, ledger.Outcome{}, fmt.Errorf("complete day %d: %w", c.Day, err)
	}
	_, err = s.events.AppendCompletion(ctx, store.CompletionEventData{
		StorageKey: s.key,
		Day:        c.Day,
		Points:     c.Points,
		Questions:  len(c.PresentedIDs),
		Correct:    out.Correct,
		Mistakes:   c.Stats.Mistakes(),
		Seconds:    c.Stats.TimeSpent,
		Payload:    payload,
	})
	if err != nil {
		// The profile already holds the result; the log is for stats only.
		s.log.Warn().Err(err).Int("day", c.Day).Msg("append completion event")
	}

	s.log.Info().Int("day", c.Day).Int("stars", out.StarsEarned).Int("correct", out.Correct).
		Bool("perfect", out.Perfect).Int("new_cards", len(out.NewCards)).Str("reward", c.Reward.Name).
		Msg("lesson complete")
	return next, out, nil
}

// CompletionDetails is the JSON payload stored with each completion event.
type CompletionDetails struct {
	PresentedIDs []string `json:"presentedIds"`
	WrongIDs     []string `json:"wrongIds,omitempty"`
	SkippedIDs   []string `json:"skippedIds,omitempty"`
	NewCards     []string `json:"newCards,omitempty"`
	Reward       string   `json:"reward,omitempty"`
}

// Details decodes the payload of a completion event. Events without a
// payload yield zero details.
func Details(ev store.CompletionEvent) (CompletionDetails, error) {
	var d CompletionDetails
	if len(ev.Payload) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(ev.Payload, &d); err != nil {
		return d, fmt.Errorf("decode completion %s: %w", ev.ID, err)
	}
	return d, nil
}

func cardIDs(out ledger.Outcome) []string {
	var ids []string
	for _, c := range out.NewCards {
		ids = append(ids, c.ID)
	}
	return ids
}

// SaveCheckpoint stores an in-progress lesson.
func (s *Service) SaveCheckpoint(ctx context.Context, p *profile.Profile, cp profile.Checkpoint) (*profile.Profile, error) {
	next := ledger.SaveCheckpoint(p, cp)
	if err := s.SaveProfile(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// UpdateSettings validates and stores new parent settings.
func (s *Service) UpdateSettings(ctx context.Context, p *profile.Profile, ps settings.ParentSettings) (*profile.Profile, error) {
	next, err := ledger.SetSettings(p, ps)
	if err != nil {
		return nil, err
	}
	if err := s.SaveProfile(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// MaxNameLength bounds explorer names.
const MaxNameLength = 20

// ErrInvalidName is returned by Rename for blank names.
var ErrInvalidName = errors.New("name must not be blank")

// Rename sets the explorer's display name. Names are trimmed and cut to
// MaxNameLength runes.
func (s *Service) Rename(ctx context.Context, p *profile.Profile, name string) (*profile.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if r := []rune(name); len(r) > MaxNameLength {
		name = string(r[:MaxNameLength])
	}
	next := p.Clone()
	next.Name = name
	if err := s.SaveProfile(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Redeem marks a coupon in the inventory as used.
func (s *Service) Redeem(ctx context.Context, p *profile.Profile, itemID string) (*profile.Profile, error) {
	next := p.Clone()
	inv, ok := rewards.Redeem(next.Inventory, itemID)
	if !ok {
		return nil, fmt.Errorf("redeem %s: no unredeemed coupon with that id", itemID)
	}
	next.Inventory = inv
	if err := s.SaveProfile(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Reset deletes the stored profile and completion log.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.profiles.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := s.events.DeleteCompletions(ctx, s.key); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.log.Info().Str("key", s.key).Msg("profile reset")
	return nil
}

// ResetProgress clears the completed levels of the active course and any
// unfinished lesson. Stars, cards and inventory are kept.
func (s *Service) ResetProgress(ctx context.Context) (*profile.Profile, error) {
	p, err := s.LoadProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("reset progress: %w", err)
	}
	next := p.Clone()
	delete(next.CourseProgress, next.ActiveCourseID)
	next.CurrentSession = nil
	next.Normalize()
	if err := s.SaveProfile(ctx, next); err != nil {
		return nil, fmt.Errorf("reset progress: %w", err)
	}
	s.log.Info().Str("key", s.key).Str("course", next.ActiveCourseID).Msg("progress reset")
	return next, nil
}

// Export returns the current profile encoded as a backup blob.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	p, err := s.LoadProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("export profile: %w", err)
	}
	return profile.Encode(p)
}

// Import replaces the stored profile with a backup blob of any known
// version. Blobs that fail to migrate are rejected and nothing is saved.
func (s *Service) Import(ctx context.Context, raw []byte) (*profile.Profile, error) {
	p, err := profile.Migrate(raw, s.newSeed)
	if err != nil {
		return nil, fmt.Errorf("import profile: %w", err)
	}
	if err := s.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("import profile: %w", err)
	}
	s.log.Info().Str("key", s.key).Int("stars", p.Stars).Int("completed", p.CompletedCount()).Msg("profile imported")
	return p, nil
}
