package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Snapshot is one saved copy of a profile blob.
type Snapshot struct {
	ID         int64
	StorageKey string
	Sequence   int64
	Timestamp  time.Time
	Data       json.RawMessage
}

// ProfileRepo keeps a history of profile snapshots per storage key.
type ProfileRepo interface {
	// Save stores a new snapshot and assigns its sequence.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot for key, or nil if none exist.
	Latest(ctx context.Context, key string) (*Snapshot, error)

	// Prune deletes all but the keep most recent snapshots for key.
	Prune(ctx context.Context, key string, keep int) error

	// Delete removes every snapshot for key.
	Delete(ctx context.Context, key string) error
}

// CompletionEventData summarizes one finished lesson.
type CompletionEventData struct {
	StorageKey string
	Day        int
	Points     int
	Questions  int
	Correct    int
	Mistakes   int
	Seconds    int
	Payload    json.RawMessage
}

// CompletionEvent is a stored CompletionEventData.
type CompletionEvent struct {
	CompletionEventData
	ID        string
	Sequence  int64
	Timestamp time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	LLMRequestEventData
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendCompletion records a finished lesson.
	AppendCompletion(ctx context.Context, data CompletionEventData) (*CompletionEvent, error)

	// ListCompletions returns completions for key in sequence order.
	ListCompletions(ctx context.Context, key string, opts QueryOpts) ([]CompletionEvent, error)

	// DeleteCompletions removes every completion for key.
	DeleteCompletions(ctx context.Context, key string) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// ListLLMRequests returns recorded LLM calls in sequence order.
	ListLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}
