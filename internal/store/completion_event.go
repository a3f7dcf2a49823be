package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// eventRepo implements EventRepo backed by the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendCompletion(ctx context.Context, data CompletionEventData) (*CompletionEvent, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return nil, err
	}

	ev := &CompletionEvent{
		CompletionEventData: data,
		ID:                  uuid.NewString(),
		Sequence:            seqNum,
		Timestamp:           time.Now(),
	}
	query, args := builder().Insert(tableCompletionEvents).
		Columns("sequence", "id", "storage_key", "day", "points", "questions", "correct", "mistakes", "seconds", "created_at", "payload").
		Values(ev.Sequence, ev.ID, data.StorageKey, data.Day, data.Points, data.Questions, data.Correct, data.Mistakes, data.Seconds,
			ev.Timestamp.UnixMilli(), []byte(data.Payload)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("save completion event: %w", err)
	}
	return ev, nil
}

func (r *eventRepo) ListCompletions(ctx context.Context, key string, opts QueryOpts) ([]CompletionEvent, error) {
	sel := builder().Select("sequence", "id", "storage_key", "day", "points", "questions", "correct", "mistakes", "seconds", "created_at", "payload").
		From(entsql.Table(tableCompletionEvents)).
		Where(entsql.And(append(rangePredicates(opts), entsql.EQ("storage_key", key))...)).
		OrderBy("sequence")
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	defer rows.Close()

	var out []CompletionEvent
	for rows.Next() {
		var (
			ev      CompletionEvent
			created int64
			payload []byte
		)
		if err := rows.Scan(&ev.Sequence, &ev.ID, &ev.StorageKey, &ev.Day, &ev.Points, &ev.Questions, &ev.Correct,
			&ev.Mistakes, &ev.Seconds, &created, &payload); err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(created)
		ev.Payload = payload
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) DeleteCompletions(ctx context.Context, key string) error {
	query, args := builder().Delete(tableCompletionEvents).
		Where(entsql.EQ("storage_key", key)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete completion events: %w", err)
	}
	return nil
}

// rangePredicates turns the sequence and time bounds of opts into
// WHERE predicates.
func rangePredicates(opts QueryOpts) []*entsql.Predicate {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	return preds
}
