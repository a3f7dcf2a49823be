package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// profileRepo implements ProfileRepo with the ent SQL builder.
type profileRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *profileRepo) Save(ctx context.Context, snap *Snapshot) error {
	if len(snap.Data) == 0 {
		return errors.New("save snapshot: empty data")
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}

	query, args := builder().Insert(tableProfileSnapshots).
		Columns("storage_key", "sequence", "created_at", "data").
		Values(snap.StorageKey, seqNum, snap.Timestamp.UnixMilli(), []byte(snap.Data)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	snap.ID = id
	snap.Sequence = seqNum
	return nil
}

func (r *profileRepo) Latest(ctx context.Context, key string) (*Snapshot, error) {
	query, args := builder().Select("id", "storage_key", "sequence", "created_at", "data").
		From(entsql.Table(tableProfileSnapshots)).
		Where(entsql.EQ("storage_key", key)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var (
		s       Snapshot
		created int64
		data    []byte
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&s.ID, &s.StorageKey, &s.Sequence, &created, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	s.Timestamp = time.UnixMilli(created)
	s.Data = data
	return &s, nil
}

func (r *profileRepo) Prune(ctx context.Context, key string, keep int) error {
	// The sequence of the newest snapshot that falls outside keep.
	query, args := builder().Select("sequence").
		From(entsql.Table(tableProfileSnapshots)).
		Where(entsql.EQ("storage_key", key)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Offset(keep).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete(tableProfileSnapshots).
		Where(entsql.And(
			entsql.EQ("storage_key", key),
			entsql.LTE("sequence", threshold),
		)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(tableProfileSnapshots).
		Where(entsql.EQ("storage_key", key)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}
	return nil
}
