package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	sqlschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/questisland/ent/schema"
)

// Table names.
const (
	tableProfileSnapshots = "profile_snapshots"
	tableCompletionEvents = "completion_events"
	tableLLMRequestEvents = "llm_request_events"
)

// table binds an ent schema to its SQLite table. Rows with autoID get an
// implicit auto-incrementing id primary key; otherwise primaryKey names a
// declared field.
type table struct {
	name       string
	schema     ent.Interface
	primaryKey string
	autoID     bool
}

var tables = []table{
	{name: tableProfileSnapshots, schema: schema.ProfileSnapshot{}, autoID: true},
	{name: tableCompletionEvents, schema: schema.CompletionEvent{}, primaryKey: "sequence"},
	{name: tableLLMRequestEvents, schema: schema.LLMRequestEvent{}, primaryKey: "sequence"},
	{name: tableGlobalSequence, schema: schema.GlobalSequence{}, primaryKey: "id"},
}

// fields returns the mixin fields followed by the schema's own.
func (t table) fields() []ent.Field {
	var out []ent.Field
	for _, m := range t.schema.Mixin() {
		out = append(out, m.Fields()...)
	}
	return append(out, t.schema.Fields()...)
}

func (t table) indexes() []ent.Index {
	var out []ent.Index
	for _, m := range t.schema.Mixin() {
		out = append(out, m.Indexes()...)
	}
	return append(out, t.schema.Indexes()...)
}

// migrationTable converts t into the table description ent's migrator
// works from, the same shape codegen would emit into migrate/schema.go.
func (t table) migrationTable() (*sqlschema.Table, error) {
	mt := sqlschema.NewTable(t.name)
	if t.autoID {
		mt.AddPrimary(&sqlschema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	}
	for _, f := range t.fields() {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.name, d.Name, d.Err)
		}
		col := &sqlschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Nullable: d.Optional,
			Default:  d.Default,
		}
		if d.Name == t.primaryKey {
			mt.AddPrimary(col)
			continue
		}
		col.Unique = d.Unique
		mt.AddColumn(col)
	}
	for _, idx := range t.indexes() {
		d := idx.Descriptor()
		name := d.StorageKey
		if name == "" {
			name = t.name + "_" + strings.Join(d.Fields, "_")
		}
		mt.AddIndex(name, d.Unique, d.Fields)
	}
	return mt, nil
}

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, db *sql.DB) error {
	mts := make([]*sqlschema.Table, 0, len(tables))
	for _, t := range tables {
		mt, err := t.migrationTable()
		if err != nil {
			return fmt.Errorf("build schema: %w", err)
		}
		mts = append(mts, mt)
	}

	m, err := sqlschema.NewMigrate(entsql.OpenDB(dialect.SQLite, db))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, mts...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
