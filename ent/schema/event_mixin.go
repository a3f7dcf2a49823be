package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// AppendOnly is mixed into log tables. Rows are never updated, so both
// fields are immutable; sequence doubles as the primary key.
type AppendOnly struct {
	mixin.Schema
}

func (AppendOnly) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Drawn from global_sequence"),
		field.Int64("created_at").
			Immutable().
			Comment("Unix milliseconds"),
	}
}

func (AppendOnly) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
	}
}
