package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// CompletionEvent records one finished lesson.
type CompletionEvent struct {
	ent.Schema
}

func (CompletionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{AppendOnly{}}
}

func (CompletionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			NotEmpty().
			Comment("UUID"),
		field.String("storage_key").
			NotEmpty(),
		field.Int("day"),
		field.Int("points").
			Comment("Stars awarded"),
		field.Int("questions"),
		field.Int("correct").
			Comment("Answered right first time"),
		field.Int("mistakes"),
		field.Int("seconds"),
		field.Bytes("payload").
			Optional().
			Comment("JSON details: presented, wrong and skipped IDs, cards, chest reward"),
	}
}

func (CompletionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("storage_key", "day"),
	}
}
