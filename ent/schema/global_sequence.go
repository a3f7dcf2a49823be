package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// GlobalSequence is a single-row counter. Every append-only table draws its
// sequence numbers from it.
type GlobalSequence struct {
	ent.Schema
}

func (GlobalSequence) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id").
			Comment("Always 1"),
		field.Int64("next_val").
			Default(1),
	}
}
