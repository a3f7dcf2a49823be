package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ProfileSnapshot is one saved copy of a profile blob. The newest row per
// storage key is the live profile; older rows are kept for recovery.
type ProfileSnapshot struct {
	ent.Schema
}

func (ProfileSnapshot) Fields() []ent.Field {
	return []ent.Field{
		field.String("storage_key").
			NotEmpty().
			Comment("Profile slot, e.g. quest_island_v10"),
		field.Int64("sequence").
			Comment("Global sequence number at the time of the save"),
		field.Int64("created_at").
			Comment("Unix milliseconds"),
		field.Bytes("data").
			Comment("Profile JSON"),
	}
}

func (ProfileSnapshot) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("storage_key", "sequence").
			StorageKey("profile_snapshots_key_seq"),
	}
}
