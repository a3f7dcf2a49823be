package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/questisland/internal/mistakes"
	"github.com/abhisek/questisland/internal/rewards"
	"github.com/abhisek/questisland/internal/settings"
)

// ErrUnsupportedVersion is returned for blobs written by a newer build.
var ErrUnsupportedVersion = errors.New("unsupported profile version")

// Migrate decodes a saved profile of any known version and returns a fully
// populated current-version profile. newSeed supplies a game seed when the
// blob has none.
func Migrate(raw []byte, newSeed func() int) (*Profile, error) {
	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("decode profile header: %w", err)
	}

	var p *Profile
	var err error
	switch header.Version {
	case 0:
		p, err = migrateV0(raw, newSeed)
	case CurrentVersion:
		p = New(0)
		err = json.Unmarshal(raw, p)
	default:
		return nil, fmt.Errorf("%w: %d (max %d)", ErrUnsupportedVersion, header.Version, CurrentVersion)
	}
	if err != nil {
		return nil, fmt.Errorf("decode profile v%d: %w", header.Version, err)
	}

	p.Normalize()
	if err := p.ParentSettings.Validate(); err != nil {
		return nil, fmt.Errorf("migrate profile: %w", err)
	}
	return p, nil
}

// v0Item is the inventory entry shape of unversioned blobs, which stored
// timestamps as epoch milliseconds.
type v0Item struct {
	ID         string           `json:"id"`
	Type       rewards.ItemType `json:"type"`
	Name       string           `json:"name"`
	Icon       string           `json:"icon"`
	ObtainedAt int64            `json:"obtainedAt"`
	Redeemed   bool             `json:"isRedeemed"`
}

type v0LevelStats struct {
	LevelStats
	Timestamp int64 `json:"timestamp"`
}

type v0Profile struct {
	Profile
	Inventory      []v0Item      `json:"inventory"`
	LastLevelStats *v0LevelStats `json:"lastLevelStats"`
}

// migrateV0 decodes the unversioned layout over a default profile, so any
// field the blob lacks keeps its default. Nested quota records merge key by
// key for the same reason.
func migrateV0(raw []byte, newSeed func() int) (*Profile, error) {
	v := v0Profile{Profile: *New(0)}
	v.GameSeed = -1
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}

	p := v.Profile
	if p.GameSeed < 0 {
		p.GameSeed = newSeed()
	}

	p.Inventory = make([]rewards.Item, 0, len(v.Inventory))
	for _, it := range v.Inventory {
		p.Inventory = append(p.Inventory, rewards.Item{
			ID:         it.ID,
			Type:       it.Type,
			Name:       it.Name,
			Icon:       it.Icon,
			ObtainedAt: time.UnixMilli(it.ObtainedAt).UTC(),
			SourceID:   stickerIDForIcon(it.Type, it.Icon),
			Redeemed:   it.Redeemed,
		})
	}

	if v.LastLevelStats != nil {
		ls := v.LastLevelStats.LevelStats
		ls.Timestamp = time.UnixMilli(v.LastLevelStats.Timestamp).UTC()
		p.LastLevelStats = &ls
	}

	p.Version = CurrentVersion
	return &p, nil
}

func stickerIDForIcon(t rewards.ItemType, icon string) string {
	if t != rewards.ItemSticker {
		return ""
	}
	for _, s := range rewards.Stickers {
		if s.Icon == icon {
			return s.ID
		}
	}
	return icon
}

// Normalize replaces nil collections with empty ones and fills blank
// identity fields, leaving p safe to use without nil checks.
func (p *Profile) Normalize() {
	if p.CourseProgress == nil {
		p.CourseProgress = map[string][]int{}
	}
	if p.ActiveCourseID == "" {
		p.ActiveCourseID = MainCourse
	}
	if p.CourseProgress[p.ActiveCourseID] == nil {
		p.CourseProgress[p.ActiveCourseID] = []int{}
	}
	if p.UsedQuestionIDs == nil {
		p.UsedQuestionIDs = []string{}
	}
	if p.Queue == nil {
		p.Queue = []string{}
	}
	if p.Pending == nil {
		p.Pending = []mistakes.Bucket{}
	}
	if p.UnlockedItems == nil {
		p.UnlockedItems = []string{}
	}
	if p.UnlockedAchievements == nil {
		p.UnlockedAchievements = []string{}
	}
	if p.Inventory == nil {
		p.Inventory = []rewards.Item{}
	}
	if p.StatsHistory == nil {
		p.StatsHistory = map[string]DailyStats{}
	}
	if p.ActiveDecorations.Theme == "" {
		p.ActiveDecorations.Theme = "theme_sky"
	}
	if p.ParentSettings.CustomRewards == nil {
		p.ParentSettings.CustomRewards = []settings.CustomReward{}
	}
}

// Encode renders p for storage.
func Encode(p *Profile) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return data, nil
}
