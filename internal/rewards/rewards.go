// Package rewards rolls the treasure chest shown after a finished level.
package rewards

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/questisland/internal/settings"
)

// ItemType classifies inventory items.
type ItemType string

const (
	ItemSticker      ItemType = "sticker"
	ItemCustomCoupon ItemType = "custom_coupon"
)

// Item is an inventory entry won from a chest.
type Item struct {
	ID         string    `json:"id"`
	Type       ItemType  `json:"type"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon"`
	ObtainedAt time.Time `json:"obtainedAt"`

	// SourceID is the sticker or custom reward the item was minted from.
	SourceID string `json:"sourceId,omitempty"`
	Redeemed bool   `json:"isRedeemed,omitempty"`
}

// Sticker is a collectible chest prize.
type Sticker struct {
	ID   string
	Icon string
	Name string
}

// Stickers is the fixed sticker set.
var Stickers = []Sticker{
	{ID: "s1", Icon: "🦕", Name: "Little Dino"},
	{ID: "s2", Icon: "🦄", Name: "Unicorn"},
	{ID: "s3", Icon: "🤖", Name: "Robot"},
	{ID: "s4", Icon: "👽", Name: "Alien"},
	{ID: "s5", Icon: "🐳", Name: "Whale"},
	{ID: "s6", Icon: "🦋", Name: "Butterfly"},
	{ID: "s7", Icon: "🚀", Name: "Rocket"},
	{ID: "s8", Icon: "🎪", Name: "Circus"},
	{ID: "s9", Icon: "🎨", Name: "Palette"},
	{ID: "s10", Icon: "🍔", Name: "Burger"},
}

const couponIcon = "🎟️"

// Chest rolls prizes. It is not safe for concurrent use.
type Chest struct {
	rng *rand.Rand
	now func() time.Time
}

// NewChest creates a Chest drawing from rng. A nil rng uses a randomly
// seeded source.
func NewChest(rng *rand.Rand) *Chest {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Chest{rng: rng, now: time.Now}
}

// Open rolls the chest. Custom rewards are tried in random order, each
// winning when a roll in [0,100) lands below its probability. If none wins,
// a random sticker is awarded.
func (c *Chest) Open(custom []settings.CustomReward) Item {
	order := c.rng.Perm(len(custom))
	for _, i := range order {
		r := custom[i]
		if c.rng.Float64()*100 < float64(r.Probability) {
			return Item{
				ID:         uuid.New().String(),
				Type:       ItemCustomCoupon,
				Name:       r.Name,
				Icon:       couponIcon,
				ObtainedAt: c.now(),
				SourceID:   r.ID,
			}
		}
	}

	s := Stickers[c.rng.IntN(len(Stickers))]
	return Item{
		ID:         uuid.New().String(),
		Type:       ItemSticker,
		Name:       s.Name,
		Icon:       s.Icon,
		ObtainedAt: c.now(),
		SourceID:   s.ID,
	}
}

// DistinctStickers counts the different stickers in inventory.
func DistinctStickers(inventory []Item) int {
	seen := make(map[string]bool)
	for _, it := range inventory {
		if it.Type == ItemSticker {
			seen[it.SourceID] = true
		}
	}
	return len(seen)
}

// Redeem marks the coupon with id as used. It reports false when no
// unredeemed coupon has that id. The input slice is not modified.
func Redeem(inventory []Item, id string) ([]Item, bool) {
	out := make([]Item, len(inventory))
	copy(out, inventory)
	for i, it := range out {
		if it.ID == id && it.Type == ItemCustomCoupon && !it.Redeemed {
			out[i].Redeemed = true
			return out, true
		}
	}
	return out, false
}
