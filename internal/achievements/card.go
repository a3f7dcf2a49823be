// Package achievements defines the honor card catalog and the rules that
// unlock cards after a completed level.
package achievements

import (
	"fmt"

	"github.com/abhisek/questisland/internal/seedrand"
)

// Card is a collectible honor card.
type Card struct {
	ID          string
	Title       string
	Condition   string
	Icon        string
	Description string
	Message     string
	Rarity      Rarity
	Image       string
}

const (
	imagePoolSize = 50
	imageSeed     = 8888
)

var rawCards = []Card{
	{
		ID:          "streak_3",
		Title:       "Star of Persistence",
		Condition:   "Complete 3 levels",
		Icon:        "🌱",
		Description: "Sticking with it is the first step to success",
		Message:     "For the explorer who keeps growing",
		Rarity:      RarityCommon,
	},
	{
		ID:          "streak_10",
		Title:       "Medal of Victory",
		Condition:   "Complete 10 levels",
		Icon:        "🏆",
		Description: "Your determination is impressive",
		Message:     "Clever and hard working. Nothing can stop you!",
		Rarity:      RarityEpic,
	},
	{
		ID:          "perfect_score",
		Title:       "Halo of Wisdom",
		Condition:   "Finish a level with no mistakes",
		Icon:        "✨",
		Description: "Careful and precise",
		Message:     "For the careful, wise explorer",
		Rarity:      RarityRare,
	},
	{
		ID:          "speed_runner",
		Title:       "Lightning Dash",
		Condition:   "Finish a level in under a minute",
		Icon:        "⚡",
		Description: "Quick thinking, fast as lightning",
		Message:     "You move like lightning with wisdom in hand",
		Rarity:      RarityRare,
	},
	{
		ID:          "perfect_storm",
		Title:       "Perfect Storm",
		Condition:   "Finish a level in under a minute with no mistakes",
		Icon:        "💎",
		Description: "Speed and accuracy in one",
		Message:     "A true super explorer!",
		Rarity:      RarityLegendary,
	},
	{
		ID:          "perfect_trio",
		Title:       "Triple Crown",
		Condition:   "Finish 3 levels in a row with no mistakes",
		Icon:        "👑",
		Description: "Flawless three times over",
		Message:     "Three perfect adventures in a row!",
		Rarity:      RarityEpic,
	},
	{
		ID:          "marathon",
		Title:       "Island Marathon",
		Condition:   "Spend a total of one hour on lessons",
		Icon:        "🏃",
		Description: "Every minute counts",
		Message:     "An hour of adventures. Amazing focus!",
		Rarity:      RarityRare,
	},
	{
		ID:          "scholar",
		Title:       "Little Scholar",
		Condition:   "Answer 100 questions correctly",
		Icon:        "📚",
		Description: "A hundred right answers",
		Message:     "Your brain is a treasure chest!",
		Rarity:      RarityEpic,
	},
	{
		ID:          "collector",
		Title:       "Sticker Collector",
		Condition:   "Collect 5 different stickers",
		Icon:        "🎁",
		Description: "A growing collection",
		Message:     "Look at all those treasures!",
		Rarity:      RarityRare,
	},
}

// catalog is the card list with images assigned from a fixed shuffle of
// the image pool, so a card keeps its picture across runs.
var catalog = assignImages(rawCards)

func assignImages(cards []Card) []Card {
	pool := make([]string, imagePoolSize)
	for i := range pool {
		pool[i] = fmt.Sprintf("/media/card_%d.png", i+1)
	}
	pool = seedrand.Shuffle(pool, imageSeed)

	out := make([]Card, len(cards))
	for i, c := range cards {
		c.Image = pool[i%len(pool)]
		out[i] = c
	}
	return out
}

// All returns every card in catalog order.
func All() []Card {
	out := make([]Card, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the card with id.
func Get(id string) (Card, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}
