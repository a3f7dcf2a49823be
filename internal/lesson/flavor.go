package lesson

import "fmt"

var icons = []string{"🌴", "🏹", "💎", "🏰", "🗺️", "🦜", "⛺", "🛶"}

var stories = []string{
	"Brave little explorer, today we head deep into the mysterious jungle!",
	"Legend says this sea hides a lost treasure. Let's set sail!",
	"Cross the rainbow bridge to reach the Tower of Wisdom in the clouds.",
	"Deep in the desert pyramid, ancient counting spells are carved in stone.",
	"In the frozen ice castle, only a clever mind can light the campfire.",
	"The elves of the emerald forest love to ask riddles.",
	"In sunken Atlantis, the stone tablets record magical equations.",
	"On the ancient volcano island, every red stone holds the power of logic.",
}

// Flavor returns the icon and story for day. The choice cycles with the day
// number and is not random.
func Flavor(day int) (icon, story string) {
	return icons[mod(day, len(icons))], stories[mod(day, len(stories))]
}

// Title returns the display title for day.
func Title(day int) string {
	return fmt.Sprintf("Day %d: Island Adventure", day)
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
