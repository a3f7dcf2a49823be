package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/achievements"
	"github.com/abhisek/questisland/internal/bank"
)

// Palette: sea, sand and treasure.
var (
	Primary   = lipgloss.Color("#0EA5E9") // Sea blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Coral
	Success   = lipgloss.Color("#22C55E") // Palm green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A") // Night sea
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")

	ArcadeYellow = lipgloss.Color("#FACC15") // Gold
	ArcadeCyan   = lipgloss.Color("#22D3EE") // Lagoon
	Sand         = lipgloss.Color("#FDE68A")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Locked = lipgloss.NewStyle().
		Foreground(Border)
)

// RarityColor returns the accent used for a card of rarity r.
func RarityColor(r achievements.Rarity) color.Color {
	switch r {
	case achievements.RarityLegendary:
		return ArcadeYellow
	case achievements.RarityEpic:
		return Accent
	case achievements.RarityRare:
		return ArcadeCyan
	default:
		return Text
	}
}

// CategoryColor tints category labels in lessons and reports.
func CategoryColor(c bank.Category) color.Color {
	switch c {
	case bank.CategoryBasic:
		return Primary
	case bank.CategoryApplication:
		return Secondary
	case bank.CategoryLogic:
		return Accent
	case bank.CategorySentence:
		return Sand
	case bank.CategoryWord:
		return Success
	default:
		return TextDim
	}
}
