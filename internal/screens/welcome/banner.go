package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/ui/theme"
)

const bannerArt = `
 ╔═╗ ╦ ╦ ╔═╗ ╔═╗ ╔╦╗   ╦ ╔═╗ ╦   ╔═╗ ╔╗╔ ╔╦╗
 ║═╬╗║ ║ ║╣  ╚═╗  ║    ║ ╚═╗ ║   ╠═╣ ║║║  ║║
 ╚═╝╚╚═╝ ╚═╝ ╚═╝  ╩    ╩ ╚═╝ ╩═╝ ╩ ╩ ╝╚╝ ═╩╝`

const bannerCompact = "Q U E S T   I S L A N D"

// RenderBanner returns the title banner, or a one-line version for
// terminals narrower than 50 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
