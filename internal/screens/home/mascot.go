package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/ui/theme"
)

// MascotVariant selects which parrot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // perfect day recently
	MascotAlert                     // reviews piling up
)

const mascotIdle = `  ___
 (o >)
 //\\
 V_/_`

const mascotCelebrating = ` \___/
 (★ >)  ♪
 //\\
 V_/_`

const mascotAlert = `  ___
 (o >)  !
 //\\
 V_/_`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
