package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/ui/theme"
)

// ButtonWidth is the fixed width of stacked menu buttons.
const ButtonWidth = 24

// ContentWidth returns the shared inner width for boxes inside a frame of
// frameWidth, so stacked sections line up.
func ContentWidth(frameWidth int) int {
	// frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// Frame wraps content in a double border centred in width x height.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded box cw wide.
func Card(content string, cw int, border color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}

// Centered renders s centred in width.
func Centered(s string, width int, fg color.Color) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Render(s)
}

// ButtonStack renders labels as bordered buttons, one per line.
func ButtonStack(labels []string, selected int, disabled map[int]bool, cw int) string {
	base := lipgloss.NewStyle().
		Width(ButtonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	buttons := make([]string, 0, len(labels))
	for i, label := range labels {
		switch {
		case disabled[i]:
			buttons = append(buttons, base.Foreground(theme.TextDim).BorderForeground(theme.Border).Render(label))
		case i == selected:
			buttons = append(buttons, base.Bold(true).
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				BorderForeground(theme.ArcadeYellow).
				Render("▸ "+label))
		default:
			buttons = append(buttons, base.Foreground(theme.Text).BorderForeground(theme.Border).Render(label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}
