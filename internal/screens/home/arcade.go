package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/screens/welcome"
	"github.com/abhisek/questisland/internal/ui/components"
	"github.com/abhisek/questisland/internal/ui/theme"
)

func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(cw))
}

// renderStatsBar shows stars, streak and due reviews in a double box.
func renderStatsBar(stars, streak, due, cw int, compact bool) string {
	starStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	reviewStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			starStyle.Render(fmt.Sprintf("★%d", stars)),
			streakStyle.Render(fmt.Sprintf("🔥%d", streak)),
			reviewText(due, true, reviewStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			starStyle.Render(fmt.Sprintf("★ %d STARS", stars)),
			streakStyle.Render(fmt.Sprintf("🔥 %d DAY STREAK", streak)),
			reviewText(due, false, reviewStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func reviewText(due int, compact bool, active, dim lipgloss.Style) string {
	switch {
	case due == 0 && compact:
		return dim.Render("↺0")
	case due == 0:
		return dim.Render("↺ NO REVIEWS")
	case compact:
		return active.Render(fmt.Sprintf("↺%d", due))
	}
	return active.Render(fmt.Sprintf("↺ %d TO REVIEW", due))
}

// renderStoryLine previews the next day.
func renderStoryLine(icon, story string, cw int) string {
	text := lipgloss.NewStyle().Foreground(theme.Sand).Render(icon + "  " + story)
	return components.Card(text, cw, theme.Sand)
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
