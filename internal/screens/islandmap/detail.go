package islandmap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/lesson"
	"github.com/abhisek/questisland/internal/screen"
	"github.com/abhisek/questisland/internal/ui/layout"
	"github.com/abhisek/questisland/internal/ui/theme"
)

// DayDetailScreen describes one day and lets the explorer start it.
type DayDetailScreen struct {
	day   int
	state DayState
	play  func(day int) tea.Cmd
}

var _ screen.Screen = (*DayDetailScreen)(nil)
var _ screen.KeyHintProvider = (*DayDetailScreen)(nil)

func newDayDetail(day int, state DayState, play func(day int) tea.Cmd) *DayDetailScreen {
	return &DayDetailScreen{day: day, state: state, play: play}
}

func (d *DayDetailScreen) Init() tea.Cmd { return nil }
func (d *DayDetailScreen) Title() string { return lesson.Title(d.day) }

func (d *DayDetailScreen) KeyHints() []layout.KeyHint {
	if !d.state.Playable() {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Set sail"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DayDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		if d.state.Playable() && d.play != nil {
			return d, d.play(d.day)
		}
	}
	return d, nil
}

func (d *DayDetailScreen) View(width, height int) string {
	icon, story := lesson.Flavor(d.day)
	cw := min(width-8, 70)

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", icon, lesson.Title(d.day))))
	b.WriteString("\n")
	b.WriteString(dim.Render(fmt.Sprintf("  %s · %s", RegionName(d.day), d.state.Label())))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).PaddingLeft(2).Foreground(theme.Sand).Render(story))
	b.WriteString("\n\n")

	target := lesson.DefaultDifficulty(d.day)
	lo, hi := lesson.Band(target)
	b.WriteString(dim.Render("  Reward:      ") + val.Render(fmt.Sprintf("★ %d stars", lesson.Points(d.day))) + "\n")
	b.WriteString(dim.Render("  Difficulty:  ") + val.Render(difficultyStars(lo, hi)) + "\n")
	b.WriteString("\n")

	switch d.state {
	case StateDone:
		b.WriteString(dim.Render("  Already explored. Sail again for more stars!"))
	case StateNext:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("  Ready when you are, explorer."))
	default:
		b.WriteString(dim.Render("  Finish the earlier days to unlock this one."))
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}

func difficultyStars(lo, hi int) string {
	if lo == hi {
		return strings.Repeat("◆", hi)
	}
	return strings.Repeat("◆", lo) + " to " + strings.Repeat("◆", hi)
}
