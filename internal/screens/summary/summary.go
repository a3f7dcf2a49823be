// Package summary shows the results of a finished day.
package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/ledger"
	"github.com/abhisek/questisland/internal/profile"
	"github.com/abhisek/questisland/internal/rewards"
	"github.com/abhisek/questisland/internal/router"
	"github.com/abhisek/questisland/internal/screen"
	"github.com/abhisek/questisland/internal/ui/layout"
	"github.com/abhisek/questisland/internal/ui/theme"
)

// Report is what the summary displays.
type Report struct {
	Day       int
	Title     string
	Questions int
	Elapsed   time.Duration
	MaxCombo  int
	Outcome   ledger.Outcome
}

// Accuracy is the share of questions answered right first time.
func (r Report) Accuracy() float64 {
	if r.Questions == 0 {
		return 0
	}
	return float64(r.Outcome.Correct) / float64(r.Questions)
}

// SummaryScreen displays a Report.
type SummaryScreen struct {
	report  Report
	profile *profile.Profile
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.EscapeHandler = (*SummaryScreen)(nil)

// New creates a SummaryScreen. p is the profile saved with the result and
// is announced again when returning home.
func New(r Report, p *profile.Profile) *SummaryScreen {
	return &SummaryScreen{report: r, profile: p}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) HandlesEscape() bool { return true }

func (s *SummaryScreen) Title() string {
	return "Day Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to island"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, tea.Sequence(
				func() tea.Msg { return router.PopToRootMsg{} },
				screen.ProfileChanged(s.profile),
			)
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.report
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}
	divider := lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60))))

	var b strings.Builder

	headline := "Day complete!"
	if r.Outcome.Perfect {
		headline = "Perfect day!"
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), headline))
	b.WriteString("\n")
	if r.Title != "" {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), r.Title))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true),
		fmt.Sprintf("★ +%d stars", r.Outcome.StarsEarned)))
	b.WriteString("\n\n")

	mins := int(r.Elapsed.Minutes())
	secs := int(r.Elapsed.Seconds()) % 60
	stats := fmt.Sprintf("Correct: %d/%d (%.0f%%)      Time: %d:%02d      Best combo: %d",
		r.Outcome.Correct, r.Questions, r.Accuracy()*100, mins, secs, r.MaxCombo)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), stats))
	b.WriteString("\n")
	if n := len(r.Outcome.DueForReview); n > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadeCyan),
			fmt.Sprintf("%d tricky question(s) will come back for review", n)))
		b.WriteString("\n")
	}

	if it := r.Outcome.Reward; it != nil {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Treasure chest"))
		b.WriteString("\n")
		b.WriteString(divider)
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), rewardLine(*it)))
		b.WriteString("\n")
	}

	if len(r.Outcome.NewCards) > 0 {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "New cards"))
		b.WriteString("\n")
		b.WriteString(divider)
		b.WriteString("\n")
		for _, c := range r.Outcome.NewCards {
			line := fmt.Sprintf("%s %s (%s) · %s", c.Icon, c.Title, c.Rarity.DisplayName(), c.Message)
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.RarityColor(c.Rarity)), line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func rewardLine(it rewards.Item) string {
	if it.Type == rewards.ItemCustomCoupon {
		return fmt.Sprintf("%s Coupon: %s", it.Icon, it.Name)
	}
	return fmt.Sprintf("%s Sticker: %s", it.Icon, it.Name)
}
