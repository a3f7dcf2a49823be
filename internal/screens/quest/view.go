package quest

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/bank"
	"github.com/abhisek/questisland/internal/play"
	"github.com/abhisek/questisland/internal/ui/components"
	"github.com/abhisek/questisland/internal/ui/theme"
)

func (s *QuestScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", s.errMsg))
	case s.saving:
		return center.Foreground(theme.TextDim).Render("\n\n\n  Saving your treasure...")
	case s.quitConfirm:
		return renderQuitConfirm(width)
	}

	q, ok := s.session.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(q, width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(s.questionText(q)))
	b.WriteString("\n\n")

	if s.session.Phase() == play.PhaseFeedback {
		b.WriteString(s.renderAnswerArea(q, width))
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
		return b.String()
	}
	b.WriteString(s.renderAnswerArea(q, width))
	return b.String()
}

func (s *QuestScreen) renderInfoLine(q bank.Question, width int) string {
	l := s.session.Lesson()
	left := lipgloss.NewStyle().
		Foreground(theme.CategoryColor(q.Category)).
		Bold(true).
		Render("  " + q.Category.DisplayName())

	elapsed := s.session.Elapsed()
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%s %d   %d:%02d",
		lipgloss.NewStyle().Foreground(theme.Accent).Render("combo"),
		s.session.Combo(),
		int(elapsed.Minutes()), int(elapsed.Seconds())%60,
	))

	bar := components.NewProgressBar("", s.session.Index(), len(l.Questions), 20).View()

	line := left + "  " + bar
	if pad := width - lipgloss.Width(line) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

// questionText fills picked blanks in and strips unscramble separators.
func (s *QuestScreen) questionText(q bank.Question) string {
	switch q.Type {
	case bank.TypeFillInBlank:
		text := q.Text
		for _, p := range s.picks {
			text = strings.Replace(text, play.BlankMarker, "【"+p+"】", 1)
		}
		return text
	case bank.TypeUnscramble:
		return "Put the pieces in order!"
	}
	return q.Text
}

func (s *QuestScreen) renderAnswerArea(q bank.Question, width int) string {
	if q.Type != bank.TypeUnscramble {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View())
	}

	var tiles []string
	for i, t := range s.tiles {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Text).
			Padding(0, 1)
		if s.tileUsed(i) {
			style = style.Foreground(theme.TextDim)
		}
		tiles = append(tiles, style.Render(fmt.Sprintf("%d %s", i+1, t)))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tiles...)

	built := s.assembled()
	if built == "" {
		built = "…"
	}
	answer := lipgloss.NewStyle().Foreground(theme.Sand).Bold(true).Render(built)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row) + "\n\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, answer)
}

func (s *QuestScreen) renderFeedback(width int) string {
	res := s.session.LastResult()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	if res.Correct {
		msg := "Correct!"
		if res.Combo >= 3 {
			msg = fmt.Sprintf("Correct! %d in a row!", res.Combo)
		}
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render(msg))
	} else {
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("Try again, or press S to skip"))
	}
	b.WriteString("\n\n")

	if res.Correct && res.Explanation != "" {
		exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(res.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	}
	return b.String()
}

func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Leave this island for now?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("You can continue where you left off."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, save and leave"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}
