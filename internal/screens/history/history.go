// Package history lists finished days from the completion log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/achievements"
	"github.com/abhisek/questisland/internal/game"
	"github.com/abhisek/questisland/internal/lesson"
	"github.com/abhisek/questisland/internal/router"
	"github.com/abhisek/questisland/internal/screen"
	"github.com/abhisek/questisland/internal/store"
	"github.com/abhisek/questisland/internal/ui/layout"
	"github.com/abhisek/questisland/internal/ui/theme"
)

// StatsSource loads the progress report. *game.Service implements it.
type StatsSource interface {
	Stats(ctx context.Context) (game.Stats, error)
}

type historyLoadedMsg struct {
	Stats game.Stats
	Err   error
}

// HistoryScreen shows past days, newest first.
type HistoryScreen struct {
	source   StatsSource
	stats    game.Stats
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.EscapeHandler = (*HistoryScreen)(nil)

// New creates a HistoryScreen.
func New(src StatsSource) *HistoryScreen {
	return &HistoryScreen{
		source:   src,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	src := s.source
	return func() tea.Msg {
		st, err := src.Stats(context.Background())
		return historyLoadedMsg{Stats: st, Err: err}
	}
}

func (s *HistoryScreen) HandlesEscape() bool { return true }

func (s *HistoryScreen) Title() string {
	return "Adventure Log"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.stats.History)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading your adventures...")
	}
	events := s.stats.History
	if len(events) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No days explored yet. Set sail from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf(
		"%d days · %.0f%% right first time · 🔥 %d day streak",
		s.stats.CompletedDays, s.stats.Accuracy()*100, s.stats.Streak)))
	b.WriteString("\n\n")

	// newest first
	for row := 0; row < len(events); row++ {
		ev := events[len(events)-1-row]

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if row == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%s  %-22s %d/%d right  %d:%02d  ★ %d",
			prefix,
			ev.Timestamp.Format("Jan 02"),
			lesson.Title(ev.Day),
			ev.Correct, ev.Questions,
			ev.Seconds/60, ev.Seconds%60,
			ev.Points)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[row] {
			b.WriteString(renderDetails(ev, width))
		}
	}
	return b.String()
}

func renderDetails(ev store.CompletionEvent, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	d, err := game.Details(ev)
	if err != nil {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    details unavailable")) + "\n"
	}

	var lines []string
	if d.Reward != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Render("    Chest: "+d.Reward))
	}
	for _, id := range d.NewCards {
		if c, ok := achievements.Get(id); ok {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.RarityColor(c.Rarity)).
				Render(fmt.Sprintf("    %s %s", c.Icon, c.Title)))
		}
	}
	if ev.Mistakes > 0 || len(d.SkippedIDs) > 0 {
		lines = append(lines, dim.Render(fmt.Sprintf("    %d mistakes, %d skipped", ev.Mistakes, len(d.SkippedIDs))))
	}
	if len(lines) == 0 {
		lines = append(lines, dim.Render("    A smooth day of sailing"))
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, l))
		b.WriteString("\n")
	}
	return b.String()
}
