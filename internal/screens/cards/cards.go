// Package cards shows achievement cards, the sticker album and reward
// coupons.
package cards

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/achievements"
	"github.com/abhisek/questisland/internal/profile"
	"github.com/abhisek/questisland/internal/rewards"
	"github.com/abhisek/questisland/internal/router"
	"github.com/abhisek/questisland/internal/screen"
	"github.com/abhisek/questisland/internal/ui/layout"
	"github.com/abhisek/questisland/internal/ui/theme"
)

// Redeemer marks coupons as used. *game.Service implements it.
type Redeemer interface {
	Redeem(ctx context.Context, p *profile.Profile, itemID string) (*profile.Profile, error)
}

type tab int

const (
	tabCards tab = iota
	tabStickers
	tabCoupons
	tabCount
)

func (t tab) label() string {
	switch t {
	case tabCards:
		return "🃏 Cards"
	case tabStickers:
		return "⭐ Stickers"
	default:
		return "🎟️ Coupons"
	}
}

type redeemedMsg struct {
	Profile *profile.Profile
	Err     error
}

// CardsScreen is the collection screen.
type CardsScreen struct {
	redeemer Redeemer
	profile  *profile.Profile
	changed  bool

	tab          tab
	cursor       int
	scrollOffset int
	errMsg       string
}

var _ screen.Screen = (*CardsScreen)(nil)
var _ screen.KeyHintProvider = (*CardsScreen)(nil)
var _ screen.EscapeHandler = (*CardsScreen)(nil)

// New creates a CardsScreen for p.
func New(r Redeemer, p *profile.Profile) *CardsScreen {
	return &CardsScreen{redeemer: r, profile: p}
}

func (s *CardsScreen) Init() tea.Cmd {
	return nil
}

func (s *CardsScreen) HandlesEscape() bool { return true }

func (s *CardsScreen) Title() string {
	return "Treasure Collection"
}

func (s *CardsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Switch"},
		{Key: "↑↓", Description: "Scroll"},
	}
	if s.tab == tabCoupons {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Redeem"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *CardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case redeemedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.profile = msg.Profile
		s.changed = true
		return s, screen.ProfileChanged(msg.Profile)

	case screen.ProfileChangedMsg:
		s.profile = msg.Profile
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			pop := func() tea.Msg { return router.PopScreenMsg{} }
			if s.changed {
				// Home keeps its own copy of the profile.
				return s, tea.Sequence(pop, screen.ProfileChanged(s.profile))
			}
			return s, pop
		case "tab":
			s.switchTab((s.tab + 1) % tabCount)
		case "shift+tab":
			s.switchTab((s.tab + tabCount - 1) % tabCount)
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < s.rowCount()-1 {
				s.cursor++
			}
		case "r", "R":
			return s, s.redeem()
		}
	}
	return s, nil
}

func (s *CardsScreen) switchTab(t tab) {
	s.tab = t
	s.cursor = 0
	s.scrollOffset = 0
	s.errMsg = ""
}

func (s *CardsScreen) rowCount() int {
	switch s.tab {
	case tabCards:
		return len(achievements.All())
	case tabStickers:
		return len(rewards.Stickers)
	default:
		return len(s.coupons())
	}
}

// coupons lists unredeemed coupons first, each group oldest first.
func (s *CardsScreen) coupons() []rewards.Item {
	var open, used []rewards.Item
	for _, it := range s.profile.Inventory {
		if it.Type != rewards.ItemCustomCoupon {
			continue
		}
		if it.Redeemed {
			used = append(used, it)
		} else {
			open = append(open, it)
		}
	}
	return append(open, used...)
}

func (s *CardsScreen) redeem() tea.Cmd {
	if s.tab != tabCoupons {
		return nil
	}
	list := s.coupons()
	if s.cursor >= len(list) || list[s.cursor].Redeemed {
		return nil
	}
	r, p, id := s.redeemer, s.profile, list[s.cursor].ID
	return func() tea.Msg {
		next, err := r.Redeem(context.Background(), p, id)
		return redeemedMsg{Profile: next, Err: err}
	}
}

func (s *CardsScreen) View(width, height int) string {
	var b strings.Builder

	unlocked := len(s.profile.UnlockedAchievements)
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\n%d of %d cards · %d of %d stickers\n",
			unlocked, len(achievements.All()),
			rewards.DistinctStickers(s.profile.Inventory), len(rewards.Stickers))))
	b.WriteString("\n")

	var tabs []string
	for t := range tabCount {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if t == s.tab {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		tabs = append(tabs, style.Render(t.label()))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))))
	b.WriteString("\n\n")

	var lines []string
	switch s.tab {
	case tabCards:
		lines = s.cardLines()
	case tabStickers:
		lines = s.stickerLines()
	default:
		lines = s.couponLines()
	}

	if len(lines) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Nothing here yet. Keep exploring!"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+maxVisible {
		s.scrollOffset = s.cursor - maxVisible + 1
	}
	end := min(s.scrollOffset+maxVisible, len(lines))

	for i := s.scrollOffset; i < end; i++ {
		line := lines[i]
		if i == s.cursor {
			line = "▸ " + line
		} else {
			line = "  " + line
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	if end < len(lines) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(lines)-end)))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).Render(s.errMsg))
	}
	return b.String()
}

func (s *CardsScreen) cardLines() []string {
	var lines []string
	for _, c := range achievements.All() {
		if !slices.Contains(s.profile.UnlockedAchievements, c.ID) {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("🔒 %-22s %s", c.Title, c.Condition)))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.RarityColor(c.Rarity)).
			Render(fmt.Sprintf("%s %-22s %-9s %s", c.Icon, c.Title, c.Rarity.DisplayName(), c.Description)))
	}
	return lines
}

func (s *CardsScreen) stickerLines() []string {
	owned := make(map[string]int)
	for _, it := range s.profile.Inventory {
		if it.Type == rewards.ItemSticker {
			owned[it.SourceID]++
		}
	}

	var lines []string
	for _, st := range rewards.Stickers {
		n := owned[st.ID]
		if n == 0 {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("❔ ???"))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).
			Render(fmt.Sprintf("%s %-14s ×%d", st.Icon, st.Name, n)))
	}
	return lines
}

func (s *CardsScreen) couponLines() []string {
	var lines []string
	for _, it := range s.coupons() {
		date := it.ObtainedAt.Format("Jan 02")
		if it.Redeemed {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Strikethrough(true).
				Render(fmt.Sprintf("%s %-20s %s  used", it.Icon, it.Name, date)))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("%s %-20s %s", it.Icon, it.Name, date)))
	}
	return lines
}
