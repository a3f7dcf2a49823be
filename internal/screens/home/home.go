// Package home is the main menu.
package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/questisland/internal/lesson"
	"github.com/abhisek/questisland/internal/profile"
	"github.com/abhisek/questisland/internal/router"
	"github.com/abhisek/questisland/internal/screen"
	"github.com/abhisek/questisland/internal/screens/cards"
	"github.com/abhisek/questisland/internal/screens/history"
	"github.com/abhisek/questisland/internal/screens/islandmap"
	"github.com/abhisek/questisland/internal/screens/quest"
	"github.com/abhisek/questisland/internal/ui/components"
	"github.com/abhisek/questisland/internal/ui/layout"
	"github.com/abhisek/questisland/internal/ui/theme"
)

// alertReviews is the queue length at which the mascot worries.
const alertReviews = 3

// Game is what the home screen and the screens it opens need.
// *game.Service implements it.
type Game interface {
	quest.Recorder
	cards.Redeemer
	history.StatsSource
	Lesson(p *profile.Profile, day int) (*lesson.Lesson, error)
}

// HomeScreen shows today's stats and the main menu.
type HomeScreen struct {
	game    Game
	profile *profile.Profile
	now     func() time.Time

	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen for p.
func New(g Game, p *profile.Profile) *HomeScreen {
	h := &HomeScreen{game: g, profile: p, now: time.Now}
	h.buildMenu()
	return h
}

func (h *HomeScreen) buildMenu() {
	day := h.profile.NextDay()
	playLabel := fmt.Sprintf("PLAY DAY %d", day)
	if cp := h.profile.CurrentSession; cp != nil {
		day = cp.Day
		playLabel = fmt.Sprintf("CONTINUE DAY %d", day)
	}

	selected := h.menu.Selected
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: playLabel, Action: func() tea.Cmd { return h.play(day) }},
		{Label: "ISLAND MAP", Action: func() tea.Cmd {
			m := islandmap.New(h.profile.CompletedDays(), h.profile.NextDay(), h.play)
			return push(m)
		}},
		{Label: "CARDS", Action: func() tea.Cmd { return push(cards.New(h.game, h.profile)) }},
		{Label: "ADVENTURE LOG", Action: func() tea.Cmd { return push(history.New(h.game)) }},
		{Label: "EXIT GAME", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.menu.Selected = selected
}

// play opens the lesson for day.
func (h *HomeScreen) play(day int) tea.Cmd {
	l, err := h.game.Lesson(h.profile, day)
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	if len(l.Questions) == 0 {
		h.errMsg = fmt.Sprintf("Day %d has no questions. Check the question counts in settings.", day)
		return nil
	}
	h.errMsg = ""
	return push(quest.New(h.game, h.profile, l))
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// Mascot picks the mascot mood from the profile.
func (h *HomeScreen) Mascot() MascotVariant {
	p := h.profile
	if len(p.Queue) >= alertReviews {
		return MascotAlert
	}
	if last := p.LastLevelStats; last != nil && p.ConsecutivePerfectLevels > 0 &&
		h.now().Sub(last.Timestamp) < 24*time.Hour {
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(screen.ProfileChangedMsg); ok && m.Profile != nil {
		h.profile = m.Profile
		h.buildMenu()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height excludes header, footer and frame gaps
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw)}
	if !compact {
		sections = append(sections, renderMascotBox(h.Mascot(), cw))
		icon, story := lesson.Flavor(h.profile.NextDay())
		sections = append(sections, renderStoryLine(icon, story, cw))
	}
	sections = append(sections,
		renderStatsBar(h.profile.Stars, h.profile.Streak, len(h.profile.Queue), cw, compact),
		components.ButtonStack(h.menu.Labels(), h.menu.Selected, h.menu.Disabled(), cw),
	)
	if h.errMsg != "" {
		sections = append(sections, components.Centered("⚠ "+h.errMsg, cw, theme.Error))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
