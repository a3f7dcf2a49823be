// Package app hosts the root Bubble Tea model.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/profile"
	"github.com/abhisek/questisland/internal/router"
	"github.com/abhisek/questisland/internal/screen"
	"github.com/abhisek/questisland/internal/screens/home"
	"github.com/abhisek/questisland/internal/screens/welcome"
	"github.com/abhisek/questisland/internal/ui/layout"
)

// Game is the service the TUI runs on. *game.Service implements it.
type Game interface {
	home.Game
	Rename(ctx context.Context, p *profile.Profile, name string) (*profile.Profile, error)
}

// Options configures the TUI.
type Options struct {
	Game Game
	// Profile is the logged-in profile shown first.
	Profile *profile.Profile
	// SkipWelcome starts on the home screen.
	SkipWelcome bool
}

type renameFailedMsg struct{ Err error }

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	game    Game
	profile *profile.Profile
	notice  string
	width   int
	height  int
}

func newAppModel(opts Options) AppModel {
	m := AppModel{game: opts.Game, profile: opts.Profile}

	// Home picks up later profile changes through ProfileChangedMsg.
	homeFactory := func() screen.Screen { return home.New(opts.Game, opts.Profile) }
	if opts.SkipWelcome {
		m.router = router.New(homeFactory())
		return m
	}

	var wopts []welcome.Option
	if isNewExplorer(opts.Profile) {
		wopts = append(wopts, welcome.AskName(m.rename))
	}
	m.router = router.New(welcome.New(homeFactory, wopts...))
	return m
}

// isNewExplorer reports whether p has never been named or played.
func isNewExplorer(p *profile.Profile) bool {
	return p != nil && p.CompletedCount() == 0 && p.Name == profile.New(0).Name
}

func (m AppModel) rename(name string) tea.Cmd {
	g, p := m.game, m.profile
	return func() tea.Msg {
		next, err := g.Rename(context.Background(), p, name)
		if err != nil {
			return renameFailedMsg{Err: err}
		}
		return screen.ProfileChangedMsg{Profile: next}
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.ProfileChangedMsg:
		if msg.Profile != nil {
			m.profile = msg.Profile
		}

	case renameFailedMsg:
		m.notice = fmt.Sprintf("Could not save name: %v", msg.Err)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}
	if m.notice != "" {
		title = m.notice
	}

	var stars, streak int
	if m.profile != nil {
		stars, streak = m.profile.Stars, m.profile.Streak
	}
	header := layout.RenderHeader(title, stars, streak, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Game == nil || opts.Profile == nil {
		return fmt.Errorf("run app: game and profile are required")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}
