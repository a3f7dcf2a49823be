// Package screen defines the contract between TUI screens and the router.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/questisland/internal/profile"
	"github.com/abhisek/questisland/internal/ui/layout"
)

// Screen is one page of the app.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that handle Esc themselves.
// For all other screens the app pops on Esc.
type EscapeHandler interface {
	HandlesEscape() bool
}

// ProfileChangedMsg announces a newly saved profile. The app refreshes its
// header and forwards the message to the active screen.
type ProfileChangedMsg struct {
	Profile *profile.Profile
}

// ProfileChanged returns a command emitting ProfileChangedMsg.
func ProfileChanged(p *profile.Profile) tea.Cmd {
	return func() tea.Msg { return ProfileChangedMsg{Profile: p} }
}
