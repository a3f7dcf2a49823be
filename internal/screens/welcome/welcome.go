// Package welcome is the splash screen. On a first visit it also asks the
// explorer for a name.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/router"
	"github.com/abhisek/questisland/internal/screen"
	"github.com/abhisek/questisland/internal/ui/components"
	"github.com/abhisek/questisland/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const maxNameLength = 20

const islandArt = `        \ | /
      '-.;;;.-'
     -==;;;;;==-        ~~
      .-';;;'-.     ~~
        / | \
   _____|_|_____
  /  🌴        \~~~~
 ~~~~~~~~~~~~~~~~~~~~`

var sparkleFrames = []string{"✦", "✧"}

type tickMsg time.Time

// WelcomeScreen plays a short splash, then hands over to the home screen.
type WelcomeScreen struct {
	homeFactory func() screen.Screen
	rename      func(name string) tea.Cmd

	elapsed      time.Duration
	tickCount    int
	naming       bool
	input        components.TextInput
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// Option configures a WelcomeScreen.
type Option func(*WelcomeScreen)

// AskName makes the screen ask for a name before leaving; rename is called
// with the entered text.
func AskName(rename func(name string) tea.Cmd) Option {
	return func(w *WelcomeScreen) { w.rename = rename }
}

// New creates a WelcomeScreen that replaces itself with homeFactory().
func New(homeFactory func() screen.Screen, opts ...Option) *WelcomeScreen {
	w := &WelcomeScreen{homeFactory: homeFactory}
	for _, o := range opts {
		o(w)
	}
	return w
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		if w.naming {
			return w.updateName(msg)
		}
		// Any key skips the rest of the animation.
		w.elapsed = totalDur
		if w.rename != nil {
			w.naming = true
			w.input = components.NewTextInput("Explorer name", maxNameLength)
			return w, w.input.Init()
		}
		return w, w.transition(nil)
	}

	if w.naming {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) updateName(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		name := w.input.Value()
		if name == "" {
			return w, nil
		}
		return w, w.transition(w.rename(name))
	}
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

// transition replaces the splash with home, then runs after.
func (w *WelcomeScreen) transition(after tea.Cmd) tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	replace := func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
	if after == nil {
		return replace
	}
	return tea.Sequence(replace, after)
}

func (w *WelcomeScreen) View(width, height int) string {
	art := lipgloss.NewStyle().Foreground(theme.Secondary).Render(islandArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		gold := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(sparkle)
		lines := strings.Split(art, "\n")
		for i := 0; i < len(lines); i += 3 {
			lines[i] = gold + "  " + lines[i] + "  " + gold
		}
		art = strings.Join(lines, "\n")
	}

	sections := []string{art}
	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("A new island adventure every day!"),
			"",
		)
		if w.naming {
			sections = append(sections,
				lipgloss.NewStyle().Foreground(theme.Sand).Render("What should we call you, explorer?"),
				w.input.View(),
			)
		} else {
			sections = append(sections, theme.Hint.Render("press any key to continue"))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
