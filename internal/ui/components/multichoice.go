package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questisland/internal/ui/theme"
)

// ChoiceList lets the learner pick one option with arrows or its number.
// Once revealed it colours the correct option and the learner's pick.
type ChoiceList struct {
	Options  []string
	Selected int

	revealed bool
	correct  string
	chosen   int
}

// NewChoiceList creates a list with the cursor on the first option.
func NewChoiceList(options []string) ChoiceList {
	return ChoiceList{Options: options, chosen: -1}
}

// Update moves the cursor. It reports the chosen option when the learner
// presses enter or a number key.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, string, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || c.revealed || len(c.Options) == 0 {
		return c, "", false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.chosen = c.Selected
		return c, c.Options[c.Selected], true
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.Selected, c.chosen = i, i
				return c, c.Options[i], true
			}
		}
	}
	return c, "", false
}

// Reveal marks the right answer for display.
func (c *ChoiceList) Reveal(correct string) {
	c.revealed = true
	c.correct = correct
}

// View renders the options, one per line.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.revealed && opt == c.correct:
			style = theme.Correct
		case c.revealed && i == c.chosen:
			style = theme.Incorrect
		case c.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
